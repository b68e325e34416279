// Package validation checks runtime configuration in two passes: the raw
// document against the generated JSON schema, then the typed struct against
// its field constraints.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/kaleidort/kaleidort/application/schema"
	"github.com/kaleidort/kaleidort/domain/entities"
	domainErrors "github.com/kaleidort/kaleidort/domain/errors"
	"github.com/kaleidort/kaleidort/domain/ports"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const configSchemaURL = "kaleidort://config.schema.json"

// ConfigValidator implements ports.ConfigValidator.
type ConfigValidator struct {
	validate *validator.Validate

	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

// NewConfigValidator creates a new validator.
func NewConfigValidator() ports.ConfigValidator {
	v := validator.New()
	// Report json field names so errors match the config file keys.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &ConfigValidator{validate: v}
}

func (v *ConfigValidator) schema() (*jsonschema.Schema, error) {
	v.once.Do(func() {
		raw, err := schema.ConfigSchema()
		if err != nil {
			v.err = err
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(configSchemaURL, bytes.NewReader(raw)); err != nil {
			v.err = fmt.Errorf("failed to add config schema: %w", err)
			return
		}
		v.compiled, v.err = compiler.Compile(configSchemaURL)
		if v.err != nil {
			v.err = fmt.Errorf("invalid config schema: %w", v.err)
		}
	})
	return v.compiled, v.err
}

// ValidateDocument checks a decoded config document against the config schema.
func (v *ConfigValidator) ValidateDocument(doc any) error {
	sch, err := v.schema()
	if err != nil {
		return err
	}
	if err := sch.Validate(doc); err != nil {
		field := ""
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			field = strings.TrimPrefix(deepestLocation(verr), "/")
		}
		return &domainErrors.ConfigError{Field: field, Err: err}
	}
	return nil
}

// ValidateConfig checks the typed config's field constraints.
func (v *ConfigValidator) ValidateConfig(cfg *entities.Config) error {
	if err := v.validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			ns := fieldErrs[0].Namespace()
			if i := strings.IndexByte(ns, '.'); i >= 0 {
				ns = ns[i+1:]
			}
			return &domainErrors.ConfigError{Field: ns, Err: err}
		}
		return &domainErrors.ConfigError{Err: err}
	}
	return nil
}

// deepestLocation follows the first cause chain to the most specific failure.
func deepestLocation(verr *jsonschema.ValidationError) string {
	for len(verr.Causes) > 0 {
		verr = verr.Causes[0]
	}
	return verr.InstanceLocation
}
