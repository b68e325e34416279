package log

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"
)

// LogMessageWire is the JSON line format of one log record.
type LogMessageWire struct {
	Timestamp time.Time     `json:"timestamp"`
	Source    *SourceWire   `json:"source,omitempty"`
	Attrs     []LogAttrWire `json:"attrs,omitempty"`
	Level     string        `json:"level"`
	Message   string        `json:"message"`
}

// SourceWire is the call site of a log record.
type SourceWire struct {
	File     string `json:"file"`
	Function string `json:"function"`
	Line     int    `json:"line"`
}

// LogAttrWire is one attribute as typed text. Type is one of string, int64,
// uint64, bool, float64, time, duration, error, json or any.
type LogAttrWire struct {
	Key   string `json:"key"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// flattenAttr converts attr into wire attributes, expanding groups into
// dotted keys under prefix.
func flattenAttr(prefix string, attr slog.Attr) []LogAttrWire {
	attr.Value = attr.Value.Resolve()
	if attr.Value.Kind() == slog.KindGroup {
		group := attr.Value.Group()
		if len(group) == 0 {
			return nil
		}
		next := prefix
		if attr.Key != "" {
			next = prefix + attr.Key + "."
		}
		var out []LogAttrWire
		for _, a := range group {
			out = append(out, flattenAttr(next, a)...)
		}
		return out
	}
	if attr.Equal(slog.Attr{}) {
		return nil
	}
	wire := toLogAttrWire(attr)
	wire.Key = prefix + wire.Key
	return []LogAttrWire{wire}
}

// toLogAttrWire converts a non-group slog.Attr to LogAttrWire.
func toLogAttrWire(attr slog.Attr) LogAttrWire {
	typ, value := encodeValue(attr.Value.Resolve())
	return LogAttrWire{Key: attr.Key, Type: typ, Value: value}
}

// encodeValue renders v as a wire type name and text. Floats use the
// shortest representation that round-trips, so logged intrinsic arguments
// read back exactly.
func encodeValue(v slog.Value) (string, string) {
	switch v.Kind() {
	case slog.KindString:
		return "string", v.String()
	case slog.KindInt64:
		return "int64", strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return "uint64", strconv.FormatUint(v.Uint64(), 10)
	case slog.KindBool:
		return "bool", strconv.FormatBool(v.Bool())
	case slog.KindFloat64:
		return "float64", strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	case slog.KindTime:
		return "time", v.Time().Format(time.RFC3339Nano)
	case slog.KindDuration:
		return "duration", v.Duration().String()
	}

	switch x := v.Any().(type) {
	case nil:
		return "any", "<nil>"
	case error:
		return "error", x.Error()
	default:
		if data, err := json.Marshal(x); err == nil {
			return "json", string(data)
		}
		return "any", fmt.Sprintf("%v", x)
	}
}
