package intrinsics

import (
	"io"
	"math"
	"strconv"
)

// CharCode truncates x toward zero and keeps the low 8 bits.
// Values outside the int64 range follow Go's implementation-specific
// float-to-integer conversion.
func CharCode(x float64) byte {
	return byte(int64(x))
}

// FormatDouble renders x with six fractional digits wrapped in double quotes.
// Non-finite values use the C printf spellings.
func FormatDouble(x float64) string {
	var text string
	switch {
	case math.IsNaN(x) && math.Signbit(x):
		text = "-nan"
	case math.IsNaN(x):
		text = "nan"
	case math.IsInf(x, 1):
		text = "inf"
	case math.IsInf(x, -1):
		text = "-inf"
	default:
		text = strconv.FormatFloat(x, 'f', 6, 64)
	}
	return `"` + text + `"`
}

// EmitChar writes the character for code x followed by a line feed to w.
func EmitChar(w io.Writer, x float64) error {
	_, err := w.Write([]byte{CharCode(x), '\n'})
	return err
}

// PrintDouble writes FormatDouble(x) followed by a line feed to w.
func PrintDouble(w io.Writer, x float64) error {
	_, err := io.WriteString(w, FormatDouble(x)+"\n")
	return err
}

// Putchard is the character emitter. Write failures are ignored.
func Putchard(w io.Writer, x float64) float64 {
	_ = EmitChar(w, x)
	return 0
}

// Printd is the double printer. Write failures are ignored.
func Printd(w io.Writer, x float64) float64 {
	_ = PrintDouble(w, x)
	return 0
}
