package msh

import (
	"math"
	"strconv"
	"strings"
)

// realDigits is the fractional digit count of every real in a document. With
// one leading digit this gives 17 significant digits, enough to recover any
// float64 exactly.
const realDigits = 16

// AppendReal appends v as [-]D.DDDDDDDDDDDDDDDDE[+-]NN
func AppendReal(dst []byte, v float64) []byte {
	switch {
	case math.IsNaN(v):
		return append(dst, "NAN"...)
	case math.IsInf(v, 1):
		return append(dst, "INF"...)
	case math.IsInf(v, -1):
		return append(dst, "-INF"...)
	}
	return strconv.AppendFloat(dst, v, 'E', realDigits, 64)
}

func FormatReal(v float64) string { return string(AppendReal(nil, v)) }

// AppendInt appends v in plain decimal form
func AppendInt(dst []byte, v int) []byte { return strconv.AppendInt(dst, int64(v), 10) }

func FormatInt(v int) string { return strconv.Itoa(v) }

// FormatShort renders the shortest decimal form that parses back to v,
// switching to exponent form outside 1e-4 <= |v| < 1e16. Integral values
// keep a trailing ".0", so 1 prints as "1.0" and 0.5 as "0.5".
func FormatShort(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	if v == 0 {
		if math.Signbit(v) {
			return "-0.0"
		}
		return "0.0"
	}
	sci := strconv.FormatFloat(v, 'e', -1, 64)
	exp, _ := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return sci
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
