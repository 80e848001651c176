package normalize

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Options selects which normalizations participate in Equal.
type Options struct {
	// Dates enables date canonicalization before comparing.
	Dates bool
	// Numbers enables numeric canonicalization before comparing.
	Numbers bool
}

// excelEpoch is day zero of the Excel serial date system. Excel treats
// 1900 as a leap year, and anchoring the epoch at 1899-12-30 reproduces
// that historical offset for all serials past the phantom Feb 29.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// maxExcelSerial corresponds to 9999-12-31.
const maxExcelSerial = 2958465

// dateLayouts are the accepted textual date formats, tried in order.
var dateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
}

// Date canonicalizes a date value to YYYY-MM-DD.
//
// Accepted inputs are ISO-8601 dates and datetimes (datetimes are
// truncated to the date), US MM/DD/YYYY strings, and Excel serial date
// numbers (days since 1899-12-30). Serials are only honored for numeric
// values; numeric strings stay eligible for number normalization.
func Date(raw any) (string, bool) {
	if f, ok := asFloat(raw); ok {
		if f < 1 || f > maxExcelSerial {
			return "", false
		}
		// Fractional part is time of day; the date is the whole days.
		return excelEpoch.AddDate(0, 0, int(f)).Format("2006-01-02"), true
	}

	s, ok := raw.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// Number canonicalizes a numeric value to a float rounded to 10 decimal
// places.
//
// Strings may carry US separators (1,234.56) or European separators
// (1.234,56). When both separators appear, the right-most one is the
// decimal point. A lone comma is treated as the decimal point only when
// it is the single comma and is followed by at most two digits;
// otherwise commas are thousands separators.
func Number(raw any) (float64, bool) {
	if f, ok := asFloat(raw); ok {
		return round10(f), true
	}

	s, ok := raw.(string)
	if !ok {
		return 0, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			// European style: dots group thousands, comma is decimal.
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			// US style: commas group thousands.
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") == 1 && len(s)-lastComma-1 <= 2 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return round10(f), true
}

// Equal reports whether two cell values are equal under the configured
// normalizations.
//
// Without any normalization enabled, both values are stringified
// (nil -> "") and compared exactly. With normalization, dates are tried
// on both sides first; if both parse, the canonical dates decide. Numbers
// are tried the same way next. Anything else falls back to strict string
// equality.
func Equal(a, b any, opts Options) bool {
	if opts.Dates {
		da, okA := Date(a)
		db, okB := Date(b)
		if okA && okB {
			return da == db
		}
	}

	if opts.Numbers {
		na, okA := Number(a)
		nb, okB := Number(b)
		if okA && okB {
			return na == nb
		}
	}

	return Stringify(a) == Stringify(b)
}

func round10(f float64) float64 {
	return math.Round(f*1e10) / 1e10
}
