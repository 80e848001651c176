package normalize_test

import (
	"testing"

	"config-compare/core/normalize"

	"github.com/stretchr/testify/assert"
)

func TestDate(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want string
		ok   bool
	}{
		{"ISO date", "2023-01-15", "2023-01-15", true},
		{"ISO datetime UTC", "2023-01-15T10:30:00Z", "2023-01-15", true},
		{"ISO datetime no zone", "2023-01-15T10:30:00", "2023-01-15", true},
		{"ISO datetime space", "2023-01-15 10:30:00", "2023-01-15", true},
		{"US date", "01/15/2023", "2023-01-15", true},
		{"US date unpadded", "1/5/2023", "2023-01-05", true},
		{"Excel serial", float64(44941), "2023-01-15", true},
		{"Excel serial with time", 44941.75, "2023-01-15", true},
		{"Excel serial int", 44941, "2023-01-15", true},
		{"Serial below range", float64(0), "", false},
		{"Serial above range", float64(3000000), "", false},
		{"Numeric string is not a serial", "44941", "", false},
		{"Plain text", "hello", "", false},
		{"Empty string", "", "", false},
		{"Nil", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := normalize.Date(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want float64
		ok   bool
	}{
		{"Plain float", 42.5, 42.5, true},
		{"Plain int", 42, 42, true},
		{"Plain string", "42.5", 42.5, true},
		{"US thousands", "1,234.56", 1234.56, true},
		{"European thousands", "1.234,56", 1234.56, true},
		{"Big US", "12,345,678.9", 12345678.9, true},
		{"Big European", "1.234.567,89", 1234567.89, true},
		{"Comma decimal", "1,5", 1.5, true},
		{"Comma thousands", "1,234", 1234, true},
		{"Multiple commas are thousands", "1,234,567", 1234567, true},
		{"Negative European", "-1.234,56", -1234.56, true},
		{"Text", "abc", 0, false},
		{"Empty", "", 0, false},
		{"Nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := normalize.Number(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestNumberSeparatorStylesAgree(t *testing.T) {
	us, okUS := normalize.Number("1,234.56")
	eu, okEU := normalize.Number("1.234,56")

	assert.True(t, okUS)
	assert.True(t, okEU)
	assert.Equal(t, 1234.56, us)
	assert.Equal(t, us, eu)
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a    any
		b    any
		opts normalize.Options
		want bool
	}{
		{"Exact strings", "abc", "abc", normalize.Options{}, true},
		{"Different strings", "abc", "abd", normalize.Options{}, false},
		{"Nil equals empty", nil, "", normalize.Options{}, true},
		{"Float equals int form", float64(1), "1", normalize.Options{}, true},
		{"Date formats differ without flag", "01/15/2023", "2023-01-15", normalize.Options{}, false},
		{"Date formats equal with flag", "01/15/2023", "2023-01-15", normalize.Options{Dates: true}, true},
		{"Serial date equals ISO with flag", float64(44941), "2023-01-15", normalize.Options{Dates: true}, true},
		{"Number styles equal with flag", "1,234.56", "1.234,56", normalize.Options{Numbers: true}, true},
		{"Number styles differ without flag", "1,234.56", "1.234,56", normalize.Options{}, false},
		{"Dates flag falls back to strings", "abc", "abc", normalize.Options{Dates: true}, true},
		{"One date one not compares as strings", "2023-01-15", "hello", normalize.Options{Dates: true}, false},
		{"Both flags prefer dates", "01/15/2023", "2023-01-15", normalize.Options{Dates: true, Numbers: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.Equal(tt.a, tt.b, tt.opts))
		})
	}
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "", normalize.Stringify(nil))
	assert.Equal(t, "abc", normalize.Stringify("abc"))
	assert.Equal(t, "1", normalize.Stringify(float64(1)))
	assert.Equal(t, "1.5", normalize.Stringify(1.5))
	assert.Equal(t, "42", normalize.Stringify(42))
	assert.Equal(t, "true", normalize.Stringify(true))
}
