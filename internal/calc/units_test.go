package calc

import (
	"math"
	"testing"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		from  string
		to    string
		want  float64
	}{
		{name: "km to miles", value: 10, from: "kilometer", to: "mile", want: 6.21371192},
		{name: "alias km to m", value: 2.5, from: "km", to: "m", want: 2500},
		{name: "feet to cm", value: 1, from: "ft", to: "cm", want: 30.48},
		{name: "pounds to kg", value: 10, from: "lbs", to: "kg", want: 4.5359237},
		{name: "hours to seconds", value: 1.5, from: "hours", to: "s", want: 5400},
		{name: "celsius to fahrenheit", value: 100, from: "celsius", to: "fahrenheit", want: 212},
		{name: "fahrenheit to celsius", value: 32, from: "f", to: "c", want: 0},
		{name: "kelvin to celsius", value: 273.15, from: "kelvin", to: "celsius", want: 0},
		{name: "celsius to kelvin", value: -40, from: "c", to: "k", want: 233.15},
		{name: "mb to bytes", value: 1, from: "mb", to: "bytes", want: 1048576},
		{name: "case insensitive", value: 1, from: "KM", to: "Meter", want: 1000},
		{name: "same unit", value: 7, from: "gram", to: "gram", want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := Convert(tt.value, tt.from, tt.to)
			if err != nil {
				t.Fatalf("Convert(%v, %q, %q) error: %v", tt.value, tt.from, tt.to, err)
			}
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("Convert(%v, %q, %q) = %v, want %v", tt.value, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
	}{
		{name: "unknown source unit", from: "parsec", to: "meter"},
		{name: "unknown target unit", from: "meter", to: "smoot"},
		{name: "dimension mismatch", from: "meter", to: "kilogram"},
		{name: "temperature to time", from: "celsius", to: "second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Convert(1, tt.from, tt.to); err == nil {
				t.Errorf("Convert(1, %q, %q) expected error, got none", tt.from, tt.to)
			}
		})
	}
}

func TestConvertReturnsCanonicalUnit(t *testing.T) {
	_, unit, err := Convert(1, "km", "mi")
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	if unit != "mile" {
		t.Errorf("Expected canonical unit name 'mile', got %q", unit)
	}
}

func TestUnits(t *testing.T) {
	units, err := Units()
	if err != nil {
		t.Fatalf("Units() error: %v", err)
	}
	for _, dim := range []string{"length", "mass", "time", "temperature", "data"} {
		if len(units[dim]) == 0 {
			t.Errorf("Expected units for dimension %q", dim)
		}
	}
}
