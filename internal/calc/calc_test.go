package calc

import (
	"math"
	"testing"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		want       float64
	}{
		{name: "arithmetic precedence", expression: "2 + 3 * 4", want: 14},
		{name: "parentheses", expression: "(2 + 3) * 4", want: 20},
		{name: "sqrt", expression: "sqrt(9)", want: 3},
		{name: "pow", expression: "pow(2, 10)", want: 1024},
		{name: "trig with pi", expression: "sin(pi / 2)", want: 1},
		{name: "log base 10", expression: "log(1000)", want: 3},
		{name: "natural log of e", expression: "ln(e)", want: 1},
		{name: "nested functions", expression: "round(abs(-2.4))", want: 2},
		{name: "mod", expression: "mod(10, 3)", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.expression)
			if err != nil {
				t.Fatalf("Evaluate(%q) error: %v", tt.expression, err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expression, got, tt.want)
			}
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	tests := []struct {
		name       string
		expression string
	}{
		{name: "empty", expression: ""},
		{name: "syntax error", expression: "2 +"},
		{name: "unknown function", expression: "frobnicate(2)"},
		{name: "sqrt of negative", expression: "sqrt(-1)"},
		{name: "division by zero", expression: "1 / 0"},
		{name: "non-numeric result", expression: "1 < 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Evaluate(tt.expression); err == nil {
				t.Errorf("Evaluate(%q) expected error, got none", tt.expression)
			}
		})
	}
}
