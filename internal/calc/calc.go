// Package calc implements the calculator and unit-converter endpoints.
// Expression evaluation is delegated to expr-lang/expr with a math
// function environment; unit tables live in an embedded YAML file.
package calc

import (
	"fmt"
	"math"

	"github.com/expr-lang/expr"
)

var mathEnv = map[string]interface{}{
	"pi":  math.Pi,
	"e":   math.E,
	"abs": math.Abs,
	"sqrt": func(x float64) (float64, error) {
		if x < 0 {
			return 0, fmt.Errorf("sqrt of negative number")
		}
		return math.Sqrt(x), nil
	},
	"cbrt":  math.Cbrt,
	"sin":   math.Sin,
	"cos":   math.Cos,
	"tan":   math.Tan,
	"asin":  math.Asin,
	"acos":  math.Acos,
	"atan":  math.Atan,
	"ln":    math.Log,
	"log":   math.Log10,
	"log2":  math.Log2,
	"exp":   math.Exp,
	"floor": math.Floor,
	"ceil":  math.Ceil,
	"round": math.Round,
	"pow":   math.Pow,
	"mod":   math.Mod,
}

// Evaluate computes a numeric expression like "2 * sin(pi/6) + sqrt(9)".
func Evaluate(expression string) (float64, error) {
	if expression == "" {
		return 0, fmt.Errorf("empty expression")
	}

	program, err := expr.Compile(expression, expr.Env(mathEnv))
	if err != nil {
		return 0, fmt.Errorf("invalid expression: %w", err)
	}
	out, err := expr.Run(program, mathEnv)
	if err != nil {
		return 0, fmt.Errorf("failed to evaluate expression: %w", err)
	}

	result, err := toFloat(out)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, fmt.Errorf("expression result is not a finite number")
	}
	return result, nil
}

func toFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("expression did not evaluate to a number (got %T)", v)
	}
}
