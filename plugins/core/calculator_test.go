package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatorEvaluate(t *testing.T) {
	tool := &CalculatorTool{}

	tests := []struct {
		name       string
		expression string
		expected   float64
	}{
		{"addition", "2 + 3", 5},
		{"precedence", "2 + 3 * 4", 14},
		{"parentheses", "(2 + 3) * 4", 20},
		{"division", "10 / 4", 2.5},
		{"modulo", "10 % 3", 1},
		{"trip math", "(1200 + 350) * 1.05", 1627.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := tool.Evaluate(tc.expression)
			require.NoError(t, err)
			assert.InDelta(t, tc.expected, result.Result, 1e-9)
			assert.Equal(t, tc.expression, result.Expression)
		})
	}
}

func TestCalculatorRejectsUnsafeInput(t *testing.T) {
	tool := &CalculatorTool{}

	for _, expression := range []string{
		"process.exit(1)",
		"while(true){}",
		"1 + a",
		"[1,2,3]",
		"'abc'",
		"",
	} {
		_, err := tool.Evaluate(expression)
		assert.Error(t, err, "expression %q must be rejected", expression)
	}
}

func TestCalculatorRejectsNonFiniteResults(t *testing.T) {
	tool := &CalculatorTool{}

	_, err := tool.Evaluate("1 / 0")
	require.Error(t, err)
}

func TestCalculatorExecuteAdapter(t *testing.T) {
	tool := &CalculatorTool{}

	out, err := tool.Execute(context.Background(), map[string]interface{}{"expression": "6 * 7"})
	require.NoError(t, err)

	result, ok := out.(*CalculatorResult)
	require.True(t, ok)
	assert.Equal(t, float64(42), result.Result)

	_, err = tool.Execute(context.Background(), map[string]interface{}{})
	require.Error(t, err)
}
