// Package core provides the assistant's built-in utility tools.
package core

import (
	"context"
	"fmt"
	"math"
	"regexp"

	"github.com/dop251/goja"
	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/smartuae/agent/log"
	"github.com/smartuae/agent/tools"
)

// safeExpression limits calculator input to plain arithmetic before it
// reaches the JS engine. No identifiers, no brackets, no assignment.
var safeExpression = regexp.MustCompile(`^[0-9+\-*/().%\s]+$`)

// CalculatorInput defines the input for the calculator tool
type CalculatorInput struct {
	Expression string `json:"expression" description:"Arithmetic expression, e.g. (1200 + 350) * 1.05"`
}

// CalculatorResult pairs the evaluated expression with its numeric result
type CalculatorResult struct {
	Expression string  `json:"expression"`
	Result     float64 `json:"result"`
}

// CalculatorTool evaluates arithmetic expressions
type CalculatorTool struct{}

// NewCalculatorTool creates the calculator tool and registers it
func NewCalculatorTool(gk *genkit.Genkit, registry *tools.Registry) (*CalculatorTool, error) {
	t := &CalculatorTool{}

	if gk == nil || registry == nil {
		return t, nil
	}

	err := registry.Register(genkit.DefineTool(gk, t.Name(), t.Description(),
		func(ctx *ai.ToolContext, input *CalculatorInput) (*CalculatorResult, error) {
			return t.Evaluate(input.Expression)
		},
	), t.Execute)
	if err != nil {
		return nil, fmt.Errorf("failed to register calculator tool: %w", err)
	}

	log.Info(context.Background(), "[Core] Registered tool: calculator")
	return t, nil
}

func (t *CalculatorTool) Name() string {
	return "calculator"
}

func (t *CalculatorTool) Description() string {
	return "Evaluate an arithmetic expression with + - * / % and parentheses. Arguments: expression (string, required)."
}

func (t *CalculatorTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	expression, ok := args["expression"].(string)
	if !ok || expression == "" {
		return nil, fmt.Errorf("expression is required and must be a string")
	}
	return t.Evaluate(expression)
}

// Evaluate runs the expression in a fresh JS VM after the character guard
func (t *CalculatorTool) Evaluate(expression string) (*CalculatorResult, error) {
	if expression == "" {
		return nil, fmt.Errorf("expression is required")
	}
	if !safeExpression.MatchString(expression) {
		return nil, fmt.Errorf("expression contains unsupported characters")
	}

	vm := goja.New()
	val, err := vm.RunString(expression)
	if err != nil {
		return nil, fmt.Errorf("evaluation failed: %w", err)
	}

	result := val.ToFloat()
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return nil, fmt.Errorf("expression did not produce a finite number")
	}

	return &CalculatorResult{Expression: expression, Result: result}, nil
}
