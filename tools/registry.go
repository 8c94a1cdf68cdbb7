package tools

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

// ToolPlugin defines the interface for plugins that provide tools
type ToolPlugin interface {
	RegisterTools(gk *genkit.Genkit, registry *Registry) error
}

// ToolExecutor is the function signature for executing a tool
type ToolExecutor func(ctx context.Context, args map[string]interface{}) (interface{}, error)

// Registry manages the registration of assistant capabilities. It is built
// once at bootstrap and read-only afterwards.
type Registry struct {
	tools     []ai.Tool
	executors map[string]ToolExecutor
}

// NewRegistry creates a new tool registry
func NewRegistry() *Registry {
	return &Registry{
		tools:     make([]ai.Tool, 0),
		executors: make(map[string]ToolExecutor),
	}
}

// Register adds a tool to the registry with its executor. A duplicate name or
// a missing executor is a wiring bug and fails registration outright.
func (r *Registry) Register(tool ai.Tool, executor ToolExecutor) error {
	if tool == nil {
		return fmt.Errorf("tool is required")
	}
	if executor == nil {
		return fmt.Errorf("executor is required for tool %s", tool.Definition().Name)
	}
	name := tool.Definition().Name
	if _, exists := r.executors[name]; exists {
		return fmt.Errorf("tool already registered: %s", name)
	}
	r.tools = append(r.tools, tool)
	r.executors[name] = executor
	return nil
}

// GetTools returns all registered tools
func (r *Registry) GetTools() []ai.Tool {
	return r.tools
}

// Has reports whether a tool with the given name is registered
func (r *Registry) Has(name string) bool {
	_, ok := r.executors[name]
	return ok
}

// ExecuteTool runs a registered tool by name
func (r *Registry) ExecuteTool(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	executor, ok := r.executors[name]
	if !ok {
		return nil, fmt.Errorf("tool not found: %s", name)
	}
	return executor(ctx, args)
}
