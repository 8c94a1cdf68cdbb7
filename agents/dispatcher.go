// Package agents runs the tool-augmented conversation loop. Each user turn
// is a genkit flow invocation: the model either emits a JSON tool call,
// which the dispatcher executes and folds back into the prompt, or plain
// text, which ends the turn as the answer.
package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/firebase/genkit/go/genkit"

	logcontext "github.com/smartuae/agent/context"
	"github.com/smartuae/agent/log"
	"github.com/smartuae/agent/session"
	"github.com/smartuae/agent/tools"
)

// maxToolRounds bounds tool invocations per user turn. When exhausted the
// model is asked once more, with tool calling disabled, for a direct answer.
const maxToolRounds = 3

// exhaustedAnswer replaces the forced direct answer when the model keeps
// requesting tools after the budget is spent.
const exhaustedAnswer = "I couldn't finish looking that up. Could you rephrase the question or narrow it down?"

const systemPromptTemplate = `You are a careful UAE tourism assistant.
Rules:
1) Base factual answers ONLY on the knowledge base or tool outputs.
2) For itineraries, suggest places returned by the knowledge tool. If unsure, search the knowledge base first.
3) Use the budget tool for costs; use the prayer tool for prayer times.
4) Be concise and friendly. Remember prior city/duration mentioned by the user.

You have access to the following tools:

%s

Protocol:
1. To call a tool, output ONLY a JSON object in this format: {"tool": "toolName", "input": {...}}
2. Do not add any text before or after the JSON when calling a tool.
3. When you receive a Tool Result, use it to proceed.
4. If you have the final answer, output the text directly (no JSON).

Conversation so far:
%s

Current Date: %s
User Query: %s`

// ToolCallRecord stores one executed tool call of a turn
type ToolCallRecord struct {
	ToolName  string      `json:"tool_name"`
	Input     interface{} `json:"input"`
	Output    interface{} `json:"output"`
	Error     string      `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// TurnResult is the outcome of one dispatched user turn
type TurnResult struct {
	Answer    string           `json:"answer"`
	ToolCalls []ToolCallRecord `json:"tool_calls,omitempty"`
}

// FlowRunner defines the interface for running a flow
type FlowRunner interface {
	Run(ctx context.Context, input string) (string, error)
}

// Dispatcher owns the per-turn model loop for one session
type Dispatcher struct {
	flow     FlowRunner
	llm      tools.LLMClient
	registry *tools.Registry
	sess     *session.Session
	now      func() time.Time

	lastTurn *TurnResult
}

// NewDispatcher wires the dispatch loop as a genkit flow over the given
// registry, model client, and session
func NewDispatcher(gk *genkit.Genkit, registry *tools.Registry, llm tools.LLMClient, sess *session.Session) (*Dispatcher, error) {
	if registry == nil || llm == nil || sess == nil {
		return nil, fmt.Errorf("registry, llm and session are required")
	}

	d := &Dispatcher{
		llm:      llm,
		registry: registry,
		sess:     sess,
		now:      time.Now,
	}

	d.flow = genkit.DefineFlow(
		gk,
		"chatTurnFlow",
		func(ctx context.Context, input string) (string, error) {
			result, err := d.runTurn(ctx, input)
			if err != nil {
				return "", err
			}
			d.lastTurn = result
			return result.Answer, nil
		},
	)

	return d, nil
}

// Chat dispatches one user turn and returns the assistant's answer. The
// session memory is updated only on success.
func (d *Dispatcher) Chat(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrEmptyQuery
	}

	ctx = logcontext.WithRequestID(ctx, logcontext.NewRequestID())
	answer, err := d.flow.Run(ctx, query)
	if err != nil {
		return "", err
	}

	toolUsed := ""
	if d.lastTurn != nil && len(d.lastTurn.ToolCalls) > 0 {
		toolUsed = d.lastTurn.ToolCalls[len(d.lastTurn.ToolCalls)-1].ToolName
	}
	d.sess.Memory.Append(session.Turn{Role: session.RoleUser, Content: query})
	d.sess.Memory.Append(session.Turn{Role: session.RoleAssistant, Content: answer, ToolUsed: toolUsed})

	return answer, nil
}

// LastTurn returns the tool trace of the most recent successful turn
func (d *Dispatcher) LastTurn() *TurnResult {
	return d.lastTurn
}

func (d *Dispatcher) runTurn(ctx context.Context, query string) (*TurnResult, error) {
	history := fmt.Sprintf(
		systemPromptTemplate,
		d.toolDefinitions(),
		d.sess.Memory.Render(),
		d.now().Format(time.RFC3339),
		query,
	)

	result := &TurnResult{}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		resp, err := d.llm.GenerateContent(ctx, history)
		if err != nil {
			log.Errorf(ctx, "[Dispatch] Model call failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrModelInvoke, err)
		}

		toolCall, ok := parseToolCall(resp)
		if !ok {
			result.Answer = resp
			return result, nil
		}

		if len(result.ToolCalls) >= maxToolRounds {
			log.Warnf(ctx, "[Dispatch] Tool budget exhausted after %d calls, forcing direct answer", maxToolRounds)
			history += "\nNo tool calls remaining. Answer the user directly using the information gathered so far. Output plain text only.\n"
			resp, err = d.llm.GenerateContent(ctx, history)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrModelInvoke, err)
			}
			// the model may still disobey and emit another tool call;
			// raw JSON must never reach the user
			if _, stillCalling := parseToolCall(resp); stillCalling {
				log.Warnf(ctx, "[Dispatch] Model requested a tool after exhaustion, substituting fallback answer")
				resp = exhaustedAnswer
			}
			result.Answer = resp
			return result, nil
		}

		// the model must see its own request before the result
		history += fmt.Sprintf("\nModel Response: %s\n", resp)

		log.Debugf(ctx, "[Dispatch] Executing tool %s with input %+v", toolCall.Tool, toolCall.Input)
		record := ToolCallRecord{
			ToolName:  toolCall.Tool,
			Input:     toolCall.Input,
			Timestamp: d.now(),
		}

		out, execErr := d.registry.ExecuteTool(ctx, toolCall.Tool, toolCall.Input)
		if execErr != nil {
			log.Warnf(ctx, "[Dispatch] Tool %s failed: %v", toolCall.Tool, execErr)
			record.Error = execErr.Error()
			history += fmt.Sprintf("\nTool '%s' Error: %v\n", toolCall.Tool, execErr)
		} else {
			record.Output = out
			history += fmt.Sprintf("\nTool '%s' Output: %s\n", toolCall.Tool, renderToolOutput(out))
		}
		result.ToolCalls = append(result.ToolCalls, record)
	}
}

// toolDefinitions renders name, description and input schema of every
// registered tool for the system prompt
func (d *Dispatcher) toolDefinitions() string {
	var b strings.Builder
	for _, t := range d.registry.GetTools() {
		def := t.Definition()
		schemaBytes, _ := json.Marshal(def.InputSchema)
		fmt.Fprintf(&b, "Tool: %s\nDescription: %s\nInput Schema: %s\n\n",
			def.Name, def.Description, string(schemaBytes))
	}
	return b.String()
}

type toolCall struct {
	Tool  string                 `json:"tool"`
	Input map[string]interface{} `json:"input"`
}

// parseToolCall scans the completion for a tool-call JSON object. The scan
// runs from the first '{' to the last '}' so markdown fences and preamble
// text survive.
func parseToolCall(resp string) (toolCall, bool) {
	start := strings.Index(resp, "{")
	end := strings.LastIndex(resp, "}")
	if start == -1 || end == -1 || end <= start {
		return toolCall{}, false
	}

	var call toolCall
	if err := json.Unmarshal([]byte(resp[start:end+1]), &call); err != nil {
		return toolCall{}, false
	}
	// random JSON in answer text lacks the tool field
	if call.Tool == "" {
		return toolCall{}, false
	}
	return call, true
}

// renderToolOutput folds a tool result into the prompt as JSON where
// possible
func renderToolOutput(out interface{}) string {
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Sprintf("%v", out)
	}
	return string(data)
}
