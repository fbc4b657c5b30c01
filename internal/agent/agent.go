package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abojja9/sleep-better-ai/internal/logger"
	"github.com/abojja9/sleep-better-ai/internal/toolkit"
	"github.com/abojja9/sleep-better-ai/internal/types"
)

// OrderRequest is the envelope the model is instructed to reply with: a
// display answer plus an optional toolkit command.
type OrderRequest struct {
	Answer    string `json:"answer"`
	Command   string `json:"command"`
	Arguments struct {
		Args toolkit.Args `json:"args"`
	} `json:"arguments"`
}

// Agent wires a text generator to the orders toolkit. It sends the user
// message to the model, parses the command envelope out of the reply, and
// dispatches the command when one is present.
type Agent struct {
	generator types.Generator
	toolkit   *toolkit.Toolkit
	log       *logger.Logger
}

// New creates an orders agent.
func New(generator types.Generator, tk *toolkit.Toolkit, log *logger.Logger) *Agent {
	return &Agent{
		generator: generator,
		toolkit:   tk,
		log:       log.WithComponent("orders_agent"),
	}
}

// Chat runs one conversational turn and returns Frodo's reply.
func (a *Agent) Chat(ctx context.Context, message string) (string, error) {
	raw, err := a.generator.Complete(ctx, message, map[string]any{
		"system":      ordersSystemPrompt,
		"temperature": 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	req, err := ParseOrderRequest(raw)
	if err != nil {
		// Model ignored the envelope; show its text rather than failing the turn.
		a.log.Warn("model reply was not a command envelope", "error", err)
		return asFrodo(strings.TrimSpace(raw)), nil
	}

	if req.Command == "" {
		return asFrodo(req.Answer), nil
	}

	a.log.Info("dispatching command", "command", req.Command, "model", a.generator.Model())
	result, err := a.toolkit.Dispatch(ctx, req.Command, req.Arguments.Args)
	if err != nil {
		return "", fmt.Errorf("failed to execute %s: %w", req.Command, err)
	}

	return asFrodo(result), nil
}

// ParseOrderRequest extracts the command envelope from a model reply,
// tolerating code fences and surrounding prose.
func ParseOrderRequest(raw string) (*OrderRequest, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in model reply")
	}

	var req OrderRequest
	if err := json.Unmarshal([]byte(raw[start:end+1]), &req); err != nil {
		return nil, fmt.Errorf("failed to parse model reply: %w", err)
	}

	return &req, nil
}

// asFrodo prefixes replies the way the chat UI presents them.
func asFrodo(reply string) string {
	if strings.HasPrefix(reply, "Frodo:") {
		return reply
	}
	return "Frodo: " + reply
}
