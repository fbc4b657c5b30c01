package generate

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/abojja9/sleep-better-ai/internal/types"
)

// MockGenerator emulates the orders agent without network access. It keys on
// prompt keywords and returns the same JSON envelope a real model is
// instructed to produce, so the full chat-to-store loop can run offline.
type MockGenerator struct {
	model string
}

var orderIDPattern = regexp.MustCompile(`ORD\d{6}`)

func NewMockGenerator(model string) *MockGenerator {
	return &MockGenerator{model: model}
}

func (g *MockGenerator) Complete(ctx context.Context, prompt string, opts map[string]any) (string, error) {
	lower := strings.ToLower(prompt)
	orderID := orderIDPattern.FindString(prompt)

	if strings.Contains(lower, "update") && orderID != "" {
		return g.generateUpdateStatus(orderID, lower), nil
	}

	if orderID != "" || strings.Contains(lower, "status") || strings.Contains(lower, "track") {
		return g.generateGetStatus(orderID), nil
	}

	if strings.Contains(lower, "address") || strings.Contains(lower, "ship to") || strings.Contains(lower, "place the order") {
		return g.generateCreateOrder(prompt), nil
	}

	if strings.Contains(lower, "mattress") || strings.Contains(lower, "buy") || strings.Contains(lower, "price") {
		return g.generateSummary(), nil
	}

	return `{
  "answer": "Welcome to Sleep Better! I can help you pick a mattress, place an order, or check on an existing one.",
  "command": "",
  "arguments": {"args": {}}
}`, nil
}

func (g *MockGenerator) Model() string {
	return g.model + "-mock"
}

func (g *MockGenerator) generateSummary() string {
	return `{
  "answer": "Summarizing the order before we proceed.",
  "command": "handle_summarize_order_details",
  "arguments": {
    "args": {
      "product_name": "Ultra Comfort Mattress",
      "size": "Queen",
      "price": 1299.00
    }
  }
}`
}

func (g *MockGenerator) generateCreateOrder(prompt string) string {
	// Take everything after "to " as the shipping address when present,
	// otherwise fall back to a demo address.
	address := "123 Dreamland Ave"
	if idx := strings.LastIndex(strings.ToLower(prompt), " to "); idx >= 0 {
		if rest := strings.TrimSpace(prompt[idx+4:]); rest != "" {
			address = strings.TrimRight(rest, ".!?")
		}
	}

	return fmt.Sprintf(`{
  "answer": "Placing your order now.",
  "command": "handle_create_order",
  "arguments": {
    "args": {
      "product_name": "Ultra Comfort Mattress",
      "size": "Queen",
      "price": 1299.00,
      "shipping_address": %q
    }
  }
}`, address)
}

func (g *MockGenerator) generateGetStatus(orderID string) string {
	return fmt.Sprintf(`{
  "answer": "Checking on that order for you.",
  "command": "handle_get_status",
  "arguments": {
    "args": {
      "order_id": %q
    }
  }
}`, orderID)
}

func (g *MockGenerator) generateUpdateStatus(orderID, lower string) string {
	newStatus := "processing"
	for _, s := range []string{"shipped", "delivered", "cancelled"} {
		if strings.Contains(lower, s) {
			newStatus = s
			break
		}
	}

	return fmt.Sprintf(`{
  "answer": "Updating the order status.",
  "command": "handle_update_status",
  "arguments": {
    "args": {
      "order_id": %q,
      "new_status": %q
    }
  }
}`, orderID, newStatus)
}

// Compile-time interface check
var _ types.Generator = (*MockGenerator)(nil)
