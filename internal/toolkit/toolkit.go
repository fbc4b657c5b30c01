package toolkit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/abojja9/sleep-better-ai/internal/logger"
	"github.com/abojja9/sleep-better-ai/internal/metrics"
	"github.com/abojja9/sleep-better-ai/internal/orders"
)

// Command names accepted by Dispatch. These are the contract with the
// upstream agent and must not change.
const (
	CommandSummarizeOrderDetails = "handle_summarize_order_details"
	CommandCreateOrder           = "handle_create_order"
	CommandGetStatus             = "handle_get_status"
	CommandUpdateStatus          = "handle_update_status"
)

// Args is the loosely-typed argument mapping supplied by the upstream agent.
// Field presence is the only thing callers can be trusted to get right.
type Args map[string]any

// Toolkit translates command invocations into order store calls and renders
// plain-text results meant for direct display to the end user. Business-rule
// failures (missing field, unknown order, bad price) come back as strings;
// only infrastructure failures surface as errors.
type Toolkit struct {
	store   *orders.Store
	log     *logger.Logger
	metrics *metrics.CommandMetrics
}

// New creates a toolkit over the given store. Metrics may be nil.
func New(store *orders.Store, log *logger.Logger, m *metrics.CommandMetrics) *Toolkit {
	return &Toolkit{
		store:   store,
		log:     log.WithComponent("orders_toolkit"),
		metrics: m,
	}
}

// Dispatch routes a named command to its handler. An unknown command is a
// caller bug and surfaces as an error, not a user-facing string.
func (t *Toolkit) Dispatch(ctx context.Context, command string, args Args) (string, error) {
	if t.metrics != nil {
		defer t.metrics.Time(command)()
	}

	var (
		result string
		err    error
	)

	switch command {
	case CommandSummarizeOrderDetails:
		result, err = t.HandleSummarizeOrderDetails(ctx, args)
	case CommandCreateOrder:
		result, err = t.HandleCreateOrder(ctx, args)
	case CommandGetStatus:
		result, err = t.HandleGetStatus(ctx, args)
	case CommandUpdateStatus:
		result, err = t.HandleUpdateStatus(ctx, args)
	default:
		return "", fmt.Errorf("unknown command %q", command)
	}

	if t.metrics != nil {
		t.metrics.Observe(command, err)
	}
	return result, err
}

// generateCustomerID mints an opaque CUST token from a random uuid. The token
// space makes collisions astronomically unlikely; no uniqueness check is made.
func generateCustomerID() string {
	u := uuid.New()
	return fmt.Sprintf("CUST%X", u[:4])
}

// missingFields returns the required keys absent from args, in the order of
// required.
func missingFields(args Args, required []string) []string {
	var missing []string
	for _, field := range required {
		if _, ok := args[field]; !ok {
			missing = append(missing, field)
		}
	}
	return missing
}

// stringArg extracts a string-valued argument, tolerating non-string values
// by formatting them.
func stringArg(args Args, key string) string {
	v, ok := args[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// priceArg coerces the price argument into a non-negative decimal. The
// upstream agent hands prices over as JSON numbers or strings, and sometimes
// as neither.
func priceArg(args Args) (float64, error) {
	v := args["price"]

	var (
		d   decimal.Decimal
		err error
	)
	switch p := v.(type) {
	case float64:
		d = decimal.NewFromFloat(p)
	case int:
		d = decimal.NewFromInt(int64(p))
	case int64:
		d = decimal.NewFromInt(p)
	case json.Number:
		d, err = decimal.NewFromString(p.String())
	case string:
		d, err = decimal.NewFromString(strings.TrimSpace(strings.TrimPrefix(p, "$")))
	default:
		return 0, fmt.Errorf("price has unsupported type %T", v)
	}
	if err != nil {
		return 0, fmt.Errorf("price is not a number: %v", v)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("price is negative: %v", v)
	}

	f, _ := d.Float64()
	return f, nil
}

// HandleSummarizeOrderDetails renders the pre-order pricing prompt. Pure
// function of its input; no store calls.
func (t *Toolkit) HandleSummarizeOrderDetails(ctx context.Context, args Args) (string, error) {
	required := []string{"product_name", "size", "price"}
	if missing := missingFields(args, required); len(missing) > 0 {
		return fmt.Sprintf("Missing fields for summary: %s", strings.Join(missing, ", ")), nil
	}

	return fmt.Sprintf(
		"Great choice! The %s %s is %s with free delivery. Would you like "+
			"to proceed? I'll need your shipping address to continue.",
		stringArg(args, "size"), stringArg(args, "product_name"), stringArg(args, "price"),
	), nil
}

// HandleCreateOrder creates the final order with shipping details.
func (t *Toolkit) HandleCreateOrder(ctx context.Context, args Args) (string, error) {
	t.log.Info("creating order", "args", fmt.Sprintf("%v", args))

	required := []string{"product_name", "size", "price", "shipping_address"}
	if missing := missingFields(args, required); len(missing) > 0 {
		return fmt.Sprintf("Missing fields: %s", strings.Join(missing, ", ")), nil
	}

	price, err := priceArg(args)
	if err != nil {
		t.log.Warn("rejected order with bad price", "error", err)
		return fmt.Sprintf("Invalid price: %v. Please provide a valid non-negative amount.", args["price"]), nil
	}

	// Add customer ID and default payment method
	customerID := generateCustomerID()
	paymentMethod := stringArg(args, "payment_method")
	if paymentMethod == "" {
		paymentMethod = "cash"
	}

	orderID, err := t.store.Create(ctx,
		customerID,
		stringArg(args, "product_name"),
		stringArg(args, "size"),
		price,
		stringArg(args, "shipping_address"),
		paymentMethod,
	)
	if err != nil {
		return "", err
	}
	if orderID == "" {
		return "Failed to create order", nil
	}

	// Read back the computed delivery date
	status, err := t.store.GetStatus(ctx, orderID)
	if err != nil {
		return "", err
	}
	if status == nil {
		return "Failed to create order", nil
	}

	return fmt.Sprintf(
		"Perfect! I've created your order. Your order number is %s. "+
			"You can expect delivery by %s. "+
			"We'll send you a confirmation email with tracking details shortly.",
		orderID, status.EstimatedDelivery,
	), nil
}

// HandleGetStatus renders a multi-line status summary for an order.
func (t *Toolkit) HandleGetStatus(ctx context.Context, args Args) (string, error) {
	orderID := stringArg(args, "order_id")
	if orderID == "" {
		return "Order ID is required", nil
	}

	status, err := t.store.GetStatus(ctx, orderID)
	if err != nil {
		return "", err
	}
	if status == nil {
		return fmt.Sprintf("No order found with ID: %s", orderID), nil
	}

	return fmt.Sprintf(
		"Your order %s is currently %s.\n"+
			"Product: %s (%s)\n"+
			"Expected delivery: %s",
		orderID, status.Status, status.ProductName, status.Size, status.EstimatedDelivery,
	), nil
}

// HandleUpdateStatus overwrites an order's status.
func (t *Toolkit) HandleUpdateStatus(ctx context.Context, args Args) (string, error) {
	orderID := stringArg(args, "order_id")
	newStatus := stringArg(args, "new_status")
	if orderID == "" || newStatus == "" {
		return "Order ID and new status are required", nil
	}

	ok, err := t.store.UpdateStatus(ctx, orderID, newStatus)
	if err != nil {
		return "", err
	}
	if ok {
		return fmt.Sprintf("Order %s updated to %s", orderID, newStatus), nil
	}
	return fmt.Sprintf("Failed to update order %s", orderID), nil
}
