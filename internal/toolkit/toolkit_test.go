package toolkit

import (
	"context"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/abojja9/sleep-better-ai/internal/config"
	"github.com/abojja9/sleep-better-ai/internal/database"
	"github.com/abojja9/sleep-better-ai/internal/logger"
	"github.com/abojja9/sleep-better-ai/internal/models"
	"github.com/abojja9/sleep-better-ai/internal/orders"
)

var orderIDPattern = regexp.MustCompile(`ORD\d{6}`)

func testToolkit(t *testing.T) (*Toolkit, *orders.Store) {
	t.Helper()

	db, err := database.NewConnection(&config.DBConfig{
		Driver: "sqlite3",
		Path:   filepath.Join(t.TempDir(), "orders.db"),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.SetupSchema(); err != nil {
		t.Fatalf("failed to set up schema: %v", err)
	}

	log := logger.NewWithOutput(config.LogConfig{Level: "error"}, io.Discard)
	store := orders.NewStore(db, log)
	return New(store, log, nil), store
}

func TestSummarizeOrderDetails(t *testing.T) {
	tk, _ := testToolkit(t)
	ctx := context.Background()

	tests := []struct {
		name string
		args Args
		want []string
	}{
		{
			name: "empty_args_names_every_missing_field",
			args: Args{},
			want: []string{"Missing fields for summary:", "product_name", "size", "price"},
		},
		{
			name: "partial_args",
			args: Args{"product_name": "Ultra Comfort Mattress"},
			want: []string{"Missing fields for summary:", "size", "price"},
		},
		{
			name: "complete_args",
			args: Args{"product_name": "Ultra Comfort Mattress", "size": "Queen", "price": 1299.00},
			want: []string{"Great choice!", "Queen", "Ultra Comfort Mattress", "shipping address"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := tk.HandleSummarizeOrderDetails(ctx, test.args)
			if err != nil {
				t.Fatalf("HandleSummarizeOrderDetails: %v", err)
			}
			for _, w := range test.want {
				if !strings.Contains(got, w) {
					t.Errorf("result %q missing %q", got, w)
				}
			}
		})
	}
}

func TestSummarizePartialMissingNotListed(t *testing.T) {
	tk, _ := testToolkit(t)

	got, err := tk.HandleSummarizeOrderDetails(context.Background(), Args{"size": "Queen"})
	if err != nil {
		t.Fatalf("HandleSummarizeOrderDetails: %v", err)
	}
	if strings.Contains(got, "size") {
		t.Errorf("present field listed as missing: %q", got)
	}
}

func TestCreateOrderMissingFields(t *testing.T) {
	tk, _ := testToolkit(t)

	got, err := tk.HandleCreateOrder(context.Background(), Args{"product_name": "Pillow"})
	if err != nil {
		t.Fatalf("HandleCreateOrder: %v", err)
	}
	for _, w := range []string{"Missing fields:", "size", "price", "shipping_address"} {
		if !strings.Contains(got, w) {
			t.Errorf("result %q missing %q", got, w)
		}
	}
}

func TestCreateOrderDefaultsPaymentToCash(t *testing.T) {
	tk, store := testToolkit(t)
	ctx := context.Background()

	got, err := tk.HandleCreateOrder(ctx, Args{
		"product_name":     "Ultra Comfort Mattress",
		"size":             "Queen",
		"price":            1299.00,
		"shipping_address": "123 Dreamland Ave",
	})
	if err != nil {
		t.Fatalf("HandleCreateOrder: %v", err)
	}
	if !strings.Contains(got, "Perfect! I've created your order.") {
		t.Fatalf("unexpected result: %q", got)
	}

	orderID := orderIDPattern.FindString(got)
	if orderID == "" {
		t.Fatalf("result does not embed an order ID: %q", got)
	}

	o, err := store.Get(ctx, orderID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if o.PaymentMethod != "cash" {
		t.Errorf("payment_method = %q, want cash", o.PaymentMethod)
	}
	if o.Status != models.StatusProcessing || !o.Confirmed {
		t.Errorf("created order not processing/confirmed: %+v", o)
	}
	if !strings.HasPrefix(o.CustomerID, "CUST") || len(o.CustomerID) != 12 {
		t.Errorf("customer_id = %q, want CUST plus 8 hex chars", o.CustomerID)
	}
}

func TestCreateOrderPriceCoercion(t *testing.T) {
	tk, _ := testToolkit(t)
	ctx := context.Background()

	base := func(price any) Args {
		return Args{
			"product_name":     "Pillow",
			"size":             "Standard",
			"price":            price,
			"shipping_address": "1 Main St",
		}
	}

	tests := []struct {
		name    string
		price   any
		created bool
	}{
		{name: "float", price: 49.99, created: true},
		{name: "int", price: 50, created: true},
		{name: "numeric_string", price: "49.99", created: true},
		{name: "dollar_string", price: "$49.99", created: true},
		{name: "non_numeric", price: "cheap", created: false},
		{name: "negative", price: -5.0, created: false},
		{name: "nil", price: nil, created: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := tk.HandleCreateOrder(ctx, base(test.price))
			if err != nil {
				t.Fatalf("HandleCreateOrder: %v", err)
			}
			if test.created && !strings.Contains(got, "Perfect!") {
				t.Errorf("expected creation, got %q", got)
			}
			if !test.created && !strings.Contains(got, "Invalid price") {
				t.Errorf("expected invalid-price result, got %q", got)
			}
		})
	}
}

func TestGetStatus(t *testing.T) {
	tk, store := testToolkit(t)
	ctx := context.Background()

	got, err := tk.HandleGetStatus(ctx, Args{})
	if err != nil {
		t.Fatalf("HandleGetStatus: %v", err)
	}
	if got != "Order ID is required" {
		t.Errorf("missing order_id result = %q", got)
	}

	got, err = tk.HandleGetStatus(ctx, Args{"order_id": "ORD999999"})
	if err != nil {
		t.Fatalf("HandleGetStatus: %v", err)
	}
	if got != "No order found with ID: ORD999999" {
		t.Errorf("unknown order result = %q", got)
	}

	orderID, err := store.Create(ctx, "CUST1", "Dream Sleep Mattress", "King", 899.00, "2 Main St", "cash")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err = tk.HandleGetStatus(ctx, Args{"order_id": orderID})
	if err != nil {
		t.Fatalf("HandleGetStatus: %v", err)
	}
	for _, w := range []string{orderID, "currently processing", "Dream Sleep Mattress (King)", "Expected delivery:"} {
		if !strings.Contains(got, w) {
			t.Errorf("status summary %q missing %q", got, w)
		}
	}
}

func TestUpdateStatus(t *testing.T) {
	tk, store := testToolkit(t)
	ctx := context.Background()

	got, err := tk.HandleUpdateStatus(ctx, Args{"order_id": "ORD000001"})
	if err != nil {
		t.Fatalf("HandleUpdateStatus: %v", err)
	}
	if got != "Order ID and new status are required" {
		t.Errorf("missing new_status result = %q", got)
	}

	got, err = tk.HandleUpdateStatus(ctx, Args{"order_id": "ORD999999", "new_status": "shipped"})
	if err != nil {
		t.Fatalf("HandleUpdateStatus: %v", err)
	}
	if got != "Failed to update order ORD999999" {
		t.Errorf("unknown order result = %q", got)
	}

	orderID, err := store.Create(ctx, "CUST1", "Pillow", "Standard", 49.00, "1 Main St", "cash")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err = tk.HandleUpdateStatus(ctx, Args{"order_id": orderID, "new_status": "shipped"})
	if err != nil {
		t.Fatalf("HandleUpdateStatus: %v", err)
	}
	if got != "Order "+orderID+" updated to shipped" {
		t.Errorf("update result = %q", got)
	}

	status, err := store.GetStatus(ctx, orderID)
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if status.Status != "shipped" {
		t.Errorf("status after update = %q", status.Status)
	}
}

func TestDispatch(t *testing.T) {
	tk, _ := testToolkit(t)
	ctx := context.Background()

	got, err := tk.Dispatch(ctx, CommandGetStatus, Args{"order_id": "ORD999999"})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !strings.Contains(got, "No order found") {
		t.Errorf("dispatch result = %q", got)
	}

	if _, err := tk.Dispatch(ctx, "handle_delete_everything", Args{}); err == nil {
		t.Error("unknown command should be an error")
	}
}

func TestDraftConfirmStatusScenario(t *testing.T) {
	tk, store := testToolkit(t)
	ctx := context.Background()

	orderID, err := store.CreateDraft(ctx, "CUST123", "Ultra Comfort Mattress", "Queen", 1299.00, "123 Test St")
	if err != nil {
		t.Fatalf("CreateDraft: %v", err)
	}

	ok, err := store.Confirm(ctx, orderID, "credit_card", "123 Test St")
	if err != nil || !ok {
		t.Fatalf("Confirm: ok=%v err=%v", ok, err)
	}

	got, err := tk.HandleGetStatus(ctx, Args{"order_id": orderID})
	if err != nil {
		t.Fatalf("HandleGetStatus: %v", err)
	}
	if !strings.Contains(got, "currently processing") {
		t.Errorf("scenario status = %q", got)
	}

	o, err := store.Get(ctx, orderID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if o.Price != 1299.00 {
		t.Errorf("price = %v", o.Price)
	}
	if !strings.Contains(got, o.EstimatedDelivery.Format("January 2, 2006")) {
		t.Errorf("status %q missing long-form delivery date", got)
	}
}
