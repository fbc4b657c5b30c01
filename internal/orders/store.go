package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/abojja9/sleep-better-ai/internal/database"
	"github.com/abojja9/sleep-better-ai/internal/logger"
	"github.com/abojja9/sleep-better-ai/internal/models"
)

// deliveryDateLayout renders estimated_delivery for status queries.
const deliveryDateLayout = "January 2, 2006"

// Store owns the persisted order state. Every operation is a single
// statement against the orders table.
type Store struct {
	db  *database.DB
	log *logger.Logger

	// Order IDs come from an in-process sequence rather than a row count, so
	// two concurrent creations can never mint the same identifier. Seeded
	// lazily from MAX(order_id); zero-padded IDs sort lexically.
	mu     sync.Mutex
	seq    int64
	seeded bool
}

// NewStore creates a store over an initialized orders table.
func NewStore(db *database.DB, log *logger.Logger) *Store {
	return &Store{
		db:  db,
		log: log.WithComponent("order_store"),
	}
}

// nextOrderID mints a fresh ORD-prefixed identifier, zero-padded to 6 digits.
func (s *Store) nextOrderID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.seeded {
		var maxID sql.NullString
		err := s.db.QueryRowContext(ctx, "SELECT MAX(order_id) FROM orders").Scan(&maxID)
		if err != nil {
			return "", fmt.Errorf("failed to seed order sequence: %w", err)
		}
		if maxID.Valid && strings.HasPrefix(maxID.String, "ORD") {
			if n, err := strconv.ParseInt(maxID.String[3:], 10, 64); err == nil {
				s.seq = n
			}
		}
		s.seeded = true
	}

	s.seq++
	return fmt.Sprintf("ORD%06d", s.seq), nil
}

// CreateDraft inserts a draft order pending confirmation and returns its ID.
// The delivery estimate is fixed at seven days from creation.
func (s *Store) CreateDraft(ctx context.Context, customerID, productName, size string, price float64, shippingAddress string) (string, error) {
	orderID, err := s.nextOrderID(ctx)
	if err != nil {
		return "", err
	}

	orderDate := time.Now()
	estimatedDelivery := orderDate.Add(models.DeliveryLeadTime)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO orders (
			order_id, customer_id, product_name, size, price,
			status, order_date, estimated_delivery, shipping_address,
			confirmed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		orderID, customerID, productName, size, price,
		models.StatusDraft, orderDate.Format(time.RFC3339), estimatedDelivery.Format(time.RFC3339),
		shippingAddress, false,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert draft order: %w", err)
	}

	s.log.Info("created draft order", "order_id", orderID, "customer_id", customerID)
	return orderID, nil
}

// Confirm attaches payment and shipping details to a draft order and moves it
// to processing. Returns false when the order is unknown or already
// confirmed; neither is an error.
func (s *Store) Confirm(ctx context.Context, orderID, paymentMethod, shippingAddress string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE orders
		SET status = ?,
		    confirmed = ?,
		    payment_method = ?,
		    shipping_address = ?
		WHERE order_id = ? AND confirmed = ?`,
		models.StatusProcessing, true, paymentMethod, shippingAddress, orderID, false,
	)
	if err != nil {
		return false, fmt.Errorf("failed to confirm order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	if affected > 0 {
		s.log.Info("confirmed order", "order_id", orderID, "payment_method", paymentMethod)
	}
	return affected > 0, nil
}

// Create inserts a fully specified, pre-confirmed order and returns its ID.
func (s *Store) Create(ctx context.Context, customerID, productName, size string, price float64, shippingAddress, paymentMethod string) (string, error) {
	orderID, err := s.nextOrderID(ctx)
	if err != nil {
		return "", err
	}

	orderDate := time.Now()
	estimatedDelivery := orderDate.Add(models.DeliveryLeadTime)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO orders (
			order_id, customer_id, product_name, size, price,
			status, order_date, estimated_delivery, shipping_address,
			payment_method, confirmed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		orderID, customerID, productName, size, price,
		models.StatusProcessing, orderDate.Format(time.RFC3339), estimatedDelivery.Format(time.RFC3339),
		shippingAddress, paymentMethod, true,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert order: %w", err)
	}

	s.log.Info("created order", "order_id", orderID, "customer_id", customerID)
	return orderID, nil
}

// GetStatus fetches the display projection for an order. Returns nil with no
// error when the order ID is unknown.
func (s *Store) GetStatus(ctx context.Context, orderID string) (*models.OrderStatus, error) {
	var (
		status, orderDate, estimatedDelivery string
		productName, size                    sql.NullString
		price                                float64
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT status, order_date, estimated_delivery, product_name, size, price
		FROM orders
		WHERE order_id = ?`,
		orderID,
	).Scan(&status, &orderDate, &estimatedDelivery, &productName, &size, &price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query order status: %w", err)
	}

	// Format delivery date for display
	delivery := estimatedDelivery
	if t, err := time.Parse(time.RFC3339, estimatedDelivery); err == nil {
		delivery = t.Format(deliveryDateLayout)
	}

	return &models.OrderStatus{
		OrderID:           orderID,
		Status:            status,
		OrderDate:         orderDate,
		EstimatedDelivery: delivery,
		ProductName:       productName.String,
		Size:              size.String,
		Price:             price,
	}, nil
}

// UpdateStatus overwrites the status of an existing order. The new status is
// not restricted to the documented states; unknown values are written as-is
// but logged. Returns false when no order matched.
func (s *Store) UpdateStatus(ctx context.Context, orderID, newStatus string) (bool, error) {
	if !models.KnownStatus(newStatus) {
		s.log.Warn("updating order to unrecognized status", "order_id", orderID, "status", newStatus)
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE orders SET status = ? WHERE order_id = ?",
		newStatus, orderID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update order status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

// Get loads a full order row. Returns nil with no error when unknown.
func (s *Store) Get(ctx context.Context, orderID string) (*models.Order, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT order_id, customer_id, product_name, size, price,
		       status, order_date, estimated_delivery, shipping_address,
		       payment_method, confirmed
		FROM orders
		WHERE order_id = ?`,
		orderID,
	)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return o, nil
}

// ListRecent returns up to limit orders, newest first. Admin surface for the
// check-orders command.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT order_id, customer_id, product_name, size, price,
		       status, order_date, estimated_delivery, shipping_address,
		       payment_method, confirmed
		FROM orders
		ORDER BY order_id DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, *o)
	}

	return orders, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var (
		o                            models.Order
		orderDate, estimatedDelivery string
		customerID, productName      sql.NullString
		size, address, payment       sql.NullString
	)

	err := row.Scan(
		&o.OrderID, &customerID, &productName, &size, &o.Price,
		&o.Status, &orderDate, &estimatedDelivery, &address,
		&payment, &o.Confirmed,
	)
	if err != nil {
		return nil, err
	}

	o.CustomerID = customerID.String
	o.ProductName = productName.String
	o.Size = size.String
	o.ShippingAddress = address.String
	o.PaymentMethod = payment.String
	o.OrderDate, _ = time.Parse(time.RFC3339, orderDate)
	o.EstimatedDelivery, _ = time.Parse(time.RFC3339, estimatedDelivery)

	return &o, nil
}
