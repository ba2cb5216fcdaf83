package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/storefront/internal/model"
)

var _ model.OrderStore = (*OrderRepository)(nil)

type OrderRepository struct {
	db *Connection
}

func NewOrderRepository(db *Connection) *OrderRepository {
	return &OrderRepository{
		db: db,
	}
}

func scanOrder(row rowScanner) (model.Order, error) {
	var (
		o       model.Order
		address []byte
	)
	err := row.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &address, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return model.Order{}, err
	}
	if err := json.Unmarshal(address, &o.ShippingAddress); err != nil {
		return model.Order{}, fmt.Errorf("failed to decode shipping address: %w", err)
	}
	return o, nil
}

// Create inserts the order and its items in one transaction.
func (r *OrderRepository) Create(ctx context.Context, order model.Order, items []model.OrderItem) (model.Order, error) {
	address, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return model.Order{}, fmt.Errorf("failed to encode shipping address: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Order{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO orders (id, user_id, total_amount, status, shipping_address, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, user_id, total_amount, status, shipping_address, created_at, updated_at`

	saved, err := scanOrder(tx.QueryRowContext(ctx, query,
		order.ID, order.UserID, order.TotalAmount, string(order.Status), address,
		order.CreatedAt, order.UpdatedAt,
	))
	if err != nil {
		return model.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	itemQuery := `INSERT INTO order_items (id, order_id, product_id, quantity, price)
				  VALUES ($1, $2, $3, $4, $5)`
	for _, item := range items {
		_, err := tx.ExecContext(ctx, itemQuery, item.ID, saved.ID, item.ProductID, item.Quantity, item.Price)
		if err != nil {
			return model.Order{}, fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return model.Order{}, fmt.Errorf("failed to commit order: %w", err)
	}

	return saved, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Order, error) {
	query := `SELECT id, user_id, total_amount, status, shipping_address, created_at, updated_at
			  FROM orders WHERE id = $1`

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Order{}, model.ErrNotFound
		}
		return model.Order{}, fmt.Errorf("failed to get order by id: %w", err)
	}

	return o, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return requireAffected(res)
}

// List returns all orders newest first.
func (r *OrderRepository) List(ctx context.Context) ([]model.Order, error) {
	query := `SELECT id, user_id, total_amount, status, shipping_address, created_at, updated_at
			  FROM orders ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

// ListItems returns the items of an order with product name and image.
func (r *OrderRepository) ListItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	query := `SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price, p.name, p.image_url
			  FROM order_items oi
			  JOIN products p ON p.id = oi.product_id
			  WHERE oi.order_id = $1`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	defer rows.Close()

	items := []model.OrderItem{}
	for rows.Next() {
		var item model.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price,
			&item.ProductName, &item.ProductImageURL)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}

	return items, nil
}
