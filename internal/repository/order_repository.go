package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"loja-rosa/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
// The selected address, delivery method and payment method are frozen
// snapshots and are stored as JSONB documents rather than foreign keys.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateOrder inserts a new order within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	addressJSON, err := json.Marshal(order.Address)
	if err != nil {
		return fmt.Errorf("failed to marshal order address: %w", err)
	}
	deliveryJSON, err := json.Marshal(order.DeliveryMethod)
	if err != nil {
		return fmt.Errorf("failed to marshal order delivery method: %w", err)
	}
	paymentJSON, err := json.Marshal(order.PaymentMethod)
	if err != nil {
		return fmt.Errorf("failed to marshal order payment method: %w", err)
	}

	query := `
		INSERT INTO orders (
			id, order_number, subtotal, tax, delivery_fee, discount, total,
			address, delivery_method, payment_method, promo_code, status,
			estimated_delivery, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err = tx.Exec(ctx, query,
		order.ID, order.OrderNumber,
		order.Subtotal, order.Tax, order.DeliveryFee, order.Discount, order.Total,
		addressJSON, deliveryJSON, paymentJSON,
		order.PromoCode, string(order.Status),
		order.EstimatedDelivery, order.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Str("order_number", order.OrderNumber).
		Msg("order created successfully")

	return nil
}

// CreateOrderItems inserts the order's line items within the provided transaction.
func (r *orderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, items []model.LineItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (id, order_id, product_id, unit_price, quantity, iva_rate, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query, uuid.New(), orderID, item.ProductID, item.UnitPrice, item.Quantity, item.IvaRate, item.CategoryID)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		_, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("order_id", orderID.String()).
				Str("product_id", items[i].ProductID).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(items)).
		Msg("order items created successfully")

	return nil
}

// GetByID retrieves an order by its ID along with its items.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	orderQuery := `
		SELECT id, order_number, subtotal, tax, delivery_fee, discount, total,
		       address, delivery_method, payment_method, promo_code, status,
		       estimated_delivery, created_at
		FROM orders
		WHERE id = $1
	`

	var (
		order        model.Order
		status       string
		addressJSON  []byte
		deliveryJSON []byte
		paymentJSON  []byte
	)
	err := r.pool.QueryRow(ctx, orderQuery, id).Scan(
		&order.ID, &order.OrderNumber,
		&order.Subtotal, &order.Tax, &order.DeliveryFee, &order.Discount, &order.Total,
		&addressJSON, &deliveryJSON, &paymentJSON,
		&order.PromoCode, &status,
		&order.EstimatedDelivery, &order.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	order.Status = model.OrderStatus(status)
	if err := json.Unmarshal(addressJSON, &order.Address); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order address: %w", err)
	}
	if err := json.Unmarshal(deliveryJSON, &order.DeliveryMethod); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order delivery method: %w", err)
	}
	if err := json.Unmarshal(paymentJSON, &order.PaymentMethod); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order payment method: %w", err)
	}

	itemsQuery := `
		SELECT product_id, unit_price, quantity, iva_rate, category_id
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, itemsQuery, id)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", id.String()).
			Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.LineItem
		err := rows.Scan(&item.ProductID, &item.UnitPrice, &item.Quantity, &item.IvaRate, &item.CategoryID)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return &order, nil
}

// UpdateStatus transitions an order between statuses with a guarded
// compare-and-set on the current status.
func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to model.OrderStatus) (bool, error) {
	query := `
		UPDATE orders
		SET status = $1
		WHERE id = $2 AND status = $3
	`

	tag, err := r.pool.Exec(ctx, query, string(to), id, string(from))
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", id.String()).
			Str("from", string(from)).
			Str("to", string(to)).
			Msg("failed to update order status")
		return false, fmt.Errorf("failed to update order status: %w", err)
	}

	updated := tag.RowsAffected() == 1
	r.logger.Debug().
		Str("order_id", id.String()).
		Str("from", string(from)).
		Str("to", string(to)).
		Bool("updated", updated).
		Msg("order status update")

	return updated, nil
}
