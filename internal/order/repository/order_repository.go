package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"brewline/internal/domain"
	"brewline/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

const orderColumns = `id, userId, itemName, cupSize, sugarLevel, quantity, orderType,
	       status, appFeedbackGiven, appRating, appComment, createdAt, updatedAt`

// Insert persists a new order and returns its store-assigned identifier.
func (r *MySQLOrderRepository) Insert(ctx context.Context, order domain.Order) (string, error) {
	query := `
		INSERT INTO orders (id, userId, itemName, cupSize, sugarLevel, quantity, orderType, status, appFeedbackGiven)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	id := uuid.New().String()

	_, err := r.db.ExecContext(ctx, query,
		id, order.UserID, order.ItemName, order.CupSize, order.SugarLevel,
		order.Quantity, order.OrderType, order.Status, order.FeedbackGiven,
	)
	if err != nil {
		return "", fmt.Errorf("inserting order: %w", err)
	}

	return id, nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = ?
	`

	var order domain.Order
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID, &order.UserID, &order.ItemName, &order.CupSize, &order.SugarLevel,
		&order.Quantity, &order.OrderType, &order.Status, &order.FeedbackGiven,
		&order.Rating, &order.Comment, &order.CreatedAt, &order.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	return &order, nil
}

// UpdateStatus overwrites the order status. MySQL reports zero affected rows
// when the value is unchanged, so existence is checked by the caller, not
// here; that keeps repeated completions a no-op success.
func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	query := `UPDATE orders SET status = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, status, id); err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	return nil
}

func (r *MySQLOrderRepository) UpdateFeedback(ctx context.Context, id string, rating int, comment string) error {
	query := `UPDATE orders SET appRating = ?, appComment = ?, appFeedbackGiven = TRUE WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, rating, comment, id); err != nil {
		return fmt.Errorf("updating order feedback: %w", err)
	}

	return nil
}

func (r *MySQLOrderRepository) FindByStatus(ctx context.Context, status string) ([]domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE status = ?
		ORDER BY createdAt ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("querying orders by status: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (r *MySQLOrderRepository) FindFeedbackGiven(ctx context.Context) ([]domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE appFeedbackGiven = TRUE
		ORDER BY createdAt ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying orders with feedback: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

func scanOrders(rows *sql.Rows) ([]domain.Order, error) {
	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		err := rows.Scan(
			&order.ID, &order.UserID, &order.ItemName, &order.CupSize, &order.SugarLevel,
			&order.Quantity, &order.OrderType, &order.Status, &order.FeedbackGiven,
			&order.Rating, &order.Comment, &order.CreatedAt, &order.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, nil
}
