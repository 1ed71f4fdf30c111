package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"gretastore/internal/domain/entity"
	"gretastore/internal/domain/repository"
	"gretastore/pkg/errors"
)

const insertOrderQuery = `
	INSERT INTO orders (id, customer_name, email, items, total, status, payment_status, date)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

type postgresOrderRepository struct {
	db *sql.DB
}

func NewPostgresOrderRepository(db *sql.DB) repository.OrderRepository {
	return &postgresOrderRepository{db: db}
}

func (r *postgresOrderRepository) ListByDateDesc(ctx context.Context) ([]entity.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, customer_name, email, items, total, status, payment_status, date FROM orders ORDER BY date DESC")
	if err != nil {
		return nil, errors.Internal("Failed to list orders", err)
	}
	defer rows.Close()

	orders := []entity.Order{}
	for rows.Next() {
		var rec orderRecord
		var items []byte
		err := rows.Scan(&rec.ID, &rec.CustomerName, &rec.Email, &items, &rec.Total, &rec.Status, &rec.PaymentStatus, &rec.Date)
		if err != nil {
			return nil, errors.Internal("Failed to parse order data", err)
		}
		if err := json.Unmarshal(items, &rec.Items); err != nil {
			return nil, errors.Internal("Failed to parse order items", err)
		}
		orders = append(orders, rec.toEntity())
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Internal("Failed to iterate orders", err)
	}

	return orders, nil
}

func (r *postgresOrderRepository) Create(ctx context.Context, order entity.Order) (entity.Order, error) {
	created, err := r.CreateMany(ctx, []entity.Order{order})
	if err != nil {
		return entity.Order{}, err
	}
	return created[0], nil
}

func (r *postgresOrderRepository) CreateMany(ctx context.Context, orders []entity.Order) ([]entity.Order, error) {
	if len(orders) == 0 {
		return []entity.Order{}, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Internal("Failed to create orders", err)
	}
	defer tx.Rollback()

	created := make([]entity.Order, 0, len(orders))
	for _, o := range orders {
		o.ID = uuid.NewString()
		rec := toOrderRecord(o)
		items, err := json.Marshal(rec.Items)
		if err != nil {
			return nil, errors.Internal("Failed to encode order items", err)
		}
		_, err = tx.ExecContext(ctx, insertOrderQuery,
			rec.ID, rec.CustomerName, rec.Email, items, rec.Total, rec.Status, rec.PaymentStatus, rec.Date)
		if err != nil {
			return nil, errors.Internal("Failed to create orders", err)
		}
		created = append(created, o)
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Internal("Failed to create orders", err)
	}
	return created, nil
}

func (r *postgresOrderRepository) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error {
	res, err := r.db.ExecContext(ctx, "UPDATE orders SET status = $2 WHERE id = $1", id, string(status))
	if err != nil {
		return errors.Internal("Failed to update order status", err)
	}
	return expectRow(res, "Order")
}
