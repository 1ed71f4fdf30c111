package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gretastore/internal/domain/entity"
	"gretastore/pkg/errors"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestPostgresProductRepository_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresProductRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "price", "category", "image", "rating", "sales",
		"description", "nutrition_info", "shipping_info", "related_product_ids"}).
		AddRow(1, "Batido Verde Detox", 15.5, "Batidos", "img", 4.8, 120, "desc", "", "", "{2,3}").
		AddRow(2, "Ensalada César", 22.0, "Ensaladas", "img", 4.5, 85, "", "", "", "{}")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + productColumns + " FROM products ORDER BY id")).
		WillReturnRows(rows)

	products, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, []int64{2, 3}, products[0].RelatedProductIDs)
	assert.Equal(t, "Ensaladas", products[1].Category)
	assert.Empty(t, products[1].RelatedProductIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProductRepository_CreateManyAssignsIDs(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresProductRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO products")).
		WithArgs("A", 4.0, "Todo", "", 0.0, 0, "", "", "", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO products")).
		WithArgs("B", 3.5, "Todo", "", 0.0, 0, "", "", "", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	created, err := repo.CreateMany(context.Background(), []entity.Product{
		{ID: 999, Name: "A", Price: 4, Category: "Todo"},
		{ID: 998, Name: "B", Price: 3.5, Category: "Todo"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), created[0].ID)
	assert.Equal(t, int64(11), created[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProductRepository_CreateManyRollsBack(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresProductRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO products")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO products")).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	_, err := repo.CreateMany(context.Background(), []entity.Product{{Name: "A"}, {Name: "B"}})
	assert.True(t, errors.Is(err, "INTERNAL_ERROR"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProductRepository_UpdateMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresProductRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), entity.Product{ID: 42, Name: "X"})
	assert.True(t, errors.Is(err, "NOT_FOUND"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProductRepository_Delete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresProductRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id = $1")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresOrderRepository_ListDecodesItems(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresOrderRepository(db)

	date := time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)
	items := `[{"id":1,"name":"A","price":4,"category":"Todo","image":"","rating":0,"sales":0,"quantity":2}]`
	rows := sqlmock.NewRows([]string{"id", "customer_name", "email", "items", "total", "status", "payment_status", "date"}).
		AddRow("o-1", "Ana", "ana@x.pe", items, 8.0, "Pendiente", "Pagado", date)

	mock.ExpectQuery(regexp.QuoteMeta("FROM orders ORDER BY date DESC")).WillReturnRows(rows)

	orders, err := repo.ListByDateDesc(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	o := orders[0]
	assert.Equal(t, "o-1", o.ID)
	assert.Equal(t, "Ana", o.CustomerName)
	assert.Equal(t, entity.OrderPending, o.Status)
	assert.Equal(t, entity.PaymentPaid, o.PaymentStatus)
	require.Len(t, o.Items, 1)
	assert.Equal(t, int64(1), o.Items[0].ID)
	assert.Equal(t, 2, o.Items[0].Quantity)
	assert.True(t, date.Equal(o.Date))
}

func TestPostgresOrderRepository_CreateAssignsUUID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresOrderRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO orders")).
		WithArgs(sqlmock.AnyArg(), "Ana", "ana@x.pe", sqlmock.AnyArg(), 8.0, "Pendiente", "Pagado", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := repo.Create(context.Background(), entity.Order{
		CustomerName:  "Ana",
		Email:         "ana@x.pe",
		Total:         8,
		Status:        entity.OrderPending,
		PaymentStatus: entity.PaymentPaid,
		Date:          time.Now(),
	})
	require.NoError(t, err)
	assert.Len(t, created.ID, 36)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresOrderRepository_UpdateStatus(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresOrderRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET status = $2 WHERE id = $1")).
		WithArgs("o-1", "Enviado").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET status = $2 WHERE id = $1")).
		WithArgs("missing", "Enviado").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.UpdateStatus(context.Background(), "o-1", entity.OrderShipped))
	assert.True(t, errors.Is(repo.UpdateStatus(context.Background(), "missing", entity.OrderShipped), "NOT_FOUND"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProfileRepository_GetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresProfileRepository(db)

	query := regexp.QuoteMeta("SELECT id, full_name, role, phone FROM profiles WHERE id = $1")
	mock.ExpectQuery(query).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "role", "phone"}).AddRow("u1", "Ana", "admin", "999"))
	mock.ExpectQuery(query).
		WithArgs("u2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "role", "phone"}))

	profile, err := repo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, profile.Role)
	assert.Equal(t, "Ana", profile.FullName)

	_, err = repo.GetByID(context.Background(), "u2")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProfileRepository_Writes(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresProfileRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO profiles (id, full_name, role, phone)")).
		WithArgs("u1", "Ana", "client", "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO profiles (id, full_name, phone)")).
		WithArgs("u1", "Ana María", "987").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE profiles SET role = $2 WHERE id = $1")).
		WithArgs("u1", "admin").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := context.Background()
	assert.NoError(t, repo.Upsert(ctx, entity.Profile{ID: "u1", FullName: "Ana", Role: entity.RoleClient}))
	assert.NoError(t, repo.UpdateDetails(ctx, "u1", "Ana María", "987"))
	assert.NoError(t, repo.UpdateRole(ctx, "u1", entity.RoleAdmin))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsurePostgresSchema(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS products")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, EnsurePostgresSchema(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
