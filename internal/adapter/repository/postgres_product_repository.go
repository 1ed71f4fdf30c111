package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"gretastore/internal/domain/entity"
	"gretastore/internal/domain/repository"
	"gretastore/pkg/errors"
)

const productColumns = "id, name, price, category, image, rating, sales, description, nutrition_info, shipping_info, related_product_ids"

type postgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) repository.ProductRepository {
	return &postgresProductRepository{db: db}
}

func (r *postgresProductRepository) List(ctx context.Context) ([]entity.Product, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+productColumns+" FROM products ORDER BY id")
	if err != nil {
		return nil, errors.Internal("Failed to list products", err)
	}
	defer rows.Close()

	products := []entity.Product{}
	for rows.Next() {
		var rec productRecord
		err := rows.Scan(&rec.ID, &rec.Name, &rec.Price, &rec.Category, &rec.Image, &rec.Rating, &rec.Sales,
			&rec.Description, &rec.NutritionInfo, &rec.ShippingInfo, pq.Array(&rec.RelatedProductIDs))
		if err != nil {
			return nil, errors.Internal("Failed to parse product data", err)
		}
		products = append(products, rec.toEntity())
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Internal("Failed to iterate products", err)
	}

	return products, nil
}

func (r *postgresProductRepository) Create(ctx context.Context, product entity.Product) (entity.Product, error) {
	created, err := r.CreateMany(ctx, []entity.Product{product})
	if err != nil {
		return entity.Product{}, err
	}
	return created[0], nil
}

func (r *postgresProductRepository) CreateMany(ctx context.Context, products []entity.Product) ([]entity.Product, error) {
	if len(products) == 0 {
		return []entity.Product{}, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Internal("Failed to create products", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO products (name, price, category, image, rating, sales, description, nutrition_info, shipping_info, related_product_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	created := make([]entity.Product, 0, len(products))
	for _, p := range products {
		rec := toProductRecord(p)
		related := rec.RelatedProductIDs
		if related == nil {
			related = []int64{}
		}
		err := tx.QueryRowContext(ctx, query, rec.Name, rec.Price, rec.Category, rec.Image, rec.Rating, rec.Sales,
			rec.Description, rec.NutritionInfo, rec.ShippingInfo, pq.Array(related)).Scan(&p.ID)
		if err != nil {
			return nil, errors.Internal("Failed to create products", err)
		}
		created = append(created, p)
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Internal("Failed to create products", err)
	}
	return created, nil
}

func (r *postgresProductRepository) Update(ctx context.Context, product entity.Product) error {
	rec := toProductRecord(product)
	related := rec.RelatedProductIDs
	if related == nil {
		related = []int64{}
	}

	query := `
		UPDATE products SET name = $2, price = $3, category = $4, image = $5,
			description = $6, nutrition_info = $7, shipping_info = $8, related_product_ids = $9
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, rec.ID, rec.Name, rec.Price, rec.Category, rec.Image,
		rec.Description, rec.NutritionInfo, rec.ShippingInfo, pq.Array(related))
	if err != nil {
		return errors.Internal("Failed to update product", err)
	}
	return expectRow(res, "Product")
}

func (r *postgresProductRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id); err != nil {
		return errors.Internal("Failed to delete product", err)
	}
	return nil
}

// expectRow turns an update that touched nothing into a NotFound.
func expectRow(res sql.Result, resource string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Internal("Failed to read affected rows", err)
	}
	if n == 0 {
		return errors.NotFound(resource, nil)
	}
	return nil
}
