package repository

import (
	"context"
	"strconv"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"gretastore/internal/domain/entity"
	"gretastore/internal/domain/repository"
	"gretastore/pkg/errors"
)

const (
	productsCollection = "products"
	countersCollection = "counters"
)

type firestoreProductRepository struct {
	client *firestore.Client
}

func NewFirestoreProductRepository(client *firestore.Client) repository.ProductRepository {
	return &firestoreProductRepository{
		client: client,
	}
}

func (r *firestoreProductRepository) doc(id int64) *firestore.DocumentRef {
	return r.client.Collection(productsCollection).Doc(strconv.FormatInt(id, 10))
}

func (r *firestoreProductRepository) List(ctx context.Context) ([]entity.Product, error) {
	iter := r.client.Collection(productsCollection).OrderBy("id", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	products := []entity.Product{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate products", err)
		}
		var record productRecord
		if err := doc.DataTo(&record); err != nil {
			return nil, errors.Internal("Failed to parse product data", err)
		}
		products = append(products, record.toEntity())
	}

	return products, nil
}

func (r *firestoreProductRepository) Create(ctx context.Context, product entity.Product) (entity.Product, error) {
	created, err := r.CreateMany(ctx, []entity.Product{product})
	if err != nil {
		return entity.Product{}, err
	}
	return created[0], nil
}

// CreateMany reserves a block of IDs from the product counter and writes
// every product in the same transaction.
func (r *firestoreProductRepository) CreateMany(ctx context.Context, products []entity.Product) ([]entity.Product, error) {
	if len(products) == 0 {
		return []entity.Product{}, nil
	}

	counter := r.client.Collection(countersCollection).Doc(productsCollection)
	var created []entity.Product

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		created = make([]entity.Product, 0, len(products))

		next := int64(1)
		snap, err := tx.Get(counter)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}
		if err == nil {
			if v, ok := snap.Data()["next"].(int64); ok && v > 0 {
				next = v
			}
		}

		for _, p := range products {
			p.ID = next
			next++
			if err := tx.Set(r.doc(p.ID), toProductRecord(p)); err != nil {
				return err
			}
			created = append(created, p)
		}

		return tx.Set(counter, map[string]interface{}{"next": next})
	})
	if err != nil {
		return nil, errors.Internal("Failed to create products", err)
	}

	return created, nil
}

func (r *firestoreProductRepository) Update(ctx context.Context, product entity.Product) error {
	fields := productUpdateFields(product)
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}

	_, err := r.doc(product.ID).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Product", err)
		}
		return errors.Internal("Failed to update product", err)
	}

	return nil
}

func (r *firestoreProductRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete product", err)
	}

	return nil
}
