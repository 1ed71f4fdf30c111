package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"gretastore/internal/domain/entity"
	"gretastore/internal/domain/repository"
	"gretastore/pkg/errors"
)

const ordersCollection = "orders"

type firestoreOrderRepository struct {
	client *firestore.Client
}

func NewFirestoreOrderRepository(client *firestore.Client) repository.OrderRepository {
	return &firestoreOrderRepository{
		client: client,
	}
}

func (r *firestoreOrderRepository) ListByDateDesc(ctx context.Context) ([]entity.Order, error) {
	iter := r.client.Collection(ordersCollection).OrderBy(colDate, firestore.Desc).Documents(ctx)
	defer iter.Stop()

	orders := []entity.Order{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate orders", err)
		}
		var record orderRecord
		if err := doc.DataTo(&record); err != nil {
			return nil, errors.Internal("Failed to parse order data", err)
		}
		record.ID = doc.Ref.ID
		orders = append(orders, record.toEntity())
	}

	return orders, nil
}

func (r *firestoreOrderRepository) Create(ctx context.Context, order entity.Order) (entity.Order, error) {
	doc := r.client.Collection(ordersCollection).NewDoc()
	if _, err := doc.Create(ctx, toOrderRecord(order)); err != nil {
		return entity.Order{}, errors.Internal("Failed to create order", err)
	}

	order.ID = doc.ID
	return order, nil
}

func (r *firestoreOrderRepository) CreateMany(ctx context.Context, orders []entity.Order) ([]entity.Order, error) {
	if len(orders) == 0 {
		return []entity.Order{}, nil
	}

	var created []entity.Order
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		created = make([]entity.Order, 0, len(orders))
		for _, o := range orders {
			doc := r.client.Collection(ordersCollection).NewDoc()
			if err := tx.Create(doc, toOrderRecord(o)); err != nil {
				return err
			}
			o.ID = doc.ID
			created = append(created, o)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Internal("Failed to create orders", err)
	}

	return created, nil
}

func (r *firestoreOrderRepository) UpdateStatus(ctx context.Context, id string, orderStatus entity.OrderStatus) error {
	_, err := r.client.Collection(ordersCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: colStatus, Value: string(orderStatus)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Order", err)
		}
		return errors.Internal("Failed to update order status", err)
	}

	return nil
}
