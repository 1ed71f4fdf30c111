package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"gretastore/internal/domain/entity"
	"gretastore/pkg/logger"
)

const historicalOrderCount = 50

// Delivered is listed three times so most synthetic orders end up delivered.
var historicalStatuses = []entity.OrderStatus{
	entity.OrderDelivered,
	entity.OrderDelivered,
	entity.OrderDelivered,
	entity.OrderShipped,
	entity.OrderCancelled,
}

type HistoryResult struct {
	Orders []entity.Order `json:"orders"`
	// Persisted is false when the backend rejected the batch and the orders
	// only live in memory under local IDs.
	Persisted bool `json:"persisted"`
}

// GenerateHistoricalOrders synthesizes a year of demo orders for the admin
// dashboard.
func (s *StoreUseCase) GenerateHistoricalOrders(ctx context.Context) HistoryResult {
	source := s.Products()
	if len(source) == 0 {
		source = FallbackCatalog()
	}

	now := s.now().UTC()
	orders := make([]entity.Order, 0, historicalOrderCount)
	for i := 0; i < historicalOrderCount; i++ {
		orders = append(orders, s.synthesizeOrder(i, now, source))
	}

	result := HistoryResult{Persisted: true}
	created, err := s.orderRepo.CreateMany(ctx, orders)
	if err != nil {
		logger.Warn("Bulk insert of historical orders failed, keeping them local: %v", err)
		for i := range orders {
			orders[i].ID = "local-" + uuid.NewString()
		}
		created = orders
		result.Persisted = false
	}

	state := entity.SyncConfirmed
	if !result.Persisted {
		state = entity.SyncFailed
	}

	s.mu.Lock()
	merged := make([]entity.Order, 0, len(created)+len(s.orders))
	merged = append(merged, cloneOrders(created)...)
	merged = append(merged, s.orders...)
	sortOrdersByDateDesc(merged)
	s.orders = merged
	for _, o := range created {
		s.setSyncLocked(entity.KindOrder, o.ID, state)
	}
	s.mu.Unlock()
	s.notifier.Notify(EventOrdersUpdated)

	result.Orders = cloneOrders(created)
	return result
}

func (s *StoreUseCase) synthesizeOrder(i int, now time.Time, source []entity.Product) entity.Order {
	daysAgo := s.randIntn(365)
	date := now.Add(-time.Duration(daysAgo) * 24 * time.Hour)

	itemCount := s.randIntn(4) + 1
	items := make([]entity.CartItem, 0, itemCount)
	var total float64
	for j := 0; j < itemCount; j++ {
		product := source[s.randIntn(len(source))]
		quantity := s.randIntn(3) + 1
		items = append(items, entity.CartItem{Product: product.Clone(), Quantity: quantity})
		total += product.Price * float64(quantity)
	}

	return entity.Order{
		CustomerName:  fmt.Sprintf("Cliente Demo %d", i),
		Email:         fmt.Sprintf("cliente%d@demo.com", i),
		Items:         items,
		Total:         roundCents(total),
		Status:        historicalStatuses[s.randIntn(len(historicalStatuses))],
		PaymentStatus: entity.PaymentPaid,
		Date:          date,
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
