package usecase

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"gretastore/internal/domain/entity"
	"gretastore/pkg/errors"
	"gretastore/pkg/logger"
)

const (
	defaultRating       = 5.0
	defaultRelatedLimit = 6
)

func (s *StoreUseCase) loadProducts(ctx context.Context) {
	products, err := s.productRepo.List(ctx)
	if err == nil && len(products) > 0 {
		s.mu.Lock()
		s.products = products
		s.mu.Unlock()
		return
	}

	if err != nil {
		logger.Error("Fetch products failed, using fallback catalog: %v", err)
	} else {
		logger.Info("Product table empty, using fallback catalog")
	}

	s.mu.Lock()
	s.products = FallbackCatalog()
	s.mu.Unlock()

	s.background.Add(1)
	go func() {
		defer s.background.Done()
		s.seedCatalog(context.WithoutCancel(ctx))
	}()
}

// seedCatalog writes the fallback catalog to the backend so later loads find
// it there. Failures are only logged.
func (s *StoreUseCase) seedCatalog(ctx context.Context) {
	seed := FallbackCatalog()
	created, err := s.productRepo.CreateMany(ctx, seed)
	if err != nil {
		logger.Warn("Seeding fallback catalog failed: %v", err)
		return
	}
	if len(created) != len(seed) {
		logger.Warn("Seeding returned %d products for %d inserted", len(created), len(seed))
		return
	}

	s.mu.Lock()
	for i, fallback := range seed {
		if idx := indexOfProduct(s.products, fallback.ID); idx >= 0 {
			s.products[idx] = created[i]
		}
	}
	s.mu.Unlock()

	logger.Info("Seeded %d fallback products", len(created))
	s.notifier.Notify(EventProductsUpdated)
}

// AddProduct inserts the draft under a temporary ID right away and swaps in
// the backend record once it is created. When the backend fails the temporary
// entry stays and its sync state is failed.
func (s *StoreUseCase) AddProduct(ctx context.Context, draft entity.ProductDraft) (entity.Product, error) {
	product := entity.Product{
		Name:              draft.Name,
		Price:             draft.Price,
		Category:          draft.Category,
		Image:             draft.Image,
		Rating:            defaultRating,
		Sales:             0,
		Description:       draft.Description,
		NutritionInfo:     draft.NutritionInfo,
		ShippingInfo:      draft.ShippingInfo,
		RelatedProductIDs: append([]int64(nil), draft.RelatedProductIDs...),
	}

	s.mu.Lock()
	product.ID = s.temporaryProductIDLocked()
	tempID := product.ID
	s.products = append(s.products, product.Clone())
	s.setSyncLocked(entity.KindProduct, idString(tempID), entity.SyncPending)
	s.mu.Unlock()
	s.notifier.Notify(EventProductsUpdated)

	created, err := s.productRepo.Create(ctx, product)
	if err != nil {
		s.setSync(entity.KindProduct, idString(tempID), entity.SyncFailed)
		return product, errors.Unavailable("Failed to create product", err)
	}

	s.mu.Lock()
	if idx := indexOfProduct(s.products, tempID); idx >= 0 {
		s.products[idx] = created.Clone()
	}
	delete(s.sync, syncKey(entity.KindProduct, idString(tempID)))
	s.setSyncLocked(entity.KindProduct, idString(created.ID), entity.SyncConfirmed)
	s.mu.Unlock()
	s.notifier.Notify(EventProductsUpdated)

	return created, nil
}

func (s *StoreUseCase) temporaryProductIDLocked() int64 {
	id := s.now().UnixMilli()
	for indexOfProduct(s.products, id) >= 0 {
		id++
	}
	return id
}

// UpdateProduct replaces the product in memory, then asks the backend to
// persist it. Memory is not rolled back on failure.
func (s *StoreUseCase) UpdateProduct(ctx context.Context, product entity.Product) error {
	key := idString(product.ID)

	s.mu.Lock()
	idx := indexOfProduct(s.products, product.ID)
	if idx < 0 {
		s.mu.Unlock()
		return errors.NotFound("Product", nil)
	}
	s.products[idx] = product.Clone()
	s.setSyncLocked(entity.KindProduct, key, entity.SyncPending)
	s.mu.Unlock()
	s.notifier.Notify(EventProductsUpdated)

	if err := s.productRepo.Update(ctx, product); err != nil {
		s.setSync(entity.KindProduct, key, entity.SyncFailed)
		return errors.Unavailable("Failed to update product", err)
	}
	s.setSync(entity.KindProduct, key, entity.SyncConfirmed)
	return nil
}

func (s *StoreUseCase) DeleteProduct(ctx context.Context, id int64) error {
	key := idString(id)

	s.mu.Lock()
	idx := indexOfProduct(s.products, id)
	if idx < 0 {
		s.mu.Unlock()
		return errors.NotFound("Product", nil)
	}
	s.products = append(s.products[:idx], s.products[idx+1:]...)
	s.setSyncLocked(entity.KindProduct, key, entity.SyncPending)
	s.mu.Unlock()
	s.notifier.Notify(EventProductsUpdated)

	if err := s.productRepo.Delete(ctx, id); err != nil {
		s.setSync(entity.KindProduct, key, entity.SyncFailed)
		return errors.Unavailable("Failed to delete product", err)
	}
	s.setSync(entity.KindProduct, key, entity.SyncConfirmed)
	return nil
}

func (s *StoreUseCase) ProductByID(id int64) (entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := indexOfProduct(s.products, id)
	if idx < 0 {
		return entity.Product{}, errors.NotFound("Product", nil)
	}
	return s.products[idx].Clone(), nil
}

// QueryProducts filters by category and case-insensitive name, then sorts by
// price. The default sort keeps catalog order.
func (s *StoreUseCase) QueryProducts(filter entity.ProductFilter) []entity.Product {
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	s.mu.RLock()
	var out []entity.Product
	for _, p := range s.products {
		if filter.Category != "" && filter.Category != entity.CategoryAll && p.Category != filter.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		out = append(out, p.Clone())
	}
	s.mu.RUnlock()

	switch filter.Sort {
	case entity.SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case entity.SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	}
	return out
}

// RelatedProducts lists the manually linked products first, then fills up
// with products from the same category.
func (s *StoreUseCase) RelatedProducts(id int64, limit int) ([]entity.Product, error) {
	if limit <= 0 {
		limit = defaultRelatedLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := indexOfProduct(s.products, id)
	if idx < 0 {
		return nil, errors.NotFound("Product", nil)
	}
	product := s.products[idx]

	seen := map[int64]bool{product.ID: true}
	var out []entity.Product
	for _, relatedID := range product.RelatedProductIDs {
		if len(out) == limit {
			return out, nil
		}
		if seen[relatedID] {
			continue
		}
		if j := indexOfProduct(s.products, relatedID); j >= 0 {
			seen[relatedID] = true
			out = append(out, s.products[j].Clone())
		}
	}
	for _, p := range s.products {
		if len(out) == limit {
			break
		}
		if seen[p.ID] || p.Category != product.Category {
			continue
		}
		seen[p.ID] = true
		out = append(out, p.Clone())
	}
	return out, nil
}

func indexOfProduct(products []entity.Product, id int64) int {
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}
