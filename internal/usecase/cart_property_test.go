package usecase

import (
	"context"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"gretastore/internal/domain/entity"
	"gretastore/internal/usecase/usecasetest"
)

func propertyStore(catalog []entity.Product) *StoreUseCase {
	s := NewStoreUseCase(StoreDeps{
		Products: &usecasetest.ProductRepo{Items: catalog},
		Orders:   &usecasetest.OrderRepo{},
		Profiles: &usecasetest.ProfileRepo{},
		Cart:     &usecasetest.CartRepo{},
		Auth:     usecasetest.NewAuth(),
	})
	s.Init(context.Background())
	return s
}

func TestCartProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	catalog := FallbackCatalog()
	ctx := context.Background()

	properties.Property("adding a product twice leaves one line with quantity 2", prop.ForAll(
		func(idx int) bool {
			s := propertyStore(catalog)
			defer s.Close()
			p := catalog[idx]
			s.AddToCart(ctx, p)
			s.AddToCart(ctx, p)
			cart := s.Cart()
			return len(cart) == 1 && cart[0].ID == p.ID && cart[0].Quantity == 2
		},
		gen.IntRange(0, len(catalog)-1),
	))

	properties.Property("cart total equals sum of price times quantity", prop.ForAll(
		func(picks []int) bool {
			s := propertyStore(catalog)
			defer s.Close()
			for _, idx := range picks {
				s.AddToCart(ctx, catalog[idx])
			}
			var want float64
			for _, item := range s.Cart() {
				want += item.Price * float64(item.Quantity)
			}
			return math.Abs(s.CartTotal()-want) < 0.005
		},
		gen.SliceOf(gen.IntRange(0, len(catalog)-1)),
	))

	properties.Property("adding then removing a new product leaves the total unchanged", prop.ForAll(
		func(picks []int, extra int) bool {
			s := propertyStore(catalog)
			defer s.Close()
			for _, idx := range picks {
				if idx != extra {
					s.AddToCart(ctx, catalog[idx])
				}
			}
			before := s.CartTotal()
			s.AddToCart(ctx, catalog[extra])
			s.AddToCart(ctx, catalog[extra])
			s.RemoveFromCart(ctx, catalog[extra].ID)
			return math.Abs(s.CartTotal()-before) < 0.005
		},
		gen.SliceOf(gen.IntRange(0, len(catalog)-1)),
		gen.IntRange(0, len(catalog)-1),
	))

	properties.Property("remove drops every unit of the product", prop.ForAll(
		func(idx int, qty int) bool {
			s := propertyStore(catalog)
			defer s.Close()
			s.AddQuantityToCart(ctx, catalog[idx], qty)
			s.RemoveFromCart(ctx, catalog[idx].ID)
			for _, item := range s.Cart() {
				if item.ID == catalog[idx].ID {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, len(catalog)-1),
		gen.IntRange(2, 20),
	))

	properties.TestingRun(t)
}
