package entity

const CategoryAll = "Todo"

// Product is a catalog entry. IDs handed out by the backend are small
// sequential integers; IDs assigned locally before the backend answers are
// millisecond timestamps.
type Product struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	Category          string  `json:"category"`
	Image             string  `json:"image"`
	Rating            float64 `json:"rating"`
	Sales             int     `json:"sales"`
	Description       string  `json:"description,omitempty"`
	NutritionInfo     string  `json:"nutritionInfo,omitempty"`
	ShippingInfo      string  `json:"shippingInfo,omitempty"`
	RelatedProductIDs []int64 `json:"relatedProductIds,omitempty"`
}

// ProductDraft is what an admin submits when creating a product; rating and
// sales are set by the store.
type ProductDraft struct {
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	Category          string  `json:"category"`
	Image             string  `json:"image"`
	Description       string  `json:"description,omitempty"`
	NutritionInfo     string  `json:"nutritionInfo,omitempty"`
	ShippingInfo      string  `json:"shippingInfo,omitempty"`
	RelatedProductIDs []int64 `json:"relatedProductIds,omitempty"`
}

// Clone returns a copy that shares no slices with p.
func (p Product) Clone() Product {
	if p.RelatedProductIDs != nil {
		p.RelatedProductIDs = append([]int64(nil), p.RelatedProductIDs...)
	}
	return p
}

type ProductSort string

const (
	SortDefault   ProductSort = "default"
	SortPriceAsc  ProductSort = "asc"
	SortPriceDesc ProductSort = "desc"
)

type ProductFilter struct {
	Category string
	Search   string
	Sort     ProductSort
}
