package repository

import (
	"time"

	"gretastore/internal/domain/entity"
)

// Every backend column name lives in this file. Records mirror the hosted
// schema (snake_case); entities are what the rest of the service sees.

type productRecord struct {
	ID                int64   `firestore:"id" json:"id"`
	Name              string  `firestore:"name" json:"name"`
	Price             float64 `firestore:"price" json:"price"`
	Category          string  `firestore:"category" json:"category"`
	Image             string  `firestore:"image" json:"image"`
	Rating            float64 `firestore:"rating" json:"rating"`
	Sales             int     `firestore:"sales" json:"sales"`
	Description       string  `firestore:"description,omitempty" json:"description,omitempty"`
	NutritionInfo     string  `firestore:"nutrition_info,omitempty" json:"nutrition_info,omitempty"`
	ShippingInfo      string  `firestore:"shipping_info,omitempty" json:"shipping_info,omitempty"`
	RelatedProductIDs []int64 `firestore:"related_product_ids,omitempty" json:"related_product_ids,omitempty"`
}

// orderItemRecord is one line of the items snapshot stored with an order.
type orderItemRecord struct {
	productRecord
	Quantity int `firestore:"quantity" json:"quantity"`
}

type orderRecord struct {
	ID            string            `firestore:"-" json:"id"`
	CustomerName  string            `firestore:"customer_name" json:"customer_name"`
	Email         string            `firestore:"email" json:"email"`
	Items         []orderItemRecord `firestore:"items" json:"items"`
	Total         float64           `firestore:"total" json:"total"`
	Status        string            `firestore:"status" json:"status"`
	PaymentStatus string            `firestore:"payment_status" json:"payment_status"`
	Date          time.Time         `firestore:"date" json:"date"`
}

type profileRecord struct {
	ID       string `firestore:"id" json:"id"`
	FullName string `firestore:"full_name" json:"full_name"`
	Role     string `firestore:"role" json:"role"`
	Phone    string `firestore:"phone" json:"phone"`
}

// Backend column names used in partial updates and queries.
const (
	colName        = "name"
	colPrice       = "price"
	colCategory    = "category"
	colImage       = "image"
	colDescription = "description"
	colNutrition   = "nutrition_info"
	colShipping    = "shipping_info"
	colRelated     = "related_product_ids"
	colStatus      = "status"
	colDate        = "date"
	colFullName    = "full_name"
	colPhone       = "phone"
	colRole        = "role"
)

func toProductRecord(p entity.Product) productRecord {
	return productRecord{
		ID:                p.ID,
		Name:              p.Name,
		Price:             p.Price,
		Category:          p.Category,
		Image:             p.Image,
		Rating:            p.Rating,
		Sales:             p.Sales,
		Description:       p.Description,
		NutritionInfo:     p.NutritionInfo,
		ShippingInfo:      p.ShippingInfo,
		RelatedProductIDs: append([]int64(nil), p.RelatedProductIDs...),
	}
}

func (r productRecord) toEntity() entity.Product {
	return entity.Product{
		ID:                r.ID,
		Name:              r.Name,
		Price:             r.Price,
		Category:          r.Category,
		Image:             r.Image,
		Rating:            r.Rating,
		Sales:             r.Sales,
		Description:       r.Description,
		NutritionInfo:     r.NutritionInfo,
		ShippingInfo:      r.ShippingInfo,
		RelatedProductIDs: append([]int64(nil), r.RelatedProductIDs...),
	}
}

// productUpdateFields lists the columns an admin edit writes. Sales and
// rating are owned by the store and never overwritten from an edit.
func productUpdateFields(p entity.Product) map[string]interface{} {
	related := p.RelatedProductIDs
	if related == nil {
		related = []int64{}
	}
	return map[string]interface{}{
		colName:        p.Name,
		colPrice:       p.Price,
		colCategory:    p.Category,
		colImage:       p.Image,
		colDescription: p.Description,
		colNutrition:   p.NutritionInfo,
		colShipping:    p.ShippingInfo,
		colRelated:     related,
	}
}

func toOrderRecord(o entity.Order) orderRecord {
	items := make([]orderItemRecord, len(o.Items))
	for i, item := range o.Items {
		items[i] = orderItemRecord{productRecord: toProductRecord(item.Product), Quantity: item.Quantity}
	}
	return orderRecord{
		ID:            o.ID,
		CustomerName:  o.CustomerName,
		Email:         o.Email,
		Items:         items,
		Total:         o.Total,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		Date:          o.Date.UTC(),
	}
}

func (r orderRecord) toEntity() entity.Order {
	items := make([]entity.CartItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = entity.CartItem{Product: item.productRecord.toEntity(), Quantity: item.Quantity}
	}
	return entity.Order{
		ID:            r.ID,
		CustomerName:  r.CustomerName,
		Email:         r.Email,
		Items:         items,
		Total:         r.Total,
		Status:        entity.OrderStatus(r.Status),
		PaymentStatus: entity.PaymentStatus(r.PaymentStatus),
		Date:          r.Date.UTC(),
	}
}

func toProfileRecord(p entity.Profile) profileRecord {
	return profileRecord{
		ID:       p.ID,
		FullName: p.FullName,
		Role:     string(p.Role),
		Phone:    p.Phone,
	}
}

func (r profileRecord) toEntity() entity.Profile {
	return entity.Profile{
		ID:       r.ID,
		FullName: r.FullName,
		Role:     entity.Role(r.Role),
		Phone:    r.Phone,
	}
}
