package entity

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pendiente"
	OrderShipped   OrderStatus = "Enviado"
	OrderDelivered OrderStatus = "Entregado"
	OrderCancelled OrderStatus = "Cancelado"
	OrderReturned  OrderStatus = "Devuelto"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderShipped, OrderDelivered, OrderCancelled, OrderReturned:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPaid     PaymentStatus = "Pagado"
	PaymentPending  PaymentStatus = "Pendiente"
	PaymentRefunded PaymentStatus = "Reembolsado"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPaid, PaymentPending, PaymentRefunded:
		return true
	}
	return false
}

// Order holds a snapshot of the cart at purchase time. Total is fixed at
// creation and never recomputed from live prices.
type Order struct {
	ID            string        `json:"id"`
	CustomerName  string        `json:"customerName"`
	Email         string        `json:"email"`
	Items         []CartItem    `json:"items"`
	Total         float64       `json:"total"`
	Status        OrderStatus   `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	Date          time.Time     `json:"date"`
}

func (o Order) Clone() Order {
	items := make([]CartItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = item.Clone()
	}
	o.Items = items
	return o
}

type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderFilter matches everything for empty fields or the "All" sentinel.
type OrderFilter struct {
	Status        string
	PaymentStatus string
}

const FilterAll = "All"
