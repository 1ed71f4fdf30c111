package entity

import "time"

type Analytics struct {
	TotalRevenue      float64  `json:"totalRevenue"`
	TotalOrders       int      `json:"totalOrders"`
	AverageOrderValue float64  `json:"averageOrderValue"`
	TopSellingProduct *Product `json:"topSellingProduct"`
}

type CustomerSummary struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	TotalOrders int       `json:"totalOrders"`
	TotalSpent  float64   `json:"totalSpent"`
	LastActive  time.Time `json:"lastActive"`
}

type Alerts struct {
	PendingOrders      int `json:"pendingOrders"`
	FastMovingProducts int `json:"fastMovingProducts"`
}
