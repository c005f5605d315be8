package domain

import "github.com/shopspring/decimal"

// Settings é o registro único de configurações da loja, sobrescrito por inteiro.
type Settings struct {
	StoreName        string          `json:"storeName"`
	StoreDescription string          `json:"storeDescription"`
	ContactEmail     string          `json:"contactEmail"`
	ShippingCost     decimal.Decimal `json:"shippingCost"`
}

// DashboardStats são os agregados do painel, calculados sob demanda.
type DashboardStats struct {
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	TotalOrders    int             `json:"totalOrders"`
	TotalCustomers int             `json:"totalCustomers"`
	NewOrders      int             `json:"newOrders"`
}
