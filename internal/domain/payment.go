package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusCompleted PaymentStatus = "Completed"
	PaymentStatusFailed    PaymentStatus = "Failed"
)

// Payment é um registro somente leitura para a visão financeira.
type Payment struct {
	ID        string        `json:"id"`
	Amount    float64       `json:"amount"`
	Status    PaymentStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// MonthlyRevenue é um ponto da série de receita mensal do dashboard.
type MonthlyRevenue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// DashboardStats agrega os contadores exibidos no topo do dashboard.
type DashboardStats struct {
	TotalClients     int     `json:"total_clients"`
	ActiveClients    int     `json:"active_clients"`
	TotalRevenue     float64 `json:"total_revenue"`
	TotalPosts       int     `json:"total_posts"`
	TotalAutomations int     `json:"total_automations"`
}
