package domain

import "time"

type ClientStatus string

const (
	ClientStatusLead    ClientStatus = "Lead"
	ClientStatusActive  ClientStatus = "Active"
	ClientStatusChurned ClientStatus = "Churned"
)

// Client representa um registro do CRM pertencente a uma conta de coach.
type Client struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Status      ClientStatus `json:"status"`
	Program     string       `json:"program"`
	JoinDate    string       `json:"join_date"`
	LastCheckIn string       `json:"last_check_in"`
	Progress    int          `json:"progress"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// UpdateClientRequest carrega uma atualização parcial. Campos nulos
// não alteram o valor persistido.
type UpdateClientRequest struct {
	Name        *string       `json:"name"`
	Email       *string       `json:"email"`
	Status      *ClientStatus `json:"status"`
	Program     *string       `json:"program"`
	JoinDate    *string       `json:"join_date"`
	LastCheckIn *string       `json:"last_check_in"`
	Progress    *int          `json:"progress"`
}

// ClampProgress limita o progresso ao intervalo [0, 100].
// A origem do dado (formulário ou importação) não garante o intervalo.
func ClampProgress(progress int) int {
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// Normalize aplica as regras de domínio antes da persistência.
func (c *Client) Normalize() {
	c.Progress = ClampProgress(c.Progress)
	if c.LastCheckIn == "" {
		c.LastCheckIn = "Never"
	}
	if c.Status == "" {
		c.Status = ClientStatusLead
	}
}
