package domain

import "time"

type AutomationChannel string

const (
	AutomationChannelEmail    AutomationChannel = "Email"
	AutomationChannelWhatsApp AutomationChannel = "WhatsApp"
	AutomationChannelSMS      AutomationChannel = "SMS"
)

type AutomationStatus string

const (
	AutomationStatusActive AutomationStatus = "Active"
	AutomationStatusPaused AutomationStatus = "Paused"
)

// AutomationStats acumula os contadores de execução da automação.
type AutomationStats struct {
	Sent   int    `json:"sent"`
	Opened string `json:"opened"`
}

// Automation é uma definição de fluxo de marketing. O gatilho é texto livre,
// não é interpretado pelo sistema.
type Automation struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Channel   AutomationChannel `json:"type"`
	Trigger   string            `json:"trigger"`
	Status    AutomationStatus  `json:"status"`
	Stats     AutomationStats   `json:"stats"`
	CreatedAt time.Time         `json:"created_at"`
}

type UpdateAutomationRequest struct {
	Name    *string            `json:"name"`
	Channel *AutomationChannel `json:"type"`
	Trigger *string            `json:"trigger"`
	Status  *AutomationStatus  `json:"status"`
	Stats   *AutomationStats   `json:"stats"`
}

// DefaultAutomations retorna as automações criadas para toda conta nova.
func DefaultAutomations() []Automation {
	return []Automation{
		{
			Name:    "Weekly Client Check-in",
			Channel: AutomationChannelWhatsApp,
			Trigger: "Every Monday 8AM",
			Status:  AutomationStatusActive,
			Stats:   AutomationStats{Sent: 0, Opened: "0%"},
		},
		{
			Name:    "New Lead Welcome",
			Channel: AutomationChannelEmail,
			Trigger: "On Sign Up",
			Status:  AutomationStatusActive,
			Stats:   AutomationStats{Sent: 0, Opened: "0%"},
		},
	}
}
