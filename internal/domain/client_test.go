package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampProgress(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{
			name:     "Valor dentro do intervalo permanece inalterado",
			input:    42,
			expected: 42,
		},
		{
			name:     "Valor negativo satura em zero",
			input:    -15,
			expected: 0,
		},
		{
			name:     "Valor acima de cem satura em cem",
			input:    250,
			expected: 100,
		},
		{
			name:     "Limites do intervalo são aceitos",
			input:    100,
			expected: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClampProgress(tt.input))
		})
	}
}

func TestClient_Normalize(t *testing.T) {
	t.Run("Campos vazios recebem os padrões do domínio", func(t *testing.T) {
		client := Client{Name: "Ana", Progress: 180}
		client.Normalize()

		assert.Equal(t, 100, client.Progress)
		assert.Equal(t, "Never", client.LastCheckIn)
		assert.Equal(t, ClientStatusLead, client.Status)
	})

	t.Run("Campos preenchidos não são sobrescritos", func(t *testing.T) {
		client := Client{
			Name:        "Bruno",
			Status:      ClientStatusActive,
			LastCheckIn: "Yesterday",
			Progress:    55,
		}
		client.Normalize()

		assert.Equal(t, 55, client.Progress)
		assert.Equal(t, "Yesterday", client.LastCheckIn)
		assert.Equal(t, ClientStatusActive, client.Status)
	})
}

func TestProjectData_Clone(t *testing.T) {
	original := ProjectData{
		Blueprint: &BusinessBlueprint{
			BusinessName:      "IronWill Fitness",
			SuggestedPrograms: []string{"DadBod Destroyer"},
			ContentPlan:       []SocialPost{{ID: "p1", Day: 1}},
			WebsiteData: WebsiteData{
				Features:     []string{"Treinos personalizados"},
				Pricing:      []PricingTier{{Name: "Starter", Features: []string{"2 sessões/semana"}}},
				Testimonials: []Testimonial{{Name: "Carla", Quote: "Mudou minha rotina"}},
			},
		},
		Clients:     []Client{{ID: "c1", Name: "Ana"}},
		Automations: []Automation{{ID: "a1", Name: "Welcome"}},
	}

	clone := original.Clone()
	clone.Blueprint.BusinessName = "Outro"
	clone.Blueprint.ContentPlan[0].Day = 9
	clone.Clients[0].Name = "Mudou"
	clone.Automations[0].Name = "Mudou"
	clone.Blueprint.WebsiteData.Features[0] = "Mudou"
	clone.Blueprint.WebsiteData.Pricing[0].Features[0] = "Mudou"
	clone.Blueprint.WebsiteData.Testimonials[0].Quote = "Mudou"

	assert.Equal(t, "IronWill Fitness", original.Blueprint.BusinessName)
	assert.Equal(t, 1, original.Blueprint.ContentPlan[0].Day)
	assert.Equal(t, "Ana", original.Clients[0].Name)
	assert.Equal(t, "Welcome", original.Automations[0].Name)
	assert.Equal(t, "Treinos personalizados", original.Blueprint.WebsiteData.Features[0])
	assert.Equal(t, "2 sessões/semana", original.Blueprint.WebsiteData.Pricing[0].Features[0])
	assert.Equal(t, "Mudou minha rotina", original.Blueprint.WebsiteData.Testimonials[0].Quote)
}

func TestDefaultAutomations(t *testing.T) {
	automations := DefaultAutomations()

	assert.Len(t, automations, 2)
	assert.Equal(t, "Weekly Client Check-in", automations[0].Name)
	assert.Equal(t, AutomationChannelWhatsApp, automations[0].Channel)
	assert.Equal(t, "Every Monday 8AM", automations[0].Trigger)
	assert.Equal(t, "New Lead Welcome", automations[1].Name)
	assert.Equal(t, AutomationChannelEmail, automations[1].Channel)

	for _, automation := range automations {
		assert.Equal(t, AutomationStatusActive, automation.Status)
		assert.Equal(t, 0, automation.Stats.Sent)
		assert.Equal(t, "0%", automation.Stats.Opened)
	}
}
