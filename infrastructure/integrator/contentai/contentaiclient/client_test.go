package contentaiclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachos/coach-os-api/internal/config"
)

func TestContentAIClient_SemChaveNaoVaiParaRede(t *testing.T) {
	client := NewClient(&config.Config{
		ContentAI: config.ContentAI{
			BaseURL: "https://generativelanguage.googleapis.com/v1beta",
			Model:   "gemini-2.5-flash",
			APIKey:  "",
		},
	})

	start := time.Now()

	_, err := client.GenerateBlueprint("Personal trainer focado em força")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = client.GenerateContentPlan("Strength Training for Busy Dads")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	// Sem chave a falha é imediata, nunca o timeout da requisição
	assert.Less(t, time.Since(start), time.Second)
}
