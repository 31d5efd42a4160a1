package handler

import (
	"encoding/json"
	"net/http"

	"github.com/coachos/coach-os-api/internal/domain"
	"github.com/coachos/coach-os-api/internal/usecases/syncing"
	"github.com/coachos/coach-os-api/pkg/apiErrors"
)

type GenerateBlueprintRequest struct {
	Description string `json:"description"`
}

// GenerateBlueprint produz o blueprint a partir da descrição do negócio,
// sem persistir nada. O resultado volta para o usuário revisar.
func GenerateBlueprint(registry *syncing.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orchestrator, ok := sessionFrom(w, r, registry)
		if !ok {
			return
		}

		var req GenerateBlueprintRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		blueprint := orchestrator.GenerateBlueprint(req.Description)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(blueprint)
	}
}

// CompleteOnboarding persiste o blueprint confirmado e inicializa a conta.
func CompleteOnboarding(registry *syncing.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orchestrator, ok := sessionFrom(w, r, registry)
		if !ok {
			return
		}

		var blueprint domain.BusinessBlueprint
		if err := json.NewDecoder(r.Body).Decode(&blueprint); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if err := orchestrator.CompleteOnboarding(blueprint); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao concluir o onboarding", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(orchestrator.Snapshot())
	}
}
