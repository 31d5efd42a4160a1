package handler

import (
	"encoding/json"
	"net/http"

	"github.com/coachos/coach-os-api/internal/domain"
	"github.com/coachos/coach-os-api/internal/usecases/syncing"
	"github.com/coachos/coach-os-api/pkg/apiErrors"
)

// GetBlueprint devolve o blueprint da conta. 404 quando o onboarding
// ainda não aconteceu.
func GetBlueprint(registry *syncing.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orchestrator, ok := sessionFrom(w, r, registry)
		if !ok {
			return
		}

		blueprint := orchestrator.Snapshot().Data.Blueprint
		if blueprint == nil {
			apiErrors.WriteError(w, apiErrors.ErrUserNotFound, "Onboarding ainda não concluído", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(blueprint)
	}
}

// UpdateBlueprint aplica uma atualização parcial e regrava o registro.
func UpdateBlueprint(registry *syncing.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orchestrator, ok := sessionFrom(w, r, registry)
		if !ok {
			return
		}

		var updates domain.UpdateBlueprintRequest
		if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if err := orchestrator.UpdateBlueprint(updates); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao realizar operação de armazenamento", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(orchestrator.Snapshot().Data.Blueprint)
	}
}
