package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/coachos/coach-os-api/internal/domain"
	"github.com/coachos/coach-os-api/internal/usecases/syncing"
	"github.com/coachos/coach-os-api/pkg/apiErrors"
)

// ListAutomations devolve as automações da conta, mais recentes primeiro.
func ListAutomations(registry *syncing.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orchestrator, ok := sessionFrom(w, r, registry)
		if !ok {
			return
		}

		automations := orchestrator.Snapshot().Data.Automations
		if automations == nil {
			automations = []domain.Automation{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(automations)
	}
}

func CreateAutomation(registry *syncing.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orchestrator, ok := sessionFrom(w, r, registry)
		if !ok {
			return
		}

		var automation domain.Automation
		if err := json.NewDecoder(r.Body).Decode(&automation); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		created, err := orchestrator.AddAutomation(automation)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao realizar operação de armazenamento", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

// ToggleAutomation alterna o status da automação entre Active e Paused.
func ToggleAutomation(registry *syncing.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orchestrator, ok := sessionFrom(w, r, registry)
		if !ok {
			return
		}

		automationID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		updated, err := orchestrator.ToggleAutomation(automationID)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao realizar operação de armazenamento", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}
