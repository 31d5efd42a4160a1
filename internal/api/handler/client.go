package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/coachos/coach-os-api/internal/domain"
	"github.com/coachos/coach-os-api/internal/usecases/syncing"
	"github.com/coachos/coach-os-api/pkg/apiErrors"
)

type CaptureLeadRequest struct {
	Email string `json:"email"`
}

// ListClients devolve os clientes da conta, mais recentes primeiro.
func ListClients(registry *syncing.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orchestrator, ok := sessionFrom(w, r, registry)
		if !ok {
			return
		}

		clients := orchestrator.Snapshot().Data.Clients
		if clients == nil {
			clients = []domain.Client{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(clients)
	}
}

func CreateClient(registry *syncing.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orchestrator, ok := sessionFrom(w, r, registry)
		if !ok {
			return
		}

		var client domain.Client
		if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		created, err := orchestrator.AddClient(client)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao realizar operação de armazenamento", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func UpdateClient(registry *syncing.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orchestrator, ok := sessionFrom(w, r, registry)
		if !ok {
			return
		}

		clientID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var updates domain.UpdateClientRequest
		if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		updated, err := orchestrator.UpdateClient(clientID, updates)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao realizar operação de armazenamento", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeleteClient(registry *syncing.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orchestrator, ok := sessionFrom(w, r, registry)
		if !ok {
			return
		}

		clientID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := orchestrator.DeleteClient(clientID); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao realizar operação de armazenamento", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// CaptureLead registra um lead vindo do formulário do site do coach.
func CaptureLead(registry *syncing.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orchestrator, ok := sessionFrom(w, r, registry)
		if !ok {
			return
		}

		var req CaptureLeadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		created, err := orchestrator.CaptureLead(req.Email)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao realizar operação de armazenamento", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}
