package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/coachos/coach-os-api/internal/usecases/syncing"
	"github.com/coachos/coach-os-api/pkg/apiErrors"
)

// GetProject devolve a fase da sessão e o estado corrente da conta. É a
// única leitura de que a View Layer precisa para renderizar.
func GetProject(registry *syncing.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orchestrator, ok := sessionFrom(w, r, registry)
		if !ok {
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(orchestrator.Snapshot()); err != nil {
			logrus.Error(err)
		}
	}
}

// ReloadProject repete a carga inicial. Usado quando a carga falhou e a
// sessão ficou presa em Loading.
func ReloadProject(registry *syncing.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orchestrator, ok := sessionFrom(w, r, registry)
		if !ok {
			return
		}

		if err := orchestrator.Load(); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao carregar os dados da conta", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(orchestrator.Snapshot())
	}
}

// GetNotifications entrega e limpa o feedback pendente das mutações.
func GetNotifications(registry *syncing.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orchestrator, ok := sessionFrom(w, r, registry)
		if !ok {
			return
		}

		notifications := orchestrator.Notifications()
		if notifications == nil {
			notifications = []syncing.Notification{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(notifications)
	}
}
