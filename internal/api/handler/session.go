package handler

import (
	"net/http"

	"github.com/coachos/coach-os-api/internal/domain"
	"github.com/coachos/coach-os-api/internal/usecases/syncing"
	"github.com/coachos/coach-os-api/pkg/apiErrors"
	"github.com/coachos/coach-os-api/pkg/middleware"
)

// sessionFrom resolve o orquestrador da conta autenticada. A sessão é
// aberta sob demanda quando o token é válido mas o processo reiniciou
// desde o sign-in.
func sessionFrom(w http.ResponseWriter, r *http.Request, registry *syncing.Registry) (*syncing.Orchestrator, bool) {
	userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return nil, false
	}

	if orchestrator, ok := registry.Get(userClaims.UserID); ok {
		return orchestrator, true
	}

	return registry.Open(userClaims.UserID), true
}

// userIDFrom extrai o ID da conta autenticada do contexto da requisição.
func userIDFrom(w http.ResponseWriter, r *http.Request) (int, bool) {
	userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return 0, false
	}

	return userClaims.UserID, true
}
