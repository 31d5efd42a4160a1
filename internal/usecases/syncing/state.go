package syncing

import "github.com/coachos/coach-os-api/internal/domain"

// Phase é o estado grosso da sessão que dirige a tela principal.
//
// AuthChecking → {Unauthenticated, AuthChecked}
// AuthChecked  → Loading → {NotOnboarded, Ready}
//
// Não há estado terminal: a sessão circula entre Unauthenticated e Ready.
type Phase string

const (
	PhaseAuthChecking    Phase = "AuthChecking"
	PhaseUnauthenticated Phase = "Unauthenticated"
	PhaseAuthChecked     Phase = "AuthChecked"
	PhaseLoading         Phase = "Loading"
	PhaseNotOnboarded    Phase = "NotOnboarded"
	PhaseReady           Phase = "Ready"
)

// sessionState é o dono exclusivo das coleções em memória da conta.
// Toda escrita passa pelo laço de aplicação do orquestrador.
type sessionState struct {
	phase Phase
	data  domain.ProjectData
}

// Snapshot é a visão somente leitura entregue à View Layer.
type Snapshot struct {
	Phase Phase              `json:"phase"`
	Data  domain.ProjectData `json:"data"`
}
