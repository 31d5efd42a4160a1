package syncing

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Registry gerencia o ciclo de vida dos orquestradores: um por conta
// autenticada, criado no sign-in e descartado no sign-out.
type Registry struct {
	ctx      context.Context
	base     Dependencies
	mutex    sync.RWMutex
	sessions map[int]*Orchestrator
}

func NewRegistry(ctx context.Context, base Dependencies) *Registry {
	return &Registry{
		ctx:      ctx,
		base:     base,
		sessions: make(map[int]*Orchestrator),
	}
}

// Open cria (ou reaproveita) a sessão da conta e dispara o carregamento
// inicial. Uma falha de carga não derruba a sessão: o estado fica em
// Loading e a carga pode ser repetida.
func (r *Registry) Open(userID int) *Orchestrator {
	r.mutex.Lock()
	if existing, ok := r.sessions[userID]; ok {
		r.mutex.Unlock()
		return existing
	}

	deps := r.base
	deps.Notifier = NewNotifier()

	orchestrator := NewOrchestrator(userID, deps)
	r.sessions[userID] = orchestrator
	r.mutex.Unlock()

	orchestrator.Start(r.ctx)
	if err := orchestrator.Load(); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("Falha na carga inicial da sessão")
	}

	return orchestrator
}

// Get devolve a sessão da conta, se houver.
func (r *Registry) Get(userID int) (*Orchestrator, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	orchestrator, ok := r.sessions[userID]
	return orchestrator, ok
}

// Close encerra a sessão da conta (sign-out). Seguro de chamar quando a
// sessão não existe.
func (r *Registry) Close(userID int) {
	r.mutex.Lock()
	orchestrator, ok := r.sessions[userID]
	delete(r.sessions, userID)
	r.mutex.Unlock()

	if ok {
		orchestrator.Close()
	}
}

// CloseAll encerra todas as sessões. Usado no shutdown do processo.
func (r *Registry) CloseAll() {
	r.mutex.Lock()
	sessions := r.sessions
	r.sessions = make(map[int]*Orchestrator)
	r.mutex.Unlock()

	for _, orchestrator := range sessions {
		orchestrator.Close()
	}
}
