package syncing

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/coachos/coach-os-api/infrastructure/integrator/contentai"
	"github.com/coachos/coach-os-api/infrastructure/localstore"
	"github.com/coachos/coach-os-api/infrastructure/realtime"
	"github.com/coachos/coach-os-api/infrastructure/repository"
	"github.com/coachos/coach-os-api/internal/domain"
)

var ErrSessionClosed = errors.New("sessão encerrada")

// Dependencies agrupa tudo que o orquestrador precisa. Em modo remoto os
// repositórios e o bus vêm preenchidos; em modo local somente Local.
type Dependencies struct {
	Clients     repository.ClientRepository
	Posts       repository.SocialPostRepository
	Automations repository.AutomationRepository
	Blueprints  repository.BlueprintRepository
	Local       *localstore.Store
	Bus         *realtime.Bus
	Generator   contentai.Generator
	Notifier    Notifier
}

// Orchestrator é o contêiner de estado de uma conta autenticada. Construído
// no sign-in, descartado no sign-out. Toda escrita no estado em memória —
// resposta direta de uma mutação ou push do realtime — passa por um único
// laço de aplicação, eliminando a corrida entre os dois caminhos.
type Orchestrator struct {
	userID int
	deps   Dependencies

	ctx     context.Context
	cancel  context.CancelFunc
	applyCh chan func(*sessionState)

	mutex        sync.RWMutex
	state        sessionState
	unsubscribes []realtime.UnsubscribeFunc
}

func NewOrchestrator(userID int, deps Dependencies) *Orchestrator {
	return &Orchestrator{
		userID:  userID,
		deps:    deps,
		applyCh: make(chan func(*sessionState), 32),
		state:   sessionState{phase: PhaseAuthChecked},
	}
}

// remote indica se a conta opera contra o banco remoto ou contra o
// armazenamento local de fallback.
func (o *Orchestrator) remote() bool {
	return o.deps.Local == nil
}

// Start inicia o laço de aplicação. Deve ser chamado uma única vez.
func (o *Orchestrator) Start(ctx context.Context) {
	o.ctx, o.cancel = context.WithCancel(ctx)
	go o.run()
}

func (o *Orchestrator) run() {
	for {
		select {
		case <-o.ctx.Done():
			return
		case fn := <-o.applyCh:
			o.mutex.Lock()
			fn(&o.state)
			o.mutex.Unlock()
		}
	}
}

// apply enfileira uma escrita de estado sem aguardar o resultado. Usado
// pelos pushes do realtime.
func (o *Orchestrator) apply(fn func(*sessionState)) {
	select {
	case o.applyCh <- fn:
	case <-o.ctx.Done():
	}
}

// applyWait enfileira uma escrita e aguarda sua execução. Usado pelos
// handlers de mutação, que precisam do resultado para notificar o usuário.
func (o *Orchestrator) applyWait(fn func(*sessionState) error) error {
	done := make(chan error, 1)

	select {
	case o.applyCh <- func(s *sessionState) { done <- fn(s) }:
	case <-o.ctx.Done():
		return ErrSessionClosed
	}

	select {
	case err := <-done:
		return err
	case <-o.ctx.Done():
		return ErrSessionClosed
	}
}

// Snapshot devolve a visão corrente do estado para a View Layer.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	return Snapshot{
		Phase: o.state.phase,
		Data:  o.state.data.Clone(),
	}
}

// Load carrega as coleções da conta e decide entre NotOnboarded e Ready.
// Em caso de falha o estado permanece em Loading e a chamada pode ser
// repetida.
func (o *Orchestrator) Load() error {
	if err := o.applyWait(func(s *sessionState) error {
		s.phase = PhaseLoading
		return nil
	}); err != nil {
		return err
	}

	var (
		data      domain.ProjectData
		corrupted bool
		err       error
	)

	if o.remote() {
		data, err = o.loadRemote()
	} else {
		data, corrupted = o.loadLocal()
	}

	if err != nil {
		o.deps.Notifier.Error("Não foi possível carregar seus dados. Tente novamente")
		return err
	}

	if corrupted {
		o.deps.Notifier.Warning("Seu projeto salvo não pôde ser lido. Uma cópia foi preservada para recuperação")
	}

	if err := o.seedDefaultAutomations(&data); err != nil {
		o.deps.Notifier.Error("Não foi possível carregar seus dados. Tente novamente")
		return err
	}

	if err := o.applyWait(func(s *sessionState) error {
		s.data = data
		if s.data.Blueprint == nil {
			s.phase = PhaseNotOnboarded
		} else {
			s.phase = PhaseReady
		}
		return nil
	}); err != nil {
		return err
	}

	if o.remote() && o.deps.Bus != nil {
		// A recarga derruba as assinaturas anteriores antes de assinar de
		// novo: cada tabela mantém exatamente um canal por sessão.
		o.unsubscribeAll()
		o.subscribeAll()
	}

	return nil
}

func (o *Orchestrator) loadRemote() (domain.ProjectData, error) {
	var data domain.ProjectData

	blueprint, err := o.deps.Blueprints.Get(o.userID)
	if err != nil {
		return data, err
	}

	clients, err := o.deps.Clients.ListByUser(o.userID)
	if err != nil {
		return data, err
	}

	automations, err := o.deps.Automations.ListByUser(o.userID)
	if err != nil {
		return data, err
	}

	if blueprint != nil {
		posts, err := o.deps.Posts.ListByUser(o.userID)
		if err != nil {
			return data, err
		}
		blueprint.ContentPlan = posts
	}

	data.Blueprint = blueprint
	data.Clients = clients
	data.Automations = automations
	return data, nil
}

func (o *Orchestrator) loadLocal() (domain.ProjectData, bool) {
	saved, corrupted := o.deps.Local.LoadProject()
	if saved == nil {
		return domain.ProjectData{}, corrupted
	}

	return saved.Data, corrupted
}

// seedDefaultAutomations garante que toda conta tenha as automações padrão
// quando nenhuma existe ainda.
func (o *Orchestrator) seedDefaultAutomations(data *domain.ProjectData) error {
	if len(data.Automations) > 0 {
		return nil
	}

	if o.remote() {
		for _, automation := range domain.DefaultAutomations() {
			created, err := o.deps.Automations.Create(o.userID, automation)
			if err != nil {
				return err
			}
			data.Automations = append(data.Automations, *created)
		}
		return nil
	}

	for _, automation := range domain.DefaultAutomations() {
		automation.ID = newLocalID()
		data.Automations = append(data.Automations, automation)
	}

	return nil
}

// subscribeAll registra um canal por tabela. Qualquer mudança dispara a
// releitura da coleção inteira, que entra no laço de aplicação como
// qualquer outra escrita.
func (o *Orchestrator) subscribeAll() {
	subscriptions := map[string]func(){
		"clients":             o.refreshClients,
		"social_posts":        o.refreshPosts,
		"automations":         o.refreshAutomations,
		"business_blueprints": o.refreshBlueprint,
	}

	for table, refresh := range subscriptions {
		refresh := refresh
		unsubscribe, err := o.deps.Bus.SubscribeToChanges(o.ctx, table, func(string) {
			refresh()
		})
		if err != nil {
			logrus.WithError(err).WithField("table", table).Warn("Falha ao assinar o canal de mudanças")
			continue
		}

		o.mutex.Lock()
		o.unsubscribes = append(o.unsubscribes, unsubscribe)
		o.mutex.Unlock()
	}
}

func (o *Orchestrator) refreshClients() {
	clients, err := o.deps.Clients.ListByUser(o.userID)
	if err != nil {
		logrus.WithError(err).Warn("Falha ao reler clientes após mudança")
		return
	}

	o.apply(func(s *sessionState) {
		s.data.Clients = clients
	})
}

func (o *Orchestrator) refreshPosts() {
	posts, err := o.deps.Posts.ListByUser(o.userID)
	if err != nil {
		logrus.WithError(err).Warn("Falha ao reler posts após mudança")
		return
	}

	o.apply(func(s *sessionState) {
		if s.data.Blueprint != nil {
			s.data.Blueprint.ContentPlan = posts
		}
	})
}

func (o *Orchestrator) refreshAutomations() {
	automations, err := o.deps.Automations.ListByUser(o.userID)
	if err != nil {
		logrus.WithError(err).Warn("Falha ao reler automações após mudança")
		return
	}

	o.apply(func(s *sessionState) {
		s.data.Automations = automations
	})
}

func (o *Orchestrator) refreshBlueprint() {
	blueprint, err := o.deps.Blueprints.Get(o.userID)
	if err != nil {
		logrus.WithError(err).Warn("Falha ao reler o blueprint após mudança")
		return
	}

	o.apply(func(s *sessionState) {
		if blueprint != nil && s.data.Blueprint != nil {
			blueprint.ContentPlan = s.data.Blueprint.ContentPlan
		}
		s.data.Blueprint = blueprint
	})
}

// unsubscribeAll derruba as assinaturas registradas até aqui. Idempotente:
// as funções de unsubscribe do bus toleram chamadas repetidas.
func (o *Orchestrator) unsubscribeAll() {
	o.mutex.Lock()
	unsubscribes := o.unsubscribes
	o.unsubscribes = nil
	o.mutex.Unlock()

	for _, unsubscribe := range unsubscribes {
		unsubscribe()
	}
}

// Close encerra a sessão: derruba as assinaturas, limpa o estado e volta
// para Unauthenticated. Seguro de chamar mais de uma vez.
func (o *Orchestrator) Close() {
	if o.cancel != nil {
		o.cancel()
	}

	o.unsubscribeAll()

	o.mutex.Lock()
	o.state = sessionState{phase: PhaseUnauthenticated}
	o.mutex.Unlock()
}

// Notifications devolve o feedback pendente acumulado pelos handlers.
func (o *Orchestrator) Notifications() []Notification {
	return o.deps.Notifier.Drain()
}
