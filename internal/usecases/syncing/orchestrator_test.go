package syncing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	contentaimocks "github.com/coachos/coach-os-api/infrastructure/integrator/contentai/mocks"
	"github.com/coachos/coach-os-api/infrastructure/repository/mocks"
	"github.com/coachos/coach-os-api/internal/domain"
)

type remoteMocks struct {
	clients     *mocks.MockClientRepository
	posts       *mocks.MockSocialPostRepository
	automations *mocks.MockAutomationRepository
	blueprints  *mocks.MockBlueprintRepository
	generator   *contentaimocks.MockGenerator
}

func newRemoteOrchestrator(t *testing.T) (*Orchestrator, remoteMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := remoteMocks{
		clients:     mocks.NewMockClientRepository(ctrl),
		posts:       mocks.NewMockSocialPostRepository(ctrl),
		automations: mocks.NewMockAutomationRepository(ctrl),
		blueprints:  mocks.NewMockBlueprintRepository(ctrl),
		generator:   contentaimocks.NewMockGenerator(ctrl),
	}

	orchestrator := NewOrchestrator(1, Dependencies{
		Clients:     m.clients,
		Posts:       m.posts,
		Automations: m.automations,
		Blueprints:  m.blueprints,
		Generator:   m.generator,
		Notifier:    NewNotifier(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	orchestrator.Start(ctx)

	return orchestrator, m
}

func TestOrchestrator_Load(t *testing.T) {
	t.Run("Conta nova sem blueprint deve ficar em NotOnboarded e receber automações padrão", func(t *testing.T) {
		orchestrator, m := newRemoteOrchestrator(t)

		m.blueprints.EXPECT().Get(1).Return(nil, nil)
		m.clients.EXPECT().ListByUser(1).Return(nil, nil)
		m.automations.EXPECT().ListByUser(1).Return(nil, nil)

		// Sem automações existentes, as duas padrão são criadas
		m.automations.EXPECT().
			Create(1, gomock.Any()).
			DoAndReturn(func(_ int, automation domain.Automation) (*domain.Automation, error) {
				automation.ID = "auto-" + automation.Name
				return &automation, nil
			}).
			Times(2)

		require.NoError(t, orchestrator.Load())

		snapshot := orchestrator.Snapshot()
		assert.Equal(t, PhaseNotOnboarded, snapshot.Phase)
		assert.Nil(t, snapshot.Data.Blueprint)
		require.Len(t, snapshot.Data.Automations, 2)
		assert.Equal(t, "Weekly Client Check-in", snapshot.Data.Automations[0].Name)
		assert.Equal(t, "New Lead Welcome", snapshot.Data.Automations[1].Name)
	})

	t.Run("Conta com blueprint deve carregar o plano de conteúdo e ficar Ready", func(t *testing.T) {
		orchestrator, m := newRemoteOrchestrator(t)

		blueprint := &domain.BusinessBlueprint{BusinessName: "IronWill Fitness", Niche: "Strength"}
		plan := []domain.SocialPost{{ID: "p1", Day: 1, Hook: "Hook"}}

		m.blueprints.EXPECT().Get(1).Return(blueprint, nil)
		m.clients.EXPECT().ListByUser(1).Return([]domain.Client{{ID: "c1", Name: "Ana"}}, nil)
		m.automations.EXPECT().ListByUser(1).Return([]domain.Automation{{ID: "a1", Name: "Welcome"}}, nil)
		m.posts.EXPECT().ListByUser(1).Return(plan, nil)

		require.NoError(t, orchestrator.Load())

		snapshot := orchestrator.Snapshot()
		assert.Equal(t, PhaseReady, snapshot.Phase)
		require.NotNil(t, snapshot.Data.Blueprint)
		assert.Equal(t, plan, snapshot.Data.Blueprint.ContentPlan)
		assert.Len(t, snapshot.Data.Clients, 1)
	})

	t.Run("Falha na carga deve notificar e permitir nova tentativa", func(t *testing.T) {
		orchestrator, m := newRemoteOrchestrator(t)

		m.blueprints.EXPECT().Get(1).Return(nil, assert.AnError)

		assert.Error(t, orchestrator.Load())

		notifications := orchestrator.Notifications()
		require.Len(t, notifications, 1)
		assert.Equal(t, NotificationError, notifications[0].Type)

		// A sessão fica em Loading e a carga pode ser repetida
		assert.Equal(t, PhaseLoading, orchestrator.Snapshot().Phase)
	})
}

func TestOrchestrator_AddClient(t *testing.T) {
	t.Run("Cliente criado deve entrar no topo da lista com uma notificação de sucesso", func(t *testing.T) {
		orchestrator, m := newRemoteOrchestrator(t)

		m.clients.EXPECT().
			Create(1, gomock.Any()).
			DoAndReturn(func(_ int, client domain.Client) (*domain.Client, error) {
				client.ID = "c-new"
				return &client, nil
			})

		created, err := orchestrator.AddClient(domain.Client{Name: "Bruno", Status: domain.ClientStatusActive})
		require.NoError(t, err)
		assert.Equal(t, "c-new", created.ID)
		assert.NotEmpty(t, created.JoinDate)

		snapshot := orchestrator.Snapshot()
		require.Len(t, snapshot.Data.Clients, 1)
		assert.Equal(t, "c-new", snapshot.Data.Clients[0].ID)

		notifications := orchestrator.Notifications()
		require.Len(t, notifications, 1)
		assert.Equal(t, NotificationSuccess, notifications[0].Type)
		assert.Equal(t, "Client added successfully", notifications[0].Message)
	})

	t.Run("Data de entrada inválida deve ser rejeitada antes da persistência", func(t *testing.T) {
		orchestrator, _ := newRemoteOrchestrator(t)

		_, err := orchestrator.AddClient(domain.Client{Name: "Bruno", JoinDate: "15/01/2024"})
		assert.Error(t, err)

		notifications := orchestrator.Notifications()
		require.Len(t, notifications, 1)
		assert.Equal(t, NotificationError, notifications[0].Type)
	})

	t.Run("Falha do repositório deve gerar exatamente uma notificação de erro", func(t *testing.T) {
		orchestrator, m := newRemoteOrchestrator(t)

		m.clients.EXPECT().Create(1, gomock.Any()).Return(nil, assert.AnError)

		_, err := orchestrator.AddClient(domain.Client{Name: "Bruno"})
		assert.Error(t, err)

		notifications := orchestrator.Notifications()
		require.Len(t, notifications, 1)
		assert.Equal(t, NotificationError, notifications[0].Type)
		assert.Empty(t, orchestrator.Snapshot().Data.Clients)
	})
}

func TestOrchestrator_CaptureLead(t *testing.T) {
	orchestrator, m := newRemoteOrchestrator(t)

	m.clients.EXPECT().
		Create(1, gomock.Any()).
		DoAndReturn(func(_ int, client domain.Client) (*domain.Client, error) {
			assert.Equal(t, "Website Lead", client.Name)
			assert.Equal(t, "visitante@example.com", client.Email)
			assert.Equal(t, domain.ClientStatusLead, client.Status)
			assert.Equal(t, "Waitlist", client.Program)
			assert.Equal(t, "Never", client.LastCheckIn)
			assert.Equal(t, 0, client.Progress)

			client.ID = "lead-1"
			return &client, nil
		})

	created, err := orchestrator.CaptureLead("visitante@example.com")
	require.NoError(t, err)
	assert.Equal(t, "lead-1", created.ID)

	notifications := orchestrator.Notifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, "New lead captured from website!", notifications[0].Message)
}

func TestOrchestrator_UpdateClient(t *testing.T) {
	orchestrator, m := newRemoteOrchestrator(t)

	progress := 150
	updated := domain.Client{ID: "c1", Name: "Ana", Progress: 100}

	m.blueprints.EXPECT().Get(1).Return(nil, nil)
	m.clients.EXPECT().ListByUser(1).Return([]domain.Client{{ID: "c1", Name: "Ana", Progress: 10}}, nil)
	m.automations.EXPECT().ListByUser(1).Return([]domain.Automation{{ID: "a1"}}, nil)
	require.NoError(t, orchestrator.Load())

	m.clients.EXPECT().Update(1, "c1", gomock.Any()).Return(&updated, nil)

	result, err := orchestrator.UpdateClient("c1", domain.UpdateClientRequest{Progress: &progress})
	require.NoError(t, err)
	assert.Equal(t, 100, result.Progress)

	snapshot := orchestrator.Snapshot()
	require.Len(t, snapshot.Data.Clients, 1)
	assert.Equal(t, 100, snapshot.Data.Clients[0].Progress)
}

func TestOrchestrator_CompleteOnboarding(t *testing.T) {
	blueprint := domain.BusinessBlueprint{
		BusinessName: "IronWill Fitness",
		Niche:        "Strength Training for Busy Dads",
		ContentPlan:  []domain.SocialPost{{Day: 1, Hook: "Hook", Body: "Body"}},
	}

	t.Run("Sucesso deve persistir tudo e transicionar para Ready", func(t *testing.T) {
		orchestrator, m := newRemoteOrchestrator(t)

		saved := blueprint
		m.blueprints.EXPECT().Upsert(1, gomock.Any()).Return(&saved, nil)

		plan := []domain.SocialPost{{ID: "p1", Day: 1, Hook: "Hook", Body: "Body"}}
		m.posts.EXPECT().BulkCreate(1, gomock.Any()).Return(plan, nil)

		m.clients.EXPECT().
			Create(1, gomock.Any()).
			DoAndReturn(func(_ int, client domain.Client) (*domain.Client, error) {
				assert.Equal(t, "Example Lead", client.Name)
				assert.Equal(t, "lead@example.com", client.Email)
				assert.Equal(t, "Interest", client.Program)
				assert.Equal(t, "N/A", client.LastCheckIn)

				client.ID = "c-lead"
				return &client, nil
			})

		require.NoError(t, orchestrator.CompleteOnboarding(blueprint))

		snapshot := orchestrator.Snapshot()
		assert.Equal(t, PhaseReady, snapshot.Phase)
		require.NotNil(t, snapshot.Data.Blueprint)
		assert.Equal(t, "IronWill Fitness", snapshot.Data.Blueprint.BusinessName)
		assert.Equal(t, plan, snapshot.Data.Blueprint.ContentPlan)
		require.Len(t, snapshot.Data.Clients, 1)
		assert.Equal(t, "c-lead", snapshot.Data.Clients[0].ID)

		notifications := orchestrator.Notifications()
		require.Len(t, notifications, 1)
		assert.Equal(t, "Business initialized successfully!", notifications[0].Message)
	})

	t.Run("Falha na persistência do plano deve manter a sessão em NotOnboarded", func(t *testing.T) {
		orchestrator, m := newRemoteOrchestrator(t)

		m.blueprints.EXPECT().Get(1).Return(nil, nil)
		m.clients.EXPECT().ListByUser(1).Return(nil, nil)
		m.automations.EXPECT().ListByUser(1).Return([]domain.Automation{{ID: "a1"}}, nil)
		require.NoError(t, orchestrator.Load())

		saved := blueprint
		m.blueprints.EXPECT().Upsert(1, gomock.Any()).Return(&saved, nil)
		m.posts.EXPECT().BulkCreate(1, gomock.Any()).Return(nil, assert.AnError)

		assert.Error(t, orchestrator.CompleteOnboarding(blueprint))

		snapshot := orchestrator.Snapshot()
		assert.Equal(t, PhaseNotOnboarded, snapshot.Phase)
		assert.Nil(t, snapshot.Data.Blueprint)

		notifications := orchestrator.Notifications()
		require.Len(t, notifications, 1)
		assert.Equal(t, NotificationError, notifications[0].Type)
		assert.Equal(t, "Failed to complete onboarding", notifications[0].Message)
	})
}

func TestOrchestrator_RegenerateContent(t *testing.T) {
	t.Run("Plano novo deve substituir o existente para o nicho corrente", func(t *testing.T) {
		orchestrator, m := newRemoteOrchestrator(t)

		blueprint := &domain.BusinessBlueprint{Niche: "Strength Training for Busy Dads"}
		oldPlan := []domain.SocialPost{{ID: "p-old", Day: 1}}

		m.blueprints.EXPECT().Get(1).Return(blueprint, nil)
		m.clients.EXPECT().ListByUser(1).Return(nil, nil)
		m.automations.EXPECT().ListByUser(1).Return([]domain.Automation{{ID: "a1"}}, nil)
		m.posts.EXPECT().ListByUser(1).Return(oldPlan, nil)
		require.NoError(t, orchestrator.Load())

		newPlan := []domain.SocialPost{{Day: 1, Hook: "Novo"}, {Day: 3, Hook: "Outro"}}
		m.generator.EXPECT().GenerateContentPlan("Strength Training for Busy Dads").Return(newPlan)

		createdPlan := []domain.SocialPost{{ID: "p1", Day: 1, Hook: "Novo"}, {ID: "p2", Day: 3, Hook: "Outro"}}
		m.posts.EXPECT().DeleteAll(1).Return(nil)
		m.posts.EXPECT().BulkCreate(1, newPlan).Return(createdPlan, nil)

		result, err := orchestrator.RegenerateContent()
		require.NoError(t, err)
		assert.Equal(t, createdPlan, result)

		snapshot := orchestrator.Snapshot()
		assert.Equal(t, createdPlan, snapshot.Data.Blueprint.ContentPlan)

		notifications := orchestrator.Notifications()
		require.Len(t, notifications, 1)
		assert.Equal(t, "Content plan refreshed", notifications[0].Message)
	})

	t.Run("Sem blueprint não há nicho para regenerar", func(t *testing.T) {
		orchestrator, _ := newRemoteOrchestrator(t)

		_, err := orchestrator.RegenerateContent()
		assert.ErrorIs(t, err, errNotOnboarded)
	})

	t.Run("Falha após o apagamento deve reler os posts do banco", func(t *testing.T) {
		orchestrator, m := newRemoteOrchestrator(t)

		blueprint := &domain.BusinessBlueprint{Niche: "Yoga"}
		m.blueprints.EXPECT().Get(1).Return(blueprint, nil)
		m.clients.EXPECT().ListByUser(1).Return(nil, nil)
		m.automations.EXPECT().ListByUser(1).Return([]domain.Automation{{ID: "a1"}}, nil)
		m.posts.EXPECT().ListByUser(1).Return([]domain.SocialPost{{ID: "p-old"}}, nil)
		require.NoError(t, orchestrator.Load())

		m.generator.EXPECT().GenerateContentPlan("Yoga").Return([]domain.SocialPost{{Day: 1}})
		m.posts.EXPECT().DeleteAll(1).Return(nil)
		m.posts.EXPECT().BulkCreate(1, gomock.Any()).Return(nil, assert.AnError)

		// Releitura de recuperação após a falha parcial
		m.posts.EXPECT().ListByUser(1).Return([]domain.SocialPost{}, nil)

		_, err := orchestrator.RegenerateContent()
		assert.Error(t, err)
	})
}

func TestOrchestrator_ToggleAutomation(t *testing.T) {
	orchestrator, m := newRemoteOrchestrator(t)

	m.blueprints.EXPECT().Get(1).Return(nil, nil)
	m.clients.EXPECT().ListByUser(1).Return(nil, nil)
	m.automations.EXPECT().ListByUser(1).Return([]domain.Automation{
		{ID: "a1", Name: "Welcome", Status: domain.AutomationStatusActive},
	}, nil)
	require.NoError(t, orchestrator.Load())

	m.automations.EXPECT().
		Update(1, "a1", gomock.Any()).
		DoAndReturn(func(_ int, _ string, updates domain.UpdateAutomationRequest) (*domain.Automation, error) {
			require.NotNil(t, updates.Status)
			assert.Equal(t, domain.AutomationStatusPaused, *updates.Status)
			return &domain.Automation{ID: "a1", Name: "Welcome", Status: *updates.Status}, nil
		})

	updated, err := orchestrator.ToggleAutomation("a1")
	require.NoError(t, err)
	assert.Equal(t, domain.AutomationStatusPaused, updated.Status)
	assert.Equal(t, domain.AutomationStatusPaused, orchestrator.Snapshot().Data.Automations[0].Status)
}

func TestOrchestrator_Close(t *testing.T) {
	orchestrator, m := newRemoteOrchestrator(t)

	orchestrator.Close()
	orchestrator.Close() // idempotente

	assert.Equal(t, PhaseUnauthenticated, orchestrator.Snapshot().Phase)

	// Uma mutação após o encerramento persiste no banco, mas a aplicação em
	// memória falha com a sessão encerrada.
	m.clients.EXPECT().
		Create(1, gomock.Any()).
		DoAndReturn(func(_ int, client domain.Client) (*domain.Client, error) {
			client.ID = "c-late"
			return &client, nil
		})

	_, err := orchestrator.AddClient(domain.Client{Name: "Depois do fim"})
	assert.ErrorIs(t, err, ErrSessionClosed)
}
