package syncing

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachos/coach-os-api/infrastructure/localstore"
	"github.com/coachos/coach-os-api/internal/domain"
)

func newLocalOrchestrator(t *testing.T, path string) *Orchestrator {
	t.Helper()

	store, err := localstore.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	orchestrator := NewOrchestrator(1, Dependencies{
		Local:    store,
		Notifier: NewNotifier(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	orchestrator.Start(ctx)

	return orchestrator
}

func TestOrchestrator_LocalFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coachos.db")

	t.Run("Primeira carga sem projeto salvo deve semear automações e ficar NotOnboarded", func(t *testing.T) {
		orchestrator := newLocalOrchestrator(t, path)

		require.NoError(t, orchestrator.Load())

		snapshot := orchestrator.Snapshot()
		assert.Equal(t, PhaseNotOnboarded, snapshot.Phase)
		require.Len(t, snapshot.Data.Automations, 2)
		assert.NotEmpty(t, snapshot.Data.Automations[0].ID)
		assert.Equal(t, "Weekly Client Check-in", snapshot.Data.Automations[0].Name)
	})
}

func TestOrchestrator_LocalOnboardingPersiste(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coachos.db")

	blueprint := domain.BusinessBlueprint{
		BusinessName: "IronWill Fitness",
		Niche:        "Strength Training for Busy Dads",
		ContentPlan:  []domain.SocialPost{{Day: 1, Hook: "Hook", Body: "Body"}},
	}

	first := newLocalOrchestrator(t, path)
	require.NoError(t, first.Load())
	require.NoError(t, first.CompleteOnboarding(blueprint))

	snapshot := first.Snapshot()
	assert.Equal(t, PhaseReady, snapshot.Phase)
	require.Len(t, snapshot.Data.Clients, 1)
	assert.Equal(t, "Example Lead", snapshot.Data.Clients[0].Name)
	require.NotNil(t, snapshot.Data.Blueprint)
	assert.NotEmpty(t, snapshot.Data.Blueprint.ContentPlan[0].ID)

	first.Close()
	first.deps.Local.Close()

	// Um processo novo sobre o mesmo arquivo recupera a sessão completa
	second := newLocalOrchestrator(t, path)
	require.NoError(t, second.Load())

	recovered := second.Snapshot()
	assert.Equal(t, PhaseReady, recovered.Phase)
	require.NotNil(t, recovered.Data.Blueprint)
	assert.Equal(t, "IronWill Fitness", recovered.Data.Blueprint.BusinessName)
	require.Len(t, recovered.Data.Clients, 1)
	assert.Equal(t, "Example Lead", recovered.Data.Clients[0].Name)
	assert.Len(t, recovered.Data.Automations, 2)
}

func TestOrchestrator_LocalMutacaoEmDuasFases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coachos.db")

	orchestrator := newLocalOrchestrator(t, path)
	require.NoError(t, orchestrator.Load())

	t.Run("Mutação que falha na validação não altera o estado", func(t *testing.T) {
		before := orchestrator.Snapshot()

		_, err := orchestrator.UpdateClient("inexistente", domain.UpdateClientRequest{})
		assert.ErrorIs(t, err, errNotFound)

		after := orchestrator.Snapshot()
		assert.Equal(t, before.Data, after.Data)

		notifications := orchestrator.Notifications()
		require.Len(t, notifications, 1)
		assert.Equal(t, NotificationError, notifications[0].Type)
	})

	t.Run("Progresso fora do intervalo é saturado na atualização", func(t *testing.T) {
		created, err := orchestrator.AddClient(domain.Client{Name: "Carla", Progress: 40})
		require.NoError(t, err)

		progress := 250
		updated, err := orchestrator.UpdateClient(created.ID, domain.UpdateClientRequest{Progress: &progress})
		require.NoError(t, err)
		assert.Equal(t, 100, updated.Progress)

		negative := -10
		updated, err = orchestrator.UpdateClient(created.ID, domain.UpdateClientRequest{Progress: &negative})
		require.NoError(t, err)
		assert.Equal(t, 0, updated.Progress)
	})

	t.Run("Post adicionado mantém o plano ordenado por dia", func(t *testing.T) {
		require.NoError(t, orchestrator.CompleteOnboarding(domain.BusinessBlueprint{
			BusinessName: "IronWill Fitness",
			ContentPlan: []domain.SocialPost{
				{Day: 1, Hook: "Primeiro"},
				{Day: 5, Hook: "Quinto"},
			},
		}))
		orchestrator.Notifications()

		_, err := orchestrator.AddSocialPost(domain.SocialPost{Day: 3, Hook: "Terceiro"})
		require.NoError(t, err)

		plan := orchestrator.Snapshot().Data.Blueprint.ContentPlan
		require.Len(t, plan, 3)
		assert.Equal(t, []int{1, 3, 5}, []int{plan[0].Day, plan[1].Day, plan[2].Day})
	})
}
