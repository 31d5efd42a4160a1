package syncing

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	contentaimocks "github.com/coachos/coach-os-api/infrastructure/integrator/contentai/mocks"
	"github.com/coachos/coach-os-api/infrastructure/realtime"
	"github.com/coachos/coach-os-api/infrastructure/repository/mocks"
	"github.com/coachos/coach-os-api/internal/domain"
)

func newRealtimeOrchestrator(t *testing.T) (*Orchestrator, *realtime.Bus, remoteMocks) {
	t.Helper()

	mr := miniredis.RunT(t)
	bus := realtime.NewBusWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { bus.Close() })

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
		Bus:         bus,
		Generator:   m.generator,
		Notifier:    NewNotifier(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	orchestrator.Start(ctx)

	return orchestrator, bus, m
}

func TestOrchestrator_RecargaNaoDuplicaAssinaturas(t *testing.T) {
	orchestrator, bus, m := newRealtimeOrchestrator(t)

	// Duas cargas completas, como numa recarga manual pela API
	m.blueprints.EXPECT().Get(1).Return(nil, nil).Times(2)
	m.clients.EXPECT().ListByUser(1).Return(nil, nil).Times(2)
	m.automations.EXPECT().ListByUser(1).Return([]domain.Automation{{ID: "a1"}}, nil).Times(2)

	require.NoError(t, orchestrator.Load())
	require.NoError(t, orchestrator.Load())

	refetches := make(chan struct{}, 8)
	m.clients.EXPECT().
		ListByUser(1).
		DoAndReturn(func(int) ([]domain.Client, error) {
			refetches <- struct{}{}
			return nil, nil
		}).
		AnyTimes()

	bus.NotifyChange(context.Background(), "clients", "UPDATE")

	select {
	case <-refetches:
	case <-time.After(2 * time.Second):
		t.Fatal("nenhuma releitura após a notificação de mudança")
	}

	// Cada tabela mantém um único canal por sessão: uma mudança dispara
	// exatamente uma releitura, independente de quantas cargas houve
	select {
	case <-refetches:
		t.Fatal("releitura duplicada para uma única mudança")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestOrchestrator_CloseDerrubaAssinaturas(t *testing.T) {
	orchestrator, bus, m := newRealtimeOrchestrator(t)

	m.blueprints.EXPECT().Get(1).Return(nil, nil)
	m.clients.EXPECT().ListByUser(1).Return(nil, nil)
	m.automations.EXPECT().ListByUser(1).Return([]domain.Automation{{ID: "a1"}}, nil)

	require.NoError(t, orchestrator.Load())

	orchestrator.Close()

	// Nenhuma releitura pode chegar depois do encerramento da sessão
	bus.NotifyChange(context.Background(), "clients", "UPDATE")
	time.Sleep(300 * time.Millisecond)
}
