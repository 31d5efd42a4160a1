package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBus(t *testing.T) *Bus {
	t.Helper()

	mr := miniredis.RunT(t)
	bus := NewBusWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { bus.Close() })

	return bus
}

func TestBus_NotifyChange(t *testing.T) {
	bus := newTestBus(t)
	ctx := context.Background()

	events := make(chan string, 1)
	unsubscribe, err := bus.SubscribeToChanges(ctx, "clients", func(event string) {
		events <- event
	})
	require.NoError(t, err)
	defer unsubscribe()

	bus.NotifyChange(ctx, "clients", "update")

	select {
	case event := <-events:
		assert.Equal(t, "update", event)
	case <-time.After(2 * time.Second):
		t.Fatal("notificação de mudança não chegou ao assinante")
	}
}

func TestBus_CanaisPorTabela(t *testing.T) {
	bus := newTestBus(t)
	ctx := context.Background()

	clientEvents := make(chan string, 1)
	unsubscribe, err := bus.SubscribeToChanges(ctx, "clients", func(event string) {
		clientEvents <- event
	})
	require.NoError(t, err)
	defer unsubscribe()

	// Evento de outra tabela não vaza para o canal de clients
	bus.NotifyChange(ctx, "automations", "insert")
	bus.NotifyChange(ctx, "clients", "delete")

	select {
	case event := <-clientEvents:
		assert.Equal(t, "delete", event)
	case <-time.After(2 * time.Second):
		t.Fatal("notificação de mudança não chegou ao assinante")
	}

	select {
	case event := <-clientEvents:
		t.Fatalf("evento inesperado no canal de clients: %s", event)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBus_UnsubscribeIdempotente(t *testing.T) {
	bus := newTestBus(t)
	ctx := context.Background()

	received := make(chan string, 4)
	unsubscribe, err := bus.SubscribeToChanges(ctx, "clients", func(event string) {
		received <- event
	})
	require.NoError(t, err)

	unsubscribe()
	unsubscribe() // segunda chamada não tem efeito

	time.Sleep(50 * time.Millisecond)
	bus.NotifyChange(ctx, "clients", "update")

	select {
	case event := <-received:
		t.Fatalf("evento recebido após o cancelamento: %s", event)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestChangeChannel(t *testing.T) {
	assert.Equal(t, "coachos:changes:clients", ChangeChannel("clients"))
	assert.Equal(t, "coachos:changes:business_blueprints", ChangeChannel("business_blueprints"))
}
