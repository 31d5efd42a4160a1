package syncing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryNotifier(t *testing.T) {
	t.Run("Drain devolve o pendente e esvazia a fila", func(t *testing.T) {
		notifier := NewNotifier()

		notifier.Success("Client added successfully")
		notifier.Error("Failed to update client")
		notifier.Warning("Seu projeto salvo não pôde ser lido")

		pending := notifier.Drain()
		require.Len(t, pending, 3)
		assert.Equal(t, NotificationSuccess, pending[0].Type)
		assert.Equal(t, NotificationError, pending[1].Type)
		assert.Equal(t, NotificationWarning, pending[2].Type)
		assert.NotEmpty(t, pending[0].ID)
		assert.NotEqual(t, pending[0].ID, pending[1].ID)

		assert.Empty(t, notifier.Drain())
	})

	t.Run("Fila mantém apenas as últimas cinquenta", func(t *testing.T) {
		notifier := NewNotifier()

		for i := 0; i < 60; i++ {
			notifier.Success(fmt.Sprintf("mensagem %d", i))
		}

		pending := notifier.Drain()
		require.Len(t, pending, 50)
		assert.Equal(t, "mensagem 10", pending[0].Message)
		assert.Equal(t, "mensagem 59", pending[49].Message)
	})
}
