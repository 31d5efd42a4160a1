package localstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/coachos/coach-os-api/internal/domain"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()

	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestStore_SaveAndLoadProject(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "coachos.db"))

	t.Run("Sem projeto salvo deve retornar nil sem sinal de corrupção", func(t *testing.T) {
		saved, corrupted := store.LoadProject()
		assert.Nil(t, saved)
		assert.False(t, corrupted)
	})

	t.Run("Projeto gravado deve voltar íntegro com carimbo de atualização", func(t *testing.T) {
		data := domain.ProjectData{
			Blueprint: &domain.BusinessBlueprint{
				BusinessName: "IronWill Fitness",
				Niche:        "Strength Training for Busy Dads",
				ContentPlan:  []domain.SocialPost{{ID: "p1", Day: 1, Hook: "Hook"}},
			},
			Clients:     []domain.Client{{ID: "c1", Name: "Ana", Progress: 40}},
			Automations: []domain.Automation{{ID: "a1", Name: "Welcome"}},
		}

		require.True(t, store.SaveProject(data))

		saved, corrupted := store.LoadProject()
		require.NotNil(t, saved)
		assert.False(t, corrupted)
		assert.Equal(t, data, saved.Data)
		assert.WithinDuration(t, time.Now().UTC(), saved.LastUpdated, time.Minute)
	})

	t.Run("Gravação posterior sobrescreve a anterior", func(t *testing.T) {
		require.True(t, store.SaveProject(domain.ProjectData{
			Clients: []domain.Client{{ID: "c2", Name: "Bruno"}},
		}))

		saved, _ := store.LoadProject()
		require.NotNil(t, saved)
		assert.Nil(t, saved.Data.Blueprint)
		require.Len(t, saved.Data.Clients, 1)
		assert.Equal(t, "Bruno", saved.Data.Clients[0].Name)
	})
}

func TestStore_PayloadCorrompido(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coachos.db")

	store := openTestStore(t, path)
	require.True(t, store.SaveProject(domain.ProjectData{
		Clients: []domain.Client{{ID: "c1", Name: "Ana"}},
	}))
	require.NoError(t, store.Close())

	// Corrompe o payload diretamente no arquivo
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	require.NoError(t, err)
	require.NoError(t, db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(projectKey), []byte("{nao é json"))
	}))
	require.NoError(t, db.Close())

	store = openTestStore(t, path)

	saved, corrupted := store.LoadProject()
	assert.Nil(t, saved)
	assert.True(t, corrupted)

	// O payload original foi movido para a quarentena, não destruído
	assert.True(t, store.Corrupted())

	// Uma nova carga trata o estado como vazio, sem repetir o alerta
	saved, corrupted = store.LoadProject()
	assert.Nil(t, saved)
	assert.False(t, corrupted)

	// E o uso segue normalmente a partir do zero
	require.True(t, store.SaveProject(domain.ProjectData{
		Clients: []domain.Client{{ID: "c2", Name: "Bruno"}},
	}))
	saved, corrupted = store.LoadProject()
	require.NotNil(t, saved)
	assert.False(t, corrupted)
}
