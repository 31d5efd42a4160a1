package localstore

import (
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"

	"github.com/coachos/coach-os-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	bucketName = "projects"

	// projectKey é a chave fixa do envelope do projeto. Há no máximo um
	// projeto por arquivo local.
	projectKey = "business_os_project_v2"

	// quarantineKey guarda o último payload que falhou na desserialização,
	// para que uma carga corrompida não destrua a única cópia do usuário.
	quarantineKey = "business_os_project_v2.corrupt"
)

// Store persiste o ProjectData em um arquivo bbolt quando não há banco
// remoto configurado.
type Store struct {
	db *bolt.DB
}

// Open inicializa o arquivo bbolt e garante a existência do bucket.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveProject serializa o envelope completo com um carimbo novo e grava na
// chave fixa, sobrescrevendo o valor anterior. Retorna false quando a
// serialização ou a gravação falham.
func (s *Store) SaveProject(data domain.ProjectData) bool {
	saved := domain.SavedProject{
		Data:        data,
		LastUpdated: time.Now().UTC(),
	}

	payload, err := json.Marshal(saved)
	if err != nil {
		logrus.WithError(err).Error("Erro ao serializar o projeto local")
		return false
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(projectKey), payload)
	})
	if err != nil {
		logrus.WithError(err).Error("Erro ao gravar o projeto local")
		return false
	}

	return true
}

// LoadProject lê e desserializa o envelope. Retorna (nil, false) quando não
// há projeto salvo. Um payload corrompido também resulta em (nil, false),
// mas o valor original é movido para a chave de quarentena e o chamador é
// avisado pelo retorno de Corrupted — quem consome decide como alertar o
// usuário em vez de tratar corrupção como ausência silenciosa.
func (s *Store) LoadProject() (*domain.SavedProject, bool) {
	var payload []byte

	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketName)).Get([]byte(projectKey))
		if v != nil {
			payload = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		logrus.WithError(err).Error("Erro ao ler o projeto local")
		return nil, false
	}

	if payload == nil {
		return nil, false
	}

	var saved domain.SavedProject
	if err := json.Unmarshal(payload, &saved); err != nil {
		logrus.WithError(err).Error("Projeto local corrompido, movendo para quarentena")
		s.quarantine(payload)
		return nil, true
	}

	return &saved, false
}

// Corrupted indica se existe um payload em quarentena de uma carga anterior.
func (s *Store) Corrupted() bool {
	var found bool
	_ = s.db.View(func(tx *bolt.Tx) error {
		found = tx.Bucket([]byte(bucketName)).Get([]byte(quarantineKey)) != nil
		return nil
	})
	return found
}

func (s *Store) quarantine(payload []byte) {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if err := b.Put([]byte(quarantineKey), payload); err != nil {
			return err
		}
		return b.Delete([]byte(projectKey))
	})
	if err != nil {
		logrus.WithError(err).Error("Erro ao mover projeto corrompido para quarentena")
	}
}
