package syncing

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/coachos/coach-os-api/pkg/utils"
)

type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
	NotificationWarning NotificationType = "warning"
)

// Notification é o feedback terminal de uma ação do usuário. Cada mutação
// produz exatamente uma, de sucesso ou de falha.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"created_at"`
}

type Notifier interface {
	Success(message string)
	Error(message string)
	Warning(message string)
	Drain() []Notification
}

// memoryNotifier acumula as notificações pendentes até a View Layer
// buscá-las. Mantém só as últimas N para não crescer sem limite.
type memoryNotifier struct {
	mutex   sync.Mutex
	pending []Notification
	limit   int
}

func NewNotifier() Notifier {
	return &memoryNotifier{limit: 50}
}

func (n *memoryNotifier) Success(message string) { n.push(NotificationSuccess, message) }
func (n *memoryNotifier) Error(message string)   { n.push(NotificationError, message) }
func (n *memoryNotifier) Warning(message string) { n.push(NotificationWarning, message) }

func (n *memoryNotifier) push(kind NotificationType, message string) {
	id, err := utils.GenerateID()
	if err != nil {
		id = uuid.NewString()
	}

	n.mutex.Lock()
	defer n.mutex.Unlock()

	n.pending = append(n.pending, Notification{
		ID:        id,
		Type:      kind,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	})

	if len(n.pending) > n.limit {
		n.pending = n.pending[len(n.pending)-n.limit:]
	}
}

// Drain devolve e limpa as notificações pendentes.
func (n *memoryNotifier) Drain() []Notification {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	out := n.pending
	n.pending = nil
	return out
}
