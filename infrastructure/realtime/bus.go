package realtime

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/coachos/coach-os-api/internal/config"
)

// Bus publica e distribui notificações de mudança por tabela. Qualquer
// escrita em uma tabela observada gera um evento no canal daquela tabela;
// não há diff por linha, o assinante refaz a leitura completa da coleção.
type Bus struct {
	rdb *redis.Client
}

func NewBus(cfg config.Redis) *Bus {
	return &Bus{
		rdb: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

// NewBusWithClient permite injetar um cliente já construído (testes).
func NewBusWithClient(rdb *redis.Client) *Bus {
	return &Bus{rdb: rdb}
}

func (b *Bus) Ping(ctx context.Context) error {
	return b.rdb.Ping(ctx).Err()
}

func (b *Bus) Close() error {
	return b.rdb.Close()
}

// ChangeChannel devolve o nome do canal de mudanças de uma tabela.
func ChangeChannel(table string) string {
	return fmt.Sprintf("coachos:changes:%s", table)
}

// NotifyChange publica uma notificação de mudança para a tabela. A falha na
// publicação não derruba a escrita que a originou: o dado já está persistido
// e os assinantes se recuperam na próxima leitura completa.
func (b *Bus) NotifyChange(ctx context.Context, table string, event string) {
	if err := b.rdb.Publish(ctx, ChangeChannel(table), event).Err(); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"table": table,
			"event": event,
		}).Warn("Erro ao publicar notificação de mudança")
	}
}
