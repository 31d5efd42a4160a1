package realtime

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// UnsubscribeFunc libera o canal da assinatura. É seguro chamá-la mais de
// uma vez; chamadas subsequentes não têm efeito.
type UnsubscribeFunc func()

// SubscribeToChanges abre um canal para a tabela e invoca onChange a cada
// notificação de mudança (insert, update ou delete — qualquer evento na
// tabela dispara o mesmo caminho). O callback roda na goroutine da
// assinatura; o chamador decide como refazer a leitura e aplicar o estado.
func (b *Bus) SubscribeToChanges(ctx context.Context, table string, onChange func(event string)) (UnsubscribeFunc, error) {
	pubsub := b.rdb.Subscribe(ctx, ChangeChannel(table))

	// Confirma a assinatura antes de devolver, para que uma escrita feita
	// logo em seguida não se perca.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, err
	}

	subCtx, cancel := context.WithCancel(ctx)

	go func() {
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				onChange(msg.Payload)
			}
		}
	}()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			logrus.WithField("table", table).Debug("Encerrando assinatura de mudanças")
			cancel()
		})
	}

	return unsubscribe, nil
}
