package kvstore

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/phone-retail-admin-api/internal/config"
	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
)

const subscriberBuffer = 16

type RedisStore struct {
	client  *redis.Client
	channel string
	now     func() time.Time
}

func NewRedisStore(cfg config.Redis) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &RedisStore{client: client, channel: cfg.PreferencesChannel, now: time.Now}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Get(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	if err := validateKey(namespace, key); err != nil {
		return nil, false, err
	}

	val, err := s.client.Get(ctx, storageKey(namespace, key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "falha ao ler preferência no redis")
	}

	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, namespace, key string, value []byte, origin string) error {
	if err := validateKey(namespace, key); err != nil {
		return err
	}

	change := domain.PreferenceChange{
		Namespace: namespace,
		Key:       key,
		Value:     value,
		Origin:    origin,
		At:        s.now().UTC(),
	}

	return s.writeAndPublish(ctx, change, func(pipe redis.Pipeliner) {
		pipe.Set(ctx, storageKey(namespace, key), value, 0)
	})
}

func (s *RedisStore) Delete(ctx context.Context, namespace, key, origin string) error {
	if err := validateKey(namespace, key); err != nil {
		return err
	}

	change := domain.PreferenceChange{
		Namespace: namespace,
		Key:       key,
		Deleted:   true,
		Origin:    origin,
		At:        s.now().UTC(),
	}

	return s.writeAndPublish(ctx, change, func(pipe redis.Pipeliner) {
		pipe.Del(ctx, storageKey(namespace, key))
	})
}

// writeAndPublish grava e publica no mesmo MULTI para que a notificação nunca anteceda o valor
func (s *RedisStore) writeAndPublish(ctx context.Context, change domain.PreferenceChange, write func(redis.Pipeliner)) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return errors.Wrap(err, "falha ao serializar alteração de preferência")
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		write(pipe)
		pipe.Publish(ctx, s.channel, payload)
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "falha ao gravar preferência no redis")
	}

	return nil
}

func (s *RedisStore) Subscribe(ctx context.Context, namespace string) (<-chan domain.PreferenceChange, error) {
	pubsub := s.client.Subscribe(ctx, s.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, errors.Wrap(err, "falha ao assinar canal de preferências")
	}

	out := make(chan domain.PreferenceChange, subscriberBuffer)
	go func() {
		defer close(out)
		defer pubsub.Close()

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}

				var change domain.PreferenceChange
				if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
					logrus.Warnf("Mensagem de preferência inválida ignorada: %v", err)
					continue
				}
				if change.Namespace != namespace {
					continue
				}

				select {
				case out <- change:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
