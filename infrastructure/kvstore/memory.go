package kvstore

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
)

type subscriber struct {
	namespace string
	ch        chan domain.PreferenceChange
}

// MemoryStore mantém as preferências no processo; usado sem redis e nos testes
type MemoryStore struct {
	mu          sync.RWMutex
	values      map[string][]byte
	subscribers map[int]*subscriber
	nextSubID   int
	now         func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values:      make(map[string][]byte),
		subscribers: make(map[int]*subscriber),
		now:         time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, namespace, key string) ([]byte, bool, error) {
	if err := validateKey(namespace, key); err != nil {
		return nil, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.values[storageKey(namespace, key)]
	if !ok {
		return nil, false, nil
	}

	return append([]byte(nil), val...), true, nil
}

func (s *MemoryStore) Set(_ context.Context, namespace, key string, value []byte, origin string) error {
	if err := validateKey(namespace, key); err != nil {
		return err
	}

	stored := append([]byte(nil), value...)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[storageKey(namespace, key)] = stored
	s.publish(domain.PreferenceChange{
		Namespace: namespace,
		Key:       key,
		Value:     stored,
		Origin:    origin,
		At:        s.now().UTC(),
	})

	return nil
}

func (s *MemoryStore) Delete(_ context.Context, namespace, key, origin string) error {
	if err := validateKey(namespace, key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, storageKey(namespace, key))
	s.publish(domain.PreferenceChange{
		Namespace: namespace,
		Key:       key,
		Deleted:   true,
		Origin:    origin,
		At:        s.now().UTC(),
	})

	return nil
}

func (s *MemoryStore) Subscribe(ctx context.Context, namespace string) (<-chan domain.PreferenceChange, error) {
	ch := make(chan domain.PreferenceChange, subscriberBuffer)

	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = &subscriber{namespace: namespace, ch: ch}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subscribers, id)
		close(ch)
		s.mu.Unlock()
	}()

	return ch, nil
}

// publish deve ser chamado com o lock de escrita. Assinante lento perde a notificação, não trava a escrita.
func (s *MemoryStore) publish(change domain.PreferenceChange) {
	for _, sub := range s.subscribers {
		if sub.namespace != change.Namespace {
			continue
		}
		select {
		case sub.ch <- change:
		default:
			logrus.Warnf("Assinante de preferências lento, notificação descartada: %s/%s", change.Namespace, change.Key)
		}
	}
}
