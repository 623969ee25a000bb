// Package kvstore guarda preferências por namespace e notifica as alterações a quem estiver inscrito
package kvstore

import (
	"context"
	"errors"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrInvalidKey = errors.New("namespace e chave são obrigatórios e não podem conter ':'")

// Store é um armazenamento chave-valor com último escritor vencendo por chave
type Store interface {
	Get(ctx context.Context, namespace, key string) ([]byte, bool, error)
	Set(ctx context.Context, namespace, key string, value []byte, origin string) error
	Delete(ctx context.Context, namespace, key, origin string) error
	// Subscribe entrega as alterações do namespace até o contexto ser cancelado; o canal é fechado ao final
	Subscribe(ctx context.Context, namespace string) (<-chan domain.PreferenceChange, error)
}

func validateKey(namespace, key string) error {
	if namespace == "" || key == "" || strings.Contains(namespace, ":") || strings.Contains(key, ":") {
		return ErrInvalidKey
	}
	return nil
}

func storageKey(namespace, key string) string {
	return "prefs:" + namespace + ":" + key
}
