// Package kvstore é o armazenamento chave-valor durável da loja: cada coleção
// é uma chave cujo valor é o snapshot JSON completo da coleção.
package kvstore

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound é retornado quando a chave não existe no armazenamento.
var ErrNotFound = errors.New("kvstore: chave não encontrada")

// Store define o contrato mínimo de um armazenamento chave-valor.
// Set substitui o valor inteiro da chave em uma única escrita.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

// Counter é implementado pelos backends que suportam contadores com janela
// (usado pelo rate limiter).
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Nomes fixos das chaves, prefixados por Config.KeyPrefix.
const (
	KeyProducts   = "products"
	KeyCategories = "categories"
	KeyOrders     = "orders"
	KeyUsers      = "users"
	KeyCoupons    = "coupons"
	KeySettings   = "settings"
	KeyUser       = "user"
	KeyCart       = "cart"
)

// Key compõe o nome completo da chave.
func Key(prefix, name string) string {
	return prefix + name
}
