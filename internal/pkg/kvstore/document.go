package kvstore

import (
	"context"
	"encoding/json"
	"errors"

	apperror "ctrlshirt/internal/errors"
)

// Document é um registro único persistido em uma chave (configurações,
// usuário da sessão, carrinho).
type Document[T any] struct {
	store   Store
	key     string
	seed    func() T
	latency Latency
}

// NewDocument cria o documento. seed pode ser nil quando não há valor inicial.
func NewDocument[T any](store Store, key string, seed func() T, latency Latency) *Document[T] {
	return &Document[T]{store: store, key: key, seed: seed, latency: latency}
}

// Key devolve o nome da chave do documento.
func (d *Document[T]) Key() string { return d.key }

// Get lê o documento sem semear; ok é false se a chave não existe.
func (d *Document[T]) Get(ctx context.Context) (T, bool, error) {
	var value T
	if err := d.latency.Wait(ctx); err != nil {
		return value, false, err
	}

	raw, err := d.store.Get(ctx, d.key)
	if errors.Is(err, ErrNotFound) {
		return value, false, nil
	}
	if err != nil {
		return value, false, apperror.NewStorageError(d.key, "falha ao ler documento", err)
	}
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return value, false, apperror.NewStorageError(d.key, "documento armazenado está malformado", err)
	}
	return value, true, nil
}

// Load lê o documento, gravando o valor inicial na primeira leitura.
func (d *Document[T]) Load(ctx context.Context) (T, error) {
	value, ok, err := d.Get(ctx)
	if err != nil || ok || d.seed == nil {
		return value, err
	}
	value = d.seed()
	if err := d.write(ctx, value); err != nil {
		return value, err
	}
	return value, nil
}

// Save sobrescreve o documento inteiro.
func (d *Document[T]) Save(ctx context.Context, value T) error {
	if err := d.latency.Wait(ctx); err != nil {
		return err
	}
	return d.write(ctx, value)
}

// Clear remove a chave.
func (d *Document[T]) Clear(ctx context.Context) error {
	if err := d.store.Delete(ctx, d.key); err != nil {
		return apperror.NewStorageError(d.key, "falha ao remover documento", err)
	}
	return nil
}

func (d *Document[T]) write(ctx context.Context, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return apperror.NewStorageError(d.key, "falha ao serializar documento", err)
	}
	if err := d.store.Set(ctx, d.key, string(data)); err != nil {
		return apperror.NewStorageError(d.key, "falha ao gravar documento", err)
	}
	return nil
}
