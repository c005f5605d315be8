package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	apperror "ctrlshirt/internal/errors"
	"ctrlshirt/internal/pkg/logger"
)

// Collection é uma coleção tipada persistida como um único valor JSON.
// Toda escrita é leitura-modificação-escrita do snapshot inteiro; o mutex
// serializa os escritores deste processo. Entre processos vale a última escrita.
type Collection[T any] struct {
	store   Store
	key     string
	idOf    func(T) string
	seed    func() []T
	latency Latency
	logger  logger.Logger

	mu sync.Mutex
}

// CollectionOptions agrupa as dependências de uma coleção.
type CollectionOptions[T any] struct {
	Key     string
	IDOf    func(T) string
	Seed    func() []T
	Latency Latency
	Logger  logger.Logger
}

// NewCollection cria uma coleção sobre o Store.
func NewCollection[T any](store Store, opts CollectionOptions[T]) *Collection[T] {
	seed := opts.Seed
	if seed == nil {
		seed = func() []T { return []T{} }
	}
	return &Collection[T]{
		store:   store,
		key:     opts.Key,
		idOf:    opts.IDOf,
		seed:    seed,
		latency: opts.Latency,
		logger:  opts.Logger,
	}
}

// Key devolve o nome da chave da coleção.
func (c *Collection[T]) Key() string { return c.key }

// snapshot é a coleção decodificada com o índice id -> posição.
type snapshot[T any] struct {
	items []T
	index map[string]int
}

func (c *Collection[T]) newSnapshot(items []T) snapshot[T] {
	index := make(map[string]int, len(items))
	for i, item := range items {
		index[c.idOf(item)] = i
	}
	return snapshot[T]{items: items, index: index}
}

// load lê o snapshot. Chave ausente semeia a coleção com o dataset inicial;
// JSON malformado é falha de armazenamento (não há re-semeadura).
func (c *Collection[T]) load(ctx context.Context) (snapshot[T], error) {
	raw, err := c.store.Get(ctx, c.key)
	if errors.Is(err, ErrNotFound) {
		items := c.seed()
		if err := c.persist(ctx, items); err != nil {
			c.logger.Warn("Falha ao persistir dataset inicial; servindo dados em memória.", map[string]interface{}{"key": c.key, "error": err.Error()})
		} else {
			c.logger.Info("Coleção semeada com dataset inicial.", map[string]interface{}{"key": c.key, "count": len(items)})
		}
		return c.newSnapshot(items), nil
	}
	if err != nil {
		return snapshot[T]{}, apperror.NewStorageError(c.key, "falha ao ler coleção", err)
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		c.logger.Error("Coleção armazenada está malformada.", err)
		return snapshot[T]{}, apperror.NewStorageError(c.key, "coleção armazenada está malformada", err)
	}
	if items == nil {
		items = []T{}
	}
	return c.newSnapshot(items), nil
}

func (c *Collection[T]) persist(ctx context.Context, items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return apperror.NewStorageError(c.key, "falha ao serializar coleção", err)
	}
	if err := c.store.Set(ctx, c.key, string(data)); err != nil {
		return apperror.NewStorageError(c.key, "falha ao gravar coleção", err)
	}
	return nil
}

// List devolve a coleção inteira como está persistida.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	if err := c.latency.Wait(ctx); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	return snap.items, nil
}

// Find busca pelo id usando o índice do snapshot.
func (c *Collection[T]) Find(ctx context.Context, id string) (T, bool, error) {
	var zero T
	if err := c.latency.Wait(ctx); err != nil {
		return zero, false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, err := c.load(ctx)
	if err != nil {
		return zero, false, err
	}
	i, ok := snap.index[id]
	if !ok {
		return zero, false, nil
	}
	return snap.items[i], true, nil
}

// FindFirst devolve o primeiro item que satisfaz o predicado.
func (c *Collection[T]) FindFirst(ctx context.Context, match func(T) bool) (T, bool, error) {
	var zero T
	items, err := c.List(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, item := range items {
		if match(item) {
			return item, true, nil
		}
	}
	return zero, false, nil
}

// Append acrescenta o item ao final e persiste a coleção.
func (c *Collection[T]) Append(ctx context.Context, item T) error {
	return c.Mutate(ctx, func(items []T) ([]T, error) {
		return append(items, item), nil
	})
}

// Insert acrescenta item depois que prepare o ajusta contra os itens já
// gravados (slug livre, código único). Leitura, ajuste e escrita ocorrem sob
// o mesmo mutex; erro de prepare cancela a gravação.
func (c *Collection[T]) Insert(ctx context.Context, item T, prepare func(existing []T, item *T) error) (T, error) {
	err := c.mutate(ctx, func(snap snapshot[T]) ([]T, error) {
		if err := prepare(snap.items, &item); err != nil {
			return nil, err
		}
		return append(snap.items, item), nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return item, nil
}

// ReplaceWith substitui o item de mesmo id depois que prepare o ajusta
// contra o valor gravado e os demais itens, tudo sob o mutex.
// Devolve false se o id não existe.
func (c *Collection[T]) ReplaceWith(ctx context.Context, item T, prepare func(stored T, others []T, item *T) error) (T, bool, error) {
	found := false
	err := c.mutate(ctx, func(snap snapshot[T]) ([]T, error) {
		i, ok := snap.index[c.idOf(item)]
		if !ok {
			return nil, nil
		}
		others := make([]T, 0, len(snap.items)-1)
		others = append(others, snap.items[:i]...)
		others = append(others, snap.items[i+1:]...)
		if err := prepare(snap.items[i], others, &item); err != nil {
			return nil, err
		}
		found = true
		snap.items[i] = item
		return snap.items, nil
	})
	if err != nil || !found {
		var zero T
		return zero, false, err
	}
	return item, true, nil
}

// Replace substitui o item de mesmo id. Devolve false se o id não existe.
func (c *Collection[T]) Replace(ctx context.Context, item T) (bool, error) {
	found := false
	err := c.mutate(ctx, func(snap snapshot[T]) ([]T, error) {
		i, ok := snap.index[c.idOf(item)]
		if !ok {
			return nil, nil
		}
		found = true
		snap.items[i] = item
		return snap.items, nil
	})
	return found, err
}

// Remove exclui o item de mesmo id; id ausente não é erro.
func (c *Collection[T]) Remove(ctx context.Context, id string) error {
	return c.mutate(ctx, func(snap snapshot[T]) ([]T, error) {
		i, ok := snap.index[id]
		if !ok {
			return nil, nil
		}
		return append(snap.items[:i:i], snap.items[i+1:]...), nil
	})
}

// Modify aplica fn ao item de mesmo id dentro de uma única
// leitura-modificação-escrita. Devolve false se o id não existe; se fn
// devolver erro, nada é persistido.
func (c *Collection[T]) Modify(ctx context.Context, id string, fn func(item *T) error) (T, bool, error) {
	var (
		updated T
		found   bool
	)
	err := c.mutate(ctx, func(snap snapshot[T]) ([]T, error) {
		i, ok := snap.index[id]
		if !ok {
			return nil, nil
		}
		if err := fn(&snap.items[i]); err != nil {
			return nil, err
		}
		found = true
		updated = snap.items[i]
		return snap.items, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return updated, found, nil
}

// Mutate executa uma leitura-modificação-escrita arbitrária sob o mutex.
// Se fn devolver erro, nada é persistido.
func (c *Collection[T]) Mutate(ctx context.Context, fn func(items []T) ([]T, error)) error {
	return c.mutate(ctx, func(snap snapshot[T]) ([]T, error) {
		items, err := fn(snap.items)
		if err == nil && items == nil {
			items = []T{}
		}
		return items, err
	})
}

// mutate persiste o resultado de fn; resultado nil significa "não gravar".
func (c *Collection[T]) mutate(ctx context.Context, fn func(snapshot[T]) ([]T, error)) error {
	if err := c.latency.Wait(ctx); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, err := c.load(ctx)
	if err != nil {
		return err
	}
	items, err := fn(snap)
	if err != nil {
		return err
	}
	if items == nil {
		return nil
	}
	return c.persist(ctx, items)
}
