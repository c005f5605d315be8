package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"ctrlshirt/internal/pkg/kvstore"
	"ctrlshirt/internal/pkg/logger"
)

// DefaultIdleTimeout é o tempo sem acesso após o qual uma sessão sai da memória.
const DefaultIdleTimeout = 30 * time.Minute

// Registry mantém um State por id de sessão, carregado sob demanda do
// armazenamento com as chaves sufixadas pelo id. Sessões sem acesso há mais
// de idleTimeout são descartadas por Sweep; como todo sub-estado já está
// gravado, o próximo Get as restaura do armazenamento.
type Registry struct {
	mu          sync.Mutex
	states      map[string]*entry
	idleTimeout time.Duration
	now         func() time.Time

	store  kvstore.Store
	keys   Keys
	auth   *Authenticator
	logger logger.Logger
}

type entry struct {
	state    *State
	lastSeen time.Time
}

// NewRegistry cria o registro de sessões.
func NewRegistry(store kvstore.Store, keyPrefix string, auth *Authenticator, logger logger.Logger) *Registry {
	return &Registry{
		states:      make(map[string]*entry),
		idleTimeout: DefaultIdleTimeout,
		now:         time.Now,
		store:       store,
		keys:        DefaultKeys(keyPrefix),
		auth:        auth,
		logger:      logger,
	}
}

// WithIdleTimeout ajusta o tempo de ociosidade; valores <= 0 são ignorados.
func (r *Registry) WithIdleTimeout(d time.Duration) *Registry {
	if d > 0 {
		r.idleTimeout = d
	}
	return r
}

// NewID gera um id de sessão.
func (r *Registry) NewID() string {
	return uuid.New().String()
}

// ValidID informa se o id tem o formato gerado por NewID.
func (r *Registry) ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Get devolve o estado da sessão, restaurando-o do armazenamento no primeiro
// acesso ou depois de uma expulsão por ociosidade.
func (r *Registry) Get(ctx context.Context, id string) *State {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.states[id]; ok {
		e.lastSeen = r.now()
		return e.state
	}
	s := NewState(ctx, r.store, r.keys.ForSession(id), r.auth, r.logger)
	r.states[id] = &entry{state: s, lastSeen: r.now()}
	r.logger.Debug("Sessão carregada.", map[string]interface{}{"session_id": id})
	return s
}

// Len devolve quantas sessões estão em memória.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}

// Sweep remove da memória as sessões ociosas e devolve quantas saíram.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.idleTimeout)
	evicted := 0
	for id, e := range r.states {
		if e.lastSeen.Before(cutoff) {
			delete(r.states, id)
			evicted++
		}
	}
	if evicted > 0 {
		r.logger.Debug("Sessões ociosas descartadas.", map[string]interface{}{"evicted": evicted, "remaining": len(r.states)})
	}
	return evicted
}

// Run chama Sweep a cada interval até ctx ser cancelado.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
