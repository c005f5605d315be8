package kvstore

import (
	"context"
	"time"
)

// Latency é o atraso artificial fixo aplicado antes de cada operação da
// camada de dados. Não é timeout nem retry.
type Latency time.Duration

// Wait bloqueia pelo atraso configurado ou até o contexto ser cancelado.
func (l Latency) Wait(ctx context.Context) error {
	if l <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(time.Duration(l))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
