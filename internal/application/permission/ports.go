package permission

import (
	"context"

	domperm "github.com/jhoicas/Estoque-api/internal/domain/permission"
)

// SnapshotCache cache opcional del snapshot de permisos por usuario.
// Get devuelve (nil, false, nil) cuando no hay entrada.
type SnapshotCache interface {
	Get(ctx context.Context, userID string) (*domperm.Snapshot, bool, error)
	Set(ctx context.Context, snapshot domperm.Snapshot) error
	Invalidate(ctx context.Context, userID string) error
}

// Observer recibe las decisiones del resolvedor y los accesos al cache (métricas).
type Observer interface {
	ObservePermissionDecision(rule string, allowed bool)
	ObserveCache(result string)
}

type nopObserver struct{}

func (nopObserver) ObservePermissionDecision(string, bool) {}
func (nopObserver) ObserveCache(string)                    {}
