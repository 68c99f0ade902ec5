package entitlement

import (
	"context"

	"github.com/devicedash/devicedash/internal/shared/types"
)

// Resolver answers "does the current user hold capability X". The engine
// consumes it read-only: entitlement is never inferred from any other
// signal, and the three flags are independent.
//
// Current returns a synchronous snapshot; Refresh updates the state
// asynchronously and notifies subscribers on change. A failed refresh
// leaves the last-known snapshot in effect.
type Resolver interface {
	Current() types.Entitlement
	Refresh(ctx context.Context) error
	Subscribe() (<-chan struct{}, func())
}
