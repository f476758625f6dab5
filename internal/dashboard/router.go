// Package dashboard selects which dashboard view a user sees based on their
// subscription tier.
package dashboard

import (
	"context"
	"sync"

	"thakirni-app/internal/domain/billing"

	"github.com/google/uuid"
)

// View is a dashboard view key the client renders.
type View string

const (
	// ViewSkeleton is the placeholder rendered while the subscription lookup
	// is still pending.
	ViewSkeleton View = "skeleton"

	ViewIndividual View = "individual"

	// ViewTeam is shared by the team and company tiers until differentiated
	// views exist.
	ViewTeam View = "team"
)

// SubscriptionLookup resolves the subscription tier for a user.
type SubscriptionLookup interface {
	Tier(ctx context.Context, userID uuid.UUID) (string, error)
}

// ResolveView maps a tier to its view. The individual view is the default
// for empty and unrecognized tiers; team and company alias one view.
func ResolveView(tier string) View {
	switch billing.NormalizeTier(tier) {
	case billing.TierTeam, billing.TierCompany:
		return ViewTeam
	default:
		return ViewIndividual
	}
}

// Router runs the tier lookup and exposes the current view. Nothing is
// persisted; every Resolve starts from the skeleton state again.
type Router struct {
	lookup SubscriptionLookup
}

func NewRouter(lookup SubscriptionLookup) *Router {
	return &Router{lookup: lookup}
}

// Resolution is the state of one routing decision.
type Resolution struct {
	mu   sync.Mutex
	view View
	err  error
	done chan struct{}
}

// View returns the current view: the skeleton until the lookup resolves.
func (r *Resolution) View() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view
}

// Err returns the lookup error, if any, once resolved.
func (r *Resolution) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Done is closed when the lookup has resolved.
func (r *Resolution) Done() <-chan struct{} {
	return r.done
}

// Resolve starts the tier lookup for userID and returns immediately with a
// resolution rendering the skeleton. A failed lookup falls back to the
// individual view rather than blocking the dashboard.
func (rt *Router) Resolve(ctx context.Context, userID uuid.UUID) *Resolution {
	res := &Resolution{view: ViewSkeleton, done: make(chan struct{})}

	go func() {
		tier, err := rt.lookup.Tier(ctx, userID)

		res.mu.Lock()
		if err != nil {
			res.err = err
			res.view = ViewIndividual
		} else {
			res.view = ResolveView(tier)
		}
		res.mu.Unlock()
		close(res.done)
	}()

	return res
}
