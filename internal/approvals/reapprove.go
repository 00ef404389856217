package approvals

import (
	"context"
	"errors"

	"github.com/ylck/marge-bot/internal/metrics"
)

// ErrNoState indicates Reapprove was called before any successful Refetch.
var ErrNoState = errors.New("approval state not fetched")

// Reapprove re-submits approvals as each recorded approver. The bot pushes
// a rebased branch, which can invalidate approvals depending on host
// settings, and this restores them.
//
// Only Enterprise instances have an approve action to replay. On the
// emulated path approvals exist as emoji reactions that cannot be
// reproduced by impersonation, so this is a logged no-op there. A failed
// impersonated approval aborts the remaining sequence.
func (r *Resolver) Reapprove(ctx context.Context) error {
	if r.state == nil {
		return ErrNoState
	}

	v, err := r.client.Version(ctx)
	if err != nil {
		return err
	}
	if !v.EE {
		r.log.Info("instance has no native approvals, nothing to re-approve")
		return nil
	}

	for _, uid := range r.state.ApproverIDs() {
		if err := r.client.Approve(ctx, r.ref, v, uid); err != nil {
			metrics.Reapproval("error")
			return err
		}
		metrics.Reapproval("ok")
	}
	return nil
}
