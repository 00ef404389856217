package approvals

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/ylck/marge-bot/internal/host"
	"github.com/ylck/marge-bot/internal/metrics"
)

// Default locations of the owner-declaration file.
const (
	DefaultOwnersFile = "CODEOWNERS"
	DefaultBranch     = "master"
)

// Policy says where the owner-declaration file lives.
type Policy struct {
	OwnersFile string
	Branch     string
}

// Resolver computes the approval state of one merge request. It routes to
// the host's native approvals resource on Enterprise instances and
// emulates approvals from code owners and emoji reactions everywhere else.
type Resolver struct {
	client host.Client
	ref    host.MergeRequestRef
	policy Policy
	log    *logrus.Entry

	state *State
}

// NewResolver creates a resolver for one merge request.
func NewResolver(client host.Client, ref host.MergeRequestRef, policy Policy, log *logrus.Entry) *Resolver {
	if policy.OwnersFile == "" {
		policy.OwnersFile = DefaultOwnersFile
	}
	if policy.Branch == "" {
		policy.Branch = DefaultBranch
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	return &Resolver{
		client: client,
		ref:    ref,
		policy: policy,
		log: log.WithFields(logrus.Fields{
			"project": ref.ProjectID,
			"mr":      ref.IID,
		}),
	}
}

// State returns the snapshot produced by the last successful Refetch, or
// nil before the first one.
func (r *Resolver) State() *State {
	return r.state
}

// Refetch recomputes the approval state from the host and replaces the
// cached snapshot. The version probe decides the backend; its failure is
// fatal because routing cannot be done without it.
func (r *Resolver) Refetch(ctx context.Context) (*State, error) {
	v, err := r.client.Version(ctx)
	if err != nil {
		metrics.Refetch("unknown", "error")
		return nil, err
	}

	backend := "emulated"
	if v.EE {
		backend = "native"
	}

	var state *State
	if v.EE {
		state, err = r.fetchNative(ctx, v)
	} else {
		state, err = r.fetchEmulated(ctx)
	}
	if err != nil {
		metrics.Refetch(backend, "error")
		return nil, err
	}

	metrics.Refetch(backend, "ok")
	r.state = state
	return state, nil
}

// fetchNative trusts the host's approvals resource verbatim. Codeowners is
// not a native concept, so it stays empty.
func (r *Resolver) fetchNative(ctx context.Context, v *host.Version) (*State, error) {
	payload, err := r.client.Approvals(ctx, r.ref, v)
	if err != nil {
		return nil, err
	}
	return &State{
		ApprovalsLeft: payload.ApprovalsLeft,
		ApprovedBy:    payload.ApprovedBy,
		Codeowners:    []string{},
	}, nil
}

// fetchEmulated synthesizes an approval state from the owner-declaration
// file and thumbs-up reactions.
func (r *Resolver) fetchEmulated(ctx context.Context) (*State, error) {
	content, err := r.client.RawFile(ctx, r.ref.ProjectID, r.policy.OwnersFile, r.policy.Branch)
	if err != nil {
		return nil, err
	}

	rules := Rules{}
	if content != nil {
		rules, err = ParseOwnerRules(string(content))
		if err != nil {
			return nil, err
		}
	}
	if len(rules) == 0 {
		r.log.Infof("no %s file in %s, continuing without approvers flow", r.policy.OwnersFile, r.policy.Branch)
		metrics.ShortCircuit("no_rules")
		return emptyState(), nil
	}

	changes, err := r.client.Changes(ctx, r.ref)
	if err != nil {
		return nil, err
	}

	owners := ResponsibleOwners(rules, changes, r.log)
	if len(owners) == 0 {
		r.log.Info("no matched code owners, continuing without approvers flow")
		metrics.ShortCircuit("no_owners")
		return emptyState(), nil
	}

	reactions, err := r.client.AwardEmoji(ctx, r.ref)
	if err != nil {
		return nil, err
	}

	approvalsLeft, upvotes := Tally(reactions, owners)

	approvedBy := make([]host.Approver, len(upvotes))
	for i, vote := range upvotes {
		approvedBy[i] = host.Approver{User: vote.User}
	}

	codeowners := make([]string, 0, len(owners))
	for owner := range owners {
		codeowners = append(codeowners, owner)
	}
	sort.Strings(codeowners)

	return &State{
		ApprovalsLeft: approvalsLeft,
		ApprovedBy:    approvedBy,
		Codeowners:    codeowners,
	}, nil
}

// emptyState is the zero-required-approvals result used when no owner
// policy applies to the merge request.
func emptyState() *State {
	return &State{
		ApprovalsLeft: 0,
		ApprovedBy:    []host.Approver{},
		Codeowners:    []string{},
	}
}
