package approvals

import "github.com/ylck/marge-bot/internal/host"

// State is the normalized approval state of a merge request. It is an
// immutable snapshot rebuilt wholesale on every refetch; callers may keep
// or discard it freely.
type State struct {
	ApprovalsLeft int             `json:"approvals_left"`
	ApprovedBy    []host.Approver `json:"approved_by"`

	// Codeowners holds the responsible owner usernames on the emulated
	// path, sorted. It stays empty on the native path.
	Codeowners []string `json:"codeowners"`
}

// Sufficient reports whether no further approvals are required.
func (s *State) Sufficient() bool {
	return s.ApprovalsLeft == 0
}

// ApproverUsernames returns the usernames of everyone who approved.
func (s *State) ApproverUsernames() []string {
	names := make([]string, len(s.ApprovedBy))
	for i, a := range s.ApprovedBy {
		names[i] = a.User.Username
	}
	return names
}

// ApproverIDs returns the user ids of everyone who approved.
func (s *State) ApproverIDs() []int {
	ids := make([]int, len(s.ApprovedBy))
	for i, a := range s.ApprovedBy {
		ids[i] = a.User.ID
	}
	return ids
}
