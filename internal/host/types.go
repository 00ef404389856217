package host

// MergeRequestRef identifies a merge request on the host.
type MergeRequestRef struct {
	ProjectID int
	IID       int // per-project iteration id
	LegacyID  int // global database id, needed on old hosts
}

// User represents a host user account.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Approver is one entry of an approvals resource's approved_by list.
type Approver struct {
	User User `json:"user"`
}

// Reaction is an emoji award on a merge request.
type Reaction struct {
	Name string `json:"name"`
	User User   `json:"user"`
}

// ChangedFile is a file touched by a merge request. Only the new path
// matters for owner resolution.
type ChangedFile struct {
	NewPath string
}

// ApprovalsPayload is the native approvals resource as the host reports it.
type ApprovalsPayload struct {
	ApprovalsLeft int        `json:"approvals_left"`
	ApprovedBy    []Approver `json:"approved_by"`
}
