package host

import "context"

// Client defines the host API operations the approvals core depends on.
type Client interface {
	// Version fetches the host's version and edition descriptor.
	Version(ctx context.Context) (*Version, error)

	// MergeRequest resolves a full reference (including the legacy global
	// id) for a merge request addressed by project and iteration id.
	MergeRequest(ctx context.Context, projectID, iid int) (MergeRequestRef, error)

	// Approvals fetches the native approvals resource. The id form of the
	// endpoint depends on the host version.
	Approvals(ctx context.Context, ref MergeRequestRef, v *Version) (*ApprovalsPayload, error)

	// Changes lists the files changed by a merge request.
	Changes(ctx context.Context, ref MergeRequestRef) ([]ChangedFile, error)

	// AwardEmoji lists the emoji reactions on a merge request.
	AwardEmoji(ctx context.Context, ref MergeRequestRef) ([]Reaction, error)

	// RawFile fetches the raw content of a file on a branch. Returns
	// (nil, nil) when the file does not exist on that branch.
	RawFile(ctx context.Context, projectID int, path, ref string) ([]byte, error)

	// Approve submits an approval on a merge request. When asUserID is
	// positive the call impersonates that user. The id form of the
	// endpoint depends on the host version.
	Approve(ctx context.Context, ref MergeRequestRef, v *Version, asUserID int) error
}
