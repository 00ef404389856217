package gitlab

import (
	"context"
	"fmt"
	"net/http"

	"github.com/xanzy/go-gitlab"
	"github.com/ylck/marge-bot/internal/host"
)

// HostClient implements host.Client for GitLab.
type HostClient struct {
	gl    *gitlab.Client
	token string
}

// Option configures the GitLab client.
type Option func(*HostClient)

// WithBaseURL sets a custom base URL (for testing or self-hosted instances).
func WithBaseURL(baseURL string) Option {
	return func(c *HostClient) {
		c.gl, _ = gitlab.NewClient(c.token, gitlab.WithBaseURL(baseURL+"/api/v4"))
	}
}

// New creates a new GitLab host client.
func New(token string, opts ...Option) *HostClient {
	gl, _ := gitlab.NewClient(token)
	c := &HostClient{gl: gl, token: token}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Version fetches and parses the instance version descriptor.
func (c *HostClient) Version(ctx context.Context) (*host.Version, error) {
	v, _, err := c.gl.Version.GetVersion(gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetching instance version: %w", err)
	}
	return host.ParseVersion(v.Version)
}

// MergeRequest resolves the full reference for a merge request, including
// the global database id old instances need for addressing.
func (c *HostClient) MergeRequest(ctx context.Context, projectID, iid int) (host.MergeRequestRef, error) {
	mr, _, err := c.gl.MergeRequests.GetMergeRequest(projectID, iid, nil, gitlab.WithContext(ctx))
	if err != nil {
		return host.MergeRequestRef{}, fmt.Errorf("fetching merge request: %w", err)
	}
	return host.MergeRequestRef{
		ProjectID: projectID,
		IID:       mr.IID,
		LegacyID:  mr.ID,
	}, nil
}

// Approvals fetches the native approvals resource. The URL is built by hand
// because the id form depends on the instance version.
func (c *HostClient) Approvals(ctx context.Context, ref host.MergeRequestRef, v *host.Version) (*host.ApprovalsPayload, error) {
	path := fmt.Sprintf("projects/%d/merge_requests/%d/approvals", ref.ProjectID, ref.EndpointID(v))

	req, err := c.gl.NewRequest(http.MethodGet, path, nil, []gitlab.RequestOptionFunc{gitlab.WithContext(ctx)})
	if err != nil {
		return nil, fmt.Errorf("building approvals request: %w", err)
	}

	payload := new(host.ApprovalsPayload)
	if _, err := c.gl.Do(req, payload); err != nil {
		return nil, fmt.Errorf("fetching approvals: %w", err)
	}
	return payload, nil
}

// Changes lists the files changed by a merge request.
func (c *HostClient) Changes(ctx context.Context, ref host.MergeRequestRef) ([]host.ChangedFile, error) {
	mr, _, err := c.gl.MergeRequests.GetMergeRequestChanges(ref.ProjectID, ref.IID, nil, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetching merge request changes: %w", err)
	}

	changes := make([]host.ChangedFile, len(mr.Changes))
	for i, ch := range mr.Changes {
		changes[i] = host.ChangedFile{NewPath: ch.NewPath}
	}
	return changes, nil
}

// AwardEmoji lists the emoji reactions on a merge request.
func (c *HostClient) AwardEmoji(ctx context.Context, ref host.MergeRequestRef) ([]host.Reaction, error) {
	awards, _, err := c.gl.AwardEmoji.ListMergeRequestAwardEmoji(ref.ProjectID, ref.IID, nil, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("listing award emoji: %w", err)
	}

	reactions := make([]host.Reaction, len(awards))
	for i, a := range awards {
		reactions[i] = host.Reaction{
			Name: a.Name,
			User: host.User{
				ID:       a.User.ID,
				Username: a.User.Username,
				Name:     a.User.Name,
			},
		}
	}
	return reactions, nil
}

// RawFile fetches the raw content of a file on a branch. A missing file is
// reported as (nil, nil), not an error.
func (c *HostClient) RawFile(ctx context.Context, projectID int, path, ref string) ([]byte, error) {
	content, resp, err := c.gl.RepositoryFiles.GetRawFile(projectID, path, &gitlab.GetRawFileOptions{
		Ref: &ref,
	}, gitlab.WithContext(ctx))
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("fetching file %s: %w", path, err)
	}
	return content, nil
}

// Approve submits an approval, impersonating asUserID when positive.
func (c *HostClient) Approve(ctx context.Context, ref host.MergeRequestRef, v *host.Version, asUserID int) error {
	path := fmt.Sprintf("projects/%d/merge_requests/%d/approve", ref.ProjectID, ref.EndpointID(v))

	opts := []gitlab.RequestOptionFunc{gitlab.WithContext(ctx)}
	if asUserID > 0 {
		opts = append(opts, gitlab.WithSudo(asUserID))
	}

	req, err := c.gl.NewRequest(http.MethodPost, path, nil, opts)
	if err != nil {
		return fmt.Errorf("building approve request: %w", err)
	}
	if _, err := c.gl.Do(req, nil); err != nil {
		return fmt.Errorf("approving merge request: %w", err)
	}
	return nil
}
