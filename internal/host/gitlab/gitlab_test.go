package gitlab

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ylck/marge-bot/internal/host"
)

var testRef = host.MergeRequestRef{ProjectID: 5, IID: 42, LegacyID: 1042}

func mustParseVersion(t *testing.T, raw string) *host.Version {
	t.Helper()
	v, err := host.ParseVersion(raw)
	if err != nil {
		t.Fatalf("ParseVersion(%q) error = %v", raw, err)
	}
	return v
}

func TestHostClient_Version(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v4/version" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("PRIVATE-TOKEN") != "test-token" {
			t.Errorf("missing or incorrect token header")
		}
		fmt.Fprint(w, `{"version":"9.1.0-ee","revision":"deadbeef"}`)
	}))
	defer server.Close()

	c := New("test-token", WithBaseURL(server.URL))
	v, err := c.Version(context.Background())
	if err != nil {
		t.Fatalf("Version() error = %v", err)
	}

	if !v.EE {
		t.Error("EE = false, want true")
	}
	if !v.UsesLegacyID() {
		t.Error("UsesLegacyID() = false, want true for 9.1.0")
	}
}

func TestHostClient_MergeRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v4/projects/5/merge_requests/42" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"id":1042,"iid":42,"project_id":5}`)
	}))
	defer server.Close()

	c := New("test-token", WithBaseURL(server.URL))
	ref, err := c.MergeRequest(context.Background(), 5, 42)
	if err != nil {
		t.Fatalf("MergeRequest() error = %v", err)
	}

	if ref != testRef {
		t.Errorf("ref = %+v, want %+v", ref, testRef)
	}
}

func TestHostClient_Approvals_IDForm(t *testing.T) {
	tests := []struct {
		version  string
		wantPath string
	}{
		{"9.2.2-ee", "/api/v4/projects/5/merge_requests/42/approvals"},
		{"9.1.0-ee", "/api/v4/projects/5/merge_requests/1042/approvals"},
	}

	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != tt.wantPath {
				t.Errorf("version %s: path = %s, want %s", tt.version, r.URL.Path, tt.wantPath)
			}
			fmt.Fprint(w, `{"approvals_left":1,"approved_by":[{"user":{"id":7,"username":"dave","name":"Dave"}}]}`)
		}))

		c := New("test-token", WithBaseURL(server.URL))
		payload, err := c.Approvals(context.Background(), testRef, mustParseVersion(t, tt.version))
		if err != nil {
			t.Fatalf("Approvals() error = %v", err)
		}

		if payload.ApprovalsLeft != 1 {
			t.Errorf("ApprovalsLeft = %d, want 1", payload.ApprovalsLeft)
		}
		if len(payload.ApprovedBy) != 1 || payload.ApprovedBy[0].User.Username != "dave" {
			t.Errorf("ApprovedBy = %+v, want one entry for dave", payload.ApprovedBy)
		}

		server.Close()
	}
}

func TestHostClient_Changes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v4/projects/5/merge_requests/42/changes" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"id":1042,"iid":42,"changes":[{"old_path":"x.py","new_path":"x.py"},{"old_path":"y.go","new_path":"z.go"}]}`)
	}))
	defer server.Close()

	c := New("test-token", WithBaseURL(server.URL))
	changes, err := c.Changes(context.Background(), testRef)
	if err != nil {
		t.Fatalf("Changes() error = %v", err)
	}

	if len(changes) != 2 {
		t.Fatalf("len(changes) = %d, want 2", len(changes))
	}
	if changes[1].NewPath != "z.go" {
		t.Errorf("changes[1].NewPath = %q, want %q", changes[1].NewPath, "z.go")
	}
}

func TestHostClient_AwardEmoji(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v4/projects/5/merge_requests/42/award_emoji" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		fmt.Fprint(w, `[{"id":1,"name":"thumbsup","user":{"id":3,"username":"alice","name":"Alice"}},{"id":2,"name":"rocket","user":{"id":9,"username":"mallory","name":"Mallory"}}]`)
	}))
	defer server.Close()

	c := New("test-token", WithBaseURL(server.URL))
	reactions, err := c.AwardEmoji(context.Background(), testRef)
	if err != nil {
		t.Fatalf("AwardEmoji() error = %v", err)
	}

	if len(reactions) != 2 {
		t.Fatalf("len(reactions) = %d, want 2", len(reactions))
	}
	if reactions[0].Name != "thumbsup" || reactions[0].User.Username != "alice" || reactions[0].User.ID != 3 {
		t.Errorf("reactions[0] = %+v, want thumbsup from alice (id 3)", reactions[0])
	}
}

func TestHostClient_RawFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v4/projects/5/repository/files/CODEOWNERS/raw" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("ref") != "master" {
			t.Errorf("ref = %q, want %q", r.URL.Query().Get("ref"), "master")
		}
		fmt.Fprint(w, "* alice bob\n")
	}))
	defer server.Close()

	c := New("test-token", WithBaseURL(server.URL))
	content, err := c.RawFile(context.Background(), 5, "CODEOWNERS", "master")
	if err != nil {
		t.Fatalf("RawFile() error = %v", err)
	}

	if string(content) != "* alice bob\n" {
		t.Errorf("content = %q, want %q", content, "* alice bob\n")
	}
}

func TestHostClient_RawFile_Missing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"404 File Not Found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	c := New("test-token", WithBaseURL(server.URL))
	content, err := c.RawFile(context.Background(), 5, "CODEOWNERS", "master")
	if err != nil {
		t.Fatalf("RawFile() should not error for a missing file, got: %v", err)
	}
	if content != nil {
		t.Errorf("content = %q, want nil for a missing file", content)
	}
}

func TestHostClient_Approve_Impersonates(t *testing.T) {
	var gotPath, gotSudo, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSudo = r.Header.Get("SUDO")
		gotMethod = r.Method
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	c := New("test-token", WithBaseURL(server.URL))
	err := c.Approve(context.Background(), testRef, mustParseVersion(t, "13.2.1-ee"), 7)
	if err != nil {
		t.Fatalf("Approve() error = %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("method = %q, want POST", gotMethod)
	}
	if gotPath != "/api/v4/projects/5/merge_requests/42/approve" {
		t.Errorf("path = %q, want the iid form", gotPath)
	}
	if gotSudo != "7" {
		t.Errorf("SUDO header = %q, want %q", gotSudo, "7")
	}
}

func TestHostClient_Approve_LegacyIDForm(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	c := New("test-token", WithBaseURL(server.URL))
	err := c.Approve(context.Background(), testRef, mustParseVersion(t, "9.1.0-ee"), 0)
	if err != nil {
		t.Fatalf("Approve() error = %v", err)
	}

	if gotPath != "/api/v4/projects/5/merge_requests/1042/approve" {
		t.Errorf("path = %q, want the legacy id form", gotPath)
	}
}
