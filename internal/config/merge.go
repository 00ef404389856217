package config

// MergedPolicy is the owner-file policy that applies to one project after
// layering its overrides over the server defaults.
type MergedPolicy struct {
	OwnersFile string
	Branch     string
}

// MergePolicy merges the server-wide approvals config with a project's
// config. Project values take precedence when non-empty.
func MergePolicy(server *Config, project *ProjectConfig) *MergedPolicy {
	return &MergedPolicy{
		OwnersFile: coalesce(project.Approvals.OwnersFile, server.Approvals.OwnersFile),
		Branch:     coalesce(project.Approvals.Branch, server.Approvals.Branch),
	}
}

func coalesce(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
