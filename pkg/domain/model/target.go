package model

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
)

// PublishTarget is the pull request build a release is published from
type PublishTarget struct {
	Repo       RepositoryRef
	PRNumber   int
	HeadBranch string // Expected head branch of the workflow run
	HeadSHA    string // Expected head commit of the workflow run
	WorkflowID string // Numeric workflow id or workflow file name
}

// Validate checks that all fields required to locate the run are set
func (t *PublishTarget) Validate() error {
	var missing []string
	if t.Repo.Owner == "" || t.Repo.Name == "" {
		missing = append(missing, "repository")
	}
	if t.PRNumber <= 0 {
		missing = append(missing, "pr_number")
	}
	if t.HeadBranch == "" {
		missing = append(missing, "head_branch")
	}
	if t.HeadSHA == "" {
		missing = append(missing, "head_sha")
	}
	if t.WorkflowID == "" {
		missing = append(missing, "workflow_id")
	}

	if len(missing) > 0 {
		return goerr.Wrap(ErrInvalidTarget, "missing required fields", goerr.V("fields", missing))
	}
	return nil
}

// LogValue implements slog.LogValuer
func (t *PublishTarget) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("repo", t.Repo.String()),
		slog.Int("pr_number", t.PRNumber),
		slog.String("head_branch", t.HeadBranch),
		slog.String("head_sha", t.HeadSHA),
		slog.String("workflow_id", t.WorkflowID),
	)
}
