package interfaces

import (
	"context"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/prship/pkg/domain/model"
)

// GitHubClient defines operations for interacting with GitHub API
type GitHubClient interface {
	// GetPullRequest fetches a pull request by number
	GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error)

	// ListWorkflowRuns lists successful runs of a workflow. workflowID is a numeric id or a workflow file name
	ListWorkflowRuns(ctx context.Context, owner, repo, workflowID string) ([]*github.WorkflowRun, error)

	// ListRunArtifacts lists artifacts attached to a workflow run
	ListRunArtifacts(ctx context.Context, owner, repo string, runID int64) ([]*github.Artifact, error)

	// DownloadArtifact downloads the zip archive of an artifact
	DownloadArtifact(ctx context.Context, owner, repo string, artifactID int64) ([]byte, error)

	// CreateRelease creates a new release
	CreateRelease(ctx context.Context, owner, repo string, release *github.RepositoryRelease) (*github.RepositoryRelease, error)

	// UploadReleaseAsset attaches binary content to a release
	UploadReleaseAsset(ctx context.Context, owner, repo string, releaseID int64, asset *model.AssetUpload) (*github.ReleaseAsset, error)
}
