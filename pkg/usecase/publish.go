package usecase

import (
	"context"
	"log/slog"

	"github.com/google/go-github/v75/github"
	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prship/pkg/domain/interfaces"
	"github.com/m-mizutani/prship/pkg/domain/model"
)

const conclusionSuccess = "success"

type publishUseCase struct {
	githubClient interfaces.GitHubClient
	notifier     interfaces.Notifier
}

// PublishOption configures the publish use case
type PublishOption func(*publishUseCase)

// WithNotifier sets a notifier called after the asset is uploaded
func WithNotifier(notifier interfaces.Notifier) PublishOption {
	return func(uc *publishUseCase) {
		uc.notifier = notifier
	}
}

// NewPublish creates a new instance of PublishUseCase
func NewPublish(githubClient interfaces.GitHubClient, opts ...PublishOption) interfaces.PublishUseCase {
	uc := &publishUseCase{
		githubClient: githubClient,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Publish finds the artifact built for the pull request, creates a release named after the
// version embedded in the artifact name and uploads the artifact to it.
// Nothing is rolled back: if the upload fails, the created release stays in place.
func (uc *publishUseCase) Publish(ctx context.Context, target *model.PublishTarget) (*model.PublishResult, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	logger := ctxlog.From(ctx).With(slog.String("publish_id", uuid.NewString()))
	ctx = ctxlog.With(ctx, logger)
	owner, repo := target.Repo.Owner, target.Repo.Name

	logger.Info("Get pull request", slog.Any("target", target))
	pr, err := uc.githubClient.GetPullRequest(ctx, owner, repo, target.PRNumber)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get pull request",
			goerr.V("repo", target.Repo.String()),
			goerr.V("pr_number", target.PRNumber),
		)
	}
	logger.Info("Got pull request", "number", pr.GetNumber(), "body", pr.GetBody())

	run, err := uc.findRun(ctx, target)
	if err != nil {
		return nil, err
	}

	artifact, err := uc.findArtifact(ctx, target, run)
	if err != nil {
		return nil, err
	}

	version, err := model.ParseVersion(artifact.GetName())
	if err != nil {
		logger.Error("Invalid artifact name", "artifact_name", artifact.GetName())
		return nil, err
	}
	logger.Info("Parsed version", "version", version.String())

	logger.Info("Download artifact", "artifact_id", artifact.GetID(), "artifact_name", artifact.GetName())
	content, err := uc.githubClient.DownloadArtifact(ctx, owner, repo, artifact.GetID())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to download artifact",
			goerr.V("artifact_id", artifact.GetID()),
			goerr.V("artifact_name", artifact.GetName()),
		)
	}
	logger.Info("Downloaded artifact", "size_bytes", len(content))

	body := pr.GetBody()
	if body == "" {
		body = "release " + version.String()
	}

	logger.Info("Create release", "tag_name", version.Tag())
	release, err := uc.githubClient.CreateRelease(ctx, owner, repo, &github.RepositoryRelease{
		TagName: github.Ptr(version.Tag()),
		Name:    github.Ptr(version.Tag()),
		Body:    github.Ptr(body),
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create release", goerr.V("tag_name", version.Tag()))
	}

	asset := &model.AssetUpload{
		Name:      artifact.GetName(),
		MediaType: model.MediaTypeZip,
		Content:   content,
	}
	logger.Info("Upload asset", "release_id", release.GetID(), "asset_name", asset.Name, "size_bytes", asset.Size())
	uploaded, err := uc.githubClient.UploadReleaseAsset(ctx, owner, repo, release.GetID(), asset)
	if err != nil {
		logger.Error("Release created but asset upload failed",
			"release_id", release.GetID(),
			"tag_name", version.Tag(),
			"error", err,
		)
		return nil, goerr.Wrap(err, "failed to upload release asset",
			goerr.V("release_id", release.GetID()),
			goerr.V("asset_name", asset.Name),
		)
	}

	result := &model.PublishResult{
		Repo:       target.Repo,
		PRNumber:   target.PRNumber,
		Version:    version.String(),
		TagName:    version.Tag(),
		ReleaseID:  release.GetID(),
		ReleaseURL: release.GetHTMLURL(),
		AssetName:  asset.Name,
		AssetSize:  asset.Size(),
	}
	logger.Info("Published release",
		"tag_name", result.TagName,
		"asset_id", uploaded.GetID(),
		"release_url", result.ReleaseURL,
		"asset_name", result.AssetName,
	)

	if uc.notifier != nil {
		if err := uc.notifier.NotifyRelease(ctx, result); err != nil {
			logger.Warn("Failed to notify release", "error", err, "tag_name", result.TagName)
		}
	}

	return result, nil
}

func (uc *publishUseCase) findRun(ctx context.Context, target *model.PublishTarget) (*github.WorkflowRun, error) {
	logger := ctxlog.From(ctx)

	logger.Info("Get workflow runs", "workflow_id", target.WorkflowID)
	runs, err := uc.githubClient.ListWorkflowRuns(ctx, target.Repo.Owner, target.Repo.Name, target.WorkflowID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list workflow runs", goerr.V("workflow_id", target.WorkflowID))
	}

	run := SelectRun(runs, target.HeadSHA, target.HeadBranch)
	if run == nil {
		logger.Error("No matching workflow run",
			"workflow_id", target.WorkflowID,
			"head_sha", target.HeadSHA,
			"head_branch", target.HeadBranch,
			"candidates", len(runs),
		)
		return nil, goerr.Wrap(model.ErrRunNotFound, "no pull_request run for head commit",
			goerr.V("workflow_id", target.WorkflowID),
			goerr.V("head_sha", target.HeadSHA),
			goerr.V("head_branch", target.HeadBranch),
		)
	}

	// The listing is already filtered on success; re-check the selected run anyway.
	if run.GetConclusion() != conclusionSuccess {
		logger.Error("Workflow run did not succeed",
			"run_id", run.GetID(),
			"conclusion", run.GetConclusion(),
			"status", run.GetStatus(),
			"html_url", run.GetHTMLURL(),
		)
		return nil, goerr.Wrap(model.ErrRunFailed, "workflow run did not succeed",
			goerr.V("run_id", run.GetID()),
			goerr.V("conclusion", run.GetConclusion()),
		)
	}

	return run, nil
}

func (uc *publishUseCase) findArtifact(ctx context.Context, target *model.PublishTarget, run *github.WorkflowRun) (*github.Artifact, error) {
	logger := ctxlog.From(ctx)

	logger.Info("Get artifacts", "run_id", run.GetID())
	artifacts, err := uc.githubClient.ListRunArtifacts(ctx, target.Repo.Owner, target.Repo.Name, run.GetID())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list run artifacts", goerr.V("run_id", run.GetID()))
	}

	if len(artifacts) == 0 {
		logger.Error("Workflow run has no artifact", "run_id", run.GetID())
		return nil, goerr.Wrap(model.ErrNoArtifact, "run has no artifacts", goerr.V("run_id", run.GetID()))
	}

	artifact := SelectArtifact(artifacts, target.PRNumber)
	if artifact == nil {
		names := make([]string, 0, len(artifacts))
		for _, a := range artifacts {
			names = append(names, a.GetName())
		}
		logger.Error("No artifact for pull request", "run_id", run.GetID(), "marker", prMarker(target.PRNumber), "artifacts", names)
		return nil, goerr.Wrap(model.ErrNoArtifact, "no artifact named for pull request",
			goerr.V("run_id", run.GetID()),
			goerr.V("pr_number", target.PRNumber),
		)
	}

	logger.Info("Found artifact", "artifact_id", artifact.GetID(), "artifact_name", artifact.GetName())
	return artifact, nil
}
