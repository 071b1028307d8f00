package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prship/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Target holds the pull request build to publish. Defaults match the variables set by the
// release workflow.
type Target struct {
	Repository string
	PRNumber   int
	HeadBranch string
	HeadSHA    string
	WorkflowID string
}

// Flags returns CLI flags for the publish target
func (c *Target) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository",
			Usage:       "Target repository as owner/name",
			Required:    true,
			Destination: &c.Repository,
			Sources:     cli.EnvVars("GITHUB_REPOSITORY"),
		},
		&cli.IntFlag{
			Name:        "pr-number",
			Usage:       "Pull request number",
			Required:    true,
			Destination: &c.PRNumber,
			Sources:     cli.EnvVars("GITHUB_PR_NUM"),
		},
		&cli.StringFlag{
			Name:        "head-branch",
			Usage:       "Head branch of the pull request build",
			Required:    true,
			Destination: &c.HeadBranch,
			Sources:     cli.EnvVars("HEAD_BRANCH"),
		},
		&cli.StringFlag{
			Name:        "head-sha",
			Usage:       "Head commit SHA of the pull request build",
			Required:    true,
			Destination: &c.HeadSHA,
			Sources:     cli.EnvVars("HEAD_SHA"),
		},
		&cli.StringFlag{
			Name:        "workflow-id",
			Usage:       "Workflow ID or workflow file name (e.g. build.yml)",
			Required:    true,
			Destination: &c.WorkflowID,
			Sources:     cli.EnvVars("WORKFLOW_ID"),
		},
	}
}

// Build returns a validated publish target
func (c *Target) Build() (*model.PublishTarget, error) {
	repo, err := model.ParseRepositoryRef(c.Repository)
	if err != nil {
		return nil, err
	}

	target := &model.PublishTarget{
		Repo:       repo,
		PRNumber:   c.PRNumber,
		HeadBranch: c.HeadBranch,
		HeadSHA:    c.HeadSHA,
		WorkflowID: c.WorkflowID,
	}
	if err := target.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid publish target")
	}

	return target, nil
}
