package usecase

import (
	"fmt"
	"strings"

	"github.com/google/go-github/v75/github"
)

const runEventPullRequest = "pull_request"

// SelectRun returns the first run triggered by a pull_request event for the given head commit and
// branch. Runs are listed newest first, so the most recent matching run wins. nil means no match.
func SelectRun(runs []*github.WorkflowRun, headSHA, headBranch string) *github.WorkflowRun {
	for _, run := range runs {
		if run.GetHeadSHA() == headSHA &&
			run.GetHeadBranch() == headBranch &&
			run.GetEvent() == runEventPullRequest {
			return run
		}
	}
	return nil
}

// SelectArtifact returns the first artifact whose name contains "-PR-<prNumber>-" after its first
// character. nil means no match.
func SelectArtifact(artifacts []*github.Artifact, prNumber int) *github.Artifact {
	marker := prMarker(prNumber)
	for _, artifact := range artifacts {
		if strings.Index(artifact.GetName(), marker) > 0 {
			return artifact
		}
	}
	return nil
}

func prMarker(prNumber int) string {
	return fmt.Sprintf("-PR-%d-", prNumber)
}
