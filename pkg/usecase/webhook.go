package usecase

import (
	"context"
	"encoding/json"
	"path"
	"strconv"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prship/pkg/domain/interfaces"
	"github.com/m-mizutani/prship/pkg/domain/model"
	"github.com/m-mizutani/prship/pkg/utils/async"
)

// DispatchFunc runs a publish job. async.Dispatch by default
type DispatchFunc func(ctx context.Context, handler func(ctx context.Context) error)

type webhookUseCase struct {
	publishUC  interfaces.PublishUseCase
	workflowID string
	dispatch   DispatchFunc
}

// WebhookOption configures the webhook use case
type WebhookOption func(*webhookUseCase)

// WithWorkflow restricts publishing to runs of one workflow, given as numeric id or file name
func WithWorkflow(workflowID string) WebhookOption {
	return func(uc *webhookUseCase) {
		uc.workflowID = workflowID
	}
}

// WithDispatch replaces the function that runs publish jobs
func WithDispatch(dispatch DispatchFunc) WebhookOption {
	return func(uc *webhookUseCase) {
		uc.dispatch = dispatch
	}
}

// NewWebhook creates a new instance of WebhookUseCase
func NewWebhook(publishUC interfaces.PublishUseCase, opts ...WebhookOption) interfaces.WebhookUseCase {
	uc := &webhookUseCase{
		publishUC: publishUC,
		dispatch:  async.Dispatch,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ProcessEvent publishes a release for a completed, successful pull_request workflow run.
// Any other event is logged and ignored.
func (uc *webhookUseCase) ProcessEvent(ctx context.Context, event *model.WebhookEvent) error {
	logger := ctxlog.From(ctx)

	logger.Info("Processing webhook event",
		"id", event.ID,
		"type", event.Type,
		"action", event.Action,
		"repository", event.Repository,
		"sender", event.Sender,
		"supported", event.IsSupportedEvent(),
	)

	if !event.IsSupportedEvent() {
		logger.Debug("Ignoring unsupported event", "type", event.Type, "action", event.Action)
		return nil
	}

	var runEvent github.WorkflowRunEvent
	if err := json.Unmarshal(event.RawPayload, &runEvent); err != nil {
		return goerr.Wrap(err, "failed to unmarshal workflow_run event", goerr.V("id", event.ID))
	}

	target, reason := uc.targetFromRun(&runEvent)
	if target == nil {
		logger.Info("Ignoring workflow run",
			"run_id", runEvent.GetWorkflowRun().GetID(),
			"reason", reason,
		)
		return nil
	}

	logger.Info("Dispatching publish", "target", target, "run_id", runEvent.GetWorkflowRun().GetID())
	uc.dispatch(ctx, func(ctx context.Context) error {
		_, err := uc.publishUC.Publish(ctx, target)
		return err
	})

	return nil
}

// targetFromRun returns nil and the reason when the run must not be published
func (uc *webhookUseCase) targetFromRun(event *github.WorkflowRunEvent) (*model.PublishTarget, string) {
	run := event.GetWorkflowRun()
	if run == nil {
		return nil, "missing workflow_run"
	}
	if run.GetEvent() != runEventPullRequest {
		return nil, "not triggered by pull_request"
	}
	if run.GetConclusion() != conclusionSuccess {
		return nil, "conclusion is " + run.GetConclusion()
	}
	if !uc.matchWorkflow(run) {
		return nil, "other workflow"
	}
	if len(run.PullRequests) == 0 {
		return nil, "no associated pull request"
	}

	target := &model.PublishTarget{
		Repo: model.RepositoryRef{
			Owner: event.GetRepo().GetOwner().GetLogin(),
			Name:  event.GetRepo().GetName(),
		},
		PRNumber:   run.PullRequests[0].GetNumber(),
		HeadBranch: run.GetHeadBranch(),
		HeadSHA:    run.GetHeadSHA(),
		WorkflowID: strconv.FormatInt(run.GetWorkflowID(), 10),
	}
	if err := target.Validate(); err != nil {
		return nil, err.Error()
	}

	return target, ""
}

func (uc *webhookUseCase) matchWorkflow(run *github.WorkflowRun) bool {
	if uc.workflowID == "" {
		return true
	}
	if id, err := strconv.ParseInt(uc.workflowID, 10, 64); err == nil {
		return run.GetWorkflowID() == id
	}
	return path.Base(run.GetPath()) == uc.workflowID
}
