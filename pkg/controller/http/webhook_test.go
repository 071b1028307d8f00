package http_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	controller "github.com/m-mizutani/prship/pkg/controller/http"
	"github.com/m-mizutani/prship/pkg/domain/model"
	"github.com/m-mizutani/prship/pkg/usecase"
)

// generateSignature generates HMAC-SHA256 signature for testing
func generateSignature(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

// mockWebhookUseCase records processed events
type mockWebhookUseCase struct {
	events []*model.WebhookEvent
	err    error
}

func (m *mockWebhookUseCase) ProcessEvent(ctx context.Context, event *model.WebhookEvent) error {
	m.events = append(m.events, event)
	return m.err
}

func newRequest(t *testing.T, secret, eventType string, payload any, signature string) *http.Request {
	t.Helper()
	payloadBytes, err := json.Marshal(payload)
	gt.NoError(t, err)
	if signature == "" {
		signature = generateSignature(secret, payloadBytes)
	}

	req := httptest.NewRequest(http.MethodPost, "/hooks/github", bytes.NewReader(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", eventType)
	req.Header.Set("X-GitHub-Delivery", "test-delivery")
	req.Header.Set("X-Hub-Signature-256", signature)
	return req
}

var workflowRunPayload = map[string]any{
	"action": "completed",
	"workflow_run": map[string]any{
		"id":            100,
		"workflow_id":   1234,
		"path":          ".github/workflows/build.yml",
		"head_branch":   "feature/x",
		"head_sha":      "abc123",
		"event":         "pull_request",
		"conclusion":    "success",
		"pull_requests": []map[string]any{{"number": 42}},
	},
	"repository": map[string]any{
		"name":      "hello",
		"full_name": "octo/hello",
		"owner":     map[string]any{"login": "octo"},
	},
	"sender": map[string]any{"login": "octocat"},
}

func TestWebhookHandler_SignatureVerification(t *testing.T) {
	secret := "test-secret"

	tests := []struct {
		name           string
		signature      string
		wantStatusCode int
		wantEvents     int
	}{
		{name: "Valid signature", wantStatusCode: http.StatusOK, wantEvents: 1},
		{name: "Invalid signature", signature: "sha256=invalid", wantStatusCode: http.StatusUnauthorized},
		{name: "Wrong secret", signature: generateSignature("other-secret", []byte(`{}`)), wantStatusCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockWebhookUseCase{}
			handler := controller.NewWebhookHandler(secret, uc)

			w := httptest.NewRecorder()
			handler.Handle(w, newRequest(t, secret, "workflow_run", workflowRunPayload, tt.signature))

			gt.Equal(t, w.Code, tt.wantStatusCode)
			gt.Number(t, len(uc.events)).Equal(tt.wantEvents)
		})
	}
}

func TestWebhookHandler_MissingSignature(t *testing.T) {
	uc := &mockWebhookUseCase{}
	handler := controller.NewWebhookHandler("test-secret", uc)

	req := httptest.NewRequest(http.MethodPost, "/hooks/github", bytes.NewReader([]byte(`{"action":"completed"}`)))
	req.Header.Set("X-GitHub-Event", "workflow_run")

	w := httptest.NewRecorder()
	handler.Handle(w, req)
	gt.Equal(t, w.Code, http.StatusUnauthorized)
	gt.Number(t, len(uc.events)).Equal(0)
}

func TestWebhookHandler_EventParsing(t *testing.T) {
	secret := "test-secret"

	tests := []struct {
		name       string
		eventType  string
		payload    any
		wantType   model.WebhookEventType
		wantAction string
		wantRepo   string
	}{
		{
			name:       "Workflow run completed",
			eventType:  "workflow_run",
			payload:    workflowRunPayload,
			wantType:   model.EventTypeWorkflowRun,
			wantAction: "completed",
			wantRepo:   "octo/hello",
		},
		{
			name:      "Ping",
			eventType: "ping",
			payload:   map[string]any{"zen": "Keep it logically awesome.", "hook_id": 1},
			wantType:  model.EventTypePing,
		},
		{
			name:      "Pull request event is passed as unknown",
			eventType: "pull_request",
			payload:   map[string]any{"action": "opened", "pull_request": map[string]any{"id": 1}},
			wantType:  model.EventTypeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockWebhookUseCase{}
			handler := controller.NewWebhookHandler(secret, uc)

			w := httptest.NewRecorder()
			handler.Handle(w, newRequest(t, secret, tt.eventType, tt.payload, ""))
			gt.Equal(t, w.Code, http.StatusOK)

			var response map[string]string
			gt.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			gt.Equal(t, response["status"], "success")

			gt.Number(t, len(uc.events)).Equal(1)
			event := uc.events[0]
			gt.Equal(t, event.ID, "test-delivery")
			gt.Equal(t, event.Type, tt.wantType)
			gt.Equal(t, event.Action, tt.wantAction)
			gt.Equal(t, event.Repository, tt.wantRepo)
		})
	}
}

func TestWebhookHandler_UseCaseError(t *testing.T) {
	secret := "test-secret"
	uc := &mockWebhookUseCase{err: errors.New("broken payload")}
	handler := controller.NewWebhookHandler(secret, uc)

	w := httptest.NewRecorder()
	handler.Handle(w, newRequest(t, secret, "workflow_run", workflowRunPayload, ""))
	gt.Equal(t, w.Code, http.StatusInternalServerError)
}

type recordingPublish struct {
	targets chan *model.PublishTarget
}

func (p *recordingPublish) Publish(ctx context.Context, target *model.PublishTarget) (*model.PublishResult, error) {
	p.targets <- target
	return &model.PublishResult{TagName: "v1.4.0"}, nil
}

func TestWebhookHandler_Integration(t *testing.T) {
	ctx := context.Background()
	secret := "integration-test-secret"
	publishUC := &recordingPublish{targets: make(chan *model.PublishTarget, 1)}
	uc := usecase.NewWebhook(publishUC, usecase.WithWorkflow("build.yml"))

	server, err := controller.NewServer(
		ctx,
		uc,
		controller.WithAddr("localhost:0"),
		controller.WithWebhookSecret(secret),
	)
	gt.NoError(t, err)

	ts := httptest.NewServer(server.Handler)
	defer ts.Close()

	payloadBytes, err := json.Marshal(workflowRunPayload)
	gt.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/hooks/github", bytes.NewReader(payloadBytes))
	gt.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", "workflow_run")
	req.Header.Set("X-GitHub-Delivery", "integration-test")
	req.Header.Set("X-Hub-Signature-256", generateSignature(secret, payloadBytes))

	resp, err := http.DefaultClient.Do(req)
	gt.NoError(t, err)
	defer func() {
		_ = resp.Body.Close() // Error ignored in test
	}()

	gt.Equal(t, resp.StatusCode, http.StatusOK)

	select {
	case target := <-publishUC.targets:
		gt.Equal(t, target.PRNumber, 42)
		gt.Equal(t, target.HeadSHA, "abc123")
		gt.Equal(t, target.WorkflowID, "1234")
	case <-time.After(time.Second):
		t.Fatal("publish was not dispatched")
	}
}
