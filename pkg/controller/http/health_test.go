package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	controller "github.com/m-mizutani/prship/pkg/controller/http"
	"github.com/m-mizutani/prship/pkg/domain/model"
)

func newTestServer(t *testing.T, opts ...controller.Option) *controller.Server {
	t.Helper()
	opts = append([]controller.Option{controller.WithWebhookSecret("test-secret")}, opts...)
	server, err := controller.NewServer(context.Background(), &mockWebhookUseCase{}, opts...)
	gt.NoError(t, err)
	return server
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t, controller.WithWorkflowID("build.yml"))

	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	gt.Equal(t, w.Code, http.StatusOK)
	gt.Equal(t, w.Header().Get("Content-Type"), "application/json")

	var status model.HealthStatus
	gt.NoError(t, json.NewDecoder(w.Body).Decode(&status))
	gt.Equal(t, status.Status, "healthy")
	gt.Equal(t, status.Service, "prship")
	gt.Equal(t, status.Workflow, "build.yml")
	gt.Value(t, status.Version).NotEqual("")
}

func TestWebhookRoute_MethodNotAllowed(t *testing.T) {
	server := newTestServer(t)

	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/hooks/github", nil))
	gt.Equal(t, w.Code, http.StatusMethodNotAllowed)
}

func TestNewServer_RequiresSecret(t *testing.T) {
	_, err := controller.NewServer(context.Background(), &mockWebhookUseCase{})
	gt.Error(t, err)
}
