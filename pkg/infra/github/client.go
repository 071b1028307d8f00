package github

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/prship/pkg/domain/interfaces"
	"github.com/m-mizutani/prship/pkg/domain/model"
)

// perPage is the single page size requested from list endpoints. Results are not paginated.
const perPage = 100

// artifactRedirects is the number of redirects followed to resolve an artifact archive URL
const artifactRedirects = 3

type client struct {
	githubClient   *github.Client
	downloadClient *http.Client
}

type options struct {
	httpClient     *http.Client
	downloadClient *http.Client
	baseURL        string
	uploadURL      string
}

// Option is a functional option for the GitHub client
type Option func(*options)

// WithHTTPClient sets the base HTTP client. Authentication is layered on top of its transport.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *options) {
		o.httpClient = httpClient
	}
}

// WithDownloadClient sets the HTTP client used to fetch pre-signed artifact archive URLs
func WithDownloadClient(httpClient *http.Client) Option {
	return func(o *options) {
		o.downloadClient = httpClient
	}
}

// WithBaseURL sets the REST API endpoint, e.g. "https://ghe.example.com/api/v3/"
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithUploadURL sets the upload endpoint, e.g. "https://ghe.example.com/api/uploads/"
func WithUploadURL(uploadURL string) Option {
	return func(o *options) {
		o.uploadURL = uploadURL
	}
}

func buildOptions(opts []Option) *options {
	o := &options{
		httpClient:     &http.Client{},
		downloadClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// NewClient creates a new GitHub client authenticated with a token
func NewClient(token string, opts ...Option) (interfaces.GitHubClient, error) {
	o := buildOptions(opts)

	githubClient := github.NewClient(o.httpClient).WithAuthToken(token)
	if err := o.applyURLs(githubClient); err != nil {
		return nil, err
	}

	return &client{
		githubClient:   githubClient,
		downloadClient: o.downloadClient,
	}, nil
}

// NewAppClient creates a new GitHub client with App authentication
func NewAppClient(appID, installationID int64, privateKey []byte, opts ...Option) (interfaces.GitHubClient, error) {
	o := buildOptions(opts)

	base := o.httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	itr, err := ghinstallation.New(base, appID, installationID, privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub App transport: %w", err)
	}
	if o.baseURL != "" {
		itr.BaseURL = strings.TrimSuffix(o.baseURL, "/")
	}

	githubClient := github.NewClient(&http.Client{Transport: itr, Timeout: o.httpClient.Timeout})
	if err := o.applyURLs(githubClient); err != nil {
		return nil, err
	}

	return &client{
		githubClient:   githubClient,
		downloadClient: o.downloadClient,
	}, nil
}

func (o *options) applyURLs(c *github.Client) error {
	if o.baseURL != "" {
		u, err := parseEndpoint(o.baseURL)
		if err != nil {
			return fmt.Errorf("invalid GitHub API URL %q: %w", o.baseURL, err)
		}
		c.BaseURL = u
		if o.uploadURL == "" {
			c.UploadURL = u
		}
	}
	if o.uploadURL != "" {
		u, err := parseEndpoint(o.uploadURL)
		if err != nil {
			return fmt.Errorf("invalid GitHub upload URL %q: %w", o.uploadURL, err)
		}
		c.UploadURL = u
	}
	return nil
}

// parseEndpoint parses an endpoint URL. go-github requires a trailing slash.
func parseEndpoint(raw string) (*url.URL, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	return url.Parse(raw)
}

// GetPullRequest fetches a pull request by number
func (c *client) GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error) {
	pr, _, err := c.githubClient.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get pull request %s/%s#%d: %w", owner, repo, number, err)
	}
	return pr, nil
}

// ListWorkflowRuns lists runs of the workflow with status "success"
func (c *client) ListWorkflowRuns(ctx context.Context, owner, repo, workflowID string) ([]*github.WorkflowRun, error) {
	opts := &github.ListWorkflowRunsOptions{
		Status:      "success",
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	var (
		runs *github.WorkflowRuns
		err  error
	)
	if id, parseErr := strconv.ParseInt(workflowID, 10, 64); parseErr == nil {
		runs, _, err = c.githubClient.Actions.ListWorkflowRunsByID(ctx, owner, repo, id, opts)
	} else {
		runs, _, err = c.githubClient.Actions.ListWorkflowRunsByFileName(ctx, owner, repo, workflowID, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list runs of workflow %s in %s/%s: %w", workflowID, owner, repo, err)
	}

	return runs.WorkflowRuns, nil
}

// ListRunArtifacts lists artifacts attached to a workflow run
func (c *client) ListRunArtifacts(ctx context.Context, owner, repo string, runID int64) ([]*github.Artifact, error) {
	list, _, err := c.githubClient.Actions.ListWorkflowRunArtifacts(ctx, owner, repo, runID, &github.ListOptions{PerPage: perPage})
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts of run %d in %s/%s: %w", runID, owner, repo, err)
	}
	return list.Artifacts, nil
}

// DownloadArtifact downloads the zip archive of an artifact into memory
func (c *client) DownloadArtifact(ctx context.Context, owner, repo string, artifactID int64) ([]byte, error) {
	// GitHub answers with a redirect to a short-lived pre-signed URL
	archiveURL, _, err := c.githubClient.Actions.DownloadArtifact(ctx, owner, repo, artifactID, artifactRedirects)
	if err != nil {
		return nil, fmt.Errorf("failed to get download URL of artifact %d in %s/%s: %w", artifactID, owner, repo, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, archiveURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request for artifact %d: %w", artifactID, err)
	}

	resp, err := c.downloadClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download artifact %d: %w", artifactID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d downloading artifact %d", resp.StatusCode, artifactID)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %d: %w", artifactID, err)
	}

	return data, nil
}

// CreateRelease creates a new release
func (c *client) CreateRelease(ctx context.Context, owner, repo string, release *github.RepositoryRelease) (*github.RepositoryRelease, error) {
	created, _, err := c.githubClient.Repositories.CreateRelease(ctx, owner, repo, release)
	if err != nil {
		return nil, fmt.Errorf("failed to create release %s in %s/%s: %w", release.GetTagName(), owner, repo, err)
	}
	return created, nil
}

// UploadReleaseAsset uploads in-memory content as a release asset. Repositories.UploadReleaseAsset
// only accepts an *os.File, so the upload request is built directly.
func (c *client) UploadReleaseAsset(ctx context.Context, owner, repo string, releaseID int64, asset *model.AssetUpload) (*github.ReleaseAsset, error) {
	query := url.Values{}
	query.Set("name", asset.Name)
	u := fmt.Sprintf("repos/%s/%s/releases/%d/assets?%s", owner, repo, releaseID, query.Encode())

	req, err := c.githubClient.NewUploadRequest(u, bytes.NewReader(asset.Content), asset.Size(), asset.MediaType)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload request for %s: %w", asset.Name, err)
	}

	uploaded := new(github.ReleaseAsset)
	if _, err := c.githubClient.Do(ctx, req, uploaded); err != nil {
		return nil, fmt.Errorf("failed to upload asset %s to release %d: %w", asset.Name, releaseID, err)
	}

	return uploaded, nil
}
