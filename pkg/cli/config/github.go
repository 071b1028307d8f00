package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prship/pkg/domain/interfaces"
	githubinfra "github.com/m-mizutani/prship/pkg/infra/github"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub API configuration. Either Token or the App fields are required.
type GitHub struct {
	Token          string `masq:"secret"`
	AppID          int64
	InstallationID int64
	PrivateKey     string `masq:"secret"`
	APIURL         string
	UploadURL      string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token",
			Destination: &c.Token,
			Sources:     cli.EnvVars("PRSHIP_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID, used when no token is given",
			Destination: &c.AppID,
			Sources:     cli.EnvVars("PRSHIP_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-app-installation-id",
			Usage:       "GitHub App installation ID",
			Destination: &c.InstallationID,
			Sources:     cli.EnvVars("PRSHIP_GITHUB_APP_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "github-app-private-key",
			Usage:       "GitHub App private key (PEM)",
			Destination: &c.PrivateKey,
			Sources:     cli.EnvVars("PRSHIP_GITHUB_APP_PRIVATE_KEY"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub REST API URL for GitHub Enterprise Server, e.g. https://ghe.example.com/api/v3/",
			Destination: &c.APIURL,
			Sources:     cli.EnvVars("PRSHIP_GITHUB_API_URL"),
		},
		&cli.StringFlag{
			Name:        "github-upload-url",
			Usage:       "GitHub upload URL, defaults to the API URL",
			Destination: &c.UploadURL,
			Sources:     cli.EnvVars("PRSHIP_GITHUB_UPLOAD_URL"),
		},
	}
}

// NewClient creates a GitHub client from the configured credentials. A token takes precedence.
func (c *GitHub) NewClient() (interfaces.GitHubClient, error) {
	var opts []githubinfra.Option
	if c.APIURL != "" {
		opts = append(opts, githubinfra.WithBaseURL(c.APIURL))
	}
	if c.UploadURL != "" {
		opts = append(opts, githubinfra.WithUploadURL(c.UploadURL))
	}

	switch {
	case c.Token != "":
		client, err := githubinfra.NewClient(c.Token, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create GitHub client")
		}
		return client, nil

	case c.AppID != 0 && c.InstallationID != 0 && c.PrivateKey != "":
		client, err := githubinfra.NewAppClient(c.AppID, c.InstallationID, []byte(c.PrivateKey), opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create GitHub App client",
				goerr.V("app_id", c.AppID),
				goerr.V("installation_id", c.InstallationID),
			)
		}
		return client, nil

	default:
		return nil, goerr.New("either --github-token or all of --github-app-id, --github-app-installation-id and --github-app-private-key are required")
	}
}
