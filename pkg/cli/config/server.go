package config

import "github.com/urfave/cli/v3"

// Server holds webhook server configuration
type Server struct {
	Addr          string
	WebhookSecret string `masq:"secret"`
	WorkflowID    string
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("PRSHIP_ADDR"),
		},
		&cli.StringFlag{
			Name:        "webhook-secret",
			Usage:       "GitHub webhook secret",
			Required:    true,
			Destination: &c.WebhookSecret,
			Sources:     cli.EnvVars("PRSHIP_WEBHOOK_SECRET"),
		},
		&cli.StringFlag{
			Name:        "workflow-id",
			Usage:       "Only publish runs of this workflow (ID or file name). All workflows when empty",
			Destination: &c.WorkflowID,
			Sources:     cli.EnvVars("PRSHIP_WORKFLOW_ID", "WORKFLOW_ID"),
		},
	}
}
