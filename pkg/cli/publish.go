package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/prship/pkg/cli/config"
	"github.com/m-mizutani/prship/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdPublish() *cli.Command {
	var (
		targetCfg config.Target
		githubCfg config.GitHub
		slackCfg  config.Slack
	)

	var flags []cli.Flag
	flags = append(flags, targetCfg.Flags()...)
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "publish",
		Aliases: []string{"p"},
		Usage:   "Publish the artifact of a pull request build as a GitHub release",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			target, err := targetCfg.Build()
			if err != nil {
				return err
			}

			client, err := githubCfg.NewClient()
			if err != nil {
				return err
			}

			var opts []usecase.PublishOption
			if notifier := slackCfg.NewNotifier(); notifier != nil {
				opts = append(opts, usecase.WithNotifier(notifier))
			}

			result, err := usecase.NewPublish(client, opts...).Publish(ctx, target)
			if err != nil {
				return err
			}

			logger.Info("Release published",
				slog.String("tag_name", result.TagName),
				slog.String("url", result.ReleaseURL),
				slog.String("asset", result.AssetName),
				slog.Int64("asset_size", result.AssetSize),
			)
			return nil
		},
	}
}
