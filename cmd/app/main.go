// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/ovationhq/ovation/cmd/app/commands"
)

var version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "ovation",
		Usage:   "School and studio management platform",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunMigrations()
				},
			},
			{
				Name:  "grant-features",
				Usage: "Grant features to a user",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Required: true,
						Usage:    "Username of the user to grant features to",
					},
					&cli.StringFlag{
						Name:     "features",
						Aliases:  []string{"g"},
						Required: true,
						Usage:    "Comma-separated feature list (e.g., read:lesson,create:comment)",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunGrantFeatures(
						ctx,
						cmd.String("username"),
						cmd.String("features"),
						cmd.String("format"),
					)
				},
			},
			{
				Name:  "revoke-features",
				Usage: "Revoke features from a user",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Required: true,
						Usage:    "Username of the user to revoke features from",
					},
					&cli.StringFlag{
						Name:     "features",
						Aliases:  []string{"g"},
						Required: true,
						Usage:    "Comma-separated feature list (e.g., create:lesson)",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunRevokeFeatures(
						ctx,
						cmd.String("username"),
						cmd.String("features"),
						cmd.String("format"),
					)
				},
			},
			{
				Name:  "list-features",
				Usage: "List a user's features, or the full catalog when no username is given",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "username",
						Aliases: []string{"u"},
						Usage:   "Username of the user to list features for",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunListFeatures(
						ctx,
						cmd.String("username"),
						cmd.String("format"),
					)
				},
			},
			{
				Name:  "clean-expired-sessions",
				Usage: "Delete sessions past their expiration time",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCleanExpiredSessions(ctx, cmd.String("format"))
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
