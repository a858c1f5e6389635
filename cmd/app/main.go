// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/cardvault/cmd/app/commands"
	"github.com/allisson/cardvault/internal/app"
	authService "github.com/allisson/cardvault/internal/auth/service"
	cardUseCase "github.com/allisson/cardvault/internal/card/usecase"
	"github.com/allisson/cardvault/internal/config"
)

const version = "1.0.0"

// withCardUseCase loads configuration, assembles the DI container, and runs
// fn with the card use case. Resources are released when fn returns.
func withCardUseCase(
	fn func(ctx context.Context, cmd *cli.Command, useCase cardUseCase.CardUseCase, logger *slog.Logger) error,
) func(ctx context.Context, cmd *cli.Command) error {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg := config.Load()
		container := app.NewContainer(cfg)
		logger := container.Logger()
		defer commands.CloseContainer(container, logger)

		useCase, err := container.CardUseCase()
		if err != nil {
			return err
		}
		return fn(ctx, cmd, useCase, logger)
	}
}

func main() {
	formatFlag := &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}

	cmd := &cli.Command{
		Name:    "cardvault",
		Usage:   "Encrypted vault for payment card data",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP API server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "add",
				Usage: "Encrypt and store a card in the vault",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "number",
						Aliases:  []string{"n"},
						Required: true,
						Usage:    "Card number (16 digits, separators allowed)",
					},
					&cli.StringFlag{
						Name:  "cvv",
						Usage: "Card verification value (optional)",
					},
					&cli.StringFlag{
						Name:  "expiry",
						Usage: "Expiry date in MM/YY format (optional)",
					},
					&cli.StringFlag{
						Name:    "label",
						Aliases: []string{"l"},
						Usage:   "Label for the card (defaults to card-<last4>)",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Store even if the number is already in the vault",
					},
					formatFlag,
				},
				Action: withCardUseCase(func(ctx context.Context, cmd *cli.Command, useCase cardUseCase.CardUseCase, logger *slog.Logger) error {
					return commands.RunAddCard(
						ctx,
						useCase,
						logger,
						cmd.String("number"),
						cmd.String("cvv"),
						cmd.String("expiry"),
						cmd.String("label"),
						cmd.Bool("force"),
						cmd.String("format"),
						commands.DefaultIO(),
					)
				}),
			},
			{
				Name:  "get",
				Usage: "Retrieve and decrypt a card by id",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "id",
						Aliases:  []string{"i"},
						Required: true,
						Usage:    "Card id",
					},
					formatFlag,
				},
				Action: withCardUseCase(func(ctx context.Context, cmd *cli.Command, useCase cardUseCase.CardUseCase, logger *slog.Logger) error {
					return commands.RunGetCard(ctx, useCase, logger, cmd.Int64("id"), cmd.String("format"), commands.DefaultIO())
				}),
			},
			{
				Name:  "list",
				Usage: "List stored cards without decrypting payloads",
				Flags: []cli.Flag{formatFlag},
				Action: withCardUseCase(func(ctx context.Context, cmd *cli.Command, useCase cardUseCase.CardUseCase, logger *slog.Logger) error {
					return commands.RunListCards(ctx, useCase, logger, cmd.String("format"), commands.DefaultIO())
				}),
			},
			{
				Name:  "delete",
				Usage: "Delete a card by id",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "id",
						Aliases:  []string{"i"},
						Required: true,
						Usage:    "Card id",
					},
				},
				Action: withCardUseCase(func(ctx context.Context, cmd *cli.Command, useCase cardUseCase.CardUseCase, logger *slog.Logger) error {
					return commands.RunDeleteCard(ctx, useCase, logger, cmd.Int64("id"), commands.DefaultIO())
				}),
			},
			{
				Name:  "rename",
				Usage: "Update the label of a stored card",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "id",
						Aliases:  []string{"i"},
						Required: true,
						Usage:    "Card id",
					},
					&cli.StringFlag{
						Name:     "label",
						Aliases:  []string{"l"},
						Required: true,
						Usage:    "New label",
					},
				},
				Action: withCardUseCase(func(ctx context.Context, cmd *cli.Command, useCase cardUseCase.CardUseCase, logger *slog.Logger) error {
					return commands.RunRenameCard(ctx, useCase, logger, cmd.Int64("id"), cmd.String("label"), commands.DefaultIO())
				}),
			},
			{
				Name:  "exists",
				Usage: "Check whether a card number is already stored",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "number",
						Aliases:  []string{"n"},
						Required: true,
						Usage:    "Card number (16 digits, separators allowed)",
					},
					formatFlag,
				},
				Action: withCardUseCase(func(ctx context.Context, cmd *cli.Command, useCase cardUseCase.CardUseCase, logger *slog.Logger) error {
					return commands.RunExistsCard(ctx, useCase, logger, cmd.String("number"), cmd.String("format"), commands.DefaultIO())
				}),
			},
			{
				Name:  "scan",
				Usage: "Extract card candidates from free-form text",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "text",
						Aliases:  []string{"t"},
						Required: true,
						Usage:    "Text to scan for card data",
					},
					formatFlag,
				},
				Action: withCardUseCase(func(ctx context.Context, cmd *cli.Command, useCase cardUseCase.CardUseCase, logger *slog.Logger) error {
					return commands.RunScanText(ctx, useCase, logger, cmd.String("text"), cmd.String("format"), commands.DefaultIO())
				}),
			},
			{
				Name:  "create-api-key",
				Usage: "Generate an API key and its hash for API_KEY_HASH",
				Flags: []cli.Flag{formatFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
					return commands.RunCreateAPIKey(authService.NewAPIKeyService(), logger, cmd.String("format"), commands.DefaultIO())
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
