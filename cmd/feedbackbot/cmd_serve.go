package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/dedup"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/discord"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/engine"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/gateway"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/intake"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/maintenance"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/notify"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/retry"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/session"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/submit"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/types"
	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/wizard"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the feedback bot",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Core state and policies. Sessions are in-memory only; a restart
	// abandons unfinished wizards.
	dedupe := dedup.New(dedup.DefaultRetention)
	sessions := session.NewStore()
	policy := retry.DefaultPolicy()
	notifier := notify.New()
	renderer := &wizard.Renderer{PanelJump: cfg.PanelJump()}

	// Discord session and platform client.
	ds, err := discord.NewSession(cfg.Token, cfg.ScanLinks)
	if err != nil {
		return err
	}
	client := discord.NewClient(ds)

	// Workflow collaborators.
	reconciler := intake.New(sessions, client, policy,
		types.ChannelID(cfg.IntakeParentChannelID), cfg.ScanLinks, cfg.PanelJump())
	pipeline := submit.New(sessions, client, policy, types.ChannelID(cfg.ForumChannelID))
	eng := engine.New(sessions, renderer, reconciler, pipeline, notifier)

	// Gateway: dedup gate plus per-user FIFO lanes.
	gw := gateway.New(dedupe, cfg.MaxConcurrent)
	gw.Queue.SetProcessor(eng.Process)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gw.Queue.Start(ctx)
	defer gw.Queue.Stop()

	sweeper := maintenance.New(dedupe, sessions)
	if err := sweeper.Start(); err != nil {
		return fmt.Errorf("start maintenance sweeper: %w", err)
	}
	defer sweeper.Stop()

	panel := discord.NewPanel(client, policy, types.ChannelID(cfg.ForumChannelID))
	adapter := discord.NewAdapter(ds, gw, panel)
	if err := adapter.Start(); err != nil {
		return err
	}
	defer adapter.Close()

	slog.Info("feedbackbot started",
		"forum_channel", cfg.ForumChannelID,
		"intake_parent", cfg.IntakeParentChannelID,
		"scan_links", cfg.ScanLinks,
		"max_concurrent", cfg.MaxConcurrent,
		"log_level", cfg.LogLevel,
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	slog.Info("shutting down", "signal", sig)
	return nil
}
