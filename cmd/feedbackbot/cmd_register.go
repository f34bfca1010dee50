package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MuhacklGames/Discord-Feedback-Bot/internal/discord"
)

func init() {
	rootCmd.AddCommand(registerCmd)
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register the panel slash command",
	Long:  "Registers the panel command with Discord. With GUILD_ID set it registers per-guild (instant); otherwise globally (may take up to an hour to appear).",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Token == "" {
			return fmt.Errorf("missing required configuration: DISCORD_TOKEN")
		}

		ds, err := discord.NewSession(cfg.Token, false)
		if err != nil {
			return err
		}
		// A brief gateway connection fills in the bot's own user ID.
		if err := ds.Open(); err != nil {
			return fmt.Errorf("open discord gateway: %w", err)
		}
		defer ds.Close()

		if err := discord.RegisterCommands(ds, cfg.GuildID); err != nil {
			return err
		}

		scope := "globally"
		if cfg.GuildID != "" {
			scope = "for guild " + cfg.GuildID
		}
		fmt.Printf("Registered panel command %s\n", scope)
		return nil
	},
}
