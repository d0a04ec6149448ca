// Package main is the entry point for the verbbattle CLI
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/verb-battle/internal/config"
)

var (
	configPath     string
	slotOverride   string
	driverOverride string
)

var rootCmd = &cobra.Command{
	Use:   "verbbattle",
	Short: "Conjugation battles in the terminal",
	Long: `verbbattle is a role-playing game where every attack is a Spanish verb
conjugation. Beat enemies to level up and unlock new regions.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath(), "path to the TOML config file")
	rootCmd.PersistentFlags().StringVar(&slotOverride, "slot", "", "save slot (overrides storage.slot)")
	rootCmd.PersistentFlags().StringVar(&driverOverride, "storage", "", "storage driver: memory, sqlite or redis")

	rootCmd.AddCommand(newGameCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(playCmd)
}

// loadConfig reads the file and environment, then applies flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{Path: configPath})
	if err != nil {
		return nil, err
	}
	if slotOverride != "" {
		cfg.Storage.Slot = slotOverride
	}
	if driverOverride != "" {
		cfg.Storage.Driver = strings.ToLower(driverOverride)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
