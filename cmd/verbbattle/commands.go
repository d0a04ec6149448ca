package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/verb-battle/internal/entities"
	"github.com/KirkDiggler/verb-battle/internal/orchestrators/game"
	"github.com/KirkDiggler/verb-battle/internal/services/unlock"
)

var (
	newGameName  string
	newGameClass string
)

var newGameCmd = &cobra.Command{
	Use:   "new-game",
	Short: "Create a character in the save slot, replacing any existing one",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, false, func(ctx context.Context, a *app) error {
			out, err := a.game.NewGame(ctx, &game.NewGameInput{
				Name:  newGameName,
				Class: entities.ClassID(strings.ToLower(newGameClass)),
			})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Created %s the %s.\n", out.Character.Name, className(out.Character.Class))
			if !out.Saved {
				fmt.Fprintln(w, "Warning: the game could not be saved and will be lost on exit.")
			}
			return nil
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the saved character",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, false, func(ctx context.Context, a *app) error {
			loaded, err := a.loadGame(ctx)
			if err != nil {
				return err
			}
			if loaded.Migrated {
				fmt.Fprintln(cmd.OutOrStdout(), "Save upgraded to the current format.")
			}
			writeStatus(cmd.OutOrStdout(), loaded.Character)
			return nil
		})
	},
}

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List regions and the enemies available to fight",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, false, func(ctx context.Context, a *app) error {
			if _, err := a.loadGame(ctx); err != nil {
				return err
			}
			out, err := a.game.Regions(ctx, &game.RegionsInput{})
			if err != nil {
				return err
			}
			writeRegions(cmd.OutOrStdout(), out.Regions)
			return nil
		})
	},
}

func init() {
	newGameCmd.Flags().StringVar(&newGameName, "name", "", "character name")
	newGameCmd.Flags().StringVar(&newGameClass, "class", string(entities.ClassWarrior),
		"character class: "+strings.Join(entities.ClassIDStrings(), ", "))
	_ = newGameCmd.MarkFlagRequired("name")
}

// withApp loads config, sets up logging and the object graph, runs fn and
// tears everything down again
func withApp(cmd *cobra.Command, logToFile bool, fn func(ctx context.Context, a *app) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg.Log, logToFile)
	if err != nil {
		return err
	}
	defer closeLog()

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	return fn(cmd.Context(), a)
}

func className(id entities.ClassID) string {
	if class, ok := entities.LookupClass(id); ok {
		return class.Name
	}
	return string(id)
}

func writeStatus(w io.Writer, char *entities.Character) {
	fmt.Fprintf(w, "%s the %s\n", char.Name, className(char.Class))
	fmt.Fprintf(w, "  Level   %d (%d/%d XP)\n", char.Level, char.XP, char.XPToNextLevel)
	fmt.Fprintf(w, "  Health  %d/%d\n", char.Health, char.MaxHealth)
	if char.SkillPoints > 0 {
		fmt.Fprintf(w, "  Skill points  %d\n", char.SkillPoints)
	}
	if mastered := sortedKeys(char.MasteredTenses); len(mastered) > 0 {
		fmt.Fprintf(w, "  Mastered  %s\n", strings.Join(mastered, ", "))
	}
	fmt.Fprintf(w, "  Enemies defeated  %d\n", len(char.DefeatedEnemies))
}

func writeRegions(w io.Writer, regions []*unlock.RegionStatus) {
	for _, rs := range regions {
		var state string
		switch {
		case !rs.Unlocked:
			state = fmt.Sprintf("locked, level %d", rs.Region.RequiredLevel)
			if len(rs.Region.Requires) > 0 {
				state += ", clear " + strings.Join(rs.Region.Requires, ", ")
			}
		case rs.Cleared:
			state = "cleared"
		default:
			state = "open"
		}
		fmt.Fprintf(w, "%s (%s) [%s]\n", rs.Region.Name, rs.Region.ID, state)

		if !rs.Unlocked {
			continue
		}
		available := make(map[string]bool, len(rs.Available))
		for _, id := range rs.Available {
			available[id] = true
		}
		for _, enemy := range rs.Region.Enemies {
			marker := " "
			if available[enemy.ID] {
				marker = "*"
			}
			boss := ""
			if enemy.IsBoss {
				boss = " boss"
			}
			fmt.Fprintf(w, "  %s %s (%s)%s\n", marker, enemy.Name, enemy.ID, boss)
		}
	}
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k, ok := range m {
		if ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
