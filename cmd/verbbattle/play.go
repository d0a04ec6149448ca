package main

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/verb-battle/internal/orchestrators/battle"
	"github.com/KirkDiggler/verb-battle/internal/orchestrators/game"
	"github.com/KirkDiggler/verb-battle/internal/pkg/clock"
	"github.com/KirkDiggler/verb-battle/internal/tui"
)

var (
	playRegion string
	playEnemy  string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Fight an enemy on the battle screen",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, true, func(ctx context.Context, a *app) error {
			return runPlay(ctx, cmd, a)
		})
	},
}

func init() {
	playCmd.Flags().StringVar(&playRegion, "region", "", "region the enemy belongs to (optional)")
	playCmd.Flags().StringVar(&playEnemy, "enemy", "", "enemy id, see the regions command")
	_ = playCmd.MarkFlagRequired("enemy")
}

func runPlay(ctx context.Context, cmd *cobra.Command, a *app) error {
	if _, err := a.loadGame(ctx); err != nil {
		return err
	}

	// Subscribe before starting so the first challenge reaches the screen
	// and the runner.
	feed := tui.NewFeed(a.bus, tui.DefaultFeedSize)
	defer feed.Close()

	runner, err := battle.NewRunner(&battle.RunnerConfig{
		Battles: a.battles,
		Bus:     a.bus,
		Clock:   clock.New(),
	})
	if err != nil {
		return err
	}

	started, err := a.game.StartBattle(ctx, &game.StartBattleInput{
		RegionID: playRegion,
		EnemyID:  playEnemy,
	})
	if err != nil {
		return err
	}

	status, err := a.game.Status(ctx, &game.StatusInput{})
	if err != nil {
		return err
	}

	timerCtx, stopTimer := context.WithCancel(ctx)
	defer stopTimer()
	go runner.Run(timerCtx)

	model, err := tui.NewModel(ctx, tui.Config{
		Battles:   a.battles,
		Feed:      feed,
		Character: status.Character,
		Battle:    started.Battle,
	})
	if err != nil {
		return err
	}

	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		slog.ErrorContext(ctx, "battle screen failed", "error", err)
		// Leave the save consistent if the screen died mid-fight.
		if _, abandonErr := a.battles.Abandon(ctx, &battle.AbandonInput{}); abandonErr != nil {
			slog.WarnContext(ctx, "failed to abandon battle", "error", abandonErr)
		}
		return err
	}
	stopTimer()

	after, err := a.game.Status(ctx, &game.StatusInput{})
	if err != nil {
		return err
	}
	if after.Battle != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Battle over: %s\n", after.Battle.State)
	}
	writeStatus(cmd.OutOrStdout(), after.Character)
	return nil
}
