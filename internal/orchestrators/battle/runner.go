package battle

import (
	"context"
	"log/slog"
	"time"

	rpgevents "github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/verb-battle/internal/errors"
	"github.com/KirkDiggler/verb-battle/internal/events"
	"github.com/KirkDiggler/verb-battle/internal/pkg/clock"
)

// TickInterval is the countdown resolution
const TickInterval = time.Second

// RunnerConfig holds the timer runner dependencies
type RunnerConfig struct {
	Battles Service
	// Bus carries the ChallengePresented notifications that re-phase the ticker
	Bus   rpgevents.EventBus
	Clock clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *RunnerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Battles == nil {
		vb.RequiredField("Battles")
	}
	if c.Bus == nil {
		vb.RequiredField("Bus")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

// Runner drives Tick from a clock ticker. It is the only goroutine that
// advances the countdown. The ticker restarts whenever a challenge is
// presented, so the first tick of every challenge lands one full interval
// after it appeared.
type Runner struct {
	battles Service
	bus     rpgevents.EventBus
	clock   clock.Clock

	// presented holds the latest presented sequence not yet picked up by Run
	presented chan int
	subID     string
}

// NewRunner creates a runner and subscribes it to challenge presentations.
// Create it before starting a battle so the first challenge is seen.
func NewRunner(cfg *RunnerConfig) (*Runner, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	r := &Runner{
		battles:   cfg.Battles,
		bus:       cfg.Bus,
		clock:     cfg.Clock,
		presented: make(chan int, 1),
	}
	r.subID = events.Subscribe(cfg.Bus, events.ChallengePresented, r.onPresented)
	return r, nil
}

// onPresented runs under the battle lock and must not block
func (r *Runner) onPresented(_ context.Context, e *events.Event) {
	for {
		select {
		case r.presented <- e.Sequence:
			return
		default:
		}
		// drop the older, unread sequence
		select {
		case <-r.presented:
		default:
		}
	}
}

// Run ticks until ctx is done, then unsubscribes
func (r *Runner) Run(ctx context.Context) {
	ticker := r.clock.NewTicker(TickInterval)
	defer ticker.Stop()
	defer events.Unsubscribe(r.bus, []string{r.subID})

	sequence := 0
	for {
		select {
		case <-ctx.Done():
			return
		case sequence = <-r.presented:
			ticker.Reset(TickInterval)
		case <-ticker.C():
			// A tick that raced a presentation carries the old sequence
			// and is dropped by Tick.
			if _, err := r.battles.Tick(ctx, &TickInput{Sequence: sequence}); err != nil {
				slog.WarnContext(ctx, "battle tick failed", "error", err)
			}
		}
	}
}
