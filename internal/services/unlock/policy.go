package unlock

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/verb-battle/internal/entities"
	"github.com/KirkDiggler/verb-battle/internal/errors"
	"github.com/KirkDiggler/verb-battle/internal/events"
)

// RegionSource is the read-only region registry
type RegionSource interface {
	Regions() []*entities.Region
	Region(id string) (*entities.Region, error)
}

// Config holds the policy dependencies
type Config struct {
	Regions RegionSource
	Events  events.Sink
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Regions == nil {
		vb.RequiredField("Regions")
	}

	return vb.Build()
}

type policy struct {
	regions RegionSource
	events  events.Sink
}

// New creates the unlock policy
func New(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	sink := cfg.Events
	if sink == nil {
		sink = events.Nop{}
	}

	return &policy{
		regions: cfg.Regions,
		events:  sink,
	}, nil
}

func (p *policy) CheckUnlocks(ctx context.Context, input *CheckUnlocksInput) (*CheckUnlocksOutput, error) {
	if input == nil || input.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}
	char := input.Character

	out := &CheckUnlocksOutput{}
	for _, region := range p.regions.Regions() {
		if char.IsRegionUnlocked(region.ID) || !p.qualifies(char, region) {
			continue
		}
		char.UnlockRegion(region.ID)
		out.Unlocked = append(out.Unlocked, region.ID)

		slog.InfoContext(ctx, "region unlocked",
			"character_id", char.ID,
			"region_id", region.ID,
			"level", char.Level)

		p.events.Emit(ctx, &events.Event{
			Type:     events.RegionUnlocked,
			Source:   char,
			RegionID: region.ID,
			Level:    char.Level,
		})
	}

	return out, nil
}

// qualifies applies the level gate and the cleared-prerequisite gate
func (p *policy) qualifies(char *entities.Character, region *entities.Region) bool {
	if region.RequiredLevel > char.Level {
		return false
	}
	for _, reqID := range region.Requires {
		req, err := p.regions.Region(reqID)
		if err != nil || !req.Cleared(char.DefeatedEnemies) {
			return false
		}
	}
	return true
}

func (p *policy) IsEnemyAvailable(_ context.Context, input *IsEnemyAvailableInput) (*IsEnemyAvailableOutput, error) {
	if input == nil || input.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}

	region, err := p.regions.Region(input.RegionID)
	if err != nil {
		return nil, err
	}
	if _, ok := region.Enemy(input.EnemyID); !ok {
		return nil, errors.NotFoundf("enemy %s not found in region %s", input.EnemyID, input.RegionID)
	}

	if !input.Character.IsRegionUnlocked(region.ID) {
		return &IsEnemyAvailableOutput{
			Reason: fmt.Sprintf("region %s is locked (requires level %d)", region.Name, region.RequiredLevel),
		}, nil
	}

	for i, enemy := range region.Enemies {
		if enemy.ID != input.EnemyID {
			continue
		}
		if i > 0 && !input.Character.HasDefeated(region.Enemies[i-1].ID) {
			return &IsEnemyAvailableOutput{
				Reason: fmt.Sprintf("defeat %s first", region.Enemies[i-1].Name),
			}, nil
		}
		break
	}

	return &IsEnemyAvailableOutput{Available: true}, nil
}

func (p *policy) ListRegions(ctx context.Context, input *ListRegionsInput) (*ListRegionsOutput, error) {
	if input == nil || input.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}
	char := input.Character

	out := &ListRegionsOutput{}
	for _, region := range p.regions.Regions() {
		status := &RegionStatus{
			Region:   region,
			Unlocked: char.IsRegionUnlocked(region.ID),
			Cleared:  region.Cleared(char.DefeatedEnemies),
		}
		if status.Unlocked {
			for _, enemy := range region.Enemies {
				avail, err := p.IsEnemyAvailable(ctx, &IsEnemyAvailableInput{
					Character: char,
					RegionID:  region.ID,
					EnemyID:   enemy.ID,
				})
				if err != nil {
					return nil, err
				}
				if avail.Available {
					status.Available = append(status.Available, enemy.ID)
				}
			}
		}
		out.Regions = append(out.Regions, status)
	}
	return out, nil
}
