package content_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/verb-battle/internal/content"
	"github.com/KirkDiggler/verb-battle/internal/errors"
)

func TestLoadEmbedded(t *testing.T) {
	bundle, err := content.Load("")
	require.NoError(t, err)

	assert.Equal(t, "hablo", bundle.Verbs.Tenses["present"]["regular"]["hablar"]["yo"])
	require.NotEmpty(t, bundle.World.Regions)
	assert.Equal(t, "meadow", bundle.World.Regions[0].ID)
	assert.Nil(t, bundle.World.Regions[0].Enemies[0].MaxHealth)
}

func TestLoadOverrideDirectory(t *testing.T) {
	dir := t.TempDir()
	world := []byte(`
regions:
  - id: tiny
    name: Tiny
    required_level: 1
    enemies:
      - id: rat
        name: Rat
        max_health: 20
        tenses: [present/regular]
        pronouns: [yo]
        xp_reward: 5
        base_damage: 1
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, content.WorldFile), world, 0o600))

	bundle, err := content.Load(dir)
	require.NoError(t, err)

	require.Len(t, bundle.World.Regions, 1)
	assert.Equal(t, "tiny", bundle.World.Regions[0].ID)
	// verbs.yaml absent from dir falls back to the embedded table
	assert.NotEmpty(t, bundle.Verbs.Tenses)
}

func TestDecodeWorldRejectsUnknownFields(t *testing.T) {
	_, err := content.DecodeWorld([]byte(`
regions:
  - id: meadow
    requierd_level: 1
`))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestDecodeVerbsRejectsMalformedYAML(t *testing.T) {
	_, err := content.DecodeVerbs([]byte("tenses: [not, a, map"))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}
