package idgen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/verb-battle/internal/pkg/idgen"
)

func TestSequential(t *testing.T) {
	gen := idgen.NewSequential("battle")
	assert.Equal(t, "battle_1", gen.Generate())
	assert.Equal(t, "battle_2", gen.Generate())

	bare := idgen.NewSequential("")
	assert.Equal(t, "1", bare.Generate())
}

func TestUUID(t *testing.T) {
	gen := idgen.NewUUID("char")
	a, b := gen.Generate(), gen.Generate()
	assert.True(t, strings.HasPrefix(a, "char_"))
	assert.NotEqual(t, a, b)
}
