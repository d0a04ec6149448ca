package events_test

import (
	"context"
	"testing"

	rpgevents "github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/verb-battle/internal/entities"
	"github.com/KirkDiggler/verb-battle/internal/events"
)

func TestBusSinkDeliversTypedEvent(t *testing.T) {
	bus := rpgevents.NewBus()
	sink := events.NewBusSink(bus)

	char, err := entities.NewCharacter("char_1", "Ana", entities.ClassMage)
	require.NoError(t, err)

	var got []*events.Event
	id := events.Subscribe(sink.Bus(), events.Victory, func(_ context.Context, e *events.Event) {
		got = append(got, e)
	})

	sink.Emit(context.Background(), &events.Event{
		Type:     events.Victory,
		Source:   char,
		XPGained: 26,
		MaxCombo: 3,
	})
	sink.Emit(context.Background(), &events.Event{Type: events.Defeat, Source: char})

	require.Len(t, got, 1)
	assert.Equal(t, 26, got[0].XPGained)
	assert.Equal(t, "char_1", got[0].Source.GetID())

	events.Unsubscribe(sink.Bus(), []string{id})
	sink.Emit(context.Background(), &events.Event{Type: events.Victory, Source: char})
	assert.Len(t, got, 1)
}

func TestSubscribeAll(t *testing.T) {
	bus := rpgevents.NewBus()
	sink := events.NewBusSink(bus)

	var types []events.Type
	ids := events.SubscribeAll(bus, func(_ context.Context, e *events.Event) {
		types = append(types, e.Type)
	})
	assert.Len(t, ids, len(events.AllTypes()))

	sink.Emit(context.Background(), &events.Event{Type: events.LevelUp, Level: 2})
	sink.Emit(context.Background(), &events.Event{Type: events.RegionUnlocked, RegionID: "forest"})
	sink.Emit(context.Background(), nil)

	assert.Equal(t, []events.Type{events.LevelUp, events.RegionUnlocked}, types)
}

func TestRecorder(t *testing.T) {
	a := &events.Recorder{}
	var sink events.Sink = a

	sink.Emit(context.Background(), &events.Event{Type: events.AnswerCorrect, Damage: 20})
	sink.Emit(context.Background(), &events.Event{Type: events.ComboChanged, Combo: 1})
	events.Nop{}.Emit(context.Background(), &events.Event{Type: events.Victory})

	assert.Equal(t, []events.Type{events.AnswerCorrect, events.ComboChanged}, a.Types())
	assert.Equal(t, 1, a.Last().Combo)
	require.Len(t, a.OfType(events.AnswerCorrect), 1)

	a.Reset()
	assert.Empty(t, a.Events())
	assert.Nil(t, a.Last())
}
