package tui

import (
	"context"

	rpgevents "github.com/KirkDiggler/rpg-toolkit/events"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/KirkDiggler/verb-battle/internal/events"
)

// DefaultFeedSize is how many notifications may queue before new ones are dropped
const DefaultFeedSize = 64

// EventMsg carries one battle notification into the Bubble Tea loop
type EventMsg struct {
	Event *events.Event
}

// Feed bridges bus notifications to Bubble Tea messages. Handlers run under
// the battle lock, so they only enqueue and never block.
type Feed struct {
	bus  rpgevents.EventBus
	ids  []string
	ch   chan *events.Event
	done chan struct{}
}

// NewFeed subscribes to every notification type on bus
func NewFeed(bus rpgevents.EventBus, size int) *Feed {
	if size <= 0 {
		size = DefaultFeedSize
	}
	f := &Feed{
		bus:  bus,
		ch:   make(chan *events.Event, size),
		done: make(chan struct{}),
	}
	f.ids = events.SubscribeAll(bus, f.push)
	return f
}

func (f *Feed) push(_ context.Context, e *events.Event) {
	select {
	case f.ch <- e:
	default:
	}
}

// Next waits for the next notification
func (f *Feed) Next() tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-f.ch:
			return EventMsg{Event: e}
		case <-f.done:
			return nil
		}
	}
}

// Close drops the subscriptions and releases a pending Next
func (f *Feed) Close() {
	events.Unsubscribe(f.bus, f.ids)
	f.ids = nil
	select {
	case <-f.done:
	default:
		close(f.done)
	}
}
