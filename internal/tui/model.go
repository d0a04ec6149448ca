// Package tui provides the Bubble Tea battle screen. It only renders
// notifications and forwards input; every rule lives in the battle engine.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/KirkDiggler/verb-battle/internal/entities"
	"github.com/KirkDiggler/verb-battle/internal/errors"
	"github.com/KirkDiggler/verb-battle/internal/events"
	"github.com/KirkDiggler/verb-battle/internal/orchestrators/battle"
)

const maxLogLines = 6

type battleMsg struct {
	battle *battle.Battle
}

type answerMsg struct {
	out *battle.SubmitAnswerOutput
}

type freezeMsg struct {
	applied bool
}

type errMsg struct {
	err error
}

// Config holds what the battle screen needs
type Config struct {
	Battles   battle.Service
	Feed      *Feed
	Character *entities.Character
	// Battle is the snapshot returned by StartBattle
	Battle *battle.Battle
}

// Model implements the Bubble Tea battle UI
type Model struct {
	ctx     context.Context
	battles battle.Service
	feed    *Feed

	character *entities.Character
	battle    *battle.Battle
	input     textinput.Model

	log      []string
	feedback string
	errText  string

	// result is set once the battle is over
	result string
	done   bool

	width  int
	height int
}

// NewModel constructs the battle screen
func NewModel(ctx context.Context, cfg Config) (*Model, error) {
	vb := errors.NewValidationBuilder()
	if cfg.Battles == nil {
		vb.RequiredField("Battles")
	}
	if cfg.Feed == nil {
		vb.RequiredField("Feed")
	}
	if cfg.Character == nil {
		vb.RequiredField("Character")
	}
	if cfg.Battle == nil {
		vb.RequiredField("Battle")
	}
	if err := vb.Build(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	input := textinput.New()
	input.Placeholder = "conjugate..."
	input.Prompt = "> "
	input.CharLimit = 40
	input.Focus()

	return &Model{
		ctx:       ctx,
		battles:   cfg.Battles,
		feed:      cfg.Feed,
		character: cfg.Character,
		battle:    cfg.Battle,
		input:     input,
	}, nil
}

// Result is the outcome line once the battle has ended, empty before
func (m *Model) Result() string {
	return m.result
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.feed.Next())
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case EventMsg:
		m.apply(msg.Event)
		if m.done {
			return m, m.refresh()
		}
		return m, tea.Batch(m.feed.Next(), m.refresh())
	case battleMsg:
		if msg.battle != nil {
			m.battle = msg.battle
		}
		return m, nil
	case answerMsg:
		m.applyAnswer(msg.out)
		return m, nil
	case freezeMsg:
		if !msg.applied {
			m.feedback = "the clock is already frozen"
		}
		return m, nil
	case errMsg:
		if !m.done && errors.GetCode(msg.err).Fatal() {
			m.finish("The battle could not continue: " + errors.GetMessage(msg.err))
			return m, nil
		}
		m.errText = errors.GetMessage(msg.err)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		if m.done {
			return m, tea.Quit
		}
		return m, tea.Sequence(m.abandon(), tea.Quit)
	case tea.KeyEnter:
		if m.done {
			return m, tea.Quit
		}
		answer := m.input.Value()
		m.input.Reset()
		return m, m.submit(answer, m.battle.Sequence)
	case tea.KeyCtrlF:
		if m.done {
			return m, nil
		}
		return m, m.freeze()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) apply(e *events.Event) {
	if e == nil {
		return
	}
	switch e.Type {
	case events.ChallengePresented:
		m.errText = ""
	case events.AnswerCorrect:
		m.addLog(fmt.Sprintf("Hit for %d!", e.Damage))
	case events.AnswerWrong:
		expected := ""
		if e.Challenge != nil {
			expected = e.Challenge.Answer
		}
		if e.Timeout {
			m.addLog(fmt.Sprintf("Too slow! It was %q. You take %d.", expected, e.Damage))
		} else {
			m.addLog(fmt.Sprintf("Wrong, it was %q. You take %d.", expected, e.Damage))
		}
	case events.ComboChanged:
		if e.Combo >= 3 {
			m.addLog(fmt.Sprintf("Combo x%d", e.Combo))
		}
	case events.BossPhaseChanged:
		m.addLog(fmt.Sprintf("The enemy enters phase %d!", e.Phase))
	case events.TimerFrozen:
		m.addLog(fmt.Sprintf("Time frozen for %ds", e.TimeLimit))
	case events.LevelUp:
		m.addLog(fmt.Sprintf("Level up! You are now level %d.", e.Level))
	case events.TenseMastered:
		m.addLog(fmt.Sprintf("Mastered %s", e.Tense))
	case events.RegionUnlocked:
		m.addLog(fmt.Sprintf("Unlocked region %s", e.RegionID))
	case events.PersistenceWarning:
		m.addLog("Could not save your progress")
	case events.Victory:
		m.finish(fmt.Sprintf("Victory! +%d XP (max combo %d)", e.XPGained, e.MaxCombo))
	case events.Defeat:
		m.finish("Defeated. Your health has been restored.")
	case events.BattleAbandoned:
		m.finish("You fled the battle.")
	case events.BattleAborted:
		m.finish("The battle could not continue: " + errors.GetMessage(e.Err))
	}
}

func (m *Model) applyAnswer(out *battle.SubmitAnswerOutput) {
	if out == nil || out.Ignored {
		return
	}
	if out.Battle != nil {
		m.battle = out.Battle
	}
	if out.Correct {
		m.feedback = "¡Correcto!"
	} else {
		m.feedback = fmt.Sprintf("Expected %q", out.Expected)
	}
}

func (m *Model) finish(result string) {
	m.done = true
	m.result = result
	m.addLog(result)
	m.input.Blur()
}

func (m *Model) addLog(line string) {
	m.log = append(m.log, line)
	if len(m.log) > maxLogLines {
		m.log = m.log[len(m.log)-maxLogLines:]
	}
}

// engine calls run inside commands, off the Update goroutine

func (m *Model) submit(answer string, sequence int) tea.Cmd {
	return func() tea.Msg {
		out, err := m.battles.SubmitAnswer(m.ctx, &battle.SubmitAnswerInput{
			Answer:   answer,
			Sequence: sequence,
		})
		if err != nil {
			return errMsg{err: err}
		}
		return answerMsg{out: out}
	}
}

func (m *Model) freeze() tea.Cmd {
	return func() tea.Msg {
		out, err := m.battles.UseFreeze(m.ctx, &battle.UseFreezeInput{})
		if err != nil {
			return errMsg{err: err}
		}
		return freezeMsg{applied: out.Applied}
	}
}

func (m *Model) abandon() tea.Cmd {
	return func() tea.Msg {
		if _, err := m.battles.Abandon(m.ctx, &battle.AbandonInput{}); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func (m *Model) refresh() tea.Cmd {
	return func() tea.Msg {
		out, err := m.battles.GetBattle(m.ctx, &battle.GetBattleInput{})
		if err != nil {
			return errMsg{err: err}
		}
		return battleMsg{battle: out.Battle}
	}
}
