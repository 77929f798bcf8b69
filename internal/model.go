package internal

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"stopwatch_tui/internal/lap"
	"stopwatch_tui/internal/timer"
)

// MsgTime carries a new formatted stopwatch time.
type MsgTime struct {
	Value string
}

// MsgRunning carries a new running state.
type MsgRunning struct {
	Running bool
}

type Model struct {
	// Stopwatch receives every control call the UI makes.
	Stopwatch timer.Stopwatch

	Time    string
	Running bool

	// Current lap session, newest lap first.
	SessionID string
	Laps      []lap.Lap

	// Tag input state (shown after recording a lap)
	ShowTagInput bool
	TagInput     string
	PendingLap   *lap.Lap

	// All-laps viewer state
	ShowLogView   bool
	LogViewScroll int
	AllLaps       []lap.Lap

	Err error

	repo *lap.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewModel(sw timer.Stopwatch, repo *lap.Repository, log *zap.Logger) *Model {
	if log == nil {
		log = zap.NewNop()
	}
	return &Model{
		Stopwatch: sw,
		Time:      sw.Time(),
		Running:   sw.Running(),
		SessionID: lap.NewSessionID(),
		repo:      repo,
		log:       log,
		now:       time.Now,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MsgTime:
		m.Time = msg.Value
		return m, nil
	case MsgRunning:
		m.Running = msg.Running
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		return m, nil
	}
	return m, nil
}

func (m *Model) View() string {
	if m.ShowTagInput {
		return m.tagInputView()
	}

	if m.ShowLogView {
		return m.allLapsView()
	}

	return m.mainView()
}

// StartOrPause forwards to the stopwatch.
func (m *Model) StartOrPause() {
	m.Stopwatch.StartOrPause()
	m.sync()
}

// Clear forwards to the stopwatch and opens a new lap session.
func (m *Model) Clear() {
	m.Stopwatch.Clear()
	m.sync()
	m.SessionID = lap.NewSessionID()
	m.Laps = nil
	m.loadSession()
	m.log.Info("lap session started", zap.String("session", m.SessionID))
}

// DiscardSession deletes the laps recorded since the last clear.
func (m *Model) DiscardSession() {
	if err := m.repo.DeleteSession(m.SessionID); err != nil {
		m.Err = fmt.Errorf("failed to discard laps: %w", err)
		m.log.Error("discarding session", zap.Error(err), zap.String("session", m.SessionID))
		return
	}
	m.log.Info("lap session discarded", zap.String("session", m.SessionID))
	m.loadSession()
}

// loadSession replaces Laps with what the repository holds for SessionID.
func (m *Model) loadSession() {
	laps, err := m.repo.BySession(m.SessionID)
	if err != nil {
		m.Err = fmt.Errorf("failed to load laps: %w", err)
		m.log.Error("loading session", zap.Error(err), zap.String("session", m.SessionID))
		return
	}
	m.Laps = laps
}

// RecordLap captures the current time as a pending lap awaiting a tag.
func (m *Model) RecordLap() {
	elapsed := m.Stopwatch.Elapsed()
	m.PendingLap = &lap.Lap{
		SessionID:  m.SessionID,
		Number:     len(m.Laps) + 1,
		Elapsed:    time.Duration(elapsed) * time.Millisecond,
		Display:    timer.Format(elapsed),
		RecordedAt: m.now(),
	}
	m.TagInput = ""
	m.ShowTagInput = true
}

func (m *Model) savePendingLap(tag string) {
	if m.PendingLap == nil {
		return
	}
	pending := m.PendingLap
	m.PendingLap = nil
	pending.Tag = tag
	if err := m.repo.Create(pending); err != nil {
		m.Err = fmt.Errorf("failed to save lap: %w", err)
		m.log.Error("saving lap", zap.Error(err), zap.String("session", m.SessionID))
		return
	}
	m.log.Debug("lap saved",
		zap.Int("number", pending.Number),
		zap.String("display", pending.Display))
	m.loadSession()
}

// sync pulls the stopwatch snapshot so the view does not lag a control call.
func (m *Model) sync() {
	m.Time = m.Stopwatch.Time()
	m.Running = m.Stopwatch.Running()
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ShowTagInput {
		return m.handleTagInput(msg)
	}

	if m.ShowLogView {
		return m.handleLogViewInput(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case " ", "space", "enter", "s":
		m.StartOrPause()
	case "c", "r":
		m.Clear()
	case "l":
		m.RecordLap()
	case "x":
		m.DiscardSession()
	case "v":
		// Open the all-laps viewer
		allLaps, err := m.repo.All()
		if err != nil {
			m.Err = fmt.Errorf("failed to load laps: %w", err)
			m.log.Error("loading laps", zap.Error(err))
			allLaps = nil
		}
		m.AllLaps = allLaps
		m.ShowLogView = true
		m.LogViewScroll = 0
	}
	return m, nil
}

func (m *Model) handleLogViewInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc", "v":
		m.ShowLogView = false
		m.AllLaps = nil
	case "up", "k":
		if m.LogViewScroll > 0 {
			m.LogViewScroll--
		}
	case "down", "j":
		maxScroll := len(m.AllLaps) - 1
		if maxScroll < 0 {
			maxScroll = 0
		}
		if m.LogViewScroll < maxScroll {
			m.LogViewScroll++
		}
	}
	return m, nil
}

func (m *Model) handleTagInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		// Save the lap without a tag
		m.savePendingLap("")
		m.ShowTagInput = false
		m.TagInput = ""
	case "enter":
		m.savePendingLap(m.TagInput)
		m.ShowTagInput = false
		m.TagInput = ""
	case "backspace":
		if runes := []rune(m.TagInput); len(runes) > 0 {
			m.TagInput = string(runes[:len(runes)-1])
		}
	default:
		switch msg.Type {
		case tea.KeySpace:
			m.TagInput += " "
		case tea.KeyRunes:
			m.TagInput += string(msg.Runes)
		}
	}
	return m, nil
}
