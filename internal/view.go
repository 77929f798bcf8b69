package internal

import (
	"fmt"
	"strings"
	"time"

	"stopwatch_tui/internal/lap"

	"github.com/charmbracelet/lipgloss"
)

const recentLaps = 5

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true).
			Align(lipgloss.Center)

	timerDisplayStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("69")).
				Bold(true)

	timerRunningStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("82")).
				Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235"))

	logHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	logTagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170"))

	logTimeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	inactiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	runningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)
)

// formatSplit renders a lap split with the stopwatch's hundredths precision.
func formatSplit(d time.Duration) string {
	ms := d.Milliseconds()
	return fmt.Sprintf("+%d.%02d", ms/1000, (ms%1000)/10)
}

func (m *Model) mainView() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Width(50).Render("Stopwatch"))
	sb.WriteString("\n\n")
	sb.WriteString(m.stopwatchView())
	sb.WriteString("\n\n")
	if m.Err != nil {
		sb.WriteString(errorStyle.Render(m.Err.Error()))
		sb.WriteString("\n")
	}
	sb.WriteString(helpStyle.Render("Start/Pause: Space | Clear: c | Lap: l | Discard laps: x | Laps: v | Quit: q"))

	return sb.String()
}

func (m *Model) stopwatchView() string {
	var timeStr string
	status := "Paused"
	statusStyle := inactiveStyle
	if m.Running {
		timeStr = timerRunningStyle.Render(m.Time)
		status = "Running"
		statusStyle = runningStyle
	} else {
		timeStr = timerDisplayStyle.Render(m.Time)
	}

	var sb strings.Builder
	sb.WriteString(timeStr)
	sb.WriteString(fmt.Sprintf("\n\n%s\n", statusStyle.Render(status)))

	// Show recent laps of this session
	if len(m.Laps) > 0 {
		sb.WriteString("\n")
		sb.WriteString(logHeaderStyle.Render("Laps"))
		sb.WriteString("\n")
		displayCount := min(len(m.Laps), recentLaps)
		for _, l := range m.Laps[:displayCount] {
			sb.WriteString(m.formatLapEntry(l, m.Laps))
			sb.WriteString("\n")
		}
	}

	return boxStyle.Width(50).Render(sb.String())
}

func (m *Model) tagInputView() string {
	lapStr := ""
	if m.PendingLap != nil {
		lapStr = fmt.Sprintf("#%d  %s", m.PendingLap.Number, m.PendingLap.Display)
	}

	label := inputStyle.Render("→ Tag: ")
	value := inputStyle.Render(m.TagInput + "█")

	form := fmt.Sprintf(
		"%s\n\n%s%s\n\n%s",
		fmt.Sprintf("Lap: %s", timerDisplayStyle.Render(lapStr)),
		label, value,
		helpStyle.Render("Enter: Save | Esc: Skip (no tag)"),
	)

	return lipgloss.Place(
		80, 24,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render("Record Lap"),
			"",
			boxStyle.Width(50).Render(form),
		),
	)
}

func (m *Model) allLapsView() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Width(80).Render("All Laps"))
	sb.WriteString("\n\n")

	if len(m.AllLaps) == 0 {
		sb.WriteString(inactiveStyle.Render("No laps recorded yet."))
	} else {
		for i, l := range m.AllLaps[m.LogViewScroll:] {
			if i >= 15 {
				break
			}
			line := m.formatLapEntry(l, m.AllLaps)
			if i == 0 {
				line = selectedStyle.Render(line)
			}
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("Scroll: Up/Down | Close: v/Esc"))
	return sb.String()
}

func (m *Model) formatLapEntry(l lap.Lap, all []lap.Lap) string {
	timeStr := logTimeStyle.Render(l.RecordedAt.Format("Jan 02 15:04"))
	tag := ""
	if l.Tag != "" {
		tag = " " + logTagStyle.Render("["+l.Tag+"]")
	}
	return fmt.Sprintf("  #%-3d %s  %s  %s%s", l.Number, l.Display, formatSplit(lap.Split(l, all)), timeStr, tag)
}
