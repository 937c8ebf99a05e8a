// Package tui is the live watch mode: it plays a single session one
// round per tick and renders the running scoreboard as a simple chart.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/indianpoker/internal/game"
)

const scoreBarWidth = 24

// Config holds everything needed to watch one session.
type Config struct {
	Players  int
	Rounds   int
	Seed     int64
	Scoring  game.Scoring
	Interval time.Duration
}

// tickMsg asks the model to play the next round.
type tickMsg time.Time

type seatRow struct {
	seat    int
	policy  game.PolicyKind
	honesty float64
	score   int
}

// Model is the Bubble Tea model for watch mode. Each tick plays exactly
// one round on the embedded session, so the UI loop is the game loop.
type Model struct {
	logger  *log.Logger
	config  Config
	session *game.Session

	progress progress.Model
	seats    []seatRow
	last     *game.RoundResult
	played   int
	err      error
	done     bool
	quitting bool
}

// New creates the model and its session.
func New(config Config, logger *log.Logger) (*Model, error) {
	if config.Interval <= 0 {
		config.Interval = 400 * time.Millisecond
	}
	if config.Rounds < 1 {
		config.Rounds = 1
	}
	if config.Scoring == (game.Scoring{}) {
		config.Scoring = game.DefaultScoring()
	}

	m := &Model{
		logger:   logger.WithPrefix("watch"),
		config:   config,
		progress: progress.New(progress.WithDefaultGradient()),
	}

	session, err := game.NewSession(config.Players,
		game.WithSeed(config.Seed),
		game.WithScoring(config.Scoring),
		game.WithRounds(config.Rounds),
		game.WithObserver(game.RoundObserverFunc(func(result game.RoundResult) {
			m.last = &result
		})),
	)
	if err != nil {
		return nil, err
	}
	m.session = session
	m.refreshSeats()
	return m, nil
}

// Init schedules the first round.
func (m *Model) Init() tea.Cmd {
	m.logger.Debug("starting watch session",
		"players", m.config.Players, "rounds", m.config.Rounds, "seed", m.config.Seed)
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.config.Interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages in the TUI.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		w := msg.Width - 20
		if w < 10 {
			w = 10
		}
		if w > 60 {
			w = 60
		}
		m.progress.Width = w

	case tickMsg:
		if m.done {
			return m, nil
		}
		if err := m.session.Run(1); err != nil {
			m.err = err
			m.done = true
			m.logger.Error("round failed", "error", err)
			return m, nil
		}
		m.played++
		m.refreshSeats()
		if m.played >= m.config.Rounds {
			m.done = true
			m.logger.Debug("watch session finished", "rounds", m.played)
			return m, nil
		}
		return m, m.tick()
	}

	return m, nil
}

// View renders the scoreboard.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render(" INDIAN POKER "))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Round %d/%d  ", m.played, m.config.Rounds))
	sb.WriteString(m.progress.ViewAs(float64(m.played) / float64(m.config.Rounds)))
	sb.WriteString("\n\n")

	sb.WriteString(m.renderScoreboard())
	sb.WriteString("\n")
	sb.WriteString(m.renderLastRound())
	sb.WriteString("\n\n")

	if m.err != nil {
		sb.WriteString(LossStyle.Render(fmt.Sprintf("error: %v", m.err)))
		sb.WriteString("\n")
	}
	if m.done {
		sb.WriteString(InfoStyle.Render("finished - press q to quit"))
	} else {
		sb.WriteString(InfoStyle.Render("press q to quit"))
	}
	sb.WriteString("\n")
	return sb.String()
}

func (m *Model) renderScoreboard() string {
	var sb strings.Builder
	sb.WriteString(ColumnStyle.Render("seat  policy    honesty  last  score"))
	sb.WriteString("\n")

	maxAbs := 1
	for _, row := range m.seats {
		if abs(row.score) > maxAbs {
			maxAbs = abs(row.score)
		}
	}

	for _, row := range m.seats {
		sb.WriteString(fmt.Sprintf("%-5d %-9s %.2f     %-5s %5d  %s\n",
			row.seat, row.policy, row.honesty,
			m.lastDelta(row.seat), row.score, scoreBar(row.score, maxAbs)))
	}
	return sb.String()
}

// lastDelta formats the seat's delta from the latest round.
func (m *Model) lastDelta(seat int) string {
	if m.last == nil || seat >= len(m.last.Seats) {
		return "-"
	}
	return fmt.Sprintf("%+d", m.last.Seats[seat].Delta)
}

func (m *Model) renderLastRound() string {
	if m.last == nil {
		return InfoStyle.Render("waiting for the first round...")
	}
	if !m.last.HasWinner() {
		return fmt.Sprintf("round %d: nobody called, no winner", m.last.Round)
	}
	return fmt.Sprintf("round %d: winning rank %s, %d caller(s)",
		m.last.Round, RankStyle.Render(m.last.WinningRank.String()), m.last.Callers)
}

func (m *Model) refreshSeats() {
	players := m.session.Players()
	if m.seats == nil {
		m.seats = make([]seatRow, len(players))
	}
	for i, p := range players {
		m.seats[i] = seatRow{seat: p.Seat(), policy: p.Policy().Kind(), honesty: p.Honesty(), score: p.Score()}
	}
}

// scoreBar draws the score as a signed magnitude bar, green for gains
// and red for losses.
func scoreBar(score, maxAbs int) string {
	n := abs(score) * scoreBarWidth / maxAbs
	if n == 0 && score != 0 {
		n = 1
	}
	bar := strings.Repeat("█", n)
	if score < 0 {
		return LossStyle.Render(bar)
	}
	return GainStyle.Render(bar)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Run starts the watch program on the alternate screen and blocks until
// the user quits.
func Run(config Config, logger *log.Logger) error {
	model, err := New(config, logger)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}
