package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"levelup/internal/engine"
	"levelup/internal/storage"
)

type boardModel struct {
	ctx    context.Context
	svc    *engine.Service
	userID string

	width  int
	height int

	profile *storage.Profile
	stats   *storage.Stats
	quests  []storage.Quest

	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	profile *storage.Profile
	stats   *storage.Stats
	quests  []storage.Quest
	err     error
}

type completedMsg struct {
	id  string
	res *engine.CompleteResult
	err error
}

type generatedMsg struct {
	res *engine.GenerateResult
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service, userID string) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		userID:  userID,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		// Settle yesterday before showing today's state.
		if _, err := m.svc.EvaluateMissedDay(m.ctx, m.userID); err != nil {
			return loadedMsg{err: err}
		}
		p, err := m.svc.Profile(m.ctx, m.userID)
		if err != nil {
			return loadedMsg{err: err}
		}
		st, err := m.svc.Stats(m.ctx, m.userID)
		if err != nil {
			return loadedMsg{err: err}
		}
		quests, err := m.svc.TodayQuests(m.ctx, m.userID)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{profile: p, stats: st, quests: quests}
	}
}

func (m boardModel) completeCmd(id string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteQuest(m.ctx, m.userID, id, "")
		return completedMsg{id: id, res: res, err: err}
	}
}

func (m boardModel) generateCmd() tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.GenerateDailyQuests(m.ctx, m.userID)
		return generatedMsg{res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.profile = msg.profile
		m.stats = msg.stats
		m.quests = msg.quests
		if m.selected >= len(m.quests) {
			m.selected = len(m.quests) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case completedMsg:
		if msg.err != nil {
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		if msg.res.AlreadyCompleted {
			m.lastLog = "Already completed."
			return m, m.loadCmd()
		}
		log := fmt.Sprintf("+%d XP (%s)", msg.res.EffectiveXP, msg.res.Stat)
		if msg.res.LevelUp {
			log += fmt.Sprintf(" — level %d → %d!", msg.res.PlayerLevelBefore, msg.res.PlayerLevelAfter)
		}
		if msg.res.StreakAdvanced {
			log += fmt.Sprintf(" Streak: %d.", msg.res.CurrentStreak)
		}
		m.lastLog = log
		return m, m.loadCmd()
	case generatedMsg:
		if msg.err != nil {
			m.lastLog = "Generate failed: " + msg.err.Error()
			return m, nil
		}
		if msg.res.Generated {
			m.lastLog = fmt.Sprintf("Generated %d quests for %s.", len(msg.res.Quests), msg.res.Date)
		} else {
			m.lastLog = "Today's quests already exist."
		}
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "g":
			m.lastLog = "Generating…"
			return m, m.generateCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.quests)-1 {
				m.selected++
			}
			return m, nil
		case "c", " ":
			if m.selected < 0 || m.selected >= len(m.quests) {
				return m, nil
			}
			q := m.quests[m.selected]
			if q.Completed {
				m.lastLog = "Already completed."
				return m, nil
			}
			m.lastLog = "Completing…"
			return m, m.completeCmd(q.ID)
		}
	}
	return m, nil
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	// Simple 2-column layout.
	leftW := 26
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.profile == nil {
		return "Levelup — loading…"
	}
	p := m.profile
	mult := engine.Multiplier(p.CurrentStreak)
	return fmt.Sprintf("Levelup | Level %d | XP %d | Streak %d (x%.1f) | Penalties %d | Freezes %d",
		p.PlayerLevel, p.TotalXP, p.CurrentStreak, mult, p.PenaltyPoints, p.StreakFreezes)
}

func (m boardModel) renderSidebar() string {
	if m.stats == nil {
		return "Stats\n\nLoading…"
	}
	lines := []string{"Stats"}
	for _, stat := range engine.StatOrder {
		lines = append(lines, renderStat(stat, engine.StatXP(m.stats, stat)))
	}
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- c/space: complete")
	lines = append(lines, "- g: generate")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	var out []string
	out = append(out, "Today — "+time.Now().Format(engine.DayKeyFormat))

	if len(m.quests) == 0 {
		out = append(out, "(no quests yet — press g to generate)")
		return strings.Join(out, "\n")
	}

	done := 0
	for _, q := range m.quests {
		if q.Completed {
			done++
		}
	}
	out = append(out, fmt.Sprintf("%d/%d complete (%.0f%%)", done, len(m.quests), engine.CompletionPct(done, len(m.quests))))
	out = append(out, "")

	for i, q := range m.quests {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		box := "[ ]"
		if q.Completed {
			box = "[x]"
		}
		kind := "bonus"
		if q.Mandatory {
			kind = "mandatory"
		}
		out = append(out, fmt.Sprintf("%s%s %s (%s, %s, xp=%d)", cursor, box, q.Title, q.Stat, kind, q.XPReward))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func renderStat(stat engine.Stat, xp int) string {
	lvl := engine.StatLevelForXP(xp)
	bar := progressBar(xp%engine.StatXPPerLevel, engine.StatXPPerLevel, 14)
	label := strings.ToUpper(string(stat)[:3])
	return fmt.Sprintf("- %s L%d %s", label, lvl, bar)
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
