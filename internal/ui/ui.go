package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/pverbeek/shop-city/internal/engine"
	"github.com/pverbeek/shop-city/internal/util"
	"github.com/pverbeek/shop-city/internal/world"
)

const (
	viewMenu    = "menu"
	viewMission = "mission"
)

const tickInterval = 100 * time.Millisecond

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type model struct {
	ctx    context.Context
	cfg    util.Config
	seed   engine.SessionSeed
	player uuid.UUID
	store  engine.ProgressStore // nil when running without a database

	missions map[engine.Variant]*engine.Mission
	active   engine.Variant
	view     string

	wallet  *engine.Wallet
	settled bool
	status  string

	lastTick time.Time
	width    int
	height   int

	theme  palette
	styles struct {
		title  lipgloss.Style
		accent lipgloss.Style
		muted  lipgloss.Style
		warn   lipgloss.Style
		good   lipgloss.Style
	}
}

func initialModel(ctx context.Context, store engine.ProgressStore, player uuid.UUID, cfg util.Config) model {
	seed, err := engine.NewSessionSeed(cfg.SeedText)
	if err != nil {
		seed, _ = engine.NewSessionSeed("fallback-seed")
	}
	missions := make(map[engine.Variant]*engine.Mission, len(engine.AllVariants))
	for _, v := range engine.AllVariants {
		missions[v] = engine.NewMission(v, nil) // self-clocked; ticks pump expiries
	}
	m := model{
		ctx:      ctx,
		cfg:      cfg,
		seed:     seed,
		player:   player,
		store:    store,
		missions: missions,
		active:   engine.VariantMirrorWorld,
		view:     viewMenu,
	}
	if store != nil {
		if err := engine.LoadProgress(ctx, store, player, missions); err != nil {
			m.status = "saved progress unavailable"
		}
	}
	m.theme = paletteFor(cfg.Theme)
	m.styles.title = lipgloss.NewStyle().Bold(true).Foreground(m.theme.Accent)
	m.styles.accent = lipgloss.NewStyle().Foreground(m.theme.AccentAlt)
	m.styles.muted = lipgloss.NewStyle().Foreground(m.theme.Muted)
	m.styles.warn = lipgloss.NewStyle().Foreground(m.theme.Warning)
	m.styles.good = lipgloss.NewStyle().Foreground(m.theme.Success)
	return m
}

func (m model) mission() *engine.Mission { return m.missions[m.active] }

func (m model) Init() tea.Cmd { return tick() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		now := time.Time(msg)
		if !m.lastTick.IsZero() {
			m.mission().UpdateTimer(now.Sub(m.lastTick).Seconds())
		}
		m.lastTick = now
		m = m.settleIfCompleted()
		return m, tick()
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m model) handleKey(k string) (tea.Model, tea.Cmd) {
	if k == "ctrl+c" {
		return m, tea.Quit
	}
	if m.view == viewMenu {
		return m.handleMenuKey(k)
	}
	return m.handleMissionKey(k)
}

func (m model) handleMenuKey(k string) (tea.Model, tea.Cmd) {
	switch k {
	case "q":
		return m, tea.Quit
	case "1":
		m.active = engine.VariantMirrorWorld
	case "2":
		m.active = engine.VariantHeist
	case "3":
		m.active = engine.VariantGhostHunt
	case "l":
		ms := m.mission()
		next := ms.Level() + 1
		if next > ms.UnlockedLevel() {
			next = 1
		}
		ms.SelectLevel(next)
	case "enter":
		m.settled = false
		m.status = ""
		if !m.mission().Start(m.seed, world.Shops(), world.SpawnPoint()) {
			m.status = "cannot start a mission here"
			return m, nil
		}
		m.view = viewMission
	}
	return m, nil
}

func (m model) handleMissionKey(k string) (tea.Model, tea.Cmd) {
	ms := m.mission()
	switch k {
	case "esc", "q":
		ms.Reset()
		m.view = viewMenu
		m.status = ""
		return m, nil
	case "enter":
		switch ms.Phase() {
		case engine.PhaseBriefing:
			ms.CompleteBriefing()
		case engine.PhaseCompleted, engine.PhaseFailed:
			ms.Reset()
			m.view = viewMenu
		}
	case "c":
		for _, o := range ms.Snapshot().Objectives {
			if !o.Collected {
				ms.CollectObjective(o.ID)
				break
			}
		}
	case "v":
		// walk into the shop under the true indicator
		for _, ind := range ms.Snapshot().Indicators {
			if !ind.IsDecoy {
				m.visitShop(ind.ShopID)
				break
			}
		}
	case "x":
		for _, ind := range ms.Snapshot().Indicators {
			if ind.IsDecoy {
				m.visitShop(ind.ShopID)
				break
			}
		}
	case "h":
		ms.HitByPursuer()
	case "g":
		ms.SpottedByGuard()
	case "e":
		ms.ReachExit()
	case "r":
		ms.RevealNextClue()
	case "p":
		ms.SetPaused(true)
	case "o":
		ms.SetPaused(false)
	}
	m = m.settleIfCompleted()
	return m, nil
}

func (m *model) visitShop(id string) {
	found := m.mission().VisitShop(id)
	if found {
		m.status = "that was the place"
	}
	if m.store == nil {
		return
	}
	settlement, err := engine.SettleVisit(m.ctx, m.store, m.player, id)
	if err != nil {
		m.status = "visit reward unavailable"
		return
	}
	if settlement.FirstClear {
		m.status = fmt.Sprintf("first visit: +%d coins +%d xp", settlement.Coins, settlement.XP)
	}
}

// settleIfCompleted resolves rewards exactly once per completed mission.
func (m model) settleIfCompleted() model {
	ms := m.mission()
	if m.settled || ms.Phase() != engine.PhaseCompleted {
		return m
	}
	m.settled = true
	if m.store == nil {
		m.status = "mission complete (no database: rewards skipped)"
		return m
	}
	cfg := engine.LevelConfigFor(ms.Variant(), ms.Level())
	settlement, err := engine.SettleCompletion(m.ctx, m.store, m.player, ms.Variant(), ms.Level(), cfg.BaseCoins, cfg.BaseXP)
	if err != nil {
		m.status = "reward settlement failed; try completing again"
		return m
	}
	w, err := m.store.ApplyReward(m.ctx, m.player, 0, 0)
	if err == nil {
		m.wallet = &w
	}
	if settlement.FirstClear {
		m.status = fmt.Sprintf("first clear: +%d coins +%d xp", settlement.Coins, settlement.XP)
	} else {
		m.status = fmt.Sprintf("replay: +%d xp", settlement.XP)
	}
	return m
}

// View -----------------------------------------------------------------------

func (m model) View() string {
	if m.view == viewMenu {
		return m.renderMenu()
	}
	return m.renderMission()
}

func variantTitle(v engine.Variant) string {
	switch v {
	case engine.VariantHeist:
		return "The Heist"
	case engine.VariantGhostHunt:
		return "Ghost Hunt"
	default:
		return "Mirror World"
	}
}

func (m model) renderMenu() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Shop City Missions") + "\n\n")
	for i, v := range engine.AllVariants {
		ms := m.missions[v]
		line := fmt.Sprintf("%d) %-14s level %d/%d", i+1, variantTitle(v), ms.Level(), engine.MaxLevel(v))
		if v == m.active {
			line = m.styles.accent.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + m.styles.muted.Render("l: cycle level   enter: start   q: quit") + "\n")
	if m.wallet != nil {
		b.WriteString(fmt.Sprintf("\nwallet: %d coins, %d xp\n", m.wallet.Coins, m.wallet.XP))
	}
	if m.status != "" {
		b.WriteString("\n" + m.styles.warn.Render(m.status) + "\n")
	}
	return b.String()
}

func (m model) renderMission() string {
	snap := m.mission().Snapshot()
	switch snap.Phase {
	case engine.PhaseBriefing:
		return m.renderBriefing(snap)
	case engine.PhaseCompleted:
		return m.renderResult(snap, true)
	case engine.PhaseFailed:
		return m.renderResult(snap, false)
	default:
		return m.renderHUD(snap)
	}
}

func (m model) renderBriefing(snap engine.Snapshot) string {
	md := briefingMarkdown(snap)
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out + m.styles.muted.Render("enter: begin   esc: abort") + "\n"
}

func briefingMarkdown(snap engine.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s — Level %d\n\n", variantTitle(snap.Variant), snap.Level)
	switch snap.Variant {
	case engine.VariantHeist:
		b.WriteString("Slip past the guards, lift the loot, and walk out like you own the place. Getting spotted costs you.\n\n")
	case engine.VariantGhostHunt:
		b.WriteString("Something is haunting the arcades. Track the signal to its source before the trail goes cold.\n\n")
	default:
		b.WriteString("The city has a double. Collect the anchors before the shadows close in, then run for the exit.\n\n")
	}
	fmt.Fprintf(&b, "- Time limit: **%.0fs**\n", snap.TimeLeft)
	fmt.Fprintf(&b, "- Lives: **%d**\n", snap.Lives)
	fmt.Fprintf(&b, "- Objectives: **%d**\n\n", snap.Required)
	b.WriteString("Your first clue:\n\n")
	for _, c := range snap.Clues {
		if c.Revealed {
			fmt.Fprintf(&b, "> %s\n", c.Text)
			break
		}
	}
	return b.String()
}

func (m model) renderHUD(snap engine.Snapshot) string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render(fmt.Sprintf("%s  L%d", variantTitle(snap.Variant), snap.Level)))
	fmt.Fprintf(&b, "   %s", formatClock(snap.TimeLeft))
	fmt.Fprintf(&b, "   %s", strings.Repeat("♥", snap.Lives))
	if snap.Protected {
		b.WriteString("  " + m.styles.good.Render("[shielded]"))
	}
	fmt.Fprintf(&b, "   phase: %s\n\n", snap.Phase)

	b.WriteString(m.styles.accent.Render("Clues") + "\n")
	for _, c := range snap.Clues {
		if c.Revealed {
			fmt.Fprintf(&b, "  • %s\n", c.Text)
		} else {
			b.WriteString(m.styles.muted.Render("  • ???") + "\n")
		}
	}

	fmt.Fprintf(&b, "\n%s %d/%d\n", m.styles.accent.Render("Anchors"), snap.Collected, snap.Required)
	for _, o := range snap.Objectives {
		mark := " "
		if o.Collected {
			mark = "x"
		}
		fmt.Fprintf(&b, "  [%s] %s (%.0f, %.0f)\n", mark, o.ID, o.Pos.X, o.Pos.Z)
	}

	b.WriteString("\n" + m.styles.accent.Render("Indicators") + "\n")
	for _, ind := range snap.Indicators {
		fmt.Fprintf(&b, "  %s at (%.0f, %.0f)\n", ind.Type, ind.Pos.X, ind.Pos.Z)
	}

	if snap.Toast != "" {
		b.WriteString("\n" + m.styles.good.Render(snap.Toast) + "\n")
	}
	if m.status != "" {
		b.WriteString("\n" + m.styles.warn.Render(m.status) + "\n")
	}
	b.WriteString("\n" + m.styles.muted.Render("c: collect  v/x: enter shop  r: reveal clue  h/g: simulate hit  e: exit  p/o: pause  esc: abandon") + "\n")
	return b.String()
}

func (m model) renderResult(snap engine.Snapshot, won bool) string {
	var b strings.Builder
	if won {
		b.WriteString(m.styles.good.Render("Mission complete") + "\n\n")
		if snap.UnlockedLevel > snap.Level {
			fmt.Fprintf(&b, "Level %d unlocked.\n", snap.UnlockedLevel)
		}
	} else {
		b.WriteString(m.styles.warn.Render("Mission failed") + "\n\n")
		fmt.Fprintf(&b, "Reason: %s\n", snap.FailReason)
	}
	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	if m.wallet != nil {
		fmt.Fprintf(&b, "\nwallet: %d coins, %d xp\n", m.wallet.Coins, m.wallet.XP)
	}
	b.WriteString("\n" + m.styles.muted.Render("enter: back to menu") + "\n")
	return b.String()
}

// formatClock renders seconds as m:ss, clamped at zero.
func formatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
