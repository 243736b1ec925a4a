package engine

import (
	"fmt"
	"time"
)

type Phase string

const (
	PhaseInactive     Phase = "inactive"
	PhaseBriefing     Phase = "briefing"
	PhaseHunting      Phase = "hunting"
	PhaseInfiltrating Phase = "infiltrating"
	PhaseEscaping     Phase = "escaping"
	PhaseCompleted    Phase = "completed"
	PhaseFailed       Phase = "failed"
)

// FailReason is recorded once at the failure transition and read-only after.
type FailReason string

const (
	FailTime     FailReason = "time"
	FailCaught   FailReason = "caught"
	FailDetected FailReason = "detected"
)

// Objective is a collectible the player must gather to finish the mission.
type Objective struct {
	ID        string `json:"id"`
	Pos       Vec2   `json:"pos"`
	Collected bool   `json:"collected"`
}

// Pursuer is a transient hazard spawned per mission (shadow, guard, ghost).
// The engine only owns its spawn state; movement and collision live with the
// simulation collaborator, which reports hits back through the damage handlers.
type Pursuer struct {
	ID    string  `json:"id"`
	Pos   Vec2    `json:"pos"`
	Speed float64 `json:"speed"`
}

// Spawn offsets relative to the player, cycled so multiple pursuers never
// stack on one point.
var pursuerSpawnOffsets = []Vec2{{6, 0}, {-6, 0}, {0, 6}, {0, -6}, {5, 5}, {-5, -5}}

const (
	startProtection = 2500 * time.Millisecond
	hitProtection   = 2 * time.Second
	toastDuration   = 3 * time.Second

	// mission initiation needs room for clue narrowing plus a decoy option
	minCandidates = 3
)

type timerKind string

const (
	timerProtection timerKind = "protection"
	timerToast      timerKind = "toast"
)

// Mission is the lifecycle state machine for one minigame variant. It lives
// across plays (level progression persists through Reset); all per-mission
// transients are rebuilt by Start and torn down by Reset.
//
// A Mission is single-threaded by contract: all calls must come from one
// goroutine (the tick loop that also drives UpdateTimer). Delayed mutations go
// through the injected Clock and are owned per instance, so two missions in
// one process can never trip over each other's timers — and the clock is
// always a pumped StepClock, so expiries fire inside UpdateTimer on that same
// goroutine, never on a runtime timer goroutine.
type Mission struct {
	variant Variant
	clock   Clock
	pump    *StepClock // set when the mission owns its clock; advanced by UpdateTimer
	timers  map[timerKind]Timer

	phase    Phase
	level    int
	unlocked int
	cfg      LevelConfig

	timeLeft   float64
	lives      int
	protected  bool
	paused     bool
	failReason FailReason
	toast      string

	target     Shop
	shops      []Shop
	clues      []MissionClue
	indicators []MissionIndicator
	objectives []Objective
	collected  int
	pursuers   []Pursuer

	visited map[string]bool
}

// NewMission creates an idle mission machine for a variant. A nil clock gets
// a private StepClock that UpdateTimer pumps, which is what production drivers
// want; tests pass their own StepClock and advance it explicitly.
func NewMission(v Variant, clock Clock) *Mission {
	m := &Mission{
		variant:  v,
		clock:    clock,
		timers:   make(map[timerKind]Timer),
		phase:    PhaseInactive,
		level:    1,
		unlocked: 1,
		visited:  make(map[string]bool),
	}
	if clock == nil {
		m.pump = NewStepClock()
		m.clock = m.pump
	}
	return m
}

func (m *Mission) Variant() Variant       { return m.variant }
func (m *Mission) Phase() Phase           { return m.phase }
func (m *Mission) Level() int             { return m.level }
func (m *Mission) UnlockedLevel() int     { return m.unlocked }
func (m *Mission) FailReason() FailReason { return m.failReason }
func (m *Mission) Lives() int             { return m.lives }
func (m *Mission) TimeLeft() float64      { return m.timeLeft }
func (m *Mission) Protected() bool        { return m.protected }
func (m *Mission) Clues() []MissionClue   { return m.clues }
func (m *Mission) Visited(id string) bool { return m.visited[id] }

// RestoreProgress seeds the level frontier and the visit history from
// persistence. The frontier only ever moves forward and stays within the
// variant's level table; calls during play are ignored.
func (m *Mission) RestoreProgress(unlocked int, visited map[string]bool) {
	if m.phase != PhaseInactive && m.phase != PhaseCompleted && m.phase != PhaseFailed {
		return
	}
	if max := MaxLevel(m.variant); unlocked > max {
		unlocked = max
	}
	if unlocked > m.unlocked {
		m.unlocked = unlocked
	}
	for id, seen := range visited {
		if seen {
			m.visited[id] = true
		}
	}
}

// SelectLevel switches the difficulty for the next Start. Locked or unknown
// levels are refused.
func (m *Mission) SelectLevel(level int) bool {
	if m.phase != PhaseInactive && m.phase != PhaseCompleted && m.phase != PhaseFailed {
		return false
	}
	if level < 1 || level > m.unlocked || level > MaxLevel(m.variant) {
		return false
	}
	m.level = level
	return true
}

// activePhase is the variant's main playing phase.
func (m *Mission) activePhase() Phase {
	if m.variant == VariantHeist {
		return PhaseInfiltrating
	}
	return PhaseHunting
}

func (m *Mission) inActivePhase() bool {
	switch m.phase {
	case PhaseHunting, PhaseInfiltrating, PhaseEscaping:
		return true
	}
	return false
}

// Start initiates a mission from the idle or a terminal phase. It snapshots
// the eligible candidates, rolls target, clues and indicators off the session
// seed, spawns pursuers around the player, grants the starting protection
// window and enters briefing. Returns false (and stays idle) when the phase
// does not allow a start or fewer than three eligible shops exist; the caller
// presents that as "cannot start here", not as a crash.
func (m *Mission) Start(seed SessionSeed, catalog []Shop, playerPos Vec2) bool {
	switch m.phase {
	case PhaseInactive, PhaseCompleted, PhaseFailed:
	default:
		return false
	}
	eligible := EligibleShops(catalog)
	if len(eligible) < minCandidates {
		return false
	}

	m.cancelTimers()
	m.clearTransient()

	cfg := LevelConfigFor(m.variant, m.level)
	m.cfg = cfg

	missionSeed := seed.Mix(fmt.Sprintf("mission:%s:%d", m.variant, m.level))
	m.shops = eligible
	m.target = SelectTargetShop(eligible, m.visited, missionSeed.Stream("target"))
	m.clues = GenerateClues(m.target, eligible, missionSeed.Stream("clues"))
	m.indicators = GenerateIndicators(m.target, eligible, missionSeed.Stream("indicators"), cfg.MinDecoys, cfg.MaxDecoys)
	m.objectives = rollObjectives(eligible, missionSeed.Stream("objectives"), cfg.ObjectiveCount)
	m.pursuers = spawnPursuers(m.variant, playerPos, cfg)

	m.timeLeft = cfg.TimeLimit
	m.lives = cfg.Lives
	m.failReason = ""
	m.collected = 0
	m.paused = false

	m.grantProtection(startProtection)
	m.phase = PhaseBriefing
	return true
}

func rollObjectives(shops []Shop, st *Stream, count int) []Objective {
	if count > len(shops) {
		count = len(shops)
	}
	picks := append([]Shop(nil), shops...)
	st.Shuffle(len(picks), func(i, j int) { picks[i], picks[j] = picks[j], picks[i] })
	out := make([]Objective, count)
	for i := 0; i < count; i++ {
		out[i] = Objective{ID: fmt.Sprintf("anchor-%d", i+1), Pos: picks[i].Pos}
	}
	return out
}

func spawnPursuers(v Variant, playerPos Vec2, cfg LevelConfig) []Pursuer {
	out := make([]Pursuer, cfg.PursuerCount)
	for i := range out {
		offset := pursuerSpawnOffsets[i%len(pursuerSpawnOffsets)]
		out[i] = Pursuer{
			ID:    fmt.Sprintf("%s-pursuer-%d", v, i+1),
			Pos:   playerPos.Add(offset),
			Speed: cfg.PursuerSpeed,
		}
	}
	return out
}

// CompleteBriefing moves briefing into the variant's active phase.
func (m *Mission) CompleteBriefing() {
	if m.phase != PhaseBriefing {
		return
	}
	m.phase = m.activePhase()
}

// UpdateTimer consumes one tick's delta (seconds) from the render loop.
// Crossing zero fails the mission synchronously inside the same call, so no
// caller ever observes a negative or stale time. When the mission owns its
// clock this is also the pump: protection and toast expiries fire here, on
// the calling goroutine, in every phase (the countdown itself only runs in
// the active phases and while unpaused).
func (m *Mission) UpdateTimer(delta float64) {
	if delta <= 0 {
		return
	}
	if m.pump != nil {
		m.pump.Advance(time.Duration(delta * float64(time.Second)))
	}
	if !m.inActivePhase() || m.paused {
		return
	}
	m.timeLeft -= delta
	if m.timeLeft <= 0 {
		m.timeLeft = 0
		m.fail(FailTime)
	}
}

// SetPaused suspends or resumes the countdown.
func (m *Mission) SetPaused(p bool) { m.paused = p }

// HitByPursuer handles contact with a shadow/ghost. Ignored while protected
// or outside the active phases.
func (m *Mission) HitByPursuer() { m.damage(FailCaught) }

// SpottedByGuard handles a heist detection event.
func (m *Mission) SpottedByGuard() { m.damage(FailDetected) }

// damage decrements one life. The zero check and the failure transition happen
// in the same call with no suspension point in between, so no tick can ever
// see zero lives with a non-terminal phase.
func (m *Mission) damage(reason FailReason) {
	if !m.inActivePhase() || m.protected {
		return
	}
	m.lives--
	if m.lives <= 0 {
		m.lives = 0
		m.fail(reason)
		return
	}
	m.grantProtection(hitProtection)
}

// CollectObjective marks an objective found, banks the level's time bonus and
// completes the mission when the last one is in. Unknown or already-collected
// objectives and calls outside the active phase are no-ops: a stale input
// event after a transition is benign, not a bug.
func (m *Mission) CollectObjective(id string) {
	if !m.inActivePhase() {
		return
	}
	for i := range m.objectives {
		if m.objectives[i].ID != id || m.objectives[i].Collected {
			continue
		}
		m.objectives[i].Collected = true
		m.collected++
		m.timeLeft += m.cfg.TimeBonus
		m.showToast(fmt.Sprintf("Anchor secured (%d/%d)", m.collected, len(m.objectives)))
		if m.collected >= len(m.objectives) {
			m.objectivesDone()
		}
		return
	}
}

// VisitShop records the visit for novelty weighting and, when the visited shop
// is the mission target during the active phase, resolves the hunt. Returns
// whether the shop was the target.
func (m *Mission) VisitShop(id string) bool {
	m.visited[id] = true
	if !m.inActivePhase() || m.phase == PhaseEscaping {
		return false
	}
	if id != m.target.ID {
		return false
	}
	m.objectivesDone()
	return true
}

func (m *Mission) objectivesDone() {
	if m.cfg.HasEscape {
		m.phase = PhaseEscaping
		m.showToast("Get back to the exit!")
		return
	}
	m.complete()
}

// ReachExit finishes the escape leg of variants that have one.
func (m *Mission) ReachExit() {
	if m.phase != PhaseEscaping {
		return
	}
	m.complete()
}

func (m *Mission) complete() {
	m.phase = PhaseCompleted
	m.unlockNext()
}

// unlockNext advances the frontier by exactly one step, and only when the
// just-cleared level is the frontier: replaying level 2 with level 4 unlocked
// must not move anything.
func (m *Mission) unlockNext() {
	if m.level == m.unlocked && m.unlocked < MaxLevel(m.variant) {
		m.unlocked++
	}
}

func (m *Mission) fail(reason FailReason) {
	m.phase = PhaseFailed
	m.failReason = reason
}

// RevealNextClue flips the first hidden clue to revealed. Flags never reset.
func (m *Mission) RevealNextClue() {
	for i := range m.clues {
		if !m.clues[i].Revealed {
			m.clues[i].Revealed = true
			return
		}
	}
}

// Reset cancels every outstanding delayed callback and returns to the idle
// phase. It is the universal cancellation point: a timer scheduled by a
// previous mission can never mutate a freshly reset one. Safe to call at any
// time, including when nothing is active.
func (m *Mission) Reset() {
	m.cancelTimers()
	m.clearTransient()
	m.phase = PhaseInactive
	m.lives = LevelConfigFor(m.variant, m.level).Lives
}

func (m *Mission) clearTransient() {
	m.timeLeft = 0
	m.protected = false
	m.paused = false
	m.failReason = ""
	m.toast = ""
	m.target = Shop{}
	m.shops = nil
	m.clues = nil
	m.indicators = nil
	m.objectives = nil
	m.collected = 0
	m.pursuers = nil
}

func (m *Mission) grantProtection(d time.Duration) {
	m.protected = true
	m.schedule(timerProtection, d, func() { m.protected = false })
}

func (m *Mission) showToast(msg string) {
	m.toast = msg
	m.schedule(timerToast, toastDuration, func() { m.toast = "" })
}

// schedule replaces any pending timer of the same kind before arming a new
// one; that replacement discipline is what prevents stale delayed writes.
func (m *Mission) schedule(kind timerKind, d time.Duration, fn func()) {
	if t, ok := m.timers[kind]; ok && t != nil {
		t.Stop()
	}
	m.timers[kind] = m.clock.AfterFunc(d, fn)
}

func (m *Mission) cancelTimers() {
	for kind, t := range m.timers {
		if t != nil {
			t.Stop()
		}
		delete(m.timers, kind)
	}
}

// Snapshot is the read-only view handed to presentation layers each tick.
type Snapshot struct {
	Variant       Variant            `json:"variant"`
	Phase         Phase              `json:"phase"`
	Level         int                `json:"level"`
	UnlockedLevel int                `json:"unlockedLevel"`
	TimeLeft      float64            `json:"timeLeft"`
	Lives         int                `json:"lives"`
	Protected     bool               `json:"protected"`
	FailReason    FailReason         `json:"failReason,omitempty"`
	Toast         string             `json:"toast,omitempty"`
	Clues         []MissionClue      `json:"clues"`
	Indicators    []MissionIndicator `json:"indicators"`
	Objectives    []Objective        `json:"objectives"`
	Pursuers      []Pursuer          `json:"pursuers"`
	Collected     int                `json:"collected"`
	Required      int                `json:"required"`
}

// Snapshot copies the observable mission state. Slices are cloned so a
// consumer can hold the snapshot across ticks.
func (m *Mission) Snapshot() Snapshot {
	return Snapshot{
		Variant:       m.variant,
		Phase:         m.phase,
		Level:         m.level,
		UnlockedLevel: m.unlocked,
		TimeLeft:      m.timeLeft,
		Lives:         m.lives,
		Protected:     m.protected,
		FailReason:    m.failReason,
		Toast:         m.toast,
		Clues:         append([]MissionClue(nil), m.clues...),
		Indicators:    append([]MissionIndicator(nil), m.indicators...),
		Objectives:    append([]Objective(nil), m.objectives...),
		Pursuers:      append([]Pursuer(nil), m.pursuers...),
		Collected:     m.collected,
		Required:      len(m.objectives),
	}
}
