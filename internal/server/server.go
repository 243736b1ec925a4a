// Package server exposes the mission engine to a browser HUD over a
// websocket: one session per connection, JSON state snapshots broadcast at a
// fixed tick, gameplay events accepted as JSON commands. The 3D scene itself
// is rendered client-side; this bridge only carries engine state.
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/pverbeek/shop-city/internal/engine"
	"github.com/pverbeek/shop-city/internal/world"
)

const (
	updateRateHz = 20
	writeWait    = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// eventMsg is a gameplay command from the client.
type eventMsg struct {
	Type    string `json:"type"` // start | brief | collect | visit | hit | spotted | exit | reveal | reset | level | pause
	Variant string `json:"variant,omitempty"`
	ID      string `json:"id,omitempty"`
	Level   int    `json:"level,omitempty"`
	Seed    string `json:"seed,omitempty"`
	Paused  bool   `json:"paused,omitempty"`
}

// stateMsg is the tick broadcast. The snapshot inside is always redacted:
// the wire must never carry hidden clue text or decoy flags.
type stateMsg struct {
	Type     string          `json:"type"` // "state"
	Snapshot engine.Snapshot `json:"snapshot"`
	Shops    []engine.Shop   `json:"shops,omitempty"`
	Wallet   *engine.Wallet  `json:"wallet,omitempty"`
	Ack      string          `json:"ack,omitempty"`
}

// session is one connected client driving the shared player's missions. All
// mutation happens under mu: the engine itself is single-threaded and the
// read pump and tick loop are two goroutines.
type session struct {
	mu       sync.Mutex
	player   uuid.UUID
	seed     engine.SessionSeed
	missions map[engine.Variant]*engine.Mission
	active   engine.Variant
	store    engine.ProgressStore
	wallet   *engine.Wallet
	settled  map[engine.Variant]bool // per variant: current completion already settled
	lastTick time.Time
	notice   string
}

func newSession(player uuid.UUID, seed engine.SessionSeed, store engine.ProgressStore) *session {
	missions := make(map[engine.Variant]*engine.Mission, len(engine.AllVariants))
	for _, v := range engine.AllVariants {
		missions[v] = engine.NewMission(v, nil) // self-clocked; tick() pumps expiries
	}
	return &session{
		player:   player,
		seed:     seed,
		missions: missions,
		active:   engine.VariantMirrorWorld,
		store:    store,
		settled:  make(map[engine.Variant]bool),
	}
}

// hydrate loads persisted progression before the pumps start.
func (s *session) hydrate(ctx context.Context) {
	if s.store == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := engine.LoadProgress(ctx, s.store, s.player, s.missions); err != nil {
		log.Printf("progress load failed: %v", err)
		s.notice = "saved progress unavailable"
	}
}

func (s *session) mission() *engine.Mission { return s.missions[s.active] }

func (s *session) apply(ctx context.Context, msg eventMsg) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if msg.Variant != "" {
		if _, ok := s.missions[engine.Variant(msg.Variant)]; ok {
			s.active = engine.Variant(msg.Variant)
		}
	}
	m := s.mission()
	switch msg.Type {
	case "start":
		seed := s.seed
		if msg.Seed != "" {
			if parsed, err := engine.NewSessionSeed(msg.Seed); err == nil {
				seed = parsed
			}
		}
		s.settled[m.Variant()] = false
		if !m.Start(seed, world.Shops(), world.SpawnPoint()) {
			s.notice = "cannot start a mission here"
		}
	case "brief":
		m.CompleteBriefing()
	case "collect":
		m.CollectObjective(msg.ID)
	case "visit":
		if m.VisitShop(msg.ID) {
			s.notice = "you found the right shop"
		}
		s.settleVisit(ctx, msg.ID)
	case "hit":
		m.HitByPursuer()
	case "spotted":
		m.SpottedByGuard()
	case "exit":
		m.ReachExit()
	case "reveal":
		m.RevealNextClue()
	case "level":
		if !m.SelectLevel(msg.Level) {
			s.notice = "level locked"
		}
	case "pause":
		m.SetPaused(msg.Paused)
	case "reset":
		m.Reset()
		s.settled[m.Variant()] = false
	}
	s.settleCompletion(ctx)
}

// settleCompletion runs once per completed mission. The settled flag is per
// variant: merely switching the active variant back to an already-settled
// completion must not pay anything again. Store errors deny rewards and
// surface as a notice; the player can retry by re-completing.
func (s *session) settleCompletion(ctx context.Context) {
	m := s.mission()
	if s.store == nil || s.settled[m.Variant()] || m.Phase() != engine.PhaseCompleted {
		return
	}
	s.settled[m.Variant()] = true
	cfg := engine.LevelConfigFor(m.Variant(), m.Level())
	settlement, err := engine.SettleCompletion(ctx, s.store, s.player, m.Variant(), m.Level(), cfg.BaseCoins, cfg.BaseXP)
	if err != nil {
		log.Printf("settlement failed: %v", err)
		s.notice = "reward settlement failed"
		return
	}
	w, _ := s.store.ApplyReward(ctx, s.player, 0, 0)
	s.wallet = &w
	if settlement.FirstClear {
		s.notice = "first clear!"
	}
}

func (s *session) settleVisit(ctx context.Context, shopID string) {
	if s.store == nil || shopID == "" {
		return
	}
	if _, err := engine.SettleVisit(ctx, s.store, s.player, shopID); err != nil {
		log.Printf("visit settlement failed: %v", err)
	}
}

func (s *session) tick(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.lastTick.IsZero() {
		s.mission().UpdateTimer(now.Sub(s.lastTick).Seconds())
	}
	s.lastTick = now
}

// redactSnapshot strips everything the client could use to skip the game:
// hidden clue text stays hidden until the engine reveals it, and indicators
// go out without their decoy marking, so the wire never says which marker is
// real. Snapshot slices are already clones, so mutating them here never
// touches engine state.
func redactSnapshot(snap engine.Snapshot) engine.Snapshot {
	for i := range snap.Clues {
		if !snap.Clues[i].Revealed {
			snap.Clues[i].Text = ""
		}
	}
	for i := range snap.Indicators {
		snap.Indicators[i].IsDecoy = false
		snap.Indicators[i].Tell = ""
	}
	return snap
}

func (s *session) state(includeShops bool) stateMsg {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := stateMsg{Type: "state", Snapshot: redactSnapshot(s.mission().Snapshot()), Wallet: s.wallet}
	if includeShops {
		msg.Shops = world.Shops()
	}
	if s.notice != "" {
		msg.Ack = s.notice
		s.notice = ""
	}
	return msg
}

// Server carries the shared collaborators for all sessions. The player id is
// the database-ensured account every connection plays as; the store's foreign
// keys reject rows for ids that were never inserted into players, so making
// one up per connection would fail every settlement.
type Server struct {
	store  engine.ProgressStore
	player uuid.UUID
	seed   engine.SessionSeed
}

func New(store engine.ProgressStore, player uuid.UUID, seed engine.SessionSeed) *Server {
	return &Server{store: store, player: player, seed: seed}
}

func (srv *Server) newSession(seed engine.SessionSeed) *session {
	return newSession(srv.player, seed, srv.store)
}

// Run blocks serving the websocket endpoint until the context ends.
func (srv *Server) Run(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", srv.serveWS)
	httpSrv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()
	log.Printf("websocket bridge listening on %s", addr)
	err := httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (srv *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	seed := srv.seed
	if q := r.URL.Query().Get("seed"); q != "" {
		if parsed, err := engine.NewSessionSeed(q); err == nil {
			seed = parsed
		}
	}
	sess := srv.newSession(seed)
	sess.hydrate(ctx)

	// first frame carries the shop catalog so the client can draw the city
	if err := writeJSON(conn, sess.state(true)); err != nil {
		return
	}

	go srv.readPump(ctx, cancel, conn, sess)

	ticker := time.NewTicker(time.Second / updateRateHz)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			sess.tick(now)
			if err := writeJSON(conn, sess.state(false)); err != nil {
				return
			}
		}
	}
}

func (srv *Server) readPump(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, sess *session) {
	defer cancel()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg eventMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		sess.apply(ctx, msg)
	}
}

func writeJSON(conn *websocket.Conn, v any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(v)
}
