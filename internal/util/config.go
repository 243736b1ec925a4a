package util

// Config holds runtime settings and flags.
type Config struct {
	SeedText   string
	DSN        string
	PlayerName string
	ListenAddr string // non-empty switches from the TUI to the websocket bridge
	Theme      string
}
