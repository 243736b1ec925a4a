package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/pverbeek/shop-city/internal/engine"
	"github.com/pverbeek/shop-city/internal/util"
)

// Run boots the TUI program and blocks until it exits. store may be nil
// when running without a database; rewards are skipped in that case.
func Run(ctx context.Context, store engine.ProgressStore, player uuid.UUID, cfg util.Config) error {
	m := initialModel(ctx, store, player, cfg)
	program := tea.NewProgram(m, tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
