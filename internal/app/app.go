package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"dirsweep/internal/config"
	"dirsweep/internal/logging"
	"dirsweep/internal/services"
	"dirsweep/internal/state"
	"dirsweep/internal/ui"
)

type ConfigProvider interface {
	ConfigSnapshot() config.Config
}

func Run() {
	base := config.DefaultConfig()
	loaded, loadErr := config.LoadConfig()
	if loadErr == nil {
		base = loaded
	}
	cfg := config.ParseFlags(base)

	logger, logCloser := logging.New(cfg.Log)
	defer logCloser.Close()

	coordinator := state.New(
		services.NewFSScanner(logger),
		services.NewFSSizer(logger),
		services.NewFSDeleter(logger),
		logger,
		cfg.SafeMode,
	)
	defer coordinator.Close()

	if err := coordinator.StartScan(cfg.Path, cfg.Patterns, cfg.IgnorePatterns); err != nil {
		fmt.Println("dirsweep:", err)
		return
	}

	model := ui.NewModel(coordinator, cfg)
	program := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := program.Run()
	if err != nil {
		fmt.Println("dirsweep error:", err)
		return
	}
	if provider, ok := finalModel.(ConfigProvider); ok {
		if err := config.SaveConfig(provider.ConfigSnapshot()); err != nil {
			logger.Warn("config save failed", "error", err)
		}
	}
}
