package main

import (
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"trirast/internal/config"
	"trirast/internal/raster"
	"trirast/internal/tui"
)

func main() {
	cfg := config.DefaultConfig()
	if len(os.Args) > 1 {
		c, err := config.LoadConfig(os.Args[1])
		if err != nil {
			log.Fatal(err)
		}
		cfg = c
	}
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "trirast")
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		raster.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if cfg.Plain {
		if err := runPlain(cfg); err != nil {
			log.Fatal(err)
		}
		return
	}
	m, err := tui.New(*cfg)
	if err != nil {
		log.Fatal(err)
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal(err)
	}
}
