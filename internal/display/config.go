package display

import (
	"errors"
	"fmt"

	"github.com/muesli/termenv"
)

// Mode selects how tiles map to terminal cells.
type Mode string

const (
	// ModeBlock draws one tile per Glyph with the tile as background color.
	ModeBlock Mode = "block"
	// ModeBraille packs 2x4 tiles into one braille character.
	ModeBraille Mode = "braille"
)

// Config holds the drawing settings of a Renderer. Each Renderer owns its
// copy, so several can coexist with different settings.
type Config struct {
	Glyph        string `json:"glyph"`
	GridMarkers  bool   `json:"grid_markers"`
	GridInterval int    `json:"grid_interval"`
	Mode         Mode   `json:"mode"`
	Profile      string `json:"profile"`
	FlipY        bool   `json:"flip_y"`
	Border       bool   `json:"border"`
}

// DefaultConfig returns two-space square pixels, y-up, no markers.
func DefaultConfig() Config {
	return Config{
		Glyph:        "  ",
		GridMarkers:  false,
		GridInterval: 5,
		Mode:         ModeBlock,
		Profile:      "auto",
		FlipY:        true,
		Border:       true,
	}
}

// Validate checks the settings.
func (c Config) Validate() error {
	if c.Glyph == "" {
		return errors.New("display: empty glyph")
	}
	if c.GridInterval < 2 {
		return fmt.Errorf("display: grid interval %d must be at least 2", c.GridInterval)
	}
	switch c.Mode {
	case ModeBlock, ModeBraille:
	default:
		return fmt.Errorf("display: unknown mode %q", c.Mode)
	}
	if _, err := parseProfile(c.Profile); err != nil {
		return err
	}
	return nil
}

func parseProfile(s string) (termenv.Profile, error) {
	switch s {
	case "", "auto":
		return termenv.EnvColorProfile(), nil
	case "truecolor":
		return termenv.TrueColor, nil
	case "ansi256":
		return termenv.ANSI256, nil
	case "ansi":
		return termenv.ANSI, nil
	case "ascii":
		return termenv.Ascii, nil
	}
	return termenv.Ascii, fmt.Errorf("display: unknown color profile %q", s)
}
