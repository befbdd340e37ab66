package display

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"

	"trirast/internal/raster"
)

// ErrDisplaySinkUnavailable is returned when the terminal size cannot be
// determined. It is not retried.
var ErrDisplaySinkUnavailable = errors.New("display: sink unavailable")

// SizeFunc reports the display size in columns and rows.
type SizeFunc func() (cols, rows int, err error)

// TerminalSize queries the terminal attached to fd.
func TerminalSize(fd uintptr) (cols, rows int, err error) {
	if !term.IsTerminal(fd) {
		return 0, 0, fmt.Errorf("%w: fd %d is not a terminal", ErrDisplaySinkUnavailable, fd)
	}
	cols, rows, err = term.GetSize(fd)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrDisplaySinkUnavailable, err)
	}
	if cols <= 0 || rows <= 0 {
		return 0, 0, fmt.Errorf("%w: size %dx%d", ErrDisplaySinkUnavailable, cols, rows)
	}
	return cols, rows, nil
}

// StdoutSize queries the terminal on standard output.
func StdoutSize() (int, int, error) {
	return TerminalSize(os.Stdout.Fd())
}

// NewFrameBuffer allocates a buffer of width×height tiles. When either
// dimension is zero the buffer is sized to fill the display reported by
// size, as laid out by r.
func NewFrameBuffer(r *Renderer, width, height int, size SizeFunc, opts ...raster.Option) (*raster.FrameBuffer, error) {
	if width == 0 || height == 0 {
		cols, rows, err := size()
		if err != nil {
			if !errors.Is(err, ErrDisplaySinkUnavailable) {
				err = fmt.Errorf("%w: %v", ErrDisplaySinkUnavailable, err)
			}
			return nil, err
		}
		fw, fh := r.Fit(cols, rows)
		if width == 0 {
			width = fw
		}
		if height == 0 {
			height = fh
		}
	}
	return raster.New(width, height, opts...)
}
