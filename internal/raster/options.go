package raster

// CoverageMode selects the per-sample inside test used by DrawTriangle.
type CoverageMode int

const (
	// CoverageBarycentric samples barycentric weights; supports attributes.
	CoverageBarycentric CoverageMode = iota
	// CoverageFloor counts the edges a sample lies above. Attributes are
	// not interpolated in this mode.
	CoverageFloor
)

func (m CoverageMode) String() string {
	switch m {
	case CoverageBarycentric:
		return "barycentric"
	case CoverageFloor:
		return "floor"
	}
	return "unknown"
}

// ParseCoverageMode accepts the names returned by CoverageMode.String.
func ParseCoverageMode(s string) (CoverageMode, bool) {
	switch s {
	case "", "barycentric":
		return CoverageBarycentric, true
	case "floor":
		return CoverageFloor, true
	}
	return CoverageBarycentric, false
}

// DefaultSupersample is the per-axis sample count used for anti-aliasing.
const DefaultSupersample = 4

// Option configures a FrameBuffer.
type Option func(*FrameBuffer)

// WithName sets the label drawn above the buffer.
func WithName(name string) Option {
	return func(fb *FrameBuffer) { fb.name = name }
}

// WithSupersample sets N for the N×N coverage sub-grid. Values below 1 are
// treated as 1.
func WithSupersample(n int) Option {
	return func(fb *FrameBuffer) { fb.samples = max(1, n) }
}

// WithCoverage selects the inside test.
func WithCoverage(m CoverageMode) Option {
	return func(fb *FrameBuffer) { fb.coverage = m }
}
