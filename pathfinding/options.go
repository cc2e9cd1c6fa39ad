package pathfinding

const (
	// DefaultAnchorOffset is the stand-off between a shape and its search anchor.
	DefaultAnchorOffset = 10.0
	// DefaultStep is the nominal grid granularity in real units.
	DefaultStep = 10.0
	// DefaultLimit is the iteration budget of a search.
	DefaultLimit = 2000
	// mapMarginSteps is the margin, in steps, added around the shapes when
	// the map size is derived rather than given.
	mapMarginSteps = 4
)

// Options holds the tuning of a Router.
type Options struct {
	AnchorOffset float64
	Step         float64
	MapWidth     float64 // zero derives the width from the shapes
	MapHeight    float64 // zero derives the height from the shapes
	Limit        int
}

// DefaultOptions returns the tuning used when no Option is given.
func DefaultOptions() Options {
	return Options{
		AnchorOffset: DefaultAnchorOffset,
		Step:         DefaultStep,
		Limit:        DefaultLimit,
	}
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithAnchorOffset sets the stand-off distance of the search anchors.
func WithAnchorOffset(offset float64) Option {
	return func(o *Options) { o.AnchorOffset = offset }
}

// WithStep sets the nominal grid step.
func WithStep(step float64) Option {
	return func(o *Options) { o.Step = step }
}

// WithMapSize sets the real-unit extent of the searchable region.
func WithMapSize(width, height float64) Option {
	return func(o *Options) {
		o.MapWidth = width
		o.MapHeight = height
	}
}

// WithLimit sets the maximum number of search iterations.
func WithLimit(limit int) Option {
	return func(o *Options) { o.Limit = limit }
}

// WithOptions replaces the whole tuning at once.
func WithOptions(opts Options) Option {
	return func(o *Options) { *o = opts }
}
