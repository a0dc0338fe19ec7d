package hashset

import (
	"fmt"

	"go.uber.org/zap"
)

const (
	INITIAL_CAPACITY = 16
	MIN_CAPACITY     = 16
	MAX_LOAD_FACTOR  = 0.75
	MIN_LOAD_FACTOR  = 0.25
	GROWTH_FACTOR    = 2
)

// Options holds the tuning parameters of a HashSet.
type Options struct {
	InitialCapacity int
	// MinCapacity is the floor below which a shrink rehash never goes.
	MinCapacity   int
	MaxLoadFactor float64
	MinLoadFactor float64
	GrowthFactor  int
	Logger        *zap.Logger
}

type Option func(*Options)

func DefaultOptions() Options {
	return Options{
		InitialCapacity: INITIAL_CAPACITY,
		MinCapacity:     MIN_CAPACITY,
		MaxLoadFactor:   MAX_LOAD_FACTOR,
		MinLoadFactor:   MIN_LOAD_FACTOR,
		GrowthFactor:    GROWTH_FACTOR,
	}
}

func WithInitialCapacity(n int) Option {
	return func(o *Options) {
		o.InitialCapacity = n
	}
}

func WithMinCapacity(n int) Option {
	return func(o *Options) {
		o.MinCapacity = n
	}
}

func WithLoadFactors(min, max float64) Option {
	return func(o *Options) {
		o.MinLoadFactor = min
		o.MaxLoadFactor = max
	}
}

func WithGrowthFactor(n int) Option {
	return func(o *Options) {
		o.GrowthFactor = n
	}
}

// WithLogger sets the logger rehash events are reported to. Errors are never
// logged by the set itself.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithOptions replaces every field at once, keeping the current logger when
// the given one is nil.
func WithOptions(opts Options) Option {
	return func(o *Options) {
		logger := o.Logger
		*o = opts
		if o.Logger == nil {
			o.Logger = logger
		}
	}
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Validate reports every inconsistency in o, not just the first one.
func (o Options) Validate() error {
	var errs MultiError
	if !isPowerOfTwo(o.InitialCapacity) {
		errs = append(errs, fmt.Errorf("initial capacity %d is not a power of two", o.InitialCapacity))
	}
	if !isPowerOfTwo(o.MinCapacity) {
		errs = append(errs, fmt.Errorf("min capacity %d is not a power of two", o.MinCapacity))
	}
	if o.MinCapacity > o.InitialCapacity {
		errs = append(errs, fmt.Errorf("min capacity %d exceeds initial capacity %d", o.MinCapacity, o.InitialCapacity))
	}
	if o.GrowthFactor < 2 || !isPowerOfTwo(o.GrowthFactor) {
		errs = append(errs, fmt.Errorf("growth factor %d is not a power of two >= 2", o.GrowthFactor))
	}
	if o.MaxLoadFactor <= 0 || o.MaxLoadFactor > 1 {
		errs = append(errs, fmt.Errorf("max load factor %g out of (0, 1]", o.MaxLoadFactor))
	}
	if o.MinLoadFactor < 0 || o.MinLoadFactor >= o.MaxLoadFactor {
		errs = append(errs, fmt.Errorf("min load factor %g out of [0, %g)", o.MinLoadFactor, o.MaxLoadFactor))
	}
	// a shrink must not land the set back over the grow threshold
	if o.GrowthFactor >= 2 && o.MinLoadFactor*float64(o.GrowthFactor) >= o.MaxLoadFactor {
		errs = append(errs, fmt.Errorf("min load factor %g times growth factor %d reaches max load factor %g",
			o.MinLoadFactor, o.GrowthFactor, o.MaxLoadFactor))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidOptions, errs)
}
