package coverage

import (
	"context"
	"math"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	f "github.com/multimediallc/sensor-coverage/pkg/functional"
	"golang.org/x/sync/errgroup"
)

// SignalMultiplier is the x factor of the encoded signal x*SignalMultiplier + y
const SignalMultiplier = 4_000_000

// MaxBound is the largest search bound whose every position encodes without overflow
const MaxBound = math.MaxInt / (SignalMultiplier + 1)

// ValidateBound rejects bounds outside [0, MaxBound]
func ValidateBound(bound int) error {
	if bound < 0 {
		return errors.Newf("bound %d must not be negative", bound)
	}
	if bound > MaxBound {
		return errors.Wrapf(ErrBoundTooLarge, "bound %d exceeds %d", bound, MaxBound)
	}
	return nil
}

// EncodeSignal returns p.X*SignalMultiplier + p.Y
func EncodeSignal(p Position) int {
	return p.X*SignalMultiplier + p.Y
}

// FindUncovered scans [0,bound]x[0,bound] row by row for a position no sensor covers.
// The caller guarantees there is exactly one; with several holes the scan returns
// the first one in row-major order, which is not a documented tie-break.
func FindUncovered(sensors []Sensor, bound int) (Position, error) {
	if err := ValidateBound(bound); err != nil {
		return Position{}, err
	}
	for y := 0; y <= bound; y++ {
		if x, ok := scanRow(sensors, bound, y); ok {
			return Position{X: x, Y: y}, nil
		}
	}
	return Position{}, &NotFoundError{Bound: bound}
}

// FindUncoveredSignal is FindUncovered followed by EncodeSignal
func FindUncoveredSignal(sensors []Sensor, bound int) (int, error) {
	p, err := FindUncovered(sensors, bound)
	if err != nil {
		return 0, err
	}
	return EncodeSignal(p), nil
}

// scanRow skips x past the first covering sensor's interval until an
// uncovered column is reached or x leaves the bound. After each skip the
// sensor list is tested again from the start, which is O(len(sensors)) per
// skip but keeps the scan order fixed.
func scanRow(sensors []Sensor, bound, y int) (int, bool) {
	x := 0
	for x <= bound {
		p := Position{X: x, Y: y}
		s, covered := f.Find(sensors, func(s Sensor) bool { return s.Covers(p) })
		if !covered {
			return x, true
		}
		iv, _ := s.RowInterval(y)
		x = iv.Hi + 1
	}
	return 0, false
}

// FindUncoveredParallel splits the rows of the square across workers.
// It returns the same position as FindUncovered: rows are striped, and the
// lowest hit row wins, so workers stop once they pass a row already found.
func FindUncoveredParallel(ctx context.Context, sensors []Sensor, bound, workers int) (Position, error) {
	if workers <= 1 {
		return FindUncovered(sensors, bound)
	}
	if err := ValidateBound(bound); err != nil {
		return Position{}, err
	}

	var (
		mu      sync.Mutex
		best    Position
		found   atomic.Bool
		bestRow atomic.Int64
	)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for y := w; y <= bound; y += workers {
				if found.Load() && int64(y) >= bestRow.Load() {
					return nil
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				x, ok := scanRow(sensors, bound, y)
				if !ok {
					continue
				}
				mu.Lock()
				if !found.Load() || int64(y) < bestRow.Load() {
					best = Position{X: x, Y: y}
					bestRow.Store(int64(y))
					found.Store(true)
				}
				mu.Unlock()
				return nil
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Position{}, errors.Wrap(err, "parallel row scan")
	}
	if !found.Load() {
		return Position{}, &NotFoundError{Bound: bound}
	}
	return best, nil
}
