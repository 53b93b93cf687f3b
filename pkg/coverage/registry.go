package coverage

import (
	"io"
	"slices"

	f "github.com/multimediallc/sensor-coverage/pkg/functional"
)

// Registry is the immutable set of sensors and known beacons
type Registry struct {
	sensors []Sensor
	beacons []Position
}

// NewRegistry derives one sensor per record and the distinct beacon positions
func NewRegistry(records []Record) *Registry {
	sensors := f.Map(records, NewSensor)

	beacons := f.Map(records, func(r Record) Position { return r.Beacon })
	slices.SortFunc(beacons, comparePositions)
	beacons = slices.Compact(beacons)

	return &Registry{sensors: sensors, beacons: beacons}
}

// ReadRegistry parses r and builds a Registry from it
func ReadRegistry(r io.Reader) (*Registry, error) {
	records, err := ReadRecords(r)
	if err != nil {
		return nil, err
	}
	return NewRegistry(records), nil
}

// Sensors returns the sensors in input order. The slice must not be modified.
func (r *Registry) Sensors() []Sensor {
	return r.sensors
}

// Beacons returns the distinct beacon positions ordered by (x, y). The slice must not be modified.
func (r *Registry) Beacons() []Position {
	return r.beacons
}

// CountExcluded is CountExcluded over the registry's sensors and beacons
func (r *Registry) CountExcluded(row int) int {
	return CountExcluded(r.sensors, r.beacons, row)
}

// FindUncoveredSignal is FindUncoveredSignal over the registry's sensors
func (r *Registry) FindUncoveredSignal(bound int) (int, error) {
	return FindUncoveredSignal(r.sensors, bound)
}
