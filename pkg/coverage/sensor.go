package coverage

import "fmt"

// Record is one parsed input line: a sensor and its nearest beacon
type Record struct {
	Sensor Position
	Beacon Position
}

// Sensor is a fixed point that rules out undetected beacons within Radius
type Sensor struct {
	Position Position `json:"position"`
	Radius   int      `json:"radius"`
}

// NewSensor derives the coverage radius from the sensor's nearest beacon
func NewSensor(r Record) Sensor {
	return Sensor{Position: r.Sensor, Radius: r.Sensor.ManhattanDistance(r.Beacon)}
}

// Covers reports whether p lies inside the sensor's diamond
func (s Sensor) Covers(p Position) bool {
	return s.Position.ManhattanDistance(p) <= s.Radius
}

// RowInterval returns the closed range of x covered on row y.
// ok is false when the diamond does not reach the row.
func (s Sensor) RowInterval(y int) (iv Interval, ok bool) {
	half := s.Radius - abs(s.Position.Y-y)
	if half < 0 {
		return Interval{}, false
	}
	return Interval{Lo: s.Position.X - half, Hi: s.Position.X + half}, true
}

// Interval is a closed range [Lo, Hi] of x values
type Interval struct {
	Lo int `json:"lo"`
	Hi int `json:"hi"`
}

// Width returns the number of integers in the interval
func (iv Interval) Width() int {
	return iv.Hi - iv.Lo + 1
}

func (iv Interval) Contains(x int) bool {
	return iv.Lo <= x && x <= iv.Hi
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%d, %d]", iv.Lo, iv.Hi)
}
