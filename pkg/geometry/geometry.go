// Package geometry computes slot coordinates for a dual-ring circular
// keyboard. Slots are spread evenly across the arc that remains after
// angular gaps (backspace zone, reserved zone) are cut out of the circle.
package geometry

import (
	"errors"
	"fmt"
	"math"
)

// SlotCount is the number of key slots on the two rings combined. It has
// to match the 26-letter alphabet the optimizer arranges.
const SlotCount = 26

var (
	ErrRingSizeMismatch = errors.New("geometry: inner + outer slots must equal 26")
	ErrBadRadius        = errors.New("geometry: ring radii must be positive")
	ErrBadGapWidth      = errors.New("geometry: gap width must be non-negative and leave usable arc")
)

// Ring identifies which ring a slot belongs to.
type Ring int

const (
	RingInner Ring = iota
	RingOuter
)

func (r Ring) String() string {
	if r == RingInner {
		return "inner"
	}
	return "outer"
}

// Point is a 2D coordinate with the layout center at the origin.
type Point struct {
	X, Y float64
}

// Norm returns the Euclidean distance from the origin.
func (p Point) Norm() float64 {
	return math.Hypot(p.X, p.Y)
}

// Slot is one key position: its coordinate, ring membership, and the
// angle (degrees, CCW from +X) it sits at.
type Slot struct {
	Pos      Point
	Ring     Ring
	AngleDeg float64
}

// Config describes the ring/gap shape of the keyboard.
type Config struct {
	NInner int     // slots on the inner ring
	NOuter int     // slots on the outer ring
	RInner float64 // inner ring radius
	ROuter float64 // outer ring radius

	// GapAngles are the centers (degrees) of angular gaps cut out of both
	// rings; GapWidthDeg is the width of each gap. Empty GapAngles means
	// full 360° rings.
	GapAngles   []float64
	GapWidthDeg float64
}

// DefaultConfig matches the shipped keyboard: 8 inner + 18 outer slots,
// a backspace gap on the left (180°) and a reserved gap on the right (0°),
// each 36° wide.
func DefaultConfig() Config {
	return Config{
		NInner:      8,
		NOuter:      18,
		RInner:      1.0,
		ROuter:      2.2,
		GapAngles:   []float64{180, 0},
		GapWidthDeg: 36,
	}
}

// Validate rejects configurations the optimizer cannot run on.
func (c Config) Validate() error {
	if c.NInner <= 0 || c.NOuter <= 0 {
		return fmt.Errorf("%w: got inner=%d outer=%d", ErrRingSizeMismatch, c.NInner, c.NOuter)
	}
	if c.NInner+c.NOuter != SlotCount {
		return fmt.Errorf("%w: got inner=%d outer=%d", ErrRingSizeMismatch, c.NInner, c.NOuter)
	}
	if c.RInner <= 0 || c.ROuter <= 0 {
		return fmt.Errorf("%w: got r_inner=%v r_outer=%v", ErrBadRadius, c.RInner, c.ROuter)
	}
	if c.GapWidthDeg < 0 {
		return fmt.Errorf("%w: width=%v", ErrBadGapWidth, c.GapWidthDeg)
	}
	if total := float64(len(c.GapAngles)) * c.GapWidthDeg; total >= 360 {
		return fmt.Errorf("%w: gaps cover %v°", ErrBadGapWidth, total)
	}
	return nil
}

// Metadata carries arc bookkeeping for renderers and exporters.
type Metadata struct {
	GapAngles    []float64
	GapWidthDeg  float64
	UsableArcDeg float64
	ArcStartDeg  float64
	ArcEndDeg    float64
	RInner       float64
	ROuter       float64
	NInner       int
	NOuter       int
}

// Layout is the computed slot geometry: slots 0..NInner-1 are the inner
// ring, the rest the outer ring, each ring ordered CCW from the start of
// the usable arc.
type Layout struct {
	Slots []Slot
	Meta  Metadata
}

// segment is a CCW arc [startDeg, startDeg+lenDeg) free of gaps.
type segment struct {
	startDeg float64
	lenDeg   float64
}

// Compute places all slots for the given configuration.
//
// Contract: no returned angle falls inside any gap window, and each usable
// segment receives a slot count proportional to its arc length (slots are
// centered at spacing*(i+0.5) along the concatenated usable arc).
func Compute(c Config) (*Layout, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	segs, usable := usableSegments(c.GapAngles, c.GapWidthDeg)

	lay := &Layout{
		Slots: make([]Slot, 0, SlotCount),
		Meta: Metadata{
			GapAngles:    append([]float64(nil), c.GapAngles...),
			GapWidthDeg:  c.GapWidthDeg,
			UsableArcDeg: usable,
			ArcStartDeg:  segs[0].startDeg,
			ArcEndDeg:    math.Mod(segs[0].startDeg+segs[0].lenDeg, 360),
			RInner:       c.RInner,
			ROuter:       c.ROuter,
			NInner:       c.NInner,
			NOuter:       c.NOuter,
		},
	}
	lay.Slots = append(lay.Slots, distribute(c.NInner, c.RInner, RingInner, segs, usable)...)
	lay.Slots = append(lay.Slots, distribute(c.NOuter, c.ROuter, RingOuter, segs, usable)...)
	return lay, nil
}

// usableSegments cuts the gap windows out of the circle and returns the
// remaining arcs in CCW order, starting from the end of the gap with the
// smallest center angle. With no gaps the whole circle is one segment.
func usableSegments(gapAngles []float64, widthDeg float64) ([]segment, float64) {
	if len(gapAngles) == 0 || widthDeg == 0 {
		return []segment{{startDeg: 0, lenDeg: 360}}, 360
	}

	centers := append([]float64(nil), gapAngles...)
	for i := range centers {
		centers[i] = math.Mod(math.Mod(centers[i], 360)+360, 360)
	}
	// Insertion sort; the gap list is tiny.
	for i := 1; i < len(centers); i++ {
		for j := i; j > 0 && centers[j] < centers[j-1]; j-- {
			centers[j], centers[j-1] = centers[j-1], centers[j]
		}
	}

	half := widthDeg / 2
	segs := make([]segment, 0, len(centers))
	usable := 0.0
	for i := range centers {
		start := math.Mod(centers[i]+half, 360) // end of this gap
		next := centers[(i+1)%len(centers)]
		end := math.Mod(next-half+360, 360) // start of the next gap
		length := math.Mod(end-start+360, 360)
		segs = append(segs, segment{startDeg: start, lenDeg: length})
		usable += length
	}
	return segs, usable
}

// distribute places n slots at radius r, evenly spaced along the
// concatenated usable arc, walking through segments to map arc positions
// back to absolute angles.
func distribute(n int, r float64, ring Ring, segs []segment, usable float64) []Slot {
	spacing := usable / float64(n)
	slots := make([]Slot, 0, n)
	for i := 0; i < n; i++ {
		arcPos := spacing * (float64(i) + 0.5)
		remaining := arcPos
		angle := -1.0
		for _, s := range segs {
			if remaining <= s.lenDeg {
				angle = math.Mod(s.startDeg+remaining, 360)
				break
			}
			remaining -= s.lenDeg
		}
		if angle < 0 { // accumulated rounding pushed us past the last segment
			angle = math.Mod(segs[len(segs)-1].startDeg+remaining, 360)
		}
		rad := angle * math.Pi / 180
		slots = append(slots, Slot{
			Pos:      Point{X: r * math.Cos(rad), Y: r * math.Sin(rad)},
			Ring:     ring,
			AngleDeg: angle,
		})
	}
	return slots
}

// InGap reports whether an angle (degrees) falls inside any gap window of
// the configuration. Exposed for geometry consumers that draw the gaps.
func (c Config) InGap(angleDeg float64) bool {
	if len(c.GapAngles) == 0 || c.GapWidthDeg == 0 {
		return false
	}
	a := math.Mod(math.Mod(angleDeg, 360)+360, 360)
	half := c.GapWidthDeg / 2
	for _, g := range c.GapAngles {
		start := math.Mod(math.Mod(g-half, 360)+360, 360)
		end := math.Mod(math.Mod(g+half, 360)+360, 360)
		if start < end {
			if a >= start && a < end {
				return true
			}
		} else if a >= start || a < end {
			return true
		}
	}
	return false
}
