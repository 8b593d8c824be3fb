package result

import (
	"encoding/json"
	"io"
	"math"

	"github.com/Coyote-git/Better-keyboard/pkg/freq"
	"github.com/Coyote-git/Better-keyboard/pkg/geometry"
)

// SlotJSON is one slot in the exported layout, as consumed by the iOS
// keyboard: the letter, its ring, and its position.
type SlotJSON struct {
	Letter   string  `json:"letter"`
	Ring     string  `json:"ring"`
	Index    int     `json:"index"`
	AngleDeg float64 `json:"angle_deg"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// MetadataJSON mirrors the geometry the layout was optimized on.
type MetadataJSON struct {
	Energy       float64   `json:"energy"`
	RInner       float64   `json:"r_inner"`
	ROuter       float64   `json:"r_outer"`
	NInner       int       `json:"n_inner"`
	NOuter       int       `json:"n_outer"`
	GapAngles    []float64 `json:"gap_angles"`
	GapWidthDeg  float64   `json:"gap_width_deg"`
	UsableArcDeg float64   `json:"usable_arc_deg"`
	ArcStartDeg  float64   `json:"arc_start_deg"`
	ArcEndDeg    float64   `json:"arc_end_deg"`
}

// LayoutJSON is the full export payload.
type LayoutJSON struct {
	Slots    []SlotJSON   `json:"slots"`
	Metadata MetadataJSON `json:"metadata"`
}

// ToLayoutJSON converts a result to the export form, with angles rounded
// to 2 decimals and coordinates to 4, matching the reference exporter.
func ToLayoutJSON(r *Result) *LayoutJSON {
	out := &LayoutJSON{
		Slots: make([]SlotJSON, len(r.Layout.Slots)),
		Metadata: MetadataJSON{
			Energy:       r.BestEnergy,
			RInner:       r.Layout.Meta.RInner,
			ROuter:       r.Layout.Meta.ROuter,
			NInner:       r.Layout.Meta.NInner,
			NOuter:       r.Layout.Meta.NOuter,
			GapAngles:    r.Layout.Meta.GapAngles,
			GapWidthDeg:  r.Layout.Meta.GapWidthDeg,
			UsableArcDeg: r.Layout.Meta.UsableArcDeg,
			ArcStartDeg:  r.Layout.Meta.ArcStartDeg,
			ArcEndDeg:    r.Layout.Meta.ArcEndDeg,
		},
	}
	for i, s := range r.Layout.Slots {
		out.Slots[i] = SlotJSON{
			Letter:   string(freq.Letter(r.Best.LetterAt(i))),
			Ring:     s.Ring.String(),
			Index:    i,
			AngleDeg: round(s.AngleDeg, 2),
			X:        round(s.Pos.X, 4),
			Y:        round(s.Pos.Y, 4),
		}
	}
	return out
}

// WriteJSON writes the layout export as indented JSON.
func WriteJSON(w io.Writer, r *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToLayoutJSON(r))
}

// ReadJSON parses a previously exported layout.
func ReadJSON(r io.Reader) (*LayoutJSON, error) {
	var out LayoutJSON
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GeometryConfig reconstructs the ring configuration a layout export was
// produced with, so renderers can redraw gaps and arcs.
func (l *LayoutJSON) GeometryConfig() geometry.Config {
	return geometry.Config{
		NInner:      l.Metadata.NInner,
		NOuter:      l.Metadata.NOuter,
		RInner:      l.Metadata.RInner,
		ROuter:      l.Metadata.ROuter,
		GapAngles:   l.Metadata.GapAngles,
		GapWidthDeg: l.Metadata.GapWidthDeg,
	}
}

func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
