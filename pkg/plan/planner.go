package plan

import (
	"fmt"
	"math"
	"math/rand"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/Hutch-Bros/gcode-sample-generator/pkg/geom"
	"github.com/Hutch-Bros/gcode-sample-generator/pkg/spec"
)

// Planner turns one spec's shape list into motion step groups. A Planner
// is single-use: create one per generation.
type Planner struct {
	spec    *spec.Spec
	rng     *rand.Rand
	cur     Position
	started bool
}

// NewPlanner creates a planner for a validated, normalized spec. When the
// spec asks for jitter, the planner seeds its own rand instance; no global
// random source is ever consulted.
func NewPlanner(s *spec.Spec) *Planner {
	p := &Planner{
		spec: s,
		cur:  Position{X: s.StartX, Y: s.StartY, Z: s.StartZ},
	}
	if s.Jitter != nil && s.Jitter.Magnitude > 0 {
		p.rng = rand.New(rand.NewSource(s.Jitter.Seed))
	}
	return p
}

// Plan produces the full program plan: every shape in listed order, the
// whole list repeated once per layer with only the Z (and accumulated E)
// values differing between layers. Jitter and arc decisions are made once
// on the base layer so repeated layers are planar-identical.
func (p *Planner) Plan() ([]Group, error) {
	base := make([]Group, 0, len(p.spec.Shapes))
	for _, sh := range p.spec.Shapes {
		g, err := p.planShape(sh)
		if err != nil {
			return nil, err
		}
		base = append(base, g)
	}
	if p.spec.Layers <= 1 {
		return base, nil
	}

	layerE := p.cur.E // extrusion accumulated over one layer
	groups := make([]Group, 0, len(base)*p.spec.Layers)
	for layer := 0; layer < p.spec.Layers; layer++ {
		dz := float64(layer) * p.spec.LayerHeight
		de := float64(layer) * layerE
		for _, g := range base {
			lg := Group{
				Desc:  fmt.Sprintf("layer %d/%d: %s", layer+1, p.spec.Layers, g.Desc),
				Steps: make([]Step, len(g.Steps)),
			}
			for i, st := range g.Steps {
				st.Target.Z += dz
				st.Target.E += de
				lg.Steps[i] = st
			}
			groups = append(groups, lg)
		}
	}
	return groups, nil
}

// planShape plans one shape at the base layer, consuming the shape's point
// sequence from the geometry primitives.
func (p *Planner) planShape(sh spec.Shape) (Group, error) {
	g := Group{Desc: sh.Label()}
	start := v2.Vec{X: p.spec.StartX, Y: p.spec.StartY}
	z := p.spec.StartZ

	switch d := sh.Data.(type) {
	case spec.LineData:
		seg := geom.Segment{From: start.Add(d.From), To: start.Add(d.To)}
		pts, err := seg.Points(p.spec.Resolution)
		if err != nil {
			return Group{}, err
		}
		p.appendPath(&g, pts, z)

	case spec.RectData:
		poly := geom.Polyline{Vertices: []geom.Point{
			start,
			start.Add(v2.Vec{X: d.Width}),
			start.Add(v2.Vec{X: d.Width, Y: d.Height}),
			start.Add(v2.Vec{Y: d.Height}),
		}}
		pts, err := poly.Points(p.spec.Resolution)
		if err != nil {
			return Group{}, err
		}
		p.appendPath(&g, pts, z)

	case spec.PolygonData:
		verts := make([]geom.Point, len(d.Vertices))
		for i, v := range d.Vertices {
			verts[i] = start.Add(v)
		}
		poly := geom.Polyline{Vertices: verts, Open: d.Open}
		pts, err := poly.Points(p.spec.Resolution)
		if err != nil {
			return Group{}, err
		}
		p.appendPath(&g, pts, z)

	case spec.CircleData:
		arc := geom.Arc{
			Center: start.Add(d.Center),
			Radius: d.Radius,
			Sweep:  2 * math.Pi,
		}
		if err := p.appendArc(&g, arc, z); err != nil {
			return Group{}, err
		}

	case spec.ArcData:
		arc := geom.Arc{
			Center:     start.Add(d.Center),
			Radius:     d.Radius,
			StartAngle: d.StartAngle,
			Sweep:      d.Sweep,
		}
		if err := p.appendArc(&g, arc, z); err != nil {
			return Group{}, err
		}

	default:
		return Group{}, fmt.Errorf("unhandled shape kind %s", sh.Kind)
	}

	if a := p.spec.Approach; a != nil {
		p.rapidTo(&g, p.cur.Planar(), z+a.Clearance)
	}
	return g, nil
}

// appendPath plans a point sequence: position at the first point, then
// feed moves through the rest.
func (p *Planner) appendPath(g *Group, pts *geom.Seq, z float64) {
	first := true
	for {
		pt, ok := pts.Next()
		if !ok {
			return
		}
		if first {
			p.begin(g, pt, z)
			first = false
			continue
		}
		p.feedTo(g, pt, z)
	}
}

// plungeStandoff is the height above the cut plane the tool rapids down to
// before the controlled plunge.
const plungeStandoff = 0.1

// begin positions the tool at a shape's first point. Without an approach
// configuration this is a plain rapid; with one, the tool rapids in at the
// clearance height, drops to the standoff, and plunges to the cut plane
// at the plunge feed.
func (p *Planner) begin(g *Group, pt v2.Vec, z float64) {
	a := p.spec.Approach
	if a == nil {
		p.rapidTo(g, pt, z)
		return
	}
	p.rapidTo(g, pt, z+a.Clearance)
	p.rapidTo(g, pt, z+plungeStandoff)

	// The plunge is a pure Z move; jitter never applies to it.
	target := Position{X: pt.X, Y: pt.Y, Z: z, E: p.cur.E}
	g.Steps = append(g.Steps, Step{Mode: Linear, Target: target, Feed: a.PlungeFeed})
	p.cur = target
}

// appendArc plans one arc primitive: a single native arc step, or chord
// moves when the spec asks for linearized arcs.
func (p *Planner) appendArc(g *Group, a geom.Arc, z float64) error {
	if p.spec.ArcMode == spec.ArcLinearized {
		pts, err := a.Points(p.spec.Resolution)
		if err != nil {
			return err
		}
		p.appendPath(g, pts, z)
		return nil
	}

	p.begin(g, a.Start(), z)

	mode := ArcCCW
	if a.Sweep < 0 {
		mode = ArcCW
	}
	end := a.End()
	target := Position{X: end.X, Y: end.Y, Z: z, E: p.cur.E}
	if p.spec.ExtrudeFactor > 0 {
		target.E += math.Abs(a.Sweep) * a.Radius * p.spec.ExtrudeFactor
	}
	g.Steps = append(g.Steps, Step{
		Mode:   mode,
		Target: target,
		Feed:   p.spec.FeedRate,
		Center: a.CenterOffset(),
	})
	p.cur = target
	return nil
}

// rapidTo emits a rapid positioning step. The very first point of a
// program is always reached via rapid; after that, a rapid to the current
// position is redundant and skipped.
func (p *Planner) rapidTo(g *Group, pt v2.Vec, z float64) {
	target := Position{X: pt.X, Y: pt.Y, Z: z, E: p.cur.E}
	if p.started && target == p.cur {
		return
	}
	st := Step{Mode: Rapid, Target: target}
	if p.spec.ExtrudeFactor > 0 {
		st.Feed = p.spec.TravelRate
	}
	g.Steps = append(g.Steps, st)
	p.cur = target
	p.started = true
}

// feedTo emits a linear interpolation step at the configured feed rate,
// applying jitter when enabled.
func (p *Planner) feedTo(g *Group, pt v2.Vec, z float64) {
	if p.rng != nil {
		pt = pt.Add(p.jitterOffset())
	}
	target := Position{X: pt.X, Y: pt.Y, Z: z, E: p.cur.E}
	if p.spec.ExtrudeFactor > 0 {
		target.E += pt.Sub(p.cur.Planar()).Length() * p.spec.ExtrudeFactor
	}
	g.Steps = append(g.Steps, Step{Mode: Linear, Target: target, Feed: p.spec.FeedRate})
	p.cur = target
	p.started = true
}

func (p *Planner) jitterOffset() v2.Vec {
	m := p.spec.Jitter.Magnitude
	return v2.Vec{
		X: (p.rng.Float64()*2 - 1) * m,
		Y: (p.rng.Float64()*2 - 1) * m,
	}
}
