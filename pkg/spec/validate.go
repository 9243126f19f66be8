package spec

import (
	"fmt"
	"math"
)

// FieldError describes a single validation finding.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// InvalidSpecError aggregates every validation finding for a spec. It is
// returned before any generation work begins; a spec that validates never
// fails validation later in the pipeline.
type InvalidSpecError struct {
	Findings []FieldError
}

func (e *InvalidSpecError) Error() string {
	switch len(e.Findings) {
	case 0:
		return "invalid spec"
	case 1:
		return "invalid spec: " + e.Findings[0].Error()
	default:
		return fmt.Sprintf("invalid spec: %s (and %d more)",
			e.Findings[0].Error(), len(e.Findings)-1)
	}
}

// Validate checks the spec and returns a *InvalidSpecError listing every
// problem found, or nil. Validation is read-only.
func (s *Spec) Validate() error {
	var errs []FieldError

	add := func(field, format string, args ...interface{}) {
		errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if len(s.Shapes) == 0 {
		add("shapes", "at least one shape is required")
	}
	if s.FeedRate <= 0 || !isFinite(s.FeedRate) {
		add("feedRate", "must be positive, got %g", s.FeedRate)
	}
	if s.TravelRate < 0 || !isFinite(s.TravelRate) {
		add("travelRate", "must be non-negative, got %g", s.TravelRate)
	}
	if s.Resolution.SegmentCount > 0 && s.Resolution.ChordTolerance > 0 {
		add("resolution", "segmentCount and chordTolerance are mutually exclusive")
	}
	if s.Resolution.SegmentCount < 0 {
		add("resolution", "segmentCount must be positive, got %d", s.Resolution.SegmentCount)
	}
	if s.Resolution.ChordTolerance < 0 || !isFinite(s.Resolution.ChordTolerance) {
		add("resolution", "chordTolerance must be positive, got %g", s.Resolution.ChordTolerance)
	}
	if s.Layers < 0 {
		add("layers", "must be at least 1, got %d", s.Layers)
	}
	if s.Layers > 1 && s.LayerHeight == 0 {
		add("layerHeight", "required when layers > 1")
	}
	if !isFinite(s.LayerHeight) {
		add("layerHeight", "must be finite")
	}
	if s.Jitter != nil && (s.Jitter.Magnitude < 0 || !isFinite(s.Jitter.Magnitude)) {
		add("jitter.magnitude", "must be non-negative, got %g", s.Jitter.Magnitude)
	}
	if s.Spindle != nil && s.Spindle.RPM <= 0 {
		add("spindle.rpm", "must be positive, got %g", s.Spindle.RPM)
	}
	if s.Spindle != nil && s.Spindle.CutCom != CutComNone {
		if s.Spindle.Tool == nil || !s.Spindle.Tool.CutCom {
			add("spindle.cutCom", "requires a tool that supports cutter compensation")
		}
	}
	if s.Approach != nil {
		if s.Approach.Clearance <= 0 || !isFinite(s.Approach.Clearance) {
			add("approach.clearance", "must be positive, got %g", s.Approach.Clearance)
		}
		if s.Approach.PlungeFeed < 0 || !isFinite(s.Approach.PlungeFeed) {
			add("approach.plungeFeed", "must be non-negative, got %g", s.Approach.PlungeFeed)
		}
	}
	if s.Precision < 0 {
		add("precision", "must be non-negative, got %d", s.Precision)
	}
	if s.MaxInstructions < 0 {
		add("maxInstructions", "must be non-negative, got %d", s.MaxInstructions)
	}
	if s.ExtrudeFactor < 0 || !isFinite(s.ExtrudeFactor) {
		add("extrudeFactor", "must be non-negative, got %g", s.ExtrudeFactor)
	}

	if s.needsSampling() && s.Resolution.SegmentCount == 0 && s.Resolution.ChordTolerance == 0 {
		add("resolution", "segmentCount or chordTolerance required to linearize arcs")
	}

	for i, sh := range s.Shapes {
		errs = append(errs, validateShape(i, sh)...)
	}

	if len(errs) > 0 {
		return &InvalidSpecError{Findings: errs}
	}
	return nil
}

// needsSampling reports whether any shape will be linearized and therefore
// requires a resolution.
func (s *Spec) needsSampling() bool {
	if s.ArcMode != ArcLinearized {
		return false
	}
	for _, sh := range s.Shapes {
		switch sh.Data.(type) {
		case CircleData, ArcData:
			return true
		}
	}
	return false
}

func validateShape(i int, sh Shape) []FieldError {
	field := func(name string) string {
		return fmt.Sprintf("shapes[%d].%s", i, name)
	}
	var errs []FieldError

	switch d := sh.Data.(type) {
	case LineData:
		// Zero-length lines are permitted; they collapse to a point.
	case RectData:
		if d.Width <= 0 || !isFinite(d.Width) {
			errs = append(errs, FieldError{field("width"), fmt.Sprintf("must be positive, got %g", d.Width)})
		}
		if d.Height <= 0 || !isFinite(d.Height) {
			errs = append(errs, FieldError{field("height"), fmt.Sprintf("must be positive, got %g", d.Height)})
		}
	case CircleData:
		if d.Radius <= 0 || !isFinite(d.Radius) {
			errs = append(errs, FieldError{field("radius"), fmt.Sprintf("must be positive, got %g", d.Radius)})
		}
	case ArcData:
		if d.Radius <= 0 || !isFinite(d.Radius) {
			errs = append(errs, FieldError{field("radius"), fmt.Sprintf("must be positive, got %g", d.Radius)})
		}
		if d.Sweep == 0 || !isFinite(d.Sweep) {
			errs = append(errs, FieldError{field("sweep"), "must be nonzero"})
		}
	case PolygonData:
		if len(d.Vertices) < 2 {
			errs = append(errs, FieldError{field("vertices"), fmt.Sprintf("need at least 2, got %d", len(d.Vertices))})
		}
	case nil:
		errs = append(errs, FieldError{field("data"), "missing shape parameters"})
	default:
		errs = append(errs, FieldError{field("data"), fmt.Sprintf("unrecognized shape data %T", sh.Data)})
	}

	return errs
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
