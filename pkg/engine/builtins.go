package engine

import (
	"fmt"
	"math"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/Hutch-Bros/gcode-sample-generator/pkg/geom"
	"github.com/Hutch-Bros/gcode-sample-generator/pkg/spec"
	"github.com/Hutch-Bros/gcode-sample-generator/pkg/tool"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource transforms spec Lisp source before handing it to
// zygomys:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal),
//     avoiding the need to register keyword symbols as globals.
//  2. Kebab-case to underscore: chord-tolerance -> chord_tolerance,
//     since zygomys reads hyphens as subtraction.
//  3. ; line comments -> // comments, the form zygomys understands.
//
// All transformations respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Copy double-quoted string literals untouched.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments.
		if b[i] == ';' {
			result = append(result, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword", preserving := assignment.
		if b[i] == ':' && i+1 < len(b) && b[i+1] != '=' && isLetter(b[i+1]) {
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			result = append(result, '"')
			result = append(result, []byte(kwPrefix)...)
			for _, c := range b[i+1 : j] {
				if c == '-' {
					c = '_'
				}
				result = append(result, c)
			}
			result = append(result, '"')
			i = j
			continue
		}
		// Kebab-case to underscore when the hyphen sits between identifier
		// characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpShape wraps a spec.Shape so shape forms can be collected by `spec`.
type sexpShape struct {
	shape spec.Shape
}

func (s *sexpShape) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(shape %s)", s.shape.Label())
}
func (s *sexpShape) Type() *zygo.RegisteredType { return nil }

// sexpJitter wraps a spec.Jitter.
type sexpJitter struct {
	jitter spec.Jitter
}

func (j *sexpJitter) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(jitter :seed %d :magnitude %g)", j.jitter.Seed, j.jitter.Magnitude)
}
func (j *sexpJitter) Type() *zygo.RegisteredType { return nil }

// sexpSpindle wraps a spec.Spindle.
type sexpSpindle struct {
	spindle spec.Spindle
}

func (s *sexpSpindle) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(spindle :rpm %g)", s.spindle.RPM)
}
func (s *sexpSpindle) Type() *zygo.RegisteredType { return nil }

// sexpApproach wraps a spec.Approach.
type sexpApproach struct {
	approach spec.Approach
}

func (a *sexpApproach) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(approach :clearance %g)", a.approach.Clearance)
}
func (a *sexpApproach) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string, returning the
// keyword name without its prefix.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument
// list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok && i+1 < len(args) {
			result.kw[name] = args[i+1]
			i += 2
			continue
		}
		if ok {
			result.kw[name] = zygo.SexpNull
			i++
			continue
		}
		result.positional = append(result.positional, args[i])
		i++
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

func toBool(s zygo.Sexp) (bool, error) {
	if v, ok := s.(*zygo.SexpBool); ok {
		return v.Val, nil
	}
	return false, fmt.Errorf("expected bool, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

func toUnits(s zygo.Sexp) (spec.Units, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, err
	}
	switch name {
	case "millimeter", "mm":
		return spec.Millimeter, nil
	case "inch", "in":
		return spec.Inch, nil
	}
	return 0, fmt.Errorf("invalid units %q, expected millimeter or inch", name)
}

func toArcMode(s zygo.Sexp) (spec.ArcMode, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, err
	}
	switch name {
	case "native":
		return spec.ArcNative, nil
	case "linearized":
		return spec.ArcLinearized, nil
	}
	return 0, fmt.Errorf("invalid arc mode %q, expected native or linearized", name)
}

func toCutCom(s zygo.Sexp) (spec.CutComMode, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, err
	}
	switch name {
	case "none":
		return spec.CutComNone, nil
	case "left":
		return spec.CutComLeft, nil
	case "right":
		return spec.CutComRight, nil
	}
	return 0, fmt.Errorf("invalid cutter compensation %q, expected left, right, or none", name)
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go
// slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the spec DSL builtins into a zygomys
// environment. Shape forms return wrapper values; the `spec` form collects
// them and appends a finished spec to the batch.
//
// Source code must be preprocessed with preprocessSource() first so that
// :keyword tokens arrive as recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, b *batch) {

	// -----------------------------------------------------------------------
	// (line :length 10) | (line :from-x 0 :from-y 0 :to-x 10 :to-y 5)
	// -----------------------------------------------------------------------
	env.AddFunction("line", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		d := spec.LineData{}

		if v, ok := pa.kw["length"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("line: length: %w", err)
			}
			d.To = geom.Point{X: f}
		}
		for kw, dst := range map[string]*float64{
			"from_x": &d.From.X, "from_y": &d.From.Y,
			"to_x": &d.To.X, "to_y": &d.To.Y,
		} {
			if v, ok := pa.kw[kw]; ok {
				f, err := toFloat64(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("line: %s: %w", kw, err)
				}
				*dst = f
			}
		}

		sh := spec.Shape{Kind: spec.ShapeLine, Data: d}
		if v, ok := pa.kw["name"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("line: name: %w", err)
			}
			sh.Name = s
		}
		return &sexpShape{shape: sh}, nil
	})

	// -----------------------------------------------------------------------
	// (rect :width 10 :height 5)
	// -----------------------------------------------------------------------
	env.AddFunction("rect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		d := spec.RectData{}

		if v, ok := pa.kw["width"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rect: width: %w", err)
			}
			d.Width = f
		}
		if v, ok := pa.kw["height"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rect: height: %w", err)
			}
			d.Height = f
		}

		sh := spec.Shape{Kind: spec.ShapeRect, Data: d}
		if v, ok := pa.kw["name"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rect: name: %w", err)
			}
			sh.Name = s
		}
		return &sexpShape{shape: sh}, nil
	})

	// -----------------------------------------------------------------------
	// (circle :radius 5 [:center-x 0 :center-y 0])
	// -----------------------------------------------------------------------
	env.AddFunction("circle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		d := spec.CircleData{}

		if v, ok := pa.kw["radius"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("circle: radius: %w", err)
			}
			d.Radius = f
		}
		if v, ok := pa.kw["center_x"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("circle: center-x: %w", err)
			}
			d.Center.X = f
		}
		if v, ok := pa.kw["center_y"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("circle: center-y: %w", err)
			}
			d.Center.Y = f
		}

		sh := spec.Shape{Kind: spec.ShapeCircle, Data: d}
		if v, ok := pa.kw["name"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("circle: name: %w", err)
			}
			sh.Name = s
		}
		return &sexpShape{shape: sh}, nil
	})

	// -----------------------------------------------------------------------
	// (arc :radius 5 :start-angle 0 :sweep 90)
	// Angles are in degrees; a positive sweep runs counter-clockwise.
	// -----------------------------------------------------------------------
	env.AddFunction("arc", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		d := spec.ArcData{}

		for kw, dst := range map[string]*float64{
			"radius": &d.Radius, "center_x": &d.Center.X, "center_y": &d.Center.Y,
		} {
			if v, ok := pa.kw[kw]; ok {
				f, err := toFloat64(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("arc: %s: %w", kw, err)
				}
				*dst = f
			}
		}
		if v, ok := pa.kw["start_angle"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("arc: start-angle: %w", err)
			}
			d.StartAngle = f * math.Pi / 180
		}
		if v, ok := pa.kw["sweep"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("arc: sweep: %w", err)
			}
			d.Sweep = f * math.Pi / 180
		}

		sh := spec.Shape{Kind: spec.ShapeArc, Data: d}
		if v, ok := pa.kw["name"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("arc: name: %w", err)
			}
			sh.Name = s
		}
		return &sexpShape{shape: sh}, nil
	})

	// -----------------------------------------------------------------------
	// (polygon :points (list 0 0  10 0  5 8) [:open true])
	// -----------------------------------------------------------------------
	env.AddFunction("polygon", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		d := spec.PolygonData{}

		if v, ok := pa.kw["points"]; ok {
			items, err := sexpListToSlice(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polygon: points: %w", err)
			}
			if len(items)%2 != 0 {
				return zygo.SexpNull, fmt.Errorf("polygon: points: need x y pairs, got %d values", len(items))
			}
			for i := 0; i < len(items); i += 2 {
				x, err := toFloat64(items[i])
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("polygon: points[%d]: %w", i, err)
				}
				y, err := toFloat64(items[i+1])
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("polygon: points[%d]: %w", i+1, err)
				}
				d.Vertices = append(d.Vertices, geom.Point{X: x, Y: y})
			}
		}
		if v, ok := pa.kw["open"]; ok {
			o, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polygon: open: %w", err)
			}
			d.Open = o
		}

		sh := spec.Shape{Kind: spec.ShapePolygon, Data: d}
		if v, ok := pa.kw["name"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polygon: name: %w", err)
			}
			sh.Name = s
		}
		return &sexpShape{shape: sh}, nil
	})

	// -----------------------------------------------------------------------
	// (jitter :seed 42 :magnitude 0.1)
	// -----------------------------------------------------------------------
	env.AddFunction("jitter", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		j := spec.Jitter{}

		if v, ok := pa.kw["seed"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("jitter: seed: %w", err)
			}
			j.Seed = int64(n)
		}
		if v, ok := pa.kw["magnitude"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("jitter: magnitude: %w", err)
			}
			j.Magnitude = f
		}
		return &sexpJitter{jitter: j}, nil
	})

	// -----------------------------------------------------------------------
	// (spindle :rpm 1200 [:tool-code 102345])
	// -----------------------------------------------------------------------
	env.AddFunction("spindle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		sp := spec.Spindle{}

		if v, ok := pa.kw["rpm"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("spindle: rpm: %w", err)
			}
			sp.RPM = f
		}
		if v, ok := pa.kw["tool_code"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("spindle: tool-code: %w", err)
			}
			sp.Tool = &tool.Tool{Code: n}
		}
		if v, ok := pa.kw["cut_com"]; ok {
			m, err := toCutCom(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("spindle: cut-com: %w", err)
			}
			if m != spec.CutComNone {
				if sp.Tool == nil {
					return zygo.SexpNull, fmt.Errorf("spindle: cut-com requires a tool-code")
				}
				// A tool asked for by code is assumed to carry the
				// capability; the source has no richer tool model.
				sp.Tool.CutCom = true
			}
			sp.CutCom = m
		}
		return &sexpSpindle{spindle: sp}, nil
	})

	// -----------------------------------------------------------------------
	// (approach :clearance 3.0 [:plunge-feed 10])
	// -----------------------------------------------------------------------
	env.AddFunction("approach", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		a := spec.Approach{}

		if v, ok := pa.kw["clearance"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("approach: clearance: %w", err)
			}
			a.Clearance = f
		}
		if v, ok := pa.kw["plunge_feed"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("approach: plunge-feed: %w", err)
			}
			a.PlungeFeed = f
		}
		return &sexpApproach{approach: a}, nil
	})

	// -----------------------------------------------------------------------
	// (spec :units :millimeter :feed-rate 100 ... shapes/jitter/spindle/approach)
	// -----------------------------------------------------------------------
	env.AddFunction("spec", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		s := spec.New()

		if v, ok := pa.kw["units"]; ok {
			u, err := toUnits(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("spec: units: %w", err)
			}
			s.Units = u
		}
		if v, ok := pa.kw["arc_mode"]; ok {
			m, err := toArcMode(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("spec: arc-mode: %w", err)
			}
			s.ArcMode = m
		}

		for kw, dst := range map[string]*float64{
			"feed_rate":       &s.FeedRate,
			"travel_rate":     &s.TravelRate,
			"chord_tolerance": &s.Resolution.ChordTolerance,
			"layer_height":    &s.LayerHeight,
			"start_x":         &s.StartX,
			"start_y":         &s.StartY,
			"start_z":         &s.StartZ,
			"extrude_factor":  &s.ExtrudeFactor,
		} {
			if v, ok := pa.kw[kw]; ok {
				f, err := toFloat64(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("spec: %s: %w", kw, err)
				}
				*dst = f
			}
		}
		for kw, dst := range map[string]*int{
			"segment_count":    &s.Resolution.SegmentCount,
			"layers":           &s.Layers,
			"precision":        &s.Precision,
			"max_instructions": &s.MaxInstructions,
		} {
			if v, ok := pa.kw[kw]; ok {
				n, err := toInt(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("spec: %s: %w", kw, err)
				}
				*dst = n
			}
		}
		if v, ok := pa.kw["full_words"]; ok {
			fw, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("spec: full-words: %w", err)
			}
			s.FullWords = fw
		}

		for _, arg := range pa.positional {
			switch v := arg.(type) {
			case *sexpShape:
				s.Shapes = append(s.Shapes, v.shape)
			case *sexpJitter:
				j := v.jitter
				s.Jitter = &j
			case *sexpSpindle:
				sp := v.spindle
				s.Spindle = &sp
			case *sexpApproach:
				a := v.approach
				s.Approach = &a
			default:
				return zygo.SexpNull, fmt.Errorf("spec: unexpected argument %s", arg.SexpString(nil))
			}
		}

		b.specs = append(b.specs, s)
		return zygo.SexpNull, nil
	})
}
