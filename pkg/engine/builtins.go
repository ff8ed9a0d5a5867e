package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/meshview/pkg/kernel"
	"github.com/chazu/meshview/pkg/mesh"
	"github.com/chazu/meshview/pkg/viewer"
	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/ungerik/go3d/float64/vec3"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a position or direction.
type sexpVec3 struct {
	vec vec3.T
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec[0], v.vec[1], v.vec[2])
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpSolid wraps a kernel solid built by box/cylinder/sphere and friends.
type sexpSolid struct {
	solid kernel.Solid
	desc  string
}

func (s *sexpSolid) SexpString(ps *zygo.PrintState) string {
	return "(solid " + s.desc + ")"
}
func (s *sexpSolid) Type() *zygo.RegisteredType { return nil }

// sexpMesh wraps an explicit mesh built by the mesh builtin.
type sexpMesh struct {
	m *mesh.Mesh
}

func (s *sexpMesh) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(mesh %d vertices %d faces)", s.m.VertexCount(), s.m.FaceCount())
}
func (s *sexpMesh) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a SexpInt.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_top) and plain strings ("top").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	return strings.TrimPrefix(str.S, kwPrefix), nil
}

// toVec3 extracts a position from a sexpVec3.
func toVec3(s zygo.Sexp) (vec3.T, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return vec3.T{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toSolid extracts a kernel solid from a sexpSolid.
func toSolid(s zygo.Sexp) (*sexpSolid, error) {
	if v, ok := s.(*sexpSolid); ok {
		return v, nil
	}
	return nil, fmt.Errorf("expected solid, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
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

// floatArgs converts exactly n numeric arguments.
func floatArgs(verb string, args []zygo.Sexp, n int) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s requires exactly %d arguments, got %d", verb, n, len(args))
	}
	out := make([]float64, n)
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", verb, i+1, err)
		}
		out[i] = f
	}
	return out, nil
}

// optionalFloat returns args[i] as a number, or def when absent.
func optionalFloat(verb string, args []zygo.Sexp, i int, def float64) (float64, error) {
	if i >= len(args) {
		return def, nil
	}
	f, err := toFloat64(args[i])
	if err != nil {
		return 0, fmt.Errorf("%s: %w", verb, err)
	}
	return f, nil
}

// toMesh converts (mesh vertices faces) arguments into a mesh.Mesh.
func toMesh(vertsArg, facesArg zygo.Sexp) (*mesh.Mesh, error) {
	verts, err := sexpListToSlice(vertsArg)
	if err != nil {
		return nil, fmt.Errorf("vertices: %w", err)
	}
	faces, err := sexpListToSlice(facesArg)
	if err != nil {
		return nil, fmt.Errorf("faces: %w", err)
	}

	m := &mesh.Mesh{
		Vertices: make([]mesh.Vertex, 0, len(verts)),
		Faces:    make([]mesh.Face, 0, len(faces)),
	}
	for i, v := range verts {
		p, err := toVec3(v)
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		m.Vertices = append(m.Vertices, p)
	}
	for i, f := range faces {
		items, err := sexpListToSlice(f)
		if err != nil {
			return nil, fmt.Errorf("face %d: %w", i, err)
		}
		face := make(mesh.Face, 0, len(items))
		for _, item := range items {
			idx, err := toInt(item)
			if err != nil {
				return nil, fmt.Errorf("face %d: %w", i, err)
			}
			face = append(face, idx)
		}
		m.Faces = append(m.Faces, face)
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// scriptContext is what builtins close over during one evaluation.
type scriptContext struct {
	state    *viewer.State
	kernel   kernel.Kernel
	warnings []EvalWarning
}

func (sc *scriptContext) warn(format string, args ...any) {
	sc.warnings = append(sc.warnings, EvalWarning{Message: fmt.Sprintf(format, args...)})
}

func sexpBool(b bool) zygo.Sexp {
	return &zygo.SexpBool{Val: b}
}

func sexpInt(n int) zygo.Sexp {
	return &zygo.SexpInt{Val: int64(n)}
}

// registerBuiltins installs the viewer verbs into a zygomys environment.
// The verbs act on sc.state, which the caller owns for the duration of
// the evaluation.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation: kebab-case verbs are registered under their snake_case form
// and :keyword tokens arrive as prefixed strings.
func registerBuiltins(env *zygo.Zlisp, sc *scriptContext) {
	st := sc.state
	k := sc.kernel

	// (vec3 1 2 3)
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := floatArgs("vec3", args, 3)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpVec3{vec: vec3.T{f[0], f[1], f[2]}}, nil
	})

	// -----------------------------------------------------------------------
	// Solids: (box 1 1 1) (cylinder 1 0.25) (sphere 0.5)
	//         (combine a b) (subtract a b) (move s 1 0 0) (turn s 0 0 90)
	// -----------------------------------------------------------------------
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := floatArgs("box", args, 3)
		if err != nil {
			return zygo.SexpNull, err
		}
		for i, d := range f {
			if d <= 0 {
				return zygo.SexpNull, fmt.Errorf("box: dimension %c is %g, must be positive", "xyz"[i], d)
			}
		}
		return &sexpSolid{solid: k.Box(f[0], f[1], f[2]), desc: fmt.Sprintf("box %gx%gx%g", f[0], f[1], f[2])}, nil
	})

	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := floatArgs("cylinder", args, 2)
		if err != nil {
			return zygo.SexpNull, err
		}
		if f[0] <= 0 || f[1] <= 0 {
			return zygo.SexpNull, fmt.Errorf("cylinder: height and radius must be positive")
		}
		return &sexpSolid{solid: k.Cylinder(f[0], f[1]), desc: fmt.Sprintf("cylinder h=%g r=%g", f[0], f[1])}, nil
	})

	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := floatArgs("sphere", args, 1)
		if err != nil {
			return zygo.SexpNull, err
		}
		if f[0] <= 0 {
			return zygo.SexpNull, fmt.Errorf("sphere: radius must be positive")
		}
		return &sexpSolid{solid: k.Sphere(f[0]), desc: fmt.Sprintf("sphere r=%g", f[0])}, nil
	})

	boolean := func(verb string, op func(a, b kernel.Solid) kernel.Solid) zygo.ZlispUserFunction {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 2 {
				return zygo.SexpNull, fmt.Errorf("%s requires exactly 2 solids, got %d", verb, len(args))
			}
			a, err := toSolid(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", verb, err)
			}
			b, err := toSolid(args[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", verb, err)
			}
			return &sexpSolid{solid: op(a.solid, b.solid), desc: verb}, nil
		}
	}
	env.AddFunction("combine", boolean("combine", k.Union))
	env.AddFunction("subtract", boolean("subtract", k.Difference))

	transform := func(verb string, op func(s kernel.Solid, x, y, z float64) kernel.Solid) zygo.ZlispUserFunction {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 4 {
				return zygo.SexpNull, fmt.Errorf("%s requires a solid and 3 numbers", verb)
			}
			s, err := toSolid(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", verb, err)
			}
			f, err := floatArgs(verb, args[1:], 3)
			if err != nil {
				return zygo.SexpNull, err
			}
			return &sexpSolid{solid: op(s.solid, f[0], f[1], f[2]), desc: s.desc}, nil
		}
	}
	env.AddFunction("move", transform("move", k.Translate))
	env.AddFunction("turn", transform("turn", k.Rotate))

	// -----------------------------------------------------------------------
	// (mesh (list (vec3 0 0 0) ...) (list (list 0 1 2) ...))
	// -----------------------------------------------------------------------
	env.AddFunction("mesh", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("mesh requires a vertex list and a face list")
		}
		m, err := toMesh(args[0], args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mesh: %w", err)
		}
		problems := mesh.Validate(m)
		if errs := mesh.Errors(problems); len(errs) > 0 {
			return zygo.SexpNull, fmt.Errorf("mesh: %w", errs[0])
		}
		for _, p := range problems {
			sc.warn("mesh: %s", p.Error())
		}
		return &sexpMesh{m: m}, nil
	})

	// -----------------------------------------------------------------------
	// (load-model solid-or-mesh)
	// -----------------------------------------------------------------------
	env.AddFunction("load_model", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("load-model requires one solid or mesh")
		}
		var m *mesh.Mesh
		switch v := args[0].(type) {
		case *sexpMesh:
			m = v.m
		case *sexpSolid:
			built, err := k.ToMesh(v.solid)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("load-model: %w", err)
			}
			m = built
		default:
			return zygo.SexpNull, fmt.Errorf("load-model: expected solid or mesh, got %T", args[0])
		}
		viewer.Load(st, m)
		return sexpInt(m.VertexCount()), nil
	})

	// -----------------------------------------------------------------------
	// Editing: (slice-model) (create-hole (vec3 0 0 0) 0.1) (create-support 0.5)
	// -----------------------------------------------------------------------
	env.AddFunction("slice_model", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		viewer.Slice(st)
		return sexpInt(st.Working.VertexCount()), nil
	})

	env.AddFunction("create_hole", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("create-hole requires a center (vec3 ...)")
		}
		center, err := toVec3(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("create-hole: center: %w", err)
		}
		radius, err := optionalFloat("create-hole", args, 1, st.Settings.HoleRadius)
		if err != nil {
			return zygo.SexpNull, err
		}
		if radius < 0 {
			return zygo.SexpNull, fmt.Errorf("create-hole: radius must be >= 0, got %g", radius)
		}
		viewer.CreateHole(st, center, radius)
		return zygo.SexpNull, nil
	})

	env.AddFunction("create_support", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		height, err := optionalFloat("create-support", args, 0, st.Settings.SupportHeight)
		if err != nil {
			return zygo.SexpNull, err
		}
		viewer.CreateSupport(st, height)
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// Placement and inspection: (place-models 2.0 3) (overflow)
	// (vertex-count) (face-count) (instance-count)
	// -----------------------------------------------------------------------
	env.AddFunction("place_models", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		interval, err := optionalFloat("place-models", args, 0, st.Settings.PlaceInterval)
		if err != nil {
			return zygo.SexpNull, err
		}
		count := st.Settings.PlaceCount
		if len(args) > 1 {
			if count, err = toInt(args[1]); err != nil {
				return zygo.SexpNull, fmt.Errorf("place-models: count: %w", err)
			}
		}
		return sexpBool(viewer.PlaceInstances(st, interval, count)), nil
	})

	env.AddFunction("overflow", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return sexpBool(viewer.Overflow(st)), nil
	})

	env.AddFunction("vertex_count", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return sexpInt(st.Working.VertexCount()), nil
	})

	env.AddFunction("face_count", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return sexpInt(st.Working.FaceCount()), nil
	})

	env.AddFunction("instance_count", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return sexpInt(len(st.Scene)), nil
	})

	// -----------------------------------------------------------------------
	// View: (rotate 10 0 0) (camera (vec3 0 0 5)) (view :top) (nudge "w")
	// -----------------------------------------------------------------------
	env.AddFunction("rotate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := floatArgs("rotate", args, 3)
		if err != nil {
			return zygo.SexpNull, err
		}
		viewer.Rotate(st, f[0], f[1], f[2])
		return &sexpVec3{vec: st.Rotation}, nil
	})

	env.AddFunction("camera", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("camera requires a position (vec3 ...)")
		}
		p, err := toVec3(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("camera: %w", err)
		}
		viewer.SetCamera(st, p)
		return &sexpVec3{vec: st.Camera}, nil
	})

	env.AddFunction("view", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("view requires a direction (:top, :front, ...)")
		}
		dir, err := toKeywordString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("view: %w", err)
		}
		if err := viewer.ViewPreset(st, viewer.Preset(dir)); err != nil {
			return zygo.SexpNull, fmt.Errorf("view: %w", err)
		}
		return &sexpVec3{vec: st.Camera}, nil
	})

	env.AddFunction("nudge", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("nudge requires a key (\"w\", \"a\", ...)")
		}
		key, err := toKeywordString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("nudge: %w", err)
		}
		if !viewer.Nudge(st, key) {
			return zygo.SexpNull, fmt.Errorf("nudge: unknown key %q", key)
		}
		return &sexpVec3{vec: st.Camera}, nil
	})
}
