package mesh

import (
	"math"
	"strings"
	"testing"
)

// tetra returns a unit tetrahedron with four triangular faces.
func tetra() *Mesh {
	return New(
		[]Vertex{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		[]Face{{0, 2, 1}, {0, 1, 3}, {0, 3, 2}, {1, 2, 3}},
	)
}

func TestMeshCounts(t *testing.T) {
	tests := []struct {
		name      string
		m         *Mesh
		vertices  int
		faces     int
		wantEmpty bool
	}{
		{"nil", nil, 0, 0, true},
		{"zero value", &Mesh{}, 0, 0, true},
		{"tetra", tetra(), 4, 4, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.VertexCount(); got != tt.vertices {
				t.Errorf("VertexCount() = %d, want %d", got, tt.vertices)
			}
			if got := tt.m.FaceCount(); got != tt.faces {
				t.Errorf("FaceCount() = %d, want %d", got, tt.faces)
			}
			if got := tt.m.IsEmpty(); got != tt.wantEmpty {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.wantEmpty)
			}
		})
	}
}

func TestFaceWellFormed(t *testing.T) {
	tests := []struct {
		name string
		f    Face
		n    int
		want bool
	}{
		{"triangle", Face{0, 1, 2}, 3, true},
		{"quad", Face{0, 1, 2, 3}, 4, true},
		{"too short", Face{0, 1}, 3, false},
		{"index equals count", Face{0, 1, 3}, 3, false},
		{"negative index", Face{-1, 0, 1}, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.WellFormed(tt.n); got != tt.want {
				t.Errorf("WellFormed(%d) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}

func TestMeshValid(t *testing.T) {
	if !tetra().Valid() {
		t.Error("tetra should be valid")
	}
	m := tetra()
	m.Faces = append(m.Faces, Face{0, 1, 7})
	if m.Valid() {
		t.Error("mesh with out-of-range index should be invalid")
	}
}

func TestCloneIsDeep(t *testing.T) {
	m := tetra()
	m.Offset = Vertex{1, 2, 3}
	c := m.Clone()

	c.Vertices[0] = Vertex{9, 9, 9}
	c.Faces[0][0] = 3

	if m.Vertices[0] != (Vertex{0, 0, 0}) {
		t.Errorf("original vertex changed to %v", m.Vertices[0])
	}
	if m.Faces[0][0] != 0 {
		t.Errorf("original face changed to %v", m.Faces[0])
	}
	if c.Offset != m.Offset {
		t.Errorf("clone offset = %v, want %v", c.Offset, m.Offset)
	}
	if (*Mesh)(nil).Clone() != nil {
		t.Error("Clone of nil mesh should be nil")
	}
}

func TestFaceNormal(t *testing.T) {
	m := New(
		[]Vertex{{0, 0, 0}, {2, 0, 0}, {0, 2, 0}, {4, 0, 0}},
		[]Face{{0, 1, 2}, {0, 1, 3}, {0, 1, 9}},
	)

	n, ok := m.FaceNormal(0)
	if !ok {
		t.Fatal("FaceNormal(0) reported degenerate")
	}
	if math.Abs(n[0]) > 1e-12 || math.Abs(n[1]) > 1e-12 || math.Abs(n[2]-1) > 1e-12 {
		t.Errorf("FaceNormal(0) = %v, want [0 0 1]", n)
	}

	if _, ok := m.FaceNormal(1); ok {
		t.Error("collinear face should be degenerate")
	}
	if _, ok := m.FaceNormal(2); ok {
		t.Error("malformed face should not yield a normal")
	}
	if _, ok := m.FaceNormal(5); ok {
		t.Error("out-of-range face index should not yield a normal")
	}
}

func TestValidate(t *testing.T) {
	m := New(
		[]Vertex{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		[]Face{{0, 1, 2}, {0, 1}, {0, 1, 5}, {0, 0, 1}},
	)
	problems := Validate(m)

	errs := Errors(problems)
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(errs), problems)
	}
	if errs[0].Face != 1 || !strings.Contains(errs[0].Message, "at least 3") {
		t.Errorf("unexpected first error: %v", errs[0])
	}
	if errs[1].Face != 2 || !strings.Contains(errs[1].Message, "out of range") {
		t.Errorf("unexpected second error: %v", errs[1])
	}

	var warnings int
	for _, p := range problems {
		if p.Severity == SeverityWarning {
			warnings++
			if p.Face != 3 {
				t.Errorf("warning on face %d, want 3", p.Face)
			}
		}
	}
	if warnings != 1 {
		t.Errorf("expected 1 degenerate warning, got %d", warnings)
	}

	if got := Validate(tetra()); len(got) != 0 {
		t.Errorf("tetra should have no problems, got %v", got)
	}
}

func TestProblemError(t *testing.T) {
	p := Problem{Face: 4, Message: "boom", Severity: SeverityWarning}
	if got := p.Error(); got != "[warning] face 4: boom" {
		t.Errorf("Error() = %q", got)
	}
}
