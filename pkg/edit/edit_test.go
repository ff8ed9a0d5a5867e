package edit

import (
	"math"
	"testing"

	"github.com/chazu/meshview/pkg/mesh"
	"github.com/ungerik/go3d/float64/vec3"
)

func cubeMesh() *mesh.Mesh {
	return mesh.New(
		[]mesh.Vertex{
			{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
			{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
		},
		[]mesh.Face{
			{0, 3, 2, 1}, {4, 5, 6, 7},
			{0, 1, 5, 4}, {1, 2, 6, 5},
			{2, 3, 7, 6}, {3, 0, 4, 7},
		},
	)
}

// ---------------------------------------------------------------------------
// Slice
// ---------------------------------------------------------------------------

func TestSliceScenarioDropsBothFaces(t *testing.T) {
	m := mesh.New(
		[]mesh.Vertex{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		[]mesh.Face{{0, 1, 2}, {0, 1, 3}},
	)
	out := Slice(m)

	if out.VertexCount() != 2 {
		t.Fatalf("expected 2 vertices, got %d", out.VertexCount())
	}
	if out.Vertices[0] != (mesh.Vertex{0, 0, 0}) || out.Vertices[1] != (mesh.Vertex{1, 0, 0}) {
		t.Errorf("unexpected kept vertices: %v", out.Vertices)
	}
	if len(out.Faces) != 0 {
		t.Errorf("expected no faces, got %v", out.Faces)
	}
}

func TestSliceSubselectsIndices(t *testing.T) {
	out := Slice(cubeMesh())

	if out.VertexCount() != 4 {
		t.Fatalf("expected 4 vertices, got %d", out.VertexCount())
	}
	// Only the bottom quad is fully inside the kept range; the side quads
	// keep two indices each and are dropped.
	if len(out.Faces) != 1 {
		t.Fatalf("expected 1 face, got %v", out.Faces)
	}
	want := mesh.Face{0, 3, 2, 1}
	for i := range want {
		if out.Faces[0][i] != want[i] {
			t.Fatalf("face = %v, want %v", out.Faces[0], want)
		}
	}
}

func TestSliceKeepsSurvivingIndicesInOrder(t *testing.T) {
	m := mesh.New(
		make([]mesh.Vertex, 8),
		[]mesh.Face{{5, 2, 6, 0, 3, 1}, {7, 4, 0}, {-1, 0, 1, 2}},
	)
	out := Slice(m)

	if len(out.Faces) != 2 {
		t.Fatalf("expected 2 faces, got %v", out.Faces)
	}
	want := [][]int{{2, 0, 3, 1}, {0, 1, 2}}
	for fi, w := range want {
		if len(out.Faces[fi]) != len(w) {
			t.Fatalf("face %d = %v, want %v", fi, out.Faces[fi], w)
		}
		for i := range w {
			if out.Faces[fi][i] != w[i] {
				t.Fatalf("face %d = %v, want %v", fi, out.Faces[fi], w)
			}
		}
	}
}

func TestSliceOddCountFloors(t *testing.T) {
	out := Slice(mesh.New(make([]mesh.Vertex, 7), nil))
	if out.VertexCount() != 3 {
		t.Errorf("expected 3 vertices, got %d", out.VertexCount())
	}
}

func TestSliceEmptyAndNil(t *testing.T) {
	out := Slice(&mesh.Mesh{})
	if out == nil || !out.IsEmpty() || len(out.Faces) != 0 {
		t.Errorf("expected empty mesh, got %+v", out)
	}
	if Slice(nil) != nil {
		t.Error("Slice(nil) should be nil")
	}
}

func TestSliceRepeatedHalvesToZeroOrOne(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5, 16, 33, 100} {
		m := mesh.New(make([]mesh.Vertex, n), nil)
		prev := n
		for prev > 1 {
			m = Slice(m)
			if m.VertexCount() != prev/2 {
				t.Fatalf("n=%d: expected %d vertices, got %d", n, prev/2, m.VertexCount())
			}
			prev = m.VertexCount()
		}
		if prev > 1 {
			t.Fatalf("n=%d: did not terminate at 0 or 1", n)
		}
	}
}

func TestSliceOutputIsValid(t *testing.T) {
	m := cubeMesh()
	for i := 0; i < 4; i++ {
		m = Slice(m)
		for _, f := range m.Faces {
			for _, idx := range f {
				if idx >= m.VertexCount() {
					t.Fatalf("index %d >= vertex count %d", idx, m.VertexCount())
				}
			}
		}
		if !m.Valid() {
			t.Fatalf("round %d produced invalid mesh", i)
		}
	}
}

func TestSliceDoesNotMutateInput(t *testing.T) {
	m := cubeMesh()
	Slice(m)
	if m.VertexCount() != 8 || len(m.Faces) != 6 {
		t.Errorf("input mutated: %d vertices, %d faces", m.VertexCount(), len(m.Faces))
	}
}

// ---------------------------------------------------------------------------
// CreateHole
// ---------------------------------------------------------------------------

func TestCreateHoleScenario(t *testing.T) {
	m := mesh.New(
		[]mesh.Vertex{{0, 0, 0}, {10, 10, 10}, {0.3, 0, 0}},
		[]mesh.Face{{0, 1, 2}},
	)
	out := CreateHole(m, vec3.T{0, 0, 0}, 0.5)

	if out.Vertices[0] != (mesh.Vertex{0, 0, 0}) {
		t.Errorf("vertex 0 = %v, want origin", out.Vertices[0])
	}
	if out.Vertices[1] != (mesh.Vertex{10, 10, 10}) {
		t.Errorf("vertex 1 = %v, want untouched", out.Vertices[1])
	}
	if out.Vertices[2] != (mesh.Vertex{0, 0, 0}) {
		t.Errorf("vertex 2 = %v, want origin", out.Vertices[2])
	}
}

func TestCreateHolePreservesTopology(t *testing.T) {
	m := cubeMesh()
	out := CreateHole(m, vec3.T{1, 1, 1}, 1.0)

	if out.VertexCount() != m.VertexCount() {
		t.Fatalf("vertex count changed: %d -> %d", m.VertexCount(), out.VertexCount())
	}
	if len(out.Faces) != len(m.Faces) {
		t.Fatalf("face count changed: %d -> %d", len(m.Faces), len(out.Faces))
	}
	for i := range m.Faces {
		for j := range m.Faces[i] {
			if out.Faces[i][j] != m.Faces[i][j] {
				t.Fatalf("face %d changed: %v -> %v", i, m.Faces[i], out.Faces[i])
			}
		}
	}
	// (1,1,1) and its three neighbours at distance 1 collapse.
	zeroed := 0
	for i, v := range out.Vertices {
		if v == vec3.Zero && m.Vertices[i] != vec3.Zero {
			zeroed++
		}
	}
	if zeroed != 4 {
		t.Errorf("expected 4 collapsed vertices, got %d", zeroed)
	}
	if m.Vertices[6] != (mesh.Vertex{1, 1, 1}) {
		t.Error("input mesh was mutated")
	}
}

func TestCreateHoleZeroRadiusSelectsExactCenter(t *testing.T) {
	m := mesh.New([]mesh.Vertex{{2, 2, 2}, {2, 2, 2.0001}}, nil)
	out := CreateHole(m, vec3.T{2, 2, 2}, 0)
	if out.Vertices[0] != vec3.Zero {
		t.Errorf("exact center vertex = %v, want origin", out.Vertices[0])
	}
	if out.Vertices[1] == vec3.Zero {
		t.Error("vertex off center should be untouched")
	}
}

func TestCreateHoleNil(t *testing.T) {
	if CreateHole(nil, vec3.Zero, 1) != nil {
		t.Error("CreateHole(nil) should be nil")
	}
}

// ---------------------------------------------------------------------------
// AddSupport
// ---------------------------------------------------------------------------

func TestAddSupportRaisesLowestLayer(t *testing.T) {
	m := cubeMesh()
	out := AddSupport(m, 0.5)

	if out.VertexCount() != m.VertexCount() {
		t.Fatalf("vertex count changed")
	}
	for i, v := range m.Vertices {
		want := v
		if v[2] == 0 {
			want[2] = 0.5
		}
		if out.Vertices[i] != want {
			t.Errorf("vertex %d = %v, want %v", i, out.Vertices[i], want)
		}
	}
	if len(out.Faces) != len(m.Faces) {
		t.Errorf("faces changed")
	}
}

func TestAddSupportExactEqualityOnly(t *testing.T) {
	low := -1.0
	near := math.Nextafter(low, 0)
	m := mesh.New([]mesh.Vertex{{0, 0, low}, {1, 0, near}, {0, 1, 3}}, nil)
	out := AddSupport(m, 2)

	if out.Vertices[0][2] != 1 {
		t.Errorf("min vertex z = %v, want 1", out.Vertices[0][2])
	}
	if out.Vertices[1][2] != near {
		t.Errorf("near-min vertex z = %v, want unchanged %v", out.Vertices[1][2], near)
	}
	if out.Vertices[2][2] != 3 {
		t.Errorf("top vertex z = %v, want 3", out.Vertices[2][2])
	}
}

func TestAddSupportZeroHeightIsIdentity(t *testing.T) {
	m := cubeMesh()
	out := AddSupport(m, 0)
	for i := range m.Vertices {
		if math.Float64bits(out.Vertices[i][2]) != math.Float64bits(m.Vertices[i][2]) ||
			out.Vertices[i] != m.Vertices[i] {
			t.Fatalf("vertex %d changed: %v -> %v", i, m.Vertices[i], out.Vertices[i])
		}
	}
}

func TestAddSupportEmptyAndNil(t *testing.T) {
	out := AddSupport(&mesh.Mesh{}, 1)
	if out == nil || !out.IsEmpty() {
		t.Errorf("expected empty mesh, got %+v", out)
	}
	if AddSupport(nil, 1) != nil {
		t.Error("AddSupport(nil) should be nil")
	}
}
