package sdfx

import (
	"math"
	"testing"

	"github.com/chazu/meshview/pkg/bounds"
	"github.com/chazu/meshview/pkg/edit"
)

// testCells keeps marching cubes fast in tests.
const testCells = 16

func TestBox(t *testing.T) {
	k := NewWithCells(testCells)
	m, err := k.ToMesh(k.Box(1, 0.5, 0.25))
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if m.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if m.FaceCount() == 0 {
		t.Fatal("expected non-zero face count")
	}
	if !m.Valid() {
		t.Fatal("welded mesh has out-of-range indices")
	}
	for i, f := range m.Faces {
		if len(f) != 3 {
			t.Fatalf("face %d has %d indices, want 3", i, len(f))
		}
	}
	t.Logf("box: %d vertices, %d faces", m.VertexCount(), m.FaceCount())
}

func TestWeldingSharesVertices(t *testing.T) {
	k := NewWithCells(testCells)
	m, err := k.ToMesh(k.Sphere(0.5))
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	// An unwelded soup has exactly three vertices per face.
	if m.VertexCount() >= m.FaceCount()*3 {
		t.Errorf("expected shared vertices: %d vertices for %d faces", m.VertexCount(), m.FaceCount())
	}
}

func TestCylinder(t *testing.T) {
	k := NewWithCells(testCells)
	m, err := k.ToMesh(k.Cylinder(1, 0.25))
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if m.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	box, ok := bounds.Extents(m)
	if !ok {
		t.Fatal("expected extents")
	}
	if math.Abs(box.Max[2]-0.5) > 0.1 {
		t.Errorf("cylinder top z = %f, expected ~0.5", box.Max[2])
	}
}

func TestDifference(t *testing.T) {
	k := NewWithCells(testCells)
	box := k.Box(1, 1, 1)
	diff := k.Difference(box, k.Cylinder(1.2, 0.2))
	m, err := k.ToMesh(diff)
	if err != nil {
		t.Fatalf("ToMesh(diff) failed: %v", err)
	}
	if m.IsEmpty() {
		t.Fatal("difference mesh is empty")
	}
}

func TestUnionOverflows(t *testing.T) {
	k := NewWithCells(testCells)
	u := k.Union(k.Box(1, 1, 1), k.Translate(k.Box(1, 1, 1), 1, 0, 0))
	m, err := k.ToMesh(u)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	// The second box reaches x=1.5, past the unit build volume.
	if !bounds.Overflow(m, bounds.DefaultThreshold) {
		t.Error("expected union to overflow the unit bound")
	}
	if bounds.Overflow(edit.Slice(m), 100) {
		t.Error("nothing should overflow a threshold of 100")
	}
}

func TestTranslate(t *testing.T) {
	k := New()
	translated := k.Translate(k.Box(10, 10, 10), 100, 200, 300)

	min, max := translated.BoundingBox()

	const tol = 0.5
	expectMin := [3]float64{95, 195, 295}
	expectMax := [3]float64{105, 205, 305}

	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected ~%f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected ~%f", i, max[i], expectMax[i])
		}
	}
}

func TestBoundingBox(t *testing.T) {
	k := New()
	min, max := k.Box(100, 50, 25).BoundingBox()

	const tol = 0.01
	expectMin := [3]float64{-50, -25, -12.5}
	expectMax := [3]float64{50, 25, 12.5}

	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected %f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, max[i], expectMax[i])
		}
	}
}

func TestRotate(t *testing.T) {
	k := New()
	// A long box along X rotated 90 degrees around Z should extend along Y instead.
	rotated := k.Rotate(k.Box(100, 10, 10), 0, 0, 90)
	min, max := rotated.BoundingBox()

	xExtent := max[0] - min[0]
	yExtent := max[1] - min[1]

	const tol = 1.0
	if math.Abs(xExtent-10) > tol {
		t.Errorf("rotated X extent = %f, expected ~10", xExtent)
	}
	if math.Abs(yExtent-100) > tol {
		t.Errorf("rotated Y extent = %f, expected ~100", yExtent)
	}
}

func TestNewWithCellsFallsBack(t *testing.T) {
	if k := NewWithCells(0); k.cells != DefaultMeshCells {
		t.Errorf("cells = %d, want %d", k.cells, DefaultMeshCells)
	}
}
