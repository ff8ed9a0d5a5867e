package main

import (
	"context"
	"log"
	"sync"

	"github.com/chazu/meshview/pkg/config"
	"github.com/chazu/meshview/pkg/engine"
	"github.com/chazu/meshview/pkg/kernel"
	"github.com/chazu/meshview/pkg/kernel/sdfx"
	"github.com/chazu/meshview/pkg/tessellate"
	"github.com/chazu/meshview/pkg/viewer"
	"github.com/ungerik/go3d/float64/vec3"
)

// colorPalette is a default palette used to tell placed instances apart.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App is the Wails backend. It exposes methods to the frontend via bindings.
//
// The viewer state is a single-writer cell: every binding takes mu, so
// calls arriving on different goroutines are applied one at a time.
type App struct {
	ctx    context.Context
	mu     sync.Mutex
	state  *viewer.State
	engine *engine.Engine
	kernel kernel.Kernel
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Vertices []float32  `json:"vertices"`
	Normals  []float32  `json:"normals"`
	Indices  []uint32   `json:"indices"`
	Offset   [3]float32 `json:"offset"`
	Color    string     `json:"color"`
}

// ErrorData is a JSON-serializable error for the frontend.
type ErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// Frame is everything the frontend needs to draw the current state.
type Frame struct {
	Meshes      []MeshData      `json:"meshes"`
	Camera      [3]float64      `json:"camera"`
	Rotation    [3]float64      `json:"rotation"`
	Overflowing bool            `json:"overflowing"`
	Vertices    int             `json:"vertexCount"`
	Faces       int             `json:"faceCount"`
	Instances   int             `json:"instanceCount"`
	Light       config.Light    `json:"light"`
	Material    config.Material `json:"material"`
}

// Result is returned by every binding that changes the viewer state.
type Result struct {
	Frame    Frame       `json:"frame"`
	Value    string      `json:"value,omitempty"`
	Errors   []ErrorData `json:"errors"`
	Warnings []ErrorData `json:"warnings"`
}

// NewApp creates an App configured from MESHVIEW_CONFIG, falling back
// to the defaults when the file cannot be loaded.
func NewApp() *App {
	settings, err := config.FromEnv()
	if err != nil {
		log.Printf("Config error, using defaults: %v", err)
		settings = config.Default()
	}
	return NewAppWithSettings(settings)
}

// NewAppWithSettings creates an App with an engine and the sdfx kernel.
func NewAppWithSettings(settings config.Settings) *App {
	k := sdfx.NewWithCells(settings.MeshCells)
	return &App{
		state:  viewer.NewState(settings),
		engine: engine.NewEngine(k),
		kernel: k,
	}
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// Evaluate runs a command script against the current state. The state
// is only replaced when the script runs to completion.
func (a *App) Evaluate(source string) Result {
	a.mu.Lock()
	defer a.mu.Unlock()

	res, err := a.engine.Evaluate(source, a.state)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		return a.result(ErrorData{Message: err.Error()})
	}

	var errs []ErrorData
	for _, e := range res.Errors {
		errs = append(errs, ErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
	}
	if res.State != nil {
		a.state = res.State
	}

	out := a.result(errs...)
	out.Value = res.Value
	for _, w := range res.Warnings {
		out.Warnings = append(out.Warnings, ErrorData{Message: w.Message})
	}
	return out
}

// Slice rebuilds the working mesh from the loaded model.
func (a *App) Slice() Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	viewer.Slice(a.state)
	return a.result()
}

// CreateHole collapses the working mesh around the point typed into the
// coordinate fields, using the configured hole radius.
func (a *App) CreateHole(x, y, z string) Result {
	a.mu.Lock()
	defer a.mu.Unlock()

	center, err := viewer.ParseVec3(x, y, z)
	if err != nil {
		return a.result(ErrorData{Message: err.Error()})
	}
	viewer.CreateHole(a.state, center, a.state.Settings.HoleRadius)
	return a.result()
}

// CreateSupport raises the lowest layer of the working mesh by the
// configured support height.
func (a *App) CreateSupport() Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	viewer.CreateSupport(a.state, a.state.Settings.SupportHeight)
	return a.result()
}

// PlaceModels lays out copies of the loaded model along x.
func (a *App) PlaceModels(intervalText, countText string) Result {
	a.mu.Lock()
	defer a.mu.Unlock()

	interval, count, err := viewer.ParsePlacement(intervalText, countText)
	if err != nil {
		return a.result(ErrorData{Message: err.Error()})
	}
	if !viewer.PlaceInstances(a.state, interval, count) {
		return a.result(ErrorData{Message: "no model data set"})
	}
	return a.result()
}

// SetCamera moves the camera to the typed position.
func (a *App) SetCamera(x, y, z string) Result {
	a.mu.Lock()
	defer a.mu.Unlock()

	p, err := viewer.ParseVec3(x, y, z)
	if err != nil {
		return a.result(ErrorData{Message: err.Error()})
	}
	viewer.SetCamera(a.state, p)
	return a.result()
}

// Rotate adds the given Euler angles, in degrees, to the model rotation.
func (a *App) Rotate(dx, dy, dz float64) Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	viewer.Rotate(a.state, dx, dy, dz)
	return a.result()
}

// KeyPress nudges the camera for W/A/S/D/Q/E. Other keys only refresh
// the overflow indicator.
func (a *App) KeyPress(key string) Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	viewer.Nudge(a.state, key)
	return a.result()
}

// View moves the camera to a named preset such as "top" or "left".
func (a *App) View(name string) Result {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := viewer.ViewPreset(a.state, viewer.Preset(name)); err != nil {
		return a.result(ErrorData{Message: err.Error()})
	}
	return a.result()
}

// Frame returns the current state without changing it.
func (a *App) Frame() Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.result()
}

// Settings returns the active viewer settings.
func (a *App) Settings() config.Settings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.Settings
}

// result refreshes the overflow indicator and builds a Result for the
// current state. Callers hold mu.
func (a *App) result(errs ...ErrorData) Result {
	viewer.Overflow(a.state)
	res := Result{
		Frame:    a.frame(),
		Errors:   []ErrorData{},
		Warnings: []ErrorData{},
	}
	res.Errors = append(res.Errors, errs...)
	return res
}

// frame tessellates what the viewport shows: the placed instances when a
// scene exists, otherwise the working mesh at the origin.
func (a *App) frame() Frame {
	st := a.state
	f := Frame{
		Meshes:      []MeshData{},
		Camera:      st.Camera,
		Rotation:    st.Rotation,
		Overflowing: st.Overflowing,
		Vertices:    st.Working.VertexCount(),
		Faces:       st.Working.FaceCount(),
		Instances:   st.Scene.Len(),
		Light:       st.Settings.Light,
		Material:    st.Settings.Material,
	}

	var buffers []*tessellate.Buffer
	if st.Scene.Len() > 0 {
		buffers = tessellate.Scene(st.Scene)
	} else if !st.Working.IsEmpty() {
		buffers = []*tessellate.Buffer{tessellate.Mesh(st.Working, vec3.Zero)}
	}

	for i, b := range buffers {
		f.Meshes = append(f.Meshes, MeshData{
			Vertices: b.Vertices,
			Normals:  b.Normals,
			Indices:  b.Indices,
			Offset:   b.Offset,
			Color:    colorPalette[i%len(colorPalette)],
		})
	}
	return f
}
