// Package view renders the scene with raylib: the comet field from a
// frame snapshot, the tesseract wireframe, the ambient dust and a HUD.
package view

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/hypercube/camera"
	"github.com/pthm-cable/hypercube/config"
	"github.com/pthm-cable/hypercube/hypercube"
	"github.com/pthm-cable/hypercube/particles"
	"github.com/pthm-cable/hypercube/sim"
)

// cometWorldScale maps snapshot scale values to world-unit radii.
const cometWorldScale = 8.0

// HUDData holds the per-frame numbers shown in the overlay.
type HUDData struct {
	Visible  int
	Pending  int
	Free     int
	Capacity int
	FPS      int32
	Paused   bool
}

// View owns the camera and scratch buffers for one window.
type View struct {
	cfg      *config.Config
	camera   rl.Camera3D
	orbit    *camera.Orbit
	controls *Controls

	projBuf []float32
}

// New creates a view with the camera matching the simulation observer.
func New(cfg *config.Config) *View {
	v := &View{
		cfg:      cfg,
		orbit:    camera.New(float32(-cfg.Space.ObserverZ)),
		controls: NewControls(cfg),
	}
	v.camera.Target = rl.NewVector3(0, 0, 0)
	v.camera.Up = rl.NewVector3(0, 1, 0)
	v.camera.Fovy = float32(cfg.Space.FOVDegrees)
	v.camera.Projection = rl.CameraPerspective
	return v
}

// Controls returns the control panel for host input wiring.
func (v *View) Controls() *Controls {
	return v.controls
}

// Orbit returns the orbit camera for host input wiring.
func (v *View) Orbit() *camera.Orbit {
	return v.orbit
}

// Draw renders one frame. Call between rl.BeginDrawing and
// rl.EndDrawing.
func (v *View) Draw(snap *sim.FrameSnapshot, tess *hypercube.Tesseract, dust *particles.Field, hud HUDData) {
	rl.ClearBackground(rl.NewColor(4, 4, 12, 255))

	cx, cy, cz := v.orbit.Position()
	v.camera.Position = rl.NewVector3(cx, cy, cz)

	rl.BeginMode3D(v.camera)
	v.drawDust(dust)
	v.drawTesseract(tess)
	v.drawComets(snap)
	rl.EndMode3D()

	v.drawHUD(hud)
	v.controls.Draw()
}

func (v *View) drawComets(snap *sim.FrameSnapshot) {
	for i := 0; i < snap.Len(); i++ {
		pos := rl.NewVector3(
			snap.Positions[3*i],
			snap.Positions[3*i+1],
			snap.Positions[3*i+2],
		)
		radius := snap.Scales[i] * cometWorldScale
		color := snapColor(snap, i, snap.Opacities[i])

		// Tail first so the head draws over it. Comets stream toward
		// the viewer, so tails trail away along +z.
		if tail := snap.TailLengths[i]; tail > 0.1 {
			tip := rl.NewVector3(pos.X, pos.Y, pos.Z+tail)
			rl.DrawLine3D(pos, tip, fade(color, 0.5))
		}

		rl.DrawSphereEx(pos, radius, 8, 8, color)

		// Glow halo: a larger translucent shell scaled by intensity.
		glow := snap.GlowIntensities[i]
		if glow > 0 {
			halo := fade(color, 0.15*snap.Opacities[i])
			rl.DrawSphereEx(pos, radius*(1+0.4*glow), 8, 8, halo)
		}
	}
}

func (v *View) drawTesseract(tess *hypercube.Tesseract) {
	if tess == nil {
		return
	}
	v.projBuf = tess.ProjectedVertices(v.projBuf)
	edges := tess.Edges()

	line := rl.NewColor(120, 220, 255, 200)
	for e := 0; e < len(edges); e += 2 {
		a := edges[e] * 3
		b := edges[e+1] * 3
		rl.DrawLine3D(
			rl.NewVector3(v.projBuf[a], v.projBuf[a+1], v.projBuf[a+2]),
			rl.NewVector3(v.projBuf[b], v.projBuf[b+1], v.projBuf[b+2]),
			line,
		)
	}
}

func (v *View) drawDust(dust *particles.Field) {
	if dust == nil {
		return
	}
	pos := dust.Positions()
	alphas := dust.Alphas()

	for i := 0; i < dust.Count(); i++ {
		c := rl.NewColor(180, 190, 220, uint8(alphas[i]*90))
		rl.DrawPoint3D(rl.NewVector3(pos[3*i], pos[3*i+1], pos[3*i+2]), c)
	}
}

func (v *View) drawHUD(hud HUDData) {
	rl.DrawText("HYPERCUBE", 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Visible: %d | Pending: %d | Free: %d/%d",
			hud.Visible, hud.Pending, hud.Free, hud.Capacity),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(fmt.Sprintf("FPS: %d", hud.FPS), 10, 55, 16, rl.LightGray)

	if hud.Paused {
		rl.DrawText("PAUSED", 10, 75, 16, rl.Yellow)
	}

	rl.DrawText("[space] pause  [s] spawn  [tab] controls  [rmb] orbit  [r] reset cam", 10,
		int32(v.cfg.Screen.Height)-24, 14, rl.Gray)
}

func snapColor(snap *sim.FrameSnapshot, i int, opacity float32) rl.Color {
	return rl.NewColor(
		uint8(clamp01(snap.Colors[3*i])*255),
		uint8(clamp01(snap.Colors[3*i+1])*255),
		uint8(clamp01(snap.Colors[3*i+2])*255),
		uint8(clamp01(opacity)*255),
	)
}

func fade(c rl.Color, factor float32) rl.Color {
	c.A = uint8(float32(c.A) * clamp01(factor))
	return c
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
