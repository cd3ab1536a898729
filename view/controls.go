package view

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/hypercube/config"
)

// Controls is the tab-toggled tuning panel. Sliders write straight into
// the live config so the next frame picks the values up.
type Controls struct {
	cfg     *config.Config
	visible bool

	// SpawnRequested is set when the spawn button was pressed this
	// frame; the host consumes it.
	SpawnRequested bool
}

// NewControls creates a hidden controls panel.
func NewControls(cfg *config.Config) *Controls {
	return &Controls{cfg: cfg}
}

// Toggle flips panel visibility.
func (c *Controls) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel and applies any slider changes.
func (c *Controls) Draw() {
	c.SpawnRequested = false
	if !c.visible {
		return
	}

	panelX := float32(c.cfg.Screen.Width - 300)
	panelY := float32(10)
	width := float32(280)

	rl.DrawRectangle(int32(panelX)-10, int32(panelY)-10, int32(width)+20, 240,
		rl.NewColor(10, 10, 24, 230))
	rl.DrawText("Tuning", int32(panelX), int32(panelY), 20, rl.White)
	panelY += 30

	panelY = c.slider(panelX, panelY, width, "Min population", "0", "20",
		&c.cfg.Spawn.MinPopulation, 0, 20)

	panelY = c.sliderF(panelX, panelY, width, "Fade rate", "0.2", "5.0",
		&c.cfg.Cull.FadeRate, 0.2, 5.0)

	panelY = c.sliderF(panelX, panelY, width, "Max speed", "20", "120",
		&c.cfg.Spawn.MaxSpeed, 20, 120)

	panelY = c.sliderF(panelX, panelY, width, "Cube rotation", "0.0", "2.0",
		&c.cfg.Hypercube.RotationSpeed, 0, 2)

	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 28}, "Spawn group") {
		c.SpawnRequested = true
	}
}

func (c *Controls) sliderF(x, y, width float32, label, lo, hi string, value *float64, minVal, maxVal float32) float32 {
	rl.DrawText(label, int32(x), int32(y), 14, rl.Gray)
	y += 18

	got := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: width - 70, Height: 20},
		lo, hi,
		float32(*value), minVal, maxVal,
	)
	rl.DrawText(fmt.Sprintf("%.2f", *value), int32(x+width-60), int32(y+2), 16, rl.LightGray)
	if got != float32(*value) {
		*value = float64(got)
	}
	return y + 30
}

func (c *Controls) slider(x, y, width float32, label, lo, hi string, value *int, minVal, maxVal float32) float32 {
	rl.DrawText(label, int32(x), int32(y), 14, rl.Gray)
	y += 18

	got := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: width - 70, Height: 20},
		lo, hi,
		float32(*value), minVal, maxVal,
	)
	rl.DrawText(fmt.Sprintf("%d", *value), int32(x+width-60), int32(y+2), 16, rl.LightGray)
	if int(got) != *value {
		*value = int(got)
	}
	return y + 30
}
