package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/hypercube/config"
	"github.com/pthm-cable/hypercube/hypercube"
	"github.com/pthm-cable/hypercube/particles"
	"github.com/pthm-cable/hypercube/sim"
	"github.com/pthm-cable/hypercube/status"
	"github.com/pthm-cable/hypercube/telemetry"
	"github.com/pthm-cable/hypercube/view"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")
	spawn := flag.Int("spawn", 0, "Initial spawn request count (0 = rely on replenishment)")
	statusAddr := flag.String("status-addr", "", "Address for the /healthz endpoint (empty = disabled)")

	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	om, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer om.Close()
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	var statusSrv *status.Server
	if *statusAddr != "" {
		statusSrv, err = status.Start(*statusAddr)
		if err != nil {
			slog.Error("failed to start status server", "error", err)
			os.Exit(1)
		}
		defer statusSrv.Close()
	}

	app := &app{
		cfg:       cfg,
		mgr:       sim.NewManager(cfg, rngSeed),
		tesseract: hypercube.New(cfg.Hypercube.Size, cfg.Hypercube.WCamera),
		dust:      particles.NewField(cfg, rngSeed+1),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		output:    om,
		status:    statusSrv,
		logStats:  *logStats,
	}
	app.handle = app.mgr.Create(0, 0)
	if *spawn > 0 {
		app.mgr.Spawn(app.handle, *spawn)
	}

	slog.Info("starting",
		"seed", rngSeed,
		"headless", *headless,
		"max_frames", *maxFrames,
		"initial_spawn", *spawn,
	)

	if *headless {
		app.runHeadless(*maxFrames)
		return
	}

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "HYPERCUBE")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	app.view = view.New(cfg)
	app.runGraphical(*maxFrames)
}

// app ties the simulation core to its hosts: the headless driver and
// the raylib frame loop.
type app struct {
	cfg       *config.Config
	mgr       *sim.Manager
	handle    int
	tesseract *hypercube.Tesseract
	dust      *particles.Field
	view      *view.View

	perf     *telemetry.PerfCollector
	output   *telemetry.OutputManager
	status   *status.Server
	logStats bool

	frames int
	paused bool
}

// step advances everything by dt and returns the exported snapshot.
func (a *app) step(dt float32) *sim.FrameSnapshot {
	a.perf.StartFrame()

	in, _ := a.mgr.Instance(a.handle)
	in.SetPerf(a.perf)
	in.MaintainPopulation()
	a.mgr.Update(a.handle, dt)

	a.perf.StartPhase(telemetry.PhaseExport)
	snap := a.mgr.Visible(a.handle)
	a.perf.EndFrame()

	a.tesseract.SetRates(map[hypercube.Plane]float64{
		hypercube.PlaneXW: a.cfg.Hypercube.RotationSpeed,
		hypercube.PlaneYZ: a.cfg.Hypercube.RotationSpeed * 0.4,
	})
	a.tesseract.Rotate(float64(dt))
	a.dust.Update(dt)

	a.frames++
	if a.status != nil {
		a.status.RecordFrame(snap.Len())
	}
	a.flushTelemetry(in)

	return snap
}

func (a *app) flushTelemetry(in *sim.Instance) {
	col := in.Collector()
	if !col.ShouldFlush() {
		return
	}

	stats := col.Flush()
	if a.logStats {
		stats.LogStats()
	}
	if err := a.output.WriteTelemetry(stats); err != nil {
		slog.Error("writing telemetry", "error", err)
	}
	if err := a.output.WritePerf(a.perf.Stats(), stats.WindowEnd); err != nil {
		slog.Error("writing perf", "error", err)
	}
}

func (a *app) runHeadless(maxFrames int) {
	dt := float32(1.0) / float32(a.cfg.Screen.TargetFPS)

	for {
		a.step(dt)

		if maxFrames > 0 && a.frames >= maxFrames {
			slog.Info("max frames reached", "frames", a.frames)
			return
		}
	}
}

func (a *app) runGraphical(maxFrames int) {
	for !rl.WindowShouldClose() {
		a.handleInput()

		var snap *sim.FrameSnapshot
		if a.paused {
			snap = a.mgr.Visible(a.handle)
		} else {
			snap = a.step(rl.GetFrameTime())
		}

		rl.BeginDrawing()
		a.view.Draw(snap, a.tesseract, a.dust, view.HUDData{
			Visible:  snap.Len(),
			Pending:  a.pending(),
			Free:     a.free(),
			Capacity: a.cfg.Pool.Capacity,
			FPS:      int32(rl.GetFPS()),
			Paused:   a.paused,
		})
		rl.EndDrawing()

		if a.view.Controls().SpawnRequested {
			a.mgr.Spawn(a.handle, a.cfg.Spawn.MaxGroup)
		}

		if maxFrames > 0 && a.frames >= maxFrames {
			break
		}
	}
}

func (a *app) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		a.paused = !a.paused
	}
	if rl.IsKeyPressed(rl.KeyS) {
		a.mgr.Spawn(a.handle, a.cfg.Spawn.MaxGroup)
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		a.view.Controls().Toggle()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.view.Orbit().Reset()
	}

	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		delta := rl.GetMouseDelta()
		a.view.Orbit().Rotate(delta.X*0.005, -delta.Y*0.005)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.view.Orbit().Dolly(wheel * 2)
	}
}

func (a *app) pending() int {
	in, _ := a.mgr.Instance(a.handle)
	return in.PendingCount()
}

func (a *app) free() int {
	in, _ := a.mgr.Instance(a.handle)
	return in.FreeSlots()
}
