package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStart float64 `csv:"-"`
	WindowEnd   float64 `csv:"window_end"`
	Frames      int     `csv:"frames"`

	// Population at window end
	Active  int `csv:"active"`
	Exiting int `csv:"exiting"`

	// Lifecycle events during window
	SpawnRequests int     `csv:"spawn_requests"`
	Admissions    int     `csv:"admissions"`
	Drops         int     `csv:"drops"`
	Exits         int     `csv:"exits"`
	Releases      int     `csv:"releases"`
	DropRate      float64 `csv:"drop_rate"`

	// Visible-count distribution over the window's exports
	VisibleMean float64 `csv:"visible_mean"`
	VisibleP10  float64 `csv:"visible_p10"`
	VisibleP50  float64 `csv:"visible_p50"`
	VisibleP90  float64 `csv:"visible_p90"`

	DTMean float64 `csv:"dt_mean"`
}

// ComputeSampleStats calculates mean and percentiles from samples.
func ComputeSampleStats(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("window_start", s.WindowStart),
		slog.Float64("window_end", s.WindowEnd),
		slog.Int("frames", s.Frames),
		slog.Int("active", s.Active),
		slog.Int("exiting", s.Exiting),
		slog.Int("spawn_requests", s.SpawnRequests),
		slog.Int("admissions", s.Admissions),
		slog.Int("drops", s.Drops),
		slog.Int("exits", s.Exits),
		slog.Int("releases", s.Releases),
		slog.Float64("drop_rate", s.DropRate),
		slog.Float64("visible_mean", s.VisibleMean),
		slog.Float64("visible_p10", s.VisibleP10),
		slog.Float64("visible_p50", s.VisibleP50),
		slog.Float64("visible_p90", s.VisibleP90),
		slog.Float64("dt_mean", s.DTMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEnd,
		"frames", s.Frames,
		"active", s.Active,
		"exiting", s.Exiting,
		"spawn_requests", s.SpawnRequests,
		"admissions", s.Admissions,
		"drops", s.Drops,
		"exits", s.Exits,
		"releases", s.Releases,
		"drop_rate", s.DropRate,
		"visible_mean", s.VisibleMean,
		"visible_p50", s.VisibleP50,
		"dt_mean", s.DTMean,
	)
}
