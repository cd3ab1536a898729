package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/hypercube/config"
	"github.com/pthm-cable/hypercube/sim"
	"github.com/pthm-cable/hypercube/telemetry"
)

// FitnessEvaluator runs headless simulations and scores how closely the
// steady-state scene matches the target visible density.
type FitnessEvaluator struct {
	params     *ParamVector
	configPath string
	maxFrames  int
	seeds      []int64

	// targetVisible is the desired steady-state visible count.
	targetVisible float64

	mu          sync.Mutex
	lastVisible float64 // mean visible count from most recent Evaluate
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, configPath string, maxFrames int, seeds []int64, targetVisible float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:        params,
		configPath:    configPath,
		maxFrames:     maxFrames,
		seeds:         seeds,
		targetVisible: targetVisible,
	}
}

// LastVisible returns the mean visible count from the most recent
// evaluation.
func (fe *FitnessEvaluator) LastVisible() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastVisible
}

// warmupFraction of each run is discarded so spawn ramp-up does not
// skew the steady-state measurement.
const warmupFraction = 0.25

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]float64, len(fe.seeds))
	visibles := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx], visibles[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalVisible float64
	for i := range results {
		totalFitness += results[i]
		totalVisible += visibles[i]
	}
	n := float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastVisible = totalVisible / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runSimulation runs one headless instance and returns its fitness and
// mean visible count.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) (fitness, meanVisible float64) {
	cfg, err := config.Load(fe.configPath)
	if err != nil {
		return math.Inf(1), 0
	}
	fe.params.ApplyToConfig(cfg, x)

	in := sim.NewInstance(cfg, 0, 0, seed)

	dt := float32(1.0) / float32(cfg.Screen.TargetFPS)
	warmup := int(float64(fe.maxFrames) * warmupFraction)

	var windows []telemetry.WindowStats
	for frame := 0; frame < fe.maxFrames; frame++ {
		in.MaintainPopulation()
		in.Update(dt)
		in.Visible()

		col := in.Collector()
		if col.ShouldFlush() {
			stats := col.Flush()
			if frame >= warmup {
				windows = append(windows, stats)
			}
		}
	}

	if len(windows) == 0 {
		return math.Inf(1), 0
	}

	// Score: squared error against the target density, a penalty for
	// dropped requests (pool pressure) and one for a churning count.
	var errSum, dropSum float64
	visible := make([]float64, len(windows))
	for i, w := range windows {
		visible[i] = w.VisibleMean
		diff := w.VisibleMean - fe.targetVisible
		errSum += diff * diff
		dropSum += w.DropRate
	}
	nw := float64(len(windows))
	meanVisible = mean(visible)

	variance := 0.0
	for _, v := range visible {
		d := v - meanVisible
		variance += d * d
	}
	variance /= nw

	fitness = errSum/nw + 10*dropSum/nw + 0.5*variance
	return fitness, meanVisible
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
