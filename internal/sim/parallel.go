package sim

import "sync"

// SweepResult pairs a config with its outcome; failed runs keep their
// error and a nil trajectory.
type SweepResult struct {
	Config     Config
	Trajectory *Trajectory
	Err        error
}

// RunSweep executes the configs concurrently, one goroutine each. Runs
// are fully independent, so no coordination beyond the join is needed.
func (r *Runner) RunSweep(cfgs []Config) []SweepResult {
	results := make([]SweepResult, len(cfgs))

	var wg sync.WaitGroup
	for i, cfg := range cfgs {
		wg.Add(1)
		go func(idx int, c Config) {
			defer wg.Done()
			tr, err := r.Run(c)
			results[idx] = SweepResult{Config: c, Trajectory: tr, Err: err}
		}(i, cfg)
	}
	wg.Wait()

	return results
}
