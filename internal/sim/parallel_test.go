package sim

import "testing"

func TestRunSweep(t *testing.T) {
	cfgs := make([]Config, 0, 4)
	for _, mu := range []float64{0.1, 0.2, 0.4} {
		cfg := monodConfig()
		cfg.Params = map[string]float64{"mu_max": mu, "k_s": 20.0}
		cfgs = append(cfgs, cfg)
	}
	bad := monodConfig()
	bad.Kinetics = "unknown"
	cfgs = append(cfgs, bad)

	results := NewRunner().RunSweep(cfgs)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}

	for i := 0; i < 3; i++ {
		if results[i].Err != nil {
			t.Errorf("run %d failed: %v", i, results[i].Err)
		}
	}
	if results[3].Err == nil {
		t.Error("invalid config did not fail")
	}

	// Faster growth consumes more substrate by the end of the batch.
	s1, _, _ := results[0].Trajectory.Final()
	s3, _, _ := results[2].Trajectory.Final()
	if s3 >= s1 {
		t.Errorf("mu_max=0.4 left more substrate (%g) than mu_max=0.1 (%g)", s3, s1)
	}
}

func TestRunSweepConcurrentIndependence(t *testing.T) {
	base := monodConfig()
	cfgs := make([]Config, 8)
	for i := range cfgs {
		cfgs[i] = base
	}

	results := NewRunner().RunSweep(cfgs)
	first := results[0].Trajectory
	for i, res := range results {
		if res.Err != nil {
			t.Fatalf("run %d failed: %v", i, res.Err)
		}
		for j := range first.T {
			if res.Trajectory.S[j] != first.S[j] {
				t.Fatalf("run %d diverged at sample %d", i, j)
			}
		}
	}
}
