package solver

import "math"

// Dormand-Prince 4(5) coefficients.
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

const (
	safety   = 0.9
	minScale = 0.2
	maxScale = 10.0
)

// RK45 is an adaptive Dormand-Prince stepper with FSAL evaluation reuse
// and cubic Hermite dense output.
type RK45 struct {
	opts Options
}

func NewRK45(opts Options) *RK45 {
	def := DefaultOptions()
	if opts.RelTol <= 0 {
		opts.RelTol = def.RelTol
	}
	if opts.AbsTol <= 0 {
		opts.AbsTol = def.AbsTol
	}
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = def.MaxSteps
	}
	return &RK45{opts: opts}
}

// Solve integrates f from t0 to t1 starting at y0 and samples the
// solution on grid, which must be ascending within [t0, t1]. Step
// selection is driven entirely by the error estimate; grid points are
// filled by interpolation over accepted steps, so the sampling density
// never affects accuracy.
func (r *RK45) Solve(f Func, y0 State, t0, t1 float64, grid []float64) (*Solution, error) {
	span := t1 - t0
	h := r.opts.InitStep
	if h <= 0 {
		h = span / 100
	}
	maxStep := r.opts.MaxStep
	if maxStep <= 0 {
		maxStep = span
	}
	minStep := r.opts.MinStep
	if minStep <= 0 {
		minStep = span * 1e-12
	}
	if h > maxStep {
		h = maxStep
	}

	sol := &Solution{
		Times:  grid,
		States: make([]State, len(grid)),
	}

	t := t0
	y := y0.Clone()
	k1, err := f(t, y)
	sol.Evals++
	if err != nil {
		return nil, &IntegrationError{T: t, Dt: h, Wrapped: err}
	}

	gi := 0
	for gi < len(grid) && grid[gi] <= t0 {
		sol.States[gi] = y.Clone()
		gi++
	}

	n := len(y)
	for t < t1 {
		if sol.Steps >= r.opts.MaxSteps {
			return nil, &IntegrationError{T: t, Dt: h, Step: sol.Steps, Wrapped: ErrStepBudget}
		}
		if h < minStep {
			return nil, &IntegrationError{T: t, Dt: h, Step: sol.Steps, Wrapped: ErrStepUnderflow}
		}
		last := false
		if t+h >= t1 {
			h = t1 - t
			last = true
		}

		yNew, k7, errNorm, stepErr := r.step(f, t, y, k1, h, n, sol)
		if stepErr != nil {
			return nil, &IntegrationError{T: t, Dt: h, Step: sol.Steps, Wrapped: stepErr}
		}

		if errNorm <= 1 {
			for gi < len(grid) && grid[gi] <= t+h {
				theta := (grid[gi] - t) / h
				sol.States[gi] = hermite(y, yNew, k1, k7, h, theta)
				gi++
			}
			t += h
			if last {
				t = t1
			}
			y = yNew
			k1 = k7
			sol.Steps++
		}

		var scale float64
		if errNorm > 1 {
			scale = math.Max(minScale, safety*math.Pow(errNorm, -0.25))
		} else if errNorm > 0 {
			scale = math.Min(maxScale, safety*math.Pow(errNorm, -0.2))
		} else {
			scale = maxScale
		}
		h *= scale
		if h > maxStep {
			h = maxStep
		}
	}

	// Grid points at or beyond t1 that float drift left unfilled.
	for gi < len(grid) {
		sol.States[gi] = y.Clone()
		gi++
	}

	return sol, nil
}

// Advance takes one accepted adaptive step from (t, y) with trial size h.
// It returns the new state, the step size actually taken, and a suggested
// size for the next call. Used for interactive stepping where no sample
// grid exists.
func (r *RK45) Advance(f Func, y State, t, h float64) (State, float64, float64, error) {
	minStep := r.opts.MinStep
	if minStep <= 0 {
		minStep = h * 1e-12
	}
	sol := &Solution{}
	k1, err := f(t, y)
	if err != nil {
		return nil, 0, 0, &IntegrationError{T: t, Dt: h, Wrapped: err}
	}
	for {
		if h < minStep {
			return nil, 0, 0, &IntegrationError{T: t, Dt: h, Wrapped: ErrStepUnderflow}
		}
		yNew, _, errNorm, stepErr := r.step(f, t, y, k1, h, len(y), sol)
		if stepErr != nil {
			return nil, 0, 0, &IntegrationError{T: t, Dt: h, Wrapped: stepErr}
		}
		if errNorm <= 1 {
			next := h * maxScale
			if errNorm > 0 {
				next = h * math.Min(maxScale, safety*math.Pow(errNorm, -0.2))
			}
			return yNew, h, next, nil
		}
		h *= math.Max(minScale, safety*math.Pow(errNorm, -0.25))
	}
}

// step attempts a single Dormand-Prince step of size h from (t, y) with
// k1 already evaluated. It returns the fifth-order solution, the FSAL
// derivative at the step end, and the scaled error norm.
func (r *RK45) step(f Func, t float64, y, k1 State, h float64, n int, sol *Solution) (State, State, float64, error) {
	stage := func(tt float64, yy State) (State, error) {
		k, err := f(tt, yy)
		sol.Evals++
		if err != nil {
			return nil, err
		}
		if !k.IsValid() {
			return nil, ErrInvalidState
		}
		return k, nil
	}

	yy := make(State, n)
	for i := 0; i < n; i++ {
		yy[i] = y[i] + h*b21*k1[i]
	}
	k2, err := stage(t+a2*h, yy)
	if err != nil {
		return nil, nil, 0, err
	}

	for i := 0; i < n; i++ {
		yy[i] = y[i] + h*(b31*k1[i]+b32*k2[i])
	}
	k3, err := stage(t+a3*h, yy)
	if err != nil {
		return nil, nil, 0, err
	}

	for i := 0; i < n; i++ {
		yy[i] = y[i] + h*(b41*k1[i]+b42*k2[i]+b43*k3[i])
	}
	k4, err := stage(t+a4*h, yy)
	if err != nil {
		return nil, nil, 0, err
	}

	for i := 0; i < n; i++ {
		yy[i] = y[i] + h*(b51*k1[i]+b52*k2[i]+b53*k3[i]+b54*k4[i])
	}
	k5, err := stage(t+a5*h, yy)
	if err != nil {
		return nil, nil, 0, err
	}

	for i := 0; i < n; i++ {
		yy[i] = y[i] + h*(b61*k1[i]+b62*k2[i]+b63*k3[i]+b64*k4[i]+b65*k5[i])
	}
	k6, err := stage(t+h, yy)
	if err != nil {
		return nil, nil, 0, err
	}

	yNew := make(State, n)
	for i := 0; i < n; i++ {
		yNew[i] = y[i] + h*(c1*k1[i]+c3*k3[i]+c4*k4[i]+c5*k5[i]+c6*k6[i])
	}
	k7, err := stage(t+h, yNew)
	if err != nil {
		return nil, nil, 0, err
	}

	errNorm := 0.0
	for i := 0; i < n; i++ {
		est := h * (dc1*k1[i] + dc3*k3[i] + dc4*k4[i] + dc5*k5[i] + dc6*k6[i] + dc7*k7[i])
		sc := r.opts.AbsTol + r.opts.RelTol*math.Max(math.Abs(y[i]), math.Abs(yNew[i]))
		errNorm = math.Max(errNorm, math.Abs(est)/sc)
	}

	return yNew, k7, errNorm, nil
}

// hermite interpolates within an accepted step using the endpoint values
// and derivatives; theta in [0, 1].
func hermite(y0, y1, f0, f1 State, h, theta float64) State {
	t2 := theta * theta
	t3 := t2 * theta
	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + theta
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2

	out := make(State, len(y0))
	for i := range y0 {
		out[i] = h00*y0[i] + h10*h*f0[i] + h01*y1[i] + h11*h*f1[i]
	}
	return out
}
