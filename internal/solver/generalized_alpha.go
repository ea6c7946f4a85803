// Package solver advances an assembled multibody system in time with the
// Generalized-alpha implicit scheme: a Newmark-form predictor plus a
// Newton-corrected acceleration update, with the numerical damping of the
// highest-frequency modes controlled by the spectral radius rho_inf.
package solver

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// System is the contract the integrator consumes. The state slices
// returned by State are the system's own storage; the solver writes trial
// states through them and commits the accepted state there.
type System interface {
	Assemble()
	ComputeMassMatrix() *mat.Dense
	ComputeODE2RHS() []float64
	State() (q, qDot []float64, err error)
}

// orientationNormalizer is implemented by systems that can renormalize
// rigid-node orientation coordinates.
type orientationNormalizer interface {
	NormalizeOrientations()
}

// Observer is notified after every committed step.
type Observer interface {
	OnStep(t float64, q, qDot []float64)
}

// Phase is the integrator lifecycle state.
type Phase int

const (
	Idle Phase = iota
	Initialized
	Stepping
	Finished
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Initialized:
		return "initialized"
	case Stepping:
		return "stepping"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// Report carries the outcome of a run, including the numerical conditions
// that were recovered rather than surfaced: singular-matrix fallbacks and
// Newton loops that hit their iteration budget.
type Report struct {
	StepsTaken      int
	SingularSolves  int
	NewtonExhausted int
	MaxResidual     float64
	LastResidual    float64
	FinalTime       float64
}

// GeneralizedAlpha integrates a System over fixed time steps. A single
// caller per instance is assumed.
type GeneralizedAlpha struct {
	sys       System
	settings  Settings
	phase     Phase
	observers []Observer
}

// NewGeneralizedAlpha creates an idle integrator.
func NewGeneralizedAlpha() *GeneralizedAlpha {
	return &GeneralizedAlpha{phase: Idle}
}

// Phase returns the current lifecycle state.
func (s *GeneralizedAlpha) Phase() Phase { return s.phase }

// AddObserver registers a per-step observer.
func (s *GeneralizedAlpha) AddObserver(o Observer) {
	s.observers = append(s.observers, o)
}

// Initialize binds the integrator to a system, validates settings and
// forces assembly.
func (s *GeneralizedAlpha) Initialize(sys System, settings Settings) error {
	if sys == nil {
		return fmt.Errorf("%w: nil system", ErrInvalidSettings)
	}
	if settings.NumberOfSteps <= 0 {
		return fmt.Errorf("%w: numberOfSteps must be positive, got %d", ErrInvalidSettings, settings.NumberOfSteps)
	}
	if settings.EndTime <= settings.StartTime {
		return fmt.Errorf("%w: endTime must exceed startTime", ErrInvalidSettings)
	}
	if settings.SpectralRadius < 0 || settings.SpectralRadius > 1 {
		return fmt.Errorf("%w: spectralRadius must lie in [0,1], got %g", ErrInvalidSettings, settings.SpectralRadius)
	}
	if settings.MaxNewtonIterations <= 0 {
		settings.MaxNewtonIterations = DefaultSettings().MaxNewtonIterations
	}
	if settings.NewtonTolerance <= 0 {
		settings.NewtonTolerance = DefaultSettings().NewtonTolerance
	}
	sys.Assemble()
	s.sys = sys
	s.settings = settings
	s.phase = Initialized
	return nil
}

// Solve runs the full fixed step count. Singular mass matrices and Newton
// non-convergence are recovered and counted in the report unless the
// corresponding strict setting is on. After Solve returns, the system
// state holds the final committed (q, qDot).
func (s *GeneralizedAlpha) Solve() (*Report, error) {
	if s.phase != Initialized {
		return nil, fmt.Errorf("%w: phase is %s", ErrNotInitialized, s.phase)
	}
	s.phase = Stepping
	set := s.settings

	rho := set.SpectralRadius
	alphaM := (2*rho - 1) / (rho + 1)
	alphaF := rho / (rho + 1)
	gamma := 0.5 + alphaF - alphaM
	beta := 0.25 * (gamma + 0.5) * (gamma + 0.5)

	q, qDot, err := s.sys.State()
	if err != nil {
		return nil, err
	}
	n := len(q)
	dt := (set.EndTime - set.StartTime) / float64(set.NumberOfSteps)

	rep := &Report{}

	// Initial accelerations from M(q0)*a0 = F(q0, qDot0).
	a, fallback := solveLinear(s.sys.ComputeMassMatrix(), s.sys.ComputeODE2RHS())
	if fallback {
		rep.SingularSolves++
		if set.StrictSingular {
			s.phase = Finished
			return rep, fmt.Errorf("initial accelerations: %w", ErrSingularSystem)
		}
	}

	qPred := make([]float64, n)
	vPred := make([]float64, n)
	qTrial := make([]float64, n)
	vTrial := make([]float64, n)
	aTrial := make([]float64, n)
	residual := make([]float64, n)
	negRes := make([]float64, n)
	var ma mat.VecDense

	t := set.StartTime
	if set.Verbose {
		fmt.Printf("generalized-alpha: dt=%g rho=%g steps=%d\n", dt, rho, set.NumberOfSteps)
	}

	for step := 0; step < set.NumberOfSteps; step++ {
		t += dt

		for i := 0; i < n; i++ {
			qPred[i] = q[i] + dt*qDot[i] + 0.5*dt*dt*(1-2*beta)*a[i]
			vPred[i] = qDot[i] + dt*(1-gamma)*a[i]
		}
		copy(aTrial, a)

		resNorm := math.Inf(1)
		converged := false
		for iter := 0; iter < set.MaxNewtonIterations; iter++ {
			for i := 0; i < n; i++ {
				qTrial[i] = qPred[i] + beta*dt*dt*aTrial[i]
				vTrial[i] = vPred[i] + gamma*dt*aTrial[i]
			}
			copy(q, qTrial)
			copy(qDot, vTrial)

			mTrial := s.sys.ComputeMassMatrix()
			fTrial := s.sys.ComputeODE2RHS()

			ma.MulVec(mTrial, mat.NewVecDense(n, aTrial))
			sum := 0.0
			for i := 0; i < n; i++ {
				residual[i] = ma.AtVec(i) - fTrial[i]
				sum += residual[i] * residual[i]
			}
			resNorm = math.Sqrt(sum)
			if resNorm < set.NewtonTolerance {
				converged = true
				break
			}

			// Jacobian approximated by the mass matrix alone; stiffness and
			// damping terms are not included.
			for i := 0; i < n; i++ {
				negRes[i] = -residual[i]
			}
			da, fb := solveLinear(mTrial, negRes)
			if fb {
				rep.SingularSolves++
				if set.StrictSingular {
					s.phase = Finished
					return rep, fmt.Errorf("step %d (t=%.6g): %w", step, t, ErrSingularSystem)
				}
			}
			for i := 0; i < n; i++ {
				aTrial[i] += da[i]
			}
		}

		if !converged {
			rep.NewtonExhausted++
			if set.StrictNewton {
				s.phase = Finished
				return rep, fmt.Errorf("step %d (t=%.6g) residual %.3e: %w", step, t, resNorm, ErrNonConvergence)
			}
		}

		// Commit the last evaluated trial state plus the corrected
		// acceleration, converged or not.
		copy(q, qTrial)
		copy(qDot, vTrial)
		copy(a, aTrial)
		if set.NormalizeOrientations {
			if nz, ok := s.sys.(orientationNormalizer); ok {
				nz.NormalizeOrientations()
			}
		}

		rep.StepsTaken++
		rep.LastResidual = resNorm
		if resNorm > rep.MaxResidual {
			rep.MaxResidual = resNorm
		}
		for _, o := range s.observers {
			o.OnStep(t, q, qDot)
		}
		if set.Verbose && step%10 == 0 {
			fmt.Printf("step %d: t=%.4f residual=%.2e\n", step, t, resNorm)
		}
	}

	rep.FinalTime = t
	s.phase = Finished
	if set.Verbose {
		fmt.Println("simulation finished")
	}
	return rep, nil
}
