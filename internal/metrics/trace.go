package metrics

// Trace records one generalized coordinate after every committed step.
type Trace struct {
	coord   int
	Times   []float64
	Samples []float64
}

// NewTrace records the coordinate with the given global index.
func NewTrace(coord int) *Trace {
	return &Trace{coord: coord}
}

func (tr *Trace) Name() string { return "trace" }

func (tr *Trace) OnStep(t float64, q, qDot []float64) {
	if tr.coord < 0 || tr.coord >= len(q) {
		return
	}
	tr.Times = append(tr.Times, t)
	tr.Samples = append(tr.Samples, q[tr.coord])
}

// Reset discards recorded samples.
func (tr *Trace) Reset() {
	tr.Times = tr.Times[:0]
	tr.Samples = tr.Samples[:0]
}
