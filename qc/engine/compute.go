package engine

import (
	"time"

	"github.com/google/uuid"
)

// Compute takes a named snapshot: probabilities, optional measurement
// counts, and (for n <= 4) the Bloch vector of qubit 0. The result is
// pushed onto the bounded result log and also returned directly.
func (e *Engine) Compute(mode string, shots int) (ComputeResult, error) {
	start := time.Now()
	if err := e.requireInitialized(); err != nil {
		return ComputeResult{}, err
	}

	probs, err := e.Probabilities()
	if err != nil {
		return ComputeResult{}, err
	}

	result := ComputeResult{
		ID:            uuid.NewString(),
		Mode:          mode,
		Success:       true,
		Probabilities: probs,
		NumQubits:     e.n,
		GateCount:     e.gateCount,
	}

	if shots > 0 {
		counts, err := e.MeasureAll(shots)
		if err != nil {
			return ComputeResult{}, err
		}
		result.Counts = counts
	}

	if e.n <= 4 {
		b, err := e.Bloch(0)
		if err != nil {
			return ComputeResult{}, err
		}
		result.Bloch = &b
	}

	result.TimeMS = float64(time.Since(start).Microseconds()) / 1000.0
	e.resultLog.push(result)
	return result, nil
}
