package flow_test

import (
	"testing"

	"github.com/cib-project/cib/internal/flow"
	"github.com/stretchr/testify/assert"
)

// countingStep yields NotDone for the first n-1 calls (in either direction)
// and Done after, resetting once the opposite direction reaches it.
func countingStep(steps int) (fwd, bwd flow.StepFunc) {
	remaining := 0
	fwd = func() flow.Status {
		if remaining == 0 {
			remaining = steps
		}
		remaining--
		if remaining > 0 {
			return flow.NotDone
		}
		return flow.Done
	}
	bwd = func() flow.Status {
		if remaining == 0 {
			remaining = steps
		}
		remaining--
		if remaining > 0 {
			return flow.NotDone
		}
		return flow.Done
	}
	return fwd, bwd
}

func TestSequencerForwardBackward(t *testing.T) {
	aFwd, aBwd := countingStep(1)
	bFwd, bBwd := countingStep(1)

	seq := flow.NewSequencer([]flow.SequencerStep{
		{Name: "a", Forward: aFwd, Backward: aBwd},
		{Name: "b", Forward: bFwd, Backward: bBwd},
	})

	assert.Equal(t, 0, seq.Position())
	assert.Equal(t, flow.Done, seq.Forward())
	assert.Equal(t, 2, seq.Position())
	assert.Equal(t, flow.Done, seq.Backward())
	assert.Equal(t, 0, seq.Position())
}

func TestSequencerRefusesDirectionChangeUntilDone(t *testing.T) {
	fwd, bwd := countingStep(2)

	seq := flow.NewSequencer([]flow.SequencerStep{
		{Name: "slow", Forward: fwd, Backward: bwd},
	})

	// First forward call leaves the step mid-flight (NotDone).
	assert.Equal(t, flow.NotDone, seq.Forward())
	assert.Equal(t, 0, seq.Position())

	// Backward must be refused outright while forward is stuck, without
	// running anything (the step's internal counter is untouched).
	assert.Equal(t, flow.NotDone, seq.Backward())

	// Forward is still free to keep going and eventually completes.
	assert.Equal(t, flow.Done, seq.Forward())
	assert.Equal(t, 1, seq.Position())
}

func TestSequencerMultiStepForward(t *testing.T) {
	var log []string
	step := func(name string) flow.SequencerStep {
		return flow.SequencerStep{
			Name:     name,
			Forward:  func() flow.Status { log = append(log, "fwd:"+name); return flow.Done },
			Backward: func() flow.Status { log = append(log, "bwd:"+name); return flow.Done },
		}
	}
	seq := flow.NewSequencer([]flow.SequencerStep{step("a"), step("b"), step("c")})

	assert.Equal(t, flow.Done, seq.Forward())
	assert.Equal(t, []string{"fwd:a", "fwd:b", "fwd:c"}, log)

	log = nil
	assert.Equal(t, flow.Done, seq.Backward())
	assert.Equal(t, []string{"bwd:c", "bwd:b", "bwd:a"}, log)
}
