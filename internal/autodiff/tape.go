package autodiff

import (
	"github.com/trek-rl/trek/internal/autodiff/ops"
	"github.com/trek-rl/trek/internal/tensor"
)

// Tape records operations during the forward pass and replays them in
// reverse to compute gradients.
//
//	tape := NewTape()
//	tape.StartRecording()
//	// ... forward pass ...
//	grads := tape.Backward(outputGrad, backend)
type Tape struct {
	operations []ops.Operation
	recording  bool
}

// NewTape creates an empty gradient tape.
func NewTape() *Tape {
	return &Tape{operations: make([]ops.Operation, 0, 64)}
}

// StartRecording enables operation recording.
func (t *Tape) StartRecording() {
	t.recording = true
}

// StopRecording disables operation recording.
func (t *Tape) StopRecording() {
	t.recording = false
}

// IsRecording reports whether the tape is currently recording.
func (t *Tape) IsRecording() bool {
	return t.recording
}

// Record appends an operation if the tape is recording.
func (t *Tape) Record(op ops.Operation) {
	if t.recording {
		t.operations = append(t.operations, op)
	}
}

// Clear drops all recorded operations. Recording state is preserved; a
// worker clears the tape between rollouts without re-arming it.
func (t *Tape) Clear() {
	t.operations = t.operations[:0]
}

// NumOps returns the number of recorded operations.
func (t *Tape) NumOps() int {
	return len(t.operations)
}

// Backward walks the tape in reverse, applying the chain rule and
// accumulating gradients for tensors used more than once.
//
// Returns a map from forward-pass RawTensor to its gradient.
func (t *Tape) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) map[*tensor.RawTensor]*tensor.RawTensor {
	grads := make(map[*tensor.RawTensor]*tensor.RawTensor)
	if len(t.operations) == 0 {
		return grads
	}

	// Gradient computations must not themselves land on the tape.
	wasRecording := t.recording
	t.recording = false
	defer func() { t.recording = wasRecording }()

	lastOp := t.operations[len(t.operations)-1]
	grads[lastOp.Output()] = outputGrad

	for i := len(t.operations) - 1; i >= 0; i-- {
		op := t.operations[i]
		outGrad, ok := grads[op.Output()]
		if !ok {
			continue // no gradient flows through this op
		}

		inputGrads := op.Backward(outGrad, backend)
		inputs := op.Inputs()
		for j, input := range inputs {
			if j >= len(inputGrads) || inputGrads[j] == nil {
				continue
			}
			if existing, ok := grads[input]; ok {
				grads[input] = backend.Add(existing, inputGrads[j])
			} else {
				grads[input] = inputGrads[j]
			}
		}
	}
	return grads
}
