// Package autodiff implements reverse-mode automatic differentiation as a
// backend decorator.
//
// Backend[B] wraps any tensor.Backend and records differentiable operations
// on a Tape during the forward pass. Backward walks the tape with the chain
// rule and returns a gradient per input tensor.
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	// ... forward pass, loss ...
//	grads := autodiff.Backward(loss, backend)
package autodiff

import (
	"github.com/trek-rl/trek/internal/autodiff/ops"
	"github.com/trek-rl/trek/internal/tensor"
)

// Backend wraps an inner backend and adds gradient recording.
// It implements tensor.Backend.
type Backend[B tensor.Backend] struct {
	inner B
	tape  *Tape
}

// New creates an autodiff backend wrapping the given backend.
func New[B tensor.Backend](inner B) *Backend[B] {
	return &Backend[B]{inner: inner, tape: NewTape()}
}

// Tape returns the gradient tape for recording control.
func (b *Backend[B]) Tape() *Tape {
	return b.tape
}

// Inner returns the wrapped backend.
func (b *Backend[B]) Inner() B {
	return b.inner
}

// Name returns the backend name.
func (b *Backend[B]) Name() string {
	return "Autodiff(" + b.inner.Name() + ")"
}

// Device returns the compute device.
func (b *Backend[B]) Device() tensor.Device {
	return b.inner.Device()
}

// Add performs element-wise addition and records the operation.
func (b *Backend[B]) Add(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Add(x, y)
	b.tape.Record(ops.NewAddOp(x, y, result))
	return result
}

// Sub performs element-wise subtraction and records the operation.
func (b *Backend[B]) Sub(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Sub(x, y)
	b.tape.Record(ops.NewSubOp(x, y, result))
	return result
}

// Mul performs element-wise multiplication and records the operation.
func (b *Backend[B]) Mul(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Mul(x, y)
	b.tape.Record(ops.NewMulOp(x, y, result))
	return result
}

// Div performs element-wise division and records the operation.
func (b *Backend[B]) Div(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Div(x, y)
	b.tape.Record(ops.NewDivOp(x, y, result))
	return result
}

// MatMul performs matrix multiplication and records the operation.
func (b *Backend[B]) MatMul(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.MatMul(x, y)
	b.tape.Record(ops.NewMatMulOp(x, y, result))
	return result
}

// AddScalar adds a scalar element-wise and records the operation.
func (b *Backend[B]) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := b.inner.AddScalar(x, scalar)
	b.tape.Record(ops.NewShiftOp(x, result))
	return result
}

// SubScalar subtracts a scalar element-wise and records the operation.
func (b *Backend[B]) SubScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := b.inner.SubScalar(x, scalar)
	b.tape.Record(ops.NewShiftOp(x, result))
	return result
}

// MulScalar multiplies by a scalar and records the operation.
func (b *Backend[B]) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := b.inner.MulScalar(x, scalar)
	b.tape.Record(ops.NewScaleOp(x, result, scalarOf(scalar)))
	return result
}

// DivScalar divides by a scalar and records the operation.
func (b *Backend[B]) DivScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := b.inner.DivScalar(x, scalar)
	b.tape.Record(ops.NewScaleOp(x, result, 1/scalarOf(scalar)))
	return result
}

// Exp computes e^x and records the operation.
func (b *Backend[B]) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Exp(x)
	b.tape.Record(ops.NewExpOp(x, result))
	return result
}

// Log computes ln(x) and records the operation.
func (b *Backend[B]) Log(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Log(x)
	b.tape.Record(ops.NewLogOp(x, result))
	return result
}

// Sqrt computes sqrt(x) and records the operation.
func (b *Backend[B]) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Sqrt(x)
	b.tape.Record(ops.NewSqrtOp(x, result))
	return result
}

// Tanh computes tanh(x) and records the operation.
func (b *Backend[B]) Tanh(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Tanh(x)
	b.tape.Record(ops.NewTanhOp(x, result))
	return result
}

// ReLU computes max(0, x) and records the operation.
func (b *Backend[B]) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.ReLU(x)
	b.tape.Record(ops.NewReLUOp(x, result))
	return result
}

// Softmax applies softmax along dim and records the operation.
func (b *Backend[B]) Softmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	result := b.inner.Softmax(x, dim)
	b.tape.Record(ops.NewSoftmaxOp(x, result, dim))
	return result
}

// Sum reduces to a single element and records the operation.
func (b *Backend[B]) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Sum(x)
	b.tape.Record(ops.NewSumOp(x, result))
	return result
}

// SumDim sums along a dimension and records the operation.
func (b *Backend[B]) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	result := b.inner.SumDim(x, dim, keepDim)
	b.tape.Record(ops.NewSumDimOp(x, result, dim, keepDim))
	return result
}

// MeanDim averages along a dimension and records the operation.
func (b *Backend[B]) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	result := b.inner.MeanDim(x, dim, keepDim)
	b.tape.Record(ops.NewMeanDimOp(x, result, dim, keepDim))
	return result
}

// Argmax is not differentiable; it passes through without recording.
func (b *Backend[B]) Argmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	return b.inner.Argmax(x, dim)
}

// Reshape changes shape and records the operation so gradients flow back
// to reshaped parameters.
func (b *Backend[B]) Reshape(x *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	result := b.inner.Reshape(x, newShape)
	b.tape.Record(ops.NewReshapeOp(x, result))
	return result
}

// Transpose permutes dimensions and records the operation. The backend may
// materialize a new tensor for the transposed layout, so skipping the record
// would orphan gradients of transposed parameters.
func (b *Backend[B]) Transpose(x *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	ndim := len(x.Shape())
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	result := b.inner.Transpose(x, axes...)
	b.tape.Record(ops.NewTransposeOp(x, result, axes))
	return result
}

// Squeeze removes a size-1 dimension; recorded as a reshape.
func (b *Backend[B]) Squeeze(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	result := b.inner.Squeeze(x, dim)
	b.tape.Record(ops.NewReshapeOp(x, result))
	return result
}

// Unsqueeze inserts a size-1 dimension; recorded as a reshape.
func (b *Backend[B]) Unsqueeze(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	result := b.inner.Unsqueeze(x, dim)
	b.tape.Record(ops.NewReshapeOp(x, result))
	return result
}

// Cat concatenates without recording; rollout buffers are assembled with
// Stack, which is the recorded path.
func (b *Backend[B]) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	return b.inner.Cat(tensors, dim)
}

// Stack stacks tensors along a new dimension and records the operation.
func (b *Backend[B]) Stack(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	result := b.inner.Stack(tensors, dim)
	b.tape.Record(ops.NewStackOp(tensors, result, dim))
	return result
}

// Gather selects along a dimension and records the operation.
func (b *Backend[B]) Gather(x *tensor.RawTensor, dim int, index *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Gather(x, dim, index)
	b.tape.Record(ops.NewGatherOp(x, index, result, dim))
	return result
}

// Cast converts dtype; not differentiable, passes through.
func (b *Backend[B]) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	return b.inner.Cast(x, dtype)
}

func scalarOf(s any) float64 {
	switch v := s.(type) {
	case float32:
		return float64(v)
	case float64:
		return v
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case uint8:
		return float64(v)
	default:
		panic("unsupported scalar type")
	}
}
