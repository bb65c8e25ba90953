package ops

import "github.com/trek-rl/trek/internal/tensor"

// ReshapeOp records y = reshape(x). Also covers squeeze/unsqueeze, which are
// reshapes as far as gradients are concerned.
//
// Shape changes must land on the tape: a Linear layer reshapes its bias for
// broadcasting, and without this op the bias parameter would never receive a
// gradient.
type ReshapeOp struct {
	x, out *tensor.RawTensor
}

// NewReshapeOp creates a ReshapeOp.
func NewReshapeOp(x, out *tensor.RawTensor) *ReshapeOp {
	return &ReshapeOp{x: x, out: out}
}

func (op *ReshapeOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.x} }
func (op *ReshapeOp) Output() *tensor.RawTensor   { return op.out }

func (op *ReshapeOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Reshape(grad, op.x.Shape())}
}

// TransposeOp records y = transpose(x, axes).
type TransposeOp struct {
	x, out *tensor.RawTensor
	axes   []int
}

// NewTransposeOp creates a TransposeOp.
func NewTransposeOp(x, out *tensor.RawTensor, axes []int) *TransposeOp {
	return &TransposeOp{x: x, out: out, axes: axes}
}

func (op *TransposeOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.x} }
func (op *TransposeOp) Output() *tensor.RawTensor   { return op.out }

// Backward applies the inverse permutation to the gradient.
func (op *TransposeOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	inverse := make([]int, len(op.axes))
	for i, ax := range op.axes {
		inverse[ax] = i
	}
	return []*tensor.RawTensor{backend.Transpose(grad, inverse...)}
}

// StackOp records y = stack(xs, dim).
type StackOp struct {
	inputs []*tensor.RawTensor
	out    *tensor.RawTensor
	dim    int
}

// NewStackOp creates a StackOp.
func NewStackOp(inputs []*tensor.RawTensor, out *tensor.RawTensor, dim int) *StackOp {
	return &StackOp{inputs: inputs, out: out, dim: dim}
}

func (op *StackOp) Inputs() []*tensor.RawTensor { return op.inputs }
func (op *StackOp) Output() *tensor.RawTensor   { return op.out }

// Backward slices the gradient back apart along the stacked dimension.
func (op *StackOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	n := len(op.inputs)
	inShape := op.inputs[0].Shape()

	dim := op.dim
	if dim < 0 {
		dim += len(inShape) + 1
	}

	inner := 1
	for d := dim; d < len(inShape); d++ {
		inner *= inShape[d]
	}
	outer := grad.NumElements() / (n * inner)
	size := grad.DType().Size()
	src := grad.Data()

	grads := make([]*tensor.RawTensor, n)
	for i := range grads {
		g := zerosLike(op.inputs[i], backend)
		dst := g.Data()
		for o := 0; o < outer; o++ {
			srcOff := (o*n + i) * inner * size
			dstOff := o * inner * size
			copy(dst[dstOff:dstOff+inner*size], src[srcOff:srcOff+inner*size])
		}
		grads[i] = g
	}
	return grads
}
