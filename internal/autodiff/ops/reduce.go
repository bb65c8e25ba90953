package ops

import "github.com/trek-rl/trek/internal/tensor"

// SumOp records y = sum(x), a full reduction to a single element.
type SumOp struct {
	x, out *tensor.RawTensor
}

// NewSumOp creates a SumOp.
func NewSumOp(x, out *tensor.RawTensor) *SumOp {
	return &SumOp{x: x, out: out}
}

func (op *SumOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.x} }
func (op *SumOp) Output() *tensor.RawTensor   { return op.out }

// Backward broadcasts the scalar gradient over the input shape.
func (op *SumOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Add(zerosLike(op.x, backend), grad)}
}

// SumDimOp records y = sum(x, dim).
type SumDimOp struct {
	x, out  *tensor.RawTensor
	dim     int
	keepDim bool
}

// NewSumDimOp creates a SumDimOp.
func NewSumDimOp(x, out *tensor.RawTensor, dim int, keepDim bool) *SumDimOp {
	return &SumDimOp{x: x, out: out, dim: dim, keepDim: keepDim}
}

func (op *SumDimOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.x} }
func (op *SumDimOp) Output() *tensor.RawTensor   { return op.out }

// Backward broadcasts the gradient back along the reduced dimension.
func (op *SumDimOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	g := grad
	if !op.keepDim {
		g = backend.Unsqueeze(g, op.normDim())
	}
	return []*tensor.RawTensor{backend.Add(zerosLike(op.x, backend), g)}
}

func (op *SumDimOp) normDim() int {
	dim := op.dim
	if dim < 0 {
		dim += len(op.x.Shape())
	}
	return dim
}

// MeanDimOp records y = mean(x, dim).
type MeanDimOp struct {
	x, out  *tensor.RawTensor
	dim     int
	keepDim bool
}

// NewMeanDimOp creates a MeanDimOp.
func NewMeanDimOp(x, out *tensor.RawTensor, dim int, keepDim bool) *MeanDimOp {
	return &MeanDimOp{x: x, out: out, dim: dim, keepDim: keepDim}
}

func (op *MeanDimOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.x} }
func (op *MeanDimOp) Output() *tensor.RawTensor   { return op.out }

// Backward broadcasts grad/n back along the reduced dimension.
func (op *MeanDimOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	dim := op.dim
	if dim < 0 {
		dim += len(op.x.Shape())
	}
	n := op.x.Shape()[dim]
	g := backend.DivScalar(grad, float64(n))
	if !op.keepDim {
		g = backend.Unsqueeze(g, dim)
	}
	return []*tensor.RawTensor{backend.Add(zerosLike(op.x, backend), g)}
}
