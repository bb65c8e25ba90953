package ops

import (
	"fmt"

	"github.com/trek-rl/trek/internal/tensor"
)

// GatherOp records y = gather(x, dim, index). The index tensor is an input
// but receives no gradient.
type GatherOp struct {
	x, index, out *tensor.RawTensor
	dim           int
}

// NewGatherOp creates a GatherOp.
func NewGatherOp(x, index, out *tensor.RawTensor, dim int) *GatherOp {
	return &GatherOp{x: x, index: index, out: out, dim: dim}
}

func (op *GatherOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.x, op.index} }
func (op *GatherOp) Output() *tensor.RawTensor   { return op.out }

// Backward scatter-adds the output gradient back to the gathered positions.
func (op *GatherOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	if op.x.DType() != tensor.Float32 {
		panic(fmt.Sprintf("gather backward: unsupported dtype %s", op.x.DType()))
	}

	dx := zerosLike(op.x, backend)
	dv := dx.AsFloat32()
	gv := grad.AsFloat32()
	idx := op.index.AsInt32()

	dim := op.dim
	shape := op.x.Shape()
	if dim < 0 {
		dim += len(shape)
	}
	inStrides := shape.ComputeStrides()
	outStrides := op.index.Shape().ComputeStrides()

	n := op.index.NumElements()
	for flat := 0; flat < n; flat++ {
		rem := flat
		inOff := 0
		for d := range outStrides {
			coord := rem / outStrides[d]
			rem %= outStrides[d]
			if d == dim {
				coord = int(idx[flat])
			}
			inOff += coord * inStrides[d]
		}
		dv[inOff] += gv[flat]
	}
	return []*tensor.RawTensor{dx, nil}
}
