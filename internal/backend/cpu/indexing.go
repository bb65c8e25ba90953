package cpu

import (
	"fmt"

	"github.com/trek-rl/trek/internal/tensor"
)

// Gather selects elements along dim using an int32 index tensor.
//
// For a 2D input with dim=1, out[i][j] = x[i][index[i][j]] — the shape the
// policy-gradient loss needs to pick taken-action log probabilities out of a
// [steps, actions] matrix.
func (cpu *CPUBackend) Gather(x *tensor.RawTensor, dim int, index *tensor.RawTensor) *tensor.RawTensor {
	shape := x.Shape()
	idxShape := index.Shape()
	if len(shape) != len(idxShape) {
		panic(fmt.Sprintf("gather: rank mismatch %v vs %v", shape, idxShape))
	}
	if dim < 0 {
		dim += len(shape)
	}
	if dim < 0 || dim >= len(shape) {
		panic(fmt.Sprintf("gather: invalid dim %d for shape %v", dim, shape))
	}
	if index.DType() != tensor.Int32 {
		panic(fmt.Sprintf("gather: index dtype is %s, not int32", index.DType()))
	}
	for d := range shape {
		if d != dim && idxShape[d] > shape[d] {
			panic(fmt.Sprintf("gather: index shape %v exceeds input %v at dim %d", idxShape, shape, d))
		}
	}

	result := mustRaw(idxShape, x.DType(), cpu.device)
	idx := index.AsInt32()
	inStrides := shape.ComputeStrides()
	outStrides := idxShape.ComputeStrides()
	size := x.DType().Size()
	src, dst := x.Data(), result.Data()

	n := index.NumElements()
	for flat := 0; flat < n; flat++ {
		rem := flat
		inOff := 0
		for d := range idxShape {
			coord := rem / outStrides[d]
			rem %= outStrides[d]
			if d == dim {
				coord = int(idx[flat])
				if coord < 0 || coord >= shape[dim] {
					panic(fmt.Sprintf("gather: index %d out of range for dim %d (size %d)", coord, dim, shape[dim]))
				}
			}
			inOff += coord * inStrides[d]
		}
		copy(dst[flat*size:(flat+1)*size], src[inOff*size:(inOff+1)*size])
	}
	return result
}
