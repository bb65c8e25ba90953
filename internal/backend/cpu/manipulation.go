package cpu

import (
	"fmt"

	"github.com/trek-rl/trek/internal/tensor"
)

// Reshape returns a view with the same data and a new shape.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	return t.WithShape(newShape)
}

// Transpose permutes dimensions, copying data into the permuted layout.
// With no axes, all dimensions are reversed.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: %d axes for %dD tensor", len(axes), ndim))
	}

	outShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("transpose: axis %d out of range for shape %v", ax, shape))
		}
		outShape[i] = shape[ax]
	}

	result := mustRaw(outShape, t.DType(), cpu.device)
	inStrides := t.Strides()
	outStrides := outShape.ComputeStrides()
	size := t.DType().Size()
	src, dst := t.Data(), result.Data()

	n := t.NumElements()
	for flat := 0; flat < n; flat++ {
		rem := flat
		inOff := 0
		for d := 0; d < ndim; d++ {
			coord := rem / outStrides[d]
			rem %= outStrides[d]
			inOff += coord * inStrides[axes[d]]
		}
		copy(dst[flat*size:(flat+1)*size], src[inOff*size:(inOff+1)*size])
	}
	return result
}

// Squeeze removes a dimension of size 1.
func (cpu *CPUBackend) Squeeze(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	if dim < 0 {
		dim += len(shape)
	}
	if dim < 0 || dim >= len(shape) || shape[dim] != 1 {
		panic(fmt.Sprintf("squeeze: dim %d of shape %v is not size 1", dim, shape))
	}
	out := make(tensor.Shape, 0, len(shape)-1)
	out = append(out, shape[:dim]...)
	out = append(out, shape[dim+1:]...)
	return x.WithShape(out)
}

// Unsqueeze inserts a dimension of size 1.
func (cpu *CPUBackend) Unsqueeze(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	if dim < 0 {
		dim += len(shape) + 1
	}
	if dim < 0 || dim > len(shape) {
		panic(fmt.Sprintf("unsqueeze: invalid dim %d for shape %v", dim, shape))
	}
	out := make(tensor.Shape, 0, len(shape)+1)
	out = append(out, shape[:dim]...)
	out = append(out, 1)
	out = append(out, shape[dim:]...)
	return x.WithShape(out)
}

// Cat concatenates tensors along an existing dimension.
func (cpu *CPUBackend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("cat: empty tensor list")
	}
	first := tensors[0]
	shape := first.Shape()
	if dim < 0 {
		dim += len(shape)
	}
	if dim < 0 || dim >= len(shape) {
		panic(fmt.Sprintf("cat: invalid dim %d for shape %v", dim, shape))
	}

	total := 0
	for _, t := range tensors {
		ts := t.Shape()
		if len(ts) != len(shape) || t.DType() != first.DType() {
			panic("cat: tensors must share rank and dtype")
		}
		for d := range ts {
			if d != dim && ts[d] != shape[d] {
				panic(fmt.Sprintf("cat: shape %v incompatible with %v along dim %d", ts, shape, dim))
			}
		}
		total += ts[dim]
	}

	outShape := shape.Clone()
	outShape[dim] = total
	result := mustRaw(outShape, first.DType(), cpu.device)

	// Copy block-wise: each tensor contributes contiguous runs of
	// blockLen bytes every outer step.
	size := first.DType().Size()
	inner := 1
	for d := dim + 1; d < len(shape); d++ {
		inner *= shape[d]
	}
	outer := 1
	for d := 0; d < dim; d++ {
		outer *= shape[d]
	}

	dst := result.Data()
	outRow := total * inner * size
	colOff := 0
	for _, t := range tensors {
		src := t.Data()
		rows := t.Shape()[dim]
		blockLen := rows * inner * size
		for o := 0; o < outer; o++ {
			copy(dst[o*outRow+colOff:o*outRow+colOff+blockLen], src[o*blockLen:(o+1)*blockLen])
		}
		colOff += blockLen
	}
	return result
}

// Stack stacks equally shaped tensors along a new dimension.
func (cpu *CPUBackend) Stack(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("stack: empty tensor list")
	}
	unsqueezed := make([]*tensor.RawTensor, len(tensors))
	for i, t := range tensors {
		if !t.Shape().Equal(tensors[0].Shape()) {
			panic(fmt.Sprintf("stack: shape %v differs from %v", t.Shape(), tensors[0].Shape()))
		}
		unsqueezed[i] = cpu.Unsqueeze(t, dim)
	}
	return cpu.Cat(unsqueezed, dim)
}
