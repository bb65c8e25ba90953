package cpu

import (
	"fmt"
	"math"

	"github.com/trek-rl/trek/internal/tensor"
)

// Sum computes the total sum of all elements, returning a shape-[1] tensor.
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result := mustRaw(tensor.Shape{1}, x.DType(), cpu.device)
	switch x.DType() {
	case tensor.Float32:
		var sum float64 // accumulate in float64 to limit drift on long buffers
		for _, v := range x.AsFloat32() {
			sum += float64(v)
		}
		result.AsFloat32()[0] = float32(sum)
	case tensor.Float64:
		var sum float64
		for _, v := range x.AsFloat64() {
			sum += v
		}
		result.AsFloat64()[0] = sum
	default:
		panic(fmt.Sprintf("sum: unsupported dtype %s", x.DType()))
	}
	return result
}

// reduceDim folds along one dimension, writing fold(acc, v) into the output.
func (cpu *CPUBackend) reduceDim(name string, x *tensor.RawTensor, dim int, keepDim bool, mean bool) *tensor.RawTensor {
	shape := x.Shape()
	if dim < 0 {
		dim += len(shape)
	}
	if dim < 0 || dim >= len(shape) {
		panic(fmt.Sprintf("%s: invalid dim %d for shape %v", name, dim, shape))
	}

	outShape := make(tensor.Shape, 0, len(shape))
	for i, d := range shape {
		if i == dim {
			if keepDim {
				outShape = append(outShape, 1)
			}
			continue
		}
		outShape = append(outShape, d)
	}
	if len(outShape) == 0 {
		outShape = tensor.Shape{1}
	}

	result := mustRaw(outShape, x.DType(), cpu.device)

	strides := shape.ComputeStrides()
	outer := 1
	for i := 0; i < dim; i++ {
		outer *= shape[i]
	}
	inner := strides[dim]
	n := shape[dim]

	switch x.DType() {
	case tensor.Float32:
		xv, ov := x.AsFloat32(), result.AsFloat32()
		for o := 0; o < outer; o++ {
			for in := 0; in < inner; in++ {
				var sum float64
				base := o*n*inner + in
				for i := 0; i < n; i++ {
					sum += float64(xv[base+i*inner])
				}
				if mean {
					sum /= float64(n)
				}
				ov[o*inner+in] = float32(sum)
			}
		}
	case tensor.Float64:
		xv, ov := x.AsFloat64(), result.AsFloat64()
		for o := 0; o < outer; o++ {
			for in := 0; in < inner; in++ {
				var sum float64
				base := o*n*inner + in
				for i := 0; i < n; i++ {
					sum += xv[base+i*inner]
				}
				if mean {
					sum /= float64(n)
				}
				ov[o*inner+in] = sum
			}
		}
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, x.DType()))
	}
	return result
}

// SumDim sums along one dimension.
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return cpu.reduceDim("sumdim", x, dim, keepDim, false)
}

// MeanDim averages along one dimension.
func (cpu *CPUBackend) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return cpu.reduceDim("meandim", x, dim, keepDim, true)
}

// Argmax returns int32 indices of the maximum along a dimension of a 2D tensor.
func (cpu *CPUBackend) Argmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("argmax: expected 2D tensor, got shape %v", shape))
	}
	if dim < 0 {
		dim += 2
	}
	if x.DType() != tensor.Float32 {
		panic(fmt.Sprintf("argmax: unsupported dtype %s", x.DType()))
	}

	rows, cols := shape[0], shape[1]
	xv := x.AsFloat32()

	lanes, laneLen := rows, cols
	stride, laneStride := 1, cols
	outShape := tensor.Shape{rows}
	if dim == 0 {
		lanes, laneLen = cols, rows
		stride, laneStride = cols, 1
		outShape = tensor.Shape{cols}
	}

	result := mustRaw(outShape, tensor.Int32, cpu.device)
	ov := result.AsInt32()
	for l := 0; l < lanes; l++ {
		base := l * laneStride
		best, bestVal := 0, float32(math.Inf(-1))
		for i := 0; i < laneLen; i++ {
			if v := xv[base+i*stride]; v > bestVal {
				best, bestVal = i, v
			}
		}
		ov[l] = int32(best)
	}
	return result
}
