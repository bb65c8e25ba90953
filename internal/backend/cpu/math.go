package cpu

import (
	"fmt"
	"math"

	"github.com/trek-rl/trek/internal/parallel"
	"github.com/trek-rl/trek/internal/tensor"
)

// binary applies an element-wise binary op with NumPy-style broadcasting.
// Float32 and Float64 tensors are supported; both operands must share a dtype.
func (cpu *CPUBackend) binary(name string, a, b *tensor.RawTensor,
	f32 func(x, y float32) float32, f64 func(x, y float64) float64) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", name, a.DType(), b.DType()))
	}

	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}
	result := mustRaw(outShape, a.DType(), cpu.device)

	if !needsBroadcast {
		switch a.DType() {
		case tensor.Float32:
			av, bv, ov := a.AsFloat32(), b.AsFloat32(), result.AsFloat32()
			parallel.For(len(ov), func(i int) { ov[i] = f32(av[i], bv[i]) }, cpu.parallel)
		case tensor.Float64:
			av, bv, ov := a.AsFloat64(), b.AsFloat64(), result.AsFloat64()
			parallel.For(len(ov), func(i int) { ov[i] = f64(av[i], bv[i]) }, cpu.parallel)
		default:
			panic(fmt.Sprintf("%s: unsupported dtype %s", name, a.DType()))
		}
		return result
	}

	aStrides := tensor.BroadcastStrides(a.Shape(), outShape)
	bStrides := tensor.BroadcastStrides(b.Shape(), outShape)
	outStrides := outShape.ComputeStrides()

	offsets := func(flat int) (int, int) {
		ai, bi := 0, 0
		rem := flat
		for d := range outShape {
			coord := rem / outStrides[d]
			rem %= outStrides[d]
			ai += coord * aStrides[d]
			bi += coord * bStrides[d]
		}
		return ai, bi
	}

	switch a.DType() {
	case tensor.Float32:
		av, bv, ov := a.AsFloat32(), b.AsFloat32(), result.AsFloat32()
		parallel.For(len(ov), func(i int) {
			ai, bi := offsets(i)
			ov[i] = f32(av[ai], bv[bi])
		}, cpu.parallel)
	case tensor.Float64:
		av, bv, ov := a.AsFloat64(), b.AsFloat64(), result.AsFloat64()
		parallel.For(len(ov), func(i int) {
			ai, bi := offsets(i)
			ov[i] = f64(av[ai], bv[bi])
		}, cpu.parallel)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, a.DType()))
	}
	return result
}

// Add performs element-wise addition with broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", a, b,
		func(x, y float32) float32 { return x + y },
		func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("sub", a, b,
		func(x, y float32) float32 { return x - y },
		func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", a, b,
		func(x, y float32) float32 { return x * y },
		func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("div", a, b,
		func(x, y float32) float32 { return x / y },
		func(x, y float64) float64 { return x / y })
}

// unary applies an element-wise unary op to a float tensor.
func (cpu *CPUBackend) unary(name string, x *tensor.RawTensor, f func(float64) float64) *tensor.RawTensor {
	result := mustRaw(x.Shape(), x.DType(), cpu.device)
	switch x.DType() {
	case tensor.Float32:
		xv, ov := x.AsFloat32(), result.AsFloat32()
		parallel.For(len(ov), func(i int) { ov[i] = float32(f(float64(xv[i]))) }, cpu.parallel)
	case tensor.Float64:
		xv, ov := x.AsFloat64(), result.AsFloat64()
		parallel.For(len(ov), func(i int) { ov[i] = f(xv[i]) }, cpu.parallel)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, x.DType()))
	}
	return result
}

// Exp computes e^x element-wise.
func (cpu *CPUBackend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("exp", x, math.Exp)
}

// Log computes the natural logarithm element-wise.
func (cpu *CPUBackend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("log", x, math.Log)
}

// Sqrt computes the square root element-wise.
func (cpu *CPUBackend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("sqrt", x, math.Sqrt)
}

// Tanh computes the hyperbolic tangent element-wise.
func (cpu *CPUBackend) Tanh(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("tanh", x, math.Tanh)
}

// ReLU computes max(0, x) element-wise.
func (cpu *CPUBackend) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("relu", x, func(v float64) float64 { return math.Max(0, v) })
}

// scalarOf converts a scalar of any supported numeric type to float64.
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
		panic(fmt.Sprintf("unsupported scalar type %T", s))
	}
}

// AddScalar adds a scalar to every element.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	s := scalarOf(scalar)
	return cpu.unary("addscalar", x, func(v float64) float64 { return v + s })
}

// SubScalar subtracts a scalar from every element.
func (cpu *CPUBackend) SubScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	s := scalarOf(scalar)
	return cpu.unary("subscalar", x, func(v float64) float64 { return v - s })
}

// MulScalar multiplies every element by a scalar.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	s := scalarOf(scalar)
	return cpu.unary("mulscalar", x, func(v float64) float64 { return v * s })
}

// DivScalar divides every element by a scalar.
func (cpu *CPUBackend) DivScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	s := scalarOf(scalar)
	return cpu.unary("divscalar", x, func(v float64) float64 { return v / s })
}

// Softmax applies a numerically stable softmax along one dimension of a
// 2D float32 tensor. Rows are shifted by their max before exponentiation.
func (cpu *CPUBackend) Softmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("softmax: expected 2D tensor, got shape %v", shape))
	}
	if dim < 0 {
		dim += 2
	}
	if dim != 0 && dim != 1 {
		panic(fmt.Sprintf("softmax: invalid dim %d", dim))
	}
	if x.DType() != tensor.Float32 {
		panic(fmt.Sprintf("softmax: unsupported dtype %s", x.DType()))
	}

	rows, cols := shape[0], shape[1]
	result := mustRaw(shape, x.DType(), cpu.device)
	xv, ov := x.AsFloat32(), result.AsFloat32()

	// Iterate lanes along dim.
	lanes, laneLen := rows, cols
	stride, laneStride := 1, cols
	if dim == 0 {
		lanes, laneLen = cols, rows
		stride, laneStride = cols, 1
	}

	parallel.For(lanes, func(l int) {
		base := l * laneStride
		maxVal := float32(math.Inf(-1))
		for i := 0; i < laneLen; i++ {
			if v := xv[base+i*stride]; v > maxVal {
				maxVal = v
			}
		}
		var sum float32
		for i := 0; i < laneLen; i++ {
			e := float32(math.Exp(float64(xv[base+i*stride] - maxVal)))
			ov[base+i*stride] = e
			sum += e
		}
		for i := 0; i < laneLen; i++ {
			ov[base+i*stride] /= sum
		}
	}, cpu.parallel)

	return result
}
