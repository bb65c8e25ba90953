package ops

import (
	"fmt"

	"github.com/trek-rl/trek/internal/tensor"
)

// ExpOp records y = e^x.
type ExpOp struct {
	x, out *tensor.RawTensor
}

// NewExpOp creates an ExpOp.
func NewExpOp(x, out *tensor.RawTensor) *ExpOp {
	return &ExpOp{x: x, out: out}
}

func (op *ExpOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.x} }
func (op *ExpOp) Output() *tensor.RawTensor   { return op.out }

// Backward: dy/dx = e^x = y.
func (op *ExpOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Mul(grad, op.out)}
}

// LogOp records y = ln(x).
type LogOp struct {
	x, out *tensor.RawTensor
}

// NewLogOp creates a LogOp.
func NewLogOp(x, out *tensor.RawTensor) *LogOp {
	return &LogOp{x: x, out: out}
}

func (op *LogOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.x} }
func (op *LogOp) Output() *tensor.RawTensor   { return op.out }

// Backward: dy/dx = 1/x.
func (op *LogOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Div(grad, op.x)}
}

// SqrtOp records y = sqrt(x).
type SqrtOp struct {
	x, out *tensor.RawTensor
}

// NewSqrtOp creates a SqrtOp.
func NewSqrtOp(x, out *tensor.RawTensor) *SqrtOp {
	return &SqrtOp{x: x, out: out}
}

func (op *SqrtOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.x} }
func (op *SqrtOp) Output() *tensor.RawTensor   { return op.out }

// Backward: dy/dx = 1 / (2*sqrt(x)) = 0.5 / y.
func (op *SqrtOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Div(backend.MulScalar(grad, 0.5), op.out)}
}

// TanhOp records y = tanh(x).
type TanhOp struct {
	x, out *tensor.RawTensor
}

// NewTanhOp creates a TanhOp.
func NewTanhOp(x, out *tensor.RawTensor) *TanhOp {
	return &TanhOp{x: x, out: out}
}

func (op *TanhOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.x} }
func (op *TanhOp) Output() *tensor.RawTensor   { return op.out }

// Backward: dy/dx = 1 - tanh²(x) = 1 - y².
func (op *TanhOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	y2 := backend.Mul(op.out, op.out)
	oneMinus := backend.AddScalar(backend.MulScalar(y2, -1.0), 1.0)
	return []*tensor.RawTensor{backend.Mul(grad, oneMinus)}
}

// ReLUOp records y = max(0, x).
type ReLUOp struct {
	x, out *tensor.RawTensor
}

// NewReLUOp creates a ReLUOp.
func NewReLUOp(x, out *tensor.RawTensor) *ReLUOp {
	return &ReLUOp{x: x, out: out}
}

func (op *ReLUOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.x} }
func (op *ReLUOp) Output() *tensor.RawTensor   { return op.out }

// Backward: gradient flows only where the input was positive.
func (op *ReLUOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	dx := zerosLike(op.x, backend)
	switch op.x.DType() {
	case tensor.Float32:
		xv, gv, dv := op.x.AsFloat32(), grad.AsFloat32(), dx.AsFloat32()
		for i := range xv {
			if xv[i] > 0 {
				dv[i] = gv[i]
			}
		}
	case tensor.Float64:
		xv, gv, dv := op.x.AsFloat64(), grad.AsFloat64(), dx.AsFloat64()
		for i := range xv {
			if xv[i] > 0 {
				dv[i] = gv[i]
			}
		}
	default:
		panic(fmt.Sprintf("relu backward: unsupported dtype %s", op.x.DType()))
	}
	return []*tensor.RawTensor{dx}
}

// SoftmaxOp records y = softmax(x, dim).
type SoftmaxOp struct {
	x, out *tensor.RawTensor
	dim    int
}

// NewSoftmaxOp creates a SoftmaxOp.
func NewSoftmaxOp(x, out *tensor.RawTensor, dim int) *SoftmaxOp {
	return &SoftmaxOp{x: x, out: out, dim: dim}
}

func (op *SoftmaxOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.x} }
func (op *SoftmaxOp) Output() *tensor.RawTensor   { return op.out }

// Backward: dx = y * (grad - sum(grad * y, dim)).
func (op *SoftmaxOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gy := backend.Mul(grad, op.out)
	s := backend.SumDim(gy, op.dim, true)
	return []*tensor.RawTensor{backend.Mul(op.out, backend.Sub(grad, s))}
}
