package ops

import "github.com/trek-rl/trek/internal/tensor"

// AddOp records c = a + b.
type AddOp struct {
	a, b, out *tensor.RawTensor
}

// NewAddOp creates an AddOp.
func NewAddOp(a, b, out *tensor.RawTensor) *AddOp {
	return &AddOp{a: a, b: b, out: out}
}

func (op *AddOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.a, op.b} }
func (op *AddOp) Output() *tensor.RawTensor   { return op.out }

// Backward: dc/da = 1, dc/db = 1 (reduced over broadcast dims).
func (op *AddOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{
		unbroadcast(grad, op.a.Shape(), backend),
		unbroadcast(grad, op.b.Shape(), backend),
	}
}

// SubOp records c = a - b.
type SubOp struct {
	a, b, out *tensor.RawTensor
}

// NewSubOp creates a SubOp.
func NewSubOp(a, b, out *tensor.RawTensor) *SubOp {
	return &SubOp{a: a, b: b, out: out}
}

func (op *SubOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.a, op.b} }
func (op *SubOp) Output() *tensor.RawTensor   { return op.out }

// Backward: dc/da = 1, dc/db = -1.
func (op *SubOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{
		unbroadcast(grad, op.a.Shape(), backend),
		unbroadcast(backend.MulScalar(grad, -1.0), op.b.Shape(), backend),
	}
}

// MulOp records c = a * b.
type MulOp struct {
	a, b, out *tensor.RawTensor
}

// NewMulOp creates a MulOp.
func NewMulOp(a, b, out *tensor.RawTensor) *MulOp {
	return &MulOp{a: a, b: b, out: out}
}

func (op *MulOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.a, op.b} }
func (op *MulOp) Output() *tensor.RawTensor   { return op.out }

// Backward: dc/da = b, dc/db = a.
func (op *MulOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{
		unbroadcast(backend.Mul(grad, op.b), op.a.Shape(), backend),
		unbroadcast(backend.Mul(grad, op.a), op.b.Shape(), backend),
	}
}

// DivOp records c = a / b.
type DivOp struct {
	a, b, out *tensor.RawTensor
}

// NewDivOp creates a DivOp.
func NewDivOp(a, b, out *tensor.RawTensor) *DivOp {
	return &DivOp{a: a, b: b, out: out}
}

func (op *DivOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.a, op.b} }
func (op *DivOp) Output() *tensor.RawTensor   { return op.out }

// Backward: dc/da = 1/b, dc/db = -a/b².
func (op *DivOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	ga := backend.Div(grad, op.b)
	b2 := backend.Mul(op.b, op.b)
	gb := backend.MulScalar(backend.Div(backend.Mul(grad, op.a), b2), -1.0)
	return []*tensor.RawTensor{
		unbroadcast(ga, op.a.Shape(), backend),
		unbroadcast(gb, op.b.Shape(), backend),
	}
}

// ScaleOp records y = x * factor (covers MulScalar and DivScalar).
type ScaleOp struct {
	x, out *tensor.RawTensor
	factor float64
}

// NewScaleOp creates a ScaleOp.
func NewScaleOp(x, out *tensor.RawTensor, factor float64) *ScaleOp {
	return &ScaleOp{x: x, out: out, factor: factor}
}

func (op *ScaleOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.x} }
func (op *ScaleOp) Output() *tensor.RawTensor   { return op.out }

func (op *ScaleOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.MulScalar(grad, op.factor)}
}

// ShiftOp records y = x + offset (covers AddScalar and SubScalar).
type ShiftOp struct {
	x, out *tensor.RawTensor
}

// NewShiftOp creates a ShiftOp.
func NewShiftOp(x, out *tensor.RawTensor) *ShiftOp {
	return &ShiftOp{x: x, out: out}
}

func (op *ShiftOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.x} }
func (op *ShiftOp) Output() *tensor.RawTensor   { return op.out }

func (op *ShiftOp) Backward(grad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{grad}
}
