package ops

import "github.com/trek-rl/trek/internal/tensor"

// MatMulOp records c = a @ b for 2D tensors.
type MatMulOp struct {
	a, b, out *tensor.RawTensor
}

// NewMatMulOp creates a MatMulOp.
func NewMatMulOp(a, b, out *tensor.RawTensor) *MatMulOp {
	return &MatMulOp{a: a, b: b, out: out}
}

func (op *MatMulOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.a, op.b} }
func (op *MatMulOp) Output() *tensor.RawTensor   { return op.out }

// Backward: dc/da = grad @ bᵀ, dc/db = aᵀ @ grad.
func (op *MatMulOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	ga := backend.MatMul(grad, backend.Transpose(op.b))
	gb := backend.MatMul(backend.Transpose(op.a), grad)
	return []*tensor.RawTensor{ga, gb}
}
