package tensor

// Backend defines the interface compute backends implement. Backends carry
// out the actual numeric work; Tensor methods are thin typed wrappers over
// these calls.
//
// Implementations:
//   - CPU: pure Go (internal/backend/cpu)
//   - Autodiff: decorator recording operations for backprop (internal/autodiff)
type Backend interface {
	// Element-wise binary operations with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// MatMul performs 2D matrix multiplication: [M, K] @ [K, N] -> [M, N].
	MatMul(a, b *RawTensor) *RawTensor

	// Scalar operations (element-wise with a scalar broadcast to all elements).
	AddScalar(x *RawTensor, scalar any) *RawTensor
	SubScalar(x *RawTensor, scalar any) *RawTensor
	MulScalar(x *RawTensor, scalar any) *RawTensor
	DivScalar(x *RawTensor, scalar any) *RawTensor

	// Element-wise math.
	Exp(x *RawTensor) *RawTensor
	Log(x *RawTensor) *RawTensor
	Sqrt(x *RawTensor) *RawTensor
	Tanh(x *RawTensor) *RawTensor
	ReLU(x *RawTensor) *RawTensor

	// Softmax along a dimension of a 2D tensor.
	Softmax(x *RawTensor, dim int) *RawTensor

	// Reductions.
	Sum(x *RawTensor) *RawTensor                            // total sum, shape [1]
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor  // sum along dimension
	MeanDim(x *RawTensor, dim int, keepDim bool) *RawTensor // mean along dimension
	Argmax(x *RawTensor, dim int) *RawTensor                // index of max along dimension

	// Shape manipulation.
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor
	Squeeze(x *RawTensor, dim int) *RawTensor
	Unsqueeze(x *RawTensor, dim int) *RawTensor
	Cat(tensors []*RawTensor, dim int) *RawTensor
	Stack(tensors []*RawTensor, dim int) *RawTensor

	// Indexing.
	Gather(x *RawTensor, dim int, index *RawTensor) *RawTensor

	// Type conversion.
	Cast(x *RawTensor, dtype DataType) *RawTensor

	// Metadata.
	Name() string
	Device() Device
}
