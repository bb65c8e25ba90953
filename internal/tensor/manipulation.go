package tensor

// Cat concatenates tensors along an existing dimension.
// All tensors must share shape except along dim.
func Cat[T DType, B Backend](tensors []*Tensor[T, B], dim int) *Tensor[T, B] {
	if len(tensors) == 0 {
		panic("Cat: empty tensor list")
	}
	raws := make([]*RawTensor, len(tensors))
	for i, t := range tensors {
		raws[i] = t.raw
	}
	b := tensors[0].backend
	return New[T, B](b.Cat(raws, dim), b)
}

// Stack stacks equally shaped tensors along a new dimension.
// Stack(ts, 0) of n [A]-tensors yields an [n, A] tensor, the analogue of
// row-stacking a rollout buffer before a loss computation.
func Stack[T DType, B Backend](tensors []*Tensor[T, B], dim int) *Tensor[T, B] {
	if len(tensors) == 0 {
		panic("Stack: empty tensor list")
	}
	raws := make([]*RawTensor, len(tensors))
	for i, t := range tensors {
		raws[i] = t.raw
	}
	b := tensors[0].backend
	return New[T, B](b.Stack(raws, dim), b)
}

// Cast converts a tensor to a different element type.
func Cast[T DType, U DType, B Backend](t *Tensor[U, B], b B) *Tensor[T, B] {
	var dummy T
	return New[T, B](b.Cast(t.Raw(), inferDataType(dummy)), b)
}
