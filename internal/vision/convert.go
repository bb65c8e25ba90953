package vision

import "github.com/trek-rl/trek/internal/tensor"

// FromFloat64s converts a float64 buffer into a float32 tensor,
// narrowing each element. Use tensor.FromSlice directly when the
// element type already matches.
func FromFloat64s[B tensor.Backend](data []float64, shape tensor.Shape, backend B) (*tensor.Tensor[float32, B], error) {
	converted := make([]float32, len(data))
	for i, v := range data {
		converted[i] = float32(v)
	}
	return tensor.FromSlice(converted, shape, backend)
}

// ToFloat64s widens a float32 tensor's elements into a fresh float64
// slice.
func ToFloat64s[B tensor.Backend](t *tensor.Tensor[float32, B]) []float64 {
	data := t.Data()
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = float64(v)
	}
	return out
}
