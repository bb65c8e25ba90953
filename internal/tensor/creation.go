package tensor

import (
	"math"
	"math/rand"
)

// Zeros creates a tensor filled with zeros.
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy), b.Device())
	if err != nil {
		panic(err) // shape validation is the only failure mode
	}
	return New[T, B](raw, b)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return Full[T, B](shape, oneValue[T](), b)
}

// Full creates a tensor filled with a specific value.
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Randn creates a tensor with values drawn from N(0, 1) via the Box-Muller
// transform. Float types only. Uses math/rand deliberately: training wants
// seedable, reproducible randomness, not crypto randomness.
func Randn[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	fillNormal(t, 0, 1)
	return t
}

// RandnScaled creates a tensor with values drawn from N(mean, std).
func RandnScaled[T DType, B Backend](shape Shape, mean, std float64, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	fillNormal(t, mean, std)
	return t
}

// Rand creates a tensor with values uniformly distributed in [0, 1).
// Float types only.
func Rand[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	switch data := any(t.Data()).(type) {
	case []float32:
		for i := range data {
			data[i] = float32(rand.Float64()) //nolint:gosec // reproducible ML randomness
		}
	case []float64:
		for i := range data {
			data[i] = rand.Float64() //nolint:gosec // reproducible ML randomness
		}
	default:
		panic("Rand only supports float32 and float64 types")
	}
	return t
}

// Arange creates a 1D tensor with values [start, end).
func Arange[T DType, B Backend](start, end int, b B) *Tensor[T, B] {
	if end <= start {
		panic("end must be greater than start")
	}
	t := Zeros[T, B](Shape{end - start}, b)
	switch data := any(t.Data()).(type) {
	case []float32:
		for i := range data {
			data[i] = float32(start + i)
		}
	case []float64:
		for i := range data {
			data[i] = float64(start + i)
		}
	case []int32:
		for i := range data {
			data[i] = int32(start + i)
		}
	case []uint8:
		for i := range data {
			data[i] = uint8(start + i)
		}
	default:
		panic("Arange not supported for this type")
	}
	return t
}

func fillNormal[T DType, B Backend](t *Tensor[T, B], mean, std float64) {
	sample := func() float64 {
		u1 := rand.Float64() //nolint:gosec // reproducible ML randomness
		u2 := rand.Float64() //nolint:gosec // reproducible ML randomness
		return mean + std*math.Sqrt(-2.0*math.Log(u1))*math.Cos(2.0*math.Pi*u2)
	}
	switch data := any(t.Data()).(type) {
	case []float32:
		for i := range data {
			data[i] = float32(sample())
		}
	case []float64:
		for i := range data {
			data[i] = sample()
		}
	default:
		panic("normal fill only supports float32 and float64 types")
	}
}

func oneValue[T DType]() T {
	var dummy T
	var one any
	switch any(dummy).(type) {
	case float32:
		one = float32(1)
	case float64:
		one = float64(1)
	case int32:
		one = int32(1)
	case uint8:
		one = uint8(1)
	case bool:
		one = true
	}
	return one.(T)
}
