// Copyright 2025 The Trek Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/trek-rl/trek/internal/tensor"

// DType is the constraint on tensor element types.
type DType = tensor.DType

// DataType identifies an element type at runtime.
type DataType = tensor.DataType

// Supported data types.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Uint8   DataType = tensor.Uint8
	Bool    DataType = tensor.Bool
)

// Device represents where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU Device = tensor.CPU
	GPU Device = tensor.GPU
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} is a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Backend is the interface compute backends implement. Operations on
// Tensor dispatch through it.
type Backend = tensor.Backend

// RawTensor is the untyped flat buffer underlying every Tensor. It is
// the currency of backends and gradient maps.
type RawTensor = tensor.RawTensor

// Tensor is a generic type-safe tensor.
//
// T is the element type (float32, float64, int32, uint8, bool).
// B is the backend implementation.
type Tensor[T DType, B Backend] = tensor.Tensor[T, B]

// Zeros creates a tensor filled with zeros.
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Zeros[T, B](shape, b)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Ones[T, B](shape, b)
}

// Full creates a tensor filled with value.
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	return tensor.Full[T, B](shape, value, b)
}

// Randn creates a tensor with samples from N(0, 1).
func Randn[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Randn[T, B](shape, b)
}

// RandnScaled creates a tensor with samples from N(mean, std).
func RandnScaled[T DType, B Backend](shape Shape, mean, std float64, b B) *Tensor[T, B] {
	return tensor.RandnScaled[T, B](shape, mean, std, b)
}

// Rand creates a tensor with uniform samples from [0, 1).
func Rand[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Rand[T, B](shape, b)
}

// Arange creates a 1D tensor with values [start, end).
func Arange[T DType, B Backend](start, end int, b B) *Tensor[T, B] {
	return tensor.Arange[T, B](start, end, b)
}

// FromSlice creates a tensor from a Go slice with the given shape.
//
// Example:
//
//	x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
func FromSlice[T DType, B Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	return tensor.FromSlice[T, B](data, shape, b)
}

// New creates a tensor wrapping an existing RawTensor.
func New[T DType, B Backend](raw *RawTensor, b B) *Tensor[T, B] {
	return tensor.New[T, B](raw, b)
}

// Cat concatenates tensors along dim.
func Cat[T DType, B Backend](tensors []*Tensor[T, B], dim int) *Tensor[T, B] {
	return tensor.Cat[T, B](tensors, dim)
}

// Stack stacks tensors along a new leading dimension at dim.
func Stack[T DType, B Backend](tensors []*Tensor[T, B], dim int) *Tensor[T, B] {
	return tensor.Stack[T, B](tensors, dim)
}

// Cast converts a tensor to a different element type.
func Cast[T, U DType, B Backend](t *Tensor[U, B], b B) *Tensor[T, B] {
	return tensor.Cast[T, U, B](t, b)
}
