package tensor

import "fmt"

// Shape represents the dimensions of a tensor.
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that every dimension is positive.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}
	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// BroadcastShapes implements NumPy-style broadcasting.
//
// Shapes are compared element-wise from the right; dimensions are compatible
// when they are equal or one of them is 1. Returns the broadcast result
// shape and whether any broadcasting is actually required.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	if a.Equal(b) {
		return a.Clone(), false, nil
	}

	n := len(a)
	if len(b) > n {
		n = len(b)
	}

	out := make(Shape, n)
	for i := 0; i < n; i++ {
		da, db := 1, 1
		if i < len(a) {
			da = a[len(a)-1-i]
		}
		if i < len(b) {
			db = b[len(b)-1-i]
		}
		switch {
		case da == db:
			out[n-1-i] = da
		case da == 1:
			out[n-1-i] = db
		case db == 1:
			out[n-1-i] = da
		default:
			return nil, false, fmt.Errorf("shapes %v and %v are not broadcastable", a, b)
		}
	}
	return out, true, nil
}

// broadcastStrides returns strides for iterating a tensor of shape s as if it
// had the broadcast shape out: broadcast dimensions get stride 0.
func broadcastStrides(s Shape, out Shape) []int {
	strides := s.ComputeStrides()
	result := make([]int, len(out))
	offset := len(out) - len(s)
	for i := range out {
		if i < offset {
			result[i] = 0
			continue
		}
		if s[i-offset] == 1 && out[i] != 1 {
			result[i] = 0
		} else {
			result[i] = strides[i-offset]
		}
	}
	return result
}

// BroadcastStrides is the exported form used by backends.
func BroadcastStrides(s, out Shape) []int {
	return broadcastStrides(s, out)
}
