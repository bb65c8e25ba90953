package tensor_test

import (
	"testing"

	"github.com/trek-rl/trek/internal/backend/cpu"
	"github.com/trek-rl/trek/internal/tensor"
)

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape tensor.Shape
		want  int
	}{
		{tensor.Shape{2, 3}, 6},
		{tensor.Shape{1}, 1},
		{tensor.Shape{2, 3, 4}, 24},
		{tensor.Shape{}, 1},
	}
	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("Shape%v.NumElements() = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestComputeStrides(t *testing.T) {
	strides := tensor.Shape{2, 3, 4}.ComputeStrides()
	want := []int{12, 4, 1}
	for i := range want {
		if strides[i] != want[i] {
			t.Errorf("strides[%d] = %d, want %d", i, strides[i], want[i])
		}
	}
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b tensor.Shape
		want tensor.Shape
		ok   bool
	}{
		{tensor.Shape{2, 3}, tensor.Shape{2, 3}, tensor.Shape{2, 3}, true},
		{tensor.Shape{2, 3}, tensor.Shape{3}, tensor.Shape{2, 3}, true},
		{tensor.Shape{2, 1}, tensor.Shape{1, 3}, tensor.Shape{2, 3}, true},
		{tensor.Shape{5, 1}, tensor.Shape{5}, tensor.Shape{5, 5}, true},
		{tensor.Shape{2, 3}, tensor.Shape{4}, nil, false},
	}
	for _, tt := range tests {
		got, _, err := tensor.BroadcastShapes(tt.a, tt.b)
		if tt.ok && err != nil {
			t.Errorf("BroadcastShapes(%v, %v) unexpected error: %v", tt.a, tt.b, err)
			continue
		}
		if !tt.ok {
			if err == nil {
				t.Errorf("BroadcastShapes(%v, %v) expected error", tt.a, tt.b)
			}
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("BroadcastShapes(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestFromSliceRoundTrip(t *testing.T) {
	b := cpu.New()
	in := []float32{1.5, -2.25, 3.75, 0}

	ten, err := tensor.FromSlice(in, tensor.Shape{2, 2}, b)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	if ten.DType() != tensor.Float32 {
		t.Errorf("DType() = %v, want Float32", ten.DType())
	}

	out := ten.Data()
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("Data()[%d] = %v, want %v", i, out[i], in[i])
		}
	}
}

func TestFromSliceDTypes(t *testing.T) {
	b := cpu.New()

	i32, err := tensor.FromSlice([]int32{1, 2, 3}, tensor.Shape{3}, b)
	if err != nil {
		t.Fatalf("FromSlice int32 failed: %v", err)
	}
	if i32.DType() != tensor.Int32 {
		t.Errorf("int32 DType() = %v, want Int32", i32.DType())
	}

	u8, err := tensor.FromSlice([]uint8{255, 0}, tensor.Shape{2}, b)
	if err != nil {
		t.Fatalf("FromSlice uint8 failed: %v", err)
	}
	if got := u8.Data(); got[0] != 255 || got[1] != 0 {
		t.Errorf("uint8 Data() = %v, want [255 0]", got)
	}
}

func TestFromSliceShapeMismatch(t *testing.T) {
	b := cpu.New()
	if _, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{2, 2}, b); err == nil {
		t.Error("expected error for size mismatch")
	}
}

func TestZerosOnesFull(t *testing.T) {
	b := cpu.New()

	for _, v := range tensor.Zeros[float32](tensor.Shape{2, 2}, b).Data() {
		if v != 0 {
			t.Fatalf("Zeros produced %v", v)
		}
	}
	for _, v := range tensor.Ones[float32](tensor.Shape{2, 2}, b).Data() {
		if v != 1 {
			t.Fatalf("Ones produced %v", v)
		}
	}
	for _, v := range tensor.Full[float32](tensor.Shape{3}, 2.5, b).Data() {
		if v != 2.5 {
			t.Fatalf("Full produced %v", v)
		}
	}
}

func TestRandnScaled(t *testing.T) {
	b := cpu.New()
	x := tensor.RandnScaled[float32](tensor.Shape{10000}, 0, 0.1, b)

	var sum, sumSq float64
	for _, v := range x.Data() {
		sum += float64(v)
		sumSq += float64(v) * float64(v)
	}
	n := float64(x.NumElements())
	mean := sum / n
	variance := sumSq/n - mean*mean

	if mean < -0.01 || mean > 0.01 {
		t.Errorf("mean = %v, want ~0", mean)
	}
	if variance < 0.008 || variance > 0.012 {
		t.Errorf("variance = %v, want ~0.01", variance)
	}
}

func TestAtSet(t *testing.T) {
	b := cpu.New()
	x := tensor.Zeros[float32](tensor.Shape{2, 3}, b)

	x.Set(7, 1, 2)
	if got := x.At(1, 2); got != 7 {
		t.Errorf("At(1,2) = %v, want 7", got)
	}
	if got := x.At(0, 0); got != 0 {
		t.Errorf("At(0,0) = %v, want 0", got)
	}
}

func TestCloneIndependence(t *testing.T) {
	b := cpu.New()
	x, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, b)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	y := x.Clone()
	y.Data()[0] = 99
	if x.Data()[0] != 1 {
		t.Error("Clone shares storage with original")
	}
}

func TestCopyFrom(t *testing.T) {
	b := cpu.New()
	dst := tensor.Zeros[float32](tensor.Shape{3}, b)
	src, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3}, b)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	dst.CopyFrom(src)
	for i, v := range dst.Data() {
		if v != src.Data()[i] {
			t.Errorf("dst[%d] = %v, want %v", i, v, src.Data()[i])
		}
	}

	// The copy is by value, not by reference.
	src.Data()[0] = 50
	if dst.Data()[0] == 50 {
		t.Error("CopyFrom aliased the source buffer")
	}
}

func TestStack(t *testing.T) {
	b := cpu.New()
	rows := make([]*tensor.Tensor[float32, *cpu.CPUBackend], 3)
	for i := range rows {
		var err error
		rows[i], err = tensor.FromSlice([]float32{float32(i), float32(i) + 0.5}, tensor.Shape{2}, b)
		if err != nil {
			t.Fatalf("FromSlice failed: %v", err)
		}
	}

	stacked := tensor.Stack(rows, 0)
	if !stacked.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("Stack shape = %v, want [3 2]", stacked.Shape())
	}
	want := []float32{0, 0.5, 1, 1.5, 2, 2.5}
	for i, v := range stacked.Data() {
		if v != want[i] {
			t.Errorf("stacked[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestCat(t *testing.T) {
	b := cpu.New()
	a, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{1, 2}, b)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	c, err := tensor.FromSlice([]float32{3, 4}, tensor.Shape{1, 2}, b)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	cat := tensor.Cat([]*tensor.Tensor[float32, *cpu.CPUBackend]{a, c}, 0)
	if !cat.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("Cat shape = %v, want [2 2]", cat.Shape())
	}
	want := []float32{1, 2, 3, 4}
	for i, v := range cat.Data() {
		if v != want[i] {
			t.Errorf("cat[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestCastConvertsDType(t *testing.T) {
	b := cpu.New()
	f, err := tensor.FromSlice([]float32{1.9, -2.1, 3.0}, tensor.Shape{3}, b)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	i := tensor.Cast[int32](f, b)
	if i.DType() != tensor.Int32 {
		t.Fatalf("Cast DType = %v, want Int32", i.DType())
	}
	want := []int32{1, -2, 3}
	for idx, v := range i.Data() {
		if v != want[idx] {
			t.Errorf("cast[%d] = %d, want %d", idx, v, want[idx])
		}
	}
}
