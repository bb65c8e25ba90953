package autodiff_test

import (
	"math"
	"testing"

	"github.com/trek-rl/trek/internal/autodiff"
	"github.com/trek-rl/trek/internal/backend/cpu"
	"github.com/trek-rl/trek/internal/tensor"
)

type testBackend = *autodiff.Backend[*cpu.CPUBackend]

func newBackend() testBackend {
	return autodiff.New(cpu.New())
}

func fromSlice(t *testing.T, b testBackend, data []float32, shape tensor.Shape) *tensor.Tensor[float32, testBackend] {
	t.Helper()
	ten, err := tensor.FromSlice(data, shape, b)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	return ten
}

func checkGrad(t *testing.T, grads map[*tensor.RawTensor]*tensor.RawTensor, x *tensor.Tensor[float32, testBackend], want []float32) {
	t.Helper()
	grad, ok := grads[x.Raw()]
	if !ok {
		t.Fatal("no gradient recorded")
	}
	got := grad.AsFloat32()
	if len(got) != len(want) {
		t.Fatalf("gradient length %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-4 {
			t.Errorf("grad[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBackwardSquare(t *testing.T) {
	b := newBackend()
	x := fromSlice(t, b, []float32{1, 2, 3}, tensor.Shape{3})

	b.Tape().StartRecording()
	y := x.Mul(x).Sum() // sum(x^2), dy/dx = 2x

	grads := autodiff.Backward(y, b)
	checkGrad(t, grads, x, []float32{2, 4, 6})
}

func TestBackwardAddSub(t *testing.T) {
	b := newBackend()
	x := fromSlice(t, b, []float32{1, 2}, tensor.Shape{2})
	y := fromSlice(t, b, []float32{3, 4}, tensor.Shape{2})

	b.Tape().StartRecording()
	z := x.Add(y).Sub(x.MulScalar(3)).Sum() // d/dx = 1-3, d/dy = 1

	grads := autodiff.Backward(z, b)
	checkGrad(t, grads, x, []float32{-2, -2})
	checkGrad(t, grads, y, []float32{1, 1})
}

func TestBackwardDiv(t *testing.T) {
	b := newBackend()
	x := fromSlice(t, b, []float32{4, 9}, tensor.Shape{2})
	y := fromSlice(t, b, []float32{2, 3}, tensor.Shape{2})

	b.Tape().StartRecording()
	z := x.Div(y).Sum() // d/dx = 1/y, d/dy = -x/y^2

	grads := autodiff.Backward(z, b)
	checkGrad(t, grads, x, []float32{0.5, 1.0 / 3})
	checkGrad(t, grads, y, []float32{-1, -1})
}

func TestBackwardMatMul(t *testing.T) {
	b := newBackend()
	x := fromSlice(t, b, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	w := fromSlice(t, b, []float32{5, 6, 7, 8}, tensor.Shape{2, 2})

	b.Tape().StartRecording()
	z := x.MatMul(w).Sum()

	grads := autodiff.Backward(z, b)
	// d/dx = ones @ w^T, d/dw = x^T @ ones.
	checkGrad(t, grads, x, []float32{11, 15, 11, 15})
	checkGrad(t, grads, w, []float32{4, 4, 6, 6})
}

func TestBackwardTanh(t *testing.T) {
	b := newBackend()
	x := fromSlice(t, b, []float32{0, 1}, tensor.Shape{2})

	b.Tape().StartRecording()
	z := x.Tanh().Sum()

	grads := autodiff.Backward(z, b)
	th := float32(math.Tanh(1))
	checkGrad(t, grads, x, []float32{1, 1 - th*th})
}

func TestBackwardReLU(t *testing.T) {
	b := newBackend()
	x := fromSlice(t, b, []float32{-1, 0.5, 2}, tensor.Shape{3})

	b.Tape().StartRecording()
	z := x.ReLU().Sum()

	grads := autodiff.Backward(z, b)
	checkGrad(t, grads, x, []float32{0, 1, 1})
}

func TestBackwardExpLog(t *testing.T) {
	b := newBackend()
	x := fromSlice(t, b, []float32{1, 2}, tensor.Shape{2})

	b.Tape().StartRecording()
	z := x.Exp().Sum()
	grads := autodiff.Backward(z, b)
	checkGrad(t, grads, x, []float32{float32(math.E), float32(math.Exp(2))})

	b.Tape().Clear()
	z = x.Log().Sum()
	grads = autodiff.Backward(z, b)
	checkGrad(t, grads, x, []float32{1, 0.5})
}

func TestBackwardBroadcastAdd(t *testing.T) {
	b := newBackend()
	x := fromSlice(t, b, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	bias := fromSlice(t, b, []float32{1, 1, 1}, tensor.Shape{1, 3})

	b.Tape().StartRecording()
	z := x.Add(bias).Sum()

	grads := autodiff.Backward(z, b)
	checkGrad(t, grads, x, []float32{1, 1, 1, 1, 1, 1})
	// Broadcast gradient sums over the expanded dimension.
	checkGrad(t, grads, bias, []float32{2, 2, 2})
}

func TestBackwardGather(t *testing.T) {
	b := newBackend()
	x := fromSlice(t, b, []float32{
		1, 2, 3,
		4, 5, 6,
	}, tensor.Shape{2, 3})
	idx, err := tensor.FromSlice([]int32{1, 2}, tensor.Shape{2, 1}, b)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	b.Tape().StartRecording()
	z := x.Gather(1, idx).Sum()

	grads := autodiff.Backward(z, b)
	checkGrad(t, grads, x, []float32{0, 1, 0, 0, 0, 1})
}

func TestBackwardSoftmax(t *testing.T) {
	b := newBackend()
	x := fromSlice(t, b, []float32{1, 2, 3}, tensor.Shape{1, 3})

	b.Tape().StartRecording()
	// sum(softmax(x)) is constant 1, so gradients vanish.
	z := x.Softmax(1).Sum()

	grads := autodiff.Backward(z, b)
	checkGrad(t, grads, x, []float32{0, 0, 0})
}

func TestBackwardMeanDim(t *testing.T) {
	b := newBackend()
	x := fromSlice(t, b, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})

	b.Tape().StartRecording()
	z := x.MeanDim(1, false).Sum()

	grads := autodiff.Backward(z, b)
	checkGrad(t, grads, x, []float32{0.5, 0.5, 0.5, 0.5})
}

func TestBackwardChainThroughLinearForm(t *testing.T) {
	b := newBackend()
	x := fromSlice(t, b, []float32{1, 2}, tensor.Shape{1, 2})
	w := fromSlice(t, b, []float32{0.5, -0.5, 1, 1}, tensor.Shape{2, 2})

	b.Tape().StartRecording()
	z := x.MatMul(w).Tanh().Sum()

	grads := autodiff.Backward(z, b)
	if _, ok := grads[x.Raw()]; !ok {
		t.Error("no gradient for x")
	}
	if _, ok := grads[w.Raw()]; !ok {
		t.Error("no gradient for w")
	}
}

func TestBackwardWithoutRecordingPanics(t *testing.T) {
	b := newBackend()
	x := fromSlice(t, b, []float32{1}, tensor.Shape{1})

	defer func() {
		if recover() == nil {
			t.Error("expected panic with empty tape")
		}
	}()
	autodiff.Backward(x, b)
}

func TestTapeClearKeepsRecording(t *testing.T) {
	b := newBackend()
	x := fromSlice(t, b, []float32{1}, tensor.Shape{1})

	b.Tape().StartRecording()
	_ = x.AddScalar(1)
	if b.Tape().NumOps() != 1 {
		t.Fatalf("NumOps = %d, want 1", b.Tape().NumOps())
	}

	b.Tape().Clear()
	if b.Tape().NumOps() != 0 {
		t.Fatalf("NumOps after Clear = %d, want 0", b.Tape().NumOps())
	}
	if !b.Tape().IsRecording() {
		t.Error("Clear stopped recording")
	}
}
