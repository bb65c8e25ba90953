package optim_test

import (
	"math"
	"testing"

	"github.com/trek-rl/trek/internal/backend/cpu"
	"github.com/trek-rl/trek/internal/nn"
	"github.com/trek-rl/trek/internal/optim"
	"github.com/trek-rl/trek/internal/tensor"
)

func floatEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func makeParam(t *testing.T, b *cpu.CPUBackend, values []float32) *nn.Parameter[*cpu.CPUBackend] {
	t.Helper()
	ten, err := tensor.FromSlice(values, tensor.Shape{len(values)}, b)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	return nn.NewParameter("param", ten)
}

func gradMap(b *cpu.CPUBackend, p *nn.Parameter[*cpu.CPUBackend], values []float32) map[*tensor.RawTensor]*tensor.RawTensor {
	g, err := tensor.FromSlice(values, p.Tensor().Shape(), b)
	if err != nil {
		panic(err)
	}
	return map[*tensor.RawTensor]*tensor.RawTensor{p.Tensor().Raw(): g.Raw()}
}

func TestSGDStep(t *testing.T) {
	b := cpu.New()
	p := makeParam(t, b, []float32{1.0, 2.0, 3.0})

	opt := optim.NewSGD([]*nn.Parameter[*cpu.CPUBackend]{p}, optim.SGDConfig{LearningRate: 0.1})
	opt.Step(gradMap(b, p, []float32{1.0, 1.0, 1.0}))

	want := []float32{0.9, 1.9, 2.9}
	for i, v := range p.Tensor().Data() {
		if !floatEqual(v, want[i]) {
			t.Errorf("param[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestSGDMomentum(t *testing.T) {
	b := cpu.New()
	p := makeParam(t, b, []float32{1.0})

	opt := optim.NewSGD([]*nn.Parameter[*cpu.CPUBackend]{p}, optim.SGDConfig{
		LearningRate: 0.1,
		Momentum:     0.9,
	})

	// First step: v = g = 1, param = 1 - 0.1*1 = 0.9.
	opt.Step(gradMap(b, p, []float32{1.0}))
	if !floatEqual(p.Tensor().Data()[0], 0.9) {
		t.Fatalf("after step 1: got %v, want 0.9", p.Tensor().Data()[0])
	}

	// Second step: v = 0.9*1 + 1 = 1.9, param = 0.9 - 0.19 = 0.71.
	opt.Step(gradMap(b, p, []float32{1.0}))
	if !floatEqual(p.Tensor().Data()[0], 0.71) {
		t.Fatalf("after step 2: got %v, want 0.71", p.Tensor().Data()[0])
	}
}

func TestSGDSkipsMissingGradient(t *testing.T) {
	b := cpu.New()
	p := makeParam(t, b, []float32{5.0})

	opt := optim.NewSGD([]*nn.Parameter[*cpu.CPUBackend]{p}, optim.SGDConfig{LearningRate: 0.1})
	opt.Step(map[*tensor.RawTensor]*tensor.RawTensor{})

	if !floatEqual(p.Tensor().Data()[0], 5.0) {
		t.Errorf("parameter changed without a gradient: %v", p.Tensor().Data()[0])
	}
}

func TestGetSetLR(t *testing.T) {
	b := cpu.New()
	p := makeParam(t, b, []float32{1.0})

	opt := optim.NewSGD([]*nn.Parameter[*cpu.CPUBackend]{p}, optim.SGDConfig{LearningRate: 0.1})
	if !floatEqual(float32(opt.GetLR()), 0.1) {
		t.Errorf("GetLR() = %v, want 0.1", opt.GetLR())
	}

	opt.SetLR(0.01)
	if !floatEqual(float32(opt.GetLR()), 0.01) {
		t.Errorf("after SetLR: GetLR() = %v, want 0.01", opt.GetLR())
	}
}

func TestAdamFirstStep(t *testing.T) {
	b := cpu.New()
	p := makeParam(t, b, []float32{1.0})

	opt := optim.NewAdam([]*nn.Parameter[*cpu.CPUBackend]{p}, optim.AdamConfig{LearningRate: 0.001})
	opt.Step(gradMap(b, p, []float32{0.5}))

	// With bias correction the first Adam step moves by ~lr regardless of
	// gradient magnitude.
	got := p.Tensor().Data()[0]
	if math.Abs(float64(got-(1.0-0.001))) > 1e-4 {
		t.Errorf("after first step: got %v, want ~0.999", got)
	}
}

func TestAdamConverges(t *testing.T) {
	b := cpu.New()
	p := makeParam(t, b, []float32{5.0})

	opt := optim.NewAdam([]*nn.Parameter[*cpu.CPUBackend]{p}, optim.AdamConfig{LearningRate: 0.1})

	// Minimize f(x) = x^2 with grad 2x.
	for i := 0; i < 500; i++ {
		x := p.Tensor().Data()[0]
		opt.Step(gradMap(b, p, []float32{2 * x}))
	}

	if x := p.Tensor().Data()[0]; math.Abs(float64(x)) > 0.01 {
		t.Errorf("did not converge toward 0, got %v", x)
	}
}

func TestGradientShapeMismatchPanics(t *testing.T) {
	b := cpu.New()
	p := makeParam(t, b, []float32{1.0, 2.0})

	bad, err := tensor.FromSlice([]float32{1.0}, tensor.Shape{1}, b)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	grads := map[*tensor.RawTensor]*tensor.RawTensor{p.Tensor().Raw(): bad.Raw()}

	defer func() {
		if recover() == nil {
			t.Error("expected panic on gradient shape mismatch")
		}
	}()
	opt := optim.NewSGD([]*nn.Parameter[*cpu.CPUBackend]{p}, optim.SGDConfig{LearningRate: 0.1})
	opt.Step(grads)
}
