package optim

import (
	"math"

	"github.com/trek-rl/trek/internal/nn"
	"github.com/trek-rl/trek/internal/tensor"
)

// Adam implements the Adam optimizer (Kingma & Ba, 2015) with
// bias-corrected first and second moment estimates.
type Adam[B tensor.Backend] struct {
	params []*nn.Parameter[B]
	lr     float64
	beta1  float64
	beta2  float64
	eps    float64

	step int
	m    map[*tensor.RawTensor][]float32
	v    map[*tensor.RawTensor][]float32
}

// AdamConfig holds Adam hyperparameters. Zero values for Beta1, Beta2
// and Epsilon select the standard defaults (0.9, 0.999, 1e-8).
type AdamConfig struct {
	LearningRate float64
	Beta1        float64
	Beta2        float64
	Epsilon      float64
}

// NewAdam creates an Adam optimizer over the given parameters.
func NewAdam[B tensor.Backend](params []*nn.Parameter[B], cfg AdamConfig) *Adam[B] {
	if cfg.Beta1 == 0 {
		cfg.Beta1 = 0.9
	}
	if cfg.Beta2 == 0 {
		cfg.Beta2 = 0.999
	}
	if cfg.Epsilon == 0 {
		cfg.Epsilon = 1e-8
	}
	return &Adam[B]{
		params: params,
		lr:     cfg.LearningRate,
		beta1:  cfg.Beta1,
		beta2:  cfg.Beta2,
		eps:    cfg.Epsilon,
		m:      make(map[*tensor.RawTensor][]float32),
		v:      make(map[*tensor.RawTensor][]float32),
	}
}

func (a *Adam[B]) Step(grads map[*tensor.RawTensor]*tensor.RawTensor) {
	a.step++
	bc1 := 1.0 - math.Pow(a.beta1, float64(a.step))
	bc2 := 1.0 - math.Pow(a.beta2, float64(a.step))

	for _, p := range a.params {
		grad := gradFor(grads, p.Tensor())
		if grad == nil {
			continue
		}
		data := p.Tensor().Data()
		key := p.Tensor().Raw()

		m, ok := a.m[key]
		if !ok {
			m = make([]float32, len(data))
			a.m[key] = m
		}
		v, ok := a.v[key]
		if !ok {
			v = make([]float32, len(data))
			a.v[key] = v
		}

		for i := range data {
			g := float64(grad[i])
			mi := a.beta1*float64(m[i]) + (1-a.beta1)*g
			vi := a.beta2*float64(v[i]) + (1-a.beta2)*g*g
			m[i] = float32(mi)
			v[i] = float32(vi)

			mHat := mi / bc1
			vHat := vi / bc2
			data[i] -= float32(a.lr * mHat / (math.Sqrt(vHat) + a.eps))
		}
	}
}

// ZeroGrad clears the gradient slot of every managed parameter.
func (a *Adam[B]) ZeroGrad() {
	for _, p := range a.params {
		p.ZeroGrad()
	}
}

// GetLR returns the current learning rate.
func (a *Adam[B]) GetLR() float64 { return a.lr }

// SetLR updates the learning rate.
func (a *Adam[B]) SetLR(lr float64) { a.lr = lr }
