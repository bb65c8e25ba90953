package optim

import (
	"github.com/trek-rl/trek/internal/nn"
	"github.com/trek-rl/trek/internal/tensor"
)

// SGD implements stochastic gradient descent with optional momentum
// and weight decay.
type SGD[B tensor.Backend] struct {
	params      []*nn.Parameter[B]
	lr          float64
	momentum    float64
	weightDecay float64
	velocity    map[*tensor.RawTensor][]float32
}

// SGDConfig holds SGD hyperparameters.
type SGDConfig struct {
	LearningRate float64
	Momentum     float64
	WeightDecay  float64
}

// NewSGD creates an SGD optimizer over the given parameters.
func NewSGD[B tensor.Backend](params []*nn.Parameter[B], cfg SGDConfig) *SGD[B] {
	return &SGD[B]{
		params:      params,
		lr:          cfg.LearningRate,
		momentum:    cfg.Momentum,
		weightDecay: cfg.WeightDecay,
		velocity:    make(map[*tensor.RawTensor][]float32),
	}
}

func (s *SGD[B]) Step(grads map[*tensor.RawTensor]*tensor.RawTensor) {
	for _, p := range s.params {
		grad := gradFor(grads, p.Tensor())
		if grad == nil {
			continue
		}
		data := p.Tensor().Data()

		if s.momentum > 0 {
			vel, ok := s.velocity[p.Tensor().Raw()]
			if !ok {
				vel = make([]float32, len(data))
				s.velocity[p.Tensor().Raw()] = vel
			}
			for i := range data {
				g := grad[i] + float32(s.weightDecay)*data[i]
				vel[i] = float32(s.momentum)*vel[i] + g
				data[i] -= float32(s.lr) * vel[i]
			}
			continue
		}

		for i := range data {
			g := grad[i] + float32(s.weightDecay)*data[i]
			data[i] -= float32(s.lr) * g
		}
	}
}

// ZeroGrad clears the gradient slot of every managed parameter.
func (s *SGD[B]) ZeroGrad() {
	for _, p := range s.params {
		p.ZeroGrad()
	}
}

// GetLR returns the current learning rate.
func (s *SGD[B]) GetLR() float64 { return s.lr }

// SetLR updates the learning rate.
func (s *SGD[B]) SetLR(lr float64) { s.lr = lr }
