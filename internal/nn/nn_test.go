package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trek-rl/trek/internal/backend/cpu"
	"github.com/trek-rl/trek/internal/nn"
	"github.com/trek-rl/trek/internal/tensor"
)

func TestLinearForward(t *testing.T) {
	backend := cpu.New()
	layer := nn.NewLinear[*cpu.CPUBackend](3, 2, backend)

	// Overwrite the random init with known values.
	copy(layer.Weight().Tensor().Data(), []float32{
		1, 0,
		0, 1,
		1, 1,
	})
	copy(layer.Bias().Tensor().Data(), []float32{0.5, -0.5})

	x, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{1, 3}, backend)
	require.NoError(t, err)

	out := layer.Forward(x)
	assert.Equal(t, tensor.Shape{1, 2}, out.Shape())
	assert.InDelta(t, 4.5, out.Data()[0], 1e-6) // 1+3+0.5
	assert.InDelta(t, 4.5, out.Data()[1], 1e-6) // 2+3-0.5
}

func TestLinearInputValidation(t *testing.T) {
	backend := cpu.New()
	layer := nn.NewLinear[*cpu.CPUBackend](4, 2, backend)

	x, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{1, 3}, backend)
	require.NoError(t, err)

	assert.Panics(t, func() { layer.Forward(x) })
}

func TestSequentialForward(t *testing.T) {
	backend := cpu.New()
	model := nn.NewSequential[*cpu.CPUBackend](
		nn.NewLinear[*cpu.CPUBackend](2, 4, backend),
		nn.NewReLU[*cpu.CPUBackend](),
		nn.NewLinear[*cpu.CPUBackend](4, 3, backend),
	)

	x, err := tensor.FromSlice([]float32{0.5, -0.5}, tensor.Shape{1, 2}, backend)
	require.NoError(t, err)

	out := model.Forward(x)
	assert.Equal(t, tensor.Shape{1, 3}, out.Shape())

	// Two Linear layers contribute weight+bias each.
	assert.Len(t, model.Parameters(), 4)
}

func TestInitLayers(t *testing.T) {
	backend := cpu.New()
	model := nn.NewSequential[*cpu.CPUBackend](
		nn.NewLinear[*cpu.CPUBackend](16, 32, backend),
		nn.NewTanh[*cpu.CPUBackend](),
		nn.NewLinear[*cpu.CPUBackend](32, 8, backend),
	)

	// Poison the biases so we can see them reset.
	for _, m := range model.Modules() {
		if layer, ok := m.(*nn.Linear[*cpu.CPUBackend]); ok {
			data := layer.Bias().Tensor().Data()
			for i := range data {
				data[i] = 7
			}
		}
	}

	nn.InitLayers[*cpu.CPUBackend](model)

	for _, m := range model.Modules() {
		layer, ok := m.(*nn.Linear[*cpu.CPUBackend])
		if !ok {
			continue
		}
		for _, v := range layer.Bias().Tensor().Data() {
			assert.Zero(t, v)
		}

		// Weights should look like N(0, 0.1): small mean, bounded spread.
		var sum, sumSq float64
		weights := layer.Weight().Tensor().Data()
		for _, w := range weights {
			sum += float64(w)
			sumSq += float64(w) * float64(w)
		}
		n := float64(len(weights))
		mean := sum / n
		variance := sumSq/n - mean*mean
		assert.InDelta(t, 0.0, mean, 0.05)
		assert.InDelta(t, 0.01, variance, 0.005)
	}
}

func TestStateDictRoundTrip(t *testing.T) {
	backend := cpu.New()
	src := nn.NewLinear[*cpu.CPUBackend](3, 3, backend)
	dst := nn.NewLinear[*cpu.CPUBackend](3, 3, backend)

	state := nn.StateDict[*cpu.CPUBackend](src)
	require.Len(t, state, 2)

	nn.LoadStateDict[*cpu.CPUBackend](dst, state)

	assert.Equal(t, src.Weight().Tensor().Data(), dst.Weight().Tensor().Data())
	assert.Equal(t, src.Bias().Tensor().Data(), dst.Bias().Tensor().Data())
}

func TestParameterZeroGrad(t *testing.T) {
	backend := cpu.New()
	layer := nn.NewLinear[*cpu.CPUBackend](2, 2, backend)

	grad := tensor.Ones[float32](tensor.Shape{2, 2}, backend)
	layer.Weight().SetGrad(grad)
	require.NotNil(t, layer.Weight().Grad())

	layer.Weight().ZeroGrad()
	assert.Nil(t, layer.Weight().Grad())
}
