package metrics_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trek-rl/trek/internal/backend/cpu"
	"github.com/trek-rl/trek/internal/metrics"
	"github.com/trek-rl/trek/internal/nn"
	"github.com/trek-rl/trek/internal/tensor"
)

func TestRunningAverage(t *testing.T) {
	got := metrics.RunningAverage([]float64{1, 2, 3, 4, 5}, 3)
	require.Len(t, got, 3)
	assert.InDelta(t, 2.0, got[0], 1e-9)
	assert.InDelta(t, 3.0, got[1], 1e-9)
	assert.InDelta(t, 4.0, got[2], 1e-9)
}

func TestRunningAverageShortInput(t *testing.T) {
	assert.Nil(t, metrics.RunningAverage([]float64{1, 2}, 3))
	assert.Nil(t, metrics.RunningAverage(nil, 1))
	assert.Nil(t, metrics.RunningAverage([]float64{1}, 0))
}

func TestRunningAverageWindowOne(t *testing.T) {
	xs := []float64{3, 1, 4}
	assert.Equal(t, xs, metrics.RunningAverage(xs, 1))
}

func TestEpochLoss(t *testing.T) {
	b := cpu.New()

	// Identity-ish model: a single pass-through check is all we need,
	// so use a Sequential with no layers.
	model := nn.NewSequential[*cpu.CPUBackend]()

	batch1, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, b)
	require.NoError(t, err)
	batch2, err := tensor.FromSlice([]float32{5, 6}, tensor.Shape{1, 2}, b)
	require.NoError(t, err)

	// Summed squared values as the per-batch loss.
	lossFn := func(out, _ *tensor.Tensor[float32, *cpu.CPUBackend]) float64 {
		var sum float64
		for _, v := range out.Data() {
			sum += float64(v) * float64(v)
		}
		return sum
	}

	got := metrics.EpochLoss[*cpu.CPUBackend](model, []*tensor.Tensor[float32, *cpu.CPUBackend]{batch1, batch2}, lossFn)

	// (1+4+9+16+25+36) / 3 samples.
	assert.InDelta(t, 91.0/3.0, got, 1e-9)
}

func TestEpochLossNoBatches(t *testing.T) {
	model := nn.NewSequential[*cpu.CPUBackend]()
	assert.Zero(t, metrics.EpochLoss[*cpu.CPUBackend](model, nil, nil))
}

func TestLossPlotSave(t *testing.T) {
	losses := make([]float64, 250)
	for i := range losses {
		losses[i] = 1.0 / float64(i+1)
	}

	path := filepath.Join(t.TempDir(), "loss.png")
	err := metrics.LossPlot{Losses: losses, Epochs: 5, Window: 20, Label: "test"}.Save(path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestLossPlotEmpty(t *testing.T) {
	err := metrics.LossPlot{}.Save(filepath.Join(t.TempDir(), "loss.png"))
	assert.Error(t, err)
}
