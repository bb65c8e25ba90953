package a3c_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trek-rl/trek/internal/a3c"
	"github.com/trek-rl/trek/internal/autodiff"
	"github.com/trek-rl/trek/internal/backend/cpu"
	"github.com/trek-rl/trek/internal/nn"
	"github.com/trek-rl/trek/internal/optim"
	"github.com/trek-rl/trek/internal/tensor"
)

func TestReturnsBackwardRecurrence(t *testing.T) {
	rewards := []float32{1, 0, 0, 1}
	gamma := float32(0.9)

	got := a3c.Returns(rewards, gamma, 0)

	// Hand-unrolled recurrence.
	want := make([]float32, len(rewards))
	value := float32(0)
	for i := len(rewards) - 1; i >= 0; i-- {
		value = rewards[i] + gamma*value
		want[i] = value
	}
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-6, "index %d", i)
	}
}

func TestReturnsBootstrap(t *testing.T) {
	got := a3c.Returns([]float32{1}, 0.5, 10)
	assert.InDelta(t, 6.0, got[0], 1e-6) // 1 + 0.5*10
}

func TestReturnsEmpty(t *testing.T) {
	assert.Empty(t, a3c.Returns(nil, 0.9, 0))
}

func TestCheckpointName(t *testing.T) {
	tests := []struct {
		name string
		c    a3c.Checkpoint
		want string
	}{
		{
			name: "encoder",
			c:    a3c.Checkpoint{Model: "Encoder", InputSize: 4, MaxEpisodes: 100},
			want: "A3C&Encoder4-1_ep100",
		},
		{
			name: "encoder with steps",
			c:    a3c.Checkpoint{Model: "Encoder", InputSize: 4, MaxEpisodes: 100, TaskSteps: 7},
			want: "A3C&Encoder4-1_7N_ep100",
		},
		{
			name: "plain model",
			c:    a3c.Checkpoint{Model: "Navigator", InputSize: 8, MaxEpisodes: 50},
			want: "A3C_Navigator8-1_ep50",
		},
		{
			name: "plain model with prefix and steps",
			c:    a3c.Checkpoint{Prefix: "run1_", Model: "Navigator", InputSize: 8, MaxEpisodes: 50, TaskSteps: 3},
			want: "run1_A3C_Navigator8-1_recon_3N_ep50",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a3c.CheckpointName(tt.c))
		})
	}
}

func TestSPL(t *testing.T) {
	assert.Zero(t, a3c.SPL(false, 5, 10))
	assert.InDelta(t, 0.5, a3c.SPL(true, 5, 10), 1e-9)
	assert.InDelta(t, 1.0, a3c.SPL(true, 5, 3), 1e-9) // taken shorter than shortest caps at 1
	assert.Zero(t, a3c.SPL(true, 0, 10))
}

func TestResultSlice(t *testing.T) {
	r := a3c.Result{Reward: 2.5, Success: true, SPL: 0.8}
	assert.Equal(t, [3]float64{2.5, 1, 0.8}, r.Slice())

	r.Success = false
	assert.Equal(t, [3]float64{2.5, 0, 0.8}, r.Slice())
}

func TestResultSinkPushDrain(t *testing.T) {
	sink := a3c.NewResultSink(4, zerolog.Nop())

	sink.Push(a3c.Result{Reward: 1, Success: true, SPL: 0.9})
	sink.Push(a3c.Result{Reward: -1, Success: false, SPL: 0})

	results := sink.Drain()
	require.Len(t, results, 2)
	assert.Equal(t, 1.0, results[0].Reward)
	assert.False(t, results[1].Success)

	// Drain after close is safe and empty.
	assert.Empty(t, sink.Drain())
}

func TestSyncStep(t *testing.T) {
	b := cpu.New()

	newParams := func(values []float32) []*nn.Parameter[*cpu.CPUBackend] {
		ten, err := tensor.FromSlice(values, tensor.Shape{len(values)}, b)
		require.NoError(t, err)
		return []*nn.Parameter[*cpu.CPUBackend]{nn.NewParameter("w", ten)}
	}

	local := newParams([]float32{0, 0})
	global := newParams([]float32{1, 2})

	opt := optim.NewSGD(global, optim.SGDConfig{LearningRate: 0.1})

	grad, err := tensor.FromSlice([]float32{1, 1}, tensor.Shape{2}, b)
	require.NoError(t, err)
	grads := map[*tensor.RawTensor]*tensor.RawTensor{
		local[0].Tensor().Raw(): grad.Raw(),
	}

	a3c.SyncStep[*cpu.CPUBackend](opt, local, global, grads)

	// Global stepped by -lr*grad, local pulled the result.
	assert.InDelta(t, 0.9, global[0].Tensor().Data()[0], 1e-6)
	assert.InDelta(t, 1.9, global[0].Tensor().Data()[1], 1e-6)
	assert.Equal(t, global[0].Tensor().Data(), local[0].Tensor().Data())
}

func TestSyncStepCountMismatchPanics(t *testing.T) {
	b := cpu.New()
	ten, err := tensor.FromSlice([]float32{1}, tensor.Shape{1}, b)
	require.NoError(t, err)
	p := []*nn.Parameter[*cpu.CPUBackend]{nn.NewParameter("w", ten)}
	opt := optim.NewSGD(p, optim.SGDConfig{LearningRate: 0.1})

	assert.Panics(t, func() {
		a3c.SyncStep[*cpu.CPUBackend](opt, p, nil, nil)
	})
}

func TestActorCriticLossGradients(t *testing.T) {
	backend := autodiff.New(cpu.New())
	type B = *autodiff.Backend[*cpu.CPUBackend]

	logits, err := tensor.FromSlice([]float32{
		0.5, -0.5,
		0.1, 0.2,
		-1.0, 1.0,
	}, tensor.Shape{3, 2}, backend)
	require.NoError(t, err)

	values, err := tensor.FromSlice([]float32{0.1, 0.2, 0.3}, tensor.Shape{3, 1}, backend)
	require.NoError(t, err)

	actions, err := tensor.FromSlice([]int32{0, 1, 1}, tensor.Shape{3, 1}, backend)
	require.NoError(t, err)

	rets := a3c.Returns([]float32{1, 0, 1}, 0.9, 0)
	returns, err := tensor.FromSlice(rets, tensor.Shape{3, 1}, backend)
	require.NoError(t, err)

	backend.Tape().StartRecording()
	loss := a3c.ActorCriticLoss[B](logits, values, actions, returns, a3c.LossConfig{})
	require.Equal(t, tensor.Shape{1}, loss.Shape())

	grads := autodiff.Backward(loss, backend)

	logitGrad, ok := grads[logits.Raw()]
	require.True(t, ok, "no gradient for logits")
	assert.True(t, logitGrad.Shape().Equal(logits.Shape()))

	valueGrad, ok := grads[values.Raw()]
	require.True(t, ok, "no gradient for values")
	assert.True(t, valueGrad.Shape().Equal(values.Shape()))

	// Value gradient of 0.5*mean((R-V)^2) is -(R-V)/T.
	for i, v := range valueGrad.AsFloat32() {
		want := -(rets[i] - values.Data()[i]) / 3
		assert.InDelta(t, want, v, 1e-5, "value grad %d", i)
	}
}
