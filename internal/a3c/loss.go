package a3c

import (
	"fmt"

	"github.com/trek-rl/trek/internal/tensor"
)

// LossConfig weights the components of the actor-critic loss. Zero
// values select the usual defaults (0.5 value weight, 0.01 entropy).
type LossConfig struct {
	ValueWeight float32
	EntropyBeta float32
}

// ActorCriticLoss computes the combined A3C objective
//
//	policy + w_v * value - beta * entropy
//
// from action logits [T, numActions], value estimates [T, 1], taken
// actions [T, 1] and discounted returns [T, 1]. The advantage used by
// the policy term is detached so policy gradients do not flow into the
// value head. Run it against an autodiff backend to obtain gradients.
func ActorCriticLoss[B tensor.Backend](
	logits *tensor.Tensor[float32, B],
	values *tensor.Tensor[float32, B],
	actions *tensor.Tensor[int32, B],
	returns *tensor.Tensor[float32, B],
	cfg LossConfig,
) *tensor.Tensor[float32, B] {
	if cfg.ValueWeight == 0 {
		cfg.ValueWeight = 0.5
	}
	if cfg.EntropyBeta == 0 {
		cfg.EntropyBeta = 0.01
	}

	steps := logits.Shape()[0]
	if values.Shape()[0] != steps || returns.Shape()[0] != steps || actions.Shape()[0] != steps {
		panic(fmt.Sprintf("a3c: step-count mismatch: logits %v, values %v, actions %v, returns %v",
			logits.Shape(), values.Shape(), actions.Shape(), returns.Shape()))
	}

	probs := logits.Softmax(1)
	logProbs := probs.Log()
	chosen := logProbs.Gather(1, actions)

	// Detached advantage: built from raw values so no op is recorded
	// between it and the value head.
	advantage := tensor.Zeros[float32](returns.Shape(), returns.Backend())
	retData := returns.Data()
	valData := values.Data()
	advData := advantage.Data()
	for i := range advData {
		advData[i] = retData[i] - valData[i]
	}

	policyLoss := chosen.Mul(advantage).Mean().MulScalar(-1)

	td := returns.Sub(values)
	valueLoss := td.Mul(td).Mean().MulScalar(cfg.ValueWeight)

	// sum(p*log p) is negative entropy, so adding it penalizes
	// low-entropy policies.
	negEntropy := probs.Mul(logProbs).Sum().
		DivScalar(float32(steps)).
		MulScalar(cfg.EntropyBeta)

	return policyLoss.Add(valueLoss).Add(negEntropy)
}
