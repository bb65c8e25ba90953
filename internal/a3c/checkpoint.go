package a3c

import "fmt"

// Checkpoint describes the model a checkpoint filename is generated
// for. TaskSteps <= 0 means the self-adjusted step count is unset.
type Checkpoint struct {
	Prefix      string
	Model       string
	InputSize   int
	MaxEpisodes int
	TaskSteps   int
}

// CheckpointName generates the deterministic checkpoint filename for a
// model. Encoder models use the "A3C&" template; every other model uses
// the "A3C_" template with an optional prefix and a "_recon" marker when
// a step count is set.
func CheckpointName(c Checkpoint) string {
	if c.Model == "Encoder" {
		name := fmt.Sprintf("A3C&%s%d-1", c.Model, c.InputSize)
		if c.TaskSteps > 0 {
			return fmt.Sprintf("%s_%dN_ep%d", name, c.TaskSteps, c.MaxEpisodes)
		}
		return fmt.Sprintf("%s_ep%d", name, c.MaxEpisodes)
	}

	name := fmt.Sprintf("%sA3C_%s%d-1", c.Prefix, c.Model, c.InputSize)
	if c.TaskSteps > 0 {
		return fmt.Sprintf("%s_recon_%dN_ep%d", name, c.TaskSteps, c.MaxEpisodes)
	}
	return fmt.Sprintf("%s_ep%d", name, c.MaxEpisodes)
}
