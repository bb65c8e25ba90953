// Package cpu implements the pure-Go CPU backend.
package cpu

import (
	"github.com/trek-rl/trek/internal/parallel"
	"github.com/trek-rl/trek/internal/tensor"
)

// CPUBackend implements tensor.Backend on the host CPU.
type CPUBackend struct {
	device   tensor.Device
	parallel parallel.Config
}

// New creates a new CPU backend with the default parallel configuration.
func New() *CPUBackend {
	return &CPUBackend{
		device:   tensor.CPU,
		parallel: parallel.DefaultConfig(),
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

func mustRaw(shape tensor.Shape, dtype tensor.DataType, device tensor.Device) *tensor.RawTensor {
	raw, err := tensor.NewRaw(shape, dtype, device)
	if err != nil {
		panic(err)
	}
	return raw
}
