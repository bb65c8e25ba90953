package cpu

import (
	"fmt"

	"github.com/trek-rl/trek/internal/tensor"
)

// Cast converts a tensor to a different element type. Converting to the same
// dtype returns a deep copy so callers can always mutate the result freely.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	if x.DType() == dtype {
		return x.Clone()
	}

	result := mustRaw(x.Shape(), dtype, cpu.device)
	n := x.NumElements()

	read := readerFor(x)
	switch dtype {
	case tensor.Float32:
		ov := result.AsFloat32()
		for i := 0; i < n; i++ {
			ov[i] = float32(read(i))
		}
	case tensor.Float64:
		ov := result.AsFloat64()
		for i := 0; i < n; i++ {
			ov[i] = read(i)
		}
	case tensor.Int32:
		ov := result.AsInt32()
		for i := 0; i < n; i++ {
			ov[i] = int32(read(i))
		}
	case tensor.Uint8:
		ov := result.AsUint8()
		for i := 0; i < n; i++ {
			ov[i] = uint8(read(i))
		}
	default:
		panic(fmt.Sprintf("cast: unsupported target dtype %s", dtype))
	}
	return result
}

func readerFor(x *tensor.RawTensor) func(int) float64 {
	switch x.DType() {
	case tensor.Float32:
		v := x.AsFloat32()
		return func(i int) float64 { return float64(v[i]) }
	case tensor.Float64:
		v := x.AsFloat64()
		return func(i int) float64 { return v[i] }
	case tensor.Int32:
		v := x.AsInt32()
		return func(i int) float64 { return float64(v[i]) }
	case tensor.Uint8:
		v := x.AsUint8()
		return func(i int) float64 { return float64(v[i]) }
	default:
		panic(fmt.Sprintf("cast: unsupported source dtype %s", x.DType()))
	}
}
