package cpu

import (
	"fmt"

	"github.com/trek-rl/trek/internal/parallel"
	"github.com/trek-rl/trek/internal/tensor"
)

// MatMul performs 2D matrix multiplication: [M, K] @ [K, N] -> [M, N].
// Rows of the output are computed in parallel.
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	as, bs := a.Shape(), b.Shape()
	if len(as) != 2 || len(bs) != 2 {
		panic(fmt.Sprintf("matmul: expected 2D tensors, got %v @ %v", as, bs))
	}
	if as[1] != bs[0] {
		panic(fmt.Sprintf("matmul: inner dimensions do not match: %v @ %v", as, bs))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("matmul: dtype mismatch %s vs %s", a.DType(), b.DType()))
	}

	m, k, n := as[0], as[1], bs[1]
	result := mustRaw(tensor.Shape{m, n}, a.DType(), cpu.device)

	switch a.DType() {
	case tensor.Float32:
		av, bv, ov := a.AsFloat32(), b.AsFloat32(), result.AsFloat32()
		parallel.For(m, func(i int) {
			for p := 0; p < k; p++ {
				aip := av[i*k+p]
				if aip == 0 {
					continue
				}
				row := bv[p*n : (p+1)*n]
				out := ov[i*n : (i+1)*n]
				for j := range row {
					out[j] += aip * row[j]
				}
			}
		}, cpu.parallel)
	case tensor.Float64:
		av, bv, ov := a.AsFloat64(), b.AsFloat64(), result.AsFloat64()
		parallel.For(m, func(i int) {
			for p := 0; p < k; p++ {
				aip := av[i*k+p]
				if aip == 0 {
					continue
				}
				row := bv[p*n : (p+1)*n]
				out := ov[i*n : (i+1)*n]
				for j := range row {
					out[j] += aip * row[j]
				}
			}
		}, cpu.parallel)
	default:
		panic(fmt.Sprintf("matmul: unsupported dtype %s", a.DType()))
	}
	return result
}
