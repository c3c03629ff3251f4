package matmul

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xunzhang/dynet/internal/backend/cpu"
	"github.com/xunzhang/dynet/internal/tensor"
)

// randTensor creates a Float32 tensor filled with deterministic pseudo-random
// values in [-1, 1).
func randTensor(t *testing.T, rng *rand.Rand, dim tensor.Dim) *tensor.Tensor {
	t.Helper()
	x, err := tensor.New(dim, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	data := x.AsFloat32()
	for i := range data {
		data[i] = rng.Float32()*2 - 1
	}
	return x
}

// refMul returns op(a)·op(b) as a column-major slice, computed naively.
func refMul(a, b tensor.Matrix[float32], transA, transB bool) []float32 {
	m, k := a.Rows, a.Cols
	if transA {
		m, k = a.Cols, a.Rows
	}
	n := b.Cols
	if transB {
		n = b.Rows
	}
	at := func(i, l int) float32 {
		if transA {
			return a.At(l, i)
		}
		return a.At(i, l)
	}
	bt := func(l, j int) float32 {
		if transB {
			return b.At(j, l)
		}
		return b.At(l, j)
	}
	out := make([]float32, m*n)
	for j := 0; j < n; j++ {
		for i := 0; i < m; i++ {
			var sum float32
			for l := 0; l < k; l++ {
				sum += at(i, l) * bt(l, j)
			}
			out[j*m+i] = sum
		}
	}
	return out
}

func requireClose(t *testing.T, want, got []float32, tol float64) {
	t.Helper()
	require.Equal(t, len(want), len(got))
	for i := range want {
		require.InDeltaf(t, float64(want[i]), float64(got[i]), tol, "element %d", i)
	}
}

// Forward: L 2×3 batch 1, R 3×4 batch 5, Y 2×4 batch 5, alpha 0. The wide
// path must match per-element products against each batch slice of R.
func TestMatrixMultiplyBroadcastLeft(t *testing.T) {
	backend := cpu.New()
	rng := rand.New(rand.NewSource(1))

	l := randTensor(t, rng, tensor.D2(2, 3))
	r := randTensor(t, rng, tensor.D3(3, 4, 5))
	y := randTensor(t, rng, tensor.D3(2, 4, 5))

	MatrixMultiply(backend, l, r, y, 0)

	for b := 0; b < 5; b++ {
		want := refMul(tensor.BatchMatrix[float32](l, 0), tensor.BatchMatrix[float32](r, b), false, false)
		requireClose(t, want, tensor.BatchMatrix[float32](y, b).Data, 1e-5)
	}
}

// Forward with matching nontrivial batch counts takes the looped path.
func TestMatrixMultiplyLoopPath(t *testing.T) {
	backend := cpu.New()
	rng := rand.New(rand.NewSource(2))

	l := randTensor(t, rng, tensor.D3(3, 2, 4))
	r := randTensor(t, rng, tensor.D3(2, 5, 4))
	y := randTensor(t, rng, tensor.D3(3, 5, 4))

	MatrixMultiply(backend, l, r, y, 0)

	for b := 0; b < 4; b++ {
		want := refMul(tensor.BatchMatrix[float32](l, b), tensor.BatchMatrix[float32](r, b), false, false)
		requireClose(t, want, tensor.BatchMatrix[float32](y, b).Data, 1e-5)
	}
}

// alpha scales y's prior contents before the product is added.
func TestMatrixMultiplyScaledAccumulate(t *testing.T) {
	backend := cpu.New()
	rng := rand.New(rand.NewSource(3))

	l := randTensor(t, rng, tensor.D2(2, 2))
	r := randTensor(t, rng, tensor.D3(2, 3, 2))
	y := randTensor(t, rng, tensor.D3(2, 3, 2))
	prior := append([]float32(nil), y.AsFloat32()...)

	MatrixMultiply(backend, l, r, y, 0.5)

	got := y.AsFloat32()
	for b := 0; b < 2; b++ {
		product := refMul(tensor.BatchMatrix[float32](l, 0), tensor.BatchMatrix[float32](r, b), false, false)
		for i, p := range product {
			idx := b*6 + i
			require.InDelta(t, float64(0.5*prior[idx]+p), float64(got[idx]), 1e-5)
		}
	}
}

// alpha = 0 on arbitrary prior data equals zeroing y and calling with
// alpha = 1.
func TestMatrixMultiplyAlphaZeroOverwrites(t *testing.T) {
	backend := cpu.New()
	rng := rand.New(rand.NewSource(4))

	l := randTensor(t, rng, tensor.D2(3, 3))
	r := randTensor(t, rng, tensor.D3(3, 2, 3))

	dirty := randTensor(t, rng, tensor.D3(3, 2, 3))
	dirty.AsFloat32()[0] = float32(math.NaN())
	dirty.AsFloat32()[5] = float32(math.Inf(1))

	clean, err := tensor.New(tensor.D3(3, 2, 3), tensor.Float32, tensor.CPU)
	require.NoError(t, err)

	MatrixMultiply(backend, l, r, dirty, 0)
	MatrixMultiply(backend, l, r, clean, 1)

	requireClose(t, clean.AsFloat32(), dirty.AsFloat32(), 1e-6)
}

// Left-transpose accumulate, wide path: shared l transposed against a
// batched gradient.
func TestTransposeMultiplyAccumulateWide(t *testing.T) {
	backend := cpu.New()
	rng := rand.New(rand.NewSource(5))

	l := randTensor(t, rng, tensor.D2(4, 3))
	r := randTensor(t, rng, tensor.D3(4, 2, 3))
	y := randTensor(t, rng, tensor.D3(3, 2, 3))
	prior := append([]float32(nil), y.AsFloat32()...)

	MatrixTransposeMultiplyAccumulate(backend, l, r, y)

	got := y.AsFloat32()
	for b := 0; b < 3; b++ {
		product := refMul(tensor.BatchMatrix[float32](l, 0), tensor.BatchMatrix[float32](r, b), true, false)
		for i, p := range product {
			idx := b*6 + i
			require.InDelta(t, float64(prior[idx]+p), float64(got[idx]), 1e-5)
		}
	}
}

// Left-transpose accumulate, looped path with all batch counts equal.
func TestTransposeMultiplyAccumulateLoop(t *testing.T) {
	backend := cpu.New()
	rng := rand.New(rand.NewSource(6))

	l := randTensor(t, rng, tensor.D3(4, 3, 2))
	r := randTensor(t, rng, tensor.D3(4, 2, 2))
	y := randTensor(t, rng, tensor.D3(3, 2, 2))
	prior := append([]float32(nil), y.AsFloat32()...)

	MatrixTransposeMultiplyAccumulate(backend, l, r, y)

	got := y.AsFloat32()
	for b := 0; b < 2; b++ {
		product := refMul(tensor.BatchMatrix[float32](l, b), tensor.BatchMatrix[float32](r, b), true, false)
		for i, p := range product {
			idx := b*6 + i
			require.InDelta(t, float64(prior[idx]+p), float64(got[idx]), 1e-5)
		}
	}
}

// Left-transpose accumulate into a single y slot: both operands batched, y
// batch 1. The looped path reuses the one y slice at every index, so the
// per-batch products sum.
func TestTransposeMultiplyAccumulateBatchSumIntoOneSlot(t *testing.T) {
	backend := cpu.New()
	rng := rand.New(rand.NewSource(7))

	l := randTensor(t, rng, tensor.D3(3, 4, 2))
	r := randTensor(t, rng, tensor.D3(3, 1, 2))
	y := randTensor(t, rng, tensor.D2(4, 1))
	want := append([]float32(nil), y.AsFloat32()...)

	MatrixTransposeMultiplyAccumulate(backend, l, r, y)

	for b := 0; b < 2; b++ {
		product := refMul(tensor.BatchMatrix[float32](l, b), tensor.BatchMatrix[float32](r, b), true, false)
		for i, p := range product {
			want[i] += p
		}
	}
	requireClose(t, want, y.AsFloat32(), 1e-5)
}

// Right-transpose accumulate, batch-summed wide path: equal batch counts on
// l and r, y batch 1. The result is the sum over b of l[b]·rᵗ[b] added to
// y's prior contents.
func TestMultiplyTransposeAccumulateBatchSum(t *testing.T) {
	backend := cpu.New()
	rng := rand.New(rand.NewSource(8))

	l := randTensor(t, rng, tensor.D3(4, 3, 2))
	r := randTensor(t, rng, tensor.D3(1, 3, 2))
	y := randTensor(t, rng, tensor.D2(4, 1))
	want := append([]float32(nil), y.AsFloat32()...)

	MatrixMultiplyTransposeAccumulate(backend, l, r, y)

	for b := 0; b < 2; b++ {
		product := refMul(tensor.BatchMatrix[float32](l, b), tensor.BatchMatrix[float32](r, b), false, true)
		for i, p := range product {
			want[i] += p
		}
	}
	requireClose(t, want, y.AsFloat32(), 1e-5)
}

// Right-transpose accumulate, looped path with a batched output.
func TestMultiplyTransposeAccumulateLoop(t *testing.T) {
	backend := cpu.New()
	rng := rand.New(rand.NewSource(9))

	l := randTensor(t, rng, tensor.D3(2, 3, 3))
	r := randTensor(t, rng, tensor.D3(4, 3, 3))
	y := randTensor(t, rng, tensor.D3(2, 4, 3))
	prior := append([]float32(nil), y.AsFloat32()...)

	MatrixMultiplyTransposeAccumulate(backend, l, r, y)

	got := y.AsFloat32()
	for b := 0; b < 3; b++ {
		product := refMul(tensor.BatchMatrix[float32](l, b), tensor.BatchMatrix[float32](r, b), false, true)
		for i, p := range product {
			idx := b*8 + i
			require.InDelta(t, float64(prior[idx]+p), float64(got[idx]), 1e-5)
		}
	}
}

// Right-transpose accumulate with a broadcast r: l batched, r batch 1. The
// loop reuses r at every index.
func TestMultiplyTransposeAccumulateBroadcastRight(t *testing.T) {
	backend := cpu.New()
	rng := rand.New(rand.NewSource(10))

	l := randTensor(t, rng, tensor.D3(2, 3, 4))
	r := randTensor(t, rng, tensor.D2(5, 3))
	y := randTensor(t, rng, tensor.D3(2, 5, 4))
	prior := append([]float32(nil), y.AsFloat32()...)

	MatrixMultiplyTransposeAccumulate(backend, l, r, y)

	got := y.AsFloat32()
	for b := 0; b < 4; b++ {
		product := refMul(tensor.BatchMatrix[float32](l, b), tensor.BatchMatrix[float32](r, 0), false, true)
		for i, p := range product {
			idx := b*10 + i
			require.InDelta(t, float64(prior[idx]+p), float64(got[idx]), 1e-5)
		}
	}
}

// The two accumulate variants are each other's adjoint: for l (p×q),
// r (p×s), y (q×s), the inner-product identity ⟨lᵗ·r, y⟩ == ⟨l, r·yᵗ⟩
// must hold, validating gradient correctness.
func TestAccumulateVariantsAreAdjoint(t *testing.T) {
	backend := cpu.New()
	rng := rand.New(rand.NewSource(11))

	const p, q, s = 5, 3, 4
	l := randTensor(t, rng, tensor.D2(p, q))
	r := randTensor(t, rng, tensor.D2(p, s))
	y := randTensor(t, rng, tensor.D2(q, s))

	left, err := tensor.New(tensor.D2(q, s), tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	MatrixTransposeMultiplyAccumulate(backend, l, r, left) // lᵗ·r

	right, err := tensor.New(tensor.D2(p, q), tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	MatrixMultiplyTransposeAccumulate(backend, r, y, right) // r·yᵗ

	var lhs, rhs float64
	for i, v := range left.AsFloat32() {
		lhs += float64(v) * float64(y.AsFloat32()[i])
	}
	for i, v := range right.AsFloat32() {
		rhs += float64(v) * float64(l.AsFloat32()[i])
	}
	require.InDelta(t, lhs, rhs, 1e-4)
}

// Float64 runs through the same dispatch with the Dgemm binding.
func TestMatrixMultiplyFloat64(t *testing.T) {
	backend := cpu.New()

	l, err := tensor.FromFloat64(tensor.D2(2, 2), []float64{1, 2, 3, 4}, tensor.CPU)
	require.NoError(t, err)
	r, err := tensor.FromFloat64(tensor.D3(2, 1, 2), []float64{1, 1, 2, 0}, tensor.CPU)
	require.NoError(t, err)
	y, err := tensor.New(tensor.D3(2, 1, 2), tensor.Float64, tensor.CPU)
	require.NoError(t, err)

	MatrixMultiply(backend, l, r, y, 0)

	// Column-major l is [[1,3],[2,4]]; r[0] = (1,1), r[1] = (2,0).
	want := []float64{4, 6, 2, 4}
	got := y.AsFloat64()
	for i := range want {
		require.InDelta(t, want[i], got[i], 1e-12)
	}
}
