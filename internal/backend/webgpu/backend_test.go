package webgpu

import (
	"math"
	"testing"

	"github.com/xunzhang/dynet/internal/tensor"
)

func TestIsAvailable(t *testing.T) {
	available := IsAvailable()
	t.Logf("WebGPU available: %v", available)
	// Note: This test doesn't fail if WebGPU is unavailable
	// It just reports the status
}

func newBackendOrSkip(t *testing.T) *Backend {
	t.Helper()
	backend, err := New()
	if err != nil {
		t.Logf("WebGPU not available: %v", err)
		t.Skip("WebGPU not available on this system")
	}
	return backend
}

func TestNew(t *testing.T) {
	backend := newBackendOrSkip(t)
	defer backend.Release()

	if backend.Name() == "" {
		t.Error("Backend name should not be empty")
	}
	t.Logf("Backend name: %s", backend.Name())

	if backend.Device() != tensor.WebGPU {
		t.Errorf("Expected device WebGPU, got %v", backend.Device())
	}

	if info := backend.AdapterInfo(); info != nil {
		t.Logf("Using GPU: %s (%s)", info.Device, info.Vendor)
	}
}

func TestSgemmSmall(t *testing.T) {
	backend := newBackendOrSkip(t)
	defer backend.Release()

	// Column-major 2×2 product:
	//   | 1 3 |   | 5 7 |   | 23 31 |
	//   | 2 4 | x | 6 8 | = | 34 46 |
	a := []float32{1, 2, 3, 4}
	b := []float32{5, 6, 7, 8}
	c := make([]float32, 4)

	backend.Sgemm(false, false, 2, 2, 2, 1, a, 2, b, 2, 0, c, 2)

	want := []float32{23, 34, 31, 46}
	for i := range c {
		if math.Abs(float64(c[i]-want[i])) > 1e-5 {
			t.Errorf("element %d: got %v, want %v", i, c[i], want[i])
		}
	}
}

func TestSgemmAccumulate(t *testing.T) {
	backend := newBackendOrSkip(t)
	defer backend.Release()

	a := []float32{1, 0, 0, 1} // identity
	b := []float32{1, 2, 3, 4}
	c := []float32{10, 20, 30, 40}

	// beta = 1 adds the product into prior contents.
	backend.Sgemm(false, false, 2, 2, 2, 1, a, 2, b, 2, 1, c, 2)

	want := []float32{11, 22, 33, 44}
	for i := range c {
		if math.Abs(float64(c[i]-want[i])) > 1e-5 {
			t.Errorf("element %d: got %v, want %v", i, c[i], want[i])
		}
	}
}

func TestSgemmTransposed(t *testing.T) {
	backend := newBackendOrSkip(t)
	defer backend.Release()

	// a stored 3×2, used transposed: op(a) is 2×3.
	a := []float32{1, 2, 3, 4, 5, 6}
	// b stored 3×1.
	b := []float32{1, 1, 1}
	c := make([]float32, 2)

	backend.Sgemm(true, false, 2, 1, 3, 1, a, 3, b, 3, 0, c, 2)

	// Row i of aᵗ is column i of a.
	want := []float32{1 + 2 + 3, 4 + 5 + 6}
	for i := range c {
		if math.Abs(float64(c[i]-want[i])) > 1e-5 {
			t.Errorf("element %d: got %v, want %v", i, c[i], want[i])
		}
	}
}

func TestDgemmPanics(t *testing.T) {
	backend := newBackendOrSkip(t)
	defer backend.Release()

	defer func() {
		if recover() == nil {
			t.Error("expected panic: webgpu has no float64 support")
		}
	}()
	backend.Dgemm(false, false, 1, 1, 1, 1, []float64{1}, 1, []float64{1}, 1, 0, []float64{0}, 1)
}
