// Command gemmbench times batched matrix multiplication on a chosen backend
// and reports throughput.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	cpubackend "github.com/xunzhang/dynet/backend/cpu"
	gpubackend "github.com/xunzhang/dynet/backend/webgpu"
	"github.com/xunzhang/dynet/matmul"
	"github.com/xunzhang/dynet/tensor"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "gemmbench:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		rows        = flag.Int("rows", 256, "output rows")
		inner       = flag.Int("inner", 256, "contraction dimension")
		cols        = flag.Int("cols", 256, "output columns per batch element")
		batch       = flag.Int("batch", 16, "batch size")
		iters       = flag.Int("iters", 10, "timed iterations")
		backendName = flag.String("backend", "cpu", "compute backend: cpu or webgpu")
		broadcast   = flag.Bool("broadcast", true, "share one left operand across the batch")
	)
	flag.Parse()

	var backend tensor.Backend
	switch *backendName {
	case "cpu":
		backend = cpubackend.New()
	case "webgpu":
		gpu, err := gpubackend.New()
		if err != nil {
			return err
		}
		defer gpu.Release()
		backend = gpu
	default:
		return fmt.Errorf("unknown backend %q", *backendName)
	}

	lBatch := *batch
	if *broadcast {
		lBatch = 1
	}
	l, err := randTensor(tensor.D3(*rows, *inner, lBatch), backend.Device())
	if err != nil {
		return err
	}
	r, err := randTensor(tensor.D3(*inner, *cols, *batch), backend.Device())
	if err != nil {
		return err
	}
	y, err := tensor.New(tensor.D3(*rows, *cols, *batch), tensor.Float32, backend.Device())
	if err != nil {
		return err
	}

	// Warm up once so shader compilation stays out of the timed loop.
	matmul.MatrixMultiply(backend, l, r, y, 0)

	start := time.Now()
	for i := 0; i < *iters; i++ {
		matmul.MatrixMultiply(backend, l, r, y, 0)
	}
	elapsed := time.Since(start)

	flops := 2 * float64(*rows) * float64(*inner) * float64(*cols) * float64(*batch) * float64(*iters)
	perCall := elapsed / time.Duration(*iters)
	fmt.Printf("backend:   %s\n", backend.Name())
	fmt.Printf("problem:   %dx%d @ %dx%d, batch %d (broadcast left: %v)\n",
		*rows, *inner, *inner, *cols, *batch, *broadcast)
	fmt.Printf("time:      %v per call over %d iterations\n", perCall, *iters)
	fmt.Printf("throughput: %.2f GFLOP/s\n", flops/elapsed.Seconds()/1e9)
	return nil
}

func randTensor(dim tensor.Dim, device tensor.Device) (*tensor.Tensor, error) {
	t, err := tensor.New(dim, tensor.Float32, device)
	if err != nil {
		return nil, err
	}
	data := t.AsFloat32()
	for i := range data {
		data[i] = rand.Float32()*2 - 1
	}
	return t, nil
}
