package tensor

import (
	"fmt"
	"unsafe"
)

// Device represents the compute device for tensor operations.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// Tensor is a batch of dense column-major matrices in one contiguous buffer.
//
// Batch element b starts at element offset b*Rows*Cols, so the buffer can be
// addressed either one batch element at a time (BatchMatrix) or as a single
// wide (Rows, Cols*Batch) matrix spanning the whole batch (ColBatchMatrix).
//
// Tensors are allocated and owned by the caller; the matmul core only reads
// inputs and mutates output buffers in place.
type Tensor struct {
	data   []byte
	dim    Dim
	dtype  DataType
	device Device
}

// New creates a zero-filled tensor with the given shape and type.
func New(dim Dim, dtype DataType, device Device) (*Tensor, error) {
	if err := dim.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dim: %w", err)
	}
	return &Tensor{
		data:   make([]byte, dim.Size()*dtype.Size()),
		dim:    dim,
		dtype:  dtype,
		device: device,
	}, nil
}

// FromFloat32 creates a Float32 tensor initialized with values, which must hold
// exactly dim.Size() elements in column-major batch-contiguous order.
func FromFloat32(dim Dim, values []float32, device Device) (*Tensor, error) {
	t, err := New(dim, Float32, device)
	if err != nil {
		return nil, err
	}
	if len(values) != dim.Size() {
		return nil, fmt.Errorf("dim %s needs %d values, got %d", dim, dim.Size(), len(values))
	}
	copy(t.AsFloat32(), values)
	return t, nil
}

// FromFloat64 creates a Float64 tensor initialized with values.
func FromFloat64(dim Dim, values []float64, device Device) (*Tensor, error) {
	t, err := New(dim, Float64, device)
	if err != nil {
		return nil, err
	}
	if len(values) != dim.Size() {
		return nil, fmt.Errorf("dim %s needs %d values, got %d", dim, dim.Size(), len(values))
	}
	copy(t.AsFloat64(), values)
	return t, nil
}

// Dim returns the tensor's dimension descriptor.
func (t *Tensor) Dim() Dim {
	return t.dim
}

// DType returns the tensor's data type.
func (t *Tensor) DType() DataType {
	return t.dtype
}

// Device returns the tensor's compute device.
func (t *Tensor) Device() Device {
	return t.device
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return t.dim.Size()
}

// ByteSize returns the total memory size in bytes.
func (t *Tensor) ByteSize() int {
	return len(t.data)
}

// Data returns the raw byte slice.
// WARNING: Direct access to underlying memory. Use with caution.
func (t *Tensor) Data() []byte {
	return t.data
}

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not Float32.
func (t *Tensor) AsFloat32() []float32 {
	if t.dtype != Float32 {
		panic(fmt.Sprintf("tensor dtype is %s, not float32", t.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy reinterpretation, length fixed at allocation
	return unsafe.Slice((*float32)(unsafe.Pointer(&t.data[0])), t.NumElements())
}

// AsFloat64 interprets the data as []float64.
// Panics if the tensor's dtype is not Float64.
func (t *Tensor) AsFloat64() []float64 {
	if t.dtype != Float64 {
		panic(fmt.Sprintf("tensor dtype is %s, not float64", t.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy reinterpretation, length fixed at allocation
	return unsafe.Slice((*float64)(unsafe.Pointer(&t.data[0])), t.NumElements())
}

// Clone creates a deep copy with the same shape, type and contents.
func (t *Tensor) Clone() *Tensor {
	c := &Tensor{
		data:   make([]byte, len(t.data)),
		dim:    t.dim,
		dtype:  t.dtype,
		device: t.device,
	}
	copy(c.data, t.data)
	return c
}

// Zero overwrites the buffer with zeros.
func (t *Tensor) Zero() {
	clear(t.data)
}
