// Copyright 2025 the dynet-go authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/xunzhang/dynet/internal/tensor"

// Backend defines the interface that all compute backends must implement:
// one scaled general matrix-multiply primitive per data type. All batching
// and broadcasting policy lives in the matmul package, above this interface.
//
// Implementations:
//   - backend/cpu: gonum's native Go BLAS
//   - backend/webgpu: cross-platform GPU compute via WebGPU
//
// The backend handle is passed explicitly to every operation; there is no
// ambient "current device" state.
type Backend = tensor.Backend
