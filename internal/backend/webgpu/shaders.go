package webgpu

// WGSL compute shaders.
// Using string constants instead of embed for simplicity.

// gemmShader computes c = alpha*op(a)*op(b) + beta*c on column-major
// matrices. op(a) is m×k, op(b) is k×n, c is m×n; lda/ldb/ldc are leading
// dimensions of the stored operands. beta == 0 overwrites c without reading
// it, per BLAS convention.
const gemmShader = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> b: array<f32>;
@group(0) @binding(2) var<storage, read_write> c: array<f32>;

struct Params {
    m: u32,
    n: u32,
    k: u32,
    lda: u32,
    ldb: u32,
    ldc: u32,
    trans_a: u32,
    trans_b: u32,
    alpha: f32,
    beta: f32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(16, 16)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let row = global_id.y;
    let col = global_id.x;

    if (row >= params.m || col >= params.n) {
        return;
    }

    var sum: f32 = 0.0;
    for (var l: u32 = 0u; l < params.k; l = l + 1u) {
        var av: f32;
        if (params.trans_a != 0u) {
            av = a[row * params.lda + l];
        } else {
            av = a[l * params.lda + row];
        }
        var bv: f32;
        if (params.trans_b != 0u) {
            bv = b[l * params.ldb + col];
        } else {
            bv = b[col * params.ldb + l];
        }
        sum = sum + av * bv;
    }

    let idx = col * params.ldc + row;
    var prev: f32 = 0.0;
    if (params.beta != 0.0) {
        prev = params.beta * c[idx];
    }
    c[idx] = params.alpha * sum + prev;
}
`
