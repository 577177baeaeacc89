package webgpu

import (
	"fmt"
	"strings"
)

// WGSL compute shaders. Shapes and strides are baked into the generated
// source, so a shader needs no uniform buffer and the pipeline cache keys on
// the source text alone.

// workgroupSize is the number of threads per workgroup.
const workgroupSize = 256

// maxWorkgroupsPerDim is the WebGPU limit on dispatch size per dimension.
const maxWorkgroupsPerDim = 65535

// dispatch is a workgroup grid covering a flat range of invocations.
type dispatch struct {
	x, y  uint32
	total int
}

// gridFor covers total invocations, spilling into a second dimension once the
// first would exceed the per-dimension limit.
func gridFor(total int) dispatch {
	groups := (total + workgroupSize - 1) / workgroupSize
	if groups <= maxWorkgroupsPerDim {
		//nolint:gosec // G115: bounded by maxWorkgroupsPerDim.
		return dispatch{x: uint32(groups), y: 1, total: total}
	}
	y := (groups + maxWorkgroupsPerDim - 1) / maxWorkgroupsPerDim
	//nolint:gosec // G115: y is bounded by the tensor size.
	return dispatch{x: maxWorkgroupsPerDim, y: uint32(y), total: total}
}

// entry wraps body into a compute entry point. Inside body, idx is the flat
// invocation index, already bounds-checked.
func (d dispatch) entry(body string) string {
	return fmt.Sprintf(`
@compute @workgroup_size(%d)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let idx = gid.x + gid.y * %du;
    if (idx >= %du) {
        return;
    }
%s
}
`, workgroupSize, d.x*workgroupSize, d.total, body)
}

// bindings declares read-only inputs followed by the output buffer.
func bindings(inputs ...string) string {
	var sb strings.Builder
	for i, name := range inputs {
		fmt.Fprintf(&sb, "@group(0) @binding(%d) var<storage, read> %s: array<f32>;\n", i, name)
	}
	fmt.Fprintf(&sb, "@group(0) @binding(%d) var<storage, read_write> result: array<f32>;\n", len(inputs))
	return sb.String()
}

// reluShader computes result = max(x, 0).
func reluShader(d dispatch) string {
	return bindings("x") + d.entry(`    result[idx] = max(x[idx], 0.0);`)
}

// addShader computes result = a + b where a and b are read through the given
// strides over the output shape. A zero stride repeats that dimension.
func addShader(d dispatch, outShape, aStrides, bStrides []int) string {
	var body strings.Builder
	body.WriteString("    var rem = idx;\n    var ia = 0u;\n    var ib = 0u;\n")
	for dim := len(outShape) - 1; dim >= 0; dim-- {
		fmt.Fprintf(&body, "    let c%d = rem %% %du;\n", dim, outShape[dim])
		fmt.Fprintf(&body, "    rem = rem / %du;\n", outShape[dim])
		if aStrides[dim] != 0 {
			fmt.Fprintf(&body, "    ia = ia + c%d * %du;\n", dim, aStrides[dim])
		}
		if bStrides[dim] != 0 {
			fmt.Fprintf(&body, "    ib = ib + c%d * %du;\n", dim, bStrides[dim])
		}
	}
	body.WriteString("    result[idx] = a[ia] + b[ib];")
	return bindings("a", "b") + d.entry(body.String())
}

// matmulShader computes batch matrix products [B, M, K] @ [B, K, N].
// aStep is the distance between left matrices; zero shares one left matrix
// across the batch.
func matmulShader(d dispatch, m, k, n, aStep int) string {
	body := fmt.Sprintf(`    let batch = idx / %[1]du;
    let row = (idx / %[2]du) %% %[3]du;
    let col = idx %% %[2]du;
    let aBase = batch * %[4]du + row * %[5]du;
    let bBase = batch * %[6]du + col;
    var sum = 0.0;
    for (var p = 0u; p < %[5]du; p = p + 1u) {
        sum = sum + a[aBase + p] * b[bBase + p * %[2]du];
    }
    result[idx] = sum;`, m*n, n, m, aStep, k, k*n)
	return bindings("a", "b") + d.entry(body)
}

// im2colShader gathers sliding windows of [N, C, H, W] into
// [N, C*K*K, HOut*WOut]. Column i*WOut + j holds window (i, j).
func im2colShader(d dispatch, c, h, w, kernelSize, stride, hOut, wOut int) string {
	rows := c * kernelSize * kernelSize
	cols := hOut * wOut
	body := fmt.Sprintf(`    let n = idx / %[1]du;
    let row = (idx / %[2]du) %% %[3]du;
    let col = idx %% %[2]du;
    let ch = row / %[4]du;
    let kh = (row / %[5]du) %% %[5]du;
    let kw = row %% %[5]du;
    let i = col / %[6]du;
    let j = col %% %[6]du;
    let y = i * %[7]du + kh;
    let xx = j * %[7]du + kw;
    result[idx] = x[((n * %[8]du + ch) * %[9]du + y) * %[10]du + xx];`,
		rows*cols, cols, rows, kernelSize*kernelSize, kernelSize, wOut, stride, c, h, w)
	return bindings("x") + d.entry(body)
}

// maxDimShader reduces [outer, size, inner] to [outer, inner] with max.
func maxDimShader(d dispatch, size, inner int) string {
	body := fmt.Sprintf(`    let o = idx / %[1]du;
    let lane = idx %% %[1]du;
    let base = o * %[2]du + lane;
    var m = x[base];
    for (var s = 1u; s < %[3]du; s = s + 1u) {
        m = max(m, x[base + s * %[1]du]);
    }
    result[idx] = m;`, inner, size*inner, size)
	return bindings("x") + d.entry(body)
}

// transposeShader writes result in outShape order, reading x through
// srcStrides (the source strides permuted into output order).
func transposeShader(d dispatch, outShape, srcStrides []int) string {
	var body strings.Builder
	body.WriteString("    var rem = idx;\n    var src = 0u;\n")
	for dim := len(outShape) - 1; dim >= 0; dim-- {
		fmt.Fprintf(&body, "    src = src + (rem %% %du) * %du;\n", outShape[dim], srcStrides[dim])
		fmt.Fprintf(&body, "    rem = rem / %du;\n", outShape[dim])
	}
	body.WriteString("    result[idx] = x[src];")
	return bindings("x") + d.entry(body.String())
}
