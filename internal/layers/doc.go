// Package layers implements stateless neural-network layer primitives over
// dense tensors: convolution, max pooling, ReLU, flattening and the
// fully-connected affine map.
//
// Every layer exists in two forms. The vectorized form is built from bulk
// backend operations (patch extraction, batched matrix multiply, broadcast
// add, axis-wise max) and runs on the requested device. The scalar form
// (suffix Scalar) is a direct nested-loop evaluation of the definition over
// host memory and serves as a reference oracle. MeanSquaredError and Compare
// measure how closely the two agree.
//
// Shape violations are detected before any work is dispatched and reported as
// errors wrapping ErrShapeMismatch. Inputs are never modified; outputs are
// always freshly allocated.
//
// Convolution factors into patch extraction and weight flattening:
//
//	cols := Im2Col(x, K)          // [N, C_in*K*K, S_out*S_out]
//	rows := WeightRows(w)         // [C_out, C_in*K*K]
//	out  := rows @ cols + b       // [N, C_out, S_out*S_out]
//
// Both helpers flatten windows in (C_in, K_row, K_col) order, so row r of
// rows dotted with column i*S_out+j of cols is output channel r at (i, j).
package layers
