// Package cocluster is a toolkit for bipartite ("diagonal") co-clustering of
// numeric matrices with missing entries — it partitions rows and columns into
// a shared number of clusters by direct maximization of graph modularity,
// filling unobserved cells on the fly from the current block structure.
//
// 🚀 What is cocluster?
//
//	A small, focused library for analysts working with contingency-style
//	matrices (term-document counts, ratings tables) that contain holes:
//		• Modularity matrix: B = X − expected-under-independence model
//		• Alternating row/column argmax reassignment to a fixed point
//		• Block-mean imputation of missing cells, refreshed every iteration
//		• Best-of-n independent random restarts, optionally in parallel
//
// ✨ Why choose cocluster?
//
//   - Deterministic – fixed seeds yield identical labels, every run
//   - Pluggable – imputation is an interface; swap in your own strategy
//   - Dense-math on gonum – no hand-rolled matrix kernels
//   - Honest failures – degenerate (zero-mass / NaN) inputs return errors,
//     never a silently broken clustering
//
// The root package exposes the Fit surface (the alternating optimizer and
// its restart selector); the building blocks live in three subpackages:
//
//	partition/  — one-hot row/column partitions, random init, validation
//	modularity/ — modularity matrix builder and the trace objective
//	impute/     — block statistics + pluggable missing-cell strategies
//
// Quick sketch of one iteration:
//
//	    BW = B·W  →  rows    (argmax per row)
//	    impute    →  rebuild B
//	    BᵀZ       →  columns (argmax per column)
//	    impute    →  rebuild B
//	    m = tr(Zᵀ·B·W), stop when |m − m_prev| ≤ tol
//
// The method follows Ailem, Role & Nadif, "Co-clustering Document-term
// Matrices by Direct Maximization of Graph Modularity" (CIKM 2015), extended
// with per-iteration block-mean imputation of missing cells.
//
//	go get github.com/katalvlaran/cocluster
package cocluster
