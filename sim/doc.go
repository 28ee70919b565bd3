// Package sim provides the core sequential geostatistical simulation engine
// for geosim.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - problem.go: Problem inputs (domain, hard data, variables) and results
//   - preprocess.go: per-variable parameter bundles (searcher, mapping, path)
//   - solver.go: the sequential loop — masked search, conditional-vs-marginal
//     decision, draw, mark
//
// # Architecture
//
// The sim package defines the loop and its configuration; capabilities live
// in sub-packages:
//   - sim/domain/: spatial domains (PointSet, CartesianGrid)
//   - sim/search/: bounded masked nearest-neighbor searchers
//   - sim/estimator/: estimator/sampler interfaces, kriging, marginals
//   - sim/trace/: per-location decision trace recording
//
// # Key Interfaces
//
// The extension points are single-method or small interfaces:
//   - PathPolicy: visiting order of locations for one variable
//   - search.Searcher: up to k nearest eligible locations under a mask
//   - estimator.Estimator / Model / Distribution: fit, predict, sample
//
// # Determinism
//
// All randomness flows through a PartitionedRNG keyed by a single seed.
// Each variable draws from its own named substream, so realizations are
// bit-for-bit reproducible and independent of whether variables run
// sequentially or in parallel.
package sim
