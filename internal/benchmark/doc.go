// SPDX-License-Identifier: MPL-2.0

// Package benchmark provides benchmarks for PGO profile generation.
// They cover the hot paths of textutils:
//   - take-spec resolution and line/byte emission on large inputs
//   - tail, grep and wc through the command registry
//   - CUE configuration loading
//   - shell pipelines with in-process utilities
//
// To generate a profile, run:
//
//	go test -run=^$ -bench=. -cpuprofile=default.pgo ./internal/benchmark
package benchmark
