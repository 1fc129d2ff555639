// Package features is the built-in master-operation library. Each master
// takes the raw series x and its standardized companion y and returns a
// named mapping of sub-results (or a direct scalar); derived operations in
// the catalog extract single fields from these payloads.
//
// Masters here are deliberately inexpensive relative to real workloads but
// share their shape: one evaluation produces many named scalars.
package features
