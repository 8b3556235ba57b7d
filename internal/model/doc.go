// Package model defines the data structures shared across queryscan.
// It contains the fetched module documents, the parsed documentation tree,
// per-module analysis results, synthesized queries, and the aggregate
// report for a generation run.
package model
