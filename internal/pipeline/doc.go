// Package pipeline provides a framework for executing generation stages
// in sequence.
//
// A generation run flows through three steps: fetching module documents,
// analyzing each module's documentation, and synthesizing queries. Each
// stage is implemented as a Step that receives the current generation
// report and fills in its part.
//
// Design decision: We use a pipeline pattern instead of direct function
// calls because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context for long-running fetches
//
// The analysis step runs modules concurrently with errgroup: per-module
// analysis is purely functional and shares no state, so the pipeline is
// free to parallelize it while preserving fetch order in the results.
package pipeline
