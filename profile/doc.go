// Package profile provides optional runtime profiling for cssfn.
//
// Profiling uses [github.com/pkg/profile] and is compiled in only with the
// pprof build tag:
//
//	go build -tags pprof -o cssfn .
//
// Without the tag, [Modes] is empty and [Profiler.Start] returns a no-op
// [Stopper].
//
// # Modes
//
//   - allocs:    memory allocations
//   - block:     blocking on synchronization primitives
//   - clock:     wall-clock time
//   - cpu:       CPU time
//   - goroutine: goroutine stacks
//   - heap:      live heap
//   - mem:       memory (sampled)
//   - mutex:     mutex contention
//   - thread:    thread creation
//   - trace:     execution trace
//
// # Usage
//
//	p := profile.Profiler{Mode: "cpu", Path: dir, Quiet: true}
//	stop := p.Start()
//	defer stop.Stop()
//
// The profile is written to Path, named after the mode (cpu.pprof,
// mem.pprof, trace.out and so on), and can be inspected with:
//
//	go tool pprof -http=: cpu.pprof
//
// From the command line, rendering a large stylesheet under the CPU
// profiler looks like:
//
//	cssfn --pprof-mode=cpu render site.css
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
