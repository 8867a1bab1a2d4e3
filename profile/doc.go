// Package profile provides optional runtime profiling through
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof .
//
// Without it, [Modes] is empty and [Profiler.Start] always returns a no-op.
//
// # Modes
//
// allocs, block, clock, cpu, goroutine, heap, mem, mutex, thread and trace.
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/yarnspin"}
//	defer p.Start().Stop()
//
// Importing the package with the tag also registers the net/http/pprof
// handlers.
package profile
