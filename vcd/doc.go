// Package vcd implements a streaming writer for the Value Change Dump
// (VCD) format used by digital-simulation tools to record signal
// transitions over time.
//
// # Overview
//
// The writer accepts a sequence of variable registrations followed by a
// monotonic sequence of value changes and produces a well-formed VCD
// byte stream on a caller-supplied sink. Header emission is deferred:
// scope structure and initial values accumulate freely until the first
// operation that advances time, at which point the header, scope tree,
// and initial $dumpvars snapshot are written and the variable set is
// frozen.
//
// # Key Types
//
// The main types provided by this package are:
//
//   - Writer: the streaming façade coordinating phases, time, and output
//   - Options: writer configuration (timescale, header fields, checks)
//   - Variable: the handle returned by registration, one implementation
//     per value shape (scalar, vector, compound, real, event, string)
//   - Timescale: the validated (magnitude, unit) pair of $timescale
//   - ScopeKind, VarKind: the closed declaration vocabularies
//
// # Writing a Dump
//
//	w, err := vcd.New(file, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//
//	clk, _ := w.RegisterVar("top", "clk", vcd.KindWire, 1)
//	bus, _ := w.RegisterVar("top.cpu", "bus", vcd.KindInteger, 16)
//
//	for t := uint64(0); t < 100; t++ {
//	    w.Change(clk, t, t%2 == 0)
//	    w.Change(bus, t, t*3)
//	}
//
// Identical consecutive values are suppressed automatically, and DumpOff
// and DumpOn suspend and resume emission while continuing to track
// values, so the resume snapshot is always accurate.
//
// The writer is not safe for concurrent use; the caller provides all
// serialization.
package vcd
