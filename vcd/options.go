package vcd

// Options configures a Writer.
type Options struct {
	// Timescale is the $timescale declaration, in any form accepted by
	// ParseTimescale ("1 us", "us", "100ps").
	// Default: "1 us"
	Timescale string

	// Date is the $date header text. When empty the current local date
	// is used unless OmitDate is set.
	Date string

	// OmitDate suppresses the $date section entirely.
	OmitDate bool

	// Comment is the optional $comment header text.
	Comment string

	// Version is the optional $version header text. Multi-line text is
	// emitted as a tab-indented block.
	Version string

	// DefaultScopeKind is the kind given to scopes created implicitly by
	// registrations, unless overridden with SetScopeKind.
	// Default: ScopeModule
	DefaultScopeKind ScopeKind

	// ScopeSep separates components in dotted scope strings.
	// Default: "."
	ScopeSep string

	// SkipValueChecks disables range and charset validation of change
	// values for speed. Structural errors (wrong arity, wrong type) are
	// still reported.
	SkipValueChecks bool

	// InitTimestamp is the timestamp of the initial $dumpvars snapshot.
	// Default: 0
	InitTimestamp uint64

	// SyncOnFlush forces flushed bytes to stable storage when the sink
	// is an *os.File. Ignored for other sinks.
	SyncOnFlush bool
}

// DefaultOptions returns the recommended options for general-purpose
// dump writing.
func DefaultOptions() *Options {
	return &Options{
		Timescale:        "1 us",
		DefaultScopeKind: ScopeModule,
		ScopeSep:         ".",
	}
}
