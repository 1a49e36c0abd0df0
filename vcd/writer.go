package vcd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/joshuapare/vcdkit/internal/lineio"
)

// Writer streams a Value Change Dump to a caller-supplied sink.
//
// The writer moves through three phases. While registering, variables
// may be added and changes are accepted at the initial timestamp only.
// The header fields (timescale, date, comment, version) are fixed by the
// Options passed to New; the Writer has no setters for them. The first
// operation that advances time
// past the initial timestamp (or an explicit Flush/Close) emits the
// header and freezes the variable set. Close is one-way; every mutating
// call afterwards fails with ErrPhase.
//
// Example usage:
//
//	w, err := vcd.New(os.Stdout, nil)
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//
//	counter, err := w.RegisterVar("top.cpu", "counter", vcd.KindInteger, 8)
//	if err != nil {
//	    return err
//	}
//	w.Change(counter, 1, 10)
//	w.Change(counter, 2, 11)
//
//	return w.Close()
//
// Thread safety: Writer instances are NOT thread-safe. The caller
// provides all serialization.
type Writer struct {
	out       *lineio.Writer
	timescale Timescale
	date      string
	comment   string
	version   string
	sep       string

	checkValues bool
	syncOnFlush bool

	tree   *scopeTree
	vars   []Variable
	names  map[string]struct{}
	idents map[string]struct{}
	nextID int

	registering bool
	closed      bool
	dumping     bool
	timestamp   uint64
	pendingMark bool
}

// New creates a writer on sink.
//
// The writer buffers lines; nothing reaches the sink before the header
// is finalized. After that, buffered bytes are forwarded whenever the
// buffer fills and on Flush or Close. A nil opts uses DefaultOptions.
func New(sink io.Writer, opts *Options) (*Writer, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	tsText := opts.Timescale
	if tsText == "" {
		tsText = "1 us"
	}
	timescale, err := ParseTimescale(tsText)
	if err != nil {
		return nil, err
	}

	defaultKind := opts.DefaultScopeKind
	if defaultKind == "" {
		defaultKind = ScopeModule
	}
	if !defaultKind.valid() {
		return nil, fmt.Errorf("%w: scope kind %q", ErrValue, defaultKind)
	}

	sep := opts.ScopeSep
	if sep == "" {
		sep = "."
	}

	date := ""
	if !opts.OmitDate {
		date = opts.Date
		if date == "" {
			date = time.Now().Format(time.ANSIC)
		}
	}

	return &Writer{
		out:         lineio.New(sink),
		timescale:   timescale,
		date:        date,
		comment:     opts.Comment,
		version:     opts.Version,
		sep:         sep,
		checkValues: !opts.SkipValueChecks,
		syncOnFlush: opts.SyncOnFlush,
		tree:        newScopeTree(defaultKind),
		names:       make(map[string]struct{}),
		idents:      make(map[string]struct{}),
		registering: true,
		dumping:     true,
		timestamp:   opts.InitTimestamp,
	}, nil
}

// VarSpec describes a variable registration. It is the generic form
// behind the Register* helpers.
type VarSpec struct {
	// Scope is the dotted scope path, split on the writer's separator.
	Scope string
	// ScopePath is the pre-split scope path; it takes precedence over
	// Scope when non-empty.
	ScopePath []string
	// Name is the variable name, unique within its scope.
	Name string
	// Kind is the declared variable kind.
	Kind VarKind
	// Size is the bit width. Zero selects the kind's default width;
	// kinds without a default require an explicit size.
	Size int
	// Widths declares a compound vector of concatenated components and
	// takes precedence over Size.
	Widths []int
	// Init is the initial value. Nil selects the shape default:
	// unknown for bit vectors, 0.0 for reals, empty for strings.
	Init any
	// Ident overrides the auto-assigned identifier code.
	Ident string
}

// Register adds a variable and returns its handle. Registration is only
// legal before the header is finalized; a duplicate (scope, name) pair
// fails with ErrDuplicateVar.
func (w *Writer) Register(spec VarSpec) (Variable, error) {
	if w.closed || !w.registering {
		return nil, fmt.Errorf("register %q after header: %w", spec.Name, ErrPhase)
	}
	if !spec.Kind.valid() {
		return nil, fmt.Errorf("%w: variable kind %q", ErrValue, spec.Kind)
	}
	if spec.Name == "" {
		return nil, fmt.Errorf("%w: empty variable name", ErrValue)
	}

	parts := spec.ScopePath
	if len(parts) == 0 {
		if spec.Scope == "" {
			return nil, fmt.Errorf("%w: empty scope", ErrValue)
		}
		parts = strings.Split(spec.Scope, w.sep)
	}
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("%w: empty scope name in %v", ErrValue, parts)
		}
	}
	nameKey := scopeKey(parts) + "\x00" + spec.Name
	if _, ok := w.names[nameKey]; ok {
		return nil, fmt.Errorf("%w: %s %s", ErrDuplicateVar, strings.Join(parts, w.sep), spec.Name)
	}

	v, err := w.newVariable(spec)
	if err != nil {
		return nil, err
	}

	node, err := w.tree.ensurePath(parts)
	if err != nil {
		return nil, err
	}
	node.vars = append(node.vars, v)
	w.vars = append(w.vars, v)
	w.names[nameKey] = struct{}{}
	w.idents[v.Ident()] = struct{}{}
	if spec.Ident == "" {
		w.nextID++
	}
	return v, nil
}

// newVariable resolves the shape, width, identifier, and initial value
// for a registration.
func (w *Writer) newVariable(spec VarSpec) (Variable, error) {
	size := spec.Size
	if size == 0 {
		def, ok := spec.Kind.defaultSize()
		if !ok && len(spec.Widths) == 0 {
			return nil, fmt.Errorf("%w: kind %q requires an explicit size", ErrValue, spec.Kind)
		}
		size = def
	}
	if size < 0 {
		return nil, fmt.Errorf("%w: size %d", ErrValue, size)
	}

	ident := spec.Ident
	if ident == "" {
		ident = identCode(w.nextID)
	}
	if _, ok := w.idents[ident]; ok {
		return nil, fmt.Errorf("%w: identifier %q already in use", ErrValue, ident)
	}

	base := variable{ident: ident, name: spec.Name, kind: spec.Kind, width: size}

	var v Variable
	init := spec.Init
	switch {
	case spec.Kind == KindReal || spec.Kind == KindRealtime:
		v = &RealVariable{variable: base}
		if init == nil {
			init = 0.0
		}
	case spec.Kind == KindEvent:
		v = &EventVariable{variable: base}
	case spec.Kind == KindString:
		v = &StringVariable{variable: base}
		if init == nil {
			init = ""
		}
	case len(spec.Widths) > 0:
		total := 0
		for _, width := range spec.Widths {
			if width <= 0 {
				return nil, fmt.Errorf("%w: component width %d", ErrValue, width)
			}
			total += width
		}
		base.width = total
		widths := make([]int, len(spec.Widths))
		copy(widths, spec.Widths)
		v = &CompoundVariable{variable: base, widths: widths}
		if init == nil {
			init = "x"
		}
	case size == 1:
		v = &ScalarVariable{variable: base}
		if init == nil {
			init = "x"
		}
	default:
		v = &VectorVariable{variable: base}
		if init == nil {
			init = "x"
		}
	}

	if spec.Kind == KindEvent && init == nil {
		// Events have no persistent state to initialize.
		return v, nil
	}
	line, err := v.format(init, true)
	if err != nil {
		return nil, err
	}
	v.record(init, line)
	return v, nil
}

// RegisterVar registers a bit-vector variable under a dotted scope path.
// A size of zero selects the kind's default width.
func (w *Writer) RegisterVar(scope, name string, kind VarKind, size int) (Variable, error) {
	return w.Register(VarSpec{Scope: scope, Name: name, Kind: kind, Size: size})
}

// RegisterCompound registers a vector whose value is supplied as one
// sub-value per component width, concatenated most-significant first.
func (w *Writer) RegisterCompound(scope, name string, kind VarKind, widths []int) (Variable, error) {
	return w.Register(VarSpec{Scope: scope, Name: name, Kind: kind, Widths: widths})
}

// RegisterReal registers a 64-bit real variable.
func (w *Writer) RegisterReal(scope, name string) (Variable, error) {
	return w.Register(VarSpec{Scope: scope, Name: name, Kind: KindReal})
}

// RegisterEvent registers an event variable.
func (w *Writer) RegisterEvent(scope, name string) (Variable, error) {
	return w.Register(VarSpec{Scope: scope, Name: name, Kind: KindEvent})
}

// RegisterString registers a string variable.
func (w *Writer) RegisterString(scope, name string) (Variable, error) {
	return w.Register(VarSpec{Scope: scope, Name: name, Kind: KindString})
}

// SetScopeKind overrides the scope kind for a dotted path. The override
// applies whether the scope already exists or is created by a later
// registration.
func (w *Writer) SetScopeKind(scope string, kind ScopeKind) error {
	if w.closed {
		return fmt.Errorf("set scope kind on closed writer: %w", ErrPhase)
	}
	return w.tree.setKind(strings.Split(scope, w.sep), kind)
}

// SetScopeKindPath is SetScopeKind for a pre-split path.
func (w *Writer) SetScopeKindPath(scope []string, kind ScopeKind) error {
	if w.closed {
		return fmt.Errorf("set scope kind on closed writer: %w", ErrPhase)
	}
	return w.tree.setKind(scope, kind)
}

// Change records a new value for v at the given timestamp.
//
// Timestamps must be non-decreasing across Change, DumpOn, DumpOff, and
// FlushAt. The first call past the initial timestamp finalizes the
// header. Identical consecutive values are suppressed for all shapes
// except events; while dumping is off, values are recorded but nothing
// is emitted.
func (w *Writer) Change(v Variable, timestamp uint64, value any) error {
	if w.closed {
		return fmt.Errorf("change on closed writer: %w", ErrPhase)
	}
	line, err := v.format(value, w.checkValues)
	if err != nil {
		return err
	}
	if err := w.advance(timestamp); err != nil {
		return err
	}
	_, isEvent := v.(*EventVariable)
	if w.registering || !w.dumping {
		// Initial-value updates before the header, or changes while
		// dumping is off: record without emitting. Event triggers are
		// discarded.
		if !isEvent {
			v.record(value, line)
		}
		return nil
	}
	if isEvent {
		w.writeTimestamp()
		w.out.WriteLine(line)
		return w.out.Err()
	}
	if line == v.lastLine() {
		v.record(value, line)
		return nil
	}
	w.writeTimestamp()
	w.out.WriteLine(line)
	v.record(value, line)
	return w.out.Err()
}

// DumpOff suspends value emission. The current values of all scalar and
// vector variables are dumped as unknown in a $dumpoff block; further
// changes are recorded silently until DumpOn. A second DumpOff is a
// no-op beyond the time-order check.
func (w *Writer) DumpOff(timestamp uint64) error {
	if w.closed {
		return fmt.Errorf("dump off on closed writer: %w", ErrPhase)
	}
	if err := w.advance(timestamp); err != nil {
		return err
	}
	if !w.dumping {
		return nil
	}
	if w.registering {
		w.finalizeHeader()
	}
	w.writeTimestamp()
	w.out.WriteLine("$dumpoff")
	for _, v := range w.vars {
		if line, ok := v.dumpOffLine(); ok {
			w.out.WriteLine(line)
		}
	}
	w.out.WriteLine("$end")
	w.dumping = false
	return w.out.Err()
}

// DumpOn resumes value emission, dumping a snapshot of every non-event
// variable's current value. A DumpOn while already dumping is a no-op
// beyond the time-order check.
func (w *Writer) DumpOn(timestamp uint64) error {
	if w.closed {
		return fmt.Errorf("dump on on closed writer: %w", ErrPhase)
	}
	if err := w.advance(timestamp); err != nil {
		return err
	}
	if w.dumping {
		return nil
	}
	w.writeTimestamp()
	w.out.WriteLine("$dumpon")
	for _, v := range w.vars {
		if v.inSnapshot() {
			w.out.WriteLine(v.lastLine())
		}
	}
	w.out.WriteLine("$end")
	w.dumping = true
	return w.out.Err()
}

// Flush finalizes the header if it is still pending and forwards
// buffered bytes to the sink.
func (w *Writer) Flush() error {
	return w.flush(nil)
}

// FlushAt advances time to the given timestamp, emitting its marker,
// then flushes.
func (w *Writer) FlushAt(timestamp uint64) error {
	return w.flush(&timestamp)
}

func (w *Writer) flush(t *uint64) error {
	if w.closed {
		return fmt.Errorf("flush on closed writer: %w", ErrPhase)
	}
	if t != nil {
		if err := w.advance(*t); err != nil {
			return err
		}
	}
	if w.registering {
		w.finalizeHeader()
	}
	if t != nil {
		w.writeTimestamp()
	}
	if w.syncOnFlush {
		return w.out.Sync()
	}
	return w.out.Flush()
}

// Close finalizes the header if it is still pending, flushes, and seals
// the writer. Closing twice is a no-op; VCD defines no trailer marker.
func (w *Writer) Close() error {
	return w.close(nil)
}

// CloseAt advances time to the given timestamp before closing.
func (w *Writer) CloseAt(timestamp uint64) error {
	return w.close(&timestamp)
}

func (w *Writer) close(t *uint64) error {
	if w.closed {
		return nil
	}
	if t != nil {
		if err := w.advance(*t); err != nil {
			return err
		}
	}
	if w.registering {
		w.finalizeHeader()
	}
	if t != nil {
		w.writeTimestamp()
	}
	w.closed = true
	if w.syncOnFlush {
		return w.out.Sync()
	}
	return w.out.Flush()
}

// advance runs the time-order check and moves the current timestamp
// forward. Crossing the initial timestamp for the first time finalizes
// the header; the #t marker itself is deferred until a line is actually
// emitted at the new time.
func (w *Writer) advance(t uint64) error {
	if t < w.timestamp {
		return fmt.Errorf("timestamp %d older than current %d: %w", t, w.timestamp, ErrPhase)
	}
	if t > w.timestamp {
		if w.registering {
			w.finalizeHeader()
		}
		w.timestamp = t
		w.pendingMark = true
	}
	return nil
}

func (w *Writer) writeTimestamp() {
	if !w.pendingMark {
		return
	}
	w.out.WriteLine("#" + strconv.FormatUint(w.timestamp, 10))
	w.pendingMark = false
}

// finalizeHeader emits the buffered header: metadata sections, scope
// declarations, $enddefinitions, and the initial $dumpvars snapshot.
// After this no further registrations are accepted.
func (w *Writer) finalizeHeader() {
	w.registering = false
	if w.comment != "" {
		w.out.WriteLine("$comment " + w.comment + " $end")
	}
	if w.date != "" {
		w.out.WriteLine("$date " + w.date + " $end")
	}
	w.out.WriteLine("$timescale " + w.timescale.String() + " $end")
	if w.version != "" {
		w.out.WriteLine("$version")
		for _, line := range strings.Split(w.version, "\n") {
			w.out.WriteLine("\t" + line)
		}
		w.out.WriteLine("$end")
	}
	for _, line := range w.tree.declarations() {
		w.out.WriteLine(line)
	}
	w.out.WriteLine("$enddefinitions $end")

	if len(w.vars) == 0 {
		return
	}
	w.out.WriteLine("#" + strconv.FormatUint(w.timestamp, 10))
	w.out.WriteLine("$dumpvars")
	for _, v := range w.vars {
		if v.inSnapshot() {
			w.out.WriteLine(v.lastLine())
		}
	}
	w.out.WriteLine("$end")
	w.pendingMark = false
}
