package dangerous

// Backtrace is the chain of contexts recorded around a failure.
//
// Contexts are pushed deepest-first as the failure bubbles up through
// enclosing Reader.Context calls; Walk visits them in that order, so
// renderers that want the outermost expectation first iterate the
// walk output in reverse (see ErrorDisplay).
type Backtrace interface {
	// Count returns the number of contexts pushed, including any
	// the strategy chose not to retain.
	Count() int
	// Root returns the deepest (most specific) context recorded,
	// ok is false when no context was pushed at all.
	Root() (c Context, ok bool)
	// Walk visits the retained contexts deepest first. Return
	// false from fn to stop early.
	Walk(fn func(depth int, c Context) bool)
}

// backtraceBuilder is the mutable side of a Backtrace, fed by
// failure.pushContext during error propagation.
type backtraceBuilder interface {
	Backtrace
	push(c Context)
}

// newBacktrace selects the accumulation strategy. The full strategy
// retains every pushed context and therefore allocates in proportion
// to nesting depth; the root strategy keeps only the deepest context
// in constant space.
func newBacktrace(rootOnly bool) backtraceBuilder {
	if rootOnly {
		return &rootBacktrace{}
	}
	return &fullBacktrace{}
}

// MaxBacktraceDepth caps how many contexts the full strategy retains
// per failure. Pushes beyond the cap are counted but dropped; since
// contexts arrive deepest-first, the dropped ones are the outermost.
var MaxBacktraceDepth = 64

// fullBacktrace retains contexts up to MaxBacktraceDepth, in push
// (deepest-first) order.
type fullBacktrace struct {
	nodes []Context
	count int
}

func (b *fullBacktrace) push(c Context) {
	b.count++
	if len(b.nodes) < MaxBacktraceDepth {
		b.nodes = append(b.nodes, c)
	}
}

func (b *fullBacktrace) Count() int { return b.count }

func (b *fullBacktrace) Root() (Context, bool) {
	if len(b.nodes) == 0 {
		return Context{}, false
	}
	return b.nodes[0], true
}

func (b *fullBacktrace) Walk(fn func(int, Context) bool) {
	for i, c := range b.nodes {
		if !fn(i, c) {
			return
		}
	}
}

// rootBacktrace retains only the deepest context. Pushes after the
// first are counted but discarded, keeping memory constant no matter
// how deeply the failing parser was nested.
type rootBacktrace struct {
	node  Context
	seen  bool
	count int
}

func (b *rootBacktrace) push(c Context) {
	b.count++
	if !b.seen {
		b.node = c
		b.seen = true
	}
}

func (b *rootBacktrace) Count() int { return b.count }

func (b *rootBacktrace) Root() (Context, bool) { return b.node, b.seen }

func (b *rootBacktrace) Walk(fn func(int, Context) bool) {
	if b.seen {
		fn(0, b.node)
	}
}
