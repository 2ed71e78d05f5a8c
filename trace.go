package ncxml

import (
	"context"
	"log"
	"time"

	"github.com/imdario/mergo"
)

// unique type to prevent assignment.
type traceContextKey struct{}

// ContextTrace returns the Trace associated with the provided context. If
// none, it returns no-op hooks.
func ContextTrace(ctx context.Context) *Trace {
	trace, _ := ctx.Value(traceContextKey{}).(*Trace)
	if trace == nil {
		trace = NoOpTraceHooks
	} else {
		_ = mergo.Merge(trace, NoOpTraceHooks)
	}
	return trace
}

// WithTrace returns a new context based on the provided parent ctx.
// Parse and serialization calls made with the returned context will use the
// provided trace hooks.
func WithTrace(ctx context.Context, trace *Trace) context.Context {
	return context.WithValue(ctx, traceContextKey{}, trace)
}

// Trace defines a structure for handling trace events.
type Trace struct {
	// ParseStart is called before a document is parsed.
	ParseStart func(raw string)

	// ParseDone is called after a parse completes, with err indicating
	// whether it was successful.
	ParseDone func(root *Element, err error, d time.Duration)

	// WriteStart is called before an element is serialized.
	WriteStart func(e *Element)

	// WriteDone is called after serialization completes.
	WriteDone func(doc string, err error, d time.Duration)

	// Error is called after an error condition has been detected.
	Error func(context string, err error)
}

// DefaultLoggingHooks provides a default logging hook to report errors.
var DefaultLoggingHooks = &Trace{
	Error: func(context string, err error) {
		log.Printf("Error context:%s err:%v", context, err)
	},
}

// NoOpTraceHooks provides a set of hooks that do nothing.
var NoOpTraceHooks = &Trace{
	ParseStart: func(raw string) {},
	ParseDone:  func(root *Element, err error, d time.Duration) {},
	WriteStart: func(e *Element) {},
	WriteDone:  func(doc string, err error, d time.Duration) {},
	Error:      func(context string, err error) {},
}
