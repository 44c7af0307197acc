package report

import "fmt"

// CompileError is the payload of the non-local control transfer the analyzer
// uses to bail out of a definition (spec.md §7): "the analyzer writes a
// formatted message into a bounded error buffer... then raises a non-local
// control-transfer that unwinds to the outermost analyze entry". Every
// analyzer routine that detects an unrecoverable problem panics with one of
// these instead of threading an error return through every call in the
// expression tree.
type CompileError struct {
	Kind     ErrorKind
	Message  string
	Position *TextPosition
}

func (ce *CompileError) Error() string {
	return ce.Message
}

// Raise constructs a CompileError and panics with it.
func Raise(kind ErrorKind, pos *TextPosition, msg string, args ...interface{}) {
	panic(&CompileError{Kind: kind, Message: fmt.Sprintf(msg, args...), Position: pos})
}

// Catch recovers a CompileError panicking out of the deferring function and
// reports it against ctx. Any other panic value is not a recognized
// control-transfer payload and is re-raised unchanged. This must always be
// deferred, one per top-level definition being analyzed, mirroring the
// teacher's CatchErrors/report.CatchErrors discipline.
func Catch(ctx *CompilationContext) {
	if x := recover(); x != nil {
		if cerr, ok := x.(*CompileError); ok {
			ReportCompileError(ctx, cerr.Kind, cerr.Position, cerr.Message)
			return
		}

		panic(x)
	}
}

// Try runs f and, if f raises a CompileError, recovers it and returns it
// without ever reaching the global reporter. This is the scoped-acquisition
// discipline spec.md §5 requires for `typeof`: "the analyzer snapshots the
// error-handler continuation, retries the analysis, and restores the
// handler on either exit path." A caller that gets a non-nil err should
// treat the speculative analysis as having failed and fall back to
// type-only analysis without ever having incremented the error count.
func Try[T any](f func() T) (result T, err *CompileError) {
	defer func() {
		if x := recover(); x != nil {
			if cerr, ok := x.(*CompileError); ok {
				err = cerr
				return
			}

			panic(x)
		}
	}()

	result = f()
	return
}
