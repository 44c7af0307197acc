package report

import (
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

// Enumeration of log levels, from least to most verbose.
const (
	LogLevelSilent = iota
	LogLevelError
	LogLevelWarn
	LogLevelVerbose
)

// bufferedWarning is a warning held until the end of compilation so that
// warnings are displayed together after all errors (report.Finish).
type bufferedWarning struct {
	ctx *CompilationContext
	pos *TextPosition
	msg string
}

// reporter is the single, mutex-guarded sink every Report* function writes
// through. It is safe to call from multiple goroutines, since the IR
// builder's peephole pass and, eventually, a concurrent code generator may
// both want to report diagnostics (spec.md §5 notes the core itself is
// single-threaded, but the reporter is shared infrastructure used by the
// host around it too).
type reporter struct {
	m sync.Mutex

	logLevel   int
	errorCount int
	warnCount  int
	warnings   []bufferedWarning

	colorOn bool
}

var rep = &reporter{
	logLevel: LogLevelVerbose,
	colorOn:  isatty.IsTerminal(os.Stdout.Fd()),
}

// InitReporter (re)initializes the global reporter with the given log level,
// clearing any accumulated error/warning state from a prior compilation.
func InitReporter(logLevel int) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.logLevel = logLevel
	rep.errorCount = 0
	rep.warnCount = 0
	rep.warnings = nil
}

// AnyErrors reports whether any error has been reported so far.
func AnyErrors() bool {
	rep.m.Lock()
	defer rep.m.Unlock()
	return rep.errorCount > 0
}

// ShouldProceed indicates whether compilation should continue to the next
// phase: false once any error has been reported.
func ShouldProceed() bool {
	return !AnyErrors()
}

// ReportCompileError reports a compilation error at pos in the file
// identified by ctx. pos may be nil for errors that are not source-local.
func ReportCompileError(ctx *CompilationContext, kind ErrorKind, pos *TextPosition, msg string) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++

	if rep.logLevel > LogLevelSilent {
		displayCompileMessage("error", ctx, kind, pos, msg)
	}
}

// ReportCompileWarning buffers a compilation warning to be displayed once
// compilation finishes (report.Finish), after every error for the phase has
// already been shown.
func ReportCompileWarning(ctx *CompilationContext, pos *TextPosition, msg string) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.warnCount++
	rep.warnings = append(rep.warnings, bufferedWarning{ctx: ctx, pos: pos, msg: msg})
}

// ReportImportError reports a failure to resolve or load a module
// (report.ErrImport): module not found, or a structural version mismatch.
func ReportImportError(modPath, msg string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++

	if rep.logLevel > LogLevelSilent {
		displayModuleMessage("error", modPath, msg, args...)
	}
}

// ReportFatal reports a fatal, non-source error (bad CLI invocation, an
// unreadable module descriptor) and terminates the process.
func ReportFatal(msg string, args ...interface{}) {
	rep.m.Lock()
	displayFatal(msg, args...)
	rep.m.Unlock()

	os.Exit(1)
}

// ReportICE reports an internal compiler error: a violated invariant that
// should never be reachable from valid or even invalid source. Always
// displayed, regardless of log level.
func ReportICE(msg string, args ...interface{}) {
	rep.m.Lock()
	displayICE(msg, args...)
	rep.m.Unlock()

	os.Exit(2)
}

// BeginPhase announces the start of a compilation phase (load module,
// parse, analyze, build-ir, optimize), mirroring the teacher's phase spinner.
func BeginPhase(name string) {
	if rep.logLevel == LogLevelVerbose {
		displayBeginPhase(name)
	}
}

// EndPhase announces the end of the current phase.
func EndPhase() {
	if rep.logLevel == LogLevelVerbose {
		displayEndPhase(ShouldProceed())
	}
}

// Finish flushes buffered warnings and prints the closing summary. Call once
// after the whole pipeline (load module -> parse -> analyze -> build-ir ->
// optimize) completes.
func Finish() {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel >= LogLevelWarn {
		for _, w := range rep.warnings {
			displayCompileMessage("warning", w.ctx, -1, w.pos, w.msg)
		}
	}

	if rep.logLevel == LogLevelVerbose {
		displayFinished(rep.errorCount, rep.warnCount)
	}
}
