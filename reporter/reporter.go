// Package reporter contains the positioned error types produced by the
// compiler and the warning sink used for non-fatal diagnostics.
//
// User-facing failures are always one of two kinds: LexError for an
// unrecognizable character run, or ParseError for malformed rule structure.
// Both abort the whole file's compilation and propagate to the caller
// unmodified. Internal invariant violations are programming faults and
// panic instead of being reported here.
package reporter

// WarningReporter receives non-fatal diagnostics, such as a repetition
// whose bounded maximum cannot be expressed in the diagram vocabulary.
// Warnings never fail a compile. Though they are just warnings, the details
// are supplied via an error type so positions travel with the message.
type WarningReporter func(ErrorWithPos)

// Handler delivers warnings to a configured reporter. A nil Handler, or a
// Handler with a nil reporter, discards them.
type Handler struct {
	warnings WarningReporter
}

func NewHandler(warnings WarningReporter) *Handler {
	return &Handler{warnings: warnings}
}

func (h *Handler) HandleWarning(warning ErrorWithPos) {
	if h == nil || h.warnings == nil {
		return
	}
	h.warnings(warning)
}
