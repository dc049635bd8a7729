package errors

import "rulesynth/internal/sexp"

// DiagnosticBuilder is a fluent builder for CompilerError, grounded on
// _examples/kanso-lang-kanso/internal/errors/semantic_errors.go's
// SemanticErrorBuilder, slimmed to the fields rule-file and workload
// diagnostics actually need.
type DiagnosticBuilder struct {
	err CompilerError
}

// NewDiagnostic starts a builder for an error at pos.
func NewDiagnostic(code, message string, pos sexp.Position) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// NewDiagnosticWarning starts a builder for a warning at pos.
func NewDiagnosticWarning(code, message string, pos sexp.Position) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		err: CompilerError{
			Level:    Warning,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// WithLength sets the length of the error span.
func (b *DiagnosticBuilder) WithLength(length int) *DiagnosticBuilder {
	b.err.Length = length
	return b
}

// WithNote appends a note.
func (b *DiagnosticBuilder) WithNote(note string) *DiagnosticBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp sets the help text.
func (b *DiagnosticBuilder) WithHelp(help string) *DiagnosticBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed CompilerError.
func (b *DiagnosticBuilder) Build() CompilerError {
	return b.err
}
