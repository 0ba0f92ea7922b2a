package wenyan

import (
	"io"
	"os"
)

// Config carries the knobs passed to Lex and NewEvaluator; Parse takes none.
// The zero Config is usable: diagnostics are silent unless Debug is set, and
// --roman has no effect on the core pipeline per spec.
type Config struct {
	// Roman records the --roman request for romanized diagnostics. Nothing
	// in this package reads it: diagnostics always show the original
	// characters, and lexing, parsing, and evaluation are unaffected.
	Roman bool

	// Debug, when true, causes the lexer to narrate its state transitions
	// to Trace.
	Debug bool

	// TabWidth is a tab-stop width for diagnostic column numbers; zero
	// means 8, matching the teacher's convention for multi-line string
	// indentation. The lexer does not read it: a tab advances the column
	// by one, like any other rune.
	TabWidth int

	// Trace receives debug narration when Debug is true. Defaults to
	// os.Stderr if nil.
	Trace io.Writer
}

func (c *Config) traceWriter() io.Writer {
	if c == nil || c.Trace == nil {
		return os.Stderr
	}
	return c.Trace
}

func (c *Config) tabWidth() int {
	if c == nil || c.TabWidth <= 0 {
		return 8
	}
	return c.TabWidth
}

func (c *Config) debug() bool {
	return c != nil && c.Debug
}
