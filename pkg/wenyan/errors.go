package wenyan

import "fmt"

// GrammarError is 文法之禍: a lexing or parsing failure. The pipeline
// aborts on the first one (spec's Non-goals rule out error recovery).
type GrammarError struct {
	Range   Range
	Message string
	Cause   error
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("%s: 文法之禍: %s", e.Range, e.Message)
}

func (e *GrammarError) Unwrap() error { return e.Cause }

// RuntimeError is 執行之禍: a failure raised by the evaluator itself
// (as opposed to a value thrown by the running program, see ThrownError).
type RuntimeError struct {
	Range   Range
	Message string
	Cause   error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: 執行之禍: %s", e.Range, e.Message)
}

func (e *RuntimeError) Unwrap() error { return e.Cause }

// ThrownError is a catchable value raised by 嗚呼 inside a running Wenyan
// program. It is distinct from GrammarError/RuntimeError: it only ever
// reaches the host as the Cause of a RuntimeError, and only when no
// enclosing 姑妄行此...乃止是遍 caught it.
type ThrownError struct {
	Range     Range
	Tag       string
	Detail    interface{}
	HasDetail bool
}

func (e *ThrownError) Error() string {
	if e.HasDetail {
		return fmt.Sprintf("%s之禍: %s", e.Tag, displayValue(e.Detail))
	}
	return fmt.Sprintf("%s之禍", e.Tag)
}
