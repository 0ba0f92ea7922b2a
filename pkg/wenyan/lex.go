package wenyan

// This file implements the lexical scanner. Its shape - a state function
// driving a small lexer struct that emits tokens onto a channel, with
// next/backup/peek helpers over a rune cursor - follows the
// teacher's lex.go. What differs is everything about what gets recognized:
// Wenyan has no single-character punctuation tokens and instead needs a
// longest-match keyword scan, bracket-delimited strings/identifiers, and a
// numeral run that can itself absorb several 又-groups before it is
// complete.

import "fmt"

// stateFn represents one state of the lexer, returning the next state.
type stateFn func(*lexer) stateFn

// isSkip reports whether r is in the WS class: never emitted as tokens.
func isSkip(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n', '　', '。', '、', '，', '矣':
		return true
	}
	return false
}

type lexer struct {
	input []rune
	pos   int // current rune offset
	start int // start of the token/run being scanned
	line  int
	col   int
	sline int
	scol  int

	cfg   *Config
	items chan *Token
	state stateFn
	err   *GrammarError
}

const eof = -1

func newLexer(src string, cfg *Config) *lexer {
	return &lexer{
		input: []rune(src),
		line:  1,
		col:   1,
		cfg:   cfg,
		items: make(chan *Token, 2),
		state: lexGround,
	}
}

func (l *lexer) posAt(offset int) Pos {
	return Pos{Offset: offset, Line: l.line, Col: l.col}
}

func (l *lexer) next() rune {
	if l.pos >= len(l.input) {
		return eof
	}
	r := l.input[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *lexer) backup() {
	if l.pos == 0 {
		return
	}
	l.pos--
	r := l.input[l.pos]
	if r == '\n' {
		l.line--
		// Column is no longer meaningful; next() across this boundary
		// resets it, same caveat the teacher's lexer documents.
		l.col = 1
	} else {
		l.col--
	}
}

func (l *lexer) peek() rune {
	r := l.next()
	if r != eof {
		l.backup()
	}
	return r
}

func (l *lexer) peekAt(ahead int) rune {
	idx := l.pos + ahead
	if idx < 0 || idx >= len(l.input) {
		return eof
	}
	return l.input[idx]
}

func (l *lexer) consume() {
	l.start = l.pos
}

func (l *lexer) emitKeyword(kw KeywordKind, startPos, startLine, startCol int) {
	l.emit(&Token{
		Kind: Keyword,
		KW:   kw,
		Text: string(l.input[l.start:l.pos]),
		Range: Range{
			Start: Pos{Offset: l.start, Line: startLine, Col: startCol},
			End:   l.posAt(l.pos),
		},
	})
	l.consume()
}

func (l *lexer) emit(t *Token) {
	l.items <- t
}

func (l *lexer) errorf(format string, args ...interface{}) stateFn {
	l.err = &GrammarError{
		Range: Range{
			Start: l.posAt(l.pos),
			End:   l.posAt(l.pos + 1),
		},
		Message: fmt.Sprintf(format, args...),
	}
	return nil
}

// NextToken drives the state machine until a token is ready, EOF, or an
// error has been recorded.
func (l *lexer) NextToken() *Token {
	for {
		select {
		case t := <-l.items:
			return t
		default:
			if l.state == nil {
				return nil
			}
			if l.cfg.debug() {
				fmt.Fprintf(l.cfg.traceWriter(), "%d:%d: lex state, next=%q\n", l.line, l.col, string(l.peek()))
			}
			l.state = l.state(l)
		}
	}
}

// Lex scans the complete input into a flat token sequence, or returns the
// first GrammarError encountered. Per spec section 5 this is one-shot and
// synchronous: the whole input is consumed before Lex returns.
func Lex(src string, cfg *Config) ([]*Token, error) {
	l := newLexer(src, cfg)
	var toks []*Token
	for {
		t := l.NextToken()
		if t == nil {
			if l.err != nil {
				return nil, l.err
			}
			return toks, nil
		}
		toks = append(toks, t)
	}
}

// lexGround is the state between tokens: skip whitespace/punctuation, then
// dispatch on the next rune.
func lexGround(l *lexer) stateFn {
	for isSkip(l.peek()) {
		l.next()
	}
	l.consume()

	startLine, startCol := l.line, l.col

	switch r := l.peek(); {
	case r == eof:
		return nil
	case r == '「':
		return lexBracket(l, startLine, startCol)
	case r == '『':
		return lexGuillemet(l, startLine, startCol)
	case numeralRune(r):
		return lexNumeral(l, startLine, startCol)
	default:
		return lexKeywordOrError(l, startLine, startCol)
	}
}

// lexBracket handles both 「「...」」 strings and 「...」 identifiers,
// distinguished by whether the opening bracket is doubled.
func lexBracket(l *lexer, startLine, startCol int) stateFn {
	l.next() // first 「
	if l.peek() == '「' {
		l.next() // second 「
		l.consume()
		var text []rune
		for {
			c := l.next()
			switch c {
			case eof:
				return l.errorf("unterminated string literal")
			case '」':
				if l.peek() == '」' {
					l.next()
					l.emit(&Token{
						Kind: StringLit,
						Text: string(text),
						Range: Range{
							Start: Pos{Offset: l.start, Line: startLine, Col: startCol},
							End:   l.posAt(l.pos),
						},
					})
					l.consume()
					return lexGround
				}
				text = append(text, c)
			default:
				text = append(text, c)
			}
		}
	}

	// Single-bracket identifier.
	l.consume()
	var text []rune
	for {
		c := l.next()
		switch c {
		case eof:
			return l.errorf("unterminated identifier")
		case '」':
			if len(text) == 0 {
				return l.errorf("empty identifier")
			}
			l.emit(&Token{
				Kind: Identifier,
				Text: string(text),
				Range: Range{
					Start: Pos{Offset: l.start, Line: startLine, Col: startCol},
					End:   l.posAt(l.pos),
				},
			})
			l.consume()
			return lexGround
		default:
			text = append(text, c)
		}
	}
}

func lexGuillemet(l *lexer, startLine, startCol int) stateFn {
	l.next() // 『
	l.consume()
	var text []rune
	for {
		c := l.next()
		switch c {
		case eof:
			return l.errorf("unterminated string literal")
		case '』':
			l.emit(&Token{
				Kind: StringLit,
				Text: string(text),
				Range: Range{
					Start: Pos{Offset: l.start, Line: startLine, Col: startCol},
					End:   l.posAt(l.pos),
				},
			})
			l.consume()
			return lexGround
		default:
			text = append(text, c)
		}
	}
}

// lexNumeral scans a maximal INT_NUM_KEYWORDS run, decodes it, then greedily
// absorbs any trailing 又 <run> <unit> groups, which promote the result to
// FLOAT_NUM.
func lexNumeral(l *lexer, startLine, startCol int) stateFn {
	for numeralRune(l.peek()) {
		l.next()
	}
	base := decodeNumeral(l.input[l.start:l.pos])

	for l.peek() == '又' {
		save := l.pos
		l.next() // 又
		runStart := l.pos
		for numeralRune(l.peek()) {
			l.next()
		}
		if l.pos == runStart {
			l.pos = save
			break
		}
		coeffRun := l.input[runStart:l.pos]
		unit := l.peek()
		if !fractionUnitRune(unit) {
			l.pos = save
			break
		}
		l.next() // consume the unit rune
		coeff := decodeIntRun(coeffRun)
		base = applyFractionGroup(base, coeff, unit)
	}

	end := l.posAt(l.pos)
	rng := Range{Start: Pos{Offset: l.start, Line: startLine, Col: startCol}, End: end}
	text := string(l.input[l.start:l.pos])
	if base.isFloat {
		l.emit(&Token{Kind: FloatNum, Text: text, Range: rng, FloatVal: base.floatVal})
	} else {
		l.emit(&Token{Kind: IntNum, Text: text, Range: rng, IntVal: base.intVal})
	}
	l.consume()
	return lexGround
}

func lexKeywordOrError(l *lexer, startLine, startCol int) stateFn {
	remaining := l.input[l.pos:]
	kind, length, ok := longestKeyword(remaining)
	if !ok {
		return l.errorf("unrecognized character %q", string(l.peek()))
	}
	for i := 0; i < length; i++ {
		l.next()
	}
	l.emitKeyword(kind, l.start, startLine, startCol)
	return lexGround
}
