package wenyan

import (
	"fmt"
	"math/big"
)

// This file is the hand-written recursive-descent parser, grounded on the
// teacher's parse.go in shape only: a cursor over a flat token slice with
// peek/next/expect helpers, errors collected as a GrammarError rather than
// panicking, building typed nodes statement by statement. The teacher's own
// parse.go instead drives a generic Statement/keyword table to support
// YANG's extensible keyword set (see ast.go's comment); Wenyan's grammar is
// fixed, so each production gets its own parse function, matching the
// convention already used by goyang for well-known productions such as
// parseDescription in the teacher's identity.go-adjacent helpers.

type parser struct {
	toks []*Token
	pos  int
}

func newParser(toks []*Token) *parser {
	return &parser{toks: toks}
}

func (p *parser) peek() *Token {
	if p.pos >= len(p.toks) {
		return nil
	}
	return p.toks[p.pos]
}

func (p *parser) peekAt(n int) *Token {
	idx := p.pos + n
	if idx < 0 || idx >= len(p.toks) {
		return nil
	}
	return p.toks[idx]
}

func (p *parser) next() *Token {
	t := p.peek()
	if t != nil {
		p.pos++
	}
	return t
}

func (p *parser) atEOF() bool {
	return p.peek() == nil
}

func (p *parser) errf(rng Range, format string, args ...interface{}) error {
	return &GrammarError{Range: rng, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) errHere(format string, args ...interface{}) error {
	if t := p.peek(); t != nil {
		return p.errf(t.Range, format, args...)
	}
	var zero Range
	return p.errf(zero, format+" (at end of input)", args...)
}

func (p *parser) expectKW(kw KeywordKind) (*Token, error) {
	t := p.peek()
	if t == nil || !t.Is(kw) {
		return nil, p.errHere("expected %s", kw)
	}
	return p.next(), nil
}

func (p *parser) is(kw KeywordKind) bool {
	t := p.peek()
	return t != nil && t.Kind == Keyword && t.KW == kw
}

func (p *parser) isAt(n int, kw KeywordKind) bool {
	t := p.peekAt(n)
	return t != nil && t.Kind == Keyword && t.KW == kw
}

// Parse turns a token stream (already macro-expanded) into a Program.
func Parse(toks []*Token) (*Program, error) {
	p := newParser(toks)
	var stmts []Node
	for !p.atEOF() {
		st, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
	}
	return &Program{Stmts: stmts}, nil
}

func (p *parser) parseBlock(ends ...KeywordKind) ([]Node, error) {
	var stmts []Node
	for {
		if p.atEOF() {
			return nil, p.errHere("unexpected end of input inside block")
		}
		for _, e := range ends {
			if p.is(e) {
				return stmts, nil
			}
		}
		st, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
	}
}

func (p *parser) parseStmt() (Node, error) {
	t := p.peek()
	switch {
	case t.Is(KwDeclare):
		return p.parseDeclareHead()
	case t.Is(KwNameIntro):
		return p.parseNameStmt()
	case t.Is(KwIf), t.Is(KwIfTrue), t.Is(KwIfFalse):
		return p.parseIf()
	case t.Is(KwForStart):
		return p.parseFor()
	case t.Is(KwTryStart):
		return p.parseTry()
	case t.Is(KwThrow):
		return p.parseThrow()
	case t.Is(KwAssignOf):
		return p.parseAssign()
	case t.Is(KwImportStart):
		return p.parseImport()
	case t.Is(KwPrint):
		tok := p.next()
		return Print{base: base{tok.Range}}, nil
	case t.Is(KwReturnVal), t.Is(KwReturnIt), t.Is(KwReturnVoid):
		return p.parseReturn()
	case t.Is(KwComment1), t.Is(KwComment2), t.Is(KwComment3):
		return p.parseComment()
	default:
		v, err := p.parseExprStmtHead()
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

// ---- Declarations ----

func (p *parser) parseType() (KeywordKind, error) {
	t := p.peek()
	if t == nil || t.Kind != Keyword {
		return 0, p.errHere("expected a type keyword")
	}
	switch t.KW {
	case KwTypeNumber, KwTypeArray, KwTypeString, KwTypeBool, KwTypeObject, KwTypeUnit:
		p.next()
		return t.KW, nil
	}
	return 0, p.errHere("expected a type keyword, got %s", t.KW)
}

func (p *parser) parseCount() (int, error) {
	t := p.peek()
	if t == nil || (t.Kind != IntNum) {
		return 0, p.errHere("expected a count")
	}
	p.next()
	if !t.IntVal.IsInt64() {
		return 0, p.errf(t.Range, "count too large")
	}
	return int(t.IntVal.Int64()), nil
}

// parseDeclareHead parses the shared 吾有/今有 N prefix and then, per the
// two-token lookahead the grammar calls for, dispatches on the token that
// follows the count: 術 begins a function definition, 物 begins an object
// definition, anything else is a plain declare/define tail.
func (p *parser) parseDeclareHead() (Node, error) {
	start := p.next() // 吾有/今有
	count, err := p.parseCount()
	if err != nil {
		return nil, err
	}
	t := p.peek()
	if t == nil || t.Kind != Keyword {
		return nil, p.errHere("expected a type, 術, or 物 after the count")
	}
	switch t.KW {
	case KwProcType:
		p.next()
		return p.parseFunctionDef(start)
	case KwTypeObject:
		p.next()
		return p.parseObjectDef(start, count)
	default:
		return p.parseDeclareTail(start, count)
	}
}

// parseDeclareTail parses TYPE 曰 v1 曰 v2 ... , optionally immediately
// followed by a 名之曰 name1 曰 name2 ... name list (see parseNameList)
// which fuses it into a Define per spec section 3.
func (p *parser) parseDeclareTail(start *Token, count int) (Node, error) {
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}

	var inits []Value
	for p.is(KwYue) {
		p.next()
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		inits = append(inits, v)
	}
	if len(inits) > count {
		return nil, p.errf(start.Range, "more initializers (%d) than declared count (%d)", len(inits), count)
	}

	if p.is(KwNameIntro) {
		names, err := p.parseNameList()
		if err != nil {
			return nil, err
		}
		return Define{base: base{start.Range}, Count: count, Type: typ, Inits: inits, Names: names}, nil
	}

	return Declare{base: base{start.Range}, Count: count, Type: typ, Inits: inits}, nil
}

func (p *parser) parseNameList() ([]string, error) {
	var names []string
	for p.is(KwNameIntro) {
		p.next()
		id, err := p.expectIdentText()
		if err != nil {
			return nil, err
		}
		names = append(names, id)
		for p.is(KwYue) {
			p.next()
			id, err := p.expectIdentText()
			if err != nil {
				return nil, err
			}
			names = append(names, id)
		}
	}
	return names, nil
}

func (p *parser) expectIdentText() (string, error) {
	t := p.peek()
	if t == nil || t.Kind != Identifier {
		return "", p.errHere("expected an identifier")
	}
	p.next()
	return t.Text, nil
}

func (p *parser) parseNameStmt() (Node, error) {
	start := p.peek()
	names, err := p.parseNameList()
	if err != nil {
		return nil, err
	}
	return NameStmt{base: base{start.Range}, Names: names}, nil
}

// ---- Function definitions ----

// parseFunctionDef parses the 名之曰 head name and 欲行是術...是謂...之術也
// body following a 吾有 N 術 head already consumed by parseDeclareHead.
func (p *parser) parseFunctionDef(start *Token) (Node, error) {
	names, err := p.parseNameList()
	if err != nil {
		return nil, err
	}
	if len(names) != 1 {
		return nil, p.errf(start.Range, "function definition head must name exactly one identifier, got %d", len(names))
	}
	name := names[0]

	if _, err := p.expectKW(KwParamsIntro); err != nil {
		return nil, err
	}

	var groups []ParamGroup
	var rest *RestParam
	for p.is(KwParamGet) || p.is(KwRestParam) {
		if p.is(KwRestParam) {
			p.next()
			name, err := p.expectIdentText()
			if err != nil {
				return nil, err
			}
			rest = &RestParam{Name: name}
			continue
		}
		p.next() // 必先得
		count, err := p.parseCount()
		if err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		var names []string
		for p.is(KwYue) {
			p.next()
			name, err := p.expectIdentText()
			if err != nil {
				return nil, err
			}
			names = append(names, name)
		}
		groups = append(groups, ParamGroup{Count: count, Type: typ, Names: names})
	}

	if _, err := p.expectKW(KwBodyIntro); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(KwIsCalled)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKW(KwIsCalled); err != nil {
		return nil, err
	}
	endTok := p.peek()
	endName, err := p.expectIdentText()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKW(KwOfProc); err != nil {
		return nil, err
	}
	if endName != name {
		return nil, p.errf(endTok.Range, "function tail name %q does not match head name %q", endName, name)
	}

	return FunctionDef{
		base:        base{start.Range},
		Name:        name,
		ParamGroups: groups,
		RestParam:   rest,
		Body:        body,
		EndName:     endName,
	}, nil
}

// ---- Return ----

func (p *parser) parseReturn() (Node, error) {
	switch {
	case p.is(KwReturnIt):
		t := p.next()
		return Return{base: base{t.Range}, Mode: ReturnIt}, nil
	case p.is(KwReturnVoid):
		t := p.next()
		return Return{base: base{t.Range}, Mode: ReturnVoid}, nil
	default:
		t, err := p.expectKW(KwReturnVal)
		if err != nil {
			return nil, err
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		return Return{base: base{t.Range}, Mode: ReturnExplicit, Val: v}, nil
	}
}

// ---- If ----

func (p *parser) parseIf() (Node, error) {
	start := p.peek()
	var clauses []IfClause
	clause, err := p.parseIfClauseHead()
	if err != nil {
		return nil, err
	}
	clauses = append(clauses, clause)

	var elseBody []Node
	hasElse := false
	for p.is(KwElseIf) {
		p.next()
		clause, err := p.parseIfClauseHead()
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)
	}
	if p.is(KwIfFalse) {
		p.next()
		body, err := p.parseBlock(KwLoopEnd)
		if err != nil {
			return nil, err
		}
		elseBody = body
		hasElse = true
	}
	if _, err := p.expectKW(KwLoopEnd); err != nil {
		return nil, err
	}
	return If{base: base{start.Range}, Clauses: clauses, ElseBody: elseBody, HasElse: hasElse}, nil
}

// parseIfClauseHead handles 若 <logic> 者 <block> and the degenerate
// 若其然者/若其不然者 <block> head form, for the first clause and for each
// clause after 若非.
func (p *parser) parseIfClauseHead() (IfClause, error) {
	if p.is(KwIfTrue) || p.is(KwIfFalse) {
		truth := p.is(KwIfTrue)
		p.next()
		body, err := p.parseBlock(KwElseIf, KwIfFalse, KwLoopEnd)
		if err != nil {
			return IfClause{}, err
		}
		return IfClause{Degenerate: &truth, Body: body}, nil
	}
	if _, err := p.expectKW(KwIf); err != nil {
		return IfClause{}, err
	}
	cond, err := p.parseLogicChain()
	if err != nil {
		return IfClause{}, err
	}
	if _, err := p.expectKW(KwCondEnd); err != nil {
		return IfClause{}, err
	}
	body, err := p.parseBlock(KwElseIf, KwIfFalse, KwLoopEnd)
	if err != nil {
		return IfClause{}, err
	}
	return IfClause{Cond: cond, Body: body}, nil
}

// ---- For ----

func (p *parser) parseFor() (Node, error) {
	start, err := p.expectKW(KwForStart)
	if err != nil {
		return nil, err
	}
	if p.is(KwWhileTrue) {
		p.next()
		body, err := p.parseBlock(KwLoopEnd)
		if err != nil {
			return nil, err
		}
		if _, err := p.expectKW(KwLoopEnd); err != nil {
			return nil, err
		}
		return For{base: base{start.Range}, Variant: ForWhile, Body: body}, nil
	}

	count, err := p.parseCount()
	if err == nil {
		if _, err := p.expectKW(KwForEnumTimes); err != nil {
			return nil, err
		}
		body, err := p.parseBlock(KwLoopEnd)
		if err != nil {
			return nil, err
		}
		if _, err := p.expectKW(KwLoopEnd); err != nil {
			return nil, err
		}
		return For{base: base{start.Range}, Variant: ForEnum, Count: IntLit{base: base{start.Range}, Val: big.NewInt(int64(count))}, Body: body}, nil
	}

	arrName, err := p.expectIdentText()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKW(KwForArrIn); err != nil {
		return nil, err
	}
	if _, err := p.expectKW(KwForArrEach); err != nil {
		return nil, err
	}
	elemName, err := p.expectIdentText()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock(KwLoopEnd)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKW(KwLoopEnd); err != nil {
		return nil, err
	}
	return For{base: base{start.Range}, Variant: ForArray, ArrayName: arrName, ElemName: elemName, Body: body}, nil
}

// ---- Try/throw ----

func (p *parser) parseTry() (Node, error) {
	start, err := p.expectKW(KwTryStart)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock(KwCatchTyped, KwCatchAll, KwTryEnd)
	if err != nil {
		return nil, err
	}
	var catches []Catch
	sawCatchAll := false
	for p.is(KwCatchTyped) || p.is(KwCatchAll) {
		if sawCatchAll {
			return nil, p.errHere("不知何禍歟 catch-all must be the last catch clause")
		}
		if p.is(KwCatchAll) {
			p.next()
			cbody, err := p.parseBlock(KwCatchTyped, KwCatchAll, KwTryEnd)
			if err != nil {
				return nil, err
			}
			catches = append(catches, Catch{Typed: false, Body: cbody})
			sawCatchAll = true
			continue
		}
		p.next() // 如其有
		errName, err := p.expectIdentText()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectKW(KwCatchWhat); err != nil {
			return nil, err
		}
		bind := ""
		hasBind := false
		if p.is(KwNameIntro) {
			p.next()
			name, err := p.expectIdentText()
			if err != nil {
				return nil, err
			}
			bind = name
			hasBind = true
		}
		cbody, err := p.parseBlock(KwCatchTyped, KwCatchAll, KwTryEnd)
		if err != nil {
			return nil, err
		}
		catches = append(catches, Catch{Typed: true, ErrName: errName, Bind: bind, HasBind: hasBind, Body: cbody})
	}
	if _, err := p.expectKW(KwTryEnd); err != nil {
		return nil, err
	}
	return Try{base: base{start.Range}, Body: body, Catches: catches}, nil
}

func (p *parser) parseThrow() (Node, error) {
	start, err := p.expectKW(KwThrow)
	if err != nil {
		return nil, err
	}
	tag, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	hasDetail := false
	var detail Value
	if p.is(KwOfError) {
		p.next()
		d, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		detail = d
		hasDetail = true
	}
	return Throw{base: base{start.Range}, Tag: tag, Detail: detail, HasDetail: hasDetail}, nil
}

// ---- Assignment ----

func (p *parser) parseAssign() (Node, error) {
	start, err := p.expectKW(KwAssignOf)
	if err != nil {
		return nil, err
	}
	target, err := p.expectIdentText()
	if err != nil {
		return nil, err
	}
	var targetIdx Value
	if p.is(KwSubscript) {
		p.next()
		idx, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		targetIdx = idx
	}
	// 者 here lexes as KwCondEnd, the same literal the if-clause grammar
	// uses; there is no separate KwAssignThat token in the stream.
	if _, err := p.expectKW(KwCondEnd); err != nil {
		return nil, err
	}
	if p.is(KwAssignNow) {
		p.next()
		if p.is(KwDeleted) {
			p.next()
			return Assign{base: base{start.Range}, Target: target, TargetIndex: targetIdx, Delete: true}, nil
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectKW(KwAssignIs); err != nil {
			return nil, err
		}
		return Assign{base: base{start.Range}, Target: target, TargetIndex: targetIdx, Value: v}, nil
	}
	return nil, p.errHere("expected 今 in assignment")
}

// ---- Object definitions ----

// parseObjectDef parses the 名之曰 head name and 其物如是...是謂...之物也
// body following a 吾有 N 物 head already consumed by parseDeclareHead, then
// the trailing 名之曰 bind-name list, whose length must equal count.
func (p *parser) parseObjectDef(start *Token, count int) (Node, error) {
	headNames, err := p.parseNameList()
	if err != nil {
		return nil, err
	}
	if len(headNames) != 1 {
		return nil, p.errf(start.Range, "object definition head must name exactly one identifier, got %d", len(headNames))
	}
	name := headNames[0]

	if _, err := p.expectKW(KwObjBody); err != nil {
		return nil, err
	}
	var props []ObjectProp
	for {
		key, err := p.expectIdentText()
		if err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectKW(KwYue); err != nil {
			return nil, err
		}
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		props = append(props, ObjectProp{Key: key, Type: typ, Value: val})
		if p.is(KwLoopEnd) {
			break
		}
	}
	if _, err := p.expectKW(KwLoopEnd); err != nil {
		return nil, err
	}
	if _, err := p.expectKW(KwIsCalled); err != nil {
		return nil, err
	}
	endTok := p.peek()
	endName, err := p.expectIdentText()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKW(KwOfObj); err != nil {
		return nil, err
	}
	if endName != name {
		return nil, p.errf(endTok.Range, "object tail name %q does not match head name %q", endName, name)
	}

	names, err := p.parseNameList()
	if err != nil {
		return nil, err
	}
	if len(names) != count {
		return nil, p.errf(start.Range, "object declares %d name slot(s) but %d were bound", count, len(names))
	}
	return ObjectDef{base: base{start.Range}, Name: name, Count: count, Names: names, Props: props, EndName: endName}, nil
}

// ---- Import ----

func (p *parser) parseImport() (Node, error) {
	start, err := p.expectKW(KwImportStart)
	if err != nil {
		return nil, err
	}
	var path []string
	for {
		part, err := p.expectIdentText()
		if err != nil {
			return nil, err
		}
		path = append(path, part)
		if p.is(KwImportSep) {
			p.next()
			continue
		}
		break
	}
	var imported []string
	hasImported := false
	if p.is(KwImportNames) {
		p.next()
		for {
			name, err := p.expectIdentText()
			if err != nil {
				return nil, err
			}
			imported = append(imported, name)
			if p.is(KwImportOf) {
				p.next()
				continue
			}
			break
		}
		hasImported = true
	}
	if _, err := p.expectKW(KwImportEnd); err != nil {
		return nil, err
	}
	return Import{base: base{start.Range}, Path: path, Imported: imported, HasImported: hasImported}, nil
}

// ---- Comments ----

func (p *parser) parseComment() (Node, error) {
	t := p.next()
	txt, err := p.expectStringText()
	if err != nil {
		return nil, err
	}
	return Comment{base: base{t.Range}, Marker: t.KW, Text: txt}, nil
}

func (p *parser) expectStringText() (string, error) {
	t := p.peek()
	if t == nil || t.Kind != StringLit {
		return "", p.errHere("expected a string literal")
	}
	p.next()
	return t.Text, nil
}

// ---- Expression statements (bare value productions used as statements) ----

func (p *parser) parseExprStmtHead() (Node, error) {
	t := p.peek()
	switch {
	case t.Is(KwCall):
		c, err := p.parseCall()
		if err != nil {
			return nil, err
		}
		return ExprStmt{base: base{t.Range}, Expr: c}, nil
	case t.Is(KwPush):
		e, err := p.parsePush()
		if err != nil {
			return nil, err
		}
		return ExprStmt{base: base{t.Range}, Expr: e}, nil
	case t.Is(KwConcat):
		e, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		return ExprStmt{base: base{t.Range}, Expr: e}, nil
	case t.Is(KwAdd), t.Is(KwSub), t.Is(KwMul), t.Is(KwDiv):
		e, err := p.parseMath()
		if err != nil {
			return nil, err
		}
		return ExprStmt{base: base{t.Range}, Expr: e}, nil
	case t.Is(KwPrepWith):
		// 以 a ƒ: the postfix one-argument call form, ƒ(a).
		p.next()
		a, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		fn, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		return ExprStmt{base: base{t.Range}, Expr: Call{base: base{t.Range}, Fn: fn, Args: []Value{a}}}, nil
	default:
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		return ExprStmt{base: base{v.SrcRange()}, Expr: v}, nil
	}
}

func (p *parser) parsePush() (Node, error) {
	start, err := p.expectKW(KwPush)
	if err != nil {
		return nil, err
	}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKW(KwInto); err != nil {
		return nil, err
	}
	arr, err := p.expectIdentText()
	if err != nil {
		return nil, err
	}
	return Push{base: base{start.Range}, Array: arr, Val: v}, nil
}

func (p *parser) parseConcat() (Node, error) {
	start, err := p.expectKW(KwConcat)
	if err != nil {
		return nil, err
	}
	a, err := p.expectIdentText()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKW(KwWithAnd); err != nil {
		return nil, err
	}
	b, err := p.expectIdentText()
	if err != nil {
		return nil, err
	}
	return Concat{base: base{start.Range}, A: a, B: b}, nil
}

// parseCall handles the prefix form 施 fn 於 arg1 於 arg2 ...; the postfix
// 以 arg fn form is parsed by parseExprStmtHead into the same Call node.
func (p *parser) parseCall() (Node, error) {
	start, err := p.expectKW(KwCall)
	if err != nil {
		return nil, err
	}
	fn, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	var args []Value
	for p.is(KwPrepOf) {
		p.next()
		a, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	return Call{base: base{start.Range}, Fn: fn, Args: args}, nil
}

func (p *parser) parseMath() (Node, error) {
	opTok := p.next()
	a, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	prep := KwPrepOf
	if p.is(KwPrepOf) || p.is(KwPrepWith) {
		prepTok := p.next()
		prep = prepTok.KW
	}
	b, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	mod := false
	if p.is(KwModSuffix) {
		p.next()
		mod = true
	}
	return Math{base: base{opTok.Range}, Op: opTok.KW, A: a, Prep: prep, B: b, Mod: mod}, nil
}

// ---- Values ----

func (p *parser) parseValue() (Value, error) {
	t := p.peek()
	if t == nil {
		return nil, p.errHere("expected a value")
	}
	var v Value
	switch {
	case t.Kind == StringLit:
		p.next()
		v = StrLit{base: base{t.Range}, Val: t.Text}
	case t.Kind == IntNum:
		p.next()
		v = IntLit{base: base{t.Range}, Val: t.IntVal}
	case t.Kind == FloatNum:
		p.next()
		v = FloatLit{base: base{t.Range}, Val: t.FloatVal}
	case t.Kind == Identifier:
		p.next()
		v = IdentRef{base: base{t.Range}, Name: t.Text}
	case t.Is(KwBoolYin):
		p.next()
		v = BoolLit{base: base{t.Range}, Val: false}
	case t.Is(KwBoolYang):
		p.next()
		v = BoolLit{base: base{t.Range}, Val: true}
	case t.Is(KwIt):
		p.next()
		v = ItRef{base: base{t.Range}}
	default:
		return nil, p.errHere("expected a value, got %s", describeTok(t))
	}
	return p.parsePostfix(v)
}

// parsePostfix absorbs 之 <index>, 之長, 其餘 suffixes onto an already
// parsed value, per spec section 3's subscript/length/rest productions.
func (p *parser) parsePostfix(v Value) (Value, error) {
	for {
		switch {
		case p.is(KwLength):
			t := p.next()
			v = Length{base: base{v.SrcRange().cover(t.Range)}, Target: v}
		case p.is(KwRest):
			t := p.next()
			v = Rest{base: base{v.SrcRange().cover(t.Range)}, Target: v}
		case p.is(KwSubscript):
			t := p.next()
			idx, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			v = Subscript{base: base{v.SrcRange().cover(idx.SrcRange()).cover(t.Range)}, Target: v, Index: idx}
		default:
			return v, nil
		}
	}
}

// parseLogicChain parses the if_expression production: a left-associative
// run of values joined by comparison/boolean operators, with no operator
// precedence distinction per spec section 3.
func (p *parser) parseLogicChain() (*LogicChain, error) {
	start := p.peek()
	first, err := p.parseLogicOperand()
	if err != nil {
		return nil, err
	}
	chain := &LogicChain{base: base{start.Range}, Operands: []Value{first}}
	for p.isLogicOp() {
		opTok := p.next()
		v, err := p.parseLogicOperand()
		if err != nil {
			return nil, err
		}
		chain.Ops = append(chain.Ops, opTok.KW)
		chain.Operands = append(chain.Operands, v)
	}
	return chain, nil
}

func (p *parser) isLogicOp() bool {
	switch {
	case p.is(KwEq), p.is(KwNeq), p.is(KwGt), p.is(KwLt), p.is(KwGte), p.is(KwLte), p.is(KwAnd), p.is(KwOr):
		return true
	}
	return false
}

// parseLogicOperand handles a value, or 變 <value> for negation.
func (p *parser) parseLogicOperand() (Value, error) {
	if p.is(KwNot) {
		t := p.next()
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		return Not{base: base{t.Range.cover(v.SrcRange())}, Operand: v}, nil
	}
	return p.parseValue()
}

func describeTok(t *Token) string {
	if t.Kind == Keyword {
		return t.KW.String()
	}
	return t.Kind.String()
}
