package wenyan

// Macro expansion runs as a token-stream rewrite between Lex and Parse, the
// same position the teacher's pipeline keeps free for a future preprocessor
// pass (lex.go hands parse.go a flat token slice with no interleaving).
// 或云 PATTERN 蓋謂 EXPANSION defines a rewrite rule; occurrences of PATTERN
// after the definition in the token stream are replaced by EXPANSION. Per spec section
// 4.2, definitions do not nest and do not apply inside string literals,
// which is automatic here since strings are already opaque StringLit tokens
// by the time this pass runs.

// macroRule is one 或云...蓋謂...云云 definition: a literal token sequence
// to match, and the tokens to splice in its place.
type macroRule struct {
	pattern    []*Token
	expansion  []*Token
}

// tokensEqual compares two tokens for macro-matching purposes: same kind,
// and for keywords the same KW, for literals the same Text/IntVal/FloatVal.
// Source positions are deliberately ignored.
func tokensEqual(a, b *Token) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Keyword:
		return a.KW == b.KW
	case IntNum:
		return a.IntVal != nil && b.IntVal != nil && a.IntVal.Cmp(b.IntVal) == 0
	case FloatNum:
		return a.FloatVal == b.FloatVal
	default:
		return a.Text == b.Text
	}
}

// matchAt reports whether rule.pattern occurs in toks starting at i.
func (rule macroRule) matchAt(toks []*Token, i int) bool {
	if i+len(rule.pattern) > len(toks) {
		return false
	}
	for j, pt := range rule.pattern {
		if !tokensEqual(pt, toks[i+j]) {
			return false
		}
	}
	return true
}

// ExpandMacros extracts every 或云 PATTERN 蓋謂 EXPANSION 云云 definition
// from toks, removes the definitions from the stream, and rewrites every
// later occurrence of PATTERN to EXPANSION; tokens before a definition are
// left alone. The rules in effect are applied one after another in
// definition order, so tokens spliced in by one rule can be matched by a
// rule defined after it, but not by itself or by a rule defined before it.
func ExpandMacros(toks []*Token) ([]*Token, error) {
	var rules []macroRule
	var body, seg []*Token
	flush := func() {
		for _, rule := range rules {
			seg = applyRule(rule, seg)
		}
		body = append(body, seg...)
		seg = nil
	}

	i := 0
	for i < len(toks) {
		t := toks[i]
		if t.Is(KwMacroFrom) {
			rule, next, err := parseMacroDef(toks, i)
			if err != nil {
				return nil, err
			}
			flush()
			rules = append(rules, rule)
			i = next
			continue
		}
		seg = append(seg, t)
		i++
	}

	flush()
	return body, nil
}

// parseMacroDef reads 或云 <pattern tokens>+ 蓋謂 <expansion tokens>+ 云云
// starting at toks[i] (toks[i] is the 或云 token), returning the rule and
// the index just past the closing 云云.
func parseMacroDef(toks []*Token, i int) (macroRule, int, error) {
	start := i
	i++ // skip 或云
	var pattern []*Token
	for i < len(toks) && !toks[i].Is(KwMacroTo) {
		pattern = append(pattern, toks[i])
		i++
	}
	if i >= len(toks) {
		return macroRule{}, 0, &GrammarError{
			Range:   toks[start].Range,
			Message: "或云 without matching 蓋謂",
		}
	}
	i++ // skip 蓋謂
	var expansion []*Token
	for i < len(toks) && !toks[i].Is(KwLoopEnd) {
		expansion = append(expansion, toks[i])
		i++
	}
	if i >= len(toks) {
		return macroRule{}, 0, &GrammarError{
			Range:   toks[start].Range,
			Message: "或云...蓋謂 without closing 云云",
		}
	}
	i++ // skip 云云
	if len(pattern) == 0 {
		return macroRule{}, 0, &GrammarError{
			Range:   toks[start].Range,
			Message: "或云 with empty pattern",
		}
	}
	return macroRule{pattern: pattern, expansion: expansion}, i, nil
}

// applyRule rewrites every non-overlapping left-to-right occurrence of
// rule.pattern in toks with rule.expansion.
func applyRule(rule macroRule, toks []*Token) []*Token {
	var out []*Token
	i := 0
	for i < len(toks) {
		if rule.matchAt(toks, i) {
			out = append(out, rule.expansion...)
			i += len(rule.pattern)
			continue
		}
		out = append(out, toks[i])
		i++
	}
	return out
}
