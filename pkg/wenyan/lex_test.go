package wenyan

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// tokSummary strips position info so tests can compare the parts that
// matter (kind/keyword/text) without hand-computing every offset, the same
// simplification the teacher's lex_test.go applies to its own token dumps.
type tokSummary struct {
	Kind Kind
	KW   KeywordKind
	Text string
}

func summarize(toks []*Token) []tokSummary {
	out := make([]tokSummary, len(toks))
	for i, t := range toks {
		out[i] = tokSummary{Kind: t.Kind, KW: t.KW, Text: t.Text}
	}
	return out
}

func TestLexKeywords(t *testing.T) {
	toks, err := Lex("吾有一數", &Config{})
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	want := []tokSummary{
		{Kind: Keyword, KW: KwDeclare, Text: "吾有"},
		{Kind: IntNum, Text: "一"},
		{Kind: Keyword, KW: KwTypeNumber, Text: "數"},
	}
	if diff := cmp.Diff(want, summarize(toks)); diff != "" {
		t.Errorf("Lex(吾有一數) mismatch (-want +got):\n%s", diff)
	}
}

func TestLexLongestMatch(t *testing.T) {
	// 若其然者 must not be lexed as 若 followed by garbage: the trie scan
	// must greedily prefer the longest terminal match.
	toks, err := Lex("若其然者", &Config{})
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	if len(toks) != 1 || toks[0].KW != KwIfTrue {
		t.Fatalf("Lex(若其然者) = %v, want a single KwIfTrue token", toks)
	}
}

func TestLexStringsAndIdentifiers(t *testing.T) {
	toks, err := Lex("「「問天地好在」」「甲」", &Config{})
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	want := []tokSummary{
		{Kind: StringLit, Text: "問天地好在"},
		{Kind: Identifier, Text: "甲"},
	}
	if diff := cmp.Diff(want, summarize(toks), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLexGuillemetString(t *testing.T) {
	toks, err := Lex("『道可道』", &Config{})
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	if len(toks) != 1 || toks[0].Kind != StringLit || toks[0].Text != "道可道" {
		t.Fatalf("Lex(『道可道』) = %v", toks)
	}
}

func TestLexUnterminatedString(t *testing.T) {
	if _, err := Lex("「「未完", &Config{}); err == nil {
		t.Fatal("expected a GrammarError for an unterminated string")
	}
}

func TestLexSkipsWhitespaceAndPunctuation(t *testing.T) {
	toks, err := Lex("吾有。一 數矣", &Config{})
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	if len(toks) != 3 {
		t.Fatalf("Lex produced %d tokens, want 3: %v", len(toks), toks)
	}
}

func TestLexIllegalCharacter(t *testing.T) {
	if _, err := Lex("＠", &Config{}); err == nil {
		t.Fatal("expected a GrammarError for an unrecognized character")
	} else if _, ok := err.(*GrammarError); !ok {
		t.Fatalf("expected *GrammarError, got %T", err)
	}
}

func TestLexTotality(t *testing.T) {
	// Every legal Wenyan source either lexes completely or yields exactly
	// one GrammarError; it must never silently drop trailing input.
	src := "吾有一數曰五名之曰「甲」書之"
	toks, err := Lex(src, &Config{})
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	if len(toks) == 0 {
		t.Fatal("expected a non-empty token stream")
	}
	last := toks[len(toks)-1]
	if last.KW != KwPrint {
		t.Errorf("last token = %v, want 書之", last)
	}
}
