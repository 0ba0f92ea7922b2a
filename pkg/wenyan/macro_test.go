package wenyan

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExpandMacrosRewritesOccurrences(t *testing.T) {
	src := "或云「「甲」」蓋謂「「一二三」」云云書之「「甲」」"
	toks, err := Lex(src, &Config{})
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	out, err := ExpandMacros(toks)
	if err != nil {
		t.Fatalf("ExpandMacros: %v", err)
	}
	want := []tokSummary{
		{Kind: Keyword, KW: KwPrint, Text: "書之"},
		{Kind: StringLit, Text: "一二三"},
	}
	if diff := cmp.Diff(want, summarize(out)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandMacrosLeavesNonMatchingTokensAlone(t *testing.T) {
	src := "書之「「甲」」"
	toks, _ := Lex(src, &Config{})
	out, err := ExpandMacros(toks)
	if err != nil {
		t.Fatalf("ExpandMacros: %v", err)
	}
	if diff := cmp.Diff(summarize(toks), summarize(out)); diff != "" {
		t.Errorf("stream changed with no macro defined (-before +after):\n%s", diff)
	}
}

func TestExpandMacrosUnterminatedDefinition(t *testing.T) {
	toks, _ := Lex("或云「「甲」」蓋謂書之", &Config{})
	if _, err := ExpandMacros(toks); err == nil {
		t.Fatal("expected a GrammarError for a 或云...蓋謂 with no closing 云云")
	}
}

func TestExpandMacrosEmptyPattern(t *testing.T) {
	toks, _ := Lex("或云蓋謂書之云云", &Config{})
	if _, err := ExpandMacros(toks); err == nil {
		t.Fatal("expected a GrammarError for an empty macro pattern")
	}
}
