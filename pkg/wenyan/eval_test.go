package wenyan

import (
	"bytes"
	"testing"
)

func run(t *testing.T, src string) string {
	t.Helper()
	toks, err := Lex(src, &Config{})
	if err != nil {
		t.Fatalf("Lex(%q): %v", src, err)
	}
	toks, err = ExpandMacros(toks)
	if err != nil {
		t.Fatalf("ExpandMacros: %v", err)
	}
	prog, err := Parse(toks)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	var buf bytes.Buffer
	ev := NewEvaluator(&Config{}, &buf)
	if err := ev.Run(prog); err != nil {
		t.Fatalf("Run(%q): %v", src, err)
	}
	return buf.String()
}

func TestEvalHello(t *testing.T) {
	got := run(t, "「「問天地好在」」書之")
	want := "問天地好在"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEvalArithmetic(t *testing.T) {
	got := run(t, "加一以二書之")
	want := "3"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEvalArithmeticOfPreposition(t *testing.T) {
	// 減 A 於 B means A - B (於 keeps B in the stated RHS position).
	got := run(t, "減十於三書之")
	want := "7"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEvalIfTrueBranch(t *testing.T) {
	src := "吾有一數曰五名之曰「甲」若「甲」等於五者「「對」」書之若其不然者「「錯」」書之云云"
	got := run(t, src)
	if got != "對" {
		t.Errorf("got %q, want 對", got)
	}
}

func TestEvalFunctionCallReturnsValue(t *testing.T) {
	src := "吾有一術。名之曰「加法」。" +
		"欲行是術必先得二數曰「甲」曰「乙」乃行是術曰加「甲」以「乙」乃得矣是謂「加法」之術也" +
		"施「加法」於三於四書之"
	got := run(t, src)
	if got != "7" {
		t.Errorf("got %q, want 7", got)
	}
}

func TestEvalForEnumTimes(t *testing.T) {
	// 名之曰 always binds in the current scope, so an accumulator must use
	// 昔之...今...是矣 (assignment, which walks up to the enclosing scope)
	// rather than re-binding a fresh, loop-body-local 甲 each iteration.
	src := "吾有一數曰零名之曰「甲」為是三遍加一以「甲」昔之「甲」者今其是矣云云「甲」書之"
	got := run(t, src)
	if got != "3" {
		t.Errorf("got %q, want 3", got)
	}
}

func TestEvalThrowCaughtByTry(t *testing.T) {
	src := "姑妄行此嗚呼「「壞事」」如其有「壞事」之禍歟「「已救」」書之乃止是遍"
	got := run(t, src)
	if got != "已救" {
		t.Errorf("got %q, want 已救", got)
	}
}

func TestEvalUncaughtThrowIsRuntimeError(t *testing.T) {
	toks, _ := Lex("嗚呼「「壞事」」", &Config{})
	toks, _ = ExpandMacros(toks)
	prog, err := Parse(toks)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var buf bytes.Buffer
	ev := NewEvaluator(&Config{}, &buf)
	if err := ev.Run(prog); err == nil {
		t.Fatal("expected an uncaught-throw RuntimeError")
	} else if _, ok := err.(*RuntimeError); !ok {
		t.Fatalf("expected *RuntimeError, got %T", err)
	}
}

func TestEvalArrayPushAndLength(t *testing.T) {
	src := "吾有一列名之曰「甲」充五入「甲」「甲」之長書之"
	got := run(t, src)
	if got != "1" {
		t.Errorf("got %q, want 1", got)
	}
}

func TestDisplayValueBool(t *testing.T) {
	got := run(t, "吾有一爻曰陽名之曰「甲」「甲」書之")
	if got != "陽" {
		t.Errorf("got %q, want 陽", got)
	}
}
