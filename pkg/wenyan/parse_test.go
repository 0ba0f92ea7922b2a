package wenyan

import (
	"math/big"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func mustLexParse(t *testing.T, src string) *Program {
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
	return prog
}

// rangeIgnore drops source Range fields before comparison; tests assert on
// AST shape, not on exact column numbers, the same simplification the
// teacher's own parse_test.go applies via cmpopts.IgnoreFields. Every node
// keeps its Range in the unexported embedded base struct, so that struct
// must be made visible to cmp before the Range inside it can be ignored.
var rangeIgnore = cmp.Options{
	cmp.Exporter(func(t reflect.Type) bool { return t.PkgPath() == reflect.TypeOf(base{}).PkgPath() }),
	cmpopts.IgnoreTypes(Range{}),
}

var bigIntComparer = cmp.Comparer(func(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
})

func TestParseDeclareAndPrint(t *testing.T) {
	prog := mustLexParse(t, "吾有一數曰五名之曰「甲」書之")
	want := []Node{
		Define{Count: 1, Type: KwTypeNumber, Inits: []Value{IntLit{Val: big.NewInt(5)}}, Names: []string{"甲"}},
		Print{},
	}
	if diff := cmp.Diff(want, prog.Stmts, rangeIgnore, bigIntComparer); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseIfWithoutElse(t *testing.T) {
	src := "若「甲」等於五者書之云云"
	prog := mustLexParse(t, "吾有一數曰五名之曰「甲」"+src)
	if len(prog.Stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Stmts))
	}
	ifNode, ok := prog.Stmts[1].(If)
	if !ok {
		t.Fatalf("expected an If node, got %T", prog.Stmts[1])
	}
	if len(ifNode.Clauses) != 1 || ifNode.HasElse {
		t.Fatalf("If = %+v, want a single clause and no else", ifNode)
	}
}

func TestParseFunctionDefHeadAndTailNameMustMatch(t *testing.T) {
	src := "吾有一術。名之曰「甲」。欲行是術乃行是術曰書之是謂「甲」之術也"
	prog := mustLexParse(t, src)
	fn, ok := prog.Stmts[0].(FunctionDef)
	if !ok {
		t.Fatalf("expected a FunctionDef, got %T", prog.Stmts[0])
	}
	if fn.Name != "甲" || fn.EndName != "甲" {
		t.Errorf("FunctionDef name mismatch: %+v", fn)
	}
}

func TestParseFunctionDefNameMismatchIsGrammarError(t *testing.T) {
	src := "吾有一術。名之曰「甲」。欲行是術乃行是術曰書之是謂「乙」之術也"
	toks, err := Lex(src, &Config{})
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	toks, err = ExpandMacros(toks)
	if err != nil {
		t.Fatalf("ExpandMacros: %v", err)
	}
	if _, err := Parse(toks); err == nil {
		t.Fatal("expected a GrammarError for a mismatched function tail name")
	} else if _, ok := err.(*GrammarError); !ok {
		t.Fatalf("expected *GrammarError, got %T", err)
	}
}

func TestParseFunctionDefHeadMustNameExactlyOne(t *testing.T) {
	src := "吾有一術。欲行是術乃行是術曰書之是謂「甲」之術也"
	toks, err := Lex(src, &Config{})
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	toks, err = ExpandMacros(toks)
	if err != nil {
		t.Fatalf("ExpandMacros: %v", err)
	}
	if _, err := Parse(toks); err == nil {
		t.Fatal("expected a GrammarError for a function head with no name")
	}
}

func TestParseThrowAndTry(t *testing.T) {
	src := "姑妄行此嗚呼「「壞事」」乃止是遍"
	prog := mustLexParse(t, src)
	try, ok := prog.Stmts[0].(Try)
	if !ok {
		t.Fatalf("expected a Try node, got %T", prog.Stmts[0])
	}
	if len(try.Body) != 1 {
		t.Fatalf("Try.Body = %+v, want 1 statement", try.Body)
	}
	if _, ok := try.Body[0].(Throw); !ok {
		t.Fatalf("Try.Body[0] = %T, want Throw", try.Body[0])
	}
}

func TestParseObjectDefHeadCountAndTail(t *testing.T) {
	src := "吾有一物。名之曰「甲」。其物如是。「名」言曰「丙」云云是謂「甲」之物也名之曰「乙」"
	prog := mustLexParse(t, src)
	obj, ok := prog.Stmts[0].(ObjectDef)
	if !ok {
		t.Fatalf("expected an ObjectDef, got %T", prog.Stmts[0])
	}
	if obj.Name != "甲" || obj.EndName != "甲" || obj.Count != 1 || len(obj.Names) != 1 || obj.Names[0] != "乙" {
		t.Errorf("ObjectDef = %+v, want name/tail 甲, count 1, bound name 乙", obj)
	}
}

func TestParseObjectDefNameMismatchIsGrammarError(t *testing.T) {
	src := "吾有一物。名之曰「甲」。其物如是。「名」言曰「丙」云云是謂「乙」之物也名之曰「丙」"
	toks, err := Lex(src, &Config{})
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	toks, err = ExpandMacros(toks)
	if err != nil {
		t.Fatalf("ExpandMacros: %v", err)
	}
	if _, err := Parse(toks); err == nil {
		t.Fatal("expected a GrammarError for a mismatched object tail name")
	} else if _, ok := err.(*GrammarError); !ok {
		t.Fatalf("expected *GrammarError, got %T", err)
	}
}

func TestParseObjectDefCountMismatchIsGrammarError(t *testing.T) {
	src := "吾有二物。名之曰「甲」。其物如是。「名」言曰「丙」云云是謂「甲」之物也名之曰「乙」"
	toks, err := Lex(src, &Config{})
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	toks, err = ExpandMacros(toks)
	if err != nil {
		t.Fatalf("ExpandMacros: %v", err)
	}
	if _, err := Parse(toks); err == nil {
		t.Fatal("expected a GrammarError when bound name count does not match the declared count")
	}
}

func TestParseTryCatchAllMustBeLast(t *testing.T) {
	src := "姑妄行此嗚呼「「壞事」」不知何禍歟書之如其有「禍」之禍歟書之乃止是遍"
	toks, err := Lex(src, &Config{})
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	toks, err = ExpandMacros(toks)
	if err != nil {
		t.Fatalf("ExpandMacros: %v", err)
	}
	if _, err := Parse(toks); err == nil {
		t.Fatal("expected a GrammarError for a catch clause following a catch-all")
	} else if _, ok := err.(*GrammarError); !ok {
		t.Fatalf("expected *GrammarError, got %T", err)
	}
}

func TestParseUnterminatedIfIsGrammarError(t *testing.T) {
	toks, _ := Lex("若其然者書之", &Config{})
	if _, err := Parse(toks); err == nil {
		t.Fatal("expected a GrammarError for an unterminated 若")
	}
}
