package wenyan

import (
	"bytes"
	"strings"
	"testing"
)

// dump_test.go checks Dump's structure rather than its exact Range text
// (column offsets are an implementation detail the teacher's own tree.go
// tests avoid pinning down); it asserts the lines that matter are present
// and correctly nested.

func TestDumpDeclareAndPrint(t *testing.T) {
	prog := mustLexParse(t, "吾有一數曰五名之曰「甲」書之")
	var buf bytes.Buffer
	Dump(&buf, prog)
	out := buf.String()

	for _, want := range []string{
		"Define",
		"count=1 type=數 names=甲",
		"IntLit",
		"5",
		"Print",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Dump output missing %q; got:\n%s", want, out)
		}
	}

	defineLine := indexOfLine(out, "Define")
	initLine := indexOfLine(out, "count=1")
	if initLine <= defineLine {
		t.Fatalf("expected Define's fields to follow its header line; got:\n%s", out)
	}
	if !strings.HasPrefix(lineAt(out, initLine), "  ") {
		t.Errorf("Define's children should be indented one level, got %q", lineAt(out, initLine))
	}
}

func TestDumpIfNestsClauseUnderIf(t *testing.T) {
	prog := mustLexParse(t, "吾有一數曰五名之曰「甲」若「甲」等於五者書之云云")
	var buf bytes.Buffer
	Dump(&buf, prog)
	out := buf.String()

	ifLine := indexOfLine(out, "If")
	clauseLine := indexOfLine(out, "clause 0")
	printLine := indexOfLine(out, "Print")
	if ifLine < 0 || clauseLine <= ifLine || printLine <= clauseLine {
		t.Fatalf("expected If, then clause 0, then Print in order; got:\n%s", out)
	}
	if !strings.HasPrefix(lineAt(out, clauseLine), "  ") {
		t.Errorf("clause line should be indented under If, got %q", lineAt(out, clauseLine))
	}
}

func indexOfLine(s, substr string) int {
	for i, line := range strings.Split(s, "\n") {
		if strings.Contains(line, substr) {
			return i
		}
	}
	return -1
}

func lineAt(s string, i int) string {
	lines := strings.Split(s, "\n")
	if i < 0 || i >= len(lines) {
		return ""
	}
	return lines[i]
}
