package wenyan

import (
	"fmt"
	"io"
	"strings"

	"github.com/wenyan-lang/wenyan/pkg/indent"
)

// Dump renders prog as an indented tree, adapted from the teacher's tree.go
// text formatter: each node writes one summary line, then recurses into its
// children through an indent.Writer so nesting is visible without manually
// tracking depth in the printing code itself.
func Dump(w io.Writer, prog *Program) {
	for _, st := range prog.Stmts {
		dumpNode(w, st)
	}
}

func dumpNode(w io.Writer, n Node) {
	fmt.Fprintf(w, "%s  %s\n", n.Kind(), n.SrcRange())
	iw := indent.NewWriter(w, "  ")
	dumpChildren(iw, n)
}

func dumpChildren(w io.Writer, n Node) {
	switch s := n.(type) {
	case Declare:
		fmt.Fprintf(w, "count=%d type=%s\n", s.Count, s.Type)
		for _, v := range s.Inits {
			dumpNode(w, v)
		}
	case Define:
		fmt.Fprintf(w, "count=%d type=%s names=%s\n", s.Count, s.Type, strings.Join(s.Names, ","))
		for _, v := range s.Inits {
			dumpNode(w, v)
		}
	case NameStmt:
		fmt.Fprintf(w, "names=%s\n", strings.Join(s.Names, ","))
	case FunctionDef:
		fmt.Fprintf(w, "name=%s\n", s.Name)
		for _, g := range s.ParamGroups {
			fmt.Fprintf(w, "param count=%d type=%s names=%s\n", g.Count, g.Type, strings.Join(g.Names, ","))
		}
		if s.RestParam != nil {
			fmt.Fprintf(w, "rest=%s\n", s.RestParam.Name)
		}
		for _, b := range s.Body {
			dumpNode(w, b)
		}
	case Return:
		fmt.Fprintf(w, "mode=%d\n", s.Mode)
		if s.Mode == ReturnExplicit {
			dumpNode(w, s.Val)
		}
	case If:
		for i, c := range s.Clauses {
			fmt.Fprintf(w, "clause %d\n", i)
			if c.Cond != nil {
				dumpNode(w, c.Cond)
			}
			for _, b := range c.Body {
				dumpNode(w, b)
			}
		}
		if s.HasElse {
			fmt.Fprintln(w, "else")
			for _, b := range s.ElseBody {
				dumpNode(w, b)
			}
		}
	case For:
		fmt.Fprintf(w, "variant=%d array=%s elem=%s\n", s.Variant, s.ArrayName, s.ElemName)
		for _, b := range s.Body {
			dumpNode(w, b)
		}
	case Try:
		for _, b := range s.Body {
			dumpNode(w, b)
		}
		for _, c := range s.Catches {
			fmt.Fprintf(w, "catch typed=%v err=%s\n", c.Typed, c.ErrName)
			for _, b := range c.Body {
				dumpNode(w, b)
			}
		}
	case Throw:
		dumpNode(w, s.Tag)
		if s.HasDetail {
			dumpNode(w, s.Detail)
		}
	case Assign:
		fmt.Fprintf(w, "target=%s delete=%v\n", s.Target, s.Delete)
		if s.Value != nil {
			dumpNode(w, s.Value)
		}
	case ObjectDef:
		fmt.Fprintf(w, "name=%s count=%d names=%s\n", s.Name, s.Count, strings.Join(s.Names, ","))
		for _, p := range s.Props {
			fmt.Fprintf(w, "prop %s type=%s\n", p.Key, p.Type)
			dumpNode(w, p.Value)
		}
	case Import:
		fmt.Fprintf(w, "path=%s imported=%s\n", strings.Join(s.Path, "."), strings.Join(s.Imported, ","))
	case Comment:
		fmt.Fprintf(w, "%q\n", s.Text)
	case ExprStmt:
		dumpNode(w, s.Expr)
	case *LogicChain:
		for _, op := range s.Ops {
			fmt.Fprintf(w, "op=%s\n", op)
		}
		for _, o := range s.Operands {
			dumpNode(w, o)
		}
	case Math:
		fmt.Fprintf(w, "op=%s prep=%s mod=%v\n", s.Op, s.Prep, s.Mod)
		dumpNode(w, s.A)
		dumpNode(w, s.B)
	case Call:
		dumpNode(w, s.Fn)
		for _, a := range s.Args {
			dumpNode(w, a)
		}
	case Push:
		fmt.Fprintf(w, "array=%s\n", s.Array)
		dumpNode(w, s.Val)
	case Concat:
		fmt.Fprintf(w, "a=%s b=%s\n", s.A, s.B)
	case Subscript:
		dumpNode(w, s.Target)
		dumpNode(w, s.Index)
	case Length:
		dumpNode(w, s.Target)
	case Rest:
		dumpNode(w, s.Target)
	case Not:
		dumpNode(w, s.Operand)
	case StrLit:
		fmt.Fprintf(w, "%q\n", s.Val)
	case BoolLit:
		fmt.Fprintf(w, "%v\n", s.Val)
	case IntLit:
		fmt.Fprintf(w, "%s\n", s.Val.String())
	case FloatLit:
		fmt.Fprintf(w, "%g\n", s.Val)
	case IdentRef:
		fmt.Fprintf(w, "%s\n", s.Name)
	}
}
