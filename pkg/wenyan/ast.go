package wenyan

import "math/big"

// This file defines the AST. spec section 3 calls for "a sum type with one
// variant per grammar production"; the teacher's ast.go instead builds a
// reflection-driven generic Statement tree because YANG's schema keywords
// are open ended (extensions can introduce new ones at parse time). Wenyan's
// statement set is closed and each variant has a distinct, statically typed
// shape (ParamGroup, Catch, IfClause, ...), so a flat tagged union with one
// Go type per production is both simpler and a better match for the spec's
// explicit invariants - there is no open extension mechanism to support.
// What is kept from the teacher is the idea in node.go's Node interface:
// every node answers Kind() and carries its own source Range.

// Node is implemented by every AST node, statement or expression.
type Node interface {
	Kind() string
	SrcRange() Range
}

// Value is the value production: StringLit | Bool | Ident | Int | Float | It.
type Value interface {
	Node
	isValue()
}

type base struct {
	Range Range
}

func (b base) SrcRange() Range { return b.Range }

// ---- Values ----

type StrLit struct {
	base
	Val string
}

func (StrLit) Kind() string { return "StrLit" }
func (StrLit) isValue()     {}

type BoolLit struct {
	base
	Val bool
}

func (BoolLit) Kind() string { return "BoolLit" }
func (BoolLit) isValue()     {}

type IdentRef struct {
	base
	Name string
}

func (IdentRef) Kind() string { return "IdentRef" }
func (IdentRef) isValue()     {}

type IntLit struct {
	base
	Val *big.Int
}

func (IntLit) Kind() string { return "IntLit" }
func (IntLit) isValue()     {}

type FloatLit struct {
	base
	Val float64
}

func (FloatLit) Kind() string { return "FloatLit" }
func (FloatLit) isValue()     {}

// ItRef is 其: the implicit last-value register read.
type ItRef struct{ base }

func (ItRef) Kind() string { return "ItRef" }
func (ItRef) isValue()     {}

// ---- Expressions (non-statement, value-producing reads) ----

type Subscript struct {
	base
	Target Value
	Index  Value // 1-based
}

func (Subscript) Kind() string { return "Subscript" }
func (Subscript) isValue()     {}

type Length struct {
	base
	Target Value
}

func (Length) Kind() string { return "Length" }
func (Length) isValue()     {}

// Rest is 其餘 applied to an array value: all but the first element.
type Rest struct {
	base
	Target Value
}

func (Rest) Kind() string { return "Rest" }
func (Rest) isValue()     {}

// LogicChain is the if_expression production: a left-associative chain of
// operands joined by IF_LOGIC_OP (且/或) or LOGIC_BINARY_OP (等於/大於/...)
// with no precedence distinction between the two operator classes.
type LogicChain struct {
	base
	Operands []Value
	Ops      []KeywordKind // len(Ops) == len(Operands)-1
}

func (LogicChain) Kind() string { return "LogicChain" }

type Not struct {
	base
	Operand Value
}

func (Not) Kind() string { return "Not" }
func (Not) isValue()     {}

// Math is the 加/減/乘/除 binary production. Prep is 於 (B is the right-hand
// operand, i.e. A op B) or 以 (operands swap: B op A). Mod indicates the
// 所餘幾何 suffix requesting the remainder of that same division (A mod B
// with 於, B mod A with 以) instead of the quotient.
type Math struct {
	base
	Op   KeywordKind
	A    Value
	Prep KeywordKind
	B    Value
	Mod  bool
}

func (Math) Kind() string { return "Math" }

// Call unifies both surface forms (施ƒ於a於b and 以aƒ) into one node per
// SPEC_FULL section 4.
type Call struct {
	base
	Fn   Value
	Args []Value
}

func (Call) Kind() string { return "Call" }

// Push is 充 v 入 arr: append v to the named array, producing the new
// array as its value (SPEC_FULL section 4's array_push wiring).
type Push struct {
	base
	Array string
	Val   Value
}

func (Push) Kind() string { return "Push" }

// Concat is 併 a 與 b: concatenate two named arrays.
type Concat struct {
	base
	A, B string
}

func (Concat) Kind() string { return "Concat" }

// ---- Statements ----

// ParamGroup is one 必先得 N TYPE 曰 NAME(曰 NAME)* clause.
type ParamGroup struct {
	Count int
	Type  KeywordKind
	Names []string
}

// RestParam is the optional 或餘 trailing pack parameter.
type RestParam struct {
	Name string
}

type Declare struct {
	base
	Count int
	Type  KeywordKind
	Inits []Value // len(Inits) <= Count
}

func (Declare) Kind() string { return "Declare" }

// NameStmt is a standalone 名之曰 X 曰 Y ... binding the most recently
// produced value(s)/其 to the given names.
type NameStmt struct {
	base
	Names []string
}

func (NameStmt) Kind() string { return "NameStmt" }

// Define fuses a Declare with an immediately following NameMulti in one
// grammar production (see spec section 3).
type Define struct {
	base
	Count int
	Type  KeywordKind
	Inits []Value
	Names []string
}

func (Define) Kind() string { return "Define" }

type FunctionDef struct {
	base
	Name        string
	ParamGroups []ParamGroup
	RestParam   *RestParam
	Body        []Node
	EndName     string // invariant: EndName == Name, enforced by the parser
}

func (FunctionDef) Kind() string { return "FunctionDef" }

type ReturnMode int

const (
	ReturnExplicit ReturnMode = iota // 乃得 <value>
	ReturnIt                         // 乃得矣
	ReturnVoid                       // 乃歸空無
)

type Return struct {
	base
	Mode ReturnMode
	Val  Value // valid when Mode == ReturnExplicit
}

func (Return) Kind() string { return "Return" }

type IfClause struct {
	// Degenerate is non-nil for the IF_TRUE/IF_FALSE constant-condition
	// form: true means 若其然者, false means 若其不然者 used as a clause
	// head (as opposed to the terminal else branch).
	Degenerate *bool
	Cond       *LogicChain // nil when Degenerate != nil
	Body       []Node
}

type If struct {
	base
	Clauses  []IfClause
	ElseBody []Node
	HasElse  bool
}

func (If) Kind() string { return "If" }

type ForVariant int

const (
	ForArray ForVariant = iota
	ForEnum
	ForWhile
)

type For struct {
	base
	Variant   ForVariant
	ArrayName string // ForArray
	ElemName  string // ForArray
	Count     Value  // ForEnum
	Body      []Node
}

func (For) Kind() string { return "For" }

type Catch struct {
	Typed   bool
	ErrName string // Typed catches only
	Bind    string // optional bound name, "" if absent
	HasBind bool
	Body    []Node
}

type Try struct {
	base
	Body    []Node
	Catches []Catch
}

func (Try) Kind() string { return "Try" }

type Throw struct {
	base
	Tag       Value
	Detail    Value
	HasDetail bool
}

func (Throw) Kind() string { return "Throw" }

type Assign struct {
	base
	Target      string
	TargetIndex Value // optional, nil if not subscripted
	Value       Value // nil when Delete
	ValueIndex  Value // optional subscript on the rhs read
	Delete      bool
}

func (Assign) Kind() string { return "Assign" }

type ObjectProp struct {
	Key   string
	Type  KeywordKind
	Value Value
}

type ObjectDef struct {
	base
	Name    string // head identifier from 名之曰, must equal EndName
	Count   int
	Names   []string
	Props   []ObjectProp
	EndName string
}

func (ObjectDef) Kind() string { return "ObjectDef" }

type Import struct {
	base
	Path     []string
	Imported []string
	HasImported bool
}

func (Import) Kind() string { return "Import" }

// Print is 書之: print the current 其.
type Print struct{ base }

func (Print) Kind() string { return "Print" }

// Comment carries an attached string per spec section 4.1 rule 2; the
// evaluator skips it, the dumper renders it.
type Comment struct {
	base
	Marker KeywordKind // which of 注曰/疏曰/批曰 introduced it
	Text   string
}

func (Comment) Kind() string { return "Comment" }

// ExprStmt wraps a bare value-producing expression used directly as a
// statement (spec section 4.3's "value" production appearing at statement
// head): an identifier reference, a subscript/length/rest read, a call, a
// math expression, or a push/concat. A logic chain is not accepted as a
// statement; it is parsed only as the condition of a 若 clause.
type ExprStmt struct {
	base
	Expr Node
}

func (ExprStmt) Kind() string { return "ExprStmt" }

// Program is the top-level parse result.
type Program struct {
	Stmts []Node
}
