package wenyan

import (
	"fmt"
	"io"
	"math/big"
	"strings"
)

// The evaluator is a tree-walking interpreter over the AST built by parse.go.
// Its Env chain follows the teacher's habit (seen across entry.go's scoped
// lookups) of resolving names by walking outward through enclosing scopes
// rather than flattening everything into one table; here that becomes
// lexical scoping with the function-call boundary capturing its defining
// scope, i.e. closures.

// Array and Object are the two composite runtime value kinds. Everything
// else is represented with its natural Go type: *big.Int, float64, string,
// bool, nil (元/unit).
type Array struct {
	Elems []interface{}
}

type Object struct {
	Props map[string]interface{}
	Order []string
}

// Func is a runtime closure: the AST definition plus the environment it
// closes over.
type Func struct {
	Def *FunctionDef
	Env *Env
}

// Env is one lexical scope.
type Env struct {
	vars   map[string]interface{}
	parent *Env
	it     interface{}
}

func newEnv(parent *Env) *Env {
	return &Env{vars: map[string]interface{}{}, parent: parent}
}

func (e *Env) lookup(name string) (interface{}, bool) {
	for s := e; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// assign rebinds an existing name in whichever enclosing scope declared it,
// or defines it in the current scope if it was never seen (spec section 4.4
// treats 昔之 as an upsert, matching the reference implementation's lenient
// behavior documented as an Open Question resolution in DESIGN.md).
func (e *Env) assign(name string, v interface{}) {
	for s := e; s != nil; s = s.parent {
		if _, ok := s.vars[name]; ok {
			s.vars[name] = v
			return
		}
	}
	e.vars[name] = v
}

func (e *Env) define(name string, v interface{}) {
	e.vars[name] = v
}

func (e *Env) delete(name string) {
	for s := e; s != nil; s = s.parent {
		if _, ok := s.vars[name]; ok {
			delete(s.vars, name)
			return
		}
	}
}

func (e *Env) setIt(v interface{}) {
	e.it = v
}

func (e *Env) getIt() interface{} {
	return e.it
}

// Evaluator interprets a Program. Out is where 書之 writes; it is separate
// from Config.Trace, which the lexer uses for debug tracing.
type Evaluator struct {
	cfg *Config
	out io.Writer
}

func NewEvaluator(cfg *Config, out io.Writer) *Evaluator {
	return &Evaluator{cfg: cfg, out: out}
}

// controlSignal is how return/throw unwind the Go call stack without
// panicking across package boundaries; it is never surfaced to callers.
type controlSignal struct {
	isReturn bool
	isThrow  bool
	value    interface{}
	thrown   *ThrownError
}

// Run evaluates prog's top-level statements in a fresh global scope.
func (ev *Evaluator) Run(prog *Program) error {
	env := newEnv(nil)
	_, sig, err := ev.execBlock(prog.Stmts, env)
	if err != nil {
		return err
	}
	if sig != nil && sig.isThrow {
		return &RuntimeError{Range: Range{}, Message: "uncaught 嗚呼", Cause: sig.thrown}
	}
	return nil
}

func (ev *Evaluator) execBlock(stmts []Node, env *Env) (interface{}, *controlSignal, error) {
	var last interface{}
	for _, st := range stmts {
		v, sig, err := ev.execStmt(st, env)
		if err != nil {
			return nil, nil, err
		}
		if sig != nil {
			return nil, sig, nil
		}
		last = v
	}
	return last, nil, nil
}

func (ev *Evaluator) execStmt(n Node, env *Env) (interface{}, *controlSignal, error) {
	switch s := n.(type) {
	case Declare:
		return ev.execDeclare(s, env)
	case Define:
		v, _, err := ev.execDeclare(Declare{base: s.base, Count: s.Count, Type: s.Type, Inits: s.Inits}, env)
		if err != nil {
			return nil, nil, err
		}
		ev.bindNames(s.Names, env)
		return v, nil, nil
	case NameStmt:
		ev.bindNames(s.Names, env)
		return env.getIt(), nil, nil
	case FunctionDef:
		fn := &Func{Def: &s, Env: env}
		env.define(s.Name, fn)
		env.setIt(fn)
		return fn, nil, nil
	case Return:
		return ev.execReturn(s, env)
	case If:
		return ev.execIf(s, env)
	case For:
		return ev.execFor(s, env)
	case Try:
		return ev.execTry(s, env)
	case Throw:
		return ev.execThrow(s, env)
	case Assign:
		return ev.execAssign(s, env)
	case ObjectDef:
		return ev.execObjectDef(s, env)
	case Import:
		// Module loading is outside the evaluator's resource model (spec
		// section 5's Non-goals); resolve to a no-op producing unit.
		env.setIt(nil)
		return nil, nil, nil
	case Print:
		fmt.Fprint(ev.out, displayValue(env.getIt()))
		return env.getIt(), nil, nil
	case Comment:
		return env.getIt(), nil, nil
	case ExprStmt:
		return ev.execExprStmtNode(s.Expr, env)
	default:
		return nil, nil, &RuntimeError{Range: n.SrcRange(), Message: fmt.Sprintf("cannot execute node %s", n.Kind())}
	}
}

// execExprStmtNode handles the statement-level expression kinds that are
// not Values (Math, Call, Push, Concat) alongside plain Value reads.
func (ev *Evaluator) execExprStmtNode(n Node, env *Env) (interface{}, *controlSignal, error) {
	switch e := n.(type) {
	case Math:
		v, err := ev.evalMath(e, env)
		if err != nil {
			return nil, nil, err
		}
		env.setIt(v)
		return v, nil, nil
	case Call:
		v, sig, err := ev.evalCall(e, env)
		if err != nil || sig != nil {
			return nil, sig, err
		}
		env.setIt(v)
		return v, nil, nil
	case Push:
		v, err := ev.evalPush(e, env)
		if err != nil {
			return nil, nil, err
		}
		env.setIt(v)
		return v, nil, nil
	case Concat:
		v, err := ev.evalConcat(e, env)
		if err != nil {
			return nil, nil, err
		}
		env.setIt(v)
		return v, nil, nil
	case Value:
		v, err := ev.evalValue(e, env)
		if err != nil {
			return nil, nil, err
		}
		env.setIt(v)
		return v, nil, nil
	default:
		return nil, nil, &RuntimeError{Range: n.SrcRange(), Message: fmt.Sprintf("unsupported expression statement %s", n.Kind())}
	}
}

func (ev *Evaluator) execDeclare(s Declare, env *Env) (interface{}, *controlSignal, error) {
	var last interface{}
	for _, init := range s.Inits {
		v, err := ev.evalValue(init, env)
		if err != nil {
			return nil, nil, err
		}
		last = v
	}
	if len(s.Inits) < s.Count {
		last = zeroValue(s.Type)
	}
	env.setIt(last)
	return last, nil, nil
}

// bindNames binds the pending names to it's current value: a single name
// takes the whole value, multiple names unpack an array's leading elements
// (spec section 4.3's multi-name destructuring rule).
func (ev *Evaluator) bindNames(names []string, env *Env) {
	if len(names) == 0 {
		return
	}
	it := env.getIt()
	if len(names) == 1 {
		env.define(names[0], it)
		return
	}
	arr, ok := it.(*Array)
	if !ok {
		env.define(names[0], it)
		for _, n := range names[1:] {
			env.define(n, nil)
		}
		return
	}
	for i, n := range names {
		if i < len(arr.Elems) {
			env.define(n, arr.Elems[i])
		} else {
			env.define(n, nil)
		}
	}
}

func zeroValue(t KeywordKind) interface{} {
	switch t {
	case KwTypeNumber:
		return big.NewInt(0)
	case KwTypeString:
		return ""
	case KwTypeBool:
		return false
	case KwTypeArray:
		return &Array{}
	case KwTypeObject:
		return &Object{Props: map[string]interface{}{}}
	default:
		return nil
	}
}

func (ev *Evaluator) execReturn(s Return, env *Env) (interface{}, *controlSignal, error) {
	switch s.Mode {
	case ReturnVoid:
		return nil, &controlSignal{isReturn: true, value: nil}, nil
	case ReturnIt:
		return nil, &controlSignal{isReturn: true, value: env.getIt()}, nil
	default:
		v, err := ev.evalValue(s.Val, env)
		if err != nil {
			return nil, nil, err
		}
		return nil, &controlSignal{isReturn: true, value: v}, nil
	}
}

func (ev *Evaluator) execIf(s If, env *Env) (interface{}, *controlSignal, error) {
	for _, c := range s.Clauses {
		take := false
		if c.Degenerate != nil {
			take = *c.Degenerate
		} else {
			v, err := ev.evalLogicChain(c.Cond, env)
			if err != nil {
				return nil, nil, err
			}
			take = v
		}
		if take {
			inner := newEnv(env)
			v, sig, err := ev.execBlock(c.Body, inner)
			env.setIt(inner.getIt())
			return v, sig, err
		}
	}
	if s.HasElse {
		inner := newEnv(env)
		v, sig, err := ev.execBlock(s.ElseBody, inner)
		env.setIt(inner.getIt())
		return v, sig, err
	}
	return env.getIt(), nil, nil
}

func (ev *Evaluator) execFor(s For, env *Env) (interface{}, *controlSignal, error) {
	switch s.Variant {
	case ForWhile:
		// 恆為是 is an unconditional loop; per DESIGN.md's resolution of
		// this Open Question, the only way out is a 乃得/乃得矣/乃歸空無
		// inside an enclosing function or a 嗚呼 caught by an enclosing
		// 姑妄行此, both of which surface here as a non-nil signal.
		for {
			inner := newEnv(env)
			v, sig, err := ev.execBlock(s.Body, inner)
			if err != nil {
				return nil, nil, err
			}
			if sig != nil {
				return v, sig, nil
			}
			env.setIt(inner.getIt())
		}
	case ForEnum:
		cv, err := ev.evalValue(s.Count, env)
		if err != nil {
			return nil, nil, err
		}
		n, ok := cv.(*big.Int)
		if !ok {
			return nil, nil, &RuntimeError{Range: s.Range, Message: "for-loop count must be a number"}
		}
		count := n.Int64()
		for i := int64(0); i < count; i++ {
			inner := newEnv(env)
			v, sig, err := ev.execBlock(s.Body, inner)
			if err != nil {
				return nil, nil, err
			}
			if sig != nil {
				return v, sig, nil
			}
			env.setIt(inner.getIt())
		}
		return env.getIt(), nil, nil
	case ForArray:
		av, ok := env.lookup(s.ArrayName)
		if !ok {
			return nil, nil, &RuntimeError{Range: s.Range, Message: fmt.Sprintf("undefined array %q", s.ArrayName)}
		}
		arr, ok := av.(*Array)
		if !ok {
			return nil, nil, &RuntimeError{Range: s.Range, Message: fmt.Sprintf("%q is not an array", s.ArrayName)}
		}
		for _, elem := range arr.Elems {
			inner := newEnv(env)
			inner.define(s.ElemName, elem)
			v, sig, err := ev.execBlock(s.Body, inner)
			if err != nil {
				return nil, nil, err
			}
			if sig != nil {
				return v, sig, nil
			}
			env.setIt(inner.getIt())
		}
		return env.getIt(), nil, nil
	}
	return nil, nil, &RuntimeError{Range: s.Range, Message: "unknown for-loop variant"}
}

func (ev *Evaluator) execTry(s Try, env *Env) (interface{}, *controlSignal, error) {
	inner := newEnv(env)
	v, sig, err := ev.execBlock(s.Body, inner)
	if err != nil {
		return nil, nil, err
	}
	if sig == nil || !sig.isThrow {
		env.setIt(inner.getIt())
		return v, sig, nil
	}
	for _, c := range s.Catches {
		if c.Typed && c.ErrName != sig.thrown.Tag {
			continue
		}
		cenv := newEnv(env)
		if c.Typed && c.HasBind {
			cenv.define(c.Bind, sig.thrown.Detail)
		}
		cv, csig, cerr := ev.execBlock(c.Body, cenv)
		if cerr != nil {
			return nil, nil, cerr
		}
		env.setIt(cenv.getIt())
		return cv, csig, nil
	}
	return nil, sig, nil
}

func (ev *Evaluator) execThrow(s Throw, env *Env) (interface{}, *controlSignal, error) {
	tagVal, err := ev.evalValue(s.Tag, env)
	if err != nil {
		return nil, nil, err
	}
	tag, ok := tagVal.(string)
	if !ok {
		tag = displayValue(tagVal)
	}
	te := &ThrownError{Range: s.Range, Tag: tag}
	if s.HasDetail {
		d, err := ev.evalValue(s.Detail, env)
		if err != nil {
			return nil, nil, err
		}
		te.Detail = d
		te.HasDetail = true
	}
	return nil, &controlSignal{isThrow: true, thrown: te}, nil
}

func (ev *Evaluator) execAssign(s Assign, env *Env) (interface{}, *controlSignal, error) {
	if s.Delete {
		env.delete(s.Target)
		env.setIt(nil)
		return nil, nil, nil
	}
	v, err := ev.evalValue(s.Value, env)
	if err != nil {
		return nil, nil, err
	}
	if s.TargetIndex != nil {
		cur, ok := env.lookup(s.Target)
		if !ok {
			return nil, nil, &RuntimeError{Range: s.Range, Message: fmt.Sprintf("undefined %q", s.Target)}
		}
		idxVal, err := ev.evalValue(s.TargetIndex, env)
		if err != nil {
			return nil, nil, err
		}
		if err := assignIndexed(cur, idxVal, v); err != nil {
			return nil, nil, &RuntimeError{Range: s.Range, Message: err.Error()}
		}
		env.setIt(v)
		return v, nil, nil
	}
	env.assign(s.Target, v)
	env.setIt(v)
	return v, nil, nil
}

func assignIndexed(container, idx, v interface{}) error {
	switch c := container.(type) {
	case *Array:
		n, ok := idx.(*big.Int)
		if !ok {
			return fmt.Errorf("array index must be a number")
		}
		i := int(n.Int64()) - 1
		if i < 0 || i >= len(c.Elems) {
			return fmt.Errorf("array index out of range")
		}
		c.Elems[i] = v
		return nil
	case *Object:
		key, ok := idx.(string)
		if !ok {
			return fmt.Errorf("object key must be a string")
		}
		if _, exists := c.Props[key]; !exists {
			c.Order = append(c.Order, key)
		}
		c.Props[key] = v
		return nil
	default:
		return fmt.Errorf("value is not indexable")
	}
}

func (ev *Evaluator) execObjectDef(s ObjectDef, env *Env) (interface{}, *controlSignal, error) {
	obj := &Object{Props: map[string]interface{}{}}
	for _, p := range s.Props {
		v, err := ev.evalValue(p.Value, env)
		if err != nil {
			return nil, nil, err
		}
		obj.Props[p.Key] = v
		obj.Order = append(obj.Order, p.Key)
	}
	env.setIt(obj)
	ev.bindNames(s.Names, env)
	return obj, nil, nil
}

// ---- Value evaluation ----

func (ev *Evaluator) evalValue(v Value, env *Env) (interface{}, error) {
	switch val := v.(type) {
	case StrLit:
		return val.Val, nil
	case BoolLit:
		return val.Val, nil
	case IntLit:
		return val.Val, nil
	case FloatLit:
		return val.Val, nil
	case IdentRef:
		if r, ok := env.lookup(val.Name); ok {
			return r, nil
		}
		return nil, &RuntimeError{Range: val.Range, Message: fmt.Sprintf("undefined identifier %q", val.Name)}
	case ItRef:
		return env.getIt(), nil
	case Subscript:
		t, err := ev.evalValue(val.Target, env)
		if err != nil {
			return nil, err
		}
		i, err := ev.evalValue(val.Index, env)
		if err != nil {
			return nil, err
		}
		return subscriptValue(t, i, val.Range)
	case Length:
		t, err := ev.evalValue(val.Target, env)
		if err != nil {
			return nil, err
		}
		switch c := t.(type) {
		case *Array:
			return big.NewInt(int64(len(c.Elems))), nil
		case string:
			return big.NewInt(int64(len([]rune(c)))), nil
		default:
			return nil, &RuntimeError{Range: val.Range, Message: "之長 applied to a non-array, non-string value"}
		}
	case Rest:
		t, err := ev.evalValue(val.Target, env)
		if err != nil {
			return nil, err
		}
		arr, ok := t.(*Array)
		if !ok {
			return nil, &RuntimeError{Range: val.Range, Message: "其餘 applied to a non-array value"}
		}
		if len(arr.Elems) == 0 {
			return &Array{}, nil
		}
		out := make([]interface{}, len(arr.Elems)-1)
		copy(out, arr.Elems[1:])
		return &Array{Elems: out}, nil
	case Not:
		t, err := ev.evalValue(val.Operand, env)
		if err != nil {
			return nil, err
		}
		return !truthy(t), nil
	default:
		return nil, &RuntimeError{Range: v.SrcRange(), Message: fmt.Sprintf("cannot evaluate value %s", v.Kind())}
	}
}

func subscriptValue(container, idx interface{}, rng Range) (interface{}, error) {
	switch c := container.(type) {
	case *Array:
		n, ok := idx.(*big.Int)
		if !ok {
			return nil, &RuntimeError{Range: rng, Message: "array index must be a number"}
		}
		i := int(n.Int64()) - 1
		if i < 0 || i >= len(c.Elems) {
			return nil, &RuntimeError{Range: rng, Message: "array index out of range"}
		}
		return c.Elems[i], nil
	case *Object:
		key, ok := idx.(string)
		if !ok {
			return nil, &RuntimeError{Range: rng, Message: "object key must be a string"}
		}
		v, ok := c.Props[key]
		if !ok {
			return nil, &RuntimeError{Range: rng, Message: fmt.Sprintf("object has no property %q", key)}
		}
		return v, nil
	case string:
		n, ok := idx.(*big.Int)
		if !ok {
			return nil, &RuntimeError{Range: rng, Message: "string index must be a number"}
		}
		runes := []rune(c)
		i := int(n.Int64()) - 1
		if i < 0 || i >= len(runes) {
			return nil, &RuntimeError{Range: rng, Message: "string index out of range"}
		}
		return string(runes[i]), nil
	default:
		return nil, &RuntimeError{Range: rng, Message: "value is not indexable"}
	}
}

func truthy(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case nil:
		return false
	case *big.Int:
		return t.Sign() != 0
	case float64:
		return t != 0
	case string:
		return t != ""
	case *Array:
		return len(t.Elems) != 0
	default:
		return true
	}
}

func (ev *Evaluator) evalLogicChain(c *LogicChain, env *Env) (bool, error) {
	first, err := ev.evalLogicOperand(c.Operands[0], env)
	if err != nil {
		return false, err
	}
	var result bool
	var firstRaw interface{} = first
	for i, op := range c.Ops {
		next, err := ev.evalLogicOperand(c.Operands[i+1], env)
		if err != nil {
			return false, err
		}
		cmp, err := compareOp(op, firstRaw, next)
		if err != nil {
			return false, err
		}
		if i == 0 {
			result = cmp
		} else {
			result = combineLogic(op, result, cmp)
		}
		firstRaw = next
	}
	if len(c.Ops) == 0 {
		return truthy(first), nil
	}
	return result, nil
}

func (ev *Evaluator) evalLogicOperand(v Value, env *Env) (interface{}, error) {
	return ev.evalValue(v, env)
}

// combineLogic folds boolean connectives (且/或) into the running result;
// comparison operators at position i>0 simply AND onto the chain, matching
// a natural reading of "a 等於 b 且 b 等於 c".
func combineLogic(op KeywordKind, acc, cmp bool) bool {
	switch op {
	case KwAnd:
		return acc && cmp
	case KwOr:
		return acc || cmp
	default:
		return acc && cmp
	}
}

func compareOp(op KeywordKind, a, b interface{}) (bool, error) {
	switch op {
	case KwAnd, KwOr:
		return truthy(b), nil
	case KwEq:
		return valuesEqual(a, b), nil
	case KwNeq:
		return !valuesEqual(a, b), nil
	case KwGt, KwLt, KwGte, KwLte:
		an, aok := a.(*big.Int)
		bn, bok := b.(*big.Int)
		if aok && bok {
			c := an.Cmp(bn)
			return compareResult(op, c), nil
		}
		af, afok := toFloat(a)
		bf, bfok := toFloat(b)
		if afok && bfok {
			var c int
			switch {
			case af < bf:
				c = -1
			case af > bf:
				c = 1
			}
			return compareResult(op, c), nil
		}
		return false, fmt.Errorf("cannot compare non-numeric values")
	default:
		return false, fmt.Errorf("unsupported logic operator %s", op)
	}
}

func compareResult(op KeywordKind, c int) bool {
	switch op {
	case KwGt:
		return c > 0
	case KwLt:
		return c < 0
	case KwGte:
		return c >= 0
	case KwLte:
		return c <= 0
	}
	return false
}

func toFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case *big.Int:
		f, _ := new(big.Float).SetInt(t).Float64()
		return f, true
	case float64:
		return t, true
	default:
		return 0, false
	}
}

func valuesEqual(a, b interface{}) bool {
	if an, ok := a.(*big.Int); ok {
		if bn, ok := b.(*big.Int); ok {
			return an.Cmp(bn) == 0
		}
		af, _ := toFloat(a)
		bf, bok := toFloat(b)
		return bok && af == bf
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return af == bf
	}
	return a == b
}

// ---- Math ----

func (ev *Evaluator) evalMath(m Math, env *Env) (interface{}, error) {
	av, err := ev.evalValue(m.A, env)
	if err != nil {
		return nil, err
	}
	bv, err := ev.evalValue(m.B, env)
	if err != nil {
		return nil, err
	}
	lhs, rhs := av, bv
	if m.Prep == KwPrepWith {
		lhs, rhs = bv, av
	}
	return applyMath(m.Op, lhs, rhs, m.Mod, m.Range)
}

func applyMath(op KeywordKind, lhs, rhs interface{}, mod bool, rng Range) (interface{}, error) {
	li, lok := lhs.(*big.Int)
	ri, rok := rhs.(*big.Int)
	if lok && rok {
		switch op {
		case KwAdd:
			return new(big.Int).Add(li, ri), nil
		case KwSub:
			return new(big.Int).Sub(li, ri), nil
		case KwMul:
			return new(big.Int).Mul(li, ri), nil
		case KwDiv:
			if ri.Sign() == 0 {
				return nil, &RuntimeError{Range: rng, Message: "division by zero"}
			}
			if mod {
				m := new(big.Int).Mod(li, ri)
				return m, nil
			}
			q, r := new(big.Int).QuoRem(li, ri, new(big.Int))
			if r.Sign() == 0 {
				return q, nil
			}
			lf, _ := new(big.Float).SetInt(li).Float64()
			rf, _ := new(big.Float).SetInt(ri).Float64()
			return lf / rf, nil
		}
	}
	lf, lfok := toFloat(lhs)
	rf, rfok := toFloat(rhs)
	if !lfok || !rfok {
		return nil, &RuntimeError{Range: rng, Message: "arithmetic on non-numeric value"}
	}
	switch op {
	case KwAdd:
		return lf + rf, nil
	case KwSub:
		return lf - rf, nil
	case KwMul:
		return lf * rf, nil
	case KwDiv:
		if rf == 0 {
			return nil, &RuntimeError{Range: rng, Message: "division by zero"}
		}
		if mod {
			return mathMod(lf, rf), nil
		}
		return lf / rf, nil
	}
	return nil, &RuntimeError{Range: rng, Message: "unknown arithmetic operator"}
}

func mathMod(a, b float64) float64 {
	m := a - b*float64(int64(a/b))
	return m
}

// ---- Calls ----

func (ev *Evaluator) evalCall(c Call, env *Env) (interface{}, *controlSignal, error) {
	fv, err := ev.evalValue(c.Fn, env)
	if err != nil {
		return nil, nil, err
	}
	fn, ok := fv.(*Func)
	if !ok {
		return nil, nil, &RuntimeError{Range: c.Range, Message: "called value is not a function"}
	}
	var args []interface{}
	for _, a := range c.Args {
		v, err := ev.evalValue(a, env)
		if err != nil {
			return nil, nil, err
		}
		args = append(args, v)
	}
	return ev.callFunc(fn, args, c.Range)
}

func (ev *Evaluator) callFunc(fn *Func, args []interface{}, rng Range) (interface{}, *controlSignal, error) {
	callEnv := newEnv(fn.Env)
	i := 0
	for _, g := range fn.Def.ParamGroups {
		for _, name := range g.Names {
			if i < len(args) {
				callEnv.define(name, args[i])
				i++
			} else {
				callEnv.define(name, zeroValue(g.Type))
			}
		}
	}
	if fn.Def.RestParam != nil {
		rest := args[i:]
		elems := make([]interface{}, len(rest))
		copy(elems, rest)
		callEnv.define(fn.Def.RestParam.Name, &Array{Elems: elems})
	}

	v, sig, err := ev.execBlock(fn.Def.Body, callEnv)
	if err != nil {
		return nil, nil, err
	}
	if sig == nil {
		return v, nil, nil
	}
	if sig.isThrow {
		return nil, sig, nil
	}
	return sig.value, nil, nil
}

// ---- Array ops ----

func (ev *Evaluator) evalPush(p Push, env *Env) (interface{}, error) {
	v, err := ev.evalValue(p.Val, env)
	if err != nil {
		return nil, err
	}
	av, ok := env.lookup(p.Array)
	if !ok {
		return nil, &RuntimeError{Range: p.Range, Message: fmt.Sprintf("undefined array %q", p.Array)}
	}
	arr, ok := av.(*Array)
	if !ok {
		return nil, &RuntimeError{Range: p.Range, Message: fmt.Sprintf("%q is not an array", p.Array)}
	}
	arr.Elems = append(arr.Elems, v)
	return arr, nil
}

func (ev *Evaluator) evalConcat(c Concat, env *Env) (interface{}, error) {
	av, ok := env.lookup(c.A)
	if !ok {
		return nil, &RuntimeError{Range: c.Range, Message: fmt.Sprintf("undefined array %q", c.A)}
	}
	bv, ok := env.lookup(c.B)
	if !ok {
		return nil, &RuntimeError{Range: c.Range, Message: fmt.Sprintf("undefined array %q", c.B)}
	}
	aa, ok := av.(*Array)
	if !ok {
		return nil, &RuntimeError{Range: c.Range, Message: fmt.Sprintf("%q is not an array", c.A)}
	}
	ba, ok := bv.(*Array)
	if !ok {
		return nil, &RuntimeError{Range: c.Range, Message: fmt.Sprintf("%q is not an array", c.B)}
	}
	out := make([]interface{}, 0, len(aa.Elems)+len(ba.Elems))
	out = append(out, aa.Elems...)
	out = append(out, ba.Elems...)
	return &Array{Elems: out}, nil
}

// ---- Display ----

// displayValue renders a runtime value the way 書之 prints it.
func displayValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "空無"
	case bool:
		if t {
			return "陽"
		}
		return "陰"
	case *big.Int:
		return t.String()
	case float64:
		return fmt.Sprintf("%g", t)
	case string:
		return t
	case *Array:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = displayValue(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *Object:
		parts := make([]string, 0, len(t.Order))
		for _, k := range t.Order {
			parts = append(parts, k+": "+displayValue(t.Props[k]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *Func:
		return "<術 " + t.Def.Name + ">"
	default:
		return fmt.Sprintf("%v", t)
	}
}
