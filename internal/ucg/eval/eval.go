// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package eval

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/samber/oops"

	"github.com/holomush/ucg/internal/ucg/ast"
	"github.com/holomush/ucg/internal/ucg/parser"
	"github.com/holomush/ucg/internal/ucg/stdlib"
	"github.com/holomush/ucg/internal/ucg/token"
)

// Evaluator holds the per-file state: a working directory, a shared
// import cache, a scope, the process environment pseudo-tuple, a
// shared assertion collector, the single-output lock, and the
// validate-mode flag. The "self" value available inside a Copy's
// overrides is threaded as an explicit parameter to every
// expression-evaluating method rather than stored here.
type Evaluator struct {
	Dir      string
	Cache    *ImportCache
	Scope    *Scope
	EnvVal   *Env
	Assert   *AssertCollector
	Strict   bool
	Validate bool

	outputSet  bool
	Output     Value
	OutputType string
}

// NewRootEvaluator constructs the evaluator for a top-level build: a
// fresh scope and assertion collector, a fresh import cache, and the
// process environment snapshot. validate selects whether "assert"
// statements execute; strict selects whether an unresolved `env`
// selector is an error or Empty.
func NewRootEvaluator(dir string, validate, strict bool) *Evaluator {
	return &Evaluator{
		Dir:      dir,
		Cache:    NewImportCache(),
		Scope:    NewScope(),
		EnvVal:   newEnvFromProcess(),
		Assert:   NewAssertCollector(),
		Strict:   strict,
		Validate: validate,
	}
}

// newChildEvaluator spawns a fresh evaluator for an import, module
// expansion, or macro call: a new scope and output lock, but the same
// shared cache/environment/assertion collector/mode flags.
func (ev *Evaluator) newChildEvaluator(dir string) *Evaluator {
	return &Evaluator{
		Dir:      dir,
		Cache:    ev.Cache,
		Scope:    NewScope(),
		EnvVal:   ev.EnvVal,
		Assert:   ev.Assert,
		Strict:   ev.Strict,
		Validate: ev.Validate,
	}
}

// BindingByName fetches the fully-reduced value of a top-level Let (or
// Import) binding by name after a build completes, grounded on the
// original implementation's Builder::get_out_by_name.
func (ev *Evaluator) BindingByName(name string) (Value, bool) {
	return ev.Scope.Get(name)
}

// EvalFile evaluates every statement of a parsed file in order.
func (ev *Evaluator) EvalFile(stmts []ast.Statement) error {
	for _, s := range stmts {
		if err := ev.evalStatement(s); err != nil {
			return err
		}
	}
	return nil
}

// --- statements ---

func (ev *Evaluator) evalStatement(s ast.Statement) error {
	switch n := s.(type) {
	case *ast.Let:
		return ev.evalLet(n)
	case *ast.Import:
		return ev.evalImport(n)
	case *ast.ExprStmt:
		_, err := ev.evalExpr(n.Expr, nil)
		return err
	case *ast.Assert:
		return ev.evalAssert(n)
	case *ast.Output:
		return ev.evalOutput(n)
	default:
		return unsupported(s.Pos(), "unknown statement type %T", s)
	}
}

func (ev *Evaluator) evalLet(l *ast.Let) error {
	v, err := ev.evalExpr(l.Expr, nil)
	if err != nil {
		return err
	}
	return ev.Scope.Define(l.Name.Pos, l.Name.Fragment, v)
}

func (ev *Evaluator) evalAssert(a *ast.Assert) error {
	if !ev.Validate {
		return nil
	}
	// The fragment is a bare expression; terminate it as one statement.
	src := strings.TrimSuffix(strings.TrimSpace(a.Source.Fragment), ";") + ";"
	stmts, err := parser.Parse(a.Source.Pos.File, []byte(src))
	if err != nil {
		ev.Assert.recordTypeFail(a.Source.Pos, err.Error())
		return nil
	}
	if len(stmts) != 1 {
		ev.Assert.recordTypeFail(a.Source.Pos, "assertion source must be a single expression")
		return nil
	}
	exprStmt, ok := stmts[0].(*ast.ExprStmt)
	if !ok {
		ev.Assert.recordTypeFail(a.Source.Pos, "assertion source must be a single expression")
		return nil
	}
	v, err := ev.evalExpr(exprStmt.Expr, nil)
	if err != nil {
		ev.Assert.recordTypeFail(a.Source.Pos, err.Error())
		return nil
	}
	b, ok := v.(Boolean)
	if !ok {
		ev.Assert.recordTypeFail(a.Source.Pos, "assertion must evaluate to a boolean")
		return nil
	}
	if b.Val {
		ev.Assert.recordOK(a.Source.Pos)
	} else {
		ev.Assert.recordNotOK(a.Source.Pos, a.Source.Fragment)
	}
	return nil
}

func (ev *Evaluator) evalOutput(o *ast.Output) error {
	if ev.outputSet {
		return duplicateBinding(o.Pos(), "out")
	}
	v, err := ev.evalExpr(o.Expr, nil)
	if err != nil {
		return err
	}
	ev.outputSet = true
	ev.Output = v
	ev.OutputType = o.Type.Fragment
	return nil
}

func (ev *Evaluator) evalImport(imp *ast.Import) error {
	path := imp.Path.Fragment

	if mod, ok, err := stdlib.Resolve(path); err != nil {
		return unsupported(imp.Path.Pos, "%v", err)
	} else if ok {
		return ev.evalImportSource("stdlib:"+mod.Name, mod.Source, "", imp)
	}

	resolved, err := ev.canonicalizeImportPath(path)
	if err != nil {
		return ioError(imp.Path.Pos, err, "resolving import %q", path)
	}
	if cached, ok := ev.Cache.Get(resolved); ok {
		return ev.Scope.Define(imp.Alias.Pos, imp.Alias.Fragment, cached)
	}
	src, err := readFile(resolved)
	if err != nil {
		return ioError(imp.Path.Pos, err, "reading import %q", path)
	}
	return ev.evalImportSource(resolved, string(src), filepath.Dir(resolved), imp)
}

// evalImportSource parses and evaluates an imported file's (or stdlib
// fragment's) body and binds its designated Output value to the
// import alias.
func (ev *Evaluator) evalImportSource(canonicalPath, src, dir string, imp *ast.Import) error {
	stmts, err := parser.Parse(canonicalPath, []byte(src))
	if err != nil {
		return oops.With("import", imp.Path.Fragment).Wrapf(err, "parsing imported file")
	}
	child := ev.newChildEvaluator(dir)
	if err := child.EvalFile(stmts); err != nil {
		return oops.With("import", imp.Path.Fragment).Wrapf(err, "evaluating imported file")
	}
	if !child.outputSet {
		return unsupported(imp.Path.Pos, "imported file %q has no output statement", imp.Path.Fragment)
	}
	ev.Cache.Insert(canonicalPath, child.Output)
	return ev.Scope.Define(imp.Alias.Pos, imp.Alias.Fragment, child.Output)
}

func (ev *Evaluator) canonicalizeImportPath(path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(ev.Dir, path)
	}
	return canonicalizePath(path)
}

// --- expressions ---

func (ev *Evaluator) evalExpr(e ast.Expression, self Value) (Value, error) {
	switch n := e.(type) {
	case *ast.Simple:
		return ev.evalValue(n.Val, self)
	case *ast.Binary:
		return ev.evalBinary(n, self)
	case *ast.Copy:
		return ev.evalCopy(n, self)
	case *ast.Grouped:
		return ev.evalExpr(n.Inner, self)
	case *ast.Format:
		return ev.evalFormat(n, self)
	case *ast.Call:
		return ev.evalCall(n, self)
	case *ast.Macro:
		if err := ast.ValidateClosure(n); err != nil {
			return nil, unsupported(n.Pos(), "%v", err)
		}
		return &Macro{Def: n}, nil
	case *ast.Module:
		return ev.evalModuleLiteral(n, self)
	case *ast.Select:
		return ev.evalSelect(n, self)
	case *ast.ListOp:
		return ev.evalListOp(n, self)
	default:
		return nil, unsupported(e.Pos(), "unknown expression type %T", e)
	}
}

func (ev *Evaluator) evalValue(v ast.Value, self Value) (Value, error) {
	switch n := v.(type) {
	case *ast.Empty:
		return Empty{}, nil
	case *ast.Boolean:
		return Boolean{Val: n.Val}, nil
	case *ast.Int:
		return Int{Val: n.Val}, nil
	case *ast.Float:
		return Float{Val: n.Val}, nil
	case *ast.Str:
		return Str{Val: n.Val}, nil
	case *ast.Symbol:
		return ev.evalSymbol(n, self)
	case *ast.Tuple:
		return ev.evalTupleLiteral(n, self)
	case *ast.List:
		return ev.evalListLiteral(n, self)
	case *ast.Selector:
		return ev.evalSelector(n, self)
	default:
		return nil, unsupported(v.Pos(), "unknown value type %T", v)
	}
}

func (ev *Evaluator) evalSymbol(sym *ast.Symbol, self Value) (Value, error) {
	switch sym.Name {
	case "self":
		if self == nil {
			return nil, noSuchSymbol(sym.P, "self")
		}
		return self, nil
	case "env":
		return ev.EnvVal, nil
	default:
		if v, ok := ev.Scope.Get(sym.Name); ok {
			return v, nil
		}
		return nil, noSuchSymbol(sym.P, sym.Name)
	}
}

func (ev *Evaluator) evalTupleLiteral(t *ast.Tuple, self Value) (Value, error) {
	fields := make([]Field, 0, len(t.Fields))
	for _, f := range t.Fields {
		v, err := ev.evalExpr(f.Expr, self)
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field{Name: f.Name.Fragment, Val: v})
	}
	return &Tuple{Fields: fields}, nil
}

func (ev *Evaluator) evalListLiteral(l *ast.List, self Value) (Value, error) {
	elems := make([]Value, 0, len(l.Elements))
	for _, e := range l.Elements {
		v, err := ev.evalExpr(e, self)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	return &List{Elements: elems}, nil
}

// evalSelector walks a Selector's head then its tail tokens (spec
// §4.4 "Selector").
func (ev *Evaluator) evalSelector(sel *ast.Selector, self Value) (Value, error) {
	v, err := ev.evalExpr(sel.Head, self)
	if err != nil {
		return nil, err
	}
	for _, seg := range sel.Tail {
		v, err = ev.applySegment(v, seg)
		if err != nil {
			return nil, err
		}
	}
	return v, nil
}

// applySegment applies one path segment token to v: field lookup on a
// Tuple, index lookup on a List, or variable lookup on the Env
// pseudo-tuple.
func (ev *Evaluator) applySegment(v Value, seg token.Token) (Value, error) {
	switch cur := v.(type) {
	case *Tuple:
		if seg.Kind != token.BAREWORD {
			return nil, typeFail(seg.Pos, "tuple field segment must be a name, found %q", seg.Fragment)
		}
		if val, ok := cur.Get(seg.Fragment); ok {
			return val, nil
		}
		return nil, noSuchSymbol(seg.Pos, seg.Fragment)
	case *List:
		if seg.Kind != token.DIGIT {
			return nil, typeFail(seg.Pos, "list index segment must be a digit, found %q", seg.Fragment)
		}
		idx, err := strconv.ParseUint(seg.Fragment, 10, 64)
		if err != nil || idx >= uint64(len(cur.Elements)) {
			return nil, noSuchSymbol(seg.Pos, seg.Fragment)
		}
		return cur.Elements[idx], nil
	case *Env:
		if seg.Kind != token.BAREWORD {
			return nil, typeFail(seg.Pos, "environment variable segment must be a name, found %q", seg.Fragment)
		}
		if val, ok := cur.Lookup(seg.Fragment); ok {
			return Str{Val: val}, nil
		}
		if ev.Strict {
			return nil, noSuchSymbol(seg.Pos, seg.Fragment)
		}
		return Empty{}, nil
	default:
		return nil, typeFail(seg.Pos, "cannot select %q from a %s value", seg.Fragment, v.Kind())
	}
}

// --- binary operators ---

func (ev *Evaluator) evalBinary(b *ast.Binary, self Value) (Value, error) {
	if b.Kind == ast.Dot {
		return ev.evalBinaryDot(b, self)
	}
	left, err := ev.evalExpr(b.Left, self)
	if err != nil {
		return nil, err
	}
	right, err := ev.evalExpr(b.Right, self)
	if err != nil {
		return nil, err
	}
	switch b.Kind {
	case ast.Add:
		return ev.evalAdd(b.P, left, right)
	case ast.Sub, ast.Mul, ast.Div:
		return ev.evalArith(b.P, b.Kind, left, right)
	case ast.Eq:
		return Boolean{Val: valuesEqual(left, right)}, nil
	case ast.Ne:
		return Boolean{Val: !valuesEqual(left, right)}, nil
	default:
		return ev.evalCompare(b.P, b.Kind, left, right)
	}
}

// evalBinaryDot handles a Dot binary operator whose left operand is
// not itself a "selector"-shaped non_op_expr (e.g. "macro_call().field"),
// as distinct from the "selector" grammar production which already
// folds a direct dot chain off a symbol/grouped head into one operand.
func (ev *Evaluator) evalBinaryDot(b *ast.Binary, self Value) (Value, error) {
	left, err := ev.evalExpr(b.Left, self)
	if err != nil {
		return nil, err
	}
	segs, err := dotSegments(b.Right)
	if err != nil {
		return nil, err
	}
	v := left
	for _, seg := range segs {
		v, err = ev.applySegment(v, seg)
		if err != nil {
			return nil, err
		}
	}
	return v, nil
}

func dotSegments(right ast.Expression) ([]token.Token, error) {
	if head, tail, ok := ast.Segments(right); ok {
		headTok := token.Token{Kind: token.BAREWORD, Fragment: head, Pos: right.Pos()}
		return append([]token.Token{headTok}, tail...), nil
	}
	if s, ok := right.(*ast.Simple); ok {
		if i, ok2 := s.Val.(*ast.Int); ok2 {
			return []token.Token{{Kind: token.DIGIT, Fragment: strconv.FormatInt(i.Val, 10), Pos: i.P}}, nil
		}
	}
	return nil, unsupported(right.Pos(), "right-hand side of '.' must be a field name or index")
}

func (ev *Evaluator) evalAdd(pos token.Position, left, right Value) (Value, error) {
	switch l := left.(type) {
	case Int:
		if r, ok := right.(Int); ok {
			return Int{Val: l.Val + r.Val}, nil
		}
	case Float:
		if r, ok := right.(Float); ok {
			return Float{Val: l.Val + r.Val}, nil
		}
	case Str:
		if r, ok := right.(Str); ok {
			return Str{Val: l.Val + r.Val}, nil
		}
	case *List:
		if r, ok := right.(*List); ok {
			elems := make([]Value, 0, len(l.Elements)+len(r.Elements))
			elems = append(elems, l.Elements...)
			elems = append(elems, r.Elements...)
			return &List{Elements: elems}, nil
		}
	}
	return nil, typeFail(pos, "cannot add %s and %s", left.Kind(), right.Kind())
}

func (ev *Evaluator) evalArith(pos token.Position, kind ast.BinaryKind, left, right Value) (Value, error) {
	li, lIsInt := left.(Int)
	ri, rIsInt := right.(Int)
	if lIsInt && rIsInt {
		if kind == ast.Div && ri.Val == 0 {
			return nil, unsupported(pos, "division by zero")
		}
		switch kind {
		case ast.Sub:
			return Int{Val: li.Val - ri.Val}, nil
		case ast.Mul:
			return Int{Val: li.Val * ri.Val}, nil
		case ast.Div:
			return Int{Val: li.Val / ri.Val}, nil // Go truncates toward zero
		}
	}
	lf, lIsFloat := left.(Float)
	rf, rIsFloat := right.(Float)
	if lIsFloat && rIsFloat {
		if kind == ast.Div && rf.Val == 0 {
			return nil, unsupported(pos, "division by zero")
		}
		switch kind {
		case ast.Sub:
			return Float{Val: lf.Val - rf.Val}, nil
		case ast.Mul:
			return Float{Val: lf.Val * rf.Val}, nil
		case ast.Div:
			return Float{Val: lf.Val / rf.Val}, nil
		}
	}
	return nil, typeFail(pos, "cannot %s %s and %s", kind, left.Kind(), right.Kind())
}

func (ev *Evaluator) evalCompare(pos token.Position, kind ast.BinaryKind, left, right Value) (Value, error) {
	li, lIsInt := left.(Int)
	ri, rIsInt := right.(Int)
	if lIsInt && rIsInt {
		return Boolean{Val: compareOrdered(kind, float64(li.Val), float64(ri.Val))}, nil
	}
	lf, lIsFloat := left.(Float)
	rf, rIsFloat := right.(Float)
	if lIsFloat && rIsFloat {
		return Boolean{Val: compareOrdered(kind, lf.Val, rf.Val)}, nil
	}
	return nil, typeFail(pos, "cannot compare %s and %s", left.Kind(), right.Kind())
}

func compareOrdered(kind ast.BinaryKind, l, r float64) bool {
	switch kind {
	case ast.Lt:
		return l < r
	case ast.Le:
		return l <= r
	case ast.Gt:
		return l > r
	case ast.Ge:
		return l >= r
	default:
		return false
	}
}

// --- copy ---

func (ev *Evaluator) evalCopy(c *ast.Copy, self Value) (Value, error) {
	base, err := ev.evalExpr(c.Selector, self)
	if err != nil {
		return nil, err
	}
	switch b := base.(type) {
	case *Tuple:
		return ev.copyTupleFields(b, c.Overrides, b)
	case *Module:
		return ev.copyModule(c, b)
	default:
		return nil, typeFail(c.Pos(), "copy selector must resolve to a tuple or module, found %s", base.Kind())
	}
}

// copyTupleFields implements the Copy-of-a-Tuple rule, shared by plain
// tuple copies and by Module copy's parameter-tuple resolution:
// evaluate overrides in order, overwriting an existing field
// (type-preservation enforced) or appending a new one; selfVal is
// exposed to the override expressions as `self`.
func (ev *Evaluator) copyTupleFields(base *Tuple, overrides []ast.TupleField, selfVal Value) (*Tuple, error) {
	fields := base.clone()
	for _, ov := range overrides {
		newVal, err := ev.evalExpr(ov.Expr, selfVal)
		if err != nil {
			return nil, err
		}
		name := ov.Name.Fragment
		if idx := indexOfField(fields, name); idx >= 0 {
			if !typeCompatible(fields[idx].Val, newVal) {
				return nil, typeFail(ov.Expr.Pos(), "cannot override field %q: %s is not type-compatible with %s", name, newVal.Kind(), fields[idx].Val.Kind())
			}
			fields[idx].Val = newVal
		} else {
			fields = append(fields, Field{Name: name, Val: newVal})
		}
	}
	return &Tuple{Fields: fields}, nil
}

func indexOfField(fields []Field, name string) int {
	for i, f := range fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

func (ev *Evaluator) copyModule(c *ast.Copy, mod *Module) (Value, error) {
	params, err := ev.copyTupleFields(mod.Params, c.Overrides, mod.Params)
	if err != nil {
		return nil, err
	}
	child := ev.newChildEvaluator(mod.Dir)
	child.Scope.DefineHidden("mod", params)
	if err := child.EvalFile(mod.Def.Statements); err != nil {
		return nil, err
	}
	return &Tuple{Fields: child.Scope.Bindings()}, nil
}

// --- call ---

func (ev *Evaluator) evalCall(c *ast.Call, self Value) (Value, error) {
	sel, err := ev.evalExpr(c.Selector, self)
	if err != nil {
		return nil, err
	}
	m, ok := sel.(*Macro)
	if !ok {
		return nil, typeFail(c.Pos(), "call selector must resolve to a macro, found %s", sel.Kind())
	}
	args := make([]Value, len(c.Args))
	for i, a := range c.Args {
		v, err := ev.evalExpr(a, self)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return ev.invokeMacro(c.Pos(), m, args)
}

// invokeMacro constructs a fresh child evaluator scoped only to the
// matched argdef bindings (macros do not close over outer lexical
// scope) and evaluates its fields into a Tuple. args shorter than
// argdefs leaves the remaining parameters unbound, so a Symbol lookup
// against them fails with NoSuchSymbol at point of use.
func (ev *Evaluator) invokeMacro(pos token.Position, m *Macro, args []Value) (Value, error) {
	if len(args) > len(m.Def.Argdefs) {
		return nil, badArgLen(pos, "macro takes at most %d argument(s), got %d", len(m.Def.Argdefs), len(args))
	}
	child := ev.newChildEvaluator(ev.Dir)
	for i, argdef := range m.Def.Argdefs {
		if i < len(args) {
			child.Scope.DefineHidden(argdef.Fragment, args[i])
		}
	}
	fields := make([]Field, 0, len(m.Def.Fields))
	for _, f := range m.Def.Fields {
		v, err := child.evalExpr(f.Expr, nil)
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field{Name: f.Name.Fragment, Val: v})
	}
	return &Tuple{Fields: fields}, nil
}

// --- module literal ---

func (ev *Evaluator) evalModuleLiteral(m *ast.Module, self Value) (Value, error) {
	params, err := ev.evalTupleLiteral(&ast.Tuple{P: m.Pos(), Fields: m.ArgSet}, self)
	if err != nil {
		return nil, err
	}
	return &Module{Def: m, Params: params.(*Tuple), Dir: ev.Dir}, nil
}

// --- select ---

func (ev *Evaluator) evalSelect(s *ast.Select, self Value) (Value, error) {
	disc, err := ev.evalExpr(s.Discriminant, self)
	if err != nil {
		return nil, err
	}
	var key string
	switch d := disc.(type) {
	case Str:
		key = d.Val
	case Boolean:
		if d.Val {
			key = "true"
		} else {
			key = "false"
		}
	default:
		return nil, typeFail(s.Pos(), "select discriminant must be a string or boolean, found %s", disc.Kind())
	}
	for _, br := range s.Branches {
		if br.Name.Fragment == key {
			return ev.evalExpr(br.Expr, self)
		}
	}
	return ev.evalExpr(s.Default, self)
}

// --- format ---

func (ev *Evaluator) evalFormat(f *ast.Format, self Value) (Value, error) {
	args := make([]Value, len(f.Args))
	for i, a := range f.Args {
		v, err := ev.evalExpr(a, self)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	tmpl := f.Template.Fragment
	var b strings.Builder
	argIdx := 0
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] != '@' {
			b.WriteByte(tmpl[i])
			continue
		}
		if argIdx >= len(args) {
			return nil, badArgLen(f.Pos(), "format template has more '@' placeholders than the %d argument(s) given", len(args))
		}
		b.WriteString(displayValue(args[argIdx]))
		argIdx++
	}
	if argIdx != len(args) {
		return nil, badArgLen(f.Pos(), "format template has %d '@' placeholder(s) but %d argument(s) were given", argIdx, len(args))
	}
	return Str{Val: b.String()}, nil
}

// --- listop ---

func (ev *Evaluator) evalListOp(lo *ast.ListOp, self Value) (Value, error) {
	target, err := ev.evalExpr(lo.Target, self)
	if err != nil {
		return nil, err
	}
	list, ok := target.(*List)
	if !ok {
		return nil, typeFail(lo.Pos(), "%s target must be a list, found %s", lo.Kind, target.Kind())
	}
	macroVal, err := ev.evalExpr(lo.MacroSelector, self)
	if err != nil {
		return nil, err
	}
	m, ok := macroVal.(*Macro)
	if !ok {
		return nil, typeFail(lo.Pos(), "%s macro selector must resolve to a macro, found %s", lo.Kind, macroVal.Kind())
	}

	var result []Value
	for _, elem := range list.Elements {
		tuple, err := ev.invokeMacro(lo.Pos(), m, []Value{elem})
		if err != nil {
			return nil, err
		}
		projected, ok := tuple.(*Tuple).Get(lo.FieldName.Fragment)
		if !ok {
			return nil, noSuchSymbol(lo.FieldName.Pos, lo.FieldName.Fragment)
		}
		switch lo.Kind {
		case ast.Map:
			result = append(result, projected)
		case ast.Filter:
			// Keep the element unless its projected field is Empty or
			// Boolean(false); Int(0) is kept.
			if isDropped(projected) {
				continue
			}
			result = append(result, elem)
		}
	}
	return &List{Elements: result}, nil
}

func isDropped(v Value) bool {
	if v.Kind() == KindEmpty {
		return true
	}
	if b, ok := v.(Boolean); ok {
		return !b.Val
	}
	return false
}
