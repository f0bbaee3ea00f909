package grammar

import (
	"fmt"
	"strings"

	"github.com/rickardlindberg/rlmeta/internal/action"
	"github.com/rickardlindberg/rlmeta/internal/match"
	"github.com/rickardlindberg/rlmeta/internal/registry"
	"github.com/rickardlindberg/rlmeta/internal/value"
)

// registerCodeGenerator installs the CodeGenerator.* rules described in
// spec §4.6: walking the AST that Parser produced and emitting the Go
// source of a Register(*registry.Registry) function per namespace, built
// from the same match.OrOf/AndOf/... constructors that internal/grammar's
// own hand-written parser.go uses. A grammar compiled through this package
// therefore produces source in the same shape as this package itself —
// that symmetry is what makes the bootstrap self-hosting.
func registerCodeGenerator(reg *registry.Registry) {
	CG := func(rule string) string { return qualify(NamespaceCodeGenerator, rule) }
	r := func(rule string) match.Matcher { return match.RuleOf(CG(rule)) }

	// asts = ast*:xs !. -> join(xs, "\n\n")
	reg.Register(CG("asts"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.BindOf("xs", match.StarOf(r("ast"))),
			match.NotOf(match.Any()),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				xs, err := self.Lookup("xs")
				if err != nil {
					return nil, err
				}
				return value.Join(xs, "\n\n"), nil
			}),
		)),
	))

	// ast = [%]
	reg.Register(CG("ast"), match.OrOf(
		match.ListOf(match.CallRuleOf(NamespaceCodeGenerator)),
	))

	// Namespace name:x rule*:ys !. -> func Register<x>(reg *registry.Registry) { ys... }
	reg.Register(CG("Namespace"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.BindOf("name", match.Any()),
			match.BindOf("rules", match.StarOf(r("ast"))),
			match.NotOf(match.Any()),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				name, err := self.Lookup("name")
				if err != nil {
					return nil, err
				}
				nameStr, _ := name.(string)
				return self.Bind("namespace", nameStr, func() (value.Value, error) {
					rulesVal, err := self.Lookup("rules")
					if err != nil {
						return nil, err
					}
					rulesList, _ := value.IsList(rulesVal)
					lines := make([]string, len(rulesList))
					for i, rl := range rulesList {
						s, _ := rl.(string)
						lines[i] = s
					}
					body := value.Indent(strings.Join(lines, "\n"), "\t")
					return fmt.Sprintf("func Register%s(reg *registry.Registry) {\n%s}\n", nameStr, body), nil
				})
			}),
		)),
	))

	// Rule name:x body:y !. -> reg.Register("namespace.x", y)
	reg.Register(CG("Rule"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.BindOf("name", match.Any()),
			match.BindOf("body", r("ast")),
			match.NotOf(match.Any()),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				vs, err := lk(self, "name", "body", "namespace")
				if err != nil {
					return nil, err
				}
				nameStr, _ := vs[0].(string)
				bodyStr, _ := vs[1].(string)
				nsStr, _ := vs[2].(string)
				return fmt.Sprintf("reg.Register(%s, %s)", value.Repr(qualify(nsStr, nameStr)), bodyStr), nil
			}),
		)),
	))

	// Or x:x xs*:xs !. -> match.OrOf(x, xs...)
	reg.Register(CG("Or"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.BindOf("x", r("ast")),
			match.BindOf("xs", match.StarOf(r("ast"))),
			match.NotOf(match.Any()),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				return emitCall(self, "match.OrOf", "x", "xs")
			}),
		)),
	))

	// And xs*:xs !. -> match.AndOf(xs...)
	reg.Register(CG("And"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.BindOf("xs", match.StarOf(r("ast"))),
			match.NotOf(match.Any()),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				return emitCall(self, "match.AndOf", "xs")
			}),
		)),
	))

	// Star x:x !. -> match.StarOf(x)
	reg.Register(CG("Star"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.BindOf("x", r("ast")),
			match.NotOf(match.Any()),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				x, err := self.Lookup("x")
				if err != nil {
					return nil, err
				}
				xStr, _ := x.(string)
				return fmt.Sprintf("match.StarOf(%s)", xStr), nil
			}),
		)),
	))

	// Not x:x !. -> match.NotOf(x)
	reg.Register(CG("Not"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.BindOf("x", r("ast")),
			match.NotOf(match.Any()),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				x, err := self.Lookup("x")
				if err != nil {
					return nil, err
				}
				xStr, _ := x.(string)
				return fmt.Sprintf("match.NotOf(%s)", xStr), nil
			}),
		)),
	))

	// Scope x:x !. -> match.ScopeOf(x)
	reg.Register(CG("Scope"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.BindOf("x", r("ast")),
			match.NotOf(match.Any()),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				x, err := self.Lookup("x")
				if err != nil {
					return nil, err
				}
				xStr, _ := x.(string)
				return fmt.Sprintf("match.ScopeOf(%s)", xStr), nil
			}),
		)),
	))

	// Bind name:n x:x !. -> match.BindOf("n", x)
	reg.Register(CG("Bind"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.BindOf("name", match.Any()),
			match.BindOf("x", r("ast")),
			match.NotOf(match.Any()),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				vs, err := lk(self, "name", "x")
				if err != nil {
					return nil, err
				}
				nameStr, _ := vs[0].(string)
				xStr, _ := vs[1].(string)
				return fmt.Sprintf("match.BindOf(%s, %s)", value.Repr(nameStr), xStr), nil
			}),
		)),
	))

	// MatchObject x:x !. -> x evaluates directly to a match.Matcher
	// (Eq/Range/Any below build MatchObject values already).
	reg.Register(CG("MatchObject"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.BindOf("x", r("ast")),
			match.NotOf(match.Any()),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				return self.Lookup("x")
			}),
		)),
	))

	// Eq x:x !. -> match.Eq(<x>)
	reg.Register(CG("Eq"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.BindOf("x", match.Any()),
			match.NotOf(match.Any()),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				x, err := self.Lookup("x")
				if err != nil {
					return nil, err
				}
				return fmt.Sprintf("match.Eq(%s)", value.Repr(x)), nil
			}),
		)),
	))

	// Range lo:lo hi:hi !. -> match.CharRange(<lo>, <hi>)
	reg.Register(CG("Range"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.BindOf("lo", match.Any()),
			match.BindOf("hi", match.Any()),
			match.NotOf(match.Any()),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				vs, err := lk(self, "lo", "hi")
				if err != nil {
					return nil, err
				}
				return fmt.Sprintf("match.CharRange(%s, %s)", value.Repr(vs[0]), value.Repr(vs[1])), nil
			}),
		)),
	))

	// Any !. -> match.Any()
	reg.Register(CG("Any"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.NotOf(match.Any()),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				return "match.Any()", nil
			}),
		)),
	))

	// MatchList x:x !. -> match.ListOf(x)
	reg.Register(CG("MatchList"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.BindOf("x", r("ast")),
			match.NotOf(match.Any()),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				x, err := self.Lookup("x")
				if err != nil {
					return nil, err
				}
				xStr, _ := x.(string)
				return fmt.Sprintf("match.ListOf(%s)", xStr), nil
			}),
		)),
	))

	// MatchRule name:n !. -> match.RuleOf("<namespace>.n")
	reg.Register(CG("MatchRule"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.BindOf("name", match.Any()),
			match.NotOf(match.Any()),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				vs, err := lk(self, "name", "namespace")
				if err != nil {
					return nil, err
				}
				nameStr, _ := vs[0].(string)
				nsStr, _ := vs[1].(string)
				return fmt.Sprintf("match.RuleOf(%s)", value.Repr(qualify(nsStr, nameStr))), nil
			}),
		)),
	))

	// MatchCallRule !. -> match.CallRuleOf("<namespace>")
	reg.Register(CG("MatchCallRule"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.NotOf(match.Any()),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				ns, err := self.Lookup("namespace")
				if err != nil {
					return nil, err
				}
				nsStr, _ := ns.(string)
				return fmt.Sprintf("match.CallRuleOf(%s)", value.Repr(nsStr)), nil
			}),
		)),
	))

	// Action x:x !. -> match.ActOf(func(self *action.Action) (value.Value, error) { return <x>, nil })
	reg.Register(CG("Action"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.BindOf("x", r("ast")),
			match.NotOf(match.Any()),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				x, err := self.Lookup("x")
				if err != nil {
					return nil, err
				}
				xStr, _ := x.(string)
				return fmt.Sprintf(
					"match.ActOf(func(self *action.Action) (value.Value, error) {\n\treturn %s, nil\n})",
					xStr,
				), nil
			}),
		)),
	))

	// Set name:n x:x z:z !. -> rtenv.Must(self.Bind("n", <x>, func() (value.Value, error) { return <z>, nil }))
	reg.Register(CG("Set"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.BindOf("name", match.Any()),
			match.BindOf("x", r("ast")),
			match.BindOf("z", r("ast")),
			match.NotOf(match.Any()),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				vs, err := lk(self, "name", "x", "z")
				if err != nil {
					return nil, err
				}
				nameStr, _ := vs[0].(string)
				xStr, _ := vs[1].(string)
				zStr, _ := vs[2].(string)
				return fmt.Sprintf(
					"rtenv.Must(self.Bind(%s, %s, func() (value.Value, error) { return %s, nil }))",
					value.Repr(nameStr), xStr, zStr,
				), nil
			}),
		)),
	))

	// String x:x !. -> <go string literal>
	reg.Register(CG("String"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.BindOf("x", match.Any()),
			match.NotOf(match.Any()),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				x, err := self.Lookup("x")
				if err != nil {
					return nil, err
				}
				return value.Repr(x), nil
			}),
		)),
	))

	// List xs*:xs !. -> value.List{x0, x1, ...}
	reg.Register(CG("List"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.BindOf("xs", match.StarOf(r("ast"))),
			match.NotOf(match.Any()),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				xs, err := self.Lookup("xs")
				if err != nil {
					return nil, err
				}
				xsList, _ := value.IsList(xs)
				parts := make([]string, len(xsList))
				for i, x := range xsList {
					s, _ := x.(string)
					parts[i] = s
				}
				return fmt.Sprintf("value.List{%s}", strings.Join(parts, ", ")), nil
			}),
		)),
	))

	// ListItem depth:d x:x !. -> value.Splice(<d>, <x>)
	reg.Register(CG("ListItem"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.BindOf("depth", match.Any()),
			match.BindOf("x", r("ast")),
			match.NotOf(match.Any()),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				vs, err := lk(self, "depth", "x")
				if err != nil {
					return nil, err
				}
				xStr, _ := vs[1].(string)
				return fmt.Sprintf("value.Splice(%v, %s)", vs[0], xStr), nil
			}),
		)),
	))

	// Format xs*:xs !. -> strings.Join([]string{x0, ...}, "")
	reg.Register(CG("Format"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.BindOf("xs", match.StarOf(r("ast"))),
			match.NotOf(match.Any()),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				xs, err := self.Lookup("xs")
				if err != nil {
					return nil, err
				}
				xsList, _ := value.IsList(xs)
				parts := make([]string, len(xsList))
				for i, x := range xsList {
					s, _ := x.(string)
					parts[i] = fmt.Sprintf("fmt.Sprint(%s)", s)
				}
				return fmt.Sprintf("strings.Join([]string{%s}, \"\")", strings.Join(parts, ", ")), nil
			}),
		)),
	))

	// Indent x:x !. -> value.Indent(<x>, rtenv.Must(self.Lookup("indentprefix")).(string))
	reg.Register(CG("Indent"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.BindOf("x", r("ast")),
			match.NotOf(match.Any()),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				x, err := self.Lookup("x")
				if err != nil {
					return nil, err
				}
				xStr, _ := x.(string)
				return fmt.Sprintf(
					"value.Indent(%s, rtenv.Must(self.Lookup(\"indentprefix\")).(string))",
					xStr,
				), nil
			}),
		)),
	))

	// Call f:f xs*:xs !. -> rtenv.Must(<f>.(value.Callable)([]value.Value{x0, ...}))
	reg.Register(CG("Call"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.BindOf("name", r("ast")),
			match.BindOf("xs", match.StarOf(r("ast"))),
			match.NotOf(match.Any()),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				vs, err := lk(self, "name", "xs")
				if err != nil {
					return nil, err
				}
				nameStr, _ := vs[0].(string)
				xsList, _ := value.IsList(vs[1])
				parts := make([]string, len(xsList))
				for i, x := range xsList {
					s, _ := x.(string)
					parts[i] = s
				}
				return fmt.Sprintf(
					"rtenv.Must(%s.(value.Callable)([]value.Value{%s}))",
					nameStr, strings.Join(parts, ", "),
				), nil
			}),
		)),
	))

	// Lookup name:n !. -> rtenv.Must(self.Lookup("n"))
	reg.Register(CG("Lookup"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.BindOf("name", match.Any()),
			match.NotOf(match.Any()),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				name, err := self.Lookup("name")
				if err != nil {
					return nil, err
				}
				nameStr, _ := name.(string)
				return fmt.Sprintf("rtenv.Must(self.Lookup(%s))", value.Repr(nameStr)), nil
			}),
		)),
	))
}

// emitCall renders a Go call to fn whose arguments are the comma-joined
// generated code of the named scope entries, splicing any value.List
// entries (Star-collected children) into the argument list rather than
// passing them as a single slice argument — matching the variadic Matcher
// constructors in internal/match/build.go.
func emitCall(self *action.Action, fn string, names ...string) (value.Value, error) {
	vs, err := lk(self, names...)
	if err != nil {
		return nil, err
	}
	var parts []string
	for _, v := range vs {
		if l, ok := value.IsList(v); ok {
			for _, item := range l {
				s, _ := item.(string)
				parts = append(parts, s)
			}
			continue
		}
		s, _ := v.(string)
		parts = append(parts, s)
	}
	return fmt.Sprintf("%s(\n\t%s,\n)", fn, strings.Join(parts, ",\n\t")), nil
}
