package grammar

import (
	"github.com/rickardlindberg/rlmeta/internal/action"
	"github.com/rickardlindberg/rlmeta/internal/match"
	"github.com/rickardlindberg/rlmeta/internal/registry"
	"github.com/rickardlindberg/rlmeta/internal/value"
)

// registerParser installs the Parser.* rules described in spec §4.5:
// compiling grammar source characters into the tagged-list AST that
// CodeGenerator consumes.
func registerParser(reg *registry.Registry) {
	P := func(rule string) string { return qualify(NamespaceParser, rule) }
	r := func(rule string) match.Matcher { return match.RuleOf(P(rule)) }

	// file = (space namespace)*:xs space !. -> xs
	reg.Register(P("file"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.BindOf("xs", match.StarOf(match.OrOf(
				match.ScopeOf(match.AndOf(r("space"), r("namespace"))),
			))),
			r("space"),
			match.NotOf(match.Any()),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				return self.Lookup("xs")
			}),
		)),
	))

	// namespace = name:x space '{' rule*:ys space '}'
	//           -> [Namespace x ~ys]
	reg.Register(P("namespace"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.BindOf("x", r("name")),
			r("space"),
			match.Eq('{'),
			match.BindOf("ys", match.StarOf(r("rule"))),
			r("space"),
			match.Eq('}'),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				vs, err := lk(self, "x", "ys")
				if err != nil {
					return nil, err
				}
				return value.Concat([]value.Value{
					value.Splice(0, "Namespace"),
					value.Splice(0, vs[0]),
					value.Splice(1, vs[1]),
				}), nil
			}),
		)),
	))

	// rule = name:x space '=' choice:y -> [Rule x y]
	reg.Register(P("rule"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.BindOf("x", r("name")),
			r("space"),
			match.Eq('='),
			match.BindOf("y", r("choice")),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				vs, err := lk(self, "x", "y")
				if err != nil {
					return nil, err
				}
				return value.Concat([]value.Value{
					value.Splice(0, "Rule"),
					value.Splice(0, vs[0]),
					value.Splice(0, vs[1]),
				}), nil
			}),
		)),
	))

	// choice = (space '|')? sequence:x (space '|' sequence)*:xs
	//        -> [Or x ~xs]
	reg.Register(P("choice"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.OrOf(
				match.OrOf(match.ScopeOf(match.AndOf(r("space"), match.Eq('|')))),
				match.AndOf(),
			),
			match.BindOf("x", r("sequence")),
			match.BindOf("xs", match.StarOf(match.OrOf(
				match.ScopeOf(match.AndOf(r("space"), match.Eq('|'), r("sequence"))),
			))),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				vs, err := lk(self, "x", "xs")
				if err != nil {
					return nil, err
				}
				return value.Concat([]value.Value{
					value.Splice(0, "Or"),
					value.Splice(0, vs[0]),
					value.Splice(1, vs[1]),
				}), nil
			}),
		)),
	))

	// sequence = expr*:xs maybeAction:ys -> [Scope [And ~xs ~ys]]
	reg.Register(P("sequence"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.BindOf("xs", match.StarOf(r("expr"))),
			match.BindOf("ys", r("maybeAction")),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				vs, err := lk(self, "xs", "ys")
				if err != nil {
					return nil, err
				}
				and := value.Concat([]value.Value{
					value.Splice(0, "And"),
					value.Splice(1, vs[0]),
					value.Splice(1, vs[1]),
				})
				return value.Concat([]value.Value{
					value.Splice(0, "Scope"),
					value.Splice(0, and),
				}), nil
			}),
		)),
	))

	// expr = expr1:x space ':' name:y -> [Bind y x]
	//      | expr1
	reg.Register(P("expr"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.BindOf("x", r("expr1")),
			r("space"),
			match.Eq(':'),
			match.BindOf("y", r("name")),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				vs, err := lk(self, "y", "x")
				if err != nil {
					return nil, err
				}
				return value.Concat([]value.Value{
					value.Splice(0, "Bind"),
					value.Splice(0, vs[0]),
					value.Splice(0, vs[1]),
				}), nil
			}),
		)),
		match.ScopeOf(match.AndOf(r("expr1"))),
	))

	// expr1 = expr2:x space '*' -> [Star x]
	//       | expr2:x space '?' -> [Or x [And]]
	//       | space '!' expr2:x -> [Not x]
	//       | space '%' -> [MatchCallRule]
	//       | expr2
	reg.Register(P("expr1"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.BindOf("x", r("expr2")),
			r("space"),
			match.Eq('*'),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				x, err := self.Lookup("x")
				if err != nil {
					return nil, err
				}
				return value.Concat([]value.Value{
					value.Splice(0, "Star"),
					value.Splice(0, x),
				}), nil
			}),
		)),
		match.ScopeOf(match.AndOf(
			match.BindOf("x", r("expr2")),
			r("space"),
			match.Eq('?'),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				x, err := self.Lookup("x")
				if err != nil {
					return nil, err
				}
				return value.Concat([]value.Value{
					value.Splice(0, "Or"),
					value.Splice(0, x),
					value.Splice(0, value.Concat([]value.Value{value.Splice(0, "And")})),
				}), nil
			}),
		)),
		match.ScopeOf(match.AndOf(
			r("space"),
			match.Eq('!'),
			match.BindOf("x", r("expr2")),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				x, err := self.Lookup("x")
				if err != nil {
					return nil, err
				}
				return value.Concat([]value.Value{
					value.Splice(0, "Not"),
					value.Splice(0, x),
				}), nil
			}),
		)),
		match.ScopeOf(match.AndOf(
			r("space"),
			match.Eq('%'),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				return value.Concat([]value.Value{value.Splice(0, "MatchCallRule")}), nil
			}),
		)),
		match.ScopeOf(match.AndOf(r("expr2"))),
	))

	// expr2 = name:x !(space '=') -> [MatchRule x]
	//       | space char:x '-' char:y -> [MatchObject [Range x y]]
	//       | space "'" (!"'" matchChar)*:xs "'" -> [And ~xs]
	//       | space '.' -> [MatchObject [Any]]
	//       | space '(' choice:x space ')' -> x
	//       | space '[' expr*:xs space ']' -> [MatchList [And ~xs]]
	reg.Register(P("expr2"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.BindOf("x", r("name")),
			match.NotOf(match.OrOf(
				match.ScopeOf(match.AndOf(r("space"), match.Eq('='))),
			)),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				x, err := self.Lookup("x")
				if err != nil {
					return nil, err
				}
				return value.Concat([]value.Value{
					value.Splice(0, "MatchRule"),
					value.Splice(0, x),
				}), nil
			}),
		)),
		match.ScopeOf(match.AndOf(
			r("space"),
			match.BindOf("x", r("char")),
			match.Eq('-'),
			match.BindOf("y", r("char")),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				vs, err := lk(self, "x", "y")
				if err != nil {
					return nil, err
				}
				rangeNode := value.Concat([]value.Value{
					value.Splice(0, "Range"),
					value.Splice(0, vs[0]),
					value.Splice(0, vs[1]),
				})
				return value.Concat([]value.Value{
					value.Splice(0, "MatchObject"),
					value.Splice(0, rangeNode),
				}), nil
			}),
		)),
		match.ScopeOf(match.AndOf(
			r("space"),
			match.Eq('\''),
			match.BindOf("xs", match.StarOf(match.OrOf(
				match.ScopeOf(match.AndOf(
					match.NotOf(match.AndOf(match.Eq('\''))),
					r("matchChar"),
				)),
			))),
			match.Eq('\''),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				xs, err := self.Lookup("xs")
				if err != nil {
					return nil, err
				}
				return value.Concat([]value.Value{
					value.Splice(0, "And"),
					value.Splice(1, xs),
				}), nil
			}),
		)),
		match.ScopeOf(match.AndOf(
			r("space"),
			match.Eq('.'),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				return value.Concat([]value.Value{
					value.Splice(0, "MatchObject"),
					value.Splice(0, value.Concat([]value.Value{value.Splice(0, "Any")})),
				}), nil
			}),
		)),
		match.ScopeOf(match.AndOf(
			r("space"),
			match.Eq('('),
			match.BindOf("x", r("choice")),
			r("space"),
			match.Eq(')'),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				return self.Lookup("x")
			}),
		)),
		match.ScopeOf(match.AndOf(
			r("space"),
			match.Eq('['),
			match.BindOf("xs", match.StarOf(r("expr"))),
			r("space"),
			match.Eq(']'),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				xs, err := self.Lookup("xs")
				if err != nil {
					return nil, err
				}
				and := value.Concat([]value.Value{
					value.Splice(0, "And"),
					value.Splice(1, xs),
				})
				return value.Concat([]value.Value{
					value.Splice(0, "MatchList"),
					value.Splice(0, and),
				}), nil
			}),
		)),
	))

	// matchChar = innerChar:x -> [MatchObject [Eq x]]
	reg.Register(P("matchChar"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.BindOf("x", r("innerChar")),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				x, err := self.Lookup("x")
				if err != nil {
					return nil, err
				}
				eq := value.Concat([]value.Value{
					value.Splice(0, "Eq"),
					value.Splice(0, x),
				})
				return value.Concat([]value.Value{
					value.Splice(0, "MatchObject"),
					value.Splice(0, eq),
				}), nil
			}),
		)),
	))

	// maybeAction = actionExpr:x -> [[Action x]]
	//             | -> []
	reg.Register(P("maybeAction"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.BindOf("x", r("actionExpr")),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				x, err := self.Lookup("x")
				if err != nil {
					return nil, err
				}
				return value.Concat([]value.Value{
					value.Splice(0, value.Concat([]value.Value{
						value.Splice(0, "Action"),
						value.Splice(0, x),
					})),
				}), nil
			}),
		)),
		match.ScopeOf(match.AndOf(
			match.ActOf(func(self *action.Action) (value.Value, error) {
				return value.List{}, nil
			}),
		)),
	))

	// actionExpr = space '->' hostExpr:x (space ':' name | -> '')  :y
	//              actionExpr:z -> [Set y x z]
	//            | space '->' hostExpr
	reg.Register(P("actionExpr"), match.OrOf(
		match.ScopeOf(match.AndOf(
			r("space"),
			match.AndOf(match.Eq('-'), match.Eq('>')),
			match.BindOf("x", r("hostExpr")),
			match.BindOf("y", match.OrOf(
				match.ScopeOf(match.AndOf(r("space"), match.Eq(':'), r("name"))),
				match.ScopeOf(match.AndOf(match.ActOf(func(self *action.Action) (value.Value, error) {
					return "", nil
				}))),
			)),
			match.BindOf("z", r("actionExpr")),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				vs, err := lk(self, "y", "x", "z")
				if err != nil {
					return nil, err
				}
				return value.Concat([]value.Value{
					value.Splice(0, "Set"),
					value.Splice(0, vs[0]),
					value.Splice(0, vs[1]),
					value.Splice(0, vs[2]),
				}), nil
			}),
		)),
		match.ScopeOf(match.AndOf(
			r("space"),
			match.AndOf(match.Eq('-'), match.Eq('>')),
			r("hostExpr"),
		)),
	))

	// hostExpr = space string:x -> [String x]
	//          | space '[' hostListItem*:xs space ']' -> [List ~xs]
	//          | space '{' formatExpr*:xs space '}' -> [Format ~xs]
	//          | var:x space '(' hostExpr*:ys space ')' -> [Call x ~ys]
	//          | var
	reg.Register(P("hostExpr"), match.OrOf(
		match.ScopeOf(match.AndOf(
			r("space"),
			match.BindOf("x", r("string")),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				x, err := self.Lookup("x")
				if err != nil {
					return nil, err
				}
				return value.Concat([]value.Value{
					value.Splice(0, "String"),
					value.Splice(0, x),
				}), nil
			}),
		)),
		match.ScopeOf(match.AndOf(
			r("space"),
			match.Eq('['),
			match.BindOf("xs", match.StarOf(r("hostListItem"))),
			r("space"),
			match.Eq(']'),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				xs, err := self.Lookup("xs")
				if err != nil {
					return nil, err
				}
				return value.Concat([]value.Value{
					value.Splice(0, "List"),
					value.Splice(1, xs),
				}), nil
			}),
		)),
		match.ScopeOf(match.AndOf(
			r("space"),
			match.Eq('{'),
			match.BindOf("xs", match.StarOf(r("formatExpr"))),
			r("space"),
			match.Eq('}'),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				xs, err := self.Lookup("xs")
				if err != nil {
					return nil, err
				}
				return value.Concat([]value.Value{
					value.Splice(0, "Format"),
					value.Splice(1, xs),
				}), nil
			}),
		)),
		match.ScopeOf(match.AndOf(
			match.BindOf("x", r("var")),
			r("space"),
			match.Eq('('),
			match.BindOf("ys", match.StarOf(r("hostExpr"))),
			r("space"),
			match.Eq(')'),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				vs, err := lk(self, "x", "ys")
				if err != nil {
					return nil, err
				}
				return value.Concat([]value.Value{
					value.Splice(0, "Call"),
					value.Splice(0, vs[0]),
					value.Splice(1, vs[1]),
				}), nil
			}),
		)),
		match.ScopeOf(match.AndOf(r("var"))),
	))

	// hostListItem = space '~'*:ys hostExpr:x -> [ListItem len(ys) x]
	reg.Register(P("hostListItem"), match.OrOf(
		match.ScopeOf(match.AndOf(
			r("space"),
			match.BindOf("ys", match.StarOf(match.AndOf(match.Eq('~')))),
			match.BindOf("x", r("hostExpr")),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				vs, err := lk(self, "ys", "x")
				if err != nil {
					return nil, err
				}
				depth, err := self.Call("len", []value.Value{vs[0]})
				if err != nil {
					return nil, err
				}
				return value.Concat([]value.Value{
					value.Splice(0, "ListItem"),
					value.Splice(0, depth),
					value.Splice(0, vs[1]),
				}), nil
			}),
		)),
	))

	// formatExpr = space '>' formatExpr*:xs space '<' -> [Indent [Format ~xs]]
	//            | hostExpr
	reg.Register(P("formatExpr"), match.OrOf(
		match.ScopeOf(match.AndOf(
			r("space"),
			match.Eq('>'),
			match.BindOf("xs", match.StarOf(r("formatExpr"))),
			r("space"),
			match.Eq('<'),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				xs, err := self.Lookup("xs")
				if err != nil {
					return nil, err
				}
				format := value.Concat([]value.Value{
					value.Splice(0, "Format"),
					value.Splice(1, xs),
				})
				return value.Concat([]value.Value{
					value.Splice(0, "Indent"),
					value.Splice(0, format),
				}), nil
			}),
		)),
		match.ScopeOf(match.AndOf(r("hostExpr"))),
	))

	// var = name:x !(space '=') -> [Lookup x]
	reg.Register(P("var"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.BindOf("x", r("name")),
			match.NotOf(match.OrOf(
				match.ScopeOf(match.AndOf(r("space"), match.Eq('='))),
			)),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				x, err := self.Lookup("x")
				if err != nil {
					return nil, err
				}
				return value.Concat([]value.Value{
					value.Splice(0, "Lookup"),
					value.Splice(0, x),
				}), nil
			}),
		)),
	))

	// string = '"' (!'"' innerChar)*:xs '"' -> join(xs)
	reg.Register(P("string"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.AndOf(match.Eq('"')),
			match.BindOf("xs", match.StarOf(match.OrOf(
				match.ScopeOf(match.AndOf(
					match.NotOf(match.AndOf(match.Eq('"'))),
					r("innerChar"),
				)),
			))),
			match.AndOf(match.Eq('"')),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				xs, err := self.Lookup("xs")
				if err != nil {
					return nil, err
				}
				return value.Join(xs, ""), nil
			}),
		)),
	))

	// char = "'" !"'" innerChar:x "'" -> x
	reg.Register(P("char"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.AndOf(match.Eq('\'')),
			match.NotOf(match.AndOf(match.Eq('\''))),
			match.BindOf("x", r("innerChar")),
			match.AndOf(match.Eq('\'')),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				return self.Lookup("x")
			}),
		)),
	))

	// innerChar = '\\' escape | .
	reg.Register(P("innerChar"), match.OrOf(
		match.ScopeOf(match.AndOf(match.AndOf(match.Eq('\\')), r("escape"))),
		match.ScopeOf(match.AndOf(match.Any())),
	))

	// escape = '\\' -> '\\' | "'" -> "'" | '"' -> '"' | 'n' -> '\n'
	reg.Register(P("escape"), match.OrOf(
		match.ScopeOf(match.AndOf(match.AndOf(match.Eq('\\')), match.ActOf(func(self *action.Action) (value.Value, error) {
			return "\\", nil
		}))),
		match.ScopeOf(match.AndOf(match.AndOf(match.Eq('\'')), match.ActOf(func(self *action.Action) (value.Value, error) {
			return "'", nil
		}))),
		match.ScopeOf(match.AndOf(match.AndOf(match.Eq('"')), match.ActOf(func(self *action.Action) (value.Value, error) {
			return "\"", nil
		}))),
		match.ScopeOf(match.AndOf(match.AndOf(match.Eq('n')), match.ActOf(func(self *action.Action) (value.Value, error) {
			return "\n", nil
		}))),
	))

	// name = space nameStart:x nameChar*:xs -> join([x xs])
	reg.Register(P("name"), match.OrOf(
		match.ScopeOf(match.AndOf(
			r("space"),
			match.BindOf("x", r("nameStart")),
			match.BindOf("xs", match.StarOf(r("nameChar"))),
			match.ActOf(func(self *action.Action) (value.Value, error) {
				vs, err := lk(self, "x", "xs")
				if err != nil {
					return nil, err
				}
				return value.Join(value.List{vs[0], vs[1]}, ""), nil
			}),
		)),
	))

	// nameStart = 'a'-'z' | 'A'-'Z'
	reg.Register(P("nameStart"), match.OrOf(
		match.ScopeOf(match.AndOf(match.CharRange('a', 'z'))),
		match.ScopeOf(match.AndOf(match.CharRange('A', 'Z'))),
	))

	// nameChar = 'a'-'z' | 'A'-'Z' | '0'-'9'
	reg.Register(P("nameChar"), match.OrOf(
		match.ScopeOf(match.AndOf(match.CharRange('a', 'z'))),
		match.ScopeOf(match.AndOf(match.CharRange('A', 'Z'))),
		match.ScopeOf(match.AndOf(match.CharRange('0', '9'))),
	))

	// space = (' ' | '\n')*
	reg.Register(P("space"), match.OrOf(
		match.ScopeOf(match.AndOf(
			match.StarOf(match.OrOf(
				match.ScopeOf(match.AndOf(match.AndOf(match.Eq(' ')))),
				match.ScopeOf(match.AndOf(match.AndOf(match.Eq('\n')))),
			)),
		)),
	))
}
