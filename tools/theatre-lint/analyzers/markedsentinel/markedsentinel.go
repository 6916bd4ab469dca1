// Package markedsentinel detects standard library error matching against the
// domain's marked sentinels.
//
// entities.Err* sentinels are attached with cockroachdb/errors.Mark. A marked
// error only matches through the cockroachdb errors.Is; the standard library
// errors.Is (and testify's ErrorIs, which uses it) silently reports false.
package markedsentinel

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer reports errors.Is / ErrorIs calls that cannot match a marked sentinel.
var Analyzer = &analysis.Analyzer{
	Name:     "markedsentinel",
	Doc:      "detects standard errors.Is and testify ErrorIs against entities.Err* sentinels",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// stdMatchers lists the functions that match with the standard errors.Is,
// keyed by package path. The value is the index of the target argument.
var stdMatchers = map[string]map[string]int{
	"errors": {
		"Is": 1,
	},
	"github.com/stretchr/testify/assert": {
		"ErrorIs":    2,
		"NotErrorIs": 2,
	},
	"github.com/stretchr/testify/require": {
		"ErrorIs":    2,
		"NotErrorIs": 2,
	},
}

func run(pass *analysis.Pass) (interface{}, error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	inspect.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		call := n.(*ast.CallExpr)

		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			return
		}
		fn, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
		if !ok || fn.Pkg() == nil {
			return
		}
		funcs, ok := stdMatchers[fn.Pkg().Path()]
		if !ok {
			return
		}
		idx, ok := funcs[fn.Name()]
		if !ok || idx >= len(call.Args) {
			return
		}

		if name, ok := sentinel(pass, call.Args[idx]); ok {
			pass.Reportf(call.Pos(),
				"%s.%s cannot match marked sentinel entities.%s - use github.com/cockroachdb/errors.Is",
				fn.Pkg().Name(), fn.Name(), name)
		}
	})

	return nil, nil
}

// sentinel reports whether expr names an Err* variable of the entities package.
func sentinel(pass *analysis.Pass, expr ast.Expr) (string, bool) {
	var ident *ast.Ident
	switch e := expr.(type) {
	case *ast.SelectorExpr:
		ident = e.Sel
	case *ast.Ident:
		ident = e
	default:
		return "", false
	}

	v, ok := pass.TypesInfo.Uses[ident].(*types.Var)
	if !ok || v.Pkg() == nil || !strings.HasPrefix(v.Name(), "Err") {
		return "", false
	}
	path := v.Pkg().Path()
	if path != "entities" && !strings.HasSuffix(path, "/entities") {
		return "", false
	}
	return v.Name(), true
}
