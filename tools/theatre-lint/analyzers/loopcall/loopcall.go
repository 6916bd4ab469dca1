// Package loopcall detects store rewrites, journal writes and extraction
// calls inside loops.
package loopcall

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer detects expensive per-call operations inside loops.
var Analyzer = &analysis.Analyzer{
	Name:     "loopcall",
	Doc:      "detects knowledge store updates, journal writes and LLM extraction inside loops",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// expensiveMethods maps method names to what each call costs.
var expensiveMethods = map[string]string{
	// KnowledgeStore: every Update with staged schedules rewrites the file
	"Update": "rewrites the knowledge store file",
	"Save":   "rewrites the knowledge store file",
	// DecisionJournal
	"Record": "writes a journal row",
	// Extractor
	"Extract": "calls the LLM",
}

func run(pass *analysis.Pass) (interface{}, error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.RangeStmt)(nil),
		(*ast.ForStmt)(nil),
	}

	inspect.Preorder(nodeFilter, func(n ast.Node) {
		var body *ast.BlockStmt
		switch stmt := n.(type) {
		case *ast.RangeStmt:
			body = stmt.Body
		case *ast.ForStmt:
			body = stmt.Body
		}
		if body == nil {
			return
		}

		ast.Inspect(body, func(n ast.Node) bool {
			// Closures run later, not once per iteration.
			if _, ok := n.(*ast.FuncLit); ok {
				return false
			}

			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}

			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}

			if cost, ok := expensiveMethods[sel.Sel.Name]; ok {
				pass.Reportf(call.Pos(),
					"%s called inside loop (%s) - stage the work and make one call",
					sel.Sel.Name, cost)
			}

			return true
		})
	})

	return nil, nil
}
