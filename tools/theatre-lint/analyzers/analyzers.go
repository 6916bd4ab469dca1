// Package analyzers provides all custom static analyzers for theatre-core.
package analyzers

import (
	"golang.org/x/tools/go/analysis"

	"github.com/ersonp/theatre-core/tools/theatre-lint/analyzers/loopcall"
	"github.com/ersonp/theatre-core/tools/theatre-lint/analyzers/markedsentinel"
)

// All returns all analyzers to run.
func All() []*analysis.Analyzer {
	return []*analysis.Analyzer{
		loopcall.Analyzer,
		markedsentinel.Analyzer,
	}
}
