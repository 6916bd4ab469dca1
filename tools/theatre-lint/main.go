// theatre-lint is a custom static analyzer for theatre-core conventions.
package main

import (
	"golang.org/x/tools/go/analysis/multichecker"

	"github.com/ersonp/theatre-core/tools/theatre-lint/analyzers"
)

func main() {
	multichecker.Main(analyzers.All()...)
}
