// # internal/output/tsv.go
package output

import (
	"fmt"
	"strings"

	"depscan/internal/parser"
	"depscan/internal/shared/util"
)

type TSVGenerator struct {
	results parser.Results
}

func NewTSVGenerator(results parser.Results) *TSVGenerator {
	return &TSVGenerator{results: results}
}

// Generate renders one row per result in the mapping, file results first.
func (t *TSVGenerator) Generate() (string, error) {
	var buf strings.Builder

	buf.WriteString("UniqueName\tKind\tLanguage\tModule\tImports\tInheritance\tScannedBy\n")

	files := t.results.FileResults()
	for _, key := range util.SortedStringKeys(files) {
		f := files[key]
		buf.WriteString(fmt.Sprintf("%s\tfile\t%s\t%s\t%d\t%d\t%s\n",
			f.UniqueName, f.Language, f.ModuleName, len(f.Imports), 0, f.ScannedBy))
	}

	entities := t.results.EntityResults()
	for _, key := range util.SortedStringKeys(entities) {
		e := entities[key]
		buf.WriteString(fmt.Sprintf("%s\tentity\t%s\t%s\t%d\t%d\t%s\n",
			e.UniqueName, e.Parent.Language, e.ModuleName, len(e.Imports), len(e.Inherits), e.Parent.ScannedBy))
	}

	return buf.String(), nil
}
