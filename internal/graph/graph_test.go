// # internal/graph/graph_test.go
package graph

import (
	"testing"

	"depscan/internal/parser"
)

func fileResult(name string, imports ...string) *parser.FileResult {
	return &parser.FileResult{
		UniqueName:   name,
		RelativePath: name,
		Language:     parser.LangKotlin,
		Imports:      imports,
	}
}

func entityResult(module, name string, parent *parser.FileResult, imports, inherits []string) *parser.EntityResult {
	unique := name
	if module != "" {
		unique = module + "." + name
	}
	return &parser.EntityResult{
		EntityName: name,
		UniqueName: unique,
		ModuleName: module,
		Parent:     parent,
		Imports:    imports,
		Inherits:   inherits,
	}
}

func TestBuildFileDependencies(t *testing.T) {
	results := make(parser.Results)
	results.Add(fileResult("src/A.kt", "com.b.B"))
	results.Add(fileResult("src/B.kt"))

	r, err := BuildFileDependencies(results)
	if err != nil {
		t.Fatal(err)
	}

	// Two file vertices plus the external import target.
	if got := r.NodeCount(); got != 3 {
		t.Errorf("Expected 3 nodes, got %d", got)
	}
	if got := r.EdgeCount(); got != 1 {
		t.Errorf("Expected 1 edge, got %d", got)
	}
}

func TestBuildFileDependenciesDuplicateImports(t *testing.T) {
	results := make(parser.Results)
	results.Add(fileResult("src/A.kt", "com.b.B", "com.b.B"))

	r, err := BuildFileDependencies(results)
	if err != nil {
		t.Fatal(err)
	}

	if got := r.EdgeCount(); got != 1 {
		t.Errorf("Duplicate imports must collapse to one edge, got %d", got)
	}
}

func TestSelfImportSkipped(t *testing.T) {
	results := make(parser.Results)
	results.Add(fileResult("src/A.kt", "src/A.kt"))

	r, err := BuildFileDependencies(results)
	if err != nil {
		t.Fatal(err)
	}

	if got := r.EdgeCount(); got != 0 {
		t.Errorf("Self edges must be skipped, got %d", got)
	}
}

func TestBuildEntityInheritanceResolvesNames(t *testing.T) {
	parent := fileResult("src/A.kt")
	results := make(parser.Results)
	results.Add(entityResult("com.a", "Base", parent, nil, nil))
	results.Add(entityResult("com.a", "Child", parent, nil, []string{"Base"}))
	results.Add(entityResult("com.a", "Orphan", parent, nil, []string{"Unknown"}))

	r, err := BuildEntityInheritance(results)
	if err != nil {
		t.Fatal(err)
	}

	adjacency, err := r.Directed.AdjacencyMap()
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := adjacency["com.a.Child"]["com.a.Base"]; !ok {
		t.Error("Expected inherited name resolved to the entity's unique name")
	}
	if _, ok := adjacency["com.a.Orphan"]["Unknown"]; !ok {
		t.Error("Expected unresolved supertype kept as a leaf vertex")
	}
}

func TestCyclesDetected(t *testing.T) {
	results := make(parser.Results)
	results.Add(fileResult("a", "b"))
	results.Add(fileResult("b", "c"))
	results.Add(fileResult("c", "a"))
	results.Add(fileResult("d", "a"))

	r, err := BuildFileDependencies(results)
	if err != nil {
		t.Fatal(err)
	}

	cycles, err := r.Cycles()
	if err != nil {
		t.Fatal(err)
	}

	if len(cycles) != 1 {
		t.Fatalf("Expected 1 cycle, got %v", cycles)
	}
	if len(cycles[0]) != 3 {
		t.Errorf("Expected a 3-node cycle, got %v", cycles[0])
	}
	for _, member := range cycles[0] {
		if member == "d" {
			t.Error("Acyclic node d reported inside the cycle")
		}
	}
}

func TestNoCyclesInTree(t *testing.T) {
	results := make(parser.Results)
	results.Add(fileResult("root", "left", "right"))
	results.Add(fileResult("left"))
	results.Add(fileResult("right"))

	r, err := BuildFileDependencies(results)
	if err != nil {
		t.Fatal(err)
	}

	cycles, err := r.Cycles()
	if err != nil {
		t.Fatal(err)
	}
	if len(cycles) != 0 {
		t.Errorf("Expected no cycles, got %v", cycles)
	}
}

func TestBuildEntityComplete(t *testing.T) {
	parent := fileResult("src/A.kt")
	results := make(parser.Results)
	results.Add(entityResult("com.a", "Base", parent, nil, nil))
	results.Add(entityResult("com.a", "Child", parent, []string{"com.util.Log"}, []string{"Base"}))

	dependency, err := BuildEntityDependencies(results)
	if err != nil {
		t.Fatal(err)
	}
	inheritance, err := BuildEntityInheritance(results)
	if err != nil {
		t.Fatal(err)
	}

	complete, err := BuildEntityComplete(dependency, inheritance)
	if err != nil {
		t.Fatal(err)
	}

	// Child -> com.util.Log and Child -> com.a.Base in one graph.
	if got := complete.EdgeCount(); got != 2 {
		t.Errorf("Expected 2 edges in the union, got %d", got)
	}
	if complete.Kind != EntityCompleteGraph {
		t.Errorf("Unexpected kind %s", complete.Kind)
	}
}
