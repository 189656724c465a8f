// # internal/graph/graph.go
package graph

import (
	"errors"
	"fmt"

	"github.com/dominikbraun/graph"

	"depscan/internal/parser"
	"depscan/internal/shared/observability"
)

// Kind names one graph representation derived from the results mapping.
type Kind string

const (
	FileDependencyGraph    Kind = "file_result_dependency_graph"
	EntityDependencyGraph  Kind = "entity_result_dependency_graph"
	EntityInheritanceGraph Kind = "entity_result_inheritance_graph"
	EntityCompleteGraph    Kind = "entity_result_complete_graph"
)

// Representation wraps one directed graph built from results. External
// dependency targets without a result of their own become leaf vertices.
type Representation struct {
	Kind     Kind
	Directed graph.Graph[string, string]
}

func newRepresentation(kind Kind) *Representation {
	return &Representation{
		Kind:     kind,
		Directed: graph.New(graph.StringHash, graph.Directed()),
	}
}

// BuildFileDependencies creates the file-level dependency graph: one edge
// per distinct import of each file result.
func BuildFileDependencies(results parser.Results) (*Representation, error) {
	r := newRepresentation(FileDependencyGraph)
	for _, file := range results.FileResults() {
		if err := r.addDependencyEdges(file.UniqueName, file.Imports); err != nil {
			return nil, err
		}
	}
	r.exportGauges()
	return r, nil
}

// BuildEntityDependencies creates the entity-level dependency graph from
// each entity's propagated imports.
func BuildEntityDependencies(results parser.Results) (*Representation, error) {
	r := newRepresentation(EntityDependencyGraph)
	for _, entity := range results.EntityResults() {
		if err := r.addDependencyEdges(entity.UniqueName, entity.Imports); err != nil {
			return nil, err
		}
	}
	r.exportGauges()
	return r, nil
}

// BuildEntityInheritance creates the inheritance graph. Inherited names are
// resolved to the unique name of a matching entity result when one exists;
// otherwise the bare name becomes a leaf vertex.
func BuildEntityInheritance(results parser.Results) (*Representation, error) {
	r := newRepresentation(EntityInheritanceGraph)
	for _, entity := range results.EntityResults() {
		targets := make([]string, 0, len(entity.Inherits))
		for _, inherited := range entity.Inherits {
			if resolved, ok := results.ByEntityName(inherited); ok {
				targets = append(targets, resolved.UniqueName)
			} else {
				targets = append(targets, inherited)
			}
		}
		if err := r.addDependencyEdges(entity.UniqueName, targets); err != nil {
			return nil, err
		}
	}
	r.exportGauges()
	return r, nil
}

// BuildEntityComplete composes the union of entity dependency and
// inheritance edges.
func BuildEntityComplete(dependency, inheritance *Representation) (*Representation, error) {
	r := newRepresentation(EntityCompleteGraph)
	for _, source := range []*Representation{dependency, inheritance} {
		adjacency, err := source.Directed.AdjacencyMap()
		if err != nil {
			return nil, err
		}
		for from, targets := range adjacency {
			if err := r.addVertex(from); err != nil {
				return nil, err
			}
			for to := range targets {
				if err := r.addEdge(from, to); err != nil {
					return nil, err
				}
			}
		}
	}
	r.exportGauges()
	return r, nil
}

func (r *Representation) addDependencyEdges(from string, targets []string) error {
	if err := r.addVertex(from); err != nil {
		return err
	}
	for _, to := range targets {
		if err := r.addEdge(from, to); err != nil {
			return err
		}
	}
	return nil
}

func (r *Representation) addVertex(name string) error {
	err := r.Directed.AddVertex(name)
	if err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		return fmt.Errorf("add vertex %q: %w", name, err)
	}
	return nil
}

func (r *Representation) addEdge(from, to string) error {
	if from == to {
		return nil
	}
	if err := r.addVertex(to); err != nil {
		return err
	}
	err := r.Directed.AddEdge(from, to)
	if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
		return fmt.Errorf("add edge %q -> %q: %w", from, to, err)
	}
	return nil
}

// Cycles returns every strongly connected component with more than one
// member, i.e. each group of mutually dependent nodes.
func (r *Representation) Cycles() ([][]string, error) {
	sccs, err := graph.StronglyConnectedComponents(r.Directed)
	if err != nil {
		return nil, err
	}
	var cycles [][]string
	for _, component := range sccs {
		if len(component) > 1 {
			cycles = append(cycles, component)
		}
	}
	return cycles, nil
}

// NodeCount returns the number of vertices.
func (r *Representation) NodeCount() int {
	order, err := r.Directed.Order()
	if err != nil {
		return 0
	}
	return order
}

// EdgeCount returns the number of edges.
func (r *Representation) EdgeCount() int {
	size, err := r.Directed.Size()
	if err != nil {
		return 0
	}
	return size
}

// Edges returns all edges of the representation.
func (r *Representation) Edges() ([]graph.Edge[string], error) {
	return r.Directed.Edges()
}

func (r *Representation) exportGauges() {
	observability.GraphNodes.WithLabelValues(string(r.Kind)).Set(float64(r.NodeCount()))
	observability.GraphEdges.WithLabelValues(string(r.Kind)).Set(float64(r.EdgeCount()))
}
