// # internal/output/json.go
package output

import (
	"encoding/json"
	"time"

	"depscan/internal/analysis"
	"depscan/internal/graph"
)

// Report is the JSON export of one analysis run.
type Report struct {
	AnalysisID    string            `json:"analysis_id"`
	AnalysisName  string            `json:"analysis_name"`
	GeneratedAt   time.Time         `json:"generated_at"`
	FileResults   int               `json:"file_results"`
	EntityResults int               `json:"entity_results"`
	Statistics    map[string]int64  `json:"statistics"`
	Runtimes      map[string]string `json:"runtimes"`
	Graphs        []GraphSummary    `json:"graphs"`
}

type GraphSummary struct {
	Kind   string     `json:"kind"`
	Nodes  int        `json:"nodes"`
	Edges  int        `json:"edges"`
	Cycles [][]string `json:"cycles,omitempty"`
}

// BuildReport assembles a report from an analysis and its representations.
func BuildReport(a *analysis.Analysis, representations []*graph.Representation) (*Report, error) {
	report := &Report{
		AnalysisID:    a.ID,
		AnalysisName:  a.Name,
		GeneratedAt:   time.Now().UTC(),
		FileResults:   len(a.Results.FileResults()),
		EntityResults: len(a.Results.EntityResults()),
		Statistics:    a.Stats.Counters(),
		Runtimes:      make(map[string]string),
	}

	for key, d := range a.Stats.Durations() {
		report.Runtimes[key] = d.String()
	}

	for _, r := range representations {
		cycles, err := r.Cycles()
		if err != nil {
			return nil, err
		}
		report.Graphs = append(report.Graphs, GraphSummary{
			Kind:   string(r.Kind),
			Nodes:  r.NodeCount(),
			Edges:  r.EdgeCount(),
			Cycles: cycles,
		})
	}

	return report, nil
}

// Encode renders the report as indented JSON.
func (r *Report) Encode() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
