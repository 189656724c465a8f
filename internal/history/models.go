package history

import "time"

const SchemaVersion = 1

// Snapshot captures the headline numbers of one analysis run.
type Snapshot struct {
	SchemaVersion int       `json:"schema_version"`
	RunID         string    `json:"run_id"`
	Timestamp     time.Time `json:"timestamp"`
	AnalysisName  string    `json:"analysis_name"`
	FileResults   int       `json:"file_results"`
	EntityResults int       `json:"entity_results"`
	ParsingHits   int64     `json:"parsing_hits"`
	ParsingMisses int64     `json:"parsing_misses"`
	CycleCount    int       `json:"cycle_count"`
	RuntimeMillis int64     `json:"runtime_ms"`
}

// TrendPoint is one snapshot plus deltas against the previous run.
type TrendPoint struct {
	Timestamp          time.Time `json:"timestamp"`
	RunID              string    `json:"run_id"`
	FileResults        int       `json:"file_results"`
	EntityResults      int       `json:"entity_results"`
	ParsingHits        int64     `json:"parsing_hits"`
	ParsingMisses      int64     `json:"parsing_misses"`
	CycleCount         int       `json:"cycle_count"`
	DeltaFiles         int       `json:"delta_files"`
	DeltaEntities      int       `json:"delta_entities"`
	DeltaCycles        int       `json:"delta_cycles"`
	DeltaParsingMisses int64     `json:"delta_parsing_misses"`
}

// TrendReport summarizes the recent snapshots of one analysis.
type TrendReport struct {
	SchemaVersion int          `json:"schema_version"`
	AnalysisName  string       `json:"analysis_name"`
	Since         time.Time    `json:"since"`
	Until         time.Time    `json:"until"`
	ScanCount     int          `json:"scan_count"`
	Points        []TrendPoint `json:"points"`
}

// BuildTrendReport computes per-run deltas over snapshots sorted oldest
// first.
func BuildTrendReport(analysisName string, snapshots []Snapshot) (TrendReport, error) {
	if len(snapshots) == 0 {
		return TrendReport{}, ErrNoSnapshots
	}

	points := make([]TrendPoint, 0, len(snapshots))
	for i, current := range snapshots {
		point := TrendPoint{
			Timestamp:     current.Timestamp,
			RunID:         current.RunID,
			FileResults:   current.FileResults,
			EntityResults: current.EntityResults,
			ParsingHits:   current.ParsingHits,
			ParsingMisses: current.ParsingMisses,
			CycleCount:    current.CycleCount,
		}
		if i > 0 {
			prev := snapshots[i-1]
			point.DeltaFiles = current.FileResults - prev.FileResults
			point.DeltaEntities = current.EntityResults - prev.EntityResults
			point.DeltaCycles = current.CycleCount - prev.CycleCount
			point.DeltaParsingMisses = current.ParsingMisses - prev.ParsingMisses
		}
		points = append(points, point)
	}

	return TrendReport{
		SchemaVersion: SchemaVersion,
		AnalysisName:  analysisName,
		Since:         snapshots[0].Timestamp,
		Until:         snapshots[len(snapshots)-1].Timestamp,
		ScanCount:     len(points),
		Points:        points,
	}, nil
}
