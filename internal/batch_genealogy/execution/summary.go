package execution

import (
	"strings"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
)

// Summary holds the headline figures of an executed batch.
type Summary struct {
	BatchID     string                      `json:"batch_id"`
	Product     string                      `json:"product"`
	Status      string                      `json:"status"`
	PhaseCount  int                         `json:"phase_count"`
	PICount     int                         `json:"pi_count"`
	FailedCount int                         `json:"failed_count"`
	FailedPIs   []domain.ProcessInstruction `json:"failed_pis"`
}

func IsFailed(pi domain.ProcessInstruction) bool {
	return strings.EqualFold(strings.TrimSpace(pi.Result), domain.ResultFail)
}

func Summarize(rec *domain.ExecutionRecord) *Summary {
	s := &Summary{
		BatchID:    rec.Batch.ID,
		Product:    rec.Batch.Product,
		Status:     rec.Batch.Status,
		PhaseCount: len(rec.Phases),
		PICount:    len(rec.ProcessInstructions),
		FailedPIs:  []domain.ProcessInstruction{},
	}
	for _, pi := range rec.ProcessInstructions {
		if IsFailed(pi) {
			s.FailedPIs = append(s.FailedPIs, pi)
		}
	}
	s.FailedCount = len(s.FailedPIs)
	return s
}

type PIView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Result string `json:"result"`
	Failed bool   `json:"failed"`
}

type PhaseView struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Instructions []PIView `json:"instructions"`
	Failed       bool     `json:"failed"`
}

// Hierarchy groups the process instructions under their phase, keeping the
// declaration order of both. A phase is failed when any of its PIs failed.
func Hierarchy(rec *domain.ExecutionRecord) []PhaseView {
	out := make([]PhaseView, 0, len(rec.Phases))
	pos := make(map[string]int, len(rec.Phases))
	for _, p := range rec.Phases {
		pos[p.ID] = len(out)
		out = append(out, PhaseView{ID: p.ID, Name: p.Name, Instructions: []PIView{}})
	}
	for _, pi := range rec.ProcessInstructions {
		i, ok := pos[pi.Phase]
		if !ok {
			continue
		}
		failed := IsFailed(pi)
		out[i].Instructions = append(out[i].Instructions, PIView{
			ID:     pi.ID,
			Name:   pi.Name,
			Result: pi.Result,
			Failed: failed,
		})
		if failed {
			out[i].Failed = true
		}
	}
	return out
}
