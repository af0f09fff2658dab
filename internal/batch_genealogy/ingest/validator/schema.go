package validator

import (
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
)

// Validate checks identity and tagging rules. Dangling references are not
// checked here; the builder's policy decides what to do with them.
func Validate(ds *domain.Dataset) error {
	if ds == nil {
		return &domain.ValidationError{Problems: []string{"dataset is nil"}}
	}

	var problems []string
	seen := map[string]bool{}
	for i, b := range ds.Batches {
		id := strings.TrimSpace(b.ID)
		if id == "" {
			problems = append(problems, fmt.Sprintf("batch #%d has an empty id", i))
			continue
		}
		if id != b.ID {
			problems = append(problems, fmt.Sprintf("batch id %q has surrounding whitespace", b.ID))
		}
		if seen[id] {
			problems = append(problems, fmt.Sprintf("duplicate batch id %q", id))
		}
		seen[id] = true

		if _, ok := domain.ParseEntityType(b.Type); !ok {
			problems = append(problems, fmt.Sprintf("batch %q has unknown type %q", id, b.Type))
		}
		if b.Quantity < 0 {
			problems = append(problems, fmt.Sprintf("batch %q has negative quantity", id))
		}

		for _, c := range b.Consumes {
			problems = append(problems, checkLink(id, "consumes", c.ID, c.Quantity)...)
		}
		for _, p := range b.Produces {
			problems = append(problems, checkLink(id, "produces", p.ID, p.Quantity)...)
		}
		for _, r := range b.Relations {
			problems = append(problems, checkLink(id, "relation", r.To, r.Quantity)...)
			if !domain.RelationKind(r.Kind).Valid() {
				problems = append(problems, fmt.Sprintf("batch %q has relation of unknown kind %q", id, r.Kind))
			}
		}
	}

	if len(problems) > 0 {
		return &domain.ValidationError{Problems: problems}
	}
	return nil
}

func checkLink(owner, field, target string, qty float64) []string {
	var out []string
	if strings.TrimSpace(target) == "" {
		out = append(out, fmt.Sprintf("batch %q has a %s entry with an empty id", owner, field))
	}
	if qty < 0 {
		out = append(out, fmt.Sprintf("batch %q has a %s entry with negative quantity", owner, field))
	}
	return out
}

// ValidateExecution checks that every PI points at a declared phase and every
// material at a declared PI.
func ValidateExecution(rec *domain.ExecutionRecord) error {
	if rec == nil {
		return &domain.ValidationError{Problems: []string{"execution record is nil"}}
	}
	var problems []string
	if strings.TrimSpace(rec.Batch.ID) == "" {
		problems = append(problems, "batch id is empty")
	}

	phases := map[string]bool{}
	for _, p := range rec.Phases {
		if strings.TrimSpace(p.ID) == "" {
			problems = append(problems, "phase with empty id")
			continue
		}
		if phases[p.ID] {
			problems = append(problems, fmt.Sprintf("duplicate phase %q", p.ID))
		}
		phases[p.ID] = true
	}

	pis := map[string]bool{}
	for _, pi := range rec.ProcessInstructions {
		if strings.TrimSpace(pi.ID) == "" {
			problems = append(problems, "process instruction with empty id")
			continue
		}
		if pis[pi.ID] {
			problems = append(problems, fmt.Sprintf("duplicate process instruction %q", pi.ID))
		}
		pis[pi.ID] = true
		if !phases[pi.Phase] {
			problems = append(problems, fmt.Sprintf("process instruction %q references unknown phase %q", pi.ID, pi.Phase))
		}
	}

	for _, m := range rec.Materials {
		if !pis[m.PI] {
			problems = append(problems, fmt.Sprintf("material %q references unknown process instruction %q", m.Name, m.PI))
		}
		if m.Type != domain.MaterialConsumed && m.Type != domain.MaterialProduced {
			problems = append(problems, fmt.Sprintf("material %q has unknown type %q", m.Name, m.Type))
		}
	}

	if len(problems) > 0 {
		return &domain.ValidationError{Problems: problems}
	}
	return nil
}
