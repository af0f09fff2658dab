package domain

import "time"

// Dataset is the flat batch description a provider hands to the builder.
type Dataset struct {
	Key     string        `json:"key" yaml:"key"`
	Name    string        `json:"name,omitempty" yaml:"name,omitempty"`
	Batches []BatchRecord `json:"batches" yaml:"batches"`
}

type BatchRecord struct {
	ID             string         `json:"id" yaml:"id"`
	Type           string         `json:"type" yaml:"type"`
	Label          string         `json:"label,omitempty" yaml:"label,omitempty"`
	MaterialName   string         `json:"material_name,omitempty" yaml:"material_name,omitempty"`
	Quantity       float64        `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	Unit           string         `json:"unit,omitempty" yaml:"unit,omitempty"`
	Status         string         `json:"status,omitempty" yaml:"status,omitempty"`
	Quality        string         `json:"quality,omitempty" yaml:"quality,omitempty"`
	Specification  string         `json:"specification,omitempty" yaml:"specification,omitempty"`
	Supplier       string         `json:"supplier,omitempty" yaml:"supplier,omitempty"`
	Result         string         `json:"result,omitempty" yaml:"result,omitempty"`
	ManufacturedAt *time.Time     `json:"manufactured_at,omitempty" yaml:"manufactured_at,omitempty"`
	ExpiresAt      *time.Time     `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
	Attrs          map[string]any `json:"attrs,omitempty" yaml:"attrs,omitempty"`

	// Consumes lists batches fed into this one.
	Consumes []Consumption `json:"consumes,omitempty" yaml:"consumes,omitempty"`
	// Produces lists batches this one yields.
	Produces []Consumption `json:"produces,omitempty" yaml:"produces,omitempty"`
	// Relations are other outgoing typed edges (precedes, coated_with, ...).
	Relations []RelationRecord `json:"relations,omitempty" yaml:"relations,omitempty"`
}

type Consumption struct {
	ID       string  `json:"id" yaml:"id"`
	Quantity float64 `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	Unit     string  `json:"unit,omitempty" yaml:"unit,omitempty"`
}

type RelationRecord struct {
	To       string  `json:"to" yaml:"to"`
	Kind     string  `json:"kind" yaml:"kind"`
	Quantity float64 `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	Unit     string  `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// ExecutionRecord describes one executed batch: its phases, the process
// instructions run in each phase and the materials they touched.
type ExecutionRecord struct {
	Batch               ExecutionBatch       `json:"batch" yaml:"batch"`
	Phases              []ExecutionPhase     `json:"phases" yaml:"phases"`
	ProcessInstructions []ProcessInstruction `json:"pis" yaml:"pis"`
	Materials           []ExecutionMaterial  `json:"materials" yaml:"materials"`
}

type ExecutionBatch struct {
	ID      string `json:"id" yaml:"id"`
	Product string `json:"product" yaml:"product"`
	Status  string `json:"status" yaml:"status"`
}

type ExecutionPhase struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

type ProcessInstruction struct {
	ID     string `json:"id" yaml:"id"`
	Phase  string `json:"phase" yaml:"phase"`
	Name   string `json:"name" yaml:"name"`
	Result string `json:"result" yaml:"result"`
}

const (
	ResultPass = "PASS"
	ResultFail = "FAIL"

	MaterialConsumed = "consumed"
	MaterialProduced = "produced"
)

type ExecutionMaterial struct {
	PI   string `json:"pi" yaml:"pi"`
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}
