package http

import (
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/graph/export"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/ingest/mapper"
)

type DatasetsResponse struct {
	Datasets []string `json:"datasets"`
	Policy   string   `json:"policy"`
}

type GraphResponse struct {
	Key         string              `json:"key"`
	Fingerprint string              `json:"fingerprint"`
	Cached      bool                `json:"cached"`
	Report      *mapper.BuildReport `json:"report,omitempty"`
	Graph       *export.VisGraph    `json:"graph"`
}

type NodeResponse struct {
	ID         string            `json:"id"`
	Label      string            `json:"label"`
	Type       domain.EntityType `json:"type"`
	Attributes domain.Attrs      `json:"attributes"`
}
