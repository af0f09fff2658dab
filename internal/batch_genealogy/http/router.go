package http

import "github.com/gin-gonic/gin"

// Register mounts the genealogy routes on rg (/api/v1/genealogy).
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/datasets", h.ListDatasets)
	rg.GET("/datasets/:key/graph", h.GetGraph)
	rg.GET("/datasets/:key/graph.dot", h.GetDOT)
	rg.GET("/datasets/:key/audit", h.GetAudit)
	rg.GET("/datasets/:key/nodes/:id", h.GetNode)
	rg.GET("/datasets/:key/nodes/:id/ancestors", h.GetAncestors)
	rg.GET("/datasets/:key/nodes/:id/descendants", h.GetDescendants)
	rg.GET("/datasets/:key/nodes/:id/trace", h.GetTrace)
	rg.GET("/datasets/:key/nodes/:id/bom", h.GetBOM)
}

// RegisterExecution mounts the execution routes on rg (/api/v1/execution).
func (h *Handler) RegisterExecution(rg *gin.RouterGroup) {
	rg.GET("/batches/:batch/summary", h.GetExecutionSummary)
	rg.GET("/batches/:batch/hierarchy", h.GetExecutionHierarchy)
	rg.GET("/batches/:batch/graph", h.GetExecutionGraph)
}
