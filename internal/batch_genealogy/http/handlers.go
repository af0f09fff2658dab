package http

import (
	"bytes"
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/graph/export"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/provider"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/service"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/trace"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/logger"
)

type Handler struct {
	svc *service.GenealogyService
	log *logger.Logger
}

func New(svc *service.GenealogyService, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{svc: svc, log: log.With("component", "GenealogyHTTP")}
}

func (h *Handler) ListDatasets(c *gin.Context) {
	keys, err := h.svc.Datasets(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if keys == nil {
		keys = []string{}
	}
	c.JSON(http.StatusOK, DatasetsResponse{Datasets: keys, Policy: string(h.svc.Policy())})
}

func (h *Handler) GetGraph(c *gin.Context) {
	res, err := h.svc.Graph(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, GraphResponse{
		Key:         res.Key,
		Fingerprint: res.Fingerprint,
		Cached:      res.Cached,
		Report:      res.Report,
		Graph:       export.ToVisGraph(res.Graph),
	})
}

func (h *Handler) GetNode(c *gin.Context) {
	n, err := h.svc.Node(c.Request.Context(), c.Param("key"), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, NodeResponse{ID: n.ID, Label: n.Label, Type: n.Type, Attributes: n.Attributes()})
}

func (h *Handler) GetAncestors(c *gin.Context) {
	out, err := h.svc.Ancestors(c.Request.Context(), c.Param("key"), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetDescendants(c *gin.Context) {
	out, err := h.svc.Descendants(c.Request.Context(), c.Param("key"), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetTrace(c *gin.Context) {
	dir, ok := domain.ParseTraceDirection(c.Query("direction"))
	if !ok {
		badDirection(c)
		return
	}
	out, err := h.svc.Trace(c.Request.Context(), c.Param("key"), c.Param("id"), dir)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetBOM answers JSON by default and a CSV table for ?format=csv.
func (h *Handler) GetBOM(c *gin.Context) {
	bom, err := h.svc.BillOfMaterials(c.Request.Context(), c.Param("key"), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if strings.EqualFold(c.Query("format"), "csv") {
		var buf bytes.Buffer
		if err := export.WriteBOMCSV(&buf, bom); err != nil {
			h.fail(c, err)
			return
		}
		c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": "bom-" + bom.Target + ".csv"}))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
		return
	}
	c.JSON(http.StatusOK, bom)
}

// GetDOT renders the dataset graph as Graphviz source, highlighting the
// trace of ?target= in ?direction= when a target is given.
func (h *Handler) GetDOT(c *gin.Context) {
	ctx := c.Request.Context()
	key := c.Param("key")
	res, err := h.svc.Graph(ctx, key)
	if err != nil {
		h.fail(c, err)
		return
	}

	var hl *trace.Highlight
	if target := c.Query("target"); target != "" {
		dir, ok := domain.ParseTraceDirection(c.Query("direction"))
		if !ok {
			badDirection(c)
			return
		}
		hl, err = trace.Trace(res.Graph, target, dir)
		if err != nil {
			h.fail(c, err)
			return
		}
	}
	c.Data(http.StatusOK, "text/vnd.graphviz; charset=utf-8", []byte(export.ToDOT(res.Graph, key, hl)))
}

func (h *Handler) GetAudit(c *gin.Context) {
	out, err := h.svc.Audit(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetExecutionSummary(c *gin.Context) {
	out, err := h.svc.ExecutionSummary(c.Request.Context(), c.Param("batch"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetExecutionHierarchy(c *gin.Context) {
	out, err := h.svc.ExecutionHierarchy(c.Request.Context(), c.Param("batch"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"batch_id": c.Param("batch"), "phases": out})
}

func (h *Handler) GetExecutionGraph(c *gin.Context) {
	g, err := h.svc.ExecutionGraph(c.Request.Context(), c.Param("batch"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, export.ToVisGraph(g))
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badDirection(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be one of backward, forward, both, none"})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnknownEntity),
		errors.Is(err, provider.ErrDatasetNotFound),
		errors.Is(err, provider.ErrBatchNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidDirection):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDanglingReference),
		errors.Is(err, domain.ErrInvalidDataset):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
