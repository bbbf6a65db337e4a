package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) exportData(c *gin.Context) {
	data, err := h.store.Export(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	name := fmt.Sprintf("sitebuilder-export-%s.json", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(data))
}

// importData takes a previously exported snapshot as the raw request body.
func (h *Handler) importData(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		badBody(c)
		return
	}

	ok, err := h.store.Import(c.Request.Context(), string(body))
	if err != nil {
		writeError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "malformed import data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": h.store.List()})
}

func (h *Handler) clearData(c *gin.Context) {
	if err := h.store.ClearAll(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) persistenceFailures(c *gin.Context) {
	failures := h.store.Failures()
	out := make([]failureDTO, 0, len(failures))
	for _, f := range failures {
		out = append(out, failureDTO{Op: f.Op, ProjectID: f.ProjectID, Error: f.Err.Error()})
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "failures": out, "stats": h.store.PersistenceStats()})
}

func (h *Handler) clearPersistenceFailures(c *gin.Context) {
	h.store.ClearFailures()
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
