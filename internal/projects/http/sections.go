package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listSections(c *gin.Context) {
	sections, err := h.store.Sections(c.Param("project_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "sections": sections})
}

func (h *Handler) insertSection(c *gin.Context) {
	var req insertReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.TemplateID) == "" {
		badBody(c)
		return
	}

	p, sec, err := h.store.AddSection(c.Param("project_id"), req.TemplateID, req.Data, req.Anchor)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p, "section": sec})
}

func (h *Handler) reorderSections(c *gin.Context) {
	var req reorderReq
	if err := c.ShouldBindJSON(&req); err != nil || req.SectionIDs == nil {
		badBody(c)
		return
	}

	p, err := h.store.ReorderSections(c.Param("project_id"), req.SectionIDs)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) duplicateSection(c *gin.Context) {
	p, sec, err := h.store.DuplicateSection(c.Param("project_id"), c.Param("section_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p, "section": sec})
}

func (h *Handler) editSection(c *gin.Context) {
	var req editReq
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Data) == 0 {
		badBody(c)
		return
	}

	p, err := h.store.UpdateSection(c.Param("project_id"), c.Param("section_id"), req.Data)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

// deleteSection succeeds even when the section is already gone.
func (h *Handler) deleteSection(c *gin.Context) {
	p, err := h.store.DeleteSection(c.Param("project_id"), c.Param("section_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}
