package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		badBody(c)
		return
	}

	p, err := h.store.CreateProject(req.input())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) list(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": h.store.List()})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.store.Get(c.Param("project_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) update(c *gin.Context) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	p, err := h.store.UpdateProject(c.Param("project_id"), req.patch())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.store.DeleteProject(c.Param("project_id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) selectProject(c *gin.Context) {
	p, err := h.store.SelectProject(c.Param("project_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) current(c *gin.Context) {
	p, ok := h.store.CurrentProject()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"ok": true, "project": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) clearCurrent(c *gin.Context) {
	h.store.ClearSelection()
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// resave retries persistence of a project after a failed background write.
func (h *Handler) resave(c *gin.Context) {
	if err := h.store.Resave(c.Request.Context(), c.Param("project_id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) listTemplates(c *gin.Context) {
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		c.JSON(http.StatusOK, gin.H{"ok": true, "templates": h.templates.ListByCategory(category)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "templates": h.templates.List()})
}

func (h *Handler) getTemplate(c *gin.Context) {
	t, ok := h.templates.GetTemplateByID(c.Param("template_id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "template not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "template": t})
}
