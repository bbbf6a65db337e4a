package http

import "github.com/gin-gonic/gin"

// Register attaches the site builder routes to the given router group
// (normally /api/v1).
func (h *Handler) Register(rg *gin.RouterGroup) {
	tpl := rg.Group("/templates")
	tpl.GET("", h.listTemplates)
	tpl.GET("/:template_id", h.getTemplate)

	p := rg.Group("/projects")
	p.POST("", h.create)
	p.GET("", h.list)
	p.GET("/current", h.current)
	p.DELETE("/current", h.clearCurrent)
	p.GET("/:project_id", h.get)
	p.PATCH("/:project_id", h.update)
	p.DELETE("/:project_id", h.delete)
	p.POST("/:project_id/select", h.selectProject)
	p.POST("/:project_id/resave", h.resave)

	s := p.Group("/:project_id/sections")
	s.GET("", h.listSections)
	s.POST("", h.insertSection)
	s.PUT("/order", h.reorderSections)
	s.POST("/:section_id/duplicate", h.duplicateSection)
	s.PATCH("/:section_id", h.editSection)
	s.DELETE("/:section_id", h.deleteSection)

	d := rg.Group("/data")
	d.GET("/export", h.exportData)
	d.POST("/import", h.importData)
	d.DELETE("", h.clearData)
	d.GET("/persistence", h.persistenceFailures)
	d.DELETE("/persistence", h.clearPersistenceFailures)
}
