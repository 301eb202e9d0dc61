package handlers

import (
	"net/http"

	"github.com/SscSPs/farm_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/farm_management_app/internal/core/ports/services"
	"github.com/SscSPs/farm_management_app/internal/dto"
	"github.com/SscSPs/farm_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// clotureHandler handles HTTP requests related to period closures.
type clotureHandler struct {
	clotureService portssvc.ClotureSvcFacade
}

func newClotureHandler(cs portssvc.ClotureSvcFacade) *clotureHandler {
	return &clotureHandler{clotureService: cs}
}

// registerClotureRoutes registers all closure routes on an authenticated group.
func registerClotureRoutes(rg *gin.RouterGroup, clotureService portssvc.ClotureSvcFacade) {
	h := newClotureHandler(clotureService)

	clotures := rg.Group("/clotures")
	{
		clotures.GET("", h.listClotures)
		clotures.GET("/export", h.exportClotures)
		clotures.GET("/:id", h.getCloture)
		clotures.POST("", middleware.RequireRole(domain.RoleComptable), h.createCloture)
		clotures.PUT("/:id/valider", middleware.RequireRole(domain.ActionValidate.RequiredRole()), h.validateCloture)
		clotures.PUT("/:id/cloturer", middleware.RequireRole(domain.ActionClose.RequiredRole()), h.closeCloture)
	}
}

// listClotures godoc
// @Summary List period closures of a year
// @Description Returns every closure of the year for the caller's organisation, most recent month first.
// @Tags clotures
// @Produce json
// @Param annee query int true "Year"
// @Success 200 {array} dto.ClotureResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /clotures [get]
func (h *clotureHandler) listClotures(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var params dto.ListCloturesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	closures, err := h.clotureService.ListClotures(c.Request.Context(), principal, params.Annee)
	if err != nil {
		respondError(c, err, "Failed to list closures")
		return
	}
	c.JSON(http.StatusOK, dto.ToClotureListResponse(closures))
}

// getCloture godoc
// @Summary Get a period closure
// @Tags clotures
// @Produce json
// @Param id path string true "Closure ID"
// @Success 200 {object} dto.ClotureResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /clotures/{id} [get]
func (h *clotureHandler) getCloture(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	closure, err := h.clotureService.GetCloture(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get closure")
		return
	}
	c.JSON(http.StatusOK, dto.ToClotureResponse(*closure))
}

// createCloture godoc
// @Summary Open a period closure
// @Description Opens the closure of one month. Figures are computed from the posted ledger.
// @Tags clotures
// @Accept json
// @Produce json
// @Param cloture body dto.CreateClotureRequest true "Month and year"
// @Success 201 {object} dto.ClotureResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "A closure already exists for this month"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /clotures [post]
func (h *clotureHandler) createCloture(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateClotureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	closure, err := h.clotureService.CreateCloture(c.Request.Context(), principal, req.Mois, req.Annee)
	if err != nil {
		respondError(c, err, "Failed to create closure")
		return
	}
	c.JSON(http.StatusCreated, dto.ToClotureResponse(*closure))
}

// validateCloture godoc
// @Summary Validate a period closure
// @Description Moves an open closure to validee and recomputes its figures.
// @Tags clotures
// @Produce json
// @Param id path string true "Closure ID"
// @Success 200 {object} dto.ClotureResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Closure is not open"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /clotures/{id}/valider [put]
func (h *clotureHandler) validateCloture(c *gin.Context) {
	h.transition(c, domain.ActionValidate)
}

// closeCloture godoc
// @Summary Close a period closure
// @Description Moves a validated closure to cloturee. This cannot be undone.
// @Tags clotures
// @Produce json
// @Param id path string true "Closure ID"
// @Success 200 {object} dto.ClotureResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Closure is not validated"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /clotures/{id}/cloturer [put]
func (h *clotureHandler) closeCloture(c *gin.Context) {
	h.transition(c, domain.ActionClose)
}

func (h *clotureHandler) transition(c *gin.Context, action domain.ClotureAction) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id := c.Param("id")

	var (
		closure *domain.PeriodClosure
		err     error
	)
	if action == domain.ActionClose {
		closure, err = h.clotureService.CloseCloture(c.Request.Context(), principal, id)
	} else {
		closure, err = h.clotureService.ValidateCloture(c.Request.Context(), principal, id)
	}
	if err != nil {
		respondError(c, err, "Failed to update closure status")
		return
	}
	c.JSON(http.StatusOK, dto.ToClotureResponse(*closure))
}

// exportClotures godoc
// @Summary Export the closures of a year
// @Description Renders the closures of a year as an Excel workbook returned as base64.
// @Tags clotures
// @Produce json
// @Param annee query int true "Year"
// @Param format query string false "Export format" Enums(xlsx)
// @Success 200 {object} domain.ExportFile
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /clotures/export [get]
func (h *clotureHandler) exportClotures(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var params dto.ExportCloturesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	file, err := h.clotureService.ExportClotures(c.Request.Context(), principal, params.Annee)
	if err != nil {
		respondError(c, err, "Failed to export closures")
		return
	}
	c.JSON(http.StatusOK, file)
}
