package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planhorizon/invsim/pkg/application/dto"
	"github.com/planhorizon/invsim/pkg/domain/entities"
	"github.com/planhorizon/invsim/pkg/domain/repositories"
	"github.com/planhorizon/invsim/pkg/infrastructure/logging"
	"github.com/planhorizon/invsim/pkg/interfaces/cli/output"
)

// SimulationService is the application surface the handler needs.
type SimulationService interface {
	RunSimulation(ctx context.Context, seriesName string, series entities.Series, policy entities.Policy) (*entities.SimulationRun, error)
	RunSimulationByName(ctx context.Context, name string, policy entities.Policy) (*entities.SimulationRun, error)
	SaveSeries(ctx context.Context, name string, series entities.Series) error
	ListSeries(ctx context.Context) ([]string, error)
	GetRun(ctx context.Context, id string) (*entities.SimulationRun, error)
	ListRuns(ctx context.Context) ([]*entities.SimulationRun, error)
}

// SimulationHandler handles simulation HTTP requests
type SimulationHandler struct {
	service SimulationService
	logger  *logging.Logger
}

// NewSimulationHandler creates a new simulation handler
func NewSimulationHandler(service SimulationService, logger *logging.Logger) *SimulationHandler {
	if logger == nil {
		logger = logging.New(logging.DefaultConfig("invsim-api"))
	}
	return &SimulationHandler{
		service: service,
		logger:  logger.WithComponent("simulation_handler"),
	}
}

// RegisterRoutes registers the simulation routes
func (h *SimulationHandler) RegisterRoutes(r *gin.RouterGroup) {
	simulations := r.Group("/simulations")
	{
		simulations.POST("", h.CreateSimulation)
		simulations.GET("", h.ListSimulations)
		simulations.GET("/:id", h.GetSimulation)
		simulations.GET("/:id/report", h.GetSimulationReport)
	}

	series := r.Group("/series")
	{
		series.POST("", h.CreateSeries)
		series.GET("", h.ListSeries)
	}
}

// CreateSimulation handles POST /simulations
func (h *SimulationHandler) CreateSimulation(c *gin.Context) {
	var req dto.SimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid simulation request", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.Series) == 0 {
		// No inline rows: simulate a series registered via POST /series.
		run, err := h.service.RunSimulationByName(c.Request.Context(), req.SeriesName, req.Policy.ToPolicy())
		if err != nil {
			if errors.Is(err, repositories.ErrSeriesNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			h.respondSimulationError(c, req.SeriesName, err)
			return
		}
		h.respondCreated(c, run)
		return
	}

	series, err := req.ToSeries()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	run, err := h.service.RunSimulation(c.Request.Context(), req.SeriesName, series, req.Policy.ToPolicy())
	if err != nil {
		h.respondSimulationError(c, req.SeriesName, err)
		return
	}

	h.respondCreated(c, run)
}

func (h *SimulationHandler) respondCreated(c *gin.Context, run *entities.SimulationRun) {
	h.logger.Info("simulation created",
		"run_id", run.ID,
		"series", run.SeriesName,
		"periods", len(run.Result.Rows))
	c.JSON(http.StatusCreated, dto.NewRunResponse(run))
}

func (h *SimulationHandler) respondSimulationError(c *gin.Context, seriesName string, err error) {
	if errors.Is(err, entities.ErrInvalidParameter) || errors.Is(err, entities.ErrMalformedInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logger.WithError(err).Error("simulation failed", "series", seriesName)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// CreateSeries handles POST /series
func (h *SimulationHandler) CreateSeries(c *gin.Context) {
	var req dto.SeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid series request", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	series, err := req.ToSeries()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.SaveSeries(c.Request.Context(), req.Name, series); err != nil {
		if errors.Is(err, entities.ErrInvalidParameter) || errors.Is(err, entities.ErrMalformedInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.WithError(err).Error("failed to save series", "series", req.Name)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"name": req.Name, "periods": len(series)})
}

// ListSeries handles GET /series
func (h *SimulationHandler) ListSeries(c *gin.Context) {
	names, err := h.service.ListSeries(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("failed to list series")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": names})
}

// GetSimulation handles GET /simulations/:id
func (h *SimulationHandler) GetSimulation(c *gin.Context) {
	runID := c.Param("id")

	run, err := h.service.GetRun(c.Request.Context(), runID)
	if err != nil {
		h.respondLookupError(c, runID, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewRunResponse(run))
}

// ListSimulations handles GET /simulations
func (h *SimulationHandler) ListSimulations(c *gin.Context) {
	runs, err := h.service.ListRuns(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("failed to list runs")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	summaries := make([]dto.RunSummary, len(runs))
	for i, run := range runs {
		summaries[i] = dto.NewRunSummary(run)
	}
	c.JSON(http.StatusOK, gin.H{"runs": summaries})
}

// GetSimulationReport handles GET /simulations/:id/report
func (h *SimulationHandler) GetSimulationReport(c *gin.Context) {
	runID := c.Param("id")

	run, err := h.service.GetRun(c.Request.Context(), runID)
	if err != nil {
		h.respondLookupError(c, runID, err)
		return
	}

	html, err := output.NewHTMLReport().GenerateHTML(run)
	if err != nil {
		h.logger.WithError(err).Error("failed to render report", "run_id", runID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (h *SimulationHandler) respondLookupError(c *gin.Context, runID string, err error) {
	if errors.Is(err, repositories.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	h.logger.WithError(err).Error("failed to load run", "run_id", runID)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
