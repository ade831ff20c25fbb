package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"proxboard/internal/daemon"
	"proxboard/internal/dto"
	"proxboard/internal/lbconfig"
	"proxboard/internal/model"
)

// ConfigController edits the balancer's YAML configuration through the
// store. Maintenance changes restart the daemon so the new node list
// takes effect.
type ConfigController struct {
	store    lbconfig.Store
	balancer daemon.Controller
}

func NewConfigController(store lbconfig.Store, balancer daemon.Controller) *ConfigController {
	return &ConfigController{
		store:    store,
		balancer: balancer,
	}
}

func RegisterConfigRoutes(router *gin.Engine, controller *ConfigController, guard gin.HandlerFunc) {
	api := router.Group("/api")
	{
		api.GET("/config", controller.GetConfig)
		api.POST("/config", guard, controller.UpdateConfig)
		api.POST("/maintenance", guard, controller.UpdateMaintenance)
		api.POST("/balancing/settings", guard, controller.UpdateBalancingSettings)
	}
}

// GetConfig godoc
// @Summary      Read the balancer configuration
// @Description  Returns the full configuration document with the API password masked.
// @Tags         config
// @Produce      json
// @Success      200  {object}  dto.ConfigResponse
// @Failure      404  {object}  model.Response "Configuration not found"
// @Router       /api/config [get]
func (c *ConfigController) GetConfig(ctx *gin.Context) {
	masked, err := c.store.Masked()
	if err != nil {
		ctx.JSON(http.StatusNotFound, model.NewResponse("Configuration not found", nil))
		return
	}
	ctx.JSON(http.StatusOK, dto.ConfigResponse{Config: masked})
}

// UpdateConfig godoc
// @Summary      Replace the balancer configuration
// @Description  Writes a full new configuration document. A masked password value keeps the currently stored password.
// @Tags         config
// @Accept       json
// @Produce      json
// @Param        request  body      dto.ConfigUpdateRequest  true  "New configuration document"
// @Success      200      {object}  dto.ConfigUpdateResponse
// @Failure      400      {object}  model.Response "Invalid request body"
// @Failure      500      {object}  model.Response "Save failed"
// @Router       /api/config [post]
func (c *ConfigController) UpdateConfig(ctx *gin.Context) {
	var req dto.ConfigUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Invalid config update body")
		ctx.JSON(http.StatusBadRequest, model.NewResponse("Invalid request body: "+err.Error(), nil))
		return
	}

	if err := c.store.Replace(req.Config); err != nil {
		log.Error().Err(err).Msg("Failed to save balancer configuration")
		ctx.JSON(http.StatusInternalServerError, model.NewResponse("Failed to save configuration", nil))
		return
	}
	ctx.JSON(http.StatusOK, dto.ConfigUpdateResponse{Success: true, Message: "Configuration updated"})
}

// UpdateMaintenance godoc
// @Summary      Add or remove a maintenance node
// @Description  Edits the balancer's maintenance node list and restarts the daemon so the change takes effect.
// @Tags         config
// @Accept       json
// @Produce      json
// @Param        request  body      dto.MaintenanceRequest  true  "Node and action (add or remove)"
// @Success      200      {object}  dto.MaintenanceResponse
// @Failure      400      {object}  model.Response "Invalid request body"
// @Failure      404      {object}  model.Response "Configuration not found"
// @Failure      500      {object}  model.Response "Update failed"
// @Router       /api/maintenance [post]
func (c *ConfigController) UpdateMaintenance(ctx *gin.Context) {
	var req dto.MaintenanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Invalid maintenance request body")
		ctx.JSON(http.StatusBadRequest, model.NewResponse("Invalid request body: "+err.Error(), nil))
		return
	}

	nodes, err := c.store.SetMaintenance(req.Node, req.Action)
	if errors.Is(err, lbconfig.ErrNotLoaded) {
		ctx.JSON(http.StatusNotFound, model.NewResponse("Configuration not found", nil))
		return
	}
	if err != nil {
		log.Error().Err(err).Str("node", req.Node).Str("action", req.Action).Msg("Failed to update maintenance nodes")
		ctx.JSON(http.StatusInternalServerError, model.NewResponse("Failed to update configuration", nil))
		return
	}

	// Best effort; the list is already saved even if the restart fails.
	if result := c.balancer.Restart(ctx.Request.Context()); !result.Success {
		log.Warn().Str("error", result.Error).Msg("Balancer restart after maintenance change failed")
	}

	ctx.JSON(http.StatusOK, dto.MaintenanceResponse{Success: true, MaintenanceNodes: nodes})
}

// UpdateBalancingSettings godoc
// @Summary      Update balancing settings
// @Description  Updates only the provided fields of the balancing section, leaving everything else untouched.
// @Tags         config
// @Accept       json
// @Produce      json
// @Param        request  body      dto.BalancingSettingsRequest  true  "Settings to change"
// @Success      200      {object}  dto.BalancingSettingsResponse
// @Failure      400      {object}  model.Response "Invalid request body"
// @Failure      404      {object}  model.Response "Configuration not found"
// @Failure      500      {object}  model.Response "Update failed"
// @Router       /api/balancing/settings [post]
func (c *ConfigController) UpdateBalancingSettings(ctx *gin.Context) {
	var req dto.BalancingSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Invalid balancing settings body")
		ctx.JSON(http.StatusBadRequest, model.NewResponse("Invalid request body: "+err.Error(), nil))
		return
	}

	balancing, err := c.store.UpdateBalancing(lbconfig.BalancingUpdate{
		Enable:          req.Enable,
		Method:          req.Method,
		Mode:            req.Mode,
		Balanciness:     req.Balanciness,
		MemoryThreshold: req.MemoryThreshold,
	})
	if errors.Is(err, lbconfig.ErrNotLoaded) {
		ctx.JSON(http.StatusNotFound, model.NewResponse("Configuration not found", nil))
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to update balancing settings")
		ctx.JSON(http.StatusInternalServerError, model.NewResponse("Failed to update configuration", nil))
		return
	}
	ctx.JSON(http.StatusOK, dto.BalancingSettingsResponse{Success: true, Balancing: balancing})
}
