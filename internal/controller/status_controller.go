package controller

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"proxboard/internal/daemon"
	"proxboard/internal/dto"
	"proxboard/internal/lbconfig"
	"proxboard/internal/model"
	"proxboard/internal/service"
)

// StatusController combines the daemon, configuration, and log views
// into one status surface and drives the daemon lifecycle.
type StatusController struct {
	balancer   daemon.Controller
	store      lbconfig.Store
	logService service.LogEventService

	mu      sync.Mutex
	version string
}

func NewStatusController(balancer daemon.Controller, store lbconfig.Store, logService service.LogEventService) *StatusController {
	return &StatusController{
		balancer:   balancer,
		store:      store,
		logService: logService,
	}
}

func RegisterStatusRoutes(router *gin.Engine, controller *StatusController, guard gin.HandlerFunc) {
	api := router.Group("/api")
	{
		api.GET("/status", controller.GetStatus)
		api.GET("/balancing/best-node", controller.GetBestNode)
		api.POST("/balancing/trigger", guard, controller.TriggerBalancing)
		api.POST("/service/start", guard, controller.StartService)
		api.POST("/service/stop", guard, controller.StopService)
		api.POST("/service/restart", guard, controller.RestartService)
	}
}

// GetStatus godoc
// @Summary      Combined service status
// @Description  Reports the balancer container state, whether its configuration is loaded, the balancing flag, the balancer version, and what the log tail says about the last run.
// @Tags         status
// @Produce      json
// @Success      200  {object}  model.StatusOverview
// @Router       /api/status [get]
func (c *StatusController) GetStatus(ctx *gin.Context) {
	reqCtx := ctx.Request.Context()

	lastRun := c.logService.LastRun(reqCtx)
	overview := model.StatusOverview{
		ProxLB:           c.balancer.Status(reqCtx),
		ConfigLoaded:     c.store.Loaded(),
		BalancingEnabled: c.store.BalancingEnabled(),
		Version:          c.balancerVersion(reqCtx),
		Timestamp:        time.Now().Format(time.RFC3339),
		LastRun:          &lastRun,
	}
	ctx.JSON(http.StatusOK, overview)
}

// balancerVersion is resolved once and cached. Querying it runs a
// throwaway container, which is too slow to repeat per request.
func (c *StatusController) balancerVersion(ctx context.Context) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.version == "" || c.version == "unknown" {
		c.version = c.balancer.Version(ctx)
	}
	return c.version
}

// TriggerBalancing godoc
// @Summary      Trigger a balancing run
// @Description  Runs the balancer once in a throwaway container. With dry_run=true the run only reports what it would migrate.
// @Tags         balancing
// @Produce      json
// @Param        dry_run  query     bool  false  "Calculate migrations without applying them (default: false)"
// @Success      200      {object}  dto.TriggerResponse
// @Router       /api/balancing/trigger [post]
func (c *StatusController) TriggerBalancing(ctx *gin.Context) {
	dryRun, _ := strconv.ParseBool(ctx.DefaultQuery("dry_run", "false"))

	result := c.balancer.RunOnce(ctx.Request.Context(), dryRun)
	ctx.JSON(http.StatusOK, dto.TriggerResponse{Success: true, Result: result})
}

// GetBestNode godoc
// @Summary      Best node for new workloads
// @Description  Asks the balancer which node new guests should be placed on.
// @Tags         balancing
// @Produce      json
// @Success      200  {object}  model.BestNodeResult
// @Router       /api/balancing/best-node [get]
func (c *StatusController) GetBestNode(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.balancer.BestNode(ctx.Request.Context()))
}

// StartService godoc
// @Summary      Start the balancer daemon
// @Tags         service
// @Produce      json
// @Success      200  {object}  dto.ServiceActionResponse
// @Failure      500  {object}  model.Response "Start failed"
// @Router       /api/service/start [post]
func (c *StatusController) StartService(ctx *gin.Context) {
	c.serviceAction(ctx, c.balancer.Start, "ProxLB service started")
}

// StopService godoc
// @Summary      Stop the balancer daemon
// @Tags         service
// @Produce      json
// @Success      200  {object}  dto.ServiceActionResponse
// @Failure      500  {object}  model.Response "Stop failed"
// @Router       /api/service/stop [post]
func (c *StatusController) StopService(ctx *gin.Context) {
	c.serviceAction(ctx, c.balancer.Stop, "ProxLB service stopped")
}

// RestartService godoc
// @Summary      Restart the balancer daemon
// @Tags         service
// @Produce      json
// @Success      200  {object}  dto.ServiceActionResponse
// @Failure      500  {object}  model.Response "Restart failed"
// @Router       /api/service/restart [post]
func (c *StatusController) RestartService(ctx *gin.Context) {
	c.serviceAction(ctx, c.balancer.Restart, "ProxLB service restarted")
}

func (c *StatusController) serviceAction(ctx *gin.Context, action func(context.Context) model.ActionResult, message string) {
	result := action(ctx.Request.Context())
	if !result.Success {
		detail := result.Error
		if detail == "" {
			detail = result.Message
		}
		log.Error().Str("detail", detail).Msg("Balancer service action failed")
		ctx.JSON(http.StatusInternalServerError, model.NewResponse(detail, nil))
		return
	}
	ctx.JSON(http.StatusOK, dto.ServiceActionResponse{Success: true, Message: message})
}
