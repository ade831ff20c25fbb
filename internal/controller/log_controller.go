package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"proxboard/internal/dto"
	"proxboard/internal/service"
)

const (
	defaultLogLines       = 100
	defaultRawLines       = 200
	defaultMigrationLimit = 50
)

type LogController struct {
	logService service.LogEventService
}

func NewLogController(logService service.LogEventService) *LogController {
	return &LogController{
		logService: logService,
	}
}

func RegisterLogRoutes(router *gin.Engine, controller *LogController) {
	api := router.Group("/api")
	{
		api.GET("/logs", controller.GetLogs)
		api.GET("/logs/raw", controller.GetRawLogs)
		api.GET("/migrations", controller.GetMigrations)
	}
}

// GetLogs godoc
// @Summary      Read classified balancer logs
// @Description  Tails the balancer log, classifies every line into structured records, and returns the filtered records together with a summary of the whole window.
// @Tags         logs
// @Produce      json
// @Param        lines       query     int     false  "Number of log lines to read (default: 100, max: 1000)"
// @Param        level       query     string  false  "Filter by log level (e.g. INFO, ERROR)"
// @Param        event_type  query     string  false  "Filter by event type (e.g. migration_start)"
// @Success      200         {object}  dto.LogsResponse "Classified records and window summary"
// @Router       /api/logs [get]
func (c *LogController) GetLogs(ctx *gin.Context) {
	lines := intQuery(ctx, "lines", defaultLogLines)
	level := ctx.Query("level")
	eventType := ctx.Query("event_type")

	result := c.logService.GetLogs(ctx.Request.Context(), lines, level, eventType)
	ctx.JSON(http.StatusOK, result)
}

// GetRawLogs godoc
// @Summary      Read raw balancer logs
// @Description  Returns the unparsed log tail exactly as the balancer wrote it.
// @Tags         logs
// @Produce      json
// @Param        lines  query     int  false  "Number of log lines to read (default: 200, max: 1000)"
// @Success      200    {object}  dto.RawLogsResponse "Raw log text and requested line count"
// @Router       /api/logs/raw [get]
func (c *LogController) GetRawLogs(ctx *gin.Context) {
	lines := intQuery(ctx, "lines", defaultRawLines)

	result := c.logService.GetRawLogs(ctx.Request.Context(), lines)
	ctx.JSON(http.StatusOK, result)
}

// GetMigrations godoc
// @Summary      List recent guest migrations
// @Description  Reconstructs migration events from the log tail, in the order the log recorded them.
// @Tags         logs
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of migrations to return (default: 50)"
// @Success      200    {object}  dto.MigrationsResponse "Recent migration events"
// @Router       /api/migrations [get]
func (c *LogController) GetMigrations(ctx *gin.Context) {
	limit := intQuery(ctx, "limit", defaultMigrationLimit)

	migrations := c.logService.GetMigrations(ctx.Request.Context(), limit)
	ctx.JSON(http.StatusOK, dto.MigrationsResponse{Migrations: migrations})
}

// intQuery reads a positive integer query parameter, falling back on
// missing or unusable values.
func intQuery(ctx *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(ctx.DefaultQuery(name, strconv.Itoa(fallback)))
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
