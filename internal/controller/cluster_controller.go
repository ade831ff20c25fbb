package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"proxboard/internal/cluster"
	"proxboard/internal/dto"
	"proxboard/internal/lbconfig"
	"proxboard/internal/model"
)

// ClusterController serves read-only cluster views. The client is nil
// when no balancer configuration with API credentials exists yet; every
// endpoint then answers 503 until the configuration is supplied.
type ClusterController struct {
	client cluster.Client
	store  lbconfig.Store
}

func NewClusterController(client cluster.Client, store lbconfig.Store) *ClusterController {
	return &ClusterController{
		client: client,
		store:  store,
	}
}

func RegisterClusterRoutes(router *gin.Engine, controller *ClusterController) {
	api := router.Group("/api")
	{
		api.GET("/cluster", controller.GetCluster)
		api.GET("/nodes", controller.GetNodes)
		api.GET("/nodes/maintenance-status", controller.GetMaintenanceStatus)
		api.GET("/guests", controller.GetGuests)
		api.GET("/guests/:node", controller.GetNodeGuests)
		api.GET("/tasks", controller.GetTasks)
		api.GET("/rules", controller.GetRules)
		api.GET("/ha/status", controller.GetHAStatus)
		api.GET("/ha/node/:node", controller.GetNodeHAState)
	}
}

// GetCluster godoc
// @Summary      Cluster overview
// @Description  Aggregated cluster totals: quorum, node and guest counts, CPU and memory usage.
// @Tags         cluster
// @Produce      json
// @Success      200  {object}  model.ClusterStatus
// @Failure      503  {object}  model.Response "Proxmox API not initialized"
// @Router       /api/cluster [get]
func (c *ClusterController) GetCluster(ctx *gin.Context) {
	if !c.apiReady(ctx) {
		return
	}

	status, err := c.client.ClusterStatus(ctx.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to read cluster status")
		ctx.JSON(http.StatusInternalServerError, model.NewResponse("Failed to read cluster status", nil))
		return
	}
	ctx.JSON(http.StatusOK, status)
}

// GetNodes godoc
// @Summary      List cluster nodes
// @Description  Nodes with their resource usage, annotated with the balancer's maintenance and ignore lists.
// @Tags         cluster
// @Produce      json
// @Success      200  {object}  dto.NodesResponse
// @Failure      503  {object}  model.Response "Proxmox API not initialized"
// @Router       /api/nodes [get]
func (c *ClusterController) GetNodes(ctx *gin.Context) {
	if !c.apiReady(ctx) {
		return
	}

	nodes, err := c.client.Nodes(ctx.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list nodes")
		ctx.JSON(http.StatusInternalServerError, model.NewResponse("Failed to list nodes", nil))
		return
	}

	maintenance := c.store.MaintenanceNodes()
	ignored := c.store.IgnoreNodes()
	for i := range nodes {
		nodes[i].Maintenance = nodeListed(maintenance, nodes[i].Node)
		nodes[i].Ignored = nodeListed(ignored, nodes[i].Node)
	}
	ctx.JSON(http.StatusOK, dto.NodesResponse{Nodes: nodes})
}

// GetGuests godoc
// @Summary      List all guests
// @Description  Every VM and container in the cluster, sorted by node and VMID.
// @Tags         cluster
// @Produce      json
// @Success      200  {object}  dto.GuestsResponse
// @Failure      503  {object}  model.Response "Proxmox API not initialized"
// @Router       /api/guests [get]
func (c *ClusterController) GetGuests(ctx *gin.Context) {
	if !c.apiReady(ctx) {
		return
	}

	guests, err := c.client.AllGuests(ctx.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list guests")
		ctx.JSON(http.StatusInternalServerError, model.NewResponse("Failed to list guests", nil))
		return
	}
	ctx.JSON(http.StatusOK, dto.GuestsResponse{Guests: guests})
}

// GetNodeGuests godoc
// @Summary      List guests on one node
// @Tags         cluster
// @Produce      json
// @Param        node  path      string  true  "Node name"
// @Success      200   {object}  dto.NodeGuestsResponse
// @Failure      503   {object}  model.Response "Proxmox API not initialized"
// @Router       /api/guests/{node} [get]
func (c *ClusterController) GetNodeGuests(ctx *gin.Context) {
	if !c.apiReady(ctx) {
		return
	}
	node := ctx.Param("node")

	guests, err := c.client.NodeGuests(ctx.Request.Context(), node)
	if err != nil {
		log.Error().Err(err).Str("node", node).Msg("Failed to list node guests")
		ctx.JSON(http.StatusInternalServerError, model.NewResponse("Failed to list node guests", nil))
		return
	}
	ctx.JSON(http.StatusOK, dto.NodeGuestsResponse{Node: node, Guests: guests})
}

// GetTasks godoc
// @Summary      List recent cluster tasks
// @Tags         cluster
// @Produce      json
// @Param        limit   query     int     false  "Maximum number of tasks to return (default: 50)"
// @Param        status  query     string  false  "Filter by task status (e.g. OK, running)"
// @Success      200     {object}  dto.TasksResponse
// @Failure      503     {object}  model.Response "Proxmox API not initialized"
// @Router       /api/tasks [get]
func (c *ClusterController) GetTasks(ctx *gin.Context) {
	if !c.apiReady(ctx) {
		return
	}
	limit := intQuery(ctx, "limit", 50)
	status := ctx.Query("status")

	tasks, err := c.client.Tasks(ctx.Request.Context(), limit, status)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list tasks")
		ctx.JSON(http.StatusInternalServerError, model.NewResponse("Failed to list tasks", nil))
		return
	}
	ctx.JSON(http.StatusOK, dto.TasksResponse{Tasks: tasks})
}

// GetRules godoc
// @Summary      Balancing rules in effect
// @Description  Affinity, anti-affinity, ignore, and pin groups derived from guest tags, plus the configured pools.
// @Tags         cluster
// @Produce      json
// @Success      200  {object}  model.BalancingRules
// @Failure      503  {object}  model.Response "Proxmox API not initialized"
// @Router       /api/rules [get]
func (c *ClusterController) GetRules(ctx *gin.Context) {
	if !c.apiReady(ctx) {
		return
	}

	guests, err := c.client.AllGuests(ctx.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list guests for rules")
		ctx.JSON(http.StatusInternalServerError, model.NewResponse("Failed to derive balancing rules", nil))
		return
	}
	ctx.JSON(http.StatusOK, cluster.BuildRules(guests, c.store.Pools()))
}

// GetHAStatus godoc
// @Summary      HA manager status
// @Tags         ha
// @Produce      json
// @Success      200  {object}  model.HAStatus
// @Failure      503  {object}  model.Response "Proxmox API not initialized"
// @Router       /api/ha/status [get]
func (c *ClusterController) GetHAStatus(ctx *gin.Context) {
	if !c.apiReady(ctx) {
		return
	}

	status, err := c.client.HAStatus(ctx.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to read HA status")
		ctx.JSON(http.StatusInternalServerError, model.NewResponse("Failed to read HA status", nil))
		return
	}
	ctx.JSON(http.StatusOK, status)
}

// GetNodeHAState godoc
// @Summary      HA state of one node
// @Tags         ha
// @Produce      json
// @Param        node  path      string  true  "Node name"
// @Success      200   {object}  model.NodeHAState
// @Failure      503   {object}  model.Response "Proxmox API not initialized"
// @Router       /api/ha/node/{node} [get]
func (c *ClusterController) GetNodeHAState(ctx *gin.Context) {
	if !c.apiReady(ctx) {
		return
	}
	node := ctx.Param("node")

	state, err := c.client.NodeHAState(ctx.Request.Context(), node)
	if err != nil {
		log.Error().Err(err).Str("node", node).Msg("Failed to read node HA state")
		ctx.JSON(http.StatusInternalServerError, model.NewResponse("Failed to read node HA state", nil))
		return
	}
	ctx.JSON(http.StatusOK, state)
}

// GetMaintenanceStatus godoc
// @Summary      Combined maintenance view
// @Description  For every node, whether it is in the balancer's maintenance list, in Proxmox HA maintenance, or either.
// @Tags         cluster
// @Produce      json
// @Success      200  {object}  dto.MaintenanceStatusResponse
// @Failure      503  {object}  model.Response "Proxmox API not initialized"
// @Router       /api/nodes/maintenance-status [get]
func (c *ClusterController) GetMaintenanceStatus(ctx *gin.Context) {
	if !c.apiReady(ctx) {
		return
	}
	reqCtx := ctx.Request.Context()

	haStatus, err := c.client.HAStatus(reqCtx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read HA status")
		ctx.JSON(http.StatusInternalServerError, model.NewResponse("Failed to read HA status", nil))
		return
	}
	nodes, err := c.client.Nodes(reqCtx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list nodes")
		ctx.JSON(http.StatusInternalServerError, model.NewResponse("Failed to list nodes", nil))
		return
	}

	maintenance := c.store.MaintenanceNodes()
	statuses := make([]model.NodeMaintenanceStatus, 0, len(nodes))
	for _, node := range nodes {
		haMaintenance := false
		for _, item := range haStatus.Status {
			if item.Type == "node" && item.Node == node.Node {
				haMaintenance = item.Status == "maintenance"
				break
			}
		}
		inBalancerList := nodeListed(maintenance, node.Node)
		statuses = append(statuses, model.NodeMaintenanceStatus{
			Node:                 node.Node,
			Status:               node.Status,
			ProxLBMaintenance:    inBalancerList,
			ProxmoxHAMaintenance: haMaintenance,
			AnyMaintenance:       inBalancerList || haMaintenance,
		})
	}
	ctx.JSON(http.StatusOK, dto.MaintenanceStatusResponse{
		Nodes:                  statuses,
		ProxLBMaintenanceNodes: maintenance,
	})
}

func (c *ClusterController) apiReady(ctx *gin.Context) bool {
	if c.client == nil {
		ctx.JSON(http.StatusServiceUnavailable, model.NewResponse("Proxmox API not initialized", nil))
		return false
	}
	return true
}

func nodeListed(list []string, node string) bool {
	for _, item := range list {
		if item == node {
			return true
		}
	}
	return false
}
