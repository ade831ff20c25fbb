package dto

import "proxboard/internal/model"

type NodesResponse struct {
	Nodes []model.NodeInfo `json:"nodes"`
}

type GuestsResponse struct {
	Guests []model.GuestInfo `json:"guests"`
}

type NodeGuestsResponse struct {
	Node   string            `json:"node"`
	Guests []model.GuestInfo `json:"guests"`
}

type TasksResponse struct {
	Tasks []model.TaskInfo `json:"tasks"`
}

type MaintenanceStatusResponse struct {
	Nodes                  []model.NodeMaintenanceStatus `json:"nodes"`
	ProxLBMaintenanceNodes []string                      `json:"proxlb_maintenance_nodes"`
}
