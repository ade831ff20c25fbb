package dto

// ConfigResponse carries the daemon configuration with secrets masked.
type ConfigResponse struct {
	Config map[string]interface{} `json:"config"`
}

type ConfigUpdateRequest struct {
	Config map[string]interface{} `json:"config" binding:"required"`
}

type ConfigUpdateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type MaintenanceRequest struct {
	Node   string `json:"node" binding:"required"`
	Action string `json:"action" binding:"required,oneof=add remove"`
}

type MaintenanceResponse struct {
	Success          bool     `json:"success"`
	MaintenanceNodes []string `json:"maintenance_nodes"`
}

// BalancingSettingsRequest updates only the fields that are present,
// leaving the rest of the balancing section untouched.
type BalancingSettingsRequest struct {
	Enable          *bool   `json:"enable,omitempty"`
	Method          *string `json:"method,omitempty"`
	Mode            *string `json:"mode,omitempty"`
	Balanciness     *int    `json:"balanciness,omitempty"`
	MemoryThreshold *int    `json:"memory_threshold,omitempty"`
}

type BalancingSettingsResponse struct {
	Success   bool                   `json:"success"`
	Balancing map[string]interface{} `json:"balancing"`
}
