package dto

import "proxboard/internal/model"

type ServiceActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// TriggerResponse wraps a one-shot balancing run. The outer success
// reflects that the run was dispatched; the result carries the run's
// own outcome.
type TriggerResponse struct {
	Success bool            `json:"success"`
	Result  model.RunResult `json:"result"`
}
