package models

import "zendata/pkg/task"

// StatusInfo 状态字面量及其分类
type StatusInfo struct {
	Status   task.Status `json:"status"`
	Terminal bool        `json:"terminal"`
	InFlight bool        `json:"in_flight"`
}

// SystemStatus 服务整体概况
type SystemStatus struct {
	Services int    `json:"services"`
	Types    int    `json:"types"`
	Version  string `json:"version,omitempty"`
}
