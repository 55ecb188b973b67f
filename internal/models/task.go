package models

import "encoding/json"

// TransitionRequest 状态迁移请求
type TransitionRequest struct {
	Record json.RawMessage `json:"record" binding:"required"`
	Status string          `json:"status" binding:"required"`
	Error  string          `json:"error"`
}

// RunRequest 运行服务请求。Task 为可选的任务记录字段。
type RunRequest struct {
	InputData json.RawMessage `json:"input_data"`
	Args      []any           `json:"args"`
	Task      json.RawMessage `json:"task"`
}

// ServiceInfo 服务目录条目
type ServiceInfo struct {
	Name   string `json:"name"`
	Input  string `json:"input"`
	Output string `json:"output"`
}
