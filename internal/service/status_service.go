package service

import (
	"zendata/internal/models"
	"zendata/pkg/task"
)

type StatusService struct {
	catalog  *Catalog
	registry *task.Registry
	version  string
}

func NewStatusService(catalog *Catalog, version string) *StatusService {
	return &StatusService{
		catalog:  catalog,
		registry: task.DefaultRegistry(),
		version:  version,
	}
}

// Statuses 全部状态字面量，按生命周期顺序
func (s *StatusService) Statuses() []models.StatusInfo {
	statuses := task.Statuses()
	infos := make([]models.StatusInfo, 0, len(statuses))
	for _, st := range statuses {
		infos = append(infos, models.StatusInfo{
			Status:   st,
			Terminal: st.IsTerminal(),
			InFlight: st.IsInFlight(),
		})
	}
	return infos
}

func (s *StatusService) GetSystemStatus() *models.SystemStatus {
	return &models.SystemStatus{
		Services: s.catalog.Len(),
		Types:    len(s.registry.Names()),
		Version:  s.version,
	}
}
