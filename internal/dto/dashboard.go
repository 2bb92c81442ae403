package dto

import (
	"time"

	"github.com/google/uuid"

	"service-order-system/internal/pipeline"
	"service-order-system/pkg/constants"
	"service-order-system/pkg/types"
)

// DashboardDTO — KPI дашборда. При сбое загрузки отдаётся последний удачный расчёт
// со Stale=true и текстом ошибки.
type DashboardDTO struct {
	types.DashboardSnapshot
	Stale bool   `json:"stale"`
	Error string `json:"error,omitempty"`
}

type PipelineStageDTO struct {
	Status   constants.OrderStatus    `json:"status"`
	Label    string                   `json:"label"`
	Category constants.StatusCategory `json:"category"`
	Color    string                   `json:"color"`
	Count    int                      `json:"count"`
	Orders   []OrderCardDTO           `json:"orders"`
}

type TechnicianWorkloadDTO struct {
	TechnicianID uuid.UUID      `json:"technician_id"`
	Name         string         `json:"name"`
	Specialty    *string        `json:"specialty,omitempty"`
	Count        int            `json:"count"`
	Orders       []OrderCardDTO `json:"orders"`
	Remaining    int            `json:"remaining"`
}

type PipelineDTO struct {
	Stages      []PipelineStageDTO      `json:"stages"`
	Technicians []TechnicianWorkloadDTO `json:"technicians"`
}

func NewPipelineDTO(stages []pipeline.StageBucket, workload []pipeline.TechnicianWorkload, now time.Time) PipelineDTO {
	out := PipelineDTO{
		Stages:      make([]PipelineStageDTO, 0, len(stages)),
		Technicians: make([]TechnicianWorkloadDTO, 0, len(workload)),
	}

	for _, b := range stages {
		cards := make([]OrderCardDTO, 0, len(b.Orders))
		for _, o := range b.Orders {
			cards = append(cards, NewOrderCardDTO(o, now))
		}
		out.Stages = append(out.Stages, PipelineStageDTO{
			Status:   b.Stage.Status,
			Label:    b.Stage.Label,
			Category: b.Stage.Category,
			Color:    b.Stage.Color,
			Count:    len(b.Orders),
			Orders:   cards,
		})
	}

	for _, w := range workload {
		visible, remaining := w.Preview(constants.WorkloadPreviewSize)
		cards := make([]OrderCardDTO, 0, len(visible))
		for _, o := range visible {
			cards = append(cards, NewOrderCardDTO(o, now))
		}
		out.Technicians = append(out.Technicians, TechnicianWorkloadDTO{
			TechnicianID: w.Technician.ID,
			Name:         w.Technician.Name,
			Specialty:    w.Technician.Specialty,
			Count:        w.Count(),
			Orders:       cards,
			Remaining:    remaining,
		})
	}
	return out
}
