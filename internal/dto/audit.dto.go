package dto

import "github.com/BruksfildServices01/barber-connect/internal/models"

type AuditLogPageDTO struct {
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
	Logs  []models.AuditLog `json:"logs"`
}
