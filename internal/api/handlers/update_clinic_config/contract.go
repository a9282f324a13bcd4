package update_clinic_config

import (
	"context"

	"github.com/10xBlitz/chia-sub002/internal/service/clinicconfig/models"
)

type ConfigService interface {
	Upsert(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
