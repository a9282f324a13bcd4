package get_clinic_config

import (
	"context"

	"github.com/10xBlitz/chia-sub002/internal/service/clinicconfig/models"
)

type ConfigService interface {
	GetEffective(ctx context.Context, req *models.GetEffectiveConfigRequest) (*models.EffectiveConfigResponse, error)
	GetAllByClinic(ctx context.Context, clinicID int64, userID int64) (*models.ConfigListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
