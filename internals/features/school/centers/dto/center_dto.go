// file: internals/features/school/centers/dto/center_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "bimbelku_backend/internals/features/school/centers/model"
)

type CenterCreateDTO struct {
	CenterName string `json:"center_name" validate:"required,max=100"`
	CenterSlug string `json:"center_slug" validate:"required,max=60,lowercase"`
}

type CenterUpdateDTO struct {
	CenterName     *string `json:"center_name,omitempty" validate:"omitempty,max=100"`
	CenterIsActive *bool   `json:"center_is_active,omitempty"`
}

type CenterResponse struct {
	CenterID        uuid.UUID `json:"center_id"`
	CenterName      string    `json:"center_name"`
	CenterSlug      string    `json:"center_slug"`
	CenterIsActive  bool      `json:"center_is_active"`
	CenterCreatedAt time.Time `json:"center_created_at"`
}

func ToCenterResponse(m model.Center) CenterResponse {
	return CenterResponse{
		CenterID:        m.CenterID,
		CenterName:      m.CenterName,
		CenterSlug:      m.CenterSlug,
		CenterIsActive:  m.CenterIsActive,
		CenterCreatedAt: m.CenterCreatedAt,
	}
}
