package dto

import (
	"github.com/google/uuid"
)

type ResetQuotaRequest struct {
	UserId uuid.UUID `json:"user_id" validate:"required"`
}

type BulkResetQuotaRequest struct {
	Tier string `json:"tier" validate:"required,oneof=free basic premium enterprise"`
}

type BulkResetQuotaResponse struct {
	Tier  string `json:"tier"`
	Reset int    `json:"reset"`
}

type ChangeTierRequest struct {
	UserId uuid.UUID `json:"user_id" validate:"required"`
	Tier   string    `json:"tier" validate:"required,oneof=free basic premium enterprise"`
}

type EmergencyStopRequest struct {
	Engaged bool `json:"engaged"`
}
