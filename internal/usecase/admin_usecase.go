package usecase

import (
	"context"

	"trailhub/internal/domain/entity"

	"github.com/google/uuid"
)

// ListVendorsInput pages through the registered vendor accounts.
type ListVendorsInput struct {
	Page  int `query:"page" validate:"gte=0"`
	Limit int `query:"limit" validate:"gte=0,lte=100"`
}

// VendorListOutput returns one page of vendor accounts and the total.
type VendorListOutput struct {
	Vendors []*entity.PublicAccount
	Total   int64
}

// SetVendorStatusInput moves a vendor account between ACTIVE and INACTIVE.
type SetVendorStatusInput struct {
	VendorID uuid.UUID `json:"-"`
	Status   string    `json:"status" validate:"required,oneof=ACTIVE INACTIVE"`
}

// SetEventApprovalInput resolves a pending event submission.
type SetEventApprovalInput struct {
	EventID uuid.UUID `json:"-"`
	Status  string    `json:"status" validate:"required,oneof=APPROVED REJECTED"`
}

// AdminUsecase defines the moderation operations reserved for the
// super-admin account.
type AdminUsecase interface {
	ListVendors(ctx context.Context, input *ListVendorsInput) (*VendorListOutput, error)
	SetVendorStatus(ctx context.Context, input *SetVendorStatusInput) (*entity.PublicAccount, error)
	SetEventApproval(ctx context.Context, input *SetEventApprovalInput) (*entity.Event, error)
	GetEvent(ctx context.Context, eventID uuid.UUID) (*entity.Event, error)
	DeleteEvent(ctx context.Context, eventID uuid.UUID) error
}
