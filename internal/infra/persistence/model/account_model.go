// Package model contains the GORM persistence models mirroring the database tables.
package model

import (
	"time"

	"github.com/google/uuid"

	"trailhub/internal/domain/entity"
)

// AccountModel mirrors the 'accounts' table. The credential columns (otp,
// token strings) live on the same row as the profile fields; this is what
// makes the single-slot session revocation a plain column comparison.
type AccountModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	FullName     string     `gorm:"type:varchar(100);not null"`
	Email        string     `gorm:"type:varchar(255);unique;not null"`
	PasswordHash string     `gorm:"type:varchar(255)"`
	Role         string     `gorm:"type:varchar(20);not null"`
	Status       string     `gorm:"type:varchar(10);not null;default:ACTIVE"`
	Provider     string     `gorm:"type:varchar(20);not null;default:EMAIL"`
	IsVerified   bool       `gorm:"not null;default:false"`
	OTP          *string    `gorm:"type:varchar(6)"`
	OTPExpiresAt *time.Time `gorm:"column:otp_expires_at"`
	AccessToken  string     `gorm:"type:text"`
	RefreshToken string     `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain maps the persistence model to a pure domain entity.
func (m *AccountModel) ToDomain() *entity.Account {
	return &entity.Account{
		ID:           m.ID,
		FullName:     m.FullName,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         entity.Role(m.Role),
		Status:       entity.Status(m.Status),
		Provider:     entity.Provider(m.Provider),
		IsVerified:   m.IsVerified,
		OTP:          m.OTP,
		OTPExpiresAt: m.OTPExpiresAt,
		AccessToken:  m.AccessToken,
		RefreshToken: m.RefreshToken,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromAccountDomain maps a domain entity to the persistence model.
func FromAccountDomain(a *entity.Account) *AccountModel {
	return &AccountModel{
		ID:           a.ID,
		FullName:     a.FullName,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		Role:         a.Role.String(),
		Status:       a.Status.String(),
		Provider:     a.Provider.String(),
		IsVerified:   a.IsVerified,
		OTP:          a.OTP,
		OTPExpiresAt: a.OTPExpiresAt,
		AccessToken:  a.AccessToken,
		RefreshToken: a.RefreshToken,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
