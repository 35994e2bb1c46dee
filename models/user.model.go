package models

import (
	"strings"

	"gorm.io/gorm"
)

// User roles
const (
	RoleAdmin  = "ADMIN"
	RoleClient = "CLIENT"
	RoleStaff  = "STAFF"
)

// User account statuses
const (
	UserStatusPending = "pending" // awaiting admin approval
	UserStatusActive  = "active"
)

type User struct {
	gorm.Model
	FirstName     string `gorm:"default:''" json:"firstName"`
	LastName      string `gorm:"default:''" json:"lastName"`
	Name          string `gorm:"default:''" json:"name"`
	WalletAddress string `gorm:"uniqueIndex;not null" json:"walletAddress"`
	Password      string `gorm:"not null" json:"-"`
	// Nullable: admin-provisioned staff accounts carry no ID number, and
	// NULLs don't collide on the unique index.
	IDNumber *string `gorm:"uniqueIndex" json:"idNumber,omitempty"`
	Role          string `gorm:"default:'CLIENT'" json:"role"` // ADMIN, CLIENT, STAFF
	Status        string `gorm:"default:'pending'" json:"status"`
	KycVerified   bool   `gorm:"default:false" json:"kycVerified"`

	// GridFS-style blob references to identity documents
	PassportPhotoID string `gorm:"default:''" json:"passportPhotoId,omitempty"`
	IDDocumentID    string `gorm:"default:''" json:"idDocumentId,omitempty"`

	CreatedBy string `gorm:"default:''" json:"createdBy,omitempty"` // wallet of the creating admin
}

// ValidRole reports whether role is one of the known user roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleClient, RoleStaff:
		return true
	}
	return false
}

// NormalizeWallet lowercases and trims a wallet address so lookups and
// ownership comparisons are case-insensitive.
func NormalizeWallet(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
