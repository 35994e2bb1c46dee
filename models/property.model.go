package models

import (
	"time"

	"gorm.io/gorm"
)

// Property verification statuses
const (
	PropertyStatusPending  = "pending"
	PropertyStatusVerified = "verified"
	PropertyStatusRejected = "rejected"
)

type Property struct {
	gorm.Model
	Title         string `gorm:"not null" json:"title"`
	StreetAddress string `gorm:"default:''" json:"streetAddress"`
	PostalCode    string `gorm:"default:''" json:"postalCode"`
	County        string `gorm:"default:''" json:"county"`
	PlotNumber    string `gorm:"index" json:"plotNumber"` // registry key, uniqueness not enforced
	Owner         string `gorm:"index;not null" json:"owner"`
	Status        string `gorm:"default:'pending'" json:"status"` // pending/verified/rejected

	// Blob references; deed is required at submission, survey plan is optional
	DeedDocumentID string `gorm:"default:''" json:"deedDocumentId,omitempty"`
	SurveyPlanID   string `gorm:"default:''" json:"surveyPlanId,omitempty"`

	VerifiedBy       string     `gorm:"default:''" json:"verifiedBy,omitempty"`
	VerificationDate *time.Time `json:"verificationDate,omitempty"`
	RejectionReason  string     `gorm:"default:''" json:"rejectionReason,omitempty"`

	PreviousOwners []PropertyTransfer `gorm:"foreignKey:PropertyID" json:"previousOwners"`
}

// PropertyTransfer is one entry of a property's ownership history.
// Rows are append-only; they are never updated after creation.
type PropertyTransfer struct {
	gorm.Model
	PropertyID    uint   `gorm:"index;not null" json:"propertyId"`
	WalletAddress string `gorm:"not null" json:"walletAddress"` // owner before the transfer
	TxHash        string `gorm:"not null" json:"txHash"`
}
