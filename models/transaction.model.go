package models

import (
	"gorm.io/gorm"
)

// Transaction is the write-once log entry recorded for every ownership
// transfer, keyed to the external transaction reference.
type Transaction struct {
	gorm.Model
	PropertyID uint   `gorm:"index;not null" json:"propertyId"`
	FromWallet string `gorm:"not null" json:"fromWallet"`
	ToWallet   string `gorm:"not null" json:"toWallet"`
	TxHash     string `gorm:"index;not null" json:"txHash"`
}
