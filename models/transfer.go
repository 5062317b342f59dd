package models

import (
	"time"

	"gorm.io/gorm"
)

// TransferRequest represents one branch-to-branch transfer line moving through
// the lifecycle. Mirrors OrderRequest with a source and destination branch.
type TransferRequest struct {
	ID                   uint      `json:"transfer_request_id" gorm:"primaryKey;column:transfer_request_id"`
	MfgPartNumber        string    `json:"mfg_part_number" gorm:"column:mfg_part_number;not null;uniqueIndex:idx_active_transfer_line,where:status = 'Active'"`
	InternalPartNumber   string    `json:"internal_part_number" gorm:"column:internal_part_number;default:''"`
	ItemDescription      string    `json:"item_description" gorm:"column:item_description;default:''"`
	QuantityRequested    int       `json:"quantity_requested" gorm:"column:quantity_requested;not null"`
	SourceBranch         string    `json:"source_branch" gorm:"column:source_branch;not null;uniqueIndex:idx_active_transfer_line,where:status = 'Active'"`
	DestinationBranch    string    `json:"destination_branch" gorm:"column:destination_branch;not null;uniqueIndex:idx_active_transfer_line,where:status = 'Active'"`
	RequestedByUserEmail string    `json:"requested_by_user_email" gorm:"column:requested_by_user_email;index;uniqueIndex:idx_active_transfer_line,where:status = 'Active'"`
	Status               string    `json:"status" gorm:"index;default:'Pending Transfer'"`
	Notes                string    `json:"notes" gorm:"default:''"`
	RequestedAt          time.Time `json:"requested_at" gorm:"column:requested_at"`
	LastModifiedAt       time.Time `json:"last_modified_at" gorm:"column:last_modified_at"`
}

// TableName overrides the default table name.
func (TransferRequest) TableName() string {
	return "transfer_requests"
}

// BeforeCreate sets the request timestamps.
func (t *TransferRequest) BeforeCreate(tx *gorm.DB) error {
	now := time.Now().UTC()
	if t.RequestedAt.IsZero() {
		t.RequestedAt = now
	}
	t.LastModifiedAt = now
	return nil
}

// BeforeUpdate refreshes the last-modified timestamp.
func (t *TransferRequest) BeforeUpdate(tx *gorm.DB) error {
	t.LastModifiedAt = time.Now().UTC()
	return nil
}
