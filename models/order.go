package models

import (
	"time"

	"gorm.io/gorm"
)

// Lifecycle states shared by order and transfer requests. An Active row is a
// draft cart line owned by one user; Pending rows await operator resolution;
// Completed and Cancelled are terminal.
const (
	RequestStatusActive          = "Active"
	RequestStatusPendingSend     = "Pending Send"
	RequestStatusPendingTransfer = "Pending Transfer"
	RequestStatusCompleted       = "Completed"
	RequestStatusCancelled       = "Cancelled"
)

// OrderRequest represents one order line moving through the lifecycle.
// The partial unique index backs the atomic cart accumulation: a user can
// hold at most one Active line per (part, branch).
type OrderRequest struct {
	ID                   uint      `json:"order_request_id" gorm:"primaryKey;column:order_request_id"`
	MfgPartNumber        string    `json:"mfg_part_number" gorm:"column:mfg_part_number;not null;uniqueIndex:idx_active_order_line,where:order_status = 'Active'"`
	InternalPartNumber   string    `json:"internal_part_number" gorm:"column:internal_part_number;default:''"`
	ItemDescription      string    `json:"item_description" gorm:"column:item_description;default:''"`
	QuantityRequested    int       `json:"quantity_requested" gorm:"column:quantity_requested;not null"`
	VendorName           string    `json:"vendor_name" gorm:"column:vendor_name;default:''"`
	Notes                string    `json:"notes" gorm:"default:''"`
	RequestingBranch     string    `json:"requesting_branch" gorm:"column:requesting_branch;not null;uniqueIndex:idx_active_order_line,where:order_status = 'Active'"`
	RequestedByUserEmail string    `json:"requested_by_user_email" gorm:"column:requested_by_user_email;index;uniqueIndex:idx_active_order_line,where:order_status = 'Active'"`
	OrderStatus          string    `json:"order_status" gorm:"column:order_status;index;default:'Pending Send'"`
	RequestedAtUTC       time.Time `json:"requested_at_utc" gorm:"column:requested_at_utc"`
	LastModifiedAtUTC    time.Time `json:"last_modified_at_utc" gorm:"column:last_modified_at_utc"`
}

// TableName overrides the default table name.
func (OrderRequest) TableName() string {
	return "order_requests"
}

// BeforeCreate sets the request timestamps.
func (o *OrderRequest) BeforeCreate(tx *gorm.DB) error {
	now := time.Now().UTC()
	if o.RequestedAtUTC.IsZero() {
		o.RequestedAtUTC = now
	}
	o.LastModifiedAtUTC = now
	return nil
}

// BeforeUpdate refreshes the last-modified timestamp.
func (o *OrderRequest) BeforeUpdate(tx *gorm.DB) error {
	o.LastModifiedAtUTC = time.Now().UTC()
	return nil
}
