package controllers

import (
	"fmt"
	"time"

	"zentroq-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TransferController manages branch-to-branch transfer request lines through
// the same lifecycle as orders, with Pending Transfer as the submitted state.
type TransferController struct {
	DB *gorm.DB
}

func NewTransferController(db *gorm.DB) *TransferController {
	return &TransferController{DB: db}
}

// TransferLine is the payload shape for creating transfer request lines.
type TransferLine struct {
	MfgPartNumber        string `json:"mfg_part_number"`
	InternalPartNumber   string `json:"internal_part_number"`
	ItemDescription      string `json:"item_description"`
	QuantityRequested    int    `json:"quantity_requested"`
	SourceBranch         string `json:"source_branch"`
	DestinationBranch    string `json:"destination_branch"`
	Notes                string `json:"notes"`
	RequestedByUserEmail string `json:"requested_by_user_email"`
}

func (l TransferLine) validate() error {
	if l.MfgPartNumber == "" || l.QuantityRequested <= 0 || l.SourceBranch == "" || l.DestinationBranch == "" {
		return fiber.NewError(fiber.StatusBadRequest,
			"Missing required fields (mfg_part_number, quantity_requested, source_branch, destination_branch) for a transfer item.")
	}
	if l.SourceBranch == l.DestinationBranch {
		return fiber.NewError(fiber.StatusBadRequest, "Source and destination branch must differ.")
	}
	return nil
}

type SubmitTransfersRequest struct {
	Transfers []TransferLine `json:"transfers"`
}

// SubmitTransfers handles POST /transfers: fully-specified lines inserted
// directly in Pending Transfer. All lines insert or none do.
func (tc *TransferController) SubmitTransfers(c *fiber.Ctx) error {
	var req SubmitTransfersRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if len(req.Transfers) == 0 {
		return badRequest(c, "No transfer lines provided")
	}

	ids := make([]uint, 0, len(req.Transfers))
	err := tc.DB.Transaction(func(tx *gorm.DB) error {
		for _, line := range req.Transfers {
			if err := line.validate(); err != nil {
				return err
			}
			transfer := models.TransferRequest{
				MfgPartNumber:        line.MfgPartNumber,
				InternalPartNumber:   line.InternalPartNumber,
				ItemDescription:      line.ItemDescription,
				QuantityRequested:    line.QuantityRequested,
				SourceBranch:         line.SourceBranch,
				DestinationBranch:    line.DestinationBranch,
				Notes:                line.Notes,
				RequestedByUserEmail: line.RequestedByUserEmail,
				Status:               models.RequestStatusPendingTransfer,
			}
			if err := tx.Create(&transfer).Error; err != nil {
				return err
			}
			ids = append(ids, transfer.ID)
		}
		return nil
	})
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return c.Status(fe.Code).JSON(fiber.Map{"error": true, "message": fe.Message})
		}
		return queryError(c, "Error submitting transfers", err)
	}

	return c.JSON(fiber.Map{
		"message":      fmt.Sprintf("Successfully submitted %d transfers.", len(ids)),
		"transfer_ids": ids,
	})
}

func (tc *TransferController) listByStatus(c *fiber.Ctx, status, sortColumn string) error {
	transfers := make([]models.TransferRequest, 0)
	err := tc.DB.
		Where("status = ?", status).
		Order(sortColumn + " DESC").
		Find(&transfers).Error
	if err != nil {
		return queryError(c, "Error reading transfers", err)
	}
	return c.JSON(transfers)
}

// GetPendingTransfers handles GET /transfers/pending.
func (tc *TransferController) GetPendingTransfers(c *fiber.Ctx) error {
	return tc.listByStatus(c, models.RequestStatusPendingTransfer, "requested_at")
}

// GetCompletedTransfers handles GET /transfers/completed.
func (tc *TransferController) GetCompletedTransfers(c *fiber.Ctx) error {
	return tc.listByStatus(c, models.RequestStatusCompleted, "last_modified_at")
}

// GetCancelledTransfers handles GET /transfers/cancelled.
func (tc *TransferController) GetCancelledTransfers(c *fiber.Ctx) error {
	return tc.listByStatus(c, models.RequestStatusCancelled, "last_modified_at")
}

// UpdateTransferStatus handles PUT /transfers/:id/status: a Pending Transfer
// line moves to Completed or Cancelled.
func (tc *TransferController) UpdateTransferStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid transfer id")
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.NewStatus != models.RequestStatusCompleted && req.NewStatus != models.RequestStatusCancelled {
		return badRequest(c, "Invalid status. Must be one of: Completed, Cancelled")
	}

	result := tc.DB.Model(&models.TransferRequest{}).
		Where("transfer_request_id = ? AND status = ?", id, models.RequestStatusPendingTransfer).
		Updates(map[string]interface{}{
			"status":           req.NewStatus,
			"last_modified_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return queryError(c, "Error updating transfer status", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound(c, fmt.Sprintf("Transfer %d not found in Pending Transfer state", id))
	}

	var item models.TransferRequest
	if err := tc.DB.First(&item, "transfer_request_id = ?", id).Error; err != nil {
		return queryError(c, "Error reading transfer", err)
	}
	return c.JSON(item)
}

// GetActiveTransfers handles GET /active-transfers: the caller's cart.
func (tc *TransferController) GetActiveTransfers(c *fiber.Ctx) error {
	email := c.Query("user_email")
	if email == "" {
		return badRequest(c, "user_email query parameter is required")
	}

	transfers := make([]models.TransferRequest, 0)
	err := tc.DB.
		Where("requested_by_user_email = ? AND status = ?", email, models.RequestStatusActive).
		Order("requested_at ASC").
		Find(&transfers).Error
	if err != nil {
		return queryError(c, "Error reading active transfers", err)
	}
	return c.JSON(transfers)
}

// bumpActiveTransferLine applies one atomic increment to the caller's Active
// line for the transfer lane. Returns nil with no error when no line exists.
func (tc *TransferController) bumpActiveTransferLine(line TransferLine) (*models.TransferRequest, error) {
	result := tc.DB.Model(&models.TransferRequest{}).
		Where("requested_by_user_email = ? AND mfg_part_number = ? AND source_branch = ? AND destination_branch = ? AND status = ?",
			line.RequestedByUserEmail, line.MfgPartNumber, line.SourceBranch, line.DestinationBranch, models.RequestStatusActive).
		Updates(map[string]interface{}{
			"quantity_requested": gorm.Expr("quantity_requested + ?", line.QuantityRequested),
			"notes":              line.Notes,
			"last_modified_at":   time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	var item models.TransferRequest
	err := tc.DB.
		Where("requested_by_user_email = ? AND mfg_part_number = ? AND source_branch = ? AND destination_branch = ? AND status = ?",
			line.RequestedByUserEmail, line.MfgPartNumber, line.SourceBranch, line.DestinationBranch, models.RequestStatusActive).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// AddActiveTransferItem handles POST /active-transfers/item. Re-adding the
// same part for the same source and destination accumulates onto the existing
// Active line, same bump-insert-bump sequence as the order cart: an insert
// rejected by the partial unique index means a concurrent add won, so the
// increment is retried against the line it created.
func (tc *TransferController) AddActiveTransferItem(c *fiber.Ctx) error {
	var line TransferLine
	if err := c.BodyParser(&line); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if line.RequestedByUserEmail == "" {
		return badRequest(c, "User email (requested_by_user_email) is required in payload.")
	}
	if err := line.validate(); err != nil {
		fe := err.(*fiber.Error)
		return c.Status(fe.Code).JSON(fiber.Map{"error": true, "message": fe.Message})
	}

	item, err := tc.bumpActiveTransferLine(line)
	if err != nil {
		return queryError(c, "Error adding active transfer item", err)
	}
	if item != nil {
		return c.JSON(item)
	}

	created := models.TransferRequest{
		MfgPartNumber:        line.MfgPartNumber,
		InternalPartNumber:   line.InternalPartNumber,
		ItemDescription:      line.ItemDescription,
		QuantityRequested:    line.QuantityRequested,
		SourceBranch:         line.SourceBranch,
		DestinationBranch:    line.DestinationBranch,
		Notes:                line.Notes,
		RequestedByUserEmail: line.RequestedByUserEmail,
		Status:               models.RequestStatusActive,
	}
	createErr := tc.DB.Create(&created).Error
	if createErr == nil {
		return c.JSON(created)
	}

	item, err = tc.bumpActiveTransferLine(line)
	if err == nil && item != nil {
		return c.JSON(item)
	}
	return queryError(c, "Error adding active transfer item", createErr)
}

type UpdateTransferQuantityRequest struct {
	NewQuantity int    `json:"new_quantity"`
	UserEmail   string `json:"user_email"`
}

// UpdateActiveTransferQuantity handles PUT /active-transfers/item/:id. Only
// the owning user's Active line is touched.
func (tc *TransferController) UpdateActiveTransferQuantity(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid transfer id")
	}

	var req UpdateTransferQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.UserEmail == "" {
		return badRequest(c, "user_email is required in payload")
	}
	if req.NewQuantity <= 0 {
		return badRequest(c, "Quantity must be a positive integer")
	}

	result := tc.DB.Model(&models.TransferRequest{}).
		Where("transfer_request_id = ? AND requested_by_user_email = ? AND status = ?",
			id, req.UserEmail, models.RequestStatusActive).
		Updates(map[string]interface{}{
			"quantity_requested": req.NewQuantity,
			"last_modified_at":   time.Now().UTC(),
		})
	if result.Error != nil {
		return queryError(c, "Error updating active transfer item", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound(c, fmt.Sprintf("Active transfer item %d not found for user", id))
	}

	var item models.TransferRequest
	if err := tc.DB.First(&item, "transfer_request_id = ?", id).Error; err != nil {
		return queryError(c, "Error reading active transfer item", err)
	}
	return c.JSON(item)
}

// RemoveActiveTransferItem handles DELETE /active-transfers/item/:id.
func (tc *TransferController) RemoveActiveTransferItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid transfer id")
	}
	email := c.Query("user_email")
	if email == "" {
		return badRequest(c, "user_email query parameter is required")
	}

	result := tc.DB.
		Where("transfer_request_id = ? AND requested_by_user_email = ? AND status = ?",
			id, email, models.RequestStatusActive).
		Delete(&models.TransferRequest{})
	if result.Error != nil {
		return queryError(c, "Error removing active transfer item", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound(c, fmt.Sprintf("Active transfer item %d not found for user", id))
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Active transfer item %d removed", id),
	})
}

// ClearActiveTransfers handles DELETE /active-transfers/all.
func (tc *TransferController) ClearActiveTransfers(c *fiber.Ctx) error {
	email := c.Query("user_email")
	if email == "" {
		return badRequest(c, "user_email query parameter is required")
	}

	result := tc.DB.
		Where("requested_by_user_email = ? AND status = ?", email, models.RequestStatusActive).
		Delete(&models.TransferRequest{})
	if result.Error != nil {
		return queryError(c, "Error clearing active transfers", result.Error)
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Cleared %d active transfer items", result.RowsAffected),
	})
}

// SubmitActiveTransfers handles POST /submit-active-transfers: every Active
// line in the caller's cart moves to Pending Transfer in one transaction.
func (tc *TransferController) SubmitActiveTransfers(c *fiber.Ctx) error {
	email := c.Query("user_email")
	if email == "" {
		return badRequest(c, "user_email query parameter is required")
	}

	var ids []uint
	err := tc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.TransferRequest{}).
			Where("requested_by_user_email = ? AND status = ?", email, models.RequestStatusActive).
			Pluck("transfer_request_id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "No active transfers found to submit.")
		}
		return tx.Model(&models.TransferRequest{}).
			Where("transfer_request_id IN ?", ids).
			Updates(map[string]interface{}{
				"status":           models.RequestStatusPendingTransfer,
				"last_modified_at": time.Now().UTC(),
			}).Error
	})
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return c.Status(fe.Code).JSON(fiber.Map{"error": true, "message": fe.Message})
		}
		return queryError(c, "Error submitting active transfers", err)
	}

	return c.JSON(fiber.Map{
		"message":              fmt.Sprintf("Successfully submitted %d transfers.", len(ids)),
		"transfer_request_ids": ids,
	})
}
