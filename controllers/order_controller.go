package controllers

import (
	"fmt"
	"time"

	"zentroq-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// OrderController manages purchase order request lines through their
// lifecycle: the per-user Active cart, submission to Pending Send, and the
// terminal Completed/Cancelled states.
type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// OrderLine is the payload shape for creating order request lines.
type OrderLine struct {
	MfgPartNumber        string `json:"mfg_part_number"`
	InternalPartNumber   string `json:"internal_part_number"`
	ItemDescription      string `json:"item_description"`
	QuantityRequested    int    `json:"quantity_requested"`
	VendorName           string `json:"vendor_name"`
	Notes                string `json:"notes"`
	RequestingBranch     string `json:"requesting_branch"`
	RequestedByUserEmail string `json:"requested_by_user_email"`
}

func (l OrderLine) validate() error {
	if l.MfgPartNumber == "" || l.QuantityRequested <= 0 || l.RequestingBranch == "" {
		return fiber.NewError(fiber.StatusBadRequest,
			"Missing required fields (mfg_part_number, quantity_requested, requesting_branch) for an order item.")
	}
	return nil
}

type SubmitOrdersRequest struct {
	Orders []OrderLine `json:"orders"`
}

// SubmitOrders handles POST /orders: fully-specified lines inserted directly
// in Pending Send, bypassing the cart. All lines insert or none do.
func (oc *OrderController) SubmitOrders(c *fiber.Ctx) error {
	var req SubmitOrdersRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if len(req.Orders) == 0 {
		return badRequest(c, "No order lines provided")
	}

	ids := make([]uint, 0, len(req.Orders))
	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		for _, line := range req.Orders {
			if err := line.validate(); err != nil {
				return err
			}
			order := models.OrderRequest{
				MfgPartNumber:        line.MfgPartNumber,
				InternalPartNumber:   line.InternalPartNumber,
				ItemDescription:      line.ItemDescription,
				QuantityRequested:    line.QuantityRequested,
				VendorName:           line.VendorName,
				Notes:                line.Notes,
				RequestingBranch:     line.RequestingBranch,
				RequestedByUserEmail: line.RequestedByUserEmail,
				OrderStatus:          models.RequestStatusPendingSend,
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			ids = append(ids, order.ID)
		}
		return nil
	})
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return c.Status(fe.Code).JSON(fiber.Map{"error": true, "message": fe.Message})
		}
		return queryError(c, "Error submitting orders", err)
	}

	return c.JSON(fiber.Map{
		"message":   fmt.Sprintf("Successfully submitted %d orders.", len(ids)),
		"order_ids": ids,
	})
}

func (oc *OrderController) listByStatus(c *fiber.Ctx, status, sortColumn string) error {
	orders := make([]models.OrderRequest, 0)
	err := oc.DB.
		Where("order_status = ?", status).
		Order(sortColumn + " DESC").
		Find(&orders).Error
	if err != nil {
		return queryError(c, "Error reading orders", err)
	}
	return c.JSON(orders)
}

// GetPendingOrders handles GET /orders/pending.
func (oc *OrderController) GetPendingOrders(c *fiber.Ctx) error {
	return oc.listByStatus(c, models.RequestStatusPendingSend, "requested_at_utc")
}

// GetCompletedOrders handles GET /orders/completed.
func (oc *OrderController) GetCompletedOrders(c *fiber.Ctx) error {
	return oc.listByStatus(c, models.RequestStatusCompleted, "last_modified_at_utc")
}

// GetCancelledOrders handles GET /orders/cancelled.
func (oc *OrderController) GetCancelledOrders(c *fiber.Ctx) error {
	return oc.listByStatus(c, models.RequestStatusCancelled, "last_modified_at_utc")
}

type UpdateStatusRequest struct {
	NewStatus string `json:"new_status"`
}

// UpdateOrderStatus handles PUT /orders/:id/status: a Pending Send line moves
// to Completed or Cancelled. Lines in any other state are not found.
func (oc *OrderController) UpdateOrderStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid order id")
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.NewStatus != models.RequestStatusCompleted && req.NewStatus != models.RequestStatusCancelled {
		return badRequest(c, "Invalid status. Must be one of: Completed, Cancelled")
	}

	result := oc.DB.Model(&models.OrderRequest{}).
		Where("order_request_id = ? AND order_status = ?", id, models.RequestStatusPendingSend).
		Updates(map[string]interface{}{
			"order_status":         req.NewStatus,
			"last_modified_at_utc": time.Now().UTC(),
		})
	if result.Error != nil {
		return queryError(c, "Error updating order status", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound(c, fmt.Sprintf("Order %d not found in Pending Send state", id))
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Order %d updated to %s", id, req.NewStatus),
	})
}

// GetActiveOrders handles GET /active-orders: the caller's cart, oldest first.
func (oc *OrderController) GetActiveOrders(c *fiber.Ctx) error {
	email := c.Query("user_email")
	if email == "" {
		return badRequest(c, "user_email query parameter is required")
	}

	orders := make([]models.OrderRequest, 0)
	err := oc.DB.
		Where("requested_by_user_email = ? AND order_status = ?", email, models.RequestStatusActive).
		Order("requested_at_utc ASC").
		Find(&orders).Error
	if err != nil {
		return queryError(c, "Error reading active orders", err)
	}
	return c.JSON(orders)
}

// bumpActiveOrderLine applies one atomic increment to the caller's Active line
// for the cart key. Returns nil with no error when no such line exists yet.
func (oc *OrderController) bumpActiveOrderLine(line OrderLine) (*models.OrderRequest, error) {
	result := oc.DB.Model(&models.OrderRequest{}).
		Where("requested_by_user_email = ? AND mfg_part_number = ? AND requesting_branch = ? AND order_status = ?",
			line.RequestedByUserEmail, line.MfgPartNumber, line.RequestingBranch, models.RequestStatusActive).
		Updates(map[string]interface{}{
			"quantity_requested":   gorm.Expr("quantity_requested + ?", line.QuantityRequested),
			"notes":                line.Notes,
			"vendor_name":          line.VendorName,
			"last_modified_at_utc": time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	var item models.OrderRequest
	err := oc.DB.
		Where("requested_by_user_email = ? AND mfg_part_number = ? AND requesting_branch = ? AND order_status = ?",
			line.RequestedByUserEmail, line.MfgPartNumber, line.RequestingBranch, models.RequestStatusActive).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// AddActiveOrderItem handles POST /active-orders/item. Re-adding a part for
// the same branch accumulates onto the existing Active line instead of
// creating a duplicate. The sequence is bump, insert, bump again: a concurrent
// add that wins the insert makes ours fail on the partial unique index, at
// which point the line exists and the increment applies. Each step is a single
// statement, so no wrapping transaction is needed (and a retry after a unique
// violation inside one would abort on PostgreSQL).
func (oc *OrderController) AddActiveOrderItem(c *fiber.Ctx) error {
	var line OrderLine
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

	item, err := oc.bumpActiveOrderLine(line)
	if err != nil {
		return queryError(c, "Error adding active order item", err)
	}
	if item != nil {
		return c.JSON(item)
	}

	created := models.OrderRequest{
		MfgPartNumber:        line.MfgPartNumber,
		InternalPartNumber:   line.InternalPartNumber,
		ItemDescription:      line.ItemDescription,
		QuantityRequested:    line.QuantityRequested,
		VendorName:           line.VendorName,
		Notes:                line.Notes,
		RequestingBranch:     line.RequestingBranch,
		RequestedByUserEmail: line.RequestedByUserEmail,
		OrderStatus:          models.RequestStatusActive,
	}
	createErr := oc.DB.Create(&created).Error
	if createErr == nil {
		return c.JSON(created)
	}

	// Lost the insert race: retry the increment against the line the
	// concurrent add created.
	item, err = oc.bumpActiveOrderLine(line)
	if err == nil && item != nil {
		return c.JSON(item)
	}
	return queryError(c, "Error adding active order item", createErr)
}

type UpdateQuantityRequest struct {
	Quantity  int    `json:"quantity"`
	UserEmail string `json:"user_email"`
}

// UpdateActiveOrderQuantity handles PUT /active-orders/item/:id. Only the
// owning user's Active line is touched.
func (oc *OrderController) UpdateActiveOrderQuantity(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid order id")
	}

	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.UserEmail == "" {
		return badRequest(c, "user_email is required in payload")
	}
	if req.Quantity <= 0 {
		return badRequest(c, "Quantity must be a positive integer")
	}

	result := oc.DB.Model(&models.OrderRequest{}).
		Where("order_request_id = ? AND requested_by_user_email = ? AND order_status = ?",
			id, req.UserEmail, models.RequestStatusActive).
		Updates(map[string]interface{}{
			"quantity_requested":   req.Quantity,
			"last_modified_at_utc": time.Now().UTC(),
		})
	if result.Error != nil {
		return queryError(c, "Error updating active order item", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound(c, fmt.Sprintf("Active order item %d not found for user", id))
	}

	var item models.OrderRequest
	if err := oc.DB.First(&item, "order_request_id = ?", id).Error; err != nil {
		return queryError(c, "Error reading active order item", err)
	}
	return c.JSON(item)
}

// RemoveActiveOrderItem handles DELETE /active-orders/item/:id.
func (oc *OrderController) RemoveActiveOrderItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid order id")
	}
	email := c.Query("user_email")
	if email == "" {
		return badRequest(c, "user_email query parameter is required")
	}

	result := oc.DB.
		Where("order_request_id = ? AND requested_by_user_email = ? AND order_status = ?",
			id, email, models.RequestStatusActive).
		Delete(&models.OrderRequest{})
	if result.Error != nil {
		return queryError(c, "Error removing active order item", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound(c, fmt.Sprintf("Active order item %d not found for user", id))
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Active order item %d removed", id),
	})
}

// ClearActiveOrders handles DELETE /active-orders/all: empties the caller's
// cart. Clearing an already-empty cart succeeds.
func (oc *OrderController) ClearActiveOrders(c *fiber.Ctx) error {
	email := c.Query("user_email")
	if email == "" {
		return badRequest(c, "user_email query parameter is required")
	}

	result := oc.DB.
		Where("requested_by_user_email = ? AND order_status = ?", email, models.RequestStatusActive).
		Delete(&models.OrderRequest{})
	if result.Error != nil {
		return queryError(c, "Error clearing active orders", result.Error)
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Cleared %d active order items", result.RowsAffected),
	})
}

// SubmitActiveOrders handles POST /submit-active-orders: every Active line in
// the caller's cart moves to Pending Send in one transaction.
func (oc *OrderController) SubmitActiveOrders(c *fiber.Ctx) error {
	email := c.Query("user_email")
	if email == "" {
		return badRequest(c, "user_email query parameter is required")
	}

	var ids []uint
	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.OrderRequest{}).
			Where("requested_by_user_email = ? AND order_status = ?", email, models.RequestStatusActive).
			Pluck("order_request_id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "No active orders found to submit.")
		}
		return tx.Model(&models.OrderRequest{}).
			Where("order_request_id IN ?", ids).
			Updates(map[string]interface{}{
				"order_status":         models.RequestStatusPendingSend,
				"last_modified_at_utc": time.Now().UTC(),
			}).Error
	})
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return c.Status(fe.Code).JSON(fiber.Map{"error": true, "message": fe.Message})
		}
		return queryError(c, "Error submitting active orders", err)
	}

	return c.JSON(fiber.Map{
		"message":           fmt.Sprintf("Successfully submitted %d orders.", len(ids)),
		"order_request_ids": ids,
	})
}
