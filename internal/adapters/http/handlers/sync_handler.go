package handlers

import (
	"siri-memberfund/internal/core/services"
	"siri-memberfund/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SyncHandler handles ledger replication endpoints
type SyncHandler struct {
	syncService *services.SyncService
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(syncService *services.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// Status reports the local and remote snapshot versions
func (h *SyncHandler) Status(c *fiber.Ctx) error {
	status, err := h.syncService.Status(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to read sync status")
	}

	return response.Success(c, "Sync status retrieved successfully", status)
}

// Push force-publishes the local ledger as the shared snapshot
// (admin only)
func (h *SyncHandler) Push(c *fiber.Ctx) error {
	if err := h.syncService.Push(c.Context()); err != nil {
		return response.InternalServerError(c, "Failed to publish snapshot")
	}

	return response.Success(c, "Snapshot published successfully", nil)
}

// Pull adopts the shared snapshot if it is newer than local state
// (admin only)
func (h *SyncHandler) Pull(c *fiber.Ctx) error {
	if err := h.syncService.Pull(c.Context()); err != nil {
		return response.InternalServerError(c, "Failed to adopt snapshot")
	}

	return response.Success(c, "Snapshot adopted if newer", nil)
}
