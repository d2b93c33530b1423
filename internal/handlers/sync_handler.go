package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/irwhub/employee-contract-app/internal/docsync"
)

type SyncHandler struct {
	syncer *docsync.Syncer
}

func NewSyncHandler(syncer *docsync.Syncer) *SyncHandler {
	return &SyncHandler{syncer: syncer}
}

// SyncContract runs the full document pipeline for one contract:
// template copy, placeholder substitution, PDF export/merge, upload and
// the audit-row/record bookkeeping.
func (h *SyncHandler) SyncContract(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input struct {
		ContractID uint `json:"contract_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "contract_id is required"})
		return
	}

	result, err := h.syncer.Sync(c.Request.Context(), caller, input.ContractID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// DownloadContractPDF streams the most recently synced PDF.
func (h *SyncHandler) DownloadContractPDF(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	id, err := idParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	fileName, data, err := h.syncer.DownloadPDF(c.Request.Context(), caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	c.Data(http.StatusOK, "application/pdf", data)
}
