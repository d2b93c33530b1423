package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/irwhub/employee-contract-app/internal/apperr"
	"github.com/irwhub/employee-contract-app/internal/docsync"
	"github.com/irwhub/employee-contract-app/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportContracts streams every contract as an XLSX workbook. Admin
// only; staff use the spreadsheet audit log instead.
func (h *ContractHandler) ExportContracts(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	if !caller.IsAdmin() {
		respondError(c, apperr.Forbiddenf("관리자만 내보낼 수 있습니다"))
		return
	}

	var contracts []models.Contract
	if err := h.db.Order("id asc").Find(&contracts).Error; err != nil {
		respondError(c, apperr.Upstreamf("contract_export", err, "loading contracts failed"))
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	headers := []string{"ID", "작성자", "계약종류", "고객명", "연락처", "기본수임료", "요율", "위임동의", "작성일", "Drive 파일"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for rowIdx, contract := range contracts {
		fileID := ""
		if contract.DriveFileID != nil {
			fileID = *contract.DriveFileID
		}
		values := []interface{}{
			contract.ID,
			contract.EmployeeName,
			contract.ContractType,
			contract.CustomerName,
			contract.CustomerPhone,
			contract.FeeBase,
			contract.FeeRate,
			docsync.BoolToken(contract.ConsentDelegation),
			contract.CreatedAt.UTC().Format("2006-01-02"),
			fileID,
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		respondError(c, apperr.Upstreamf("contract_export", err, "building workbook failed"))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="contracts.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
