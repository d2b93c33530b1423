package handlers

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/irwhub/employee-contract-app/internal/middleware"
	"github.com/irwhub/employee-contract-app/models"
)

func TestExportContractsIsAdminOnly(t *testing.T) {
	r, db := newContractTestRouter(t, staffEmp)
	r.GET("/contracts/export", NewContractHandler(db).ExportContracts)

	w := doJSON(r, http.MethodGet, "/contracts/export", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestExportContractsWorkbook(t *testing.T) {
	_, db := newContractTestRouter(t, staffEmp)
	fileID := "file-7"
	require.NoError(t, db.Create(&models.Contract{
		CreatedBy:         1,
		EmployeeName:      "김직원",
		ContractType:      models.ContractTypeTraffic,
		CustomerName:      "홍길동",
		ConsentDelegation: true,
		DriveFileID:       &fileID,
	}).Error)

	r := gin.New()
	r.Use(asEmployee(middleware.CachedEmployee{ID: 2, Name: "관리자", Role: models.RoleAdmin}))
	r.GET("/contracts/export", NewContractHandler(db).ExportContracts)

	w := doJSON(r, http.MethodGet, "/contracts/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))

	wb, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "고객명", rows[0][3])
	assert.Equal(t, "홍길동", rows[1][3])
	assert.Equal(t, "동의함", rows[1][7])
	assert.Equal(t, "file-7", rows[1][9])
}
