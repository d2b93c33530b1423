package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/irwhub/employee-contract-app/internal/apperr"
	"github.com/irwhub/employee-contract-app/models"
)

type ContractHandler struct {
	db *gorm.DB
}

func NewContractHandler(db *gorm.DB) *ContractHandler {
	return &ContractHandler{db: db}
}

// ContractInput carries every employee-editable contract field.
// CreatedBy is deliberately absent: it is set once from the caller at
// creation and never touched again.
type ContractInput struct {
	EmployeeName string `json:"employeeName"`
	ContractType string `json:"contractType" binding:"required"`

	CustomerName    string `json:"customerName" binding:"required"`
	CustomerBirth   string `json:"customerBirth"`
	CustomerPhone   string `json:"customerPhone"`
	CustomerAddress string `json:"customerAddress"`

	AccidentDate    string  `json:"accidentDate"`
	AccidentPlace   string  `json:"accidentPlace"`
	AccidentSummary *string `json:"accidentSummary"`

	DelegateClaimFiling    bool    `json:"delegateClaimFiling"`
	DelegateDocIssue       bool    `json:"delegateDocIssue"`
	DelegateInsurerContact bool    `json:"delegateInsurerContact"`
	DelegateSettlement     bool    `json:"delegateSettlement"`
	DelegateOther          *string `json:"delegateOther"`

	FeeBase int     `json:"feeBase"`
	FeeRate float64 `json:"feeRate"`

	Terms *string `json:"terms"`

	ConsentPersonalInfo bool `json:"consentPersonalInfo"`
	ConsentDelegation   bool `json:"consentDelegation"`

	SignatureImage *string `json:"signatureImage"`
}

func (in *ContractInput) apply(contract *models.Contract) {
	contract.EmployeeName = in.EmployeeName
	contract.ContractType = in.ContractType
	contract.CustomerName = in.CustomerName
	contract.CustomerBirth = in.CustomerBirth
	contract.CustomerPhone = in.CustomerPhone
	contract.CustomerAddress = in.CustomerAddress
	contract.AccidentDate = in.AccidentDate
	contract.AccidentPlace = in.AccidentPlace
	contract.AccidentSummary = in.AccidentSummary
	contract.DelegateClaimFiling = in.DelegateClaimFiling
	contract.DelegateDocIssue = in.DelegateDocIssue
	contract.DelegateInsurerContact = in.DelegateInsurerContact
	contract.DelegateSettlement = in.DelegateSettlement
	contract.DelegateOther = in.DelegateOther
	contract.FeeBase = in.FeeBase
	contract.FeeRate = in.FeeRate
	contract.Terms = in.Terms
	contract.ConsentPersonalInfo = in.ConsentPersonalInfo
	contract.ConsentDelegation = in.ConsentDelegation
	contract.SignatureImage = in.SignatureImage
}

// CreateContract persists a new contract owned by the caller.
func (h *ContractHandler) CreateContract(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input ContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contract data: " + err.Error()})
		return
	}
	if input.EmployeeName == "" {
		input.EmployeeName = caller.Name
	}

	var contract models.Contract
	input.apply(&contract)
	contract.CreatedBy = caller.ID

	if err := h.db.Create(&contract).Error; err != nil {
		respondError(c, apperr.Upstreamf("contract_create", err, "saving contract failed"))
		return
	}
	c.JSON(http.StatusCreated, contract)
}

// ListContracts returns the caller's contracts, or every contract for
// admins, newest first.
func (h *ContractHandler) ListContracts(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	query := h.db.Model(&models.Contract{})
	if !caller.IsAdmin() {
		query = query.Where("created_by = ?", caller.ID)
	}

	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(customer_name) LIKE ? OR LOWER(customer_phone) LIKE ?", pattern, pattern)
	}

	var totalRows int64
	if err := query.Count(&totalRows).Error; err != nil {
		respondError(c, apperr.Upstreamf("contract_list", err, "counting contracts failed"))
		return
	}

	var contracts []models.Contract
	if err := query.Scopes(Paginate(c)).Order("id desc").Find(&contracts).Error; err != nil {
		respondError(c, apperr.Upstreamf("contract_list", err, "loading contracts failed"))
		return
	}
	if contracts == nil {
		contracts = make([]models.Contract, 0)
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, contracts, totalRows))
}

func (h *ContractHandler) GetContract(c *gin.Context) {
	contract, err := h.loadAuthorized(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

// UpdateContract overwrites the editable fields. Ownership never moves.
func (h *ContractHandler) UpdateContract(c *gin.Context) {
	contract, err := h.loadAuthorized(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var input ContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contract data: " + err.Error()})
		return
	}

	input.apply(contract)
	if err := h.db.Save(contract).Error; err != nil {
		respondError(c, apperr.Upstreamf("contract_update", err, "saving contract failed"))
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *ContractHandler) DeleteContract(c *gin.Context) {
	contract, err := h.loadAuthorized(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.db.Delete(contract).Error; err != nil {
		respondError(c, apperr.Upstreamf("contract_delete", err, "deleting contract failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "계약이 삭제되었습니다"})
}

// loadAuthorized fetches the :id contract and enforces owner-or-admin.
func (h *ContractHandler) loadAuthorized(c *gin.Context) (*models.Contract, error) {
	caller, ok := currentCaller(c)
	if !ok {
		return nil, apperr.Authenticationf("not authenticated")
	}
	id, err := idParam(c)
	if err != nil {
		return nil, err
	}

	var contract models.Contract
	if err := h.db.First(&contract, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("계약을 찾을 수 없습니다")
		}
		return nil, apperr.Upstreamf("contract_load", err, "contract lookup failed")
	}
	if contract.CreatedBy != caller.ID && caller.Role != models.RoleAdmin {
		return nil, apperr.Forbiddenf("본인이 작성한 계약만 접근할 수 있습니다")
	}
	return &contract, nil
}
