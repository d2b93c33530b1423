package models

import (
	"time"

	"gorm.io/gorm"
)

// Recognized contract types. Anything else is treated as a free-text
// type and falls back to whichever document template is configured.
const (
	ContractTypeTraffic   = "교통사고"
	ContractTypeLiability = "배상책임"
	ContractTypeCombined  = "교통사고+배상책임"
)

// Contract is the insurance-claim delegation contract authored by an
// employee. CreatedBy is set once at creation and determines ownership
// for every later access check; it is never updated.
type Contract struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CreatedBy    uint   `gorm:"column:created_by;index" json:"createdBy"`
	EmployeeName string `gorm:"column:employee_name" json:"employeeName"`
	ContractType string `gorm:"column:contract_type" json:"contractType"`

	CustomerName    string `gorm:"column:customer_name" json:"customerName"`
	CustomerBirth   string `gorm:"column:customer_birth" json:"customerBirth"`
	CustomerPhone   string `gorm:"column:customer_phone" json:"customerPhone"`
	CustomerAddress string `gorm:"column:customer_address" json:"customerAddress"`

	AccidentDate    string  `gorm:"column:accident_date" json:"accidentDate"`
	AccidentPlace   string  `gorm:"column:accident_place" json:"accidentPlace"`
	AccidentSummary *string `gorm:"column:accident_summary" json:"accidentSummary,omitempty"`

	DelegateClaimFiling    bool    `gorm:"column:delegate_claim_filing" json:"delegateClaimFiling"`
	DelegateDocIssue       bool    `gorm:"column:delegate_doc_issue" json:"delegateDocIssue"`
	DelegateInsurerContact bool    `gorm:"column:delegate_insurer_contact" json:"delegateInsurerContact"`
	DelegateSettlement     bool    `gorm:"column:delegate_settlement" json:"delegateSettlement"`
	DelegateOther          *string `gorm:"column:delegate_other" json:"delegateOther,omitempty"`

	FeeBase int     `gorm:"column:fee_base" json:"feeBase"`
	FeeRate float64 `gorm:"column:fee_rate" json:"feeRate"`

	Terms *string `gorm:"column:terms" json:"terms,omitempty"`

	ConsentPersonalInfo bool `gorm:"column:consent_personal_info" json:"consentPersonalInfo"`
	ConsentDelegation   bool `gorm:"column:consent_delegation" json:"consentDelegation"`

	// SignatureImage is an opaque reference captured by the UI.
	SignatureImage *string `gorm:"column:signature_image" json:"signatureImage,omitempty"`

	// Post-sync bookkeeping, written back by the pipeline.
	DriveFileID *string `gorm:"column:drive_file_id" json:"driveFileId,omitempty"`
	SheetRow    *int64  `gorm:"column:sheet_row" json:"sheetRow,omitempty"`
}

func (Contract) TableName() string { return "contracts" }
