package docsync

import (
	"strconv"
	"time"

	"github.com/irwhub/employee-contract-app/models"
)

// The only two tokens boolean contract fields ever render as in a
// generated document. Never "true"/"false" literals.
const (
	TokenAgreed    = "동의함"
	TokenNotAgreed = "동의하지 않음"
)

// BoolToken renders a boolean contract field for documents and reports.
func BoolToken(v bool) string {
	if v {
		return TokenAgreed
	}
	return TokenNotAgreed
}

// BuildPlaceholderMap derives the substitution map for one contract
// snapshot. The key set is fixed; a contract field outside it is not
// substitutable. The function is total: nil fields become empty strings
// and nothing here can fail.
func BuildPlaceholderMap(contract *models.Contract, now time.Time) map[string]string {
	return map[string]string{
		"employee_name":    contract.EmployeeName,
		"customer_name":    contract.CustomerName,
		"customer_birth":   contract.CustomerBirth,
		"customer_phone":   contract.CustomerPhone,
		"customer_address": contract.CustomerAddress,
		"contract_type":    contract.ContractType,
		"accident_date":    contract.AccidentDate,
		"accident_place":   contract.AccidentPlace,
		"accident_summary": strOrEmpty(contract.AccidentSummary),

		"delegate_claim_filing":    BoolToken(contract.DelegateClaimFiling),
		"delegate_doc_issue":       BoolToken(contract.DelegateDocIssue),
		"delegate_insurer_contact": BoolToken(contract.DelegateInsurerContact),
		"delegate_settlement":      BoolToken(contract.DelegateSettlement),
		"delegate_other":           strOrEmpty(contract.DelegateOther),

		"fee_base": strconv.Itoa(contract.FeeBase),
		"fee_rate": strconv.FormatFloat(contract.FeeRate, 'f', -1, 64),
		"terms":    strOrEmpty(contract.Terms),

		"consent_personal_info": BoolToken(contract.ConsentPersonalInfo),
		"consent_delegation":    BoolToken(contract.ConsentDelegation),

		"now_date": now.UTC().Format("2006-01-02"),
	}
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
