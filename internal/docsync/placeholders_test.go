package docsync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/irwhub/employee-contract-app/models"
)

func TestBoolToken(t *testing.T) {
	assert.Equal(t, "동의함", BoolToken(true))
	assert.Equal(t, "동의하지 않음", BoolToken(false))
}

func TestBuildPlaceholderMap(t *testing.T) {
	summary := "후방 추돌"
	contract := &models.Contract{
		EmployeeName:        "김직원",
		CustomerName:        "홍길동",
		CustomerBirth:       "1980-01-01",
		CustomerPhone:       "010-1234-5678",
		CustomerAddress:     "서울시 강남구",
		ContractType:        models.ContractTypeTraffic,
		AccidentDate:        "2024-02-20",
		AccidentPlace:       "올림픽대로",
		AccidentSummary:     &summary,
		DelegateClaimFiling: true,
		FeeBase:             300000,
		FeeRate:             10.5,
		ConsentPersonalInfo: true,
	}
	now := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

	m := BuildPlaceholderMap(contract, now)

	assert.Equal(t, "김직원", m["employee_name"])
	assert.Equal(t, "홍길동", m["customer_name"])
	assert.Equal(t, "후방 추돌", m["accident_summary"])
	assert.Equal(t, "동의함", m["delegate_claim_filing"])
	assert.Equal(t, "동의하지 않음", m["delegate_settlement"])
	assert.Equal(t, "300000", m["fee_base"])
	assert.Equal(t, "10.5", m["fee_rate"])
	assert.Equal(t, "동의함", m["consent_personal_info"])
	assert.Equal(t, "동의하지 않음", m["consent_delegation"])
	assert.Equal(t, "2024-03-15", m["now_date"])
}

func TestBuildPlaceholderMapNilFieldsAreEmpty(t *testing.T) {
	m := BuildPlaceholderMap(&models.Contract{}, time.Now())

	assert.Equal(t, "", m["accident_summary"])
	assert.Equal(t, "", m["delegate_other"])
	assert.Equal(t, "", m["terms"])
	assert.Equal(t, "0", m["fee_base"])
}
