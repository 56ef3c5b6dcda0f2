package main

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/pkg/tckn"
)

func TestDemoData_Gecerli(t *testing.T) {
	var data demoData
	require.NoError(t, json.Unmarshal(demoJSON, &data))

	assert.NoError(t, tckn.ValidateVKN(data.Company.TaxNumber))
	for _, m := range data.Modules {
		assert.True(t, entity.IsValidModule(m), m)
	}

	deptIDs := map[string]string{}
	for _, d := range data.Departments {
		deptIDs[d.Code] = "d-" + d.Code
	}

	now := time.Now()
	seen := map[string]bool{}
	for _, d := range data.Employees {
		e, err := toEmployee(d, "c-1", deptIDs, now)
		require.NoError(t, err, d.Number)
		assert.False(t, seen[e.NationalID], "tekrarlanan TCKN %s", e.NationalID)
		seen[e.NationalID] = true
		assert.NotNil(t, e.DepartmentID, "%s departmanı bulunamadı", d.Number)
		assert.True(t, e.Salary.IsPositive())
		if e.IBAN != "" {
			assert.NoError(t, tckn.ValidateIBAN(e.IBAN), d.Number)
		}
	}
}

func TestToEmployee_Hatalar(t *testing.T) {
	base := demoEmployee{
		Number: "P9", FirstName: "Ali", LastName: "Veli", NationalID: "12345678028",
		HireDate: "2024-01-02", Salary: "30000", EmploymentType: entity.EmploymentIntern,
	}

	e, err := toEmployee(base, "c-1", nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, entity.EmploymentIntern, e.EmploymentType)
	assert.Nil(t, e.DepartmentID)

	bad := base
	bad.NationalID = "12345678029"
	_, err = toEmployee(bad, "c-1", nil, time.Now())
	assert.Error(t, err)

	bad = base
	bad.HireDate = "02.01.2024"
	_, err = toEmployee(bad, "c-1", nil, time.Now())
	assert.Error(t, err)

	bad = base
	bad.Salary = "otuz bin"
	_, err = toEmployee(bad, "c-1", nil, time.Now())
	assert.Error(t, err)
}
