package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type line struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Points     int64  `json:"points" validate:"gt=0"`
}

type request struct {
	Lines []line `json:"distributions" validate:"required,min=1,dive"`
}

func TestStructValid(t *testing.T) {
	assert.NoError(t, Struct(request{Lines: []line{{EmployeeID: "emp_1", Points: 10}}}))
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	err := Struct(request{Lines: []line{{Points: 0}}})
	require.Error(t, err)

	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "is required", verrs["distributions[0].employee_id"])
	assert.Equal(t, "must be greater than 0", verrs["distributions[0].points"])
}

func TestStructEmptySlice(t *testing.T) {
	err := Struct(request{Lines: []line{}})
	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "distributions")
}
