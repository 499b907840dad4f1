package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEmployee(t *testing.T) {
	store := setupTestDB(t)

	employee, err := store.CreateEmployee("Anna Ivanova")
	require.NoError(t, err)
	assert.Greater(t, employee.ID, int64(0))
	assert.Equal(t, "Anna Ivanova", employee.Name)

	got, err := store.GetEmployee(employee.ID)
	require.NoError(t, err)
	assert.Equal(t, employee.Name, got.Name)
}

func TestDuplicateEmployeeNamesAllowed(t *testing.T) {
	store := setupTestDB(t)

	a, err := store.CreateEmployee("Anna Ivanova")
	require.NoError(t, err)
	b, err := store.CreateEmployee("Anna Ivanova")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	ids, err := store.EmployeeIDs()
	require.NoError(t, err)
	assert.Equal(t, []int64{a.ID, b.ID}, ids)
}

func TestListEmployees(t *testing.T) {
	store := setupTestDB(t)

	employees, err := store.ListEmployees()
	require.NoError(t, err)
	assert.Empty(t, employees)

	_, err = store.CreateEmployee("Anna Ivanova")
	require.NoError(t, err)
	_, err = store.CreateEmployee("Boris Petrov")
	require.NoError(t, err)

	employees, err = store.ListEmployees()
	require.NoError(t, err)
	require.Len(t, employees, 2)
	assert.Equal(t, "Anna Ivanova", employees[0].Name)
	assert.Equal(t, "Boris Petrov", employees[1].Name)
}
