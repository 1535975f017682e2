package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTenants() []Tenant {
	return []Tenant{
		{ID: "1", Name: "Thabo Nkosi", RoomNumber: "A12", Phone: "0821234567", Email: "thabo@example.com", Status: "active", WifiAccess: true},
		{ID: "2", Name: "Lerato Dlamini", RoomNumber: "B3", Phone: "0731112222", Status: "blocked", WifiAccess: false},
		{ID: "3", Name: "Sipho Mokoena", RoomNumber: "A7", Phone: "0609998888", Email: "sipho@example.com", Status: "inactive", WifiAccess: false},
		{ID: "4", Name: "Anele Khumalo", RoomNumber: "C1", Phone: "0825556666", Status: "active", WifiAccess: false},
	}
}

func TestFilterTenantsNoFilterReturnsInput(t *testing.T) {
	tenants := sampleTenants()
	assert.Equal(t, tenants, FilterTenants(tenants, "", ""))
	assert.Equal(t, tenants, FilterTenants(tenants, "", FilterAll))
}

func TestFilterTenantsSearchIsCaseInsensitive(t *testing.T) {
	tenants := sampleTenants()

	byName := FilterTenants(tenants, "THABO", FilterAll)
	assert.Len(t, byName, 1)
	assert.Equal(t, "1", byName[0].ID)

	byRoom := FilterTenants(tenants, "a7", FilterAll)
	assert.Len(t, byRoom, 1)
	assert.Equal(t, "3", byRoom[0].ID)

	byPhone := FilterTenants(tenants, "073", FilterAll)
	assert.Len(t, byPhone, 1)
	assert.Equal(t, "2", byPhone[0].ID)

	byEmail := FilterTenants(tenants, "sipho@", FilterAll)
	assert.Len(t, byEmail, 1)
	assert.Equal(t, "3", byEmail[0].ID)
}

func TestFilterTenantsStatusPartition(t *testing.T) {
	tenants := sampleTenants()

	active := FilterTenants(tenants, "", FilterActive)
	blocked := FilterTenants(tenants, "", FilterBlocked)
	inactive := FilterTenants(tenants, "", FilterInactive)

	// Every tenant lands in exactly one bucket.
	assert.Len(t, active, 1)
	assert.Len(t, blocked, 1)
	assert.Len(t, inactive, 2)
	assert.Equal(t, len(tenants), len(active)+len(blocked)+len(inactive))

	assert.Equal(t, "1", active[0].ID)
	assert.Equal(t, "2", blocked[0].ID)
}

func TestFilterTenantsIsIdempotent(t *testing.T) {
	tenants := sampleTenants()

	once := FilterTenants(tenants, "a", FilterInactive)
	twice := FilterTenants(once, "a", FilterInactive)
	assert.Equal(t, once, twice)
}

func TestFilterTenantsCombinesSearchAndStatus(t *testing.T) {
	tenants := sampleTenants()

	got := FilterTenants(tenants, "anele", FilterActive)
	assert.Empty(t, got) // Anele's wifi is off, so "active" excludes them

	got = FilterTenants(tenants, "anele", FilterInactive)
	assert.Len(t, got, 1)
	assert.Equal(t, "4", got[0].ID)
}

func TestFilterPayments(t *testing.T) {
	payments := []Payment{
		{ID: "p1", Status: "pending", Type: "POP", Tenant: &PaymentTenant{Name: "Thabo Nkosi", RoomNumber: "A12"}},
		{ID: "p2", Status: "approved", Type: "POP", Tenant: &PaymentTenant{Name: "Lerato Dlamini", RoomNumber: "B3"}},
		{ID: "p3", Status: "pending", Type: "cash"},
	}

	assert.Equal(t, payments, FilterPayments(payments, "", FilterAll))
	assert.Equal(t, payments, FilterPayments(payments, "", ""))

	pending := FilterPayments(payments, "", "pending")
	assert.Len(t, pending, 2)

	assert.Empty(t, FilterPayments(payments, "", "rejected"))

	byName := FilterPayments(payments, "LERATO", FilterAll)
	require.Len(t, byName, 1)
	assert.Equal(t, "p2", byName[0].ID)

	byRoom := FilterPayments(payments, "a12", "pending")
	require.Len(t, byRoom, 1)
	assert.Equal(t, "p1", byRoom[0].ID)

	// The payment type is searchable even without tenant details.
	byType := FilterPayments(payments, "cash", FilterAll)
	require.Len(t, byType, 1)
	assert.Equal(t, "p3", byType[0].ID)

	byType = FilterPayments(payments, "pop", FilterAll)
	assert.Len(t, byType, 2)

	assert.Empty(t, FilterPayments(payments, "a12", "approved"))
}
