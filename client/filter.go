package client

import "strings"

// Tenant list filter values. "active" means network access is on,
// "blocked" means the account is blocked, and "inactive" covers
// everyone else.
const (
	FilterAll      = "all"
	FilterActive   = "active"
	FilterBlocked  = "blocked"
	FilterInactive = "inactive"
)

// FilterTenants narrows a tenant list by a case-insensitive search over
// name, room number, phone and email, then by status. Both parameters
// are optional; an empty query with FilterAll returns the input slice
// unchanged.
func FilterTenants(tenants []Tenant, query, status string) []Tenant {
	if query == "" && (status == "" || status == FilterAll) {
		return tenants
	}

	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]Tenant, 0, len(tenants))
	for _, t := range tenants {
		if query != "" && !matchesTenant(t, query) {
			continue
		}
		if !matchesStatus(t, status) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesTenant(t Tenant, query string) bool {
	for _, f := range []string{t.Name, t.RoomNumber, t.Phone, t.Email} {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

func matchesStatus(t Tenant, status string) bool {
	switch status {
	case FilterActive:
		return t.WifiAccess
	case FilterBlocked:
		return t.Status == "blocked"
	case FilterInactive:
		return !t.WifiAccess && t.Status != "blocked"
	default:
		return true
	}
}

// FilterPayments narrows a payment list by a case-insensitive search
// over the tenant's name and room and the payment type, then by review
// status.
func FilterPayments(payments []Payment, query, status string) []Payment {
	if query == "" && (status == "" || status == FilterAll) {
		return payments
	}

	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]Payment, 0, len(payments))
	for _, p := range payments {
		if query != "" && !matchesPayment(p, query) {
			continue
		}
		if status != "" && status != FilterAll && p.Status != status {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesPayment(p Payment, query string) bool {
	if strings.Contains(strings.ToLower(p.Type), query) {
		return true
	}
	if p.Tenant == nil {
		return false
	}
	return strings.Contains(strings.ToLower(p.Tenant.Name), query) ||
		strings.Contains(strings.ToLower(p.Tenant.RoomNumber), query)
}
