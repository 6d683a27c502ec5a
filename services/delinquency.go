package services

import (
	"fmt"
	"time"

	"rent-server/entities"
)

type AlertCategory string

const (
	AlertUtility AlertCategory = "utility"
	AlertTenant  AlertCategory = "tenant"
)

const (
	msgLeaseExpired = "Lease expired / Overdue"
	msgLatePayment  = "Late payment detected"
)

// Alert is a dashboard notification. TargetID is set for tenant alerts and
// links to the tenant detail view.
type Alert struct {
	Key      string        `json:"key"`
	Message  string        `json:"message"`
	Category AlertCategory `json:"category"`
	TargetID string        `json:"target_id,omitempty"`
}

// Evaluate derives the dashboard alerts from the given snapshots. Utility
// alerts come first in account order, then tenant alerts in tenant order.
// Inputs are only read.
func Evaluate(tenants []entities.Tenant, accounts []entities.UtilityAccount, expenses []entities.Expense, today time.Time) []Alert {
	alerts := make([]Alert, 0)
	day := Midnight(today)

	for _, account := range accounts {
		if paid, _ := UtilityStatus(account.ID, expenses, day); paid {
			continue
		}
		alerts = append(alerts, Alert{
			Key:      "util-" + account.ID,
			Message:  fmt.Sprintf("%s payment overdue for %s", account.Type, account.AccountNumber),
			Category: AlertUtility,
		})
	}

	for _, tenant := range tenants {
		expired := LeaseExpired(tenant, day)
		late := tenant.Status == entities.TenantLatePayment
		if !expired && !late {
			continue
		}
		reason := msgLatePayment
		if expired {
			reason = msgLeaseExpired
		}
		alerts = append(alerts, Alert{
			Key:      "tenant-" + tenant.ID,
			Message:  fmt.Sprintf("%s (%s) - %s", tenant.Name, tenant.Unit, reason),
			Category: AlertTenant,
			TargetID: tenant.ID,
		})
	}

	return alerts
}

// LeaseExpired is true once today is strictly past the lease end. A lease
// end that cannot be parsed never expires.
func LeaseExpired(tenant entities.Tenant, today time.Time) bool {
	end, ok := ParseDate(tenant.LeaseEnd, today.Location())
	if !ok {
		return false
	}
	return Midnight(today).After(end)
}
