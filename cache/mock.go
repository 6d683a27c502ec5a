package cache

import (
	"github.com/shopspring/decimal"

	"rent-server/entities"
)

// Seed is the data set every caller sees when no database is configured.
type Seed struct {
	Properties      []entities.Property
	Rooms           []entities.Room
	Tenants         []entities.Tenant
	Expenses        []entities.Expense
	UtilityAccounts []entities.UtilityAccount
	Activities      []entities.Activity
}

func MockData() Seed {
	return Seed{
		Properties: []entities.Property{
			{ID: "p1", Name: "The Aviary", Address: "123 Skyline Boulevard, Downtown Metro"},
			{ID: "p2", Name: "Greenwood Heights", Address: "45 Forest Lane, North District"},
		},
		Rooms: []entities.Room{
			{ID: "r1", PropertyID: "p1", Number: "4B"},
			{ID: "r2", PropertyID: "p1", Number: "10C"},
			{ID: "r3", PropertyID: "p1", Number: "12A"},
			{ID: "r4", PropertyID: "p2", Number: "2A"},
			{ID: "r5", PropertyID: "p2", Number: "1A"},
		},
		Tenants: []entities.Tenant{
			{
				ID:         "1",
				Name:       "Sarah Jenkins",
				Unit:       "4B",
				Property:   "The Aviary",
				LeaseStart: "Oct 24, 2023",
				LeaseEnd:   "Oct 24, 2024",
				Status:     entities.TenantMovingOut,
				Rent:       decimal.RequireFromString("2450.00"),
				Deposit:    decimal.RequireFromString("2450.00"),
				Notes:      "Tenant has a cat named Luna. Security deposit paid via wire transfer on Oct 25th.",
				Photos:     []string{"https://images.unsplash.com/photo-1522708323590-d24dbb6b0267?auto=format&fit=crop&q=80&w=400"},
				IDPhoto:    "https://images.unsplash.com/photo-1554126807-6b10f6f6692a?auto=format&fit=crop&q=80&w=400",
			},
		},
		Expenses: []entities.Expense{
			{
				ID:       "e1",
				Title:    "Unit 4B AC Repair",
				Amount:   decimal.NewFromInt(250),
				Date:     "2024-03-15",
				Category: entities.CategoryMaintenance,
				Type:     entities.EntryExpense,
				Photos:   []string{"https://images.unsplash.com/photo-1581094288338-2314dddb7bc3?auto=format&fit=crop&q=80&w=200"},
			},
			{
				ID:         "e2",
				Title:      "Monthly Cleaning - The Aviary",
				Amount:     decimal.NewFromInt(120),
				Date:       "2024-03-10",
				Category:   entities.CategoryCleaning,
				Type:       entities.EntryExpense,
				PropertyID: "p1",
				Photos:     []string{"https://images.unsplash.com/photo-1581578731548-c64695cc6952?auto=format&fit=crop&q=80&w=200"},
			},
		},
		UtilityAccounts: []entities.UtilityAccount{
			{ID: "u1", Type: entities.UtilityElectricity, AccountNumber: "ELE-9920112", Provider: "Metro Power Grid", PropertyID: "p1"},
			{ID: "u2", Type: entities.UtilityWater, AccountNumber: "WTR-445882", Provider: "City Water Works", PropertyID: "p1"},
		},
		Activities: []entities.Activity{
			{ID: "a1", Type: entities.ActivityPayment, Title: "Rent Received", Details: "Unit 4B - Sarah Jenkins", Amount: "+$1,250", Timestamp: "2h ago"},
		},
	}
}
