package repositories

import (
	"rent-server/db"
	"rent-server/entities"
)

type tenantPgRepository struct {
	pgTable[entities.Tenant, *entities.Tenant]
}

func NewTenantPgRepository(database db.Database) TenantRepository {
	return &tenantPgRepository{pgTable[entities.Tenant, *entities.Tenant]{
		db:    database,
		kind:  "tenant",
		order: "created_at DESC",
	}}
}
