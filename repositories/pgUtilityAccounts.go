package repositories

import (
	"rent-server/db"
	"rent-server/entities"
)

type utilityAccountPgRepository struct {
	pgTable[entities.UtilityAccount, *entities.UtilityAccount]
}

func NewUtilityAccountPgRepository(database db.Database) UtilityAccountRepository {
	return &utilityAccountPgRepository{pgTable[entities.UtilityAccount, *entities.UtilityAccount]{
		db:    database,
		kind:  "utility_account",
		order: "created_at DESC",
	}}
}
