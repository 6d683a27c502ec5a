package repositories

import (
	"rent-server/db"
	"rent-server/entities"
)

type expensePgRepository struct {
	pgTable[entities.Expense, *entities.Expense]
}

func NewExpensePgRepository(database db.Database) ExpenseRepository {
	return &expensePgRepository{pgTable[entities.Expense, *entities.Expense]{
		db:    database,
		kind:  "expense",
		order: "date DESC, created_at DESC",
	}}
}
