package repositories

import (
	"rent-server/db"
	"rent-server/entities"
)

type activityPgRepository struct {
	pgTable[entities.Activity, *entities.Activity]
}

func NewActivityPgRepository(database db.Database) ActivityRepository {
	return &activityPgRepository{pgTable[entities.Activity, *entities.Activity]{
		db:    database,
		kind:  "activity",
		order: "created_at DESC",
		limit: ActivityFeedLimit,
	}}
}
