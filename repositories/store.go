package repositories

import "rent-server/db"

// NewPgStore builds a Store backed by the given database.
func NewPgStore(database db.Database) *Store {
	return &Store{
		Tenants:         NewTenantPgRepository(database),
		Properties:      NewPropertyPgRepository(database),
		Rooms:           NewRoomPgRepository(database),
		Expenses:        NewExpensePgRepository(database),
		UtilityAccounts: NewUtilityAccountPgRepository(database),
		Activities:      NewActivityPgRepository(database),
		Profiles:        NewProfilePgRepository(database),
		Users:           NewUserPgRepository(database),
		stats: func() map[string]interface{} {
			sqlDB, err := database.GetDB().DB()
			if err != nil {
				return map[string]interface{}{"error": err.Error()}
			}
			st := sqlDB.Stats()
			return map[string]interface{}{
				"open_connections": st.OpenConnections,
				"in_use":           st.InUse,
				"idle":             st.Idle,
				"wait_count":       st.WaitCount,
			}
		},
	}
}
