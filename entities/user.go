package entities

import "gorm.io/gorm"

// User is an account that owns rows through their user_id column.
type User struct {
	ID           string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Username     string `gorm:"unique;not null" json:"username"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	stamp(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	return nil
}
