package models

// Admin is a back-office account. There is no self-service registration;
// the only account is created by the seed initializer.
type Admin struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
}

func (Admin) TableName() string { return "admin" }
