package models

// User is a directory entry mapping a canonical phone number to a role.
type User struct {
	BaseModel
	Phone       string `gorm:"uniqueIndex;not null" json:"phone"`
	DisplayName string `json:"display_name"`
	Role        string `gorm:"not null" json:"role"`
	Active      bool   `gorm:"not null" json:"active"`
}
