package models

import (
	"avalia/tools"
	"time"
)

/************************************************
/**** MARK: USER ROLES ****/
/************************************************/
const USER_ROLE_FILLER = "FILLER"
const USER_ROLE_REVIEWER = "REVIEWER"

/************************************************
/**** MARK: USER STATUS ****/
/************************************************/
const USER_STATUS_AVAILABLE = 0
const USER_STATUS_PENDING = 1
const USER_STATUS_BLOCKED = 2

// User representa um usuario no sistema.
// O revisor também é quem monta a árvore de seções/perguntas (builder).
type User struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name      string     `gorm:"not null" json:"name" form:"name"`
	Email     string     `gorm:"not null;unique" json:"email" form:"email"`
	Password  string     `gorm:"not null" json:"password" form:"password"`
	Role      string     `gorm:"not null;default:'FILLER'" json:"role" form:"role"`
	Status    int        `gorm:"default:0" json:"status" form:"status"`
	Company   string     `gorm:"default:''" json:"company" form:"company"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

func (user User) MissingFields() string {
	if user.Name == "" {
		return "name"
	} else if user.Email == "" {
		return "email"
	} else if user.Password == "" {
		return "password"
	} else if tools.CheckPassword(user.Password) != "" {
		return tools.CheckPassword(user.Password)
	}
	return ""
}

func (user User) IsReviewer() bool {
	return user.Role == USER_ROLE_REVIEWER
}
