package Models

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Permission levels checked by middleware.Verify.
const (
	PermissionOperator = 1
	PermissionAdmin    = 3
)

type User struct {
	gorm.Model
	Username   string `json:"username" gorm:"size:100;not null;uniqueIndex:uk_users_username"`
	Email      string `json:"email" gorm:"size:255;not null;uniqueIndex:uk_users_email"`
	Password   []byte `json:"-" gorm:"not null"`
	Permission int    `json:"permission" gorm:"not null;default:1"`
	IsActive   bool   `json:"is_active" gorm:"not null;default:true"`
}

func (u *User) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = hashed
	return nil
}

func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword(u.Password, []byte(password)) == nil
}
