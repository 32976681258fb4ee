package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// User is the locally cached copy of the server's user record, refreshed on
// every successful login. Role resolution prefers this record over token
// claims when both are present.
type User struct {
	UserID      string `gorm:"primaryKey" json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
}

// UserRepository defines decoupled operations for the cached user record.
type UserRepository interface {
	Get(ctx context.Context) (*User, error)
	Upsert(ctx context.Context, user *User) error
	Clear(ctx context.Context) error
}

// gormUserRepo is a GORM-backed implementation of UserRepository.
// Use constructor NewUserRepository to obtain an instance.
type gormUserRepo struct{ db *gorm.DB }

// NewUserRepository creates a UserRepository. Accepts *gorm.DB to avoid global access.
func NewUserRepository(db *gorm.DB) UserRepository { return &gormUserRepo{db: db} }

func (r *gormUserRepo) Get(ctx context.Context) (*User, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var user User
	err := r.db.WithContext(ctx).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormUserRepo) Upsert(ctx context.Context, user *User) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	// One cached record at a time; a different user logging in replaces it.
	if err := r.Clear(ctx); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(user).Error
}

func (r *gormUserRepo) Clear(ctx context.Context) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&User{}).Error
}
