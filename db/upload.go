package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Upload records one image uploaded from this machine, so the history is
// browsable without a network round trip and identical files are not sent twice.
type Upload struct {
	ID         uint    `gorm:"primaryKey"`
	RemoteID   string  `gorm:"index"`
	FilePath   string
	SHA256     string `gorm:"index"`
	Latitude   float64
	Longitude  float64
	Address    string
	Status     string
	UploadedAt time.Time
}

// UploadRepository defines decoupled operations for the local upload history.
type UploadRepository interface {
	Add(ctx context.Context, u *Upload) error
	List(ctx context.Context) ([]Upload, error)
	GetByHash(ctx context.Context, sha256 string) (*Upload, error)
	DeleteByRemoteID(ctx context.Context, remoteID string) error
	Clear(ctx context.Context) error
}

// gormUploadRepo is a GORM-backed implementation of UploadRepository.
// Use constructor NewUploadRepository to obtain an instance.
type gormUploadRepo struct{ db *gorm.DB }

// NewUploadRepository creates an UploadRepository. Accepts *gorm.DB to avoid global access.
func NewUploadRepository(db *gorm.DB) UploadRepository { return &gormUploadRepo{db: db} }

func (r *gormUploadRepo) Add(ctx context.Context, u *Upload) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *gormUploadRepo) List(ctx context.Context) ([]Upload, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var uploads []Upload
	if err := r.db.WithContext(ctx).Order("uploaded_at desc").Find(&uploads).Error; err != nil {
		return nil, err
	}
	return uploads, nil
}

func (r *gormUploadRepo) GetByHash(ctx context.Context, sha256 string) (*Upload, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var upload Upload
	err := r.db.WithContext(ctx).First(&upload, "sha256 = ?", sha256).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &upload, nil
}

func (r *gormUploadRepo) DeleteByRemoteID(ctx context.Context, remoteID string) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Delete(&Upload{}, "remote_id = ?", remoteID).Error
}

func (r *gormUploadRepo) Clear(ctx context.Context) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Upload{}).Error
}
