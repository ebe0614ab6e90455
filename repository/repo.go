package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"voice-memos/entities"
)

var ErrRecordingNotFound = errors.New("recording not found")

// RecordingRepository is the persistence contract for recordings. Create
// assigns the id and creation timestamp; List returns all rows newest
// first; Delete reports whether a row was actually removed.
type RecordingRepository interface {
	Create(ctx context.Context, recording *entities.Recording) error
	GetByID(ctx context.Context, id int64) (*entities.Recording, error)
	List(ctx context.Context) ([]entities.Recording, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) (RecordingRepository, error) {
	if err := db.AutoMigrate(&entities.Recording{}); err != nil {
		return nil, err
	}
	return &repo{db: db}, nil
}

func (r *repo) Create(ctx context.Context, recording *entities.Recording) error {
	recording.CreatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Create(recording).Error
}

func (r *repo) GetByID(ctx context.Context, id int64) (*entities.Recording, error) {
	recording := &entities.Recording{}
	err := r.db.WithContext(ctx).First(recording, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordingNotFound
	}
	if err != nil {
		return nil, err
	}
	return recording, nil
}

func (r *repo) List(ctx context.Context) ([]entities.Recording, error) {
	var recordings []entities.Recording
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&recordings).Error
	if err != nil {
		return nil, err
	}
	return recordings, nil
}

func (r *repo) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&entities.Recording{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
