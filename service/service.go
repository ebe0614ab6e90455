package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"voice-memos/constant"
	"voice-memos/dto"
	"voice-memos/entities"
	"voice-memos/pkg/blob"
	"voice-memos/repository"
)

var (
	ErrNoAudioFile     = errors.New("no audio file uploaded")
	ErrNotAudio        = errors.New("only audio files are allowed")
	ErrFileTooLarge    = errors.New("audio file exceeds the 10MB limit")
	ErrEmptyQuestion   = errors.New("question is required")
	ErrInvalidDuration = errors.New("duration must not be negative")
)

type Service interface {
	List(ctx context.Context) ([]entities.Recording, error)
	Create(ctx context.Context, meta dto.RecordingMeta, audio io.Reader, size int64, contentType string) (*entities.Recording, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo  repository.RecordingRepository
	blobs blob.Store
}

func NewService(repo repository.RecordingRepository, blobs blob.Store) Service {
	return &service{
		repo:  repo,
		blobs: blobs,
	}
}

func (s *service) List(ctx context.Context) ([]entities.Recording, error) {
	return s.repo.List(ctx)
}

// Create validates the upload, writes the audio file and persists the row.
// Validation happens before any side effect; a failed row insert removes
// the already written file so neither half survives alone.
func (s *service) Create(ctx context.Context, meta dto.RecordingMeta, audio io.Reader, size int64, contentType string) (*entities.Recording, error) {
	if audio == nil {
		return nil, ErrNoAudioFile
	}
	if strings.TrimSpace(meta.Question) == "" {
		return nil, ErrEmptyQuestion
	}
	if meta.Duration < 0 {
		return nil, ErrInvalidDuration
	}
	if size > constant.MaxUploadBytes {
		return nil, ErrFileTooLarge
	}
	if !AcceptContentType(contentType) {
		return nil, ErrNotAudio
	}

	filename := GenerateFilename(contentType)
	if err := s.blobs.Save(ctx, filename, audio, size, contentType); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("filename", filename).Msg("failed to store audio file")
		return nil, err
	}

	recording := &entities.Recording{
		Question: strings.TrimSpace(meta.Question),
		AudioURL: constant.UploadsURLPrefix + "/" + filename,
		Filename: filename,
		Duration: meta.Duration,
	}
	if err := s.repo.Create(ctx, recording); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to persist recording")
		if removeErr := s.blobs.Remove(ctx, filename); removeErr != nil {
			zerolog.Ctx(ctx).Error().Err(removeErr).Str("filename", filename).Msg("failed to remove orphaned audio file")
		}
		return nil, err
	}

	return recording, nil
}

// Delete removes the backing file best-effort, then the row. A file that
// cannot be removed is logged and left behind; an undeletable row is not.
func (s *service) Delete(ctx context.Context, id int64) error {
	recording, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.blobs.Remove(ctx, recording.Filename); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("filename", recording.Filename).Msg("failed to delete audio file")
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return repository.ErrRecordingNotFound
	}
	return nil
}
