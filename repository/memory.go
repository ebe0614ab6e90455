package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"voice-memos/entities"
)

// memoryRepo keeps recordings in a plain map. Ids come from an incrementing
// counter and are never reused. Everything is lost on restart.
type memoryRepo struct {
	mu         sync.Mutex
	recordings map[int64]entities.Recording
	nextID     int64
}

func NewMemoryRepo() RecordingRepository {
	return &memoryRepo{
		recordings: make(map[int64]entities.Recording),
		nextID:     1,
	}
}

func (m *memoryRepo) Create(ctx context.Context, recording *entities.Recording) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	recording.ID = m.nextID
	m.nextID++
	recording.CreatedAt = time.Now().UTC()
	m.recordings[recording.ID] = *recording
	return nil
}

func (m *memoryRepo) GetByID(ctx context.Context, id int64) (*entities.Recording, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	recording, ok := m.recordings[id]
	if !ok {
		return nil, ErrRecordingNotFound
	}
	return &recording, nil
}

func (m *memoryRepo) List(ctx context.Context) ([]entities.Recording, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	recordings := make([]entities.Recording, 0, len(m.recordings))
	for _, recording := range m.recordings {
		recordings = append(recordings, recording)
	}
	sort.Slice(recordings, func(i, j int) bool {
		if !recordings[i].CreatedAt.Equal(recordings[j].CreatedAt) {
			return recordings[i].CreatedAt.After(recordings[j].CreatedAt)
		}
		return recordings[i].ID > recordings[j].ID
	})
	return recordings, nil
}

func (m *memoryRepo) Delete(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.recordings[id]; !ok {
		return false, nil
	}
	delete(m.recordings, id)
	return true, nil
}
