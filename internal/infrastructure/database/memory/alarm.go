package memory

import (
	"context"
	"sync"

	"alarmclock/internal/domain/constant"
	"alarmclock/internal/domain/entity"
	"alarmclock/internal/domain/repository"
)

// AlarmRepository is an in-memory alarm store. Records do not survive the process.
type AlarmRepository struct {
	mu   sync.RWMutex
	data map[constant.AlarmKind]entity.AlarmRecord
}

var _ repository.AlarmRepository = (*AlarmRepository)(nil)

// NewAlarmRepository constructs a repository.
func NewAlarmRepository() *AlarmRepository {
	return &AlarmRepository{data: make(map[constant.AlarmKind]entity.AlarmRecord)}
}

// Get returns a copy of the stored record, or an unset record.
func (r *AlarmRepository) Get(ctx context.Context, kind constant.AlarmKind) (*entity.AlarmRecord, error) {
	_ = ctx
	r.mu.RLock()
	rec, ok := r.data[kind]
	r.mu.RUnlock()
	if !ok {
		return &entity.AlarmRecord{Kind: kind}, nil
	}
	return &rec, nil
}

// Put persists a copy of record (overwrites existing).
func (r *AlarmRepository) Put(ctx context.Context, record *entity.AlarmRecord) error {
	_ = ctx
	if record == nil {
		return repository.ErrNilRecord
	}
	r.mu.Lock()
	r.data[record.Kind] = *record
	r.mu.Unlock()
	return nil
}

func (r *AlarmRepository) Clear(ctx context.Context, kind constant.AlarmKind) error {
	_ = ctx
	r.mu.Lock()
	delete(r.data, kind)
	r.mu.Unlock()
	return nil
}
