package repository

import (
	"alarmclock/internal/domain/constant"
	"alarmclock/internal/domain/entity"
	"context"
	"errors"
)

// ErrNilRecord is returned when Put is given a nil record.
var ErrNilRecord = errors.New("alarm repository: nil record")

// AlarmRepository is the durable store: one record per alarm kind, last write wins.
type AlarmRepository interface {
	// Get returns the stored record for kind. A kind that was never written
	// (or was cleared) yields an unset record and a nil error.
	Get(ctx context.Context, kind constant.AlarmKind) (*entity.AlarmRecord, error)
	// Put replaces the record for record.Kind. A nil record yields ErrNilRecord.
	Put(ctx context.Context, record *entity.AlarmRecord) error
	// Clear removes the record for kind. Clearing an absent kind is not an error.
	Clear(ctx context.Context, kind constant.AlarmKind) error
}
