package sqlite

import (
	"alarmclock/internal/domain/constant"
	"alarmclock/internal/domain/entity"
	"alarmclock/internal/domain/repository"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type alarmRepository struct {
	db *gorm.DB
}

// NewAlarmRepository creates a new instance of AlarmRepository.
func NewAlarmRepository(db *gorm.DB) repository.AlarmRepository {
	return &alarmRepository{db: db}
}

// Get retrieves the record for kind, or an unset record if none is stored.
func (r *alarmRepository) Get(ctx context.Context, kind constant.AlarmKind) (*entity.AlarmRecord, error) {
	var record entity.AlarmRecord
	if err := r.db.WithContext(ctx).Where("kind = ?", kind).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &entity.AlarmRecord{Kind: kind}, nil
		}
		return nil, fmt.Errorf("failed to get alarm %s: %w", kind, err)
	}
	return &record, nil
}

// Put inserts or overwrites the record for record.Kind.
func (r *alarmRepository) Put(ctx context.Context, record *entity.AlarmRecord) error {
	if record == nil {
		return repository.ErrNilRecord
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "kind"}},
			DoUpdates: clause.AssignmentColumns([]string{"trigger_at_millis", "window_length_millis", "interval_millis", "updated_at"}),
		}).
		Create(record).Error
	if err != nil {
		return fmt.Errorf("failed to put alarm %s: %w", record.Kind, err)
	}
	return nil
}

// Clear deletes the record for kind.
func (r *alarmRepository) Clear(ctx context.Context, kind constant.AlarmKind) error {
	if err := r.db.WithContext(ctx).Where("kind = ?", kind).Delete(&entity.AlarmRecord{}).Error; err != nil {
		return fmt.Errorf("failed to clear alarm %s: %w", kind, err)
	}
	return nil
}
