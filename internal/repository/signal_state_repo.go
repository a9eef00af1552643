package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"mayer-monitor/internal/dto"
	"mayer-monitor/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SignalStateRepository interface {
	Load(ctx context.Context) (model.RollingState, error)
	Save(ctx context.Context, state model.RollingState) error
}

type signalStateRepository struct {
	db *gorm.DB
}

func NewSignalStateRepository(db *gorm.DB) SignalStateRepository {
	return &signalStateRepository{db: db}
}

// Load returns the persisted rolling state, or a zero-streak default when
// no prior state exists.
func (r *signalStateRepository) Load(ctx context.Context) (model.RollingState, error) {
	var param model.SystemParameter
	var state model.RollingState

	err := r.db.WithContext(ctx).Where("name = ?", model.SysParamSignalState).First(&param).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return state, nil
		}
		return state, err
	}

	if err := json.Unmarshal(param.Value, &state); err != nil {
		return model.RollingState{}, err
	}
	return state, nil
}

func (r *signalStateRepository) Save(ctx context.Context, state model.RollingState) error {
	value, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("%w: %v", dto.ErrSaveState, err)
	}

	param := model.SystemParameter{
		Name:  model.SysParamSignalState,
		Value: datatypes.JSON(value),
	}

	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&param).Error
	if err != nil {
		return fmt.Errorf("%w: %v", dto.ErrSaveState, err)
	}
	return nil
}
