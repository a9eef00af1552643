package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	SysParamSignalState = "mayer_signal_state"
)

type SystemParameter struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null;uniqueIndex" json:"name"`
	Value     datatypes.JSON `gorm:"not null" json:"value"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SystemParameter) TableName() string {
	return "system_parameters"
}
