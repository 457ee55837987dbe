package model

import "time"

type StateEntry struct {
	Profile   string    `gorm:"primaryKey;type:varchar(64)"`
	Key       string    `gorm:"column:state_key;primaryKey;type:varchar(191)"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"type:datetime"`
}

func (StateEntry) TableName() string {
	return "client_state"
}
