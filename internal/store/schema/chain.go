package schema

import "time"

// Chain represents the chains table - blockchain networks referenced by pools
type Chain struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Name is the network name as published by the pools feed (e.g., "Ethereum")
	Name string `gorm:"column:name;not null;uniqueIndex;type:text"`
	// CreatedAt is the timestamp when the chain was first referenced
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Chain model
func (Chain) TableName() string {
	return "chains"
}
