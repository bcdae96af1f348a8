// Package tablerepo persists tables. The schema is owned by the table
// management service; the order engine only reads rows and flips the status
// column back to Available when an order closes.
package tablerepo

import (
	"rms/internal/core/domain/model/table"
)

// TableDTO is the database row for a table.
type TableDTO struct {
	ID     int64  `gorm:"primaryKey;autoIncrement"`
	Name   string `gorm:"type:varchar(64)"`
	Seats  int
	Status string `gorm:"type:varchar(16)"`
}

// TableName overrides GORM's default naming to use "tables".
func (TableDTO) TableName() string {
	return "tables"
}

func fromDomain(aggregate *table.Table) TableDTO {
	return TableDTO{
		ID:     aggregate.ID(),
		Name:   aggregate.Name(),
		Seats:  aggregate.Seats(),
		Status: aggregate.Status().String(),
	}
}

func toDomain(dto TableDTO) (*table.Table, error) {
	status, err := table.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return table.RestoreTable(dto.ID, dto.Name, dto.Seats, status)
}
