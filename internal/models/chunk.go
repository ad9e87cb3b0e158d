package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Vector stores an embedding as a JSON float array.
type Vector []float32

func (v Vector) Value() (driver.Value, error) {
	if v == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]float32(v))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (v *Vector) Scan(value interface{}) error {
	if v == nil {
		return fmt.Errorf("models.Vector: Scan on nil pointer")
	}
	if value == nil {
		*v = Vector{}
		return nil
	}

	var raw []byte
	switch val := value.(type) {
	case []byte:
		raw = val
	case string:
		raw = []byte(val)
	default:
		return fmt.Errorf("models.Vector: unsupported Scan type %T", value)
	}

	var out []float32
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("models.Vector: %w", err)
	}
	*v = out
	return nil
}

// ChunkModel is a contiguous slice of a tesis full text plus its
// embedding. Chunks belong to exactly one tesis, are written by the
// ingestion pipeline and replaced wholesale on re-ingestion.
type ChunkModel struct {
	ID        uint   `json:"id"        gorm:"primaryKey;autoIncrement"`
	TesisID   string `json:"tesis_id"  gorm:"type:varchar(32);index;uniqueIndex:idx_tesis_ordinal,priority:1"`
	Ordinal   int    `json:"ordinal"   gorm:"uniqueIndex:idx_tesis_ordinal,priority:2"`
	Text      string `json:"text"      gorm:"type:text"`
	Embedding Vector `json:"-"         gorm:"type:longtext"`
}

func (ChunkModel) TableName() string { return "tesis_chunks" }
