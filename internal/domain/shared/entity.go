package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity provides common fields for all domain entities
type BaseEntity struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}

// NewBaseEntity creates a new base entity with a fresh identifier
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates the modified timestamp
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}

// Filter represents common listing options for repository queries
type Filter struct {
	Offset int
	Limit  int
}

// Normalize applies default pagination bounds
func (f Filter) Normalize() Filter {
	if f.Limit <= 0 {
		f.Limit = 100
	}
	if f.Limit > 1000 {
		f.Limit = 1000
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}
