package entities

import (
	"abrigo/backend/internal/constants"
	"time"
)

// Attributes carries role-specific membership metadata keyed by column name.
type Attributes map[string]any

// Clone returns a shallow copy so callers can merge without aliasing.
func (a Attributes) Clone() Attributes {
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Membership is the role-agnostic view of one per-role membership row.
type Membership struct {
	ID         string         `json:"id"`
	Role       constants.Role `json:"role"`
	UserID     string         `json:"user_id"`
	ProjectID  string         `json:"project_id"`
	Attributes Attributes     `json:"attributes"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
