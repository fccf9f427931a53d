package piranha

import "time"

// Entity holds the audit fields shared by all persisted models.
// Stores set Created on first save and refresh LastModified on every save.
type Entity struct {
	Created      time.Time `json:"created"`
	LastModified time.Time `json:"last_modified"`
}

// NewEntity returns an Entity with both timestamps set to the current UTC time.
func NewEntity() Entity {
	now := time.Now().UTC()
	return Entity{Created: now, LastModified: now}
}

// Touch refreshes LastModified, setting Created as well if it is unset.
func (e *Entity) Touch() {
	now := time.Now().UTC()
	if e.Created.IsZero() {
		e.Created = now
	}
	e.LastModified = now
}
