package model

import "time"

// Datacenter is a physical site housing servers.
type Datacenter struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"present"`
	Location    string    `json:"location" validate:"present"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (d *Datacenter) GetID() string   { return d.ID }
func (d *Datacenter) SetID(id string) { d.ID = id }
