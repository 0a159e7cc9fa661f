package model

import "time"

// OperatingSystem is a catalog entry referenced by hosts.
type OperatingSystem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"present"`
	Version   string    `json:"version" validate:"present"`
	Vendor    string    `json:"vendor" validate:"present"`
	EOLDate   *string   `json:"eol_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *OperatingSystem) GetID() string   { return o.ID }
func (o *OperatingSystem) SetID(id string) { o.ID = id }
