package model

import "time"

// ServerStatus is the operational state of a physical server.
type ServerStatus string

const (
	ServerOnline      ServerStatus = "online"
	ServerOffline     ServerStatus = "offline"
	ServerMaintenance ServerStatus = "maintenance"
)

func (s ServerStatus) Valid() bool {
	return oneOf(s, ServerOnline, ServerOffline, ServerMaintenance)
}

func (s ServerStatus) Values() []string {
	return names(ServerOnline, ServerOffline, ServerMaintenance)
}

// Server is a physical machine racked in a datacenter.
type Server struct {
	ID           string       `json:"id"`
	Hostname     string       `json:"hostname" validate:"present"`
	DatacenterID string       `json:"datacenter_id" validate:"present"`
	Model        string       `json:"model" validate:"present"`
	SerialNumber string       `json:"serial_number" validate:"present"`
	Status       ServerStatus `json:"status" validate:"present,enum"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (s *Server) GetID() string   { return s.ID }
func (s *Server) SetID(id string) { s.ID = id }
