package model

import "time"

// HostType distinguishes virtual, containerised and physical hosts.
type HostType string

const (
	HostVM        HostType = "vm"
	HostContainer HostType = "container"
	HostBareMetal HostType = "bare-metal"
)

func (t HostType) Valid() bool {
	return oneOf(t, HostVM, HostContainer, HostBareMetal)
}

func (t HostType) Values() []string {
	return names(HostVM, HostContainer, HostBareMetal)
}

// HostStatus is the power state of a host.
type HostStatus string

const (
	HostRunning   HostStatus = "running"
	HostStopped   HostStatus = "stopped"
	HostSuspended HostStatus = "suspended"
)

func (s HostStatus) Valid() bool {
	return oneOf(s, HostRunning, HostStopped, HostSuspended)
}

func (s HostStatus) Values() []string {
	return names(HostRunning, HostStopped, HostSuspended)
}

// Host is a workload running on a server.
type Host struct {
	ID        string     `json:"id"`
	Hostname  string     `json:"hostname" validate:"present"`
	ServerID  string     `json:"server_id" validate:"present"`
	OSID      *string    `json:"os_id"`
	Type      HostType   `json:"type" validate:"present,enum"`
	Status    HostStatus `json:"status" validate:"present,enum"`
	CPU       int        `json:"cpu" validate:"present"`
	MemoryGB  int        `json:"memory_gb" validate:"present"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (h *Host) GetID() string   { return h.ID }
func (h *Host) SetID(id string) { h.ID = id }
