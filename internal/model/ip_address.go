package model

import "time"

// IPType is the address family.
type IPType string

const (
	IPv4 IPType = "ipv4"
	IPv6 IPType = "ipv6"
)

func (t IPType) Valid() bool      { return oneOf(t, IPv4, IPv6) }
func (t IPType) Values() []string { return names(IPv4, IPv6) }

// IPAllocation records how an address was handed out.
type IPAllocation string

const (
	AllocationStatic   IPAllocation = "static"
	AllocationDHCP     IPAllocation = "dhcp"
	AllocationReserved IPAllocation = "reserved"
)

func (a IPAllocation) Valid() bool {
	return oneOf(a, AllocationStatic, AllocationDHCP, AllocationReserved)
}

func (a IPAllocation) Values() []string {
	return names(AllocationStatic, AllocationDHCP, AllocationReserved)
}

// IPAddress is a unique address, optionally bound to a host.
type IPAddress struct {
	ID         string       `json:"id"`
	Address    string       `json:"address" validate:"present"`
	HostID     *string      `json:"host_id"`
	Type       IPType       `json:"type" validate:"present,enum"`
	Allocation IPAllocation `json:"allocation" validate:"present,enum"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func (a *IPAddress) GetID() string   { return a.ID }
func (a *IPAddress) SetID(id string) { a.ID = id }
