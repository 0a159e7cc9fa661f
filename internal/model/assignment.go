package model

import "time"

// EntityType names the table an assignment points into.
type EntityType string

const (
	EntityDatacenter EntityType = "datacenter"
	EntityServer     EntityType = "server"
	EntityHost       EntityType = "host"
	EntityIP         EntityType = "ip"
)

func (t EntityType) Valid() bool {
	return oneOf(t, EntityDatacenter, EntityServer, EntityHost, EntityIP)
}

func (t EntityType) Values() []string {
	return names(EntityDatacenter, EntityServer, EntityHost, EntityIP)
}

// AssignmentRole is the responsibility a person holds over an entity.
type AssignmentRole string

const (
	RoleOwner    AssignmentRole = "owner"
	RoleAdmin    AssignmentRole = "admin"
	RoleOperator AssignmentRole = "operator"
	RoleViewer   AssignmentRole = "viewer"
)

func (r AssignmentRole) Valid() bool {
	return oneOf(r, RoleOwner, RoleAdmin, RoleOperator, RoleViewer)
}

func (r AssignmentRole) Values() []string {
	return names(RoleOwner, RoleAdmin, RoleOperator, RoleViewer)
}

// Assignment links a person to a datacenter, server, host or IP address.
//
// EntityID is not checked against the table named by EntityType, so an
// assignment may outlive or predate its target. Readers must tolerate that.
type Assignment struct {
	ID         string         `json:"id"`
	PersonID   string         `json:"person_id" validate:"present"`
	EntityType EntityType     `json:"entity_type" validate:"present,enum"`
	EntityID   string         `json:"entity_id" validate:"present"`
	Role       AssignmentRole `json:"role" validate:"present,enum"`
	CreatedAt  time.Time      `json:"created_at"`
}

func (a *Assignment) GetID() string   { return a.ID }
func (a *Assignment) SetID(id string) { a.ID = id }

// AssignmentFilter narrows assignment listings to one target.
type AssignmentFilter struct {
	EntityType EntityType
	EntityID   string
}
