package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/martinsuchenak/assetcompass/internal/model"
)

// Error kinds. Every error returned by the store for an expected client
// condition wraps exactly one of these.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrReference    = errors.New("reference error")
	ErrInvalidValue = errors.New("invalid value")
)

var (
	ErrDatacenterNotFound      = fmt.Errorf("datacenter %w", ErrNotFound)
	ErrOperatingSystemNotFound = fmt.Errorf("operating system %w", ErrNotFound)
	ErrServerNotFound          = fmt.Errorf("server %w", ErrNotFound)
	ErrHostNotFound            = fmt.Errorf("host %w", ErrNotFound)
	ErrIPAddressNotFound       = fmt.Errorf("ip address %w", ErrNotFound)
	ErrPersonNotFound          = fmt.Errorf("person %w", ErrNotFound)
	ErrAssignmentNotFound      = fmt.Errorf("assignment %w", ErrNotFound)
)

// ConstraintError is returned when the store rejects a write.
// It wraps one of ErrConflict, ErrReference or ErrInvalidValue.
type ConstraintError struct {
	Kind    error
	Field   string
	Message string
	Err     error
}

func (e *ConstraintError) Error() string { return e.Message }

func (e *ConstraintError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// DatacenterStorage persists datacenters.
type DatacenterStorage interface {
	ListDatacenters(ctx context.Context, page model.Page) ([]model.Datacenter, error)
	GetDatacenter(ctx context.Context, id string) (*model.Datacenter, error)
	CreateDatacenter(ctx context.Context, dc *model.Datacenter) error
	UpdateDatacenter(ctx context.Context, dc *model.Datacenter) error
	DeleteDatacenter(ctx context.Context, id string) error
	ListDatacenterServers(ctx context.Context, id string, page model.Page) ([]model.Server, error)
}

// OperatingSystemStorage persists the operating system catalog.
type OperatingSystemStorage interface {
	ListOperatingSystems(ctx context.Context, page model.Page) ([]model.OperatingSystem, error)
	GetOperatingSystem(ctx context.Context, id string) (*model.OperatingSystem, error)
	CreateOperatingSystem(ctx context.Context, os *model.OperatingSystem) error
	UpdateOperatingSystem(ctx context.Context, os *model.OperatingSystem) error
	DeleteOperatingSystem(ctx context.Context, id string) error
	ListOperatingSystemHosts(ctx context.Context, id string, page model.Page) ([]model.Host, error)
}

// ServerStorage persists servers.
type ServerStorage interface {
	ListServers(ctx context.Context, page model.Page) ([]model.Server, error)
	GetServer(ctx context.Context, id string) (*model.Server, error)
	CreateServer(ctx context.Context, srv *model.Server) error
	UpdateServer(ctx context.Context, srv *model.Server) error
	DeleteServer(ctx context.Context, id string) error
	ListServerHosts(ctx context.Context, id string, page model.Page) ([]model.Host, error)
}

// HostStorage persists hosts.
type HostStorage interface {
	ListHosts(ctx context.Context, page model.Page) ([]model.Host, error)
	GetHost(ctx context.Context, id string) (*model.Host, error)
	CreateHost(ctx context.Context, host *model.Host) error
	UpdateHost(ctx context.Context, host *model.Host) error
	DeleteHost(ctx context.Context, id string) error
	ListHostIPAddresses(ctx context.Context, id string, page model.Page) ([]model.IPAddress, error)
}

// IPAddressStorage persists IP addresses.
type IPAddressStorage interface {
	ListIPAddresses(ctx context.Context, page model.Page) ([]model.IPAddress, error)
	GetIPAddress(ctx context.Context, id string) (*model.IPAddress, error)
	CreateIPAddress(ctx context.Context, ip *model.IPAddress) error
	UpdateIPAddress(ctx context.Context, ip *model.IPAddress) error
	DeleteIPAddress(ctx context.Context, id string) error
}

// PersonStorage persists people.
type PersonStorage interface {
	ListPersons(ctx context.Context, page model.Page) ([]model.Person, error)
	GetPerson(ctx context.Context, id string) (*model.Person, error)
	CreatePerson(ctx context.Context, p *model.Person) error
	UpdatePerson(ctx context.Context, p *model.Person) error
	DeletePerson(ctx context.Context, id string) error
	ListPersonAssignments(ctx context.Context, id string, page model.Page) ([]model.Assignment, error)
}

// AssignmentStorage persists assignments. The (entity_type, entity_id)
// target is stored as given and never resolved.
type AssignmentStorage interface {
	ListAssignments(ctx context.Context, filter model.AssignmentFilter, page model.Page) ([]model.Assignment, error)
	GetAssignment(ctx context.Context, id string) (*model.Assignment, error)
	CreateAssignment(ctx context.Context, a *model.Assignment) error
	UpdateAssignment(ctx context.Context, a *model.Assignment) error
	DeleteAssignment(ctx context.Context, id string) error
}

// Storage is the full entity store.
type Storage interface {
	DatacenterStorage
	OperatingSystemStorage
	ServerStorage
	HostStorage
	IPAddressStorage
	PersonStorage
	AssignmentStorage

	Atomic(ctx context.Context, fn func(ctx context.Context) error) error
	Ping(ctx context.Context) error
	Maintain(ctx context.Context) error
	Close() error
}

// NewStorage opens the SQLite store in dataDir and applies pending migrations.
func NewStorage(dataDir string) (Storage, error) {
	return NewSQLiteStorage(dataDir)
}
