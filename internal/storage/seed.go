package storage

import (
	"context"
	"fmt"

	"github.com/martinsuchenak/assetcompass/internal/model"
)

// SeedCounts reports how many records Seed inserted per entity.
type SeedCounts struct {
	Datacenters      int
	OperatingSystems int
	Servers          int
	Hosts            int
	IPAddresses      int
	Persons          int
	Assignments      int
}

func (c SeedCounts) String() string {
	return fmt.Sprintf("datacenters=%d operating_systems=%d servers=%d hosts=%d ip_addresses=%d persons=%d assignments=%d",
		c.Datacenters, c.OperatingSystems, c.Servers, c.Hosts, c.IPAddresses, c.Persons, c.Assignments)
}

// Seed loads the demo inventory into an empty store in one transaction. It
// does nothing and returns false when any datacenter already exists.
func Seed(ctx context.Context, s Storage) (bool, SeedCounts, error) {
	var counts SeedCounts

	existing, err := s.ListDatacenters(ctx, model.Page{Limit: 1})
	if err != nil {
		return false, counts, err
	}
	if len(existing) > 0 {
		return false, counts, nil
	}

	err = s.Atomic(ctx, func(ctx context.Context) error {
		counts = SeedCounts{}
		return seed(ctx, s, &counts)
	})
	if err != nil {
		return false, SeedCounts{}, err
	}
	return true, counts, nil
}

func seed(ctx context.Context, s Storage, counts *SeedCounts) error {
	str := model.StringPtr

	datacenters := []model.Datacenter{
		{ID: "dc-1", Name: "DC-East-01", Location: "New York, NY", Description: str("Primary East Coast datacenter")},
		{ID: "dc-2", Name: "DC-West-01", Location: "San Francisco, CA", Description: str("Primary West Coast datacenter")},
		{ID: "dc-3", Name: "DC-Central-01", Location: "Chicago, IL", Description: str("Central region datacenter")},
	}
	for i := range datacenters {
		if err := s.CreateDatacenter(ctx, &datacenters[i]); err != nil {
			return fmt.Errorf("seeding datacenter %s: %w", datacenters[i].ID, err)
		}
		counts.Datacenters++
	}

	systems := []model.OperatingSystem{
		{ID: "os-1", Name: "Ubuntu Server", Version: "22.04 LTS", Vendor: "Canonical", EOLDate: str("2027-04-01")},
		{ID: "os-2", Name: "Red Hat Enterprise Linux", Version: "9.3", Vendor: "Red Hat", EOLDate: str("2032-05-31")},
		{ID: "os-3", Name: "Windows Server", Version: "2022", Vendor: "Microsoft", EOLDate: str("2031-10-14")},
		{ID: "os-4", Name: "Debian", Version: "12", Vendor: "Debian Project", EOLDate: str("2028-06-01")},
		{ID: "os-5", Name: "CentOS Stream", Version: "9", Vendor: "Red Hat"},
	}
	for i := range systems {
		if err := s.CreateOperatingSystem(ctx, &systems[i]); err != nil {
			return fmt.Errorf("seeding operating system %s: %w", systems[i].ID, err)
		}
		counts.OperatingSystems++
	}

	servers := []model.Server{
		{ID: "srv-1", Hostname: "srv-nyc-prod-01", DatacenterID: "dc-1", Model: "Dell PowerEdge R750", SerialNumber: "DL7500001", Status: model.ServerOnline},
		{ID: "srv-2", Hostname: "srv-nyc-prod-02", DatacenterID: "dc-1", Model: "Dell PowerEdge R750", SerialNumber: "DL7500002", Status: model.ServerOnline},
		{ID: "srv-3", Hostname: "srv-sfo-prod-01", DatacenterID: "dc-2", Model: "HPE ProLiant DL380", SerialNumber: "HP3800001", Status: model.ServerOnline},
		{ID: "srv-4", Hostname: "srv-chi-dev-01", DatacenterID: "dc-3", Model: "Supermicro X12", SerialNumber: "SM1200001", Status: model.ServerMaintenance},
		{ID: "srv-5", Hostname: "srv-nyc-db-01", DatacenterID: "dc-1", Model: "Dell PowerEdge R750", SerialNumber: "DL7500003", Status: model.ServerOnline},
	}
	for i := range servers {
		if err := s.CreateServer(ctx, &servers[i]); err != nil {
			return fmt.Errorf("seeding server %s: %w", servers[i].ID, err)
		}
		counts.Servers++
	}

	hosts := []model.Host{
		{ID: "host-1", Hostname: "web-prod-01", ServerID: "srv-1", OSID: str("os-1"), Type: model.HostVM, Status: model.HostRunning, CPU: 4, MemoryGB: 16},
		{ID: "host-2", Hostname: "web-prod-02", ServerID: "srv-1", OSID: str("os-1"), Type: model.HostVM, Status: model.HostRunning, CPU: 4, MemoryGB: 16},
		{ID: "host-3", Hostname: "api-prod-01", ServerID: "srv-2", OSID: str("os-2"), Type: model.HostVM, Status: model.HostRunning, CPU: 8, MemoryGB: 32},
		{ID: "host-4", Hostname: "db-prod-01", ServerID: "srv-5", OSID: str("os-2"), Type: model.HostVM, Status: model.HostRunning, CPU: 16, MemoryGB: 64},
		{ID: "host-5", Hostname: "cache-prod-01", ServerID: "srv-3", OSID: str("os-4"), Type: model.HostContainer, Status: model.HostRunning, CPU: 2, MemoryGB: 8},
		{ID: "host-6", Hostname: "dev-env-01", ServerID: "srv-4", OSID: str("os-1"), Type: model.HostVM, Status: model.HostStopped, CPU: 4, MemoryGB: 8},
	}
	for i := range hosts {
		if err := s.CreateHost(ctx, &hosts[i]); err != nil {
			return fmt.Errorf("seeding host %s: %w", hosts[i].ID, err)
		}
		counts.Hosts++
	}

	ips := []model.IPAddress{
		{ID: "ip-1", Address: "10.1.1.10", HostID: str("host-1"), Type: model.IPv4, Allocation: model.AllocationStatic},
		{ID: "ip-2", Address: "10.1.1.11", HostID: str("host-2"), Type: model.IPv4, Allocation: model.AllocationStatic},
		{ID: "ip-3", Address: "10.1.2.20", HostID: str("host-3"), Type: model.IPv4, Allocation: model.AllocationStatic},
		{ID: "ip-4", Address: "10.1.3.30", HostID: str("host-4"), Type: model.IPv4, Allocation: model.AllocationStatic},
		{ID: "ip-5", Address: "10.2.1.10", HostID: str("host-5"), Type: model.IPv4, Allocation: model.AllocationStatic},
		{ID: "ip-6", Address: "10.3.1.10", HostID: str("host-6"), Type: model.IPv4, Allocation: model.AllocationDHCP},
		{ID: "ip-7", Address: "10.1.1.100", Type: model.IPv4, Allocation: model.AllocationReserved},
		{ID: "ip-8", Address: "10.1.1.101", Type: model.IPv4, Allocation: model.AllocationReserved},
	}
	for i := range ips {
		if err := s.CreateIPAddress(ctx, &ips[i]); err != nil {
			return fmt.Errorf("seeding ip address %s: %w", ips[i].ID, err)
		}
		counts.IPAddresses++
	}

	persons := []model.Person{
		{ID: "per-1", Name: "John Smith", Email: "john.smith@company.com", Role: "Systems Administrator", Department: "IT Operations", Phone: str("+1-555-0101")},
		{ID: "per-2", Name: "Sarah Johnson", Email: "sarah.johnson@company.com", Role: "Network Engineer", Department: "IT Operations", Phone: str("+1-555-0102")},
		{ID: "per-3", Name: "Mike Chen", Email: "mike.chen@company.com", Role: "DevOps Engineer", Department: "Engineering", Phone: str("+1-555-0103")},
		{ID: "per-4", Name: "Emily Davis", Email: "emily.davis@company.com", Role: "Database Administrator", Department: "IT Operations"},
		{ID: "per-5", Name: "Alex Turner", Email: "alex.turner@company.com", Role: "Security Engineer", Department: "Security", Phone: str("+1-555-0105")},
	}
	for i := range persons {
		if err := s.CreatePerson(ctx, &persons[i]); err != nil {
			return fmt.Errorf("seeding person %s: %w", persons[i].ID, err)
		}
		counts.Persons++
	}

	assignments := []model.Assignment{
		{ID: "assign-1", PersonID: "per-1", EntityType: model.EntityDatacenter, EntityID: "dc-1", Role: model.RoleAdmin},
		{ID: "assign-2", PersonID: "per-2", EntityType: model.EntityDatacenter, EntityID: "dc-2", Role: model.RoleAdmin},
		{ID: "assign-3", PersonID: "per-3", EntityType: model.EntityServer, EntityID: "srv-1", Role: model.RoleOperator},
		{ID: "assign-4", PersonID: "per-4", EntityType: model.EntityHost, EntityID: "host-4", Role: model.RoleOwner},
		{ID: "assign-5", PersonID: "per-5", EntityType: model.EntityDatacenter, EntityID: "dc-1", Role: model.RoleViewer},
	}
	for i := range assignments {
		if err := s.CreateAssignment(ctx, &assignments[i]); err != nil {
			return fmt.Errorf("seeding assignment %s: %w", assignments[i].ID, err)
		}
		counts.Assignments++
	}

	return nil
}
