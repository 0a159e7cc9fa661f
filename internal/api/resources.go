package api

import (
	"context"
	"net/http"

	"github.com/martinsuchenak/assetcompass/internal/model"
	"github.com/martinsuchenak/assetcompass/internal/validation"
)

// collections returns the seven entity collections backed by h.storage.
func (h *Handler) collections() []route {
	s := h.storage
	return []route{
		&collection[model.Datacenter, *model.Datacenter]{
			entity: "Datacenter",
			path:   "datacenters",
			list:   pageOnly(s.ListDatacenters),
			get:    s.GetDatacenter,
			create: s.CreateDatacenter,
			update: s.UpdateDatacenter,
			remove: s.DeleteDatacenter,
		},
		&collection[model.OperatingSystem, *model.OperatingSystem]{
			entity: "Operating system",
			path:   "operating-systems",
			list:   pageOnly(s.ListOperatingSystems),
			get:    s.GetOperatingSystem,
			create: s.CreateOperatingSystem,
			update: s.UpdateOperatingSystem,
			remove: s.DeleteOperatingSystem,
		},
		&collection[model.Server, *model.Server]{
			entity: "Server",
			path:   "servers",
			list:   pageOnly(s.ListServers),
			get:    s.GetServer,
			create: s.CreateServer,
			update: s.UpdateServer,
			remove: s.DeleteServer,
		},
		&collection[model.Host, *model.Host]{
			entity: "Host",
			path:   "hosts",
			list:   pageOnly(s.ListHosts),
			get:    s.GetHost,
			create: s.CreateHost,
			update: s.UpdateHost,
			remove: s.DeleteHost,
		},
		&collection[model.IPAddress, *model.IPAddress]{
			entity: "IP address",
			path:   "ip-addresses",
			list:   pageOnly(s.ListIPAddresses),
			get:    s.GetIPAddress,
			create: s.CreateIPAddress,
			update: s.UpdateIPAddress,
			remove: s.DeleteIPAddress,
		},
		&collection[model.Person, *model.Person]{
			entity: "Person",
			path:   "persons",
			list:   pageOnly(s.ListPersons),
			get:    s.GetPerson,
			create: s.CreatePerson,
			update: s.UpdatePerson,
			remove: s.DeletePerson,
		},
		&collection[model.Assignment, *model.Assignment]{
			entity: "Assignment",
			path:   "assignments",
			list:   h.listAssignments,
			get:    s.GetAssignment,
			create: s.CreateAssignment,
			update: s.UpdateAssignment,
			remove: s.DeleteAssignment,
		},
	}
}

// listAssignments accepts optional entity_type and entity_id filters.
func (h *Handler) listAssignments(ctx context.Context, r *http.Request, page model.Page) ([]model.Assignment, error) {
	q := r.URL.Query()
	filter := model.AssignmentFilter{
		EntityType: model.EntityType(q.Get("entity_type")),
		EntityID:   q.Get("entity_id"),
	}
	if filter.EntityType != "" && !filter.EntityType.Valid() {
		return nil, validation.NewError("entity_type", "must be one of: datacenter, server, host, ip")
	}
	return h.storage.ListAssignments(ctx, filter, page)
}
