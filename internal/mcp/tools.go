package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/paularlott/mcp"

	"github.com/martinsuchenak/assetcompass/internal/log"
	"github.com/martinsuchenak/assetcompass/internal/model"
	"github.com/martinsuchenak/assetcompass/internal/storage"
	"github.com/martinsuchenak/assetcompass/internal/validation"
)

// args holds the string parameters of a tool call.
type args map[string]string

func (a args) id() (string, error) {
	id := a["id"]
	if id == "" {
		return "", validation.NewError("id", "is required")
	}
	return id, nil
}

func (a args) data() ([]byte, error) {
	data := a["data"]
	if data == "" {
		return nil, validation.NewError("data", "is required")
	}
	return []byte(data), nil
}

type toolFunc func(ctx context.Context, a args) (any, error)

type entityPtr[T any] interface {
	*T
	model.Entity
}

// entity describes one record type's tool family.
type entity struct {
	name     string // tool prefix, e.g. ip_address
	label    string
	plural   string
	filtered bool
}

type toolSet interface {
	meta() entity
	funcs() map[string]toolFunc
}

// crud builds the five tools for one entity.
type crud[T any, PT entityPtr[T]] struct {
	entity

	list   func(ctx context.Context, a args, page model.Page) ([]T, error)
	get    func(ctx context.Context, id string) (*T, error)
	create func(ctx context.Context, v PT) error
	update func(ctx context.Context, v PT) error
	remove func(ctx context.Context, id string) error
}

func (c *crud[T, PT]) meta() entity { return c.entity }

func (c *crud[T, PT]) funcs() map[string]toolFunc {
	return map[string]toolFunc{
		c.name + "_list": func(ctx context.Context, a args) (any, error) {
			page, err := validation.ParsePage(a["skip"], a["limit"])
			if err != nil {
				return nil, err
			}
			return c.list(ctx, a, page)
		},
		c.name + "_get": func(ctx context.Context, a args) (any, error) {
			id, err := a.id()
			if err != nil {
				return nil, err
			}
			return c.get(ctx, id)
		},
		c.name + "_create": func(ctx context.Context, a args) (any, error) {
			data, err := a.data()
			if err != nil {
				return nil, err
			}
			var v T
			if err := validation.DecodeBytes(data, &v); err != nil {
				return nil, err
			}
			p := PT(&v)
			if err := c.create(ctx, p); err != nil {
				return nil, err
			}
			return p, nil
		},
		c.name + "_update": func(ctx context.Context, a args) (any, error) {
			id, err := a.id()
			if err != nil {
				return nil, err
			}
			data, err := a.data()
			if err != nil {
				return nil, err
			}
			var v T
			if err := validation.DecodeBytes(data, &v); err != nil {
				return nil, err
			}
			p := PT(&v)
			p.SetID(id)
			if err := c.update(ctx, p); err != nil {
				return nil, err
			}
			return p, nil
		},
		c.name + "_delete": func(ctx context.Context, a args) (any, error) {
			id, err := a.id()
			if err != nil {
				return nil, err
			}
			if err := c.remove(ctx, id); err != nil {
				return nil, err
			}
			return map[string]string{"message": c.label + " deleted"}, nil
		},
	}
}

func pageOnly[T any](list func(ctx context.Context, page model.Page) ([]T, error)) func(context.Context, args, model.Page) ([]T, error) {
	return func(ctx context.Context, _ args, page model.Page) ([]T, error) {
		return list(ctx, page)
	}
}

func (s *Server) toolSets() []toolSet {
	st := s.storage
	return []toolSet{
		&crud[model.Datacenter, *model.Datacenter]{
			entity: entity{name: "datacenter", label: "Datacenter", plural: "datacenters"},
			list:   pageOnly(st.ListDatacenters),
			get:    st.GetDatacenter,
			create: st.CreateDatacenter,
			update: st.UpdateDatacenter,
			remove: st.DeleteDatacenter,
		},
		&crud[model.OperatingSystem, *model.OperatingSystem]{
			entity: entity{name: "operating_system", label: "Operating system", plural: "operating systems"},
			list:   pageOnly(st.ListOperatingSystems),
			get:    st.GetOperatingSystem,
			create: st.CreateOperatingSystem,
			update: st.UpdateOperatingSystem,
			remove: st.DeleteOperatingSystem,
		},
		&crud[model.Server, *model.Server]{
			entity: entity{name: "server", label: "Server", plural: "physical servers"},
			list:   pageOnly(st.ListServers),
			get:    st.GetServer,
			create: st.CreateServer,
			update: st.UpdateServer,
			remove: st.DeleteServer,
		},
		&crud[model.Host, *model.Host]{
			entity: entity{name: "host", label: "Host", plural: "hosts"},
			list:   pageOnly(st.ListHosts),
			get:    st.GetHost,
			create: st.CreateHost,
			update: st.UpdateHost,
			remove: st.DeleteHost,
		},
		&crud[model.IPAddress, *model.IPAddress]{
			entity: entity{name: "ip_address", label: "IP address", plural: "IP addresses"},
			list:   pageOnly(st.ListIPAddresses),
			get:    st.GetIPAddress,
			create: st.CreateIPAddress,
			update: st.UpdateIPAddress,
			remove: st.DeleteIPAddress,
		},
		&crud[model.Person, *model.Person]{
			entity: entity{name: "person", label: "Person", plural: "persons"},
			list:   pageOnly(st.ListPersons),
			get:    st.GetPerson,
			create: st.CreatePerson,
			update: st.UpdatePerson,
			remove: st.DeletePerson,
		},
		&crud[model.Assignment, *model.Assignment]{
			entity: entity{name: "assignment", label: "Assignment", plural: "assignments", filtered: true},
			list:   s.listAssignments,
			get:    st.GetAssignment,
			create: st.CreateAssignment,
			update: st.UpdateAssignment,
			remove: st.DeleteAssignment,
		},
	}
}

func (s *Server) listAssignments(ctx context.Context, a args, page model.Page) ([]model.Assignment, error) {
	filter := model.AssignmentFilter{
		EntityType: model.EntityType(a["entity_type"]),
		EntityID:   a["entity_id"],
	}
	if filter.EntityType != "" && !filter.EntityType.Valid() {
		return nil, validation.NewError("entity_type", "must be one of: datacenter, server, host, ip")
	}
	return s.storage.ListAssignments(ctx, filter, page)
}

// registerTools registers list, get, create, update and delete tools for
// every entity.
func (s *Server) registerTools() {
	for _, set := range s.toolSets() {
		for name, fn := range set.funcs() {
			s.tools[name] = fn
		}
		s.registerEntity(set.meta())
	}
}

func (s *Server) registerEntity(e entity) {
	skip := mcp.String("skip", "Number of records to skip (default 0)")
	limit := mcp.String("limit", "Maximum number of records to return (default 100)")

	listTool := mcp.NewTool(e.name+"_list", "List "+e.plural+" in insertion order", skip, limit)
	listParams := []string{"skip", "limit"}
	if e.filtered {
		listTool = mcp.NewTool(e.name+"_list", "List "+e.plural+", optionally filtered by the referenced entity",
			skip, limit,
			mcp.String("entity_type", "Filter by entity type (datacenter, server, host, ip)"),
			mcp.String("entity_id", "Filter by entity ID"),
		)
		listParams = append(listParams, "entity_type", "entity_id")
	}
	s.mcpServer.RegisterTool(listTool, s.handler(e.name+"_list", listParams...))

	s.mcpServer.RegisterTool(
		mcp.NewTool(e.name+"_get", "Get a "+e.label+" by ID",
			mcp.String("id", e.label+" ID", mcp.Required()),
		),
		s.handler(e.name+"_get", "id"),
	)

	s.mcpServer.RegisterTool(
		mcp.NewTool(e.name+"_create", "Create a "+e.label+". The ID is generated when the body omits it.",
			mcp.String("data", "JSON object with the "+e.label+" fields", mcp.Required()),
		),
		s.handler(e.name+"_create", "data"),
	)

	s.mcpServer.RegisterTool(
		mcp.NewTool(e.name+"_update", "Replace every mutable field of a "+e.label,
			mcp.String("id", e.label+" ID", mcp.Required()),
			mcp.String("data", "JSON object with the full "+e.label+" shape", mcp.Required()),
		),
		s.handler(e.name+"_update", "id", "data"),
	)

	s.mcpServer.RegisterTool(
		mcp.NewTool(e.name+"_delete", "Delete a "+e.label,
			mcp.String("id", e.label+" ID", mcp.Required()),
		),
		s.handler(e.name+"_delete", "id"),
	)
}

// toolError maps a failure onto an MCP error. Client mistakes keep their
// message; anything else is logged and reported generically.
func toolError(name string, err error) error {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr),
		errors.Is(err, storage.ErrNotFound),
		errors.Is(err, storage.ErrConflict),
		errors.Is(err, storage.ErrReference),
		errors.Is(err, storage.ErrInvalidValue):
		log.Warn("MCP tool rejected", "tool", name, "error", err)
		return mcp.NewToolErrorInvalidParams(err.Error())
	}

	log.Error("MCP tool failed", "tool", name, "error", err)
	return mcp.NewToolErrorInternal(fmt.Sprintf("%s failed", name))
}
