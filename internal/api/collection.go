package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/martinsuchenak/assetcompass/internal/log"
	"github.com/martinsuchenak/assetcompass/internal/model"
	"github.com/martinsuchenak/assetcompass/internal/validation"
)

// entityPtr constrains PT to *T implementing model.Entity.
type entityPtr[T any] interface {
	*T
	model.Entity
}

// route is a resource collection that can mount itself on a mux.
type route interface {
	register(mux *http.ServeMux)
}

// collection serves the five CRUD operations for one entity type under
// /api/<path>. Every entity shares the same contract:
//
//	GET    /api/<path>       list (skip, limit)
//	POST   /api/<path>       create, 201
//	GET    /api/<path>/{id}  get
//	PUT    /api/<path>/{id}  full replace
//	DELETE /api/<path>/{id}  delete, 200 with a confirmation message
type collection[T any, PT entityPtr[T]] struct {
	entity string
	path   string

	list   func(ctx context.Context, r *http.Request, page model.Page) ([]T, error)
	get    func(ctx context.Context, id string) (*T, error)
	create func(ctx context.Context, v PT) error
	update func(ctx context.Context, v PT) error
	remove func(ctx context.Context, id string) error
}

func (c *collection[T, PT]) register(mux *http.ServeMux) {
	base := "/api/" + c.path
	mux.HandleFunc("GET "+base, c.handleList)
	mux.HandleFunc("GET "+base+"/{$}", c.handleList)
	mux.HandleFunc("POST "+base, c.handleCreate)
	mux.HandleFunc("POST "+base+"/{$}", c.handleCreate)
	mux.HandleFunc("GET "+base+"/{id}", c.handleGet)
	mux.HandleFunc("PUT "+base+"/{id}", c.handleUpdate)
	mux.HandleFunc("DELETE "+base+"/{id}", c.handleDelete)
}

func (c *collection[T, PT]) label() string {
	return strings.ToLower(c.entity)
}

func (c *collection[T, PT]) handleList(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		writeFailure(w, err, c.label(), "list")
		return
	}

	log.Debug("Listing "+c.path, "skip", page.Skip, "limit", page.Limit)

	items, err := c.list(r.Context(), r, page)
	if err != nil {
		writeFailure(w, err, c.label(), "list")
		return
	}

	log.Debug("Listed "+c.path, "count", len(items))
	writeJSON(w, http.StatusOK, items)
}

func (c *collection[T, PT]) handleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	log.Debug("Getting "+c.label(), "id", id)

	item, err := c.get(r.Context(), id)
	if err != nil {
		writeFailure(w, err, c.entity, "get", "id", id)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (c *collection[T, PT]) handleCreate(w http.ResponseWriter, r *http.Request) {
	var item T
	if err := validation.Decode(r.Body, &item); err != nil {
		writeFailure(w, err, c.entity, "create")
		return
	}
	p := PT(&item)

	log.Debug("Creating "+c.label(), "id", p.GetID())

	if err := c.create(r.Context(), p); err != nil {
		writeFailure(w, err, c.entity, "create", "id", p.GetID())
		return
	}

	log.Info(c.entity+" created", "id", p.GetID())
	writeJSON(w, http.StatusCreated, p)
}

func (c *collection[T, PT]) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var item T
	if err := validation.Decode(r.Body, &item); err != nil {
		writeFailure(w, err, c.entity, "update", "id", id)
		return
	}
	p := PT(&item)
	p.SetID(id)

	log.Debug("Updating "+c.label(), "id", id)

	if err := c.update(r.Context(), p); err != nil {
		writeFailure(w, err, c.entity, "update", "id", id)
		return
	}

	log.Info(c.entity+" updated", "id", id)
	writeJSON(w, http.StatusOK, p)
}

func (c *collection[T, PT]) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	log.Debug("Deleting "+c.label(), "id", id)

	if err := c.remove(r.Context(), id); err != nil {
		writeFailure(w, err, c.entity, "delete", "id", id)
		return
	}

	log.Info(c.entity+" deleted", "id", id)
	writeJSON(w, http.StatusOK, map[string]string{"message": c.entity + " deleted"})
}

// listChildren serves GET /api/<parent>/{id}/<children>.
func listChildren[C any](parent string, list func(ctx context.Context, id string, page model.Page) ([]C, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		page, err := parsePage(r)
		if err != nil {
			writeFailure(w, err, parent, "list children of")
			return
		}

		items, err := list(r.Context(), id, page)
		if err != nil {
			writeFailure(w, err, parent, "list children of", "id", id)
			return
		}

		writeJSON(w, http.StatusOK, items)
	}
}

// pageOnly adapts a store listing that takes no request filters.
func pageOnly[T any](list func(ctx context.Context, page model.Page) ([]T, error)) func(context.Context, *http.Request, model.Page) ([]T, error) {
	return func(ctx context.Context, _ *http.Request, page model.Page) ([]T, error) {
		return list(ctx, page)
	}
}
