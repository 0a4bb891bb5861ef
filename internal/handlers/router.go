package handlers

import (
	"context"

	"taskcli/internal/middleware"
)

// Router сопоставляет имя команды с обработчиком. Имена регистрозависимы.
type Router struct {
	routes      map[string]middleware.HandlerFunc
	commands    []string
	middlewares []middleware.Middleware
}

func NewRouter() *Router {
	return &Router{
		routes: make(map[string]middleware.HandlerFunc),
	}
}

func (r *Router) Use(mws ...middleware.Middleware) {
	r.middlewares = append(r.middlewares, mws...)
}

func (r *Router) Handle(command string, h middleware.HandlerFunc) {
	if _, ok := r.routes[command]; !ok {
		r.commands = append(r.commands, command)
	}
	r.routes[command] = h
}

// Commands возвращает команды в порядке регистрации.
func (r *Router) Commands() []string {
	res := make([]string, len(r.commands))
	copy(res, r.commands)
	return res
}

func (r *Router) Dispatch(ctx context.Context, command string) error {
	h, ok := r.routes[command]
	if !ok {
		return unknownCommand(command)
	}

	ctx = middleware.WithCommand(ctx, command)
	return middleware.Chain(h, r.middlewares...)(ctx)
}

// RegisterRoutes регистрирует все команды менеджера задач.
func RegisterRoutes(r *Router, h *TaskHandler) {
	r.Handle("add", h.Add)
	r.Handle("test", h.Test)
	r.Handle("update", h.Update)
	r.Handle("delete", h.Delete)
	r.Handle("deleteall", h.DeleteAll)
	r.Handle("list", h.List)
	r.Handle("show", h.Show)
	r.Handle("filter", h.Filter)
}
