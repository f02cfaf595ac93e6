package main

import (
	"github.com/hibiken/asynq"

	orderJob "marketplace-backend/internal/domains/order/job"
	"marketplace-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	abandonStaleRequests *orderJob.AbandonStaleRequestsHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		abandonStaleRequests: orderJob.NewAbandonStaleRequestsHandler(c.OrderService),
	}
}

// RegisterHandlers registers all handlers on the mux
func (r *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.Handle(orderJob.TypeAbandonStaleRequests, r.abandonStaleRequests)
}
