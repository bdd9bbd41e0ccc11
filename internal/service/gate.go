package service

import (
	"context"
	"log/slog"

	"blogicum/internal/authz"
	"blogicum/internal/middleware"
	"blogicum/internal/models"
	"blogicum/internal/observability"
)

// authorize runs the ownership gate for a mutation and records the outcome.
// A repository NotFound should be passed as a nil resource.
func authorize(ctx context.Context, actorID uint, resource string, id uint, r authz.Resource) error {
	if err := authz.RequireAuthenticated(actorID); err != nil {
		return err
	}
	decision := authz.AuthorizeMutation(actorID, r)
	observability.AuthorizationDecisions.WithLabelValues(resource, decision.Outcome.String()).Inc()
	if decision.Outcome == authz.DenyRedirect {
		middleware.Logger.InfoContext(ctx, "mutation denied",
			slog.String("resource", resource),
			slog.Uint64("resource_id", uint64(id)),
			slog.Uint64("actor_id", uint64(actorID)),
		)
	}
	return decision.Err(resource, id)
}

// absentIfNotFound swallows a NotFound so the gate can report it uniformly.
func absentIfNotFound(err error) error {
	if models.HasCode(err, models.CodeNotFound) {
		return nil
	}
	return err
}
