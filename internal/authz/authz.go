// Package authz is the ownership gate in front of every post and comment
// mutation.
package authz

import (
	"reflect"

	"blogicum/internal/models"
)

// Outcome is the result of an ownership check.
type Outcome int

const (
	Allow Outcome = iota
	DenyRedirect
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case DenyRedirect:
		return "deny_redirect"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Decision carries the outcome and, for DenyRedirect, where to send the actor.
type Decision struct {
	Outcome    Outcome
	RedirectTo string
}

// Resource is anything with an owner and a read-only view.
type Resource interface {
	OwnerID() uint
	CanonicalPath() string
}

// AuthorizeMutation decides whether actorID may change or delete r.
// A missing resource is reported as NotFound before ownership is looked at.
func AuthorizeMutation(actorID uint, r Resource) Decision {
	if isNil(r) {
		return Decision{Outcome: NotFound}
	}
	if actorID != 0 && r.OwnerID() == actorID {
		return Decision{Outcome: Allow}
	}
	return Decision{Outcome: DenyRedirect, RedirectTo: r.CanonicalPath()}
}

// RequireAuthenticated fails for the anonymous actor.
func RequireAuthenticated(actorID uint) error {
	if actorID == 0 {
		return models.NewUnauthenticatedError("Authentication required")
	}
	return nil
}

// Err converts a non-Allow decision into the error the HTTP boundary renders.
func (d Decision) Err(resource string, id uint) error {
	switch d.Outcome {
	case Allow:
		return nil
	case NotFound:
		return models.NewNotFoundError(resource, id)
	default:
		return models.NewForbiddenError("Only the author can change this "+resource, d.RedirectTo)
	}
}

func isNil(r Resource) bool {
	if r == nil {
		return true
	}
	v := reflect.ValueOf(r)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
