// Package policy implements the access decision procedure shared by
// every resource endpoint: ownership, role, visibility flags, the
// user-blocking graph, and the company API key gate all funnel through
// Decide / DecideCompany, and list endpoints apply the same rules in
// bulk through Filter.
package policy

import (
	"net/http"

	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain"
)

// Action tags what the requester is trying to do with a resource.
type Action string

const (
	ActionView   Action = "view"
	ActionModify Action = "modify"
	ActionDelete Action = "delete"
)

// Reason explains a denial. Reasons are internal: several of them
// deliberately collapse into one public description (see Description).
type Reason int

const (
	ReasonNone Reason = iota

	// ReasonNotFound - the resource does not exist.
	ReasonNotFound

	// ReasonPrivate - the resource's visibility flag is off.
	ReasonPrivate

	// ReasonBlocked - a block exists between requester and owner, in
	// either direction.
	ReasonBlocked

	// ReasonNotOwner - a non-owner non-admin attempted a mutation, or a
	// company-scoped request came from the wrong account.
	ReasonNotOwner

	// ReasonNoAPIKey - the company account has no API key provisioned.
	ReasonNoAPIKey

	// ReasonKeyMismatch - the supplied company API key does not match
	// the provisioned one.
	ReasonKeyMismatch
)

// Decision is the verdict of the policy for one (actor, resource,
// action) triple.
type Decision struct {
	Allowed bool
	Reason  Reason
}

var allow = Decision{Allowed: true}

func deny(r Reason) Decision {
	return Decision{Reason: r}
}

// Denied reports whether the decision forbids the action.
func (d Decision) Denied() bool { return !d.Allowed }

// StatusCode maps the decision to the HTTP status the boundary returns.
func (d Decision) StatusCode() int {
	if d.Allowed {
		return http.StatusOK
	}
	switch d.Reason {
	case ReasonNotFound:
		return http.StatusNotFound
	default:
		return http.StatusForbidden
	}
}

// Description is the public text for a denial. Private and blocked (and
// which direction the block runs) share one string on purpose: a
// requester must not be able to learn block status from the response.
// The API key reasons are allowed to be precise because they describe
// the requester's own credential, not a relationship between two users.
func (d Decision) Description() string {
	if d.Allowed {
		return "OK"
	}
	switch d.Reason {
	case ReasonNotFound:
		return "resource not found"
	case ReasonPrivate, ReasonBlocked:
		return domain.DeniedDescription
	case ReasonNoAPIKey:
		return "no API key provisioned for this company"
	case ReasonKeyMismatch:
		return "incorrect company API key"
	default:
		return "forbidden"
	}
}

// Err converts a denial into the matching domain error, for callers
// that propagate decisions through error returns.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	switch d.Reason {
	case ReasonNotFound:
		return &domain.NotFoundError{Message: d.Description()}
	default:
		return &domain.ForbiddenError{Message: d.Description()}
	}
}
