package domain

import "github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/persistence/models"

// PrincipalKind discriminates the two authenticated identity kinds
type PrincipalKind string

const (
	PrincipalCitizen PrincipalKind = "citizen"
	PrincipalAdmin   PrincipalKind = "admin"
)

// Principal is a resolved, verified identity. Exactly one of User or Admin is
// set, matching Kind. Token keeps the raw bearer value so callers can thread
// it to downstream store calls that expect per-request authorization.
type Principal struct {
	Kind  PrincipalKind
	User  *models.User
	Admin *models.Admin
	Token string
}
