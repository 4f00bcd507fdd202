// Copyright (c) 2026 DSMovie. All rights reserved.

package sec

import (
	"github.com/felipeam10/dsmovie-restassured/internal/platform/apperr"
)

// # User Roles

// UserRole represents the authorization level granted to an account.
//
// The set is closed: the role embedded in a verified token is one of these
// two values for the lifetime of the session, and is never computed by the
// catalog itself.
type UserRole string

const (
	// Full catalog management access
	RoleAdmin UserRole = "admin"

	// Default role: can browse the catalog and submit scores
	RoleClient UserRole = "client"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleClient
}

// # Capabilities

// Capability names a single permission gating one catalog operation.
type Capability string

const (
	// CapabilityReadCatalog guards paginated browsing and movie lookup.
	CapabilityReadCatalog Capability = "read_catalog"

	// CapabilitySubmitScore guards score submission and score lookup.
	CapabilitySubmitScore Capability = "submit_score"

	// CapabilityInsertMovie guards catalog inserts.
	CapabilityInsertMovie Capability = "insert_movie"
)

// capabilityTable maps each capability to the roles allowed to exercise it.
// A nil entry means the capability is public — no identity required.
var capabilityTable = map[Capability][]UserRole{
	CapabilityReadCatalog: nil,
	CapabilitySubmitScore: {RoleAdmin, RoleClient},
	CapabilityInsertMovie: {RoleAdmin},
}

// Authorize decides whether the given identity may exercise a capability.
//
// It is a pure function of (claims, capability): no state is held across
// calls. claims == nil means the caller is anonymous (no token, or a token
// that failed verification upstream).
//
// # Decision Table
//
//	capability    | anonymous          | client            | admin
//	read_catalog  | nil                | nil               | nil
//	submit_score  | 401 Unauthorized   | nil               | nil
//	insert_movie  | 401 Unauthorized   | 403 Forbidden     | nil
//
// Unauthorized means identity could not be established; Forbidden means the
// identity is established but its role does not grant the capability.
func Authorize(claims *AuthClaims, capability Capability) error {
	allowed, known := capabilityTable[capability]
	if !known {
		// Unknown capabilities deny by default rather than fail open.
		return apperr.Forbidden("Unknown capability")
	}

	// Public capability: anonymous and authenticated callers alike.
	if allowed == nil {
		return nil
	}

	if claims == nil {
		return apperr.Unauthorized("Authentication required")
	}

	role := UserRole(claims.Role)
	for _, candidate := range allowed {
		if role == candidate {
			return nil
		}
	}

	return apperr.Forbidden("Insufficient permissions")
}
