package auth

import "errors"

var (
	// ErrUnauthenticated means no principal could be resolved for the request.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden means the principal lacks every required role.
	ErrForbidden = errors.New("permission denied")
)

// Principal is the authenticated actor behind a request.
type Principal struct {
	CookID      uint
	Username    string
	Roles       RoleSet
	IsSuperuser bool
}

// Authorize decides whether p may run an operation requiring any role in
// required. Superusers always pass. A nil principal is unauthenticated.
func Authorize(p *Principal, required RoleSet) error {
	if p == nil {
		return ErrUnauthenticated
	}
	if p.IsSuperuser {
		return nil
	}
	if p.Roles.Intersects(required) {
		return nil
	}
	return ErrForbidden
}

// Can is the boolean form of Authorize, used to toggle UI controls.
func (p *Principal) Can(required RoleSet) bool {
	return Authorize(p, required) == nil
}
