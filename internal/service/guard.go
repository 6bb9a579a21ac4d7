package service

import "github.com/corebank/finance-service/internal/apperr"

// Principal is the authenticated actor behind a request. The auth middleware
// resolves it once per request and it is passed explicitly into every
// service call; no ambient session state exists.
type Principal struct {
	ID int64
}

// Authorize decides whether the principal owns a resource. It is a pure
// decision over (principal, owner) pairs with no side effects; resolving the
// resource and checking that it is live are the caller's concern, so that
// "does not exist" and "exists but not yours" stay distinguishable.
func Authorize(p Principal, ownerID int64) error {
	if p.ID != ownerID {
		return apperr.Forbidden("this action is unauthorized")
	}
	return nil
}
