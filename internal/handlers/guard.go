package handlers

import (
	"context"
	"errors"
	"net/http"

	"kitchen/internal/auth"
	applog "kitchen/internal/log"
	"kitchen/internal/views/components"
	"kitchen/models"
)

type principalKey struct{}

type requestActor struct {
	cook      *models.Cook
	principal *auth.Principal
}

func withActor(ctx context.Context, cook *models.Cook, principal *auth.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, requestActor{cook: cook, principal: principal})
}

func actorFrom(ctx context.Context) requestActor {
	actor, _ := ctx.Value(principalKey{}).(requestActor)
	return actor
}

// PrincipalFrom returns the principal resolved by RequireRoles, if any.
func PrincipalFrom(ctx context.Context) *auth.Principal {
	return actorFrom(ctx).principal
}

// RequireRoles lets the request through when the signed-in cook is a
// superuser or holds at least one of the required roles. Anonymous requests
// are sent to the login page and everyone else gets 403.
func RequireRoles(required auth.RoleSet, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cook, err := sessionCook(r)
		if err != nil && !errors.Is(err, auth.ErrUnauthenticated) {
			applog.Error(r.Context(), "failed to resolve session cook", "error", err)
			http.Error(w, "unable to load account", http.StatusInternalServerError)
			return
		}
		principal := auth.PrincipalFor(cook)

		switch err := auth.Authorize(principal, required); {
		case errors.Is(err, auth.ErrUnauthenticated):
			applog.Debug(r.Context(), "anonymous request redirected to login", "path", r.URL.Path)
			redirectToLogin(w, r)
			return
		case errors.Is(err, auth.ErrForbidden):
			applog.Debug(r.Context(), "request forbidden", "path", r.URL.Path, "cook", principal.Username, "roles", principal.Roles.Names(), "required", required.Names())
			ctx := withActor(r.Context(), cook, principal)
			renderError(w, r.WithContext(ctx), http.StatusForbidden, "You do not have permission to perform this action.")
			return
		}

		next.ServeHTTP(w, r.WithContext(withActor(r.Context(), cook, principal)))
	})
}

// RequireAuthentication only requires a signed-in cook, role or not.
func RequireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cook, err := sessionCook(r)
		if errors.Is(err, auth.ErrUnauthenticated) {
			redirectToLogin(w, r)
			return
		}
		if err != nil {
			applog.Error(r.Context(), "failed to resolve session cook", "error", err)
			http.Error(w, "unable to load account", http.StatusInternalServerError)
			return
		}
		next.ServeHTTP(w, r.WithContext(withActor(r.Context(), cook, auth.PrincipalFor(cook))))
	})
}

func viewerFor(ctx context.Context) components.Viewer {
	actor := actorFrom(ctx)
	if actor.cook == nil || actor.principal == nil {
		return components.Viewer{}
	}
	return components.Viewer{
		CookID:         actor.cook.ID,
		Username:       actor.cook.Username,
		Role:           actor.cook.RoleName(),
		Superuser:      actor.cook.IsSuperuser,
		CanEditMenu:    actor.principal.Can(auth.Elevated),
		CanManageStaff: actor.principal.Can(auth.ManagerOnly),
		Theme:          actor.cook.Theme,
	}
}
