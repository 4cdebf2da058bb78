package handlers

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"kitchen/internal/auth"
)

func TestRequireRolesRedirectsAnonymous(t *testing.T) {
	env := newTestEnv(t)
	dishType := env.dishType("Mains")

	tests := []struct {
		name    string
		handler http.HandlerFunc
		target  string
		vars    map[string]string
	}{
		{"dish type list", DishTypeList, "/dish-types/", nil},
		{"dish type detail", DishTypeDetail, "/dish-types/1/", idVars(dishType.ID)},
		{"dish list", DishList, "/dishes/", nil},
		{"cook list", CookList, "/cooks/", nil},
		{"index", Index, "/", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(RequireRoles(auth.AnyStaff, tt.handler), env.request(http.MethodGet, tt.target, nil, nil, tt.vars))
			if w.Code == http.StatusOK {
				t.Fatal("anonymous request must not succeed")
			}
			assertRedirect(t, w, "/login")
		})
	}
}

func TestRequireRolesPolicies(t *testing.T) {
	env := newTestEnv(t)
	trainee := env.cook("trainee", "trainee")
	employee := env.cook("employee", "employee")
	manager := env.cook("manager", "manager")
	nobody := env.cook("nobody", "")
	root := env.superuser("root")

	tests := []struct {
		name     string
		required auth.RoleSet
		cook     string
		want     int
	}{
		{"trainee reads lists", auth.AnyStaff, "trainee", http.StatusOK},
		{"trainee cannot edit menu", auth.Elevated, "trainee", http.StatusForbidden},
		{"employee edits menu", auth.Elevated, "employee", http.StatusOK},
		{"employee cannot manage cooks", auth.ManagerOnly, "employee", http.StatusForbidden},
		{"manager manages cooks", auth.ManagerOnly, "manager", http.StatusOK},
		{"cook without role cannot read", auth.AnyStaff, "nobody", http.StatusForbidden},
		{"superuser bypasses groups", auth.ManagerOnly, "root", http.StatusOK},
	}

	byName := map[string]uint{
		"trainee":  trainee.ID,
		"employee": employee.ID,
		"manager":  manager.ID,
		"nobody":   nobody.ID,
		"root":     root.ID,
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				if p := PrincipalFrom(r.Context()); p == nil || p.CookID != byName[tt.cook] {
					t.Fatalf("expected principal for %s in context, got %+v", tt.cook, p)
				}
				w.WriteHeader(http.StatusOK)
			})
			cook, err := env.store.FindCook(context.Background(), byName[tt.cook])
			if err != nil {
				t.Fatalf("FindCook() error = %v", err)
			}
			w := serve(RequireRoles(tt.required, next), env.request(http.MethodGet, "/", nil, cook, nil))
			if w.Code != tt.want {
				t.Fatalf("expected status %d, got %d", tt.want, w.Code)
			}
			if reached != (tt.want == http.StatusOK) {
				t.Fatalf("handler reached = %v for status %d", reached, tt.want)
			}
		})
	}
}

func TestTraineeCannotCreateDishType(t *testing.T) {
	env := newTestEnv(t)
	trainee := env.cook("trainee", "trainee")

	req := env.request(http.MethodPost, "/dish-types/create/", url.Values{"name": {"Soups"}}, trainee, nil)
	w := serve(RequireRoles(auth.Elevated, http.HandlerFunc(DishTypeCreate)), req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", w.Code)
	}
	page, err := env.store.ListDishTypes(context.Background(), "", 1)
	if err != nil {
		t.Fatalf("ListDishTypes() error = %v", err)
	}
	if page.Total != 0 {
		t.Fatalf("forbidden request must not create rows, found %d", page.Total)
	}
}

func TestRequireAuthenticationAllowsCookWithoutRole(t *testing.T) {
	env := newTestEnv(t)
	nobody := env.cook("nobody", "")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	if w := serve(RequireAuthentication(next), env.request(http.MethodPost, "/preferences", nil, nobody, nil)); w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", w.Code)
	}
	w := serve(RequireAuthentication(next), env.request(http.MethodPost, "/preferences", nil, nil, nil))
	assertRedirect(t, w, "/login")
}
