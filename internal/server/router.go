package server

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"kitchen/internal/auth"
	"kitchen/internal/handlers"
	applog "kitchen/internal/log"
	"kitchen/internal/routes"
)

type guard func(http.Handler) http.Handler

func public(next http.Handler) http.Handler { return next }

func roles(required auth.RoleSet) guard {
	return func(next http.Handler) http.Handler {
		return handlers.RequireRoles(required, next)
	}
}

func token(required auth.RoleSet) guard {
	return func(next http.Handler) http.Handler {
		return handlers.RequireToken(required, next)
	}
}

type routeSpec struct {
	name    string
	handler http.HandlerFunc
	guard   guard
}

// routeTable binds every named route to its handler and access policy.
func routeTable() []routeSpec {
	staff, menu, managers := roles(auth.AnyStaff), roles(auth.Elevated), roles(auth.ManagerOnly)
	api := token(auth.AnyStaff)
	return []routeSpec{
		{routes.Health, handlers.Health, public},
		{routes.Login, handlers.Login, public},
		{routes.Logout, handlers.Logout, public},
		{routes.Preferences, handlers.UpdatePreferences, handlers.RequireAuthentication},
		{routes.Index, handlers.Index, staff},

		{routes.DishTypeList, handlers.DishTypeList, staff},
		{routes.DishTypeDetail, handlers.DishTypeDetail, staff},
		{routes.DishTypeCreate, handlers.DishTypeCreate, menu},
		{routes.DishTypeUpdate, handlers.DishTypeUpdate, menu},
		{routes.DishTypeDelete, handlers.DishTypeDelete, menu},

		{routes.DishList, handlers.DishList, staff},
		{routes.DishDetail, handlers.DishDetail, staff},
		{routes.DishCreate, handlers.DishCreate, menu},
		{routes.DishUpdate, handlers.DishUpdate, menu},
		{routes.DishDelete, handlers.DishDelete, menu},
		{routes.DishUpdateIngredient, handlers.DishUpdateIngredient, menu},
		{routes.DishUpdateCook, handlers.DishUpdateCook, menu},

		{routes.IngredientList, handlers.IngredientList, staff},
		{routes.IngredientDetail, handlers.IngredientDetail, staff},
		{routes.IngredientCreate, handlers.IngredientCreate, menu},
		{routes.IngredientUpdate, handlers.IngredientUpdate, menu},
		{routes.IngredientDelete, handlers.IngredientDelete, menu},
		{routes.IngredientImport, handlers.IngredientImport, menu},

		{routes.CookList, handlers.CookList, staff},
		{routes.CookDetail, handlers.CookDetail, staff},
		{routes.CookCreate, handlers.CookCreate, managers},
		{routes.CookUpdate, handlers.CookUpdate, managers},
		{routes.CookDelete, handlers.CookDelete, managers},

		{routes.APIToken, handlers.IssueToken, public},
		{routes.APIDishTypeList, handlers.APIDishTypeList, api},
		{routes.APIDishTypeDetail, handlers.APIDishTypeDetail, api},
		{routes.APIDishList, handlers.APIDishList, api},
		{routes.APIDishDetail, handlers.APIDishDetail, api},
		{routes.APIIngredientList, handlers.APIIngredientList, api},
		{routes.APIIngredientDetail, handlers.APIIngredientDetail, api},
		{routes.APICookList, handlers.APICookList, api},
		{routes.APICookDetail, handlers.APICookDetail, api},
	}
}

// newRouter registers the route table. metrics may be nil.
func newRouter(metrics *Metrics, metricsPath string) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	applog.Debug(context.Background(), "registering http routes")
	for _, spec := range routeTable() {
		router.Handle(routes.Pattern(spec.name), spec.guard(spec.handler)).Name(spec.name)
		applog.Debug(context.Background(), "route registered", "name", spec.name, "path", routes.Pattern(spec.name))
	}
	if metrics != nil {
		router.Use(metrics.Middleware)
		router.Handle(metricsPath, metrics.Handler()).Name("metrics")
		applog.Debug(context.Background(), "route registered", "name", "metrics", "path", metricsPath)
	}
	return router
}
