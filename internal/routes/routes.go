// Package routes names every HTTP route once so the router, redirects and
// templates build the same paths.
package routes

import (
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
)

const (
	Index       = "index"
	Login       = "login"
	Logout      = "logout"
	Preferences = "preferences"
	Health      = "health"

	DishTypeList   = "dish-type-list"
	DishTypeCreate = "dish-type-create"
	DishTypeDetail = "dish-type-detail"
	DishTypeUpdate = "dish-type-update"
	DishTypeDelete = "dish-type-delete"

	DishList             = "dish-list"
	DishCreate           = "dish-create"
	DishDetail           = "dish-detail"
	DishUpdate           = "dish-update"
	DishDelete           = "dish-delete"
	DishUpdateIngredient = "dish-update-ingredient"
	DishUpdateCook       = "dish-update-cook"

	IngredientList   = "ingredient-list"
	IngredientCreate = "ingredient-create"
	IngredientDetail = "ingredient-detail"
	IngredientUpdate = "ingredient-update"
	IngredientDelete = "ingredient-delete"
	IngredientImport = "ingredient-import"

	CookList   = "cook-list"
	CookCreate = "cook-create"
	CookDetail = "cook-detail"
	CookUpdate = "cook-update"
	CookDelete = "cook-delete"

	APIToken            = "api-token"
	APIDishTypeList     = "api-dish-type-list"
	APIDishTypeDetail   = "api-dish-type-detail"
	APIDishList         = "api-dish-list"
	APIDishDetail       = "api-dish-detail"
	APIIngredientList   = "api-ingredient-list"
	APIIngredientDetail = "api-ingredient-detail"
	APICookList         = "api-cook-list"
	APICookDetail       = "api-cook-detail"
)

var patterns = map[string]string{
	Index:       "/",
	Login:       "/login",
	Logout:      "/logout",
	Preferences: "/preferences",
	Health:      "/healthz",

	DishTypeList:   "/dish-types/",
	DishTypeCreate: "/dish-types/create/",
	DishTypeDetail: "/dish-types/{id:[0-9]+}/",
	DishTypeUpdate: "/dish-types/{id:[0-9]+}/update/",
	DishTypeDelete: "/dish-types/{id:[0-9]+}/delete/",

	DishList:             "/dishes/",
	DishCreate:           "/dishes/create/",
	DishDetail:           "/dishes/{id:[0-9]+}/",
	DishUpdate:           "/dishes/{id:[0-9]+}/update/",
	DishDelete:           "/dishes/{id:[0-9]+}/delete/",
	DishUpdateIngredient: "/dishes/{id:[0-9]+}/update-ingredient/",
	DishUpdateCook:       "/dishes/{id:[0-9]+}/update-cook/",

	IngredientList:   "/ingredients/",
	IngredientCreate: "/ingredients/create/",
	IngredientDetail: "/ingredients/{id:[0-9]+}/",
	IngredientUpdate: "/ingredients/{id:[0-9]+}/update/",
	IngredientDelete: "/ingredients/{id:[0-9]+}/delete/",
	IngredientImport: "/ingredients/import/",

	CookList:   "/cooks/",
	CookCreate: "/cooks/create/",
	CookDetail: "/cooks/{id:[0-9]+}/",
	CookUpdate: "/cooks/{id:[0-9]+}/update/",
	CookDelete: "/cooks/{id:[0-9]+}/delete/",

	APIToken:            "/api/token",
	APIDishTypeList:     "/api/v1/dish-types/",
	APIDishTypeDetail:   "/api/v1/dish-types/{id:[0-9]+}/",
	APIDishList:         "/api/v1/dishes/",
	APIDishDetail:       "/api/v1/dishes/{id:[0-9]+}/",
	APIIngredientList:   "/api/v1/ingredients/",
	APIIngredientDetail: "/api/v1/ingredients/{id:[0-9]+}/",
	APICookList:         "/api/v1/cooks/",
	APICookDetail:       "/api/v1/cooks/{id:[0-9]+}/",
}

// Pattern returns the gorilla/mux path template registered under name.
func Pattern(name string) string {
	return patterns[name]
}

// Names lists every registered route name.
func Names() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	return names
}

// reverser holds every pattern as a named mux route, used only to build
// URLs. The serving router registers the same patterns with handlers.
var reverser = newReverser()

func newReverser() *mux.Router {
	router := mux.NewRouter()
	for name, pattern := range patterns {
		router.NewRoute().Name(name).Path(pattern)
	}
	return router
}

// Path builds the URL for name from key/value pairs, e.g.
// Path(DishDetail, "id", "4") returns "/dishes/4/". Unknown names and values
// that do not fit the pattern return "/".
func Path(name string, pairs ...string) string {
	route := reverser.Get(name)
	if route == nil {
		return "/"
	}
	u, err := route.URL(pairs...)
	if err != nil {
		return "/"
	}
	return u.String()
}

// ID is Path for the common single {id} routes.
func ID(name string, id uint) string {
	return Path(name, "id", strconv.FormatUint(uint64(id), 10))
}

// WithQuery appends non-empty query values to a path.
func WithQuery(path string, values url.Values) string {
	for key, vals := range values {
		if len(vals) == 0 || (len(vals) == 1 && vals[0] == "") {
			values.Del(key)
		}
	}
	if encoded := values.Encode(); encoded != "" {
		return path + "?" + encoded
	}
	return path
}
