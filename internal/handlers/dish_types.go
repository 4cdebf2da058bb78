package handlers

import (
	"net/http"

	applog "kitchen/internal/log"
	"kitchen/internal/routes"
	"kitchen/internal/store"
	"kitchen/internal/views/components"
	"kitchen/internal/views/pages"
)

// DishTypeList renders the filtered, paginated dish type list.
func DishTypeList(w http.ResponseWriter, r *http.Request) {
	query, page, err := listParams(r, "name")
	if handleStoreError(w, r, err, "parse dish type page") {
		return
	}
	result, err := kitchenStore.ListDishTypes(r.Context(), query, page)
	if handleStoreError(w, r, err, "list dish types") {
		return
	}
	applog.Debug(r.Context(), "dish types listed", "query", query, "page", result.Number, "count", len(result.Items))
	renderComponent(w, r, pages.DishTypeList(frameFor(r, "Dish types", components.SectionDishTypes), query, result))
}

// DishTypeDetail renders a single dish type.
func DishTypeDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		renderError(w, r, http.StatusNotFound, "The requested record does not exist.")
		return
	}
	dishType, err := kitchenStore.GetDishType(r.Context(), id)
	if handleStoreError(w, r, err, "load dish type") {
		return
	}
	renderComponent(w, r, pages.DishTypeDetail(frameFor(r, dishType.Name, components.SectionDishTypes), dishType))
}

// DishTypeCreate shows and processes the create form.
func DishTypeCreate(w http.ResponseWriter, r *http.Request) {
	data := pages.DishTypeFormData{
		Action: routes.Path(routes.DishTypeCreate),
		Cancel: routes.Path(routes.DishTypeList),
		IsNew:  true,
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		renderComponent(w, r, pages.DishTypeForm(frameFor(r, "Create dish type", components.SectionDishTypes), data))
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}
		data.Name = r.PostFormValue("name")
		dishType, err := kitchenStore.CreateDishType(r.Context(), store.DishTypeInput{Name: data.Name})
		if verr, ok := store.AsValidation(err); ok {
			applog.Debug(r.Context(), "dish type form invalid", "errors", verr.Error())
			data.Errors = pages.FormErrors{ValidationError: verr}
			renderStatus(w, r, http.StatusUnprocessableEntity, pages.DishTypeForm(frameFor(r, "Create dish type", components.SectionDishTypes), data))
			return
		}
		if handleStoreError(w, r, err, "create dish type") {
			return
		}
		applog.Info(r.Context(), "dish type created", "id", dishType.ID, "name", dishType.Name)
		setFlash(r.Context(), "Dish type created.")
		redirectTo(w, r, routes.ID(routes.DishTypeDetail, dishType.ID))
	default:
		methodNotAllowed(w, r, "GET, POST")
	}
}

// DishTypeUpdate shows and processes the update form.
func DishTypeUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		renderError(w, r, http.StatusNotFound, "The requested record does not exist.")
		return
	}
	data := pages.DishTypeFormData{
		Action: routes.ID(routes.DishTypeUpdate, id),
		Cancel: routes.ID(routes.DishTypeDetail, id),
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		dishType, err := kitchenStore.GetDishType(r.Context(), id)
		if handleStoreError(w, r, err, "load dish type") {
			return
		}
		data.Name = dishType.Name
		renderComponent(w, r, pages.DishTypeForm(frameFor(r, "Update dish type", components.SectionDishTypes), data))
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}
		data.Name = r.PostFormValue("name")
		dishType, err := kitchenStore.UpdateDishType(r.Context(), id, store.DishTypeInput{Name: data.Name})
		if verr, ok := store.AsValidation(err); ok {
			data.Errors = pages.FormErrors{ValidationError: verr}
			renderStatus(w, r, http.StatusUnprocessableEntity, pages.DishTypeForm(frameFor(r, "Update dish type", components.SectionDishTypes), data))
			return
		}
		if handleStoreError(w, r, err, "update dish type") {
			return
		}
		applog.Info(r.Context(), "dish type updated", "id", dishType.ID)
		setFlash(r.Context(), "Dish type updated.")
		redirectTo(w, r, routes.ID(routes.DishTypeDetail, dishType.ID))
	default:
		methodNotAllowed(w, r, "GET, POST")
	}
}

// DishTypeDelete confirms on GET and deletes on POST, cascading to dishes.
func DishTypeDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		renderError(w, r, http.StatusNotFound, "The requested record does not exist.")
		return
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		dishType, err := kitchenStore.GetDishType(r.Context(), id)
		if handleStoreError(w, r, err, "load dish type") {
			return
		}
		notice := ""
		if n := len(dishType.Dishes); n > 0 {
			notice = pluralize(n, "dish", "dishes") + " of this type will be deleted as well."
		}
		renderComponent(w, r, pages.ConfirmDelete(frameFor(r, "Delete dish type", components.SectionDishTypes),
			"dish type", dishType.Name, notice, routes.ID(routes.DishTypeDelete, id), routes.ID(routes.DishTypeDetail, id)))
	case http.MethodPost:
		if handleStoreError(w, r, kitchenStore.DeleteDishType(r.Context(), id), "delete dish type") {
			return
		}
		applog.Info(r.Context(), "dish type deleted", "id", id)
		setFlash(r.Context(), "Dish type deleted.")
		redirectTo(w, r, routes.Path(routes.DishTypeList))
	default:
		methodNotAllowed(w, r, "GET, POST")
	}
}
