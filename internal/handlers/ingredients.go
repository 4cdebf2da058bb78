package handlers

import (
	"net/http"

	applog "kitchen/internal/log"
	"kitchen/internal/routes"
	"kitchen/internal/store"
	"kitchen/internal/views/components"
	"kitchen/internal/views/pages"
	"kitchen/models"
)

// IngredientList renders the filtered, paginated ingredient list.
func IngredientList(w http.ResponseWriter, r *http.Request) {
	query, page, err := listParams(r, "name")
	if handleStoreError(w, r, err, "parse ingredient page") {
		return
	}
	result, err := kitchenStore.ListIngredients(r.Context(), query, page)
	if handleStoreError(w, r, err, "list ingredients") {
		return
	}
	renderComponent(w, r, pages.IngredientList(frameFor(r, "Ingredients", components.SectionIngredients), query, result))
}

// IngredientDetail renders an ingredient and the dishes using it.
func IngredientDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		renderError(w, r, http.StatusNotFound, "The requested record does not exist.")
		return
	}
	ingredient, err := kitchenStore.GetIngredient(r.Context(), id)
	if handleStoreError(w, r, err, "load ingredient") {
		return
	}
	renderComponent(w, r, pages.IngredientDetail(frameFor(r, ingredient.Name, components.SectionIngredients), ingredient))
}

func saveIngredient(w http.ResponseWriter, r *http.Request, data pages.IngredientFormData, title string, save func(store.IngredientInput) (*models.Ingredient, error)) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	verr := &store.ValidationError{}
	input := store.IngredientInput{
		Name:    r.PostFormValue("name"),
		DishIDs: parseIDList(r.PostForm["dishes"], "dishes", verr),
	}
	data.Name = input.Name
	data.DishIDs = idSet(input.DishIDs)

	var ingredient *models.Ingredient
	err := verr.Err()
	if err == nil {
		ingredient, err = save(input)
	}
	if verr, ok := store.AsValidation(err); ok {
		applog.Debug(r.Context(), "ingredient form invalid", "errors", verr.Error())
		data.Errors = pages.FormErrors{ValidationError: verr}
		dishes, err := kitchenStore.AllDishes(r.Context())
		if handleStoreError(w, r, err, "load dish choices") {
			return
		}
		data.Dishes = dishes
		renderStatus(w, r, http.StatusUnprocessableEntity, pages.IngredientForm(frameFor(r, title, components.SectionIngredients), data))
		return
	}
	if handleStoreError(w, r, err, "save ingredient") {
		return
	}
	applog.Info(r.Context(), "ingredient saved", "id", ingredient.ID, "name", ingredient.Name)
	setFlash(r.Context(), "Ingredient saved.")
	redirectTo(w, r, routes.ID(routes.IngredientDetail, ingredient.ID))
}

// IngredientCreate shows and processes the create form.
func IngredientCreate(w http.ResponseWriter, r *http.Request) {
	data := pages.IngredientFormData{
		Action: routes.Path(routes.IngredientCreate),
		Cancel: routes.Path(routes.IngredientList),
		IsNew:  true,
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		dishes, err := kitchenStore.AllDishes(r.Context())
		if handleStoreError(w, r, err, "load dish choices") {
			return
		}
		data.Dishes = dishes
		renderComponent(w, r, pages.IngredientForm(frameFor(r, "Create ingredient", components.SectionIngredients), data))
	case http.MethodPost:
		saveIngredient(w, r, data, "Create ingredient", func(input store.IngredientInput) (*models.Ingredient, error) {
			return kitchenStore.CreateIngredient(r.Context(), input)
		})
	default:
		methodNotAllowed(w, r, "GET, POST")
	}
}

// IngredientUpdate shows and processes the update form.
func IngredientUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		renderError(w, r, http.StatusNotFound, "The requested record does not exist.")
		return
	}
	data := pages.IngredientFormData{
		Action: routes.ID(routes.IngredientUpdate, id),
		Cancel: routes.ID(routes.IngredientDetail, id),
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		ingredient, err := kitchenStore.GetIngredient(r.Context(), id)
		if handleStoreError(w, r, err, "load ingredient") {
			return
		}
		dishes, err := kitchenStore.AllDishes(r.Context())
		if handleStoreError(w, r, err, "load dish choices") {
			return
		}
		data.Name = ingredient.Name
		data.Dishes = dishes
		data.DishIDs = make(map[uint]bool, len(ingredient.Dishes))
		for _, dish := range ingredient.Dishes {
			data.DishIDs[dish.ID] = true
		}
		renderComponent(w, r, pages.IngredientForm(frameFor(r, "Update ingredient", components.SectionIngredients), data))
	case http.MethodPost:
		saveIngredient(w, r, data, "Update ingredient", func(input store.IngredientInput) (*models.Ingredient, error) {
			return kitchenStore.UpdateIngredient(r.Context(), id, input)
		})
	default:
		methodNotAllowed(w, r, "GET, POST")
	}
}

// IngredientDelete confirms on GET and deletes on POST.
func IngredientDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		renderError(w, r, http.StatusNotFound, "The requested record does not exist.")
		return
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		ingredient, err := kitchenStore.GetIngredient(r.Context(), id)
		if handleStoreError(w, r, err, "load ingredient") {
			return
		}
		renderComponent(w, r, pages.ConfirmDelete(frameFor(r, "Delete ingredient", components.SectionIngredients),
			"ingredient", ingredient.Name, "", routes.ID(routes.IngredientDelete, id), routes.ID(routes.IngredientDetail, id)))
	case http.MethodPost:
		if handleStoreError(w, r, kitchenStore.DeleteIngredient(r.Context(), id), "delete ingredient") {
			return
		}
		applog.Info(r.Context(), "ingredient deleted", "id", id)
		setFlash(r.Context(), "Ingredient deleted.")
		redirectTo(w, r, routes.Path(routes.IngredientList))
	default:
		methodNotAllowed(w, r, "GET, POST")
	}
}
