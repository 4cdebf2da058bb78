package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	applog "kitchen/internal/log"
	"kitchen/internal/routes"
	"kitchen/internal/store"
	"kitchen/internal/views/components"
	"kitchen/internal/views/pages"
	"kitchen/models"
)

// DishList renders the filtered, paginated dish list.
func DishList(w http.ResponseWriter, r *http.Request) {
	query, page, err := listParams(r, "name")
	if handleStoreError(w, r, err, "parse dish page") {
		return
	}
	result, err := kitchenStore.ListDishes(r.Context(), query, page)
	if handleStoreError(w, r, err, "list dishes") {
		return
	}
	applog.Debug(r.Context(), "dishes listed", "query", query, "page", result.Number, "count", len(result.Items))
	renderComponent(w, r, pages.DishList(frameFor(r, "Dishes", components.SectionDishes), query, result))
}

// DishDetail renders a dish with its cooks and ingredients.
func DishDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		renderError(w, r, http.StatusNotFound, "The requested record does not exist.")
		return
	}
	dish, err := kitchenStore.GetDish(r.Context(), id)
	if handleStoreError(w, r, err, "load dish") {
		return
	}
	renderComponent(w, r, pages.DishDetail(frameFor(r, dish.Name, components.SectionDishes), dish))
}

// dishFormFromRequest reads the dish form. Parse problems are returned as
// field errors before the store sees the input.
func dishFormFromRequest(r *http.Request, data *pages.DishFormData) (store.DishInput, *store.ValidationError) {
	verr := &store.ValidationError{}
	data.Name = r.PostFormValue("name")
	data.Description = r.PostFormValue("description")
	data.Price = strings.TrimSpace(r.PostFormValue("price"))

	input := store.DishInput{Name: data.Name, Description: data.Description}
	if data.Price == "" {
		verr.Add("price", "This field is required.")
	} else if price, err := models.ParsePrice(data.Price); err != nil {
		verr.Add("price", "Enter a number with at most 2 decimal places.")
	} else {
		input.Price = price
	}

	if raw := strings.TrimSpace(r.PostFormValue("dish_type")); raw != "" {
		id, err := parseUint(raw)
		if err != nil {
			verr.Add("dish_type", "Select a valid choice.")
		}
		input.DishTypeID = id
		data.DishTypeID = id
	}

	input.CookIDs = parseIDList(r.PostForm["cooks"], "cooks", verr)
	data.CookIDs = idSet(input.CookIDs)
	return input, verr
}

func loadDishChoices(r *http.Request, data *pages.DishFormData) error {
	dishTypes, err := kitchenStore.AllDishTypes(r.Context())
	if err != nil {
		return err
	}
	cooks, err := kitchenStore.AllCooks(r.Context())
	if err != nil {
		return err
	}
	data.DishTypes = dishTypes
	data.Cooks = cooks
	return nil
}

func saveDish(w http.ResponseWriter, r *http.Request, data pages.DishFormData, title string, save func(store.DishInput) (*models.Dish, error)) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	input, verr := dishFormFromRequest(r, &data)
	var dish *models.Dish
	err := verr.Err()
	if err == nil {
		dish, err = save(input)
	}
	if verr, ok := store.AsValidation(err); ok {
		applog.Debug(r.Context(), "dish form invalid", "errors", verr.Error())
		data.Errors = pages.FormErrors{ValidationError: verr}
		if handleStoreError(w, r, loadDishChoices(r, &data), "load dish choices") {
			return
		}
		renderStatus(w, r, http.StatusUnprocessableEntity, pages.DishForm(frameFor(r, title, components.SectionDishes), data))
		return
	}
	if handleStoreError(w, r, err, "save dish") {
		return
	}
	applog.Info(r.Context(), "dish saved", "id", dish.ID, "name", dish.Name)
	setFlash(r.Context(), "Dish saved.")
	redirectTo(w, r, routes.ID(routes.DishDetail, dish.ID))
}

// DishCreate shows and processes the create form.
func DishCreate(w http.ResponseWriter, r *http.Request) {
	data := pages.DishFormData{
		Action: routes.Path(routes.DishCreate),
		Cancel: routes.Path(routes.DishList),
		IsNew:  true,
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if handleStoreError(w, r, loadDishChoices(r, &data), "load dish choices") {
			return
		}
		renderComponent(w, r, pages.DishForm(frameFor(r, "Create dish", components.SectionDishes), data))
	case http.MethodPost:
		saveDish(w, r, data, "Create dish", func(input store.DishInput) (*models.Dish, error) {
			return kitchenStore.CreateDish(r.Context(), input)
		})
	default:
		methodNotAllowed(w, r, "GET, POST")
	}
}

// DishUpdate shows and processes the update form.
func DishUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		renderError(w, r, http.StatusNotFound, "The requested record does not exist.")
		return
	}
	data := pages.DishFormData{
		Action: routes.ID(routes.DishUpdate, id),
		Cancel: routes.ID(routes.DishDetail, id),
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		dish, err := kitchenStore.GetDish(r.Context(), id)
		if handleStoreError(w, r, err, "load dish") {
			return
		}
		data.Name = dish.Name
		data.Description = dish.Description
		data.Price = dish.Price.String()
		data.DishTypeID = dish.DishTypeID
		data.CookIDs = make(map[uint]bool, len(dish.Cooks))
		for _, cook := range dish.Cooks {
			data.CookIDs[cook.ID] = true
		}
		if handleStoreError(w, r, loadDishChoices(r, &data), "load dish choices") {
			return
		}
		renderComponent(w, r, pages.DishForm(frameFor(r, "Update dish", components.SectionDishes), data))
	case http.MethodPost:
		saveDish(w, r, data, "Update dish", func(input store.DishInput) (*models.Dish, error) {
			return kitchenStore.UpdateDish(r.Context(), id, input)
		})
	default:
		methodNotAllowed(w, r, "GET, POST")
	}
}

// DishDelete confirms on GET and deletes on POST. The dish type is kept.
func DishDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		renderError(w, r, http.StatusNotFound, "The requested record does not exist.")
		return
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		dish, err := kitchenStore.GetDish(r.Context(), id)
		if handleStoreError(w, r, err, "load dish") {
			return
		}
		renderComponent(w, r, pages.ConfirmDelete(frameFor(r, "Delete dish", components.SectionDishes),
			"dish", dish.Name, "", routes.ID(routes.DishDelete, id), routes.ID(routes.DishDetail, id)))
	case http.MethodPost:
		if handleStoreError(w, r, kitchenStore.DeleteDish(r.Context(), id), "delete dish") {
			return
		}
		applog.Info(r.Context(), "dish deleted", "id", id)
		setFlash(r.Context(), "Dish deleted.")
		redirectTo(w, r, routes.Path(routes.DishList))
	default:
		methodNotAllowed(w, r, "GET, POST")
	}
}

// DishUpdateIngredient lists ingredients for the dish on GET and adds or
// removes one on POST, returning to the same picker page.
func DishUpdateIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		renderError(w, r, http.StatusNotFound, "The requested record does not exist.")
		return
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		query, page, err := listParams(r, "name")
		if handleStoreError(w, r, err, "parse ingredient page") {
			return
		}
		dish, err := kitchenStore.GetDish(r.Context(), id)
		if handleStoreError(w, r, err, "load dish") {
			return
		}
		result, err := kitchenStore.ListIngredients(r.Context(), query, page)
		if handleStoreError(w, r, err, "list ingredients") {
			return
		}
		renderComponent(w, r, pages.IngredientPicker(frameFor(r, "Ingredients for "+dish.Name, components.SectionDishes), dish, query, result))
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}
		ingredientID, err := parseUint(r.PostFormValue("ingredient_id"))
		if err != nil {
			applog.Debug(r.Context(), "invalid ingredient id", "value", r.PostFormValue("ingredient_id"))
			http.Error(w, "invalid ingredient", http.StatusBadRequest)
			return
		}
		action, err := store.ParseAction(r.PostFormValue("action"))
		if err != nil {
			http.Error(w, "invalid action", http.StatusBadRequest)
			return
		}
		if handleStoreError(w, r, kitchenStore.UpdateDishIngredient(r.Context(), id, ingredientID, action), "toggle dish ingredient") {
			return
		}
		applog.Debug(r.Context(), "dish ingredient toggled", "dish", id, "ingredient", ingredientID, "action", action)
		back := url.Values{"name": {r.PostFormValue("name")}, "page": {r.PostFormValue("page")}}
		redirectTo(w, r, routes.WithQuery(routes.ID(routes.DishUpdateIngredient, id), back))
	default:
		methodNotAllowed(w, r, "GET, POST")
	}
}

// DishUpdateCook assigns or removes a cook, by default the signed-in one.
func DishUpdateCook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, "POST")
		return
	}
	id, ok := pathID(r)
	if !ok {
		renderError(w, r, http.StatusNotFound, "The requested record does not exist.")
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	cookID := uint(0)
	if principal := PrincipalFrom(r.Context()); principal != nil {
		cookID = principal.CookID
	}
	if raw := strings.TrimSpace(r.PostFormValue("cook_id")); raw != "" {
		parsed, err := parseUint(raw)
		if err != nil {
			http.Error(w, "invalid cook", http.StatusBadRequest)
			return
		}
		cookID = parsed
	}
	action, err := store.ParseAction(r.PostFormValue("action"))
	if err != nil {
		http.Error(w, "invalid action", http.StatusBadRequest)
		return
	}

	err = kitchenStore.UpdateDishCook(r.Context(), id, cookID, action)
	if errors.Is(err, store.ErrNotFound) {
		renderError(w, r, http.StatusNotFound, "The dish or cook does not exist.")
		return
	}
	if handleStoreError(w, r, err, "toggle dish cook") {
		return
	}
	applog.Debug(r.Context(), "dish cook toggled", "dish", id, "cook", cookID, "action", action)
	redirectTo(w, r, routes.ID(routes.DishDetail, id))
}
