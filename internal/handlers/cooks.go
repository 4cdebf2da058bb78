package handlers

import (
	"net/http"
	"strconv"

	"kitchen/internal/auth"
	applog "kitchen/internal/log"
	"kitchen/internal/routes"
	"kitchen/internal/store"
	"kitchen/internal/views/components"
	"kitchen/internal/views/pages"
	"kitchen/models"
)

// CookList renders the filtered, paginated cook list.
func CookList(w http.ResponseWriter, r *http.Request) {
	query, page, err := listParams(r, "username")
	if handleStoreError(w, r, err, "parse cook page") {
		return
	}
	result, err := kitchenStore.ListCooks(r.Context(), query, page)
	if handleStoreError(w, r, err, "list cooks") {
		return
	}
	renderComponent(w, r, pages.CookList(frameFor(r, "Cooks", components.SectionCooks), query, result))
}

// CookDetail renders a cook with their role and dishes.
func CookDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		renderError(w, r, http.StatusNotFound, "The requested record does not exist.")
		return
	}
	cook, err := kitchenStore.GetCook(r.Context(), id)
	if handleStoreError(w, r, err, "load cook") {
		return
	}
	renderComponent(w, r, pages.CookDetail(frameFor(r, cook.Username, components.SectionCooks), cook))
}

func roleChoices() []string {
	names := make([]string, 0, len(auth.Roles))
	for _, role := range auth.Roles {
		names = append(names, string(role))
	}
	return names
}

func cookFormFromRequest(r *http.Request, data *pages.CookFormData) (store.CookInput, *store.ValidationError) {
	verr := &store.ValidationError{}
	data.Username = r.PostFormValue("username")
	data.FirstName = r.PostFormValue("first_name")
	data.LastName = r.PostFormValue("last_name")
	data.Years = r.PostFormValue("years_of_experience")
	data.Role = r.PostFormValue("role")
	return store.CookInput{
		Username:          data.Username,
		FirstName:         data.FirstName,
		LastName:          data.LastName,
		YearsOfExperience: parseOptionalInt(data.Years, "years_of_experience", verr),
		Role:              data.Role,
	}, verr
}

func saveCook(w http.ResponseWriter, r *http.Request, data pages.CookFormData, title string, save func(store.CookInput) (*models.Cook, error)) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	input, verr := cookFormFromRequest(r, &data)

	var cook *models.Cook
	err := verr.Err()
	if err == nil {
		cook, err = save(input)
	}
	if verr, ok := store.AsValidation(err); ok {
		applog.Debug(r.Context(), "cook form invalid", "errors", verr.Error())
		data.Errors = pages.FormErrors{ValidationError: verr}
		renderStatus(w, r, http.StatusUnprocessableEntity, pages.CookForm(frameFor(r, title, components.SectionCooks), data))
		return
	}
	if handleStoreError(w, r, err, "save cook") {
		return
	}
	applog.Info(r.Context(), "cook saved", "id", cook.ID, "username", cook.Username, "role", cook.RoleName())
	setFlash(r.Context(), "Cook saved.")
	redirectTo(w, r, routes.ID(routes.CookDetail, cook.ID))
}

// CookCreate shows and processes the create form, including the password pair.
func CookCreate(w http.ResponseWriter, r *http.Request) {
	data := pages.CookFormData{
		Action: routes.Path(routes.CookCreate),
		Cancel: routes.Path(routes.CookList),
		IsNew:  true,
		Roles:  roleChoices(),
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		renderComponent(w, r, pages.CookForm(frameFor(r, "Create cook", components.SectionCooks), data))
	case http.MethodPost:
		saveCook(w, r, data, "Create cook", func(input store.CookInput) (*models.Cook, error) {
			return kitchenStore.CreateCook(r.Context(), store.NewCookInput{
				CookInput: input,
				Password1: r.PostFormValue("password1"),
				Password2: r.PostFormValue("password2"),
			})
		})
	default:
		methodNotAllowed(w, r, "GET, POST")
	}
}

// CookUpdate shows and processes the update form. The role select replaces
// whatever role the cook held before.
func CookUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		renderError(w, r, http.StatusNotFound, "The requested record does not exist.")
		return
	}
	data := pages.CookFormData{
		Action: routes.ID(routes.CookUpdate, id),
		Cancel: routes.ID(routes.CookDetail, id),
		Roles:  roleChoices(),
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		cook, err := kitchenStore.GetCook(r.Context(), id)
		if handleStoreError(w, r, err, "load cook") {
			return
		}
		data.Username = cook.Username
		data.FirstName = cook.FirstName
		data.LastName = cook.LastName
		data.Role = cook.RoleName()
		if cook.YearsOfExperience != nil {
			data.Years = strconv.Itoa(*cook.YearsOfExperience)
		}
		renderComponent(w, r, pages.CookForm(frameFor(r, "Update cook", components.SectionCooks), data))
	case http.MethodPost:
		saveCook(w, r, data, "Update cook", func(input store.CookInput) (*models.Cook, error) {
			return kitchenStore.UpdateCook(r.Context(), id, input)
		})
	default:
		methodNotAllowed(w, r, "GET, POST")
	}
}

// CookDelete confirms on GET and deletes on POST.
func CookDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		renderError(w, r, http.StatusNotFound, "The requested record does not exist.")
		return
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		cook, err := kitchenStore.GetCook(r.Context(), id)
		if handleStoreError(w, r, err, "load cook") {
			return
		}
		renderComponent(w, r, pages.ConfirmDelete(frameFor(r, "Delete cook", components.SectionCooks),
			"cook", cook.Username, "", routes.ID(routes.CookDelete, id), routes.ID(routes.CookDetail, id)))
	case http.MethodPost:
		if handleStoreError(w, r, kitchenStore.DeleteCook(r.Context(), id), "delete cook") {
			return
		}
		applog.Info(r.Context(), "cook deleted", "id", id)
		setFlash(r.Context(), "Cook deleted.")
		redirectTo(w, r, routes.Path(routes.CookList))
	default:
		methodNotAllowed(w, r, "GET, POST")
	}
}
