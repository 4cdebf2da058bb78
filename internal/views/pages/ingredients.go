package pages

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"kitchen/internal/routes"
	"kitchen/internal/store"
	"kitchen/internal/views/components"
	"kitchen/models"
)

// IngredientList renders one page of ingredients.
func IngredientList(frame Frame, query string, page store.Page[models.Ingredient]) templ.Component {
	return Shell(frame, components.Func(func(m *components.Markup) {
		heading(m, "Ingredients")
		if frame.Viewer.CanEditMenu {
			m.Raw(`<p class="actions">`)
			link(m, routes.Path(routes.IngredientCreate), "Create ingredient")
			m.Raw(" ")
			link(m, routes.Path(routes.IngredientImport), "Import sheet")
			m.Raw("</p>")
		}
		m.Component(components.SearchForm(routes.Path(routes.IngredientList), "name", query, "Search by name"))
		if len(page.Items) == 0 {
			m.Raw(`<p class="empty">There are no ingredients.</p>`)
		} else {
			m.Raw(`<ul class="records">`)
			for _, ingredient := range page.Items {
				m.Raw("<li>")
				link(m, routes.ID(routes.IngredientDetail, ingredient.ID), ingredient.Name)
				m.Raw("</li>")
			}
			m.Raw("</ul>")
		}
		m.Component(components.Pagination(routes.Path(routes.IngredientList), "name", query, page.Number, page.NumPages))
	}))
}

// IngredientDetail renders an ingredient and the dishes using it.
func IngredientDetail(frame Frame, ingredient *models.Ingredient) templ.Component {
	return Shell(frame, components.Func(func(m *components.Markup) {
		heading(m, ingredient.Name)
		if frame.Viewer.CanEditMenu {
			m.Raw(`<p class="actions">`)
			link(m, routes.ID(routes.IngredientUpdate, ingredient.ID), "Update")
			m.Raw(" ")
			link(m, routes.ID(routes.IngredientDelete, ingredient.ID), "Delete")
			m.Raw("</p>")
		}
		m.Raw("<h2>Used in</h2>")
		if len(ingredient.Dishes) == 0 {
			m.Raw(`<p class="empty">Not used in any dish.</p>`)
			return
		}
		m.Raw(`<ul class="records">`)
		for _, dish := range ingredient.Dishes {
			m.Raw("<li>")
			link(m, routes.ID(routes.DishDetail, dish.ID), dish.Name)
			m.Raw("</li>")
		}
		m.Raw("</ul>")
	}))
}

// IngredientFormData is the state of the ingredient form.
type IngredientFormData struct {
	Action  string
	Cancel  string
	IsNew   bool
	Name    string
	DishIDs map[uint]bool
	Dishes  []models.Dish
	Errors  FormErrors
}

// IngredientForm renders the create and update form.
func IngredientForm(frame Frame, data IngredientFormData) templ.Component {
	return Shell(frame, components.Func(func(m *components.Markup) {
		if data.IsNew {
			heading(m, "Create ingredient")
		} else {
			heading(m, "Update ingredient")
		}
		formOpen(m, data.Action, "")
		inputField(m, data.Errors, "Name", "name", "text", data.Name)
		m.Raw(`<fieldset class="field"><legend>Dishes</legend>`)
		for _, dish := range data.Dishes {
			m.Raw(`<label><input type="checkbox" name="dishes"`)
			m.Attr("value", strconv.FormatUint(uint64(dish.ID), 10))
			m.Raw(components.Checked(data.DishIDs[dish.ID]), "> ")
			m.Text(dish.Name)
			m.Raw("</label>")
		}
		m.Component(components.FieldErrors(data.Errors.For("dishes")))
		m.Raw("</fieldset>")
		formClose(m, "Submit", data.Cancel)
	}))
}

// IngredientImportData is the state of the sheet import page.
type IngredientImportData struct {
	Message string
	Error   string
	Result  *store.ImportResult
}

// IngredientImport renders the upload form and the outcome of the last run.
func IngredientImport(frame Frame, data IngredientImportData) templ.Component {
	return Shell(frame, components.Func(func(m *components.Markup) {
		heading(m, "Import ingredients")
		m.Raw(`<p class="help">Upload a PDF or text sheet with one ingredient per line, or paste the list below.</p>`)
		if data.Error != "" {
			m.Raw(`<p class="import-error" role="alert">`)
			m.Text(data.Error)
			m.Raw("</p>")
		}
		if data.Message != "" {
			m.Raw(`<p class="import-message">`)
			m.Text(data.Message)
			m.Raw("</p>")
		}
		if data.Result != nil && len(data.Result.Created) > 0 {
			m.Raw(`<p>Created: `)
			m.Text(strings.Join(data.Result.Created, ", "))
			m.Raw("</p>")
		}
		formOpen(m, routes.Path(routes.IngredientImport), "multipart/form-data")
		m.Raw(`<p class="field"><label for="id_sheet">Sheet</label><input type="file" name="sheet" id="id_sheet" accept=".pdf,.txt,text/plain,application/pdf"></p>`)
		m.Raw(`<p class="field"><label for="id_names">Names</label><textarea name="names" id="id_names"></textarea></p>`)
		formClose(m, "Import", routes.Path(routes.IngredientList))
	}))
}
