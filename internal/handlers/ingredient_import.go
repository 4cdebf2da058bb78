package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	applog "kitchen/internal/log"
	"kitchen/internal/store"
	"kitchen/internal/views/components"
	"kitchen/internal/views/pages"
)

const maxSheetUploadSize = 5 << 20 // 5 MiB

var errUnsupportedSheet = errors.New("unsupported sheet type")

// IngredientImport creates the ingredients listed in an uploaded PDF or text
// sheet, one name per line, plus any names pasted into the form.
func IngredientImport(w http.ResponseWriter, r *http.Request) {
	frame := frameFor(r, "Import ingredients", components.SectionIngredients)
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		renderComponent(w, r, pages.IngredientImport(frame, pages.IngredientImportData{}))
		return
	case http.MethodPost:
	default:
		methodNotAllowed(w, r, "GET, POST")
		return
	}

	fail := func(status int, message string) {
		renderStatus(w, r, status, pages.IngredientImport(frame, pages.IngredientImportData{Error: message}))
	}

	if err := r.ParseMultipartForm(maxSheetUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		applog.Error(r.Context(), "failed to parse ingredient import form", "error", err)
		fail(http.StatusBadRequest, "Upload is too large or invalid. Please retry with a smaller file.")
		return
	}

	text := r.FormValue("names")
	fileName, data, mime, err := readSheetUpload(r)
	if err != nil {
		applog.Error(r.Context(), "ingredient sheet read failed", "error", err)
		fail(http.StatusBadRequest, "Unable to read the uploaded file. Please try again.")
		return
	}
	if len(data) > 0 {
		extracted, err := sheetText(data, mime)
		if err != nil {
			applog.Debug(r.Context(), "ingredient sheet not readable", "file", fileName, "mime", mime, "error", err)
			fail(http.StatusUnprocessableEntity, "We couldn't read that document. Upload a PDF or a plain text file.")
			return
		}
		text += "\n" + extracted
	}

	names := sheetLines(text)
	if len(names) == 0 {
		fail(http.StatusUnprocessableEntity, "Provide ingredient names or upload a sheet before running the import.")
		return
	}

	result, err := kitchenStore.ImportIngredients(r.Context(), names)
	if verr, ok := store.AsValidation(err); ok {
		fail(http.StatusUnprocessableEntity, verr.Field("sheet"))
		return
	}
	if handleStoreError(w, r, err, "import ingredients") {
		return
	}

	applog.Info(r.Context(), "ingredients imported", "created", len(result.Created), "existing", len(result.Existing))
	message := fmt.Sprintf("Imported %s, %s already present.",
		pluralize(len(result.Created), "new ingredient", "new ingredients"), pluralize(len(result.Existing), "was", "were"))
	renderComponent(w, r, pages.IngredientImport(frame, pages.IngredientImportData{Message: message, Result: &result}))
}

func readSheetUpload(r *http.Request) (string, []byte, string, error) {
	file, header, err := r.FormFile("sheet")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil, "", nil
		}
		return "", nil, "", err
	}
	defer file.Close()

	if header.Size > maxSheetUploadSize {
		return "", nil, "", fmt.Errorf("file exceeds %d bytes", maxSheetUploadSize)
	}

	buf := bytes.NewBuffer(make([]byte, 0, header.Size))
	if _, err := io.Copy(buf, file); err != nil {
		return "", nil, "", err
	}

	mime := header.Header.Get("Content-Type")
	if mime == "" || mime == "application/octet-stream" {
		mime = mimeTypeFromName(header.Filename)
	}
	return header.Filename, buf.Bytes(), mime, nil
}

func sheetText(data []byte, mime string) (string, error) {
	lower := strings.ToLower(mime)
	switch {
	case strings.Contains(lower, "pdf"):
		return extractTextFromPDF(data)
	case strings.HasPrefix(lower, "text/"):
		return string(data), nil
	default:
		return "", errUnsupportedSheet
	}
}

func extractTextFromPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

func mimeTypeFromName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".csv":
		return "text/plain"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// sheetLines splits text into candidate names, dropping bullets and blank
// lines.
func sheetLines(text string) []string {
	var names []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*•"))
		if line == "" {
			continue
		}
		names = append(names, line)
	}
	return names
}
