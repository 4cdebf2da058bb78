package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"
	"time"

	"kitchen/internal/auth"
	applog "kitchen/internal/log"
	"kitchen/internal/store"
	"kitchen/models"
)

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type pageResponse[T any] struct {
	Count    int64 `json:"count"`
	Page     int   `json:"page"`
	NumPages int   `json:"num_pages"`
	Results  []T   `json:"results"`
}

// IssueToken exchanges a username and password, sent as JSON or a form, for
// a signed bearer token.
func IssueToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if tokenIssuer == nil {
		writeJSONError(w, http.StatusServiceUnavailable, auth.ErrTokensDisabled.Error())
		return
	}

	var req tokenRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			applog.Debug(r.Context(), "invalid token request body", "error", err)
			writeJSONError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid form submission")
			return
		}
		req.Username = r.PostFormValue("username")
		req.Password = r.PostFormValue("password")
	}

	cook, err := kitchenStore.Authenticate(r.Context(), strings.TrimSpace(req.Username), req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		applog.Debug(r.Context(), "token request with invalid credentials", "username", req.Username)
		writeJSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		applog.Error(r.Context(), "failed to authenticate token request", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to issue token")
		return
	}

	token, expires, err := tokenIssuer.Issue(cook.ID)
	if err != nil {
		applog.Error(r.Context(), "failed to sign token", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to issue token")
		return
	}
	applog.Info(r.Context(), "api token issued", "cookID", cook.ID)
	writeJSON(w, http.StatusOK, tokenResponse{Token: token, ExpiresAt: expires.UTC()})
}

// RequireToken is RequireRoles for the JSON API: the principal comes from a
// bearer token and failures are answered with JSON 401/403 bodies.
func RequireToken(required auth.RoleSet, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cook, err := bearerCook(r)
		if err != nil && !errors.Is(err, auth.ErrUnauthenticated) {
			applog.Error(r.Context(), "failed to resolve token cook", "error", err)
			writeJSONError(w, http.StatusInternalServerError, "unable to load account")
			return
		}
		principal := auth.PrincipalFor(cook)

		switch err := auth.Authorize(principal, required); {
		case errors.Is(err, auth.ErrUnauthenticated):
			w.Header().Set("WWW-Authenticate", `Bearer realm="kitchen"`)
			writeJSONError(w, http.StatusUnauthorized, "authentication credentials were not provided or are invalid")
			return
		case errors.Is(err, auth.ErrForbidden):
			applog.Debug(r.Context(), "api request forbidden", "path", r.URL.Path, "cook", principal.Username)
			writeJSONError(w, http.StatusForbidden, "you do not have permission to perform this action")
			return
		}

		next.ServeHTTP(w, r.WithContext(withActor(r.Context(), cook, principal)))
	})
}

func bearerCook(r *http.Request) (*models.Cook, error) {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return nil, auth.ErrUnauthenticated
	}
	id, err := tokenIssuer.Verify(strings.TrimSpace(token))
	if err != nil {
		applog.Debug(r.Context(), "bearer token rejected", "error", err)
		return nil, auth.ErrUnauthenticated
	}
	if kitchenStore == nil {
		return nil, errStoreNotConfigured
	}
	cook, err := kitchenStore.FindCook(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, auth.ErrUnauthenticated
	}
	return cook, err
}

func apiList[T any](field string, list func(ctx context.Context, query string, page int) (store.Page[T], error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, page, err := listParams(r, field)
		if err == nil {
			var result store.Page[T]
			result, err = list(r.Context(), query, page)
			if err == nil {
				writeJSON(w, http.StatusOK, pageResponse[T]{
					Count:    result.Total,
					Page:     result.Number,
					NumPages: result.NumPages,
					Results:  result.Items,
				})
				return
			}
		}
		writeStoreErrorJSON(w, r, err)
	}
}

func apiDetail[T any](get func(ctx context.Context, id uint) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeJSONError(w, http.StatusNotFound, "not found")
			return
		}
		record, err := get(r.Context(), id)
		if err != nil {
			writeStoreErrorJSON(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
	}
}

func writeStoreErrorJSON(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrPageNotFound):
		writeJSONError(w, http.StatusNotFound, "invalid page")
	default:
		applog.Error(r.Context(), "api store operation failed", "path", r.URL.Path, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal error")
	}
}

// APIDishTypeList serves a JSON page of dish types.
func APIDishTypeList(w http.ResponseWriter, r *http.Request) {
	apiList("name", kitchenStore.ListDishTypes)(w, r)
}

// APIDishTypeDetail serves one dish type with its dishes.
func APIDishTypeDetail(w http.ResponseWriter, r *http.Request) {
	apiDetail(kitchenStore.GetDishType)(w, r)
}

// APIDishList serves a JSON page of dishes.
func APIDishList(w http.ResponseWriter, r *http.Request) {
	apiList("name", kitchenStore.ListDishes)(w, r)
}

// APIDishDetail serves one dish with its type, cooks and ingredients.
func APIDishDetail(w http.ResponseWriter, r *http.Request) {
	apiDetail(kitchenStore.GetDish)(w, r)
}

// APIIngredientList serves a JSON page of ingredients.
func APIIngredientList(w http.ResponseWriter, r *http.Request) {
	apiList("name", kitchenStore.ListIngredients)(w, r)
}

// APIIngredientDetail serves one ingredient with its dishes.
func APIIngredientDetail(w http.ResponseWriter, r *http.Request) {
	apiDetail(kitchenStore.GetIngredient)(w, r)
}

// APICookList serves a JSON page of cooks.
func APICookList(w http.ResponseWriter, r *http.Request) {
	apiList("username", kitchenStore.ListCooks)(w, r)
}

// APICookDetail serves one cook with role and dishes.
func APICookDetail(w http.ResponseWriter, r *http.Request) {
	apiDetail(kitchenStore.GetCook)(w, r)
}
