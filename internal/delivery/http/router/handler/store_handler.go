package handler

import (
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"storemap/internal/delivery/http/middleware"
	"storemap/internal/delivery/http/response"
	"storemap/internal/domain/entity"
	"storemap/internal/usecase"
)

// StoreHandler holds dependencies for store-related handlers.
type StoreHandler struct {
	uc     usecase.StoreUsecase
	logger *slog.Logger
}

// NewStoreHandler is the constructor for StoreHandler, injected by Fx.
func NewStoreHandler(uc usecase.StoreUsecase, logger *slog.Logger) *StoreHandler {
	return &StoreHandler{
		uc:     uc,
		logger: logger,
	}
}

// storeForm is the multipart form shared by create and update.
type storeForm struct {
	Name        string
	Description string
	Tags        []string
	Location    entity.Location
	Photo       *usecase.PhotoUpload
	closer      multipart.File
}

// Close releases the uploaded photo stream, if any.
func (f *storeForm) Close() {
	if f.closer != nil {
		f.closer.Close()
	}
}

// parseStoreForm reads the store fields out of a multipart form. The photo
// part is optional; its stream stays open until the caller closes the form.
func parseStoreForm(c echo.Context) (*storeForm, error) {
	form := &storeForm{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
	}

	if values, err := c.FormParams(); err == nil {
		form.Tags = values["tags"]
	}

	form.Location.Address = c.FormValue("address")

	lng, err := strconv.ParseFloat(c.FormValue("lng"), 64)
	if err != nil {
		return nil, errors.New("lng must be a number")
	}
	lat, err := strconv.ParseFloat(c.FormValue("lat"), 64)
	if err != nil {
		return nil, errors.New("lat must be a number")
	}
	form.Location.Longitude = lng
	form.Location.Latitude = lat

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		// No photo part is fine.
		return form, nil
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, errors.Wrap(err, "open uploaded photo")
	}
	form.closer = src
	form.Photo = &usecase.PhotoUpload{
		Reader:      src,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}

	return form, nil
}

// CreateStore handles the store creation request.
func (h *StoreHandler) CreateStore(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	form, err := parseStoreForm(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", err.Error())
	}
	defer form.Close()

	store, err := h.uc.CreateStore(c.Request().Context(), usecase.CreateStoreInput{
		AuthorID:    userID,
		Name:        form.Name,
		Description: form.Description,
		Tags:        form.Tags,
		Location:    form.Location,
		Photo:       form.Photo,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, store, "Store created successfully")
}

// UpdateStore handles the store edit request.
func (h *StoreHandler) UpdateStore(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid store ID")
	}

	form, err := parseStoreForm(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", err.Error())
	}
	defer form.Close()

	store, err := h.uc.UpdateStore(c.Request().Context(), usecase.UpdateStoreInput{
		StoreID:     storeID,
		EditorID:    userID,
		Name:        form.Name,
		Description: form.Description,
		Tags:        form.Tags,
		Location:    form.Location,
		Photo:       form.Photo,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, store, "Store updated successfully")
}

// GetStoreBySlug handles the single store page request.
func (h *StoreHandler) GetStoreBySlug(c echo.Context) error {
	store, err := h.uc.GetStoreBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, store, "Store retrieved successfully")
}

// GetStoreForEdit returns a store for editing, owners only.
func (h *StoreHandler) GetStoreForEdit(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid store ID")
	}

	store, err := h.uc.GetStoreForEdit(c.Request().Context(), storeID, userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, store, "Store retrieved successfully")
}

// ListStores handles the paginated store listing.
func (h *StoreHandler) ListStores(c echo.Context) error {
	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "page must be a number")
		}
		page = parsed
	}

	result, err := h.uc.ListStores(c.Request().Context(), page)
	if err != nil {
		return errors.WithStack(err)
	}

	// Asking past the end is a not found, not an empty page.
	if result.Total > 0 && len(result.Stores) == 0 {
		return response.NotFound(c, "PAGE_NOT_FOUND", "That page does not exist")
	}

	return response.Success(c, http.StatusOK, result, "Stores retrieved successfully")
}

// StoresByTag handles the tag navigation page. Without a tag parameter it
// lists every store that carries at least one tag.
func (h *StoreHandler) StoresByTag(c echo.Context) error {
	result, err := h.uc.StoresByTag(c.Request().Context(), c.Param("tag"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result, "Tags retrieved successfully")
}

// TopStores handles the best rated stores page.
func (h *StoreHandler) TopStores(c echo.Context) error {
	stores, err := h.uc.TopStores(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stores, "Top stores retrieved successfully")
}

// NearbyStores handles the map API request for stores around a point.
func (h *StoreHandler) NearbyStores(c echo.Context) error {
	lng, err := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "lng must be a number")
	}
	lat, err := strconv.ParseFloat(c.QueryParam("lat"), 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "lat must be a number")
	}

	stores, err := h.uc.NearbyStores(c.Request().Context(), lng, lat)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stores, "Nearby stores retrieved successfully")
}

// SearchStores handles the text search API request.
func (h *StoreHandler) SearchStores(c echo.Context) error {
	stores, err := h.uc.SearchStores(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stores, "Search results retrieved successfully")
}
