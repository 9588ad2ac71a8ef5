package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/workplace-hq/workplace-api/internal/core/ports"
)

// PlaceHandler handles HTTP requests for place operations.
type PlaceHandler struct {
	service ports.PlaceService
}

func NewPlaceHandler(service ports.PlaceService) *PlaceHandler {
	return &PlaceHandler{service: service}
}

// Create handles POST /places (multipart/form-data). The request is
// rejected before any storage call when a file part is missing or
// empty, a text field is absent, or capacity/isActive fail to parse.
// Checks run in that order so the client always sees the earliest
// problem.
//
// @Summary      Create a place with poster and video uploads
// @Tags         places
// @Accept       multipart/form-data
// @Produce      json
// @Param        poster          formData  file    true  "Poster image (JPEG)"
// @Param        video           formData  file    true  "Presentation video (MP4)"
// @Param        name            formData  string  true  "Place name"
// @Param        description     formData  string  true  "Place description"
// @Param        capacity        formData  int     true  "Seating capacity"
// @Param        isActive        formData  bool    true  "Whether the place accepts bookings"
// @Param        posterFileName  formData  string  true  "Logical poster file name"
// @Param        videoFileName   formData  string  true  "Logical video file name"
// @Success      201  {object}  domain.Place
// @Failure      400  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /places [post]
func (h *PlaceHandler) Create(c echo.Context) error {
	poster, err := formFile(c, "poster")
	if err != nil {
		return err
	}
	video, err := formFile(c, "video")
	if err != nil {
		return err
	}

	var form placeForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	capacity, err := strconv.Atoi(form.Capacity)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "capacity must be an integer")
	}
	if capacity < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "capacity must not be negative")
	}
	isActive, err := strconv.ParseBool(form.IsActive)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "isActive must be a boolean")
	}

	posterFile, err := poster.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "poster file unreadable")
	}
	defer posterFile.Close()

	videoFile, err := video.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "video file unreadable")
	}
	defer videoFile.Close()

	place, err := h.service.Create(c.Request().Context(), ports.CreatePlaceInput{
		Name:           form.Name,
		Description:    form.Description,
		Capacity:       capacity,
		IsActive:       isActive,
		PosterFileName: form.PosterFileName,
		VideoFileName:  form.VideoFileName,
	}, posterFile, videoFile)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, place)
}

// GetAll handles GET /places.
//
// @Summary      List all places
// @Tags         places
// @Produce      json
// @Success      200  {array}  domain.Place
// @Router       /places [get]
func (h *PlaceHandler) GetAll(c echo.Context) error {
	places, err := h.service.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, places)
}

// GetByID handles GET /places/:id.
//
// @Summary      Get a place by id
// @Tags         places
// @Produce      json
// @Param        id  path  string  true  "Place id (UUID)"
// @Success      200  {object}  domain.Place
// @Failure      404  {object}  errorResponse
// @Router       /places/{id} [get]
func (h *PlaceHandler) GetByID(c echo.Context) error {
	place, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, place)
}

// Delete handles DELETE /places/:id.
//
// @Summary      Delete a place and its media
// @Tags         places
// @Param        id  path  string  true  "Place id (UUID)"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /places/{id} [delete]
func (h *PlaceHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// formFile fetches a named multipart file part and rejects absent or
// zero-length uploads.
func formFile(c echo.Context, name string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(name)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" file is required")
	}
	if fh.Size == 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" file is empty")
	}
	return fh, nil
}
