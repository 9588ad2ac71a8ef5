package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/workplace-hq/workplace-api/internal/core/domain"
	"github.com/workplace-hq/workplace-api/internal/core/ports"
)

type stubPlaceService struct {
	createCalls int
	place       *domain.Place
	err         error
}

func (s *stubPlaceService) Create(_ context.Context, input ports.CreatePlaceInput, _, _ io.Reader) (*domain.Place, error) {
	s.createCalls++
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Place{
		ID:          "b2a1c3d4-0000-4000-8000-000000000042",
		Name:        input.Name,
		Description: input.Description,
		Capacity:    input.Capacity,
		IsActive:    input.IsActive,
		PosterURL:   "https://cdn.example.com/media/places-posters/x_" + input.PosterFileName,
		VideoURL:    "https://cdn.example.com/media/places-videos/x_" + input.VideoFileName,
	}, nil
}

func (s *stubPlaceService) GetAll(_ context.Context) ([]domain.Place, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Place{*s.place}, nil
}

func (s *stubPlaceService) GetByID(_ context.Context, _ string) (*domain.Place, error) {
	return s.place, s.err
}

func (s *stubPlaceService) Delete(_ context.Context, _ string) error { return s.err }

// multipartBody builds a multipart form with the given text fields and
// file parts. A nil file value means the part is omitted entirely.
func multipartBody(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			t.Fatalf("write field %s: %v", name, err)
		}
	}
	for name, content := range files {
		fw, err := w.CreateFormFile(name, name+".bin")
		if err != nil {
			t.Fatalf("create file %s: %v", name, err)
		}
		if _, err := fw.Write(content); err != nil {
			t.Fatalf("write file %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, w.FormDataContentType()
}

func validFields() map[string]string {
	return map[string]string{
		"name":           "Main Hall",
		"description":    "Large events hall",
		"capacity":       "120",
		"isActive":       "true",
		"posterFileName": "hall.jpg",
		"videoFileName":  "hall.mp4",
	}
}

func newMultipartContext(t *testing.T, fields map[string]string, files map[string][]byte) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	body, contentType := multipartBody(t, fields, files)
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/places", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestPlaceHandler_Create_Created(t *testing.T) {
	svc := &stubPlaceService{}
	h := NewPlaceHandler(svc)

	c, rec := newMultipartContext(t, validFields(), map[string][]byte{
		"poster": []byte("jpeg-bytes"),
		"video":  []byte("mp4-bytes"),
	})
	if err := h.Create(c); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.createCalls != 1 {
		t.Fatalf("expected one service call, got %d", svc.createCalls)
	}
}

func TestPlaceHandler_Create_MissingVideoPart(t *testing.T) {
	svc := &stubPlaceService{}
	h := NewPlaceHandler(svc)

	c, _ := newMultipartContext(t, validFields(), map[string][]byte{
		"poster": []byte("jpeg-bytes"),
	})
	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if svc.createCalls != 0 {
		t.Fatalf("service must not be called when a file part is missing")
	}
}

func TestPlaceHandler_Create_EmptyPosterPart(t *testing.T) {
	svc := &stubPlaceService{}
	h := NewPlaceHandler(svc)

	c, _ := newMultipartContext(t, validFields(), map[string][]byte{
		"poster": {},
		"video":  []byte("mp4-bytes"),
	})
	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if svc.createCalls != 0 {
		t.Fatalf("service must not be called for an empty upload")
	}
}

func TestPlaceHandler_Create_MissingTextField(t *testing.T) {
	svc := &stubPlaceService{}
	h := NewPlaceHandler(svc)

	fields := validFields()
	delete(fields, "description")
	c, _ := newMultipartContext(t, fields, map[string][]byte{
		"poster": []byte("jpeg-bytes"),
		"video":  []byte("mp4-bytes"),
	})
	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if svc.createCalls != 0 {
		t.Fatalf("service must not be called when a text field is missing")
	}
}

func TestPlaceHandler_Create_BadCapacity(t *testing.T) {
	svc := &stubPlaceService{}
	h := NewPlaceHandler(svc)

	fields := validFields()
	fields["capacity"] = "a lot"
	c, _ := newMultipartContext(t, fields, map[string][]byte{
		"poster": []byte("jpeg-bytes"),
		"video":  []byte("mp4-bytes"),
	})
	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if svc.createCalls != 0 {
		t.Fatalf("service must not be called when capacity does not parse")
	}
}

func TestPlaceHandler_Create_NegativeCapacity(t *testing.T) {
	svc := &stubPlaceService{}
	h := NewPlaceHandler(svc)

	fields := validFields()
	fields["capacity"] = "-5"
	c, _ := newMultipartContext(t, fields, map[string][]byte{
		"poster": []byte("jpeg-bytes"),
		"video":  []byte("mp4-bytes"),
	})
	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if svc.createCalls != 0 {
		t.Fatalf("service must not be called for a negative capacity")
	}
}

func TestPlaceHandler_Create_BadIsActive(t *testing.T) {
	svc := &stubPlaceService{}
	h := NewPlaceHandler(svc)

	fields := validFields()
	fields["isActive"] = "maybe"
	c, _ := newMultipartContext(t, fields, map[string][]byte{
		"poster": []byte("jpeg-bytes"),
		"video":  []byte("mp4-bytes"),
	})
	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if svc.createCalls != 0 {
		t.Fatalf("service must not be called when isActive does not parse")
	}
}

func TestPlaceHandler_GetByID_NotFound(t *testing.T) {
	svc := &stubPlaceService{err: domain.ErrPlaceNotFound}
	h := NewPlaceHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/places/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.GetByID(c); !errors.Is(err, domain.ErrPlaceNotFound) {
		t.Fatalf("expected ErrPlaceNotFound, got %v", err)
	}
}

func TestPlaceHandler_Delete_NoContent(t *testing.T) {
	svc := &stubPlaceService{}
	h := NewPlaceHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/places/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := h.Delete(c); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
