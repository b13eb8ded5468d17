package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/sanatech/marketing-api/internal/dto"
	"github.com/sanatech/marketing-api/internal/handler"
)

type mockUploadService struct {
	response   dto.UploadResponse
	uploadErr  error
	deletedURL string
	deleteErr  error
}

func (m *mockUploadService) Upload(_ context.Context, file *multipart.FileHeader, _ *uint) (dto.UploadResponse, error) {
	if m.uploadErr != nil {
		return dto.UploadResponse{}, m.uploadErr
	}
	return m.response, nil
}

func (m *mockUploadService) Delete(_ context.Context, imageURL string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedURL = imageURL
	return nil
}

func uploadTestApp(svc *mockUploadService) *fiber.App {
	app := fiber.New()
	handler.NewUploadHandler(svc, testLogger()).Register(app.Group("/api/upload"), noopMiddleware)
	return app
}

func postImage(t *testing.T, app *fiber.App, field string) *http.Response {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, "logo.png")
	require.NoError(t, err)
	_, err = part.Write([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A})
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload/image", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func deleteJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestUploadHandlerImageFieldAccepted(t *testing.T) {
	svc := &mockUploadService{response: dto.UploadResponse{URL: "https://cdn.example.com/logo.png", MimeType: "image"}}
	app := uploadTestApp(svc)

	resp := postImage(t, app, "image")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Status string             `json:"status"`
		Data   dto.UploadResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, "success", response.Status)
	require.Equal(t, "https://cdn.example.com/logo.png", response.Data.URL)
}

func TestUploadHandlerMissingImageField(t *testing.T) {
	app := uploadTestApp(&mockUploadService{})

	resp := postImage(t, app, "attachment")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var response struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, "error", response.Status)
	require.Equal(t, "No image file provided", response.Message)
}

func TestUploadHandlerDeleteImage(t *testing.T) {
	svc := &mockUploadService{}
	app := uploadTestApp(svc)

	resp := deleteJSON(t, app, "/api/upload/image", dto.UploadDeleteRequest{ImageURL: "https://cdn.example.com/logo.png"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, "success", response.Status)
	require.Equal(t, "Image deleted successfully", response.Message)
	require.Equal(t, "https://cdn.example.com/logo.png", svc.deletedURL)
}

func TestUploadHandlerDeleteRequiresURL(t *testing.T) {
	svc := &mockUploadService{}
	app := uploadTestApp(svc)

	resp := deleteJSON(t, app, "/api/upload/image", dto.UploadDeleteRequest{})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var response struct {
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, "Image URL is required", response.Message)
	require.Empty(t, svc.deletedURL)
}

func TestUploadHandlerDeleteStorageFailure(t *testing.T) {
	svc := &mockUploadService{deleteErr: errors.New("cdn unreachable")}
	app := uploadTestApp(svc)

	resp := deleteJSON(t, app, "/api/upload/image", dto.UploadDeleteRequest{ImageURL: "https://cdn.example.com/logo.png"})
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var response struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, "error", response.Status)
	require.Equal(t, "failed to delete image", response.Message)
}
