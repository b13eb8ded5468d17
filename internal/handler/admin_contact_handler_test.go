package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/sanatech/marketing-api/internal/dto"
	"github.com/sanatech/marketing-api/internal/handler"
	"github.com/sanatech/marketing-api/internal/service"
)

type mockAdminContactService struct {
	listResp   dto.ContactListResponse
	getResp    dto.ContactResponse
	updateResp dto.ContactResponse
	err        error
	lastID     uint
	lastUpdate dto.ContactUpdateRequest
	deleted    []uint
}

func (m *mockAdminContactService) List(_ context.Context, req dto.ContactListRequest) (dto.ContactListResponse, error) {
	if m.err != nil {
		return dto.ContactListResponse{}, m.err
	}
	return m.listResp, nil
}

func (m *mockAdminContactService) Get(_ context.Context, id uint) (dto.ContactResponse, error) {
	m.lastID = id
	if m.err != nil {
		return dto.ContactResponse{}, m.err
	}
	return m.getResp, nil
}

func (m *mockAdminContactService) Update(_ context.Context, id uint, req dto.ContactUpdateRequest) (dto.ContactResponse, error) {
	m.lastID = id
	m.lastUpdate = req
	if m.err != nil {
		return dto.ContactResponse{}, m.err
	}
	return m.updateResp, nil
}

func (m *mockAdminContactService) Delete(_ context.Context, id uint) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func adminContactTestApp(svc *mockAdminContactService) *fiber.App {
	app := fiber.New()
	handler.NewAdminContactHandler(svc, testLogger()).Register(app.Group("/api/contact"), noopMiddleware)
	return app
}

func TestAdminContactHandlerList(t *testing.T) {
	svc := &mockAdminContactService{listResp: dto.ContactListResponse{
		Items:      []dto.ContactResponse{{ID: 1, Name: "Jane Doe", Status: "new"}},
		Pagination: dto.PaginationMeta{Page: 1, Limit: 10, Total: 1, Pages: 1},
	}}
	app := adminContactTestApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/contact?status=new&page=1&limit=10", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Status     string             `json:"status"`
		Results    int                `json:"results"`
		Pagination dto.PaginationMeta `json:"pagination"`
		Data       struct {
			Contacts []dto.ContactResponse `json:"contacts"`
		} `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, "success", response.Status)
	require.Equal(t, 1, response.Results)
	require.Equal(t, int64(1), response.Pagination.Total)
	require.Len(t, response.Data.Contacts, 1)
}

func TestAdminContactHandlerListBadPage(t *testing.T) {
	app := adminContactTestApp(&mockAdminContactService{})

	req := httptest.NewRequest(http.MethodGet, "/api/contact?page=abc", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAdminContactHandlerGetNotFound(t *testing.T) {
	svc := &mockAdminContactService{err: service.ErrContactNotFound}
	app := adminContactTestApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/contact/42", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var response struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, "error", response.Status)
	require.Equal(t, "Contact not found", response.Message)
}

func TestAdminContactHandlerUpdate(t *testing.T) {
	svc := &mockAdminContactService{updateResp: dto.ContactResponse{ID: 7, Status: "replied"}}
	app := adminContactTestApp(svc)

	status := "replied"
	resp := putJSON(t, app, "/api/contact/7", dto.ContactUpdateRequest{Status: &status})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, uint(7), svc.lastID)
	require.NotNil(t, svc.lastUpdate.Status)
	require.Equal(t, "replied", *svc.lastUpdate.Status)
}

func TestAdminContactHandlerUpdateInvalidStatus(t *testing.T) {
	svc := &mockAdminContactService{err: service.ErrInvalidContactStatus}
	app := adminContactTestApp(svc)

	status := "archived"
	resp := putJSON(t, app, "/api/contact/7", dto.ContactUpdateRequest{Status: &status})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAdminContactHandlerDelete(t *testing.T) {
	svc := &mockAdminContactService{}
	app := adminContactTestApp(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/contact/3", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, []uint{3}, svc.deleted)

	var response struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, "Contact deleted successfully", response.Message)
}

func TestAdminContactHandlerInvalidID(t *testing.T) {
	app := adminContactTestApp(&mockAdminContactService{})

	req := httptest.NewRequest(http.MethodGet, "/api/contact/not-a-number", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
