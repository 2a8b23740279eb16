package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressid/mission-orders/internal/core/domain"
	"github.com/pressid/mission-orders/internal/db/tests"
)

func TestServer_CreateAssignment(t *testing.T) {
	handler := newTestServer(t, nil)

	type expected struct {
		code    int
		message string
	}
	for _, tc := range []struct {
		name     string
		body     func() CreateAssignmentRequest
		auth     func(*http.Request) *http.Request
		expected expected
	}{
		{
			name:     "no auth",
			body:     func() CreateAssignmentRequest { return validCreateRequest("1000000001") },
			auth:     func(r *http.Request) *http.Request { return r },
			expected: expected{code: http.StatusUnauthorized},
		},
		{
			name:     "wrong auth",
			body:     func() CreateAssignmentRequest { return validCreateRequest("1000000001") },
			auth:     authWrong,
			expected: expected{code: http.StatusUnauthorized},
		},
		{
			name: "malformed start date",
			body: func() CreateAssignmentRequest {
				req := validCreateRequest("1000000001")
				req.StartDate = "01/01/2024"
				return req
			},
			auth:     authOk,
			expected: expected{code: http.StatusBadRequest, message: "startDate: must be a date in YYYY-MM-DD format"},
		},
		{
			name: "missing full name",
			body: func() CreateAssignmentRequest {
				req := validCreateRequest("1000000001")
				req.FullName = "  "
				return req
			},
			auth:     authOk,
			expected: expected{code: http.StatusBadRequest, message: "fullName: is required"},
		},
		{
			name: "missing end date",
			body: func() CreateAssignmentRequest {
				req := validCreateRequest("1000000001")
				req.EndDate = ""
				return req
			},
			auth:     authOk,
			expected: expected{code: http.StatusBadRequest, message: "endDate: is required"},
		},
		{
			name: "start after end",
			body: func() CreateAssignmentRequest {
				req := validCreateRequest("1000000001")
				req.StartDate, req.EndDate = req.EndDate, req.StartDate
				return req
			},
			auth:     authOk,
			expected: expected{code: http.StatusBadRequest, message: "start date must not be after end date"},
		},
		{
			name:     "issued",
			body:     func() CreateAssignmentRequest { return validCreateRequest("1000000001") },
			auth:     authOk,
			expected: expected{code: http.StatusCreated},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req := tc.auth(httptest.NewRequest(http.MethodPost, "/v1/assignments", tests.JSONBody(t, tc.body())))
			rr := do(t, handler, req)
			require.Equal(t, tc.expected.code, rr.Code, rr.Body.String())
			switch tc.expected.code {
			case http.StatusBadRequest:
				msg := decode[GenericErrorMessage](t, rr)
				assert.Equal(t, tc.expected.message, msg.Message)
			case http.StatusCreated:
				a := decode[Assignment](t, rr)
				assert.NotEqual(t, uuid.Nil, a.Id)
				assert.True(t, strings.HasPrefix(a.AssignmentNumber, "AM-"))
				assert.Equal(t, domain.AssignmentStatusActive, a.Status)
				assert.Equal(t, domain.AssignmentStatusActive, a.CurrentStatus)
				assert.Equal(t, "Algérie Directe", a.Organization)
				assert.Equal(t, "2024-01-31", a.EndDate.String())
				require.NotNil(t, a.Journalist)
				assert.Equal(t, "1000000001", a.Journalist.NationalId)
				assert.NotEmpty(t, a.QRCodeData)
			}
		})
	}

	t.Run("invalid json", func(t *testing.T) {
		req := authOk(httptest.NewRequest(http.MethodPost, "/v1/assignments", strings.NewReader("{")))
		rr := do(t, handler, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestServer_GetAssignments(t *testing.T) {
	handler := newTestServer(t, nil)

	oran := validCreateRequest("2000000001")
	issue(t, handler, oran)

	algiers := validCreateRequest("2000000002")
	algiers.FullName = "Amina Haddad"
	algiers.MissionLocation = "Algiers"
	issue(t, handler, algiers)

	upcoming := validCreateRequest("2000000003")
	upcoming.StartDate, upcoming.EndDate = "2024-03-01", "2024-03-10"
	issue(t, handler, upcoming)

	for _, tc := range []struct {
		name     string
		url      string
		code     int
		total    uint
		items    int
		page     uint
		maxRes   uint
		statuses []domain.AssignmentStatus
	}{
		{name: "all", url: "/v1/assignments", code: http.StatusOK, total: 3, items: 3, page: 1, maxRes: 50},
		{name: "search by name", url: "/v1/assignments?query=amina", code: http.StatusOK, total: 1, items: 1, page: 1, maxRes: 50},
		{name: "search by location", url: "/v1/assignments?query=ORAN", code: http.StatusOK, total: 2, items: 2, page: 1, maxRes: 50},
		{name: "status upcoming", url: "/v1/assignments?status=upcoming", code: http.StatusOK, total: 1, items: 1, page: 1, maxRes: 50, statuses: []domain.AssignmentStatus{domain.AssignmentStatusUpcoming}},
		{name: "second page", url: "/v1/assignments?max_results=2&page=2", code: http.StatusOK, total: 3, items: 1, page: 2, maxRes: 2},
		{name: "sorted", url: "/v1/assignments?sort=-endDate,number", code: http.StatusOK, total: 3, items: 3, page: 1, maxRes: 50},
		{name: "unknown status", url: "/v1/assignments?status=revoked", code: http.StatusBadRequest},
		{name: "bad page", url: "/v1/assignments?page=-1", code: http.StatusBadRequest},
		{name: "unknown sort", url: "/v1/assignments?sort=password", code: http.StatusBadRequest},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(t, handler, authOk(httptest.NewRequest(http.MethodGet, tc.url, nil)))
			require.Equal(t, tc.code, rr.Code, rr.Body.String())
			if tc.code != http.StatusOK {
				return
			}
			resp := decode[AssignmentsPaginated](t, rr)
			assert.Equal(t, tc.total, resp.Meta.Total)
			assert.Equal(t, tc.page, resp.Meta.Page)
			assert.Equal(t, tc.maxRes, resp.Meta.MaxResults)
			assert.Len(t, resp.Items, tc.items)
			for i, s := range tc.statuses {
				assert.Equal(t, s, resp.Items[i].Status)
			}
		})
	}
}

func TestServer_GetAssignment(t *testing.T) {
	handler := newTestServer(t, nil)
	issued := issue(t, handler, validCreateRequest("3000000001"))

	for _, tc := range []struct {
		name string
		url  string
		code int
	}{
		{name: "found", url: "/v1/assignments/" + issued.Id.String(), code: http.StatusOK},
		{name: "not found", url: "/v1/assignments/" + uuid.NewString(), code: http.StatusNotFound},
		{name: "invalid id", url: "/v1/assignments/AM-1", code: http.StatusBadRequest},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(t, handler, authOk(httptest.NewRequest(http.MethodGet, tc.url, nil)))
			require.Equal(t, tc.code, rr.Code)
			if tc.code == http.StatusOK {
				got := decode[Assignment](t, rr)
				assert.Equal(t, issued.AssignmentNumber, got.AssignmentNumber)
				assert.Equal(t, issued.QRCodeData, got.QRCodeData)
			}
		})
	}
}

func TestServer_GetAssignmentDocument(t *testing.T) {
	handler := newTestServer(t, nil)
	body := validCreateRequest("4000000001")
	issued := issue(t, handler, body)

	rr := do(t, handler, authOk(httptest.NewRequest(http.MethodGet, "/v1/assignments/"+issued.Id.String()+"/document", nil)))
	require.Equal(t, http.StatusOK, rr.Code)
	doc := decode[MissionOrderDocument](t, rr)
	assert.Equal(t, issued.AssignmentNumber, doc.AssignmentNumber)
	assert.Equal(t, "4000000001", doc.RegistrationNumber)
	assert.Equal(t, "Karim Benali", doc.FullName)
	assert.Equal(t, "Karim", doc.Title)
	assert.Equal(t, issued.QRCodeData, doc.QRCodeData)

	rr = do(t, handler, authOk(httptest.NewRequest(http.MethodGet, "/v1/assignments/"+uuid.NewString()+"/document", nil)))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestServer_GetStats(t *testing.T) {
	handler := newTestServer(t, nil)
	issue(t, handler, validCreateRequest("5000000001"))
	expired := validCreateRequest("5000000002")
	expired.StartDate, expired.EndDate = "2023-12-01", "2023-12-31"
	issue(t, handler, expired)

	rr := do(t, handler, authOk(httptest.NewRequest(http.MethodGet, "/v1/stats", nil)))
	require.Equal(t, http.StatusOK, rr.Code)
	stats := decode[Stats](t, rr)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Active)
	assert.Equal(t, 1, stats.Expired)
	assert.Equal(t, 0, stats.Upcoming)
	assert.Len(t, stats.Recent, 2)
}
