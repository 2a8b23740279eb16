package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/pressid/mission-orders/internal/config"
	"github.com/pressid/mission-orders/internal/core/services"
	"github.com/pressid/mission-orders/internal/db/tests"
	"github.com/pressid/mission-orders/internal/health"
	"github.com/pressid/mission-orders/internal/log"
	"github.com/pressid/mission-orders/internal/repositories"
	"github.com/pressid/mission-orders/pkg/cache"
	"github.com/pressid/mission-orders/pkg/pubsub"
)

const (
	authUser     = "editor"
	authPassword = "secret"
)

var testNow = time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	log.Config(log.LevelDebug, log.OutputText, os.Stdout)
	os.Exit(m.Run())
}

type pinger struct {
	err error
}

func (p pinger) Ping(context.Context) error { return p.err }

// newTestServer wires the api over in memory repositories with a fixed clock
func newTestServer(t *testing.T, pingErr error) http.Handler {
	t.Helper()
	cfg := &config.Configuration{
		HTTPBasicAuth: config.HTTPBasicAuth{User: authUser, Password: authPassword},
	}
	now := func() time.Time { return testNow }
	assignments := repositories.NewAssignmentInMemory()
	publisher := pubsub.NewMock()

	assignmentSv := services.NewAssignment(services.AssignmentCfg{
		Organization: "Algérie Directe",
		Position:     "Press correspondent",
		Now:          now,
	}, tests.NoTx{}, services.NewJournalist(repositories.NewJournalistInMemory()), assignments, publisher, nil)
	verifySv := services.NewVerification(services.VerificationCfg{
		Now:      now,
		CacheTTL: time.Hour,
	}, assignments, repositories.NewVerificationLogInMemory(), cache.NewMemoryCache(), publisher, nil)

	server := NewServer(cfg, assignmentSv, verifySv, health.New(map[string]health.Ping{"db": pinger{err: pingErr}}))
	server.Now = now

	r := chi.NewRouter()
	server.Register(r)
	return r
}

func authOk(req *http.Request) *http.Request {
	req.SetBasicAuth(authUser, authPassword)
	return req
}

func authWrong(req *http.Request) *http.Request {
	req.SetBasicAuth(authUser, "wrong")
	return req
}

func do(t *testing.T, handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

func validCreateRequest(nationalID string) CreateAssignmentRequest {
	return CreateAssignmentRequest{
		FullName:        "Karim Benali",
		NationalID:      nationalID,
		Phone:           "+213555000111",
		MissionType:     "Election coverage",
		MissionLocation: "Oran",
		StartDate:       "2024-01-01",
		EndDate:         "2024-01-31",
		IssuedBy:        "Editorial board",
	}
}

// issue creates a mission order through the api and returns it
func issue(t *testing.T, handler http.Handler, body CreateAssignmentRequest) Assignment {
	t.Helper()
	req := authOk(httptest.NewRequest(http.MethodPost, "/v1/assignments", tests.JSONBody(t, body)))
	rr := do(t, handler, req)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[Assignment](t, rr)
}

var errPing = errors.New("connection refused")
