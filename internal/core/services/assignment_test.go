package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressid/mission-orders/internal/common"
	"github.com/pressid/mission-orders/internal/core/domain"
	"github.com/pressid/mission-orders/internal/core/event"
	"github.com/pressid/mission-orders/internal/core/ports"
	"github.com/pressid/mission-orders/internal/db"
	"github.com/pressid/mission-orders/internal/db/tests"
	"github.com/pressid/mission-orders/internal/repositories"
	"github.com/pressid/mission-orders/internal/timeapi"
)

func TestIssue(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	req := newIssueRequest(" 1987654321 ", timeapi.NewDate(2024, time.January, 1), timeapi.NewDate(2024, time.January, 31))
	req.RegistrationNumber = common.ToPointer("  ")
	req.Journalist.Email = common.ToPointer("karim@example.org")

	a, err := f.assignmentSv.Issue(ctx, req)
	require.NoError(t, err)
	assert.Regexp(t, `^AM-\d+-[0-9A-Z]{9}$`, a.Number)
	assert.Equal(t, domain.AssignmentStatusActive, a.Status)
	assert.Equal(t, "Algérie Directe", a.Organization)
	assert.Equal(t, "Press correspondent", a.Position)
	assert.Nil(t, a.RegistrationNumber)
	assert.NotEmpty(t, a.SignatureHash)
	assert.NotEmpty(t, a.EncryptionKey)
	assert.NotEqual(t, a.SignatureHash, a.EncryptionKey)

	payload, err := domain.ParsePayload(a.Payload)
	require.NoError(t, err)
	assert.Equal(t, a.Number, payload.AssignmentNumber)
	assert.Equal(t, "1987654321", payload.NationalID)
	assert.Equal(t, "Karim", payload.Title)
	assert.Equal(t, "2024-01-01", payload.StartDate)
	assert.Equal(t, "2024-01-31", payload.EndDate)
	assert.Equal(t, a.SignatureHash, payload.Signature)
	assert.Equal(t, "2024-01-01T10:00:00.000Z", payload.Timestamp)

	stored, err := f.assignmentSv.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Payload, stored.Payload)

	j, err := f.journalists.GetByNationalID(ctx, nil, "1987654321")
	require.NoError(t, err)
	assert.Equal(t, a.JournalistID, j.ID)

	published := f.publisher.Published()
	require.Len(t, published, 1)
	var ev event.AssignmentIssued
	require.NoError(t, ev.Unmarshal(published[0].Msg))
	assert.Equal(t, a.Number, ev.AssignmentNumber)
	assert.Equal(t, "active", ev.Status)
}

func TestIssueInitialStatus(t *testing.T) {
	today := timeapi.NewDate(2024, time.January, 1)
	for _, tc := range []struct {
		name     string
		start    timeapi.Date
		end      timeapi.Date
		expected domain.AssignmentStatus
	}{
		{name: "upcoming", start: today.AddDays(1), end: today.AddDays(5), expected: domain.AssignmentStatusUpcoming},
		{name: "active", start: today, end: today, expected: domain.AssignmentStatusActive},
		{name: "expired", start: today.AddDays(-5), end: today.AddDays(-1), expected: domain.AssignmentStatusExpired},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			a, err := f.assignmentSv.Issue(context.Background(), newIssueRequest("1", tc.start, tc.end))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, a.Status)
		})
	}
}

func TestIssueInIssuerTimeZone(t *testing.T) {
	algiers := time.FixedZone("CET", 3600)
	c := &clock{now: time.Date(2024, time.January, 31, 23, 30, 0, 0, time.UTC)}
	sv := NewAssignment(AssignmentCfg{Organization: "o", Position: "p", Location: algiers, Now: c.Now}, tests.NoTx{},
		NewJournalist(repositories.NewJournalistInMemory()), repositories.NewAssignmentInMemory(), nil, nil)

	a, err := sv.Issue(context.Background(), newIssueRequest("1", timeapi.NewDate(2024, time.January, 1), timeapi.NewDate(2024, time.January, 31)))
	require.NoError(t, err)
	assert.Equal(t, domain.AssignmentStatusExpired, a.Status)
}

func TestIssueReusesJournalist(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	first := f.issue(t, timeapi.NewDate(2024, time.January, 1), timeapi.NewDate(2024, time.January, 31))

	req := newIssueRequest("1987654321", timeapi.NewDate(2024, time.February, 1), timeapi.NewDate(2024, time.February, 2))
	req.Journalist.FullName = "Another Name"
	second, err := f.assignmentSv.Issue(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first.JournalistID, second.JournalistID)
	assert.Equal(t, "Karim Benali", second.Journalist.FullName)
}

func TestIssueValidation(t *testing.T) {
	start, end := timeapi.NewDate(2024, time.January, 1), timeapi.NewDate(2024, time.January, 31)
	for _, tc := range []struct {
		name   string
		modify func(req *ports.IssueAssignmentRequest)
		field  string
	}{
		{name: "national id", modify: func(r *ports.IssueAssignmentRequest) { r.Journalist.NationalID = " " }, field: "nationalId"},
		{name: "full name", modify: func(r *ports.IssueAssignmentRequest) { r.Journalist.FullName = "" }, field: "fullName"},
		{name: "phone", modify: func(r *ports.IssueAssignmentRequest) { r.Journalist.Phone = "" }, field: "phone"},
		{name: "mission type", modify: func(r *ports.IssueAssignmentRequest) { r.MissionType = "" }, field: "missionType"},
		{name: "mission location", modify: func(r *ports.IssueAssignmentRequest) { r.MissionLocation = "\t" }, field: "missionLocation"},
		{name: "issued by", modify: func(r *ports.IssueAssignmentRequest) { r.IssuedBy = "" }, field: "issuedBy"},
		{name: "start date", modify: func(r *ports.IssueAssignmentRequest) { r.StartDate = timeapi.Date{} }, field: "startDate"},
		{name: "end date", modify: func(r *ports.IssueAssignmentRequest) { r.EndDate = timeapi.Date{} }, field: "endDate"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			req := newIssueRequest("1", start, end)
			tc.modify(req)
			_, err := f.assignmentSv.Issue(context.Background(), req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}

	t.Run("inverted window", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.assignmentSv.Issue(context.Background(), newIssueRequest("1", end, start))
		assert.ErrorIs(t, err, ErrInvalidValidityWindow)
	})
}

type collidingAssignments struct {
	ports.AssignmentRepository
	collisions int
}

func (c *collidingAssignments) Save(ctx context.Context, conn db.Querier, a *domain.Assignment) error {
	if c.collisions > 0 {
		c.collisions--
		return repositories.ErrAssignmentNumberTaken
	}
	return c.AssignmentRepository.Save(ctx, conn, a)
}

func TestIssueRetriesAssignmentNumber(t *testing.T) {
	c := &clock{now: time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)}
	newService := func(collisions int) ports.AssignmentService {
		repo := &collidingAssignments{AssignmentRepository: repositories.NewAssignmentInMemory(), collisions: collisions}
		return NewAssignment(AssignmentCfg{Organization: "o", Position: "p", Now: c.Now}, tests.NoTx{},
			NewJournalist(repositories.NewJournalistInMemory()), repo, nil, nil)
	}
	req := func() *ports.IssueAssignmentRequest {
		return newIssueRequest("1", timeapi.NewDate(2024, time.January, 1), timeapi.NewDate(2024, time.January, 2))
	}

	_, err := newService(2).Issue(context.Background(), req())
	assert.NoError(t, err)

	_, err = newService(3).Issue(context.Background(), req())
	assert.ErrorIs(t, err, ErrAssignmentNumberExhausted)
}

func TestGetAllAndDashboard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	today := timeapi.NewDate(2024, time.January, 1)
	for i := 0; i < 7; i++ {
		f.clock.now = f.clock.now.Add(time.Minute)
		f.issue(t, today.AddDays(i-3), today.AddDays(i-2))
	}

	items, total, err := f.assignmentSv.GetAll(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, uint(7), total)
	assert.Len(t, items, 7)

	dashboard, err := f.assignmentSv.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.AssignmentStats{Total: 7, Expired: 2, Active: 2, Upcoming: 3}, dashboard.Stats)
	require.Len(t, dashboard.Recent, 5)
	assert.Equal(t, items[0].ID, dashboard.Recent[0].ID)

	doc, err := f.assignmentSv.Document(ctx, items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, items[0].Payload, doc.Payload)
	assert.Equal(t, "1987654321", doc.RegistrationNumber)
}

func TestGetByIDNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.assignmentSv.Document(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrAssignmentNotFound)
}
