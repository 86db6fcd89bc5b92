package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creapolis/helpdesk-service/internal/domain"
	"github.com/creapolis/helpdesk-service/internal/events"
	"github.com/creapolis/helpdesk-service/internal/repository"
	apperrors "github.com/creapolis/helpdesk-service/pkg/util"
)

type fakeTicketRepo struct {
	tickets map[string]*domain.Ticket
	seq     int
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[string]*domain.Ticket{}}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.seq++
	ticket.ID = fmt.Sprintf("t-%d", r.seq)
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	stored := *ticket
	r.tickets[ticket.ID] = &stored
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (r *fakeTicketRepo) ListWithFilter(_ context.Context, _ repository.TicketFilter) ([]domain.Ticket, error) {
	result := make([]domain.Ticket, 0, len(r.tickets))
	for _, ticket := range r.tickets {
		result = append(result, *ticket)
	}
	return result, nil
}

func (r *fakeTicketRepo) UpdateStatus(_ context.Context, id string, status domain.TicketStatus) (*domain.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	ticket.Status = status
	ticket.UpdatedAt = time.Now()
	copied := *ticket
	return &copied, nil
}

func (r *fakeTicketRepo) UpdateAssignee(_ context.Context, id string, assignee *string) (*domain.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	ticket.AssignedTo = assignee
	ticket.UpdatedAt = time.Now()
	copied := *ticket
	return &copied, nil
}

func (r *fakeTicketRepo) Stats(_ context.Context, _ *string) (*repository.TicketStats, error) {
	return &repository.TicketStats{Total: int64(len(r.tickets))}, nil
}

type fakeCommentRepo struct {
	comments []domain.TicketComment
	seq      int
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *domain.TicketComment) error {
	r.seq++
	comment.ID = fmt.Sprintf("c-%d", r.seq)
	comment.CreatedAt = time.Now()
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *fakeCommentRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.TicketComment, error) {
	var result []domain.TicketComment
	for _, comment := range r.comments {
		if comment.TicketID == ticketID {
			result = append(result, comment)
		}
	}
	return result, nil
}

type fakeHistoryRepo struct {
	entries   []domain.TicketHistory
	appendErr error
	seq       int
}

func (r *fakeHistoryRepo) Append(_ context.Context, entry *domain.TicketHistory) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.seq++
	entry.ID = fmt.Sprintf("h-%d", r.seq)
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, *entry)
	return nil
}

// ListByTicket returns entries newest first, the way the timeline renders.
func (r *fakeHistoryRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.TicketHistory, error) {
	var result []domain.TicketHistory
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].TicketID == ticketID {
			result = append(result, r.entries[i])
		}
	}
	return result, nil
}

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context, _ repository.UserFilter) ([]domain.User, error) {
	var result []domain.User
	for _, user := range r.users {
		result = append(result, *user)
	}
	return result, nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) UpdateStatus(_ context.Context, id string, status domain.UserStatus) error {
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Status = status
	return nil
}

type fakeAssetRepo struct {
	assets map[string]*domain.Asset
}

func (r *fakeAssetRepo) GetByID(_ context.Context, id string) (*domain.Asset, error) {
	asset, ok := r.assets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *asset
	return &copied, nil
}

func (r *fakeAssetRepo) ListActive(_ context.Context, _ *string) ([]domain.Asset, error) {
	var result []domain.Asset
	for _, asset := range r.assets {
		if asset.Status == domain.AssetStatusActive {
			result = append(result, *asset)
		}
	}
	return result, nil
}

func (r *fakeAssetRepo) CountActive(_ context.Context) (int64, error) {
	assets, _ := r.ListActive(context.Background(), nil)
	return int64(len(assets)), nil
}

type ticketFixture struct {
	service  *TicketService
	tickets  *fakeTicketRepo
	comments *fakeCommentRepo
	history  *fakeHistoryRepo
	users    *fakeUserRepo
	events   *[]events.Event
}

func newTicketFixture(t *testing.T) *ticketFixture {
	t.Helper()

	ticketRepo := newFakeTicketRepo()
	commentRepo := &fakeCommentRepo{}
	historyRepo := &fakeHistoryRepo{}
	userRepo := &fakeUserRepo{users: map[string]*domain.User{
		"u-admin":   {ID: "u-admin", Email: "admin@example.com", FullName: "Ana Admin", Role: domain.UserRoleAdmin, Status: domain.UserStatusActive},
		"u-support": {ID: "u-support", Email: "sam@example.com", FullName: "Sam Support", Role: domain.UserRoleSupport, Status: domain.UserStatusActive},
		"u-end":     {ID: "u-end", Email: "eva@example.com", FullName: "Eva End", Role: domain.UserRoleUser, Status: domain.UserStatusActive},
	}}
	assetRepo := &fakeAssetRepo{assets: map[string]*domain.Asset{
		"a-1": {ID: "a-1", Name: "Laptop 12", Status: domain.AssetStatusActive},
	}}

	dispatcher := events.NewInMemoryDispatcher()
	var published []events.Event
	record := func(_ context.Context, event events.Event) error {
		published = append(published, event)
		return nil
	}
	dispatcher.Subscribe(events.EventTicketCreated, record)
	dispatcher.Subscribe(events.EventTicketStatusChanged, record)
	dispatcher.Subscribe(events.EventTicketAssigned, record)
	dispatcher.Subscribe(events.EventTicketCommentAdded, record)

	svc := NewTicketService(TicketDependencies{
		TicketRepo:  ticketRepo,
		CommentRepo: commentRepo,
		HistoryRepo: historyRepo,
		UserRepo:    userRepo,
		AssetRepo:   assetRepo,
		Dispatcher:  dispatcher,
	})
	return &ticketFixture{
		service:  svc,
		tickets:  ticketRepo,
		comments: commentRepo,
		history:  historyRepo,
		users:    userRepo,
		events:   &published,
	}
}

func (f *ticketFixture) createTicket(t *testing.T, actor Actor) *domain.Ticket {
	t.Helper()
	ticket, err := f.service.Create(context.Background(), actor, TicketCreateInput{
		Title:       "Printer offline",
		Description: "Third floor printer does not respond",
		Priority:    domain.TicketPriorityMedium,
		Category:    "hardware",
		Market:      "es",
	})
	require.NoError(t, err)
	return ticket
}

var endUser = Actor{ID: "u-end", Role: domain.UserRoleUser, FullName: "Eva End"}
var supportUser = Actor{ID: "u-support", Role: domain.UserRoleSupport, FullName: "Sam Support"}

func TestCreateTicketForcesOpenStatus(t *testing.T) {
	f := newTicketFixture(t)

	ticket := f.createTicket(t, endUser)

	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, "u-end", ticket.CreatedBy)
	assert.Nil(t, ticket.AssignedTo)

	history, err := f.service.ListHistory(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Empty(t, history, "creation itself does not write an audit entry")

	require.Len(t, *f.events, 1)
	assert.Equal(t, events.EventTicketCreated, (*f.events)[0].Type)
}

func TestCreateTicketValidation(t *testing.T) {
	f := newTicketFixture(t)

	_, err := f.service.Create(context.Background(), endUser, TicketCreateInput{
		Title:    "   ",
		Priority: domain.TicketPriority("urgent"),
	})
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Contains(t, domainErr.Details, "title")
	assert.Contains(t, domainErr.Details, "priority")
	assert.Empty(t, f.tickets.tickets)
}

func TestCreateTicketUnknownAsset(t *testing.T) {
	f := newTicketFixture(t)

	missing := "a-404"
	_, err := f.service.Create(context.Background(), endUser, TicketCreateInput{
		Title:       "Broken dock",
		Description: "Dock does not charge",
		Priority:    domain.TicketPriorityLow,
		Category:    "hardware",
		AssetID:     &missing,
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestUpdateStatusRecordsHistoryPerCall(t *testing.T) {
	f := newTicketFixture(t)
	ticket := f.createTicket(t, endUser)

	statuses := []domain.TicketStatus{
		domain.TicketStatusInProgress,
		domain.TicketStatusInProgress, // repeating the current status still audits
		domain.TicketStatusResolved,
	}
	for _, status := range statuses {
		mutation, err := f.service.UpdateStatus(context.Background(), supportUser, ticket.ID, status)
		require.NoError(t, err)
		require.NoError(t, mutation.Degraded)
		assert.Equal(t, status, mutation.Ticket.Status)
	}

	history, err := f.service.ListHistory(context.Background(), ticket.ID)
	require.NoError(t, err)
	require.Len(t, history, len(statuses))
	assert.Equal(t, "Changed status to resolved", history[0].Details)
	assert.Equal(t, domain.HistoryActionStatus, history[0].Action)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	f := newTicketFixture(t)
	ticket := f.createTicket(t, endUser)

	_, err := f.service.UpdateStatus(context.Background(), supportUser, ticket.ID, domain.TicketStatus("archived"))
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	stored, err := f.service.GetByID(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, stored.Status)
	assert.Empty(t, f.history.entries)
}

func TestUpdateStatusMissingTicket(t *testing.T) {
	f := newTicketFixture(t)

	_, err := f.service.UpdateStatus(context.Background(), supportUser, "t-404", domain.TicketStatusClosed)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestAssignRequiresStaffRole(t *testing.T) {
	f := newTicketFixture(t)
	ticket := f.createTicket(t, endUser)

	_, err := f.service.Assign(context.Background(), supportUser, ticket.ID, "u-end")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	stored, err := f.service.GetByID(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.AssignedTo)
	assert.Empty(t, f.history.entries)
}

func TestAssignAndClear(t *testing.T) {
	f := newTicketFixture(t)
	ticket := f.createTicket(t, endUser)

	mutation, err := f.service.Assign(context.Background(), supportUser, ticket.ID, "u-support")
	require.NoError(t, err)
	require.NoError(t, mutation.Degraded)
	require.NotNil(t, mutation.Ticket.AssignedTo)
	assert.Equal(t, "u-support", *mutation.Ticket.AssignedTo)

	mutation, err = f.service.Assign(context.Background(), supportUser, ticket.ID, "")
	require.NoError(t, err)
	assert.Nil(t, mutation.Ticket.AssignedTo)

	history, err := f.service.ListHistory(context.Background(), ticket.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "Unassigned the ticket", history[0].Details)
	assert.Equal(t, "Assigned the ticket to Sam Support", history[1].Details)
}

func TestAddCommentRejectsEmptyContent(t *testing.T) {
	f := newTicketFixture(t)
	ticket := f.createTicket(t, endUser)

	_, err := f.service.AddComment(context.Background(), endUser, ticket.ID, "   \n\t ")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	assert.Empty(t, f.comments.comments)
	assert.Empty(t, f.history.entries)
}

func TestAddCommentAppendsThreadAndHistory(t *testing.T) {
	f := newTicketFixture(t)
	ticket := f.createTicket(t, endUser)

	mutation, err := f.service.AddComment(context.Background(), supportUser, ticket.ID, "  On my way up  ")
	require.NoError(t, err)
	require.NoError(t, mutation.Degraded)
	assert.Equal(t, "On my way up", mutation.Comment.Content)
	assert.Equal(t, "u-support", mutation.Comment.UserID)

	comments, err := f.service.ListComments(context.Background(), ticket.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)

	history, err := f.service.ListHistory(context.Background(), ticket.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.HistoryActionComment, history[0].Action)
	assert.Equal(t, "Added a comment", history[0].Details)
}

func TestAddCommentMissingTicket(t *testing.T) {
	f := newTicketFixture(t)

	_, err := f.service.AddComment(context.Background(), endUser, "t-404", "hello")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestTicketLifecycleTimeline(t *testing.T) {
	f := newTicketFixture(t)
	admin := Actor{ID: "u-admin", Role: domain.UserRoleAdmin, FullName: "Ana Admin"}

	ticket := f.createTicket(t, endUser)

	_, err := f.service.UpdateStatus(context.Background(), admin, ticket.ID, domain.TicketStatusInProgress)
	require.NoError(t, err)
	_, err = f.service.Assign(context.Background(), admin, ticket.ID, "u-support")
	require.NoError(t, err)
	_, err = f.service.AddComment(context.Background(), supportUser, ticket.ID, "Replaced the toner")
	require.NoError(t, err)

	detail, err := f.service.GetDetail(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusInProgress, detail.Ticket.Status)
	require.Len(t, detail.Comments, 1)

	require.Len(t, detail.History, 3)
	assert.Equal(t, domain.HistoryActionComment, detail.History[0].Action)
	assert.Equal(t, domain.HistoryActionAssign, detail.History[1].Action)
	assert.Equal(t, domain.HistoryActionStatus, detail.History[2].Action)

	require.Len(t, *f.events, 4)
}

func TestHistoryAppendFailureDegradesMutation(t *testing.T) {
	f := newTicketFixture(t)
	ticket := f.createTicket(t, endUser)
	f.history.appendErr = errors.New("connection reset")

	mutation, err := f.service.UpdateStatus(context.Background(), supportUser, ticket.ID, domain.TicketStatusResolved)
	require.NoError(t, err, "the primary mutation stands")
	require.NotNil(t, mutation.Degraded)
	assert.True(t, apperrors.IsDegraded(mutation.Degraded))

	stored, err := f.service.GetByID(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusResolved, stored.Status, "the status change is never rolled back")

	history, err := f.service.ListHistory(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestGetDetailMissingTicket(t *testing.T) {
	f := newTicketFixture(t)

	_, err := f.service.GetDetail(context.Background(), "t-404")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
