package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sokohub/rfq-backend/internal/models"
	"github.com/sokohub/rfq-backend/internal/pkg/apperror"
)

type mockProjectStore struct {
	mock.Mock
}

func (m *mockProjectStore) CreateWithAward(ctx context.Context, project *models.Project) error {
	args := m.Called(ctx, project)
	if args.Error(0) == nil {
		project.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockProjectStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *mockProjectStore) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Project, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Project), args.Error(1)
}

func TestAssignmentService_AssignJob(t *testing.T) {
	ctx := context.Background()

	creator := uuid.New()
	vendor := uuid.New()

	rfqs := newMockRFQReader()
	quotes := newMockQuoteStore()
	projects := new(mockProjectStore)

	rfq := &models.RFQ{
		ID:         uuid.New(),
		CreatorID:  creator,
		Visibility: models.RFQVisibilityPublic,
		Status:     models.RFQStatusOpen,
	}
	rfqs.rfqs[rfq.ID] = rfq

	quote := &models.Quote{
		ID:       uuid.New(),
		RFQID:    rfq.ID,
		VendorID: vendor,
		Amount:   30000,
		Status:   models.QuoteStatusAccepted,
	}
	quotes.quotes[quote.ID] = quote

	projects.On("CreateWithAward", ctx, mock.AnythingOfType("*models.Project")).Return(nil)

	service := NewAssignmentService(rfqs, quotes, projects, nil)

	project, err := service.AssignJob(ctx, AssignJobInput{
		QuoteID: quote.ID,
		ActorID: creator,
	})

	assert.NoError(t, err)
	assert.NotNil(t, project)
	assert.Equal(t, quote.ID, project.QuoteID)
	assert.Equal(t, vendor, project.VendorID)
	assert.Equal(t, creator, project.CreatorID)
	assert.Equal(t, models.ProjectStatusActive, project.Status)
	projects.AssertExpectations(t)
}

func TestAssignmentService_AssignJobRequiresAcceptedQuote(t *testing.T) {
	ctx := context.Background()

	creator := uuid.New()
	vendor := uuid.New()

	rfqs := newMockRFQReader()
	quotes := newMockQuoteStore()
	projects := new(mockProjectStore)

	rfq := &models.RFQ{
		ID:         uuid.New(),
		CreatorID:  creator,
		Visibility: models.RFQVisibilityPublic,
		Status:     models.RFQStatusOpen,
	}
	rfqs.rfqs[rfq.ID] = rfq

	// Единственная котировка, но ещё не принятая
	quote := &models.Quote{
		ID:       uuid.New(),
		RFQID:    rfq.ID,
		VendorID: vendor,
		Amount:   30000,
		Status:   models.QuoteStatusSubmitted,
	}
	quotes.quotes[quote.ID] = quote

	service := NewAssignmentService(rfqs, quotes, projects, nil)

	_, err := service.AssignJob(ctx, AssignJobInput{QuoteID: quote.ID, ActorID: creator})
	assert.ErrorIs(t, err, apperror.ErrQuoteNotAccepted)

	// Отклонённая котировка тоже не годится
	quote.Status = models.QuoteStatusRejected
	_, err = service.AssignJob(ctx, AssignJobInput{QuoteID: quote.ID, ActorID: creator})
	assert.True(t, apperror.IsPrecondition(err))

	projects.AssertNotCalled(t, "CreateWithAward", mock.Anything, mock.Anything)
}

func TestAssignmentService_AssignJobCreatorOnly(t *testing.T) {
	ctx := context.Background()

	creator := uuid.New()
	vendor := uuid.New()

	rfqs := newMockRFQReader()
	quotes := newMockQuoteStore()
	projects := new(mockProjectStore)

	rfq := &models.RFQ{
		ID:         uuid.New(),
		CreatorID:  creator,
		Visibility: models.RFQVisibilityPublic,
		Status:     models.RFQStatusOpen,
	}
	rfqs.rfqs[rfq.ID] = rfq

	quote := &models.Quote{
		ID:       uuid.New(),
		RFQID:    rfq.ID,
		VendorID: vendor,
		Status:   models.QuoteStatusAccepted,
	}
	quotes.quotes[quote.ID] = quote

	service := NewAssignmentService(rfqs, quotes, projects, nil)

	// Даже сам поставщик не может назначить себе работу
	_, err := service.AssignJob(ctx, AssignJobInput{QuoteID: quote.ID, ActorID: vendor})
	assert.True(t, apperror.IsForbidden(err))

	_, err = service.AssignJob(ctx, AssignJobInput{QuoteID: uuid.New(), ActorID: creator})
	assert.True(t, apperror.IsNotFound(err))
}

func TestAssignmentService_GetProjectParticipantsOnly(t *testing.T) {
	ctx := context.Background()

	creator := uuid.New()
	vendor := uuid.New()
	projectID := uuid.New()

	projects := new(mockProjectStore)
	projects.On("GetByID", ctx, projectID).Return(&models.Project{
		ID:        projectID,
		CreatorID: creator,
		VendorID:  vendor,
	}, nil)

	service := NewAssignmentService(newMockRFQReader(), newMockQuoteStore(), projects, nil)

	_, err := service.GetProject(ctx, projectID, creator)
	assert.NoError(t, err)

	_, err = service.GetProject(ctx, projectID, vendor)
	assert.NoError(t, err)

	_, err = service.GetProject(ctx, projectID, uuid.New())
	assert.True(t, apperror.IsForbidden(err))
}
