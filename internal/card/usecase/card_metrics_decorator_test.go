package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	cardDomain "github.com/allisson/cardvault/internal/card/domain"
	"github.com/allisson/cardvault/internal/metrics"
)

type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

var _ metrics.BusinessMetrics = (*mockBusinessMetrics)(nil)

type mockCardUseCase struct {
	mock.Mock
}

func (m *mockCardUseCase) Add(
	ctx context.Context,
	payload cardDomain.Payload,
	label string,
	force bool,
) (*cardDomain.Card, error) {
	args := m.Called(ctx, payload, label, force)
	if card := args.Get(0); card != nil {
		return card.(*cardDomain.Card), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCardUseCase) Get(ctx context.Context, id int64) (*cardDomain.Card, error) {
	args := m.Called(ctx, id)
	if card := args.Get(0); card != nil {
		return card.(*cardDomain.Card), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCardUseCase) List(ctx context.Context) ([]*cardDomain.Summary, error) {
	args := m.Called(ctx)
	if summaries := args.Get(0); summaries != nil {
		return summaries.([]*cardDomain.Summary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCardUseCase) Exists(ctx context.Context, cardNumber string) (bool, error) {
	args := m.Called(ctx, cardNumber)
	return args.Bool(0), args.Error(1)
}

func (m *mockCardUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockCardUseCase) Rename(ctx context.Context, id int64, label string) error {
	args := m.Called(ctx, id, label)
	return args.Error(0)
}

func (m *mockCardUseCase) Scan(ctx context.Context, text string) ([]*cardDomain.ScanResult, error) {
	args := m.Called(ctx, text)
	if results := args.Get(0); results != nil {
		return results.([]*cardDomain.ScanResult), args.Error(1)
	}
	return nil, args.Error(1)
}

var _ CardUseCase = (*mockCardUseCase)(nil)

func TestNewCardUseCaseWithMetrics(t *testing.T) {
	decorator := NewCardUseCaseWithMetrics(&mockCardUseCase{}, &mockBusinessMetrics{})

	assert.NotNil(t, decorator)
	assert.IsType(t, &cardUseCaseWithMetrics{}, decorator)
}

func TestCardUseCaseWithMetrics_Add(t *testing.T) {
	ctx := context.Background()
	payload := cardDomain.Payload{CardNumber: "4276 3801 2345 6787"}

	t.Run("Success_RecordsSuccessMetrics", func(t *testing.T) {
		mockNext := &mockCardUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		decorator := NewCardUseCaseWithMetrics(mockNext, mockMetrics)

		card := &cardDomain.Card{ID: 1, Label: "card-6787", Payload: payload}
		mockNext.On("Add", ctx, payload, "", false).Return(card, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "card", "card_add", "success").Once()
		mockMetrics.On("RecordDuration", ctx, "card", "card_add", mock.AnythingOfType("time.Duration"), "success").
			Once()

		got, err := decorator.Add(ctx, payload, "", false)
		assert.NoError(t, err)
		assert.Equal(t, card, got)

		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Error_RecordsErrorMetrics", func(t *testing.T) {
		mockNext := &mockCardUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		decorator := NewCardUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("Add", ctx, payload, "", false).Return(nil, cardDomain.ErrDuplicateCard).Once()
		mockMetrics.On("RecordOperation", ctx, "card", "card_add", "error").Once()
		mockMetrics.On("RecordDuration", ctx, "card", "card_add", mock.AnythingOfType("time.Duration"), "error").
			Once()

		got, err := decorator.Add(ctx, payload, "", false)
		assert.ErrorIs(t, err, cardDomain.ErrDuplicateCard)
		assert.Nil(t, got)

		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})
}

func TestCardUseCaseWithMetrics_Get(t *testing.T) {
	ctx := context.Background()

	mockNext := &mockCardUseCase{}
	mockMetrics := &mockBusinessMetrics{}
	decorator := NewCardUseCaseWithMetrics(mockNext, mockMetrics)

	mockNext.On("Get", ctx, int64(42)).Return(nil, cardDomain.ErrCardNotFound).Once()
	mockMetrics.On("RecordOperation", ctx, "card", "card_get", "error").Once()
	mockMetrics.On("RecordDuration", ctx, "card", "card_get", mock.AnythingOfType("time.Duration"), "error").
		Once()

	got, err := decorator.Get(ctx, 42)
	assert.ErrorIs(t, err, cardDomain.ErrCardNotFound)
	assert.Nil(t, got)

	mockNext.AssertExpectations(t)
	mockMetrics.AssertExpectations(t)
}

func TestCardUseCaseWithMetrics_Scan(t *testing.T) {
	ctx := context.Background()

	mockNext := &mockCardUseCase{}
	mockMetrics := &mockBusinessMetrics{}
	decorator := NewCardUseCaseWithMetrics(mockNext, mockMetrics)

	results := []*cardDomain.ScanResult{{CardNumber: "4276 3801 2345 6787", LuhnValid: true}}
	mockNext.On("Scan", ctx, "some text").Return(results, nil).Once()
	mockMetrics.On("RecordOperation", ctx, "extraction", "text_scan", "success").Once()
	mockMetrics.On("RecordDuration", ctx, "extraction", "text_scan", mock.AnythingOfType("time.Duration"), "success").
		Once()

	got, err := decorator.Scan(ctx, "some text")
	assert.NoError(t, err)
	assert.Equal(t, results, got)

	mockNext.AssertExpectations(t)
	mockMetrics.AssertExpectations(t)
}

func TestCardUseCaseWithMetrics_Passthrough(t *testing.T) {
	ctx := context.Background()

	mockNext := &mockCardUseCase{}
	mockMetrics := &mockBusinessMetrics{}
	decorator := NewCardUseCaseWithMetrics(mockNext, mockMetrics)

	mockNext.On("List", ctx).Return([]*cardDomain.Summary{}, nil).Once()
	mockNext.On("Exists", ctx, "4276 3801 2345 6787").Return(true, nil).Once()
	mockNext.On("Delete", ctx, int64(1)).Return(nil).Once()
	mockNext.On("Rename", ctx, int64(1), "new label").Return(nil).Once()
	mockMetrics.On("RecordOperation", ctx, "card", mock.AnythingOfType("string"), "success").Times(4)
	mockMetrics.On("RecordDuration", ctx, "card", mock.AnythingOfType("string"), mock.AnythingOfType("time.Duration"), "success").
		Times(4)

	_, err := decorator.List(ctx)
	assert.NoError(t, err)

	exists, err := decorator.Exists(ctx, "4276 3801 2345 6787")
	assert.NoError(t, err)
	assert.True(t, exists)

	assert.NoError(t, decorator.Delete(ctx, 1))
	assert.NoError(t, decorator.Rename(ctx, 1, "new label"))

	mockNext.AssertExpectations(t)
	mockMetrics.AssertExpectations(t)
}
