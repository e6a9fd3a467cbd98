package messaging

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lensflow/backend/internal/domain/booking"
	"github.com/lensflow/backend/internal/domain/client"
	"github.com/lensflow/backend/internal/domain/messaging"
	"github.com/lensflow/backend/internal/domain/org"
	"github.com/lensflow/backend/internal/domain/shared"
	"github.com/lensflow/backend/internal/domain/task"
	"github.com/lensflow/backend/internal/infrastructure/config"
)

type serviceFixture struct {
	repo          *MockNotificationRepository
	clientRepo    *MockClientRepository
	bookingRepo   *MockBookingRepository
	invoiceRepo   *MockInvoiceRepository
	quotationRepo *MockQuotationRepository
	sender        *MockSender
	service       *NotificationService
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		repo:          new(MockNotificationRepository),
		clientRepo:    new(MockClientRepository),
		bookingRepo:   new(MockBookingRepository),
		invoiceRepo:   new(MockInvoiceRepository),
		quotationRepo: new(MockQuotationRepository),
		sender:        new(MockSender),
	}
	cfg := config.MessagingConfig{
		LinkBaseURL:     "https://links.lensflow.in/api/v1",
		DefaultLanguage: "hi",
	}
	f.service = NewNotificationService(
		f.repo, f.clientRepo, f.bookingRepo, f.invoiceRepo, f.quotationRepo,
		f.sender, cfg, zap.NewNop(),
	)
	return f
}

func newTestClient(t *testing.T, language client.Language) *client.Client {
	c, err := client.NewClient(uuid.New(), uuid.New(), "Priya Sharma", "+919812345678")
	require.NoError(t, err)
	c.Language = language
	return c
}

func newTestBooking(t *testing.T, clientID uuid.UUID) *booking.Booking {
	advance := decimal.NewFromInt(25000)
	total := decimal.NewFromInt(100000)
	b, err := booking.NewBooking(uuid.New(), uuid.New(), clientID, "BK-2026-101",
		booking.FunctionDetails{
			Type:      booking.FunctionWedding,
			Date:      time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC),
			StartTime: "10:00",
			EndTime:   "18:00",
			Venue:     booking.Venue{Name: "Rajmahal Gardens", Address: "12 MG Road", City: "Jaipur"},
		},
		booking.Pricing{TotalAmount: &total, AdvanceAmount: advance},
	)
	require.NoError(t, err)
	return b
}

func newTestTask(t *testing.T, bookingID *uuid.UUID) *task.Task {
	tk, err := task.NewTask(uuid.New(), uuid.New(), bookingID, "Main function coverage",
		task.TypeMainFunction,
		time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC),
		task.MustTimeRange("10:00", "18:00"),
		task.Requirements{Skills: []org.Skill{org.SkillPhotography}},
	)
	require.NoError(t, err)
	return tk
}

func newLinkedNotification(t *testing.T) *messaging.Notification {
	n, err := messaging.NewNotification(uuid.New(), uuid.New(), messaging.TypeBookingConfirmed,
		messaging.Recipient{Type: messaging.RecipientClient, RecipientID: uuid.New(), Contact: "+919812345678"},
		"Namaste Priya, aapki booking confirm ho gayi hai.",
		client.LanguageHindi,
	)
	require.NoError(t, err)
	link, err := messaging.NewSmartLink("https://links.lensflow.in/api/v1", messaging.ResourceBooking, uuid.New())
	require.NoError(t, err)
	require.NoError(t, n.AttachSmartLink(link))
	return n
}

func TestNotifyBookingConfirmed_RendersClientLanguageWithLink(t *testing.T) {
	f := newServiceFixture()
	c := newTestClient(t, client.LanguageHindi)
	b := newTestBooking(t, c.ID)

	f.clientRepo.On("FindByID", mock.Anything, c.ID).Return(c, nil)

	var saved *messaging.Notification
	f.repo.On("Save", mock.Anything, mock.AnythingOfType("*messaging.Notification")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*messaging.Notification)
		}).Return(nil)

	err := f.service.NotifyBookingConfirmed(context.Background(), b)

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, messaging.TypeBookingConfirmed, saved.Type)
	assert.Equal(t, client.LanguageHindi, saved.Language)
	assert.Equal(t, c.ID, saved.Recipient.RecipientID)
	assert.Equal(t, c.Phone, saved.Recipient.Contact)
	require.NotNil(t, saved.SmartLink)
	assert.Contains(t, saved.Message, "Priya Sharma")
	assert.Contains(t, saved.Message, saved.SmartLink.URL)
	assert.True(t, saved.Automation.IsAutomated)
}

func TestNotifyTaskAssigned_FallsBackToStaffEmail(t *testing.T) {
	f := newServiceFixture()
	staff, err := org.NewStaff(uuid.New(), uuid.New(), uuid.New(), "Arjun Verma",
		"Senior Photographer", []org.Skill{org.SkillPhotography})
	require.NoError(t, err)
	staff.Email = "arjun@lensflow.in"
	tk := newTestTask(t, nil)

	var saved *messaging.Notification
	f.repo.On("Save", mock.Anything, mock.AnythingOfType("*messaging.Notification")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*messaging.Notification)
		}).Return(nil)

	err = f.service.NotifyTaskAssigned(context.Background(), tk, staff)

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, messaging.RecipientStaff, saved.Recipient.Type)
	assert.Equal(t, "arjun@lensflow.in", saved.Recipient.Contact)
	assert.Nil(t, saved.SmartLink)
	assert.Contains(t, saved.Message, "Arjun Verma")
	assert.Contains(t, saved.Message, "Main function coverage")
}

func TestNotifyTaskSkipped_NoBookingIsNoop(t *testing.T) {
	f := newServiceFixture()
	tk := newTestTask(t, nil)

	err := f.service.NotifyTaskSkipped(context.Background(), tk, "No staff available")

	require.NoError(t, err)
	f.bookingRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestNotifyBookingStaffed_EquipmentPlaceholderWhenEmpty(t *testing.T) {
	f := newServiceFixture()
	c := newTestClient(t, client.LanguageEnglish)
	b := newTestBooking(t, c.ID)

	f.clientRepo.On("FindByID", mock.Anything, c.ID).Return(c, nil)

	var saved *messaging.Notification
	f.repo.On("Save", mock.Anything, mock.AnythingOfType("*messaging.Notification")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*messaging.Notification)
		}).Return(nil)

	err := f.service.NotifyBookingStaffed(context.Background(), b, []string{"Arjun Verma", "Kavita Rao"}, nil)

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, messaging.TypeStaffAssigned, saved.Type)
	assert.Equal(t, client.LanguageEnglish, saved.Language)
	assert.Contains(t, saved.Message, "Arjun Verma, Kavita Rao")
	assert.False(t, strings.Contains(saved.Message, "{equipmentList}"))
}

func TestAccessSmartLink_ConsumesAccessAndMarksRead(t *testing.T) {
	f := newServiceFixture()
	n := newLinkedNotification(t)
	token := n.SmartLink.Token

	f.repo.On("FindByToken", mock.Anything, token).Return(n, nil)
	f.repo.On("Save", mock.Anything, n).Return(nil)

	resolution, err := f.service.AccessSmartLink(context.Background(), token)

	require.NoError(t, err)
	assert.Equal(t, string(messaging.ResourceBooking), resolution.ResourceType)
	assert.Equal(t, n.Message, resolution.Message)
	assert.Equal(t, 1, n.SmartLink.AccessCount)
	assert.Equal(t, messaging.NotificationRead, n.Status)
	f.repo.AssertCalled(t, "Save", mock.Anything, n)
}

func TestAccessSmartLink_ExpiredLink(t *testing.T) {
	f := newServiceFixture()
	n := newLinkedNotification(t)
	n.SmartLink.ExpiresAt = time.Now().Add(-time.Hour)

	f.repo.On("FindByToken", mock.Anything, n.SmartLink.Token).Return(n, nil)

	_, err := f.service.AccessSmartLink(context.Background(), n.SmartLink.Token)

	assert.ErrorIs(t, err, shared.ErrLinkExpired)
	f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAccessSmartLink_BudgetExhausted(t *testing.T) {
	f := newServiceFixture()
	n := newLinkedNotification(t)
	n.SmartLink.AccessCount = n.SmartLink.MaxAccess

	f.repo.On("FindByToken", mock.Anything, n.SmartLink.Token).Return(n, nil)

	_, err := f.service.AccessSmartLink(context.Background(), n.SmartLink.Token)

	assert.ErrorIs(t, err, shared.ErrLinkAccessExceeded)
}

func TestPreviewSmartLink_DoesNotConsumeAccess(t *testing.T) {
	f := newServiceFixture()
	n := newLinkedNotification(t)
	n.SmartLink.AccessCount = 3

	f.repo.On("FindByToken", mock.Anything, n.SmartLink.Token).Return(n, nil)

	preview, err := f.service.PreviewSmartLink(context.Background(), n.SmartLink.Token)

	require.NoError(t, err)
	assert.Equal(t, string(messaging.ResourceBooking), preview.ResourceType)
	assert.True(t, preview.IsActive)
	assert.False(t, preview.IsExpired)
	assert.Equal(t, n.SmartLink.MaxAccess-3, preview.AccessesLeft)
	assert.Equal(t, 3, n.SmartLink.AccessCount)
	f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPreviewSmartLink_NotificationWithoutLink(t *testing.T) {
	f := newServiceFixture()
	n, err := messaging.NewNotification(uuid.New(), uuid.New(), messaging.TypeTaskSkipped,
		messaging.Recipient{Type: messaging.RecipientClient, RecipientID: uuid.New(), Contact: "+919812345678"},
		"Kaam skip ho gaya.", client.LanguageHindi)
	require.NoError(t, err)

	f.repo.On("FindByToken", mock.Anything, "deadbeef").Return(n, nil)

	_, err = f.service.PreviewSmartLink(context.Background(), "deadbeef")

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestList_DefaultsPagination(t *testing.T) {
	f := newServiceFixture()
	companyID := uuid.New()

	f.repo.On("FindAllForCompany", mock.Anything, companyID, mock.MatchedBy(func(filter shared.Filter) bool {
		return filter.Page == 1 && filter.PageSize == 20
	})).Return([]messaging.Notification{}, nil)
	f.repo.On("CountForCompany", mock.Anything, companyID, mock.Anything).Return(int64(0), nil)

	_, total, err := f.service.List(context.Background(), companyID, NotificationListFilter{})

	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}
