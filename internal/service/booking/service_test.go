package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romasdental/clinic-portal/internal/model"
	"github.com/romasdental/clinic-portal/internal/repository"
	apperrors "github.com/romasdental/clinic-portal/pkg/errors"
)

type memRepo struct {
	mu        sync.Mutex
	items     map[string]*model.Booking
	createErr error
	creates   int
}

func newMemRepo(existing ...int) *memRepo {
	r := &memRepo{items: map[string]*model.Booking{}}
	for _, n := range existing {
		id := fmt.Sprintf("seed-%d", n)
		r.items[id] = &model.Booking{ID: id, BookingNumber: n, Status: model.BookingStatusPending}
	}
	return r
}

func (r *memRepo) CreateNumbered(_ context.Context, b *model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.createErr != nil {
		return r.createErr
	}
	last := model.BookingNumberBase
	for _, existing := range r.items {
		if existing.BookingNumber > last {
			last = existing.BookingNumber
		}
	}
	b.BookingNumber = last + 1
	stored := *b
	r.items[b.ID] = &stored
	return nil
}

func (r *memRepo) Get(_ context.Context, id string) (*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *memRepo) List(_ context.Context) ([]*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := []*model.Booking{}
	for _, b := range r.items {
		items = append(items, b)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].BookingNumber > items[j].BookingNumber })
	return items, nil
}

func (r *memRepo) UpdateStatus(_ context.Context, id string, status model.BookingStatus, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	b.Status = status
	b.UpdatedAt = &at
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items), nil
}

func (r *memRepo) CountByStatus(_ context.Context, status model.BookingStatus) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, b := range r.items {
		if b.Status == status {
			n++
		}
	}
	return n, nil
}

type staticCatalog struct {
	titles []string
	err    error
}

func (c staticCatalog) Titles(context.Context) ([]string, error) { return c.titles, c.err }

type recordingBroker struct {
	mu     sync.Mutex
	err    error
	events []model.BookingEvent
}

func (b *recordingBroker) Publish(_ context.Context, _ string, message interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	b.events = append(b.events, message.(model.BookingEvent))
	return nil
}

func (b *recordingBroker) Subscribe(context.Context, string) (<-chan []byte, error) {
	return nil, errors.New("not supported")
}

func (b *recordingBroker) Close() error { return nil }

func testConfig() Config {
	return Config{
		Rules:            testRules,
		ClinicName:       "Roma's Dental Care",
		Address:          "Kharadi, Pune",
		NotifyNumbers:    []string{"7499537267", "9284338406"},
		CountryCode:      "91",
		MessagingBaseURL: "https://wa.me",
		Channel:          "bookings.events",
	}
}

func newTestService(repo *memRepo, broker *recordingBroker) *Service {
	svc := NewService(repo, staticCatalog{titles: testServices}, broker, nil, testConfig())
	svc.now = func() time.Time { return time.Date(2024, 4, 28, 9, 30, 0, 0, time.UTC) }
	var mu sync.Mutex
	seq := 0
	svc.newID = func() string {
		mu.Lock()
		defer mu.Unlock()
		seq++
		return fmt.Sprintf("booking-%d", seq)
	}
	return svc
}

func TestCreateAssignsNextNumber(t *testing.T) {
	repo := newMemRepo(1001, 1002)
	broker := &recordingBroker{}
	svc := newTestService(repo, broker)

	receipt, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	b := receipt.Booking
	assert.Equal(t, 1003, b.BookingNumber)
	assert.Equal(t, model.BookingStatusPending, b.Status)
	assert.Equal(t, "9876543210", b.Mobile)
	assert.Equal(t, "booking-1", b.ID)

	require.Len(t, receipt.Links, 2)
	assert.Equal(t, model.NotificationClinic, receipt.Links[0].Kind)
	assert.Equal(t, "7499537267", receipt.Links[0].Recipient)
	assert.True(t, strings.HasPrefix(receipt.Links[0].URL,
		"https://wa.me/917499537267?text=New%20Appointment%20Booking%21%0ABooking%20ID%3A%20%231003"))
	assert.True(t, strings.HasPrefix(receipt.Links[1].URL, "https://wa.me/919284338406?text="))

	require.Len(t, broker.events, 1)
	assert.Equal(t, model.BookingEventCreated, broker.events[0].Type)
	assert.Contains(t, broker.events[0].Message, "Booking ID: #1003")
}

func TestCreateFirstBookingIs1001(t *testing.T) {
	svc := newTestService(newMemRepo(), &recordingBroker{})

	receipt, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 1001, receipt.Booking.BookingNumber)
}

func TestCreateOnClosedDayWritesNothing(t *testing.T) {
	repo := newMemRepo(1001)
	broker := &recordingBroker{}
	svc := newTestService(repo, broker)

	req := validRequest()
	req.Date = "2024-04-30"
	_, err := svc.Create(context.Background(), req)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
	assert.Equal(t, map[string]string{"date": "We are closed on Tuesdays. Please select another day"}, appErr.Fields)
	assert.Zero(t, repo.creates)
	assert.Empty(t, broker.events)
}

func TestCreateRejectsPastDateInClinicTimezone(t *testing.T) {
	repo := newMemRepo()
	cfg := testConfig()
	cfg.Location = time.FixedZone("IST", 5*3600+1800)
	svc := NewService(repo, staticCatalog{titles: testServices}, &recordingBroker{}, nil, cfg)
	// Already Monday the 29th in Pune.
	svc.now = func() time.Time { return time.Date(2024, 4, 28, 20, 0, 0, 0, time.UTC) }

	req := validRequest()
	req.Date = "2024-04-28"
	_, err := svc.Create(context.Background(), req)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, map[string]string{"date": "Please select a valid date"}, appErr.Fields)
	assert.Zero(t, repo.creates)

	req.Date = "2024-04-29"
	receipt, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "2024-04-29", receipt.Booking.Date)
}

func TestCreateStoreFailure(t *testing.T) {
	repo := newMemRepo()
	repo.createErr = errors.New("connection refused")
	svc := newTestService(repo, &recordingBroker{})

	_, err := svc.Create(context.Background(), validRequest())
	assert.True(t, apperrors.Is(err, apperrors.ErrStore))
	assert.Equal(t, "failed to save booking: connection refused", err.Error())
}

func TestCreateSurvivesPublishFailure(t *testing.T) {
	svc := newTestService(newMemRepo(), &recordingBroker{err: errors.New("breaker open")})

	receipt, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 1001, receipt.Booking.BookingNumber)
}

func TestCreateAcceptsAnyServiceWhenCatalogFails(t *testing.T) {
	svc := newTestService(newMemRepo(), &recordingBroker{})
	svc.catalog = staticCatalog{err: errors.New("db down")}

	req := validRequest()
	req.Service = "Whitening"
	_, err := svc.Create(context.Background(), req)
	assert.NoError(t, err)
}

func TestConcurrentCreatesGetDistinctNumbers(t *testing.T) {
	svc := newTestService(newMemRepo(), &recordingBroker{})

	const n = 20
	numbers := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			receipt, err := svc.Create(context.Background(), validRequest())
			if assert.NoError(t, err) {
				numbers <- receipt.Booking.BookingNumber
			}
		}()
	}
	wg.Wait()
	close(numbers)

	seen := map[int]bool{}
	for num := range numbers {
		assert.False(t, seen[num], "duplicate number %d", num)
		seen[num] = true
	}
	assert.Len(t, seen, n)
	for i := 1001; i <= 1000+n; i++ {
		assert.True(t, seen[i])
	}
}

func TestUpdateStatusConfirmProducesLink(t *testing.T) {
	repo := newMemRepo()
	broker := &recordingBroker{}
	svc := newTestService(repo, broker)
	receipt, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	change, err := svc.UpdateStatus(context.Background(), receipt.Booking.ID, model.BookingStatusConfirmed)
	require.NoError(t, err)

	assert.Equal(t, model.BookingStatusPending, change.PreviousStatus)
	assert.Equal(t, model.BookingStatusConfirmed, change.Booking.Status)
	require.NotNil(t, change.Link)
	assert.Equal(t, model.NotificationConfirmation, change.Link.Kind)
	assert.Equal(t, "9876543210", change.Link.Recipient)
	assert.True(t, strings.HasPrefix(change.Link.URL, "https://wa.me/919876543210?text=Hello%20Asha%20Rao"))

	stored, err := repo.Get(context.Background(), receipt.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusConfirmed, stored.Status)
	require.NotNil(t, stored.UpdatedAt)

	require.Len(t, broker.events, 2)
	assert.Equal(t, model.BookingEventStatusChanged, broker.events[1].Type)
	assert.Equal(t, model.BookingStatusPending, broker.events[1].Previous)
}

func TestUpdateStatusIsUnconstrained(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, &recordingBroker{})
	receipt, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	id := receipt.Booking.ID

	for _, status := range []model.BookingStatus{
		model.BookingStatusCompleted,
		model.BookingStatusPending,
		model.BookingStatusCancelled,
		model.BookingStatusConfirmed,
	} {
		change, err := svc.UpdateStatus(context.Background(), id, status)
		require.NoError(t, err)
		assert.Equal(t, status, change.Booking.Status)
	}

	change, err := svc.UpdateStatus(context.Background(), id, model.BookingStatusConfirmed)
	require.NoError(t, err)
	assert.Nil(t, change.Link, "already confirmed")
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc := newTestService(newMemRepo(1001), &recordingBroker{})

	_, err := svc.UpdateStatus(context.Background(), "seed-1001", model.BookingStatus("archived"))
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestUpdateStatusNotFound(t *testing.T) {
	svc := newTestService(newMemRepo(), &recordingBroker{})

	_, err := svc.UpdateStatus(context.Background(), "missing", model.BookingStatusConfirmed)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestDelete(t *testing.T) {
	repo := newMemRepo(1001)
	broker := &recordingBroker{}
	svc := newTestService(repo, broker)

	require.NoError(t, svc.Delete(context.Background(), "seed-1001"))
	n, _ := svc.Count(context.Background())
	assert.Zero(t, n)
	require.Len(t, broker.events, 1)
	assert.Equal(t, model.BookingEventDeleted, broker.events[0].Type)

	err := svc.Delete(context.Background(), "seed-1001")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestCountPending(t *testing.T) {
	repo := newMemRepo(1001, 1002)
	repo.items["seed-1002"].Status = model.BookingStatusCompleted
	svc := newTestService(repo, &recordingBroker{})

	n, err := svc.CountPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
