package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"travel-agency/internal/data/entity"
	"travel-agency/internal/data/repository"
	"travel-agency/pkg/apperror"
	"travel-agency/pkg/storage"
)

const testBaseURL = "http://blob.test/assets"

// memStorage is an in-memory BlobStorage that records uploads and deletes
type memStorage struct {
	mu       sync.Mutex
	objects  map[string][]byte
	deleted  []string
	failWhen func(name string) bool
}

var _ storage.BlobStorage = (*memStorage)(nil)

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string][]byte{}}
}

func (m *memStorage) Upload(_ context.Context, name string, data []byte, _ string) (string, error) {
	if m.failWhen != nil && m.failWhen(name) {
		return "", errors.New("bucket unavailable")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[name] = data
	return testBaseURL + "/" + name, nil
}

func (m *memStorage) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, name)
	m.deleted = append(m.deleted, name)
	return nil
}

func (m *memStorage) BlobNameFromURL(rawURL string) (string, bool) {
	name, ok := strings.CutPrefix(rawURL, testBaseURL+"/")
	return name, ok && name != ""
}

func (m *memStorage) Ping(context.Context) error { return nil }

func (m *memStorage) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

func (m *memStorage) deletedNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleted...)
}

// ==================== REPOSITORY FAKES ====================

type fakeDestinationRepo struct {
	create   func(ctx context.Context, d *entity.Destination) (*entity.Destination, error)
	findByID func(ctx context.Context, id int64) (*entity.Destination, error)
	update   func(ctx context.Context, id int64, patch *entity.DestinationPatch) (*entity.Destination, []string, error)
	delete   func(ctx context.Context, id int64) ([]string, error)
	latest   func(ctx context.Context, limit int) ([]*entity.Destination, error)
}

var _ repository.DestinationRepository = (*fakeDestinationRepo)(nil)

func (f *fakeDestinationRepo) Create(ctx context.Context, d *entity.Destination) (*entity.Destination, error) {
	return f.create(ctx, d)
}

func (f *fakeDestinationRepo) FindByID(ctx context.Context, id int64) (*entity.Destination, error) {
	if f.findByID == nil {
		return nil, nil
	}
	return f.findByID(ctx, id)
}

func (f *fakeDestinationRepo) FindBySlug(context.Context, string) (*entity.Destination, error) {
	return nil, nil
}

func (f *fakeDestinationRepo) Update(ctx context.Context, id int64, patch *entity.DestinationPatch) (*entity.Destination, []string, error) {
	return f.update(ctx, id, patch)
}

func (f *fakeDestinationRepo) Delete(ctx context.Context, id int64) ([]string, error) {
	return f.delete(ctx, id)
}

func (f *fakeDestinationRepo) FindLatest(ctx context.Context, limit int) ([]*entity.Destination, error) {
	return f.latest(ctx, limit)
}

func (f *fakeDestinationRepo) FindLatestSpecial(context.Context) (*entity.Destination, error) {
	return nil, nil
}

func (f *fakeDestinationRepo) FindRecommendedByType(context.Context, entity.DestinationType, int) ([]*entity.Destination, error) {
	return nil, nil
}

func (f *fakeDestinationRepo) FindPaginatedByType(context.Context, entity.DestinationType, int, int) (*repository.Page[*entity.Destination], error) {
	return nil, nil
}

func (f *fakeDestinationRepo) FindAllPaginated(context.Context, int, int) (*repository.Page[*entity.Destination], error) {
	return nil, nil
}

type fakeBookingRepo struct {
	mu           sync.Mutex
	bookings     map[int64]*entity.Booking
	nextID       int64
	participants []entity.BookingParticipant
	// afterFind runs against the stored row once a read has been served,
	// standing in for a writer that commits between read and write
	afterFind func(stored *entity.Booking)
}

var _ repository.BookingRepository = (*fakeBookingRepo)(nil)

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[int64]*entity.Booking{}}
}

func (f *fakeBookingRepo) Create(_ context.Context, b *entity.Booking) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	stored := *b
	stored.ID = f.nextID
	f.bookings[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeBookingRepo) CreateParticipant(_ context.Context, p *entity.BookingParticipant) (*entity.BookingParticipant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *p
	stored.ID = int64(len(f.participants) + 1)
	f.participants = append(f.participants, stored)
	return &stored, nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id int64) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	if f.afterFind != nil {
		f.afterFind(b)
		f.afterFind = nil
	}
	return &copied, nil
}

func (f *fakeBookingRepo) FindByUserID(_ context.Context, userID int64) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) GetPaginated(context.Context, int, int, entity.BookingFilter) (*repository.Page[*entity.Booking], error) {
	return &repository.Page[*entity.Booking]{}, nil
}

func (f *fakeBookingRepo) Update(_ context.Context, id int64, patch *entity.BookingPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return errors.New("missing booking")
	}
	if patch.FromStatus != nil && b.Status != *patch.FromStatus {
		return fmt.Errorf("%w: booking %d is %s", apperror.ErrInvalidTransition, id, b.Status)
	}
	if patch.Status != nil {
		b.Status = *patch.Status
	}
	if patch.TotalPrice != nil {
		b.TotalPrice = *patch.TotalPrice
	}
	if patch.StartDate != nil {
		b.StartDate = patch.StartDate
	}
	if patch.EndDate != nil {
		b.EndDate = patch.EndDate
	}
	return nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, from, to entity.BookingStatus, bookingType *entity.BookingType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b := f.bookings[id]
	if b.Status != from {
		return fmt.Errorf("%w: booking %d is %s", apperror.ErrInvalidTransition, id, b.Status)
	}
	b.Status = to
	if bookingType != nil {
		b.BookingType = *bookingType
	}
	return nil
}

// fakeUserRepo keeps users keyed by email; CreateTemporary is an upsert like the real one
type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]*entity.User
	nextID int64
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	u.ID = f.nextID
	stored := *u
	f.users[u.Email] = &stored
	return nil
}

func (f *fakeUserRepo) CreateTemporary(ctx context.Context, u *entity.User) (int64, error) {
	f.mu.Lock()
	if existing, ok := f.users[u.Email]; ok {
		f.mu.Unlock()
		return existing.ID, nil
	}
	f.mu.Unlock()
	if err := f.Create(ctx, u); err != nil {
		return 0, err
	}
	return u.ID, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[email]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(context.Context, int, int) ([]*entity.User, error) { return nil, nil }

func (f *fakeUserRepo) CountAll(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *u
	f.users[u.Email] = &stored
	return nil
}

func (f *fakeUserRepo) Delete(context.Context, int64) error { return nil }

type fakeSubscriptionRepo struct {
	byEmail map[string]*entity.Subscription
	nextID  int64
}

var _ repository.SubscriptionRepository = (*fakeSubscriptionRepo)(nil)

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{byEmail: map[string]*entity.Subscription{}}
}

func (f *fakeSubscriptionRepo) Create(_ context.Context, email string) (*entity.Subscription, error) {
	f.nextID++
	s := &entity.Subscription{Email: email, IsActive: true}
	s.ID = f.nextID
	f.byEmail[email] = s
	return s, nil
}

func (f *fakeSubscriptionRepo) FindByID(_ context.Context, id int64) (*entity.Subscription, error) {
	for _, s := range f.byEmail {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSubscriptionRepo) FindByEmail(_ context.Context, email string) (*entity.Subscription, error) {
	return f.byEmail[email], nil
}

func (f *fakeSubscriptionRepo) FindAll(context.Context, int, int, *bool) (*repository.Page[*entity.Subscription], error) {
	return &repository.Page[*entity.Subscription]{}, nil
}

func (f *fakeSubscriptionRepo) SetActive(ctx context.Context, id int64, active bool) (*entity.Subscription, error) {
	s, _ := f.FindByID(ctx, id)
	if s == nil {
		return nil, errors.New("missing subscription")
	}
	s.IsActive = active
	return s, nil
}

func (f *fakeSubscriptionRepo) Toggle(ctx context.Context, id int64) (*entity.Subscription, error) {
	s, _ := f.FindByID(ctx, id)
	if s == nil {
		return nil, errors.New("missing subscription")
	}
	s.IsActive = !s.IsActive
	return s, nil
}

type fakeSliderRepo struct {
	sliders   map[int64]*entity.Slider
	nextID    int64
	createErr error
	updateErr error
	reordered []entity.ReorderDirection
}

var _ repository.SliderRepository = (*fakeSliderRepo)(nil)

func newFakeSliderRepo() *fakeSliderRepo {
	return &fakeSliderRepo{sliders: map[int64]*entity.Slider{}}
}

func (f *fakeSliderRepo) Create(_ context.Context, s *entity.Slider, displayOrder *int) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	s.ID = f.nextID
	s.DisplayOrder = len(f.sliders)
	if displayOrder != nil {
		s.DisplayOrder = *displayOrder
	}
	stored := *s
	f.sliders[s.ID] = &stored
	return nil
}

func (f *fakeSliderRepo) FindByID(_ context.Context, id int64) (*entity.Slider, error) {
	s, ok := f.sliders[id]
	if !ok {
		return nil, nil
	}
	c := *s
	return &c, nil
}

func (f *fakeSliderRepo) FindAll(_ context.Context, active *bool) ([]*entity.Slider, error) {
	var out []*entity.Slider
	for _, s := range f.sliders {
		if active == nil || s.IsActive == *active {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSliderRepo) Update(_ context.Context, s *entity.Slider) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	stored := *s
	f.sliders[s.ID] = &stored
	return nil
}

func (f *fakeSliderRepo) Delete(_ context.Context, id int64) error {
	delete(f.sliders, id)
	return nil
}

func (f *fakeSliderRepo) Reorder(_ context.Context, id int64, direction entity.ReorderDirection) (bool, error) {
	if _, ok := f.sliders[id]; !ok {
		return false, apperror.ErrNotFound
	}
	f.reordered = append(f.reordered, direction)
	return true, nil
}

type fakeTestimonialRepo struct {
	items      map[int64]*entity.Testimonial
	nextID     int64
	lastQuery  [4]any
	lastLatest int
}

var _ repository.TestimonialRepository = (*fakeTestimonialRepo)(nil)

func newFakeTestimonialRepo() *fakeTestimonialRepo {
	return &fakeTestimonialRepo{items: map[int64]*entity.Testimonial{}}
}

func (f *fakeTestimonialRepo) Create(_ context.Context, t *entity.Testimonial) error {
	f.nextID++
	t.ID = f.nextID
	stored := *t
	f.items[t.ID] = &stored
	return nil
}

func (f *fakeTestimonialRepo) FindByID(_ context.Context, id int64) (*entity.Testimonial, error) {
	t, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	c := *t
	return &c, nil
}

func (f *fakeTestimonialRepo) FindAll(_ context.Context, page, limit int, sortBy, sortOrder string) (*repository.Page[*entity.Testimonial], error) {
	f.lastQuery = [4]any{page, limit, sortBy, sortOrder}
	return &repository.Page[*entity.Testimonial]{Page: page, Limit: limit}, nil
}

func (f *fakeTestimonialRepo) FindLatest(_ context.Context, limit int) ([]*entity.Testimonial, error) {
	f.lastLatest = limit
	return nil, nil
}

func (f *fakeTestimonialRepo) Update(_ context.Context, t *entity.Testimonial) error {
	stored := *t
	f.items[t.ID] = &stored
	return nil
}

func (f *fakeTestimonialRepo) Delete(_ context.Context, id int64) error {
	delete(f.items, id)
	return nil
}
