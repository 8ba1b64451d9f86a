package services

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"bitevents/internal/domain"
)

type mockUserRepository struct {
	users map[string]*domain.User
	err   error
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.err != nil {
		return m.err
	}
	user.ID = "user-" + strconv.Itoa(len(m.users)+1)
	if m.users == nil {
		m.users = map[string]*domain.User{}
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return domain.ErrDuplicateEmail
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	// A nil map resolves every id, which keeps bulk tests short.
	if m.users == nil {
		return &domain.User{ID: id, FullName: "User " + id, Email: id + "@example.com"}, nil
	}
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id, hash, salt string) error {
	u, ok := m.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = hash
	u.PasswordSalt = salt
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

type mockVenueRepository struct {
	venues       map[string]*domain.Venue
	countByOwner map[string]int
	err          error
}

func (m *mockVenueRepository) Create(ctx context.Context, venue *domain.Venue) error {
	if m.err != nil {
		return m.err
	}
	venue.ID = "venue-" + strconv.Itoa(len(m.venues)+1)
	if m.venues == nil {
		m.venues = map[string]*domain.Venue{}
	}
	m.venues[venue.ID] = venue
	return nil
}

func (m *mockVenueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	if m.err != nil {
		return nil, m.err
	}
	v, ok := m.venues[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (m *mockVenueRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Venue, error) {
	var out []*domain.Venue
	for _, v := range m.venues {
		if v.OwnerID != nil && *v.OwnerID == ownerID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *mockVenueRepository) Update(ctx context.Context, venue *domain.Venue) error {
	if _, ok := m.venues[venue.ID]; !ok {
		return domain.ErrNotFound
	}
	m.venues[venue.ID] = venue
	return nil
}

func (m *mockVenueRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.venues[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.venues, id)
	return nil
}

func (m *mockVenueRepository) CountByOwnerID(ctx context.Context, ownerID string) (int, error) {
	return m.countByOwner[ownerID], nil
}

type mockEventRepository struct {
	events       map[string]*domain.Event
	countByVenue map[string]int
	err          error
}

func (m *mockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	if m.err != nil {
		return m.err
	}
	event.ID = "event-" + strconv.Itoa(len(m.events)+1)
	if m.events == nil {
		m.events = map[string]*domain.Event{}
	}
	m.events[event.ID] = event
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

func (m *mockEventRepository) Update(ctx context.Context, event *domain.Event) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.events[event.ID]; !ok {
		return domain.ErrNotFound
	}
	m.events[event.ID] = event
	return nil
}

func (m *mockEventRepository) Search(ctx context.Context, filter domain.EventSearchFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	out := make([]*domain.Event, 0, len(m.events))
	for _, ev := range m.events {
		out = append(out, ev)
	}
	return out, len(out), nil
}

func (m *mockEventRepository) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*domain.Event, 0)
	for _, ev := range m.events {
		if ev.OrganizerID == organizerID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *mockEventRepository) Delete(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *mockEventRepository) CountByOrganizerID(ctx context.Context, organizerID string) (int, error) {
	count := 0
	for _, ev := range m.events {
		if ev.OrganizerID == organizerID {
			count++
		}
	}
	return count, nil
}

func (m *mockEventRepository) CountByVenueID(ctx context.Context, venueID string) (int, error) {
	return m.countByVenue[venueID], nil
}

// memRegistrationRepo is an in-memory registration store. WithTx holds the
// mutex for the duration of fn, mirroring the row lock the real repository
// takes, so concurrent Register calls serialize the same way they do against
// Postgres. The other methods deliberately do not lock: in the Register path
// they only run inside WithTx.
type memRegistrationRepo struct {
	mu        sync.Mutex
	capacity  *int
	capErr    error
	createErr []error
	regs      []*domain.EventRegistration
	nextID    int
}

func (m *memRegistrationRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

func (m *memRegistrationRepo) GetEventCapacityForUpdate(ctx context.Context, eventID string) (*int, error) {
	if m.capErr != nil {
		return nil, m.capErr
	}
	return m.capacity, nil
}

func (m *memRegistrationRepo) Create(ctx context.Context, reg *domain.EventRegistration) error {
	if len(m.createErr) > 0 {
		err := m.createErr[0]
		m.createErr = m.createErr[1:]
		if err != nil {
			return err
		}
	}
	m.nextID++
	reg.ID = "reg-" + strconv.Itoa(m.nextID)
	stored := *reg
	m.regs = append(m.regs, &stored)
	return nil
}

func (m *memRegistrationRepo) GetByID(ctx context.Context, id string) (*domain.EventRegistration, error) {
	for _, r := range m.regs {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memRegistrationRepo) GetConfirmedByEventAndUser(ctx context.Context, eventID, userID string) (*domain.EventRegistration, error) {
	for _, r := range m.regs {
		if r.EventID == eventID && r.UserID == userID && r.Status == domain.RegistrationStatusConfirmed {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memRegistrationRepo) CountConfirmedByEventID(ctx context.Context, eventID string) (int, error) {
	count := 0
	for _, r := range m.regs {
		if r.EventID == eventID && r.Status == domain.RegistrationStatusConfirmed {
			count++
		}
	}
	return count, nil
}

func (m *memRegistrationRepo) UpdateStatus(ctx context.Context, id, status string) error {
	for _, r := range m.regs {
		if r.ID == id {
			r.Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memRegistrationRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.EventRegistration, error) {
	out := make([]*domain.EventRegistration, 0)
	for _, r := range m.regs {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRegistrationRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventRegistration, error) {
	out := make([]*domain.EventRegistration, 0)
	for _, r := range m.regs {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

type mockSavedEventRepository struct {
	saved map[string]*domain.SavedEvent
	err   error
}

func savedKey(userID, eventID string) string { return userID + ":" + eventID }

func (m *mockSavedEventRepository) Create(ctx context.Context, saved *domain.SavedEvent) error {
	if m.err != nil {
		return m.err
	}
	key := savedKey(saved.UserID, saved.EventID)
	if m.saved == nil {
		m.saved = map[string]*domain.SavedEvent{}
	}
	if _, ok := m.saved[key]; ok {
		return domain.ErrAlreadySaved
	}
	saved.ID = "saved-" + strconv.Itoa(len(m.saved)+1)
	m.saved[key] = saved
	return nil
}

func (m *mockSavedEventRepository) Delete(ctx context.Context, userID, eventID string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.saved, savedKey(userID, eventID))
	return nil
}

func (m *mockSavedEventRepository) Exists(ctx context.Context, userID, eventID string) (bool, error) {
	_, ok := m.saved[savedKey(userID, eventID)]
	return ok, nil
}

func (m *mockSavedEventRepository) ListEventsByUserID(ctx context.Context, userID string) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*domain.Event, 0)
	for _, s := range m.saved {
		if s.UserID == userID {
			out = append(out, &domain.Event{ID: s.EventID})
		}
	}
	return out, nil
}

type mockEventImageRepository struct {
	images map[string]*domain.EventImage
	err    error
}

func (m *mockEventImageRepository) Create(ctx context.Context, image *domain.EventImage) error {
	if m.err != nil {
		return m.err
	}
	image.ID = "image-" + strconv.Itoa(len(m.images)+1)
	if m.images == nil {
		m.images = map[string]*domain.EventImage{}
	}
	m.images[image.ID] = image
	return nil
}

func (m *mockEventImageRepository) GetByID(ctx context.Context, id string) (*domain.EventImage, error) {
	img, ok := m.images[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return img, nil
}

func (m *mockEventImageRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventImage, error) {
	out := make([]*domain.EventImage, 0)
	for _, img := range m.images {
		if img.EventID == eventID {
			out = append(out, img)
		}
	}
	return out, nil
}

func (m *mockEventImageRepository) SetPrimary(ctx context.Context, eventID, imageID string) error {
	target, ok := m.images[imageID]
	if !ok || target.EventID != eventID {
		return domain.ErrNotFound
	}
	for _, img := range m.images {
		if img.EventID == eventID {
			img.IsPrimary = img.ID == imageID
		}
	}
	return nil
}

func (m *mockEventImageRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.images[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.images, id)
	return nil
}

func (m *mockEventImageRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	count := 0
	for _, img := range m.images {
		if img.EventID == eventID {
			count++
		}
	}
	return count, nil
}

type mockFileStore struct {
	savedKeys   []string
	removedURLs []string
	err         error
}

func (m *mockFileStore) Save(ctx context.Context, key string, data []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.savedKeys = append(m.savedKeys, key)
	return "/uploads/" + key, nil
}

func (m *mockFileStore) Remove(ctx context.Context, url string) error {
	m.removedURLs = append(m.removedURLs, url)
	return nil
}

type mockMailer struct {
	mu   sync.Mutex
	sent []*domain.TicketEmailData
	err  error
}

func (m *mockMailer) SendTicketConfirmation(ctx context.Context, data *domain.TicketEmailData) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, data)
	return nil
}

type mockPasswordHasher struct {
	compareErr error
}

func (m *mockPasswordHasher) GenerateSalt() (string, error) { return "salt", nil }

func (m *mockPasswordHasher) Hash(salt, password string) (string, error) {
	return "hashed:" + salt + ":" + password, nil
}

func (m *mockPasswordHasher) Compare(hash, salt, password string) error {
	if m.compareErr != nil {
		return m.compareErr
	}
	if hash != "hashed:"+salt+":"+password {
		return errors.New("password mismatch")
	}
	return nil
}

type mockTokenIssuer struct {
	err error
}

func (m *mockTokenIssuer) Issue(userID, email string, isOrganizer bool, expiry time.Duration) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "token-for-" + userID, nil
}
