package integration

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"identity-service/app/domain"
)

// memUserRepo is an in-memory port.UserRepository.
type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email != nil && *user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Phone != nil && *user.Phone == phone {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// memSessionRepo is an in-memory port.SessionRepository.
type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*domain.IdentificationSession
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]*domain.IdentificationSession)}
}

func (r *memSessionRepo) Create(ctx context.Context, session *domain.IdentificationSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *session
	r.sessions[session.Token] = &clone
	return nil
}

func (r *memSessionRepo) GetValidByToken(ctx context.Context, token string, now time.Time) (*domain.IdentificationSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[token]
	if !ok || !now.Before(session.ExpiresAt) {
		return nil, nil
	}
	clone := *session
	return &clone, nil
}

func (r *memSessionRepo) Delete(ctx context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[token]; !ok {
		return false, nil
	}
	delete(r.sessions, token)
	return true, nil
}

func (r *memSessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for token, session := range r.sessions {
		if !now.Before(session.ExpiresAt) {
			delete(r.sessions, token)
			count++
		}
	}
	return count, nil
}

func (r *memSessionRepo) expire(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session, ok := r.sessions[token]; ok {
		session.ExpiresAt = time.Now().Add(-time.Minute)
	}
}

// memOtpRepo is an in-memory port.OtpRepository.
type memOtpRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]*domain.OtpRecord
}

func newMemOtpRepo() *memOtpRepo {
	return &memOtpRepo{records: make(map[uuid.UUID]*domain.OtpRecord)}
}

func (r *memOtpRepo) Create(ctx context.Context, record *domain.OtpRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *record
	r.records[record.ID] = &clone
	return nil
}

func (r *memOtpRepo) GetLatestActive(ctx context.Context, identifier string, now time.Time) (*domain.OtpRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *domain.OtpRecord
	for _, record := range r.records {
		if record.Identifier != identifier || !now.Before(record.ExpiresAt) {
			continue
		}
		if latest == nil || record.CreatedAt.After(latest.CreatedAt) {
			latest = record
		}
	}
	if latest == nil {
		return nil, nil
	}
	clone := *latest
	return &clone, nil
}

func (r *memOtpRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return false, nil
	}
	delete(r.records, id)
	return true, nil
}

func (r *memOtpRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for id, record := range r.records {
		if !now.Before(record.ExpiresAt) {
			delete(r.records, id)
			count++
		}
	}
	return count, nil
}

// captureNotifier records the last dispatched code per identifier so
// tests can complete the flow the way an end user would.
type captureNotifier struct {
	mu    sync.Mutex
	codes map[string]string
}

func newCaptureNotifier() *captureNotifier {
	return &captureNotifier{codes: make(map[string]string)}
}

func (n *captureNotifier) Deliver(ctx context.Context, user *domain.User, code string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.codes[user.DeliveryIdentifier()] = code
	return nil
}

func (n *captureNotifier) lastCode(identifier string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.codes[identifier]
}
