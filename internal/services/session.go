package services

import (
	"errors"
	"sync"

	"github.com/pay2post/pay2post/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrNoPendingSession = errors.New("no pending submission for this user")
)

type sessionPricing interface {
	Price(submission models.Submission) (decimal.Decimal, error)
}

// SessionService holds the per-submitter state between the price quote and
// the anonymity confirmation. State is in-process memory only: it is keyed
// by submitter, last write wins, and it is lost on restart, which the
// conversational flow tolerates (the user just resends their message).
type SessionService struct {
	pricing  sessionPricing
	mu       sync.Mutex
	sessions map[string]models.PendingPost
}

func NewSessionService(pricing sessionPricing) *SessionService {
	return &SessionService{
		pricing:  pricing,
		sessions: make(map[string]models.PendingPost),
	}
}

// Begin quotes a price for the submission and stores it as the submitter's
// pending post, replacing any earlier unconfirmed one. On an unsupported
// kind nothing is stored.
func (s *SessionService) Begin(submitter models.Submitter, submission models.Submission) (decimal.Decimal, error) {
	price, err := s.pricing.Price(submission)
	if err != nil {
		return decimal.Zero, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[submitter.ID] = models.PendingPost{
		SubmitterID: submitter.ID,
		DisplayName: submitter.Username,
		Kind:        submission.Kind,
		Content:     submission.Content(),
		PriceUSD:    price,
	}

	return price, nil
}

// Confirm consumes the submitter's pending post and applies the anonymity
// choice. The session is removed before returning, so a duplicate
// confirmation fails with ErrNoPendingSession instead of re-firing a
// payment request.
func (s *SessionService) Confirm(submitterID string, anon bool) (*models.PendingPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, ok := s.sessions[submitterID]
	if !ok {
		return nil, ErrNoPendingSession
	}

	delete(s.sessions, submitterID)

	pending.Anon = anon

	return &pending, nil
}
