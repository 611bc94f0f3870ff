// Package applications handles admission application submission and listing.
package applications

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/jonathan/admission-advisor/internal/db"
	"github.com/jonathan/admission-advisor/internal/notify"
	"github.com/jonathan/admission-advisor/internal/observability"
	"github.com/jonathan/admission-advisor/internal/types"
)

// ErrDuplicate is returned when the college already has an application
// with the same email or phone.
var ErrDuplicate = errors.New("application already submitted for this college with this email or phone")

// Response messages.
const (
	MessageSubmitted = "Application submitted successfully!"
	MessageEmailSent = " Confirmation email sent successfully."
	MessageSimulated = "Application submitted! (Email simulated)"
)

// Metric outcomes.
const (
	OutcomeSubmitted = "submitted"
	OutcomeDuplicate = "duplicate"
	OutcomeFailed    = "failed"
)

var ignoredWords = map[string]bool{"of": true, "and": true, "the": true, "in": true, "for": true}

// Service submits and lists applications. Mailer and Publisher may be nil.
type Service struct {
	store     db.ApplicationStore
	mailer    notify.Mailer
	publisher notify.Publisher

	now func() time.Time
	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRand overrides the random source used for reference IDs.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) { s.rng = rng }
}

// NewService creates an application service.
func NewService(store db.ApplicationStore, mailer notify.Mailer, publisher notify.Publisher, opts ...Option) *Service {
	s := &Service{
		store:     store,
		mailer:    mailer,
		publisher: publisher,
		now:       time.Now,
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CollegeAbbreviation returns the uppercase initials of the college's
// alphanumeric words, skipping filler words. Names yielding fewer than two
// letters fall back to their first three characters.
func CollegeAbbreviation(college string) string {
	var b strings.Builder
	for _, word := range strings.Fields(college) {
		if ignoredWords[strings.ToLower(word)] || !isAlphanumeric(word) {
			continue
		}
		first := []rune(word)[0]
		b.WriteString(strings.ToUpper(string(first)))
	}
	abbr := b.String()
	if len([]rune(abbr)) < 2 {
		runes := []rune(college)
		if len(runes) > 3 {
			runes = runes[:3]
		}
		abbr = strings.ToUpper(string(runes))
	}
	return abbr
}

func isAlphanumeric(word string) bool {
	for _, r := range word {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return word != ""
}

// ReferenceID builds <abbreviation><year><5 random digits>.
func (s *Service) ReferenceID(college string) string {
	s.mu.Lock()
	digits := 10000 + s.rng.IntN(90000)
	s.mu.Unlock()
	return fmt.Sprintf("%s%d%d", CollegeAbbreviation(college), s.now().Year(), digits)
}

// ParseMarks converts the submitted percentage; "N/A" and invalid values become 0.
func ParseMarks(v string) float64 {
	v = strings.TrimSpace(v)
	if v == "" || v == types.NotAvailable {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

// Submit stores the application, then publishes an event and sends the
// confirmation email. Only the duplicate check and the insert can fail the
// request; notification problems are reported in the response message.
func (s *Service) Submit(ctx context.Context, req *types.ApplicationRequest) (*types.SubmitResponse, error) {
	req.ApplyDefaults()

	exists, err := s.store.ApplicationExists(ctx, req.College, req.Email, req.Phone)
	if err != nil {
		observability.RecordApplication(OutcomeFailed)
		return nil, fmt.Errorf("failed to check for duplicates: %w", err)
	}
	if exists {
		observability.RecordApplication(OutcomeDuplicate)
		return nil, ErrDuplicate
	}

	app := &types.Application{
		ID:              uuid.New(),
		ReferenceID:     s.ReferenceID(req.College),
		College:         req.College,
		StudentName:     req.StudentName,
		ParentName:      req.ParentName,
		Email:           req.Email,
		Phone:           req.Phone,
		Gender:          req.Gender,
		DOB:             req.DOB,
		Community:       req.Community,
		Address:         req.Address,
		Qualification:   req.Qualification,
		Stream:          req.Stream,
		MarksPercentage: ParseMarks(req.MarksPercentage),
		CourseApplied:   req.CourseApplied,
		Message:         req.Message,
		CreatedAt:       s.now().UTC(),
	}
	if err := s.store.InsertApplication(ctx, app); err != nil {
		observability.RecordApplication(OutcomeFailed)
		return nil, fmt.Errorf("failed to save application: %w", err)
	}
	observability.RecordApplication(OutcomeSubmitted)
	log.Printf("[applications] received application for %s from %s (%s) - Ref: %s",
		app.College, app.StudentName, app.Email, app.ReferenceID)

	if s.publisher != nil {
		if err := s.publisher.PublishSubmitted(ctx, app); err != nil {
			log.Printf("[applications] failed to publish submission event: %v", err)
		}
	}

	return &types.SubmitResponse{
		Message:     s.confirm(ctx, app),
		ReferenceID: app.ReferenceID,
	}, nil
}

// confirm sends the confirmation email and returns the response message.
func (s *Service) confirm(ctx context.Context, app *types.Application) string {
	if s.mailer == nil {
		return MessageSubmitted
	}

	email, err := notify.RenderConfirmation(app)
	if err == nil {
		var delivery notify.Delivery
		delivery, err = s.mailer.Send(ctx, email)
		if err == nil && delivery.Simulated {
			return MessageSimulated
		}
	}
	if err != nil {
		log.Printf("[applications] error sending email: %v", err)
		return MessageSubmitted + fmt.Sprintf(" (Note: Email sending failed: %v)", err)
	}
	return MessageSubmitted + MessageEmailSent
}

// List returns all applications, newest first.
func (s *Service) List(ctx context.Context) ([]types.Application, error) {
	apps, err := s.store.ListApplications(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	if apps == nil {
		apps = []types.Application{}
	}
	return apps, nil
}
