// Package catalog is the access-controlled facade over the route
// reference data: it authenticates the caller, checks the operation's
// role allow-list, runs the repository operation and serializes the
// result. Failures propagate to the caller untouched.
package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mkolev/routecatalog/internal/auth"
	"github.com/mkolev/routecatalog/internal/domain"
	"github.com/mkolev/routecatalog/internal/kafka"
	"github.com/mkolev/routecatalog/internal/repository"
)

type Credentials struct {
	Username string
	Password string
}

type UseCase interface {
	InsertUser(ctx context.Context, creds Credentials, body string) (string, error)
	ListUsers(ctx context.Context, creds Credentials) (string, error)
	InsertPair(ctx context.Context, creds Credentials, body string) (string, error)
	ListPairs(ctx context.Context, creds Credentials) (string, error)
	GetPair(ctx context.Context, creds Credentials, origin, destination string) (string, error)
	FindPairs(ctx context.Context, creds Credentials, origin, destination string) (string, error)
	GetFlights(ctx context.Context, creds Credentials, origin, destination string) (string, error)
	GenerateFlights(ctx context.Context, creds Credentials) (int, error)
	Generate(ctx context.Context) (int, error)
}

type Cache interface {
	GetFlights(ctx context.Context, origin, destination string) (string, bool, error)
	SetFlights(ctx context.Context, origin, destination, payload string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, payload any) error
}

// Per-operation role allow-lists. Roles are flat; every acceptable role
// is listed explicitly.
var (
	flightReadRoles = []domain.Role{domain.RoleExternal, domain.RoleInternal, domain.RoleManager, domain.RoleAdmin}
	listRoles       = []domain.Role{domain.RoleInternal, domain.RoleManager, domain.RoleAdmin}
	writeRoles      = []domain.Role{domain.RoleManager, domain.RoleAdmin}
)

type Service struct {
	users   repository.UserRepository
	pairs   repository.PairRepository
	flights repository.FlightRepository
	authn   auth.Authenticator
	authz   auth.Authorizer

	cache           Cache
	producer        Producer
	auditTopic      string
	exposePasswords bool
}

type ServiceOption func(*Service)

func WithCache(c Cache) ServiceOption {
	return func(s *Service) { s.cache = c }
}

func WithProducer(p Producer, topic string) ServiceOption {
	return func(s *Service) {
		s.producer = p
		s.auditTopic = topic
	}
}

// WithExposedPasswords switches the user listing to the full
// serialization. Debugging aid only.
func WithExposedPasswords() ServiceOption {
	return func(s *Service) { s.exposePasswords = true }
}

func NewService(
	users repository.UserRepository,
	pairs repository.PairRepository,
	flights repository.FlightRepository,
	authn auth.Authenticator,
	authz auth.Authorizer,
	opts ...ServiceOption,
) *Service {
	s := &Service{
		users:   users,
		pairs:   pairs,
		flights: flights,
		authn:   authn,
		authz:   authz,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// guard authenticates the caller and checks the operation's allow-list.
func (s *Service) guard(ctx context.Context, creds Credentials, allowed ...domain.Role) error {
	ok, err := s.authn.Authenticate(ctx, creds.Username, creds.Password)
	if err != nil {
		return err
	}
	if !ok {
		return domain.Unauthorized("invalid username or password")
	}

	ok, err = auth.AuthorizeAny(ctx, s.authz, creds.Username, allowed...)
	if err != nil {
		return err
	}
	if !ok {
		return domain.Forbiddenf("user %s is not authorized to perform this action", creds.Username)
	}
	return nil
}

func (s *Service) InsertUser(ctx context.Context, creds Credentials, body string) (string, error) {
	if err := s.guard(ctx, creds, writeRoles...); err != nil {
		return "", err
	}
	user, err := domain.ParseUser(body)
	if err != nil {
		return "", err
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return "", err
	}
	s.audit(ctx, "user.created", user.Username, user.Type.String())
	return user.Serialize()
}

func (s *Service) ListUsers(ctx context.Context, creds Credentials) (string, error) {
	if err := s.guard(ctx, creds, listRoles...); err != nil {
		return "", err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return "", err
	}

	items := make([]string, 0, len(users))
	for _, u := range users {
		var (
			raw string
			err error
		)
		if s.exposePasswords {
			raw, err = u.Serialize()
		} else {
			raw, err = u.SerializeRedacted()
		}
		if err != nil {
			return "", err
		}
		items = append(items, raw)
	}
	return joinSerialized(items), nil
}

func (s *Service) InsertPair(ctx context.Context, creds Credentials, body string) (string, error) {
	if err := s.guard(ctx, creds, writeRoles...); err != nil {
		return "", err
	}
	pair, err := domain.ParsePair(body)
	if err != nil {
		return "", err
	}
	if err := s.pairs.Insert(ctx, pair); err != nil {
		return "", err
	}
	s.audit(ctx, "pair.created", pair.Origin+"-"+pair.Destination, pair.FareCarrier)
	return pair.Serialize()
}

func (s *Service) ListPairs(ctx context.Context, creds Credentials) (string, error) {
	if err := s.guard(ctx, creds, listRoles...); err != nil {
		return "", err
	}
	pairs, err := s.pairs.List(ctx)
	if err != nil {
		return "", err
	}
	return serializePairs(pairs)
}

func (s *Service) GetPair(ctx context.Context, creds Credentials, origin, destination string) (string, error) {
	if err := s.guard(ctx, creds, listRoles...); err != nil {
		return "", err
	}
	pair, err := s.pairs.Get(ctx, origin, destination)
	if err != nil {
		return "", err
	}
	return pair.Serialize()
}

// FindPairs aggregates every row the filter matches. Behind the
// concatenated repository this is the injection-contrast surface: a
// tautology filter returns the whole table.
func (s *Service) FindPairs(ctx context.Context, creds Credentials, origin, destination string) (string, error) {
	if err := s.guard(ctx, creds, listRoles...); err != nil {
		return "", err
	}
	pairs, err := s.pairs.Find(ctx, origin, destination)
	if err != nil {
		return "", err
	}
	return serializePairs(pairs)
}

func (s *Service) GetFlights(ctx context.Context, creds Credentials, origin, destination string) (string, error) {
	if err := s.guard(ctx, creds, flightReadRoles...); err != nil {
		return "", err
	}

	if s.cache != nil {
		payload, ok, err := s.cache.GetFlights(ctx, origin, destination)
		if err != nil {
			log.Warn().Err(err).Msg("failed to read flights cache")
		} else if ok {
			return payload, nil
		}
	}

	flights, err := s.flights.Get(ctx, origin, destination)
	if err != nil {
		return "", err
	}

	items := make([]string, 0, len(flights))
	for _, f := range flights {
		raw, err := f.Serialize()
		if err != nil {
			return "", err
		}
		items = append(items, raw)
	}
	payload := joinSerialized(items)

	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, origin, destination, payload); err != nil {
			log.Warn().Err(err).Msg("failed to refresh flights cache")
		}
	}
	return payload, nil
}

func (s *Service) GenerateFlights(ctx context.Context, creds Credentials) (int, error) {
	if err := s.guard(ctx, creds, writeRoles...); err != nil {
		return 0, err
	}
	return s.Generate(ctx)
}

// Generate is the unauthenticated entry used by the in-process worker.
// Idempotent: only pairs still missing flights are populated.
func (s *Service) Generate(ctx context.Context) (int, error) {
	generated, err := s.flights.GenerateForAllPairs(ctx)
	if err != nil {
		return 0, err
	}
	if generated > 0 {
		s.audit(ctx, "flights.generated", "all-pairs", "")
	}
	return generated, nil
}

// audit publishes best-effort; a broker failure never fails the request.
func (s *Service) audit(ctx context.Context, eventType, subject, detail string) {
	if s.producer == nil {
		return
	}
	event := kafka.AuditEvent{
		ID:      uuid.NewString(),
		Type:    eventType,
		Subject: subject,
		Detail:  detail,
		Time:    time.Now().UTC(),
	}
	if err := s.producer.Publish(ctx, s.auditTopic, event.Type, event); err != nil {
		log.Warn().Err(err).Str("event", eventType).Msg("failed to publish audit event")
	}
}

func serializePairs(pairs []domain.Pair) (string, error) {
	items := make([]string, 0, len(pairs))
	for _, p := range pairs {
		raw, err := p.Serialize()
		if err != nil {
			return "", err
		}
		items = append(items, raw)
	}
	return joinSerialized(items), nil
}

// joinSerialized renders a finite sequence of already-serialized records
// as a JSON array: comma-joined, no trailing separator.
func joinSerialized(items []string) string {
	return "[" + strings.Join(items, ",") + "]"
}

var _ UseCase = (*Service)(nil)
