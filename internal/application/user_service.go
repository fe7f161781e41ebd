package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/majesty-shop/internal/domain/entity"
	repo "github.com/oksasatya/majesty-shop/internal/domain/repository"
	"github.com/oksasatya/majesty-shop/internal/infrastructure/kvstore"
	"github.com/oksasatya/majesty-shop/pkg/validation"
)

const (
	msgRegistered       = "Registration successful! You can now log in."
	msgFixForm          = "Please fix the errors marked in the form."
	msgMissingLogin     = "Please enter your email and password."
	msgBadCredentials   = "Incorrect email or password. Please try again."
	msgCredentialsField = "Incorrect credentials."
	msgEmailTaken       = "is already registered"
)

type RegistrationInput struct {
	Name           string `json:"name" validate:"required"`
	LastName       string `json:"lastName" validate:"required"`
	Email          string `json:"email" validate:"required,mail"`
	Password       string `json:"password" validate:"required,pwd"`
	RepeatPassword string `json:"repeatPassword" validate:"required,samepwd"`
	TermsAccepted  bool   `json:"termsAccepted" validate:"accepted"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type Redirect struct {
	URL     string `json:"url"`
	AfterMS int64  `json:"after_ms"`
}

type LoginResult struct {
	Session  entity.Session `json:"session"`
	Redirect Redirect       `json:"redirect"`
	Message  string         `json:"message"`
}

type RegistrationResult struct {
	User    *entity.User `json:"-"`
	Message string       `json:"message"`
}

type UserService struct {
	Storage       repo.Storage
	Validate      *validator.Validate
	Logger        *logrus.Logger
	RedirectURL   string
	RedirectDelay time.Duration
	Now           func() time.Time
}

func NewUserService(storage repo.Storage, validate *validator.Validate, logger *logrus.Logger, redirectURL string, redirectDelay time.Duration) *UserService {
	if validate == nil {
		validate = validation.New()
	}
	return &UserService{
		Storage:       storage,
		Validate:      validate,
		Logger:        logger,
		RedirectURL:   redirectURL,
		RedirectDelay: redirectDelay,
		Now:           time.Now,
	}
}

func (s *UserService) repo(clientID string) repo.UserRepository {
	return kvstore.NewUserRepository(s.Storage.Scope(clientID), s.Logger)
}

// fieldErrors runs the struct rules and returns one message per failing field.
func (s *UserService) fieldErrors(in any) map[string]string {
	fields := map[string]string{}
	if err := s.Validate.Struct(in); err != nil {
		for k, v := range validation.ToDetails(err) {
			fields[k] = v
		}
	}
	return fields
}

// Register validates every field, checks the email is not taken and appends
// the new user. All violations are reported together.
func (s *UserService) Register(ctx context.Context, clientID string, in RegistrationInput) (*RegistrationResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)

	users := s.repo(clientID)
	fields := s.fieldErrors(in)
	if _, bad := fields["email"]; !bad {
		_, err := users.GetByEmail(ctx, in.Email)
		switch {
		case err == nil:
			fields["email"] = msgEmailTaken
		case !errors.Is(err, kvstore.ErrNotFound):
			return nil, err
		}
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields, Message: msgFixForm}
	}

	now := s.Now()
	u := entity.User{
		ID:           now.UnixMilli(),
		Name:         in.Name,
		LastName:     in.LastName,
		Email:        in.Email,
		Password:     in.Password,
		RegisteredAt: now.UTC(),
	}
	if err := users.Append(ctx, u); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("client_id", clientID).Error("save user failed")
		}
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"client_id": clientID, "user_id": u.ID}).Info("user registered")
	}
	return &RegistrationResult{User: &u, Message: msgRegistered}, nil
}

// Login matches email and password exactly, records the session and returns
// where the page should go next.
func (s *UserService) Login(ctx context.Context, clientID string, in LoginInput) (*LoginResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	if fields := s.fieldErrors(in); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields, Message: msgMissingLogin}
	}

	users := s.repo(clientID)
	list, err := users.List(ctx)
	if err != nil {
		return nil, err
	}
	var match *entity.User
	for i := range list {
		if list[i].Email == in.Email && list[i].Password == in.Password {
			match = &list[i]
			break
		}
	}
	if match == nil {
		return nil, &AuthError{
			Fields:  map[string]string{"email": msgCredentialsField, "password": msgCredentialsField},
			Message: msgBadCredentials,
		}
	}

	sess := entity.SessionFor(match)
	if err := users.SaveSession(ctx, sess); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("client_id", clientID).Error("save session failed")
		}
		return nil, err
	}
	return &LoginResult{
		Session:  sess,
		Redirect: Redirect{URL: s.RedirectURL, AfterMS: s.RedirectDelay.Milliseconds()},
		Message:  "Welcome, " + match.Name + "! Redirecting...",
	}, nil
}

func (s *UserService) CurrentSession(ctx context.Context, clientID string) (*entity.Session, error) {
	sess, err := s.repo(clientID).CurrentSession(ctx)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, ErrNoSession
	}
	return sess, err
}
