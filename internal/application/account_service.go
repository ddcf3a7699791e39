package application

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/catalog-favorites/config"
	"github.com/oksasatya/catalog-favorites/internal/domain/apperr"
	"github.com/oksasatya/catalog-favorites/internal/domain/entity"
	repo "github.com/oksasatya/catalog-favorites/internal/domain/repository"
	"github.com/oksasatya/catalog-favorites/pkg/mailer"
	mailtpl "github.com/oksasatya/catalog-favorites/pkg/mailer/templates"
)

var (
	ErrInvalidCredentials = apperr.Unauthorized("Invalid email or password")
	ErrUserNotFound       = apperr.NotFound("User not found")
)

type AccountService struct {
	Repo   repo.UserRepository
	Tx     repo.TxManager
	Hasher PasswordHasher
	Logger *logrus.Logger
	// Mail is optional; when nil no welcome email is queued.
	Mail JobPublisher
	Cfg  *config.Config
}

func NewAccountService(users repo.UserRepository, tx repo.TxManager, hasher PasswordHasher, logger *logrus.Logger, mail JobPublisher, cfg *config.Config) *AccountService {
	return &AccountService{Repo: users, Tx: tx, Hasher: hasher, Logger: logger, Mail: mail, Cfg: cfg}
}

// bcrypt refuses longer input.
const maxPasswordBytes = 72

type RegisterInput struct {
	Username string
	Name     string
	Email    string
	Phone    string
	Password string
}

// Register creates an account. Email uniqueness is checked before username
// uniqueness so the conflict message is deterministic.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	switch {
	case in.Username == "":
		return nil, apperr.InvalidRequest("Username is required")
	case in.Email == "":
		return nil, apperr.InvalidRequest("Email is required")
	case in.Password == "":
		return nil, apperr.InvalidRequest("Password is required")
	case len(in.Password) > maxPasswordBytes:
		return nil, apperr.InvalidRequest("Password is too long")
	}

	var u *entity.User
	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := s.Repo.ExistsByEmail(ctx, in.Email)
		if err != nil {
			return err
		}
		if exists {
			return apperr.Conflict("Email already exists")
		}
		exists, err = s.Repo.ExistsByUsername(ctx, in.Username)
		if err != nil {
			return err
		}
		if exists {
			return apperr.Conflict("Username already exists")
		}

		hash, err := s.Hasher.Hash(in.Password)
		if err != nil {
			return err
		}
		u = &entity.User{
			Username:     in.Username,
			Email:        in.Email,
			Name:         in.Name,
			Phone:        in.Phone,
			PasswordHash: hash,
		}
		return s.Repo.Save(ctx, u)
	})
	if err != nil {
		return nil, err
	}

	metricRegistrations.Add(1)
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email}).Info("user registered")
	}
	s.enqueueWelcome(ctx, u)
	return u, nil
}

func (s *AccountService) enqueueWelcome(ctx context.Context, u *entity.User) {
	if s.Mail == nil || s.Cfg == nil || !s.Cfg.MailSendEnabled {
		return
	}
	data := mailtpl.NewWelcomeData(s.Cfg, u.Name, u.Email,
		mailtpl.WithUsername(u.Username),
		mailtpl.WithTime(time.Now()),
	)
	job := mailer.EmailJob{To: u.Email, Template: mailtpl.Welcome, Data: data}
	if err := s.Mail.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("failed to enqueue welcome email")
	}
}

// Login returns the account for email when password matches. Unknown email
// and wrong password yield the same error.
func (s *AccountService) Login(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if u == nil || !s.Hasher.Verify(password, u.PasswordHash) {
		metricLoginFailures.Add(1)
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *AccountService) GetUser(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
