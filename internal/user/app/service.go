package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	identityapp "github.com/dwikikusuma/marketplace/internal/identity/app"
	identity "github.com/dwikikusuma/marketplace/internal/identity/domain"
	"github.com/dwikikusuma/marketplace/internal/user/domain"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrConflict           = errors.New("username or email already in use")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotFound           = errors.New("user not found")
	ErrForbidden          = errors.New("not allowed to modify this user")
)

// bcrypt only reads the first 72 bytes of a password.
const maxPasswordBytes = 72

type Service struct {
	repo   UserRepo
	hasher PasswordHasher
	tokens identityapp.TokenIssuer
}

func NewService(repo UserRepo, hasher PasswordHasher, tokens identityapp.TokenIssuer) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
	}
}

type Registration struct {
	Username string
	Password string
	Email    string
	Name     string
	Surname  string
}

func (s *Service) Register(ctx context.Context, in Registration) (domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	in.Surname = strings.TrimSpace(in.Surname)

	switch {
	case in.Username == "", in.Password == "", in.Email == "", in.Name == "", in.Surname == "":
		return domain.User{}, fmt.Errorf("%w: username, password, email, name and surname are required", ErrInvalidInput)
	case !strings.Contains(in.Email, "@"):
		return domain.User{}, fmt.Errorf("%w: email is malformed", ErrInvalidInput)
	case len(in.Password) > maxPasswordBytes:
		return domain.User{}, fmt.Errorf("%w: password longer than %d bytes", ErrInvalidInput, maxPasswordBytes)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	return s.repo.Create(ctx, domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Surname:      in.Surname,
	})
}

// Login checks the credentials and issues a session token. Unknown users and
// wrong passwords fail the same way.
func (s *Service) Login(ctx context.Context, username, password string) (string, domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", domain.User{}, ErrInvalidInput
	}

	u, err := s.repo.GetByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return "", domain.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", domain.User{}, err
	}
	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return "", domain.User{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(identity.Identity{ID: u.ID, Username: u.Username, IsAdmin: u.IsAdmin})
	if err != nil {
		return "", domain.User{}, fmt.Errorf("issue token: %w", err)
	}
	return token, u, nil
}

func (s *Service) Get(ctx context.Context, id int64) (domain.User, error) {
	if id <= 0 {
		return domain.User{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile lets a user edit their own profile. Admins may edit anyone's.
func (s *Service) UpdateProfile(ctx context.Context, actor identity.Identity, id int64, p domain.ProfilePatch) (domain.User, error) {
	if p.Empty() {
		return domain.User{}, ErrInvalidInput
	}
	if p.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*p.Email))
		if !strings.Contains(email, "@") {
			return domain.User{}, fmt.Errorf("%w: email is malformed", ErrInvalidInput)
		}
		p.Email = &email
	}
	for _, f := range []*string{p.Name, p.Surname} {
		if f != nil && strings.TrimSpace(*f) == "" {
			return domain.User{}, fmt.Errorf("%w: name and surname cannot be blank", ErrInvalidInput)
		}
	}
	if p.Age != nil && (*p.Age < 0 || *p.Age > 150) {
		return domain.User{}, fmt.Errorf("%w: age out of range", ErrInvalidInput)
	}

	if _, err := s.Get(ctx, id); err != nil {
		return domain.User{}, err
	}
	if !identity.OwnerOrAdmin(actor, id) {
		return domain.User{}, ErrForbidden
	}
	return s.repo.Update(ctx, id, p)
}

// Email returns the address order confirmations are sent to.
func (s *Service) Email(ctx context.Context, userID int64) (string, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	return u.Email, nil
}

// IsAdmin reports the stored admin flag. ok is false for unknown users.
func (s *Service) IsAdmin(ctx context.Context, userID int64) (admin, ok bool, err error) {
	u, err := s.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return u.IsAdmin, true, nil
}
