package identity

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinrec/clinrec/internal/platform/apperror"
	"github.com/clinrec/clinrec/internal/platform/auth"
)

// TokenIssuer mints an access token for an authenticated user.
type TokenIssuer interface {
	Issue(email, role string) (string, error)
}

type Service struct {
	users      Repository
	tokens     TokenIssuer
	bcryptCost int
}

func NewService(users Repository, tokens TokenIssuer) *Service {
	return &Service{users: users, tokens: tokens, bcryptCost: bcrypt.DefaultCost}
}

// WithBcryptCost overrides the hashing cost. Tests use bcrypt.MinCost.
func (s *Service) WithBcryptCost(cost int) *Service {
	s.bcryptCost = cost
	return s
}

var validRoles = map[string]bool{
	auth.RoleAdmin: true, auth.RoleDoctor: true, auth.RoleStaff: true,
}

// Register creates an account with a bcrypt-hashed password. A duplicate
// email is a conflict. Email is stored and matched exactly as given: it is a
// case-sensitive lookup key, not a mailbox address.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*User, error) {
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		return nil, apperror.InvalidArgument("email is required")
	}
	if len(req.Password) < 8 {
		return nil, apperror.InvalidArgument("password must be at least 8 characters")
	}
	if req.Role == "" {
		req.Role = auth.RoleStaff
	}
	if !validRoles[req.Role] {
		return nil, apperror.InvalidArgument("invalid role: " + req.Role)
	}

	taken, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}
	if taken {
		return nil, apperror.Conflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}

	u := &User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
		Phone:        req.Phone,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies credentials and mints a token. Unknown email and wrong
// password return the same error so the response does not reveal which.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.InvalidCredentials()
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.InvalidCredentials()
	}

	tok, err := s.tokens.Issue(u.Email, u.Role)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}
	return &TokenResponse{Token: tok, User: u}, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*User, int, error) {
	return s.users.List(ctx, limit, offset)
}
