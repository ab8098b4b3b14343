package accounts

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer mints access tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID, role, email string) (string, error)
}

type Service struct {
	users     UserRepository
	addresses AddressRepository
	tokens    TokenIssuer
}

func NewService(users UserRepository, addresses AddressRepository, tokens TokenIssuer) *Service {
	return &Service{users: users, addresses: addresses, tokens: tokens}
}

// SignUp registers a new patient account and returns it with a fresh token.
func (s *Service) SignUp(ctx context.Context, req SignUpRequest) (*User, string, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if !strings.Contains(email, "@") {
		return nil, "", ErrInvalidEmail
	}
	if len(req.Password) < 8 {
		return nil, "", ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	u := &User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(req.FullName),
		Phone:        req.Phone,
		Role:         RolePatient,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(u.ID.String(), u.Role, u.Email)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// LogIn verifies the credentials and returns the user with a fresh token.
func (s *Service) LogIn(ctx context.Context, req LogInRequest) (*User, string, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID.String(), u.Role, u.Email)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// ResetPassword replaces the stored hash for the account with the given email.
func (s *Service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if len(req.NewPassword) < 8 {
		return ErrWeakPassword
	}
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePasswordHash(ctx, u.ID, string(hash))
}

// Profile returns the user's account data with their address, if any.
func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	addr, err := s.addresses.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: *u, Address: addr}, nil
}

// UpdateProfile changes the user's name and/or phone number.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if req.FullName != nil {
		u.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}
	return s.users.Update(ctx, u)
}

// UpdateAddress creates or replaces the user's address.
func (s *Service) UpdateAddress(ctx context.Context, userID uuid.UUID, req UpdateAddressRequest) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.addresses.Upsert(ctx, &Address{
		UserID:     userID,
		Line1:      strings.TrimSpace(req.Line1),
		Line2:      req.Line2,
		City:       strings.TrimSpace(req.City),
		State:      strings.TrimSpace(req.State),
		PostalCode: strings.TrimSpace(req.PostalCode),
	})
}
