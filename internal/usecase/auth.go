package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/nhoyhub/esignhub/internal/domain/errors"
	"github.com/nhoyhub/esignhub/internal/domain/repository"
	pkgAuth "github.com/nhoyhub/esignhub/internal/pkg/auth"
)

// AuthUseCase validates admin credentials against the admins relation and
// hands out the single shared bearer token. There is no per-admin identity
// beyond the login row.
type AuthUseCase struct {
	admins repository.AdminRepository
	hasher pkgAuth.PasswordHasher
	token  string
}

// NewAuthUseCase constructs AuthUseCase around the shared static token.
func NewAuthUseCase(admins repository.AdminRepository, hasher pkgAuth.PasswordHasher, token string) *AuthUseCase {
	return &AuthUseCase{admins: admins, hasher: hasher, token: token}
}

// Login checks the password and returns the shared admin token.
func (u *AuthUseCase) Login(ctx context.Context, username, password string) (string, error) {
	admin, err := u.admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return "", domainErrors.ErrInvalidCredentials
		}
		return "", err
	}
	if err := u.hasher.Compare(admin.PasswordHash, password); err != nil {
		return "", domainErrors.ErrInvalidCredentials
	}
	return u.token, nil
}

// EnsureDefaultAdmin seeds the bootstrap admin account if absent.
func (u *AuthUseCase) EnsureDefaultAdmin(ctx context.Context, username, password string) error {
	hash, err := u.hasher.Hash(password)
	if err != nil {
		return err
	}
	return u.admins.Ensure(ctx, username, hash)
}
