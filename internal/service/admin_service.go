package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	errs "reviewboard/internal/errors"
	"reviewboard/internal/model"
	"reviewboard/internal/repository"
)

// AdminService handles credential verification and password rotation.
type AdminService interface {
	Login(ctx context.Context, username, password string) (*model.Admin, error)
	ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error
}

type adminService struct {
	repo repository.AdminRepository
}

// NewAdminService builds an AdminService over the repository.
func NewAdminService(repo repository.AdminRepository) AdminService {
	return &adminService{repo: repo}
}

// Login verifies the password against the stored digest. Unknown usernames
// and wrong passwords both surface as ErrInvalidCredentials.
func (s *adminService) Login(ctx context.Context, username, password string) (*model.Admin, error) {
	admin, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errs.ErrAdminNotFound) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	if !verifyPassword(password, admin.PasswordHash) {
		return nil, errs.ErrInvalidCredentials
	}
	return admin, nil
}

// ChangePassword rotates the stored digest after proving the old password.
func (s *adminService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	admin, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errs.ErrAdminNotFound) {
			return errs.ErrInvalidCredentials
		}
		return fmt.Errorf("find admin: %w", err)
	}
	if !verifyPassword(oldPassword, admin.PasswordHash) {
		return errs.ErrInvalidCredentials
	}
	if err := s.repo.UpdatePasswordHash(ctx, username, HashPassword(newPassword)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// HashPassword returns the hex-encoded SHA-256 digest of the password. The
// digest format is fixed by the stored admins table, so it cannot change
// without invalidating every existing account.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func verifyPassword(password, storedHash string) bool {
	digest := HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(storedHash)) == 1
}
