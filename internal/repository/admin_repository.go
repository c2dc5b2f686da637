package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	errs "reviewboard/internal/errors"
	"reviewboard/internal/model"
	"reviewboard/internal/store"
)

// AdminsTable is the table name backing administrator accounts.
const AdminsTable = "admins"

var adminHeader = []string{"id", "username", "password_hash", "created_at"}

// AdminRepository defines persistence operations for admin accounts.
type AdminRepository interface {
	// EnsureDefault seeds the admins table with a single default account the
	// first time the table file does not exist. It reports whether seeding
	// happened.
	EnsureDefault(ctx context.Context, username, passwordHash string) (bool, error)
	FindByUsername(ctx context.Context, username string) (*model.Admin, error)
	UpdatePasswordHash(ctx context.Context, username, passwordHash string) error
}

type adminRepository struct {
	store *store.Store
}

// NewAdminRepository builds a store-backed repository.
func NewAdminRepository(st *store.Store) AdminRepository {
	return &adminRepository{store: st}
}

func (r *adminRepository) EnsureDefault(ctx context.Context, username, passwordHash string) (bool, error) {
	if r.store.Exists(AdminsTable) {
		return false, nil
	}
	admin := model.Admin{
		ID:           1,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := r.store.Write(AdminsTable, adminHeader, [][]string{encodeAdmin(&admin)}); err != nil {
		return false, err
	}
	return true, nil
}

func (r *adminRepository) FindByUsername(ctx context.Context, username string) (*model.Admin, error) {
	rows, err := r.store.Read(AdminsTable)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		admin, err := decodeAdmin(row)
		if err != nil {
			return nil, err
		}
		if admin.Username == username {
			return &admin, nil
		}
	}
	return nil, errs.ErrAdminNotFound
}

func (r *adminRepository) UpdatePasswordHash(ctx context.Context, username, passwordHash string) error {
	return r.store.Update(AdminsTable, adminHeader, func(rows [][]string) ([][]string, error) {
		for i, row := range rows {
			admin, err := decodeAdmin(row)
			if err != nil {
				return nil, err
			}
			if admin.Username == username {
				admin.PasswordHash = passwordHash
				rows[i] = encodeAdmin(&admin)
				return rows, nil
			}
		}
		return nil, errs.ErrAdminNotFound
	})
}

func encodeAdmin(a *model.Admin) []string {
	return []string{
		strconv.Itoa(a.ID),
		a.Username,
		a.PasswordHash,
		a.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func decodeAdmin(row []string) (model.Admin, error) {
	if len(row) < len(adminHeader) {
		return model.Admin{}, fmt.Errorf("admins table: malformed row %v", row)
	}
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return model.Admin{}, fmt.Errorf("admins table: malformed id %q", row[0])
	}
	createdAt, err := time.Parse(time.RFC3339, row[3])
	if err != nil {
		return model.Admin{}, fmt.Errorf("admins table: malformed created_at %q", row[3])
	}
	return model.Admin{
		ID:           id,
		Username:     row[1],
		PasswordHash: row[2],
		CreatedAt:    createdAt,
	}, nil
}
