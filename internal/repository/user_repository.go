package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/train-booking/internal/model"
	"github.com/iliyamo/train-booking/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// NewUser carries the registration fields.
type NewUser struct {
	Email    string
	Password string
	FullName *string
	Age      *int
	Role     string
}

// Create inserts a user with a fresh UUID and returns the stored row.
func (r *UserRepo) Create(ctx context.Context, in NewUser, cost int) (model.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	hash, err := utils.HashPassword(in.Password, cost)
	if err != nil {
		return model.User{}, err
	}
	u := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FullName:     in.FullName,
		Age:          in.Age,
		Role:         in.Role,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO users (id, email, password_hash, full_name, age, role, created_at) VALUES (?,?,?,?,?,?,?)",
		u.ID, u.Email, u.PasswordHash, u.FullName, u.Age, u.Role, u.CreatedAt)
	if err != nil {
		// 1062 is MySQL's duplicate key; sqlite reports a UNIQUE constraint failure
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "1062") || strings.Contains(msg, "unique constraint") {
			return model.User{}, model.ErrEmailExists
		}
		return model.User{}, storageErr("create user", err)
	}
	return u, nil
}

const userColumns = "id,email,password_hash,full_name,age,role,created_at"

func scanUser(s rowScanner) (model.User, error) {
	var u model.User
	var name sql.NullString
	var age sql.NullInt64
	if err := s.Scan(&u.ID, &u.Email, &u.PasswordHash, &name, &age, &u.Role, &u.CreatedAt); err != nil {
		return model.User{}, err
	}
	u.FullName = nullString(name)
	u.Age = nullInt(age)
	return u, nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
	if err != nil {
		return model.User{}, storageErr("get user by email", err)
	}
	return u, nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
	if err != nil {
		return model.User{}, storageErr("get user", err)
	}
	return u, nil
}
