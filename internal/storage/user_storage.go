package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"healprint/internal/models"
)

const userColumns = `id, email, password_hash, name, age, country, google_id, picture, auth_provider, created_at`

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserStore) CreateUser(ctx context.Context, user *models.User) error {
	user.Email = NormalizeEmail(user.Email)

	var age sql.NullInt64
	if user.Age != nil {
		age = sql.NullInt64{Int64: int64(*user.Age), Valid: true}
	}
	var googleID sql.NullString
	if user.GoogleID != nil && *user.GoogleID != "" {
		googleID = sql.NullString{String: *user.GoogleID, Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users(`+userColumns+`) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.PasswordHash, user.Name, age, user.Country,
		googleID, user.Picture, user.AuthProvider, formatTime(user.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			if strings.Contains(err.Error(), "google_id") {
				return ErrGoogleIDExists
			}
			return ErrEmailExists
		}
		return fmt.Errorf("CreateUser(): %w", err)
	}
	return nil
}

func (s *UserStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, "id = ?", id)
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, "email = ?", NormalizeEmail(email))
}

func (s *UserStore) GetUserByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	return s.getUser(ctx, "google_id = ?", googleID)
}

// LinkGoogleAccount 기존 이메일 계정에 Google ID 연결, auth_provider 는 유지
func (s *UserStore) LinkGoogleAccount(ctx context.Context, userID, googleID, picture string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET google_id = ?, picture = CASE WHEN ? = '' THEN picture ELSE ? END WHERE id = ?`,
		googleID, picture, picture, userID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrGoogleIDExists
		}
		return fmt.Errorf("LinkGoogleAccount(): %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *UserStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *UserStore) getUser(ctx context.Context, where string, arg any) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg)

	var (
		user      models.User
		nullAge   sql.NullInt64
		nullCtry  sql.NullString
		nullGID   sql.NullString
		nullPic   sql.NullString
		createdAt string
	)
	if err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name,
		&nullAge, &nullCtry, &nullGID, &nullPic, &user.AuthProvider, &createdAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getUser(): %w", err)
	}

	if nullAge.Valid {
		age := int(nullAge.Int64)
		user.Age = &age
	}
	if nullCtry.Valid {
		user.Country = nullCtry.String
	}
	if nullGID.Valid {
		gid := nullGID.String
		user.GoogleID = &gid
	}
	if nullPic.Valid {
		user.Picture = nullPic.String
	}
	user.CreatedAt = parseTime(createdAt)
	return &user, nil
}
