package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"healprint/internal/models"

	"github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormUserStore keeps users in MySQL.
type GormUserStore struct {
	db *gorm.DB
}

// OpenMySQL connects with gorm and migrates the users table.
func OpenMySQL(dsn, logLevel string) (*gorm.DB, error) {
	gormConfig := &gorm.Config{}
	switch logLevel {
	case "silent":
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	case "error":
		gormConfig.Logger = logger.Default.LogMode(logger.Error)
	case "info":
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	default:
		gormConfig.Logger = logger.Default.LogMode(logger.Warn)
	}

	db, err := gorm.Open(gormmysql.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("OpenMySQL(): failed to open database: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		return nil, fmt.Errorf("OpenMySQL(): failed to migrate users: %w", err)
	}
	return db, nil
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) CreateUser(ctx context.Context, user *models.User) error {
	user.Email = NormalizeEmail(user.Email)
	if user.GoogleID != nil && *user.GoogleID == "" {
		user.GoogleID = nil
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicateError(err) {
			if strings.Contains(err.Error(), "google_id") {
				return ErrGoogleIDExists
			}
			return ErrEmailExists
		}
		return fmt.Errorf("CreateUser(): %w", err)
	}
	return nil
}

func (s *GormUserStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *GormUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.first(ctx, "email = ?", NormalizeEmail(email))
}

func (s *GormUserStore) GetUserByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	return s.first(ctx, "google_id = ?", googleID)
}

func (s *GormUserStore) LinkGoogleAccount(ctx context.Context, userID, googleID, picture string) error {
	updates := map[string]any{"google_id": googleID}
	if picture != "" {
		updates["picture"] = picture
	}
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if res.Error != nil {
		if isDuplicateError(res.Error) {
			return ErrGoogleIDExists
		}
		return fmt.Errorf("LinkGoogleAccount(): %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *GormUserStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormUserStore) first(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where(query, arg).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrUserNotFound
	case err != nil:
		return nil, fmt.Errorf("first(): %w", err)
	}
	return &user, nil
}

// MySQL 1062: duplicate entry
func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
