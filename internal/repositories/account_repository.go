package repositories

import (
	"github.com/unihelp-app/backend/internal/models"
	"gorm.io/gorm"
)

// AccountRepository defines the interface for account data operations
type AccountRepository interface {
	CreateAccount(account *models.Account) error
	GetAccountByID(id uint) (*models.Account, error)
	GetAccountByEmail(email string) (*models.Account, error)
	GetAccountByUsername(username string) (*models.Account, error)
	UpdateAccount(account *models.Account) error
	VerifyAccount(id uint) error
	DeleteAccount(id uint) error
	SearchAccounts(query string, skip, limit int) ([]models.Account, error)
}

// PostgresAccountRepository implements AccountRepository for PostgreSQL
type PostgresAccountRepository struct {
	db *gorm.DB
}

// NewPostgresAccountRepository creates a new PostgresAccountRepository
func NewPostgresAccountRepository(db *gorm.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

// CreateAccount creates a new account in PostgreSQL
func (r *PostgresAccountRepository) CreateAccount(account *models.Account) error {
	return translateError(r.db.Create(account).Error)
}

// GetAccountByID retrieves an account by ID
func (r *PostgresAccountRepository) GetAccountByID(id uint) (*models.Account, error) {
	var account models.Account
	if err := r.db.First(&account, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &account, nil
}

// GetAccountByEmail retrieves an account by email
func (r *PostgresAccountRepository) GetAccountByEmail(email string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("email = ?", email).First(&account).Error; err != nil {
		return nil, translateError(err)
	}
	return &account, nil
}

// GetAccountByUsername retrieves an account by username
func (r *PostgresAccountRepository) GetAccountByUsername(username string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("username = ?", username).First(&account).Error; err != nil {
		return nil, translateError(err)
	}
	return &account, nil
}

// UpdateAccount updates an existing account
func (r *PostgresAccountRepository) UpdateAccount(account *models.Account) error {
	return translateError(r.db.Save(account).Error)
}

// VerifyAccount marks an account as verified and clears its verification code
func (r *PostgresAccountRepository) VerifyAccount(id uint) error {
	res := r.db.Model(&models.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_verified": true, "verification_code": ""})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAccount deletes an account by ID
func (r *PostgresAccountRepository) DeleteAccount(id uint) error {
	res := r.db.Delete(&models.Account{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SearchAccounts searches for accounts by username or email, case-insensitive
func (r *PostgresAccountRepository) SearchAccounts(query string, skip, limit int) ([]models.Account, error) {
	var accounts []models.Account
	err := r.db.
		Where("LOWER(username) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", "%"+query+"%", "%"+query+"%").
		Offset(skip).
		Limit(limit).
		Find(&accounts).Error
	return accounts, err
}
