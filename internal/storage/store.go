package storage

import (
	"errors"
	"time"

	"github.com/stylemart/shopbot-backend/internal/models"
)

// Sentinel errors shared by all Store implementations. Handlers and services
// match on these instead of string-comparing error text.
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrSessionNotFound  = errors.New("session not found")
)

// Store defines the interface for storage operations
type Store interface {
	// Product operations
	CreateProduct(product *models.Product) (*models.Product, error)
	GetProduct(id uint) (*models.Product, error)
	GetAllProducts() ([]*models.Product, error)
	SearchProducts(filter *models.ProductFilter) ([]*models.Product, error)
	GetProductsByCategory(category string, excludeID uint, limit int) ([]*models.Product, error)
	UpdateProduct(product *models.Product) error
	CountProducts() (int64, error)
	AverageProductRating() (float64, error)

	// Customer operations
	CreateCustomer(customer *models.Customer) (*models.Customer, error)
	GetCustomer(id uint) (*models.Customer, error)
	GetAllCustomers() ([]*models.Customer, error)
	UpdateCustomer(customer *models.Customer) error
	CountCustomers() (int64, error)
	CountCustomersByTier(tier string) (int64, error)

	// Session operations
	CreateSession(session *models.ChatSession) (*models.ChatSession, error)
	GetSession(sessionID string) (*models.ChatSession, error)
	UpdateSession(session *models.ChatSession) error
	CountSessions() (total int64, active int64, err error)
	GetStaleActiveSessions(cutoff time.Time) ([]*models.ChatSession, error)
}
