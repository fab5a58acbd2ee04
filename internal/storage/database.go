package storage

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/stylemart/shopbot-backend/internal/models"
)

// DatabaseStore backs the Store interface with gorm.
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a database-backed store
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// Product operations

func (d *DatabaseStore) CreateProduct(product *models.Product) (*models.Product, error) {
	if err := d.db.Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (d *DatabaseStore) GetProduct(id uint) (*models.Product, error) {
	var product models.Product
	if err := d.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (d *DatabaseStore) GetAllProducts() ([]*models.Product, error) {
	var products []*models.Product
	if err := d.db.Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (d *DatabaseStore) SearchProducts(filter *models.ProductFilter) ([]*models.Product, error) {
	query := d.db.Model(&models.Product{})

	if filter.Category != "" {
		query = query.Where("category ILIKE ?", "%"+filter.Category+"%")
	}
	if filter.MaxPrice > 0 {
		query = query.Where("price <= ?", filter.MaxPrice)
	}

	query = query.Order("rating DESC").Order("purchases DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var products []*models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (d *DatabaseStore) GetProductsByCategory(category string, excludeID uint, limit int) ([]*models.Product, error) {
	query := d.db.Where("category = ?", category)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	query = query.Order("rating DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var products []*models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (d *DatabaseStore) UpdateProduct(product *models.Product) error {
	return d.db.Save(product).Error
}

func (d *DatabaseStore) CountProducts() (int64, error) {
	var count int64
	err := d.db.Model(&models.Product{}).Count(&count).Error
	return count, err
}

func (d *DatabaseStore) AverageProductRating() (float64, error) {
	var avg *float64
	err := d.db.Model(&models.Product{}).Select("AVG(rating)").Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

// Customer operations

func (d *DatabaseStore) CreateCustomer(customer *models.Customer) (*models.Customer, error) {
	if err := d.db.Create(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

func (d *DatabaseStore) GetCustomer(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := d.db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &customer, nil
}

func (d *DatabaseStore) GetAllCustomers() ([]*models.Customer, error) {
	var customers []*models.Customer
	if err := d.db.Order("id").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (d *DatabaseStore) UpdateCustomer(customer *models.Customer) error {
	return d.db.Save(customer).Error
}

func (d *DatabaseStore) CountCustomers() (int64, error) {
	var count int64
	err := d.db.Model(&models.Customer{}).Count(&count).Error
	return count, err
}

func (d *DatabaseStore) CountCustomersByTier(tier string) (int64, error) {
	var count int64
	err := d.db.Model(&models.Customer{}).Where("loyalty_tier = ?", tier).Count(&count).Error
	return count, err
}

// Session operations

func (d *DatabaseStore) CreateSession(session *models.ChatSession) (*models.ChatSession, error) {
	if err := d.db.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

func (d *DatabaseStore) GetSession(sessionID string) (*models.ChatSession, error) {
	var session models.ChatSession
	if err := d.db.Where("session_id = ?", sessionID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

// UpdateSession writes the whole session record back in one unit. There is
// no optimistic locking: concurrent updates to the same session are
// last-write-wins.
func (d *DatabaseStore) UpdateSession(session *models.ChatSession) error {
	return d.db.Save(session).Error
}

func (d *DatabaseStore) CountSessions() (int64, int64, error) {
	var total, active int64
	if err := d.db.Model(&models.ChatSession{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := d.db.Model(&models.ChatSession{}).Where("is_active = ?", true).Count(&active).Error; err != nil {
		return 0, 0, err
	}
	return total, active, nil
}

func (d *DatabaseStore) GetStaleActiveSessions(cutoff time.Time) ([]*models.ChatSession, error) {
	var sessions []*models.ChatSession
	err := d.db.Where("is_active = ? AND updated_at < ?", true, cutoff).Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
