package storage

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/stylemart/shopbot-backend/internal/models"
)

// MemoryStore holds all data in memory, used for tests and local runs
// without a database.
type MemoryStore struct {
	products  map[uint]*models.Product
	customers map[uint]*models.Customer
	sessions  map[string]*models.ChatSession

	// Mutexes for thread safety
	productMu  sync.RWMutex
	customerMu sync.RWMutex
	sessionMu  sync.RWMutex

	// Counters for ID generation
	productCounter  uint
	customerCounter uint
	sessionCounter  uint
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products:  make(map[uint]*models.Product),
		customers: make(map[uint]*models.Customer),
		sessions:  make(map[string]*models.ChatSession),
	}
}

// Product operations

func (m *MemoryStore) CreateProduct(product *models.Product) (*models.Product, error) {
	m.productMu.Lock()
	defer m.productMu.Unlock()

	m.productCounter++
	product.ID = m.productCounter
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	m.products[product.ID] = product
	return product, nil
}

func (m *MemoryStore) GetProduct(id uint) (*models.Product, error) {
	m.productMu.RLock()
	defer m.productMu.RUnlock()

	product, exists := m.products[id]
	if !exists {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (m *MemoryStore) GetAllProducts() ([]*models.Product, error) {
	m.productMu.RLock()
	defer m.productMu.RUnlock()

	products := make([]*models.Product, 0, len(m.products))
	for _, p := range m.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (m *MemoryStore) SearchProducts(filter *models.ProductFilter) ([]*models.Product, error) {
	m.productMu.RLock()
	defer m.productMu.RUnlock()

	var results []*models.Product
	for _, p := range m.products {
		if filter.Category != "" && !strings.Contains(strings.ToLower(p.Category), strings.ToLower(filter.Category)) {
			continue
		}
		if filter.MaxPrice > 0 && p.Price > filter.MaxPrice {
			continue
		}
		results = append(results, p)
	}

	// Most popular first: rating, then purchase count
	sort.Slice(results, func(i, j int) bool {
		if results[i].Rating != results[j].Rating {
			return results[i].Rating > results[j].Rating
		}
		return results[i].Purchases > results[j].Purchases
	})

	if filter.Limit > 0 && len(results) > filter.Limit {
		results = results[:filter.Limit]
	}
	return results, nil
}

func (m *MemoryStore) GetProductsByCategory(category string, excludeID uint, limit int) ([]*models.Product, error) {
	m.productMu.RLock()
	defer m.productMu.RUnlock()

	var results []*models.Product
	for _, p := range m.products {
		if p.Category != category || p.ID == excludeID {
			continue
		}
		results = append(results, p)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Rating > results[j].Rating })
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (m *MemoryStore) UpdateProduct(product *models.Product) error {
	m.productMu.Lock()
	defer m.productMu.Unlock()

	if _, exists := m.products[product.ID]; !exists {
		return ErrProductNotFound
	}
	product.UpdatedAt = time.Now()
	m.products[product.ID] = product
	return nil
}

func (m *MemoryStore) CountProducts() (int64, error) {
	m.productMu.RLock()
	defer m.productMu.RUnlock()
	return int64(len(m.products)), nil
}

func (m *MemoryStore) AverageProductRating() (float64, error) {
	m.productMu.RLock()
	defer m.productMu.RUnlock()

	if len(m.products) == 0 {
		return 0, nil
	}
	total := 0.0
	for _, p := range m.products {
		total += p.Rating
	}
	return total / float64(len(m.products)), nil
}

// Customer operations

func (m *MemoryStore) CreateCustomer(customer *models.Customer) (*models.Customer, error) {
	m.customerMu.Lock()
	defer m.customerMu.Unlock()

	m.customerCounter++
	customer.ID = m.customerCounter
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = time.Now()
	if customer.LoyaltyTier == "" {
		customer.LoyaltyTier = models.TierBronze
	}

	m.customers[customer.ID] = customer
	return customer, nil
}

func (m *MemoryStore) GetCustomer(id uint) (*models.Customer, error) {
	m.customerMu.RLock()
	defer m.customerMu.RUnlock()

	customer, exists := m.customers[id]
	if !exists {
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}

func (m *MemoryStore) GetAllCustomers() ([]*models.Customer, error) {
	m.customerMu.RLock()
	defer m.customerMu.RUnlock()

	customers := make([]*models.Customer, 0, len(m.customers))
	for _, c := range m.customers {
		customers = append(customers, c)
	}
	sort.Slice(customers, func(i, j int) bool { return customers[i].ID < customers[j].ID })
	return customers, nil
}

func (m *MemoryStore) UpdateCustomer(customer *models.Customer) error {
	m.customerMu.Lock()
	defer m.customerMu.Unlock()

	if _, exists := m.customers[customer.ID]; !exists {
		return ErrCustomerNotFound
	}
	customer.UpdatedAt = time.Now()
	m.customers[customer.ID] = customer
	return nil
}

func (m *MemoryStore) CountCustomers() (int64, error) {
	m.customerMu.RLock()
	defer m.customerMu.RUnlock()
	return int64(len(m.customers)), nil
}

func (m *MemoryStore) CountCustomersByTier(tier string) (int64, error) {
	m.customerMu.RLock()
	defer m.customerMu.RUnlock()

	var count int64
	for _, c := range m.customers {
		if c.Tier() == tier {
			count++
		}
	}
	return count, nil
}

// Session operations

func (m *MemoryStore) CreateSession(session *models.ChatSession) (*models.ChatSession, error) {
	m.sessionMu.Lock()
	defer m.sessionMu.Unlock()

	m.sessionCounter++
	session.ID = m.sessionCounter
	session.CreatedAt = time.Now()
	session.UpdatedAt = time.Now()

	m.sessions[session.SessionID] = session
	return session, nil
}

func (m *MemoryStore) GetSession(sessionID string) (*models.ChatSession, error) {
	m.sessionMu.RLock()
	defer m.sessionMu.RUnlock()

	session, exists := m.sessions[sessionID]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (m *MemoryStore) UpdateSession(session *models.ChatSession) error {
	m.sessionMu.Lock()
	defer m.sessionMu.Unlock()

	if _, exists := m.sessions[session.SessionID]; !exists {
		return ErrSessionNotFound
	}
	session.UpdatedAt = time.Now()
	m.sessions[session.SessionID] = session
	return nil
}

func (m *MemoryStore) CountSessions() (int64, int64, error) {
	m.sessionMu.RLock()
	defer m.sessionMu.RUnlock()

	var active int64
	for _, s := range m.sessions {
		if s.IsActive {
			active++
		}
	}
	return int64(len(m.sessions)), active, nil
}

func (m *MemoryStore) GetStaleActiveSessions(cutoff time.Time) ([]*models.ChatSession, error) {
	m.sessionMu.RLock()
	defer m.sessionMu.RUnlock()

	var stale []*models.ChatSession
	for _, s := range m.sessions {
		if s.IsActive && s.UpdatedAt.Before(cutoff) {
			stale = append(stale, s)
		}
	}
	return stale, nil
}
