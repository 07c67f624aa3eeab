package testutil

import (
	"context"

	"github.com/finman-app/finman-backend/internal/domain"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users     map[int64]*domain.User
	NextID    int64
	ListFn    func(ctx context.Context) ([]*domain.User, error)
	CreateFn  func(ctx context.Context, user *domain.User) (*domain.User, error)
	ReplaceFn func(ctx context.Context, user *domain.User) (*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:  make(map[int64]*domain.User),
		NextID: 1,
	}
}

// List returns all users ordered by id
func (m *MockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	users := make([]*domain.User, 0, len(m.Users))
	for id := int64(1); id < m.NextID; id++ {
		if u, ok := m.Users[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if user, ok := m.Users[id]; ok {
		return user, nil
	}
	return nil, domain.ErrNotFound
}

// Create creates a new user, honoring a client-assigned id
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	if user.ID == 0 {
		user.ID = m.NextID
	}
	if user.ID >= m.NextID {
		m.NextID = user.ID + 1
	}
	m.Users[user.ID] = user
	return user, nil
}

// Replace overwrites an existing user record
func (m *MockUserRepository) Replace(ctx context.Context, user *domain.User) (*domain.User, error) {
	if m.ReplaceFn != nil {
		return m.ReplaceFn(ctx, user)
	}
	if _, ok := m.Users[user.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	m.Users[user.ID] = user
	return user, nil
}

// UpdateStatus updates only the user's status flag
func (m *MockUserRepository) UpdateStatus(ctx context.Context, id int64, status bool) error {
	user, ok := m.Users[id]
	if !ok {
		return domain.ErrNotFound
	}
	user.Status = status
	return nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.Users[user.ID] = user
	if user.ID >= m.NextID {
		m.NextID = user.ID + 1
	}
}

// MockTransactionRepository is a mock implementation of domain.TransactionRepository
type MockTransactionRepository struct {
	Transactions []*domain.Transaction
	ListFn       func(ctx context.Context) ([]*domain.Transaction, error)
	CreateFn     func(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	DeleteFn     func(ctx context.Context, id int64) error
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

// List returns all transactions in insertion order
func (m *MockTransactionRepository) List(ctx context.Context) ([]*domain.Transaction, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.Transactions, nil
}

// Create appends a transaction
func (m *MockTransactionRepository) Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, tx)
	}
	m.Transactions = append(m.Transactions, tx)
	return tx, nil
}

// Delete removes a transaction by id
func (m *MockTransactionRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	for i, tx := range m.Transactions {
		if tx.ID == id {
			m.Transactions = append(m.Transactions[:i], m.Transactions[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// AddTransaction adds a transaction to the mock repository (helper for tests)
func (m *MockTransactionRepository) AddTransaction(tx *domain.Transaction) {
	m.Transactions = append(m.Transactions, tx)
}

// MockUserCategoryRepository is a mock implementation of domain.UserCategoryRepository
type MockUserCategoryRepository struct {
	Categories []*domain.UserCategory
	NextID     int64
	CreateFn   func(ctx context.Context, category *domain.UserCategory) (*domain.UserCategory, error)
}

// NewMockUserCategoryRepository creates a new MockUserCategoryRepository
func NewMockUserCategoryRepository() *MockUserCategoryRepository {
	return &MockUserCategoryRepository{NextID: 1}
}

// List returns all catalog entries
func (m *MockUserCategoryRepository) List(ctx context.Context) ([]*domain.UserCategory, error) {
	return m.Categories, nil
}

// Create assigns an id and appends the entry, the way the backend does
func (m *MockUserCategoryRepository) Create(ctx context.Context, category *domain.UserCategory) (*domain.UserCategory, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, category)
	}
	category.ID = m.NextID
	m.NextID++
	m.Categories = append(m.Categories, category)
	return category, nil
}

// AddCategory adds a catalog entry to the mock repository (helper for tests)
func (m *MockUserCategoryRepository) AddCategory(category *domain.UserCategory) {
	m.Categories = append(m.Categories, category)
	if category.ID >= m.NextID {
		m.NextID = category.ID + 1
	}
}

// MockAdminRepository is a mock implementation of domain.AdminRepository
type MockAdminRepository struct {
	Admins []*domain.Administrator
	ListFn func(ctx context.Context) ([]*domain.Administrator, error)
}

// NewMockAdminRepository creates a new MockAdminRepository
func NewMockAdminRepository() *MockAdminRepository {
	return &MockAdminRepository{}
}

// List returns all administrator records
func (m *MockAdminRepository) List(ctx context.Context) ([]*domain.Administrator, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.Admins, nil
}

// MockAdminCategoryRepository is a mock implementation of domain.AdminCategoryRepository
type MockAdminCategoryRepository struct {
	Categories []*domain.AdminCategory
	CreateFn   func(ctx context.Context, category *domain.AdminCategory) (*domain.AdminCategory, error)
}

// NewMockAdminCategoryRepository creates a new MockAdminCategoryRepository
func NewMockAdminCategoryRepository() *MockAdminCategoryRepository {
	return &MockAdminCategoryRepository{}
}

// List returns all admin-side categories
func (m *MockAdminCategoryRepository) List(ctx context.Context) ([]*domain.AdminCategory, error) {
	return m.Categories, nil
}

// Create appends a category, honoring the client-assigned id
func (m *MockAdminCategoryRepository) Create(ctx context.Context, category *domain.AdminCategory) (*domain.AdminCategory, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, category)
	}
	m.Categories = append(m.Categories, category)
	return category, nil
}

// UpdateStatus updates the status flag of a category
func (m *MockAdminCategoryRepository) UpdateStatus(ctx context.Context, id int64, status bool) error {
	for _, c := range m.Categories {
		if c.ID == id {
			c.Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

// AddCategory adds a category to the mock repository (helper for tests)
func (m *MockAdminCategoryRepository) AddCategory(category *domain.AdminCategory) {
	m.Categories = append(m.Categories, category)
}

// MockImageRepository is a mock implementation of storage.ImageRepository
type MockImageRepository struct {
	Uploaded map[string][]byte
	URL      string
	UploadFn func(ctx context.Context, filename string, data []byte, contentType string) (string, error)
}

// NewMockImageRepository creates a new MockImageRepository
func NewMockImageRepository() *MockImageRepository {
	return &MockImageRepository{
		Uploaded: make(map[string][]byte),
		URL:      "https://images.example.com/category.jpg",
	}
}

// Upload records the upload and returns a fixed URL
func (m *MockImageRepository) Upload(ctx context.Context, filename string, data []byte, contentType string) (string, error) {
	if m.UploadFn != nil {
		return m.UploadFn(ctx, filename, data, contentType)
	}
	m.Uploaded[filename] = data
	return m.URL, nil
}
