package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"techmart/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

// Mock repositories

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) List(ctx context.Context, isActive *bool, limit, offset int) ([]*models.Category, error) {
	args := m.Called(ctx, isActive, limit, offset)
	return args.Get(0).([]*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) ExistsSlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) MaxOrder(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockSubcategoryRepository struct {
	mock.Mock
}

func (m *MockSubcategoryRepository) Create(ctx context.Context, subcategory *models.Subcategory) error {
	args := m.Called(ctx, subcategory)
	return args.Error(0)
}

func (m *MockSubcategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Subcategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subcategory), args.Error(1)
}

func (m *MockSubcategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Subcategory, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subcategory), args.Error(1)
}

func (m *MockSubcategoryRepository) Update(ctx context.Context, subcategory *models.Subcategory) error {
	args := m.Called(ctx, subcategory)
	return args.Error(0)
}

func (m *MockSubcategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSubcategoryRepository) List(ctx context.Context, isActive *bool, limit, offset int) ([]*models.Subcategory, error) {
	args := m.Called(ctx, isActive, limit, offset)
	return args.Get(0).([]*models.Subcategory), args.Error(1)
}

func (m *MockSubcategoryRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID, activeOnly bool) ([]*models.Subcategory, error) {
	args := m.Called(ctx, categoryID, activeOnly)
	return args.Get(0).([]*models.Subcategory), args.Error(1)
}

func (m *MockSubcategoryRepository) ExistsSlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubcategoryRepository) MaxOrder(ctx context.Context, categoryID uuid.UUID) (int, error) {
	args := m.Called(ctx, categoryID)
	return args.Int(0), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) List(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductRepository) ListBySubcategory(ctx context.Context, subcategoryID uuid.UUID, activeOnly bool) ([]*models.Product, error) {
	args := m.Called(ctx, subcategoryID, activeOnly)
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsSlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) MaxOrder(ctx context.Context, subcategoryID uuid.UUID) (int, error) {
	args := m.Called(ctx, subcategoryID)
	return args.Int(0), args.Error(1)
}

type MockCategoryDescriptionRepository struct {
	mock.Mock
}

func (m *MockCategoryDescriptionRepository) Create(ctx context.Context, description *models.CategoryDescription) error {
	args := m.Called(ctx, description)
	return args.Error(0)
}

func (m *MockCategoryDescriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CategoryDescription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CategoryDescription), args.Error(1)
}

func (m *MockCategoryDescriptionRepository) Update(ctx context.Context, description *models.CategoryDescription) error {
	args := m.Called(ctx, description)
	return args.Error(0)
}

func (m *MockCategoryDescriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryDescriptionRepository) ListBySubcategory(ctx context.Context, subcategoryID uuid.UUID) ([]*models.CategoryDescription, error) {
	args := m.Called(ctx, subcategoryID)
	return args.Get(0).([]*models.CategoryDescription), args.Error(1)
}

type MockDescriptionRepository struct {
	mock.Mock
}

func (m *MockDescriptionRepository) Create(ctx context.Context, block *models.DescriptionBlock) error {
	args := m.Called(ctx, block)
	return args.Error(0)
}

func (m *MockDescriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.DescriptionBlock, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DescriptionBlock), args.Error(1)
}

func (m *MockDescriptionRepository) Update(ctx context.Context, block *models.DescriptionBlock) error {
	args := m.Called(ctx, block)
	return args.Error(0)
}

func (m *MockDescriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDescriptionRepository) ListByProduct(ctx context.Context, productID uuid.UUID, activeOnly bool) ([]*models.DescriptionBlock, error) {
	args := m.Called(ctx, productID, activeOnly)
	return args.Get(0).([]*models.DescriptionBlock), args.Error(1)
}

func (m *MockDescriptionRepository) MaxOrder(ctx context.Context, productID uuid.UUID) (int, error) {
	args := m.Called(ctx, productID)
	return args.Int(0), args.Error(1)
}

type MockDescriptionRowRepository struct {
	mock.Mock
}

func (m *MockDescriptionRowRepository) Create(ctx context.Context, row *models.DescriptionRow) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockDescriptionRowRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.DescriptionRow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DescriptionRow), args.Error(1)
}

func (m *MockDescriptionRowRepository) Update(ctx context.Context, row *models.DescriptionRow) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockDescriptionRowRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDescriptionRowRepository) ListByDescription(ctx context.Context, descriptionID uuid.UUID) ([]*models.DescriptionRow, error) {
	args := m.Called(ctx, descriptionID)
	return args.Get(0).([]*models.DescriptionRow), args.Error(1)
}

func (m *MockDescriptionRowRepository) MaxOrder(ctx context.Context, descriptionID uuid.UUID) (int, error) {
	args := m.Called(ctx, descriptionID)
	return args.Int(0), args.Error(1)
}

// stubCache is an in-memory caching.CacheService for service tests. View
// caching is a pass-through; string state behaves like Redis with TTLs
// ignored.
type stubCache struct {
	mu      sync.Mutex
	strings map[string]string
}

func newStubCache() *stubCache {
	return &stubCache{strings: make(map[string]string)}
}

func (s *stubCache) GetCategoryView(ctx context.Context, slug string) (*models.CategoryView, error) {
	return nil, nil
}

func (s *stubCache) SetCategoryView(ctx context.Context, view *models.CategoryView, ttl time.Duration) error {
	return nil
}

func (s *stubCache) DeleteCategoryView(ctx context.Context, slug string) error { return nil }

func (s *stubCache) GetProductView(ctx context.Context, slug string) (*models.ProductView, error) {
	return nil, nil
}

func (s *stubCache) SetProductView(ctx context.Context, view *models.ProductView, ttl time.Duration) error {
	return nil
}

func (s *stubCache) DeleteProductView(ctx context.Context, slug string) error { return nil }

func (s *stubCache) InvalidateViews(ctx context.Context) error { return nil }

func (s *stubCache) SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strings[key] = value
	return nil
}

func (s *stubCache) GetString(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.strings[key], nil
}

func (s *stubCache) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.strings, key)
	return nil
}

// recordingMailer captures what would have been sent.
type recordingMailer struct {
	recipients []string
	bodies     []string
}

func (m *recordingMailer) Send(ctx context.Context, recipient, subject, body string) error {
	m.recipients = append(m.recipients, recipient)
	m.bodies = append(m.bodies, body)
	return nil
}
