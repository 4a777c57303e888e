package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "decora/internal/errors"

	"decora/internal/asset"
	"decora/internal/model"
)

// MockGalleryRepository is a mock implementation of GalleryRepository.
type MockGalleryRepository struct {
	mock.Mock
}

func (m *MockGalleryRepository) Create(ctx context.Context, image *model.GalleryImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockGalleryRepository) Save(ctx context.Context, image *model.GalleryImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockGalleryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.GalleryImage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GalleryImage), args.Error(1)
}

func (m *MockGalleryRepository) List(ctx context.Context, category string, offset, limit int) ([]model.GalleryImage, error) {
	args := m.Called(ctx, category, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GalleryImage), args.Error(1)
}

func (m *MockGalleryRepository) ListByCategory(ctx context.Context, category string) ([]model.GalleryImage, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GalleryImage), args.Error(1)
}

func (m *MockGalleryRepository) Count(ctx context.Context, category string) (int64, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGalleryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAssetStore is a mock implementation of asset.Store.
type MockAssetStore struct {
	mock.Mock
}

func (m *MockAssetStore) Upload(ctx context.Context, file io.Reader) (*asset.UploadResult, error) {
	args := m.Called(ctx, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asset.UploadResult), args.Error(1)
}

func (m *MockAssetStore) Delete(ctx context.Context, publicID string) error {
	args := m.Called(ctx, publicID)
	return args.Error(0)
}

func (m *MockAssetStore) OptimizedURL(publicID string) (string, error) {
	args := m.Called(publicID)
	return args.String(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newGalleryService(repo *MockGalleryRepository, assets *MockAssetStore) GalleryService {
	return NewGalleryService(repo, assets, nil, discardLogger())
}

func TestGalleryService_Upload(t *testing.T) {
	tests := []struct {
		name          string
		input         UploadInput
		setupMocks    func(*MockGalleryRepository, *MockAssetStore)
		expectedError error
		check         func(*testing.T, *model.GalleryImage)
	}{
		{
			name:          "missing file",
			input:         UploadInput{Category: "kitchen"},
			setupMocks:    func(r *MockGalleryRepository, a *MockAssetStore) {},
			expectedError: apperrors.ErrMissingFile,
		},
		{
			name:          "missing category",
			input:         UploadInput{File: strings.NewReader("img"), Category: "   "},
			setupMocks:    func(r *MockGalleryRepository, a *MockAssetStore) {},
			expectedError: apperrors.ErrMissingCategory,
		},
		{
			name:  "incomplete asset response is not persisted",
			input: UploadInput{File: strings.NewReader("img"), Category: "kitchen"},
			setupMocks: func(r *MockGalleryRepository, a *MockAssetStore) {
				a.On("Upload", mock.Anything, mock.Anything).Return(&asset.UploadResult{URL: "https://cdn/img.jpg"}, nil)
			},
			expectedError: apperrors.ErrAssetIncomplete,
		},
		{
			name:  "failed persist cleans up the uploaded asset",
			input: UploadInput{File: strings.NewReader("img"), Category: "kitchen"},
			setupMocks: func(r *MockGalleryRepository, a *MockAssetStore) {
				a.On("Upload", mock.Anything, mock.Anything).Return(&asset.UploadResult{PublicID: "decora/abc", URL: "https://cdn/abc.jpg"}, nil)
				r.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))
				a.On("Delete", mock.Anything, "decora/abc").Return(nil)
			},
			expectedError: apperrors.ErrUploadFailed,
		},
		{
			name:  "cleanup failure still reports the upload error",
			input: UploadInput{File: strings.NewReader("img"), Category: "kitchen"},
			setupMocks: func(r *MockGalleryRepository, a *MockAssetStore) {
				a.On("Upload", mock.Anything, mock.Anything).Return(&asset.UploadResult{PublicID: "decora/abc", URL: "https://cdn/abc.jpg"}, nil)
				r.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))
				a.On("Delete", mock.Anything, "decora/abc").Return(errors.New("cdn down"))
			},
			expectedError: apperrors.ErrUploadFailed,
		},
		{
			name:  "category is normalized",
			input: UploadInput{File: strings.NewReader("img"), Category: "  Kitchen ", Title: "New cabinets"},
			setupMocks: func(r *MockGalleryRepository, a *MockAssetStore) {
				a.On("Upload", mock.Anything, mock.Anything).Return(&asset.UploadResult{PublicID: "decora/abc", URL: "https://cdn/abc.jpg"}, nil)
				r.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			check: func(t *testing.T, image *model.GalleryImage) {
				assert.Equal(t, "kitchen", image.Category)
				assert.Equal(t, "decora/abc", image.PublicID)
				assert.Equal(t, "https://cdn/abc.jpg", image.ImageURL)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockGalleryRepository)
			mockAssets := new(MockAssetStore)
			tt.setupMocks(mockRepo, mockAssets)

			svc := newGalleryService(mockRepo, mockAssets)
			image, err := svc.Upload(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, image)
			} else {
				require.NoError(t, err)
				require.NotNil(t, image)
				if tt.check != nil {
					tt.check(t, image)
				}
			}

			mockRepo.AssertExpectations(t)
			mockAssets.AssertExpectations(t)
		})
	}
}

func TestDeriveAltText(t *testing.T) {
	tests := []struct {
		name     string
		alt      string
		title    string
		desc     string
		category string
		expected string
	}{
		{"explicit alt wins", "patio view", "Patio", "Back patio", "outdoor", "patio view"},
		{"whitespace alt is skipped", "   ", "Patio", "Back patio", "outdoor", "Patio"},
		{"title before description", "", "Patio", "Back patio", "outdoor", "Patio"},
		{"description before synthesized", "", "", "Back patio", "outdoor", "Back patio"},
		{"synthesized from category", "", "", "", "outdoor", "outdoor project"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, deriveAltText(tt.alt, tt.title, tt.desc, tt.category))
		})
	}
}

func TestGalleryService_Update(t *testing.T) {
	id := uuid.New()
	existing := func() *model.GalleryImage {
		return &model.GalleryImage{
			ID:       id,
			ImageURL: "https://cdn/old.jpg",
			PublicID: "decora/old",
			Title:    "Old title",
			Category: "kitchen",
		}
	}
	str := func(s string) *string { return &s }

	t.Run("image not found", func(t *testing.T) {
		mockRepo := new(MockGalleryRepository)
		mockAssets := new(MockAssetStore)
		mockRepo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

		svc := newGalleryService(mockRepo, mockAssets)
		_, err := svc.Update(context.Background(), id, UpdateInput{Title: str("New")})

		assert.ErrorIs(t, err, apperrors.ErrImageNotFound)
		mockRepo.AssertExpectations(t)
	})

	t.Run("metadata-only edit leaves the asset alone", func(t *testing.T) {
		mockRepo := new(MockGalleryRepository)
		mockAssets := new(MockAssetStore)
		mockRepo.On("FindByID", mock.Anything, id).Return(existing(), nil)
		mockRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		svc := newGalleryService(mockRepo, mockAssets)
		image, err := svc.Update(context.Background(), id, UpdateInput{
			Title:    str("New title"),
			Category: str("Bathroom"),
		})

		require.NoError(t, err)
		assert.Equal(t, "New title", image.Title)
		assert.Equal(t, "bathroom", image.Category)
		assert.Equal(t, "decora/old", image.PublicID)
		mockAssets.AssertNotCalled(t, "Upload")
		mockAssets.AssertNotCalled(t, "Delete")
		mockRepo.AssertExpectations(t)
	})

	t.Run("empty category field is ignored", func(t *testing.T) {
		mockRepo := new(MockGalleryRepository)
		mockAssets := new(MockAssetStore)
		mockRepo.On("FindByID", mock.Anything, id).Return(existing(), nil)
		mockRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		svc := newGalleryService(mockRepo, mockAssets)
		image, err := svc.Update(context.Background(), id, UpdateInput{Category: str("  ")})

		require.NoError(t, err)
		assert.Equal(t, "kitchen", image.Category)
	})

	t.Run("replacement asset deletes the old one only after save", func(t *testing.T) {
		mockRepo := new(MockGalleryRepository)
		mockAssets := new(MockAssetStore)

		var order []string
		mockRepo.On("FindByID", mock.Anything, id).Return(existing(), nil)
		mockAssets.On("Upload", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { order = append(order, "upload") }).
			Return(&asset.UploadResult{PublicID: "decora/new", URL: "https://cdn/new.jpg"}, nil)
		mockRepo.On("Save", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { order = append(order, "save") }).
			Return(nil)
		mockAssets.On("Delete", mock.Anything, "decora/old").
			Run(func(mock.Arguments) { order = append(order, "delete-old") }).
			Return(nil)

		svc := newGalleryService(mockRepo, mockAssets)
		image, err := svc.Update(context.Background(), id, UpdateInput{File: strings.NewReader("img")})

		require.NoError(t, err)
		assert.Equal(t, "decora/new", image.PublicID)
		assert.Equal(t, "https://cdn/new.jpg", image.ImageURL)
		assert.Equal(t, []string{"upload", "save", "delete-old"}, order)
		mockRepo.AssertExpectations(t)
		mockAssets.AssertExpectations(t)
	})

	t.Run("failed save keeps the old asset", func(t *testing.T) {
		mockRepo := new(MockGalleryRepository)
		mockAssets := new(MockAssetStore)
		mockRepo.On("FindByID", mock.Anything, id).Return(existing(), nil)
		mockAssets.On("Upload", mock.Anything, mock.Anything).
			Return(&asset.UploadResult{PublicID: "decora/new", URL: "https://cdn/new.jpg"}, nil)
		mockRepo.On("Save", mock.Anything, mock.Anything).Return(errors.New("db down"))

		svc := newGalleryService(mockRepo, mockAssets)
		_, err := svc.Update(context.Background(), id, UpdateInput{File: strings.NewReader("img")})

		assert.ErrorIs(t, err, apperrors.ErrUpdateFailed)
		mockAssets.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestGalleryService_Delete(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name          string
		setupMocks    func(*MockGalleryRepository, *MockAssetStore)
		expectedError error
	}{
		{
			name: "image not found",
			setupMocks: func(r *MockGalleryRepository, a *MockAssetStore) {
				r.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrImageNotFound,
		},
		{
			name: "successful delete",
			setupMocks: func(r *MockGalleryRepository, a *MockAssetStore) {
				r.On("FindByID", mock.Anything, id).Return(&model.GalleryImage{ID: id, PublicID: "decora/abc", Category: "kitchen"}, nil)
				a.On("Delete", mock.Anything, "decora/abc").Return(nil)
				r.On("Delete", mock.Anything, id).Return(nil)
			},
		},
		{
			name: "asset failure does not block the metadata delete",
			setupMocks: func(r *MockGalleryRepository, a *MockAssetStore) {
				r.On("FindByID", mock.Anything, id).Return(&model.GalleryImage{ID: id, PublicID: "decora/abc", Category: "kitchen"}, nil)
				a.On("Delete", mock.Anything, "decora/abc").Return(errors.New("cdn down"))
				r.On("Delete", mock.Anything, id).Return(nil)
			},
		},
		{
			name: "record without an asset skips the store",
			setupMocks: func(r *MockGalleryRepository, a *MockAssetStore) {
				r.On("FindByID", mock.Anything, id).Return(&model.GalleryImage{ID: id, Category: "kitchen"}, nil)
				r.On("Delete", mock.Anything, id).Return(nil)
			},
		},
		{
			name: "metadata delete failure surfaces",
			setupMocks: func(r *MockGalleryRepository, a *MockAssetStore) {
				r.On("FindByID", mock.Anything, id).Return(&model.GalleryImage{ID: id, PublicID: "decora/abc", Category: "kitchen"}, nil)
				a.On("Delete", mock.Anything, "decora/abc").Return(nil)
				r.On("Delete", mock.Anything, id).Return(errors.New("db down"))
			},
			expectedError: apperrors.ErrDeleteFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockGalleryRepository)
			mockAssets := new(MockAssetStore)
			tt.setupMocks(mockRepo, mockAssets)

			svc := newGalleryService(mockRepo, mockAssets)
			err := svc.Delete(context.Background(), id)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
			mockAssets.AssertExpectations(t)
		})
	}
}

func TestGalleryService_List(t *testing.T) {
	t.Run("pagination math and offsets", func(t *testing.T) {
		mockRepo := new(MockGalleryRepository)
		mockAssets := new(MockAssetStore)
		mockRepo.On("List", mock.Anything, "", 40, 20).Return([]model.GalleryImage{}, nil)
		mockRepo.On("Count", mock.Anything, "").Return(int64(45), nil)

		svc := newGalleryService(mockRepo, mockAssets)
		_, pagination, err := svc.List(context.Background(), 3, 20, "")

		require.NoError(t, err)
		assert.Equal(t, 3, pagination.Page)
		assert.Equal(t, 20, pagination.Limit)
		assert.Equal(t, int64(45), pagination.Total)
		assert.Equal(t, 3, pagination.Pages)
		mockRepo.AssertExpectations(t)
	})

	t.Run("defaults apply to out-of-range inputs", func(t *testing.T) {
		mockRepo := new(MockGalleryRepository)
		mockAssets := new(MockAssetStore)
		mockRepo.On("List", mock.Anything, "", 0, 20).Return([]model.GalleryImage{}, nil)
		mockRepo.On("Count", mock.Anything, "").Return(int64(0), nil)

		svc := newGalleryService(mockRepo, mockAssets)
		_, pagination, err := svc.List(context.Background(), 0, -5, "")

		require.NoError(t, err)
		assert.Equal(t, 1, pagination.Page)
		assert.Equal(t, 20, pagination.Limit)
		assert.Equal(t, 0, pagination.Pages)
	})

	t.Run("category filter is lower-cased", func(t *testing.T) {
		mockRepo := new(MockGalleryRepository)
		mockAssets := new(MockAssetStore)
		mockRepo.On("List", mock.Anything, "kitchen", 0, 20).Return([]model.GalleryImage{}, nil)
		mockRepo.On("Count", mock.Anything, "kitchen").Return(int64(0), nil)

		svc := newGalleryService(mockRepo, mockAssets)
		_, _, err := svc.List(context.Background(), 1, 20, " Kitchen ")

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("display URLs come from the asset store with a stored fallback", func(t *testing.T) {
		mockRepo := new(MockGalleryRepository)
		mockAssets := new(MockAssetStore)
		mockRepo.On("List", mock.Anything, "", 0, 20).Return([]model.GalleryImage{
			{PublicID: "decora/abc", ImageURL: "https://cdn/abc.jpg"},
			{PublicID: "", ImageURL: "https://legacy/raw.jpg"},
		}, nil)
		mockRepo.On("Count", mock.Anything, "").Return(int64(2), nil)
		mockAssets.On("OptimizedURL", "decora/abc").Return("https://cdn/opt/abc.jpg", nil)

		svc := newGalleryService(mockRepo, mockAssets)
		views, _, err := svc.List(context.Background(), 1, 20, "")

		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, "https://cdn/opt/abc.jpg", views[0].OptimizedURL)
		assert.Equal(t, "https://legacy/raw.jpg", views[1].OptimizedURL)
	})
}

func TestGalleryService_ListByCategory(t *testing.T) {
	mockRepo := new(MockGalleryRepository)
	mockAssets := new(MockAssetStore)
	mockRepo.On("ListByCategory", mock.Anything, "bathroom").Return([]model.GalleryImage{
		{PublicID: "decora/b1", ImageURL: "https://cdn/b1.jpg", Category: "bathroom"},
	}, nil)
	mockAssets.On("OptimizedURL", "decora/b1").Return("https://cdn/opt/b1.jpg", nil)

	svc := newGalleryService(mockRepo, mockAssets)
	views, err := svc.ListByCategory(context.Background(), " Bathroom ")

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "https://cdn/opt/b1.jpg", views[0].OptimizedURL)
	mockRepo.AssertExpectations(t)
}
