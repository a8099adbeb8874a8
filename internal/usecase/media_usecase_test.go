package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// =====================
// Mock: MediaRepository
// =====================

type MockMediaRepository struct {
	mock.Mock
}

func (m *MockMediaRepository) Create(ctx context.Context, media model.Media) error {
	args := m.Called(ctx, media)
	return args.Error(0)
}

func (m *MockMediaRepository) FindByID(ctx context.Context, mediaID string) (model.Media, error) {
	args := m.Called(ctx, mediaID)
	md, _ := args.Get(0).(model.Media)
	return md, args.Error(1)
}

func (m *MockMediaRepository) Delete(ctx context.Context, mediaID string) error {
	args := m.Called(ctx, mediaID)
	return args.Error(0)
}

// =====================
// Stub: ObjectStorage
// =====================

type stubObjectStorage struct {
	deleteErr  error
	deletedKey string
}

func (s *stubObjectStorage) PresignPut(ctx context.Context, key string, contentType string) (string, error) {
	return "https://s3.test/" + key + "?signed", nil
}

func (s *stubObjectStorage) DeleteObject(ctx context.Context, key string) error {
	s.deletedKey = key
	return s.deleteErr
}

func (s *stubObjectStorage) ObjectURL(key string) string {
	return "https://cdn.test/" + key
}

func TestMediaUsecase_CreateUpload(t *testing.T) {
	ctx := context.Background()
	mediaRepo := new(MockMediaRepository)
	storage := &stubObjectStorage{}

	var created model.Media
	mediaRepo.On("Create", mock.Anything, mock.AnythingOfType("model.Media")).Run(func(args mock.Arguments) {
		created = args.Get(1).(model.Media)
	}).Return(nil)

	u := NewMediaUsecase(mediaRepo, storage, &seqIDGen{}, zap.NewNop())

	out, err := u.CreateUpload(ctx, "user-1", CreateMediaInput{
		FileName:    "sofa.jpg",
		ContentType: "image/jpeg",
	})
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.UploadURL, "https://s3.test/medias/"))
	assert.Equal(t, "user-1", created.UserID)
	assert.True(t, strings.HasSuffix(created.ObjectKey, ".jpg"))
}

func TestMediaUsecase_CreateUpload_UnsupportedType(t *testing.T) {
	ctx := context.Background()
	mediaRepo := new(MockMediaRepository)
	u := NewMediaUsecase(mediaRepo, &stubObjectStorage{}, &seqIDGen{}, zap.NewNop())

	_, err := u.CreateUpload(ctx, "user-1", CreateMediaInput{
		FileName:    "report.pdf",
		ContentType: "application/pdf",
	})
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	mediaRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// 他人のメディアは「存在しない扱い」で消せない
func TestMediaUsecase_Delete_OtherUsersMediaIsHidden(t *testing.T) {
	ctx := context.Background()
	mediaRepo := new(MockMediaRepository)

	mediaRepo.On("FindByID", mock.Anything, "m1").Return(model.Media{ID: "m1", UserID: "owner-1"}, nil)

	u := NewMediaUsecase(mediaRepo, &stubObjectStorage{}, &seqIDGen{}, zap.NewNop())

	err := u.Delete(ctx, "intruder-2", "m1")
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	mediaRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// S3側の削除失敗はログだけ残して成功扱い
func TestMediaUsecase_Delete_ObjectDeleteFailureIsTolerated(t *testing.T) {
	ctx := context.Background()
	mediaRepo := new(MockMediaRepository)
	storage := &stubObjectStorage{deleteErr: errors.New("s3 down")}

	mediaRepo.On("FindByID", mock.Anything, "m1").Return(model.Media{
		ID: "m1", UserID: "user-1", ObjectKey: "medias/m1.jpg",
	}, nil)
	mediaRepo.On("Delete", mock.Anything, "m1").Return(nil)

	u := NewMediaUsecase(mediaRepo, storage, &seqIDGen{}, zap.NewNop())

	err := u.Delete(ctx, "user-1", "m1")
	assert.NoError(t, err)
	assert.Equal(t, "medias/m1.jpg", storage.deletedKey)
	mediaRepo.AssertExpectations(t)
}

func TestMediaUsecase_GetMedia_NotFound(t *testing.T) {
	ctx := context.Background()
	mediaRepo := new(MockMediaRepository)

	mediaRepo.On("FindByID", mock.Anything, "ghost").Return(model.Media{}, repo.ErrNotFound)

	u := NewMediaUsecase(mediaRepo, &stubObjectStorage{}, &seqIDGen{}, zap.NewNop())

	_, err := u.GetMedia(ctx, "ghost")
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}
