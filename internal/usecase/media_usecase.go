package usecase

import (
	"context"
	"net/http"
	"path"
	"strings"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"go.uber.org/zap"
)

// ObjectStorage はメディア実体の置き場所（S3）の約束。
type ObjectStorage interface {
	PresignPut(ctx context.Context, key string, contentType string) (string, error)
	DeleteObject(ctx context.Context, key string) error
	ObjectURL(key string) string
}

type MediaUsecase struct {
	mediaRepo repo.MediaRepository
	storage   ObjectStorage
	idGen     IDGenerator
	logger    *zap.Logger
}

// DI
func NewMediaUsecase(mediaRepo repo.MediaRepository, storage ObjectStorage, idGen IDGenerator, logger *zap.Logger) *MediaUsecase {
	return &MediaUsecase{
		mediaRepo: mediaRepo,
		storage:   storage,
		idGen:     idGen,
		logger:    logger,
	}
}

type CreateMediaInput struct {
	FileName    string
	ContentType string
}

type CreateMediaOutput struct {
	Media     model.Media `json:"media"`
	UploadURL string      `json:"upload_url"`
}

type MediaOutput struct {
	Media model.Media `json:"media"`
	URL   string      `json:"url"`
}

var allowedMediaTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
	"image/avif": {},
}

// CreateUpload はメディアのレコードを作り、アップロード用のpresigned URLを返す。
func (u *MediaUsecase) CreateUpload(ctx context.Context, userID string, in CreateMediaInput) (CreateMediaOutput, error) {
	if userID == "" {
		return CreateMediaOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	fileName := strings.TrimSpace(in.FileName)
	if fileName == "" || len(fileName) > 255 {
		return CreateMediaOutput{}, NewHTTPError(http.StatusBadRequest, "invalid file_name")
	}
	if _, ok := allowedMediaTypes[in.ContentType]; !ok {
		return CreateMediaOutput{}, NewHTTPError(http.StatusBadRequest, "unsupported content_type")
	}

	mediaID := u.idGen.NewID()
	key := "medias/" + mediaID + path.Ext(fileName)

	media := model.Media{
		ID:          mediaID,
		FileName:    fileName,
		ContentType: in.ContentType,
		ObjectKey:   key,
		UserID:      userID,
	}

	if err := u.mediaRepo.Create(ctx, media); err != nil {
		return CreateMediaOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	uploadURL, err := u.storage.PresignPut(ctx, key, in.ContentType)
	if err != nil {
		return CreateMediaOutput{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}

	return CreateMediaOutput{Media: media, UploadURL: uploadURL}, nil
}

func (u *MediaUsecase) GetMedia(ctx context.Context, mediaID string) (MediaOutput, error) {
	if mediaID == "" {
		return MediaOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	m, err := u.mediaRepo.FindByID(ctx, mediaID)
	if err == repo.ErrNotFound {
		return MediaOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return MediaOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return MediaOutput{Media: m, URL: u.storage.ObjectURL(m.ObjectKey)}, nil
}

// Delete はレコードを消してからS3のオブジェクト削除を試みる。
// オブジェクト側の失敗はログだけ残して成功扱い。
func (u *MediaUsecase) Delete(ctx context.Context, userID string, mediaID string) error {
	if userID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if mediaID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	m, err := u.mediaRepo.FindByID(ctx, mediaID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if m.UserID != userID {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.mediaRepo.Delete(ctx, mediaID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.storage.DeleteObject(ctx, m.ObjectKey); err != nil {
		u.logger.Error("media object delete failed",
			zap.String("media_id", mediaID),
			zap.String("object_key", m.ObjectKey),
			zap.Error(err),
		)
	}

	return nil
}
