package repository

import (
	"context"
	"errors"

	"shop/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// 保存・取得を約束
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// 最終ログイン更新など
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, userID string) error
}
