package auth

import (
	"context"
	"errors"

	"shop/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

// DeleteAccountUsecaseは退会処理。
// ユーザー本体と一緒にカート・お気に入り・リフレッシュトークンも消える。
// 過去の注文は履歴として残す（user_idはそのまま）。
type DeleteAccountUsecase struct {
	userRepo repository.UserRepository
}

func NewDeleteAccountUsecase(userRepo repository.UserRepository) *DeleteAccountUsecase {
	return &DeleteAccountUsecase{userRepo: userRepo}
}

func (u *DeleteAccountUsecase) Execute(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrUserNotFound
	}

	err := u.userRepo.Delete(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return ErrUserNotFound
	}
	return err
}
