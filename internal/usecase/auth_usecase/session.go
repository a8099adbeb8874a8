package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"shop/internal/domain/model"
	"shop/internal/repository"
)

// refresh tokenが不正（期限切れ・失効・使用済みも同じ扱い）
var ErrInvalidRefresh = errors.New("invalid refresh")

type RefreshInput struct {
	PlainRefreshToken string
	UserAgent         string
}

type RefreshOutput struct {
	Token JwtAccessToken `json:"token"`
}

type RefreshSideEffect struct {
	PlainRefreshToken string
}

// RefreshUsecaseはトークンのローテーション。
// 古いrefresh tokenは使用済みにして、新しいものを発行する。
type RefreshUsecase struct {
	userRepo   repository.UserRepository
	rtRepo     repository.RefreshTokenRepository
	issuer     AccessTokenIssuer
	idGen      IDGenerator
	clock      Clock
	refreshTTL time.Duration
}

func NewRefreshUsecase(
	userRepo repository.UserRepository,
	rtRepo repository.RefreshTokenRepository,
	issuer AccessTokenIssuer,
	idGen IDGenerator,
	clock Clock,
	refreshTTL time.Duration,
) *RefreshUsecase {
	return &RefreshUsecase{
		userRepo:   userRepo,
		rtRepo:     rtRepo,
		issuer:     issuer,
		idGen:      idGen,
		clock:      clock,
		refreshTTL: refreshTTL,
	}
}

func (u *RefreshUsecase) Execute(ctx context.Context, in RefreshInput) (RefreshOutput, RefreshSideEffect, error) {
	var out RefreshOutput
	var side RefreshSideEffect

	plain := strings.TrimSpace(in.PlainRefreshToken)
	if plain == "" {
		return out, side, ErrInvalidRefresh
	}

	stored, err := u.rtRepo.FindByTokenHash(ctx, hashRefreshToken(plain))
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return out, side, ErrInvalidRefresh
		}
		return out, side, err
	}

	now := u.clock.Now()

	//期限切れ・失効・使用済みは全部invalid扱い
	if now.After(stored.ExpiresAt) || stored.RevokedAt != nil || stored.UsedAt != nil {
		return out, side, ErrInvalidRefresh
	}

	user, err := u.userRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return out, side, ErrInvalidRefresh
		}
		return out, side, err
	}
	if !user.IsActive {
		return out, side, ErrInvalidRefresh
	}

	//古いトークンを使用済みに
	if err := u.rtRepo.MarkUsed(ctx, stored.ID, now); err != nil {
		return out, side, err
	}

	//新しいrefresh tokenを発行
	plainNext, err := generateSecureToken(32)
	if err != nil {
		return out, side, err
	}

	next := &model.RefreshToken{
		ID:        u.idGen.NewID(),
		UserID:    user.ID,
		TokenHash: hashRefreshToken(plainNext),
		UserAgent: in.UserAgent,
		ExpiresAt: now.Add(u.refreshTTL),
	}
	if err := u.rtRepo.Create(ctx, next); err != nil {
		return out, side, err
	}

	accessToken, accessExp, err := u.issuer.Issue(user.ID, now)
	if err != nil {
		return out, side, err
	}

	out.Token = JwtAccessToken{
		AccessToken: accessToken,
		ExpiresIn:   int(accessExp.Sub(now).Seconds()),
	}
	side.PlainRefreshToken = plainNext
	return out, side, nil
}

// LogoutUsecaseはrefresh tokenの失効。
type LogoutUsecase struct {
	rtRepo repository.RefreshTokenRepository
	clock  Clock
}

func NewLogoutUsecase(rtRepo repository.RefreshTokenRepository, clock Clock) *LogoutUsecase {
	return &LogoutUsecase{rtRepo: rtRepo, clock: clock}
}

// トークンが見つからなくてもエラーにしない（すでにログアウト済み扱い）
func (u *LogoutUsecase) Execute(ctx context.Context, plainRefreshToken string) error {
	plain := strings.TrimSpace(plainRefreshToken)
	if plain == "" {
		return nil
	}

	stored, err := u.rtRepo.FindByTokenHash(ctx, hashRefreshToken(plain))
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return nil
		}
		return err
	}

	return u.rtRepo.Revoke(ctx, stored.ID, u.clock.Now())
}
