package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"codex_backend/internal/feature/auth/domain/entity"
)

// ResetTokenRepository はパスワードリセットトークンの永続化層を抽象化します。
type ResetTokenRepository interface {
	// Create は新しいトークンを保存します。
	Create(ctx context.Context, token *entity.PasswordResetToken) error

	// FindUnused は未使用のトークンを取得します。存在しない場合は ErrInvalidOrExpiredToken を返します。
	FindUnused(ctx context.Context, token string) (*entity.PasswordResetToken, error)

	// Redeem はトークンを使用済みにし、同一トランザクションでユーザーのパスワードハッシュを更新します。
	// 別のリクエストが先に使用していた場合は ErrTokenAlreadyUsed を返します。
	Redeem(ctx context.Context, token, userID, passwordHash string) error
}

// ResetNotifier はリセットリンクをユーザーへ届けます。
// 実装は送信完了を待たずに戻ってもかまいません。
type ResetNotifier interface {
	NotifyPasswordReset(ctx context.Context, email, name, resetURL string) error
}

// ResetConfig はリセットリンクの形式と有効期間です。
type ResetConfig struct {
	// URLTemplate は %s にトークンが入るリンクの書式です。
	URLTemplate string
	TTL         time.Duration
}

type passwordResetUsecase struct {
	users    UserRepository
	tokens   ResetTokenRepository
	hasher   PasswordHasher
	notifier ResetNotifier
	cfg      ResetConfig
	newToken IDGenerator
	now      func() time.Time
}

// NewPasswordResetUsecase はpasswordResetUsecaseを生成します。
func NewPasswordResetUsecase(
	users UserRepository,
	tokens ResetTokenRepository,
	hasher PasswordHasher,
	notifier ResetNotifier,
	cfg ResetConfig,
	newToken IDGenerator,
) *passwordResetUsecase {
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	return &passwordResetUsecase{
		users:    users,
		tokens:   tokens,
		hasher:   hasher,
		notifier: notifier,
		cfg:      cfg,
		newToken: newToken,
		now:      time.Now,
	}
}

// RequestReset はリセットトークンを発行し、メール送信を依頼します。
// メールアドレスの存在有無にかかわらず、呼び出し側には同じ結果を返します。
// トークン保存やメール送信の失敗はログにのみ記録されます。
func (u *passwordResetUsecase) RequestReset(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	now := u.now().UTC()
	token := &entity.PasswordResetToken{
		Token:     u.newToken(),
		UserID:    user.ID,
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(u.cfg.TTL),
	}
	if err := u.tokens.Create(ctx, token); err != nil {
		slog.Error("failed to store reset token", "error", err, "user_id", user.ID)
		return nil
	}

	resetURL := fmt.Sprintf(u.cfg.URLTemplate, url.QueryEscape(token.Token))
	if err := u.notifier.NotifyPasswordReset(ctx, email, user.Name, resetURL); err != nil {
		slog.Error("failed to dispatch reset email", "error", err, "user_id", user.ID)
	}
	return nil
}

// ResetPassword はトークンを一度だけ消費してパスワードを更新します。
// 不明・使用済み・期限切れのトークンはすべて ErrInvalidOrExpiredToken になります。
func (u *passwordResetUsecase) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	t, err := u.tokens.FindUnused(ctx, token)
	if err != nil {
		return err
	}
	if !t.Redeemable(u.now()) {
		return ErrInvalidOrExpiredToken
	}

	hashed, err := u.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := u.tokens.Redeem(ctx, t.Token, t.UserID, hashed); err != nil {
		if errors.Is(err, ErrTokenAlreadyUsed) {
			return ErrInvalidOrExpiredToken
		}
		return err
	}
	return nil
}
