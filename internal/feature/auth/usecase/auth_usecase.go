// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"codex_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8

	// dummyHash はユーザーが存在しない場合にbcrypt比較を行うためのハッシュです。
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// UpdateInterests は興味カテゴリを置き換え、オンボーディング完了フラグを立てます。
	UpdateInterests(ctx context.Context, id string, interests []string) error
}

// PasswordHasher はパスワードハッシュの生成と照合を抽象化します。
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer はセッショントークンの発行と検証を抽象化します。
// Parse は期限切れに ErrExpiredToken、それ以外の検証失敗に ErrInvalidToken を返す必要があります。
type TokenIssuer interface {
	Issue(userID, email string, role entity.Role) (string, error)
	Parse(token string) (*entity.SessionClaims, error)
}

// IDGenerator は新しいユーザーIDを生成します。
type IDGenerator func() string

// AuthResult はサインアップ・ログイン成功時の結果です。
type AuthResult struct {
	Token string
	User  *entity.User
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	newID  IDGenerator
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, tokens TokenIssuer, newID IDGenerator) *authUsecase {
	return &authUsecase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		newID:  newID,
	}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// NormalizeEmail は比較用にメールアドレスを正規化します。
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup はハッシュ化されたパスワードで新規ユーザーを登録し、セッショントークンを発行します。
// 新規ユーザーは role=user, plan=free, 興味カテゴリなしで作成されます。
func (u *authUsecase) Signup(ctx context.Context, email, password, name string) (*AuthResult, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:               u.newID(),
		Email:            NormalizeEmail(email),
		Name:             strings.TrimSpace(name),
		PasswordHash:     hashed,
		Role:             entity.RoleUser,
		Interests:        []string{},
		SubscriptionPlan: entity.PlanFree,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := u.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

// Login はユーザーを認証し、成功時にセッショントークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := u.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.PasswordHash
	}

	// 常にパスワードを検証
	ok := u.hasher.Verify(password, passwordHash)
	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}

	token, err := u.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

// Authenticate はトークンを検証し、対象ユーザーを読み込みます。
// 署名と有効期限はストレージへのアクセスより先に検証されます。
func (u *authUsecase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	claims, err := u.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	user, err := u.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateInterests は興味カテゴリを順序を保ったまま重複排除して保存します。
func (u *authUsecase) UpdateInterests(ctx context.Context, userID string, interests []string) ([]string, error) {
	cleaned := DedupeInterests(interests)
	if err := u.users.UpdateInterests(ctx, userID, cleaned); err != nil {
		return nil, err
	}
	return cleaned, nil
}

// DedupeInterests は空白を除去し、最初の出現順を保ったまま重複を取り除きます。
func DedupeInterests(interests []string) []string {
	out := make([]string, 0, len(interests))
	seen := make(map[string]struct{}, len(interests))
	for _, in := range interests {
		in = strings.TrimSpace(in)
		if in == "" {
			continue
		}
		if _, ok := seen[in]; ok {
			continue
		}
		seen[in] = struct{}{}
		out = append(out, in)
	}
	return out
}
