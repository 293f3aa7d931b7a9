package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgauth "github.com/hoangsoi/vinashop-backend/pkg/auth"
	"github.com/hoangsoi/vinashop-backend/pkg/config"
	"github.com/hoangsoi/vinashop-backend/pkg/db/models"
	"github.com/hoangsoi/vinashop-backend/pkg/enums"
	pkgerrors "github.com/hoangsoi/vinashop-backend/pkg/errors"
	"github.com/hoangsoi/vinashop-backend/pkg/security"
)

type fakeUserRepo struct {
	byEmail map[string]*models.User
	created []*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.byEmail[user.Email] = user
	f.created = append(f.created, user)
	return nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return nil
}

type fakeSessionManager struct {
	sessions map[string]string
}

func newFakeSessionManager() *fakeSessionManager {
	return &fakeSessionManager{sessions: make(map[string]string)}
}

func (f *fakeSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	token := "refresh-" + accessID
	f.sessions[accessID] = token
	return token, nil
}

func (f *fakeSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	stored, ok := f.sessions[oldAccessID]
	if !ok || stored != provided {
		return "", "", pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
	}
	delete(f.sessions, oldAccessID)
	newID := uuid.NewString()
	token := "refresh-" + newID
	f.sessions[newID] = token
	return newID, token, nil
}

func (f *fakeSessionManager) Revoke(ctx context.Context, accessID string) error {
	delete(f.sessions, accessID)
	return nil
}

func testConfigs() (config.JWTConfig, config.PasswordConfig) {
	jwtCfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "vinashop",
		ExpirationMinutes: 30,
	}
	passwordCfg := config.PasswordConfig{
		ArgonMemoryKB:    32768,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
	return jwtCfg, passwordCfg
}

func newTestService(t *testing.T, repo *fakeUserRepo, sessions *fakeSessionManager) Service {
	t.Helper()
	jwtCfg, passwordCfg := testConfigs()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      jwtCfg,
		PasswordConfig: passwordCfg,
	})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	return svc
}

func TestRegisterIssuesTokens(t *testing.T) {
	repo := newFakeUserRepo()
	sessions := newFakeSessionManager()
	svc := newTestService(t, repo, sessions)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Nguyễn Văn A",
		Email:    "A@Example.com",
		Password: "secret-password",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected token pair")
	}
	if resp.User == nil || resp.User.Email != "a@example.com" {
		t.Fatalf("expected lowercased email, got %+v", resp.User)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one created user, got %d", len(repo.created))
	}
	if repo.created[0].Role != enums.UserRoleUser {
		t.Fatalf("expected default role user, got %s", repo.created[0].Role)
	}
	if strings.Contains(repo.created[0].PasswordHash, "secret-password") {
		t.Fatal("password must be hashed")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	sessions := newFakeSessionManager()
	svc := newTestService(t, repo, sessions)

	ctx := context.Background()
	req := RegisterRequest{Name: "A", Email: "dup@example.com", Password: "password"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(ctx, req)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLoginVerifiesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	sessions := newFakeSessionManager()
	svc := newTestService(t, repo, sessions)

	_, passwordCfg := testConfigs()
	hash, err := security.HashPassword("correct-password", passwordCfg)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	repo.byEmail["user@example.com"] = &models.User{
		ID:           uuid.New(),
		Name:         "User",
		Email:        "user@example.com",
		PasswordHash: hash,
		Role:         enums.UserRoleUser,
	}

	ctx := context.Background()
	resp, err := svc.Login(ctx, LoginRequest{Email: "User@Example.com", Password: "correct-password"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected access token")
	}

	_, err = svc.Login(ctx, LoginRequest{Email: "user@example.com", Password: "wrong"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	_, err = svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for unknown email, got %v", err)
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	repo := newFakeUserRepo()
	sessions := newFakeSessionManager()
	svc := newTestService(t, repo, sessions)

	ctx := context.Background()
	resp, err := svc.Register(ctx, RegisterRequest{Name: "A", Email: "r@example.com", Password: "password"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	refreshed, err := svc.Refresh(ctx, RefreshRequest{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.AccessToken == "" || refreshed.RefreshToken == "" {
		t.Fatal("expected new token pair")
	}
	if refreshed.RefreshToken == resp.RefreshToken {
		t.Fatal("refresh token must rotate")
	}

	jwtCfg, _ := testConfigs()
	claims, err := pkgauth.ParseAccessToken(jwtCfg, refreshed.AccessToken)
	if err != nil {
		t.Fatalf("parse refreshed token: %v", err)
	}
	if claims.UserID != repo.created[0].ID {
		t.Fatal("refreshed token must keep the user identity")
	}

	// The old pair is dead after rotation.
	if _, err := svc.Refresh(ctx, RefreshRequest{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}); err == nil {
		t.Fatal("expected stale refresh to fail")
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	repo := newFakeUserRepo()
	sessions := newFakeSessionManager()
	svc := newTestService(t, repo, sessions)

	ctx := context.Background()
	resp, err := svc.Register(ctx, RegisterRequest{Name: "A", Email: "l@example.com", Password: "password"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	jwtCfg, _ := testConfigs()
	claims, err := pkgauth.ParseAccessToken(jwtCfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}

	if err := svc.Logout(ctx, claims.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok := sessions.sessions[claims.ID]; ok {
		t.Fatal("session must be revoked")
	}
}
