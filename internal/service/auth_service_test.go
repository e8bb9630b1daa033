package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Shriramtantry/task-manager/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// mockAuthRepo is a lightweight in-test mock for repository.Authorization.
type mockAuthRepo struct {
	CreateFn        func(username, hash string) (int, error)
	GetByUsernameFn func(username string) (*models.User, error)

	createCalls []struct {
		username string
		hash     string
	}
	getCalls []string
}

func (m *mockAuthRepo) Create(_ context.Context, username, hash string) (int, error) {
	m.createCalls = append(m.createCalls, struct {
		username string
		hash     string
	}{username: username, hash: hash})
	return m.CreateFn(username, hash)
}

func (m *mockAuthRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	m.getCalls = append(m.getCalls, username)
	return m.GetByUsernameFn(username)
}

// recorderStub captures recorded activity.
type recorderStub struct {
	got []models.Activity
}

func (r *recorderStub) Record(_ context.Context, a models.Activity) {
	r.got = append(r.got, a)
}

func newTestAuthService(repo *mockAuthRepo, rec *recorderStub) *AuthService {
	svc := NewAuthService(repo, rec)
	svc.cost = bcrypt.MinCost
	return svc
}

func TestAuthService_Register_HashesPasswordAndCallsRepo(t *testing.T) {
	repo := &mockAuthRepo{
		CreateFn: func(username, hash string) (int, error) { return 42, nil },
	}
	rec := &recorderStub{}
	svc := newTestAuthService(repo, rec)

	id, err := svc.Register(context.Background(), "alice", "p1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}

	if len(repo.createCalls) != 1 {
		t.Fatalf("expected 1 Create call, got %d", len(repo.createCalls))
	}
	call := repo.createCalls[0]
	if call.username != "alice" {
		t.Errorf("expected username 'alice', got %q", call.username)
	}
	if call.hash == "p1" {
		t.Errorf("expected stored password to be hashed")
	}
	if err := verifyPassword(call.hash, "p1"); err != nil {
		t.Errorf("stored hash does not verify with original password: %v", err)
	}

	if len(rec.got) != 1 || rec.got[0].Type != models.ActivityUserRegistered || rec.got[0].UserID != 42 {
		t.Fatalf("unexpected activity: %+v", rec.got)
	}
}

func TestAuthService_Register_EmptyPasswordAccepted(t *testing.T) {
	repo := &mockAuthRepo{
		CreateFn: func(username, hash string) (int, error) { return 1, nil },
	}
	svc := newTestAuthService(repo, &recorderStub{})

	if _, err := svc.Register(context.Background(), "bob", ""); err != nil {
		t.Fatalf("empty password should be stored as given: %v", err)
	}
}

func TestAuthService_Register_PasswordTooLong(t *testing.T) {
	repo := &mockAuthRepo{
		CreateFn: func(username, hash string) (int, error) {
			t.Fatal("Create should not be called when hashing fails")
			return 0, nil
		},
	}
	svc := newTestAuthService(repo, &recorderStub{})

	long := make([]byte, 100)
	for i := range long {
		long[i] = 'x'
	}
	_, err := svc.Register(context.Background(), "carl", string(long))
	if err == nil {
		t.Fatalf("expected hashing error")
	}
	if KindOf(err) != KindValidation {
		t.Fatalf("expected validation kind, got %v", KindOf(err))
	}
}

func TestAuthService_Register_RepoError(t *testing.T) {
	repo := &mockAuthRepo{
		CreateFn: func(username, hash string) (int, error) {
			return 0, errors.New("UNIQUE constraint failed")
		},
	}
	rec := &recorderStub{}
	svc := newTestAuthService(repo, rec)

	_, err := svc.Register(context.Background(), "dave", "pw")
	if KindOf(err) != KindPersistence {
		t.Fatalf("expected persistence kind, got %v (%v)", KindOf(err), err)
	}
	if len(rec.got) != 0 {
		t.Fatalf("no activity expected on failure, got %+v", rec.got)
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := hashPassword("letmein", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}

	tests := []struct {
		name     string
		password string
		repoUser *models.User
		repoErr  error
		wantErr  error
		wantKind Kind
	}{
		{
			name:     "success",
			password: "letmein",
			repoUser: &models.User{ID: 7, Username: "diana", Password: hash},
		},
		{
			name:     "user not found",
			password: "pw",
			wantErr:  ErrUserNotFound,
			wantKind: KindUnauthorized,
		},
		{
			name:     "invalid password",
			password: "wrong",
			repoUser: &models.User{ID: 7, Username: "diana", Password: hash},
			wantErr:  ErrInvalidPassword,
			wantKind: KindUnauthorized,
		},
		{
			name:     "stored value is not a hash",
			password: "letmein",
			repoUser: &models.User{ID: 7, Username: "diana", Password: "letmein"},
			wantKind: KindPersistence,
		},
		{
			name:     "repo error",
			password: "pw",
			repoErr:  errors.New("query failed"),
			wantKind: KindPersistence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockAuthRepo{
				GetByUsernameFn: func(username string) (*models.User, error) {
					if username != "diana" {
						t.Fatalf("expected username 'diana', got %q", username)
					}
					return tt.repoUser, tt.repoErr
				},
			}
			rec := &recorderStub{}
			svc := newTestAuthService(repo, rec)

			u, err := svc.Login(context.Background(), "diana", tt.password)

			if tt.wantKind != KindUnknown {
				if err == nil {
					t.Fatalf("expected error, got user %+v", u)
				}
				if KindOf(err) != tt.wantKind {
					t.Fatalf("kind: got %v, want %v (%v)", KindOf(err), tt.wantKind, err)
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if len(rec.got) != 0 {
					t.Fatalf("no activity expected on failure")
				}
				return
			}

			if err != nil {
				t.Fatalf("Login: %v", err)
			}
			if u.ID != 7 || u.Username != "diana" {
				t.Fatalf("unexpected user: %+v", u)
			}
			if u.Password != "" {
				t.Fatalf("password hash leaked: %q", u.Password)
			}
			if len(rec.got) != 1 || rec.got[0].Type != models.ActivityUserLoggedIn {
				t.Fatalf("unexpected activity: %+v", rec.got)
			}
		})
	}
}
