package usermock

import (
	"context"
	"errors"
	"testing"

	domain "loan-ledger/internal/domain/user"
)

func TestRepo_UsesFuncs(t *testing.T) {
	ctx := context.Background()
	alice := &domain.User{UserID: "alice", Email: "alice@example.com"}
	wantErr := errors.New("dup")

	m := &Repo{
		CreateFn: func(_ context.Context, u *domain.User) error {
			if u != alice {
				t.Fatalf("Create arg mismatch")
			}
			return wantErr
		},
		GetByUserIDFn: func(_ context.Context, id string) (*domain.User, error) {
			if id != "alice" {
				t.Fatalf("GetByUserID: got %s", id)
			}
			return alice, nil
		},
		GetByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
			if email != "alice@example.com" {
				t.Fatalf("GetByEmail: got %s", email)
			}
			return alice, nil
		},
	}
	if err := m.Create(ctx, alice); !errors.Is(err, wantErr) {
		t.Fatalf("Create: want %v, got %v", wantErr, err)
	}
	if got, err := m.GetByUserID(ctx, "alice"); err != nil || got != alice {
		t.Fatalf("GetByUserID: got %+v, %v", got, err)
	}
	if got, err := m.GetByEmail(ctx, "alice@example.com"); err != nil || got != alice {
		t.Fatalf("GetByEmail: got %+v, %v", got, err)
	}
}

func TestRepo_Defaults(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}
	if err := m.Create(ctx, &domain.User{}); err != nil {
		t.Fatalf("Create default: want nil, got %v", err)
	}
	if _, err := m.GetByUserID(ctx, "x"); err != context.Canceled {
		t.Fatalf("GetByUserID default: want context.Canceled, got %v", err)
	}
	if _, err := m.GetByEmail(ctx, "x"); err != context.Canceled {
		t.Fatalf("GetByEmail default: want context.Canceled, got %v", err)
	}
}
