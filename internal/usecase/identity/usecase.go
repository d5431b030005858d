package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"loan-ledger/internal/domain/apperr"
	"loan-ledger/internal/domain/uow"
	"loan-ledger/internal/domain/user"
)

type Usecase struct {
	users    user.Repository
	uow      uow.UnitOfWork
	log      *logrus.Logger
	validate *validator.Validate

	hashCost  int
	dummyHash []byte
}

func NewUsecase(users user.Repository, tx uow.UnitOfWork, log *logrus.Logger) *Usecase {
	return (&Usecase{users: users, uow: tx, log: log, validate: newValidator()}).
		WithHashCost(bcrypt.DefaultCost)
}

// WithHashCost changes the bcrypt cost (tests use bcrypt.MinCost).
func (u *Usecase) WithHashCost(cost int) *Usecase {
	u.hashCost = cost
	// compared against when the user id is unknown, so both failure
	// paths of Authenticate do the same amount of work
	u.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	return u
}

func (u *Usecase) CreateUser(ctx context.Context, in CreateUserInput) (*UserDTO, error) {
	in.UserID = strings.TrimSpace(in.UserID)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	if err := u.validate.Struct(in); err != nil {
		return nil, toAppErr(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	rec := &user.User{
		UserID:       in.UserID,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Users.GetByUserID(ctx, in.UserID); err == nil {
			return user.ErrUserIDTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if _, err := r.Users.GetByEmail(ctx, in.Email); err == nil {
			return user.ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := r.Users.Create(ctx, rec); err != nil {
			// lost a race against a concurrent registration
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &apperr.Error{Kind: apperr.KindConflict, Field: "user_id", Reason: "user id or email already registered", Err: err}
			}
			return err
		}
		return nil
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			u.log.WithField("user_id", in.UserID).Warn("registration rejected: ", apperr.ReasonOf(err))
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	u.log.WithField("user_id", rec.UserID).Info("user registered")
	return toDTO(rec), nil
}

// Authenticate returns the user when password matches the stored hash and
// user.ErrBadCredentials otherwise, without revealing which part was wrong.
func (u *Usecase) Authenticate(ctx context.Context, userID, password string) (*UserDTO, error) {
	rec, err := u.users.GetByUserID(ctx, strings.TrimSpace(userID))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("load user: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(u.dummyHash, []byte(password))
		u.log.WithField("user_id", userID).Warn("login failed")
		return nil, user.ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		u.log.WithField("user_id", userID).Warn("login failed")
		return nil, user.ErrBadCredentials
	}
	return toDTO(rec), nil
}

func (u *Usecase) FindByID(ctx context.Context, userID string) (*UserDTO, error) {
	rec, err := u.users.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return toDTO(rec), nil
}

func toDTO(rec *user.User) *UserDTO {
	return &UserDTO{
		UserID:    rec.UserID,
		FirstName: rec.FirstName,
		LastName:  rec.LastName,
		FullName:  rec.FullName(),
		Email:     rec.Email,
		Phone:     rec.Phone,
		CreatedAt: rec.CreatedAt,
	}
}
