package http

import (
	"bytes"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus/hooks/test"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/logger"

	"loan-ledger/internal/adapter/middleware"
	"loan-ledger/internal/adapter/repository/mysql"
	"loan-ledger/internal/infrastructure/db"
	"loan-ledger/internal/session"
	"loan-ledger/internal/usecase/identity"
	"loan-ledger/internal/usecase/ledger"
)

// -------- helpers --------

type testServer struct {
	e        *echo.Echo
	sessions *session.Manager
}

// newTestServer wires the real stack over an in-memory sqlite database.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gdb, err := db.OpenGorm(db.DriverSQLite, ":memory:", logger.Silent)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log, _ := test.NewNullLogger()
	tx := mysql.NewGormUoW(gdb)
	users := identity.NewUsecase(mysql.NewUserRepository(gdb), tx, log).WithHashCost(bcrypt.MinCost)
	loans := ledger.NewUsecase(tx, mysql.NewLoanRepository(gdb), mysql.NewTransactionRepository(gdb), log)
	sessions := session.NewManager("0123456789abcdef0123456789abcdef", time.Hour)

	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()
	Register(e, Handlers{
		Health: NewHandler(nil),
		Auth:   NewAuthHandler(users, sessions),
		Loans:  NewLoanHandler(loans),
	}, middleware.Auth(sessions))
	return &testServer{e: e, sessions: sessions}
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

// do sends a JSON request, authenticated as userID when it is not empty.
func (s *testServer) do(t *testing.T, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		rd = mustJSON(body)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if userID != "" {
		token, _, err := s.sessions.Issue(userID)
		if err != nil {
			t.Fatalf("issue token: %v", err)
		}
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad json: %v; raw=%s", err, rec.Body.String())
	}
	return out
}

func (s *testServer) register(t *testing.T, userID string) {
	t.Helper()
	rec := s.do(t, stdhttp.MethodPost, "/auth/register", "", map[string]string{
		"user_id":          userID,
		"first_name":       "Test",
		"last_name":        "User",
		"email":            userID + "@example.com",
		"password":         "password-" + userID,
		"confirm_password": "password-" + userID,
	})
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("register %s: status %d body %s", userID, rec.Code, rec.Body.String())
	}
}

func (s *testServer) createLoan(t *testing.T, lender, borrower string) ledger.LoanDTO {
	t.Helper()
	rec := s.do(t, stdhttp.MethodPost, "/loans", lender, map[string]any{
		"borrower_id":           borrower,
		"principal_amount":      "1000.00",
		"monthly_interest_rate": "2.00",
		"loan_months":           10,
	})
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("create loan: status %d body %s", rec.Code, rec.Body.String())
	}
	return decode[ledger.LoanDTO](t, rec)
}

