package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"loan-ledger/internal/session"
	"loan-ledger/internal/usecase/identity"
)

type AuthHandler struct {
	users    *identity.Usecase
	sessions *session.Manager
}

func NewAuthHandler(users *identity.Usecase, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions}
}

type registerReq struct {
	UserID          string `json:"user_id"          validate:"required,userid"`
	FirstName       string `json:"first_name"       validate:"required"`
	LastName        string `json:"last_name"        validate:"required"`
	Email           string `json:"email"            validate:"required,email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"         validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type loginReq struct {
	UserID   string `json:"user_id"  validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResp struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expires_at"`
	User      *identity.UserDTO `json:"user"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.users.CreateUser(c.Request().Context(), identity.CreateUserInput{
		UserID:    req.UserID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.users.Authenticate(c.Request().Context(), req.UserID, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	token, exp, err := h.sessions.Issue(dto.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, loginResp{Token: token, ExpiresAt: exp, User: dto})
}

func (h *AuthHandler) Me(c echo.Context) error {
	dto, err := h.users.FindByID(c.Request().Context(), callerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
