package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"expense-approval-backend/internal/domain/authz"
	"expense-approval-backend/internal/domain/employee"
	expensedomain "expense-approval-backend/internal/domain/expense"
)

// ErrBadCredentials deliberately says nothing about which part was wrong.
var ErrBadCredentials = errors.New("invalid username or password")

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token string     `json:"token"`
	User  authz.User `json:"user"`
}

// Claims is the JWT payload. EmpID drives every ownership and visibility
// check downstream, so it travels in the token rather than being re-read
// per request.
type Claims struct {
	UserID uint64     `json:"uid"`
	EmpID  uint64     `json:"emp_id"`
	Role   authz.Role `json:"role"`
	Name   string     `json:"name"`
	Email  string     `json:"email"`
	jwt.RegisteredClaims
}

type Usecase struct {
	employees employee.Repository
	secret    []byte
	ttl       time.Duration
}

func NewUsecase(employees employee.Repository, secret string, ttl time.Duration) *Usecase {
	return &Usecase{employees: employees, secret: []byte(secret), ttl: ttl}
}

func (u *Usecase) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if in.Username == "" || in.Password == "" {
		return nil, expensedomain.Invalid("username and password are required")
	}
	usr, err := u.employees.GetUserByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(in.Password)) != nil {
		return nil, ErrBadCredentials
	}
	emp, err := u.employees.GetByEmpID(ctx, usr.EmpID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if !usr.Active(emp, time.Now().UTC()) {
		return nil, &expensedomain.AuthorizationError{Msg: "account is disabled"}
	}

	actor := authz.User{
		UserID: usr.UserID,
		EmpID:  usr.EmpID,
		Role:   usr.Role,
		Name:   emp.FullName(),
		Email:  emp.Email,
	}
	token, err := u.issue(actor)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: actor}, nil
}

func (u *Usecase) issue(actor authz.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID: actor.UserID,
		EmpID:  actor.EmpID,
		Role:   actor.Role,
		Name:   actor.Name,
		Email:  actor.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.secret)
}

// Parse verifies a bearer token and rebuilds the request actor.
func Parse(token string, secret []byte) (authz.User, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return authz.User{}, errors.New("invalid or expired token")
	}
	return authz.User{
		UserID: claims.UserID,
		EmpID:  claims.EmpID,
		Role:   claims.Role,
		Name:   claims.Name,
		Email:  claims.Email,
	}, nil
}
