// Package auth implements registration, login and bearer-token verification.
// It owns the users table and is the only package that touches password
// hashes or the signing secret.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/blogging-api-go/apperror"
	"github.com/user/blogging-api-go/config"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Claims is the JWT payload carried by issued tokens.
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// dbConn is the subset of pgxpool.Pool the service uses. Tests substitute a
// stub.
type dbConn interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ dbConn = (*pgxpool.Pool)(nil)

// AuthService provides registration, login and token operations.
type AuthService struct {
	db  dbConn
	cfg config.AuthConfig
}

// NewAuthService creates an AuthService backed by the given pool.
func NewAuthService(db *pgxpool.Pool, cfg config.AuthConfig) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Register creates a new user and returns their summary with a signed token.
// A duplicate email is reported as a 400, matching the API's contract.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, apperror.NewValidationError("first_name, last_name, a valid email and a password are required", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          strings.ToLower(req.Email),
		HashedPassword: string(hashedPassword),
	}

	query := `INSERT INTO users (first_name, last_name, email, password)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at`
	err = s.db.QueryRow(ctx, query, user.FirstName, user.LastName, user.Email, user.HashedPassword).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.NewBadRequestError("user already exists with this email", nil)
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}

	return s.respondWithToken(user)
}

// Login verifies the credentials and returns the user summary with a signed
// token. Unknown email and wrong password produce the same message.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, apperror.NewValidationError("email and password are required", err)
	}

	user, err := s.getUserByEmail(ctx, req.Email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewAuthError("invalid email or password", nil)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return nil, apperror.NewAuthError("invalid email or password", nil)
	}

	return s.respondWithToken(user)
}

// GetUserByID resolves a user id to its record. The auth middleware uses this
// to confirm a token still refers to an existing user.
func (s *AuthService) GetUserByID(ctx context.Context, userID int64) (*User, error) {
	var user User
	query := `SELECT id, first_name, last_name, email, password, created_at FROM users WHERE id = $1`
	err := s.db.QueryRow(ctx, query, userID).
		Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.HashedPassword, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("user with id %d not found", userID), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user by id", err)
	}
	return &user, nil
}

// IssueToken signs a token carrying the user id, valid for the configured
// duration.
func (s *AuthService) IssueToken(userID int64) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken verifies signature and expiry and returns the carried user id.
func ValidateToken(tokenString, secret string) (int64, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, errors.New("token is invalid")
	}
	if claims.UserID == 0 {
		return 0, errors.New("token is missing the user_id claim")
	}
	return claims.UserID, nil
}

func (s *AuthService) respondWithToken(user *User) (*AuthResponse, error) {
	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, apperror.NewInternalError("failed to issue token", err)
	}
	return &AuthResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Token:     token,
	}, nil
}

func (s *AuthService) getUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	query := `SELECT id, first_name, last_name, email, password, created_at FROM users WHERE email = $1`
	err := s.db.QueryRow(ctx, query, strings.ToLower(email)).
		Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.HashedPassword, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("user with email '%s' not found", email), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user by email", err)
	}
	return &user, nil
}
