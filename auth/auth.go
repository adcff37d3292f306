// Package auth implements first-party credentials: bcrypt password hashes
// stored on the user row and HS256 tokens carrying the user id.
package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/nwk-labs/network-backend/model"
	"github.com/nwk-labs/network-backend/store"
	"github.com/nwk-labs/network-backend/utils"
)

const tokenTTL = 7 * 24 * time.Hour

type Service struct {
	stores *store.Stores
	secret []byte
}

func NewService(stores *store.Stores, secret string) *Service {
	return &Service{stores: stores, secret: []byte(secret)}
}

// Register creates the account and returns it together with a fresh token,
// so a new user is authenticated immediately. A taken username surfaces as
// utils.ErrConflict from the store's uniqueness constraint.
func (s *Service) Register(username, email, password string) (*model.User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", errors.Wrap(utils.ErrInvalidInput, "username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to hash password")
	}

	user := &model.User{
		Id:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.stores.Users.Create(user); err != nil {
		return nil, "", err
	}

	token, err := s.IssueToken(user.Id)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies the credentials and returns the user and a token. Unknown
// username and wrong password are indistinguishable to the caller.
func (s *Service) Login(username, password string) (*model.User, string, error) {
	user, err := s.stores.Users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, "", errors.Wrap(utils.ErrUnauthenticated, "invalid username or password")
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", errors.Wrap(utils.ErrUnauthenticated, "invalid username or password")
	}

	token, err := s.IssueToken(user.Id)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// IssueToken signs a token whose subject is the user id.
func (s *Service) IssueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}
	return token, nil
}

// ParseToken validates a token and returns the user id it carries.
func (s *Service) ParseToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", errors.Wrap(utils.ErrUnauthenticated, "invalid token")
	}
	return claims.Subject, nil
}
