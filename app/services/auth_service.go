package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"masterblog/app/models"
	"masterblog/app/storage"
)

var (
	// ErrUserExists is returned when registering an already-taken username.
	ErrUserExists = errors.New("username already exists")

	// ErrInvalidCredentials is returned on login with an unknown username
	// or a wrong password. Deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidToken is returned when a bearer token does not verify.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// AuthService manages user registration and bearer token issuance. Passwords
// are stored as bcrypt hashes; tokens are HS256 JWTs carrying the username
// as subject.
type AuthService struct {
	store  storage.Store
	mu     sync.Mutex
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewAuthService creates an AuthService signing tokens with the given secret.
func NewAuthService(store storage.Store, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Register creates a new credential record. User ids are sequential in
// registration order.
func (s *AuthService) Register(username, password string) (*models.User, error) {
	user := models.User{Username: username, Password: password}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.store.LoadUsers()
	if err != nil {
		return nil, err
	}
	if _, taken := users[username]; taken {
		return nil, ErrUserExists
	}

	user.ID = len(users) + 1
	user.Password = string(hash)
	users[username] = user
	if err := s.store.SaveUsers(users); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login checks the credentials and issues a signed bearer token on match.
func (s *AuthService) Login(username, password string) (string, error) {
	s.mu.Lock()
	users, err := s.store.LoadUsers()
	s.mu.Unlock()
	if err != nil {
		return "", err
	}

	user, ok := users[username]
	if !ok {
		return "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %v", err)
	}
	return signed, nil
}

// Verify parses a bearer token and returns the username it was issued to.
func (s *AuthService) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
