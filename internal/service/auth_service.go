package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskflow-client/internal/dto"
	"taskflow-client/internal/entity"
	"taskflow-client/internal/pkg/logger"
	"taskflow-client/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// TokenRevoker records signed-out tokens.
type TokenRevoker interface {
	Revoke(token string, expiresAt time.Time)
	IsRevoked(token string) bool
}

// IssuedSession is what a successful login hands to the controller.
type IssuedSession struct {
	User      entity.UserProfile
	Token     string
	ExpiresAt time.Time
}

type IAuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*entity.UserProfile, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*IssuedSession, error)
	Logout(ctx context.Context, token string)
	CheckAuth(ctx context.Context, userId string) (*entity.UserProfile, error)
	ParseToken(token string) (string, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	revoked    TokenRevoker
	secret     []byte
	tokenTTL   time.Duration
	logger     logger.ILogger
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, revoked TokenRevoker, secret string, tokenTTL time.Duration, l logger.ILogger) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		revoked:    revoked,
		secret:     []byte(secret),
		tokenTTL:   tokenTTL,
		logger:     l,
	}
}

func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*entity.UserProfile, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	email := strings.TrimSpace(req.Email)

	existing, err := uow.UserRepository().FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		UserProfile: entity.UserProfile{
			Name:  req.Name,
			Email: email,
			Role:  entity.UserRoleMember,
		},
		Country:      req.Country,
		PasswordHash: string(hash),
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("AUTH", "User registered", map[string]interface{}{"user_id": user.Id})
	return &user.UserProfile, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*IssuedSession, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	claims := jwt.MapClaims{
		"user_id": user.Id,
		"role":    user.Role,
		"exp":     expiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	s.logger.Info("AUTH", "User logged in", map[string]interface{}{"user_id": user.Id})
	return &IssuedSession{User: user.UserProfile, Token: token, ExpiresAt: expiresAt}, nil
}

// Logout revokes token if it is still valid. It never fails: a client
// logging out must always end up signed out.
func (s *authService) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	claims, err := s.parse(token)
	if err != nil {
		return
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return
	}
	s.revoked.Revoke(token, exp.Time)
	s.logger.Info("AUTH", "Session revoked", map[string]interface{}{"user_id": claims["user_id"]})
}

func (s *authService) CheckAuth(ctx context.Context, userId string) (*entity.UserProfile, error) {
	user, err := s.uowFactory.NewUnitOfWork(ctx).UserRepository().FindById(ctx, userId)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthorized
	}
	return &user.UserProfile, nil
}

// ParseToken returns the user id carried by a valid, unrevoked token.
func (s *authService) ParseToken(token string) (string, error) {
	if s.revoked.IsRevoked(token) {
		return "", ErrUnauthorized
	}
	claims, err := s.parse(token)
	if err != nil {
		return "", ErrUnauthorized
	}
	userId, ok := claims["user_id"].(string)
	if !ok || userId == "" {
		return "", ErrUnauthorized
	}
	return userId, nil
}

func (s *authService) parse(token string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, errors.Join(ErrUnauthorized, err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrUnauthorized
	}
	return claims, nil
}
