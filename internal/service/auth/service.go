package auth

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/facemark/attendance-backend-go/internal/domain/auth"
	"github.com/facemark/attendance-backend-go/internal/domain/employee"
	"github.com/facemark/attendance-backend-go/internal/pkg/jwt"
	"github.com/facemark/attendance-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
	jwxjwt "github.com/lestrrat-go/jwx/v2/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	directory   employee.Repository
	jwtService  jwt.Service
	fileStorage storage.FileStorage
}

func NewAuthService(
	directory employee.Repository,
	jwtService jwt.Service,
	fileStorage storage.FileStorage,
) auth.Service {
	return &AuthServiceImpl{
		directory:   directory,
		jwtService:  jwtService,
		fileStorage: fileStorage,
	}
}

// Register implements auth.Service.
func (s *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	passwordHash := string(hash)

	var photoPath *string
	if req.File != nil && req.FileHeader != nil {
		ext := strings.ToLower(filepath.Ext(req.FileHeader.Filename))
		path := "profile_photos/" + uuid.Must(uuid.NewV7()).String() + ext

		stored, err := s.fileStorage.Upload(ctx, req.File, path)
		if err != nil {
			return auth.TokenResponse{}, fmt.Errorf("failed to upload profile photo: %w", err)
		}
		photoPath = &stored
	}

	emp, err := s.directory.Create(ctx, employee.Employee{
		EmployeeID:      req.EmployeeID,
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Department:      req.Department,
		Designation:     req.Designation,
		ProfilePhotoURL: photoPath,
		PasswordHash:    &passwordHash,
	})
	if err != nil {
		if photoPath != nil {
			_ = s.fileStorage.Delete(ctx, *photoPath)
		}
		return auth.TokenResponse{}, err
	}

	return s.issueTokens(emp)
}

// Login implements auth.Service.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	emp, err := s.directory.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, err
	}

	if emp.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*emp.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(emp)
}

// Refresh implements auth.Service. Refresh tokens rotate: the presented
// token is revoked once a new pair is issued.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return auth.TokenResponse{}, auth.ErrTokenRevoked
	}

	employeeID, err := s.jwtService.ParseRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwxjwt.ErrTokenExpired()) {
			return auth.TokenResponse{}, auth.ErrTokenExpired
		}
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	emp, err := s.directory.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	resp, err := s.issueTokens(emp)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	s.jwtService.RevokeToken(refreshToken)
	return resp, nil
}

// Logout implements auth.Service.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return auth.ErrInvalidToken
	}
	s.jwtService.RevokeToken(refreshToken)
	return nil
}

func (s *AuthServiceImpl) issueTokens(emp employee.Employee) (auth.TokenResponse, error) {
	accessToken, accessExpiresAt, err := s.jwtService.GenerateAccessToken(emp.EmployeeID, emp.Email, emp.Designation)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(emp.EmployeeID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  accessExpiresAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExpiresAt,
		Email:                 emp.Email,
		EmployeeID:            emp.EmployeeID,
		Designation:           emp.Designation,
	}, nil
}
