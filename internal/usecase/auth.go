package usecase

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasavipoluri/student-registry-api/internal/model"
	"github.com/vasavipoluri/student-registry-api/internal/repository"
	"github.com/vasavipoluri/student-registry-api/shared/auth"
	"github.com/vasavipoluri/student-registry-api/shared/security"
)

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	Register(ctx context.Context, params RegisterParams) (*model.User, error)
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)
}

// RegisterParams defines the parameters for user signup.
type RegisterParams struct {
	Username       string
	Password       string
	PasswordRepeat string
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Username string
	Password string
}

// LoginResult carries the issued session token and its expiry.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
}

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAlreadyRegistered  = errors.New("course already registered")
)

// PasswordPolicyError reports every strength rule the submitted password
// violates, not just the first.
type PasswordPolicyError struct {
	Violations []string
}

func (e *PasswordPolicyError) Error() string {
	return strings.Join(e.Violations, "; ")
}

// commonSequence is the shared sequence allocating user IDs.
const commonSequence = "common_id"

type authUsecase struct {
	userRepo     repository.UserRepository
	sequenceRepo repository.SequenceRepository
	jwtAuth      auth.JWTAuthenticator
}

// NewAuthUsecase creates a new instance of AuthUsecase.
func NewAuthUsecase(
	userRepo repository.UserRepository,
	sequenceRepo repository.SequenceRepository,
	jwtAuth auth.JWTAuthenticator,
) AuthUsecase {
	return &authUsecase{
		userRepo:     userRepo,
		sequenceRepo: sequenceRepo,
		jwtAuth:      jwtAuth,
	}
}

func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (*model.User, error) {
	_, err := u.userRepo.GetUserByUsername(ctx, params.Username)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	if params.Password != params.PasswordRepeat {
		return nil, ErrPasswordMismatch
	}

	if violations := validatePassword(params.Password); len(violations) > 0 {
		return nil, &PasswordPolicyError{Violations: violations}
	}

	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	id, err := u.sequenceRepo.Next(ctx, commonSequence)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		ID:               id,
		Username:         params.Username,
		PasswordHash:     passwordHash,
		CourseRegistered: false,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUserAlreadyExists
		}

		return nil, err
	}

	return user, nil
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	user, err := u.userRepo.GetUserByUsername(ctx, params.Username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	// A user who already completed course registration is sent to the
	// already-registered view instead of receiving a session.
	if user.CourseRegistered {
		return nil, ErrAlreadyRegistered
	}

	token, expiresAt, err := u.jwtAuth.GenerateSessionToken(user.Username)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// passwordSpecialChars is the ASCII punctuation set accepted as special
// characters.
const passwordSpecialChars = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// validatePassword runs every strength rule and returns all violations.
func validatePassword(password string) []string {
	var violations []string

	if len(password) < 8 {
		violations = append(violations, "Password is too short")
	}

	var hasUpper, hasLower, hasSpecial, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSpecialChars, r):
			hasSpecial = true
		}
	}

	if !hasUpper {
		violations = append(violations, "Password doesn't contain an uppercase letter")
	}
	if !hasLower {
		violations = append(violations, "Password doesn't contain a lowercase letter")
	}
	if !hasSpecial {
		violations = append(violations, "Password doesn't contain a special character")
	}
	if !hasDigit {
		violations = append(violations, "Password doesn't contain a digit")
	}

	return violations
}
