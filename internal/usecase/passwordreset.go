package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasavipoluri/student-registry-api/internal/repository"
	"github.com/vasavipoluri/student-registry-api/shared/security"
)

// PasswordResetUsecase defines the business logic for the OTP-based
// password reset flow.
type PasswordResetUsecase interface {
	// GenerateOTP creates a one-time code for the user, stores it on the
	// user document and emails it to the username address.
	GenerateOTP(ctx context.Context, username string) error

	// VerifyAndUpdate checks the submitted code against the stored one and
	// rotates the password, consuming the code on success.
	VerifyAndUpdate(ctx context.Context, username, otp, newPassword string) error
}

// MailSender dispatches a plain-text email. Satisfied by *mailer.Mailer.
type MailSender interface {
	SendSimple(to, subject, body string) error
}

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidOTP   = errors.New("invalid OTP")
)

type passwordResetUsecase struct {
	userRepo repository.UserRepository
	mail     MailSender
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
func NewPasswordResetUsecase(userRepo repository.UserRepository, mail MailSender) PasswordResetUsecase {
	return &passwordResetUsecase{
		userRepo: userRepo,
		mail:     mail,
	}
}

func (u *passwordResetUsecase) GenerateOTP(ctx context.Context, username string) error {
	user, err := u.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}

		return err
	}

	otp, err := generateOTP()
	if err != nil {
		return err
	}

	// A fresh code overwrites any pending one; the code stays valid until
	// consumed or replaced.
	if err := u.userRepo.SetOTP(ctx, username, otp); err != nil {
		return err
	}

	// The username doubles as the email address. Dispatch is synchronous;
	// the request waits until the relay accepts the message.
	body := fmt.Sprintf("Your OTP for password reset: %s", otp)
	if err := u.mail.SendSimple(user.Username, "Password Reset OTP", body); err != nil {
		return err
	}

	return nil
}

func (u *passwordResetUsecase) VerifyAndUpdate(ctx context.Context, username, otp, newPassword string) error {
	user, err := u.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}

		return err
	}

	if user.OTP == "" || user.OTP != otp {
		return ErrInvalidOTP
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := u.userRepo.UpdatePasswordHash(ctx, username, passwordHash); err != nil {
		return err
	}

	return u.userRepo.ClearOTP(ctx, username)
}

// generateOTP draws a uniform 6-digit code, keeping leading zeros.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%06d", n.Int64()), nil
}
