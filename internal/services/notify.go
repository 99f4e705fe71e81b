package services

import (
	"errors"
	"fmt"

	"github.com/Rathore23/auth-microservice/domain"
	"go.uber.org/zap"
)

const mailSignature = "\n\nRegards,\n Auth Microservice Team"

// deliver runs send and swallows any failure after logging it.
// Deliveries never roll back or fail the request that triggered them.
func deliver(logger *zap.Logger, channel, to string, send func() error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("notification delivery panicked",
				zap.String("channel", channel),
				zap.String("to", to),
				zap.Any("panic", r),
			)
		}
	}()
	if err := send(); err != nil {
		logger.Warn("notification delivery failed",
			zap.String("channel", channel),
			zap.String("to", to),
			zap.Error(err),
		)
	}
}

func verificationEmail(user *domain.User, code int) (string, string) {
	return "Email Verification",
		fmt.Sprintf("Hello %s,\n\nFor Email verification OTP is %d.%s", user.FirstName, code, mailSignature)
}

func resetEmail(user *domain.User, url string) (string, string) {
	return "Reset Password",
		fmt.Sprintf("Hello %s,\n\n%s.%s", user.FirstName, url, mailSignature)
}

func loginSMS(code int) string {
	return fmt.Sprintf("OTP is %d.", code)
}

// failClosed maps any lookup failure to notFound. Unexpected errors are logged, not surfaced.
func failClosed(logger *zap.Logger, err, notFound error) error {
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		logger.Error("user lookup failed", zap.Error(err))
	}
	return notFound
}
