package api

import (
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/terraincognita07/teachflow/internal/db"
	"github.com/terraincognita07/teachflow/internal/services"
	"gorm.io/gorm"
)

const defaultAuthTokenTTL = 7 * 24 * time.Hour

type Handler struct {
	secretKey    []byte
	cookieSecure bool
	cookies      *cookieSealer
	log          zerolog.Logger
	loginLimiter *attemptLimiter

	repositories      *db.Repositories
	authService       *services.AuthService
	profileService    *services.ProfileService
	contractorService *services.ContractorService
	studentService    *services.StudentService
	classService      *services.ClassService
	paymentService    *services.PaymentService
	dashboardService  *services.DashboardService
}

func NewHandler(database *gorm.DB, secret string, cookieSecure bool, log zerolog.Logger) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("secret key is required")
	}

	cookies, err := newCookieSealer([]byte(secret))
	if err != nil {
		return nil, err
	}

	handler := &Handler{
		secretKey:    []byte(secret),
		cookieSecure: cookieSecure,
		cookies:      cookies,
		log:          log,
		loginLimiter: newAttemptLimiter(loginAttemptLimit, loginAttemptWindow),
	}
	return handler.withDependencies(database), nil
}
