package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"fitcoach/coaching-api/internal/domain"
	"fitcoach/coaching-api/internal/repository"

	"github.com/golang-jwt/jwt/v4" // Import JWT library
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt" // Import bcrypt
)

const minPasswordLength = 6

// RegisterInput is an account plus the profile created alongside it.
// Specialty, Certifications and Experience only apply to trainers.
type RegisterInput struct {
	Email          string
	Password       string
	Role           domain.Role
	Name           string
	Phone          string
	Age            *int
	Weight         *float64
	Height         *float64
	Goals          []string
	Specialty      string
	Certifications []string
	Experience     string
}

// Me is the authenticated account with whichever profile it owns.
type Me struct {
	Account        *domain.Account        `json:"account"`
	User           *domain.User           `json:"user,omitempty"`
	TrainerProfile *domain.TrainerProfile `json:"trainerProfile,omitempty"`
}

// TokenClaims is the JWT payload issued by Login.
type TokenClaims struct {
	AccountID string      `json:"uid"`
	Role      domain.Role `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (token string, account *domain.Account, err error)
	Me(ctx context.Context, accountID primitive.ObjectID) (*Me, error)
	GetJWTSecret() string
}

// authService implements the AuthService interface.
type authService struct {
	accountRepo   repository.AccountRepository
	userRepo      repository.UserRepository
	profileRepo   repository.TrainerProfileRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(
	accountRepo repository.AccountRepository,
	userRepo repository.UserRepository,
	profileRepo repository.TrainerProfileRepository,
	jwtSecret string,
	jwtExpiration time.Duration,
) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour
	}
	return &authService{
		accountRepo:   accountRepo,
		userRepo:      userRepo,
		profileRepo:   profileRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register creates the account and then its profile. The two writes are not
// transactional: a failed profile write leaves an account without a profile.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*domain.Account, error) {
	// 1. Basic input validation
	email := strings.ToLower(strings.TrimSpace(in.Email))
	name := strings.TrimSpace(in.Name)
	if email == "" || name == "" {
		return nil, validationError("email and name are required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, validationError("password must have at least %d characters", minPasswordLength)
	}
	switch in.Role {
	case domain.RoleUser:
	case domain.RoleTrainer:
		if strings.TrimSpace(in.Specialty) == "" {
			return nil, validationError("specialty is required for trainers")
		}
	default:
		return nil, validationError("role must be user or trainer")
	}

	// 2. Check if the email is taken
	_, err := s.accountRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// 3. Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	// 4. Save the account; the unique index catches a concurrent registration
	account := &domain.Account{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         in.Role,
	}
	accountID, err := s.accountRepo.Create(ctx, account)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	account.ID = accountID

	// 5. Create the matching profile
	if err := s.createProfile(ctx, accountID, email, name, in); err != nil {
		log.WithError(err).WithField("accountId", accountID.Hex()).
			Warn("account created but profile creation failed")
		return nil, conflictOr(err, "a profile with this email already exists")
	}

	account.PasswordHash = ""
	return account, nil
}

func (s *authService) createProfile(ctx context.Context, accountID primitive.ObjectID, email, name string, in RegisterInput) error {
	if in.Role == domain.RoleTrainer {
		certifications := in.Certifications
		if certifications == nil {
			certifications = []string{}
		}
		_, err := s.profileRepo.Create(ctx, &domain.TrainerProfile{
			AccountID:      accountID,
			FullName:       name,
			Phone:          in.Phone,
			Specialty:      strings.TrimSpace(in.Specialty),
			Certifications: certifications,
			Experience:     in.Experience,
			IsActive:       true,
		})
		return err
	}

	user := &domain.User{
		AccountID: &accountID,
		Name:      name,
		Email:     email,
		Phone:     in.Phone,
		Age:       in.Age,
		Weight:    in.Weight,
		Height:    in.Height,
		Goals:     in.Goals,
	}
	if err := applyUserPatch(user, UserPatch{Age: in.Age, Weight: in.Weight, Height: in.Height}); err != nil {
		return err
	}
	_, err := s.userRepo.Create(ctx, user)
	return err
}

// Login handles authentication and JWT generation.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, validationError("email and password cannot be empty")
	}

	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrAuthenticationFailed // Unknown email maps to auth failure
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrAuthenticationFailed
	}

	token, err := s.generateJWT(account)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	account.PasswordHash = ""
	return token, account, nil
}

// Me loads the account and its profile. A missing profile is not an error.
func (s *authService) Me(ctx context.Context, accountID primitive.ObjectID) (*Me, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, notFoundOr(err, "Cuenta", accountID)
	}
	account.PasswordHash = ""
	me := &Me{Account: account}

	if account.IsTrainer() {
		me.TrainerProfile, err = s.profileRepo.GetByAccountID(ctx, accountID)
	} else {
		me.User, err = s.userRepo.GetByAccountID(ctx, accountID)
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return me, nil
}

// generateJWT creates a new signed token for the account.
func (s *authService) generateJWT(account *domain.Account) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		AccountID: account.ID.Hex(),
		Role:      account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "coaching-api",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// GetJWTSecret returns the JWT secret for middleware authentication
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
