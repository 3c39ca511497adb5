package services

import (
	"context"
	"time"

	"github.com/anjiri1684/tutoring_api/database"
	"github.com/anjiri1684/tutoring_api/models"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type TokenConfig struct {
	Secret []byte
	Expiry time.Duration
}

type AuthService struct {
	store  *database.Store
	sim    *Simulator
	logger *zap.Logger
	tokens TokenConfig
}

func NewAuthService(store *database.Store, sim *Simulator, logger *zap.Logger, tokens TokenConfig) *AuthService {
	if tokens.Expiry <= 0 {
		tokens.Expiry = 72 * time.Hour
	}
	return &AuthService{store: store, sim: sim, logger: orNop(logger), tokens: tokens}
}

// Signin checks the credentials in the order they were registered and
// returns the matching profile. The response never carries a password.
func (s *AuthService) Signin(ctx context.Context, email, password string) (models.Profile, error) {
	return call(ctx, s.sim, "signin", func() (models.Profile, error) {
		var profile models.Profile
		err := s.store.View(func(tx *database.Tx) error {
			for _, cred := range tx.Credentials() {
				if cred.Email != email {
					continue
				}
				if bcrypt.CompareHashAndPassword(cred.PasswordHash, []byte(password)) != nil {
					continue
				}
				p, ok := tx.FindProfile(cred.UserID)
				if !ok {
					continue
				}
				profile = p
				return nil
			}
			return ErrInvalidCredentials
		})
		if err != nil {
			s.logger.Info("signin rejected", zap.String("email", email))
		}
		return profile, err
	})
}

// Signup registers a new profile. Emails are not checked for uniqueness.
// A credential is added only when a password is given.
func (s *AuthService) Signup(ctx context.Context, in models.SignupInput) (models.Profile, error) {
	var hash []byte
	if in.Password != "" {
		var err error
		if hash, err = bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost); err != nil {
			return models.Profile{}, err
		}
	}
	role := in.Role
	if role == "" {
		role = models.RoleStudent
	}

	return call(ctx, s.sim, "signup", func() (models.Profile, error) {
		var created models.Profile
		err := s.store.Update(func(tx *database.Tx) error {
			created = models.Profile{
				ID:        tx.NextID(database.KindProfile),
				Name:      in.Name,
				Email:     in.Email,
				Role:      role,
				Phone:     in.Phone,
				Faculty:   in.Faculty,
				Major:     in.Major,
				MSSV:      in.MSSV,
				Subjects:  in.Subjects,
				CreatedAt: tx.Now(),
			}
			if err := tx.InsertProfile(created); err != nil {
				return err
			}
			if hash == nil {
				return nil
			}
			return tx.InsertCredential(models.Credential{Email: in.Email, PasswordHash: hash, UserID: created.ID})
		})
		if err != nil {
			return models.Profile{}, err
		}
		s.logger.Info("user signed up", zap.String("user_id", created.ID), zap.String("role", string(created.Role)))
		return created.Clone(), nil
	})
}

// IssueToken signs an HS256 token carrying user_id and role.
func (s *AuthService) IssueToken(p models.Profile) (string, error) {
	claims := jwt.MapClaims{
		"user_id": p.ID,
		"role":    string(p.Role),
		"exp":     time.Now().Add(s.tokens.Expiry).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.tokens.Secret)
}
