package services

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"boutique/internal/domain"
	"boutique/internal/repos"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// ErrBadCreds covers both unknown users and wrong passwords.
var ErrBadCreds = errors.New("invalid username or password")

type AuthService struct {
	Admins *repos.AdminRepo
	// Cost is the bcrypt cost for new hashes; zero means bcrypt.DefaultCost.
	Cost int
}

func NewAuthService(admins *repos.AdminRepo) *AuthService {
	return &AuthService{Admins: admins}
}

// Authenticate checks username and password against the admin table.
// Hashes written by the first release (unsalted SHA-256 hex) are accepted
// once and replaced with bcrypt.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.Admin, error) {
	a, err := s.Admins.ByUsername(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBadCreds
	}
	if err != nil {
		return nil, fmt.Errorf("lookup admin: %w", err)
	}
	if isLegacyHash(a.Hash) {
		if !legacyMatch(a.Hash, password) {
			return nil, ErrBadCreds
		}
		if err := s.SetPassword(ctx, a.Username, password); err != nil {
			// Login still succeeds; the upgrade is retried next time.
			logrus.WithError(err).WithField("username", a.Username).Warn("[auth] legacy hash upgrade failed")
		} else {
			logrus.WithField("username", a.Username).Info("[auth] legacy hash upgraded to bcrypt")
		}
		return a, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(a.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	return a, nil
}

// SetPassword stores a fresh bcrypt hash for username.
func (s *AuthService) SetPassword(ctx context.Context, username, password string) error {
	if strings.TrimSpace(password) == "" {
		return &ValidationError{Field: "password", Message: "Le mot de passe ne peut pas être vide."}
	}
	cost := s.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.Admins.UpdateHash(ctx, username, string(h)); err != nil {
		return fmt.Errorf("update admin %q: %w", username, err)
	}
	return nil
}

func isLegacyHash(h string) bool {
	if len(h) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(h)
	return err == nil
}

func legacyMatch(stored, password string) bool {
	sum := sha256.Sum256([]byte(password))
	got := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(strings.ToLower(stored)), []byte(got)) == 1
}
