package service

import (
	"github.com/ameen01/Bad-Trade/internal/session"
	"github.com/ameen01/Bad-Trade/internal/utils"

	"github.com/sirupsen/logrus"
)

// AuthService provides authentication related services
type AuthService interface {
	Login(sess *session.Session, username, password string) (string, error)
	Logout(sess *session.Session)
}

type authService struct{}

// NewAuthService creates a new AuthService
func NewAuthService() AuthService {
	return &authService{}
}

// Login checks the credentials against the session's account mapping and
// returns the account's full name. Unknown users and wrong passwords yield
// the same ErrInvalidCredentials.
func (s *authService) Login(sess *session.Session, username, password string) (string, error) {
	account, ok := sess.Users[username]
	if !ok {
		logrus.WithField("session_id", sess.ID).Debug("Login rejected")
		return "", ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, account.PasswordHash) {
		logrus.WithField("session_id", sess.ID).Debug("Login rejected")
		return "", ErrInvalidCredentials
	}

	sess.LoggedIn = true
	sess.Username = username
	logrus.WithFields(logrus.Fields{"session_id": sess.ID, "username": username}).Info("User logged in")
	return account.FullName, nil
}

// Logout clears the login; cached users and records stay with the session
func (s *authService) Logout(sess *session.Session) {
	if sess.LoggedIn {
		logrus.WithFields(logrus.Fields{"session_id": sess.ID, "username": sess.Username}).Info("User logged out")
	}
	sess.LoggedIn = false
	sess.Username = ""
}
