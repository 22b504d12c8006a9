package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ameen01/Bad-Trade/internal/model"
	"github.com/ameen01/Bad-Trade/internal/utils"

	"github.com/sirupsen/logrus"
)

// UserRepository loads and saves the credentials document
type UserRepository interface {
	Load(ctx context.Context) (model.Users, error)
	Save(ctx context.Context, users model.Users) error
}

type userRepository struct {
	doc Document
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(doc Document) UserRepository {
	return &userRepository{doc: doc}
}

// Load returns the persisted accounts. On first run it seeds and saves the
// default admin account.
func (r *userRepository) Load(ctx context.Context) (model.Users, error) {
	data, err := r.doc.Read(ctx)
	if errors.Is(err, ErrDocumentNotFound) {
		return r.seed(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	users := model.Users{}
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users from %s: %w", r.doc.Name(), err)
	}
	if users == nil {
		users = model.Users{}
	}
	return users, nil
}

// Save overwrites the whole credentials document
func (r *userRepository) Save(ctx context.Context, users model.Users) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode users: %w", err)
	}
	if err := r.doc.Write(ctx, data); err != nil {
		return fmt.Errorf("failed to save users: %w", err)
	}
	return nil
}

func (r *userRepository) seed(ctx context.Context) (model.Users, error) {
	hash, err := utils.HashPassword(model.DefaultAdminPassword)
	if err != nil {
		return nil, err
	}
	users := model.Users{
		model.AdminUsername: {PasswordHash: hash, FullName: model.DefaultAdminFullName},
	}
	if err := r.Save(ctx, users); err != nil {
		return nil, err
	}
	logrus.WithField("document", r.doc.Name()).Info("Seeded credentials with default admin account")
	return users, nil
}
