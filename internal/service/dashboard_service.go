package service

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ameen01/Bad-Trade/internal/model"
	"github.com/ameen01/Bad-Trade/internal/repository"
	"github.com/ameen01/Bad-Trade/internal/session"
	"github.com/ameen01/Bad-Trade/internal/utils"

	"github.com/sirupsen/logrus"
)

const AllDataFileName = "all_data.csv"

// RecordForm is the raw admin entry form. Price is parsed by AddRecord.
type RecordForm struct {
	FullName string `form:"full_name"`
	Email    string `form:"email"`
	Phone    string `form:"phone"`
	Device   string `form:"device"`
	Price    string `form:"price"`
	Note     string `form:"note"`
}

// DashboardService applies dashboard actions to a session. Every write
// computes the new mapping or table, saves it as a whole, and only then
// replaces the session's copy.
type DashboardService interface {
	AddUser(ctx context.Context, sess *session.Session, username, password, fullName string) error
	RemoveUser(ctx context.Context, sess *session.Session, username string) error
	AddRecord(ctx context.Context, sess *session.Session, form RecordForm) (model.Record, error)
	DeleteRecord(ctx context.Context, sess *session.Session, index int) error
	ClearRecords(ctx context.Context, sess *session.Session) error
	ExportAll(sess *session.Session) (*bytes.Buffer, error)

	UserRecords(sess *session.Session) (model.Table, error)
	ExportUserRecords(sess *session.Session) (*bytes.Buffer, string, error)
}

type dashboardService struct {
	users   repository.UserRepository
	records repository.RecordRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(users repository.UserRepository, records repository.RecordRepository) DashboardService {
	return &dashboardService{users: users, records: records}
}

func (s *dashboardService) AddUser(ctx context.Context, sess *session.Session, username, password, fullName string) error {
	if !sess.IsAdmin() {
		return ErrForbidden
	}
	if username == "" || password == "" || fullName == "" {
		return ErrIncompleteForm
	}
	if _, exists := sess.Users[username]; exists {
		return ErrDuplicateUsername
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	users := sess.Users.Clone()
	users[username] = model.Account{PasswordHash: hash, FullName: fullName}
	if err := s.users.Save(ctx, users); err != nil {
		return fmt.Errorf("failed to add user: %w", err)
	}
	sess.Users = users

	logrus.WithFields(logrus.Fields{"username": username, "full_name": fullName}).Info("User added")
	return nil
}

func (s *dashboardService) RemoveUser(ctx context.Context, sess *session.Session, username string) error {
	if !sess.IsAdmin() {
		return ErrForbidden
	}
	if username == model.AdminUsername {
		return ErrProtectedUser
	}
	if _, exists := sess.Users[username]; !exists {
		return ErrUserNotFound
	}

	users := sess.Users.Clone()
	delete(users, username)
	if err := s.users.Save(ctx, users); err != nil {
		return fmt.Errorf("failed to remove user: %w", err)
	}
	sess.Users = users

	logrus.WithField("username", username).Info("User removed")
	return nil
}

func (s *dashboardService) AddRecord(ctx context.Context, sess *session.Session, form RecordForm) (model.Record, error) {
	if !sess.IsAdmin() {
		return model.Record{}, ErrForbidden
	}

	rec, err := form.toRecord()
	if err != nil {
		return model.Record{}, err
	}

	table := sess.Data.Append(rec)
	if err := s.records.Save(ctx, table); err != nil {
		return model.Record{}, fmt.Errorf("failed to add record: %w", err)
	}
	sess.Data = table

	logrus.WithFields(logrus.Fields{"full_name": rec.FullName, "device": rec.Device, "rows": table.Len()}).Info("Record added")
	return rec, nil
}

func (s *dashboardService) DeleteRecord(ctx context.Context, sess *session.Session, index int) error {
	if !sess.IsAdmin() {
		return ErrForbidden
	}
	if sess.Data.Empty() {
		return ErrNoRecords
	}
	if index < 0 || index >= sess.Data.Len() {
		return ErrIndexOutOfRange
	}

	table := sess.Data.DropIndex(index)
	if err := s.records.Save(ctx, table); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	sess.Data = table

	logrus.WithFields(logrus.Fields{"index": index, "rows": table.Len()}).Info("Record deleted")
	return nil
}

func (s *dashboardService) ClearRecords(ctx context.Context, sess *session.Session) error {
	if !sess.IsAdmin() {
		return ErrForbidden
	}

	table := model.NewTable()
	if err := s.records.Save(ctx, table); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	sess.Data = table

	logrus.Info("Records cleared")
	return nil
}

func (s *dashboardService) ExportAll(sess *session.Session) (*bytes.Buffer, error) {
	if !sess.IsAdmin() {
		return nil, ErrForbidden
	}
	return encode(sess.Data)
}

// UserRecords returns the rows whose full name equals the logged in
// account's full name, in table order.
func (s *dashboardService) UserRecords(sess *session.Session) (model.Table, error) {
	account, ok := sess.Account()
	if !ok {
		return nil, ErrUserNotFound
	}
	return sess.Data.FilterByFullName(account.FullName), nil
}

// ExportUserRecords returns the caller's rows and the download file name
func (s *dashboardService) ExportUserRecords(sess *session.Session) (*bytes.Buffer, string, error) {
	account, ok := sess.Account()
	if !ok {
		return nil, "", ErrUserNotFound
	}
	buf, err := encode(sess.Data.FilterByFullName(account.FullName))
	if err != nil {
		return nil, "", err
	}
	return buf, account.FullName + "_data.csv", nil
}

// toRecord validates the form. Every field must be truthy, so a price of
// exactly 0 is rejected along with empty strings.
func (f RecordForm) toRecord() (model.Record, error) {
	priceStr := strings.TrimSpace(f.Price)
	if priceStr == "" {
		return model.Record{}, ErrIncompleteForm
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return model.Record{}, ErrInvalidPrice
	}

	for _, v := range []string{f.FullName, f.Email, f.Phone, f.Device, f.Note} {
		if v == "" {
			return model.Record{}, ErrIncompleteForm
		}
	}
	if price == 0 {
		return model.Record{}, ErrIncompleteForm
	}

	return model.Record{
		FullName: f.FullName,
		Email:    f.Email,
		Phone:    f.Phone,
		Device:   f.Device,
		Price:    price,
		Note:     f.Note,
	}, nil
}

func encode(table model.Table) (*bytes.Buffer, error) {
	buf := &bytes.Buffer{}
	if err := repository.EncodeTable(buf, table); err != nil {
		return nil, fmt.Errorf("failed to export records: %w", err)
	}
	return buf, nil
}
