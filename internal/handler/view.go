package handler

import (
	"errors"
	"net/http"

	"github.com/ameen01/Bad-Trade/internal/model"
	"github.com/ameen01/Bad-Trade/internal/service"
	"github.com/ameen01/Bad-Trade/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Dashboard sections a notice can be attached to
const (
	SectionLogin      = "login"
	SectionWelcome    = "welcome"
	SectionClear      = "clear"
	SectionAddUser    = "add_user"
	SectionRemoveUser = "remove_user"
	SectionDelete     = "delete"
	SectionAddEntry   = "add_entry"
	SectionRecords    = "records"
)

const (
	NoticeSuccess = "success"
	NoticeError   = "error"
)

// Notice is a message rendered next to the control that triggered it
type Notice struct {
	Kind string
	Text string
}

func successNotice(text string) *Notice { return &Notice{Kind: NoticeSuccess, Text: text} }
func errorNotice(text string) *Notice   { return &Notice{Kind: NoticeError, Text: text} }

// LoginView is the data of login.html
type LoginView struct {
	Username string
	Notice   *Notice
}

// RecordRow is a record together with its display index
type RecordRow struct {
	Index int
	model.Record
}

// DashboardView is the data of dashboard.html
type DashboardView struct {
	FullName string
	IsAdmin  bool
	Columns  []string
	Records  []RecordRow
	MaxIndex int

	// admin only
	Usernames     []string
	Removable     []string
	EntryUser     string
	EntryFullName string

	notices map[string]*Notice
}

// Notice returns the notice of a section, or nil.
func (v *DashboardView) Notice(section string) *Notice {
	return v.notices[section]
}

// Pages renders the two pages of the application
type Pages struct {
	dashboard service.DashboardService
}

// NewPages creates a new Pages
func NewPages(dashboard service.DashboardService) *Pages {
	return &Pages{dashboard: dashboard}
}

func (p *Pages) Login(c *gin.Context, status int, username string, notice *Notice) {
	c.HTML(status, "login.html", &LoginView{Username: username, Notice: notice})
}

// Dashboard renders the session's dashboard. entryUser selects the account
// whose full name pre-fills the entry form.
func (p *Pages) Dashboard(c *gin.Context, sess *session.Session, status int, entryUser string, notices map[string]*Notice) {
	view := &DashboardView{
		IsAdmin: sess.IsAdmin(),
		Columns: model.Columns,
		notices: notices,
	}
	if view.notices == nil {
		view.notices = map[string]*Notice{}
	}
	if account, ok := sess.Account(); ok {
		view.FullName = account.FullName
	}

	if view.IsAdmin {
		view.Records = rows(sess.Data)
		view.Usernames = sess.Users.Usernames()
		view.Removable = sess.Users.RemovableUsernames()
		view.EntryUser = model.AdminUsername
		if _, ok := sess.Users[entryUser]; ok {
			view.EntryUser = entryUser
		}
		view.EntryFullName = sess.Users[view.EntryUser].FullName
	} else {
		table, err := p.dashboard.UserRecords(sess)
		if err != nil {
			_, view.notices[SectionRecords] = noticeForError(err)
		}
		view.Records = rows(table)
	}
	view.MaxIndex = len(view.Records) - 1

	c.HTML(status, "dashboard.html", view)
}

func rows(table model.Table) []RecordRow {
	out := make([]RecordRow, 0, len(table))
	for i, r := range table {
		out = append(out, RecordRow{Index: i, Record: r})
	}
	return out
}

// noticeForError maps a service error to a response status and notice.
// Unknown errors are logged and shown generically.
func noticeForError(err error) (int, *Notice) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorNotice("Invalid credentials.")
	case errors.Is(err, service.ErrDuplicateUsername):
		return http.StatusConflict, errorNotice("Username already exists.")
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound, errorNotice("User not found.")
	case errors.Is(err, service.ErrProtectedUser):
		return http.StatusForbidden, errorNotice("The admin account cannot be removed.")
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, errorNotice("You do not have permission to perform this action.")
	case errors.Is(err, service.ErrIncompleteForm):
		return http.StatusUnprocessableEntity, errorNotice("Please fill out all fields.")
	case errors.Is(err, service.ErrInvalidPrice):
		return http.StatusUnprocessableEntity, errorNotice("Please enter a valid, non-negative price.")
	case errors.Is(err, service.ErrNoRecords):
		return http.StatusUnprocessableEntity, errorNotice("No entries available to delete.")
	case errors.Is(err, service.ErrIndexOutOfRange):
		return http.StatusUnprocessableEntity, errorNotice("Invalid index. Please ensure the index is within the range of available entries.")
	default:
		logrus.WithError(err).Error("Request failed")
		return http.StatusInternalServerError, errorNotice("Something went wrong. Your changes were not saved.")
	}
}
