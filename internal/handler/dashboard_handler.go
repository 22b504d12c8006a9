package handler

import (
	"bytes"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/ameen01/Bad-Trade/internal/middleware"
	"github.com/ameen01/Bad-Trade/internal/service"
	"github.com/ameen01/Bad-Trade/internal/session"

	"github.com/gin-gonic/gin"
)

// DashboardHandler handles the dashboard actions
type DashboardHandler struct {
	service service.DashboardService
	pages   *Pages
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(s service.DashboardService, pages *Pages) *DashboardHandler {
	return &DashboardHandler{service: s, pages: pages}
}

// respond re-renders the dashboard with the outcome of one action shown in
// its section.
func (h *DashboardHandler) respond(c *gin.Context, sess *session.Session, section string, err error, success string) {
	status, notice := http.StatusOK, successNotice(success)
	if err != nil {
		status, notice = noticeForError(err)
	}
	h.pages.Dashboard(c, sess, status, "", map[string]*Notice{section: notice})
}

func (h *DashboardHandler) AddUser(c *gin.Context) {
	var req struct {
		Username string `form:"username"`
		Password string `form:"password"`
		FullName string `form:"full_name"`
	}
	sess, _ := middleware.CurrentSession(c)
	if err := c.ShouldBind(&req); err != nil {
		h.respond(c, sess, SectionAddUser, service.ErrIncompleteForm, "")
		return
	}

	err := h.service.AddUser(c.Request.Context(), sess, req.Username, req.Password, req.FullName)
	h.respond(c, sess, SectionAddUser, err, fmt.Sprintf("User '%s' added successfully!", req.Username))
}

func (h *DashboardHandler) RemoveUser(c *gin.Context) {
	sess, _ := middleware.CurrentSession(c)
	username := c.PostForm("username")

	err := h.service.RemoveUser(c.Request.Context(), sess, username)
	h.respond(c, sess, SectionRemoveUser, err, fmt.Sprintf("User '%s' removed successfully!", username))
}

func (h *DashboardHandler) AddRecord(c *gin.Context) {
	var form service.RecordForm
	sess, _ := middleware.CurrentSession(c)
	if err := c.ShouldBind(&form); err != nil {
		h.respond(c, sess, SectionAddEntry, service.ErrIncompleteForm, "")
		return
	}

	_, err := h.service.AddRecord(c.Request.Context(), sess, form)
	h.respond(c, sess, SectionAddEntry, err, "Entry added!")
}

func (h *DashboardHandler) DeleteRecord(c *gin.Context) {
	sess, _ := middleware.CurrentSession(c)
	index, err := strconv.Atoi(strings.TrimSpace(c.PostForm("index")))
	if err != nil {
		// out of range for any table; the service still reports an empty one
		index = -1
	}

	err = h.service.DeleteRecord(c.Request.Context(), sess, index)
	h.respond(c, sess, SectionDelete, err, "Entry deleted!")
}

func (h *DashboardHandler) ClearRecords(c *gin.Context) {
	sess, _ := middleware.CurrentSession(c)

	err := h.service.ClearRecords(c.Request.Context(), sess)
	h.respond(c, sess, SectionClear, err, "Data cleared.")
}

func (h *DashboardHandler) ExportAll(c *gin.Context) {
	sess, _ := middleware.CurrentSession(c)

	buf, err := h.service.ExportAll(sess)
	if err != nil {
		h.respond(c, sess, SectionClear, err, "")
		return
	}
	sendCSV(c, service.AllDataFileName, buf)
}

func (h *DashboardHandler) ExportMine(c *gin.Context) {
	sess, _ := middleware.CurrentSession(c)

	buf, fileName, err := h.service.ExportUserRecords(sess)
	if err != nil {
		h.respond(c, sess, SectionRecords, err, "")
		return
	}
	sendCSV(c, fileName, buf)
}

func sendCSV(c *gin.Context, fileName string, buf *bytes.Buffer) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": fileName}))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// RegisterDashboardRoutes registers dashboard routes
func (h *DashboardHandler) RegisterDashboardRoutes(r gin.IRouter, loginMW gin.HandlerFunc, adminMW gin.HandlerFunc) {
	r.GET("/export", loginMW, h.ExportMine)

	adminRoutes := r.Group("/admin")
	adminRoutes.Use(loginMW)
	adminRoutes.Use(adminMW)
	{
		adminRoutes.POST("/records", h.AddRecord)
		adminRoutes.POST("/records/delete", h.DeleteRecord)
		adminRoutes.POST("/records/clear", h.ClearRecords)
		adminRoutes.GET("/records/export", h.ExportAll)
		adminRoutes.POST("/users", h.AddUser)
		adminRoutes.POST("/users/remove", h.RemoveUser)
	}
}
