package handler

import (
	"net/http"

	"github.com/ameen01/Bad-Trade/internal/middleware"
	"github.com/ameen01/Bad-Trade/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles the login page and login state transitions
type AuthHandler struct {
	service service.AuthService
	pages   *Pages
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService, pages *Pages) *AuthHandler {
	return &AuthHandler{service: s, pages: pages}
}

// Index shows the login form to logged out sessions and the dashboard otherwise
func (h *AuthHandler) Index(c *gin.Context) {
	sess, _ := middleware.CurrentSession(c)
	if !sess.LoggedIn {
		h.pages.Login(c, http.StatusOK, "", nil)
		return
	}
	h.pages.Dashboard(c, sess, http.StatusOK, c.Query("entry_user"), nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `form:"username"`
		Password string `form:"password"`
	}
	if err := c.ShouldBind(&req); err != nil {
		h.pages.Login(c, http.StatusBadRequest, "", errorNotice("Invalid request."))
		return
	}

	sess, _ := middleware.CurrentSession(c)
	fullName, err := h.service.Login(sess, req.Username, req.Password)
	if err != nil {
		status, notice := noticeForError(err)
		h.pages.Login(c, status, req.Username, notice)
		return
	}

	h.pages.Dashboard(c, sess, http.StatusOK, "", map[string]*Notice{
		SectionWelcome: successNotice("Welcome, " + fullName + "!"),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sess, _ := middleware.CurrentSession(c)
	h.service.Logout(sess)
	c.Redirect(http.StatusSeeOther, "/")
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(r gin.IRoutes) {
	r.GET("/", h.Index)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
}
