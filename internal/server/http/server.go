// Package httpserver exposes the task-keeper API over HTTP. It is the same
// boundary the remote client consumes, backed directly by the persistence
// layer.
package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	pkgcrypto "github.com/and161185/task-keeper/internal/crypto"
	"github.com/and161185/task-keeper/internal/ident"
	"github.com/and161185/task-keeper/internal/model"
	"github.com/and161185/task-keeper/internal/storage"
	"github.com/and161185/task-keeper/internal/validation"
)

// Server holds the handler dependencies.
type Server struct {
	users   *storage.UserStore
	creds   *storage.CredentialStore
	todos   *storage.TodoStore
	signKey []byte
	ttl     time.Duration
	log     *zap.Logger
	now     func() time.Time
	newID   func() string
}

// New constructs the API server.
func New(users *storage.UserStore, creds *storage.CredentialStore, todos *storage.TodoStore, signKey []byte, ttl time.Duration, log *zap.Logger) *Server {
	return &Server{
		users:   users,
		creds:   creds,
		todos:   todos,
		signKey: signKey,
		ttl:     ttl,
		log:     log,
		now:     time.Now,
		newID:   ident.New,
	}
}

// Router builds the gin engine with middleware and routes.
func (s *Server) Router(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(Recover(s.log), Logging(s.log))
	if len(allowedOrigins) > 0 {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = allowedOrigins
		cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
		r.Use(cors.New(cfg))
	}

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.POST("/auth/register", s.register)
	r.POST("/auth/login", s.login)

	authed := r.Group("/", Auth(s.signKey))
	authed.GET("/users/search", s.searchUsers)
	authed.GET("/users/:id", s.userByID)
	authed.PUT("/users/:id", s.updateUser)
	authed.GET("/todos/user/:id", s.todosByUser)
	authed.POST("/todos", s.createTodo)
	authed.PUT("/todos/:id", s.updateTodo)
	authed.DELETE("/todos/:id", s.deleteTodo)
	return r
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

func (s *Server) register(c *gin.Context) {
	var su model.Signup
	if err := c.ShouldBindJSON(&su); err != nil {
		fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if verrs := validation.ValidateSignup(su.Username, su.Email, su.Password, su.FirstName, su.LastName); len(verrs) > 0 {
		fail(c, http.StatusBadRequest, firstMessage(verrs))
		return
	}
	if _, taken := s.users.ByUsername(su.Username); taken {
		fail(c, http.StatusConflict, "username already taken")
		return
	}

	hash, err := pkgcrypto.HashPassword(su.Password)
	if err != nil {
		fail(c, http.StatusInternalServerError, "internal")
		return
	}
	now := s.now()
	u := model.User{
		ID:        s.newID(),
		Username:  su.Username,
		Email:     su.Email,
		FirstName: su.FirstName,
		LastName:  su.LastName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.users.Set(u)
	s.creds.Set(u.ID, hash)

	resp, err := s.issue(u)
	if err != nil {
		fail(c, http.StatusInternalServerError, "internal")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (s *Server) login(c *gin.Context) {
	var creds model.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	u, ok := s.users.ByUsername(creds.Username)
	if !ok {
		fail(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	hash, has := s.creds.Get(u.ID)
	if !has || !pkgcrypto.VerifyPassword(creds.Password, hash) {
		// identical body for unknown user and wrong password
		fail(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	resp, err := s.issue(u)
	if err != nil {
		fail(c, http.StatusInternalServerError, "internal")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) userByID(c *gin.Context) {
	id := c.Param("id")
	if id != authedUser(c) {
		fail(c, http.StatusForbidden, "forbidden")
		return
	}
	u, ok := s.users.Get(id)
	if !ok {
		fail(c, http.StatusNotFound, "user not found")
		return
	}
	c.JSON(http.StatusOK, u)
}

func (s *Server) searchUsers(c *gin.Context) {
	q := strings.ToLower(c.Query("q"))
	matched := []model.User{}
	if q != "" {
		for _, u := range s.users.All() {
			if strings.Contains(strings.ToLower(u.Username), q) ||
				strings.Contains(strings.ToLower(u.FirstName), q) ||
				strings.Contains(strings.ToLower(u.LastName), q) {
				matched = append(matched, u)
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"users": matched})
}

func (s *Server) updateUser(c *gin.Context) {
	id := c.Param("id")
	if id != authedUser(c) {
		fail(c, http.StatusForbidden, "forbidden")
		return
	}
	existing, ok := s.users.Get(id)
	if !ok {
		fail(c, http.StatusNotFound, "user not found")
		return
	}
	var in model.User
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	// profile edit: id, username and creation time are immutable
	existing.Email = in.Email
	existing.FirstName = in.FirstName
	existing.LastName = in.LastName
	existing.Image = in.Image
	existing.UpdatedAt = s.now()
	s.users.Set(existing)
	c.JSON(http.StatusOK, existing)
}

func (s *Server) todosByUser(c *gin.Context) {
	id := c.Param("id")
	if id != authedUser(c) {
		fail(c, http.StatusForbidden, "forbidden")
		return
	}
	c.JSON(http.StatusOK, gin.H{"todos": s.todos.Todos(id)})
}

func (s *Server) createTodo(c *gin.Context) {
	var t model.Todo
	if err := c.ShouldBindJSON(&t); err != nil {
		fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if verrs := validation.ValidateTodo(t.Title, t.Description); len(verrs) > 0 {
		fail(c, http.StatusBadRequest, firstMessage(verrs))
		return
	}

	now := s.now()
	t.UserID = authedUser(c) // owner comes from the token, not the payload
	if t.ID == "" {
		t.ID = s.newID()
	}
	if t.Status == "" {
		t.Status = model.StatusPending
	}
	if t.Priority == "" {
		t.Priority = model.PriorityMedium
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	s.todos.Add(t.UserID, t)
	c.JSON(http.StatusCreated, t)
}

func (s *Server) updateTodo(c *gin.Context) {
	userID := authedUser(c)
	todoID := c.Param("id")

	var in model.Todo
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	todos := s.todos.Todos(userID)
	for i := range todos {
		if todos[i].ID != todoID {
			continue
		}
		in.ID = todoID
		in.UserID = userID
		in.CreatedAt = todos[i].CreatedAt
		in.UpdatedAt = s.now()
		todos[i] = in
		s.todos.SetTodos(userID, todos)
		c.JSON(http.StatusOK, in)
		return
	}
	fail(c, http.StatusNotFound, "todo not found")
}

func (s *Server) deleteTodo(c *gin.Context) {
	s.todos.Delete(authedUser(c), c.Param("id"))
	c.Status(http.StatusNoContent)
}

// issue creates a signed HS256 token for the user.
func (s *Server) issue(u model.User) (model.AuthResponse, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   u.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signKey)
	if err != nil {
		return model.AuthResponse{}, err
	}
	return model.AuthResponse{User: u, Token: signed}, nil
}

func firstMessage(verrs validation.Errors) string {
	for _, msg := range verrs {
		return msg
	}
	return "validation failed"
}
