package devserver

import (
	"net/http"
	"time"

	"locotranz/internal/domain"
	"locotranz/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// Login authenticates by email and returns the session record with a fresh
// bearer token, the same shape the hosted backend hands the pages.
func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	user, hash, err := s.Users.FindByEmail(utils.TrimOrEmpty(req.Email))
	if err != nil {
		if domain.IsNotFound(err) {
			respondError(c, http.StatusUnauthorized, "invalid email or password", nil)
			return
		}
		respondDomainError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "invalid email or password", nil)
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": int64(user.ID),
		"role":    user.Role,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.JWTSecret)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to create token", err)
		return
	}

	user.AccessToken = signed
	utils.LogEvent(GetRequestID(c), "auth", "login", "user_id="+user.ID.String())
	c.JSON(http.StatusOK, user)
}

// Register creates an account. The requested role is honored so the admin
// signup page works against this server; anything unrecognized becomes a
// plain user.
func (s *Server) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	email := utils.TrimOrEmpty(req.Email)
	if email == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, "email and password required", nil)
		return
	}
	name := utils.TrimOrEmpty(req.Name)
	if name == "" {
		name = utils.UsernameFromEmail(email)
	}
	role := req.Role
	if role != domain.RoleAdmin {
		role = domain.RoleUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to hash password", err)
		return
	}

	user, err := s.Users.CreateUser(name, utils.TrimOrEmpty(req.FullName), email, string(hash), role)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.LogEvent(GetRequestID(c), "auth", "register", "user_id="+user.ID.String())
	c.JSON(http.StatusCreated, user)
}
