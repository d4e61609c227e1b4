package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"oraculo/config"
	userRepo "oraculo/database/repository/user"
	"oraculo/middleware"
	"oraculo/models"
	"oraculo/utils"
)

const oauthStateKey = "oauthState"

// AuthHandler runs the Google OAuth flow for the calendar owner and manages
// the cookie session.
type AuthHandler struct {
	Users userRepo.UserRepository
	OAuth *oauth2.Config
}

func NewAuthHandler(users userRepo.UserRepository, oauthCfg *oauth2.Config) *AuthHandler {
	return &AuthHandler{Users: users, OAuth: oauthCfg}
}

// GoogleLoginHandler redirects to the consent screen. Offline access plus a
// forced consent prompt guarantee a refresh token on every sign-in.
func (h *AuthHandler) GoogleLoginHandler(c *gin.Context) {
	state := uuid.New().String()

	session := sessions.Default(c)
	session.Set(oauthStateKey, state)
	if err := session.Save(); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Erro na autenticação", err.Error())
		return
	}

	url := h.OAuth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
	c.Redirect(http.StatusFound, url)
}

// GoogleCallbackHandler exchanges the authorization code, upserts the
// calendar owner with the fresh refresh token and starts the session.
func (h *AuthHandler) GoogleCallbackHandler(c *gin.Context) {
	session := sessions.Default(c)

	state, _ := session.Get(oauthStateKey).(string)
	if state == "" || c.Query("state") != state {
		utils.JSONError(c, http.StatusBadRequest, "Erro na autenticação", "state inválido")
		return
	}
	session.Delete(oauthStateKey)

	code := c.Query("code")
	if code == "" {
		utils.JSONError(c, http.StatusBadRequest, "Erro na autenticação", "código de autorização ausente")
		return
	}

	ctx := c.Request.Context()
	token, err := h.OAuth.Exchange(ctx, code)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Erro na autenticação", err.Error())
		return
	}

	infoSvc, err := goauth2.NewService(ctx, option.WithTokenSource(h.OAuth.TokenSource(ctx, token)))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Erro na autenticação", err.Error())
		return
	}
	info, err := infoSvc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Erro na autenticação", err.Error())
		return
	}

	user, err := h.Users.UpsertByGoogleID(ctx, models.CalendarUser{
		GoogleID:     info.Id,
		Email:        info.Email,
		Name:         info.Name,
		RefreshToken: token.RefreshToken,
	})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Erro na autenticação", err.Error())
		return
	}

	session.Set(middleware.SessionKeyUserID, user.ID)
	session.Set(middleware.SessionKeyUserName, user.Name)
	session.Set(middleware.SessionKeyUserEmail, user.Email)
	session.Set(middleware.SessionKeyAuthenticated, true)
	if err := session.Save(); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Erro na autenticação", err.Error())
		return
	}

	utils.GetLogger().Info("calendar owner authenticated",
		zap.String("userId", user.ID), zap.String("email", user.Email))

	c.Redirect(http.StatusFound, config.AppConfig.FrontendOrigin+"/?auth=success")
}

// LogoutHandler destroys the session.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{MaxAge: -1, Path: "/"})
	if err := session.Save(); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Erro ao encerrar sessão", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Sessão encerrada."})
}
