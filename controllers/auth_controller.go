package controllers

import (
	"log"
	"net/http"

	"backend/config"
	"backend/middlewares"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const stateCookieName = "ft_oauth_state"

// AuthController drives the redirect-based OAuth flows and the session
// surface around them.
type AuthController struct {
	cfg        *config.Config
	strategies map[string]services.Strategy
	identity   *services.IdentityService
}

func NewAuthController(cfg *config.Config, identity *services.IdentityService, strategies ...services.Strategy) *AuthController {
	byName := make(map[string]services.Strategy, len(strategies))
	for _, s := range strategies {
		byName[s.Name()] = s
	}
	return &AuthController{cfg: cfg, strategies: byName, identity: identity}
}

// GetProviders reports which providers hold real credentials.
// GET /api/auth/providers
func (h *AuthController) GetProviders(c *gin.Context) {
	out := gin.H{}
	for name, s := range h.strategies {
		out[name] = gin.H{
			"configured": s.Configured(),
			"loginUrl":   "/auth/" + name,
		}
	}
	c.JSON(http.StatusOK, out)
}

// Authorize starts the authorization-code flow for one provider.
// GET /auth/:provider
func (h *AuthController) Authorize(c *gin.Context) {
	strategy, ok := h.strategyFor(c)
	if !ok {
		return
	}

	state := uuid.NewString()
	c.SetCookie(stateCookieName, state, 600, "/", "", false, true)
	c.Redirect(http.StatusFound, strategy.AuthCodeURL(state))
}

// Callback finishes the flow: validates state, exchanges the code,
// records the login, and hands the browser back to the frontend with a
// fresh session cookie.
// GET /auth/:provider/callback
func (h *AuthController) Callback(c *gin.Context) {
	strategy, ok := h.strategyFor(c)
	if !ok {
		return
	}

	if errParam := c.Query("error"); errParam != "" {
		c.Redirect(http.StatusFound, h.cfg.FrontendOrigin+"/?error="+errParam)
		return
	}

	expectedState, err := c.Cookie(stateCookieName)
	c.SetCookie(stateCookieName, "", -1, "/", "", false, true)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		c.Redirect(http.StatusFound, h.cfg.FrontendOrigin+"/?error=state_mismatch")
		return
	}

	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusFound, h.cfg.FrontendOrigin+"/?error=missing_code")
		return
	}

	profile, token, err := strategy.Authenticate(c.Request.Context(), code)
	if err != nil {
		log.Printf("%s authentication failed: %v", strategy.Name(), err)
		c.Redirect(http.StatusFound, h.cfg.FrontendOrigin+"/?error=auth_failed")
		return
	}

	if err := h.identity.RecordLogin(profile); err != nil {
		log.Printf("failed to record login: %v", err)
	}
	if strategy.Name() == "google" {
		if err := h.identity.UpsertConnection(profile.ID, "google_fit", token, profile.Email, profile.Username); err != nil {
			log.Printf("failed to upsert google_fit connection: %v", err)
		}
	}

	session, err := utils.GenerateSessionToken(profile, h.cfg.SessionSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session_error", "message": "could not create session"})
		return
	}
	c.SetCookie(utils.SessionCookieName, session, 72*3600, "/", "", false, true)
	c.Redirect(http.StatusFound, h.cfg.FrontendOrigin)
}

// GetCurrentUser answers anonymous callers with a null user and never
// touches the login counters.
// GET /api/user
func (h *AuthController) GetCurrentUser(c *gin.Context) {
	profile := middlewares.SessionProfile(c, h.cfg.SessionSecret)
	if profile == nil {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": profile})
}

// Logout destroys the session cookie.
// POST /logout
func (h *AuthController) Logout(c *gin.Context) {
	c.SetCookie(utils.SessionCookieName, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

func (h *AuthController) strategyFor(c *gin.Context) (services.Strategy, bool) {
	name := c.Param("provider")
	strategy, ok := h.strategies[name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown_provider", "message": "unknown provider: " + name})
		return nil, false
	}
	if !strategy.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "provider_not_configured",
			"message": name + " login is not configured on this server",
		})
		return nil, false
	}
	return strategy, true
}
