package httpserver

import (
	"errors"
	"net/http"

	"glowcart/internal/domain"
	customersvc "glowcart/internal/service/customer"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Customer     *domain.Profile `json:"customer"`
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	ExpiresIn    int             `json:"expiresIn"`
}

func (h *handlers) signup(c *gin.Context) {
	var req customersvc.SignupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "malformed request body")
		return
	}
	p, err := h.deps.CustomerSvc.Signup(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, customersvc.ErrEmailTaken) {
			respondError(c, http.StatusConflict, "email already registered")
			return
		}
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"customer": p})
}

func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "malformed request body")
		return
	}
	p, access, refresh, err := h.deps.CustomerSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, customersvc.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.logger.Printf("httpserver: login error=%v", err)
		respondError(c, http.StatusInternalServerError, "login failed")
		return
	}
	c.JSON(http.StatusOK, loginResponse{
		Customer:     p,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    h.deps.CustomerSvc.AccessTTLSeconds(),
	})
}

func (h *handlers) logout(c *gin.Context) {
	token := bearerToken(c.GetHeader("Authorization"))
	if err := h.deps.CustomerSvc.Logout(c.Request.Context(), token); err != nil {
		h.logger.Printf("httpserver: logout error=%v", err)
		respondError(c, http.StatusInternalServerError, "logout failed")
		return
	}
	// The session's optimistic state dies with the login.
	h.dropController(currentUserID(c))
	c.Status(http.StatusNoContent)
}

func (h *handlers) getProfile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"customer": currentProfile(c)})
}

type updateProfileRequest struct {
	FullName *string `json:"fullName"`
}

func (h *handlers) updateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "malformed request body")
		return
	}
	p, err := h.deps.CustomerSvc.UpdateProfile(c.Request.Context(), currentUserID(c), req.FullName)
	if err != nil {
		h.logger.Printf("httpserver: update profile error=%v", err)
		respondError(c, http.StatusInternalServerError, "could not update profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": p})
}

func (h *handlers) deleteProfile(c *gin.Context) {
	userID := currentUserID(c)
	if err := h.deps.CustomerSvc.DeleteProfile(c.Request.Context(), userID); err != nil {
		h.logger.Printf("httpserver: delete profile error=%v", err)
		respondError(c, http.StatusInternalServerError, "could not delete account")
		return
	}
	h.dropController(userID)
	c.Status(http.StatusNoContent)
}
