package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lg/smartbite-go-api/internal/energy"
	"lg/smartbite-go-api/internal/session"
)

// getProfile returns the caller's computed profile.
// GET /api/profile. 404 until a profile has been calculated.
func (h *Handler) getProfile(c *gin.Context) {
	h.withSession(c, func(s *session.Session) {
		p := s.Profile()
		if p == nil {
			apiError(c, http.StatusNotFound, "profile not found")
			return
		}
		c.JSON(http.StatusOK, p)
	})
}

// putProfile recalculates the profile from biometric inputs and replaces the
// stored one.
// PUT /api/profile. Body: energy.BiometricInput.
func (h *Handler) putProfile(c *gin.Context) {
	var body energy.BiometricInput
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	h.withSession(c, func(s *session.Session) {
		p, err := s.Recalculate(c.Request.Context(), body)
		if err != nil {
			sessionError(c, err, "failed to save profile")
			return
		}
		c.JSON(http.StatusOK, p)
	})
}

// patchGoal is the quick goal toggle: only the goal and calorie budget change.
// PATCH /api/profile/goal. Body: {"goal": "loss"}.
func (h *Handler) patchGoal(c *gin.Context) {
	var body goalRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	h.withSession(c, func(s *session.Session) {
		p, err := s.SetGoal(c.Request.Context(), body.Goal)
		if err != nil {
			sessionError(c, err, "failed to save profile")
			return
		}
		c.JSON(http.StatusOK, p)
	})
}
