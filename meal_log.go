package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lg/smartbite-go-api/internal/ledger"
	"lg/smartbite-go-api/internal/session"
	"lg/smartbite-go-api/internal/vision"
)

// getMeals returns the caller's meal log, most recent first.
// GET /api/meals. Returns an empty array (not null) when nothing is logged.
func (h *Handler) getMeals(c *gin.Context) {
	h.withSession(c, func(s *session.Session) {
		c.JSON(http.StatusOK, s.Meals())
	})
}

// createMeal logs a manually entered meal.
// POST /api/meals. Body: {"name": "Oatmeal", "calories": 320, "portion": "1 bowl"},
// plus an optional "image" data URL that is stored like an estimate's photo.
func (h *Handler) createMeal(c *gin.Context) {
	var body createMealRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Calories == nil {
		apiError(c, http.StatusBadRequest, "calories is required")
		return
	}

	var photo *vision.Image
	if body.Image != "" {
		img, ok := decodeImage(c, body.Image)
		if !ok {
			return
		}
		photo = &img
	}

	h.withSession(c, func(s *session.Session) {
		in := ledger.MealInput{
			Name:     body.Name,
			Calories: *body.Calories,
			Portion:  body.Portion,
			Source:   ledger.SourceManual,
		}
		var meal ledger.Meal
		var err error
		if photo != nil {
			meal, err = s.AddMealWithPhoto(c.Request.Context(), in, *photo)
		} else {
			meal, err = s.AddMeal(c.Request.Context(), in)
		}
		if err != nil {
			sessionError(c, err, "failed to save meal")
			return
		}
		c.JSON(http.StatusCreated, meal)
	})
}

// deleteMeal removes a meal. Returns 204 whether or not the id existed.
// DELETE /api/meals/:id.
func (h *Handler) deleteMeal(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid meal id")
		return
	}

	h.withSession(c, func(s *session.Session) {
		if _, err := s.RemoveMeal(c.Request.Context(), id); err != nil {
			sessionError(c, err, "failed to delete meal")
			return
		}
		c.Status(http.StatusNoContent)
	})
}

// getSummary returns the profile, meal log and derived daily metrics.
// GET /api/summary. 409 until a profile has been calculated.
func (h *Handler) getSummary(c *gin.Context) {
	h.withSession(c, func(s *session.Session) {
		sum, err := s.Summary()
		if err != nil {
			sessionError(c, err, "failed to build summary")
			return
		}
		c.JSON(http.StatusOK, sum)
	})
}
