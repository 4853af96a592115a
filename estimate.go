package main

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lg/smartbite-go-api/internal/session"
	"lg/smartbite-go-api/internal/vision"
)

// maxImageBytes caps meal photo uploads.
const maxImageBytes = 10 << 20

// estimateMeal handles POST /api/meals/estimate.
// Accepts a multipart form with an "image" file and a "name" label, asks the
// vision model for a calorie estimate and logs the result as a meal. A failed
// estimate returns 502 and logs nothing.
func (h *Handler) estimateMeal(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		apiError(c, http.StatusBadRequest, "name is required")
		return
	}
	img, ok := readImage(c)
	if !ok {
		return
	}

	h.withSession(c, func(s *session.Session) {
		meal, err := s.AddEstimatedMeal(c.Request.Context(), h.estimator, img, name)
		if err != nil {
			sessionError(c, err, "failed to save meal")
			return
		}
		c.JSON(http.StatusCreated, meal)
	})
}

// readImage pulls the "image" file out of the multipart form. On failure it
// writes the error response and returns false.
func readImage(c *gin.Context) (vision.Image, bool) {
	fh, err := c.FormFile("image")
	if err != nil {
		apiError(c, http.StatusBadRequest, "image is required")
		return vision.Image{}, false
	}
	if fh.Size > maxImageBytes {
		apiError(c, http.StatusBadRequest, "image must be 10 MB or smaller")
		return vision.Image{}, false
	}
	f, err := fh.Open()
	if err != nil {
		apiError(c, http.StatusBadRequest, "unreadable image")
		return vision.Image{}, false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes))
	if err != nil || len(data) == 0 {
		apiError(c, http.StatusBadRequest, "unreadable image")
		return vision.Image{}, false
	}

	return sniffImage(c, data)
}

// decodeImage turns a data URL from a JSON body into an Image, with the same
// limits as an uploaded file.
func decodeImage(c *gin.Context, dataURL string) (vision.Image, bool) {
	img, err := vision.ParseDataURL(dataURL)
	if err != nil || len(img.Data) == 0 {
		apiError(c, http.StatusBadRequest, "image must be a base64 data URL")
		return vision.Image{}, false
	}
	if len(img.Data) > maxImageBytes {
		apiError(c, http.StatusBadRequest, "image must be 10 MB or smaller")
		return vision.Image{}, false
	}
	return sniffImage(c, img.Data)
}

// sniffImage checks data really is an image; the declared type is not trusted.
func sniffImage(c *gin.Context, data []byte) (vision.Image, bool) {
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		apiError(c, http.StatusBadRequest, "file is not an image")
		return vision.Image{}, false
	}
	return vision.Image{Data: data, MIMEType: mime}, true
}

// getImage serves the photo stored with a meal.
// GET /api/images/:ref.
func (h *Handler) getImage(c *gin.Context) {
	ref := c.Param("ref")
	h.withSession(c, func(s *session.Session) {
		img, found, err := s.Image(c.Request.Context(), ref)
		if err != nil {
			sessionError(c, err, "failed to load image")
			return
		}
		if !found {
			apiError(c, http.StatusNotFound, "image not found")
			return
		}
		c.Data(http.StatusOK, img.MIMEType, img.Data)
	})
}
