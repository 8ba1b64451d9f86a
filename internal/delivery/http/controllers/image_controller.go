package controllers

import (
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"bitevents/internal/delivery/http/helpers"
	"bitevents/internal/delivery/http/middleware"
	"bitevents/internal/domain"
)

// maxImageBytes caps a single uploaded image at 5 MiB.
const maxImageBytes = 5 << 20

type ImageController struct {
	Logger  *slog.Logger
	Service domain.EventImageService
}

func NewImageController(logger *slog.Logger, svc domain.EventImageService) *ImageController {
	return &ImageController{
		Logger:  logger,
		Service: svc,
	}
}

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// UploadImage godoc
// @Summary Upload an event image
// @Description Accepts a multipart form with an "image" file field. The first image uploaded for an event becomes its primary image. Only the event's organizer may upload.
// @Tags images
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param image formData file true "Image file (jpg, jpeg, png, webp; max 5 MiB)"
// @Success 201 {object} helpers.APIResponse "data contains the stored image"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/images [post]
func (c *ImageController) UploadImage(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "could not parse multipart form, image may exceed the 5 MiB limit")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing image file field")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "unsupported image type, use jpg, jpeg, png, or webp")
		return
	}
	data, err := io.ReadAll(file)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "could not read image file")
		return
	}

	image, err := c.Service.AddImage(r.Context(), eventID, userID, header.Filename, data)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, image)
}

// ListImages returns the images of an event, primary image first.
func (c *ImageController) ListImages(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	images, err := c.Service.ListByEvent(r.Context(), eventID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if images == nil {
		images = []*domain.EventImage{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, images)
}

// SetPrimaryImage marks one image as the event's primary image, clearing the
// previous one.
func (c *ImageController) SetPrimaryImage(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	imageID, ok := pathUUID(w, r, "imageID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.SetPrimary(r.Context(), eventID, imageID, userID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "primary image updated"})
}

// DeleteImage removes an event image and its stored file.
func (c *ImageController) DeleteImage(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	imageID, ok := pathUUID(w, r, "imageID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.DeleteImage(r.Context(), eventID, imageID, userID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "image deleted"})
}
