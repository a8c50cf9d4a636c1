package api

import (
	"net/http"

	"fitcoach/coaching-api/internal/service"

	"github.com/gin-gonic/gin"
)

// MediaHandler serves the image endpoints mounted under every resource
// that carries an image. The resource name comes from the route group.
type MediaHandler struct {
	mediaService service.MediaService
}

func NewMediaHandler(mediaService service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

type UploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type ConfirmImageRequest struct {
	ObjectKey    string `json:"objectKey" binding:"required"`
	ThumbnailKey string `json:"thumbnailKey"`
}

// RequestUploadURL godoc
// @Summary Presigned URL for uploading an image
// @Tags Imagenes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entity ID"
// @Param body body UploadURLRequest true "Content type of the image"
// @Success 200 {object} service.UploadURLResponse
// @Failure 503 {object} gin.H "No bucket configured"
// @Router /{resource}/{id}/imagen/upload-url [post]
func (h *MediaHandler) RequestUploadURL(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UploadURLRequest
		if !bindJSON(c, &req) {
			return
		}
		resp, err := h.mediaService.RequestUploadURL(c.Request.Context(), resource, c.Param("id"), req.ContentType)
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// ConfirmUpload godoc
// @Summary Attach an uploaded image to the entity
// @Tags Imagenes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entity ID"
// @Param body body ConfirmImageRequest true "Keys returned by upload-url"
// @Success 200 {object} service.ImageResponse
// @Router /{resource}/{id}/imagen [put]
func (h *MediaHandler) ConfirmUpload(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ConfirmImageRequest
		if !bindJSON(c, &req) {
			return
		}
		resp, err := h.mediaService.ConfirmUpload(c.Request.Context(), resource, c.Param("id"), req.ObjectKey, req.ThumbnailKey)
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// mount adds both image routes to a resource group.
func (h *MediaHandler) mount(group *gin.RouterGroup, resource string) {
	group.POST("/:id/imagen/upload-url", h.RequestUploadURL(resource))
	group.PUT("/:id/imagen", h.ConfirmUpload(resource))
}
