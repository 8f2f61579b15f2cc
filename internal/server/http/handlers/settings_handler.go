package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/nhoyhub/esignhub/internal/domain/errors"
	"github.com/nhoyhub/esignhub/internal/server/http/dto"
)

// SettingsHandler manages the placeholder image and gallery slots.
type SettingsHandler struct {
	facade SettingsFacade
}

// NewSettingsHandler constructs SettingsHandler.
func NewSettingsHandler(facade SettingsFacade) *SettingsHandler {
	return &SettingsHandler{facade: facade}
}

// Get handles GET /config.
func (h *SettingsHandler) Get(c *gin.Context) {
	snapshot, err := h.facade.Settings(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// PutPublic handles PUT /config/public.
func (h *SettingsHandler) PutPublic(c *gin.Context) {
	url := c.PostForm("public_image_url")
	if err := h.facade.SetPublicImage(c.Request.Context(), url); err != nil {
		if errors.Is(err, domainErrors.ErrEmptyImageURL) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "image url cannot be empty"})
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "public image updated"})
}

// PutGallery handles PUT /config/esign_image/:n for slots 1 through 5.
func (h *SettingsHandler) PutGallery(c *gin.Context) {
	slot, err := strconv.Atoi(c.Param("n"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "image number must be numeric"})
		return
	}

	url := c.PostForm("image_url")
	if err := h.facade.SetGalleryImage(c.Request.Context(), slot, url); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidGallerySlot):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "image number must be between 1 and 5"})
		case errors.Is(err, domainErrors.ErrEmptyImageURL):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "image url cannot be empty"})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "gallery image updated"})
}
