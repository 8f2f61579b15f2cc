package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/nhoyhub/esignhub/internal/domain/errors"
	"github.com/nhoyhub/esignhub/internal/domain/model"
	"github.com/nhoyhub/esignhub/internal/domain/repository"
	"github.com/nhoyhub/esignhub/internal/server/http/dto"
	"github.com/nhoyhub/esignhub/internal/server/http/middleware"
	"github.com/nhoyhub/esignhub/internal/usecase"
)

// OrderHandler manages order CRUD endpoints.
type OrderHandler struct {
	facade      OrderFacade
	adminSecret string
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade, adminSecret string) *OrderHandler {
	return &OrderHandler{facade: facade, adminSecret: adminSecret}
}

// Create handles POST /orders. Public: the bot submits here on behalf of users.
func (h *OrderHandler) Create(c *gin.Context) {
	name := c.PostForm("name")
	udid := c.PostForm("udid")
	if name == "" || udid == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "name and udid are required"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "image is required"})
		return
	}
	imageName, image, err := readUpload(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "unreadable image"})
		return
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), name, udid, imageName, image)
	if err != nil {
		if errors.Is(err, domainErrors.ErrEmptyImage) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "empty image"})
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// List handles GET /orders with status/q/page/page_size/sort query params.
func (h *OrderHandler) List(c *gin.Context) {
	filter := repository.OrderFilter{
		Query:   c.Query("q"),
		SortAsc: c.Query("sort") == "id",
	}

	if raw := c.Query("status"); raw != "" {
		status := model.OrderStatus(raw)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "unknown status filter"})
			return
		}
		filter.Status = &status
	}

	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "0"))

	adminView := middleware.HasAdminToken(c, h.adminSecret)
	page, err := h.facade.Orders(c.Request.Context(), filter, adminView)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	items := make([]dto.OrderResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, toOrderResponse(&page.Items[i]))
	}
	c.JSON(http.StatusOK, dto.PageResponse{Items: items, Total: page.Total, Page: page.Page, PageSize: page.PageSize})
}

// Get handles GET /orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	order, err := h.facade.Order(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "order not found"})
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// Update handles PUT /orders/:id. Admin only; status cannot change here.
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var params usecase.UpdateParams
	if v, set := c.GetPostForm("name"); set {
		params.Name = &v
	}
	if v, set := c.GetPostForm("udid"); set {
		params.UDID = &v
	}
	if v, set := c.GetPostForm("download_link"); set {
		params.DownloadLink = &v
	}
	if file, err := c.FormFile("image"); err == nil {
		imageName, image, err := readUpload(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "unreadable image"})
			return
		}
		params.Image = image
		params.ImageName = imageName
	}

	order, err := h.facade.UpdateOrder(c.Request.Context(), id, params)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "order not found"})
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// UpdateStatus handles PUT /orders/:id/status. The only decision endpoint.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req dto.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "status is required"})
		return
	}

	order, err := h.facade.DecideOrder(c.Request.Context(), id, model.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "status must be approved or rejected"})
		case errors.Is(err, domainErrors.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "order not found"})
		case errors.Is(err, domainErrors.ErrOrderDecided):
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "order already decided"})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// Delete handles DELETE /orders/:id.
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	if err := h.facade.DeleteOrder(c.Request.Context(), id); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "order not found"})
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "order deleted"})
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:           order.ID,
		Name:         order.Name,
		UDID:         order.UDID,
		ImageURL:     order.ImageURL,
		Status:       string(order.Status),
		DownloadLink: order.DownloadLink,
		Price:        order.Price,
		CreatedAt:    order.CreatedAt,
	}
}
