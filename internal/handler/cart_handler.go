package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/coaching-conflict-api/internal/conflict"
	"github.com/noah-isme/coaching-conflict-api/internal/dto"
	"github.com/noah-isme/coaching-conflict-api/internal/models"
	appErrors "github.com/noah-isme/coaching-conflict-api/pkg/errors"
	"github.com/noah-isme/coaching-conflict-api/pkg/response"
)

type cartService interface {
	List(ctx context.Context, studentID string) (*dto.CartView, error)
	Get(ctx context.Context, studentID, itemID string) (*models.CartItem, error)
	Add(ctx context.Context, studentID string, req dto.AddCartItemRequest) (*models.CartItem, conflict.CheckResult, error)
	Remove(ctx context.Context, studentID, itemID string) error
}

// CartHandler exposes the student cart.
type CartHandler struct {
	service cartService
}

// NewCartHandler constructs the cart handler.
func NewCartHandler(service cartService) *CartHandler {
	return &CartHandler{service: service}
}

// addedItem is returned when an item is accepted into the cart.
type addedItem struct {
	Item         *models.CartItem `json:"item"`
	InfoMessages []string         `json:"infoMessages"`
}

// List godoc
// @Summary List the student's cart with its current validation
// @Tags Cart
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{studentId}/cart [get]
func (h *CartHandler) List(c *gin.Context) {
	studentID := requireParam(c, "studentId")
	if studentID == "" {
		return
	}
	view, err := h.service.List(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Get godoc
// @Summary Get a single cart item
// @Tags Cart
// @Produce json
// @Param studentId path string true "Student ID"
// @Param itemId path string true "Cart item ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{studentId}/cart/{itemId} [get]
func (h *CartHandler) Get(c *gin.Context) {
	studentID := requireParam(c, "studentId")
	if studentID == "" {
		return
	}
	itemID := requireParam(c, "itemId")
	if itemID == "" {
		return
	}
	item, err := h.service.Get(c.Request.Context(), studentID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// Add godoc
// @Summary Add an offering to the cart
// @Description Coaching batches are rejected with 409 when they clash; the conflicts are returned in data.
// @Tags Cart
// @Accept json
// @Produce json
// @Param studentId path string true "Student ID"
// @Param payload body dto.AddCartItemRequest true "Cart item"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /students/{studentId}/cart [post]
func (h *CartHandler) Add(c *gin.Context) {
	studentID := requireParam(c, "studentId")
	if studentID == "" {
		return
	}
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid cart item payload"))
		return
	}
	item, result, err := h.service.Add(c.Request.Context(), studentID, req)
	if err != nil {
		var blocked *conflict.BlockedError
		if errors.As(err, &blocked) {
			response.ErrorWithData(c, err, blocked.Result)
			return
		}
		response.Error(c, err)
		return
	}
	infos := result.InfoMessages
	if infos == nil {
		infos = []string{}
	}
	response.Created(c, addedItem{Item: item, InfoMessages: infos})
}

// Remove godoc
// @Summary Remove an item from the cart
// @Tags Cart
// @Param studentId path string true "Student ID"
// @Param itemId path string true "Cart item ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /students/{studentId}/cart/{itemId} [delete]
func (h *CartHandler) Remove(c *gin.Context) {
	studentID := requireParam(c, "studentId")
	if studentID == "" {
		return
	}
	itemID := requireParam(c, "itemId")
	if itemID == "" {
		return
	}
	if err := h.service.Remove(c.Request.Context(), studentID, itemID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
