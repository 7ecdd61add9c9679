package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"supply-service/internal/domain"
	"supply-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

const listCacheTTL = 10 * time.Second

type Handler struct {
	service *services.OrderService
	rdb     *redis.Client
}

func NewHandler(s *services.OrderService, rdb *redis.Client) *Handler {
	return &Handler{service: s, rdb: rdb}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/orders")
	api.POST("", h.CreateOrder)
	api.GET("", h.ListOrders)
	api.GET("/:id", h.GetOrder)
	api.PATCH("/:id/status", h.UpdateStatus)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.service.PlaceOrder(c.Request.Context(), req.ItemName, req.Quantity)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	h.invalidateListCache(c.Request.Context())
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) ListOrders(c *gin.Context) {
	statusFilter := c.Query("status")
	ctx := c.Request.Context()
	cacheKey := listCacheKey(statusFilter)

	if h.rdb != nil {
		if b, err := h.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var orders []domain.Order
			if err := json.Unmarshal([]byte(b), &orders); err == nil {
				c.JSON(http.StatusOK, orders)
				return
			}
		}
	}

	orders, err := h.service.ListOrders(ctx, statusFilter)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}

	if h.rdb != nil {
		if data, err := json.Marshal(orders); err == nil {
			h.rdb.Set(ctx, cacheKey, data, listCacheTTL)
		}
	}

	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	order, err := h.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	h.invalidateListCache(c.Request.Context())
	c.JSON(http.StatusOK, order)
}

func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "order id must be a positive integer")
		return 0, false
	}
	return id, true
}

// respondServiceError translates the service's error kinds into status
// codes. Anything unrecognized is logged in full and surfaced as a
// generic 500.
func (h *Handler) respondServiceError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	var statusErr *domain.InvalidStatusError
	var notFoundErr *domain.NotFoundError

	switch {
	case errors.As(err, &validationErr), errors.As(err, &statusErr):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &notFoundErr):
		respondError(c, http.StatusNotFound, err.Error())
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("unexpected error")
		respondError(c, http.StatusInternalServerError, "an unexpected error occurred")
	}
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"timestamp": time.Now().Format(time.RFC3339),
		"status":    status,
		"error":     message,
	})
}

func listCacheKey(statusFilter string) string {
	if statusFilter == "" {
		return "orders:all"
	}
	return "orders:status:" + strings.ToUpper(statusFilter)
}

func (h *Handler) invalidateListCache(ctx context.Context) {
	if h.rdb == nil {
		return
	}
	keys := []string{"orders:all"}
	for _, s := range domain.AllowedStatuses() {
		keys = append(keys, "orders:status:"+s)
	}
	h.rdb.Del(ctx, keys...)
}
