package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"item-store/internal/auth"
	"item-store/internal/domain"
	"item-store/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users      service.UserService
	items      service.ItemService
	tokens     *auth.TokenManager
	logger     *logrus.Logger
	production bool
}

func NewHandler(users service.UserService, items service.ItemService, tokens *auth.TokenManager, logger *logrus.Logger, production bool) *Handler {
	return &Handler{
		users:      users,
		items:      items,
		tokens:     tokens,
		logger:     logger,
		production: production,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.Use(requestLogger(h.logger))

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.register)
			authGroup.POST("/login", h.login)
			authGroup.GET("/me", h.authRequired(), h.me)
		}

		items := api.Group("/items")
		{
			items.GET("", h.listItems)
			items.GET("/my", h.authRequired(), h.myItems)
			items.GET("/:id", h.getItem)
			items.POST("", h.authRequired(), h.createItem)
			items.PUT("/:id", h.authRequired(), h.updateItem)
			items.DELETE("/:id", h.authRequired(), h.deleteItem)
		}

		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
	}
}

type registerRequest struct {
	Username  string `json:"username" validate:"required,alphanum,min=3,max=30"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6,max=100"`
	FirstName string `json:"firstName" validate:"omitempty,min=2,max=50"`
	LastName  string `json:"lastName" validate:"omitempty,min=2,max=50"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, []string{"body: invalid JSON"})
		return
	}
	if violations := checkStruct(req); len(violations) > 0 {
		failValidation(c, violations)
		return
	}

	user, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Username, user.Email)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	respond(c, http.StatusCreated, "user registered", gin.H{
		"user":  userToResponse(user),
		"token": token,
	})
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, []string{"body: invalid JSON"})
		return
	}
	if violations := checkStruct(req); len(violations) > 0 {
		failValidation(c, violations)
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Username, user.Email)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "login successful", gin.H{
		"user":  userToResponse(user),
		"token": token,
	})
}

func (h *Handler) me(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		h.abortWithError(c, errNoToken)
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "profile", gin.H{"user": userToResponse(user)})
}

func (h *Handler) listItems(c *gin.Context) {
	ctx := c.Request.Context()

	if term := c.Query("search"); term != "" {
		items, err := h.items.Search(ctx, term)
		if err != nil {
			h.abortWithError(c, err)
			return
		}
		respond(c, http.StatusOK, "items found", gin.H{"items": itemsToResponse(items)})
		return
	}

	if c.Query("page") != "" || c.Query("limit") != "" {
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil {
			failValidation(c, []string{"page: must be a number"})
			return
		}
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if err != nil {
			failValidation(c, []string{"limit: must be a number"})
			return
		}

		result, err := h.items.ListPage(ctx, page, limit)
		if err != nil {
			h.abortWithError(c, err)
			return
		}
		respond(c, http.StatusOK, "items listed", pageToResponse(result))
		return
	}

	items, err := h.items.List(ctx)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "items listed", gin.H{"items": itemsToResponse(items)})
}

func (h *Handler) myItems(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		h.abortWithError(c, errNoToken)
		return
	}

	items, err := h.items.ListByOwner(c.Request.Context(), claims.UserID)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "items listed", gin.H{"items": itemsToResponse(items)})
}

func (h *Handler) getItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	item, err := h.items.Get(c.Request.Context(), id)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "item found", gin.H{"item": itemToResponse(*item)})
}

type createItemRequest struct {
	Name        string           `json:"name" validate:"required,min=3,max=100"`
	Description string           `json:"description" validate:"omitempty,max=500"`
	Price       *decimal.Decimal `json:"price" validate:"-"`
	Category    string           `json:"category" validate:"omitempty,max=50"`
}

func (h *Handler) createItem(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		h.abortWithError(c, errNoToken)
		return
	}

	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, []string{"body: invalid JSON"})
		return
	}

	violations := checkStruct(req)
	// decimal fields carry their own checks
	if req.Price == nil {
		violations = append(violations, "price: is required")
	} else if req.Price.IsNegative() {
		violations = append(violations, "price: must be greater than or equal to 0")
	}
	if len(violations) > 0 {
		failValidation(c, violations)
		return
	}

	item, err := h.items.Create(c.Request.Context(), service.CreateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
	}, claims.UserID)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	respond(c, http.StatusCreated, "item created", gin.H{"item": itemToResponse(*item)})
}

type updateItemRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=3,max=100"`
	Description *string          `json:"description" validate:"omitempty,max=500"`
	Price       *decimal.Decimal `json:"price" validate:"-"`
	Category    *string          `json:"category" validate:"omitempty,max=50"`
}

func (h *Handler) updateItem(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		h.abortWithError(c, errNoToken)
		return
	}

	id, ok := itemID(c)
	if !ok {
		return
	}

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, []string{"body: invalid JSON"})
		return
	}

	violations := checkStruct(req)
	if req.Price != nil && req.Price.IsNegative() {
		violations = append(violations, "price: must be greater than or equal to 0")
	}
	if len(violations) > 0 {
		failValidation(c, violations)
		return
	}

	item, err := h.items.Update(c.Request.Context(), id, domain.ItemPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
	}, claims.UserID)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "item updated", gin.H{"item": itemToResponse(*item)})
}

func (h *Handler) deleteItem(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		h.abortWithError(c, errNoToken)
		return
	}

	id, ok := itemID(c)
	if !ok {
		return
	}

	if err := h.items.Delete(c.Request.Context(), id, claims.UserID); err != nil {
		h.abortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "item deleted", gin.H{"deleted": id})
}

func itemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		failValidation(c, []string{"id: must be a positive number"})
		return 0, false
	}
	return id, true
}
