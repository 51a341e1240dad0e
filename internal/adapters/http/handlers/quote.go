package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/inspire-quotes/internal/adapters/http/dto"
	"github.com/jsamuelsen/inspire-quotes/internal/app"
)

// QuoteApp is the application surface the quote handler drives.
type QuoteApp interface {
	State(ctx context.Context) app.ViewState
	Generate(ctx context.Context) (app.ViewState, error)
	Save(ctx context.Context) (app.ViewState, error)
}

// QuoteHandler serves the quote page state and its two actions.
type QuoteHandler struct {
	app QuoteApp
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(quotes QuoteApp) *QuoteHandler {
	return &QuoteHandler{app: quotes}
}

// GetState handles GET /api/v1/state.
//
// @Summary Current page state
// @Tags quotes
// @Produce json
// @Success 200 {object} dto.StateResponse
// @Router /api/v1/state [get]
func (h *QuoteHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FromViewState(h.app.State(c.Request.Context())))
}

// Generate handles POST /api/v1/quotes/generate. Generation failures are
// reported in quoteError with a 200; only gating is an HTTP error.
//
// @Summary Generate a new quote
// @Tags quotes
// @Produce json
// @Success 200 {object} dto.StateResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/quotes/generate [post]
func (h *QuoteHandler) Generate(c *gin.Context) {
	state, err := h.app.Generate(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromViewState(state))
}

// Save handles POST /api/v1/quotes/save. The outcome, including unmet
// preconditions, is reported in saveMessage with a 200.
//
// @Summary Save the current quote
// @Tags quotes
// @Produce json
// @Success 200 {object} dto.StateResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/quotes/save [post]
func (h *QuoteHandler) Save(c *gin.Context) {
	state, err := h.app.Save(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromViewState(state))
}

// RegisterQuoteRoutes registers the routes on rg.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	rg.GET("/state", h.GetState)

	quotes := rg.Group("/quotes")
	quotes.POST("/generate", h.Generate)
	quotes.POST("/save", h.Save)
}
