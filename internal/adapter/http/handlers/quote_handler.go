package handlers

import (
	"errors"
	"net/http"

	response "cotizador_seguros/internal/adapter/http/dto/response"
	"cotizador_seguros/internal/usecase"
	"cotizador_seguros/pkg"

	"github.com/gin-gonic/gin"
)

// QuoteHandler exposes read access to quotes for back-office clients.
type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
}

func NewQuoteHandler(uc usecase.IQuoteUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc}
}

// GetQuote godoc
// @Summary      Get a quote
// @Description  Quote with its effective status, frozen risk snapshot and alternatives ordered by price.
// @Tags         quotes
// @Produce      json
// @Param        id  path  string  true  "Quote ID"
// @Success      200  {object}  response.QuoteDetailResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Failure      500  {object}  pkg.HTTPError
// @Router       /quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	details, err := h.usecase.GetQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuoteDetails(details))
}

// ListByConversation godoc
// @Summary      List the quotes of a conversation
// @Tags         quotes
// @Produce      json
// @Param        external_id  path  string  true  "External conversation ID"
// @Success      200  {array}   response.QuoteResponse
// @Failure      404  {object}  pkg.HTTPError
// @Failure      500  {object}  pkg.HTTPError
// @Router       /conversations/{external_id}/quotes [get]
func (h *QuoteHandler) ListByConversation(c *gin.Context) {
	quotes, err := h.usecase.ListByConversation(c.Request.Context(), c.Param("external_id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuotes(quotes))
}

func mapQuoteError(err error) *pkg.AppError {
	var verr *usecase.ValidationError
	switch {
	case errors.Is(err, usecase.ErrInvalidQuoteID), errors.As(err, &verr):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrConversationNotFound):
		return pkg.NewDomainErrorSimple("CONVERSATION_NOT_FOUND", "Conversation not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrSnapshotNotFound):
		return pkg.NewDomainError("SNAPSHOT_NOT_FOUND", "Risk snapshot missing for quote", err, http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
