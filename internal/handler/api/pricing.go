package api

import (
	"net/http"

	reqdto "tour-booking/internal/handler/dto/request"
	resdto "tour-booking/internal/handler/dto/response"
	"tour-booking/internal/handler/httperr"
	"tour-booking/internal/handler/middleware"
	"tour-booking/internal/usecase/pricing"

	"github.com/gin-gonic/gin"
)

type PricingHandler struct {
	quotes pricing.QuoteService
}

func NewPricingHandler(quotes pricing.QuoteService) *PricingHandler {
	return &PricingHandler{quotes: quotes}
}

// @Summary Quote a price
// @Description Prices a product with an optional voucher. Nothing is reserved or redeemed.
// @Tags pricing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.QuoteRequest true "Product and voucher"
// @Success 200 {object} resdto.Envelope{data=resdto.QuoteResponse}
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /pricing/quote [post]
func (h *PricingHandler) Quote(c *gin.Context) {
	var req reqdto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err)
		return
	}

	p, _ := middleware.GetPrincipal(c)
	quote, err := h.quotes.Quote(c.Request.Context(), p, req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resdto.Write(c, http.StatusOK, resdto.FromQuote(quote), "")
}
