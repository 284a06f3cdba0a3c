//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"tour-booking/internal/domain/catalog"
	"tour-booking/internal/handler/api"
	resdto "tour-booking/internal/handler/dto/response"
	"tour-booking/internal/handler/middleware"
	"tour-booking/internal/pkg/errs"
	"tour-booking/internal/usecase/pricing"
	"tour-booking/tests/common/builder"
	"tour-booking/tests/common/httptest"
	pricingmock "tour-booking/tests/mock/pricing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newPricingRouter(t *testing.T) (*gin.Engine, *pricingmock.MockQuoteService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	quotes := pricingmock.NewMockQuoteService(ctrl)
	p := builder.NewUserBuilder().BuildPrincipal()

	r := gin.New()
	r.POST("/pricing/quote", func(c *gin.Context) {
		middleware.SetPrincipal(c, p)
		c.Next()
	}, api.NewPricingHandler(quotes).Quote)
	return r, quotes
}

func TestPricingHandler_Quote(t *testing.T) {
	eventID := uuid.New()
	voucherID := uuid.New()
	code := "SAVE10"

	t.Run("success: trims the code and returns amounts", func(t *testing.T) {
		r, quotes := newPricingRouter(t)
		quotes.EXPECT().Quote(gomock.Any(), gomock.Any(), pricing.QuoteInput{EventID: &eventID, VoucherCode: &code}).
			Return(&pricing.Quote{
				Product:         catalog.ProductRef{Type: catalog.TypeEvent, ID: eventID},
				ProductName:     "Bromo Sunrise Festival",
				UnitPrice:       750_000,
				DiscountPercent: decimal.NewFromInt(10),
				DiscountAmount:  75_000,
				FinalAmount:     675_000,
				Currency:        "IDR",
				VoucherID:       &voucherID,
				VoucherCode:     &code,
			}, nil)

		rec := httptest.PerformRequest(t, r, http.MethodPost, "/pricing/quote",
			map[string]any{"eventId": eventID, "voucherCode": "  SAVE10 "}, "")

		var response resdto.QuoteResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &response)
		assert.Equal(t, "event", response.ProductType)
		assert.Equal(t, eventID, response.ProductID)
		assert.Equal(t, int64(675_000), response.FinalAmount)
		assert.Equal(t, &voucherID, response.VoucherID)
	})

	t.Run("error: usecase failures", func(t *testing.T) {
		r, quotes := newPricingRouter(t)
		quotes.EXPECT().Quote(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.New("exactly one"), errs.ErrInvalidProduct))
		quotes.EXPECT().Quote(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.ErrProductNotFound, errs.ErrNotFound))

		rec := httptest.PerformRequest(t, r, http.MethodPost, "/pricing/quote", map[string]any{}, "")
		httptest.AssertErrorResponse(t, rec, http.StatusBadRequest, "INVALID_PRODUCT")

		rec = httptest.PerformRequest(t, r, http.MethodPost, "/pricing/quote", map[string]any{"packageId": uuid.New()}, "")
		httptest.AssertErrorResponse(t, rec, http.StatusNotFound, "NOT_FOUND")
	})
}
