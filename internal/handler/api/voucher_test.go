//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"

	"tour-booking/internal/domain/auth"
	"tour-booking/internal/domain/voucher"
	"tour-booking/internal/handler/api"
	resdto "tour-booking/internal/handler/dto/response"
	"tour-booking/internal/handler/middleware"
	"tour-booking/internal/pkg/errs"
	"tour-booking/internal/usecase/commands"
	"tour-booking/internal/usecase/queries"
	"tour-booking/internal/usecase/shared"
	"tour-booking/tests/common/builder"
	"tour-booking/tests/common/httptest"
	"tour-booking/tests/common/testutil"
	commandsmock "tour-booking/tests/mock/commands"
	queriesmock "tour-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type VoucherHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockVoucherCommands
	mockQueries  *queriesmock.MockVoucherQueries
	admin        auth.Principal
}

func (s *VoucherHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	gin.EnableJsonDecoderDisallowUnknownFields()
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockVoucherCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockVoucherQueries(s.mockCtrl)
	s.admin = builder.NewUserBuilder().AsAdmin().BuildPrincipal()
	h := api.NewVoucherHandler(s.mockCommands, s.mockQueries)

	g := s.router.Group("/vouchers", func(c *gin.Context) {
		middleware.SetPrincipal(c, s.admin)
		c.Next()
	})
	g.POST("/validate", h.ValidateVoucher)
	g.GET("", h.ListVouchers)
	g.GET("/:id", h.GetVoucher)
	g.POST("", h.CreateVoucher)
	g.PATCH("/:id", h.UpdateVoucher)
	g.DELETE("/:id", h.DeleteVoucher)
}

func (s *VoucherHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestVoucherHandlerSuite(t *testing.T) {
	suite.Run(t, new(VoucherHandlerTestSuite))
}

func (s *VoucherHandlerTestSuite) TestValidateVoucher() {
	s.Run("success: valid code with amounts", func() {
		id := uuid.New()
		pct := decimal.NewFromInt(10)
		discount, final := int64(100_000), int64(900_000)
		s.mockQueries.EXPECT().Validate(gomock.Any(), "SAVE10", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, amount *int64) (voucher.ValidationResult, error) {
				s.Require().NotNil(amount)
				s.Equal(int64(1_000_000), *amount)
				return voucher.ValidationResult{
					Valid: true, VoucherID: &id, Code: "SAVE10",
					DiscountPercent: &pct, DiscountAmount: &discount, FinalAmount: &final,
				}, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/vouchers/validate",
			map[string]any{"code": "SAVE10", "referenceAmount": 1_000_000}, "")

		var response resdto.VoucherValidationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Valid)
		s.Equal(int64(900_000), *response.FinalAmount)
		s.Empty(response.Reason)
	})

	s.Run("success: unusable code is still 200", func() {
		s.mockQueries.EXPECT().Validate(gomock.Any(), "OLD", nil).
			Return(voucher.Rejected(voucher.ReasonExpired), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/vouchers/validate", map[string]any{"code": "OLD"}, "")

		var response resdto.VoucherValidationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.False(response.Valid)
		s.Equal("expired", response.Reason)
		s.NotEmpty(response.Message)
		s.Nil(response.FinalAmount)
	})

	s.Run("error: 400 on bad input", func() {
		for _, body := range []map[string]any{
			{},
			{"code": "SAVE10", "referenceAmount": -1},
		} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/vouchers/validate", body, "")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
		}
	})
}

func (s *VoucherHandlerTestSuite) TestCreateVoucher() {
	b := builder.NewVoucherBuilder()
	reqBody := b.BuildCreateRequestDTO()

	s.Run("success: returns 201", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), s.admin, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ auth.Principal, in commands.CreateVoucherInput) (*queries.VoucherView, error) {
				s.Equal("SAVE10", in.Code)
				s.True(decimal.NewFromInt(10).Equal(in.DiscountPercent))
				s.Equal(1, *in.UsageLimit)
				return b.BuildView(), nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/vouchers", reqBody, "")

		var response resdto.VoucherResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal("SAVE10", response.Code)
		s.Equal(1, response.UsageLimit)
		s.Equal(0, response.UsedCount)
	})

	s.Run("error: 400 on validation errors", func() {
		for name, mutate := range map[string]func(map[string]any){
			"missing code":              testutil.Field("code", nil),
			"missing percent":           testutil.Field("discountPercent", nil),
			"missing window":            testutil.Field("validUntil", nil),
			"negative limit":            testutil.Field("usageLimit", -1),
			"usedCount is not settable": testutil.Field("usedCount", 3),
		} {
			s.Run(name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/vouchers", testutil.DtoMap(s.T(), reqBody, mutate), "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
			})
		}
	})

	s.Run("error: duplicate code and role", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(commands.ErrVoucherCodeTaken, errs.ErrDuplicateCode))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/vouchers", reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "DUPLICATE_CODE")

		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(auth.ErrRoleNotPermitted, errs.ErrForbidden))
		rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/vouchers", reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "FORBIDDEN")
	})
}

func (s *VoucherHandlerTestSuite) TestUpdateVoucher() {
	view := builder.NewVoucherBuilder().AsInactive().BuildView()

	s.Run("success: only sent fields are patched", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), s.admin, view.ID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ auth.Principal, _ uuid.UUID, p voucher.Patch) (*queries.VoucherView, error) {
				s.Require().NotNil(p.IsActive)
				s.False(*p.IsActive)
				s.Nil(p.Code)
				s.Nil(p.UsageLimit)
				return view, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/vouchers/"+view.ID.String(), map[string]any{"isActive": false}, "")
		var response resdto.VoucherResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.False(response.IsActive)
	})

	s.Run("error: 404 for an unknown voucher", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.ErrVoucherNotFound, errs.ErrNotFound))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/vouchers/"+uuid.NewString(), map[string]any{"isActive": true}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "NOT_FOUND")
	})
}

func (s *VoucherHandlerTestSuite) TestListGetDelete() {
	views := []*queries.VoucherView{
		builder.NewVoucherBuilder().BuildView(),
		builder.NewVoucherBuilder().WithCode("FEST").BuildView(),
	}

	s.Run("list passes the active filter", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), s.admin, shared.VoucherFilter{ActiveOnly: true}).Return(views, nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/vouchers?active=true", nil, "")

		var response []resdto.VoucherResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
		s.Equal("FEST", response[1].Code)
	})

	s.Run("get", func() {
		s.mockQueries.EXPECT().Get(gomock.Any(), s.admin, views[0].ID).Return(views[0], nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/vouchers/"+views[0].ID.String(), nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("delete", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), s.admin, views[0].ID).Return(nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/vouchers/"+views[0].ID.String(), nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}
