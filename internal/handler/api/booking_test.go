//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"tour-booking/internal/domain/auth"
	"tour-booking/internal/domain/booking"
	"tour-booking/internal/handler/api"
	resdto "tour-booking/internal/handler/dto/response"
	"tour-booking/internal/handler/middleware"
	"tour-booking/internal/pkg/errs"
	"tour-booking/internal/usecase/commands"
	"tour-booking/internal/usecase/queries"
	"tour-booking/tests/common/builder"
	"tour-booking/tests/common/httptest"
	"tour-booking/tests/common/testutil"
	commandsmock "tour-booking/tests/mock/commands"
	queriesmock "tour-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	principal    auth.Principal
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	gin.EnableJsonDecoderDisallowUnknownFields()
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.principal = builder.NewUserBuilder().BuildPrincipal()
	h := api.NewBookingHandler(s.mockCommands, s.mockQueries)

	g := s.router.Group("/bookings", func(c *gin.Context) {
		middleware.SetPrincipal(c, s.principal)
		c.Next()
	})
	g.POST("", h.CreateBooking)
	g.GET("", h.ListBookings)
	g.GET("/:id", h.GetBooking)
	g.PATCH("/:id/status", h.TransitionBooking)
	g.DELETE("/:id", h.DeleteBooking)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	b := builder.NewBookingBuilder().WithUserID(s.principal.ID).WithVoucher(uuid.New(), "SAVE10", 10)
	reqBody := b.BuildCreateRequestDTO()

	s.Run("success: returns 201 with the price snapshot", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), s.principal, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ auth.Principal, in commands.CreateBookingInput) (*queries.BookingView, error) {
				s.Equal(reqBody.PackageID, in.PackageID)
				s.Nil(in.EventID)
				s.Equal("2025-06-15", in.Date.Format(queries.DateLayout))
				s.Require().NotNil(in.VoucherCode)
				s.Equal("SAVE10", *in.VoucherCode)
				return b.BuildView(), nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", reqBody, "")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal("pending", response.Status)
		s.Equal(int64(1_000_000), response.UnitPrice)
		s.Equal(int64(100_000), response.DiscountAmount)
		s.Equal(int64(900_000), response.FinalAmount)
		s.Equal("IDR", response.Currency)
		s.Equal("2025-06-15", response.Date)
	})

	s.Run("error: 400 on malformed input", func() {
		for name, mutate := range map[string]func(map[string]any){
			"missing date":          testutil.Field("date", nil),
			"bad date":              testutil.Field("date", "15/06/2025"),
			"bad package id":        testutil.Field("packageId", "not-a-uuid"),
			"voucher code too long": testutil.Field("voucherCode", "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"),
			"unknown field":         testutil.Field("seats", 2),
		} {
			s.Run(name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", testutil.DtoMap(s.T(), reqBody, mutate), "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name   string
			err    error
			status int
			code   string
		}{
			{"both products", errs.Mark(errs.New("exactly one"), errs.ErrInvalidProduct), http.StatusBadRequest, "INVALID_PRODUCT"},
			{"product missing", errs.Mark(errs.ErrProductNotFound, errs.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
			{"voucher spent", errs.Mark(errs.New("voucher rejected"), errs.ErrLimitExceeded), http.StatusBadRequest, "LIMIT_EXCEEDED"},
			{"on behalf", errs.Mark(booking.ErrOnBehalfNotPermitted, errs.ErrForbidden), http.StatusForbidden, "FORBIDDEN"},
			{"database down", errors.New("database error"), http.StatusInternalServerError, "INTERNAL"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.status, tc.code)
			})
		}
	})
}

func (s *BookingHandlerTestSuite) TestGetBooking() {
	view := builder.NewBookingBuilder().WithUserID(s.principal.ID).BuildView()

	s.Run("success", func() {
		s.mockQueries.EXPECT().Get(gomock.Any(), s.principal, view.ID).Return(view, nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+view.ID.String(), nil, "")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.ID, response.ID)
		s.Equal(view.PackageID, response.PackageID)
	})

	s.Run("error: 400 on a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/123", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
	})

	s.Run("error: 403 for someone else's booking", func() {
		s.mockQueries.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(booking.ErrNotOwner, errs.ErrForbidden))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+uuid.NewString(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "FORBIDDEN")
	})
}

func (s *BookingHandlerTestSuite) TestListBookings() {
	s.Run("success: passes filters and returns the cursor", func() {
		owner := uuid.New()
		next := "next-page"
		s.mockQueries.EXPECT().ListForUser(gomock.Any(), s.principal, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ auth.Principal, in queries.ListBookingsInput) (*queries.BookingPage, error) {
				s.Require().NotNil(in.UserID)
				s.Equal(owner, *in.UserID)
				s.Require().NotNil(in.Status)
				s.Equal(booking.StatusPaid, *in.Status)
				s.Equal(5, in.Limit)
				s.Equal("abc", in.Cursor)
				return &queries.BookingPage{
					Items:      []*queries.BookingView{builder.NewBookingBuilder().WithStatus(booking.StatusPaid).BuildView()},
					NextCursor: &next,
				}, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/bookings?userId="+owner.String()+"&status=paid&limit=5&cursor=abc", nil, "")

		var response resdto.BookingPageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Items, 1)
		s.Equal("paid", response.Items[0].Status)
		s.Require().NotNil(response.NextCursor)
		s.Equal(next, *response.NextCursor)
	})

	s.Run("error: 400 on invalid query", func() {
		for _, q := range []string{"?limit=0", "?limit=201", "?status=refunded", "?userId=nope"} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings"+q, nil, "")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
		}
	})

	s.Run("success: an omitted limit is left to the use case", func() {
		s.mockQueries.EXPECT().ListForUser(gomock.Any(), s.principal, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ auth.Principal, in queries.ListBookingsInput) (*queries.BookingPage, error) {
				s.Zero(in.Limit)
				s.Nil(in.UserID)
				return &queries.BookingPage{}, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "")
		s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	})
}

func (s *BookingHandlerTestSuite) TestTransitionBooking() {
	id := uuid.New()
	url := "/bookings/" + id.String() + "/status"

	s.Run("success", func() {
		view := builder.NewBookingBuilder().WithStatus(booking.StatusCancelled).BuildView()
		s.mockCommands.EXPECT().Transition(gomock.Any(), s.principal, id, booking.StatusCancelled).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "cancelled"}, "")
		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("cancelled", response.Status)
	})

	s.Run("error: 400 on an unknown status", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "refunded"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
	})

	s.Run("error: maps state machine failures", func() {
		for code, err := range map[string]error{
			"FORBIDDEN":          errs.Mark(booking.ErrClientMayOnlyCancel, errs.ErrForbidden),
			"INVALID_TRANSITION": errs.Mark(booking.ErrIllegalTransition, errs.ErrInvalidTransition),
			"NOT_FOUND":          errs.Mark(errs.ErrBookingNotFound, errs.ErrNotFound),
		} {
			s.mockCommands.EXPECT().Transition(gomock.Any(), gomock.Any(), id, booking.StatusConfirmed).Return(nil, err)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "confirmed"}, "")

			status := map[string]int{"FORBIDDEN": 403, "INVALID_TRANSITION": 400, "NOT_FOUND": 404}[code]
			httptest.AssertErrorResponse(s.T(), rec, status, code)
		}
	})
}

func (s *BookingHandlerTestSuite) TestDeleteBooking() {
	id := uuid.New()

	s.Run("success", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), s.principal, id).Return(nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/bookings/"+id.String(), nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 403 for operators", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), gomock.Any(), id).
			Return(errs.Mark(booking.ErrDeleteNotPermitted, errs.ErrForbidden))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/bookings/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "FORBIDDEN")
	})
}
