package api

import (
	"net/http"

	reqdto "tour-booking/internal/handler/dto/request"
	resdto "tour-booking/internal/handler/dto/response"
	"tour-booking/internal/handler/httperr"
	"tour-booking/internal/handler/middleware"
	"tour-booking/internal/usecase/commands"
	"tour-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	commands commands.BookingCommands
	queries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		commands: bookingCommands,
		queries:  bookingQueries,
	}
}

// @Summary Create booking
// @Description Book an event or a package for a date. Staff may book on behalf of a client with userId.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Replays the stored response for a retried request"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.Envelope{data=resdto.BookingResponse}
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		httperr.BadRequest(c, err)
		return
	}

	p, _ := middleware.GetPrincipal(c)
	view, err := h.commands.Create(c.Request.Context(), p, in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respond(c, http.StatusCreated, view, "Booking created")
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.Envelope{data=resdto.BookingResponse}
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	p, _ := middleware.GetPrincipal(c)
	view, err := h.queries.Get(c.Request.Context(), p, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respond(c, http.StatusOK, view, "")
}

// @Summary List bookings
// @Description Newest first. Clients see their own bookings; staff may pass userId.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param userId query string false "Owner (staff only)"
// @Param status query string false "Status filter"
// @Param limit query int false "Page size (max 200)"
// @Param cursor query string false "Cursor from the previous page"
// @Success 200 {object} resdto.Envelope{data=resdto.BookingPageResponse}
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	var q reqdto.ListBookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BadRequest(c, err)
		return
	}

	p, _ := middleware.GetPrincipal(c)
	page, err := h.queries.ListForUser(c.Request.Context(), p, q.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	out, err := resdto.FromBookingPage(page)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resdto.Write(c, http.StatusOK, out, "")
}

// @Summary Change booking status
// @Description Owners may only cancel while pending or paid. Staff may move along any legal edge. Repeating the current status is a no-op.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.TransitionBookingRequest true "Target status"
// @Success 200 {object} resdto.Envelope{data=resdto.BookingResponse}
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id}/status [patch]
func (h *BookingHandler) TransitionBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.TransitionBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err)
		return
	}

	p, _ := middleware.GetPrincipal(c)
	view, err := h.commands.Transition(c.Request.Context(), p, id, req.Target())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respond(c, http.StatusOK, view, "Booking status updated")
}

// @Summary Delete booking
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.Envelope
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [delete]
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	p, _ := middleware.GetPrincipal(c)
	if err := h.commands.Delete(c.Request.Context(), p, id); err != nil {
		httperr.Abort(c, err)
		return
	}
	resdto.Write(c, http.StatusOK, nil, "Booking deleted")
}

func (h *BookingHandler) respond(c *gin.Context, status int, view *queries.BookingView, msg string) {
	out, err := resdto.FromBookingView(view)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resdto.Write(c, status, out, msg)
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, errInvalidID)
		return uuid.Nil, false
	}
	return id, true
}
