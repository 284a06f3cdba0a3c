package api

import (
	"net/http"

	reqdto "tour-booking/internal/handler/dto/request"
	resdto "tour-booking/internal/handler/dto/response"
	"tour-booking/internal/handler/httperr"
	"tour-booking/internal/handler/middleware"
	"tour-booking/internal/usecase/commands"
	"tour-booking/internal/usecase/queries"
	"tour-booking/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

type VoucherHandler struct {
	commands commands.VoucherCommands
	queries  queries.VoucherQueries
}

func NewVoucherHandler(voucherCommands commands.VoucherCommands, voucherQueries queries.VoucherQueries) *VoucherHandler {
	return &VoucherHandler{
		commands: voucherCommands,
		queries:  voucherQueries,
	}
}

// @Summary Validate voucher
// @Description An unusable code is a successful response with valid=false and a reason.
// @Tags vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ValidateVoucherRequest true "Code and optional reference amount"
// @Success 200 {object} resdto.Envelope{data=resdto.VoucherValidationResponse}
// @Failure 400 {object} httperr.Response
// @Router /vouchers/validate [post]
func (h *VoucherHandler) ValidateVoucher(c *gin.Context) {
	var req reqdto.ValidateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err)
		return
	}

	result, err := h.queries.Validate(c.Request.Context(), req.Code, req.ReferenceAmount)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resdto.Write(c, http.StatusOK, resdto.FromValidationResult(result), "")
}

// @Summary List vouchers
// @Tags vouchers
// @Produce json
// @Security BearerAuth
// @Param active query bool false "Only active vouchers"
// @Success 200 {object} resdto.Envelope{data=[]resdto.VoucherResponse}
// @Failure 403 {object} httperr.Response
// @Router /vouchers [get]
func (h *VoucherHandler) ListVouchers(c *gin.Context) {
	var q reqdto.ListVouchersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BadRequest(c, err)
		return
	}

	p, _ := middleware.GetPrincipal(c)
	views, err := h.queries.List(c.Request.Context(), p, shared.VoucherFilter{ActiveOnly: q.Active})
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	out, err := resdto.FromVoucherViews(views)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resdto.Write(c, http.StatusOK, out, "")
}

// @Summary Get voucher
// @Tags vouchers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Voucher ID"
// @Success 200 {object} resdto.Envelope{data=resdto.VoucherResponse}
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /vouchers/{id} [get]
func (h *VoucherHandler) GetVoucher(c *gin.Context) {
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

// @Summary Create voucher
// @Tags vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateVoucherRequest true "Voucher"
// @Success 201 {object} resdto.Envelope{data=resdto.VoucherResponse}
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /vouchers [post]
func (h *VoucherHandler) CreateVoucher(c *gin.Context) {
	var req reqdto.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err)
		return
	}

	p, _ := middleware.GetPrincipal(c)
	view, err := h.commands.Create(c.Request.Context(), p, req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respond(c, http.StatusCreated, view, "Voucher created")
}

// @Summary Update voucher
// @Description Partial update. usedCount cannot be changed.
// @Tags vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Voucher ID"
// @Param request body reqdto.UpdateVoucherRequest true "Fields to change"
// @Success 200 {object} resdto.Envelope{data=resdto.VoucherResponse}
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /vouchers/{id} [patch]
func (h *VoucherHandler) UpdateVoucher(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.UpdateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err)
		return
	}

	p, _ := middleware.GetPrincipal(c)
	view, err := h.commands.Update(c.Request.Context(), p, id, req.ToPatch())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respond(c, http.StatusOK, view, "Voucher updated")
}

// @Summary Delete voucher
// @Description Bookings keep their price snapshot and lose the voucher link.
// @Tags vouchers
// @Security BearerAuth
// @Param id path string true "Voucher ID"
// @Success 200 {object} resdto.Envelope
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /vouchers/{id} [delete]
func (h *VoucherHandler) DeleteVoucher(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	p, _ := middleware.GetPrincipal(c)
	if err := h.commands.Delete(c.Request.Context(), p, id); err != nil {
		httperr.Abort(c, err)
		return
	}
	resdto.Write(c, http.StatusOK, nil, "Voucher deleted")
}

func (h *VoucherHandler) respond(c *gin.Context, status int, view *queries.VoucherView, msg string) {
	out, err := resdto.FromVoucherView(view)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resdto.Write(c, status, out, msg)
}
