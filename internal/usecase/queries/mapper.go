package queries

import (
	"tour-booking/internal/domain/booking"
	"tour-booking/internal/domain/user"
	"tour-booking/internal/domain/voucher"
)

const DateLayout = "2006-01-02"

func NewBookingView(b *booking.Booking) *BookingView {
	price := b.Price()
	return &BookingView{
		ID:              b.ID(),
		UserID:          b.UserID(),
		ProductType:     b.Product().Type.String(),
		EventID:         b.Product().EventID(),
		PackageID:       b.Product().PackageID(),
		Status:          b.Status().String(),
		Date:            b.Date().Format(DateLayout),
		UnitPrice:       price.UnitPrice,
		DiscountPercent: price.DiscountPercent,
		DiscountAmount:  price.DiscountAmount,
		FinalAmount:     price.FinalAmount,
		Currency:        price.Currency,
		VoucherID:       price.VoucherID,
		VoucherCode:     price.VoucherCode,
		CreatedAt:       b.CreatedAt(),
		UpdatedAt:       b.UpdatedAt(),
	}
}

func NewVoucherView(v *voucher.Voucher) *VoucherView {
	return &VoucherView{
		ID:              v.ID(),
		Code:            v.Code().String(),
		DiscountPercent: v.Discount().Decimal(),
		Description:     v.Description(),
		ValidFrom:       v.ValidFrom(),
		ValidUntil:      v.ValidUntil(),
		UsageLimit:      v.UsageLimit(),
		UsedCount:       v.UsedCount(),
		IsActive:        v.IsActive(),
		CreatedAt:       v.CreatedAt(),
		UpdatedAt:       v.UpdatedAt(),
	}
}

func NewUserView(u *user.User) *UserView {
	return &UserView{
		ID:        u.ID(),
		Email:     u.Email().Value(),
		Name:      u.Name().String(),
		Role:      u.Role().String(),
		IsActive:  u.IsActive(),
		CreatedAt: u.CreatedAt(),
	}
}
