package voucher

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCode            = errors.New("invalid voucher code format")
	ErrInvalidDiscountPercent = errors.New("discount percent must be between 0 and 100")
	ErrNegativeAmount         = errors.New("reference amount cannot be negative")
)

var codeRegex = regexp.MustCompile(`^[A-Z0-9_-]{3,32}$`)

var (
	hundred = decimal.NewFromInt(100)
	zero    = decimal.Zero
)

// Code is the normalized (trimmed, upper-cased) voucher code.
type Code string

func NewCode(code string) (Code, error) {
	code = NormalizeCode(code)
	if !codeRegex.MatchString(code) {
		return Code(""), ErrInvalidCode
	}
	return Code(code), nil
}

// NormalizeCode is the lookup form of a user supplied code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (c Code) String() string {
	return string(c)
}

// Percent is a discount rate in [0,100] with at most two decimal places.
type Percent struct {
	value decimal.Decimal
}

func NewPercent(v decimal.Decimal) (Percent, error) {
	if v.LessThan(zero) || v.GreaterThan(hundred) {
		return Percent{}, ErrInvalidDiscountPercent
	}
	if !v.Equal(v.Round(2)) {
		return Percent{}, ErrInvalidDiscountPercent
	}
	return Percent{value: v}, nil
}

func MustPercent(v int64) Percent {
	p, err := NewPercent(decimal.NewFromInt(v))
	if err != nil {
		panic(err)
	}
	return p
}

func (p Percent) Decimal() decimal.Decimal {
	return p.value
}

func (p Percent) String() string {
	return p.value.String()
}

// DiscountOf returns round(amount * percent / 100), half-up.
func (p Percent) DiscountOf(amount int64) int64 {
	return decimal.NewFromInt(amount).
		Mul(p.value).
		Div(hundred).
		Round(0).
		IntPart()
}

// Reason explains why a voucher cannot be used. The zero value means usable.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonNotFound          Reason = "not_found"
	ReasonInactive          Reason = "inactive"
	ReasonNotYetValid       Reason = "not_yet_valid"
	ReasonExpired           Reason = "expired"
	ReasonUsageLimitReached Reason = "usage_limit_reached"
)

func (r Reason) String() string {
	return string(r)
}

func (r Reason) Message() string {
	switch r {
	case ReasonNone:
		return "Voucher is valid"
	case ReasonNotFound:
		return "Voucher code not found"
	case ReasonInactive:
		return "Voucher is not active"
	case ReasonNotYetValid:
		return "Voucher is not yet valid"
	case ReasonExpired:
		return "Voucher has expired"
	case ReasonUsageLimitReached:
		return "Voucher usage limit has been reached"
	default:
		return "Voucher is invalid"
	}
}
