package catalog

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrInvalidProductRef = errors.New("exactly one of eventId or packageId must be given")
	ErrUnknownType       = errors.New("unknown product type")
)

type ProductType string

const (
	TypeEvent   ProductType = "event"
	TypePackage ProductType = "package"
)

func (t ProductType) IsValid() bool {
	return t == TypeEvent || t == TypePackage
}

func (t ProductType) String() string {
	return string(t)
}

// ProductRef points at exactly one bookable product.
type ProductRef struct {
	Type ProductType
	ID   uuid.UUID
}

// NewProductRef enforces the event XOR package rule.
func NewProductRef(eventID, packageID *uuid.UUID) (ProductRef, error) {
	hasEvent := eventID != nil && *eventID != uuid.Nil
	hasPackage := packageID != nil && *packageID != uuid.Nil
	switch {
	case hasEvent && !hasPackage:
		return ProductRef{Type: TypeEvent, ID: *eventID}, nil
	case hasPackage && !hasEvent:
		return ProductRef{Type: TypePackage, ID: *packageID}, nil
	default:
		return ProductRef{}, ErrInvalidProductRef
	}
}

func (r ProductRef) EventID() *uuid.UUID {
	if r.Type != TypeEvent {
		return nil
	}
	id := r.ID
	return &id
}

func (r ProductRef) PackageID() *uuid.UUID {
	if r.Type != TypePackage {
		return nil
	}
	id := r.ID
	return &id
}

func (r ProductRef) String() string {
	return fmt.Sprintf("%s:%s", r.Type, r.ID)
}

// Product is the catalog view the booking core consumes.
type Product struct {
	Ref       ProductRef
	Name      string
	Price     int64
	Available bool
}
