package api

import "tour-booking/internal/pkg/errs"

var errInvalidID = errs.New("invalid id format")
