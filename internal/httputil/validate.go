package httputil

import "github.com/go-playground/validator/v10"

// Validate is the shared request-struct validator.
var Validate = validator.New()
