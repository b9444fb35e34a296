package handlers

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"kritika/internal/apperrors"
	"kritika/internal/middleware"
	"kritika/internal/services"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// newValidator builds the request validator shared by all handlers, with
// the "slug" tag registered for taxonomy identifiers.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	return v
}

// decodeBody parses and validates a JSON request body into dst.
func decodeBody(c *fiber.Ctx, v *validator.Validate, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperrors.BadRequest("invalid request body").WithCause(err)
	}
	if err := v.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			e := validationErrors[0]
			return apperrors.BadRequest("field '%s' failed on the '%s' rule", e.Field(), e.Tag())
		}
		return apperrors.BadRequest("validation failed").WithCause(err)
	}
	return nil
}

// respondError logs unexpected failures and writes the structured error
// response. Expected failures (AppError) pass through quietly.
func respondError(c *fiber.Ctx, err error) error {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).
			Msg("request failed")
	}
	return apperrors.Respond(c, err)
}

// requester returns the authenticated identity; the auth middleware
// guarantees it on protected routes.
func requester(c *fiber.Ctx) services.Identity {
	if id := middleware.Identity(c); id != nil {
		return *id
	}
	return services.Identity{}
}

// pageParams reads ?page= and ?page_size= with repository defaults applied
// downstream.
func pageParams(c *fiber.Ctx) (int, int) {
	return c.QueryInt("page", 1), c.QueryInt("page_size", 0)
}
