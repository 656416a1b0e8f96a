package billingValidator

import (
	"strings"

	"dma/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// fieldErrors flattens validator.ValidationErrors into the response map
// shape the rest of the API uses.
func fieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			errors[fe.Field()] = "Invalid value for " + fe.Field() + " (" + fe.Tag() + ")!"
		}
	} else {
		errors["body"] = "Invalid request body!"
	}
	return errors
}

// ValidatePromo validates a promo code check request.
func ValidatePromo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Code string `json:"code"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Code = strings.TrimSpace(reqData.Code)
		if reqData.Code == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"code": "Promo code is required!"})
		}

		c.Locals("validatedPromo", reqData)
		return c.Next()
	}
}

// Subscribe validates a subscription request.
func Subscribe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Plan      string `json:"plan" validate:"required,oneof=MONTHLY ANNUAL TEAM"`
			Seats     int    `json:"seats" validate:"omitempty,min=1,max=500"`
			PromoCode string `json:"promoCode"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Plan = strings.ToUpper(strings.TrimSpace(reqData.Plan))
		reqData.PromoCode = strings.TrimSpace(reqData.PromoCode)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		if reqData.Plan == "TEAM" && reqData.Seats < 2 {
			return middleware.ValidationErrorResponse(c, map[string]string{"seats": "Team plans need at least 2 seats!"})
		}

		c.Locals("validatedSubscribe", reqData)
		return c.Next()
	}
}

// CreatePromoCode validates admin promo code creation.
func CreatePromoCode() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Code           string `json:"code" validate:"required,alphanum,min=4,max=32"`
			PercentOff     int    `json:"percent_off" validate:"required,min=1,max=100"`
			MaxRedemptions int    `json:"max_redemptions" validate:"omitempty,min=0"`
			ValidDays      int    `json:"valid_days" validate:"omitempty,min=1"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Code = strings.ToUpper(strings.TrimSpace(reqData.Code))

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedPromoCreate", reqData)
		return c.Next()
	}
}
