package companyValidator

import (
	"regexp"
	"strings"

	"dma/middleware"

	"github.com/gofiber/fiber/v2"
)

func isValidEmail(email string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return re.MatchString(email)
}

// CreateCompany validates company registration.
func CreateCompany() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name         string `json:"name"`
			BillingEmail string `json:"billing_email"`
			TaxNumber    string `json:"tax_number"`
			SeatLimit    int    `json:"seat_limit"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Name = strings.TrimSpace(reqData.Name)
		reqData.BillingEmail = strings.TrimSpace(reqData.BillingEmail)
		reqData.TaxNumber = strings.TrimSpace(reqData.TaxNumber)

		if reqData.Name == "" {
			errors["name"] = "Company name is required!"
		} else if len(reqData.Name) < 3 {
			errors["name"] = "Company name must be at least 3 characters long!"
		}

		if reqData.BillingEmail != "" && !isValidEmail(reqData.BillingEmail) {
			errors["billing_email"] = "Invalid billing email!"
		}

		if reqData.SeatLimit < 0 {
			errors["seat_limit"] = "Seat limit cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCompany", reqData)
		return c.Next()
	}
}

// InviteMember validates a seat invite request.
func InviteMember() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email string `json:"email"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Email = strings.TrimSpace(reqData.Email)
		if reqData.Email == "" || !isValidEmail(reqData.Email) {
			return middleware.ValidationErrorResponse(c, map[string]string{"email": "Invalid email!"})
		}

		c.Locals("validatedInvite", reqData)
		return c.Next()
	}
}

// AcceptInvite validates an invite redemption request.
func AcceptInvite() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Token string `json:"token"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Token = strings.TrimSpace(reqData.Token)
		if reqData.Token == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"token": "Invite token is required!"})
		}

		c.Locals("validatedInviteAccept", reqData)
		return c.Next()
	}
}
