package utils

import (
	"fmt"
	"time"

	"dma/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers one HTML mail through SendGrid.
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	if config.AppConfig.SendGridApiKey == "" {
		return fmt.Errorf("sendgrid api key not configured")
	}

	from := mail.NewEmail("DMA", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func getEmailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1B2A4A; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B2A4A; line-height: 1.6; }
			.content h2 { color: #1B2A4A; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #2563EB; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #2563EB; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>DMA</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 DMA. Minden jog fenntartva.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendWelcomeEmail greets a freshly registered user.
func SendWelcomeEmail(email, name string) error {
	subject := "Üdvözlünk a DMA-n!"
	body := fmt.Sprintf(`
		<p>Kedves %s!</p>
		<p>Köszönjük, hogy regisztráltál a <strong>DMA</strong> platformra.</p>
		<p>Fiókod elkészült, máris böngészheted a kurzusainkat és elkezdheted a tanulást.</p>
		<a href="%s" class="btn">Kurzusok böngészése</a>
	`, name, config.AppConfig.FrontendOrigin)

	return SendEmail(email, name, subject, getEmailTemplate("Üdvözlünk!", body))
}

// SendCourseCompletionEmail congratulates a user on finishing a course.
func SendCourseCompletionEmail(email, name, courseTitle string) error {
	subject := "Gratulálunk, befejezted a kurzust!"
	body := fmt.Sprintf(`
		<p>Kedves %s!</p>
		<p>Sikeresen befejezted a(z) <strong>%s</strong> kurzust!</p>
		<div class="info-box">
			Az elért haladásod bármikor visszanézheted a vezérlőpultodon.
		</div>
		<a href="%s" class="btn">Tovább a vezérlőpultra</a>
	`, name, courseTitle, config.AppConfig.FrontendOrigin)

	return SendEmail(email, name, subject, getEmailTemplate("Kurzus teljesítve", body))
}

// SendCompanyInviteEmail delivers a seat invite with its redemption token.
func SendCompanyInviteEmail(email, companyName, token string) error {
	subject := fmt.Sprintf("Meghívó: %s", companyName)
	inviteURL := fmt.Sprintf("%s/invite?token=%s", config.AppConfig.FrontendOrigin, token)
	body := fmt.Sprintf(`
		<p>Kedves Kolléga!</p>
		<p>A(z) <strong>%s</strong> meghívott, hogy csatlakozz a céges tanulási fiókjához.</p>
		<p>A meghívó elfogadásához kattints az alábbi gombra:</p>
		<a href="%s" class="btn">Meghívó elfogadása</a>
	`, companyName, inviteURL)

	return SendEmail(email, "", subject, getEmailTemplate("Céges meghívó", body))
}

// SendSubscriptionExpiryReminder warns a user before their plan lapses.
func SendSubscriptionExpiryReminder(email, name string, expiresAt *time.Time) error {
	expiryStr := "hamarosan"
	if expiresAt != nil {
		expiryStr = expiresAt.Format("2006. 01. 02.")
	}

	subject := "Előfizetésed hamarosan lejár"
	body := fmt.Sprintf(`
		<p>Kedves %s!</p>
		<p>Előfizetésed <strong>%s</strong> napon lejár.</p>
		<p>A megszakítás nélküli hozzáféréshez újítsd meg időben.</p>
		<a href="%s" class="btn">Megújítás</a>
	`, name, expiryStr, config.AppConfig.FrontendOrigin)

	return SendEmail(email, name, subject, getEmailTemplate("Lejáró előfizetés", body))
}

// SendSubscriptionExpiredEmail notifies a user their plan has lapsed.
func SendSubscriptionExpiredEmail(email, name string) error {
	subject := "Előfizetésed lejárt"
	body := fmt.Sprintf(`
		<p>Kedves %s!</p>
		<p>Előfizetésed lejárt, a kurzusokhoz való hozzáférésed szünetel.</p>
		<p>Megújítás után ott folytathatod, ahol abbahagytad.</p>
		<a href="%s" class="btn">Előfizetés megújítása</a>
	`, name, config.AppConfig.FrontendOrigin)

	return SendEmail(email, name, subject, getEmailTemplate("Lejárt előfizetés", body))
}
