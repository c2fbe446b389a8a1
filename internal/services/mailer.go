package services

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// PartnerReport is the payload rendered by the fertilizer partner's dynamic
// email template.
type PartnerReport struct {
	FarmerName    string
	FarmerContact string
	TestDate      string
	LocationName  string
	LatLon        string
	NitrogenPPM   int
	PhosphorusPPM int
	PotassiumPPM  int
	PHValue       float64
	ECValue       float64
	CropDetected  string
	CropHealth    string
}

// SendGridMailer delivers OTP mails and partner report mails. A nil mailer
// (no API key configured) degrades to on-screen OTP display and a disabled
// partner channel.
type SendGridMailer struct {
	client     *sendgrid.Client
	sender     string
	templateID string
}

func NewSendGridMailer(apiKey string, sender string, partnerTemplateID string) *SendGridMailer {
	return &SendGridMailer{
		client:     sendgrid.NewSendClient(apiKey),
		sender:     sender,
		templateID: partnerTemplateID,
	}
}

// SendOTP mails the one-time code to the address being verified.
func (m *SendGridMailer) SendOTP(ctx context.Context, recipient string, code string) error {
	from := mail.NewEmail("AgriSense Dashboard", m.sender)
	to := mail.NewEmail("", recipient)
	subject := "Your AgriSense verification code"
	plain := fmt.Sprintf("Your verification code is %s. It expires in 5 minutes.", code)
	html := fmt.Sprintf("<p>Your verification code is <strong>%s</strong>. It expires in 5 minutes.</p>", code)

	resp, err := m.client.SendWithContext(ctx, mail.NewSingleEmail(from, subject, to, plain, html))
	if err != nil {
		return err
	}
	if resp.StatusCode != 202 {
		return fmt.Errorf("mailer: sendgrid status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// SendPartnerReport mails a soil test summary to the fertilizer partner via
// the configured dynamic template.
func (m *SendGridMailer) SendPartnerReport(ctx context.Context, partnerEmail string, report PartnerReport) error {
	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail("AgriSense Dashboard", m.sender))
	message.SetTemplateID(m.templateID)

	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail("", partnerEmail))
	p.SetDynamicTemplateData("farmer_name", report.FarmerName)
	p.SetDynamicTemplateData("farmer_contact", report.FarmerContact)
	p.SetDynamicTemplateData("test_date", report.TestDate)
	p.SetDynamicTemplateData("location_name", report.LocationName)
	p.SetDynamicTemplateData("lat_lon", report.LatLon)
	p.SetDynamicTemplateData("n_ppm", report.NitrogenPPM)
	p.SetDynamicTemplateData("p_ppm", report.PhosphorusPPM)
	p.SetDynamicTemplateData("k_ppm", report.PotassiumPPM)
	p.SetDynamicTemplateData("ph_value", report.PHValue)
	p.SetDynamicTemplateData("ec_value", report.ECValue)
	p.SetDynamicTemplateData("crop_detected", report.CropDetected)
	p.SetDynamicTemplateData("crop_health", report.CropHealth)
	message.AddPersonalizations(p)

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}
	if resp.StatusCode != 202 {
		return fmt.Errorf("mailer: sendgrid status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
