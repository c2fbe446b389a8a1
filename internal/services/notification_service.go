package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ZenithX9271/SPL-AgriSense/internal/models"
)

// ErrPartnerChannelDisabled means no mailer or partner address is configured.
var ErrPartnerChannelDisabled = errors.New("partner notification channel is not configured")

// PartnerMailer delivers rendered soil test reports to the partner.
type PartnerMailer interface {
	SendPartnerReport(ctx context.Context, partnerEmail string, report PartnerReport) error
}

// NotificationDispatcher forwards soil test reports to the fertilizer
// partner. Opt-in is the caller's concern; the dispatcher only delivers and
// remembers the last outcome per user for the profile page.
type NotificationDispatcher struct {
	mailer       PartnerMailer
	partnerEmail string
	loc          *time.Location

	mu          sync.Mutex
	lastOutcome map[string]string
}

func NewNotificationDispatcher(mailer PartnerMailer, partnerEmail string, loc *time.Location) *NotificationDispatcher {
	if loc == nil {
		loc = time.UTC
	}
	return &NotificationDispatcher{
		mailer:       mailer,
		partnerEmail: partnerEmail,
		loc:          loc,
		lastOutcome:  map[string]string{},
	}
}

// NotifyPartner mails the test report to the partner on behalf of the user.
func (d *NotificationDispatcher) NotifyPartner(ctx context.Context, user *models.User, test models.SoilTest) error {
	if d.mailer == nil || d.partnerEmail == "" {
		d.record(user.ID, "failed: channel not configured")
		return ErrPartnerChannelDisabled
	}

	report := PartnerReport{
		FarmerName:    user.Name,
		FarmerContact: user.Credential,
		TestDate:      test.Timestamp.In(d.loc).Format("02 Jan 2006 15:04"),
		LocationName:  test.LocationName,
		LatLon:        fmt.Sprintf("%.4f, %.4f", test.Latitude, test.Longitude),
		NitrogenPPM:   test.NitrogenPPM,
		PhosphorusPPM: test.PhosphorusPPM,
		PotassiumPPM:  test.PotassiumPPM,
		PHValue:       test.PHValue,
		ECValue:       test.ECmScm,
		CropDetected:  test.CropDetected,
		CropHealth:    formatCropHealth(test),
	}

	if err := d.mailer.SendPartnerReport(ctx, d.partnerEmail, report); err != nil {
		d.record(user.ID, "failed: "+err.Error())
		return err
	}
	d.record(user.ID, "delivered "+time.Now().In(d.loc).Format("02 Jan 2006 15:04"))
	return nil
}

// LastOutcome reports the result of the user's most recent dispatch, if any.
func (d *NotificationDispatcher) LastOutcome(userID string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	outcome, ok := d.lastOutcome[userID]
	return outcome, ok
}

func (d *NotificationDispatcher) record(userID string, outcome string) {
	d.mu.Lock()
	d.lastOutcome[userID] = outcome
	d.mu.Unlock()
}

func formatCropHealth(test models.SoilTest) string {
	if !test.CropPresent() {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", test.CropHealthIndex)
}
