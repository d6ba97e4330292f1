package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"prismfund/internal/donation"
	"prismfund/pkg/types"

	qrcode "github.com/skip2/go-qrcode"
)

type DonatePageData struct {
	types.BasePageData
	WalletAddress string
	Limits        types.ContributionLimits
	Categories    []types.DonationCategory
	Form          pledgeForm
	FormError     string
}

// pledgeForm mirrors the donate form fields. Amount parsing is left to the
// form decoder; a non-numeric amount decodes to zero and fails the range
// check.
type pledgeForm struct {
	Amount          float64 `form:"amount"`
	DonorName       string  `form:"donor_name"`
	DonorEmail      string  `form:"donor_email"`
	Category        string  `form:"category"`
	DonationType    string  `form:"donation_type"`
	TransactionHash string  `form:"transaction_hash"`
}

func (s *Service) handleGetDonate(w http.ResponseWriter, r *http.Request) {
	limits, err := s.settingsRepo.Limits(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch contribution limits")
		s.internalServerError(w)
		return
	}

	data := &DonatePageData{
		BasePageData: types.BasePageData{
			Title:  "Donate",
			Notice: r.URL.Query().Get("notice"),
			Error:  r.URL.Query().Get("error"),
		},
		WalletAddress: s.config.WalletAddress,
		Limits:        limits,
		Categories:    types.DonationCategories(),
	}

	if err := s.renderTemplate(w, r, "page.donate", data); err != nil {
		s.logger.WithError(err).Error("failed to render donate page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostDonate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/donate", "invalid form payload")
		return
	}

	var form pledgeForm
	if err := decoder.Decode(&form, r.PostForm); err != nil {
		s.logger.WithError(err).Error("failed to decode pledge form")
		s.redirectWithError(w, r, "/donate", "invalid form payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Limits are re-read on every submission so admin changes apply
	// immediately; the values rendered into the form are advisory only.
	limits, err := s.settingsRepo.Limits(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch contribution limits")
		s.internalServerError(w)
		return
	}

	sub := donation.PledgeSubmission{
		Amount:       form.Amount,
		DonorName:    strings.TrimSpace(form.DonorName),
		DonorEmail:   strings.TrimSpace(form.DonorEmail),
		Category:     form.Category,
		DonationType: form.DonationType,
	}

	if verr := donation.ValidatePledge(sub, limits); verr != nil {
		s.renderDonateError(w, r, limits, form, verr.Message)
		return
	}

	if verr := donation.ValidateConfirmation(form.TransactionHash); verr != nil {
		s.renderDonateError(w, r, limits, form, verr.Message)
		return
	}

	record := &types.Donation{
		WalletAddress:   s.config.WalletAddress,
		Amount:          form.Amount,
		Category:        types.DonationCategory(form.Category),
		DonationType:    types.DonationType(form.DonationType),
		DonorName:       sub.DonorName,
		DonorEmail:      strings.ToLower(sub.DonorEmail),
		TransactionHash: strings.TrimSpace(form.TransactionHash),
	}

	if err := s.donationRepo.CreateDonation(ctx, record); err != nil {
		s.logger.WithError(err).Error("failed to record donation")
		s.redirectWithError(w, r, "/donate", "unable to record your donation, please try again")
		return
	}

	s.logger.WithField("donation_id", record.ID).Info("donation recorded")

	s.redirectWithNotice(w, r, "/donate", "Thank you! Your donation is pending confirmation.")
}

func (s *Service) renderDonateError(w http.ResponseWriter, r *http.Request, limits types.ContributionLimits, form pledgeForm, msg string) {
	data := &DonatePageData{
		BasePageData:  types.BasePageData{Title: "Donate"},
		WalletAddress: s.config.WalletAddress,
		Limits:        limits,
		Categories:    types.DonationCategories(),
		Form:          form,
		FormError:     msg,
	}

	if err := s.renderTemplate(w, r, "page.donate", data); err != nil {
		s.logger.WithError(err).Error("failed to render donate page with form error")
		s.internalServerError(w)
		return
	}
}

// handleDonateQR serves a QR code of the donation wallet address so mobile
// wallet apps can scan it off the donate page.
func (s *Service) handleDonateQR(w http.ResponseWriter, _ *http.Request) {
	png, err := qrcode.Encode(s.config.WalletAddress, qrcode.Medium, 256)
	if err != nil {
		s.logger.WithError(err).Error("failed to encode wallet qr code")
		s.internalServerError(w)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(png)
}
