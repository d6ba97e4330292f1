package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"prismfund/internal/donation"
	"prismfund/pkg/types"
)

type AdminDashboardPageData struct {
	types.BasePageData
	Totals     donation.StatusTotals
	Trend      []donation.MonthBucket
	Categories []donation.CategoryTotal
	Recent     []types.Donation
}

type AdminDonationsPageData struct {
	types.BasePageData
	Donations    []types.Donation
	StatusFilter string
	SearchEmail  string
}

type AdminDonorsPageData struct {
	types.BasePageData
	Donors []*donation.DonorRollup
}

type AdminStoriesPageData struct {
	types.BasePageData
	Stories []*types.CommunityStory
}

type AdminSettingsPageData struct {
	types.BasePageData
	Limits  types.ContributionLimits
	Invites []*types.AdminInvite
}

func (s *Service) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	donations, err := s.donationRepo.AllDonations(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch donations for admin dashboard")
		s.internalServerError(w)
		return
	}

	recent := donations
	if len(recent) > 10 {
		recent = recent[:10]
	}

	data := &AdminDashboardPageData{
		BasePageData: types.BasePageData{
			Title:  "Admin",
			Notice: r.URL.Query().Get("notice"),
			Error:  r.URL.Query().Get("error"),
		},
		Totals:     donation.TotalsByStatus(donations),
		Trend:      donation.MonthlyTrend(donations, time.Now(), 6),
		Categories: donation.CategoryTotals(donations),
		Recent:     recent,
	}

	if err := s.renderTemplate(w, r, "admin.dashboard", data); err != nil {
		s.logger.WithError(err).Error("failed to render admin dashboard")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleAdminDonations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	donations, err := s.donationRepo.AllDonations(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch donations for admin")
		s.internalServerError(w)
		return
	}

	statusFilter := strings.TrimSpace(r.URL.Query().Get("status"))
	searchEmail := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("email")))

	if statusFilter != "" || searchEmail != "" {
		filtered := make([]types.Donation, 0, len(donations))
		for _, d := range donations {
			if statusFilter != "" && string(d.Status) != statusFilter {
				continue
			}
			if searchEmail != "" && !strings.Contains(strings.ToLower(d.DonorEmail), searchEmail) {
				continue
			}
			filtered = append(filtered, d)
		}
		donations = filtered
	}

	data := &AdminDonationsPageData{
		BasePageData: types.BasePageData{
			Title:  "Donations",
			Notice: r.URL.Query().Get("notice"),
			Error:  r.URL.Query().Get("error"),
		},
		Donations:    donations,
		StatusFilter: statusFilter,
		SearchEmail:  searchEmail,
	}

	if err := s.renderTemplate(w, r, "admin.donations", data); err != nil {
		s.logger.WithError(err).Error("failed to render admin donations page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleConfirmDonation(w http.ResponseWriter, r *http.Request) {
	s.resolveDonation(w, r, types.DonationStatusConfirmed)
}

func (s *Service) handleRejectDonation(w http.ResponseWriter, r *http.Request) {
	s.resolveDonation(w, r, types.DonationStatusRejected)
}

// resolveDonation moves a pending donation to its terminal status. Donations
// already confirmed or rejected are left untouched and the admin is told so.
func (s *Service) resolveDonation(w http.ResponseWriter, r *http.Request, status types.DonationStatus) {
	donationID := r.PathValue("donationID")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var err error
	switch status {
	case types.DonationStatusConfirmed:
		err = s.donationRepo.Confirm(ctx, donationID)
	case types.DonationStatusRejected:
		err = s.donationRepo.Reject(ctx, donationID)
	}

	if err != nil {
		if errors.Is(err, types.ErrDonationNotPending) {
			s.redirectWithError(w, r, "/admin/donations", "donation has already been resolved")
			return
		}

		s.logger.WithError(err).Error("failed to resolve donation")
		s.redirectWithError(w, r, "/admin/donations", "unable to update donation")
		return
	}

	notice := "Donation confirmed"
	if status == types.DonationStatusRejected {
		notice = "Donation rejected"
	}

	s.redirectWithNotice(w, r, "/admin/donations", notice)
}

func (s *Service) handleAdminDonors(w http.ResponseWriter, r *http.Request) {
	donations, err := s.donationRepo.AllDonations(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch donations for donor rollup")
		s.internalServerError(w)
		return
	}

	data := &AdminDonorsPageData{
		BasePageData: types.BasePageData{Title: "Donors"},
		Donors:       donation.DonorRollups(donations),
	}

	if err := s.renderTemplate(w, r, "admin.donors", data); err != nil {
		s.logger.WithError(err).Error("failed to render admin donors page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleAdminStories(w http.ResponseWriter, r *http.Request) {
	stories, err := s.storyRepo.AllStories(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch stories for admin")
		s.internalServerError(w)
		return
	}

	data := &AdminStoriesPageData{
		BasePageData: types.BasePageData{
			Title:  "Stories",
			Notice: r.URL.Query().Get("notice"),
			Error:  r.URL.Query().Get("error"),
		},
		Stories: stories,
	}

	if err := s.renderTemplate(w, r, "admin.stories", data); err != nil {
		s.logger.WithError(err).Error("failed to render admin stories page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePublishStory(w http.ResponseWriter, r *http.Request) {
	s.toggleStoryFlag(w, r, "is_published")
}

func (s *Service) handleFeatureStory(w http.ResponseWriter, r *http.Request) {
	s.toggleStoryFlag(w, r, "is_featured")
}

func (s *Service) toggleStoryFlag(w http.ResponseWriter, r *http.Request, flag string) {
	storyID := r.PathValue("storyID")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	story, err := s.storyRepo.Story(ctx, storyID)
	if err != nil {
		if errors.Is(err, types.ErrStoryNotFound) {
			s.redirectWithError(w, r, "/admin/stories", "story not found")
			return
		}

		s.logger.WithError(err).Error("failed to fetch story for flag toggle")
		s.internalServerError(w)
		return
	}

	var notice string
	switch flag {
	case "is_published":
		err = s.storyRepo.SetPublished(ctx, storyID, !story.IsPublished)
		notice = "Story published"
		if story.IsPublished {
			notice = "Story unpublished"
		}
	case "is_featured":
		err = s.storyRepo.SetFeatured(ctx, storyID, !story.IsFeatured)
		notice = "Story featured"
		if story.IsFeatured {
			notice = "Story unfeatured"
		}
	}

	if err != nil {
		s.logger.WithError(err).Error("failed to toggle story flag")
		s.redirectWithError(w, r, "/admin/stories", "unable to update story")
		return
	}

	s.redirectWithNotice(w, r, "/admin/stories", notice)
}

func (s *Service) handleAdminDeleteStory(w http.ResponseWriter, r *http.Request) {
	storyID := r.PathValue("storyID")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Empty owner scope is the admin override.
	err := s.storyRepo.DeleteStory(ctx, storyID, "")
	if err != nil {
		if errors.Is(err, types.ErrStoryNotFound) {
			s.redirectWithError(w, r, "/admin/stories", "story not found")
			return
		}

		s.logger.WithError(err).Error("failed to delete story as admin")
		s.redirectWithError(w, r, "/admin/stories", "unable to delete story")
		return
	}

	s.redirectWithNotice(w, r, "/admin/stories", "Story deleted")
}

func (s *Service) handleGetAdminSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limits, err := s.settingsRepo.Limits(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch limits for admin settings")
		s.internalServerError(w)
		return
	}

	invites, err := s.inviteRepo.AllInvites(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch admin invites")
		s.internalServerError(w)
		return
	}

	data := &AdminSettingsPageData{
		BasePageData: types.BasePageData{
			Title:  "Settings",
			Notice: r.URL.Query().Get("notice"),
			Error:  r.URL.Query().Get("error"),
		},
		Limits:  limits,
		Invites: invites,
	}

	if err := s.renderTemplate(w, r, "admin.settings", data); err != nil {
		s.logger.WithError(err).Error("failed to render admin settings page")
		s.internalServerError(w)
		return
	}
}

type settingsForm struct {
	MinContribution float64 `form:"min_contribution"`
	MaxContribution float64 `form:"max_contribution"`
}

func (s *Service) handlePostAdminSettings(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.redirectToLogin(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/admin/settings", "invalid form payload")
		return
	}

	var form settingsForm
	if err := decoder.Decode(&form, r.PostForm); err != nil {
		s.logger.WithError(err).Error("failed to decode settings form")
		s.redirectWithError(w, r, "/admin/settings", "invalid form payload")
		return
	}

	if form.MinContribution <= 0 {
		s.redirectWithError(w, r, "/admin/settings", "minimum contribution must be greater than zero")
		return
	}
	if form.MaxContribution < form.MinContribution {
		s.redirectWithError(w, r, "/admin/settings", "maximum contribution must not be below the minimum")
		return
	}

	limits := types.ContributionLimits{
		Min: form.MinContribution,
		Max: form.MaxContribution,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.settingsRepo.UpsertLimits(ctx, limits, userID); err != nil {
		s.logger.WithError(err).Error("failed to save contribution limits")
		s.redirectWithError(w, r, "/admin/settings", "unable to save settings")
		return
	}

	s.redirectWithNotice(w, r, "/admin/settings", "Contribution limits updated")
}

func (s *Service) handleCreateInvite(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.redirectToLogin(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/admin/settings", "invalid form payload")
		return
	}

	email := strings.ToLower(strings.TrimSpace(r.FormValue("email")))

	if verr := donation.ValidateSubscriptionEmail(email); verr != nil {
		s.redirectWithError(w, r, "/admin/settings", verr.Message)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err = s.inviteRepo.CreateInvite(ctx, email, userID, "admin")
	if err != nil {
		if errors.Is(err, types.ErrAlreadyInvited) {
			s.redirectWithError(w, r, "/admin/settings", "that email has already been invited")
			return
		}

		s.logger.WithError(err).Error("failed to create admin invite")
		s.redirectWithError(w, r, "/admin/settings", "unable to create invite")
		return
	}

	s.redirectWithNotice(w, r, "/admin/settings", "Invite created. They'll become an admin on their next sign-in.")
}
