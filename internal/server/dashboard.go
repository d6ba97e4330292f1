package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"prismfund/internal/donation"
	"prismfund/internal/utils"
	"prismfund/pkg/types"
)

type DashboardPageData struct {
	types.BasePageData
	Profile          *types.Profile
	Donations        []types.Donation
	Totals           donation.StatusTotals
	Allocation       []donation.CategoryTotal
	Trend            []donation.MonthBucket
	Stories          []*types.CommunityStory
	EngagedCampaigns []*types.Campaign
}

func (s *Service) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.redirectToLogin(w, r)
		return
	}

	email, _ := ctx.Value(contextKeyEmail).(string)

	profile, err := s.profileRepo.Profile(ctx, userID)
	if err != nil && !errors.Is(err, types.ErrProfileNotFound) {
		s.logger.WithError(err).Error("failed to fetch profile for dashboard")
		s.internalServerError(w)
		return
	}

	donations, err := s.donationRepo.DonationsByEmail(ctx, email)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch member donations")
		s.internalServerError(w)
		return
	}

	stories, err := s.storyRepo.StoriesByUser(ctx, userID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch member stories")
		s.internalServerError(w)
		return
	}

	engagedIDs, err := s.engagementRepo.EngagedCampaignIDs(ctx, userID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch engaged campaigns")
		s.internalServerError(w)
		return
	}

	campaigns, err := s.campaignRepo.ActiveCampaigns(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch campaigns for dashboard")
		s.internalServerError(w)
		return
	}

	engaged := make([]*types.Campaign, 0, len(engagedIDs))
	for _, c := range campaigns {
		if engagedIDs[c.ID] {
			engaged = append(engaged, c)
		}
	}

	data := &DashboardPageData{
		BasePageData: types.BasePageData{
			Title:  "My Dashboard",
			Notice: r.URL.Query().Get("notice"),
			Error:  r.URL.Query().Get("error"),
		},
		Profile:          profile,
		Donations:        donations,
		Totals:           donation.TotalsByStatus(donations),
		Allocation:       donation.CategoryTotals(donations),
		Trend:            donation.MonthlyTrend(donations, time.Now(), 6),
		Stories:          stories,
		EngagedCampaigns: engaged,
	}

	if err := s.renderTemplate(w, r, "page.dashboard", data); err != nil {
		s.logger.WithError(err).Error("failed to render dashboard")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.redirectToLogin(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/dashboard", "invalid form payload")
		return
	}

	displayName := strings.TrimSpace(r.FormValue("display_name"))
	bio := strings.TrimSpace(r.FormValue("bio"))

	if !required(displayName) {
		s.redirectWithError(w, r, "/dashboard", "display name is required")
		return
	}

	var bioPtr *string
	if bio != "" {
		bioPtr = utils.StringPtr(bio)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.profileRepo.UpdateProfile(ctx, userID, utils.StringPtr(displayName), bioPtr); err != nil {
		s.logger.WithError(err).Error("failed to update profile")
		s.redirectWithError(w, r, "/dashboard", "unable to update profile")
		return
	}

	s.redirectWithNotice(w, r, "/dashboard", "Profile updated")
}

func (s *Service) handleCreateStory(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.redirectToLogin(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/dashboard", "invalid form payload")
		return
	}

	title := strings.TrimSpace(sanitizer.Sanitize(r.FormValue("title")))
	content := strings.TrimSpace(sanitizer.Sanitize(r.FormValue("content")))
	excerpt := strings.TrimSpace(sanitizer.Sanitize(r.FormValue("excerpt")))

	if !required(title) || !required(content) {
		s.redirectWithError(w, r, "/dashboard", "title and story content are required")
		return
	}

	var excerptPtr *string
	if excerpt != "" {
		excerptPtr = utils.StringPtr(excerpt)
	}

	story := &types.CommunityStory{
		UserID:  userID,
		Title:   title,
		Content: content,
		Excerpt: excerptPtr,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.storyRepo.CreateStory(ctx, story); err != nil {
		s.logger.WithError(err).Error("failed to create story")
		s.redirectWithError(w, r, "/dashboard", "unable to save your story")
		return
	}

	s.redirectWithNotice(w, r, "/dashboard", "Story submitted. It will appear publicly once approved.")
}

func (s *Service) handleUpdateStory(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.redirectToLogin(w, r)
		return
	}

	storyID := r.PathValue("storyID")

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/dashboard", "invalid form payload")
		return
	}

	title := strings.TrimSpace(sanitizer.Sanitize(r.FormValue("title")))
	content := strings.TrimSpace(sanitizer.Sanitize(r.FormValue("content")))
	excerpt := strings.TrimSpace(sanitizer.Sanitize(r.FormValue("excerpt")))

	if !required(title) || !required(content) {
		s.redirectWithError(w, r, "/dashboard", "title and story content are required")
		return
	}

	var excerptPtr *string
	if excerpt != "" {
		excerptPtr = utils.StringPtr(excerpt)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Scoped to the author; publish and feature flags are untouched here.
	err = s.storyRepo.UpdateContent(ctx, storyID, userID, title, content, excerptPtr)
	if err != nil {
		if errors.Is(err, types.ErrStoryNotFound) {
			s.redirectWithError(w, r, "/dashboard", "story not found")
			return
		}

		s.logger.WithError(err).Error("failed to update story")
		s.redirectWithError(w, r, "/dashboard", "unable to update your story")
		return
	}

	s.redirectWithNotice(w, r, "/dashboard", "Story updated")
}

func (s *Service) handleDeleteStory(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.redirectToLogin(w, r)
		return
	}

	storyID := r.PathValue("storyID")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err = s.storyRepo.DeleteStory(ctx, storyID, userID)
	if err != nil {
		if errors.Is(err, types.ErrStoryNotFound) {
			s.redirectWithError(w, r, "/dashboard", "story not found")
			return
		}

		s.logger.WithError(err).Error("failed to delete story")
		s.redirectWithError(w, r, "/dashboard", "unable to delete your story")
		return
	}

	s.redirectWithNotice(w, r, "/dashboard", "Story deleted")
}
