package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"prismfund/internal/utils"
	"prismfund/pkg/types"
)

type AdminCampaignsPageData struct {
	types.BasePageData
	Campaigns []*types.Campaign
}

// campaignForm mirrors the new-campaign form. A blank goal decodes to zero,
// matching the original behavior of treating the goal as optional.
type campaignForm struct {
	Title       string  `form:"title"`
	Description string  `form:"description"`
	Category    string  `form:"category"`
	Region      string  `form:"region"`
	GoalAmount  float64 `form:"goal_amount"`
}

func validateCampaignInput(form campaignForm) string {
	if !required(form.Title) {
		return "campaign title is required"
	}
	if !required(form.Description) {
		return "campaign description is required"
	}
	if !required(form.Category) {
		return "campaign category is required"
	}
	if form.GoalAmount < 0 {
		return "goal amount cannot be negative"
	}
	return ""
}

func (s *Service) handleAdminCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := s.campaignRepo.AllCampaigns(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch campaigns for admin")
		s.internalServerError(w)
		return
	}

	data := &AdminCampaignsPageData{
		BasePageData: types.BasePageData{
			Title:  "Campaigns",
			Notice: r.URL.Query().Get("notice"),
			Error:  r.URL.Query().Get("error"),
		},
		Campaigns: campaigns,
	}

	if err := s.renderTemplate(w, r, "admin.campaigns", data); err != nil {
		s.logger.WithError(err).Error("failed to render admin campaigns page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/admin/campaigns", "invalid form payload")
		return
	}

	var form campaignForm
	if err := decoder.Decode(&form, r.PostForm); err != nil {
		s.logger.WithError(err).Error("failed to decode campaign form")
		s.redirectWithError(w, r, "/admin/campaigns", "invalid form payload")
		return
	}

	if msg := validateCampaignInput(form); msg != "" {
		s.redirectWithError(w, r, "/admin/campaigns", msg)
		return
	}

	campaign := &types.Campaign{
		Title:       strings.TrimSpace(form.Title),
		Description: utils.StringPtr(strings.TrimSpace(form.Description)),
		Category:    strings.TrimSpace(form.Category),
		GoalAmount:  form.GoalAmount,
		Status:      types.CampaignStatusActive,
	}

	if region := strings.TrimSpace(form.Region); region != "" {
		campaign.Region = utils.StringPtr(region)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.campaignRepo.CreateCampaign(ctx, campaign); err != nil {
		s.logger.WithError(err).Error("failed to create campaign")
		s.redirectWithError(w, r, "/admin/campaigns", "unable to create campaign")
		return
	}

	s.logger.WithField("campaign_id", campaign.ID).Info("campaign created")

	s.redirectWithNotice(w, r, "/admin/campaigns", "Campaign created")
}

func (s *Service) handleToggleCampaignStatus(w http.ResponseWriter, r *http.Request) {
	campaignID := r.PathValue("campaignID")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	campaign, err := s.campaignRepo.Campaign(ctx, campaignID)
	if err != nil {
		if errors.Is(err, types.ErrCampaignNotFound) {
			s.redirectWithError(w, r, "/admin/campaigns", "campaign not found")
			return
		}

		s.logger.WithError(err).Error("failed to fetch campaign for status toggle")
		s.internalServerError(w)
		return
	}

	campaign.Status = campaign.Status.Toggled()

	if err := s.campaignRepo.UpdateCampaign(ctx, campaignID, campaign); err != nil {
		s.logger.WithError(err).Error("failed to update campaign status")
		s.redirectWithError(w, r, "/admin/campaigns", "unable to update campaign")
		return
	}

	notice := "Campaign completed"
	if campaign.Status == types.CampaignStatusActive {
		notice = "Campaign reactivated"
	}

	s.redirectWithNotice(w, r, "/admin/campaigns", notice)
}

func (s *Service) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID := r.PathValue("campaignID")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := s.campaignRepo.DeleteCampaign(ctx, campaignID)
	if err != nil {
		if errors.Is(err, types.ErrCampaignNotFound) {
			s.redirectWithError(w, r, "/admin/campaigns", "campaign not found")
			return
		}

		s.logger.WithError(err).Error("failed to delete campaign")
		s.redirectWithError(w, r, "/admin/campaigns", "unable to delete campaign")
		return
	}

	s.redirectWithNotice(w, r, "/admin/campaigns", "Campaign deleted")
}
