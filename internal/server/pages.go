package server

import (
	"net/http"

	"prismfund/internal/donation"
	"prismfund/pkg/types"
)

type HomePageData struct {
	types.BasePageData
	Campaigns     []*types.Campaign
	FeaturedStory *types.CommunityStory
	Totals        donation.StatusTotals
	WalletAddress string
}

type StoriesPageData struct {
	types.BasePageData
	Stories []*types.CommunityStory
}

type CampaignsPageData struct {
	types.BasePageData
	Campaigns       []*types.Campaign
	SupporterCounts map[string]int
}

func (s *Service) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	campaigns, err := s.campaignRepo.ActiveCampaigns(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch active campaigns for home page")
		s.internalServerError(w)
		return
	}

	if len(campaigns) > 3 {
		campaigns = campaigns[:3]
	}

	donations, err := s.donationRepo.AllDonations(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch donations for home page")
		s.internalServerError(w)
		return
	}

	stories, err := s.storyRepo.PublishedStories(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch stories for home page")
		s.internalServerError(w)
		return
	}

	data := &HomePageData{
		BasePageData: types.BasePageData{
			Title:  "",
			Notice: r.URL.Query().Get("notice"),
			Error:  r.URL.Query().Get("error"),
		},
		Campaigns:     campaigns,
		Totals:        donation.TotalsByStatus(donations),
		WalletAddress: s.config.WalletAddress,
	}

	// Published feed is ordered featured-first, so the lead story is the
	// spotlight when one is set.
	if len(stories) > 0 && stories[0].IsFeatured {
		data.FeaturedStory = stories[0]
	}

	if err := s.renderTemplate(w, r, "page.home", data); err != nil {
		s.logger.WithError(err).Error("failed to render home page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleAbout(w http.ResponseWriter, r *http.Request) {
	data := &types.BasePageData{
		Title:  "About Us",
		Notice: r.URL.Query().Get("notice"),
		Error:  r.URL.Query().Get("error"),
	}

	if err := s.renderTemplate(w, r, "page.about", data); err != nil {
		s.logger.WithError(err).Error("failed to render about page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleOurWork(w http.ResponseWriter, r *http.Request) {
	data := &types.BasePageData{Title: "Our Work"}

	if err := s.renderTemplate(w, r, "page.ourwork", data); err != nil {
		s.logger.WithError(err).Error("failed to render our work page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleImpact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	donations, err := s.donationRepo.AllDonations(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch donations for impact page")
		s.internalServerError(w)
		return
	}

	data := &ImpactPageData{
		BasePageData: types.BasePageData{Title: "Our Impact"},
		Totals:       donation.TotalsByStatus(donations),
		Categories:   donation.CategoryTotals(donations),
	}

	if err := s.renderTemplate(w, r, "page.impact", data); err != nil {
		s.logger.WithError(err).Error("failed to render impact page")
		s.internalServerError(w)
		return
	}
}

type ImpactPageData struct {
	types.BasePageData
	Totals     donation.StatusTotals
	Categories []donation.CategoryTotal
}

func (s *Service) handleStories(w http.ResponseWriter, r *http.Request) {
	stories, err := s.storyRepo.PublishedStories(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch published stories")
		s.internalServerError(w)
		return
	}

	data := &StoriesPageData{
		BasePageData: types.BasePageData{Title: "Community Stories"},
		Stories:      stories,
	}

	if err := s.renderTemplate(w, r, "page.stories", data); err != nil {
		s.logger.WithError(err).Error("failed to render stories page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleCampaigns(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	campaigns, err := s.campaignRepo.ActiveCampaigns(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch active campaigns")
		s.internalServerError(w)
		return
	}

	counts, err := s.engagementRepo.SupporterCounts(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch supporter counts")
		s.internalServerError(w)
		return
	}

	data := &CampaignsPageData{
		BasePageData: types.BasePageData{
			Title:  "Campaigns",
			Notice: r.URL.Query().Get("notice"),
			Error:  r.URL.Query().Get("error"),
		},
		Campaigns:       campaigns,
		SupporterCounts: counts,
	}

	if err := s.renderTemplate(w, r, "page.campaigns", data); err != nil {
		s.logger.WithError(err).Error("failed to render campaigns page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
