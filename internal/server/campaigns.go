package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"prismfund/pkg/types"

	"github.com/sirupsen/logrus"
)

func (s *Service) handleJoinCampaign(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.redirectToLogin(w, r)
		return
	}

	campaignID := r.PathValue("campaignID")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := s.campaignRepo.Campaign(ctx, campaignID); err != nil {
		if errors.Is(err, types.ErrCampaignNotFound) {
			http.NotFound(w, r)
			return
		}

		s.logger.WithError(err).Error("failed to fetch campaign for join")
		s.internalServerError(w)
		return
	}

	// Duplicate joins are absorbed by the unique pair constraint; repeating
	// the action lands on the same notice.
	inserted, err := s.engagementRepo.Join(ctx, campaignID, userID)
	if err != nil {
		s.logger.WithError(err).Error("failed to join campaign")
		s.redirectWithError(w, r, "/campaigns", "unable to join campaign")
		return
	}

	if inserted {
		s.logger.WithFields(logrus.Fields{
			"campaign_id": campaignID,
			"user_id":     userID,
		}).Info("member joined campaign")
	}

	s.redirectWithNotice(w, r, "/campaigns", "You're supporting this campaign")
}

func (s *Service) handleLeaveCampaign(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.redirectToLogin(w, r)
		return
	}

	campaignID := r.PathValue("campaignID")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	existed, err := s.engagementRepo.Leave(ctx, campaignID, userID)
	if err != nil {
		s.logger.WithError(err).Error("failed to leave campaign")
		s.redirectWithError(w, r, "/campaigns", "unable to leave campaign")
		return
	}

	if !existed {
		s.redirectWithNotice(w, r, "/campaigns", "You weren't supporting this campaign")
		return
	}

	s.redirectWithNotice(w, r, "/campaigns", "You've left this campaign")
}
