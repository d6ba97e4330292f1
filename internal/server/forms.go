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

func (s *Service) handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/about", "invalid form payload")
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	subject := strings.TrimSpace(r.FormValue("subject"))
	message := strings.TrimSpace(r.FormValue("message"))
	submissionType := strings.TrimSpace(r.FormValue("submission_type"))
	if submissionType == "" {
		submissionType = "general"
	}

	verr := donation.ValidateContact(donation.ContactSubmission{
		Name:    name,
		Email:   email,
		Message: message,
	})
	if verr != nil {
		s.redirectWithError(w, r, "/about", verr.Message)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.formsRepo.CreateContactSubmission(ctx, name, email, subject, message, submissionType); err != nil {
		s.logger.WithError(err).Error("failed to submit contact form")
		s.redirectWithError(w, r, "/about", "unable to submit your message, please try again")
		return
	}

	s.redirectWithNotice(w, r, "/about", "Thanks for reaching out. We'll get back to you soon.")
}

func (s *Service) handleSubscribeSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/", "invalid form payload")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	subscriptionType := strings.TrimSpace(r.FormValue("subscription_type"))
	if subscriptionType == "" {
		subscriptionType = "newsletter"
	}

	if verr := donation.ValidateSubscriptionEmail(email); verr != nil {
		s.redirectWithError(w, r, "/", verr.Message)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := s.formsRepo.CreateEmailSubscription(ctx, strings.ToLower(email), subscriptionType)
	if err != nil {
		if errors.Is(err, types.ErrAlreadySubscribed) {
			s.redirectWithNotice(w, r, "/", "You're already subscribed!")
			return
		}

		s.logger.WithError(err).Error("failed to submit email subscription")
		s.redirectWithError(w, r, "/", "unable to subscribe, please try again")
		return
	}

	s.redirectWithNotice(w, r, "/", "You're subscribed. Welcome aboard!")
}
