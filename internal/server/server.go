package server

import (
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"prismfund/internal/store"
	"prismfund/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sirupsen/logrus"
)

//go:embed templates static
var uiFS embed.FS
var decoder = form.NewDecoder()

// sanitizer strips all markup from member-authored story fields before they
// are stored.
var sanitizer = bluemonday.StrictPolicy()

type Service struct {
	logger *logrus.Logger
	config *types.Config

	donationRepo   *store.DonationRepository
	settingsRepo   *store.SettingsRepository
	campaignRepo   *store.CampaignRepository
	engagementRepo *store.EngagementRepository
	storyRepo      *store.StoryRepository
	formsRepo      *store.FormsRepository
	profileRepo    *store.ProfileRepository
	inviteRepo     *store.InviteRepository

	templates *template.Template

	cognitoClient *cognitoidentityprovider.Client
	cookie        *securecookie.SecureCookie

	jwksCache *jwk.Cache
	jwksURL   string

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	cognitoClient *cognitoidentityprovider.Client,
	donationRepo *store.DonationRepository,
	settingsRepo *store.SettingsRepository,
	campaignRepo *store.CampaignRepository,
	engagementRepo *store.EngagementRepository,
	storyRepo *store.StoryRepository,
	formsRepo *store.FormsRepository,
	profileRepo *store.ProfileRepository,
	inviteRepo *store.InviteRepository,
	jwkCache *jwk.Cache,
	jwksURL string,
) (*Service, error) {
	mux := flow.New()

	hashKey, _ := base64.StdEncoding.DecodeString(config.CookieHashKey)
	blockKey, _ := base64.StdEncoding.DecodeString(config.CookieBlockKey)

	s := &Service{
		logger:        logger,
		config:        config,
		cognitoClient: cognitoClient,
		cookie:        securecookie.New(hashKey, blockKey),

		donationRepo:   donationRepo,
		settingsRepo:   settingsRepo,
		campaignRepo:   campaignRepo,
		engagementRepo: engagementRepo,
		storyRepo:      storyRepo,
		formsRepo:      formsRepo,
		profileRepo:    profileRepo,
		inviteRepo:     inviteRepo,

		jwksCache: jwkCache,
		jwksURL:   jwksURL,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	s.templates = templates

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/", s.handleHome, http.MethodGet)
	r.HandleFunc("/about", s.handleAbout, http.MethodGet)
	r.HandleFunc("/our-work", s.handleOurWork, http.MethodGet)
	r.HandleFunc("/impact", s.handleImpact, http.MethodGet)
	r.HandleFunc("/stories", s.handleStories, http.MethodGet)
	r.HandleFunc("/campaigns", s.handleCampaigns, http.MethodGet)

	r.HandleFunc("/donate", s.handleGetDonate, http.MethodGet)
	r.HandleFunc("/donate", s.handlePostDonate, http.MethodPost)
	r.HandleFunc("/donate/qr.png", s.handleDonateQR, http.MethodGet)

	r.HandleFunc("/forms/contact", s.handleContactSubmit, http.MethodPost)
	r.HandleFunc("/forms/subscribe", s.handleSubscribeSubmit, http.MethodPost)

	r.HandleFunc("/register", s.handleGetRegister, http.MethodGet)
	r.HandleFunc("/register", s.handlePostRegister, http.MethodPost)
	r.HandleFunc("/register/confirm", s.handleGetRegisterConfirm, http.MethodGet)
	r.HandleFunc("/register/confirm", s.handlePostRegisterConfirm, http.MethodPost)
	r.HandleFunc("/login", s.handleGetLogin, http.MethodGet)
	r.HandleFunc("/login", s.handlePostLogin, http.MethodPost)
	r.HandleFunc("/logout", s.handleLogout, http.MethodPost)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)

		r.HandleFunc("/dashboard", s.handleDashboard, http.MethodGet)
		r.HandleFunc("/dashboard/profile", s.handleUpdateProfile, http.MethodPost)

		r.HandleFunc("/dashboard/stories", s.handleCreateStory, http.MethodPost)
		r.HandleFunc("/dashboard/stories/:storyID", s.handleUpdateStory, http.MethodPost)
		r.HandleFunc("/dashboard/stories/:storyID/delete", s.handleDeleteStory, http.MethodPost)

		r.HandleFunc("/campaigns/:campaignID/join", s.handleJoinCampaign, http.MethodPost)
		r.HandleFunc("/campaigns/:campaignID/leave", s.handleLeaveCampaign, http.MethodPost)
	})

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)
		r.Use(s.RequireAdmin)

		r.HandleFunc("/admin", s.handleAdminDashboard, http.MethodGet)
		r.HandleFunc("/admin/donations", s.handleAdminDonations, http.MethodGet)
		r.HandleFunc("/admin/donations/:donationID/confirm", s.handleConfirmDonation, http.MethodPost)
		r.HandleFunc("/admin/donations/:donationID/reject", s.handleRejectDonation, http.MethodPost)
		r.HandleFunc("/admin/donors", s.handleAdminDonors, http.MethodGet)
		r.HandleFunc("/admin/campaigns", s.handleAdminCampaigns, http.MethodGet)
		r.HandleFunc("/admin/campaigns", s.handleCreateCampaign, http.MethodPost)
		r.HandleFunc("/admin/campaigns/:campaignID/status", s.handleToggleCampaignStatus, http.MethodPost)
		r.HandleFunc("/admin/campaigns/:campaignID/delete", s.handleDeleteCampaign, http.MethodPost)
		r.HandleFunc("/admin/stories", s.handleAdminStories, http.MethodGet)
		r.HandleFunc("/admin/stories/:storyID/publish", s.handlePublishStory, http.MethodPost)
		r.HandleFunc("/admin/stories/:storyID/feature", s.handleFeatureStory, http.MethodPost)
		r.HandleFunc("/admin/stories/:storyID/delete", s.handleAdminDeleteStory, http.MethodPost)
		r.HandleFunc("/admin/settings", s.handleGetAdminSettings, http.MethodGet)
		r.HandleFunc("/admin/settings", s.handlePostAdminSettings, http.MethodPost)
		r.HandleFunc("/admin/invites", s.handleCreateInvite, http.MethodPost)
	})

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	staticRoot, err := fs.Sub(uiFS, "static")
	if err != nil {
		s.logger.WithError(err).Fatal("failed to mount static assets")
	}
	r.Handle("/static/...", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot))), http.MethodGet)
}

func loadTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"usd": formatUSD,
		"usdExact": func(amount float64) string {
			return fmt.Sprintf("$%.2f", amount)
		},
		"date": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"derefOr": func(s *string, defaultVal string) string {
			if s == nil {
				return defaultVal
			}
			return *s
		},
	}

	t := template.New("").Funcs(funcMap)
	err := fs.WalkDir(uiFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		data, err := fs.ReadFile(uiFS, path)
		if err != nil {
			return fmt.Errorf("read template %s: %w", path, err)
		}

		if _, err := t.Parse(string(data)); err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) userIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(contextKeyUserID).(string)
	if !ok {
		return "", fmt.Errorf("user id not found in context")
	}
	return userID, nil
}
