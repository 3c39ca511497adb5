package services

import (
	"github.com/anjiri1684/tutoring_api/database"
	"go.uber.org/zap"
)

// Services is everything the HTTP layer and the jobs talk to.
type Services struct {
	Sessions      *SessionService
	Profiles      *ProfileService
	Notifications *NotificationService
	Auth          *AuthService
	Schedule      *ScheduleService
	Reports       *ReportExporter
	Avatars       *AvatarService
}

type Options struct {
	Tokens    TokenConfig
	Publisher Publisher
	Renderer  PDFRenderer
	Uploader  Uploader
}

func New(store *database.Store, sim *Simulator, logger *zap.Logger, opts Options) *Services {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Renderer == nil {
		opts.Renderer = ChromeRenderer{}
	}
	sessions := NewSessionService(store, sim, logger.Named("sessions"))
	profiles := NewProfileService(store, sim, logger.Named("profiles"))
	return &Services{
		Sessions:      sessions,
		Profiles:      profiles,
		Notifications: NewNotificationService(store, sim, logger.Named("notifications"), opts.Publisher),
		Auth:          NewAuthService(store, sim, logger.Named("auth"), opts.Tokens),
		Schedule:      NewScheduleService(store, sim, logger.Named("schedule")),
		Reports:       NewReportExporter(sessions, profiles, opts.Renderer, opts.Uploader, logger.Named("reports")),
		Avatars:       NewAvatarService(profiles, opts.Uploader),
	}
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
