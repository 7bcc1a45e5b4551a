package main

import (
	"io"
	"log"
	"os"

	"github.com/placementcell/placement-portal/internal/config"
	"github.com/placementcell/placement-portal/internal/logging"
	"github.com/placementcell/placement-portal/internal/repository/minio"
	"github.com/placementcell/placement-portal/internal/repository/postgres"
	"github.com/placementcell/placement-portal/internal/service"
	transporthttp "github.com/placementcell/placement-portal/internal/transport/http"
	"github.com/placementcell/placement-portal/internal/transport/mail"
	"github.com/placementcell/placement-portal/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		shipper, err := logging.NewShipper(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("Warning: logstash disabled: %v", err)
		} else {
			defer shipper.Close()
			log.SetOutput(io.MultiWriter(os.Stderr, shipper))
		}
	}

	if err := postgres.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("running migrations: %v", err)
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connecting to postgres: %v", err)
	}
	defer db.Close()

	minioClient, err := minio.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
	if err != nil {
		log.Fatalf("connecting to minio: %v", err)
	}
	storage := minio.NewStorage(minioClient, cfg.MinIOPublicURL, cfg.MinIOUseSSL)

	users := postgres.NewUserRepo(db)
	profiles := postgres.NewProfileRepo(db)
	jobs := postgres.NewJobRepo(db)
	applications := postgres.NewApplicationRepo(db)

	mailer := mail.NewOTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	jwtManager := util.NewJWTManager(cfg.JWTSecret, cfg.SessionTTL)

	authService := service.NewAuthService(users, mailer, jwtManager, cfg.OTPTTL)
	captcha := service.NewCaptchaVerifier(cfg.RecaptchaSecret, cfg.RecaptchaVerifyURL)
	jobService := service.NewJobService(jobs)
	applicationService := service.NewApplicationService(applications, jobs, profiles)
	profileService := service.NewProfileService(profiles, storage, cfg.MinIOBucketResumes, cfg.ResumeMaxBytes)
	skillService := service.NewSkillService(cfg.Skills)

	e := transporthttp.NewRouter(cfg.AllowOrigins)
	transporthttp.RegisterAuth(e, authService, captcha)
	transporthttp.RegisterJobs(e, authService, jobService)
	transporthttp.RegisterApplications(e, authService, applicationService)
	transporthttp.RegisterProfiles(e, authService, profileService)
	transporthttp.RegisterSkills(e, authService, skillService)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
