package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	DatabaseURL        string
	JWTSecret          string
	SessionTTL         time.Duration
	OTPTTL             time.Duration
	AllowOrigins       []string
	LogstashTCPAddr    string
	SMTPHost           string
	SMTPPort           string
	SMTPUsername       string
	SMTPPassword       string
	SMTPFrom           string
	RecaptchaSecret    string
	RecaptchaVerifyURL string
	MinIOEndpoint      string
	MinIOAccessKey     string
	MinIOSecretKey     string
	MinIOUseSSL        bool
	MinIOBucketResumes string
	MinIOPublicURL     string
	ResumeMaxBytes     int64
	Skills             []string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	sessionTTL := 24 * time.Hour
	if v, err := time.ParseDuration(getenv("SESSION_TTL", "24h")); err == nil && v > 0 {
		sessionTTL = v
	}

	otpTTL := 10 * time.Minute
	if v, err := time.ParseDuration(getenv("OTP_TTL", "10m")); err == nil && v > 0 {
		otpTTL = v
	}

	resumeMax := int64(5 * 1024 * 1024)
	if v, err := strconv.ParseInt(getenv("RESUME_MAX_BYTES", "5242880"), 10, 64); err == nil && v > 0 {
		resumeMax = v
	}

	skills := defaultSkills
	if raw := strings.TrimSpace(getenv("SKILLS", "")); raw != "" {
		skills = splitAndTrim(raw)
	}

	return Config{
		Port:               getenv("PORT", "8080"),
		DatabaseURL:        must("DATABASE_URL"),
		JWTSecret:          must("JWT_SECRET"),
		SessionTTL:         sessionTTL,
		OTPTTL:             otpTTL,
		AllowOrigins:       splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		LogstashTCPAddr:    getenv("LOGSTASH_TCP_ADDR", ""),
		SMTPHost:           getenv("SMTP_HOST", ""),
		SMTPPort:           getenv("SMTP_PORT", ""),
		SMTPUsername:       getenv("SMTP_USERNAME", ""),
		SMTPPassword:       getenv("SMTP_PASSWORD", ""),
		SMTPFrom:           getenv("SMTP_FROM", ""),
		RecaptchaSecret:    must("RECAPTCHA_SECRET_KEY"),
		RecaptchaVerifyURL: getenv("RECAPTCHA_VERIFY_URL", "https://www.google.com/recaptcha/api/siteverify"),
		MinIOEndpoint:      must("MINIO_ENDPOINT"),
		MinIOAccessKey:     must("MINIO_ACCESS_KEY"),
		MinIOSecretKey:     must("MINIO_SECRET_KEY"),
		MinIOUseSSL:        getenv("MINIO_USE_SSL", "false") == "true",
		MinIOBucketResumes: getenv("MINIO_BUCKET_RESUMES", "placement-resumes"),
		MinIOPublicURL:     getenv("MINIO_PUBLIC_URL", ""),
		ResumeMaxBytes:     resumeMax,
		Skills:             skills,
	}
}

// defaultSkills is the read-only lookup list served by the skills endpoint.
// Override with the SKILLS env var (comma separated).
var defaultSkills = []string{
	"C", "C++", "C#", "Java", "Python", "JavaScript", "TypeScript",
	"React", "Angular", "Vue.js", "Node.js", "Express",
	"MongoDB", "Mongoose", "SQL", "MySQL", "PostgreSQL",
	"HTML", "CSS", "Bootstrap", "Tailwind CSS",
	"Git", "GitHub", "Docker", "Kubernetes",
	"AWS", "Azure", "GCP", "PHP", "Ruby", "Swift",
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
