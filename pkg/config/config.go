package config

import "os"

type Config struct {
	Port               string
	Env                string
	PostgresConnStr    string
	MongoURI           string
	JWTSecret          string
	GitHubClientID     string
	GitHubClientSecret string
	ClientAppURL       string
	MailgunDomain      string
	MailgunAPIKey      string
	EmailFrom          string
	S3Bucket           string
	AWSRegion          string
}

func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		PostgresConnStr:    getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:           getEnv("MONGO_URI", ""),
		JWTSecret:          getEnv("JWT_SECRET", "supersecretjwtkey"),
		GitHubClientID:     getEnv("GITHUB_CLIENT_ID", ""),
		GitHubClientSecret: getEnv("GITHUB_CLIENT_SECRET", ""),
		ClientAppURL:       getEnv("CLIENT_APP_URL", "http://localhost:3000"),
		MailgunDomain:      getEnv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey:      getEnv("MAILGUN_API_KEY", ""),
		EmailFrom:          getEnv("EMAIL_FROM", "noreply@gatherly.app"),
		S3Bucket:           getEnv("S3_BUCKET", ""),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
