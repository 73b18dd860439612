package config

import "os"

type OAuthClient struct {
	ClientID     string
	ClientSecret string
}

type Config struct {
	OAuthDefaults     map[string]OAuthClient
	OAuthRedirectBase string
	PostgresURI       string
	FrontendURL       string
	SecretKey         string
	CookieName        string
}

func LoadConfig() *Config {
	return &Config{
		OAuthDefaults: map[string]OAuthClient{
			"youtube": {
				ClientID:     getEnv("YOUTUBE_CLIENT_ID", ""),
				ClientSecret: getEnv("YOUTUBE_CLIENT_SECRET", ""),
			},
			"facebook": {
				ClientID:     getEnv("FACEBOOK_CLIENT_ID", ""),
				ClientSecret: getEnv("FACEBOOK_CLIENT_SECRET", ""),
			},
			"instagram": {
				ClientID:     getEnv("INSTAGRAM_CLIENT_ID", ""),
				ClientSecret: getEnv("INSTAGRAM_CLIENT_SECRET", ""),
			},
			"linkedin": {
				ClientID:     getEnv("LINKEDIN_CLIENT_ID", ""),
				ClientSecret: getEnv("LINKEDIN_CLIENT_SECRET", ""),
			},
		},
		OAuthRedirectBase: getEnv("OAUTH_REDIRECT_BASE", "http://localhost:3000"),
		PostgresURI:       getEnv("POSTGRES_URI", ""),
		FrontendURL:       getEnv("FRONTEND_URL", "http://localhost:5173"),
		SecretKey:         getEnv("SECRET_KEY", ""),
		CookieName:        getEnv("COOKIE_NAME", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
