package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds everything read from the environment at startup.
type Config struct {
	Port            string
	MongoURI        string
	MongoDBName     string
	JWTSecret       string
	TokenExpiry     int // hours
	AllowedOrigin   string
	BaseURL         string
	CloudinaryURL   string
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	VAPIDSubscriber string
	EnableDevRoutes bool
}

// LoadConfig reads the .env file (if present) and the environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, relying on environment variables")
	}

	expiry := 72
	if v := os.Getenv("TOKEN_EXPIRY_HOURS"); v != "" {
		if h, err := strconv.Atoi(v); err == nil {
			expiry = h
		}
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGO_DB_NAME", "foundic"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		TokenExpiry:     expiry,
		AllowedOrigin:   getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
		BaseURL:         getEnv("BASE_URL", "http://localhost:8080"),
		CloudinaryURL:   os.Getenv("CLOUDINARY_URL"),
		VAPIDPublicKey:  os.Getenv("VAPID_PUBLIC_KEY"),
		VAPIDPrivateKey: os.Getenv("VAPID_PRIVATE_KEY"),
		VAPIDSubscriber: getEnv("VAPID_SUBSCRIBER", "admin@foundic.app"),
		EnableDevRoutes: os.Getenv("ENABLE_DEV_ROUTES") == "true",
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
