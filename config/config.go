package config

import (
	"os"
	"strconv"
)

// Config holds everything read from the environment at startup.
type Config struct {
	Port          string
	MongoURI      string
	JWTSecret     string
	CloudinaryURL string

	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPass      string
	EmailFrom     string
	OperatorEmail string

	FrontendURL string

	VAPIDPublicKey  string
	VAPIDPrivateKey string
	VAPIDSubscriber string

	// BookingCancelAny restores the permissive cancel behavior where any
	// authenticated caller may cancel any booking by id.
	BookingCancelAny bool
}

func Load() Config {
	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "587"))

	return Config{
		Port:          getEnv("PORT", "8080"),
		MongoURI:      getEnv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),

		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      smtpPort,
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
		EmailFrom:     getEnv("EMAIL_FROM", "bookings@tourly.app"),
		OperatorEmail: os.Getenv("OPERATOR_EMAIL"),

		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		VAPIDPublicKey:  os.Getenv("VAPID_PUBLIC_KEY"),
		VAPIDPrivateKey: os.Getenv("VAPID_PRIVATE_KEY"),
		VAPIDSubscriber: getEnv("VAPID_SUBSCRIBER", "mailto:admin@tourly.app"),

		BookingCancelAny: os.Getenv("BOOKING_CANCEL_ANY") == "true",
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
