package main

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/pay2post/pay2post/internal/services"
)

type Config struct {
	endpoint          string
	dsn               string
	processorEndpoint string
	processorAPIKey   string
	telegramEndpoint  string
	telegramToken     string
	channelID         string
	payCurrency       string
	callbackURL       string
	reconcileInterval time.Duration
	logLevel          string
	env               string
	authSecretKey     string
}

func generateRandomString(length int) string {
	b := make([]byte, length)
	_, err := rand.Read(b)
	if err != nil {
		panic(err)
	}
	return base64.StdEncoding.EncodeToString(b)
}

func isSupportedPayCurrency(currency string) bool {
	for _, supported := range services.SupportedPayCurrencies {
		if currency == supported {
			return true
		}
	}
	return false
}

func NewConfig() Config {
	var (
		endpoint          string
		dsn               string
		processorEndpoint string
		payCurrency       string
		intervalSeconds   int
	)

	flag.StringVar(&endpoint, "a", "localhost:8090", "address and port to run server")
	flag.StringVar(&dsn, "d", "", "data source name for database connection")
	flag.StringVar(&processorEndpoint, "p", "https://api.nowpayments.io", "payment processor endpoint")
	flag.StringVar(&payCurrency, "c", "btc", "settlement currency for invoices")
	flag.IntVar(&intervalSeconds, "i", 30, "reconciliation interval in seconds")
	flag.Parse()

	if address := os.Getenv("RUN_ADDRESS"); address != "" {
		endpoint = address
	}

	if d := os.Getenv("DATABASE_URI"); d != "" {
		dsn = d
	}

	if p := os.Getenv("PROCESSOR_ENDPOINT"); p != "" {
		processorEndpoint = p
	}

	if c := os.Getenv("PAY_CURRENCY"); c != "" {
		payCurrency = c
	}

	if !isSupportedPayCurrency(payCurrency) {
		log.Fatalf("Settlement currency %q isn't supported by the processor", payCurrency)
	}

	if i := os.Getenv("RECONCILE_INTERVAL"); i != "" {
		parsed, err := strconv.Atoi(i)
		if err != nil || parsed <= 0 {
			log.Fatalf("RECONCILE_INTERVAL has to be a positive number of seconds, got %q", i)
		}
		intervalSeconds = parsed
	}

	processorAPIKey := os.Getenv("PROCESSOR_API_KEY")
	if processorAPIKey == "" {
		log.Printf("WARNING: PROCESSOR_API_KEY is empty, invoice creation will be rejected by the processor\n")
	}

	telegramToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	if telegramToken == "" {
		log.Printf("WARNING: TELEGRAM_BOT_TOKEN is empty, publishing will fail\n")
	}

	telegramEndpoint := os.Getenv("TELEGRAM_ENDPOINT")

	channelID := os.Getenv("CHANNEL_ID")
	if channelID == "" {
		channelID = "@pay2talks"
	}

	// The callback URL is passed to the processor but this service doesn't
	// consume webhooks; payment confirmation goes through polling.
	callbackURL := os.Getenv("IPN_CALLBACK_URL")
	if callbackURL == "" {
		callbackURL = "https://example.com"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "error"
	}

	env := os.Getenv("ENV")
	if env == "" {
		env = "production"
	}

	authSecretKey := os.Getenv("AUTH_SECRET_KEY")
	if authSecretKey == "" {
		if env == "production" {
			authSecretKey = generateRandomString(10)
			log.Printf("WARNING: AUTH_SECRET_KEY has to be defined for production environment\n")
		} else {
			authSecretKey = "development-key"
		}
	}

	return Config{
		endpoint:          endpoint,
		dsn:               dsn,
		processorEndpoint: processorEndpoint,
		processorAPIKey:   processorAPIKey,
		telegramEndpoint:  telegramEndpoint,
		telegramToken:     telegramToken,
		channelID:         channelID,
		payCurrency:       payCurrency,
		callbackURL:       callbackURL,
		reconcileInterval: time.Duration(intervalSeconds) * time.Second,
		logLevel:          logLevel,
		env:               env,
		authSecretKey:     authSecretKey,
	}
}
