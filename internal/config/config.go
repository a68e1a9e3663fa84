package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort  int    `mapstructure:"SERVER_PORT"`
	MetricsPort int    `mapstructure:"METRICS_PORT"`
	CronSecret  string `mapstructure:"CRON_SECRET"`
	SiteBaseURL string `mapstructure:"SITE_BASE_URL"`

	SourceBaseURL     string `mapstructure:"SOURCE_BASE_URL"`
	SourceAPIToken    string `mapstructure:"SOURCE_API_TOKEN"`
	SourceBaseID      string `mapstructure:"SOURCE_BASE_ID"`
	SourcePostsTable  string `mapstructure:"SOURCE_POSTS_TABLE"`
	SourceGuidesTable string `mapstructure:"SOURCE_GUIDES_TABLE"`

	VAPIDPublicKey  string `mapstructure:"VAPID_PUBLIC_KEY"`
	VAPIDPrivateKey string `mapstructure:"VAPID_PRIVATE_KEY"`
	VAPIDSubscriber string `mapstructure:"VAPID_SUBSCRIBER"`
	PushTTL         int    `mapstructure:"PUSH_TTL"`

	PushTransport        string `mapstructure:"PUSH_TRANSPORT"`
	KafkaBrokers         string `mapstructure:"KAFKA_BROKERS"`
	TopicPushDeliveries  string `mapstructure:"TOPIC_PUSH_DELIVERIES"`
	TopicDeadLetterQueue string `mapstructure:"TOPIC_DEAD_LETTER_QUEUE"`
	FallbackEnabled      bool   `mapstructure:"FALLBACK_ENABLED"`
	FallbackTransport    string `mapstructure:"FALLBACK_TRANSPORT"`

	SchedulerEnabled       bool          `mapstructure:"SCHEDULER_ENABLED"`
	SchedulerCheckInterval time.Duration `mapstructure:"SCHEDULER_CHECK_INTERVAL"`

	HTTPRequestTimeout     time.Duration `mapstructure:"HTTP_REQUEST_TIMEOUT"`
	ExternalRequestTimeout time.Duration `mapstructure:"EXTERNAL_REQUEST_TIMEOUT"`

	RateLimitRequests int           `mapstructure:"RATE_LIMIT_REQUESTS"`
	RateLimitWindow   time.Duration `mapstructure:"RATE_LIMIT_WINDOW"`

	RetryCount           int           `mapstructure:"RETRY_COUNT"`
	RetryBackoff         time.Duration `mapstructure:"RETRY_BACKOFF"`
	RetryableStatusCodes []int         `mapstructure:"RETRYABLE_STATUS_CODES"`

	CBSlidingWindowSize        int           `mapstructure:"CB_SLIDING_WINDOW_SIZE"`
	CBMinimumRequiredCalls     int           `mapstructure:"CB_MINIMUM_REQUIRED_CALLS"`
	CBFailureRateThreshold     int           `mapstructure:"CB_FAILURE_RATE_THRESHOLD"`
	CBPermittedCallsInHalfOpen int           `mapstructure:"CB_PERMITTED_CALLS_IN_HALF_OPEN"`
	CBWaitDurationInOpenState  time.Duration `mapstructure:"CB_WAIT_DURATION_IN_OPEN_STATE"`
}

func LoadConfig() *Config {
	setDefaults()

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	_ = viper.ReadInConfig()

	config := &Config{}

	if err := viper.Unmarshal(config); err != nil {
		return getDefaultConfig()
	}

	return config
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("METRICS_PORT", 9095)
	viper.SetDefault("SITE_BASE_URL", "https://content-notifier.example.com")

	viper.SetDefault("SOURCE_BASE_URL", "https://api.airtable.com")
	viper.SetDefault("SOURCE_POSTS_TABLE", "Posts")
	viper.SetDefault("SOURCE_GUIDES_TABLE", "Guides")

	viper.SetDefault("PUSH_TTL", 60)

	viper.SetDefault("PUSH_TRANSPORT", "WEBPUSH")
	viper.SetDefault("KAFKA_BROKERS", "kafka:9092")
	viper.SetDefault("TOPIC_PUSH_DELIVERIES", "push-deliveries")
	viper.SetDefault("TOPIC_DEAD_LETTER_QUEUE", "push-deliveries-dlq")
	viper.SetDefault("FALLBACK_ENABLED", false)
	viper.SetDefault("FALLBACK_TRANSPORT", "Kafka")

	viper.SetDefault("SCHEDULER_ENABLED", false)
	viper.SetDefault("SCHEDULER_CHECK_INTERVAL", "5m")

	viper.SetDefault("HTTP_REQUEST_TIMEOUT", "5s")
	viper.SetDefault("EXTERNAL_REQUEST_TIMEOUT", "10s")

	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_WINDOW", "1m")

	viper.SetDefault("RETRY_COUNT", 3)
	viper.SetDefault("RETRY_BACKOFF", "1s")
	viper.SetDefault("RETRYABLE_STATUS_CODES", []int{408, 429, 500, 502, 503, 504})

	viper.SetDefault("CB_SLIDING_WINDOW_SIZE", 10)
	viper.SetDefault("CB_MINIMUM_REQUIRED_CALLS", 5)
	viper.SetDefault("CB_FAILURE_RATE_THRESHOLD", 50)
	viper.SetDefault("CB_PERMITTED_CALLS_IN_HALF_OPEN", 2)
	viper.SetDefault("CB_WAIT_DURATION_IN_OPEN_STATE", "10s")
}

func getDefaultConfig() *Config {
	return &Config{
		ServerPort:  8080,
		MetricsPort: 9095,
		SiteBaseURL: "https://content-notifier.example.com",

		SourceBaseURL:     "https://api.airtable.com",
		SourcePostsTable:  "Posts",
		SourceGuidesTable: "Guides",

		PushTTL: 60,

		PushTransport:        "WEBPUSH",
		KafkaBrokers:         "kafka:9092",
		TopicPushDeliveries:  "push-deliveries",
		TopicDeadLetterQueue: "push-deliveries-dlq",
		FallbackEnabled:      false,
		FallbackTransport:    "Kafka",

		SchedulerEnabled:       false,
		SchedulerCheckInterval: 5 * time.Minute,

		HTTPRequestTimeout:     5 * time.Second,
		ExternalRequestTimeout: 10 * time.Second,

		RateLimitRequests: 100,
		RateLimitWindow:   1 * time.Minute,

		RetryCount:           3,
		RetryBackoff:         1 * time.Second,
		RetryableStatusCodes: []int{408, 429, 500, 502, 503, 504},

		CBSlidingWindowSize:        10,
		CBMinimumRequiredCalls:     5,
		CBFailureRateThreshold:     50,
		CBPermittedCallsInHalfOpen: 2,
		CBWaitDurationInOpenState:  10 * time.Second,
	}
}
