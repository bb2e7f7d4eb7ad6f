package config

import (
	"fmt"
	"os"
)

func Load() (*Config, error) {
	addr := os.Getenv("VOICEDIARY_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	dbPath := os.Getenv("VOICEDIARY_DB")
	if dbPath == "" {
		dbPath = "voicediary.db"
	}

	usersPath := os.Getenv("VOICEDIARY_USERS")
	if usersPath == "" {
		usersPath = "users.yml"
	}

	timezone := os.Getenv("TZ")
	if timezone == "" {
		timezone = "UTC"
	}

	transcriberConfig, err := loadTranscriberConfig()
	if err != nil {
		return nil, err
	}

	extractorConfig, err := loadExtractorConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Addr:        addr,
		DBPath:      dbPath,
		UsersPath:   usersPath,
		Timezone:    timezone,
		Transcriber: transcriberConfig,
		Extractor:   extractorConfig,
		Storage:     loadStorageConfig(),
		Bots:        loadMultiBotConfig(),
		Reminder:    loadReminderConfig(),
	}, nil
}

func loadTranscriberConfig() (TranscriberConfig, error) {
	apiKey := os.Getenv("DEEPGRAM_API_KEY")
	if apiKey == "" {
		return TranscriberConfig{}, fmt.Errorf("DEEPGRAM_API_KEY not set")
	}

	return TranscriberConfig{
		APIKey:  apiKey,
		Model:   os.Getenv("DEEPGRAM_MODEL"),
		BaseURL: os.Getenv("DEEPGRAM_BASE_URL"),
	}, nil
}

func loadExtractorConfig() (ExtractorConfig, error) {
	provider := os.Getenv("EXTRACTOR_PROVIDER")
	if provider == "" {
		provider = "openai"
	}

	apiKey, err := getAPIKey(provider)
	if err != nil {
		return ExtractorConfig{}, err
	}

	return ExtractorConfig{
		Provider: provider,
		APIKey:   apiKey,
		Model:    os.Getenv("EXTRACTOR_MODEL"),
		BaseURL:  os.Getenv("EXTRACTOR_BASE_URL"),
	}, nil
}

func getAPIKey(provider string) (string, error) {
	envKey := os.Getenv("EXTRACTOR_API_KEY")
	if envKey != "" {
		return envKey, nil
	}

	switch provider {
	case "openai":
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			return "", fmt.Errorf("OPENAI_API_KEY not set")
		}
		return key, nil
	case "gemini":
		key := os.Getenv("GEMINI_API_KEY")
		if key == "" {
			return "", fmt.Errorf("GEMINI_API_KEY not set")
		}
		return key, nil
	case "claude":
		key := os.Getenv("ANTHROPIC_API_KEY")
		if key == "" {
			return "", fmt.Errorf("ANTHROPIC_API_KEY not set")
		}
		return key, nil
	default:
		return "", fmt.Errorf("unknown provider: %s", provider)
	}
}

func loadStorageConfig() StorageConfig {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		endpoint = "minio:9000"
	}

	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")

	return StorageConfig{
		Enabled:   accessKey != "" && secretKey != "",
		Endpoint:  endpoint,
		AccessKey: accessKey,
		SecretKey: secretKey,
		UseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
	}
}

func loadMultiBotConfig() MultiBot {
	telegramToken := os.Getenv("TELEGRAM_TOKEN")
	discordToken := os.Getenv("DISCORD_TOKEN")

	return MultiBot{
		Telegram: BotInstance{
			Enabled: telegramToken != "",
			Token:   telegramToken,
		},
		Discord: BotInstance{
			Enabled: discordToken != "",
			Token:   discordToken,
		},
	}
}

func loadReminderConfig() ReminderConfig {
	schedule := os.Getenv("REMINDER_SCHEDULE")
	if schedule == "" {
		schedule = "0 20 * * *"
	}

	return ReminderConfig{
		Enabled:  os.Getenv("REMINDER_ENABLED") != "false",
		Schedule: schedule,
	}
}
