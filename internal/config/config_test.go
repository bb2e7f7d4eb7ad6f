package config

import (
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"VOICEDIARY_ADDR", "VOICEDIARY_DB", "VOICEDIARY_USERS", "TZ",
		"DEEPGRAM_API_KEY", "DEEPGRAM_MODEL", "DEEPGRAM_BASE_URL",
		"EXTRACTOR_PROVIDER", "EXTRACTOR_API_KEY", "EXTRACTOR_MODEL", "EXTRACTOR_BASE_URL",
		"OPENAI_API_KEY", "GEMINI_API_KEY", "ANTHROPIC_API_KEY",
		"MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY", "MINIO_USE_SSL",
		"TELEGRAM_TOKEN", "DISCORD_TOKEN",
		"REMINDER_SCHEDULE", "REMINDER_ENABLED",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEEPGRAM_API_KEY", "dg-key")
	t.Setenv("OPENAI_API_KEY", "oai-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Errorf("default addr mismatch: %s", cfg.Addr)
	}
	if cfg.DBPath != "voicediary.db" {
		t.Errorf("default db path mismatch: %s", cfg.DBPath)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("default timezone mismatch: %s", cfg.Timezone)
	}
	if cfg.Extractor.Provider != "openai" {
		t.Errorf("default provider mismatch: %s", cfg.Extractor.Provider)
	}
	if cfg.Extractor.APIKey != "oai-key" {
		t.Errorf("api key mismatch: %s", cfg.Extractor.APIKey)
	}
	if cfg.Storage.Enabled {
		t.Error("storage should be disabled without credentials")
	}
	if cfg.Bots.Telegram.Enabled || cfg.Bots.Discord.Enabled {
		t.Error("bots should be disabled without tokens")
	}
	if !cfg.Reminder.Enabled || cfg.Reminder.Schedule != "0 20 * * *" {
		t.Errorf("reminder defaults mismatch: %+v", cfg.Reminder)
	}
}

func TestLoadMissingTranscriberKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "oai-key")

	if _, err := Load(); err == nil {
		t.Error("expected error without DEEPGRAM_API_KEY")
	}
}

func TestLoadProviderKeyResolution(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEEPGRAM_API_KEY", "dg-key")
	t.Setenv("EXTRACTOR_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "gem-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Extractor.Provider != "gemini" || cfg.Extractor.APIKey != "gem-key" {
		t.Errorf("gemini key not resolved: %+v", cfg.Extractor)
	}
}

func TestLoadExplicitKeyWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEEPGRAM_API_KEY", "dg-key")
	t.Setenv("EXTRACTOR_PROVIDER", "claude")
	t.Setenv("EXTRACTOR_API_KEY", "explicit")
	t.Setenv("ANTHROPIC_API_KEY", "fallback")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Extractor.APIKey != "explicit" {
		t.Errorf("EXTRACTOR_API_KEY should override the provider key, got %s", cfg.Extractor.APIKey)
	}
}

func TestLoadMissingProviderKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEEPGRAM_API_KEY", "dg-key")
	t.Setenv("EXTRACTOR_PROVIDER", "claude")

	if _, err := Load(); err == nil {
		t.Error("expected error without ANTHROPIC_API_KEY")
	}
}

func TestLoadStorageEnabled(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEEPGRAM_API_KEY", "dg-key")
	t.Setenv("OPENAI_API_KEY", "oai-key")
	t.Setenv("MINIO_ACCESS_KEY", "ak")
	t.Setenv("MINIO_SECRET_KEY", "sk")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if !cfg.Storage.Enabled {
		t.Error("storage should be enabled with both credentials")
	}
	if cfg.Storage.Endpoint != "minio:9000" {
		t.Errorf("default endpoint mismatch: %s", cfg.Storage.Endpoint)
	}
	if !cfg.Storage.UseSSL {
		t.Error("ssl flag not honored")
	}
}

func TestLoadBotsEnabled(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEEPGRAM_API_KEY", "dg-key")
	t.Setenv("OPENAI_API_KEY", "oai-key")
	t.Setenv("TELEGRAM_TOKEN", "tg-token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if !cfg.Bots.Telegram.Enabled || cfg.Bots.Telegram.Token != "tg-token" {
		t.Errorf("telegram bot config mismatch: %+v", cfg.Bots.Telegram)
	}
	if cfg.Bots.Discord.Enabled {
		t.Error("discord should stay disabled")
	}
}

func TestLoadReminderDisabled(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEEPGRAM_API_KEY", "dg-key")
	t.Setenv("OPENAI_API_KEY", "oai-key")
	t.Setenv("REMINDER_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Reminder.Enabled {
		t.Error("reminder should be disabled")
	}
}
