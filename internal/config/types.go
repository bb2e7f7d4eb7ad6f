package config

type Config struct {
	Addr        string
	DBPath      string
	UsersPath   string
	Timezone    string
	Transcriber TranscriberConfig
	Extractor   ExtractorConfig
	Storage     StorageConfig
	Bots        MultiBot
	Reminder    ReminderConfig
}

type TranscriberConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type ExtractorConfig struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

type StorageConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

type MultiBot struct {
	Telegram BotInstance
	Discord  BotInstance
}

type BotInstance struct {
	Enabled bool
	Token   string
}

type ReminderConfig struct {
	Enabled  bool
	Schedule string
}
