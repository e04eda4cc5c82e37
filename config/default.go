package config

func GetDefault() Config {
	return Config{
		DateFormat:    "02.01.2006",
		TimeFormat:    "15:04",
		FallbackTheme: "light",
		OutputDir:     ".github",
	}
}
