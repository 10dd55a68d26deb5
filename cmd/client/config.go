package main

type Config struct {
	APIURL      string `env:"API_URL,default=http://localhost:8080"`
	DisplayName string `env:"DISPLAY_NAME,required=true"`
	AvatarURL   string `env:"AVATAR_URL"`
	LogLevel    string `env:"LOG_LEVEL,default=WARN"`
}
