package core

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Debug    bool
	TestMode bool
	Env      string // DEV (local; default), TEST, QA, PROD
	AppName  string
	Build    string

	// HomeworkDueIn is how far from now newly assigned homework is due.
	HomeworkDueIn time.Duration

	Server struct {
		Addr            string
		ShutdownTimeout time.Duration
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	// Teacher holds the demo credentials checked at login. Not a security
	// boundary; see core/auth.
	Teacher struct {
		Username string
		Password string
	}

	RollbarToken string
}

// NewConfig loads the app configuration from defaults, an optional .env file
// and environment variables (prefixed with the current ENV).
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "SSV Teachers App")
	conf.SetDefault("build", "develop")
	conf.SetDefault("homeworkDueIn", 7*24*time.Hour)
	conf.SetDefault("serverAddr", ":8000")
	conf.SetDefault("serverShutdownTimeout", 5*time.Second)
	conf.SetDefault("redisAddr", "localhost:6379")
	conf.SetDefault("redisPassword", "")
	conf.SetDefault("redisDB", 0)
	conf.SetDefault("teacherUsername", "teacher")
	conf.SetDefault("teacherPassword", "teacher123")
	conf.SetDefault("rollbarToken", "")

	env := os.Getenv("ENV")
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := ".env." + strings.ToLower(env)
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	c := &Config{
		Debug:         conf.GetBool("debug"),
		TestMode:      conf.GetBool("testMode"),
		Env:           env,
		AppName:       conf.GetString("appName"),
		Build:         conf.GetString("build"),
		HomeworkDueIn: conf.GetDuration("homeworkDueIn"),
		RollbarToken:  conf.GetString("rollbarToken"),
	}
	c.Server.Addr = conf.GetString("serverAddr")
	c.Server.ShutdownTimeout = conf.GetDuration("serverShutdownTimeout")
	c.Redis.Addr = conf.GetString("redisAddr")
	c.Redis.Password = conf.GetString("redisPassword")
	c.Redis.DB = conf.GetInt("redisDB")
	c.Teacher.Username = conf.GetString("teacherUsername")
	c.Teacher.Password = conf.GetString("teacherPassword")
	return c
}
