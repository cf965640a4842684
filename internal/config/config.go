// Package config loads the node's settings from defaults, an optional
// ac-node config file and environment variables, in that order of
// precedence (lowest first).
package config

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Settings is the materialized configuration for one run.
type Settings struct {
	Broker   string
	Prefix   string
	Username string
	Password string

	LogLevel string
	HTTPAddr string

	Poll        time.Duration
	Heartbeat   time.Duration
	EchoTimeout time.Duration

	// BaselineCm is the empty-doorway reading; a sensor triggers below
	// (BaselineCm - MarginCm).
	BaselineCm float64
	MarginCm   float64

	VacancyTimeout time.Duration
	TargetTemp     int

	QueueSize int

	// BCM pin assignments.
	PinTrigInner int
	PinEchoInner int
	PinTrigOuter int
	PinEchoOuter int
	PinIR        int
	PinDHT       int
}

// New builds a viper instance with the node's defaults, search paths and
// environment binding.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("broker", "tcp://192.168.1.200:1883")
	v.SetDefault("prefix", "acnode")
	v.SetDefault("username", "")
	v.SetDefault("password", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("http_addr", ":80")
	v.SetDefault("poll", "250ms")
	v.SetDefault("heartbeat", "15m")
	v.SetDefault("echo_timeout", "30ms")
	v.SetDefault("baseline_cm", 120.0)
	v.SetDefault("margin_cm", 30.0)
	v.SetDefault("vacancy_timeout", "5m")
	v.SetDefault("target_temp", 16)
	v.SetDefault("queue_size", 16)
	v.SetDefault("pin_trig_inner", 23)
	v.SetDefault("pin_echo_inner", 24)
	v.SetDefault("pin_trig_outer", 25)
	v.SetDefault("pin_echo_outer", 8)
	v.SetDefault("pin_ir", 18)
	v.SetDefault("pin_dht", 4)

	v.SetConfigName("ac-node")
	v.AddConfigPath("./")
	v.AddConfigPath("/etc/ac-node")
	v.AddConfigPath("/etc")

	v.SetEnvPrefix("ACNODE")
	v.AutomaticEnv()

	return v
}

// Read pulls in the config file, if one exists, and materializes Settings.
func Read(v *viper.Viper) (Settings, error) {
	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; defaults and env carry the node.
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return Settings{}, fmt.Errorf("read config file: %w", err)
		}
	}
	return materialize(v)
}

func materialize(v *viper.Viper) (Settings, error) {
	s := Settings{
		Broker:         v.GetString("broker"),
		Prefix:         v.GetString("prefix"),
		Username:       v.GetString("username"),
		Password:       v.GetString("password"),
		LogLevel:       v.GetString("log_level"),
		HTTPAddr:       v.GetString("http_addr"),
		Poll:           v.GetDuration("poll"),
		Heartbeat:      v.GetDuration("heartbeat"),
		EchoTimeout:    v.GetDuration("echo_timeout"),
		BaselineCm:     v.GetFloat64("baseline_cm"),
		MarginCm:       v.GetFloat64("margin_cm"),
		VacancyTimeout: v.GetDuration("vacancy_timeout"),
		TargetTemp:     v.GetInt("target_temp"),
		QueueSize:      v.GetInt("queue_size"),
		PinTrigInner:   v.GetInt("pin_trig_inner"),
		PinEchoInner:   v.GetInt("pin_echo_inner"),
		PinTrigOuter:   v.GetInt("pin_trig_outer"),
		PinEchoOuter:   v.GetInt("pin_echo_outer"),
		PinIR:          v.GetInt("pin_ir"),
		PinDHT:         v.GetInt("pin_dht"),
	}

	if s.Poll <= 0 {
		return Settings{}, fmt.Errorf("poll interval must be positive, got %v", s.Poll)
	}
	if s.MarginCm >= s.BaselineCm {
		return Settings{}, fmt.Errorf("margin %.0fcm must be below baseline %.0fcm", s.MarginCm, s.BaselineCm)
	}
	if s.TargetTemp < 16 || s.TargetTemp > 25 {
		return Settings{}, fmt.Errorf("target temp %d out of range 16-25", s.TargetTemp)
	}
	return s, nil
}

// Watch re-materializes the settings whenever the config file changes and
// hands them to onChange. Invalid edits are reported and ignored.
func Watch(v *viper.Viper, onChange func(Settings), onError func(error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		s, err := materialize(v)
		if err != nil {
			onError(fmt.Errorf("config change %s: %w", e.Name, err))
			return
		}
		onChange(s)
	})
	v.WatchConfig()
}
