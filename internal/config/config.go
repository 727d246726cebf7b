package config

import (
    "fmt"
    "log"
    "strings"

    "github.com/spf13/viper"
)

type Config struct {
    Server struct {
        Port     string
        LogLevel string
    }
    Call struct {
        DialDelayMs    int
        LineGapMs      int
        ResolveDelayMs int
    }
    Money struct {
        Locale string
    }
    Eleven struct {
        APIKey  string
        VoiceID string
    }
    UI struct {
        TokenSecret   string
        TokenExpMin   int
        TokenSkewSecs int
    }
}

func Load() Config {
    v := viper.New()
    v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
    v.AutomaticEnv()

    // Defaults
    v.SetDefault("server.port", 8080)
    v.SetDefault("server.log_level", "info")

    v.SetDefault("call.dial_delay_ms", 1500)
    v.SetDefault("call.line_gap_ms", 1800)
    v.SetDefault("call.resolve_delay_ms", 1500)

    v.SetDefault("money.locale", "en-US")

    v.SetDefault("ui.token_exp_min", 720)
    v.SetDefault("ui.token_skew_secs", 30)

    // Map envs
    v.BindEnv("server.port", "PORT")
    v.BindEnv("server.log_level", "LOG_LEVEL")

    v.BindEnv("call.dial_delay_ms", "CALL_DIAL_DELAY_MS")
    v.BindEnv("call.line_gap_ms", "CALL_LINE_GAP_MS")
    v.BindEnv("call.resolve_delay_ms", "CALL_RESOLVE_DELAY_MS")

    v.BindEnv("money.locale", "MONEY_LOCALE")

    v.BindEnv("elevenlabs.api_key", "ELEVENLABS_API_KEY")
    v.BindEnv("elevenlabs.voice_id", "ELEVENLABS_VOICE_ID")

    v.BindEnv("ui.token_secret", "UI_TOKEN_SECRET")
    v.BindEnv("ui.token_exp_min", "UI_TOKEN_EXP_MIN")
    v.BindEnv("ui.token_skew_secs", "UI_TOKEN_SKEW_SECS")

    var c Config
    c.Server.Port = toString(v.Get("server.port"))
    c.Server.LogLevel = v.GetString("server.log_level")

    c.Call.DialDelayMs = v.GetInt("call.dial_delay_ms")
    c.Call.LineGapMs = v.GetInt("call.line_gap_ms")
    c.Call.ResolveDelayMs = v.GetInt("call.resolve_delay_ms")

    c.Money.Locale = v.GetString("money.locale")

    c.Eleven.APIKey = v.GetString("elevenlabs.api_key")
    c.Eleven.VoiceID = v.GetString("elevenlabs.voice_id")

    c.UI.TokenSecret = v.GetString("ui.token_secret")
    c.UI.TokenExpMin = v.GetInt("ui.token_exp_min")
    c.UI.TokenSkewSecs = v.GetInt("ui.token_skew_secs")

    log.Printf("config loaded: port=%s dial_delay_ms=%d", c.Server.Port, c.Call.DialDelayMs)
    return c
}

func toString(v any) string { return fmt.Sprint(v) }
