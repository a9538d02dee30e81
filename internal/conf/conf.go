package conf

import (
	"encoding/json"
	"fmt"
	"time"
)

// Bootstrap is the root of configs/config.yaml.
type Bootstrap struct {
	Server  *Server  `json:"server"`
	Data    *Data    `json:"data"`
	TMDB    *TMDB    `json:"tmdb"`
	Session *Session `json:"session"`
}

// Server holds transport settings
type Server struct {
	Http *HTTP `json:"http"`
}

// HTTP holds the Kratos HTTP server settings
type HTTP struct {
	Network string   `json:"network"`
	Addr    string   `json:"addr"`
	Timeout Duration `json:"timeout"`
}

// Data holds storage settings
type Data struct {
	Database *Database `json:"database"`
	Redis    *Redis    `json:"redis"`
}

// Database selects the GORM driver and DSN
type Database struct {
	Driver        string   `json:"driver"`
	Source        string   `json:"source"`
	SlowThreshold Duration `json:"slow_threshold"`
}

// Redis is optional; an empty Addr disables it.
type Redis struct {
	Addr         string   `json:"addr"`
	ReadTimeout  Duration `json:"read_timeout"`
	WriteTimeout Duration `json:"write_timeout"`
}

// TMDB configures the remote movie database client
type TMDB struct {
	SearchUrl    string   `json:"search_url"`
	DetailUrl    string   `json:"detail_url"`
	ImageBaseUrl string   `json:"image_base_url"`
	ApiKey       string   `json:"api_key"`
	Language     string   `json:"language"`
	Timeout      Duration `json:"timeout"`
}

// Session configures the signed cookie that carries add-movie workflow state
type Session struct {
	Name   string `json:"name"`
	Secret string `json:"secret"`
	MaxAge int    `json:"max_age"`
	Secure bool   `json:"secure"`
}

// Duration decodes "1.5s" style strings as well as plain nanosecond numbers.
type Duration struct {
	time.Duration
}

// AsDuration returns the wrapped value.
func (d Duration) AsDuration() time.Duration {
	return d.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		if value == "" {
			d.Duration = 0
			return nil
		}
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("invalid duration %v", v)
	}
}

// Defaults fills unset values with the ones the service expects when
// configs/config.yaml leaves them out.
func (b *Bootstrap) Defaults() {
	if b.Server == nil {
		b.Server = &Server{}
	}
	if b.Server.Http == nil {
		b.Server.Http = &HTTP{}
	}
	if b.Server.Http.Addr == "" {
		b.Server.Http.Addr = "0.0.0.0:8000"
	}
	if b.Data == nil {
		b.Data = &Data{}
	}
	if b.Data.Database == nil {
		b.Data.Database = &Database{}
	}
	if b.Data.Database.Driver == "" {
		b.Data.Database.Driver = "sqlite"
	}
	if b.Data.Database.Source == "" {
		b.Data.Database.Source = "movies.db"
	}
	if b.Data.Redis == nil {
		b.Data.Redis = &Redis{}
	}
	if b.TMDB == nil {
		b.TMDB = &TMDB{}
	}
	if b.TMDB.SearchUrl == "" {
		b.TMDB.SearchUrl = "https://api.themoviedb.org/3/search/movie"
	}
	if b.TMDB.DetailUrl == "" {
		b.TMDB.DetailUrl = "https://api.themoviedb.org/3/movie"
	}
	if b.TMDB.ImageBaseUrl == "" {
		b.TMDB.ImageBaseUrl = "https://image.tmdb.org/t/p/w500"
	}
	if b.TMDB.Language == "" {
		b.TMDB.Language = "en-US"
	}
	if b.Session == nil {
		b.Session = &Session{}
	}
	if b.Session.Name == "" {
		b.Session.Name = "top-movies-session"
	}
	if b.Session.MaxAge == 0 {
		b.Session.MaxAge = 86400 * 7
	}
}
