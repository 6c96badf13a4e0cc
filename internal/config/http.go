package config

import (
	"time"

	"github.com/goccy/go-yaml"
)

type HTTP struct {
	Address   InterpolatedString `yaml:"address"`
	BaseURL   InterpolatedString `yaml:"baseUrl"`
	Session   Session            `yaml:"session"`
	RateLimit RateLimit          `yaml:"rateLimit"`
	Debug     InterpolatedBool   `yaml:"debug"`
}

type Session struct {
	Keys   InterpolatedStringSlice `yaml:"keys"`
	Cookie Cookie                  `yaml:"cookie"`
}

type Cookie struct {
	Path     InterpolatedString    `yaml:"path"`
	MaxAge   *InterpolatedDuration `yaml:"maxAge"`
	HTTPOnly InterpolatedBool      `yaml:"httpOnly"`
	Secure   InterpolatedBool      `yaml:"secure"`
}

type RateLimit struct {
	Rate  InterpolatedFloat `yaml:"rate"`
	Burst InterpolatedInt   `yaml:"burst"`
}

func NewDefaultHTTPConfig() HTTP {
	return HTTP{
		Address: "${MASTHEAD_HTTP_ADDRESS:-:8080}",
		BaseURL: "${MASTHEAD_HTTP_BASE_URL:-http://localhost:8080}",
		Session: Session{
			Keys: InterpolatedStringSlice{},
			Cookie: Cookie{
				Path:     "/",
				MaxAge:   NewInterpolatedDuration(7 * 24 * time.Hour),
				HTTPOnly: true,
				Secure:   false,
			},
		},
		RateLimit: RateLimit{
			Rate:  10,
			Burst: 20,
		},
		Debug: false,
	}
}

func NewHTTPConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":                       []*yaml.Comment{yaml.HeadComment(" Webserver configuration")},
		".address":               []*yaml.Comment{yaml.HeadComment(" Webserver's listening address")},
		".baseUrl":               []*yaml.Comment{yaml.HeadComment(" Public URL of the webserver")},
		".session.keys":          []*yaml.Comment{yaml.HeadComment(" Cookie secrets, newest first", " A random key is generated when empty: sessions do not survive restarts")},
		".session.cookie.maxAge": []*yaml.Comment{yaml.HeadComment(" Lifetime of the browser and storage cookies")},
		".rateLimit":             []*yaml.Comment{yaml.HeadComment(" Per browser rate limiting")},
		".rateLimit.rate":        []*yaml.Comment{yaml.HeadComment(" Sustained requests per second")},
		".rateLimit.burst":       []*yaml.Comment{yaml.HeadComment(" Maximum burst of requests")},
		".debug":                 []*yaml.Comment{yaml.HeadComment(" Expose runtime profiles under /debug/pprof")},
	}
}
