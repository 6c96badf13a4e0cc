package config

import (
	"fmt"

	"github.com/bornholm/masthead/pkg/kv/cookie"
	"github.com/goccy/go-yaml"
)

type Store struct {
	Type    InterpolatedString `yaml:"type"`
	Options *InterpolatedMap   `yaml:"options"`
}

func NewDefaultStoreConfig() Store {
	return Store{
		Type: InterpolatedString(fmt.Sprintf("${MASTHEAD_STORE_TYPE:-%s}", cookie.Type)),
		Options: &InterpolatedMap{
			Data: map[string]any{
				"name": "${MASTHEAD_STORE_COOKIE_NAME:-" + cookie.DefaultName + "}",
				"path": "${MASTHEAD_STORE_PATH:-masthead.db}",
			},
		},
	}
}

func NewStoreConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":         []*yaml.Comment{yaml.HeadComment(" Credential token storage")},
		".type":    []*yaml.Comment{yaml.HeadComment(" Storage type", " Available: cookie, sqlite, memory")},
		".options": []*yaml.Comment{yaml.HeadComment(" Storage options", " cookie: name", " sqlite: path")},
	}
}
