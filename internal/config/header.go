package config

import "github.com/goccy/go-yaml"

type Header struct {
	Brand InterpolatedString `yaml:"brand"`
}

func NewDefaultHeaderConfig() Header {
	return Header{
		Brand: "${MASTHEAD_HEADER_BRAND:-Home}",
	}
}

func NewHeaderConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":       []*yaml.Comment{yaml.HeadComment(" Site header")},
		".brand": []*yaml.Comment{yaml.HeadComment(" Label of the home link")},
	}
}
