package config

import (
	"log/slog"

	"github.com/goccy/go-yaml"
)

const (
	LoggerFormatAuto = "auto"
	LoggerFormatText = "text"
	LoggerFormatJSON = "json"
	LoggerFormatTint = "tint"
)

type Logger struct {
	Level  InterpolatedInt    `yaml:"level"`
	Format InterpolatedString `yaml:"format"`
}

func NewDefaultLoggerConfig() Logger {
	return Logger{
		Level:  InterpolatedInt(slog.LevelInfo),
		Format: "${MASTHEAD_LOGGER_FORMAT:-" + LoggerFormatAuto + "}",
	}
}

func NewLoggerConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":        []*yaml.Comment{yaml.HeadComment(" Logger configuration")},
		".level":  []*yaml.Comment{yaml.HeadComment(" Logging level (debug: -4, info: 0, warn: 4, error: 8)")},
		".format": []*yaml.Comment{yaml.HeadComment(" Output format: auto, text, json or tint", " auto uses tint at debug level and text otherwise")},
	}
}
