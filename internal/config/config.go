package config

import (
	"bytes"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

type Config struct {
	Logger Logger `yaml:"logger"`
	HTTP   HTTP   `yaml:"http"`
	Store  Store  `yaml:"store"`
	Header Header `yaml:"header"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Logger: NewDefaultLoggerConfig(),
		HTTP:   NewDefaultHTTPConfig(),
		Store:  NewDefaultStoreConfig(),
		Header: NewDefaultHeaderConfig(),
	}
}

// Interpolate expands the environment variables referenced by values that
// were never decoded from a file, the defaults in particular.
func Interpolate(conf *Config) error {
	var buff bytes.Buffer

	if err := Dump(&buff, conf); err != nil {
		return errors.WithStack(err)
	}

	if err := Load(&buff, conf); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Validate reports the first setting that would prevent the server from
// starting.
func Validate(conf *Config) error {
	if conf.HTTP.Address == "" {
		return errors.New("http.address must not be empty")
	}

	if conf.HTTP.RateLimit.Rate <= 0 {
		return errors.Errorf("http.rateLimit.rate must be positive, got '%v'", conf.HTTP.RateLimit.Rate)
	}

	if conf.HTTP.RateLimit.Burst <= 0 {
		return errors.Errorf("http.rateLimit.burst must be positive, got '%v'", conf.HTTP.RateLimit.Burst)
	}

	if conf.Store.Type == "" {
		return errors.New("store.type must not be empty")
	}

	switch conf.Logger.Format {
	case LoggerFormatAuto, LoggerFormatText, LoggerFormatJSON, LoggerFormatTint:
	default:
		return errors.Errorf("unknown logger.format '%s'", conf.Logger.Format)
	}

	return nil
}

func LoadFile(path string, conf *Config) error {
	file, err := os.OpenFile(path, os.O_RDONLY, os.ModePerm)
	if err != nil {
		return errors.WithStack(err)
	}

	defer file.Close()

	if err := Load(file, conf); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func Load(r io.Reader, conf *Config) error {
	decoder := yaml.NewDecoder(r)

	if err := decoder.Decode(conf); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

var sections = map[string]yaml.CommentMap{
	"$.http":   NewHTTPConfigCommentMap(),
	"$.store":  NewStoreConfigCommentMap(),
	"$.logger": NewLoggerConfigCommentMap(),
	"$.header": NewHeaderConfigCommentMap(),
}

func commentMap() yaml.CommentMap {
	comments := yaml.CommentMap{}
	for sectionPath, sectionComments := range sections {
		for path, lines := range sectionComments {
			comments[sectionPath+path] = lines
		}
	}

	return comments
}

// Dump writes conf as a commented yaml document.
func Dump(w io.Writer, conf *Config) error {
	encoder := yaml.NewEncoder(w, yaml.WithComment(commentMap()))
	defer encoder.Close()

	if err := encoder.Encode(conf); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
