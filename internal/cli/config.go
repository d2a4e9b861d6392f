package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator"
	"github.com/happyhackingspace/textvec/stem"
	"github.com/happyhackingspace/textvec/tokenize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configName is the base name of the config file, looked up in the working
// directory and in ~/.config/textvec.
const configName = "textvec"

// tokenizerSettings select and configure the tokenizer shared by the text
// commands. Every field can come from a flag, a TEXTVEC_ environment
// variable or the config file, in that order of precedence.
type tokenizerSettings struct {
	Tokenizer  string `mapstructure:"tokenizer" validate:"oneof=regexp unicode vtext char sentence unicode-sentence"`
	Pattern    string `mapstructure:"pattern" validate:"required,regexp"`
	Lang       string `mapstructure:"lang"`
	Window     int    `mapstructure:"window" validate:"min=1"`
	WordBounds bool   `mapstructure:"word-bounds"`
	Stem       string `mapstructure:"stem" validate:"omitempty,stemlang"`
}

var defaultTokenizer = tokenizerSettings{
	Tokenizer: "regexp",
	Pattern:   tokenize.DefaultPattern,
	Lang:      "en",
	Window:    tokenize.DefaultWindow,
}

// loadConfig reads the config file and environment for cmd. Flags set on the
// command line win over both.
func (c *CLI) loadConfig(cmd *cobra.Command) error {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", configName))
	}
	if c.configFile != "" {
		v.SetConfigFile(c.configFile)
	}
	v.SetEnvPrefix("TEXTVEC")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("tokenizer", defaultTokenizer.Tokenizer)
	v.SetDefault("pattern", defaultTokenizer.Pattern)
	v.SetDefault("lang", defaultTokenizer.Lang)
	v.SetDefault("window", defaultTokenizer.Window)
	v.SetDefault("word-bounds", defaultTokenizer.WordBounds)
	v.SetDefault("stem", defaultTokenizer.Stem)

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
		slog.Debug("No config file loaded")
	} else {
		slog.Debug("Config loaded", "file", v.ConfigFileUsed())
	}

	c.conf = v
	return nil
}

var settingsValidator = newSettingsValidator()

func newSettingsValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("regexp", func(fl validator.FieldLevel) bool {
		_, err := regexp.Compile(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("stemlang", func(fl validator.FieldLevel) bool {
		_, err := stem.New(fl.Field().String())
		return err == nil
	})
	return v
}

func validateSettings(s any) error {
	err := settingsValidator.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", strings.ToLower(e.Field()), translateError(e)))
	}
	return fmt.Errorf("invalid settings: %s", strings.Join(msgs, "; "))
}

func translateError(e validator.FieldError) string {
	switch e.ActualTag() {
	case "required":
		return "value is empty"
	case "regexp":
		return "invalid regular expression"
	case "stemlang":
		return fmt.Sprintf("unsupported stemmer language %q", e.Value())
	case "oneof":
		return fmt.Sprintf("%v is not one of %s", e.Value(), e.Param())
	case "min":
		return fmt.Sprintf("%v is below %s", e.Value(), e.Param())
	default:
		return fmt.Sprintf("invalid value (%s)", e.Tag())
	}
}

// tokenizerSettings returns the merged and validated tokenizer settings.
func (c *CLI) tokenizerSettings() (tokenizerSettings, error) {
	s := defaultTokenizer
	if err := c.conf.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("decode settings: %w", err)
	}
	return s, validateSettings(s)
}

// tokenizer builds the tokenizer the settings describe.
func (c *CLI) tokenizer() (tokenize.Tokenizer, error) {
	s, err := c.tokenizerSettings()
	if err != nil {
		return nil, err
	}

	var tok tokenize.Tokenizer
	switch s.Tokenizer {
	case "regexp":
		tok, err = tokenize.NewRegexpTokenizer(s.Pattern)
	case "unicode":
		tok = tokenize.NewUnicodeWordTokenizer(s.WordBounds)
	case "vtext":
		tok = tokenize.NewVTextTokenizer(s.Lang)
	case "char":
		tok, err = tokenize.NewCharacterTokenizer(s.Window)
	case "sentence":
		tok = tokenize.NewPunctuationSentenceTokenizer()
	case "unicode-sentence":
		tok = tokenize.NewUnicodeSentenceTokenizer()
	}
	if err != nil {
		return nil, err
	}

	if s.Stem != "" {
		stemmer, err := stem.New(s.Stem)
		if err != nil {
			return nil, err
		}
		tok = stem.NewTokenizer(tok, stemmer)
	}
	slog.Debug("Tokenizer ready", "tokenizer", s.Tokenizer, "stem", s.Stem)
	return tok, nil
}

func addTokenizerFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("tokenizer", defaultTokenizer.Tokenizer, "Tokenizer: regexp, unicode, vtext, char, sentence or unicode-sentence")
	f.String("pattern", defaultTokenizer.Pattern, "Token pattern for the regexp tokenizer")
	f.String("lang", defaultTokenizer.Lang, "Language rules for the vtext tokenizer")
	f.Int("window", defaultTokenizer.Window, "Window size for the char tokenizer")
	f.Bool("word-bounds", defaultTokenizer.WordBounds, "Keep punctuation segments with the unicode tokenizer")
	f.String("stem", defaultTokenizer.Stem, "Stem tokens with the Snowball stemmer for this language")
}
