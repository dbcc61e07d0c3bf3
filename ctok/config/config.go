package config

import (
	"fmt"
	"path/filepath"
	"strings"

	internal "github.com/ZanzyTHEbar/character-tokenizer/ctok"
	"github.com/ZanzyTHEbar/character-tokenizer/ctok/tokenizer"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Tokenizer TokenizerConfig `mapstructure:"tokenizer"`
}

// TokenizerConfig stores the tokenizer construction parameters.
type TokenizerConfig struct {
	MaxWordLength        int      `mapstructure:"maxWordLength"`
	DoLowerCase          bool     `mapstructure:"doLowerCase"`
	DoBasicTokenize      bool     `mapstructure:"doBasicTokenize"`
	NeverSplit           []string `mapstructure:"neverSplit"`
	TokenizeChineseChars bool     `mapstructure:"tokenizeChineseChars"`
	StripAccents         *bool    `mapstructure:"stripAccents"`
	DoSplitOnPunc        bool     `mapstructure:"doSplitOnPunc"`
	UnkToken             string   `mapstructure:"unkToken"`
	SepToken             string   `mapstructure:"sepToken"`
	PadToken             string   `mapstructure:"padToken"`
	ClsToken             string   `mapstructure:"clsToken"`
	MaskToken            string   `mapstructure:"maskToken"`
	MLMVocabPath         string   `mapstructure:"mlmVocabPath"`
}

// ToTokenizerConfig converts the loaded values into the core package's
// construction parameters.
func (c TokenizerConfig) ToTokenizerConfig() tokenizer.Config {
	return tokenizer.Config{
		MaxWordLength:        c.MaxWordLength,
		DoLowerCase:          c.DoLowerCase,
		DoBasicTokenize:      c.DoBasicTokenize,
		NeverSplit:           c.NeverSplit,
		TokenizeChineseChars: c.TokenizeChineseChars,
		StripAccents:         c.StripAccents,
		DoSplitOnPunc:        c.DoSplitOnPunc,
		UnkToken:             c.UnkToken,
		SepToken:             c.SepToken,
		PadToken:             c.PadToken,
		ClsToken:             c.ClsToken,
		MaskToken:            c.MaskToken,
		MLMVocabPath:         c.MLMVocabPath,
	}
}

var AppConfig Config

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(configPath string) (*Config, error) {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("..")
		viper.AddConfigPath(filepath.Join("etc", internal.DefaultAppName))
		viper.AddConfigPath(internal.DefaultConfigPath)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Set default values, matching the pretrained character-BERT defaults
	viper.SetDefault("tokenizer.maxWordLength", internal.DefaultMaxWordLength)
	viper.SetDefault("tokenizer.doLowerCase", true)
	viper.SetDefault("tokenizer.doBasicTokenize", true)
	viper.SetDefault("tokenizer.tokenizeChineseChars", true)
	viper.SetDefault("tokenizer.doSplitOnPunc", true)
	viper.SetDefault("tokenizer.unkToken", internal.DefaultUnkToken)
	viper.SetDefault("tokenizer.sepToken", internal.DefaultSepToken)
	viper.SetDefault("tokenizer.padToken", internal.DefaultPadToken)
	viper.SetDefault("tokenizer.clsToken", internal.DefaultClsToken)
	viper.SetDefault("tokenizer.maskToken", internal.DefaultMaskToken)
	// NOTE: no default for tokenizer.stripAccents, unset means "follow
	// doLowerCase" in the core package.

	viper.AutomaticEnv()                                   // Read in environment variables that match
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // Replace dots with underscores in env var names e.g. tokenizer.maxWordLength becomes TOKENIZER_MAXWORDLENGTH

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; defaults will be used.
			logger := internal.GetLogger()
			logger.Debug().Msg("no config file found, using defaults")
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	err := viper.Unmarshal(&AppConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	return &AppConfig, nil
}
