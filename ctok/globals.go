package internal

import (
	"log"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

var (
	// DefaultConfigPath is the default path to the config file
	DefaultAppName    = "ctok"
	DefaultConfigPath = filepath.Join(getHomeDir(), ".config", DefaultAppName)
)

const (
	// DefaultMaxWordLength is the number of character ids per token. Words
	// whose UTF-8 encoding exceeds DefaultMaxWordLength-2 bytes are truncated.
	DefaultMaxWordLength = 50

	// Default special token strings (BERT conventions)
	DefaultUnkToken  = "[UNK]"
	DefaultSepToken  = "[SEP]"
	DefaultPadToken  = "[PAD]"
	DefaultClsToken  = "[CLS]"
	DefaultMaskToken = "[MASK]"

	// DefaultMLMVocabFilename is the on-disk name of the auxiliary word
	// vocabulary used by the masked-language-model head.
	DefaultMLMVocabFilename = "mlm_vocab.txt"
)

func getHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current working directory if home directory is unavailable
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			// Last resort - use tmp directory
			log.Printf("Unable to get home or working directory, using /tmp: %v", err)
			return "/tmp"
		}
		log.Printf("Unable to get home directory, using current working directory: %v", err)
		return cwd
	}
	return homeDir
}

// GetLogger returns a properly configured zerolog logger instance
func GetLogger() zerolog.Logger {
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
