package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultServer  = "http://localhost:5000"
	defaultLogFile = "courtboard.log"
	configFileName = ".courtboardrc"
)

type Config struct {
	ServerURL     string
	SaveDirectory string
	CourtImage    string
	LogLevel      string
	LogFile       string

	// set from the command line only
	PlayID   string
	OpenFile string
}

func defaultConfig() *Config {
	return &Config{
		ServerURL: defaultServer,
		LogLevel:  "info",
		LogFile:   defaultLogFile,
	}
}

// loadConfig reads ~/.courtboardrc. A missing file yields the defaults.
func loadConfig() *Config {
	config := defaultConfig()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return config
	}

	file, err := os.Open(filepath.Join(homeDir, configFileName))
	if err != nil {
		return config
	}
	defer file.Close()

	config.parse(file, homeDir)
	return config
}

func (c *Config) parse(r io.Reader, homeDir string) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch strings.ToLower(key) {
		case "server", "server_url":
			c.ServerURL = value
		case "savedirectory", "save_directory", "savedir":
			c.SaveDirectory = expandPath(value, homeDir)
		case "courtimage", "court_image":
			c.CourtImage = expandPath(value, homeDir)
		case "loglevel", "log_level":
			c.LogLevel = strings.ToLower(value)
		case "logfile", "log_file":
			c.LogFile = expandPath(value, homeDir)
		}
	}
}

func expandPath(value, homeDir string) string {
	if strings.HasPrefix(value, "~") && homeDir != "" {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

// parseFlags applies command line overrides on top of the file settings.
func (c *Config) parseFlags(args []string) error {
	fs := flag.NewFlagSet("courtboard", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&c.ServerURL, "server", c.ServerURL, "play server base URL")
	fs.StringVar(&c.PlayID, "id", "", "load the play with this id on startup")
	fs.StringVar(&c.OpenFile, "open", "", "open a diagram document from a file")
	fs.StringVar(&c.CourtImage, "court", c.CourtImage, "court background image (png or jpeg)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 && c.OpenFile == "" {
		c.OpenFile = fs.Arg(0)
	}
	return c.validate()
}

func (c *Config) validate() error {
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w (must be debug, info, warn, or error)", err)
	}
	if !strings.HasPrefix(c.ServerURL, "http://") && !strings.HasPrefix(c.ServerURL, "https://") {
		return fmt.Errorf("invalid server URL: %q", c.ServerURL)
	}
	if c.PlayID != "" && c.OpenFile != "" {
		return fmt.Errorf("-id and -open cannot be used together")
	}
	return nil
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}
