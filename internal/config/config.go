package config

import (
	"io"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/pborman/getopt/v2"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v2"

	"github.com/omniworld-xyz/builder/internal/logger"
)

// Config : structure to hold configuration
type Config struct {
	Builder  Builder `yaml:"builder"`
	Settings Local   `yaml:"settings"`
}

func (x *Config) Init() {
	x.Builder.Init()
	x.Settings.Init()
}

const configFileName = "config.yaml"

var log = logger.L()

func defConfig() *Config {
	var cfg Config
	cfg.Init()
	return &cfg
}

func readOpts(cfg *Config) {
	helpFlag := false
	getopt.Flag(&helpFlag, 'h', "display help")
	getopt.Flag(&cfg.Settings.LogLevel, 'l', "be verbose")
	getopt.FlagLong(&cfg.Builder.OutputDir, "output", 'o', "output directory")
	getopt.FlagLong(&cfg.Builder.Platforms, "platform", 'p', "target platform, repeatable")

	getopt.Parse()
	if helpFlag {
		getopt.Usage()
		os.Exit(0)
	}
}

func processError(err error) {
	log.Fatal(err)
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return !info.IsDir()
}

func readFile(cfg *Config) {
	if !fileExists(configFileName) {
		return
	}
	f, err := os.Open(configFileName)
	if err != nil {
		processError(err)
	}
	defer f.Close()
	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(cfg)
	if err != nil {
		if err != io.EOF {
			processError(err)
		}
	}
}

func readEnv(cfg *Config) {
	err := envconfig.Process("", cfg)
	if err != nil {
		processError(err)
	}
}

func prettyPrint(cfg *Config) {
	d, _ := yaml.Marshal(cfg)
	log.Infof("--- Config ---\n%s\n\n", string(d))
}

// GetConfig : get config file
func GetConfig() *Config {
	cfg := defConfig()

	readFile(cfg)
	readEnv(cfg)
	readOpts(cfg)

	logger.SetLevel(zapcore.Level(cfg.Settings.LogLevel))
	prettyPrint(cfg)

	return cfg
}
