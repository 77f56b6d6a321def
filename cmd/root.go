/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/roomdb/internal/iofs"
	"github.com/gnames/roomdb/internal/iologger"
	roomdb "github.com/gnames/roomdb/pkg"
	"github.com/gnames/roomdb/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir   string
	opts      []config.Option
	cfg       *config.Config
	logCloser io.Closer
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s",
			roomdb.Version, roomdb.Build),
		Use:   "roomdb",
		Short: "Student and room analytics on PostgreSQL",
		Long: `roomdb loads students and rooms into a PostgreSQL database and
answers questions about room occupancy, age distribution and gender mix.

Typical workflow:
  roomdb create
  roomdb import --students students.json --rooms rooms.json
  roomdb analytics --report
  roomdb optimize --analyze

Settings come from ~/.config/roomdb/config.yaml, environment variables
with ROOMDB_ prefix (for example ROOMDB_DATABASE_HOST) and flags.`,
		PersistentPreRunE:  bootstrap,
		PersistentPostRunE: shutdown,
		SilenceErrors:      true,
		SilenceUsage:       true,
	}

	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for roomdb")

	rootCmd.AddCommand(
		getCreateCmd(),
		getDropCmd(),
		getStatusCmd(),
		getImportCmd(),
		getAnalyticsCmd(),
		getOptimizeCmd(),
	)
	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.New().Log
	if logCloser, err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"command", cmd.Name(),
	)
	return nil
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
func reconfigureLogging(cfg *config.Config) error {
	_ = logCloser.Close()

	var err error
	logDir := config.LogDir(cfg.HomeDir)
	logCloser, err = iologger.Init(logDir, cfg.Log)
	return err
}

func shutdown(_ *cobra.Command, _ []string) error {
	if logCloser != nil {
		return logCloser.Close()
	}
	return nil
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

// envVars maps configuration keys to environment variables. They match
// the fields included in config.ToOptions(), i.e. persistent settings
// that can be stored in config.yaml.
var envVars = [][2]string{
	{"database.host", "ROOMDB_DATABASE_HOST"},
	{"database.port", "ROOMDB_DATABASE_PORT"},
	{"database.user", "ROOMDB_DATABASE_USER"},
	{"database.password", "ROOMDB_DATABASE_PASSWORD"},
	{"database.database", "ROOMDB_DATABASE_DATABASE"},
	{"database.charset", "ROOMDB_DATABASE_CHARSET"},
	{"database.pool_size", "ROOMDB_DATABASE_POOL_SIZE"},
	{"database.connect_timeout", "ROOMDB_DATABASE_CONNECT_TIMEOUT"},
	{"database.ssl_mode", "ROOMDB_DATABASE_SSL_MODE"},
	{"database.ssl_root_cert", "ROOMDB_DATABASE_SSL_ROOT_CERT"},
	{"database.ssl_cert", "ROOMDB_DATABASE_SSL_CERT"},
	{"database.ssl_key", "ROOMDB_DATABASE_SSL_KEY"},
	{"database.batch_size", "ROOMDB_DATABASE_BATCH_SIZE"},
	{"import.format", "ROOMDB_IMPORT_FORMAT"},
	{"analytics.top_n", "ROOMDB_ANALYTICS_TOP_N"},
	{"log.level", "ROOMDB_LOG_LEVEL"},
	{"log.format", "ROOMDB_LOG_FORMAT"},
	{"log.destination", "ROOMDB_LOG_DESTINATION"},
	{"log.max_size_mb", "ROOMDB_LOG_MAX_SIZE_MB"},
	{"log.max_backups", "ROOMDB_LOG_MAX_BACKUPS"},
	{"jobs_number", "ROOMDB_JOBS_NUMBER"},
}

func initEnvVars(v *viper.Viper) {
	v.SetEnvPrefix("ROOMDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, kv := range envVars {
		_ = v.BindEnv(kv[0], kv[1])
	}

	v.AutomaticEnv()
}
