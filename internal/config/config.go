package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Bind            string
	Port            int
	PublicURL       string
	SocketIOEnabled bool
	ExportEnabled   bool
	ExportFile      string
	Verbose         bool
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Port)
	}
	if c.ExportEnabled && c.ExportFile == "" {
		return errors.New("--export-file is required when export is enabled")
	}
	return nil
}

// RegisterFlags declares every option on fs. Each flag can also be set through
// the environment variable of the same name, upper-cased with dashes as underscores.
func RegisterFlags(fs *pflag.FlagSet, c *Config) {
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&c.Bind, "bind", "b", "0.0.0.0", "address to bind to (env: BIND)")
	fs.IntVarP(&c.Port, "port", "p", 8080, "port to listen on (env: PORT)")
	fs.StringVar(&c.PublicURL, "public-url", "", "externally visible base URL used in join QR codes (env: PUBLIC_URL)")
	fs.BoolVar(&c.SocketIOEnabled, "socketio-enabled", true, "serve the Socket.IO transport under /socket.io (env: SOCKETIO_ENABLED)")
	fs.BoolVar(&c.ExportEnabled, "export-enabled", false, "append every resolved round to the export file (env: EXPORT_ENABLED)")
	fs.StringVar(&c.ExportFile, "export-file", "./rajamantri-results.txt", "path to export round results (env: EXPORT_FILE)")
	fs.BoolVarP(&c.Verbose, "verbose", "v", false, "log at debug level (env: VERBOSE)")
}

// BindEnv fills flags that were not given on the command line from the environment.
func BindEnv(fs *pflag.FlagSet, v *viper.Viper) {
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
}

// LoadDotenv reads KEY=VALUE pairs from path into the process environment.
// A missing file is not an error; variables already set win.
func LoadDotenv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}
