package config

import (
	"flag"
	"os"
	"time"

	"github.com/wcorp/cyberrange/internal/flagx"
)

// parseFlags overrides selected Config fields from the command line.
//
// Supported flags (short forms):
//
//	-p string   listen port
//	-u string   upload directory
//	-s string   token secret (JWT_SECRET)
//	-n string   environment name (NODE_ENV)
//	-t int      outbound fetch timeout, seconds
//
// os.Args is filtered with flagx.FilterArgs first, so flags owned by other
// layers (such as -c) do not cause parse errors.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-p", "-u", "-s", "-n", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Port, "p", config.Port, "port to listen on")
	fs.StringVar(&config.UploadDir, "u", config.UploadDir, "upload directory")
	fs.StringVar(&config.JWTSecret, "s", config.JWTSecret, "token secret")
	fs.StringVar(&config.NodeEnv, "n", config.NodeEnv, "environment name")
	fetchTimeout := fs.Int("t", int(config.FetchTimeout.Seconds()), "fetch timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.FetchTimeout = time.Duration(*fetchTimeout) * time.Second
		}
	})
}
