package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli"
	"go.uber.org/zap/zapcore"

	"github.com/alexadamm/jwtctl/internal/config"
	"github.com/alexadamm/jwtctl/internal/logger"
)

const appName = "jwtctl"

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func init() {
	// -v is --verbose
	cli.VersionFlag = cli.BoolFlag{Name: "version", Usage: "show program version and exit"}
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// jwtctl holds what the commands share
type jwtctl struct {
	stdout io.Writer
	stderr io.Writer
	cfg    *config.Config
	log    *logger.Logger

	// readPassword asks for the password of an encrypted key
	readPassword func(prompt string) ([]byte, error)
	now          func() time.Time
}

// run executes the command line and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "%s: %s\n", appName, err)
		return 1
	}

	j := &jwtctl{
		stdout:       stdout,
		stderr:       stderr,
		cfg:          cfg,
		readPassword: terminalPassword(stderr),
		now:          time.Now,
	}
	return j.run(args)
}

func (j *jwtctl) run(args []string) int {
	err := j.newApp().Run(args)
	if err == nil {
		return 0
	}

	prefix := appName
	code := 1
	var cmdErr *commandError
	if errors.As(err, &cmdErr) {
		if cmdErr.command != "" {
			prefix += " " + cmdErr.command
		}
		code = cmdErr.code
	}

	j.log.Debug("command failed", logger.ErrorField(err))
	message := strings.TrimSuffix(err.Error(), ".")
	fmt.Fprintf(j.stderr, "%s: %s. See %s --help\n", prefix, message, prefix)
	return code
}

func (j *jwtctl) newApp() *cli.App {
	app := cli.NewApp()
	app.Name = appName
	app.Usage = "read or create JWT tokens"
	app.UsageText = appName + " [global options] COMMAND [command options] [arguments...]"
	app.Version = version
	app.Writer = j.stdout
	app.ErrWriter = j.stderr
	app.Description = `Creates compact JWS tokens, optionally compressed and signed with an HMAC
secret or a PEM private key, and reads them back with signature and
expiration checks. See more info at https://jwt.io/`
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "enable verbose mode",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug mode",
		},
	}
	app.Commands = []cli.Command{
		j.createCommand(),
		j.readCommand(),
	}
	app.Before = j.before
	app.Action = func(c *cli.Context) error {
		if c.NArg() > 0 {
			return usageError("", fmt.Errorf("'%s' is not a valid command, must be one of [create read]", c.Args().First()))
		}
		return cli.ShowAppHelp(c)
	}
	app.OnUsageError = func(c *cli.Context, err error, isSubcommand bool) error {
		return usageError("", err)
	}
	app.ExitErrHandler = func(c *cli.Context, err error) {}

	return app
}

// before builds the logger. --debug wins over --verbose, which wins over JWTCTL_LOG_LEVEL.
func (j *jwtctl) before(c *cli.Context) error {
	log, level, err := logger.New(logger.Config{Level: j.cfg.LogLevel, Output: j.stderr})
	if err != nil {
		return err
	}

	switch {
	case c.Bool("debug"):
		level.SetLevel(zapcore.DebugLevel)
		log.Debug("Debug mode enabled")
	case c.Bool("verbose"):
		level.SetLevel(zapcore.InfoLevel)
		log.Info("Verbose mode enabled")
	}

	j.log = log
	j.log.Debug("Input args = [" + strings.Join(c.Args(), ", ") + "]")
	return nil
}

// commandError carries the command name and exit code of a failure
type commandError struct {
	command string
	code    int
	err     error
}

func (e *commandError) Error() string { return e.err.Error() }
func (e *commandError) Unwrap() error { return e.err }

func commandFailure(command string, err error) error {
	return &commandError{command: command, code: 1, err: err}
}

func usageError(command string, err error) error {
	return &commandError{command: command, code: 2, err: err}
}
