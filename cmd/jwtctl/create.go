package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sosodev/duration"
	"github.com/urfave/cli"
	"go.uber.org/zap/zapcore"

	"github.com/alexadamm/jwtctl/internal/logger"
	"github.com/alexadamm/jwtctl/pkg/token"
	"github.com/alexadamm/jwtctl/pkg/token/algorithms"
	"github.com/alexadamm/jwtctl/pkg/token/compression"
)

func (j *jwtctl) createCommand() cli.Command {
	return cli.Command{
		Name:      "create",
		Usage:     "create a JWT token",
		UsageText: appName + " create [-f FILE] [-c NAME=VALUE...] [-d DURATION] [--deflate|--gzip] [-a ALG (-s SECRET | -k FILE) [-p PASSWORD]]",
		Description: `Builds a token from the claims and headers given as JSON files and flags.
Claims given with --claim override claims from --claims-file, and the same
goes for headers. "iat" is always set to the current time and "exp" to
now + --duration when a duration is given.

## EXAMPLES

Create an unsigned token:
'''
$ jwtctl create -c sub=test-token
eyJhbGciOiJub25lIn0.eyJpYXQiOjE1MTc0Mzk1ODksInN1YiI6InRlc3QtdG9rZW4ifQ.
'''

Create a compressed HS512 token valid for two hours and a half:
'''
$ jwtctl create -f claims.json -d PT2H30M --deflate -a HS512 -s c29tZS1zZWNyZXQ=
'''

Create a token signed with an encrypted RSA key; the password is asked interactively:
'''
$ jwtctl create -c sub=test-token -a RS256 -k private.pem
'''`,
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "claims-file, f",
				Usage: "JSON claims `FILE`",
			},
			cli.StringSliceFlag{
				Name:  "claim, c",
				Usage: "claim `NAME=VALUE` to add to the token body (overrides claims from file)",
			},
			cli.StringFlag{
				Name:  "headers-file",
				Usage: "JSON headers `FILE`",
			},
			cli.StringSliceFlag{
				Name:  "header",
				Usage: "header `NAME=VALUE` to add to the token header (overrides headers from file)",
			},
			cli.StringFlag{
				Name:  "duration, d",
				Usage: "token lifetime as ISO-8601 (PT10H) or Go (10h) `DURATION`; expiration = now + duration",
			},
			cli.BoolFlag{
				Name:  "deflate",
				Usage: "compress the body with DEFLATE",
			},
			cli.BoolFlag{
				Name:  "gzip",
				Usage: "compress the body with GZIP",
			},
			cli.StringFlag{
				Name:  "alg, a",
				Usage: "signature `ALG`: " + strings.Join(algorithms.ListByKeyType(algorithms.KeyTypeHMAC), ", ") + " with --secret; RS*, PS* or ES* with --private-key-file",
			},
			cli.StringFlag{
				Name:  "secret, s",
				Usage: "base64 encoded HMAC `SECRET`",
			},
			cli.StringFlag{
				Name:  "private-key-file, k",
				Usage: "private key (PEM) `FILE`",
			},
			cli.StringFlag{
				Name:  "password, p",
				Usage: "`PASSWORD` of an encrypted PEM file; defaults to $JWTCTL_PEM_PASSWORD, then asked interactively",
			},
			cli.BoolFlag{
				Name:  "jti",
				Usage: "add a random \"jti\" claim",
			},
		},
		Action:       j.create,
		OnUsageError: commandUsageError,
	}
}

func (j *jwtctl) create(c *cli.Context) error {
	const command = "create"

	if c.NArg() > 0 {
		return usageError(command, fmt.Errorf("unexpected argument %q", c.Args().First()))
	}

	lifetime, err := parseDuration(c.String("duration"))
	if err != nil {
		return usageError(command, err)
	}

	signing, err := signingFlags(c)
	if err != nil {
		return usageError(command, err)
	}

	var codec string
	switch {
	case c.Bool("deflate") && c.Bool("gzip"):
		return usageError(command, errors.New("--deflate and --gzip are mutually exclusive"))
	case c.Bool("deflate"):
		codec = compression.DeflateName
	case c.Bool("gzip"):
		codec = compression.GZIPName
	}

	now := j.now()

	// iat and exp come first, as they are stamped before the claims are merged
	claims := token.NewMap()
	claims.Set(token.ClaimIssuedAt, now.Unix())
	if lifetime > 0 {
		claims.Set(token.ClaimExpiresAt, now.Add(lifetime).Unix())
	}
	if err := mergeFile(claims, c.String("claims-file"), "claims"); err != nil {
		return commandFailure(command, err)
	}
	if err := mergePairs(claims, c.StringSlice("claim"), "--claim"); err != nil {
		return usageError(command, err)
	}
	if c.Bool("jti") {
		claims.Set(token.ClaimID, uuid.NewString())
	}

	headers := token.NewMap()
	if err := mergeFile(headers, c.String("headers-file"), "headers"); err != nil {
		return commandFailure(command, err)
	}
	if err := mergePairs(headers, c.StringSlice("header"), "--header"); err != nil {
		return usageError(command, err)
	}

	params := token.TokenParams{
		Claims:      claims,
		Headers:     headers,
		Signing:     signing,
		Compression: codec,
		Duration:    lifetime,
		Now:         func() time.Time { return now },
	}
	if asymmetric, ok := signing.(token.Asymmetric); ok {
		params.Password = j.passwordSupplier(c.String("password"), asymmetric.KeyFile)
	}

	j.log.Debug("Creating token",
		logger.String("alg", c.String("alg")),
		logger.Stringer("duration", lifetime),
		logger.String("compression", codec),
		logger.Bool("jti", c.Bool("jti")))

	jwt, err := token.Create(params)
	if err != nil {
		return commandFailure(command, err)
	}

	if j.log.Enabled(zapcore.InfoLevel) {
		j.logCreated(jwt, lifetime, now)
	}

	fmt.Fprintln(j.stdout, jwt)
	return nil
}

func (j *jwtctl) logCreated(jwt string, lifetime time.Duration, now time.Time) {
	parsed, err := token.Read(jwt, token.ReadOptions{IgnoreSignature: true, IgnoreExpiration: true})
	if err != nil {
		j.log.Debug("Unable to read back the created token", logger.ErrorField(err))
		return
	}

	j.log.Info("Header  : " + parsed.Header.String())
	j.log.Info("Body    : " + bodyString(parsed.Body))
	if lifetime > 0 {
		j.log.Info("Generated token until : " + now.Add(lifetime).UTC().Format(time.RFC3339))
	} else {
		j.log.Info("Generated token until : no expiration date")
	}
}

// signingFlags turns --alg, --secret and --private-key-file into a signing option
func signingFlags(c *cli.Context) (token.Signing, error) {
	alg := c.String("alg")
	secret := c.String("secret")
	keyFile := c.String("private-key-file")

	switch {
	case secret != "" && keyFile != "":
		return nil, errors.New("--secret and --private-key-file are mutually exclusive")
	case alg == "" && (secret != "" || keyFile != ""):
		return nil, errors.New("--alg is required to sign a token")
	case alg == "" || alg == algorithms.None:
		if secret != "" || keyFile != "" {
			return nil, errors.New("an unsigned token takes no key")
		}
		return token.Unsigned{}, nil
	case secret != "":
		return token.HMAC{Algorithm: alg, Secret: secret}, nil
	case keyFile != "":
		if _, err := os.Stat(keyFile); err != nil {
			return nil, fmt.Errorf("unable to find file at path %s", keyFile)
		}
		return token.Asymmetric{Algorithm: alg, KeyFile: keyFile}, nil
	default:
		return nil, fmt.Errorf("--alg %s requires --secret or --private-key-file", alg)
	}
}

// parseDuration accepts ISO-8601 durations (PT2H30M) and Go durations (2h30m)
func parseDuration(value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}

	var lifetime time.Duration
	if iso, err := duration.Parse(value); err == nil {
		lifetime = iso.ToTimeDuration()
	} else if goDuration, goErr := time.ParseDuration(value); goErr == nil {
		lifetime = goDuration
	} else {
		return 0, fmt.Errorf("invalid duration %q: %w", value, err)
	}

	if lifetime <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %q", value)
	}
	return lifetime, nil
}

// mergeFile sets the entries of a JSON object file into m
func mergeFile(m *token.Map, path, what string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to find file at path %s", path)
	}

	entries, err := token.ParseMap(data)
	if err != nil {
		return fmt.Errorf("unable to parse %s file: %w", what, err)
	}
	for k, v := range entries.All() {
		m.Set(k, v)
	}
	return nil
}

// mergePairs sets NAME=VALUE pairs into m as string values
func mergePairs(m *token.Map, pairs []string, flag string) error {
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return fmt.Errorf("%s expects NAME=VALUE, got %q", flag, pair)
		}
		m.Set(name, value)
	}
	return nil
}
