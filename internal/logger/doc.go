// Package logger builds the zap logger used by jwtctl. Messages go to stderr
// as "LEVEL | message" so that stdout only carries command output.
package logger
