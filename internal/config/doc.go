// Package config loads jwtctl settings from environment variables and .env files.
//
//	JWTCTL_LOG_LEVEL      debug, info, warn (default) or error
//	JWTCTL_PEM_PASSWORD   password of encrypted private keys
//	JWTCTL_OUTPUT_FORMAT  standard (default) or json
package config
