// Package config loads the bot's environment configuration.
package config
