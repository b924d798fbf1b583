package config

// Package config loads process configuration from environment variables
// with sane defaults and clamping. The only required value is the bot token.
