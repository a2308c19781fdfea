package config

// Version is the dotwalk binary version.
// Set at build time via: -ldflags "-X github.com/persistorai/dotwalk/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"
