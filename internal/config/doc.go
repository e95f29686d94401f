// Package config manages the persistent user configuration file.
//
// The registry stores user-defined metadata the cloud account does not carry:
// controller nicknames, per-port labels for the connected gear, and watch
// preferences, plus the account email used for login. Passwords and session
// tokens are never written to disk.
//
// The file lives in the platform config directory
// (~/.config/acinfinity/config.yaml on Linux/macOS) and is saved with an
// atomic temp-file-and-rename write.
package config
