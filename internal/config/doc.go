// Package config provides configuration structures and utilities for
// queryscan. It defines the options for a generation run, the optional
// .queryscan rule-override file, and the XDG directory helpers used for
// run-history storage.
package config
