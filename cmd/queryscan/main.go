// Package main provides the entry point for the queryscan CLI.
//
// queryscan inspects the RETURN documentation of Ansible collection
// modules and generates jq query templates for indirect inventory
// pipelines.
//
// Usage:
//
//	queryscan generate <github-url-or-directory>
//	queryscan history <namespace.collection>
//
// See --help for all available options.
package main

// main is the entry point for queryscan.
func main() {
	Execute()
}
