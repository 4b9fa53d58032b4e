// Package cli parses the command line into the application configuration
// and the raw assignment arguments destined for the command-line source
// adapter.
package cli
