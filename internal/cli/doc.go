// Package cli implements the econcal command line interface.
package cli
