// Package discord wires the prefix commands to a Discord session: the
// weekly calendar digest plus price, chart, health, reverse-split and
// help utilities.
package discord
