// Package main provides the roomdb CLI application.
// roomdb loads students and rooms into PostgreSQL and reports on them.
package main

import "github.com/gnames/roomdb/cmd"

func main() {
	cmd.Execute()
}
