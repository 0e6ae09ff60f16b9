// Package main hashes a console password with bcrypt so an account can be
// seeded into the users table.
//
// Usage:
//
//	passhash [-cost 10] [-name admin -mail admin@example.com] [password]
//
// The password is read from the first line of stdin when not given as an
// argument. With -mail an INSERT statement is printed instead of the bare
// hash.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, in io.Reader, out io.Writer) error {
	flags := flag.NewFlagSet("passhash", flag.ContinueOnError)
	cost := flags.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	name := flags.String("name", "admin", "account name for the INSERT statement")
	mail := flags.String("mail", "", "account mail; prints an INSERT statement when set")
	if err := flags.Parse(args); err != nil {
		return err
	}

	password, err := readPassword(flags.Args(), in)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), *cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if *mail == "" {
		_, err = fmt.Fprintln(out, string(hash))
		return err
	}
	_, err = fmt.Fprintf(out,
		"INSERT INTO users (name, mail, password, update_time) VALUES (%s, %s, %s, now());\n",
		quote(*name), quote(*mail), quote(string(hash)))
	return err
}

func readPassword(args []string, in io.Reader) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return "", errors.New("no password given")
	}
	password := strings.TrimRight(scanner.Text(), "\r")
	if password == "" {
		return "", errors.New("empty password")
	}
	return password, nil
}

// quote renders s as a SQL string literal.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
