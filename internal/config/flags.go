// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses configuration flags from args (usually os.Args[1:]).
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-driver database driver (postgres|sqlite)
//	-d database DSN
//	-c/-config json file path with configs
//	-signing-algorithm token signing algorithm (HS256|HS384|HS512)
//	-access-token-ttl access token lifetime in minutes
//	-refresh-token-ttl refresh token lifetime in minutes
//	-token-issuer token issuer name
//	-login-field login lookup field (username|email)
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-log-level log level (debug|info|warn|error)
//
// Token secrets are only accepted from the environment or the JSON file.
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("book-giveaway", flag.ContinueOnError)

	var serverAddress NetAddress
	var driver, databaseDSN, jsonConfigPath string
	var signingAlgorithm, tokenIssuer, loginField, logLevel string
	var accessTTL, refreshTTL int
	var requestTimeout time.Duration

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&driver, "driver", "", "Database driver (postgres|sqlite)")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&signingAlgorithm, "signing-algorithm", "", "Token signing algorithm")
	fs.IntVar(&accessTTL, "access-token-ttl", 0, "Access token TTL in minutes")
	fs.IntVar(&refreshTTL, "refresh-token-ttl", 0, "Refresh token TTL in minutes")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.StringVar(&loginField, "login-field", "", "Login field (username|email)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&logLevel, "log-level", "", "Log level")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		Auth: Auth{
			SigningAlgorithm:       signingAlgorithm,
			AccessTokenTTLMinutes:  accessTTL,
			RefreshTokenTTLMinutes: refreshTTL,
			TokenIssuer:            tokenIssuer,
			LoginField:             loginField,
		},
		Storage: Storage{
			DB: DB{
				Driver: driver,
				DSN:    databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		App: App{
			LogLevel: logLevel,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// An empty host means all interfaces. Otherwise the host must be "localhost"
// or a literal IP address.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "" && host != "localhost" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
