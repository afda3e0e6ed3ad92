// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables (an optional .env file is loaded first)
//  2. Command-line flags
//  3. JSON config file
//
// The entry point is [GetStructuredConfig]. The returned value is built once
// in main and passed explicitly to the components that need it. The command
// line client reads its own, smaller [ClientConfig] via [GetClientConfig].
package config
