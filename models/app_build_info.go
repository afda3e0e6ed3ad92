// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// NotAvailable stands in for build metadata that was not injected.
const NotAvailable = "N/A"

// AppBuildInfo carries build-time metadata embedded into binaries.
//
// Values are injected by linker flags during CI/CD, printed at startup and
// served by GET /api/version.
type AppBuildInfo struct {
	Version string `json:"version"`
	Date    string `json:"build_date"`
	Commit  string `json:"build_commit"`
}

// NewAppBuildInfo constructs [AppBuildInfo], replacing empty values with
// "N/A".
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		Version: orNA(buildVersion),
		Date:    orNA(buildDate),
		Commit:  orNA(buildCommit),
	}
}

func orNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}
