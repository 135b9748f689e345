/*
Copyright 2025 Vejbill Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package vejman

import (
	"regexp"
	"strings"

	"github.com/mkroghdk/vejbill/model"
)

// nonPrintable matches everything outside printable ASCII. Caseworkers paste
// the reference marker from other tools and it regularly carries zero-width
// and non-breaking characters.
var nonPrintable = regexp.MustCompile(`[^\x20-\x7E]`)

// markers in the reference field meaning the case already left the flow.
var excludedMarkers = []string{"faktura sendt", "faktureres ikke", "annulleret"}

// CleanMarker normalizes an authority reference marker for comparison:
// trimmed, lowercased, stripped of non-printable characters.
func CleanMarker(marker string) string {
	return nonPrintable.ReplaceAllString(strings.ToLower(strings.TrimSpace(marker)), "")
}

// Excluded reports whether a case should be dropped from the batch based on
// its reference marker or caseworker initials. A marker containing one of the
// handled phrases, or the bare shorthand "fak", means the case was already
// invoiced or cancelled; robotInitials identify cases the robot itself wrote.
func Excluded(pc *model.PermitCase, robotInitials string) bool {
	marker := CleanMarker(pc.ReferenceMarker)
	for _, phrase := range excludedMarkers {
		if strings.Contains(marker, phrase) {
			return true
		}
	}
	if marker == "fak" {
		return true
	}
	return robotInitials != "" && pc.Initials == robotInitials
}

// FilterCases drops the cases Excluded flags and keeps the rest in order.
func FilterCases(cases []*model.PermitCase, robotInitials string) []*model.PermitCase {
	kept := make([]*model.PermitCase, 0, len(cases))
	for _, pc := range cases {
		if Excluded(pc, robotInitials) {
			continue
		}
		kept = append(kept, pc)
	}
	return kept
}
