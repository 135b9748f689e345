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
package vejbill

import "strings"

// MatchFragment finds the billing-category fragment a free-text invoice
// line belongs to. Fragments are tried in configured order and the first
// case-insensitive substring hit wins; matching is plain containment, not
// tokenized. Returns false when no fragment matches.
func MatchFragment(description string, fragments []string) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(description))
	for _, fragment := range fragments {
		cleaned := strings.ToLower(strings.TrimSpace(fragment))
		if cleaned == "" {
			continue
		}
		if strings.Contains(needle, cleaned) {
			return strings.TrimSpace(fragment), true
		}
	}
	return "", false
}
