package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	internal_utils "github.com/bostadsportal/mono-repo/backend/services/roster-service/internal/utils"
	"github.com/bostadsportal/mono-repo/backend/shared/go-models"
)

const (
	residentSeparator = " & "
	groupSeparator    = "/"
	initialSeparator  = "-"
)

// TenantNameFormatter renders the residents of one unit as roster text,
// e.g. "A & E Berg/K Ek". Last names and first names are ordered with a
// locale collator so Å, Ä and Ö sort after Z for the Swedish default.
type TenantNameFormatter struct {
	mu       sync.Mutex
	collator *collate.Collator
}

func NewTenantNameFormatter(locale string) *TenantNameFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Swedish
	}
	return &TenantNameFormatter{collator: collate.New(tag)}
}

// UnitNames resolves every tenancy of u and formats the residents. An
// unknown resident is an error, never skipped.
func (f *TenantNameFormatter) UnitNames(ctx context.Context, resolver ResidentResolver, u *models.Unit) (string, error) {
	residents := make([]*models.Resident, 0, len(u.Tenancies))
	for _, t := range u.Tenancies {
		if t == nil {
			continue
		}
		res, err := resolver.Resolve(ctx, t.ResidentID)
		if err != nil {
			return "", fmt.Errorf("resolve resident %s for unit %s: %w", t.ResidentID, u.UnitNumber, err)
		}
		if res == nil {
			return "", fmt.Errorf("resident %s for unit %s: %w", t.ResidentID, u.UnitNumber, internal_utils.ErrResidentNotFound)
		}
		residents = append(residents, res)
	}
	return f.Format(residents), nil
}

type lastNameGroup struct {
	lastName   string
	firstNames []string
}

// Format groups residents by last name (ascending), orders first names
// inside each group and joins everything into a single line. Nil residents
// are ignored.
func (f *TenantNameFormatter) Format(residents []*models.Resident) string {
	groups := f.group(residents)

	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		initials := make([]string, 0, len(g.firstNames))
		for _, first := range g.firstNames {
			initials = append(initials, Initials(first))
		}
		text := strings.TrimSpace(collapseSeparators(strings.Join(initials, residentSeparator)) + " " + g.lastName)
		parts = append(parts, text)
	}
	return trimGroupSeparators(strings.Join(parts, groupSeparator))
}

func (f *TenantNameFormatter) group(residents []*models.Resident) []*lastNameGroup {
	byLast := map[string]*lastNameGroup{}
	var groups []*lastNameGroup
	for _, r := range residents {
		if r == nil {
			continue
		}
		last := strings.TrimSpace(r.LastName)
		g, ok := byLast[last]
		if !ok {
			g = &lastNameGroup{lastName: last}
			byLast[last] = g
			groups = append(groups, g)
		}
		g.firstNames = append(g.firstNames, strings.TrimSpace(r.FirstName))
	}

	// collate.Collator keeps internal buffers
	f.mu.Lock()
	defer f.mu.Unlock()
	sort.SliceStable(groups, func(i, j int) bool {
		return f.collator.CompareString(groups[i].lastName, groups[j].lastName) < 0
	})
	for _, g := range groups {
		sort.SliceStable(g.firstNames, func(i, j int) bool {
			return f.collator.CompareString(g.firstNames[i], g.firstNames[j]) < 0
		})
	}
	return groups
}

// Initials takes the first character of every hyphen-separated part of a
// first name: "Jean-Paul" becomes "J-P". Empty parts contribute nothing.
func Initials(firstName string) string {
	var out []string
	for _, part := range strings.Split(firstName, initialSeparator) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(part)
		out = append(out, string(r))
	}
	return strings.Join(out, initialSeparator)
}

// collapseSeparators folds the " & " runs left behind by residents without
// initials and drops them at either end.
func collapseSeparators(s string) string {
	parts := strings.Split(s, residentSeparator)
	kept := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, residentSeparator)
}

func trimGroupSeparators(s string) string {
	parts := strings.Split(s, groupSeparator)
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, groupSeparator)
}
