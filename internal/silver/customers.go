package silver

import (
	"regexp"
	"strings"
	"time"

	"lakehouse/internal/schema"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Customer segment thresholds, in days of account age.
const (
	segmentNewMaxDays     = 30
	segmentRegularMaxDays = 365
)

// TransformCustomers cleans bronze customers into silver. Emails are
// lower-cased and format-checked, country codes upper-cased, the full name
// built from title-cased parts, and each customer is segmented by account
// age relative to now. Duplicates by customer_id keep the latest ingestion.
func TransformCustomers(rows []schema.RawCustomer, now time.Time) []Customer {
	rows = dedupLatest(rows,
		func(r schema.RawCustomer) string { return r.CustomerID },
		func(r schema.RawCustomer) schema.Lineage { return r.Lineage })

	out := make([]Customer, 0, len(rows))
	for _, r := range rows {
		email := strings.ToLower(strings.TrimSpace(r.Email))
		c := Customer{
			CustomerID:   r.CustomerID,
			Email:        email,
			EmailDomain:  emailDomain(email),
			IsValidEmail: emailPattern.MatchString(email),
			FirstName:    strings.TrimSpace(r.FirstName),
			LastName:     strings.TrimSpace(r.LastName),
			FullName:     fullName(r.FirstName, r.LastName),
			Phone:        strings.TrimSpace(r.Phone),
			Country:      strings.ToUpper(strings.TrimSpace(r.Country)),
			City:         strings.TrimSpace(r.City),
			Address:      strings.TrimSpace(r.Address),
			CreatedAt:    toTime(r.CreatedAt),
			UpdatedAt:    toTime(r.UpdatedAt),
			Lineage:      r.Lineage,
			ProcessedAt:  now,
		}
		if c.CreatedAt != nil {
			age := daysBetween(now, *c.CreatedAt)
			c.AccountAgeDays = &age
		}
		c.Segment = segmentFor(c.AccountAgeDays)
		out = append(out, c)
	}
	return out
}

// emailDomain extracts everything after the first '@', or "" when absent.
func emailDomain(email string) string {
	if i := strings.Index(email, "@"); i >= 0 && i+1 < len(email) {
		return email[i+1:]
	}
	return ""
}

func fullName(first, last string) string {
	parts := make([]string, 0, 2)
	if f := titleCase(first); f != "" {
		parts = append(parts, f)
	}
	if l := titleCase(last); l != "" {
		parts = append(parts, l)
	}
	return strings.Join(parts, " ")
}

// segmentFor buckets a customer by account age. An unknown age falls through
// to "established", mirroring how a null comparison misses every threshold.
func segmentFor(ageDays *int32) string {
	if ageDays != nil {
		if *ageDays < segmentNewMaxDays {
			return "new"
		}
		if *ageDays < segmentRegularMaxDays {
			return "regular"
		}
	}
	return "established"
}
