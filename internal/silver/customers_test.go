package silver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lakehouse/internal/schema"
)

func testNow() time.Time {
	return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
}

func lineageAt(t time.Time, file string) schema.Lineage {
	return schema.Lineage{
		IngestedAt:    t,
		SourceFile:    file,
		IngestionDate: t.Format(schema.DateLayout),
		BatchID:       "batch-1",
	}
}

func TestTransformCustomers_Normalization(t *testing.T) {
	t.Parallel()

	now := testNow()
	in := []schema.RawCustomer{{
		CustomerID: "CUST-000001",
		Email:      "  Jane.Doe@Example.COM ",
		FirstName:  " jane ",
		LastName:   "DOE",
		Phone:      " 555-0101 ",
		Country:    " us ",
		City:       " Portland ",
		CreatedAt:  "2024-06-01T08:30:00",
		UpdatedAt:  "2024-06-02T08:30:00",
		Lineage:    lineageAt(now, "customers.csv"),
	}}

	out := TransformCustomers(in, now)
	require.Len(t, out, 1)
	c := out[0]

	assert.Equal(t, "jane.doe@example.com", c.Email)
	assert.Equal(t, "example.com", c.EmailDomain)
	assert.True(t, c.IsValidEmail)
	assert.Equal(t, "Jane Doe", c.FullName)
	assert.Equal(t, "US", c.Country)
	assert.Equal(t, "Portland", c.City)
	require.NotNil(t, c.CreatedAt)
	require.NotNil(t, c.AccountAgeDays)
	assert.Equal(t, int32(14), *c.AccountAgeDays)
	assert.Equal(t, "new", c.Segment)
	assert.Equal(t, now, c.ProcessedAt)
}

func TestTransformCustomers_InvalidEmail(t *testing.T) {
	t.Parallel()

	in := []schema.RawCustomer{
		{CustomerID: "CUST-1", Email: "not-an-email"},
		{CustomerID: "CUST-2", Email: "x@y"},
		{CustomerID: "CUST-3", Email: ""},
	}
	out := TransformCustomers(in, testNow())
	require.Len(t, out, 3)
	for _, c := range out {
		assert.False(t, c.IsValidEmail, "email %q", c.Email)
	}
	assert.Equal(t, "y", out[1].EmailDomain)
	assert.Equal(t, "", out[2].EmailDomain)
}

func TestTransformCustomers_Segments(t *testing.T) {
	t.Parallel()

	now := testNow()
	cases := []struct {
		name    string
		created string
		want    string
	}{
		{"under 30 days", "2024-06-01T00:00:00", "new"},
		{"exactly 30 days", "2024-05-16T00:00:00", "regular"},
		{"under a year", "2023-08-01T00:00:00", "regular"},
		{"exactly 365 days", "2023-06-16T00:00:00", "established"},
		{"over a year", "2020-01-01T00:00:00", "established"},
		{"unparseable date", "garbage", "established"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := TransformCustomers([]schema.RawCustomer{
				{CustomerID: "CUST-1", CreatedAt: tc.created},
			}, now)
			require.Len(t, out, 1)
			assert.Equal(t, tc.want, out[0].Segment)
		})
	}
}

func TestTransformCustomers_DedupKeepsLatest(t *testing.T) {
	t.Parallel()

	now := testNow()
	in := []schema.RawCustomer{
		{CustomerID: "CUST-1", Email: "old@example.com", Lineage: lineageAt(now.Add(-time.Hour), "a.csv")},
		{CustomerID: "CUST-1", Email: "new@example.com", Lineage: lineageAt(now, "b.csv")},
		{CustomerID: "CUST-2", Email: "other@example.com", Lineage: lineageAt(now, "b.csv")},
	}
	out := TransformCustomers(in, now)
	require.Len(t, out, 2)
	assert.Equal(t, "CUST-1", out[0].CustomerID)
	assert.Equal(t, "new@example.com", out[0].Email)
	assert.Equal(t, "CUST-2", out[1].CustomerID)
}
