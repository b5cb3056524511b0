package db

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	conn, err := Open(filepath.Join(t.TempDir(), "nested", "invoices.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewStore(conn)
}

// fixture holds one account, client and template.
type fixture struct {
	store    *Store
	account  int64
	client   int64
	template int64
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	s := newTestStore(t)

	accountID, err := s.AddAccount(Account{
		Name:        "Hamon",
		Address:     `1 Main St\nCalicut`,
		Phone:       "+91 1234",
		Email:       "billing@hamon.in",
		BankDetails: "Bank: X",
		Prefix:      "HT",
	})
	require.NoError(t, err)

	clientID, err := s.AddClient(Client{Name: "Acme", Address: "42 Road", AccountID: accountID})
	require.NoError(t, err)

	templateID, err := s.AddTemplate(Template{Name: "standard", Content: "rows: '|a|'\nfooter: '|b|'\n"})
	require.NoError(t, err)

	return fixture{store: s, account: accountID, client: clientID, template: templateID}
}

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func (f fixture) addInvoice(t *testing.T, day string, tags ...string) *Invoice {
	t.Helper()
	inv, err := f.store.AddInvoice(Invoice{
		Date:        date(day),
		Particulars: "Consulting",
		Content:     "| 1 | Work | 100 |",
		ClientID:    f.client,
		TemplateID:  f.template,
		Tags:        tags,
	})
	require.NoError(t, err)
	return inv
}

func TestOpenStampsVersion(t *testing.T) {
	s := newTestStore(t)
	version, err := s.GetMetadata(metaSchemaVersion)
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, version)
}

func TestOpenRejectsOtherVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoices.db")
	conn, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, NewStore(conn).SetMetadata(metaSchemaVersion, "0"))
	require.NoError(t, conn.Close())

	_, err = Open(path)
	assert.ErrorIs(t, err, ErrIncompatibleVersion)
}

func TestAccountValidation(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddAccount(Account{Name: "x", Address: "y", Phone: "1", Email: "not-an-email", BankDetails: "b"})
	assert.Error(t, err)

	accounts, err := s.ListAccounts()
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestDisplayNumbers(t *testing.T) {
	f := newFixture(t)

	first := f.addInvoice(t, "2024-01-02")
	second := f.addInvoice(t, "2024-01-03")
	assert.Equal(t, int64(1), first.DisplayNumber)
	assert.Equal(t, int64(2), second.DisplayNumber)

	// numbers of deleted invoices are never handed out again
	require.NoError(t, f.store.DeleteInvoice(second.ID))
	third := f.addInvoice(t, "2024-01-04")
	assert.Equal(t, int64(3), third.DisplayNumber)

	last, err := f.store.GetMetadata(metaLastInvoiceNumber)
	require.NoError(t, err)
	assert.Equal(t, "3", last)
}

func TestInvoiceRoundTrip(t *testing.T) {
	f := newFixture(t)
	_, err := f.store.AddTag(Tag{Name: "pending"})
	require.NoError(t, err)
	_, err = f.store.AddTag(Tag{Name: "paid"})
	require.NoError(t, err)

	added := f.addInvoice(t, "2024-01-02", "pending")

	got, err := f.store.GetInvoice(added.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.ClientName)
	assert.Equal(t, "standard", got.TemplateName)
	assert.Equal(t, "2024-01-02", got.Date.Format(DateLayout))
	assert.Equal(t, []string{"pending"}, got.Tags)

	got.Particulars = "Support"
	got.Tags = []string{"paid"}
	require.NoError(t, f.store.UpdateInvoice(*got))

	detail, err := f.store.GetInvoiceDetail(added.ID)
	require.NoError(t, err)
	assert.Equal(t, "Support", detail.Invoice.Particulars)
	assert.Equal(t, []string{"paid"}, detail.Invoice.Tags)
	assert.Equal(t, "Hamon", detail.Account.Name)
	assert.Equal(t, "HT", detail.Account.Prefix)
	assert.Equal(t, "standard", detail.Template.Name)
	assert.Nil(t, detail.Template.Letterhead)
}

func TestAddInvoiceUnknownTagRollsBack(t *testing.T) {
	f := newFixture(t)

	_, err := f.store.AddInvoice(Invoice{
		Date:        date("2024-01-02"),
		Particulars: "Consulting",
		ClientID:    f.client,
		TemplateID:  f.template,
		Tags:        []string{"missing"},
	})
	var nf *EntityNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "tag", nf.Kind)

	invoices, err := f.store.ListInvoices(InvoiceFilter{})
	require.NoError(t, err)
	assert.Empty(t, invoices)

	next := f.addInvoice(t, "2024-01-02")
	assert.Equal(t, int64(1), next.DisplayNumber)
}

func TestListInvoicesFilter(t *testing.T) {
	f := newFixture(t)
	_, err := f.store.AddTag(Tag{Name: "paid"})
	require.NoError(t, err)

	f.addInvoice(t, "2024-01-02", "paid")
	f.addInvoice(t, "2024-02-10")
	f.addInvoice(t, "2024-03-01", "paid")

	tests := []struct {
		name   string
		filter InvoiceFilter
		want   []string
	}{
		{"all", InvoiceFilter{}, []string{"2024-01-02", "2024-02-10", "2024-03-01"}},
		{"from", InvoiceFilter{From: date("2024-02-01")}, []string{"2024-02-10", "2024-03-01"}},
		{"range inclusive", InvoiceFilter{From: date("2024-01-02"), To: date("2024-02-10")}, []string{"2024-01-02", "2024-02-10"}},
		{"tag", InvoiceFilter{Tag: "paid"}, []string{"2024-01-02", "2024-03-01"}},
		{"client", InvoiceFilter{ClientID: f.client + 1}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			invoices, err := f.store.ListInvoices(tt.filter)
			require.NoError(t, err)
			var got []string
			for _, inv := range invoices {
				got = append(got, inv.Date.Format(DateLayout))
			}
			assert.Equal(t, tt.want, got)
		})
	}

	tags, err := f.store.ListTags()
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, 2, tags[0].Invoices)

	require.NoError(t, f.store.DeleteTag("paid"))
	invoices, err := f.store.ListInvoices(InvoiceFilter{})
	require.NoError(t, err)
	for _, inv := range invoices {
		assert.Empty(t, inv.Tags)
	}
}

func TestTagNameRejectsComma(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddTag(Tag{Name: "a,b"})
	assert.Error(t, err)
}

func TestTimesheetRoundTrip(t *testing.T) {
	f := newFixture(t)

	hours := map[string]decimal.Decimal{
		"2024-01-01": decimal.RequireFromString("7.5"),
		"2024-01-02": decimal.RequireFromString("8"),
	}
	id, err := f.store.AddTimesheet(Timesheet{
		Date:       date("2024-01-31"),
		Employee:   "A. Person",
		Hours:      hours,
		ClientID:   f.client,
		TemplateID: f.template,
	})
	require.NoError(t, err)

	detail, err := f.store.GetTimesheetDetail(id)
	require.NoError(t, err)
	assert.Equal(t, "A. Person", detail.Timesheet.Employee)
	assert.Equal(t, "Acme", detail.Client.Name)
	require.Len(t, detail.Timesheet.Hours, 2)
	for day, h := range hours {
		assert.True(t, h.Equal(detail.Timesheet.Hours[day]), day)
	}

	ts := detail.Timesheet
	ts.Hours = map[string]decimal.Decimal{"2024-01-03": decimal.NewFromInt(4)}
	require.NoError(t, f.store.UpdateTimesheet(ts))

	sheets, err := f.store.ListTimesheets(f.client, date("2024-01-01"), date("2024-01-31"))
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	assert.Len(t, sheets[0].Hours, 1)

	sheets, err = f.store.ListTimesheets(0, date("2024-02-01"), time.Time{})
	require.NoError(t, err)
	assert.Empty(t, sheets)

	require.NoError(t, f.store.DeleteTimesheet(id))
	_, err = f.store.GetTimesheet(id)
	var nf *EntityNotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestTemplateLetterhead(t *testing.T) {
	f := newFixture(t)

	tmpl, err := f.store.GetTemplateByName("standard")
	require.NoError(t, err)
	tmpl.Letterhead = []byte{0x89, 'P', 'N', 'G'}
	tmpl.Description = "with letterhead"
	require.NoError(t, f.store.UpdateTemplate(*tmpl))

	got, err := f.store.GetTemplate(tmpl.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, got.Letterhead)
	assert.Equal(t, "with letterhead", got.Description)
}

func TestSummary(t *testing.T) {
	f := newFixture(t)
	f.addInvoice(t, "2024-01-02")

	sum, err := f.store.GetSummary()
	require.NoError(t, err)
	assert.Equal(t, Summary{Accounts: 1, Clients: 1, Templates: 1, Invoices: 1}, *sum)
}
