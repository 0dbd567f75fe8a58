/*
Package transfer maps entry sequences to and from the delimited text
format used for import/export.

FORMAT:
  Header row:  date,description,category,method,amount
  Data rows:   one per entry, fields in that order, UTF-8.

ESCAPING:
  A field is quote-wrapped with internal quotes doubled if and only if it
  contains a comma or a quote character. No other escaping exists, which is
  why this package carries its own writer and quote-toggle reader instead
  of encoding/csv (whose writer also quotes on leading spaces and CR/LF,
  and whose reader rejects misshapen rows that import must keep).

ROUND-TRIP:
  Decode(Encode(entries)) reproduces the entries field-for-field for any
  set whose text fields contain no line breaks. Line breaks inside a field
  are a known limitation.

BEST-EFFORT DECODE:
  A row that fails to parse yields an entry with default fields and a zero
  amount rather than aborting the import, preserving line-count alignment.
*/
package transfer

import (
	"strings"
	"time"

	"github.com/alanrss/budget"
)

// Header is the fixed first line of every transfer file.
const Header = "date,description,category,method,amount"

const dateLayout = "2006-01-02"

// Filename derives the export file name from a period key.
func Filename(periodKey string) string {
	return periodKey + ".csv"
}

// Encode renders entries as delimited text: the header line, then one line
// per entry.
func Encode(entries []budget.Entry) string {
	var b strings.Builder
	b.WriteString(Header)
	for _, e := range entries {
		b.WriteByte('\n')
		b.WriteString(e.Day.Format(dateLayout))
		b.WriteByte(',')
		b.WriteString(escape(e.Description))
		b.WriteByte(',')
		b.WriteString(escape(string(e.Category)))
		b.WriteByte(',')
		b.WriteString(escape(string(e.PaymentMethod)))
		b.WriteByte(',')
		b.WriteString(e.Amount.String())
	}
	return b.String()
}

// escape quote-wraps a field, doubling internal quotes, iff the field
// contains a comma or a quote.
func escape(field string) string {
	if !strings.ContainsAny(field, `,"`) {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// Decode parses delimited text back into entries. The header line is
// discarded; blank lines are skipped. Decode never fails: a malformed row
// becomes a defaulted entry so imported line counts stay aligned.
func Decode(text string) []budget.Entry {
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil
	}

	entries := make([]budget.Entry, 0, len(lines)-1)
	for _, line := range lines[1:] {
		entries = append(entries, decodeRow(line))
	}
	return entries
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func decodeRow(line string) budget.Entry {
	cols := splitFields(line)
	field := func(i int) string {
		if i < len(cols) {
			return cols[i]
		}
		return ""
	}

	day, err := time.Parse(dateLayout, field(0))
	if err != nil {
		day = time.Time{}
	}

	return budget.Entry{
		Day:           day,
		Description:   field(1),
		Category:      budget.ParseCategory(field(2)),
		PaymentMethod: budget.ParsePaymentMethod(field(3)),
		Amount:        budget.ParseAmount(field(4)),
	}
}

// splitFields splits one line on commas, respecting quoted-field
// boundaries. A quote toggles "inside quoted field" mode; a doubled quote
// inside a quoted field unescapes to a single quote.
func splitFields(line string) []string {
	var (
		fields []string
		cur    strings.Builder
		inQ    bool
	)
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQ && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQ = !inQ
			}
		case ch == ',' && !inQ:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	fields = append(fields, cur.String())
	return fields
}
