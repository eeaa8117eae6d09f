package application

import (
	"bytes"
	"context"
	"encoding/csv"
	"math/big"
	"strings"
	"testing"

	"claimerapi/contexts/snapshot-claims/redistribution-service/ports"
)

func TestDetailedCSVRoundTripsAwkwardPayloads(t *testing.T) {
	rawPayload := `{"sourceAddress":"src-a","note":"has, comma and \"quotes\""}` + "\nsecond line"
	service := serviceWith(t, 10)
	service.Source = staticSource{claims: []ports.ClaimRecord{
		{
			SourceAddress:      "src-a",
			DestinationAddress: "dest-a",
			ClaimedBalance:     big.NewInt(900_000_000),
			Signature:          `sig,with"quote`,
			RawPayload:         rawPayload,
		},
	}}

	rows, _, err := service.Detailed(context.Background())
	if err != nil {
		t.Fatalf("Detailed returned error: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteDetailedCSV(&buf, rows); err != nil {
		t.Fatalf("WriteDetailedCSV returned error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-parse of exported csv failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header plus one row, got %d records", len(records))
	}

	row := records[1]
	if got := row[len(row)-1]; got != rawPayload {
		t.Fatalf("raw payload did not round-trip:\n got: %q\nwant: %q", got, rawPayload)
	}
	if got, want := row[6], `sig,with"quote`; got != want {
		t.Fatalf("signature did not round-trip: got %q want %q", got, want)
	}
}

func TestCompactCSVSchema(t *testing.T) {
	service := serviceWith(t, 10,
		claim("src-a", "dest-a", 300_000_000),
		claim("src-b", "dest-b", 700_000_000),
	)
	result, err := service.Compute(context.Background())
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteCompactCSV(&buf, result, 8); err != nil {
		t.Fatalf("WriteCompactCSV returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus two rows, got %d lines", len(lines))
	}
	if got, want := lines[0], "destination_address,final_balance_units,final_balance_coins"; got != want {
		t.Fatalf("header = %q, want %q", got, want)
	}
	if got, want := lines[1], "dest-a,150000000,1.50000000"; got != want {
		t.Fatalf("first row = %q, want %q", got, want)
	}
	if got, want := lines[2], "dest-b,350000000,3.50000000"; got != want {
		t.Fatalf("second row = %q, want %q", got, want)
	}
}
