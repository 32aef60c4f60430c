package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/neuroverse/neuroverse-cli/internal/models"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	client, err := NewClient(filepath.Join(t.TempDir(), "neuroverse.db"))
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}

func TestTokenRoundTrip(t *testing.T) {
	client := newTestClient(t)

	pair, err := client.Tokens()
	if err != nil {
		t.Fatal(err)
	}

	if !pair.IsZero() {
		t.Fatalf("expected no tokens in a fresh store, got: %+v", pair)
	}

	want := models.TokenPair{
		AccessToken:  "access-abc",
		RefreshToken: "refresh-xyz",
	}

	err = client.SaveTokens(want)
	if err != nil {
		t.Fatal(err)
	}

	got, err := client.Tokens()
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("token pair mismatch (-want +got):\n%s", diff)
	}

	err = client.ClearTokens()
	if err != nil {
		t.Fatal(err)
	}

	got, err = client.Tokens()
	if err != nil {
		t.Fatal(err)
	}

	if !got.IsZero() {
		t.Fatalf("expected tokens to be cleared, got: %+v", got)
	}
}

func TestSaveTokensOverwritesBoth(t *testing.T) {
	client := newTestClient(t)

	err := client.SaveTokens(models.TokenPair{
		AccessToken:  "old-access",
		RefreshToken: "old-refresh",
	})
	if err != nil {
		t.Fatal(err)
	}

	want := models.TokenPair{
		AccessToken:  "new-access",
		RefreshToken: "new-refresh",
	}

	err = client.SaveTokens(want)
	if err != nil {
		t.Fatal(err)
	}

	got, err := client.Tokens()
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("token pair mismatch (-want +got):\n%s", diff)
	}
}

func testRecord(id string, createdAt time.Time) *models.AssessmentRecord {
	return &models.AssessmentRecord{
		ID:                  id,
		CreatedAt:           createdAt,
		StoryID:             "market_day",
		AudioPath:           "market_day_1700000000.wav",
		StoryDurationMs:     60000,
		RecordingDurationMs: 45000,
		Completed:           true,
	}
}

func TestAssessmentRoundTrip(t *testing.T) {
	client := newTestClient(t)

	base := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

	// saved out of order to confirm chronological listing
	for _, rec := range []*models.AssessmentRecord{
		testRecord("b", base.Add(2*time.Hour)),
		testRecord("a", base),
		testRecord("c", base.Add(4*time.Hour)),
	} {
		err := client.SaveAssessment(rec)
		if err != nil {
			t.Fatal(err)
		}
	}

	recs, err := client.ListAssessments()
	if err != nil {
		t.Fatal(err)
	}

	var ids []string
	for _, rec := range recs {
		ids = append(ids, rec.ID)
	}

	if diff := cmp.Diff([]string{"a", "b", "c"}, ids); diff != "" {
		t.Fatalf("listing order mismatch (-want +got):\n%s", diff)
	}

	got, err := client.GetAssessment("b")
	if err != nil {
		t.Fatal(err)
	}

	if got.StoryID != "market_day" {
		t.Fatalf("unexpected story id: %s", got.StoryID)
	}

	_, err = client.GetAssessment("missing")
	if err == nil {
		t.Fatal("expected an error for an unknown record id")
	}
}

func TestSaveAssessmentUpdatesInPlace(t *testing.T) {
	client := newTestClient(t)

	rec := testRecord("a", time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC))

	err := client.SaveAssessment(rec)
	if err != nil {
		t.Fatal(err)
	}

	rec.Uploaded = true

	err = client.SaveAssessment(rec)
	if err != nil {
		t.Fatal(err)
	}

	recs, err := client.ListAssessments()
	if err != nil {
		t.Fatal(err)
	}

	if len(recs) != 1 {
		t.Fatalf("expected a single record, got: %d", len(recs))
	}

	if !recs[0].Uploaded {
		t.Fatal("expected the record to be marked uploaded")
	}
}

func TestDeleteAssessments(t *testing.T) {
	client := newTestClient(t)

	base := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

	for _, rec := range []*models.AssessmentRecord{
		testRecord("a", base),
		testRecord("b", base.Add(time.Hour)),
		testRecord("c", base.Add(2*time.Hour)),
	} {
		err := client.SaveAssessment(rec)
		if err != nil {
			t.Fatal(err)
		}
	}

	err := client.DeleteAssessments([]string{"a", "c"})
	if err != nil {
		t.Fatal(err)
	}

	recs, err := client.ListAssessments()
	if err != nil {
		t.Fatal(err)
	}

	if len(recs) != 1 || recs[0].ID != "b" {
		t.Fatalf("unexpected records after delete: %+v", recs)
	}
}
