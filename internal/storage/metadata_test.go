package storage

import (
	"path/filepath"
	"testing"

	"github.com/codebuildervaibhav/dialogue-segmenter/internal/dialogue"
)

func testDB(t *testing.T) *MetadataDB {
	t.Helper()
	db, err := NewMetadataDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveAndGetConversation(t *testing.T) {
	db := testDB(t)

	err := db.SaveConversation("job-1", "support chat", "paste", "", "/tmp/out.md", 4, 120)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := db.GetConversation("job-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got["request_name"] != "support chat" {
		t.Errorf("request_name got %v, want support chat", got["request_name"])
	}
	if got["turn_count"] != 4 {
		t.Errorf("turn_count got %v, want 4", got["turn_count"])
	}

	if _, err := db.GetConversation("missing"); err == nil {
		t.Error("expected error for missing conversation")
	}
}

func TestListConversations(t *testing.T) {
	db := testDB(t)

	for _, id := range []string{"a", "b", "c"} {
		if err := db.SaveConversation(id, "conv "+id, "upload", "", "/tmp/"+id, 2, 10); err != nil {
			t.Fatalf("save %s failed: %v", id, err)
		}
	}

	list, err := db.ListConversations(2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("got %d conversations, want 2", len(list))
	}
}

func TestSaveAndGetTurns(t *testing.T) {
	db := testDB(t)

	turns := []dialogue.Turn{
		{Kind: dialogue.KindPrimary, DisplayName: "User", Content: "hi", LabelPrefix: "User: "},
		{Kind: dialogue.KindCounterpart, DisplayName: "Assistant", Content: "hello", LabelPrefix: "Assistant: "},
	}
	if err := db.SaveTurns("job-2", turns); err != nil {
		t.Fatalf("save turns failed: %v", err)
	}

	got, err := db.GetTurns("job-2")
	if err != nil {
		t.Fatalf("get turns failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d turns, want 2", len(got))
	}
	if got[0] != turns[0] || got[1] != turns[1] {
		t.Errorf("turns changed on round trip: got %+v", got)
	}

	// Stored turns must reconstruct the original labeled text
	want := "User: hi\n\nAssistant: hello"
	if rebuilt := dialogue.Reconstruct(got); rebuilt != want {
		t.Errorf("reconstructed got %q, want %q", rebuilt, want)
	}
}

func TestCorrectionLog(t *testing.T) {
	db := testDB(t)

	recorder := db.CorrectionRecorder("job-3")
	recorder.Record(dialogue.Correction{Index: 1, From: dialogue.SpeakerCounterpart, To: dialogue.SpeakerPrimary, Rule: dialogue.RuleSequenceValidation})
	recorder.Record(dialogue.Correction{Index: 2, From: dialogue.SpeakerUncertain, To: dialogue.SpeakerCounterpart, Rule: dialogue.RuleAlternationPattern})

	got, err := db.ListCorrections("job-3")
	if err != nil {
		t.Fatalf("list corrections failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d corrections, want 2", len(got))
	}
	if got[0].Rule != dialogue.RuleSequenceValidation || got[0].To != dialogue.SpeakerPrimary {
		t.Errorf("first correction got %+v", got[0])
	}
	if got[1].Index != 2 || got[1].Rule != dialogue.RuleAlternationPattern {
		t.Errorf("second correction got %+v", got[1])
	}

	other, err := db.ListCorrections("unrelated")
	if err != nil {
		t.Fatalf("list for unrelated job failed: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("unrelated job got %d corrections, want 0", len(other))
	}
}
