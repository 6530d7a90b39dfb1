package sentence

import (
	"reflect"
	"testing"
)

func TestSplitBasicSentences(t *testing.T) {
	splitter := NewSplitter()
	got := splitter.Split("First sentence. Second one! Third one?")
	want := []string{"First sentence.", "Second one!", "Third one?"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Split() = %v, want %v", got, want)
	}
}

func TestSplitKeepsTrailingFragment(t *testing.T) {
	splitter := NewSplitter()
	got := splitter.Split("Complete sentence. trailing fragment without stop")
	want := []string{"Complete sentence.", "trailing fragment without stop"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Split() = %v, want %v", got, want)
	}
}

func TestSplitNoTerminalPunctuation(t *testing.T) {
	splitter := NewSplitter()
	got := splitter.Split("just one clause")
	want := []string{"just one clause"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Split() = %v, want %v", got, want)
	}
}

func TestSplitEmptyInput(t *testing.T) {
	splitter := NewSplitter()
	if got := splitter.Split("   "); got != nil {
		t.Fatalf("Split() = %v, want nil", got)
	}
}
