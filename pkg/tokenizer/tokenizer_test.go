package tokenizer

import "testing"

func TestTokenize_SplitsOnDelimiters(t *testing.T) {
	tok := New(DefaultDelimiters)
	text := "The Matrix Reloaded"
	toks := tok.Tokenize(text, 0)
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3", len(toks))
	}
	got := []string{toks[0].Text(text), toks[1].Text(text), toks[2].Text(text)}
	want := []string{"The", "Matrix", "Reloaded"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	for i, tk := range toks {
		if int(tk.Position) != i {
			t.Fatalf("token[%d].Position = %d, want %d", i, tk.Position, i)
		}
	}
}

func TestTokenize_DropsShortTokens(t *testing.T) {
	tok := New(DefaultDelimiters)
	toks := tok.Tokenize("a bb ccc", 2)
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2 (min size 2 drops \"a\")", len(toks))
	}
}

func TestTokenize_PunctuationDelimiters(t *testing.T) {
	tok := New(DefaultDelimiters)
	toks := tok.Tokenize("hello, world!", 0)
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2", len(toks))
	}
}

func TestDedupeQueryTokens_PreservesFirstOccurrence(t *testing.T) {
	tok := New(DefaultDelimiters)
	text := "two for two"
	raw := tok.Tokenize(text, 0)
	dedup := DedupeQueryTokens(text, raw)
	if len(dedup) != 2 {
		t.Fatalf("got %d deduped tokens, want 2", len(dedup))
	}
	if dedup[0].Text(text) != "two" || dedup[1].Text(text) != "for" {
		t.Fatalf("unexpected dedup order: %q, %q", dedup[0].Text(text), dedup[1].Text(text))
	}
}

func TestDedupeQueryTokens_IdempotentOnAlreadyDeduped(t *testing.T) {
	tok := New(DefaultDelimiters)
	text := "the matrix rev"
	raw := tok.Tokenize(text, 0)
	once := DedupeQueryTokens(text, raw)
	twice := DedupeQueryTokens(text, once)
	if len(once) != len(twice) {
		t.Fatalf("dedup not idempotent: %d vs %d", len(once), len(twice))
	}
}

func TestGetWordTokensForCoverage_Lowercases(t *testing.T) {
	tok := New(DefaultDelimiters)
	got := tok.GetWordTokensForCoverage("The Matrix", 0)
	want := []string{"the", "matrix"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestGetWordTokensForCoverage_DropsStopwords(t *testing.T) {
	tok := New(DefaultDelimiters)
	tok.DropStopwords = true
	got := tok.GetWordTokensForCoverage("the matrix and the machine", 0)
	for _, w := range got {
		if w == "the" || w == "and" {
			t.Fatalf("expected stopwords dropped, got %v", got)
		}
	}
}

func TestTokenize_NoAutomatonFallsBackToScan(t *testing.T) {
	tok := &WordTokenizer{Delimiters: " "}
	toks := tok.Tokenize("hello world", 0)
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2", len(toks))
	}
}
