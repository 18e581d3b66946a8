package diag

import (
	"testing"

	"stylic/internal/source"
)

func TestBagCap(t *testing.T) {
	b := NewBag(2)
	if !b.Add(New(SevInfo, ExtractInfo, source.Span{}, "one")) {
		t.Fatal("first add rejected")
	}
	if !b.Add(New(SevInfo, ExtractInfo, source.Span{}, "two")) {
		t.Fatal("second add rejected")
	}
	if b.Add(New(SevInfo, ExtractInfo, source.Span{}, "three")) {
		t.Fatal("add past cap accepted")
	}
	if b.Len() != 2 {
		t.Fatalf("len = %d, want 2", b.Len())
	}
}

func TestBagSortStable(t *testing.T) {
	b := NewBag(10)
	b.Add(New(SevInfo, ExtractDynamicStyle, source.Span{File: 0, Start: 20, End: 21}, "later"))
	b.Add(New(SevError, ExtractEscapedReference, source.Span{File: 0, Start: 5, End: 6}, "earlier"))
	b.Sort()

	items := b.Items()
	if items[0].Message != "earlier" || items[1].Message != "later" {
		t.Fatalf("unexpected order: %q, %q", items[0].Message, items[1].Message)
	}
}

func TestBagDedup(t *testing.T) {
	b := NewBag(10)
	sp := source.Span{File: 0, Start: 1, End: 2}
	b.Add(New(SevInfo, ExtractDynamicStyle, sp, "a"))
	b.Add(New(SevInfo, ExtractDynamicStyle, sp, "b"))
	b.Dedup()
	if b.Len() != 1 {
		t.Fatalf("len after dedup = %d, want 1", b.Len())
	}
}

func TestBuilderEmitOnce(t *testing.T) {
	b := NewBag(10)
	rb := ReportInfo(BagReporter{Bag: b}, ExtractDynamicStyle, source.Span{}, "msg").
		WithNote(source.Span{}, "note")
	rb.Emit()
	rb.Emit()
	if b.Len() != 1 {
		t.Fatalf("len = %d, want 1", b.Len())
	}
	if len(b.Items()[0].Notes) != 1 {
		t.Fatalf("notes = %d, want 1", len(b.Items()[0].Notes))
	}
}

func TestInnerDiagnosticChain(t *testing.T) {
	inner := New(SevInfo, EvalRequiresRuntime, source.Span{Start: 3, End: 4}, "function leaf")
	outer := New(SevInfo, ExtractDynamicStyle, source.Span{Start: 0, End: 10}, "style not static").WithInner(inner)
	if outer.Inner == nil || outer.Inner.Code != EvalRequiresRuntime {
		t.Fatal("inner diagnostic not attached")
	}
}

func TestCodeString(t *testing.T) {
	if got := ExtractEscapedReference.String(); got != "EXT3004" {
		t.Fatalf("code string = %q", got)
	}
	if got := LexUnknownChar.String(); got != "LEX1001" {
		t.Fatalf("code string = %q", got)
	}
}
