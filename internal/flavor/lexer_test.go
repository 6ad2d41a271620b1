package flavor

import (
	"testing"
)

func lexAll(t *testing.T, src string) []token {
	t.Helper()
	l := newLexer("test.cfg", src)
	var toks []token
	for {
		tok, err := l.next()
		if err != nil {
			t.Fatalf("lex error: %v", err)
		}
		toks = append(toks, tok)
		if tok.kind == tokEOF {
			return toks
		}
	}
}

func TestLexer_Assignment(t *testing.T) {
	toks := lexAll(t, "volume_id = 'TEST-9'")

	want := []struct {
		kind tokenKind
		text string
	}{
		{tokIdent, "volume_id"},
		{tokAssign, "="},
		{tokString, "TEST-9"},
		{tokEOF, ""},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, w := range want {
		if toks[i].kind != w.kind || toks[i].text != w.text {
			t.Errorf("token %d = (%v, %q), want (%v, %q)", i, toks[i].kind, toks[i].text, w.kind, w.text)
		}
	}
}

func TestLexer_Positions(t *testing.T) {
	toks := lexAll(t, "a = 1\nbb = 2")

	// tokens: a = 1 NEWLINE bb = 2 EOF
	// "bb" starts at line 2, column 1
	if toks[4].kind != tokIdent || toks[4].text != "bb" {
		t.Fatalf("token 4 = (%v, %q), want identifier bb", toks[4].kind, toks[4].text)
	}
	if toks[4].line != 2 || toks[4].col != 1 {
		t.Errorf("bb position = %d:%d, want 2:1", toks[4].line, toks[4].col)
	}
	// "2" at line 2 column 6
	if toks[6].text != "2" || toks[6].line != 2 || toks[6].col != 6 {
		t.Errorf("token 6 = %q at %d:%d, want 2 at 2:6", toks[6].text, toks[6].line, toks[6].col)
	}
}

func TestLexer_CommentsSkipped(t *testing.T) {
	toks := lexAll(t, "# header\na = 1 # trailing\n")
	var kinds []tokenKind
	for _, tok := range toks {
		kinds = append(kinds, tok.kind)
	}
	want := []tokenKind{tokNewline, tokIdent, tokAssign, tokInt, tokNewline, tokEOF}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", kinds, want)
		}
	}
}

func TestLexer_ImplicitLineJoining(t *testing.T) {
	toks := lexAll(t, "x = [\n  1,\n  2,\n]\n")
	for _, tok := range toks[:len(toks)-2] {
		if tok.kind == tokNewline {
			t.Fatal("newline token emitted inside brackets")
		}
	}
}

func TestLexer_StringEscapes(t *testing.T) {
	toks := lexAll(t, `x = "a\n\t\"b\""`)
	if toks[2].text != "a\n\t\"b\"" {
		t.Errorf("decoded string = %q", toks[2].text)
	}
}

func TestLexer_SingleAndDoubleQuotes(t *testing.T) {
	toks := lexAll(t, `x = 'it is "quoted"'`)
	if toks[2].text != `it is "quoted"` {
		t.Errorf("decoded string = %q", toks[2].text)
	}
}

func TestLexer_UnterminatedString(t *testing.T) {
	l := newLexer("test.cfg", "x = 'oops\n")
	for {
		tok, err := l.next()
		if err != nil {
			return // got the expected error
		}
		if tok.kind == tokEOF {
			t.Fatal("expected error for unterminated string")
		}
	}
}

func TestLexer_Numbers(t *testing.T) {
	tests := []struct {
		src  string
		kind tokenKind
	}{
		{"42", tokInt},
		{"3.14", tokFloat},
		{"10.", tokFloat},
		{".5", tokFloat},
		{"1e6", tokFloat},
		{"2.5E-3", tokFloat},
	}
	for _, tt := range tests {
		toks := lexAll(t, "x = "+tt.src)
		if toks[2].kind != tt.kind || toks[2].text != tt.src {
			t.Errorf("lex(%q) = (%v, %q), want (%v, %q)", tt.src, toks[2].kind, toks[2].text, tt.kind, tt.src)
		}
	}
}
