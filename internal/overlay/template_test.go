package overlay

import (
	"errors"
	"testing"
)

func TestRenderTemplate(t *testing.T) {
	fields := map[string]string{
		"volume_id": "RHEL-9",
		"ks_path":   "/ks.cfg",
	}

	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{"single field", "search --label {volume_id}", "search --label RHEL-9"},
		{"repeated field", "{volume_id}/{volume_id}", "RHEL-9/RHEL-9"},
		{"multiple fields", "inst.ks=hd:LABEL={volume_id}:{ks_path}", "inst.ks=hd:LABEL=RHEL-9:/ks.cfg"},
		{"no placeholders", "set default=0\n", "set default=0\n"},
		{"escaped braces", "menuentry {{ {volume_id} }}", "menuentry { RHEL-9 }"},
		{"empty template", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderTemplate(tt.tmpl, fields)
			if err != nil {
				t.Fatalf("RenderTemplate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("RenderTemplate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderTemplate_UnknownField(t *testing.T) {
	_, err := RenderTemplate("boot {missing_field} now", map[string]string{"volume_id": "X"})
	if !errors.Is(err, ErrTemplateField) {
		t.Fatalf("error = %v, want ErrTemplateField", err)
	}
}

func TestRenderTemplate_UnmatchedBraces(t *testing.T) {
	if _, err := RenderTemplate("oops {volume_id", map[string]string{"volume_id": "X"}); err == nil {
		t.Error("expected error for unmatched '{'")
	}
	if _, err := RenderTemplate("oops } here", nil); err == nil {
		t.Error("expected error for unmatched '}'")
	}
}
