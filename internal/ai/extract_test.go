package ai

import "testing"

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantKey string
		wantNil bool
	}{
		{
			name:    "object embedded in prose",
			text:    `Sure! Here you go: {"intent": "browsing", "confidence": 0.9} hope that helps`,
			wantKey: "intent",
		},
		{
			name:    "first parseable wins",
			text:    `{broken} then {"ok": true}`,
			wantKey: "ok",
		},
		{
			name:    "nested json yields the innermost object",
			text:    `{"outer": {"inner": 1}}`,
			wantKey: "inner",
		},
		{
			name:    "no json at all",
			text:    "just a friendly sentence",
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractJSONObject(tt.text)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected an object")
			}
			if _, ok := got[tt.wantKey]; !ok {
				t.Errorf("missing key %q in %v", tt.wantKey, got)
			}
		})
	}
}

func TestExtractJSONArray(t *testing.T) {
	text := `Top picks below.
[
  {"product_id": 1, "confidence": 95, "priority": 1},
  {"product_id": 2, "confidence": 80, "priority": 2}
]
Enjoy!`

	arr := ExtractJSONArray(text)
	if len(arr) != 2 {
		t.Fatalf("got %d entries, want 2", len(arr))
	}
	if id, ok := arr[0]["product_id"].(float64); !ok || id != 1 {
		t.Errorf("first entry product_id = %v", arr[0]["product_id"])
	}
}

func TestExtractJSONArrayNoMatch(t *testing.T) {
	if got := ExtractJSONArray(`["plain", "strings"]`); got != nil {
		t.Errorf("array of strings should not extract, got %v", got)
	}
	if got := ExtractJSONArray("no json here"); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}
