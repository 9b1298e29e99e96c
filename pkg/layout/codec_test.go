package layout

import (
	"path/filepath"
	"strings"
	"testing"

	apperr "github.com/matzehuels/gridboard/pkg/errors"
)

func TestMarshalWireFormat(t *testing.T) {
	data, err := Marshal(Layout{{ID: "kpi_sales", X: 0, Y: 0, W: 3, H: 3, MinH: 3}})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	want := `[{"i":"kpi_sales","x":0,"y":0,"w":3,"h":3,"minH":3,"collapsed":false}]`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	empty, _ := Marshal(nil)
	if string(empty) != "[]" {
		t.Errorf("Marshal(nil) = %s, want []", empty)
	}
}

func TestUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Layout
		wantErr bool
	}{
		{
			name:  "i key",
			input: `[{"i":"a","x":1,"y":2,"w":3,"h":4}]`,
			want:  Layout{{ID: "a", X: 1, Y: 2, W: 3, H: 4}},
		},
		{
			name:  "id key",
			input: `[{"id":"a","x":1,"y":2,"w":3,"h":4,"collapsed":true,"prevH":4}]`,
			want:  Layout{{ID: "a", X: 1, Y: 2, W: 3, H: 4, Collapsed: true, PrevH: 4}},
		},
		{
			name:  "null",
			input: `null`,
			want:  Layout{},
		},
		{
			name:  "empty array",
			input: `[]`,
			want:  Layout{},
		},
		{name: "corrupt json", input: `[{"i":"a",`, wantErr: true},
		{name: "wrong shape", input: `{"layout":[]}`, wantErr: true},
		{name: "missing id", input: `[{"x":1}]`, wantErr: true},
		{
			name:  "free-form id",
			input: `[{"i":"sales kpi","x":0,"y":0,"w":3,"h":3}]`,
			want:  Layout{{ID: "sales kpi", W: 3, H: 3}},
		},
		{name: "control character in id", input: `[{"i":"kpi\u0000","x":1}]`, wantErr: true},
		{name: "id too long", input: `[{"i":"` + strings.Repeat("a", 65) + `"}]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Unmarshal([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !apperr.Is(err, apperr.ErrCodeInvalidLayout) {
					t.Errorf("error code = %s, want INVALID_LAYOUT", apperr.GetCode(err))
				}
				return
			}
			if !Equal(got, tt.want) {
				t.Errorf("Unmarshal() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	l := Default(BreakpointMD)

	if err := WriteFile(l, path); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if !Equal(got, l) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, l)
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil || !strings.Contains(err.Error(), "missing.json") {
		t.Errorf("ReadFile(missing) error = %v, want path in message", err)
	}
}
